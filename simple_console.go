package termgrid

import (
	"fmt"

	"github.com/gogpu/termgrid/backend"
	"github.com/gogpu/termgrid/font"
)

// blankGlyph fills cleared cells. Glyph 32 is the CP437 space.
const blankGlyph = 32

// SimpleConsole is a dense character grid: every cell holds a glyph
// and a color pair, and the whole grid renders as one quad mesh. It is
// the standard console for full-screen text displays.
//
// SimpleConsole is not safe for concurrent use; the frame loop and the
// tick callback run on the same goroutine.
type SimpleConsole struct {
	width  int
	height int
	cells  []Cell
	dirty  bool
	mesh   backend.GridMesh
}

var _ Console = (*SimpleConsole)(nil)

// NewSimpleConsole creates a console grid of the given dimensions in
// cells, cleared to blank cells on black.
func NewSimpleConsole(width, height int) (*SimpleConsole, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("termgrid: console size %dx%d must be positive", width, height)
	}
	c := &SimpleConsole{
		width:  width,
		height: height,
		cells:  make([]Cell, width*height),
	}
	c.fill(Cell{Glyph: blankGlyph, Fg: White, Bg: Black})
	return c, nil
}

// Size returns the grid dimensions in cells.
func (c *SimpleConsole) Size() (width, height int) {
	return c.width, c.height
}

// At returns the cell buffer index for a coordinate, or ErrOutOfBounds.
func (c *SimpleConsole) At(x, y int) (int, error) {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return 0, fmt.Errorf("%w: (%d,%d) outside %dx%d", ErrOutOfBounds, x, y, c.width, c.height)
	}
	return y*c.width + x, nil
}

// Cell returns a copy of the cell at a coordinate.
func (c *SimpleConsole) Cell(x, y int) (Cell, error) {
	idx, err := c.At(x, y)
	if err != nil {
		return Cell{}, err
	}
	return c.cells[idx], nil
}

// Set writes one cell, clipping silently outside the grid.
func (c *SimpleConsole) Set(x, y int, cell Cell) {
	idx, err := c.At(x, y)
	if err != nil {
		return
	}
	c.cells[idx] = cell
	c.dirty = true
}

// Cls clears the grid to blank cells with a black background.
func (c *SimpleConsole) Cls() error {
	c.fill(Cell{Glyph: blankGlyph, Fg: White, Bg: Black})
	return nil
}

// ClsBg clears the grid to blank cells over the given background.
func (c *SimpleConsole) ClsBg(bg RGBA) error {
	c.fill(Cell{Glyph: blankGlyph, Fg: White, Bg: bg})
	return nil
}

func (c *SimpleConsole) fill(cell Cell) {
	for i := range c.cells {
		c.cells[i] = cell
	}
	c.dirty = true
}

// Print writes text at a grid position in white on black. Characters
// outside the grid are clipped.
func (c *SimpleConsole) Print(x, y int, text string) error {
	return c.PrintColor(x, y, White, Black, text)
}

// PrintColor writes text at a grid position in the given colors.
// Characters outside the grid are clipped.
func (c *SimpleConsole) PrintColor(x, y int, fg, bg RGBA, text string) error {
	for i, glyph := range font.StringToCP437(text) {
		cx := x + i
		if cx < 0 || cx >= c.width || y < 0 || y >= c.height {
			continue
		}
		c.cells[y*c.width+cx] = Cell{Glyph: glyph, Fg: fg, Bg: bg}
		c.dirty = true
	}
	return nil
}

// IsDirty reports whether the console changed since its last rebuild.
func (c *SimpleConsole) IsDirty() bool {
	return c.dirty
}

// Rebuild regenerates the quad mesh from the cell grid. One quad per
// cell, in clip-space coordinates spanning the full viewport, with
// texture coordinates addressing the glyph's tile in the 16x16 atlas
// grid. The console stretches with the window: resizes change cell
// aspect, not cell count.
func (c *SimpleConsole) Rebuild() error {
	c.mesh.Reset()

	cellW := 2.0 / float32(c.width)
	cellH := 2.0 / float32(c.height)

	for y := 0; y < c.height; y++ {
		top := 1.0 - float32(y)*cellH
		bottom := top - cellH
		for x := 0; x < c.width; x++ {
			cell := c.cells[y*c.width+x]
			left := -1.0 + float32(x)*cellW
			right := left + cellW

			u0, v0, u1, v1 := glyphUV(cell.Glyph)
			fg := cell.Fg.vec4()
			bg := cell.Bg.vec4()

			c.mesh.AppendQuad(
				backend.Vertex{X: left, Y: top, U: u0, V: v0, Fg: fg, Bg: bg},
				backend.Vertex{X: right, Y: top, U: u1, V: v0, Fg: fg, Bg: bg},
				backend.Vertex{X: right, Y: bottom, U: u1, V: v1, Fg: fg, Bg: bg},
				backend.Vertex{X: left, Y: bottom, U: u0, V: v1, Fg: fg, Bg: bg},
			)
		}
	}

	c.dirty = false
	return nil
}

// Draw records the console mesh on the frame.
func (c *SimpleConsole) Draw(f backend.Frame, fontTex backend.FontTexture, prog backend.Program) error {
	return f.DrawGrid(&c.mesh, fontTex, prog)
}

// glyphUV returns the atlas tile coordinates of a glyph, with v
// growing downward.
func glyphUV(glyph uint8) (u0, v0, u1, v1 float32) {
	col := int(glyph) % font.GridSize
	row := int(glyph) / font.GridSize
	u0 = float32(col) / font.GridSize
	v0 = float32(row) / font.GridSize
	u1 = float32(col+1) / font.GridSize
	v1 = float32(row+1) / font.GridSize
	return u0, v0, u1, v1
}
