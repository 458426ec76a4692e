package termgrid

import (
	"errors"
	"image"
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/termgrid/backend"
)

func newConsole(t *testing.T, w, h int) *SimpleConsole {
	t.Helper()
	c, err := NewSimpleConsole(w, h)
	if err != nil {
		t.Fatalf("NewSimpleConsole(%d, %d) = %v", w, h, err)
	}
	return c
}

func TestNewSimpleConsoleValidatesSize(t *testing.T) {
	tests := []struct {
		name string
		w, h int
	}{
		{"zero width", 0, 5},
		{"zero height", 5, 0},
		{"negative", -3, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewSimpleConsole(tt.w, tt.h); err == nil {
				t.Fatal("expected error for non-positive console size")
			}
		})
	}
}

func TestNewSimpleConsoleStartsBlank(t *testing.T) {
	c := newConsole(t, 3, 2)

	if w, h := c.Size(); w != 3 || h != 2 {
		t.Errorf("Size() = %dx%d, want 3x2", w, h)
	}
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			cell, err := c.Cell(x, y)
			if err != nil {
				t.Fatalf("Cell(%d,%d) = %v", x, y, err)
			}
			if cell.Glyph != blankGlyph || cell.Fg != White || cell.Bg != Black {
				t.Errorf("cell (%d,%d) = %+v, want blank white on black", x, y, cell)
			}
		}
	}
	// A fresh console needs its first rebuild.
	if !c.IsDirty() {
		t.Error("new console should start dirty")
	}
}

func TestAtMapsRowMajor(t *testing.T) {
	c := newConsole(t, 4, 3)

	tests := []struct {
		x, y, want int
	}{
		{0, 0, 0},
		{3, 0, 3},
		{0, 1, 4},
		{2, 1, 6},
		{3, 2, 11},
	}
	for _, tt := range tests {
		got, err := c.At(tt.x, tt.y)
		if err != nil {
			t.Fatalf("At(%d,%d) = %v", tt.x, tt.y, err)
		}
		if got != tt.want {
			t.Errorf("At(%d,%d) = %d, want %d", tt.x, tt.y, got, tt.want)
		}
	}

	for _, bad := range [][2]int{{-1, 0}, {4, 0}, {0, 3}, {0, -1}} {
		if _, err := c.At(bad[0], bad[1]); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("At(%d,%d) error = %v, want ErrOutOfBounds", bad[0], bad[1], err)
		}
	}
}

func TestPrintWritesCells(t *testing.T) {
	c := newConsole(t, 10, 3)

	if err := c.Print(2, 1, "go"); err != nil {
		t.Fatalf("Print() = %v", err)
	}

	g, _ := c.Cell(2, 1)
	o, _ := c.Cell(3, 1)
	if g.Glyph != 'g' || o.Glyph != 'o' {
		t.Errorf("glyphs = %d,%d, want %d,%d", g.Glyph, o.Glyph, 'g', 'o')
	}
	if g.Fg != White || g.Bg != Black {
		t.Errorf("Print colors = %+v on %+v, want white on black", g.Fg, g.Bg)
	}

	before, _ := c.Cell(1, 1)
	if before.Glyph != blankGlyph {
		t.Errorf("neighbor cell modified: %+v", before)
	}
}

func TestPrintColorSetsColors(t *testing.T) {
	c := newConsole(t, 4, 4)

	if err := c.PrintColor(0, 0, Yellow, Blue, "x"); err != nil {
		t.Fatalf("PrintColor() = %v", err)
	}
	cell, _ := c.Cell(0, 0)
	if cell.Fg != Yellow || cell.Bg != Blue {
		t.Errorf("colors = %+v on %+v, want yellow on blue", cell.Fg, cell.Bg)
	}
}

func TestPrintClipsOutsideGrid(t *testing.T) {
	c := newConsole(t, 4, 2)

	// Text starting left of the grid keeps its visible tail.
	if err := c.Print(-1, 0, "ab"); err != nil {
		t.Fatalf("Print() = %v", err)
	}
	cell, _ := c.Cell(0, 0)
	if cell.Glyph != 'b' {
		t.Errorf("cell (0,0) = %d, want %d", cell.Glyph, 'b')
	}

	// Text running off the right edge clips.
	if err := c.Print(3, 1, "xyz"); err != nil {
		t.Fatalf("Print() = %v", err)
	}
	cell, _ = c.Cell(3, 1)
	if cell.Glyph != 'x' {
		t.Errorf("cell (3,1) = %d, want %d", cell.Glyph, 'x')
	}

	// Rows outside the grid are a no-op, not an error.
	if err := c.Print(0, 5, "zz"); err != nil {
		t.Fatalf("Print() off-grid = %v", err)
	}
	if err := c.Print(0, -1, "zz"); err != nil {
		t.Fatalf("Print() off-grid = %v", err)
	}
}

func TestPrintConvertsToGlyphIndices(t *testing.T) {
	c := newConsole(t, 4, 1)

	if err := c.Print(0, 0, "♥"); err != nil {
		t.Fatalf("Print() = %v", err)
	}
	cell, _ := c.Cell(0, 0)
	if cell.Glyph != 3 {
		t.Errorf("glyph for heart = %d, want 3", cell.Glyph)
	}
}

func TestSetClipsSilently(t *testing.T) {
	c := newConsole(t, 2, 2)
	c.Rebuild()

	c.Set(5, 5, Cell{Glyph: 'x', Fg: White, Bg: Black})
	if c.IsDirty() {
		t.Error("off-grid Set should not dirty the console")
	}

	c.Set(1, 1, Cell{Glyph: 'x', Fg: White, Bg: Black})
	cell, _ := c.Cell(1, 1)
	if cell.Glyph != 'x' {
		t.Errorf("cell (1,1) = %d, want %d", cell.Glyph, 'x')
	}
	if !c.IsDirty() {
		t.Error("Set inside the grid should dirty the console")
	}
}

func TestClsResetsCells(t *testing.T) {
	c := newConsole(t, 3, 3)
	if err := c.PrintColor(0, 0, Red, Blue, "abc"); err != nil {
		t.Fatalf("PrintColor() = %v", err)
	}
	c.Rebuild()

	if err := c.Cls(); err != nil {
		t.Fatalf("Cls() = %v", err)
	}
	cell, _ := c.Cell(0, 0)
	if cell.Glyph != blankGlyph || cell.Fg != White || cell.Bg != Black {
		t.Errorf("cleared cell = %+v, want blank white on black", cell)
	}
	if !c.IsDirty() {
		t.Error("Cls should dirty the console")
	}
}

func TestClsBgKeepsBackground(t *testing.T) {
	c := newConsole(t, 2, 2)

	if err := c.ClsBg(Blue); err != nil {
		t.Fatalf("ClsBg() = %v", err)
	}
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			cell, _ := c.Cell(x, y)
			if cell.Glyph != blankGlyph || cell.Bg != Blue {
				t.Errorf("cell (%d,%d) = %+v, want blank on blue", x, y, cell)
			}
		}
	}
}

func TestDirtyLifecycle(t *testing.T) {
	c := newConsole(t, 2, 2)

	if !c.IsDirty() {
		t.Fatal("new console should be dirty")
	}
	if err := c.Rebuild(); err != nil {
		t.Fatalf("Rebuild() = %v", err)
	}
	if c.IsDirty() {
		t.Error("rebuild should clear the dirty flag")
	}

	if err := c.Print(0, 0, "x"); err != nil {
		t.Fatalf("Print() = %v", err)
	}
	if !c.IsDirty() {
		t.Error("print should dirty the console")
	}
}

func checkVertex(t *testing.T, got backend.Vertex, x, y, u, v float32) {
	t.Helper()
	if got.X != x || got.Y != y {
		t.Errorf("vertex position = (%g,%g), want (%g,%g)", got.X, got.Y, x, y)
	}
	if got.U != u || got.V != v {
		t.Errorf("vertex uv = (%g,%g), want (%g,%g)", got.U, got.V, u, v)
	}
}

func TestRebuildMeshGeometry(t *testing.T) {
	c := newConsole(t, 2, 2)
	if err := c.Rebuild(); err != nil {
		t.Fatalf("Rebuild() = %v", err)
	}

	if got := c.mesh.QuadCount(); got != 4 {
		t.Fatalf("QuadCount() = %d, want 4", got)
	}
	verts := c.mesh.Vertices

	// Blank cells carry glyph 32: atlas column 0, row 2.
	const (
		u0 = 0.0
		v0 = 2.0 / 16
		u1 = 1.0 / 16
		v1 = 3.0 / 16
	)

	// Cell (0,0) covers the top-left viewport quadrant; corners in
	// top-left, top-right, bottom-right, bottom-left order.
	checkVertex(t, verts[0], -1, 1, u0, v0)
	checkVertex(t, verts[1], 0, 1, u1, v0)
	checkVertex(t, verts[2], 0, 0, u1, v1)
	checkVertex(t, verts[3], -1, 0, u0, v1)

	// Cells appear in row-major order; the last quad is cell (1,1) in
	// the bottom-right quadrant.
	checkVertex(t, verts[12], 0, 0, u0, v0)
	checkVertex(t, verts[13], 1, 0, u1, v0)
	checkVertex(t, verts[14], 1, -1, u1, v1)
	checkVertex(t, verts[15], 0, -1, u0, v1)

	for i, v := range verts {
		if v.Fg != White.vec4() || v.Bg != Black.vec4() {
			t.Fatalf("vertex %d colors = %v/%v, want white/black", i, v.Fg, v.Bg)
		}
	}
}

func TestRebuildGlyphUV(t *testing.T) {
	c := newConsole(t, 2, 1)
	if err := c.PrintColor(0, 0, Yellow, Blue, "A"); err != nil {
		t.Fatalf("PrintColor() = %v", err)
	}
	if err := c.Rebuild(); err != nil {
		t.Fatalf("Rebuild() = %v", err)
	}

	// Glyph 'A' (65) sits at atlas column 1, row 4.
	top := c.mesh.Vertices[0]
	if top.U != 1.0/16 || top.V != 4.0/16 {
		t.Errorf("glyph uv = (%g,%g), want (%g,%g)", top.U, top.V, 1.0/16, 4.0/16)
	}
	if top.Fg != Yellow.vec4() || top.Bg != Blue.vec4() {
		t.Errorf("vertex colors = %v/%v, want yellow/blue", top.Fg, top.Bg)
	}
}

func TestRebuildReusesMesh(t *testing.T) {
	c := newConsole(t, 4, 4)
	if err := c.Rebuild(); err != nil {
		t.Fatalf("Rebuild() = %v", err)
	}
	if err := c.Print(0, 0, "x"); err != nil {
		t.Fatalf("Print() = %v", err)
	}
	if err := c.Rebuild(); err != nil {
		t.Fatalf("second Rebuild() = %v", err)
	}
	if got := c.mesh.QuadCount(); got != 16 {
		t.Errorf("QuadCount() after rebuild = %d, want 16", got)
	}
}

func TestDrawRecordsMesh(t *testing.T) {
	be := backend.NewNullBackend()
	if err := be.Init(); err != nil {
		t.Fatalf("Init() = %v", err)
	}
	tex, err := be.UploadFont(image.NewRGBA(image.Rect(0, 0, 128, 128)))
	if err != nil {
		t.Fatalf("UploadFont() = %v", err)
	}
	prog, err := be.CompileProgram(backend.ConsoleShader())
	if err != nil {
		t.Fatalf("CompileProgram() = %v", err)
	}
	frame, err := be.BeginFrame(backend.Target{}, gputypes.Color{})
	if err != nil {
		t.Fatalf("BeginFrame() = %v", err)
	}

	c := newConsole(t, 2, 2)
	if err := c.Rebuild(); err != nil {
		t.Fatalf("Rebuild() = %v", err)
	}
	if err := c.Draw(frame, tex, prog); err != nil {
		t.Fatalf("Draw() = %v", err)
	}

	nf := frame.(*backend.NullFrame)
	draws := nf.Draws()
	if len(draws) != 1 {
		t.Fatalf("recorded draws = %d, want 1", len(draws))
	}
	if draws[0].Mesh != &c.mesh {
		t.Error("draw did not record the console's own mesh")
	}
}
