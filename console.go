package termgrid

import "github.com/gogpu/termgrid/backend"

// Cell is one character cell of a console grid: a code page 437 glyph
// index plus foreground and background colors.
type Cell struct {
	Glyph uint8
	Fg    RGBA
	Bg    RGBA
}

// Console is a drawable text grid. The host forwards its own writing
// operations to the active console, and the frame loop rebuilds and
// draws every registered console each frame.
//
// Implementations track a dirty flag: writes mark the console dirty,
// Rebuild regenerates GPU geometry and clears the flag. Rebuild runs
// for every dirty console before any console draws, so a frame never
// mixes fresh and stale geometry.
type Console interface {
	// Size returns the grid dimensions in cells.
	Size() (width, height int)

	// At returns the cell buffer index for a coordinate, or
	// ErrOutOfBounds. The origin is the top-left cell; the index
	// advances left to right, then row by row.
	At(x, y int) (int, error)

	// Cls clears the grid to blank cells with a black background.
	Cls() error

	// ClsBg clears the grid to blank cells over the given background.
	ClsBg(bg RGBA) error

	// Print writes text at a grid position in the default colors.
	// Characters falling outside the grid are clipped.
	Print(x, y int, text string) error

	// PrintColor writes text at a grid position in the given colors.
	PrintColor(x, y int, fg, bg RGBA, text string) error

	// IsDirty reports whether the console changed since its last
	// rebuild.
	IsDirty() bool

	// Rebuild regenerates draw geometry from the cell grid and clears
	// the dirty flag.
	Rebuild() error

	// Draw records the console's geometry on the frame using the
	// resolved font texture and shader program.
	Draw(f backend.Frame, font backend.FontTexture, prog backend.Program) error
}

// DisplayConsole pairs a console with the registry indices of the font
// and shader it draws with. The indices are resolved against the host
// registries at draw time each frame, not captured at registration, so
// a console registered before its font still draws once the font
// exists.
type DisplayConsole struct {
	Surface     Console
	FontIndex   int
	ShaderIndex int
}
