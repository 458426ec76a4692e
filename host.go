package termgrid

import (
	"fmt"
	"time"

	"github.com/gogpu/termgrid/backend"
	"github.com/gogpu/termgrid/font"
)

// State is the host lifecycle phase.
type State int

const (
	// StateInitializing covers New returning until Run is called.
	StateInitializing State = iota

	// StateRunning covers the frame loop.
	StateRunning

	// StateClosing is entered when the loop ends; the host cannot run
	// again.
	StateClosing
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateRunning:
		return "running"
	case StateClosing:
		return "closing"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// App receives one callback per frame, between event delivery and
// console drawing.
type App interface {
	Tick(h *Host)
}

// AppFunc adapts a plain function to the App interface.
type AppFunc func(h *Host)

// Tick implements App.
func (f AppFunc) Tick(h *Host) {
	f(h)
}

// Host owns the window, the render backend, and the font, shader, and
// console registries, and drives the frame loop. It also acts as a
// console itself: writing operations forward to the active console, so
// application code can draw through the host without holding console
// references.
//
// All registries are append-only and hand out indices starting at 0.
// Indices are never validated at registration; a console referring to
// an index that does not resolve is skipped at draw time with a
// defined error instead of crashing the frame.
type Host struct {
	window  Window
	backend backend.RenderBackend
	clock   Clock

	width  int
	height int

	fonts    []backend.FontTexture
	shaders  []backend.Program
	consoles []DisplayConsole

	activeConsole int
	events        []Event
	state         State
	closed        bool

	// Frame timing. FPS recomputes when the whole-second mark
	// advances; frame time is the delta between whole-millisecond
	// samples.
	start       time.Time
	frames      int
	prevSeconds int64
	prevMillis  int64
	fps         float64
	frameTimeMS float64
}

var _ Console = (*Host)(nil)

// New creates a host with a window and rendering context of the given
// pixel dimensions. The window comes from WithWindow or the registered
// window factory; the backend from WithBackend or the best registered
// one. The built-in console shader is compiled and registered as
// shader index 0, so RegisterConsole's default shader always resolves.
//
// Any window, device, or shader failure is fatal here rather than
// surfacing later mid-frame.
func New(widthPixels, heightPixels int, opts ...Option) (*Host, error) {
	if widthPixels <= 0 || heightPixels <= 0 {
		return nil, fmt.Errorf("termgrid: window size %dx%d must be positive", widthPixels, heightPixels)
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	win := o.window
	if win == nil {
		factory := registeredWindowFactory()
		if factory == nil {
			return nil, ErrNoWindow
		}
		w, err := factory(WindowConfig{Title: o.title, Width: widthPixels, Height: heightPixels})
		if err != nil {
			return nil, fmt.Errorf("termgrid: open window: %w", err)
		}
		win = w
	}

	be := o.backend
	if be == nil {
		be = backend.Default()
		if be == nil {
			return nil, fmt.Errorf("termgrid: %w", backend.ErrBackendNotAvailable)
		}
	}

	// Share the window's GPU device with the backend when both sides
	// support it. Failure falls back to a standalone device.
	if dev := win.Device(); dev != nil {
		if aware, ok := be.(backend.DeviceProviderAware); ok {
			if err := aware.SetDeviceProvider(dev); err != nil {
				Logger().Warn("device sharing failed, using standalone device",
					"backend", be.Name(), "error", err)
			}
		}
	}

	if err := be.Init(); err != nil {
		return nil, fmt.Errorf("termgrid: init %s backend: %w", be.Name(), err)
	}
	be.Resize(widthPixels, heightPixels)

	prog, err := be.CompileProgram(backend.ConsoleShader())
	if err != nil {
		be.Close()
		return nil, fmt.Errorf("termgrid: compile console shader: %w", err)
	}

	h := &Host{
		window:  win,
		backend: be,
		clock:   o.clock,
		width:   widthPixels,
		height:  heightPixels,
		shaders: []backend.Program{prog},
		state:   StateInitializing,
	}

	Logger().Info("host created",
		"width", widthPixels, "height", heightPixels, "backend", be.Name())
	return h, nil
}

// RegisterFont uploads a glyph atlas to the GPU and appends it to the
// font registry, returning its stable index. The first registered font
// gets index 0.
func (h *Host) RegisterFont(a *font.Atlas) (int, error) {
	if h.state == StateClosing {
		return 0, ErrHostClosed
	}
	if a == nil {
		return 0, font.ErrNilImage
	}
	tex, err := h.backend.UploadFont(a.Image())
	if err != nil {
		return 0, fmt.Errorf("termgrid: upload font: %w", err)
	}
	h.fonts = append(h.fonts, tex)
	return len(h.fonts) - 1, nil
}

// RegisterShader compiles a shader program and appends it to the
// shader registry, returning its stable index. The built-in console
// shader occupies index 0.
func (h *Host) RegisterShader(src backend.ShaderSource) (int, error) {
	if h.state == StateClosing {
		return 0, ErrHostClosed
	}
	prog, err := h.backend.CompileProgram(src)
	if err != nil {
		return 0, fmt.Errorf("termgrid: compile shader: %w", err)
	}
	h.shaders = append(h.shaders, prog)
	return len(h.shaders) - 1, nil
}

// RegisterConsole appends a console drawing with the given font index
// and the built-in console shader, and returns the console's index.
// The font index is not checked here; it resolves at draw time.
func (h *Host) RegisterConsole(c Console, fontIndex int) int {
	return h.RegisterConsoleWithShader(c, fontIndex, 0)
}

// RegisterConsoleWithShader appends a console drawing with the given
// font and shader indices. Neither index is checked here; both resolve
// at draw time.
func (h *Host) RegisterConsoleWithShader(c Console, fontIndex, shaderIndex int) int {
	h.consoles = append(h.consoles, DisplayConsole{
		Surface:     c,
		FontIndex:   fontIndex,
		ShaderIndex: shaderIndex,
	})
	return len(h.consoles) - 1
}

// SetActiveConsole selects the console that pass-through writing
// operations target. The id is stored as-is; an id that does not
// resolve makes the pass-through operations return ErrConsoleIndex.
func (h *Host) SetActiveConsole(id int) {
	h.activeConsole = id
}

// ActiveConsole returns the current pass-through target id.
func (h *Host) ActiveConsole() int {
	return h.activeConsole
}

// Console returns the registered console at an index.
func (h *Host) Console(id int) (DisplayConsole, error) {
	if id < 0 || id >= len(h.consoles) {
		return DisplayConsole{}, fmt.Errorf("%w: %d of %d", ErrConsoleIndex, id, len(h.consoles))
	}
	return h.consoles[id], nil
}

// Events returns the platform events drained for the current frame.
// The slice is valid until the next frame begins.
func (h *Host) Events() []Event {
	return h.events
}

// FPS returns the frame rate over the last whole-second window, or 0
// before the first window completes.
func (h *Host) FPS() float64 {
	return h.fps
}

// FrameTimeMS returns the most recent frame time sample in whole
// milliseconds. The value is coarse: frames faster than a millisecond
// share a sample.
func (h *Host) FrameTimeMS() float64 {
	return h.frameTimeMS
}

// State returns the host lifecycle phase.
func (h *Host) State() State {
	return h.state
}

// Quit asks the window to close; the loop ends after the current
// frame.
func (h *Host) Quit() {
	h.window.RequestClose()
}

// active resolves the pass-through target console.
func (h *Host) active() (Console, error) {
	if len(h.consoles) == 0 {
		return nil, ErrNoConsoles
	}
	if h.activeConsole < 0 || h.activeConsole >= len(h.consoles) {
		return nil, fmt.Errorf("%w: active %d of %d", ErrConsoleIndex, h.activeConsole, len(h.consoles))
	}
	return h.consoles[h.activeConsole].Surface, nil
}

// fontAt resolves a console's font index at draw time.
func (h *Host) fontAt(idx int) (backend.FontTexture, error) {
	if idx < 0 || idx >= len(h.fonts) {
		return nil, fmt.Errorf("%w: %d of %d", ErrFontIndex, idx, len(h.fonts))
	}
	return h.fonts[idx], nil
}

// shaderAt resolves a console's shader index at draw time.
func (h *Host) shaderAt(idx int) (backend.Program, error) {
	if idx < 0 || idx >= len(h.shaders) {
		return nil, fmt.Errorf("%w: %d of %d", ErrShaderIndex, idx, len(h.shaders))
	}
	return h.shaders[idx], nil
}

// Size returns the active console's grid size, or (0, 0) when the
// active console does not resolve.
func (h *Host) Size() (width, height int) {
	c, err := h.active()
	if err != nil {
		return 0, 0
	}
	return c.Size()
}

// At forwards to the active console.
func (h *Host) At(x, y int) (int, error) {
	c, err := h.active()
	if err != nil {
		return 0, err
	}
	return c.At(x, y)
}

// Cls forwards to the active console.
func (h *Host) Cls() error {
	c, err := h.active()
	if err != nil {
		return err
	}
	return c.Cls()
}

// ClsBg forwards to the active console.
func (h *Host) ClsBg(bg RGBA) error {
	c, err := h.active()
	if err != nil {
		return err
	}
	return c.ClsBg(bg)
}

// Print forwards to the active console.
func (h *Host) Print(x, y int, text string) error {
	c, err := h.active()
	if err != nil {
		return err
	}
	return c.Print(x, y, text)
}

// PrintColor forwards to the active console.
func (h *Host) PrintColor(x, y int, fg, bg RGBA, text string) error {
	c, err := h.active()
	if err != nil {
		return err
	}
	return c.PrintColor(x, y, fg, bg, text)
}

// IsDirty implements Console. The host carries no geometry of its own.
func (h *Host) IsDirty() bool {
	return false
}

// Rebuild implements Console as a no-op; registered consoles rebuild
// individually in the frame loop.
func (h *Host) Rebuild() error {
	return nil
}

// Draw implements Console as a no-op; registered consoles draw
// individually in the frame loop.
func (h *Host) Draw(backend.Frame, backend.FontTexture, backend.Program) error {
	return nil
}
