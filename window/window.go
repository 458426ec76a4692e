package window

import (
	"fmt"
	"sync"

	"github.com/gogpu/gogpu"
	"github.com/gogpu/gpucontext"

	"github.com/gogpu/termgrid"
	"github.com/gogpu/termgrid/backend"
)

func init() {
	termgrid.RegisterWindowFactory(func(cfg termgrid.WindowConfig) (termgrid.Window, error) {
		return Open(Config{Title: cfg.Title, Width: cfg.Width, Height: cfg.Height})
	})
}

// Config describes the window to open.
type Config struct {
	Title  string
	Width  int
	Height int
}

// GogpuWindow adapts a gogpu application window to the termgrid.Window
// contract: the app's draw callback drives the host's frame, input
// callbacks feed the event queue, and the GPU context is shared with
// the render backend.
type GogpuWindow struct {
	app *gogpu.App

	// mu guards the event queue; input callbacks can fire off the
	// render goroutine.
	mu      sync.Mutex
	pending []termgrid.Event
	width   int
	height  int

	// target is only valid while the frame callback runs. It is
	// written and read on the render goroutine.
	target backend.Target
}

var _ termgrid.Window = (*GogpuWindow)(nil)

// Open creates the application window. The GPU instance, device, and
// surface exist when Open returns, so the device can be shared with a
// render backend before the loop starts.
func Open(cfg Config) (*GogpuWindow, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("window: size %dx%d must be positive", cfg.Width, cfg.Height)
	}
	if cfg.Title == "" {
		cfg.Title = "termgrid"
	}

	app := gogpu.NewApp(gogpu.DefaultConfig().
		WithTitle(cfg.Title).
		WithSize(cfg.Width, cfg.Height).
		WithContinuousRender(true))

	w := &GogpuWindow{
		app:    app,
		width:  cfg.Width,
		height: cfg.Height,
	}

	app.EventSource().OnKeyPress(func(key gpucontext.Key, mods gpucontext.Modifiers) {
		w.enqueue(termgrid.KeyEvent{Key: key, Mods: mods})
	})
	app.OnClose(func() {
		w.enqueue(termgrid.CloseEvent{})
	})

	termgrid.Logger().Info("window opened",
		"title", cfg.Title, "width", cfg.Width, "height", cfg.Height)
	return w, nil
}

// Run installs the frame callback and blocks in the application loop
// until the window closes. Frame errors do not stop the loop.
func (w *GogpuWindow) Run(frame func() error) error {
	w.app.OnDraw(func(dc *gogpu.Context) {
		usw, ush := dc.SurfaceSize()
		sw, sh := int(usw), int(ush)
		if sw <= 0 || sh <= 0 {
			return
		}

		w.mu.Lock()
		if sw != w.width || sh != w.height {
			w.width, w.height = sw, sh
			w.pending = append(w.pending, termgrid.ResizeEvent{Width: sw, Height: sh})
		}
		w.mu.Unlock()

		w.target = backend.Target{View: dc.SurfaceView(), Width: sw, Height: sh}
		_ = frame()
		w.target = backend.Target{}
	})
	return w.app.Run()
}

// PollEvents drains the queued events.
func (w *GogpuWindow) PollEvents() []termgrid.Event {
	w.mu.Lock()
	defer w.mu.Unlock()
	evs := w.pending
	w.pending = nil
	return evs
}

// FramebufferSize returns the last known surface size in pixels.
func (w *GogpuWindow) FramebufferSize() (width, height int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.width, w.height
}

// Target returns the current frame's surface target. Outside the
// frame callback the target is zero, which renders offscreen.
func (w *GogpuWindow) Target() backend.Target {
	return w.target
}

// Device returns the window's GPU context provider for device sharing.
func (w *GogpuWindow) Device() any {
	provider := w.app.GPUContextProvider()
	if provider == nil {
		return nil
	}
	return provider
}

// RequestClose asks the application loop to end after the current
// frame.
func (w *GogpuWindow) RequestClose() {
	w.app.Quit()
}

func (w *GogpuWindow) enqueue(ev termgrid.Event) {
	w.mu.Lock()
	w.pending = append(w.pending, ev)
	w.mu.Unlock()
}
