package termgrid

import "github.com/gogpu/termgrid/backend"

// Option configures a Host during creation.
//
// Example:
//
//	// Default: platform window, best available backend
//	host, err := termgrid.New(640, 400, termgrid.WithTitle("Caves of Go"))
//
//	// Injection for tests
//	host, err := termgrid.New(640, 400,
//	    termgrid.WithWindow(fakeWindow),
//	    termgrid.WithBackend(backend.NewNullBackend()),
//	    termgrid.WithClock(mockClock))
type Option func(*hostOptions)

// hostOptions holds optional configuration for Host creation.
type hostOptions struct {
	title   string
	window  Window
	backend backend.RenderBackend
	clock   Clock
}

// defaultOptions returns the default host options.
func defaultOptions() hostOptions {
	return hostOptions{
		title: "termgrid",
		clock: systemClock{},
	}
}

// WithTitle sets the window title.
func WithTitle(title string) Option {
	return func(o *hostOptions) {
		o.title = title
	}
}

// WithWindow supplies a window instead of opening one through the
// registered window factory. Use this to embed the host in an existing
// window or to run against a fake in tests.
func WithWindow(w Window) Option {
	return func(o *hostOptions) {
		o.window = w
	}
}

// WithBackend supplies a render backend instead of selecting the best
// registered one.
func WithBackend(b backend.RenderBackend) Option {
	return func(o *hostOptions) {
		o.backend = b
	}
}

// WithClock supplies the clock the frame loop reads. Tests use a
// MockClock to drive FPS and frame-time windows deterministically.
func WithClock(c Clock) Option {
	return func(o *hostOptions) {
		o.clock = c
	}
}
