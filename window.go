package termgrid

import (
	"sync"

	"github.com/gogpu/termgrid/backend"
)

// Window is the platform provider the host renders through: it owns
// the native window and GPU surface, delivers input, and drives the
// frame loop at the display refresh rate.
//
// The window package provides the real implementation; tests supply
// fakes.
type Window interface {
	// Run drives the frame callback once per display refresh until
	// the window closes. A frame error does not stop the loop; the
	// host handles frame errors itself.
	Run(frame func() error) error

	// PollEvents drains the events queued since the last call.
	PollEvents() []Event

	// FramebufferSize returns the current framebuffer size in pixels.
	FramebufferSize() (width, height int)

	// Target returns the render target for the current frame. The
	// surface view is only valid inside the frame callback; windows
	// without a GPU surface return a target with a nil view.
	Target() backend.Target

	// Device returns the window's GPU context provider for device
	// sharing with the render backend, or nil if the window has none.
	Device() any

	// RequestClose asks the window to close after the current frame.
	RequestClose()
}

// WindowConfig is what a window factory needs to open a window.
type WindowConfig struct {
	Title  string
	Width  int
	Height int
}

// WindowFactory opens a platform window.
type WindowFactory func(cfg WindowConfig) (Window, error)

var (
	windowMu      sync.RWMutex
	windowFactory WindowFactory
)

// RegisterWindowFactory registers the platform window provider used by
// New when no WithWindow option is given. Only one factory is
// registered; subsequent calls replace the previous one.
//
// Typical usage via blank import of the window package:
//
//	func init() {
//	    termgrid.RegisterWindowFactory(openWindow)
//	}
func RegisterWindowFactory(f WindowFactory) {
	windowMu.Lock()
	windowFactory = f
	windowMu.Unlock()
}

// registeredWindowFactory returns the current factory, or nil.
func registeredWindowFactory() WindowFactory {
	windowMu.RLock()
	defer windowMu.RUnlock()
	return windowFactory
}
