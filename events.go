package termgrid

import "github.com/gogpu/gpucontext"

// Event is a platform event delivered to the tick callback. The event
// set is closed: ResizeEvent, KeyEvent, CloseEvent.
type Event interface {
	event()
}

// ResizeEvent reports a framebuffer size change in pixels. The host
// applies the new viewport before the tick runs; the event is still
// delivered so applications can re-layout.
type ResizeEvent struct {
	Width  int
	Height int
}

func (ResizeEvent) event() {}

// KeyEvent reports a key press.
type KeyEvent struct {
	Key  gpucontext.Key
	Mods gpucontext.Modifiers
}

func (KeyEvent) event() {}

// CloseEvent reports that the window was asked to close. The loop ends
// after the current frame; the event lets applications save state.
type CloseEvent struct{}

func (CloseEvent) event() {}
