package termgrid

import (
	"errors"
	"fmt"
	"time"

	"github.com/gogpu/gputypes"
)

// clearColor is the fixed framebuffer clear, the classic teal behind
// every console.
var clearColor = gputypes.Color{R: 0.2, G: 0.3, B: 0.3, A: 1.0}

// Run drives the frame loop until the window closes, calling the app
// once per frame. Each frame, in order: timing advances, platform
// events drain (resizes hitting the viewport immediately), the app
// ticks, every dirty console rebuilds, the framebuffer clears, and
// consoles draw in registration order with fonts and shaders resolved
// per draw. Presentation happens when the frame hands back to the
// window.
//
// A misconfigured or failing console is skipped, not fatal: its error
// joins the frame error, which is logged and remembered. Run returns
// the window error if the loop itself failed, otherwise the last
// frame error, otherwise nil.
func (h *Host) Run(app App) error {
	if h.state != StateInitializing {
		return ErrHostClosed
	}
	if app == nil {
		return fmt.Errorf("termgrid: nil app")
	}

	h.state = StateRunning
	h.start = h.clock.Now()
	h.frames = 0
	h.prevSeconds = 0
	h.prevMillis = 0
	Logger().Info("frame loop starting")

	var frameErr error
	frame := h.frameFunc(app)
	runErr := h.window.Run(func() error {
		err := frame()
		if err != nil {
			frameErr = err
		}
		return err
	})

	h.Close()

	if runErr != nil {
		return fmt.Errorf("termgrid: window loop: %w", runErr)
	}
	return frameErr
}

// Close releases the host's GPU resources and ends its lifecycle. Run
// calls it when the loop exits; call it directly only for hosts that
// never run.
func (h *Host) Close() {
	h.state = StateClosing
	if h.closed {
		return
	}
	h.closed = true

	for i := len(h.shaders) - 1; i >= 0; i-- {
		h.shaders[i].Destroy()
	}
	for i := len(h.fonts) - 1; i >= 0; i-- {
		h.fonts[i].Destroy()
	}
	h.shaders = nil
	h.fonts = nil
	h.backend.Close()
	Logger().Info("host closed")
}

// frameFunc returns the per-frame body Run hands to the window.
func (h *Host) frameFunc(app App) func() error {
	return func() error {
		// Timing first: count the frame, then update the
		// whole-second FPS window and the whole-millisecond frame
		// time sample.
		now := h.clock.Now()
		elapsed := now.Sub(h.start)
		h.frames++

		if secs := int64(elapsed / time.Second); secs > h.prevSeconds {
			h.fps = float64(h.frames) / float64(secs-h.prevSeconds)
			h.frames = 0
			h.prevSeconds = secs
		}
		if ms := int64(elapsed / time.Millisecond); ms > h.prevMillis {
			h.frameTimeMS = float64(ms - h.prevMillis)
			h.prevMillis = ms
		}

		// Drain all pending events. Resizes reach the backend now,
		// before the tick, so drawing this frame uses the new
		// viewport; every event is still delivered to the tick.
		h.events = h.events[:0]
		for _, ev := range h.window.PollEvents() {
			if r, ok := ev.(ResizeEvent); ok {
				h.width, h.height = r.Width, r.Height
				h.backend.Resize(r.Width, r.Height)
				Logger().Debug("viewport resized", "width", r.Width, "height", r.Height)
			}
			h.events = append(h.events, ev)
		}

		app.Tick(h)

		// Every dirty console rebuilds before any console draws, so
		// one frame never mixes fresh and stale geometry.
		var errs []error
		failed := make([]bool, len(h.consoles))
		for i := range h.consoles {
			surf := h.consoles[i].Surface
			if !surf.IsDirty() {
				continue
			}
			if err := surf.Rebuild(); err != nil {
				failed[i] = true
				errs = append(errs, fmt.Errorf("console %d rebuild: %w", i, err))
			}
		}

		frame, err := h.backend.BeginFrame(h.window.Target(), clearColor)
		if err != nil {
			errs = append(errs, fmt.Errorf("begin frame: %w", err))
			return h.finishFrame(errs)
		}

		for i := range h.consoles {
			if failed[i] {
				continue
			}
			dc := h.consoles[i]
			tex, err := h.fontAt(dc.FontIndex)
			if err != nil {
				errs = append(errs, fmt.Errorf("console %d: %w", i, err))
				continue
			}
			prog, err := h.shaderAt(dc.ShaderIndex)
			if err != nil {
				errs = append(errs, fmt.Errorf("console %d: %w", i, err))
				continue
			}
			if err := dc.Surface.Draw(frame, tex, prog); err != nil {
				errs = append(errs, fmt.Errorf("console %d draw: %w", i, err))
			}
		}

		// Submit; the window presents and polls when this returns.
		if err := h.backend.EndFrame(frame); err != nil {
			errs = append(errs, fmt.Errorf("end frame: %w", err))
		}
		return h.finishFrame(errs)
	}
}

// finishFrame joins per-console errors into the frame result.
func (h *Host) finishFrame(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	err := errors.Join(errs...)
	Logger().Warn("frame completed with errors", "error", err)
	return err
}
