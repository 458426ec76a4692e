// Package backend provides a pluggable console rendering abstraction.
//
// The backend package lets the termgrid host run against multiple
// rendering implementations: the GPU backend in backend/wgpu, or the
// CPU-only null backend used as a fallback and as a test double.
//
// # Backend Registration
//
// Backends are registered via init() functions and selected at runtime.
// The null backend is automatically registered on import; the wgpu
// backend registers itself when its package is imported:
//
//	import _ "github.com/gogpu/termgrid/backend/wgpu"
//
// # Backend Selection
//
// Use Default() to get the best available backend, or Get() to request
// a specific backend by name:
//
//	// Get the default (best available) backend
//	b := backend.Default()
//
//	// Or request a specific backend
//	b := backend.Get("null")
//
// # Frame Recording
//
// A frame is opened with the clear color and the platform surface,
// consoles record their draws on it, and EndFrame submits the batch:
//
//	frame, err := b.BeginFrame(backend.Target{}, clear)
//	if err != nil {
//		log.Fatal(err)
//	}
//	_ = frame.DrawGrid(mesh, font, prog)
//	if err := b.EndFrame(frame); err != nil {
//		log.Fatal(err)
//	}
//
// # Available Backends
//
// - "wgpu": GPU rendering via gogpu/wgpu (import backend/wgpu)
// - "null": CPU-only draw recording (always available)
package backend
