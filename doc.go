// Package termgrid provides a real-time rendering host for text-grid
// consoles in Go.
//
// # Overview
//
// termgrid owns a window, a GPU rendering context, and registries of
// fonts, shader programs, and display consoles. An application supplies
// console surfaces and a per-frame tick callback; the host runs the
// frame loop, rebuilds dirty console geometry, and draws every console
// in registration order until the window closes.
//
// # Quick Start
//
//	import (
//		"github.com/gogpu/termgrid"
//		"github.com/gogpu/termgrid/font"
//	)
//
//	host, err := termgrid.New(80, 50, termgrid.WithTitle("hello"))
//	if err != nil {
//		log.Fatal(err)
//	}
//	atlas, _ := font.LoadSheet("terminal8x8.png")
//	fontIdx, _ := host.RegisterFont(atlas)
//	con, _ := termgrid.NewSimpleConsole(80, 50)
//	host.RegisterConsole(con, fontIdx)
//
//	err = host.Run(termgrid.AppFunc(func(h *termgrid.Host) {
//		h.Cls()
//		h.Print(1, 1, "Hello termgrid")
//	}))
//
// # Architecture
//
// The library is organized into:
//   - Public API: Host, Console, SimpleConsole, events, cells and colors
//   - backend: the RenderBackend contract, backend registry, null backend
//   - backend/wgpu: GPU rendering via gogpu/wgpu
//   - font: glyph atlas construction (PNG sheets, TTF rasterization)
//   - window: platform window and event delivery via gogpu
//
// # Coordinate System
//
// Console cells use character coordinates with origin (0,0) at the
// top-left, x increasing right and y increasing down. Pixel coordinates
// follow the same orientation.
package termgrid

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
