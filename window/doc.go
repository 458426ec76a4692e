// Package window provides the platform window for termgrid hosts,
// built on gogpu application windows.
//
// Importing the package registers its window factory with the root
// package, so hosts open a real window by default:
//
//	import (
//	    "github.com/gogpu/termgrid"
//	    _ "github.com/gogpu/termgrid/backend/wgpu"
//	    _ "github.com/gogpu/termgrid/window"
//	)
//
//	host, err := termgrid.New(640, 400, termgrid.WithTitle("demo"))
//
// The window owns the GPU surface and shares its device with the
// render backend, so console draws go straight to the swapchain with
// no copies. Key presses and close requests are bridged into termgrid
// events; framebuffer resizes are synthesized by comparing surface
// dimensions between frames.
package window
