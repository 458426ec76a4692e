package backend

import (
	"errors"
	"image"

	"github.com/gogpu/gputypes"
)

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when a requested backend is not available.
	ErrBackendNotAvailable = errors.New("backend: not available")

	// ErrNotInitialized is returned when operations are called before Init.
	ErrNotInitialized = errors.New("backend: not initialized")

	// ErrInvalidHandle is returned when a font or program handle belongs
	// to a different backend than the one drawing with it.
	ErrInvalidHandle = errors.New("backend: handle from different backend")

	// ErrFrameClosed is returned when draws are recorded on a frame that
	// has already been ended.
	ErrFrameClosed = errors.New("backend: frame already ended")
)

// RenderBackend is the interface for console rendering backends.
// It abstracts the GPU implementation behind font textures, shader
// programs, and per-frame draw recording, allowing the host to run
// against real hardware or a test double.
//
// Backends must be registered via Register() and are selected via
// Get() or Default().
type RenderBackend interface {
	// Name returns the backend identifier (e.g., "wgpu", "null").
	Name() string

	// Init initializes the backend.
	// This should be called before any rendering operations.
	Init() error

	// Close releases all backend resources.
	// The backend should not be used after Close is called.
	Close()

	// Resize informs the backend of the current framebuffer size in
	// pixels. Called immediately when the platform reports a resize.
	Resize(width, height int)

	// UploadFont uploads a glyph atlas image to the GPU once and
	// returns a handle for draw-time binding.
	UploadFont(img *image.RGBA) (FontTexture, error)

	// CompileProgram compiles a shader program from source and returns
	// a handle for draw-time binding.
	CompileProgram(src ShaderSource) (Program, error)

	// BeginFrame starts a new frame cleared to the given color.
	// The target carries the platform surface for the frame; a zero
	// Target renders offscreen at the last Resize dimensions.
	BeginFrame(target Target, clear gputypes.Color) (Frame, error)

	// EndFrame submits every draw recorded on the frame.
	EndFrame(f Frame) error
}

// DeviceProviderAware is an optional interface for backends that can share
// a GPU device with an external provider (e.g., a gogpu window).
// When SetDeviceProvider is called, the backend reuses the provided GPU
// device instead of creating its own.
type DeviceProviderAware interface {
	SetDeviceProvider(provider any) error
}

// Target identifies the render destination for one frame.
// View is the platform's surface view for the frame (backend-specific,
// nil for offscreen rendering) and Width/Height are its pixel dimensions.
type Target struct {
	View   any
	Width  int
	Height int
}

// Frame records console draws between BeginFrame and EndFrame.
// Draw order is submission order.
type Frame interface {
	// DrawGrid draws a console mesh with the given font and program.
	DrawGrid(mesh *GridMesh, font FontTexture, prog Program) error
}

// FontTexture is a GPU-resident glyph atlas.
type FontTexture interface {
	// Size returns the atlas dimensions in pixels.
	Size() (width, height int)

	// Destroy releases the GPU texture.
	Destroy()
}

// Program is a compiled shader program.
type Program interface {
	// Label returns the program's debug label.
	Label() string

	// Destroy releases the GPU pipeline.
	Destroy()
}
