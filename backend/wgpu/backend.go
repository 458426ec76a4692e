package wgpu

import (
	"fmt"
	"image"
	"sync"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/termgrid"
	"github.com/gogpu/termgrid/backend"
)

// Backend renders console grids through gogpu/wgpu.
//
// With no surface attached, frames render into an offscreen texture
// sized by Resize; ReadPixels retrieves the result. With a surface view
// in the frame target, the render pass writes directly to the window.
type Backend struct {
	mu sync.Mutex

	instance hal.Instance
	device   hal.Device
	queue    hal.Queue

	// Offscreen render target, created lazily for surfaceless frames.
	offscreenTex  hal.Texture
	offscreenView hal.TextureView

	width  int
	height int

	initialized    bool
	externalDevice bool // true when using shared device (don't destroy on Close)
}

var _ backend.RenderBackend = (*Backend)(nil)
var _ backend.DeviceProviderAware = (*Backend)(nil)

// init registers the wgpu backend on package import.
func init() {
	backend.Register(backend.BackendWGPU, func() backend.RenderBackend {
		return New()
	})
}

// New creates an uninitialized wgpu backend.
func New() *Backend {
	return &Backend{}
}

// Name returns the backend identifier.
func (b *Backend) Name() string {
	return backend.BackendWGPU
}

// Init acquires a GPU device unless one was already shared via
// SetDeviceProvider.
func (b *Backend) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.initialized {
		return nil
	}
	if b.device == nil {
		if err := b.acquireDevice(); err != nil {
			return err
		}
	}
	b.initialized = true
	return nil
}

// Close releases all backend resources.
func (b *Backend) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.destroyOffscreen()
	if !b.externalDevice {
		if b.device != nil {
			b.device.Destroy()
			b.device = nil
		}
		if b.instance != nil {
			b.instance.Destroy()
			b.instance = nil
		}
	} else {
		// Shared resources are owned by the provider.
		b.device = nil
		b.instance = nil
	}
	b.queue = nil
	b.initialized = false
}

// Resize records the framebuffer size and invalidates the offscreen
// target so the next surfaceless frame recreates it.
func (b *Backend) Resize(width, height int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if width == b.width && height == b.height {
		return
	}
	b.width, b.height = width, height
	b.destroyOffscreen()
}

// UploadFont uploads a glyph atlas image to the GPU.
func (b *Backend) UploadFont(img *image.RGBA) (backend.FontTexture, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.initialized {
		return nil, backend.ErrNotInitialized
	}
	return newFontTexture(b.device, b.queue, img)
}

// CompileProgram compiles a console shader program.
func (b *Backend) CompileProgram(src backend.ShaderSource) (backend.Program, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.initialized {
		return nil, backend.ErrNotInitialized
	}
	return newProgram(b.device, src)
}

// BeginFrame starts recording a frame cleared to the given color.
func (b *Backend) BeginFrame(target backend.Target, clear gputypes.Color) (backend.Frame, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.initialized {
		return nil, backend.ErrNotInitialized
	}
	if target.Width > 0 && target.Height > 0 && (target.Width != b.width || target.Height != b.height) {
		b.width, b.height = target.Width, target.Height
		b.destroyOffscreen()
	}
	return &Frame{backend: b, target: target, clear: clear}, nil
}

// EndFrame encodes and submits every draw recorded on the frame.
func (b *Backend) EndFrame(f backend.Frame) error {
	wf, ok := f.(*Frame)
	if !ok {
		return fmt.Errorf("%w: frame %T", backend.ErrInvalidHandle, f)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.initialized {
		return backend.ErrNotInitialized
	}
	if wf.ended {
		return backend.ErrFrameClosed
	}
	wf.ended = true
	return b.encodeSubmit(wf)
}

// ensureOffscreen creates the offscreen color target at the current
// backend dimensions if it does not exist yet.
func (b *Backend) ensureOffscreen() (hal.TextureView, error) {
	if b.offscreenView != nil {
		return b.offscreenView, nil
	}
	if b.width <= 0 || b.height <= 0 {
		return nil, fmt.Errorf("wgpu: offscreen target needs Resize, have %dx%d", b.width, b.height)
	}

	tex, err := b.device.CreateTexture(&hal.TextureDescriptor{
		Label: "console_offscreen",
		Size: hal.Extent3D{
			Width:              uint32(b.width),
			Height:             uint32(b.height),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatBGRA8Unorm,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc,
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create offscreen texture: %w", err)
	}
	view, err := b.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label: "console_offscreen_view",
	})
	if err != nil {
		b.device.DestroyTexture(tex)
		return nil, fmt.Errorf("wgpu: create offscreen view: %w", err)
	}
	b.offscreenTex = tex
	b.offscreenView = view

	termgrid.Logger().Debug("wgpu: offscreen target created", "width", b.width, "height", b.height)
	return view, nil
}

// destroyOffscreen releases the offscreen target in reverse creation order.
func (b *Backend) destroyOffscreen() {
	if b.device == nil {
		return
	}
	if b.offscreenView != nil {
		b.device.DestroyTextureView(b.offscreenView)
		b.offscreenView = nil
	}
	if b.offscreenTex != nil {
		b.device.DestroyTexture(b.offscreenTex)
		b.offscreenTex = nil
	}
}
