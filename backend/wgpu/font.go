package wgpu

import (
	"fmt"
	"image"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/termgrid/backend"
)

// fontTexture is a GPU-resident glyph atlas.
type fontTexture struct {
	device  hal.Device
	texture hal.Texture
	view    hal.TextureView
	width   int
	height  int
}

var _ backend.FontTexture = (*fontTexture)(nil)

// newFontTexture creates the atlas texture and uploads the image once.
func newFontTexture(device hal.Device, queue hal.Queue, img *image.RGBA) (*fontTexture, error) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("wgpu: empty font atlas %dx%d", w, h)
	}

	tex, err := device.CreateTexture(&hal.TextureDescriptor{
		Label: "font_atlas",
		Size: hal.Extent3D{
			Width:              uint32(w),
			Height:             uint32(h),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create font texture: %w", err)
	}

	view, err := device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         "font_atlas_view",
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		device.DestroyTexture(tex)
		return nil, fmt.Errorf("wgpu: create font texture view: %w", err)
	}

	queue.WriteTexture(
		&hal.ImageCopyTexture{
			Texture:  tex,
			MipLevel: 0,
		},
		tightPixels(img),
		&hal.ImageDataLayout{
			Offset:       0,
			BytesPerRow:  uint32(w) * 4,
			RowsPerImage: uint32(h),
		},
		&hal.Extent3D{Width: uint32(w), Height: uint32(h), DepthOrArrayLayers: 1},
	)

	return &fontTexture{
		device:  device,
		texture: tex,
		view:    view,
		width:   w,
		height:  h,
	}, nil
}

// Size returns the atlas dimensions in pixels.
func (f *fontTexture) Size() (width, height int) {
	return f.width, f.height
}

// Destroy releases the GPU texture in reverse creation order.
func (f *fontTexture) Destroy() {
	if f.device == nil {
		return
	}
	if f.view != nil {
		f.device.DestroyTextureView(f.view)
		f.view = nil
	}
	if f.texture != nil {
		f.device.DestroyTexture(f.texture)
		f.texture = nil
	}
}

// tightPixels returns the image pixels with rows packed at width*4
// bytes, copying only when the source stride carries padding.
func tightPixels(img *image.RGBA) []byte {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if img.Stride == w*4 && bounds.Min.X == 0 && bounds.Min.Y == 0 {
		return img.Pix
	}
	packed := make([]byte, w*h*4)
	for y := 0; y < h; y++ {
		srcOff := img.PixOffset(bounds.Min.X, bounds.Min.Y+y)
		copy(packed[y*w*4:(y+1)*w*4], img.Pix[srcOff:srcOff+w*4])
	}
	return packed
}
