package wgpu

import (
	"fmt"
	"image"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/termgrid/backend"
)

// copyPitchAlignment is the required row alignment for texture-to-buffer
// copies.
const copyPitchAlignment = 256

// ReadPixels copies the offscreen render target back to the CPU and
// returns it as an RGBA image. It is only available when the backend
// renders offscreen; frames presented to a platform surface cannot be
// read back.
func (b *Backend) ReadPixels() (*image.RGBA, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.initialized {
		return nil, backend.ErrNotInitialized
	}
	if b.offscreenTex == nil {
		return nil, fmt.Errorf("wgpu: no offscreen target to read")
	}

	width, height := b.width, b.height
	bytesPerRow := width * 4
	alignedBytesPerRow := (bytesPerRow + copyPitchAlignment - 1) &^ (copyPitchAlignment - 1)
	bufferSize := uint64(alignedBytesPerRow * height)

	staging, err := b.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "readback_staging",
		Size:  bufferSize,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create staging buffer: %w", err)
	}
	defer b.device.DestroyBuffer(staging)

	encoder, err := b.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "readback_encoder",
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("readback"); err != nil {
		return nil, fmt.Errorf("wgpu: begin encoding: %w", err)
	}

	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: b.offscreenTex,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageRenderAttachment,
			NewUsage: gputypes.TextureUsageCopySrc,
		},
	}})

	encoder.CopyTextureToBuffer(b.offscreenTex, staging, []hal.BufferTextureCopy{{
		BufferLayout: hal.ImageDataLayout{
			Offset:       0,
			BytesPerRow:  uint32(alignedBytesPerRow),
			RowsPerImage: uint32(height),
		},
		TextureBase: hal.ImageCopyTexture{
			Texture:  b.offscreenTex,
			MipLevel: 0,
		},
		Size: hal.Extent3D{
			Width:              uint32(width),
			Height:             uint32(height),
			DepthOrArrayLayers: 1,
		},
	}})

	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: b.offscreenTex,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageCopySrc,
			NewUsage: gputypes.TextureUsageRenderAttachment,
		},
	}})

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return nil, fmt.Errorf("wgpu: end encoding: %w", err)
	}
	defer b.device.FreeCommandBuffer(cmdBuf)

	fence, err := b.device.CreateFence()
	if err != nil {
		return nil, fmt.Errorf("wgpu: create fence: %w", err)
	}
	defer b.device.DestroyFence(fence)

	if err := b.queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return nil, fmt.Errorf("wgpu: submit: %w", err)
	}
	fenceOK, err := b.device.Wait(fence, 1, 5*time.Second)
	if err != nil || !fenceOK {
		return nil, fmt.Errorf("wgpu: wait for GPU: ok=%v err=%w", fenceOK, err)
	}

	raw := make([]byte, bufferSize)
	if err := b.queue.ReadBuffer(staging, 0, raw); err != nil {
		return nil, fmt.Errorf("wgpu: read staging buffer: %w", err)
	}

	// Strip the row padding and convert BGRA to RGBA.
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		src := raw[y*alignedBytesPerRow : y*alignedBytesPerRow+bytesPerRow]
		dst := img.Pix[y*img.Stride : y*img.Stride+bytesPerRow]
		convertBGRAToRGBA(src, dst)
	}
	return img, nil
}

// convertBGRAToRGBA swaps the red and blue channels of one pixel row.
func convertBGRAToRGBA(src, dst []byte) {
	for i := 0; i+3 < len(src); i += 4 {
		dst[i+0] = src[i+2]
		dst[i+1] = src[i+1]
		dst[i+2] = src[i+0]
		dst[i+3] = src[i+3]
	}
}
