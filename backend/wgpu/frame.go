package wgpu

import (
	"fmt"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/termgrid/backend"
)

// maxQuadsPerDraw bounds one draw call to the uint16 index space
// (4 vertices per quad, 65536 / 4). Larger meshes split into batches.
const maxQuadsPerDraw = 16384

// Frame accumulates console draws and submits them as one render pass.
type Frame struct {
	backend *Backend
	target  backend.Target
	clear   gputypes.Color
	draws   []gridDraw
	ended   bool
}

var _ backend.Frame = (*Frame)(nil)

// gridDraw is one recorded console draw with its serialized geometry.
type gridDraw struct {
	vertexData []byte
	indexData  []byte
	indexCount uint32
	font       *fontTexture
	prog       *program
}

// DrawGrid records one console draw. Geometry is serialized immediately;
// GPU buffers are created at submit time.
func (f *Frame) DrawGrid(mesh *backend.GridMesh, font backend.FontTexture, prog backend.Program) error {
	if f.ended {
		return backend.ErrFrameClosed
	}
	ft, ok := font.(*fontTexture)
	if !ok || ft == nil {
		return fmt.Errorf("%w: font %T", backend.ErrInvalidHandle, font)
	}
	pr, ok := prog.(*program)
	if !ok || pr == nil {
		return fmt.Errorf("%w: program %T", backend.ErrInvalidHandle, prog)
	}

	quads := mesh.QuadCount()
	for start := 0; start < quads; start += maxQuadsPerDraw {
		n := quads - start
		if n > maxQuadsPerDraw {
			n = maxQuadsPerDraw
		}
		batch := mesh.Vertices[start*4 : (start+n)*4]
		f.draws = append(f.draws, gridDraw{
			vertexData: buildGridVertexData(batch),
			indexData:  buildGridIndexData(n),
			indexCount: uint32(n * 6),
			font:       ft,
			prog:       pr,
		})
	}
	return nil
}

// drawResources holds the per-draw GPU resources of one frame.
type drawResources struct {
	vertBuf   hal.Buffer
	idxBuf    hal.Buffer
	bindGroup hal.BindGroup
}

// destroy releases one draw's resources.
func (r *drawResources) destroy(device hal.Device) {
	if r.bindGroup != nil {
		device.DestroyBindGroup(r.bindGroup)
	}
	if r.idxBuf != nil {
		device.DestroyBuffer(r.idxBuf)
	}
	if r.vertBuf != nil {
		device.DestroyBuffer(r.vertBuf)
	}
}

// encodeSubmit uploads buffers for every recorded draw, encodes the
// frame's single render pass, and submits with a bounded fence wait.
// Called with b.mu held.
func (b *Backend) encodeSubmit(f *Frame) error {
	// Resolve the render target: the platform surface when attached,
	// the offscreen texture otherwise.
	var targetView hal.TextureView
	if f.target.View != nil {
		view, ok := f.target.View.(hal.TextureView)
		if !ok {
			return fmt.Errorf("wgpu: surface view %T is not hal.TextureView", f.target.View)
		}
		targetView = view
	} else {
		view, err := b.ensureOffscreen()
		if err != nil {
			return err
		}
		targetView = view
	}

	// Per-draw GPU resources, created before encoding begins and
	// released after the fence wait.
	resources := make([]drawResources, 0, len(f.draws))
	defer func() {
		for i := range resources {
			resources[i].destroy(b.device)
		}
	}()

	for i, d := range f.draws {
		vertBuf, err := b.createAndUploadBuffer(
			fmt.Sprintf("console_verts_%d", i), d.vertexData,
			gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst)
		if err != nil {
			return err
		}
		resources = append(resources, drawResources{vertBuf: vertBuf})
		res := &resources[len(resources)-1]

		idxBuf, err := b.createAndUploadBuffer(
			fmt.Sprintf("console_indices_%d", i), d.indexData,
			gputypes.BufferUsageIndex|gputypes.BufferUsageCopyDst)
		if err != nil {
			return err
		}
		res.idxBuf = idxBuf

		bindGroup, err := b.device.CreateBindGroup(&hal.BindGroupDescriptor{
			Label:  fmt.Sprintf("console_bind_%d", i),
			Layout: d.prog.bindLayout,
			Entries: []gputypes.BindGroupEntry{
				{Binding: 0, Resource: gputypes.TextureViewBinding{
					TextureView: d.font.view.NativeHandle(),
				}},
				{Binding: 1, Resource: gputypes.SamplerBinding{
					Sampler: d.prog.sampler.NativeHandle(),
				}},
			},
		})
		if err != nil {
			return fmt.Errorf("wgpu: create bind group: %w", err)
		}
		res.bindGroup = bindGroup
	}

	encoder, err := b.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "console_frame_encoder",
	})
	if err != nil {
		return fmt.Errorf("wgpu: create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("console_frame"); err != nil {
		return fmt.Errorf("wgpu: begin encoding: %w", err)
	}

	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "console_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:       targetView,
			LoadOp:     gputypes.LoadOpClear,
			StoreOp:    gputypes.StoreOpStore,
			ClearValue: f.clear,
		}},
	})

	for i, d := range f.draws {
		rp.SetPipeline(d.prog.pipeline)
		rp.SetBindGroup(0, resources[i].bindGroup, nil)
		rp.SetVertexBuffer(0, resources[i].vertBuf, 0)
		rp.SetIndexBuffer(resources[i].idxBuf, gputypes.IndexFormatUint16, 0)
		rp.DrawIndexed(d.indexCount, 1, 0, 0, 0)
	}

	rp.End()

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("wgpu: end encoding: %w", err)
	}
	defer b.device.FreeCommandBuffer(cmdBuf)

	// Submit and wait so the surface is complete before presentation
	// and the per-frame buffers can be released.
	fence, err := b.device.CreateFence()
	if err != nil {
		return fmt.Errorf("wgpu: create fence: %w", err)
	}
	defer b.device.DestroyFence(fence)

	if err := b.queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return fmt.Errorf("wgpu: submit: %w", err)
	}
	fenceOK, err := b.device.Wait(fence, 1, 5*time.Second)
	if err != nil || !fenceOK {
		return fmt.Errorf("wgpu: wait for GPU: ok=%v err=%w", fenceOK, err)
	}

	return nil
}

// createAndUploadBuffer creates a GPU buffer and uploads data.
func (b *Backend) createAndUploadBuffer(label string, data []byte, usage gputypes.BufferUsage) (hal.Buffer, error) {
	buf, err := b.device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  uint64(len(data)),
		Usage: usage,
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create %s: %w", label, err)
	}
	b.queue.WriteBuffer(buf, 0, data)
	return buf, nil
}
