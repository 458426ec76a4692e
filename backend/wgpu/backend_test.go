package wgpu

import (
	"errors"
	"image"
	"strings"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"

	"github.com/gogpu/termgrid/backend"
)

// createNoopDevice creates a noop device and queue for testing.
// Returns the device, queue, and a cleanup function.
func createNoopDevice(t *testing.T) (hal.Device, hal.Queue, func()) {
	t.Helper()
	api := noop.API{}
	instance, err := api.CreateInstance(nil)
	if err != nil {
		t.Fatalf("CreateInstance failed: %v", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	openDev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		t.Fatalf("Open failed: %v", err)
	}
	cleanup := func() {
		openDev.Device.Destroy()
		instance.Destroy()
	}
	return openDev.Device, openDev.Queue, cleanup
}

// noopProvider exposes a HAL device the way a gogpu window does.
type noopProvider struct {
	device hal.Device
	queue  hal.Queue
}

func (p *noopProvider) HalDevice() any { return p.device }
func (p *noopProvider) HalQueue() any  { return p.queue }

// newSharedBackend returns a backend bound to a noop device.
func newSharedBackend(t *testing.T) *Backend {
	t.Helper()
	device, queue, cleanup := createNoopDevice(t)
	b := New()
	if err := b.SetDeviceProvider(&noopProvider{device: device, queue: queue}); err != nil {
		cleanup()
		t.Fatalf("SetDeviceProvider() error = %v", err)
	}
	t.Cleanup(func() {
		b.Close()
		cleanup()
	})
	return b
}

// compileConsole compiles the built-in console program, skipping the
// test when the WGSL compiler lacks a needed feature.
func compileConsole(t *testing.T, b *Backend) backend.Program {
	t.Helper()
	prog, err := b.CompileProgram(backend.ConsoleShader())
	if err != nil {
		msg := err.Error()
		if strings.Contains(msg, "not yet implemented") || strings.Contains(msg, "not supported") {
			t.Skipf("wgsl compiler limitation: %v", err)
		}
		t.Fatalf("CompileProgram() error = %v", err)
	}
	return prog
}

func TestBackendName(t *testing.T) {
	if got := New().Name(); got != backend.BackendWGPU {
		t.Errorf("Name() = %q, want %q", got, backend.BackendWGPU)
	}
}

func TestBackendRequiresInit(t *testing.T) {
	b := New()

	if _, err := b.UploadFont(image.NewRGBA(image.Rect(0, 0, 16, 16))); !errors.Is(err, backend.ErrNotInitialized) {
		t.Errorf("UploadFont() error = %v, want ErrNotInitialized", err)
	}
	if _, err := b.CompileProgram(backend.ConsoleShader()); !errors.Is(err, backend.ErrNotInitialized) {
		t.Errorf("CompileProgram() error = %v, want ErrNotInitialized", err)
	}
	if _, err := b.BeginFrame(backend.Target{}, gputypes.Color{}); !errors.Is(err, backend.ErrNotInitialized) {
		t.Errorf("BeginFrame() error = %v, want ErrNotInitialized", err)
	}
	if err := b.EndFrame(&Frame{}); !errors.Is(err, backend.ErrNotInitialized) {
		t.Errorf("EndFrame() error = %v, want ErrNotInitialized", err)
	}
}

func TestSetDeviceProviderRejectsBadProvider(t *testing.T) {
	if err := New().SetDeviceProvider(struct{}{}); err == nil {
		t.Error("expected error for provider without HAL accessors")
	}
	if err := New().SetDeviceProvider(&badProvider{}); err == nil {
		t.Error("expected error for provider with wrong HAL types")
	}
}

// badProvider has the right method set but wrong returned types.
type badProvider struct{}

func (*badProvider) HalDevice() any { return 42 }
func (*badProvider) HalQueue() any  { return 42 }

func TestSetDeviceProviderSharesDevice(t *testing.T) {
	b := newSharedBackend(t)

	if !b.initialized {
		t.Error("backend not initialized after SetDeviceProvider")
	}
	if !b.externalDevice {
		t.Error("backend does not mark the device as shared")
	}

	// Init after sharing is a no-op.
	if err := b.Init(); err != nil {
		t.Errorf("Init() after sharing error = %v", err)
	}

	if _, err := b.UploadFont(image.NewRGBA(image.Rect(0, 0, 16, 16))); err != nil {
		t.Errorf("UploadFont() on shared device error = %v", err)
	}
}

func TestBackendCloseKeepsSharedDevice(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	b := New()
	if err := b.SetDeviceProvider(&noopProvider{device: device, queue: queue}); err != nil {
		t.Fatalf("SetDeviceProvider() error = %v", err)
	}

	b.Close()
	if b.initialized {
		t.Error("backend still initialized after Close")
	}

	// The provider owns the device; it must survive the backend Close.
	fence, err := device.CreateFence()
	if err != nil {
		t.Fatalf("shared device unusable after Close: %v", err)
	}
	device.DestroyFence(fence)

	// Double close is safe.
	b.Close()
}

func TestCompileProgramEmptySource(t *testing.T) {
	b := newSharedBackend(t)

	if _, err := b.CompileProgram(backend.ShaderSource{Label: "empty"}); !errors.Is(err, backend.ErrEmptyShader) {
		t.Errorf("CompileProgram(empty) error = %v, want ErrEmptyShader", err)
	}
}

func TestConsoleProgram(t *testing.T) {
	b := newSharedBackend(t)

	prog := compileConsole(t, b)
	if prog.Label() != "console_with_bg" {
		t.Errorf("Label() = %q, want %q", prog.Label(), "console_with_bg")
	}

	prog.Destroy()
	prog.Destroy() // idempotent
}

func TestConsoleShaderCompilesToSPIRV(t *testing.T) {
	src := backend.ConsoleShader()
	spirv, err := compileToSPIRV(src.WGSL)
	if err != nil {
		msg := err.Error()
		if strings.Contains(msg, "not yet implemented") || strings.Contains(msg, "not supported") {
			t.Skipf("wgsl compiler limitation: %v", err)
		}
		t.Fatalf("compileToSPIRV() error = %v", err)
	}
	if len(spirv) == 0 {
		t.Fatal("SPIR-V output is empty")
	}
	// SPIR-V modules open with the magic word.
	if spirv[0] != 0x07230203 {
		t.Errorf("invalid SPIR-V magic: 0x%08X, want 0x07230203", spirv[0])
	}
}

func TestResizeStoresDimensions(t *testing.T) {
	b := New()
	b.Resize(800, 600)
	if b.width != 800 || b.height != 600 {
		t.Errorf("size = %dx%d, want 800x600", b.width, b.height)
	}
}

func TestBeginFrameAdoptsTargetSize(t *testing.T) {
	b := newSharedBackend(t)
	b.Resize(100, 100)

	if _, err := b.BeginFrame(backend.Target{Width: 640, Height: 400}, gputypes.Color{}); err != nil {
		t.Fatalf("BeginFrame() error = %v", err)
	}
	if b.width != 640 || b.height != 400 {
		t.Errorf("size after BeginFrame = %dx%d, want 640x400", b.width, b.height)
	}
}

// stubFont and stubProgram stand in for handles from another backend.
type stubFont struct{}

func (stubFont) Size() (width, height int) { return 0, 0 }
func (stubFont) Destroy()                  {}

type stubProgram struct{}

func (stubProgram) Label() string { return "stub" }
func (stubProgram) Destroy()      {}

type stubFrame struct{}

func (stubFrame) DrawGrid(*backend.GridMesh, backend.FontTexture, backend.Program) error {
	return nil
}

func TestDrawGridValidatesHandles(t *testing.T) {
	b := newSharedBackend(t)
	b.Resize(64, 64)

	f, err := b.BeginFrame(backend.Target{}, gputypes.Color{})
	if err != nil {
		t.Fatalf("BeginFrame() error = %v", err)
	}
	tex, err := b.UploadFont(image.NewRGBA(image.Rect(0, 0, 16, 16)))
	if err != nil {
		t.Fatalf("UploadFont() error = %v", err)
	}

	var mesh backend.GridMesh
	mesh.AppendQuad(backend.Vertex{}, backend.Vertex{}, backend.Vertex{}, backend.Vertex{})

	if err := f.DrawGrid(&mesh, stubFont{}, stubProgram{}); !errors.Is(err, backend.ErrInvalidHandle) {
		t.Errorf("DrawGrid(stub font) error = %v, want ErrInvalidHandle", err)
	}
	if err := f.DrawGrid(&mesh, tex, stubProgram{}); !errors.Is(err, backend.ErrInvalidHandle) {
		t.Errorf("DrawGrid(stub program) error = %v, want ErrInvalidHandle", err)
	}
}

func TestDrawGridChunksLargeMeshes(t *testing.T) {
	b := newSharedBackend(t)
	b.Resize(64, 64)

	tex, err := b.UploadFont(image.NewRGBA(image.Rect(0, 0, 16, 16)))
	if err != nil {
		t.Fatalf("UploadFont() error = %v", err)
	}
	prog := compileConsole(t, b)

	f, err := b.BeginFrame(backend.Target{}, gputypes.Color{})
	if err != nil {
		t.Fatalf("BeginFrame() error = %v", err)
	}
	wf := f.(*Frame)

	// An empty mesh records nothing.
	if err := f.DrawGrid(&backend.GridMesh{}, tex, prog); err != nil {
		t.Fatalf("DrawGrid(empty) error = %v", err)
	}
	if len(wf.draws) != 0 {
		t.Fatalf("empty mesh recorded %d draws, want 0", len(wf.draws))
	}

	// One quad beyond the batch limit splits into two draws.
	var mesh backend.GridMesh
	for i := 0; i < maxQuadsPerDraw+1; i++ {
		mesh.AppendQuad(backend.Vertex{}, backend.Vertex{}, backend.Vertex{}, backend.Vertex{})
	}
	if err := f.DrawGrid(&mesh, tex, prog); err != nil {
		t.Fatalf("DrawGrid() error = %v", err)
	}

	if len(wf.draws) != 2 {
		t.Fatalf("recorded %d draws, want 2", len(wf.draws))
	}
	if wf.draws[0].indexCount != maxQuadsPerDraw*6 {
		t.Errorf("first batch indexCount = %d, want %d", wf.draws[0].indexCount, maxQuadsPerDraw*6)
	}
	if wf.draws[1].indexCount != 6 {
		t.Errorf("second batch indexCount = %d, want 6", wf.draws[1].indexCount)
	}
	if got := len(wf.draws[0].vertexData); got != maxQuadsPerDraw*4*gridVertexStride {
		t.Errorf("first batch vertex bytes = %d, want %d", got, maxQuadsPerDraw*4*gridVertexStride)
	}
	if got := len(wf.draws[1].vertexData); got != 4*gridVertexStride {
		t.Errorf("second batch vertex bytes = %d, want %d", got, 4*gridVertexStride)
	}
}

func TestFrameRejectsDrawsAfterEnd(t *testing.T) {
	b := newSharedBackend(t)

	f := &Frame{backend: b, ended: true}
	if err := f.DrawGrid(&backend.GridMesh{}, &fontTexture{}, &program{}); !errors.Is(err, backend.ErrFrameClosed) {
		t.Errorf("DrawGrid() after end error = %v, want ErrFrameClosed", err)
	}
	if err := b.EndFrame(f); !errors.Is(err, backend.ErrFrameClosed) {
		t.Errorf("EndFrame() after end error = %v, want ErrFrameClosed", err)
	}
}

func TestEndFrameForeignFrame(t *testing.T) {
	if err := New().EndFrame(stubFrame{}); !errors.Is(err, backend.ErrInvalidHandle) {
		t.Errorf("EndFrame(foreign) error = %v, want ErrInvalidHandle", err)
	}
}
