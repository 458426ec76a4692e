package backend

import (
	"fmt"
	"image"

	"github.com/gogpu/gputypes"
)

// Backend name constants.
const (
	// BackendWGPU is the name of the GPU backend (gogpu/wgpu).
	BackendWGPU = "wgpu"
	// BackendNull is the name of the CPU-only recording backend.
	BackendNull = "null"
)

// NullBackend records uploads and draws without touching a GPU.
// It is the fallback backend and the test double for host-level code:
// frames remember every draw in submission order so callers can assert
// ordering and handle resolution.
type NullBackend struct {
	initialized bool
	width       int
	height      int
	fonts       int
	programs    int
	frames      int
	lastClear   gputypes.Color
	lastFrame   *NullFrame
}

// init registers the null backend on package import.
func init() {
	Register(BackendNull, func() RenderBackend {
		return &NullBackend{}
	})
}

// NewNullBackend creates a new recording backend.
func NewNullBackend() *NullBackend {
	return &NullBackend{}
}

// Name returns the backend identifier.
func (b *NullBackend) Name() string {
	return BackendNull
}

// Init initializes the backend.
func (b *NullBackend) Init() error {
	b.initialized = true
	return nil
}

// Close releases all backend resources.
func (b *NullBackend) Close() {
	b.initialized = false
}

// Resize records the current framebuffer size.
func (b *NullBackend) Resize(width, height int) {
	b.width, b.height = width, height
}

// Size returns the last recorded framebuffer size.
func (b *NullBackend) Size() (width, height int) {
	return b.width, b.height
}

// UploadFont records the atlas dimensions and returns a handle.
func (b *NullBackend) UploadFont(img *image.RGBA) (FontTexture, error) {
	if !b.initialized {
		return nil, ErrNotInitialized
	}
	bounds := img.Bounds()
	b.fonts++
	return &NullFont{width: bounds.Dx(), height: bounds.Dy()}, nil
}

// CompileProgram validates the source and returns a handle.
func (b *NullBackend) CompileProgram(src ShaderSource) (Program, error) {
	if !b.initialized {
		return nil, ErrNotInitialized
	}
	if err := src.Validate(); err != nil {
		return nil, err
	}
	b.programs++
	return &NullProgram{label: src.Label}, nil
}

// BeginFrame starts a recording frame.
func (b *NullBackend) BeginFrame(target Target, clear gputypes.Color) (Frame, error) {
	if !b.initialized {
		return nil, ErrNotInitialized
	}
	b.lastClear = clear
	return &NullFrame{target: target}, nil
}

// EndFrame finishes a recording frame.
func (b *NullBackend) EndFrame(f Frame) error {
	nf, ok := f.(*NullFrame)
	if !ok {
		return fmt.Errorf("%w: frame %T", ErrInvalidHandle, f)
	}
	if nf.ended {
		return ErrFrameClosed
	}
	nf.ended = true
	b.frames++
	b.lastFrame = nf
	return nil
}

// Frames returns the number of frames submitted since Init.
func (b *NullBackend) Frames() int {
	return b.frames
}

// LastClear returns the clear color of the most recent frame.
func (b *NullBackend) LastClear() gputypes.Color {
	return b.lastClear
}

// LastFrame returns the most recently ended frame, or nil before the
// first EndFrame.
func (b *NullBackend) LastFrame() *NullFrame {
	return b.lastFrame
}

// NullFont is a FontTexture that only remembers its dimensions.
type NullFont struct {
	width, height int
	destroyed     bool
}

// Size returns the atlas dimensions in pixels.
func (f *NullFont) Size() (width, height int) {
	return f.width, f.height
}

// Destroy marks the handle destroyed.
func (f *NullFont) Destroy() {
	f.destroyed = true
}

// Destroyed reports whether Destroy has been called.
func (f *NullFont) Destroyed() bool {
	return f.destroyed
}

// NullProgram is a Program that only remembers its label.
type NullProgram struct {
	label     string
	destroyed bool
}

// Label returns the program's debug label.
func (p *NullProgram) Label() string {
	return p.label
}

// Destroy marks the handle destroyed.
func (p *NullProgram) Destroy() {
	p.destroyed = true
}

// Destroyed reports whether Destroy has been called.
func (p *NullProgram) Destroyed() bool {
	return p.destroyed
}

// DrawRecord is one recorded DrawGrid call.
type DrawRecord struct {
	Mesh *GridMesh
	Font FontTexture
	Prog Program
}

// NullFrame records draws in submission order.
type NullFrame struct {
	target Target
	draws  []DrawRecord
	ended  bool
}

// DrawGrid records one console draw.
func (f *NullFrame) DrawGrid(mesh *GridMesh, font FontTexture, prog Program) error {
	if f.ended {
		return ErrFrameClosed
	}
	if _, ok := font.(*NullFont); !ok {
		return fmt.Errorf("%w: font %T", ErrInvalidHandle, font)
	}
	if _, ok := prog.(*NullProgram); !ok {
		return fmt.Errorf("%w: program %T", ErrInvalidHandle, prog)
	}
	f.draws = append(f.draws, DrawRecord{Mesh: mesh, Font: font, Prog: prog})
	return nil
}

// Draws returns the recorded draws in submission order.
func (f *NullFrame) Draws() []DrawRecord {
	return f.draws
}

// Target returns the frame's render target.
func (f *NullFrame) Target() Target {
	return f.target
}
