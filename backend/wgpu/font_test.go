package wgpu

import (
	"image"
	"image/color"
	"testing"
)

func TestUploadFont(t *testing.T) {
	b := newSharedBackend(t)

	tex, err := b.UploadFont(image.NewRGBA(image.Rect(0, 0, 128, 256)))
	if err != nil {
		t.Fatalf("UploadFont() error = %v", err)
	}
	if w, h := tex.Size(); w != 128 || h != 256 {
		t.Errorf("Size() = %dx%d, want 128x256", w, h)
	}

	tex.Destroy()
	tex.Destroy() // idempotent
}

func TestUploadFontEmptyImage(t *testing.T) {
	b := newSharedBackend(t)

	if _, err := b.UploadFont(image.NewRGBA(image.Rect(0, 0, 0, 0))); err == nil {
		t.Error("expected error for empty atlas")
	}
}

func TestTightPixelsPacked(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	img.Pix[0] = 0xAB

	got := tightPixels(img)
	if len(got) != 16*16*4 {
		t.Fatalf("len = %d, want %d", len(got), 16*16*4)
	}
	// A packed image is passed through without copying.
	if &got[0] != &img.Pix[0] {
		t.Error("packed pixels were copied")
	}
}

func TestTightPixelsPadded(t *testing.T) {
	base := image.NewRGBA(image.Rect(0, 0, 32, 32))
	base.SetRGBA(8, 8, color.RGBA{R: 1, G: 2, B: 3, A: 4})
	base.SetRGBA(9, 8, color.RGBA{R: 5, G: 6, B: 7, A: 8})
	sub := base.SubImage(image.Rect(8, 8, 24, 24)).(*image.RGBA)

	got := tightPixels(sub)
	if len(got) != 16*16*4 {
		t.Fatalf("len = %d, want %d", len(got), 16*16*4)
	}
	if got[0] != 1 || got[1] != 2 || got[2] != 3 || got[3] != 4 {
		t.Errorf("first pixel = %v, want [1 2 3 4]", got[:4])
	}
	if got[4] != 5 {
		t.Errorf("second pixel R = %d, want 5", got[4])
	}
}
