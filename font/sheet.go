package font

import (
	"fmt"
	"image"
	"image/draw"
	"io"
	"os"

	// Registers the decoder for the standard sheet format.
	_ "image/png"
)

// LoadSheet reads a bitmap font sheet from a file and wraps it as an
// atlas. The sheet must be a 16x16 grid of glyph cells in code page
// 437 order with white glyphs on a black background.
func LoadSheet(path string) (*Atlas, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("font: open sheet: %w", err)
	}
	defer f.Close()

	a, err := DecodeSheet(f)
	if err != nil {
		return nil, fmt.Errorf("font: sheet %s: %w", path, err)
	}
	return a, nil
}

// DecodeSheet decodes a bitmap font sheet from a reader. PNG is
// supported out of the box; other formats work if their image decoder
// is registered.
func DecodeSheet(r io.Reader) (*Atlas, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("font: decode sheet: %w", err)
	}

	// Normalize to RGBA with a zero origin so texture upload can use
	// the pixel buffer directly.
	b := src.Bounds()
	img := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(img, img.Bounds(), src, b.Min, draw.Src)

	return NewAtlas(img)
}
