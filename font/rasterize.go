package font

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	gtfont "github.com/go-text/typesetting/font"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// ErrCellSize is returned when a rasterization cell dimension is not
// positive.
var ErrCellSize = errors.New("font: cell dimensions must be positive")

// Rasterize renders a TrueType font into a glyph atlas. Each of the
// 256 code page 437 glyphs is drawn centered in a cellWidth x
// cellHeight cell, white on black, so the result is interchangeable
// with a loaded bitmap sheet. Glyphs the typeface does not cover are
// left blank.
func Rasterize(ttf []byte, cellWidth, cellHeight int) (*Atlas, error) {
	if cellWidth <= 0 || cellHeight <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrCellSize, cellWidth, cellHeight)
	}

	// Parse twice: go-text validates the font and answers coverage
	// queries, x/image rasterizes the outlines.
	gtFace, err := gtfont.ParseTTF(bytes.NewReader(ttf))
	if err != nil {
		return nil, fmt.Errorf("font: parse ttf: %w", err)
	}
	otf, err := opentype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("font: parse ttf: %w", err)
	}

	face, metrics, err := fitFace(otf, cellHeight)
	if err != nil {
		return nil, err
	}
	defer face.Close()

	// Baseline placed so ascent plus descent sits centered in the cell.
	pad := (fixed.I(cellHeight) - metrics.Ascent - metrics.Descent) / 2
	if pad < 0 {
		pad = 0
	}
	baseline := pad + metrics.Ascent

	img := image.NewRGBA(image.Rect(0, 0, cellWidth*GridSize, cellHeight*GridSize))
	black := image.NewUniform(color.Black)
	draw.Draw(img, img.Bounds(), black, image.Point{}, draw.Src)

	// Glyphs render into a scratch cell first so wide outlines clip at
	// the cell edge instead of bleeding into neighbors.
	cell := image.NewRGBA(image.Rect(0, 0, cellWidth, cellHeight))
	drawer := font.Drawer{Dst: cell, Src: image.White, Face: face}

	for g := 0; g < GridSize*GridSize; g++ {
		r := ToRune(uint8(g))
		if _, ok := gtFace.NominalGlyph(r); !ok {
			continue
		}
		advance, ok := face.GlyphAdvance(r)
		if !ok {
			continue
		}

		draw.Draw(cell, cell.Bounds(), black, image.Point{}, draw.Src)
		x := (fixed.I(cellWidth) - advance) / 2
		if x < 0 {
			x = 0
		}
		drawer.Dot = fixed.Point26_6{X: x, Y: baseline}
		drawer.DrawString(string(r))

		col := g % GridSize
		row := g / GridSize
		dst := image.Rect(col*cellWidth, row*cellHeight,
			(col+1)*cellWidth, (row+1)*cellHeight)
		draw.Draw(img, dst, cell, image.Point{}, draw.Src)
	}

	return NewAtlas(img)
}

// fitFace creates a face sized to the cell height, shrinking once if
// the font's vertical extent overflows the cell.
func fitFace(otf *opentype.Font, cellHeight int) (font.Face, font.Metrics, error) {
	newFace := func(size float64) (font.Face, error) {
		return opentype.NewFace(otf, &opentype.FaceOptions{
			Size:    size,
			DPI:     72,
			Hinting: font.HintingFull,
		})
	}

	size := float64(cellHeight)
	face, err := newFace(size)
	if err != nil {
		return nil, font.Metrics{}, fmt.Errorf("font: create face: %w", err)
	}

	metrics := face.Metrics()
	if total := metrics.Ascent + metrics.Descent; total > fixed.I(cellHeight) {
		_ = face.Close()
		size = size * float64(fixed.I(cellHeight)) / float64(total)
		face, err = newFace(size)
		if err != nil {
			return nil, font.Metrics{}, fmt.Errorf("font: create face: %w", err)
		}
		metrics = face.Metrics()
	}
	return face, metrics, nil
}
