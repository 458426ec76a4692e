package font

import (
	"errors"
	"fmt"
	"image"

	xdraw "golang.org/x/image/draw"
)

// GridSize is the number of glyph cells per atlas row and column.
// Atlases hold GridSize*GridSize = 256 glyphs in code page 437 order.
const GridSize = 16

// Errors for the font package.
var (
	// ErrNilImage is returned when an atlas is built from a nil image.
	ErrNilImage = errors.New("font: nil image")

	// ErrSheetSize is returned when a sheet's dimensions are not an
	// exact multiple of the 16x16 glyph grid.
	ErrSheetSize = errors.New("font: sheet dimensions must be a multiple of 16")

	// ErrScaleFactor is returned when an atlas scale factor is not a
	// positive integer.
	ErrScaleFactor = errors.New("font: scale factor must be positive")
)

// Atlas is a glyph atlas: a 16x16 grid of equally sized glyph cells in
// code page 437 order, backed by an opaque RGBA image with white glyph
// shapes on black.
type Atlas struct {
	img        *image.RGBA
	cellWidth  int
	cellHeight int
}

// NewAtlas wraps an RGBA image as a glyph atlas. The image dimensions
// must divide evenly into the 16x16 grid.
func NewAtlas(img *image.RGBA) (*Atlas, error) {
	if img == nil {
		return nil, ErrNilImage
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 || w%GridSize != 0 || h%GridSize != 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrSheetSize, w, h)
	}
	return &Atlas{
		img:        img,
		cellWidth:  w / GridSize,
		cellHeight: h / GridSize,
	}, nil
}

// Image returns the backing atlas image.
func (a *Atlas) Image() *image.RGBA {
	return a.img
}

// CellSize returns the pixel dimensions of one glyph cell.
func (a *Atlas) CellSize() (width, height int) {
	return a.cellWidth, a.cellHeight
}

// Scale returns a new atlas enlarged by an integer factor. Scaling is
// nearest-neighbor so pixel fonts stay crisp. A factor of 1 still
// copies the image.
func (a *Atlas) Scale(factor int) (*Atlas, error) {
	if factor <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrScaleFactor, factor)
	}
	src := a.img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, src.Dx()*factor, src.Dy()*factor))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), a.img, src, xdraw.Src, nil)
	return NewAtlas(dst)
}

// GlyphUV returns the texture coordinates of a glyph's cell. The
// coordinates are fractions of the atlas with v growing downward:
// (u0,v0) is the cell's top-left corner, (u1,v1) its bottom-right.
func (a *Atlas) GlyphUV(glyph uint8) (u0, v0, u1, v1 float32) {
	col := int(glyph) % GridSize
	row := int(glyph) / GridSize
	u0 = float32(col) / GridSize
	v0 = float32(row) / GridSize
	u1 = float32(col+1) / GridSize
	v1 = float32(row+1) / GridSize
	return u0, v0, u1, v1
}
