package hcscrgen

import (
	"fmt"

	"github.com/wbrown/hcscrgen/imageutil"
)

// PixelBlock is a small RGB raster holding one character cell: a glyph of
// a charset, a tile cut from an input image or a cluster centroid.
// Blocks are not modified once built.
type PixelBlock struct {
	width, height int
	pix           []imageutil.RGB
}

// NewPixelBlock returns a black block of the given size.
func NewPixelBlock(width, height int) PixelBlock {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("hcscrgen: invalid block size %dx%d", width, height))
	}
	return PixelBlock{
		width:  width,
		height: height,
		pix:    make([]imageutil.RGB, width*height),
	}
}

// CropPixelBlock copies the width x height region at (x, y) of img. The
// region must lie inside the image.
func CropPixelBlock(img *imageutil.RGBAImage, x, y, width, height int) PixelBlock {
	b := NewPixelBlock(width, height)
	for dy := 0; dy < height; dy++ {
		for dx := 0; dx < width; dx++ {
			b.pix[dy*width+dx] = img.GetRGB(x+dx, y+dy)
		}
	}
	return b
}

func (b PixelBlock) Width() int  { return b.width }
func (b PixelBlock) Height() int { return b.height }

// At returns the pixel at (x, y).
func (b PixelBlock) At(x, y int) imageutil.RGB {
	return b.pix[y*b.width+x]
}

func (b *PixelBlock) set(x, y int, c imageutil.RGB) {
	b.pix[y*b.width+x] = c
}

// Equal reports whether both blocks have the same size and pixels.
func (b PixelBlock) Equal(o PixelBlock) bool {
	if b.width != o.width || b.height != o.height {
		return false
	}
	for i := range b.pix {
		if b.pix[i] != o.pix[i] {
			return false
		}
	}
	return true
}

// DrawTo copies the block into dst with its top left corner at (x, y).
func (b PixelBlock) DrawTo(dst *imageutil.RGBAImage, x, y int) {
	for dy := 0; dy < b.height; dy++ {
		for dx := 0; dx < b.width; dx++ {
			dst.SetRGB(x+dx, y+dy, b.pix[dy*b.width+dx])
		}
	}
}

// Image returns the block as a standalone image.
func (b PixelBlock) Image() *imageutil.RGBAImage {
	img := imageutil.NewRGBAImage(b.width, b.height)
	b.DrawTo(img, 0, 0)
	return img
}

// Diff returns the mean per-pixel absolute channel difference of a and b:
// the sum of |Ra-Rb|+|Ga-Gb|+|Ba-Bb| over all pixels, divided by the pixel
// count and truncated. 0 means the blocks are identical. Blocks of
// different sizes cannot be compared and cause a panic.
func Diff(a, b PixelBlock) int {
	if a.width != b.width || a.height != b.height {
		panic(fmt.Sprintf("hcscrgen: diff of %dx%d and %dx%d blocks",
			a.width, a.height, b.width, b.height))
	}
	sum := 0
	for i, pa := range a.pix {
		pb := b.pix[i]
		sum += absDiff(pa.R, pb.R) + absDiff(pa.G, pb.G) + absDiff(pa.B, pb.B)
	}
	return sum / (a.width * a.height)
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}
