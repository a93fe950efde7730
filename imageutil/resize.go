package imageutil

import (
	"image"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
)

// Interpolation specifies the interpolation method for resizing.
type Interpolation int

const (
	// InterpolationArea uses Catmull-Rom for high-quality downscaling.
	InterpolationArea Interpolation = iota

	// InterpolationLinear uses bilinear interpolation.
	InterpolationLinear

	// InterpolationNearest uses nearest-neighbor interpolation.
	// Keeps glyph pixels sharp when enlarging previews.
	InterpolationNearest
)

// Resize resizes an RGBA image to the specified dimensions using the
// given interpolation method.
func Resize(img *RGBAImage, width, height int, interp Interpolation) *RGBAImage {
	dst := NewRGBAImage(width, height)
	dstRect := image.Rect(0, 0, width, height)

	var scaler draw.Scaler
	switch interp {
	case InterpolationLinear:
		scaler = draw.BiLinear
	case InterpolationNearest:
		scaler = draw.NearestNeighbor
	default:
		scaler = draw.CatmullRom
	}

	scaler.Scale(dst.RGBA, dstRect, img.RGBA, img.Bounds(), draw.Src, nil)
	return dst
}

// Fit scales img to exactly width x height. With crop set the aspect ratio
// is preserved and the centered overflow is cut away, otherwise the image
// is stretched.
func Fit(img image.Image, width, height int, crop bool) *RGBAImage {
	var fitted image.Image
	if crop {
		fitted = imaging.Fill(img, width, height, imaging.Center, imaging.Lanczos)
	} else {
		fitted = imaging.Resize(img, width, height, imaging.Lanczos)
	}
	return RGBAImageFromImage(fitted)
}
