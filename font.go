package hcscrgen

import (
	"fmt"
	"image"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"

	"github.com/wbrown/hcscrgen/imageutil"
)

// fontAlphaThreshold keeps anti-aliased edge pixels with at least 25%
// coverage.
const fontAlphaThreshold = 64

// RenderFontCharset rasterises the code points 0..255 of a TrueType font
// into a white on black charset, code c showing rune(c). Code points the
// font has no glyph for stay blank.
func RenderFontCharset(ttf []byte, width, height int) (Charset, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid glyph size %dx%d", width, height)
	}
	f, err := freetype.ParseFont(ttf)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}

	face := truetype.NewFace(f, &truetype.Options{
		Size:    float64(height),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	defer face.Close()
	metrics := face.Metrics()
	// Center the line box vertically. Metrics are 26.6 fixed point.
	ascent := metrics.Ascent.Round()
	descent := metrics.Descent.Round()
	baseline := (height + ascent - descent) / 2

	charset := make(Charset, CharsetSize)
	for code := range charset {
		r := rune(code)
		if f.Index(r) == 0 {
			charset[code] = NewPixelBlock(width, height)
			continue
		}
		charset[code] = renderGlyph(f, r, width, height, baseline)
	}
	return charset, nil
}

func renderGlyph(f *truetype.Font, r rune, width, height, baseline int) PixelBlock {
	img := image.NewAlpha(image.Rect(0, 0, width, height))

	ctx := freetype.NewContext()
	ctx.SetDPI(72)
	ctx.SetFont(f)
	ctx.SetFontSize(float64(height))
	ctx.SetClip(img.Bounds())
	ctx.SetDst(img)
	ctx.SetSrc(image.White)
	ctx.SetHinting(font.HintingFull)
	// DrawString only fails without a font.
	_, _ = ctx.DrawString(string(r), freetype.Pt(0, baseline))

	b := NewPixelBlock(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if img.AlphaAt(x, y).A > fontAlphaThreshold {
				b.set(x, y, imageutil.White)
			}
		}
	}
	return b
}
