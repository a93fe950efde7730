package hcscrgen

import (
	"fmt"

	"github.com/wbrown/hcscrgen/imageutil"
)

// bitmapThreshold is the luminance a pixel must exceed to be set.
const bitmapThreshold = 0x80

// EncodeCharset serializes a charset the way character generator ROMs
// store it: glyphs one after another, one byte per glyph row, bit 7-x set
// when pixel x of that row has a luminance (R+G+B)/3 above 0x80. Glyphs
// wider than 8 pixels cannot be encoded.
func EncodeCharset(charset Charset) ([]byte, error) {
	width, height := charset.GlyphSize()
	if err := charset.validate(width, height); err != nil {
		return nil, err
	}
	if width > 8 {
		return nil, fmt.Errorf("glyphs are %d pixels wide, ROM bitmaps hold at most 8", width)
	}

	data := make([]byte, 0, CharsetSize*height)
	for _, glyph := range charset {
		for y := 0; y < height; y++ {
			var row byte
			for x := 0; x < width; x++ {
				if glyph.At(x, y).Luminance() > bitmapThreshold {
					row |= 1 << (7 - x)
				}
			}
			data = append(data, row)
		}
	}
	return data, nil
}

// DecodeCharsetBitmap is the inverse of EncodeCharset: set bits become
// white pixels, clear bits black ones.
func DecodeCharsetBitmap(data []byte, width, height int) (Charset, error) {
	if width <= 0 || width > 8 || height <= 0 {
		return nil, fmt.Errorf("%w: invalid ROM glyph size %dx%d", ErrCharsetDecode, width, height)
	}
	if len(data) < CharsetSize*height {
		return nil, fmt.Errorf("%w: ROM has %d bytes, need %d",
			ErrCharsetDecode, len(data), CharsetSize*height)
	}

	charset := make(Charset, CharsetSize)
	for code := range charset {
		glyph := NewPixelBlock(width, height)
		for y := 0; y < height; y++ {
			row := data[code*height+y]
			for x := 0; x < width; x++ {
				if row&(1<<(7-x)) != 0 {
					glyph.set(x, y, imageutil.White)
				}
			}
		}
		charset[code] = glyph
	}
	return charset, nil
}
