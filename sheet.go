package hcscrgen

import (
	"github.com/wbrown/hcscrgen/imageutil"
)

// sheetBackground fills the separators of reference sheets.
var sheetBackground = imageutil.RGB{R: 0x80, G: 0x80, B: 0x80}

// ReferenceLayout is the layout of sheets written by BuildReferenceSheet:
// 16 glyphs per row, codes left to right, one pixel of border and spacing.
func ReferenceLayout(glyphWidth, glyphHeight int) Layout {
	return Layout{
		Order:             ColumnInLowNibble,
		GlyphWidth:        glyphWidth,
		GlyphHeight:       glyphHeight,
		OffsetLeft:        1,
		OffsetTop:         1,
		SpacingHorizontal: 1,
		SpacingVertical:   1,
	}
}

// BuildReferenceSheet draws charset as a 16x16 grid on a gray background.
// LoadCharset with ReferenceLayout reads it back.
func BuildReferenceSheet(charset Charset) *imageutil.RGBAImage {
	width, height := charset.GlyphSize()
	layout := ReferenceLayout(width, height)
	sheet := imageutil.NewRGBAImage(1+(width+1)*16, 1+(height+1)*16)
	sheet.Fill(sheetBackground)
	for code, glyph := range charset {
		if code >= CharsetSize {
			break
		}
		r := layout.GlyphRect(code)
		glyph.DrawTo(sheet, r.Min.X, r.Min.Y)
	}
	return sheet
}
