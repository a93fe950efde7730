package hcscrgen

import (
	"fmt"
	"image"
	"io"

	"github.com/wbrown/hcscrgen/imageutil"
)

// CharsetSize is the number of glyphs in every charset.
const CharsetSize = 256

// Charset is an ordered set of glyphs indexed by code. All glyphs have the
// same dimensions.
type Charset []PixelBlock

// GlyphSize returns the dimensions shared by all glyphs.
func (c Charset) GlyphSize() (width, height int) {
	if len(c) == 0 {
		return 0, 0
	}
	return c[0].Width(), c[0].Height()
}

func (c Charset) validate(width, height int) error {
	if len(c) != CharsetSize {
		return fmt.Errorf("charset has %d glyphs, expected %d", len(c), CharsetSize)
	}
	for code, g := range c {
		if g.Width() != width || g.Height() != height {
			return fmt.Errorf("glyph %#02x is %dx%d, expected %dx%d",
				code, g.Width(), g.Height(), width, height)
		}
	}
	return nil
}

// NibbleOrder describes how a glyph sheet derives the row and column of a
// code from its 4-bit halves.
type NibbleOrder int

const (
	// RowInLowNibble lays glyphs out top to bottom first: the low nibble
	// selects the row, the high nibble the column.
	RowInLowNibble NibbleOrder = iota
	// ColumnInLowNibble lays glyphs out left to right first: the low
	// nibble selects the column, the high nibble the row.
	ColumnInLowNibble
)

func (o NibbleOrder) String() string {
	switch o {
	case RowInLowNibble:
		return "row"
	case ColumnInLowNibble:
		return "column"
	}
	return fmt.Sprintf("NibbleOrder(%d)", int(o))
}

// ParseNibbleOrder accepts "row"/"tb" and "column"/"lr".
func ParseNibbleOrder(s string) (NibbleOrder, error) {
	switch s {
	case "row", "tb":
		return RowInLowNibble, nil
	case "column", "lr":
		return ColumnInLowNibble, nil
	}
	return 0, fmt.Errorf("invalid nibble order %q, expected row (tb) or column (lr)", s)
}

// Layout describes where the 256 glyphs sit on a glyph sheet.
type Layout struct {
	Order             NibbleOrder
	GlyphWidth        int
	GlyphHeight       int
	OffsetLeft        int
	OffsetTop         int
	SpacingHorizontal int
	SpacingVertical   int
}

// GlyphRect returns the sheet region holding the glyph for code.
func (l Layout) GlyphRect(code int) image.Rectangle {
	hn, ln := code>>4, code&0x0f
	row, column := hn, ln
	if l.Order == RowInLowNibble {
		row, column = ln, hn
	}
	x := l.OffsetLeft + column*(l.GlyphWidth+l.SpacingHorizontal)
	y := l.OffsetTop + row*(l.GlyphHeight+l.SpacingVertical)
	return image.Rect(x, y, x+l.GlyphWidth, y+l.GlyphHeight)
}

// Validate rejects layouts whose glyph regions could fall outside a sheet.
func (l Layout) Validate() error {
	switch {
	case l.GlyphWidth <= 0 || l.GlyphHeight <= 0:
		return fmt.Errorf("invalid glyph size %dx%d", l.GlyphWidth, l.GlyphHeight)
	case l.OffsetLeft < 0 || l.OffsetTop < 0:
		return fmt.Errorf("negative sheet offset %d,%d", l.OffsetLeft, l.OffsetTop)
	case l.SpacingHorizontal < 0 || l.SpacingVertical < 0:
		return fmt.Errorf("negative glyph spacing %d,%d", l.SpacingHorizontal, l.SpacingVertical)
	case l.Order != RowInLowNibble && l.Order != ColumnInLowNibble:
		return fmt.Errorf("invalid nibble order %v", l.Order)
	}
	return nil
}

// SheetSize returns the smallest sheet that holds every glyph.
func (l Layout) SheetSize() (width, height int) {
	last := l.GlyphRect(CharsetSize - 1)
	return last.Max.X, last.Max.Y
}

// LoadCharset slices a glyph sheet into 256 glyphs.
func LoadCharset(sheet image.Image, layout Layout) (Charset, error) {
	if err := layout.Validate(); err != nil {
		return nil, err
	}
	img := imageutil.RGBAImageFromImage(sheet)
	minWidth, minHeight := layout.SheetSize()
	if img.Width() < minWidth || img.Height() < minHeight {
		return nil, &SheetSizeError{
			Width: img.Width(), Height: img.Height(),
			MinWidth: minWidth, MinHeight: minHeight,
		}
	}

	charset := make(Charset, CharsetSize)
	for code := range charset {
		r := layout.GlyphRect(code)
		charset[code] = CropPixelBlock(img, r.Min.X, r.Min.Y, r.Dx(), r.Dy())
	}
	return charset, nil
}

// DecodeCharset decodes a glyph sheet image and slices it.
func DecodeCharset(r io.Reader, layout Layout) (Charset, error) {
	sheet, err := imageutil.DecodeImage(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCharsetDecode, err)
	}
	return LoadCharset(sheet, layout)
}
