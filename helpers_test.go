package hcscrgen

import (
	"bytes"
	"image/png"
	"testing"
	"testing/fstest"

	"github.com/wbrown/hcscrgen/imageutil"
)

// patternCharset returns a charset whose glyph c has the bits of c^xor in
// pixel row `row` and is black elsewhere. Every glyph is unique and code
// xor is the blank one.
func patternCharset(width, height, row int, xor uint8) Charset {
	charset := make(Charset, CharsetSize)
	for code := range charset {
		g := NewPixelBlock(width, height)
		bits := uint8(code) ^ xor
		for x := 0; x < width && x < 8; x++ {
			if bits&(1<<(7-x)) != 0 {
				g.set(x, row, imageutil.White)
			}
		}
		charset[code] = g
	}
	return charset
}

// drawSheet places charset on a gray sheet according to layout.
func drawSheet(charset Charset, layout Layout) *imageutil.RGBAImage {
	w, h := layout.SheetSize()
	sheet := imageutil.NewRGBAImage(w, h)
	sheet.Fill(sheetBackground)
	for code, g := range charset {
		r := layout.GlyphRect(code)
		g.DrawTo(sheet, r.Min.X, r.Min.Y)
	}
	return sheet
}

func encodePNG(t *testing.T, img *imageutil.RGBAImage) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("Failed to encode sheet: %v", err)
	}
	return buf.Bytes()
}

// charsetFS serves every charset of p as a PNG sheet. charsets must be in
// the order of p.Charsets.
func charsetFS(t *testing.T, p *MachineProfile, charsets ...Charset) fstest.MapFS {
	t.Helper()
	if len(charsets) != len(p.Charsets) {
		t.Fatalf("Expected %d charsets for %s, got %d", len(p.Charsets), p.Identifier, len(charsets))
	}
	fsys := fstest.MapFS{}
	for i, name := range p.Charsets {
		fsys[name] = &fstest.MapFile{Data: encodePNG(t, drawSheet(charsets[i], p.Layout))}
	}
	return fsys
}

// composeScreen draws the glyphs for codes onto a screen of p, cell by
// cell in row-major order.
func composeScreen(p *MachineProfile, charset Charset, codes []uint8) *imageutil.RGBAImage {
	img := imageutil.NewRGBAImage(p.ScreenWidth(), p.ScreenHeight())
	for i, code := range codes {
		line, column := i/p.Columns, i%p.Columns
		charset[code].DrawTo(img, column*p.Layout.GlyphWidth, line*p.Layout.GlyphHeight)
	}
	return img
}

func solidBlock(width, height int, c imageutil.RGB) PixelBlock {
	b := NewPixelBlock(width, height)
	for i := range b.pix {
		b.pix[i] = c
	}
	return b
}
