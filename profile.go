package hcscrgen

import (
	"fmt"
)

// GlyphIndex identifies one glyph: the charset it belongs to (in profile
// declaration order) and its code within that charset.
type GlyphIndex struct {
	Charset int
	Code    uint8
}

// RAMMapping turns a matched glyph into the byte a machine stores for it.
type RAMMapping func(GlyphIndex) byte

// CodeMapping stores the glyph code unchanged.
func CodeMapping(g GlyphIndex) byte { return g.Code }

// ConstantMapping stores the same byte for every cell.
func ConstantMapping(v byte) RAMMapping {
	return func(GlyphIndex) byte { return v }
}

// CharsetTableMapping stores values[g.Charset] for every cell, which is
// how machines with several character generators select one per cell.
func CharsetTableMapping(values ...byte) RAMMapping {
	table := append([]byte(nil), values...)
	return func(g GlyphIndex) byte {
		if g.Charset >= len(table) {
			panic(fmt.Sprintf("hcscrgen: no RAM value for charset %d", g.Charset))
		}
		return table[g.Charset]
	}
}

// CharsetOrMapping stores the code with a per-charset bit mask or'ed in.
func CharsetOrMapping(masks ...byte) RAMMapping {
	table := append([]byte(nil), masks...)
	return func(g GlyphIndex) byte {
		if g.Charset >= len(table) {
			panic(fmt.Sprintf("hcscrgen: no RAM mask for charset %d", g.Charset))
		}
		return g.Code | table[g.Charset]
	}
}

// MachineProfile describes the text screen of one machine.
type MachineProfile struct {
	Identifier  string
	Description string

	Lines   int
	Columns int
	Layout  Layout

	// Charsets names the glyph sheet (or raw ROM) resources, in matching
	// priority order.
	Charsets []string

	CharacterRAM RAMMapping
	// ColorRAM is nil for machines without color RAM.
	ColorRAM RAMMapping

	// Base addresses, 0 when unknown. Used for PRG style output.
	CharacterRAMAddress uint16
	ColorRAMAddress     uint16
}

// ScreenWidth returns the screen width in pixels.
func (p *MachineProfile) ScreenWidth() int { return p.Columns * p.Layout.GlyphWidth }

// ScreenHeight returns the screen height in pixels.
func (p *MachineProfile) ScreenHeight() int { return p.Lines * p.Layout.GlyphHeight }

// Cells returns the number of character cells on screen.
func (p *MachineProfile) Cells() int { return p.Lines * p.Columns }

// Validate checks that the profile is usable.
func (p *MachineProfile) Validate() error {
	switch {
	case p.Identifier == "":
		return fmt.Errorf("profile without identifier")
	case p.Lines <= 0 || p.Columns <= 0:
		return fmt.Errorf("profile %s: invalid screen %dx%d", p.Identifier, p.Columns, p.Lines)
	case len(p.Charsets) == 0:
		return fmt.Errorf("profile %s: no charsets", p.Identifier)
	case p.CharacterRAM == nil:
		return fmt.Errorf("profile %s: no character RAM mapping", p.Identifier)
	}
	if err := p.Layout.Validate(); err != nil {
		return fmt.Errorf("profile %s: %w", p.Identifier, err)
	}
	return nil
}

// C64Profile is the Commodore 64 text screen.
//
// https://www.c64-wiki.com/wiki/Color_RAM
var C64Profile = &MachineProfile{
	Identifier:  "c64",
	Description: "Commodore 64",
	Lines:       25,
	Columns:     40,
	Layout: Layout{
		Order:       RowInLowNibble,
		GlyphWidth:  8,
		GlyphHeight: 8,
	},
	Charsets:            []string{"c64/C64_Petscii_Charts.png"},
	CharacterRAM:        CodeMapping,
	ColorRAM:            ConstantMapping(0x01),
	CharacterRAMAddress: 0x0400,
	ColorRAMAddress:     0xd800,
}

// KC87Profile is the robotron KC 87 (Z 9001) text screen.
//
// https://hc-ddr.hucki.net/wiki/doku.php/z9001/versionen
var KC87Profile = &MachineProfile{
	Identifier:  "kc87",
	Description: "robotron KC 87",
	Lines:       24,
	Columns:     40,
	Layout: Layout{
		Order:             ColumnInLowNibble,
		GlyphWidth:        8,
		GlyphHeight:       8,
		OffsetLeft:        1,
		OffsetTop:         1,
		SpacingHorizontal: 1,
		SpacingVertical:   1,
	},
	Charsets:            []string{"kc87/charset_inverted.png"},
	CharacterRAM:        CodeMapping,
	ColorRAM:            ConstantMapping(0x70),
	CharacterRAMAddress: 0xec00,
	ColorRAMAddress:     0xe800,
}

// SharpMZProfile is the Sharp MZ-700 text screen. Its second character
// generator is selected per cell by bit 7 of the color RAM.
//
// https://original.sharpmz.org/mz-700/colorvram.htm
var SharpMZProfile = &MachineProfile{
	Identifier:  "sharpmz",
	Description: "Sharp MZ-700",
	Lines:       25,
	Columns:     40,
	Layout: Layout{
		Order:             RowInLowNibble,
		GlyphWidth:        8,
		GlyphHeight:       8,
		OffsetLeft:        2,
		OffsetTop:         2,
		SpacingHorizontal: 3,
		SpacingVertical:   3,
	},
	Charsets: []string{
		"sharpmz/charset.png",
		"sharpmz/charset_extended.png",
	},
	CharacterRAM:        CodeMapping,
	ColorRAM:            CharsetTableMapping(0x07, 0x87),
	CharacterRAMAddress: 0xd000,
	ColorRAMAddress:     0xd800,
}

// Z1013Profile is the robotron Z 1013 text screen, which has no color RAM.
//
// https://hc-ddr.hucki.net/wiki/doku.php/z1013/erweiterungen/zeichensatz
var Z1013Profile = &MachineProfile{
	Identifier:  "z1013",
	Description: "robotron Z 1013",
	Lines:       32,
	Columns:     32,
	Layout: Layout{
		Order:             ColumnInLowNibble,
		GlyphWidth:        8,
		GlyphHeight:       8,
		OffsetLeft:        1,
		OffsetTop:         1,
		SpacingHorizontal: 1,
		SpacingVertical:   1,
	},
	Charsets:            []string{"z1013/zg_1013_orig_inverted.png"},
	CharacterRAM:        CodeMapping,
	CharacterRAMAddress: 0xec00,
}
