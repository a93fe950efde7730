package hcscrgen

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestDefaultRegistryIdentifiers(t *testing.T) {
	t.Parallel()

	want := []string{"c64", "kc87", "sharpmz", "z1013"}
	if got := DefaultRegistry().Identifiers(); !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestLookupUnknownProfile(t *testing.T) {
	t.Parallel()

	_, err := DefaultRegistry().Lookup("doesnotexist")
	var unknown *UnknownProfileError
	if !errors.As(err, &unknown) {
		t.Fatalf("Expected *UnknownProfileError, got %v", err)
	}
	if unknown.Identifier != "doesnotexist" {
		t.Errorf("Expected identifier 'doesnotexist', got '%s'", unknown.Identifier)
	}
	if !strings.Contains(err.Error(), "c64, kc87, sharpmz, z1013") {
		t.Errorf("Expected error to list all profiles, got '%s'", err)
	}
}

func TestRegisterDuplicate(t *testing.T) {
	t.Parallel()

	r := DefaultRegistry()
	if err := r.Register(C64Profile); err == nil {
		t.Error("Expected error registering c64 twice")
	}
	if err := r.Register(&MachineProfile{Identifier: "broken"}); err == nil {
		t.Error("Expected error registering an invalid profile")
	}
}

func TestProfileMappings(t *testing.T) {
	t.Parallel()

	if got := C64Profile.ColorRAM(GlyphIndex{Code: 0x41}); got != 0x01 {
		t.Errorf("Expected c64 color 0x01, got %#02x", got)
	}
	if got := KC87Profile.ColorRAM(GlyphIndex{Code: 0x41}); got != 0x70 {
		t.Errorf("Expected kc87 color 0x70, got %#02x", got)
	}
	if got := SharpMZProfile.ColorRAM(GlyphIndex{Charset: 0, Code: 5}); got != 0x07 {
		t.Errorf("Expected sharpmz color 0x07, got %#02x", got)
	}
	if got := SharpMZProfile.ColorRAM(GlyphIndex{Charset: 1, Code: 5}); got != 0x87 {
		t.Errorf("Expected sharpmz color 0x87, got %#02x", got)
	}
	if Z1013Profile.ColorRAM != nil {
		t.Error("Expected z1013 without color RAM")
	}
	if got := Z1013Profile.CharacterRAM(GlyphIndex{Code: 0xfe}); got != 0xfe {
		t.Errorf("Expected code 0xfe, got %#02x", got)
	}
	if got := CharsetOrMapping(0x00, 0x80)(GlyphIndex{Charset: 1, Code: 0x11}); got != 0x91 {
		t.Errorf("Expected 0x91, got %#02x", got)
	}
}

const testProfiles = `
[[profile]]
identifier = "cpc"
description = "test machine"
lines = 2
columns = 3
charsets = ["cpc/a.png", "cpc/b.rom"]
character_ram = [0x00, 0x80]
color_ram = [0x0f]
character_ram_address = 0xc000

[profile.layout]
order = "lr"
glyph_width = 8
glyph_height = 8
offset_left = 1

[[profile]]
identifier = "tiny"
lines = 1
columns = 1
charsets = ["tiny.png"]

[profile.layout]
glyph_width = 4
glyph_height = 4
`

func TestParseProfiles(t *testing.T) {
	t.Parallel()

	profiles, err := ParseProfiles(testProfiles)
	if err != nil {
		t.Fatalf("Failed to parse profiles: %v", err)
	}
	if len(profiles) != 2 {
		t.Fatalf("Expected 2 profiles, got %d", len(profiles))
	}

	cpc := profiles[0]
	if cpc.Identifier != "cpc" || cpc.Lines != 2 || cpc.Columns != 3 {
		t.Errorf("Unexpected cpc profile %+v", cpc)
	}
	if cpc.Layout.Order != ColumnInLowNibble || cpc.Layout.OffsetLeft != 1 {
		t.Errorf("Unexpected cpc layout %+v", cpc.Layout)
	}
	if got := cpc.CharacterRAM(GlyphIndex{Charset: 1, Code: 3}); got != 0x83 {
		t.Errorf("Expected character byte 0x83, got %#02x", got)
	}
	if got := cpc.ColorRAM(GlyphIndex{Charset: 1, Code: 3}); got != 0x0f {
		t.Errorf("Expected color byte 0x0f, got %#02x", got)
	}
	if cpc.CharacterRAMAddress != 0xc000 {
		t.Errorf("Expected address 0xc000, got %#04x", cpc.CharacterRAMAddress)
	}

	tiny := profiles[1]
	if tiny.Layout.Order != RowInLowNibble {
		t.Errorf("Expected default row order, got %v", tiny.Layout.Order)
	}
	if tiny.ColorRAM != nil {
		t.Error("Expected no color RAM for tiny")
	}
	if got := tiny.CharacterRAM(GlyphIndex{Code: 9}); got != 9 {
		t.Errorf("Expected plain code 9, got %d", got)
	}
}

func TestParseProfilesErrors(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"unknown key": `
[[profile]]
identifier = "x"
lines = 1
columns = 1
charsets = ["x.png"]
colour_ram = [1]
[profile.layout]
glyph_width = 8
glyph_height = 8
`,
		"table size": `
[[profile]]
identifier = "x"
lines = 1
columns = 1
charsets = ["a.png", "b.png", "c.png"]
color_ram = [1, 2]
[profile.layout]
glyph_width = 8
glyph_height = 8
`,
		"byte range": `
[[profile]]
identifier = "x"
lines = 1
columns = 1
charsets = ["a.png"]
color_ram = [256]
[profile.layout]
glyph_width = 8
glyph_height = 8
`,
		"no glyph size": `
[[profile]]
identifier = "x"
lines = 1
columns = 1
charsets = ["a.png"]
`,
		"negative offset": `
[[profile]]
identifier = "x"
lines = 1
columns = 1
charsets = ["a.png"]
[profile.layout]
glyph_width = 8
glyph_height = 8
offset_left = -100
`,
		"negative spacing": `
[[profile]]
identifier = "x"
lines = 1
columns = 1
charsets = ["a.png"]
[profile.layout]
glyph_width = 8
glyph_height = 8
spacing_vertical = -2
`,
		"syntax": `[[profile]`,
	}
	for name, data := range tests {
		if _, err := ParseProfiles(data); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestLoadProfilesRegister(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "profiles.toml")
	if err := os.WriteFile(path, []byte(testProfiles), 0644); err != nil {
		t.Fatal(err)
	}
	profiles, err := LoadProfiles(path)
	if err != nil {
		t.Fatalf("Failed to load profiles: %v", err)
	}
	r := DefaultRegistry()
	for _, p := range profiles {
		if err := r.Register(p); err != nil {
			t.Fatalf("Failed to register %s: %v", p.Identifier, err)
		}
	}
	if _, err := r.Lookup("cpc"); err != nil {
		t.Errorf("Expected cpc to be registered, got %v", err)
	}
	if n := len(r.Identifiers()); n != 6 {
		t.Errorf("Expected 6 profiles, got %d", n)
	}

	if _, err := LoadProfiles(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("Expected error for missing file")
	}
}
