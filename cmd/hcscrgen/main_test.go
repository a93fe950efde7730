package main

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/wbrown/hcscrgen"
	"github.com/wbrown/hcscrgen/imageutil"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatal(err)
	}
}

func TestExpandInputs(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.png", "a.gif", "c.jpg", "sub/d.png"} {
		touch(t, filepath.Join(dir, name))
	}

	got, err := expandInputs([]string{
		filepath.Join(dir, "*.{png,gif}"),
		filepath.Join(dir, "b.png"),
		"literal.png",
	})
	if err != nil {
		t.Fatalf("expandInputs failed: %v", err)
	}
	want := []string{
		filepath.Join(dir, "a.gif"),
		filepath.Join(dir, "b.png"),
		"literal.png",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}

	got, err = expandInputs([]string{filepath.Join(dir, "**.png")})
	if err != nil {
		t.Fatalf("expandInputs failed: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("Expected ** to match in subdirectories, got %v", got)
	}
}

func TestGlobRoot(t *testing.T) {
	tests := map[string]string{
		"*.png":           ".",
		"shots/*.png":     "shots",
		"/data/x/?.png":   filepath.FromSlash("/data/x"),
		"/*.png":          "/",
		"a/b/{c,d}/e.png": filepath.FromSlash("a/b"),
	}
	for pattern, want := range tests {
		if got := globRoot(pattern); got != want {
			t.Errorf("globRoot(%q): expected %q, got %q", pattern, want, got)
		}
	}
}

func TestWriteOutputs(t *testing.T) {
	input := filepath.Join(t.TempDir(), "shot.png")
	result := &hcscrgen.ConversionResult{
		Profile:      hcscrgen.C64Profile,
		Preview:      imageutil.NewRGBAImage(320, 200),
		CharacterRAM: []byte{0x20, 0x21},
		ColorRAM:     []byte{0x01, 0x01},
		CharsetData:  []byte{0xff},
	}

	written, err := writeOutputs(input, result, false)
	if err != nil {
		t.Fatalf("writeOutputs failed: %v", err)
	}
	want := []string{
		input + ".preview.png",
		input + ".chars.bin",
		input + ".color.bin",
		input + ".charset.bin",
	}
	if !reflect.DeepEqual(written, want) {
		t.Errorf("Expected %v, got %v", want, written)
	}
	chars, err := os.ReadFile(input + ".chars.bin")
	if err != nil || !bytes.Equal(chars, result.CharacterRAM) {
		t.Errorf("Unexpected character RAM file % x (%v)", chars, err)
	}
	if _, err := imageutil.LoadImage(input + ".preview.png"); err != nil {
		t.Errorf("Expected readable preview, got %v", err)
	}

	if _, err := writeOutputs(input, result, true); err != nil {
		t.Fatalf("writeOutputs with prg failed: %v", err)
	}
	prg, err := os.ReadFile(input + ".color.prg")
	if err != nil || !bytes.Equal(prg, []byte{0x00, 0xd8, 0x01, 0x01}) {
		t.Errorf("Unexpected color RAM program % x (%v)", prg, err)
	}
}

func TestLoadRegistry(t *testing.T) {
	r, err := loadRegistry("")
	if err != nil || len(r.Identifiers()) != 4 {
		t.Fatalf("Expected built-in profiles, got %v (%v)", r, err)
	}

	path := filepath.Join(t.TempDir(), "profiles.toml")
	data := `
[[profile]]
identifier = "c64"
lines = 25
columns = 40
charsets = ["x.png"]
[profile.layout]
glyph_width = 8
glyph_height = 8
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := loadRegistry(path); err == nil {
		t.Error("Expected error redefining c64")
	}
}
