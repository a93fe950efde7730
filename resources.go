package hcscrgen

import (
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/wbrown/hcscrgen/imageutil"
)

// CharsetLoader resolves the charset resource names of a profile against a
// file system. Names ending in .bin or .rom are raw character generator
// dumps, everything else is decoded as a glyph sheet image.
type CharsetLoader struct {
	FS fs.FS
}

// Load returns the charsets of p in declaration order.
func (l CharsetLoader) Load(p *MachineProfile) ([]Charset, error) {
	if l.FS == nil {
		return nil, fmt.Errorf("%w: no charset resources configured for profile %s",
			ErrCharsetDecode, p.Identifier)
	}
	charsets := make([]Charset, 0, len(p.Charsets))
	for _, name := range p.Charsets {
		c, err := l.loadOne(name, p.Layout)
		if err != nil {
			return nil, fmt.Errorf("profile %s: charset %s: %w", p.Identifier, name, err)
		}
		charsets = append(charsets, c)
	}
	return charsets, nil
}

func (l CharsetLoader) loadOne(name string, layout Layout) (Charset, error) {
	switch strings.ToLower(path.Ext(name)) {
	case ".bin", ".rom":
		data, err := fs.ReadFile(l.FS, name)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCharsetDecode, err)
		}
		return DecodeCharsetBitmap(data, layout.GlyphWidth, layout.GlyphHeight)
	default:
		sheet, err := imageutil.LoadImageFS(l.FS, name)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCharsetDecode, err)
		}
		return LoadCharset(sheet, layout)
	}
}
