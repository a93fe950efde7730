package hcscrgen

import (
	"fmt"
	"image"
	"math"
	"math/rand"

	"github.com/wbrown/hcscrgen/imageutil"
	"github.com/wbrown/hcscrgen/logx"
)

// Converter turns images into the text screen of a machine profile. It can
// be shared between goroutines unless it generates charsets, which draw
// from its random source.
type Converter struct {
	registry     *Registry
	loader       CharsetLoader
	generate     bool
	rng          *rand.Rand
	centroidMode CentroidMode
	hook         IterationHook
	logger       logx.LoggerX
	useCache     bool
	progress     func(line, lines int)
}

// NewConverter creates a converter with the given options. By default it
// uses the built-in profiles and the match cache.
func NewConverter(opts ...Option) *Converter {
	c := &Converter{
		registry: DefaultRegistry(),
		useCache: true,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.rng == nil {
		c.rng = newTimeSeededRand()
	}
	return c
}

// ConversionResult is everything one conversion produces.
type ConversionResult struct {
	Profile *MachineProfile
	// Preview is the screen as the machine would show it.
	Preview *imageutil.RGBAImage
	// Glyphs holds the matched glyph of every cell in row-major order.
	Glyphs       []GlyphIndex
	CharacterRAM []byte
	// ColorRAM is nil when the profile has no color RAM.
	ColorRAM []byte
	// Charset and CharsetData are only set for generated charsets.
	Charset     Charset
	CharsetData []byte
	// Approximation is the final state of charset generation.
	Approximation *Approximation
	// Match cache statistics, zero when the cache is disabled.
	CacheHits, CacheMisses int
}

// CacheRate returns the fraction of tiles answered by the match cache.
func (r *ConversionResult) CacheRate() float64 {
	total := r.CacheHits + r.CacheMisses
	if total == 0 {
		return 0
	}
	return float64(r.CacheHits) / float64(total)
}

// Convert converts img for the profile with the given identifier.
func Convert(img image.Image, profileID string, opts ...Option) (*ConversionResult, error) {
	return NewConverter(opts...).Convert(img, profileID)
}

func (c *Converter) log() logx.Logger {
	if c.logger == nil {
		return logx.Discard
	}
	return logx.NewLogToX(c.logger, "convert")
}

// Convert converts img for the profile with the given identifier. Unknown
// identifiers fail with *UnknownProfileError, images smaller than the
// screen with *ImageSizeError.
func (c *Converter) Convert(img image.Image, profileID string) (*ConversionResult, error) {
	profile, err := c.registry.Lookup(profileID)
	if err != nil {
		return nil, err
	}
	return c.ConvertProfile(img, profile)
}

// ConvertProfile converts img for profile, which does not need to be
// registered.
func (c *Converter) ConvertProfile(img image.Image, profile *MachineProfile) (*ConversionResult, error) {
	if err := profile.Validate(); err != nil {
		return nil, err
	}
	b := img.Bounds()
	minWidth, minHeight := profile.ScreenWidth(), profile.ScreenHeight()
	if b.Dx() < minWidth || b.Dy() < minHeight {
		return nil, &ImageSizeError{
			Width: b.Dx(), Height: b.Dy(),
			MinWidth: minWidth, MinHeight: minHeight,
		}
	}
	src := imageutil.RGBAImageFromImage(img)
	result := &ConversionResult{Profile: profile}

	var charsets []Charset
	if c.generate {
		g := NewCharsetGenerator(profile, c.rng)
		g.Mode = c.centroidMode
		g.hook = c.hook
		if c.logger != nil {
			g.logger = logx.NewLogToX(c.logger, "generate")
		}
		charset, approximation := g.Generate(src)
		data, err := EncodeCharset(charset)
		if err != nil {
			return nil, fmt.Errorf("failed to encode generated charset: %w", err)
		}
		result.Charset = charset
		result.CharsetData = data
		result.Approximation = approximation
		charsets = []Charset{charset}
	} else {
		loaded, err := c.loader.Load(profile)
		if err != nil {
			return nil, err
		}
		charsets = loaded
	}
	for i, cs := range charsets {
		if err := cs.validate(profile.Layout.GlyphWidth, profile.Layout.GlyphHeight); err != nil {
			return nil, fmt.Errorf("profile %s: charset %d: %w", profile.Identifier, i, err)
		}
	}

	var cache *MatchCache
	if c.useCache {
		cache = NewMatchCache()
	}
	c.match(src, profile, charsets, cache, result)

	if cache != nil {
		result.CacheHits, result.CacheMisses, _ = cache.Stats()
		c.log().LogPrintf(logx.DEBUG, "match cache: %d hits, %d misses (%.1f%%)",
			result.CacheHits, result.CacheMisses, result.CacheRate()*100)
	}
	return result, nil
}

// match fills the glyphs, RAM contents and preview of result.
func (c *Converter) match(src *imageutil.RGBAImage, profile *MachineProfile,
	charsets []Charset, cache *MatchCache, result *ConversionResult) {
	w, h := profile.Layout.GlyphWidth, profile.Layout.GlyphHeight
	cells := profile.Cells()
	result.Preview = imageutil.NewRGBAImage(profile.ScreenWidth(), profile.ScreenHeight())
	result.Glyphs = make([]GlyphIndex, 0, cells)
	result.CharacterRAM = make([]byte, 0, cells)
	if profile.ColorRAM != nil {
		result.ColorRAM = make([]byte, 0, cells)
	}

	for line := 0; line < profile.Lines; line++ {
		for column := 0; column < profile.Columns; column++ {
			x, y := column*w, line*h
			tile := CropPixelBlock(src, x, y, w, h)
			g := bestGlyph(tile, charsets, cache)

			result.Glyphs = append(result.Glyphs, g)
			result.CharacterRAM = append(result.CharacterRAM, profile.CharacterRAM(g))
			if profile.ColorRAM != nil {
				result.ColorRAM = append(result.ColorRAM, profile.ColorRAM(g))
			}
			charsets[g.Charset][g.Code].DrawTo(result.Preview, x, y)
		}
		if c.progress != nil {
			c.progress(line+1, profile.Lines)
		}
	}
	c.log().LogPrintf(logx.INFO, "matched %d cells against %d charsets",
		cells, len(charsets))
}

func bestGlyph(tile PixelBlock, charsets []Charset, cache *MatchCache) GlyphIndex {
	if cache != nil {
		if g, ok := cache.get(tile); ok {
			return g
		}
	}
	g, _ := FindGlyph(tile, charsets)
	if cache != nil {
		cache.add(tile, g)
	}
	return g
}

// FindGlyph scans every glyph of every charset for the one closest to
// tile. On ties the first one found wins: lower charset index, then lower
// code.
func FindGlyph(tile PixelBlock, charsets []Charset) (GlyphIndex, int) {
	best := GlyphIndex{}
	bestDiff := math.MaxInt
	for ci, cs := range charsets {
		for code, glyph := range cs {
			diff := Diff(tile, glyph)
			if diff < bestDiff {
				best = GlyphIndex{Charset: ci, Code: uint8(code)}
				bestDiff = diff
			}
		}
	}
	if bestDiff == math.MaxInt {
		panic("hcscrgen: no glyph to match against")
	}
	return best, bestDiff
}
