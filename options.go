package hcscrgen

import (
	"io/fs"
	"math/rand"
	"time"

	"github.com/wbrown/hcscrgen/logx"
)

// Option is a functional option for configuring a Converter.
type Option func(*Converter)

// WithRegistry selects profiles from r instead of the built-in registry.
func WithRegistry(r *Registry) Option {
	return func(c *Converter) {
		c.registry = r
	}
}

// WithCharsetFS resolves the charset resources of profiles against fsys.
func WithCharsetFS(fsys fs.FS) Option {
	return func(c *Converter) {
		c.loader = CharsetLoader{FS: fsys}
	}
}

// WithGeneratedCharset derives the charset from the input image instead of
// loading the profile's charsets.
func WithGeneratedCharset(generate bool) Option {
	return func(c *Converter) {
		c.generate = generate
	}
}

// WithRand sets the random source used to seed generated glyphs.
func WithRand(rng *rand.Rand) Option {
	return func(c *Converter) {
		c.rng = rng
	}
}

// WithSeed is WithRand with a new source seeded with seed.
func WithSeed(seed int64) Option {
	return WithRand(rand.New(rand.NewSource(seed)))
}

// WithCentroidMode sets how generated glyphs are computed.
func WithCentroidMode(mode CentroidMode) Option {
	return func(c *Converter) {
		c.centroidMode = mode
	}
}

// WithLogger sets the logger. Sections "convert" and "generate" are used.
func WithLogger(l logx.LoggerX) Option {
	return func(c *Converter) {
		c.logger = l
	}
}

// WithIterationHook is called after every generator iteration.
func WithIterationHook(hook IterationHook) Option {
	return func(c *Converter) {
		c.hook = hook
	}
}

// WithMatchCache enables or disables the tile match cache.
func WithMatchCache(enabled bool) Option {
	return func(c *Converter) {
		c.useCache = enabled
	}
}

// WithProgress is called after every matched screen line.
func WithProgress(progress func(line, lines int)) Option {
	return func(c *Converter) {
		c.progress = progress
	}
}

func newTimeSeededRand() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}
