package hcscrgen

import (
	"fmt"
	"math/rand"

	"github.com/wbrown/hcscrgen/imageutil"
	"github.com/wbrown/hcscrgen/kmeans"
	"github.com/wbrown/hcscrgen/logx"
)

const (
	// GeneratorIterations is the iteration limit of charset generation.
	GeneratorIterations = 50
	// GeneratorRepairInterval is how often empty glyph clusters are reseeded.
	GeneratorRepairInterval = 5
)

// CentroidMode selects how a generated glyph is derived from the tiles it
// represents.
type CentroidMode int

const (
	// AverageCentroid averages every channel of every pixel.
	AverageCentroid CentroidMode = iota
	// MonochromeCentroid sets a pixel to white when more than half of the
	// tiles have a bright pixel there, black otherwise.
	MonochromeCentroid
)

func (m CentroidMode) String() string {
	switch m {
	case AverageCentroid:
		return "average"
	case MonochromeCentroid:
		return "monochrome"
	}
	return fmt.Sprintf("CentroidMode(%d)", int(m))
}

// ParseCentroidMode accepts "average" and "monochrome".
func ParseCentroidMode(s string) (CentroidMode, error) {
	switch s {
	case "average", "":
		return AverageCentroid, nil
	case "monochrome", "mono":
		return MonochromeCentroid, nil
	}
	return 0, fmt.Errorf("invalid centroid mode %q, expected average or monochrome", s)
}

// IterationHook is called after every generator iteration with the current
// approximation. Returning true stops the generation early. The
// approximation is only valid until the hook returns.
type IterationHook func(iteration int, approximation *Approximation) bool

// CharsetGenerator is the k-means context that derives a charset from the
// tiles of one image.
type CharsetGenerator struct {
	GlyphWidth  int
	GlyphHeight int
	Lines       int
	Columns     int
	Mode        CentroidMode

	rng    *rand.Rand
	hook   IterationHook
	logger logx.Logger
}

// NewCharsetGenerator returns a generator for the screen of profile p. A
// nil rng seeds a new source from the current time.
func NewCharsetGenerator(p *MachineProfile, rng *rand.Rand) *CharsetGenerator {
	if rng == nil {
		rng = newTimeSeededRand()
	}
	return &CharsetGenerator{
		GlyphWidth:  p.Layout.GlyphWidth,
		GlyphHeight: p.Layout.GlyphHeight,
		Lines:       p.Lines,
		Columns:     p.Columns,
		rng:         rng,
		logger:      logx.Discard,
	}
}

// InitializeCentroid returns a random black and white pattern.
func (g *CharsetGenerator) InitializeCentroid(int) PixelBlock {
	b := NewPixelBlock(g.GlyphWidth, g.GlyphHeight)
	for i := range b.pix {
		if g.rng.Intn(2) == 1 {
			b.pix[i] = imageutil.White
		}
	}
	return b
}

// DetermineCentroid combines the tiles of one cluster into a glyph.
func (g *CharsetGenerator) DetermineCentroid(elements []PixelBlock) PixelBlock {
	if g.Mode == MonochromeCentroid {
		return g.monochromeCentroid(elements)
	}
	return g.averageCentroid(elements)
}

func (g *CharsetGenerator) averageCentroid(elements []PixelBlock) PixelBlock {
	b := NewPixelBlock(g.GlyphWidth, g.GlyphHeight)
	n := len(elements)
	for i := range b.pix {
		var r, gr, bl int
		for _, e := range elements {
			p := e.pix[i]
			r += int(p.R)
			gr += int(p.G)
			bl += int(p.B)
		}
		b.pix[i] = imageutil.RGB{R: uint8(r / n), G: uint8(gr / n), B: uint8(bl / n)}
	}
	return b
}

func (g *CharsetGenerator) monochromeCentroid(elements []PixelBlock) PixelBlock {
	b := NewPixelBlock(g.GlyphWidth, g.GlyphHeight)
	for i := range b.pix {
		set := 0
		for _, e := range elements {
			if e.pix[i].Luminance() > bitmapThreshold {
				set++
			}
		}
		if set > len(elements)/2 {
			b.pix[i] = imageutil.White
		}
	}
	return b
}

// Diff is the PixelBlock distance.
func (g *CharsetGenerator) Diff(a, b PixelBlock) int {
	return Diff(a, b)
}

// Stop logs progress and hands the clusters to the iteration hook.
func (g *CharsetGenerator) Stop(iteration int, clusters []kmeans.Cluster[PixelBlock]) bool {
	g.logger.LogPrintf(logx.DEBUG, "iteration %d: max diff %d",
		iteration, kmeans.MaxDeviation(clusters))
	if g.hook == nil {
		return false
	}
	return g.hook(iteration, &Approximation{generator: g, clusters: clusters})
}

// Tiles cuts img into Lines x Columns tiles in row-major order.
func (g *CharsetGenerator) Tiles(img *imageutil.RGBAImage) []PixelBlock {
	tiles := make([]PixelBlock, 0, g.Lines*g.Columns)
	for line := 0; line < g.Lines; line++ {
		for column := 0; column < g.Columns; column++ {
			tiles = append(tiles, CropPixelBlock(img,
				column*g.GlyphWidth, line*g.GlyphHeight, g.GlyphWidth, g.GlyphHeight))
		}
	}
	return tiles
}

// Generate derives a charset of CharsetSize glyphs from the tiles of img.
// Glyph k is the centroid of cluster k.
func (g *CharsetGenerator) Generate(img *imageutil.RGBAImage) (Charset, *Approximation) {
	tiles := g.Tiles(img)
	result := kmeans.Optimize[PixelBlock](g, CharsetSize, tiles,
		GeneratorIterations, GeneratorRepairInterval)
	g.logger.LogPrintf(logx.INFO,
		"generated charset after %d iterations (converged: %v, max diff: %d)",
		result.Iterations, result.Converged, kmeans.MaxDeviation(result.Clusters))

	charset := make(Charset, len(result.Clusters))
	for k, c := range result.Clusters {
		charset[k] = c.Centroid
	}
	return charset, &Approximation{generator: g, clusters: result.Clusters}
}

// Approximation is the screen as the generator currently represents it:
// every tile replaced by the centroid of its cluster.
type Approximation struct {
	generator *CharsetGenerator
	clusters  []kmeans.Cluster[PixelBlock]
}

// MaxDiff returns the largest distance between a tile and its glyph.
func (a *Approximation) MaxDiff() int {
	return kmeans.MaxDeviation(a.clusters)
}

// Image renders the approximation at screen resolution.
func (a *Approximation) Image() *imageutil.RGBAImage {
	g := a.generator
	img := imageutil.NewRGBAImage(g.Columns*g.GlyphWidth, g.Lines*g.GlyphHeight)
	for _, c := range a.clusters {
		for _, e := range c.Elements {
			line, column := e.Index/g.Columns, e.Index%g.Columns
			c.Centroid.DrawTo(img, column*g.GlyphWidth, line*g.GlyphHeight)
		}
	}
	return img
}
