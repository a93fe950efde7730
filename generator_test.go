package hcscrgen

import (
	"math/rand"
	"testing"

	"github.com/wbrown/hcscrgen/imageutil"
	"github.com/wbrown/hcscrgen/kmeans"
)

func TestInitializeCentroidSeeded(t *testing.T) {
	t.Parallel()

	a := NewCharsetGenerator(C64Profile, rand.New(rand.NewSource(7)))
	b := NewCharsetGenerator(C64Profile, rand.New(rand.NewSource(7)))
	for k := 0; k < 4; k++ {
		ca, cb := a.InitializeCentroid(k), b.InitializeCentroid(k)
		if !ca.Equal(cb) {
			t.Errorf("Centroid %d: expected identical seeds", k)
		}
		for y := 0; y < 8; y++ {
			for x := 0; x < 8; x++ {
				if p := ca.At(x, y); p != imageutil.Black && p != imageutil.White {
					t.Fatalf("Expected monochrome seed, got %v", p)
				}
			}
		}
	}
}

func TestAverageCentroid(t *testing.T) {
	t.Parallel()

	g := NewCharsetGenerator(C64Profile, rand.New(rand.NewSource(1)))
	a := solidBlock(8, 8, imageutil.RGB{R: 255, G: 10, B: 1})
	b := solidBlock(8, 8, imageutil.RGB{R: 0, G: 20, B: 2})
	c := g.DetermineCentroid([]PixelBlock{a, b})
	want := imageutil.RGB{R: 127, G: 15, B: 1}
	if got := c.At(3, 5); got != want {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestMonochromeCentroid(t *testing.T) {
	t.Parallel()

	g := NewCharsetGenerator(C64Profile, rand.New(rand.NewSource(1)))
	g.Mode = MonochromeCentroid

	bright := imageutil.RGB{R: 200, G: 200, B: 200}
	e1, e2, e3 := NewPixelBlock(8, 8), NewPixelBlock(8, 8), NewPixelBlock(8, 8)
	// (0,0) bright in two of three, (1,0) in one of three
	e1.set(0, 0, bright)
	e2.set(0, 0, bright)
	e3.set(1, 0, bright)
	// (2,0) is exactly at the threshold
	e1.set(2, 0, imageutil.RGB{R: 0x80, G: 0x80, B: 0x80})
	e2.set(2, 0, imageutil.RGB{R: 0x80, G: 0x80, B: 0x80})

	c := g.DetermineCentroid([]PixelBlock{e1, e2, e3})
	if c.At(0, 0) != imageutil.White {
		t.Errorf("Expected majority pixel white, got %v", c.At(0, 0))
	}
	if c.At(1, 0) != imageutil.Black {
		t.Errorf("Expected minority pixel black, got %v", c.At(1, 0))
	}
	if c.At(2, 0) != imageutil.Black {
		t.Errorf("Expected threshold pixel black, got %v", c.At(2, 0))
	}
}

func TestParseCentroidMode(t *testing.T) {
	t.Parallel()

	if m, err := ParseCentroidMode("monochrome"); err != nil || m != MonochromeCentroid {
		t.Errorf("Expected monochrome, got %v (%v)", m, err)
	}
	if m, err := ParseCentroidMode("average"); err != nil || m != AverageCentroid {
		t.Errorf("Expected average, got %v (%v)", m, err)
	}
	if _, err := ParseCentroidMode("median"); err == nil {
		t.Error("Expected error for unknown mode")
	}
}

func TestGeneratorIdenticalTilesConverge(t *testing.T) {
	t.Parallel()

	g := NewCharsetGenerator(tinyProfile(), rand.New(rand.NewSource(3)))
	tiles := g.Tiles(imageutil.CreateSolidImage(32, 32, imageutil.Black))
	if len(tiles) != 16 {
		t.Fatalf("Expected 16 tiles, got %d", len(tiles))
	}

	result := kmeans.Optimize[PixelBlock](g, CharsetSize, tiles,
		GeneratorIterations, GeneratorRepairInterval)
	if !result.Converged {
		t.Fatal("Expected identical tiles to converge")
	}
	// Iteration 0 centers the only used cluster, the repair at iteration
	// 5 finds every tile represented exactly.
	if result.Iterations != 6 {
		t.Errorf("Expected 6 iterations, got %d", result.Iterations)
	}
	if d := kmeans.MaxDeviation(result.Clusters); d != 0 {
		t.Errorf("Expected max deviation 0, got %d", d)
	}
}

func TestGeneratorIterationHook(t *testing.T) {
	t.Parallel()

	g := NewCharsetGenerator(tinyProfile(), rand.New(rand.NewSource(9)))
	var iterations []int
	g.hook = func(i int, a *Approximation) bool {
		iterations = append(iterations, i)
		img := a.Image()
		if img.Width() != 32 || img.Height() != 32 {
			t.Errorf("Expected 32x32 approximation, got %dx%d", img.Width(), img.Height())
		}
		return i == 2
	}
	g.Generate(imageutil.CreateGradientImage(32, 32))
	if len(iterations) != 3 {
		t.Errorf("Expected hook to stop after 3 iterations, got %v", iterations)
	}
}

func TestApproximationImage(t *testing.T) {
	t.Parallel()

	img := imageutil.CreateCheckerboardImage(32, 32, 8)
	g := NewCharsetGenerator(tinyProfile(), rand.New(rand.NewSource(5)))
	charset, approximation := g.Generate(img)
	if len(charset) != CharsetSize {
		t.Fatalf("Expected %d glyphs, got %d", CharsetSize, len(charset))
	}
	// Two distinct tiles fit exactly into 256 glyphs.
	if approximation.MaxDiff() != 0 {
		t.Errorf("Expected exact approximation, got max diff %d", approximation.MaxDiff())
	}
	if d := imageutil.CalculateMaxDiff(approximation.Image(), img); d != 0 {
		t.Errorf("Expected approximation to reproduce the image, got max diff %d", d)
	}
}
