// Package termview shows conversion previews in a terminal using half
// block characters, two image rows per text row.
package termview

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/wbrown/hcscrgen/imageutil"
)

const upperHalfBlock = '▀'

// FitSize returns the largest size with the aspect ratio of a width x
// height image that fits into cols x rows cells, where each cell holds two
// pixels stacked vertically.
func FitSize(width, height, cols, rows int) (int, int) {
	if width <= 0 || height <= 0 || cols <= 0 || rows <= 0 {
		return 0, 0
	}
	maxW, maxH := cols, rows*2
	w, h := maxW, height*maxW/width
	if h > maxH {
		w, h = width*maxH/height, maxH
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

// Draw renders img scaled to the screen, centered, and returns the number
// of cells used horizontally and vertically.
func Draw(s tcell.Screen, img *imageutil.RGBAImage) (int, int) {
	s.Clear()
	cols, rows := s.Size()
	w, h := FitSize(img.Width(), img.Height(), cols, rows)
	if w == 0 {
		return 0, 0
	}
	scaled := imageutil.Resize(img, w, h, imageutil.InterpolationNearest)
	cellRows := (h + 1) / 2
	left, top := (cols-w)/2, (rows-cellRows)/2

	for cy := 0; cy < cellRows; cy++ {
		for x := 0; x < w; x++ {
			upper := scaled.GetRGB(x, cy*2)
			lower := imageutil.Black
			if cy*2+1 < h {
				lower = scaled.GetRGB(x, cy*2+1)
			}
			style := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(upper.R), int32(upper.G), int32(upper.B))).
				Background(tcell.NewRGBColor(int32(lower.R), int32(lower.G), int32(lower.B)))
			s.SetContent(left+x, top+cy, upperHalfBlock, nil, style)
		}
	}
	s.Show()
	return w, cellRows
}

// Run draws img on s and redraws on resize until a key is pressed.
func Run(s tcell.Screen, img *imageutil.RGBAImage) {
	Draw(s, img)
	for {
		switch s.PollEvent().(type) {
		case *tcell.EventResize:
			s.Sync()
			Draw(s, img)
		case *tcell.EventKey:
			return
		case nil:
			// screen finalized
			return
		}
	}
}

// Show takes over the terminal to display img until a key is pressed.
func Show(img *imageutil.RGBAImage) error {
	s, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to open terminal: %w", err)
	}
	if err := s.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}
	defer s.Fini()
	Run(s, img)
	return nil
}
