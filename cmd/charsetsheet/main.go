package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/wbrown/hcscrgen"
	"github.com/wbrown/hcscrgen/imageutil"
	"github.com/wbrown/hcscrgen/logx"
)

type sheetConfig struct {
	width, height      int
	top, left          int
	vSpacing, hSpacing int
	mode               string
	font               string
	rom                bool
	input, output      string
}

func main() {
	var cfg sheetConfig
	flag.IntVar(&cfg.width, "width", 8, "Character width")
	flag.IntVar(&cfg.height, "height", 8, "Character height")
	flag.IntVar(&cfg.top, "top", 0, "Offset top")
	flag.IntVar(&cfg.left, "left", 0, "Offset left")
	flag.IntVar(&cfg.vSpacing, "vertical-spacing", 1, "Vertical spacing")
	flag.IntVar(&cfg.hSpacing, "horizontal-spacing", 1, "Horizontal spacing")
	flag.StringVar(&cfg.mode, "mode", "lr",
		"Arrangement of characters (lr: left to right, tb: top to bottom)")
	flag.StringVar(&cfg.font, "font", "",
		"Render the charset from this TTF file instead of slicing INPUT")
	flag.BoolVar(&cfg.rom, "rom", false,
		"Write the charset as ROM bitmap instead of a reference sheet")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(),
			"Usage: %s [flags] INPUT OUTPUT\n       %s -font FONT.ttf [flags] OUTPUT\n\n",
			os.Args[0], os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	switch {
	case cfg.font != "" && flag.NArg() == 1:
		cfg.output = flag.Arg(0)
	case cfg.font == "" && flag.NArg() == 2:
		cfg.input, cfg.output = flag.Arg(0), flag.Arg(1)
	default:
		flag.Usage()
		os.Exit(2)
	}

	log := logx.NewLogToX(logx.NewFileLogger(os.Stderr, logx.INFO, logx.ColorAuto), "charsetsheet")
	if err := run(cfg, log); err != nil {
		log.LogPrintf(logx.ERROR, "%v", err)
		os.Exit(1)
	}
}

func run(cfg sheetConfig, log logx.Logger) error {
	charset, err := loadCharset(cfg)
	if err != nil {
		return err
	}

	if cfg.rom || isROMName(cfg.output) {
		data, err := hcscrgen.EncodeCharset(charset)
		if err != nil {
			return err
		}
		if err := os.WriteFile(cfg.output, data, 0644); err != nil {
			return err
		}
		log.LogPrintf(logx.INFO, "wrote %d glyphs as %d byte ROM to %s",
			len(charset), len(data), cfg.output)
		return nil
	}

	if err := imageutil.SaveImage(hcscrgen.BuildReferenceSheet(charset), cfg.output); err != nil {
		return err
	}
	log.LogPrintf(logx.INFO, "wrote %d glyphs to %s", len(charset), cfg.output)
	return nil
}

func loadCharset(cfg sheetConfig) (hcscrgen.Charset, error) {
	if cfg.font != "" {
		ttf, err := os.ReadFile(cfg.font)
		if err != nil {
			return nil, err
		}
		return hcscrgen.RenderFontCharset(ttf, cfg.width, cfg.height)
	}

	if isROMName(cfg.input) {
		data, err := os.ReadFile(cfg.input)
		if err != nil {
			return nil, err
		}
		return hcscrgen.DecodeCharsetBitmap(data, cfg.width, cfg.height)
	}

	order, err := hcscrgen.ParseNibbleOrder(cfg.mode)
	if err != nil {
		return nil, err
	}
	sheet, err := imageutil.LoadImage(cfg.input)
	if err != nil {
		return nil, err
	}
	return hcscrgen.LoadCharset(sheet, hcscrgen.Layout{
		Order:             order,
		GlyphWidth:        cfg.width,
		GlyphHeight:       cfg.height,
		OffsetLeft:        cfg.left,
		OffsetTop:         cfg.top,
		SpacingHorizontal: cfg.hSpacing,
		SpacingVertical:   cfg.vSpacing,
	})
}

func isROMName(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".bin", ".rom":
		return true
	}
	return false
}
