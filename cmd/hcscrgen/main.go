package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	pb "github.com/cheggaaa/pb/v3"
	"github.com/joho/godotenv"

	"github.com/wbrown/hcscrgen"
	"github.com/wbrown/hcscrgen/imageutil"
	"github.com/wbrown/hcscrgen/logx"
	"github.com/wbrown/hcscrgen/termview"
)

type config struct {
	profile   string
	generate  bool
	seed      int64
	centroid  string
	charsets  string
	profiles  string
	fit       string
	prg       bool
	show      bool
	snapshots string
	noCache   bool
	progress  bool
	list      bool
	logLevel  string
}

func main() {
	// A missing .env is fine, everything has a default.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Error loading .env: %v\n", err)
		os.Exit(1)
	}

	var cfg config
	flag.StringVar(&cfg.profile, "profile", "c64",
		"Machine profile ("+strings.Join(hcscrgen.Profiles(), ", ")+
			" or one from -profiles)")
	flag.BoolVar(&cfg.generate, "generate", false,
		"Generate a charset from the image instead of using the machine's")
	flag.Int64Var(&cfg.seed, "seed", 0,
		"Random seed for charset generation, 0 for a time based seed")
	flag.StringVar(&cfg.centroid, "centroid", "average",
		"How generated glyphs are computed: average or monochrome")
	flag.StringVar(&cfg.charsets, "charsets", os.Getenv("HCSCRGEN_CHARSETS"),
		"Directory holding the charset sheets of the profiles")
	flag.StringVar(&cfg.profiles, "profiles", os.Getenv("HCSCRGEN_PROFILES"),
		"TOML file with additional machine profiles")
	flag.StringVar(&cfg.fit, "fit", "none",
		"Scale the input to the screen size first: none, crop or stretch")
	flag.BoolVar(&cfg.prg, "prg", false,
		"Prefix RAM dumps with their load address (.prg files)")
	flag.BoolVar(&cfg.show, "show", false,
		"Show the preview in the terminal")
	flag.StringVar(&cfg.snapshots, "snapshots", "",
		"Directory to write the approximation of every generator iteration to")
	flag.BoolVar(&cfg.noCache, "nocache", false,
		"Disable the tile match cache")
	flag.BoolVar(&cfg.progress, "progress", true,
		"Show progress bars")
	flag.BoolVar(&cfg.list, "list", false,
		"List the available profiles and exit")
	logLevel := os.Getenv("HCSCRGEN_LOG")
	if logLevel == "" {
		logLevel = "info"
	}
	flag.StringVar(&cfg.logLevel, "log", logLevel,
		"Log level: debug, info, notice, warn, error or critical")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(),
			"Usage: %s [flags] INPUT...\n\nINPUT may be a glob like 'shots/*.{png,gif}'.\n\n",
			os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	lvl, err := logx.ParseLevel(cfg.logLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	logger := logx.NewFileLogger(os.Stderr, lvl, logx.ColorAuto)
	log := logx.NewLogToX(logger, "main")

	registry, err := loadRegistry(cfg.profiles)
	if err != nil {
		log.LogPrintf(logx.ERROR, "%v", err)
		os.Exit(1)
	}
	if cfg.list {
		for _, p := range registry.Profiles() {
			fmt.Printf("%-10s %-20s %dx%d cells, %d charset(s)\n",
				p.Identifier, p.Description, p.Columns, p.Lines, len(p.Charsets))
		}
		return
	}

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}
	inputs, err := expandInputs(flag.Args())
	if err != nil {
		log.LogPrintf(logx.ERROR, "%v", err)
		os.Exit(1)
	}
	if len(inputs) == 0 {
		log.LogPrintf(logx.ERROR, "no input files match %s", strings.Join(flag.Args(), " "))
		os.Exit(1)
	}

	failed := 0
	for _, input := range inputs {
		if err := convertFile(cfg, registry, logger, input); err != nil {
			log.LogPrintf(logx.ERROR, "%s: %v", input, err)
			failed++
		}
	}
	if failed > 0 {
		os.Exit(1)
	}
}

func loadRegistry(path string) (*hcscrgen.Registry, error) {
	registry := hcscrgen.DefaultRegistry()
	if path == "" {
		return registry, nil
	}
	profiles, err := hcscrgen.LoadProfiles(path)
	if err != nil {
		return nil, err
	}
	for _, p := range profiles {
		if err := registry.Register(p); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	return registry, nil
}

func convertFile(cfg config, registry *hcscrgen.Registry, logger logx.LoggerX, input string) error {
	log := logx.NewLogToX(logger, "main")
	begin := time.Now()

	profile, err := registry.Lookup(cfg.profile)
	if err != nil {
		return err
	}
	img, err := imageutil.LoadImage(input)
	if err != nil {
		return err
	}
	switch cfg.fit {
	case "none", "":
	case "crop", "stretch":
		img = imageutil.Fit(img, profile.ScreenWidth(), profile.ScreenHeight(), cfg.fit == "crop")
	default:
		return fmt.Errorf("invalid -fit %q, expected none, crop or stretch", cfg.fit)
	}
	mode, err := hcscrgen.ParseCentroidMode(cfg.centroid)
	if err != nil {
		return err
	}

	opts := []hcscrgen.Option{
		hcscrgen.WithRegistry(registry),
		hcscrgen.WithGeneratedCharset(cfg.generate),
		hcscrgen.WithCentroidMode(mode),
		hcscrgen.WithLogger(logger),
		hcscrgen.WithMatchCache(!cfg.noCache),
	}
	if cfg.charsets != "" {
		opts = append(opts, hcscrgen.WithCharsetFS(os.DirFS(cfg.charsets)))
	}
	if cfg.seed != 0 {
		opts = append(opts, hcscrgen.WithSeed(cfg.seed))
	}

	var genBar *pb.ProgressBar
	if cfg.generate {
		if cfg.progress {
			genBar = pb.StartNew(hcscrgen.GeneratorIterations)
		}
		snapshots, err := snapshotWriter(cfg.snapshots, input)
		if err != nil {
			return err
		}
		opts = append(opts, hcscrgen.WithIterationHook(
			func(i int, a *hcscrgen.Approximation) bool {
				if genBar != nil {
					genBar.Increment()
				}
				if snapshots != nil {
					if err := snapshots(i, a); err != nil {
						log.LogPrintf(logx.WARN, "snapshot %d: %v", i, err)
					}
				}
				return false
			}))
	}
	var matchBar *pb.ProgressBar
	if cfg.progress {
		opts = append(opts, hcscrgen.WithProgress(func(line, lines int) {
			if matchBar == nil {
				if genBar != nil {
					genBar.Finish()
				}
				matchBar = pb.StartNew(lines)
			}
			matchBar.SetCurrent(int64(line))
		}))
	}

	converter := hcscrgen.NewConverter(opts...)
	result, err := converter.Convert(img, cfg.profile)
	if matchBar != nil {
		matchBar.Finish()
	}
	if err != nil {
		return err
	}

	written, err := writeOutputs(input, result, cfg.prg)
	if err != nil {
		return err
	}
	log.LogPrintf(logx.INFO, "%s: wrote %s in %v (match cache: %d hits, %d misses, %.0f%%)",
		input, strings.Join(written, ", "), time.Since(begin).Round(time.Millisecond),
		result.CacheHits, result.CacheMisses, result.CacheRate()*100)

	if cfg.show {
		return termview.Show(result.Preview)
	}
	return nil
}

// snapshotWriter returns a hook body saving every iteration's
// approximation, or nil when dir is empty.
func snapshotWriter(dir, input string) (func(int, *hcscrgen.Approximation) error, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	base := filepath.Base(input)
	return func(i int, a *hcscrgen.Approximation) error {
		name := filepath.Join(dir, fmt.Sprintf("%s.iteration%02d.png", base, i))
		return imageutil.SaveImage(a.Image(), name)
	}, nil
}
