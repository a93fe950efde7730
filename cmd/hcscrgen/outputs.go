package main

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"

	"github.com/wbrown/hcscrgen"
	"github.com/wbrown/hcscrgen/imageutil"
)

// expandInputs replaces glob patterns by the files they match. Arguments
// without glob syntax are kept as they are.
func expandInputs(args []string) ([]string, error) {
	var inputs []string
	seen := make(map[string]bool)
	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			inputs = append(inputs, path)
		}
	}

	for _, arg := range args {
		if !strings.ContainsAny(arg, "*?[{") {
			add(arg)
			continue
		}
		pattern := filepath.ToSlash(arg)
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, err
		}
		var matches []string
		err = filepath.WalkDir(globRoot(pattern), func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && g.Match(filepath.ToSlash(path)) {
				matches = append(matches, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		sort.Strings(matches)
		for _, m := range matches {
			add(m)
		}
	}
	return inputs, nil
}

// globRoot returns the directory part of pattern before the first glob
// meta character.
func globRoot(pattern string) string {
	i := strings.IndexAny(pattern, "*?[{")
	dir := pattern[:i]
	if j := strings.LastIndex(dir, "/"); j >= 0 {
		if j == 0 {
			return "/"
		}
		return filepath.FromSlash(dir[:j])
	}
	return "."
}

// writeOutputs stores the results next to input and returns the names of
// the files written.
func writeOutputs(input string, result *hcscrgen.ConversionResult, prg bool) ([]string, error) {
	var written []string

	preview := input + ".preview.png"
	if err := imageutil.SaveImage(result.Preview, preview); err != nil {
		return written, err
	}
	written = append(written, preview)

	write := func(name string, data []byte) error {
		if err := os.WriteFile(name, data, 0644); err != nil {
			return err
		}
		written = append(written, name)
		return nil
	}

	if prg {
		chars, err := result.CharacterRAMProgram()
		if err != nil {
			return written, err
		}
		if err := write(input+".chars.prg", chars); err != nil {
			return written, err
		}
		if result.ColorRAM != nil {
			colors, err := result.ColorRAMProgram()
			if err != nil {
				return written, err
			}
			if err := write(input+".color.prg", colors); err != nil {
				return written, err
			}
		}
	} else {
		if err := write(input+".chars.bin", result.CharacterRAM); err != nil {
			return written, err
		}
		if result.ColorRAM != nil {
			if err := write(input+".color.bin", result.ColorRAM); err != nil {
				return written, err
			}
		}
	}

	if result.CharsetData != nil {
		if err := write(input+".charset.bin", result.CharsetData); err != nil {
			return written, err
		}
	}
	return written, nil
}
