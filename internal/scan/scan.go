// Package scan implements the Source Scanner (spec §4.1): it walks a
// repository tree, selects files by a flavor-dependent extension set, and
// excludes paths that look like verification artifacts rather than design
// sources.
package scan

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/LSC-Unicamp/processor-ci-sub000/internal/hdl"
)

// ErrNoSources is returned when the selection is empty after exclusions.
var ErrNoSources = errors.New("scan: no HDL sources found")

// Extensions maps a flavor to the set of file extensions it recognizes.
// Matching follows language/cpp/lang.go's hasMatchingExtension: a
// case-insensitive comparison against filepath.Ext.
var Extensions = map[hdl.Flavor][]string{
	hdl.FlavorVerilog:  {".v", ".vh", ".sv", ".svh"},
	hdl.FlavorVHDL:     {".vhd", ".vhdl"},
	hdl.FlavorChisel:   {".scala"},
	hdl.FlavorBluespec: {".bsv", ".bs"},
}

// flavorOrder fixes an iteration order over Extensions' keys. Ranging
// over the map directly would make DetectFlavor's tie-break depend on Go's
// randomized map iteration, violating spec §8 property 9's run-to-run
// determinism; iterating this slice instead makes ties resolve the same
// way every time.
var flavorOrder = []hdl.Flavor{hdl.FlavorVerilog, hdl.FlavorVHDL, hdl.FlavorChisel, hdl.FlavorBluespec}

// excludeDirGlobs are directory names commonly used for verification
// artifacts, vendor IP, or board/FPGA-specific sources rather than the
// design itself. Each is compared, case-insensitively and exactly (not as
// a glob pattern), against every path segment.
var excludeDirGlobs = []string{
	"dv", "fpv", "formal", "uvm", "verification", "testbench", "tb",
	"sim", "tests", "test", "boards", "fpga", "vendor", "third_party",
	"build", "target", "out", ".git",
}

// testbenchBasenameGlobs match file basenames that look like testbenches
// even when they live outside an excluded directory.
var testbenchBasenameGlobs = []string{
	"*_tb.*", "*_tb_*", "tb_*.*", "*_testbench.*", "*Test.*", "*_test.*",
}

func hasMatchingExtension(name string, exts []string) bool {
	ext := filepath.Ext(name)
	for _, e := range exts {
		if strings.EqualFold(ext, e) {
			return true
		}
	}
	return false
}

func isExcludedDir(relPath string) bool {
	for _, seg := range strings.Split(filepath.ToSlash(relPath), "/") {
		lower := strings.ToLower(seg)
		for _, tok := range excludeDirGlobs {
			if lower == tok {
				return true
			}
		}
	}
	return false
}

func isTestbenchBasename(name string) bool {
	base := filepath.Base(name)
	for _, pat := range testbenchBasenameGlobs {
		if ok, _ := doublestar.Match(pat, base); ok {
			return true
		}
	}
	return false
}

// Result is the Scanner's output: the selected design sources, the
// testbench-like files set aside (spec §6's sim_files), and the
// predominant extension used downstream to pick a dialect default.
type Result struct {
	Files          []string // repo-relative, sorted
	TestbenchFiles []string // repo-relative, sorted
	PredominantExt string
}

// Scan walks root looking for files matching the flavor's extension set.
// Paths are returned relative to root, using forward slashes, sorted for
// determinism (spec §8 property 9 requires byte-identical repeat runs).
func Scan(root string, flavor hdl.Flavor) (Result, error) {
	exts, ok := Extensions[flavor]
	if !ok {
		return Result{}, errors.New("scan: unknown flavor " + string(flavor))
	}

	var files, testFiles []string
	extCount := make(map[string]int)

	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return relErr
		}
		if d.IsDir() {
			if rel != "." && isExcludedDir(rel) {
				return filepath.SkipDir
			}
			return nil
		}
		if !hasMatchingExtension(path, exts) {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if isExcludedDir(rel) {
			return nil
		}
		if isTestbenchBasename(path) {
			testFiles = append(testFiles, rel)
			return nil
		}
		files = append(files, rel)
		extCount[strings.ToLower(filepath.Ext(path))]++
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	if len(files) == 0 {
		return Result{}, ErrNoSources
	}

	sort.Strings(files)
	sort.Strings(testFiles)

	predominant := ""
	best := -1
	// Deterministic tie-break: iterate extensions in the flavor's declared
	// order rather than map order.
	for _, e := range exts {
		if c := extCount[e]; c > best {
			best, predominant = c, e
		}
	}

	return Result{Files: files, TestbenchFiles: testFiles, PredominantExt: predominant}, nil
}

// DetectFlavor scans root once per known flavor and returns the one with
// the most matching, non-excluded files. Used when the caller does not
// already know the dialect.
func DetectFlavor(root string) (hdl.Flavor, Result, error) {
	var bestFlavor hdl.Flavor
	var bestResult Result
	bestCount := -1
	var firstErr error
	for _, flavor := range flavorOrder {
		res, err := Scan(root, flavor)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		if len(res.Files) > bestCount {
			bestCount, bestFlavor, bestResult = len(res.Files), flavor, res
		}
	}
	if bestCount < 0 {
		if firstErr != nil {
			return "", Result{}, firstErr
		}
		return "", Result{}, ErrNoSources
	}
	return bestFlavor, bestResult, nil
}
