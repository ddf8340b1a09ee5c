// Package bluespec implements the Bluespec flavor backend (spec §4.12,
// §6): an iterative bsc invocation, the headless deterministic
// conditional-define default SPEC_FULL.md supplements, and the
// "try each file that could declare this top" fallback for multiple
// candidate top-declaring files.
package bluespec

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/LSC-Unicamp/processor-ci-sub000/internal/compiler"
	"github.com/LSC-Unicamp/processor-ci-sub000/internal/config"
	"github.com/LSC-Unicamp/processor-ci-sub000/internal/extract"
	"github.com/LSC-Unicamp/processor-ci-sub000/internal/graph"
	"github.com/LSC-Unicamp/processor-ci-sub000/internal/hdl"
	"github.com/LSC-Unicamp/processor-ci-sub000/internal/hint"
	"github.com/LSC-Unicamp/processor-ci-sub000/internal/orchestrate"
	"github.com/LSC-Unicamp/processor-ci-sub000/internal/rank"
	"github.com/LSC-Unicamp/processor-ci-sub000/internal/resolve"
	"github.com/LSC-Unicamp/processor-ci-sub000/internal/scan"
)

// Binary is the BSV compiler the core drives (spec §6's table).
const Binary = "bsc"

const LanguageVersion = "bluespec"

// Resolver tunables for this flavor: bsc elaborates aggressively
// (`-aggressive-conditions`) and is tried once per candidate top-declaring
// file, so each attempt gets a shorter iteration budget than the
// single-shot Verilog backend (the same as VHDL's) and a shorter timeout
// than either (supplemented feature, per-flavor tunables).
const (
	MaxResolveIterations = 10
	CompileTimeout       = 90 * time.Second
)

func Universe(root string, files []string) (resolve.Universe, error) {
	table := hdl.NewTable()
	sources := make(map[string]string, len(files))
	basenames := make(map[string][]string)
	extractFn := extract.ForFlavor(hdl.FlavorBluespec)

	for _, f := range files {
		data, err := os.ReadFile(filepath.Join(root, f))
		if err != nil {
			continue
		}
		src := string(data)
		sources[f] = src
		result := extractFn(f, src)
		for _, u := range result.Units {
			table.AddUnit(u)
		}
		for _, inst := range result.Instantiations {
			table.AddInstantiation(inst.Parent, inst.Child)
		}
		basenames[filepath.Base(f)] = append(basenames[filepath.Base(f)], f)
	}

	return resolve.Universe{Table: table, Sources: sources, Basenames: basenames, NeedsPackageIncludeDir: true}, nil
}

// Command builds the bsc invocation (spec §6): `-verilog -g <mk_top> -u
// -aggressive-conditions -p <path1:path2:...> <file_with_top>`.
func Command(files, includeDirs []string, top string, defines []string, topFile string) compiler.Command {
	args := []string{"-verilog", "-g", top, "-u", "-aggressive-conditions", "-p", searchPath(includeDirs)}
	for _, def := range defines {
		args = append(args, "-D", def)
	}
	if topFile != "" {
		args = append(args, topFile)
	} else {
		args = append(args, files...)
	}
	return compiler.Command{Binary: Binary, Args: args}
}

// searchPath builds the `-p` value bsc expects: a leading `+` (the
// implicit default search path) prefixed directly onto the first include
// dir, remaining dirs colon-separated.
func searchPath(includeDirs []string) string {
	if len(includeDirs) == 0 {
		return "+"
	}
	out := "+" + includeDirs[0]
	for _, d := range includeDirs[1:] {
		out += ":" + d
	}
	return out
}

// topDeclaringFiles returns every file that declares a unit named top,
// sorted for determinism. Bluespec allows multiple modules sharing a
// `mk`-prefixed name across files (spec §4.12's "try each file that could
// declare this top" fallback).
func topDeclaringFiles(table *hdl.Table, top string) []string {
	var files []string
	for _, u := range table.Providers(top) {
		files = append(files, u.File)
	}
	sort.Strings(files)
	return files
}

func Run(ctx context.Context, root, repoName string) (config.Result, error) {
	scanResult, err := scan.Scan(root, hdl.FlavorBluespec)
	if err != nil {
		return config.Result{}, err
	}

	universe, err := Universe(root, scanResult.Files)
	if err != nil {
		return config.Result{}, err
	}

	g := graph.FromTable(universe.Table)
	candidates := rank.Rank(rank.Context{Graph: g, Table: universe.Table, RepoName: repoName})
	candidates = hint.Rerank(ctx, repoName, candidates)

	out := config.New(repoName, filepath.Base(root))
	out.LanguageVersion = LanguageVersion
	out.SimFiles = scanResult.TestbenchFiles

	var lastLog string
	for _, top := range candidates {
		topFiles := topDeclaringFiles(universe.Table, top)
		if len(topFiles) == 0 {
			topFiles = []string{""}
		}
		for _, topFile := range topFiles {
			resolveBuild := func(files, includeDirs []string, t string, defines []string) compiler.Command {
				return Command(files, includeDirs, t, defines, topFile)
			}
			minimizeBuild := func(files, includeDirs []string, t string) compiler.Command {
				return Command(files, includeDirs, t, nil, topFile)
			}

			result := orchestrate.Run(ctx, orchestrate.Input{
				Candidates:           []string{top},
				Flavor:               hdl.FlavorBluespec,
				InitialFiles:         scanResult.Files,
				TestbenchFiles:       scanResult.TestbenchFiles,
				ResolveUniverse:      universe,
				ResolveBuild:         resolveBuild,
				MinimizeBuild:        minimizeBuild,
				Root:                 root,
				CandidateCap:         1,
				MaxResolveIterations: MaxResolveIterations,
				ResolveTimeout:       CompileTimeout,
			})
			if result.Success {
				out.TopModule = result.Top
				out.Files = result.Files
				out.IncludeDirs = result.IncludeDirs
				out.ExtraFlags = result.Defines
				out.IsSimulable = true
				return out, nil
			}
			lastLog = result.LastLog
		}
	}

	out.IsSimulable = false
	out.PreScript = config.FailureNote("bluespec resolution failed for every candidate top/file pair", lastLog)
	return out, nil
}
