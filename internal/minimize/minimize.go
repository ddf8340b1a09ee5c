// Package minimize implements the Minimizer (spec §4.10): given a
// last-known clean-compile set, it greedily strips files and then include
// directories that turn out not to be load-bearing, while preserving the
// "compiles cleanly" invariant at every step.
//
// Grounded on spec §4.10 directly: no teacher file does greedy one-pass
// reduction-with-rollback, since gazelle_cc's job is to produce BUILD
// files, not to shrink a compiler's input set.
package minimize

import (
	"context"

	"github.com/LSC-Unicamp/processor-ci-sub000/internal/compiler"
	"github.com/LSC-Unicamp/processor-ci-sub000/internal/hdl"
)

// BuildCommand constructs the compiler invocation for one verification
// attempt against a candidate (files, includeDirs) pair.
type BuildCommand func(files, includeDirs []string, top string) compiler.Command

// Input is the last-known clean-compile set to minimize.
type Input struct {
	Root        string
	Files       []string
	IncludeDirs []string
	Top         string
	Flavor      hdl.Flavor
	// TestbenchFiles and units declaring a package or interface are never
	// removal candidates (spec §4.10: "Candidates for removal: files that
	// are neither in the testbench list nor declare a package or
	// interface").
	TestbenchFiles []string
	Table          *hdl.Table
	Build          BuildCommand
}

// Result is the minimized set, guaranteed to still compile cleanly.
type Result struct {
	Files       []string
	IncludeDirs []string
}

// Run performs one file pass followed by one include-dir pass (spec
// §4.10's Minimizing state: "one file pass + one include pass").
func Run(ctx context.Context, in Input) Result {
	files := append([]string(nil), in.Files...)
	dirs := append([]string(nil), in.IncludeDirs...)

	testbench := toSet(in.TestbenchFiles)
	protected := protectedFiles(in.Table)

	files = minimizeFiles(ctx, in, files, dirs, testbench, protected)
	dirs = minimizeDirs(ctx, in, files, dirs)

	return Result{Files: files, IncludeDirs: dirs}
}

func minimizeFiles(ctx context.Context, in Input, files, dirs []string, testbench, protected map[string]bool) []string {
	candidates := append([]string(nil), files...)
	kept := append([]string(nil), files...)
	for _, f := range candidates {
		if testbench[f] || protected[f] {
			continue
		}
		trial := removeOne(kept, f)
		if compileClean(ctx, in, trial, dirs) {
			kept = trial
		}
	}
	return kept
}

func minimizeDirs(ctx context.Context, in Input, files, dirs []string) []string {
	kept := append([]string(nil), dirs...)
	for _, d := range dirs {
		trial := removeOne(kept, d)
		if compileClean(ctx, in, files, trial) {
			kept = trial
		}
	}
	return kept
}

func compileClean(ctx context.Context, in Input, files, dirs []string) bool {
	cmd := in.Build(files, dirs, in.Top)
	cmd.Dir = in.Root
	return compiler.Run(ctx, cmd, nil).Clean()
}

func removeOne(list []string, target string) []string {
	out := make([]string, 0, len(list))
	removed := false
	for _, v := range list {
		if !removed && v == target {
			removed = true
			continue
		}
		out = append(out, v)
	}
	return out
}

func toSet(values []string) map[string]bool {
	out := make(map[string]bool, len(values))
	for _, v := range values {
		out[v] = true
	}
	return out
}

// protectedFiles returns every file declaring a package or interface,
// which spec §4.10 excludes from removal candidacy.
func protectedFiles(table *hdl.Table) map[string]bool {
	out := make(map[string]bool)
	if table == nil {
		return out
	}
	for file, units := range table.ByFile {
		for _, u := range units {
			if u.Kind == hdl.KindPackage || u.Kind == hdl.KindInterface {
				out[file] = true
			}
		}
	}
	return out
}
