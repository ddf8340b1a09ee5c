// Package resolve implements the Dependency Resolver (spec §4.7): the
// central error-driven loop that grows a file/include-dir set fix by fix
// until the compiler returns clean or the loop stalls.
//
// No teacher file drives an error-correcting retry loop of this shape, so
// this package is grounded directly on spec §4.7 plus the fix-table
// re-architecture spec §9 calls for (a map[Kind]fixHandler dispatch table
// returning a FixOutcome enum, replacing what would otherwise be a long
// if/else chain).
package resolve

import (
	"context"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/LSC-Unicamp/processor-ci-sub000/internal/collections"
	"github.com/LSC-Unicamp/processor-ci-sub000/internal/compiler"
	"github.com/LSC-Unicamp/processor-ci-sub000/internal/dedup"
	"github.com/LSC-Unicamp/processor-ci-sub000/internal/diagnostic"
	"github.com/LSC-Unicamp/processor-ci-sub000/internal/hdl"
	"github.com/LSC-Unicamp/processor-ci-sub000/internal/order"
)

// FixOutcome reports what a single fix attempt accomplished.
type FixOutcome int

const (
	NoProgress FixOutcome = iota
	AddedInclude
	AddedProvider
	Blacklisted
)

// Universe describes everything the Resolver can draw on when searching
// for a fix: every unit the Source Scanner and Lexical Extractor found
// anywhere in the repository, not just in the current candidate file set.
type Universe struct {
	Table                  *hdl.Table
	Sources                map[string]string   // file -> raw source text
	Basenames              map[string][]string // basename -> full paths, repo-wide
	NeedsPackageIncludeDir bool                // true for flavors whose provider search is path-based (Bluespec)
}

// BuildCommand constructs the compiler invocation for one attempt.
type BuildCommand func(files, includeDirs []string, top string, defines []string) compiler.Command

// Input is everything one Resolver run needs.
type Input struct {
	Root                string
	Files               []string
	IncludeDirs         []string
	Top                 string
	Flavor              hdl.Flavor
	MaxIterations       int
	Timeout             time.Duration
	Universe            Universe
	Build               BuildCommand
	AllowAddAllFallback bool
	// InitialBlacklist seeds the monotone blacklist. Spec §4.11: the
	// blacklist is shared across candidates, since a file toxic for one top
	// is toxic for every other top over the same repository text. The
	// Orchestrator owns the value and threads it explicitly; the Resolver
	// only ever grows it.
	InitialBlacklist []string
}

// Outcome is the Resolver's result: either a clean compile plus the final
// sets, or a failure carrying the last captured log. Blacklist is always
// populated (it only grows) so the caller can carry it into the next
// candidate's Input.InitialBlacklist.
type Outcome struct {
	Success     bool
	Files       []string
	IncludeDirs []string
	Defines     []string
	Blacklist   []string
	Log         string
	Iterations  int
}

type state struct {
	files       []string
	includeDirs collections.Set[string]
	blacklist   collections.Set[string]
	defines     []string
	dirty       bool
	ordered     bool
	vhdlState   *order.VHDLState
	deferred    collections.Set[string] // syntax-error-in-package files given one grace iteration
}

// Resolve runs the fix loop (spec §4.7), bounded by in.MaxIterations
// (default 15, per-flavor callers may set a different bound).
func Resolve(ctx context.Context, in Input) Outcome {
	maxIter := in.MaxIterations
	if maxIter <= 0 {
		maxIter = 15
	}

	st := &state{
		files:       append([]string(nil), in.Files...),
		includeDirs: collections.ToSet(in.IncludeDirs),
		blacklist:   collections.ToSet(in.InitialBlacklist),
		dirty:       true,
		deferred:    collections.SetOf[string](),
	}

	var lastLog string
	for iter := 0; iter < maxIter; iter++ {
		active := st.activeFiles()
		if len(active) == 0 {
			return Outcome{Success: false, Log: lastLog, Blacklist: st.blacklist.SortedValues(strings.Compare), Iterations: iter}
		}

		ordered := st.orderFiles(active, in)
		ordered, _ = dedupeBySymbols(ordered, in.Universe.Table)
		st.files = mergeBlacklistAware(st.files, ordered, st.blacklist)

		cmd := in.Build(st.orderedActiveFiles(in), st.includeDirs.Values(), in.Top, st.defines)
		cmd.Dir = in.Root
		cmd.Timeout = in.Timeout
		outcome := compiler.Run(ctx, cmd, nil)
		lastLog = outcome.Log

		if outcome.Clean() {
			return Outcome{
				Success:     true,
				Files:       st.orderedActiveFiles(in),
				IncludeDirs: st.includeDirs.SortedValues(strings.Compare),
				Defines:     st.defines,
				Blacklist:   st.blacklist.SortedValues(strings.Compare),
				Log:         lastLog,
				Iterations:  iter + 1,
			}
		}

		diags := diagnostic.ForFlavor(in.Flavor)(outcome.Log)
		if in.Flavor == hdl.FlavorVHDL {
			diags = classifyVHDLDiagnostics(diags, in.Universe.Sources)
		}

		// Diagnostics are applied in fix-priority order (spec §4.7 step 5);
		// a priority queue keyed on Diagnostic.Less pops the same order a
		// stable sort would, one at a time, matching the "process the
		// highest-priority diagnostic first" framing more directly than
		// sorting the whole batch up front.
		pq := collections.NewPriorityQueue(diags)
		progressed := false
		for !pq.Empty() {
			d := pq.Pop()
			if applyFix(d, st, in) != NoProgress {
				progressed = true
			}
		}

		if !progressed {
			if in.AllowAddAllFallback && st.addAllRemaining(in) {
				continue
			}
			return Outcome{Success: false, Log: appendStallSummary(lastLog, diags), Blacklist: st.blacklist.SortedValues(strings.Compare), Iterations: iter + 1}
		}
	}
	return Outcome{Success: false, Log: lastLog, Blacklist: st.blacklist.SortedValues(strings.Compare), Iterations: maxIter}
}

func (s *state) activeFiles() []string {
	var out []string
	for _, f := range s.files {
		if !s.blacklist.Contains(f) {
			out = append(out, f)
		}
	}
	return out
}

func (s *state) orderedActiveFiles(in Input) []string {
	return s.orderFiles(s.activeFiles(), in)
}

func (s *state) orderFiles(active []string, in Input) []string {
	src := make(map[string]string, len(active))
	for _, f := range active {
		src[f] = in.Universe.Sources[f]
	}
	if in.Flavor == hdl.FlavorVHDL {
		if s.vhdlState == nil || s.dirty {
			s.vhdlState = order.NewVHDLState(active, src)
		}
		result := s.vhdlState.Order(active, src)
		s.dirty = false
		return result
	}
	if !s.dirty && s.ordered {
		return active
	}
	result := order.Order(active, src)
	s.dirty = false
	s.ordered = true
	return result
}

func dedupeBySymbols(files []string, table *hdl.Table) ([]string, map[string]string) {
	if table == nil {
		// No extracted symbol table to key on (e.g. a flavor whose Universe
		// builder ran without one): fall back to basename grouping, spec
		// §4.9's fallback for when declared symbols are unknown.
		return dedup.ByBasename(files), nil
	}
	symbolToFiles := make(map[string][]string)
	// Read ByFile rather than Units: Units keeps only the latest declaring
	// file per identity, so a symbol declared by two files would never show
	// up as duplicated there.
	for _, f := range files {
		for _, unit := range table.ByFile[f] {
			symbolToFiles[unit.Name] = append(symbolToFiles[unit.Name], f)
		}
	}
	kept, winners := dedup.BySymbol(symbolToFiles)
	if kept == nil {
		return files, winners
	}
	keptSet := make(map[string]bool, len(kept))
	for _, f := range kept {
		keptSet[f] = true
	}
	var out []string
	for _, f := range files {
		// Keep files untouched by the symbol-duplication pass, plus the
		// winner of every duplicated symbol.
		touched := false
		for _, dupFiles := range symbolToFiles {
			if len(dupFiles) > 1 {
				for _, df := range dupFiles {
					if df == f {
						touched = true
					}
				}
			}
		}
		if !touched || keptSet[f] {
			out = append(out, f)
		}
	}
	return out, winners
}

func mergeBlacklistAware(prevOrder, freshOrder []string, blacklist collections.Set[string]) []string {
	seen := make(map[string]bool, len(freshOrder))
	var out []string
	for _, f := range freshOrder {
		if blacklist.Contains(f) || seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	return out
}

func classifyVHDLDiagnostics(diags []diagnostic.Diagnostic, sources map[string]string) []diagnostic.Diagnostic {
	out := make([]diagnostic.Diagnostic, len(diags))
	for i, d := range diags {
		out[i] = diagnostic.ClassifyVHDLUnit(d, sources[d.File])
	}
	return out
}

// appendStallSummary records, for the final captured log of a stalled run,
// how many unresolved diagnostics of each kind remained (spec §4.7 step 4:
// "parse diagnostics, group by type"). The grouping itself never drives
// which fix runs next — Diagnostic.Less already orders that — this is
// purely a surfaced explanation of why the loop gave up.
func appendStallSummary(log string, diags []diagnostic.Diagnostic) string {
	groups := diagnostic.GroupByKind(diags)
	if len(groups) == 0 {
		return log
	}
	kinds := make([]int, 0, len(groups))
	for kind := range groups {
		kinds = append(kinds, int(kind))
	}
	sort.Ints(kinds)
	summary := "\nunresolved diagnostic kinds:"
	for _, kind := range kinds {
		k := diagnostic.Kind(kind)
		summary += " " + diagnosticKindName(k) + "=" + strconv.Itoa(len(groups[k]))
	}
	return log + summary
}

func diagnosticKindName(k diagnostic.Kind) string {
	switch k {
	case diagnostic.MissingInclude:
		return "missing_include"
	case diagnostic.MissingModule:
		return "missing_module"
	case diagnostic.MissingPackage:
		return "missing_package"
	case diagnostic.MissingInterface:
		return "missing_interface"
	case diagnostic.MissingType:
		return "missing_type"
	case diagnostic.DuplicateDeclaration:
		return "duplicate_declaration"
	case diagnostic.SyntaxErrorIn:
		return "syntax_error"
	case diagnostic.ParamMismatchIn:
		return "param_mismatch"
	case diagnostic.UndefinedMacroIn:
		return "undefined_macro"
	case diagnostic.UnresolvablePackageImportIn:
		return "unresolvable_package_import"
	case diagnostic.AmbiguousConditionalType:
		return "ambiguous_conditional_type"
	default:
		return "unknown"
	}
}

func (s *state) addAllRemaining(in Input) bool {
	added := false
	for file := range in.Universe.Sources {
		if s.blacklist.Contains(file) {
			continue
		}
		if !containsString(s.files, file) {
			s.files = append(s.files, file)
			s.dirty = true
			added = true
		}
	}
	return added
}

func containsString(haystack []string, needle string) bool {
	for _, h := range haystack {
		if h == needle {
			return true
		}
	}
	return false
}

func dirOf(path string) string {
	d := filepath.Dir(path)
	if d == "." {
		return ""
	}
	return d
}
