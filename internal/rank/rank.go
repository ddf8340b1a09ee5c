// Package rank implements the Top-Module Ranker (spec §4.4): it gathers
// candidate unit names, scores them with the rule pipeline in rules.go,
// and returns a finite, deduplicated, strictly ordered candidate list.
package rank

import (
	"sort"

	"github.com/LSC-Unicamp/processor-ci-sub000/internal/collections"
	"github.com/LSC-Unicamp/processor-ci-sub000/internal/graph"
	"github.com/LSC-Unicamp/processor-ci-sub000/internal/hdl"
)

// Context is the shared read-only state every rule and every ranking
// phase consults.
type Context struct {
	Graph    *graph.Graph
	Table    *hdl.Table
	RepoName string
}

func (c Context) fileFor(name string) string {
	for id, u := range c.Table.Units {
		if id.Name == name {
			return u.File
		}
	}
	return ""
}

func (c Context) kindFor(name string) (hdl.Kind, bool) {
	for id, u := range c.Table.Units {
		if id.Name == name {
			return u.Kind, true
		}
	}
	return hdl.KindUnknown, false
}

// rejectionThreshold: candidates scoring at or below this are dropped
// (spec §4.4 phase 3).
const rejectionThreshold = -10

// gatherCandidates implements spec §4.4 phase 1: the union of units with
// zero parents, units with one or two parents, units fuzzily matching the
// repo name, and units containing a CPU token with a small parent count
// and no disqualifying token.
func gatherCandidates(ctx Context) []string {
	set := collections.SetOf[string]()
	repoNorm := normalize(ctx.RepoName)

	for _, name := range ctx.Graph.Names() {
		parentCount := len(ctx.Graph.ParentsOf(name))
		if parentCount <= 2 {
			set.Add(name)
			continue
		}
		if repoNorm != "" {
			norm := normalize(name)
			if norm != "" && (norm == repoNorm || containsTokenOf(norm, repoNorm)) {
				set.Add(name)
				continue
			}
		}
		if containsToken(name, architecturalTokens) && parentCount <= 4 &&
			!containsToken(name, testBenchTokens) && !containsToken(name, frameworkInfraTokens) {
			set.Add(name)
		}
	}
	return set.Values()
}

func containsTokenOf(a, b string) bool {
	return len(a) > 0 && len(b) > 0 && (indexOf(a, b) >= 0 || indexOf(b, a) >= 0)
}

func indexOf(s, substr string) int {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return i
		}
	}
	return -1
}

// isDisqualifiedKind implements spec §4.4 phase 3: drop candidates whose
// declared kind is a pure interface or a micro-stage (kinds that can never
// meaningfully be elaborated as a top).
func isDisqualifiedKind(ctx Context, name string) bool {
	kind, ok := ctx.kindFor(name)
	if !ok {
		return false
	}
	if kind == hdl.KindInterface {
		return true
	}
	if containsToken(name, pipelineStageTokens) {
		return true
	}
	return false
}

// scored pairs a candidate name with its total score, for stable sorting.
type scored struct {
	name           string
	score          int
	reachableCount int
}

// Rank returns an ordered, deduplicated list of candidate unit names, most
// likely top first (spec §4.4).
func Rank(ctx Context) []string {
	candidates := gatherCandidates(ctx)

	var kept []scored
	for _, name := range candidates {
		if isDisqualifiedKind(ctx, name) {
			continue
		}
		s := Score(name, ctx)
		if s <= rejectionThreshold {
			continue
		}
		kept = append(kept, scored{name: name, score: s, reachableCount: ctx.Graph.ReachableCount(name)})
	}

	// Ties broken by reachable-count, then lexicographic name (spec §4.4).
	sort.SliceStable(kept, func(i, j int) bool {
		if kept[i].score != kept[j].score {
			return kept[i].score > kept[j].score
		}
		if kept[i].reachableCount != kept[j].reachableCount {
			return kept[i].reachableCount > kept[j].reachableCount
		}
		return kept[i].name < kept[j].name
	})

	seen := collections.SetOf[string]()
	out := make([]string, 0, len(kept))
	for _, s := range kept {
		if seen.Contains(s.name) {
			continue
		}
		seen.Add(s.name)
		out = append(out, s.name)
	}
	return out
}
