// Package dedup implements the File Deduplicator (spec §4.9): given a set
// of candidate files and their declared symbols, it picks one provider per
// symbol by a path-quality score.
//
// Grounded directly on the favored/penalized path-token table the
// teacher's source_groups.go used to classify C/C++ sources (headers vs.
// implementation, vendored vs. first-party); the token vocabulary here is
// HDL-specific but the scoring shape — positive tokens, negative tokens,
// small extension and length tiebreaks — is the same idiom.
package dedup

import (
	"path/filepath"
	"sort"
	"strings"
)

var favoredTokens = []string{"src", "rtl", "core", "hdl", "ip", "lib"}
var penalizedTokens = []string{"test", "bench", "sim", "vendor", "example", "board", "fpga", "build", "third_party"}

// sourceExtensions get a small bonus over header-like extensions, since a
// provider's implementation file is preferred to a forward-declaration-only
// header when both declare the same symbol.
var sourceExtensions = map[string]bool{
	".v": true, ".sv": true, ".vhd": true, ".vhdl": true,
	".scala": true, ".bsv": true,
}

// Score computes the path-quality score spec §4.9 defines.
func Score(path string) int {
	lower := strings.ToLower(filepath.ToSlash(path))
	score := 0
	for _, tok := range favoredTokens {
		if strings.Contains(lower, "/"+tok+"/") || strings.HasPrefix(lower, tok+"/") {
			score += 10
		}
	}
	for _, tok := range penalizedTokens {
		if strings.Contains(lower, tok) {
			score -= 15
		}
	}
	if sourceExtensions[strings.ToLower(filepath.Ext(path))] {
		score += 3
	}
	// Small bonus for shorter paths: fewer path separators implies a
	// shallower, more likely first-party location.
	score -= strings.Count(lower, "/")
	return score
}

// best picks the highest-scoring file among candidates, breaking ties by
// lexicographic path for determinism (spec §8 property 9).
func best(candidates []string) string {
	sorted := append([]string(nil), candidates...)
	sort.Slice(sorted, func(i, j int) bool {
		si, sj := Score(sorted[i]), Score(sorted[j])
		if si != sj {
			return si > sj
		}
		return sorted[i] < sorted[j]
	})
	return sorted[0]
}

// BySymbol groups files by the symbols they declare and, for each symbol
// with more than one provider, keeps only the highest-scoring one. It
// returns the surviving file set (as a sorted, deduplicated slice) and the
// map of symbol to the file that was kept.
func BySymbol(symbolToFiles map[string][]string) (kept []string, winners map[string]string) {
	winners = make(map[string]string, len(symbolToFiles))
	keptSet := make(map[string]bool)
	for symbol, files := range symbolToFiles {
		if len(files) == 0 {
			continue
		}
		winner := best(files)
		winners[symbol] = winner
		keptSet[winner] = true
	}
	for f := range keptSet {
		kept = append(kept, f)
	}
	sort.Strings(kept)
	return kept, winners
}

// ByBasename is the fallback spec §4.9 names for when declared symbols are
// unknown: group files sharing a basename and keep only the best-scoring
// one from each group, leaving files with a unique basename untouched.
func ByBasename(files []string) []string {
	groups := make(map[string][]string)
	for _, f := range files {
		base := filepath.Base(f)
		groups[base] = append(groups[base], f)
	}
	var out []string
	for _, group := range groups {
		if len(group) == 1 {
			out = append(out, group[0])
			continue
		}
		out = append(out, best(group))
	}
	sort.Strings(out)
	return out
}
