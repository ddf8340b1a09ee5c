package rank

import (
	"strings"
)

// Rule is a pure scoring function: given a candidate name and the ranking
// Context, it returns the delta it contributes to the candidate's total
// score. Spec §9 calls for exactly this re-architecture of the teacher-
// style "ad-hoc scoring with repeated conditionals" into a pipeline of
// pure rules; the list below is the policy, Score's summation is the
// mechanism.
//
// Weights here follow config_generator_core.py (see DESIGN.md's Open
// Question decision: the two parallel Python implementations disagree on
// exact weights, and this one was chosen as the canonical policy).
type Rule func(name string, ctx Context) int

var architecturalTokens = []string{"core", "cpu", "processor", "riscv"}

var peripheralTokens = []string{"uart", "spi", "cache", "fifo", "alu", "mul", "div", "timer", "gpio", "dma", "i2c"}

var pipelineStageTokens = []string{"fetch", "decode", "issue", "rob", "writeback", "commit", "rename", "dispatch", "execute"}

var testBenchTokens = []string{"test", "tb", "bench", "sim", "mock", "stub"}

var frameworkInfraTokens = []string{"base", "bundle", "ifc", "interface", "util", "utils", "helper", "common", "pkg", "package"}

var favoredPathTokens = []string{"rtl", "src", "core"}
var penalizedPathTokens = []string{"test", "bench", "sim", "fpga", "board", "vendor"}

func containsToken(haystack string, tokens []string) bool {
	lower := strings.ToLower(haystack)
	for _, tok := range tokens {
		if strings.Contains(lower, tok) {
			return true
		}
	}
	return false
}

// ruleReachability rewards candidates that sit high in the instantiation
// tree: the more units reachable from a candidate, the more likely it is
// the design root.
func ruleReachability(name string, ctx Context) int {
	count := ctx.Graph.ReachableCount(name)
	if count > 20 {
		count = 20
	}
	return count * 2
}

// ruleExactRepoNameMatch: exact-equal-to-repo-name outranks contains-repo-name.
func ruleExactRepoNameMatch(name string, ctx Context) int {
	norm := normalize(name)
	repoNorm := normalize(ctx.RepoName)
	if repoNorm == "" || norm == "" {
		return 0
	}
	switch {
	case norm == repoNorm:
		return 50
	case strings.Contains(norm, repoNorm) || strings.Contains(repoNorm, norm):
		return 20
	default:
		return 0
	}
}

// ruleWrapperNaming: a name of the form mk<Repo> or <Repo>Core outranks a
// bare "Top".
func ruleWrapperNaming(name string, ctx Context) int {
	repoNorm := normalize(ctx.RepoName)
	lower := strings.ToLower(name)
	if repoNorm == "" {
		return 0
	}
	if strings.HasPrefix(lower, "mk"+repoNorm) || strings.HasSuffix(lower, repoNorm+"core") {
		return 30
	}
	if lower == "top" {
		return 10
	}
	return 0
}

// ruleArchitecturalTokens rewards CPU/core-shaped names, but demotes
// soc/system relative to core: both get a bonus, core's is larger.
func ruleArchitecturalTokens(name string, ctx Context) int {
	lower := strings.ToLower(name)
	score := 0
	if containsToken(lower, architecturalTokens) {
		score += 15
	}
	if strings.Contains(lower, "soc") || strings.Contains(lower, "system") {
		score += 5 // demoted relative to "core"'s +15
	}
	return score
}

// rulePeripheralPenalty penalizes peripheral/functional-unit names — these
// are almost never the design root.
func rulePeripheralPenalty(name string, ctx Context) int {
	if containsToken(name, peripheralTokens) {
		return -25
	}
	return 0
}

// rulePipelineStagePenalty penalizes micro-pipeline-stage names.
func rulePipelineStagePenalty(name string, ctx Context) int {
	if containsToken(name, pipelineStageTokens) {
		return -30
	}
	return 0
}

// ruleTestBenchPenalty penalizes test/bench-shaped names.
func ruleTestBenchPenalty(name string, ctx Context) int {
	if containsToken(name, testBenchTokens) {
		return -40
	}
	return 0
}

// ruleFrameworkInfraPenalty penalizes framework-infrastructure shaped names
// (interfaces, bundles, base classes, utility packages).
func ruleFrameworkInfraPenalty(name string, ctx Context) int {
	if containsToken(name, frameworkInfraTokens) {
		return -15
	}
	return 0
}

// rulePathTokens favors declaring-file path tokens rtl/src/core and
// penalizes test/bench/sim/fpga/board/vendor.
func rulePathTokens(name string, ctx Context) int {
	file := ctx.fileFor(name)
	if file == "" {
		return 0
	}
	score := 0
	if containsToken(file, favoredPathTokens) {
		score += 10
	}
	if containsToken(file, penalizedPathTokens) {
		score -= 20
	}
	return score
}

// ruleParentCountShape rewards the "zero, one, or two parents" shape spec
// §4.4 phase 1 uses for candidate gathering — a design root is rarely
// instantiated by many things.
func ruleParentCountShape(name string, ctx Context) int {
	n := len(ctx.Graph.ParentsOf(name))
	switch {
	case n == 0:
		return 15
	case n <= 2:
		return 5
	default:
		return -10
	}
}

// Rules is the ordered rule pipeline applied by Score.
var Rules = []Rule{
	ruleReachability,
	ruleExactRepoNameMatch,
	ruleWrapperNaming,
	ruleArchitecturalTokens,
	rulePeripheralPenalty,
	rulePipelineStagePenalty,
	ruleTestBenchPenalty,
	ruleFrameworkInfraPenalty,
	rulePathTokens,
	ruleParentCountShape,
}

// Score sums every rule's delta for a candidate.
func Score(name string, ctx Context) int {
	total := 0
	for _, r := range Rules {
		total += r(name, ctx)
	}
	return total
}

// normalize strips non-alphanumerics and common cpu/core/top affixes, per
// spec §4.4 phase 1's repo-name fuzzy-match normalization.
func normalize(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	normalized := b.String()
	for _, affix := range []string{"cpu", "core", "top"} {
		normalized = strings.TrimPrefix(normalized, affix)
		normalized = strings.TrimSuffix(normalized, affix)
	}
	return normalized
}
