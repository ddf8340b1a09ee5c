package hint

import (
	"context"
	"os"
)

var lookupEnv = os.LookupEnv

// Rerank consults the environment-configured Oracle (or the no-op default
// when the environment variable is unset) and reorders ranked via
// ApplyTiebreak. Callers that already hold an Oracle should call
// SuggestTop/ApplyTiebreak directly instead; this is the convenience path
// flavor backends use.
func Rerank(ctx context.Context, repoName string, ranked []string) []string {
	oracle := FromEnv(lookupEnv)
	suggestion, ok := oracle.SuggestTop(ctx, repoName, ranked)
	return ApplyTiebreak(ranked, suggestion, ok)
}

// ApplyTiebreak moves the oracle's suggestion to the front of ranked, but
// only when the suggestion is already present among the top candidates —
// the hint is consulted purely as a tie-break after the Ranker's own
// ordering (spec §1), never as authority to introduce a name the Ranker
// itself did not already consider plausible.
func ApplyTiebreak(ranked []string, suggestion string, ok bool) []string {
	if !ok || suggestion == "" {
		return ranked
	}
	idx := -1
	for i, name := range ranked {
		if name == suggestion {
			idx = i
			break
		}
	}
	if idx <= 0 {
		return ranked
	}
	out := make([]string, 0, len(ranked))
	out = append(out, suggestion)
	out = append(out, ranked[:idx]...)
	out = append(out, ranked[idx+1:]...)
	return out
}
