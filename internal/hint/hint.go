// Package hint implements the optional LLM hint oracle spec §6 describes:
// consulted purely as a tie-break among ranker candidates, never as
// authority, and entirely absent from the decision when its environment
// variable is unset.
//
// No teacher file grounds this — gazelle_cc has no analogue to an
// optional best-effort external suggestion service — so this is written
// directly from the spec's interface contract. The narrow interface shape
// (a single method, a no-op default, one concrete implementation gated by
// an environment variable) follows the general Go idiom the rest of the
// pack uses for optional collaborators, not a specific teacher file.
package hint

import (
	"context"
	"net/http"
	"time"
)

// EnvVar is the environment variable naming the hint service URL (spec
// §6: "The core reads one optional environment variable identifying an
// LLM hint service URL; when absent, the hint path is skipped").
const EnvVar = "PROCESSORCI_HINT_SERVICE_URL"

// Oracle suggests a top-module name among candidates. It is consulted
// only after the Ranker's own ordering, as a tie-break — never as
// authority (spec §1).
type Oracle interface {
	SuggestTop(ctx context.Context, repoName string, candidates []string) (string, bool)
}

// NoOp never has an opinion. It is the default Oracle when EnvVar is
// unset, so the core proceeds with heuristics only.
type NoOp struct{}

func (NoOp) SuggestTop(ctx context.Context, repoName string, candidates []string) (string, bool) {
	return "", false
}

// HTTPOracle posts the repo name and candidate list to a hint service and
// reads back a single suggested name. Any network failure is treated as
// "no opinion", never as a setup error — the hint path is always
// best-effort (spec §7: hint unavailability is not an error taxonomy
// entry at all, it degrades silently to heuristics).
type HTTPOracle struct {
	URL    string
	Client *http.Client
}

// FromEnv returns an HTTPOracle reading EnvVar, or NoOp when it is unset.
func FromEnv(lookup func(string) (string, bool)) Oracle {
	url, ok := lookup(EnvVar)
	if !ok || url == "" {
		return NoOp{}
	}
	client := &http.Client{Timeout: 5 * time.Second}
	return HTTPOracle{URL: url, Client: client}
}
