// Package orchestrate implements the Orchestrator (spec §4.11): for each
// ranked top-module candidate, in rank order, it drives the
// Seeded->Resolving->Minimizing->Verifying->Accepted|Rolled-Back|Failed
// state machine (§4.10's table), sharing one blacklist across every
// candidate attempt, and emits the first Accepted outcome as the final
// Configuration Result.
//
// Grounded on spec §4.11 and the §4.10 state table directly: gazelle_cc
// has nothing that drives a bounded multi-candidate retry loop with a
// threaded cross-attempt blacklist, since it only ever has one BUILD graph
// to produce, not a ranked list of guesses to try in turn.
package orchestrate

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	"github.com/LSC-Unicamp/processor-ci-sub000/internal/compiler"
	"github.com/LSC-Unicamp/processor-ci-sub000/internal/hdl"
	"github.com/LSC-Unicamp/processor-ci-sub000/internal/minimize"
	"github.com/LSC-Unicamp/processor-ci-sub000/internal/resolve"
)

// defaultLogger is used whenever Input.Logger is left nil, so tests (and
// callers that only want the returned Result) never have to construct one
// just to satisfy Run.
var defaultLogger = log.New(os.Stderr, "orchestrate: ", log.LstdFlags)

// AttemptState names a step in the per-candidate state machine (spec
// §4.10's table, reused here as "per attempted top").
type AttemptState int

const (
	Seeded AttemptState = iota
	Resolving
	Minimizing
	Verifying
	Accepted
	RolledBack
	Failed
)

func (s AttemptState) String() string {
	switch s {
	case Seeded:
		return "seeded"
	case Resolving:
		return "resolving"
	case Minimizing:
		return "minimizing"
	case Verifying:
		return "verifying"
	case Accepted:
		return "accepted"
	case RolledBack:
		return "rolled_back"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// DefaultCandidateCap bounds how many ranked candidates are attempted
// (spec §4.11: "up to an orchestrator-wide candidate cap (default 10)").
const DefaultCandidateCap = 10

// Attempt is one candidate's full run through the state machine, kept for
// diagnostics even when it did not produce the accepted result.
type Attempt struct {
	Top         string
	FinalState  AttemptState
	ResolveOut  resolve.Outcome
	MinimizeOut minimize.Result
	VerifyClean bool
}

// Result is the Orchestrator's final emitted tuple (spec §4.11).
type Result struct {
	Success     bool
	Top         string
	Files       []string
	IncludeDirs []string
	Defines     []string
	Flavor      hdl.Flavor
	LastLog     string
	Attempts    []Attempt
}

// Input bundles everything one Orchestrator run needs across every
// candidate attempt.
type Input struct {
	Candidates           []string
	Flavor               hdl.Flavor
	CandidateCap         int
	InitialFiles         []string
	IncludeDirs          []string
	TestbenchFiles       []string
	ResolveUniverse      resolve.Universe
	ResolveBuild         resolve.BuildCommand
	MinimizeBuild        minimize.BuildCommand
	MaxResolveIterations int
	ResolveTimeout       time.Duration
	Root                 string
	// Logger receives one line per attempt's outcome, plus the final
	// captured log when every candidate fails (spec §7's audit trail).
	// Left nil, Run falls back to defaultLogger; tests inject their own
	// *log.Logger to capture output instead of writing to stderr.
	Logger *log.Logger
}

// Run drives the candidates in rank order through Seeded->Accepted (or
// Failed), sharing one blacklist across every attempt (spec §4.11: "a file
// that is toxic for top A is toxic for top B").
func Run(ctx context.Context, in Input) Result {
	logger := in.Logger
	if logger == nil {
		logger = defaultLogger
	}

	candidateCap := in.CandidateCap
	if candidateCap <= 0 {
		candidateCap = DefaultCandidateCap
	}
	candidates := in.Candidates
	if len(candidates) > candidateCap {
		candidates = candidates[:candidateCap]
	}

	var blacklist []string
	var lastLog string
	var attempts []Attempt

	for _, top := range candidates {
		attempt := Attempt{Top: top, FinalState: Seeded}

		attempt.FinalState = Resolving
		resolveOut := resolve.Resolve(ctx, resolve.Input{
			Root:             in.Root,
			Files:            in.InitialFiles,
			IncludeDirs:      in.IncludeDirs,
			Top:              top,
			Flavor:           in.Flavor,
			MaxIterations:    in.MaxResolveIterations,
			Timeout:          in.ResolveTimeout,
			Universe:         in.ResolveUniverse,
			Build:            in.ResolveBuild,
			InitialBlacklist: blacklist,
		})
		attempt.ResolveOut = resolveOut
		blacklist = resolveOut.Blacklist
		lastLog = resolveOut.Log

		if !resolveOut.Success {
			attempt.FinalState = Failed
			attempts = append(attempts, attempt)
			logger.Printf("candidate %q failed to resolve after %d iteration(s)", top, resolveOut.Iterations)
			continue
		}
		logger.Printf("candidate %q resolved cleanly after %d iteration(s)", top, resolveOut.Iterations)

		attempt.FinalState = Minimizing
		minOut := minimize.Run(ctx, minimize.Input{
			Root:           in.Root,
			Files:          resolveOut.Files,
			IncludeDirs:    resolveOut.IncludeDirs,
			Top:            top,
			Flavor:         in.Flavor,
			TestbenchFiles: in.TestbenchFiles,
			Table:          in.ResolveUniverse.Table,
			Build:          in.MinimizeBuild,
		})
		attempt.MinimizeOut = minOut

		attempt.FinalState = Verifying
		verifyCmd := in.MinimizeBuild(minOut.Files, minOut.IncludeDirs, top)
		verifyCmd.Dir = in.Root
		clean := compiler.Run(ctx, verifyCmd, nil).Clean()
		attempt.VerifyClean = clean

		finalFiles, finalDirs := minOut.Files, minOut.IncludeDirs
		if !clean {
			// Rolled-Back: revert to the pre-minimize clean set, which is
			// known-good by construction (spec §4.10's Verifying row).
			finalFiles, finalDirs = resolveOut.Files, resolveOut.IncludeDirs
			attempt.FinalState = RolledBack
			logger.Printf("candidate %q rolled back after minimize verification failed", top)
		}

		attempt.FinalState = Accepted
		attempts = append(attempts, attempt)
		logger.Printf("candidate %q accepted with %d file(s)", top, len(finalFiles))
		return Result{
			Success:     true,
			Top:         top,
			Files:       finalFiles,
			IncludeDirs: finalDirs,
			Defines:     resolveOut.Defines,
			Flavor:      in.Flavor,
			LastLog:     lastLog,
			Attempts:    attempts,
		}
	}

	logger.Printf("no candidate reached accepted after %d attempt(s); last log:\n%s", len(attempts), strings.TrimSpace(lastLog))
	return Result{Success: false, Flavor: in.Flavor, LastLog: lastLog, Attempts: attempts}
}
