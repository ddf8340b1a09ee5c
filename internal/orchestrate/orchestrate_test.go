package orchestrate

import (
	"bytes"
	"context"
	"log"
	"testing"

	"github.com/LSC-Unicamp/processor-ci-sub000/internal/compiler"
	"github.com/LSC-Unicamp/processor-ci-sub000/internal/hdl"
	"github.com/LSC-Unicamp/processor-ci-sub000/internal/resolve"
	"github.com/stretchr/testify/require"
)

func resolveUniverseFor(files ...string) resolve.Universe {
	sources := make(map[string]string, len(files))
	for _, f := range files {
		sources[f] = ""
	}
	return resolve.Universe{
		Table:     hdl.NewTable(),
		Sources:   sources,
		Basenames: map[string][]string{},
	}
}

func TestRunAcceptsFirstCleanCandidate(t *testing.T) {
	resolveBuild := func(files, dirs []string, top string, defines []string) compiler.Command {
		if top == "cpu" {
			return compiler.Command{Binary: "true"}
		}
		return compiler.Command{Binary: "false"}
	}
	minimizeBuild := func(files, dirs []string, top string) compiler.Command {
		return compiler.Command{Binary: "true"}
	}

	result := Run(context.Background(), Input{
		Candidates:      []string{"alu", "cpu"},
		Flavor:          hdl.FlavorVerilog,
		InitialFiles:    []string{"top.v"},
		ResolveUniverse: resolveUniverseFor("top.v"),
		ResolveBuild:    resolveBuild,
		MinimizeBuild:   minimizeBuild,
	})

	require.True(t, result.Success)
	require.Equal(t, "cpu", result.Top)
	require.Len(t, result.Attempts, 2)
	require.Equal(t, Failed, result.Attempts[0].FinalState)
	require.Equal(t, Accepted, result.Attempts[1].FinalState)
}

func TestRunFailsWhenNoCandidateCompiles(t *testing.T) {
	resolveBuild := func(files, dirs []string, top string, defines []string) compiler.Command {
		return compiler.Command{Binary: "false"}
	}
	minimizeBuild := func(files, dirs []string, top string) compiler.Command {
		return compiler.Command{Binary: "true"}
	}

	result := Run(context.Background(), Input{
		Candidates:      []string{"alu", "cpu"},
		Flavor:          hdl.FlavorVerilog,
		InitialFiles:    []string{"top.v"},
		ResolveUniverse: resolveUniverseFor("top.v"),
		ResolveBuild:    resolveBuild,
		MinimizeBuild:   minimizeBuild,
	})

	require.False(t, result.Success)
	require.Len(t, result.Attempts, 2)
}

func TestRunLogsAuditTrailToInjectedLogger(t *testing.T) {
	resolveBuild := func(files, dirs []string, top string, defines []string) compiler.Command {
		return compiler.Command{Binary: "sh", Args: []string{"-c", "echo no top found; exit 1"}}
	}
	minimizeBuild := func(files, dirs []string, top string) compiler.Command {
		return compiler.Command{Binary: "true"}
	}

	var buf bytes.Buffer
	result := Run(context.Background(), Input{
		Candidates:      []string{"alu"},
		Flavor:          hdl.FlavorVerilog,
		InitialFiles:    []string{"top.v"},
		ResolveUniverse: resolveUniverseFor("top.v"),
		ResolveBuild:    resolveBuild,
		MinimizeBuild:   minimizeBuild,
		Logger:          log.New(&buf, "", 0),
	})

	require.False(t, result.Success)
	require.Contains(t, buf.String(), "alu")
	require.Contains(t, buf.String(), "no top found")
}
