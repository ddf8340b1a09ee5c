package verilog

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCommandBuildsLintInvocation(t *testing.T) {
	cmd := Command([]string{"cpu.v", "alu.v"}, []string{"inc"}, "cpu", []string{"FAST"})
	require.Equal(t, Binary, cmd.Binary)
	require.Contains(t, cmd.Args, "--lint-only")
	require.Contains(t, cmd.Args, "--top-module")
	require.Contains(t, cmd.Args, "cpu")
	require.Contains(t, cmd.Args, "-Iinc")
	require.Contains(t, cmd.Args, "+define+FAST")
	require.Contains(t, cmd.Args, "cpu.v")
	require.Contains(t, cmd.Args, "alu.v")
}

func TestCommandOmitsEmptyIncludeDir(t *testing.T) {
	cmd := Command([]string{"cpu.v"}, []string{""}, "cpu", nil)
	for _, a := range cmd.Args {
		require.NotEqual(t, "-I", a)
	}
}
