package bluespec

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCommandBuildsVerilogInvocation(t *testing.T) {
	cmd := Command([]string{"cpu.bsv"}, []string{"lib", "vendor"}, "mkCpu", nil, "cpu.bsv")
	require.Equal(t, Binary, cmd.Binary)
	require.Contains(t, cmd.Args, "-verilog")
	require.Contains(t, cmd.Args, "mkCpu")
	require.Contains(t, cmd.Args, "-aggressive-conditions")
	require.Contains(t, cmd.Args, "+lib:vendor")
	require.Contains(t, cmd.Args, "cpu.bsv")
}

func TestCommandAddsDefines(t *testing.T) {
	cmd := Command([]string{"cpu.bsv"}, nil, "mkCpu", []string{"FAST_SIM"}, "")
	require.Contains(t, cmd.Args, "-D")
	require.Contains(t, cmd.Args, "FAST_SIM")
}
