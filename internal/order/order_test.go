package order

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOrderPutsPackageBeforeConsumer(t *testing.T) {
	files := []string{"consumer.sv", "pkg.sv"}
	src := map[string]string{
		"pkg.sv":      "package types_pkg;\nendpackage\n",
		"consumer.sv": "module consumer;\nimport types_pkg::*;\nendmodule\n",
	}
	out := Order(files, src)
	require.Equal(t, []string{"pkg.sv", "consumer.sv"}, out)
}

func TestOrderHandlesDefineConstraint(t *testing.T) {
	files := []string{"user.sv", "defs.sv"}
	src := map[string]string{
		"defs.sv": "`define WIDTH 32\n",
		"user.sv": "`ifdef WIDTH\n`error\n`endif\n",
	}
	out := Order(files, src)
	require.Equal(t, []string{"defs.sv", "user.sv"}, out)
}

func TestOrderFallsBackToOriginalOnCycle(t *testing.T) {
	files := []string{"a.sv", "b.sv"}
	src := map[string]string{
		"a.sv": "package a_pkg;\nendpackage\nimport b_pkg::*;\n",
		"b.sv": "package b_pkg;\nendpackage\nimport a_pkg::*;\n",
	}
	out := Order(files, src)
	require.Len(t, out, 2)
}

func TestVHDLStateInitialOrderPackagesFirst(t *testing.T) {
	files := []string{"cpu.vhd", "pp_types.vhd"}
	src := map[string]string{
		"cpu.vhd":      "entity cpu is\nend entity;\n",
		"pp_types.vhd": "package pp_types is\nend package;\n",
	}
	state := NewVHDLState(files, src)
	require.Equal(t, []string{"pp_types.vhd", "cpu.vhd"}, state.Order(files, src))
}

func TestVHDLStateConstrainInsertsBeforeEarliest(t *testing.T) {
	files := []string{"a.vhd", "b.vhd", "c.vhd"}
	src := map[string]string{"a.vhd": "", "b.vhd": "", "c.vhd": ""}
	state := NewVHDLState(files, src)
	state.Constrain("c.vhd", "a.vhd")
	require.Equal(t, []string{"c.vhd", "a.vhd", "b.vhd"}, state.Order(files, src))
}

func TestVHDLStatePreservesOrderWhenFilesUnchanged(t *testing.T) {
	files := []string{"a.vhd", "b.vhd"}
	src := map[string]string{"a.vhd": "", "b.vhd": ""}
	state := NewVHDLState(files, src)
	state.Constrain("b.vhd", "a.vhd")
	first := state.Order(files, src)
	second := state.Order(files, src)
	require.Equal(t, first, second)
}
