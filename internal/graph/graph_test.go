package graph

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/LSC-Unicamp/processor-ci-sub000/internal/hdl"
)

func TestFromTableDropsUnresolvedChildren(t *testing.T) {
	table := hdl.NewTable()
	cpu := hdl.Identity{Name: "cpu", Flavor: hdl.FlavorVerilog}
	alu := hdl.Identity{Name: "alu", Flavor: hdl.FlavorVerilog}
	table.AddUnit(hdl.Unit{Identity: cpu, Kind: hdl.KindModule, File: "rtl/cpu.v"})
	table.AddUnit(hdl.Unit{Identity: alu, Kind: hdl.KindModule, File: "rtl/alu.v"})
	table.AddInstantiation(cpu, "alu")
	table.AddInstantiation(cpu, "missing_thing")

	g := FromTable(table)
	require.ElementsMatch(t, []string{"alu"}, g.ChildrenOf("cpu"))
	require.ElementsMatch(t, []string{"cpu"}, g.ParentsOf("alu"))
	require.Empty(t, g.ChildrenOf("missing_thing"))
}

func TestReachableCountHandlesCycles(t *testing.T) {
	g := New([]Edge{{Parent: "a", Child: "b"}, {Parent: "b", Child: "a"}})
	require.Equal(t, 1, g.ReachableCount("a"))
	require.Equal(t, 1, g.ReachableCount("b"))
}

func TestReachableCountExcludesStart(t *testing.T) {
	g := New([]Edge{{Parent: "top", Child: "mid"}, {Parent: "mid", Child: "leaf"}})
	require.Equal(t, 2, g.ReachableCount("top"))
	require.Equal(t, 0, g.ReachableCount("leaf"))
}

func TestEveryNameHasBothMaps(t *testing.T) {
	g := New([]Edge{{Parent: "a", Child: "b"}})
	for _, name := range g.Names() {
		_ = g.ChildrenOf(name)
		_ = g.ParentsOf(name)
	}
	require.ElementsMatch(t, []string{"a", "b"}, g.Names())
}
