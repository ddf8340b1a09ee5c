package chisel

import (
	"testing"

	"github.com/LSC-Unicamp/processor-ci-sub000/internal/hdl"
	"github.com/stretchr/testify/require"
)

func TestMainClassCandidatesQualifiesWithPackage(t *testing.T) {
	table := hdl.NewTable()
	table.AddUnit(hdl.Unit{Identity: hdl.Identity{Name: "Cpu", Flavor: hdl.FlavorChisel}, Kind: hdl.KindChiselModule, File: "src/Cpu.scala"})
	sources := map[string]string{"src/Cpu.scala": "package soc.core\n\nclass Cpu extends Module\n"}

	classes := MainClassCandidates([]string{"Cpu"}, table, sources)
	require.Equal(t, []string{"soc.core.Cpu"}, classes)
}

func TestGenerateCommandSBT(t *testing.T) {
	cmd := GenerateCommand(SBT, "soc.core.Cpu", "")
	require.Equal(t, "sbt", cmd.Binary)
	require.Equal(t, []string{"runMain soc.core.Cpu"}, cmd.Args)
}

func TestGenerateCommandMillWithModule(t *testing.T) {
	cmd := GenerateCommand(Mill, "soc.core.Cpu", "cpu")
	require.Equal(t, "mill", cmd.Binary)
	require.Equal(t, []string{"cpu.runMain soc.core.Cpu"}, cmd.Args)
}
