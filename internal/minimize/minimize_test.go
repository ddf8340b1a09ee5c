package minimize

import (
	"context"
	"testing"

	"github.com/LSC-Unicamp/processor-ci-sub000/internal/compiler"
	"github.com/LSC-Unicamp/processor-ci-sub000/internal/hdl"
	"github.com/stretchr/testify/require"
)

func TestRunDropsUnneededFileButKeepsRequired(t *testing.T) {
	build := func(files, dirs []string, top string) compiler.Command {
		needed := false
		for _, f := range files {
			if f == "cpu.v" {
				needed = true
			}
		}
		if needed {
			return compiler.Command{Binary: "true"}
		}
		return compiler.Command{Binary: "false"}
	}

	result := Run(context.Background(), Input{
		Files:       []string{"cpu.v", "unused.v"},
		IncludeDirs: []string{"inc"},
		Top:         "cpu",
		Build:       build,
	})

	require.Contains(t, result.Files, "cpu.v")
	require.NotContains(t, result.Files, "unused.v")
}

func TestRunNeverRemovesTestbenchOrPackageFiles(t *testing.T) {
	table := hdl.NewTable()
	table.AddUnit(hdl.Unit{Identity: hdl.Identity{Name: "types_pkg", Flavor: hdl.FlavorVerilog}, Kind: hdl.KindPackage, File: "types_pkg.v"})

	build := func(files, dirs []string, top string) compiler.Command {
		for _, f := range files {
			if f == "cpu.v" {
				return compiler.Command{Binary: "true"}
			}
		}
		return compiler.Command{Binary: "false"}
	}

	result := Run(context.Background(), Input{
		Files:          []string{"cpu.v", "tb_cpu.v", "types_pkg.v"},
		TestbenchFiles: []string{"tb_cpu.v"},
		Table:          table,
		Top:            "cpu",
		Build:          build,
	})

	require.ElementsMatch(t, []string{"cpu.v", "tb_cpu.v", "types_pkg.v"}, result.Files)
}

func TestRunDropsUnneededIncludeDir(t *testing.T) {
	build := func(files, dirs []string, top string) compiler.Command {
		return compiler.Command{Binary: "true"}
	}

	result := Run(context.Background(), Input{
		Files:       []string{"cpu.v"},
		IncludeDirs: []string{"inc", "unused_inc"},
		Top:         "cpu",
		Build:       build,
	})

	require.Empty(t, result.IncludeDirs)
}
