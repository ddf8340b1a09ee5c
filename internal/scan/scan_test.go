package scan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/LSC-Unicamp/processor-ci-sub000/internal/hdl"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, rel string) {
	t.Helper()
	full := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte("// empty\n"), 0o644))
}

func TestScanExcludesTestbenchAndVendorDirs(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "rtl/cpu.v")
	writeFile(t, root, "rtl/cpu_tb.v")
	writeFile(t, root, "vendor/ip.v")
	writeFile(t, root, "tb/harness.v")

	res, err := Scan(root, hdl.FlavorVerilog)
	require.NoError(t, err)
	require.Equal(t, []string{"rtl/cpu.v"}, res.Files)
	require.Equal(t, []string{"rtl/cpu_tb.v"}, res.TestbenchFiles)
}

func TestScanReturnsErrNoSourcesWhenEmpty(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "docs/readme.md")

	_, err := Scan(root, hdl.FlavorVerilog)
	require.ErrorIs(t, err, ErrNoSources)
}

func TestDetectFlavorPicksMostMatchingFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.vhd")
	writeFile(t, root, "b.vhd")
	writeFile(t, root, "c.v")

	flavor, res, err := DetectFlavor(root)
	require.NoError(t, err)
	require.Equal(t, hdl.FlavorVHDL, flavor)
	require.Len(t, res.Files, 2)
}

func TestDetectFlavorIsDeterministicOnTies(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.v")
	writeFile(t, root, "a.vhd")

	var first hdl.Flavor
	for i := 0; i < 10; i++ {
		flavor, _, err := DetectFlavor(root)
		require.NoError(t, err)
		if i == 0 {
			first = flavor
		} else {
			require.Equal(t, first, flavor, "DetectFlavor must resolve ties the same way every run")
		}
	}
	// flavorOrder lists Verilog before VHDL, so a tie resolves to Verilog.
	require.Equal(t, hdl.FlavorVerilog, first)
}
