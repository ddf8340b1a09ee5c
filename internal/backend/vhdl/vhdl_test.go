package vhdl

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDetectWorkingLibraryFallsBackToWork(t *testing.T) {
	lib := DetectWorkingLibrary(map[string]string{
		"a.vhd": "library ieee;\nuse ieee.std_logic_1164.all;\n",
	})
	require.Equal(t, DefaultLibrary, lib)
}

func TestDetectWorkingLibraryFindsNonDefault(t *testing.T) {
	lib := DetectWorkingLibrary(map[string]string{
		"a.vhd": "library ieee;\nlibrary my_project_lib;\n",
		"b.vhd": "library my_project_lib;\n",
	})
	require.Equal(t, "my_project_lib", lib)
}

func TestAnalyzeCommandIncludesStdAndWorkdir(t *testing.T) {
	cmd := AnalyzeCommand([]string{"a.vhd", "b.vhd"}, "tmp", DefaultLibrary)
	require.Equal(t, Binary, cmd.Binary)
	require.Contains(t, cmd.Args, "--std=08")
	require.Contains(t, cmd.Args, "--workdir=tmp")
	require.NotContains(t, cmd.Args, "--work=work")
}

func TestAnalyzeCommandAddsWorkFlagForNonDefaultLibrary(t *testing.T) {
	cmd := AnalyzeCommand([]string{"a.vhd"}, "tmp", "my_project_lib")
	require.Contains(t, cmd.Args, "--work=my_project_lib")
}
