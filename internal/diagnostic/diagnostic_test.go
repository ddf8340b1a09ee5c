package diagnostic

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseVerilogMissingInclude(t *testing.T) {
	log := `%Error: src/cpu.v:3:1: Cannot find include file: 'defs.vh'`
	diags := ParseVerilog(log)
	require.Len(t, diags, 1)
	require.Equal(t, MissingInclude, diags[0].Kind)
	require.Equal(t, "src/cpu.v", diags[0].IncludingFile)
	require.Equal(t, "defs.vh", diags[0].IncludePath)
}

func TestParseVerilogMissingModuleAndDuplicate(t *testing.T) {
	log := "%Error: src/top.v:10:1: Cannot find file containing module: 'decoder'\n" +
		"%Error: src/alu.v:1:1: Duplicate declaration of module: 'alu'\n"
	diags := ParseVerilog(log)
	require.Len(t, diags, 2)
	require.Equal(t, MissingModule, diags[0].Kind)
	require.Equal(t, "decoder", diags[0].Name)
	require.Equal(t, DuplicateDeclaration, diags[1].Kind)
	require.Equal(t, "src/alu.v", diags[1].File)
}

func TestParseVerilogSyntaxError(t *testing.T) {
	log := `%Error: src/cpu.v:42:3: syntax error, unexpected IDENTIFIER`
	diags := ParseVerilog(log)
	require.Len(t, diags, 1)
	require.Equal(t, SyntaxErrorIn, diags[0].Kind)
	require.Equal(t, "src/cpu.v", diags[0].File)
}

func TestParseVHDLUnitNotFoundClassifiesAsPackage(t *testing.T) {
	log := `cpu.vhd:5:1: unit "pp_types" not found`
	diags := ParseVHDL(log)
	require.Len(t, diags, 1)
	require.Equal(t, MissingInterface, diags[0].Kind)
	require.Equal(t, "pp_types", diags[0].Name)

	classified := ClassifyVHDLUnit(diags[0], "use work.pp_types;\n")
	require.Equal(t, MissingPackage, classified.Kind)
}

func TestParseVHDLUnitNotFoundClassifiesAsEntity(t *testing.T) {
	log := `cpu.vhd:5:1: unit "alu" not found`
	diags := ParseVHDL(log)
	require.Len(t, diags, 1)

	classified := ClassifyVHDLUnit(diags[0], "u0 : entity work.alu port map (...);\n")
	require.Equal(t, MissingModule, classified.Kind)
}

func TestParseVHDLAlreadyDeclared(t *testing.T) {
	log := `fifo.vhd:8:9: "fifo" already declared`
	diags := ParseVHDL(log)
	require.Len(t, diags, 1)
	require.Equal(t, DuplicateDeclaration, diags[0].Kind)
	require.Equal(t, "fifo", diags[0].Name)
}

func TestParseChiselNotFoundAndDuplicate(t *testing.T) {
	log := "[error] /repo/src/Cpu.scala:12:5: not found: type Decoder\n" +
		"[error] /repo/src/Cpu.scala:5:1: Cpu is already defined as class Cpu\n"
	diags := ParseChisel(log)
	require.Len(t, diags, 2)
	require.Equal(t, MissingModule, diags[0].Kind)
	require.Equal(t, "Decoder", diags[0].Name)
	require.Equal(t, DuplicateDeclaration, diags[1].Kind)
	require.Equal(t, "Cpu", diags[1].Name)
}

func TestParseChiselPackageMember(t *testing.T) {
	log := `[error] /repo/src/Cpu.scala:1:1: object fifo_pkg is not a member of package pkg`
	diags := ParseChisel(log)
	require.Len(t, diags, 1)
	require.Equal(t, MissingPackage, diags[0].Kind)
	require.Equal(t, "pkg", diags[0].Name)
}

func TestParseBluespecUnboundAndAmbiguous(t *testing.T) {
	log := "Error: \"cpu.bsv\", line 10, column 5: (G0004) Unbound variable `mkDecoder'\n" +
		"Error: \"cpu.bsv\", line 20, column 1: (S0017) Ambiguous conditional type\n"
	diags := ParseBluespec(log)
	require.Len(t, diags, 2)
	require.Equal(t, MissingModule, diags[0].Kind)
	require.Equal(t, "mkDecoder", diags[0].Name)
	require.Equal(t, AmbiguousConditionalType, diags[1].Kind)
}

func TestGroupByKindPreservesOrder(t *testing.T) {
	diags := []Diagnostic{
		{Kind: MissingModule, Name: "a"},
		{Kind: SyntaxErrorIn, File: "x.v"},
		{Kind: MissingModule, Name: "b"},
	}
	groups := GroupByKind(diags)
	require.Len(t, groups[MissingModule], 2)
	require.Equal(t, "a", groups[MissingModule][0].Name)
	require.Equal(t, "b", groups[MissingModule][1].Name)
}

func TestDiagnosticLessOrdersByPriorityThenName(t *testing.T) {
	include := Diagnostic{Kind: MissingInclude, IncludePath: "z.vh"}
	module := Diagnostic{Kind: MissingModule, Name: "a"}
	require.True(t, include.Less(module))
	require.False(t, module.Less(include))

	a := Diagnostic{Kind: MissingModule, Name: "a"}
	b := Diagnostic{Kind: MissingModule, Name: "b"}
	require.True(t, a.Less(b))
}
