package extract

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/LSC-Unicamp/processor-ci-sub000/internal/hdl"
)

func TestExtractVerilogModuleAndInstantiation(t *testing.T) {
	src := `
		// a tiny cpu
		module cpu(input clk, output [7:0] out);
			alu #(.WIDTH(8)) u_alu (.a(a), .b(b), .y(out));
		endmodule
	`
	res := ExtractVerilog("rtl/cpu.v", src)
	require.Len(t, res.Units, 1)
	require.Equal(t, "cpu", res.Units[0].Name)
	require.Equal(t, hdl.KindModule, res.Units[0].Kind)
	require.Len(t, res.Instantiations, 1)
	require.Equal(t, "alu", res.Instantiations[0].Child)
	require.Equal(t, "cpu", res.Instantiations[0].Parent.Name)
}

func TestExtractVerilogPackage(t *testing.T) {
	src := `
		package types_pkg;
			typedef logic [31:0] word_t;
		endpackage
	`
	res := ExtractVerilog("rtl/types_pkg.sv", src)
	require.Len(t, res.Units, 1)
	require.Equal(t, hdl.KindPackage, res.Units[0].Kind)
}

func TestExtractVerilogIgnoresReservedWords(t *testing.T) {
	src := `
		module top();
			if (a) begin
				assign b = 1;
			end
		endmodule
	`
	res := ExtractVerilog("rtl/top.v", src)
	require.Len(t, res.Units, 1)
	require.Empty(t, res.Instantiations)
}

func TestExtractVHDLEntityAndInstantiation(t *testing.T) {
	src := `
		entity pp_potato is
		end entity;
		architecture rtl of pp_potato is
		begin
			u_types: entity work.pp_types
				port map (clk => clk);
		end architecture;
	`
	res := ExtractVHDL("src/pp_potato.vhd", src)
	require.Len(t, res.Units, 1)
	require.Equal(t, "pp_potato", res.Units[0].Name)
	require.Len(t, res.Instantiations, 1)
	require.Equal(t, "pp_types", res.Instantiations[0].Child)
}

func TestExtractVHDLPackage(t *testing.T) {
	src := "package pp_types is\n  type word is range 0 to 31;\nend package;\n"
	res := ExtractVHDL("src/pp_types.vhd", src)
	require.Len(t, res.Units, 1)
	require.Equal(t, hdl.KindPackage, res.Units[0].Kind)
}

func TestExtractChiselTransitiveModule(t *testing.T) {
	src := `
		class MyCoreBase extends Module {}
		class MyCore extends MyCoreBase {
			val alu = Module(new ALU())
		}
	`
	res := ExtractChisel("src/MyCore.scala", src)
	names := map[string]bool{}
	for _, u := range res.Units {
		names[u.Name] = true
	}
	require.True(t, names["MyCoreBase"])
	require.True(t, names["MyCore"])
	require.Len(t, res.Instantiations, 1)
	require.Equal(t, "ALU", res.Instantiations[0].Child)
	require.Equal(t, "MyCore", res.Instantiations[0].Parent.Name)
}

func TestExtractBluespecModuleAndInstantiation(t *testing.T) {
	src := `
		module mkTop(TopIfc);
			CoreIfc core <- mkCore();
		endmodule
	`
	res := ExtractBluespec("bsv/mkTop.bsv", src)
	require.Len(t, res.Units, 1)
	require.Equal(t, "mkTop", res.Units[0].Name)
	require.Len(t, res.Instantiations, 1)
	require.Equal(t, "mkCore", res.Instantiations[0].Child)
}

func TestStripCommentsPreservesLineStructure(t *testing.T) {
	src := "module a(); // trailing\nendmodule /* block */\n"
	stripped := StripComments(hdl.FlavorVerilog, src)
	require.NotContains(t, stripped, "trailing")
	require.NotContains(t, stripped, "block")
	require.Contains(t, stripped, "module a()")
	require.Contains(t, stripped, "endmodule")
}
