package extract

import (
	"regexp"
	"sort"

	"github.com/LSC-Unicamp/processor-ci-sub000/internal/hdl"
)

// verilogReserved is the keyword list instantiation matches are filtered
// against (spec §4.2). Not exhaustive of the 1800-2017 keyword set, but
// covers every keyword that could otherwise look like a <type>
// <instance_name> pair.
var verilogReserved = buildReserved(
	"module", "endmodule", "input", "output", "inout", "wire", "reg", "logic",
	"parameter", "localparam", "function", "endfunction", "task", "endtask",
	"begin", "end", "if", "else", "case", "casex", "casez", "endcase",
	"for", "while", "do", "generate", "endgenerate", "always", "always_ff",
	"always_comb", "always_latch", "assign", "initial", "final",
	"package", "endpackage", "interface", "endinterface", "modport",
	"import", "export", "typedef", "struct", "union", "enum", "class",
	"endclass", "program", "endprogram", "genvar", "integer", "real",
	"time", "signed", "unsigned", "defparam", "specify", "endspecify",
	"primitive", "endprimitive", "table", "endtable", "bit", "byte", "int",
	"shortint", "longint", "automatic", "static", "const", "return",
	"break", "continue", "tri", "supply0", "supply1", "posedge", "negedge",
	"default", "property", "endproperty", "sequence", "endsequence",
	"covergroup", "endgroup", "virtual", "extends", "implements",
	"pure", "protected", "local",
)

func buildReserved(words ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}

var (
	verilogDeclModule    = regexp.MustCompile(`\bmodule\s+([A-Za-z_][A-Za-z0-9_$]*)`)
	verilogDeclPackage   = regexp.MustCompile(`\bpackage\s+([A-Za-z_][A-Za-z0-9_$]*)\s*;`)
	verilogDeclInterface = regexp.MustCompile(`\binterface\s+([A-Za-z_][A-Za-z0-9_$]*)`)

	// <type> #(...) <instance> ( | <type> <instance> (
	verilogInst = regexp.MustCompile(`\b([A-Za-z_][A-Za-z0-9_$]*)\s*(?:#\s*\([^;{}]*?\)\s*)?\b([A-Za-z_][A-Za-z0-9_$]*)\s*\(`)
)

var verilogDecls = []declRule{
	{Kind: hdl.KindModule, Pattern: verilogDeclModule},
	{Kind: hdl.KindPackage, Pattern: verilogDeclPackage},
	{Kind: hdl.KindInterface, Pattern: verilogDeclInterface},
}

// markedOcc is a source-order occurrence of either a declaration or an
// instantiation. verilogInst has two capture groups (type, instance name)
// rather than engine.run's single-group contract, so the module/package/
// interface extraction is re-run here alongside it instead of reusing
// run() directly.
type markedOcc struct {
	pos    int
	isDecl bool
	kind   hdl.Kind
	name   string
}

// ExtractVerilog applies the Verilog/SV declaration and instantiation
// patterns (spec §4.2) to a file's source text, in source order, so each
// instantiation can be attributed to its nearest preceding module/package/
// interface declaration.
func ExtractVerilog(file, src string) Result {
	stripped := StripComments(hdl.FlavorVerilog, src)

	var occs []markedOcc
	for _, d := range verilogDecls {
		for _, m := range d.Pattern.FindAllStringSubmatchIndex(stripped, -1) {
			name := stripped[m[2]:m[3]]
			if _, bad := verilogReserved[name]; bad {
				continue
			}
			occs = append(occs, markedOcc{pos: m[0], isDecl: true, kind: d.Kind, name: name})
		}
	}
	for _, m := range verilogInst.FindAllStringSubmatchIndex(stripped, -1) {
		typeName := stripped[m[2]:m[3]]
		instName := stripped[m[4]:m[5]]
		if _, bad := verilogReserved[typeName]; bad {
			continue
		}
		if _, bad := verilogReserved[instName]; bad {
			continue
		}
		occs = append(occs, markedOcc{pos: m[0], isDecl: false, name: typeName})
	}
	sort.SliceStable(occs, func(i, j int) bool { return occs[i].pos < occs[j].pos })

	var res Result
	var currentParent *hdl.Identity
	for _, occ := range occs {
		if occ.isDecl {
			u := hdl.Unit{Identity: hdl.Identity{Name: occ.name, Flavor: hdl.FlavorVerilog}, Kind: occ.kind, File: file}
			res.Units = append(res.Units, u)
			id := u.Identity
			currentParent = &id
			continue
		}
		if currentParent == nil {
			continue
		}
		res.Instantiations = append(res.Instantiations, hdl.Instantiation{Parent: *currentParent, Child: occ.name})
	}
	return res
}
