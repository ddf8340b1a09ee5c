package extract

import (
	"regexp"

	"github.com/LSC-Unicamp/processor-ci-sub000/internal/hdl"
)

var bluespecReserved = buildReserved(
	"if", "else", "case", "endcase", "for", "while", "rule", "endrule",
	"method", "endmethod", "interface", "endinterface", "return", "action",
	"endaction", "actionvalue", "endactionvalue", "function", "endfunction",
	"begin", "end", "let", "typedef", "struct", "enum", "package", "endpackage",
)

var (
	// module [attributes] mkName #(params) (IfcName ...);
	bluespecDeclModule = regexp.MustCompile(`\bmodule\s+(?:\[[^\]]*\]\s*)?(mk[A-Za-z0-9_]*)\s*(?:#\s*\([^)]*\)\s*)?\(`)

	// IfcType ident <- mkName(...)
	bluespecInst = regexp.MustCompile(`<-\s*(mk[A-Za-z0-9_]*)\s*\(`)
)

var bluespecDecls = []declRule{{Kind: hdl.KindBluespecModule, Pattern: bluespecDeclModule}}
var bluespecInsts = []instRule{{Pattern: bluespecInst}}

// ExtractBluespec applies the Bluespec module-declaration and
// instantiation patterns (spec §4.2). By convention the identifier begins
// with "mk"; the regex enforces this directly rather than relying on a
// reserved-word filter the way the other flavors do.
func ExtractBluespec(file, src string) Result {
	stripped := StripComments(hdl.FlavorBluespec, src)
	return run(file, hdl.FlavorBluespec, stripped, bluespecDecls, bluespecInsts, bluespecReserved)
}
