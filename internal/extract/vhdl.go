package extract

import (
	"regexp"

	"github.com/LSC-Unicamp/processor-ci-sub000/internal/hdl"
)

var vhdlReserved = buildReserved(
	"entity", "architecture", "package", "body", "is", "end", "begin",
	"process", "signal", "variable", "constant", "generic", "port", "map",
	"component", "others", "work", "all", "library", "use", "type",
	"subtype", "function", "procedure", "return", "if", "then", "else",
	"elsif", "case", "when", "for", "loop", "generate", "others",
)

var (
	vhdlDeclEntity  = regexp.MustCompile(`(?i)\bentity\s+([A-Za-z_][A-Za-z0-9_]*)\s+is\b`)
	vhdlDeclPackage = regexp.MustCompile(`(?i)\bpackage\s+([A-Za-z_][A-Za-z0-9_]*)\s+is\b`)

	// label : entity lib.Name | label : component Name | label : Name
	// followed eventually by generic map or port map (direct instantiation).
	vhdlInst = regexp.MustCompile(`(?i)\b[A-Za-z_][A-Za-z0-9_]*\s*:\s*(?:entity\s+(?:[A-Za-z_][A-Za-z0-9_]*\.)?|component\s+)?([A-Za-z_][A-Za-z0-9_]*)\s*(?:generic map|port map)`)
)

var vhdlDecls = []declRule{
	{Kind: hdl.KindEntity, Pattern: vhdlDeclEntity},
	{Kind: hdl.KindPackage, Pattern: vhdlDeclPackage},
}

var vhdlInsts = []instRule{{Pattern: vhdlInst}}

// ExtractVHDL applies the VHDL entity/package declaration and
// entity/component-instantiation patterns (spec §4.2).
func ExtractVHDL(file, src string) Result {
	stripped := StripComments(hdl.FlavorVHDL, src)
	return run(file, hdl.FlavorVHDL, stripped, vhdlDecls, vhdlInsts, vhdlReserved)
}
