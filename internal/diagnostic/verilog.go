package diagnostic

import (
	"regexp"
	"strings"
)

// verilogLine matches one Verilator-style diagnostic line: a leading
// %Error or %Warning tag, optionally suffixed with a short code, then a
// `file:line:col:` location, then the message (spec §6's output table).
var verilogLine = regexp.MustCompile(`(?m)^%(?:Error|Warning)(?:-[A-Z0-9]+)?:\s*([^:\s][^:]*):(\d+):(\d+):\s*(.*)$`)

var (
	verilogMissingInclude = regexp.MustCompile(`(?i)cannot find include file:?\s*['"]([^'"]+)['"]`)
	verilogMissingModule  = regexp.MustCompile(`(?i)cannot find file containing module:?\s*['"]([^'"]+)['"]`)
	verilogMissingPackage = regexp.MustCompile(`(?i)package\s*['"]([^'"]+)['"]\s*not found`)
	verilogDuplicate      = regexp.MustCompile(`(?i)duplicate declaration of (?:module|package|interface):?\s*['"]([^'"]+)['"]`)
	verilogUndefMacro     = regexp.MustCompile(`(?i)(?:define or directive not defined|undefined macro):?\s*['"]?([A-Za-z_][A-Za-z0-9_]*)['"]?`)
	verilogParamMismatch  = regexp.MustCompile(`(?i)(too many|too few|wrong number of) parameters`)
	verilogSyntaxError    = regexp.MustCompile(`(?i)syntax error`)
)

// ParseVerilog implements the Verilator diagnostic classification spec §4.6
// describes: the file that contains the failing `include, the file that
// instantiates a missing module, and the file that defines a duplicate are
// each distinguished by which file:line:col the message itself was
// attached to.
func ParseVerilog(log string) []Diagnostic {
	var out []Diagnostic
	for _, m := range verilogLine.FindAllStringSubmatch(log, -1) {
		file, msg := m[1], m[4]

		switch {
		case verilogMissingInclude.MatchString(msg):
			path := verilogMissingInclude.FindStringSubmatch(msg)[1]
			out = append(out, Diagnostic{Kind: MissingInclude, IncludingFile: file, IncludePath: path})
		case verilogMissingModule.MatchString(msg):
			name := verilogMissingModule.FindStringSubmatch(msg)[1]
			out = append(out, Diagnostic{Kind: MissingModule, Name: name, File: file})
		case verilogMissingPackage.MatchString(msg):
			name := verilogMissingPackage.FindStringSubmatch(msg)[1]
			out = append(out, Diagnostic{Kind: MissingPackage, Name: name})
		case verilogDuplicate.MatchString(msg):
			out = append(out, Diagnostic{Kind: DuplicateDeclaration, File: file})
		case verilogUndefMacro.MatchString(msg):
			out = append(out, Diagnostic{Kind: UndefinedMacroIn, File: file})
		case verilogParamMismatch.MatchString(msg):
			out = append(out, Diagnostic{Kind: ParamMismatchIn, File: file})
		case verilogSyntaxError.MatchString(msg):
			out = append(out, Diagnostic{Kind: SyntaxErrorIn, File: file})
		default:
			if strings.Contains(strings.ToLower(msg), "cannot find") && strings.Contains(strings.ToLower(msg), "package") {
				out = append(out, Diagnostic{Kind: UnresolvablePackageImportIn, File: file})
			}
		}
	}
	return out
}
