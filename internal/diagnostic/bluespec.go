package diagnostic

import "regexp"

// bluespecLine matches one bsc error line:
//
//	Error: "cpu.bsv", line 10, column 5: (G0004) Unbound variable `mkDecoder'
//	Error: "cpu.bsv", line 3, column 1: (S0080) Duplicate definition of `mkFifo'
//	Error: "cpu.bsv", line 7, column 1: (S0017) Ambiguous conditional type
var bluespecLine = regexp.MustCompile(`(?m)^Error:\s*"([^"]+)",\s*line\s*(\d+)(?:,\s*column\s*(\d+))?:\s*\(([A-Z]\d+)\)\s*(.*)$`)

var (
	bluespecUnbound    = regexp.MustCompile("(?i)unbound variable `([A-Za-z_][\\w]*)'")
	bluespecDuplicate  = regexp.MustCompile("(?i)duplicate definition of `([A-Za-z_][\\w]*)'")
	bluespecNoInstance = regexp.MustCompile("(?i)no instance for|unbound type")
)

// ParseBluespec parses a bsc compiler log into diagnostics. The `(S0017)`
// code is bsc's ambiguous-type-under-conditional-compilation diagnostic,
// unique to Bluespec among the four flavors (spec §4.6, §9's supplemented
// feature for headless `ifdef` disambiguation).
func ParseBluespec(log string) []Diagnostic {
	var out []Diagnostic
	for _, m := range bluespecLine.FindAllStringSubmatch(log, -1) {
		file, code, msg := m[1], m[4], m[5]

		switch {
		case code == "S0017":
			out = append(out, Diagnostic{Kind: AmbiguousConditionalType, File: file})
		case bluespecUnbound.MatchString(msg):
			name := bluespecUnbound.FindStringSubmatch(msg)[1]
			out = append(out, Diagnostic{Kind: MissingModule, Name: name, File: file})
		case bluespecDuplicate.MatchString(msg):
			name := bluespecDuplicate.FindStringSubmatch(msg)[1]
			out = append(out, Diagnostic{Kind: DuplicateDeclaration, Name: name, File: file})
		case bluespecNoInstance.MatchString(msg):
			out = append(out, Diagnostic{Kind: MissingType, File: file})
		default:
			out = append(out, Diagnostic{Kind: SyntaxErrorIn, File: file})
		}
	}
	return out
}
