package diagnostic

import "regexp"

// chiselSbtLine matches one sbt/mill compiler error line:
//
//	[error] /repo/src/Cpu.scala:12:5: not found: type Decoder
//	[error] /repo/src/Cpu.scala:20:1: object fifo_pkg is not a member of package pkg
//	[error] /repo/src/Cpu.scala:5:1: Cpu is already defined as class Cpu
var chiselSbtLine = regexp.MustCompile(`(?m)^\[error\]\s*([^:\s]+):(\d+):(\d+):\s*(.*)$`)

var (
	chiselNotFoundType  = regexp.MustCompile(`(?i)not found:\s*(?:type|value|object)\s+([A-Za-z_]\w*)`)
	chiselNotMember     = regexp.MustCompile(`(?i)([A-Za-z_]\w*)\s+is not a member of package\s+([A-Za-z_][\w.]*)`)
	chiselAlreadyDef    = regexp.MustCompile(`(?i)([A-Za-z_]\w*)\s+is already defined`)
	chiselImportMissing = regexp.MustCompile(`(?i)object\s+([A-Za-z_]\w*)\s+is not a member of package\s+([A-Za-z_][\w.]*)`)
)

// ParseChisel parses an sbt/mill build log into diagnostics. Chisel and
// SpinalHDL both surface elaboration failures as ordinary Scala compiler
// errors, so one parser covers both.
func ParseChisel(log string) []Diagnostic {
	var out []Diagnostic
	for _, m := range chiselSbtLine.FindAllStringSubmatch(log, -1) {
		file, msg := m[1], m[4]

		switch {
		case chiselImportMissing.MatchString(msg):
			g := chiselImportMissing.FindStringSubmatch(msg)
			out = append(out, Diagnostic{Kind: UnresolvablePackageImportIn, Name: g[1], File: file})
		case chiselNotMember.MatchString(msg):
			g := chiselNotMember.FindStringSubmatch(msg)
			out = append(out, Diagnostic{Kind: MissingPackage, Name: g[2], File: file})
		case chiselNotFoundType.MatchString(msg):
			name := chiselNotFoundType.FindStringSubmatch(msg)[1]
			out = append(out, Diagnostic{Kind: MissingModule, Name: name, File: file})
		case chiselAlreadyDef.MatchString(msg):
			name := chiselAlreadyDef.FindStringSubmatch(msg)[1]
			out = append(out, Diagnostic{Kind: DuplicateDeclaration, Name: name, File: file})
		default:
			out = append(out, Diagnostic{Kind: SyntaxErrorIn, File: file})
		}
	}
	return out
}
