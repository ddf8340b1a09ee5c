package diagnostic

import "regexp"

// vhdlLocated matches a GHDL-style analyzer error line:
//
//	file.vhd:12:5: entity "cpu" is not declared
//	file.vhd:3:1: unit "pp_types" not found
//	file.vhd:8:9: "fifo" already declared
var vhdlLocated = regexp.MustCompile(`(?m)^([^:\s]+):(\d+):(\d+):\s*(.*)$`)

var (
	vhdlNotFoundEntity = regexp.MustCompile(`(?i)entity\s+"?([A-Za-z_][\w.]*)"?\s+(?:is not declared|not found)`)
	vhdlNotFoundUnit   = regexp.MustCompile(`(?i)unit\s+"?([A-Za-z_][\w.]*)"?\s+not found`)
	vhdlAlreadyDecl    = regexp.MustCompile(`(?i)"?([A-Za-z_][\w.]*)"?\s+already declared`)
	vhdlSyntax         = regexp.MustCompile(`(?i)(syntax error|parse error|expecting)`)
)

// sourceReferencesUnit reports whether src contains a `use <lib>.name` or
// `entity <lib>.name` reference to name, and which kind of reference it is.
// Spec §4.6's VHDL disambiguation rule: a name appearing after `use` is a
// missing package; a name appearing after `entity` is a missing entity
// (ClassifyVHDLUnit lets the `use` reference win when both appear). The
// same bare name can be ambiguous on its own, so the resolver side
// supplies the referencing file's source text.
func sourceReferencesUnit(src, name string) (asPackage, asEntity bool) {
	useRe := regexp.MustCompile(`(?i)use\s+[\w]+\.` + regexp.QuoteMeta(name) + `\b`)
	entityRe := regexp.MustCompile(`(?i)entity\s+[\w]+\.` + regexp.QuoteMeta(name) + `\b`)
	return useRe.MatchString(src), entityRe.MatchString(src)
}

// ParseVHDL parses a GHDL/analyzer-style log into diagnostics. Because the
// analyzer log alone does not say whether an unresolved name is a package
// or an entity, ParseVHDL reports it as MissingInterface (a neutral "unit
// not found" kind); ClassifyVHDLUnit refines it once the referencing
// source line is available, per spec §4.6.
func ParseVHDL(log string) []Diagnostic {
	var out []Diagnostic
	for _, m := range vhdlLocated.FindAllStringSubmatch(log, -1) {
		file, msg := m[1], m[4]

		switch {
		case vhdlNotFoundEntity.MatchString(msg):
			name := vhdlNotFoundEntity.FindStringSubmatch(msg)[1]
			out = append(out, Diagnostic{Kind: MissingModule, Name: lastDotComponent(name), File: file})
		case vhdlNotFoundUnit.MatchString(msg):
			name := vhdlNotFoundUnit.FindStringSubmatch(msg)[1]
			out = append(out, Diagnostic{Kind: MissingInterface, Name: lastDotComponent(name), File: file})
		case vhdlAlreadyDecl.MatchString(msg):
			name := vhdlAlreadyDecl.FindStringSubmatch(msg)[1]
			out = append(out, Diagnostic{Kind: DuplicateDeclaration, Name: lastDotComponent(name), File: file})
		case vhdlSyntax.MatchString(msg):
			out = append(out, Diagnostic{Kind: SyntaxErrorIn, File: file})
		}
	}
	return out
}

// ClassifyVHDLUnit resolves a neutral MissingInterface diagnostic into
// MissingPackage or MissingModule by scanning the referencing file's
// source text for a `use lib.name` versus `entity lib.name` reference.
func ClassifyVHDLUnit(d Diagnostic, referencingSrc string) Diagnostic {
	if d.Kind != MissingInterface {
		return d
	}
	asPackage, asEntity := sourceReferencesUnit(referencingSrc, d.Name)
	switch {
	case asPackage:
		d.Kind = MissingPackage
	case asEntity:
		d.Kind = MissingModule
	}
	return d
}

func lastDotComponent(s string) string {
	last := s
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == '.' {
			last = s[i+1:]
			break
		}
	}
	return last
}
