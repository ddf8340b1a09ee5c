// Package diagnostic implements the Diagnostic Parser (spec §4.6): it
// consumes one captured compiler log and returns an ordered list of typed
// diagnostics, each carrying the fix priority the Resolver (§4.7) applies
// them in.
package diagnostic

// Kind identifies a diagnostic variant (spec §3).
type Kind int

const (
	MissingInclude Kind = iota
	MissingModule
	MissingPackage
	MissingInterface
	MissingType // Bluespec unbound type / no instance
	DuplicateDeclaration
	SyntaxErrorIn
	ParamMismatchIn
	UndefinedMacroIn
	UnresolvablePackageImportIn
	AmbiguousConditionalType // Bluespec only
)

// priorityOf implements the fix order spec §4.7 step 5 lists, lowest
// number applied first:
//  1. missing include (resolvable)
//  2. missing package/entity/interface/type
//  3. duplicate declaration
//  4. syntax error in file
//  5. unsatisfiable include (also SyntaxErrorIn-shaped, same priority)
//  6. undefined macro / parameter mismatch / unresolvable package import
//  7. Bluespec ambiguous conditional type
var priorityOf = map[Kind]int{
	MissingInclude:              1,
	MissingPackage:              2,
	MissingInterface:            2,
	MissingModule:               2,
	MissingType:                 2,
	DuplicateDeclaration:        3,
	SyntaxErrorIn:               4,
	UndefinedMacroIn:            6,
	ParamMismatchIn:             6,
	UnresolvablePackageImportIn: 6,
	AmbiguousConditionalType:    7,
}

// Diagnostic is one typed error extracted from a compiler log (spec §3).
// Not every field is populated for every Kind; see the per-flavor Parse
// functions in this package for which fields each Kind sets.
type Diagnostic struct {
	Kind Kind

	// MissingInclude
	IncludingFile string
	IncludePath   string

	// MissingModule / MissingPackage / MissingInterface / MissingType /
	// UnresolvablePackageImportIn / AmbiguousConditionalType
	Name string

	// DuplicateDeclaration / SyntaxErrorIn / ParamMismatchIn /
	// UndefinedMacroIn / UnresolvablePackageImportIn / MissingType
	File string

	// ParamMismatchIn (optional) — the parent/consumer attributing the
	// mismatch, when the log names it.
	ParentFile string

	// AmbiguousConditionalType: the set of `ifdef` defines that gate the
	// required type.
	CandidateDefines []string
}

// Priority returns this diagnostic's fix-order priority; lower runs first.
func (d Diagnostic) Priority() int { return priorityOf[d.Kind] }

// Less implements collections.Ordered so a slice of Diagnostic can be
// pushed through a collections.PriorityQueue in fix-priority order, with a
// stable secondary ordering by Name/File so equal-priority diagnostics
// process deterministically (spec §8 property 9).
func (d Diagnostic) Less(other Diagnostic) bool {
	if d.Priority() != other.Priority() {
		return d.Priority() < other.Priority()
	}
	return d.sortKey() < other.sortKey()
}

func (d Diagnostic) sortKey() string {
	if d.Name != "" {
		return d.Name
	}
	if d.File != "" {
		return d.File
	}
	return d.IncludePath
}

// Parser parses one captured log into an ordered (by appearance) list of
// diagnostics. Each flavor backend supplies its own.
type Parser func(log string) []Diagnostic

// GroupByKind groups diagnostics by Kind, preserving each group's original
// relative order (spec §4.7 step 4: "Parse diagnostics. Group by type.").
func GroupByKind(diags []Diagnostic) map[Kind][]Diagnostic {
	groups := make(map[Kind][]Diagnostic)
	for _, d := range diags {
		groups[d.Kind] = append(groups[d.Kind], d)
	}
	return groups
}
