// Package extract implements the Lexical Extractor (spec §4.2): fixed,
// per-flavor regex patterns applied to comment-stripped source text to
// recover unit declarations and instantiation edges. The extractor is
// pure — identical inputs yield identical outputs (spec §4.2) — so every
// Extract function here takes only a file path and its text and returns
// data, with no filesystem or global state touched.
package extract

import (
	"regexp"
	"sort"

	"github.com/LSC-Unicamp/processor-ci-sub000/internal/hdl"
)

// declRule recognizes one declaration form. Pattern must have exactly one
// capturing group: the declared name.
type declRule struct {
	Kind    hdl.Kind
	Pattern *regexp.Regexp
}

// instRule recognizes one instantiation form. Pattern must have exactly
// one capturing group: the instantiated type name.
type instRule struct {
	Pattern *regexp.Regexp
}

// occurrence is an internal bookkeeping record used to walk declarations
// and instantiations in source order so that each instantiation can be
// attributed to its nearest enclosing declaration.
type occurrence struct {
	pos    int
	isDecl bool
	kind   hdl.Kind
	name   string
}

// Result is one file's extraction output.
type Result struct {
	Units          []hdl.Unit
	Instantiations []hdl.Instantiation
}

// run applies decl and inst rules to stripped source text, in source-order,
// attributing each instantiation to the most recently opened declaration in
// the same file. reserved names are never treated as a declared name or as
// an instantiated type (spec §4.2: "filtering against a reserved-keyword
// list").
func run(file string, flavor hdl.Flavor, stripped string, decls []declRule, insts []instRule, reserved map[string]struct{}) Result {
	var occs []occurrence

	for _, d := range decls {
		for _, m := range d.Pattern.FindAllStringSubmatchIndex(stripped, -1) {
			name := stripped[m[2]:m[3]]
			if _, bad := reserved[name]; bad {
				continue
			}
			occs = append(occs, occurrence{pos: m[0], isDecl: true, kind: d.Kind, name: name})
		}
	}
	for _, instRule := range insts {
		for _, m := range instRule.Pattern.FindAllStringSubmatchIndex(stripped, -1) {
			name := stripped[m[2]:m[3]]
			if _, bad := reserved[name]; bad {
				continue
			}
			occs = append(occs, occurrence{pos: m[0], isDecl: false, name: name})
		}
	}

	sort.SliceStable(occs, func(i, j int) bool { return occs[i].pos < occs[j].pos })

	var res Result
	var currentParent *hdl.Identity
	for _, occ := range occs {
		if occ.isDecl {
			u := hdl.Unit{
				Identity: hdl.Identity{Name: occ.name, Flavor: flavor},
				Kind:     occ.kind,
				File:     file,
			}
			res.Units = append(res.Units, u)
			id := u.Identity
			currentParent = &id
			continue
		}
		if currentParent == nil {
			// Instantiation found before any declaration in this file:
			// there is no enclosing unit to attribute it to, so it is
			// dropped and contributes no edge.
			continue
		}
		res.Instantiations = append(res.Instantiations, hdl.Instantiation{
			Parent: *currentParent,
			Child:  occ.name,
		})
	}
	return res
}
