package extract

import (
	"regexp"
	"sort"
	"strings"

	"github.com/LSC-Unicamp/processor-ci-sub000/internal/hdl"
)

// chiselBaseParents are the Chisel/SpinalHDL base classes a declaration
// counts as a module by extending directly (spec §4.2).
var chiselBaseParents = buildReserved("Module", "RawModule", "LazyModule", "Component")

// chiselBaseSuffixes: a declaration also counts as a module if its parent's
// *name* ends in one of these (spec §4.2: "transitive extension of classes
// whose parents end in Base|Core|Module|Tile|Top|Subsystem"), and
// transitively again if it extends another name already classified.
var chiselBaseSuffixes = []string{"Base", "Core", "Module", "Tile", "Top", "Subsystem"}

var (
	chiselDecl      = regexp.MustCompile(`\b(?:class|object)\s+([A-Za-z_][A-Za-z0-9_]*)\s+extends\s+([A-Za-z_][A-Za-z0-9_.]*)`)
	chiselInstBoxed = regexp.MustCompile(`\bModule\s*\(\s*new\s+([A-Za-z_][A-Za-z0-9_]*)`)
	chiselInstNew   = regexp.MustCompile(`\bnew\s+([A-Za-z_][A-Za-z0-9_]*)\s*\(`)
)

func hasChiselSuffix(name string) bool {
	for _, suf := range chiselBaseSuffixes {
		if strings.HasSuffix(name, suf) {
			return true
		}
	}
	return false
}

// classifyChiselModules resolves the extends-chain fixed point described in
// spec §4.2: a declaration is a Chisel module if it extends a known base
// directly, or (transitively) extends something already classified, or
// extends a name matching one of the suffix tokens.
func classifyChiselModules(declOrder []string, parentOf map[string]string) map[string]bool {
	classified := make(map[string]bool)
	changed := true
	for changed {
		changed = false
		for _, name := range declOrder {
			if classified[name] {
				continue
			}
			parent := parentOf[name]
			lastSeg := parent
			if idx := strings.LastIndex(parent, "."); idx >= 0 {
				lastSeg = parent[idx+1:]
			}
			if _, ok := chiselBaseParents[lastSeg]; ok {
				classified[name] = true
				changed = true
				continue
			}
			if hasChiselSuffix(lastSeg) {
				classified[name] = true
				changed = true
				continue
			}
			if classified[lastSeg] {
				classified[name] = true
				changed = true
			}
		}
	}
	return classified
}

// ExtractChisel applies the Chisel/SpinalHDL declaration and instantiation
// patterns (spec §4.2).
func ExtractChisel(file, src string) Result {
	stripped := StripComments(hdl.FlavorChisel, src)

	var declOrder []string
	declPos := make(map[string]int)
	parentOf := make(map[string]string)
	for _, m := range chiselDecl.FindAllStringSubmatchIndex(stripped, -1) {
		name := stripped[m[2]:m[3]]
		parent := stripped[m[4]:m[5]]
		if _, seen := declPos[name]; !seen {
			declOrder = append(declOrder, name)
		}
		declPos[name] = m[0]
		parentOf[name] = parent
	}
	classified := classifyChiselModules(declOrder, parentOf)

	type occ struct {
		pos    int
		isDecl bool
		name   string
	}
	var occs []occ
	for _, name := range declOrder {
		if classified[name] {
			occs = append(occs, occ{pos: declPos[name], isDecl: true, name: name})
		}
	}
	for _, pat := range []*regexp.Regexp{chiselInstBoxed, chiselInstNew} {
		for _, m := range pat.FindAllStringSubmatchIndex(stripped, -1) {
			occs = append(occs, occ{pos: m[0], isDecl: false, name: stripped[m[2]:m[3]]})
		}
	}
	sort.SliceStable(occs, func(i, j int) bool { return occs[i].pos < occs[j].pos })

	var res Result
	var currentParent *hdl.Identity
	seenInst := make(map[string]bool) // de-dupe: Module(new X(..)) also matches `new X(`
	for _, o := range occs {
		if o.isDecl {
			u := hdl.Unit{Identity: hdl.Identity{Name: o.name, Flavor: hdl.FlavorChisel}, Kind: hdl.KindChiselModule, File: file}
			res.Units = append(res.Units, u)
			id := u.Identity
			currentParent = &id
			seenInst = make(map[string]bool)
			continue
		}
		if currentParent == nil {
			continue
		}
		key := currentParent.Name + "/" + o.name
		if seenInst[key] {
			continue
		}
		seenInst[key] = true
		res.Instantiations = append(res.Instantiations, hdl.Instantiation{Parent: *currentParent, Child: o.name})
	}
	return res
}
