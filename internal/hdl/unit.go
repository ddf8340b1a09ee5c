// Package hdl defines the data model shared by every stage of the core:
// the HDL unit table, instantiation edges, and the small per-flavor
// vocabulary (extensions, reserved words) each backend plugs in.
package hdl

import "fmt"

// Flavor identifies the HDL dialect family a repository is written in.
type Flavor string

const (
	FlavorVerilog  Flavor = "verilog"
	FlavorVHDL     Flavor = "vhdl"
	FlavorChisel   Flavor = "chisel"
	FlavorBluespec Flavor = "bluespec"
)

// Kind is the declaration variant a Unit was extracted as.
type Kind byte

const (
	KindUnknown   Kind = iota
	KindModule         // Verilog/SV module
	KindEntity         // VHDL entity
	KindPackage        // Verilog/SV or VHDL package
	KindInterface      // SystemVerilog interface
	KindChiselModule
	KindBluespecModule // by convention, identifier begins with "mk"
)

func (k Kind) String() string {
	switch k {
	case KindModule:
		return "module"
	case KindEntity:
		return "entity"
	case KindPackage:
		return "package"
	case KindInterface:
		return "interface"
	case KindChiselModule:
		return "chisel_module"
	case KindBluespecModule:
		return "bluespec_module"
	default:
		return "unknown"
	}
}

// Identity is the unique key for a Unit: (name, flavor). A name collision
// across files with the same flavor is a deduplication event, not two
// distinct units (spec §3).
type Identity struct {
	Name   string
	Flavor Flavor
}

func (id Identity) String() string { return fmt.Sprintf("%s:%s", id.Flavor, id.Name) }

// Unit is an atomic declaration extracted from a single source file.
type Unit struct {
	Identity
	Kind Kind
	// File is the repository-relative path of the declaring file.
	File string
}

// Instantiation is a directed edge from a parent unit to the name of a
// child it references. The child name is resolved against the unit table
// by the graph builder; an unresolved name surfaces later as a
// missing-module-class diagnostic.
type Instantiation struct {
	Parent Identity
	Child  string
}

// Table indexes extracted units by identity and by declaring file, and
// tracks every instantiation edge found across the scanned tree. It is the
// shared input to the Dependency Graph, Ranker, Ordering and Deduplicator
// stages.
type Table struct {
	Units          map[Identity]Unit
	ByFile         map[string][]Unit
	Instantiations []Instantiation
}

// NewTable returns an empty unit table.
func NewTable() *Table {
	return &Table{
		Units:  make(map[Identity]Unit),
		ByFile: make(map[string][]Unit),
	}
}

// AddUnit records a declaration. When a name collision occurs (the same
// Identity already present, declared in a different file), both files are
// kept in ByFile under their own entries but Units retains only the most
// recently added declaration — deduplication proper happens downstream in
// internal/dedup, which has visibility into path-quality scoring that this
// table does not.
func (t *Table) AddUnit(u Unit) {
	t.Units[u.Identity] = u
	t.ByFile[u.File] = append(t.ByFile[u.File], u)
}

// AddInstantiation records an instantiation edge. Child is a bare name; it
// may or may not resolve against Units at graph-build time.
func (t *Table) AddInstantiation(parent Identity, child string) {
	t.Instantiations = append(t.Instantiations, Instantiation{Parent: parent, Child: child})
}

// Providers returns every declaring file for a unit name, across all
// flavors and kinds present in the table. Used by the Resolver when
// searching the tree for a provider of a missing package/entity/interface.
func (t *Table) Providers(name string) []Unit {
	var out []Unit
	for _, units := range t.ByFile {
		for _, u := range units {
			if u.Name == name {
				out = append(out, u)
			}
		}
	}
	return out
}
