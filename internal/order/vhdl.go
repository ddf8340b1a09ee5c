package order

import "regexp"

var vhdlPackageDeclRe = regexp.MustCompile(`(?mi)^\s*package\s+([A-Za-z_]\w*)\s+is\b`)

// IsPackageFile reports whether src declares a VHDL package (spec §4.8 VHDL
// step 1: files are classified package-defining or entity-defining by this
// single regex scan).
func IsPackageFile(src string) bool { return vhdlPackageDeclRe.MatchString(src) }

// VHDLState holds the position-sensitive ordering spec §4.8's VHDL variant
// requires: the order is only recomputed from scratch when new files
// arrive, otherwise prior constraint-driven repositioning is preserved
// (re-sorting would undo the solver's progress against GHDL's dependency
// ordering requirement).
type VHDLState struct {
	order []string
}

// NewVHDLState builds the initial ordering: packages first, then entities,
// both in original relative order.
func NewVHDLState(files []string, src map[string]string) *VHDLState {
	s := &VHDLState{}
	s.order = initialVHDLOrder(files, src)
	return s
}

func initialVHDLOrder(files []string, src map[string]string) []string {
	var packages, entities []string
	for _, f := range files {
		if IsPackageFile(src[f]) {
			packages = append(packages, f)
		} else {
			entities = append(entities, f)
		}
	}
	return append(packages, entities...)
}

// Order returns the current ordering. If files differs from the file set
// the state was built or last reordered with, the ordering is rebuilt from
// scratch (spec §4.8 VHDL step 4: "re-evaluated ... only if new files were
// added").
func (s *VHDLState) Order(files []string, src map[string]string) []string {
	if !sameSet(s.order, files) {
		s.order = initialVHDLOrder(files, src)
	}
	return append([]string(nil), s.order...)
}

// Constrain records a "B before A" constraint (spec §4.8 VHDL step 3): when
// analyzing file A raised `unit "X" not found`, and file B declares X, B is
// removed from its current position and reinserted immediately before A's
// earliest occurrence.
func (s *VHDLState) Constrain(before, after string) {
	if before == after {
		return
	}
	removed := make([]string, 0, len(s.order))
	for _, f := range s.order {
		if f != before {
			removed = append(removed, f)
		}
	}
	out := make([]string, 0, len(removed)+1)
	inserted := false
	for _, f := range removed {
		if f == after && !inserted {
			out = append(out, before)
			inserted = true
		}
		out = append(out, f)
	}
	if !inserted {
		out = append(out, before)
	}
	s.order = out
}

func sameSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	set := make(map[string]bool, len(a))
	for _, f := range a {
		set[f] = true
	}
	for _, f := range b {
		if !set[f] {
			return false
		}
	}
	return true
}
