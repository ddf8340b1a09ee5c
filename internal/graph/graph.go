// Package graph implements the Dependency Graph (spec §4.3): forward and
// inverse adjacency maps over unit names, built from extractor output.
//
// Grounded on the adjacency-map idiom the teacher's resolve.go/imports.go
// build ad hoc per call (scanning rule attributes into
// map[string][]label.Label); here it is lifted into its own small,
// reusable graph type with one canonical constructor, per spec §9's
// "dynamic graph normalization" re-architecture: callers coerce whatever
// shape they have (a unit table, a plain edge list) into the single
// canonical map shape at the boundary, rather than the graph accepting
// several input shapes itself.
package graph

import (
	"github.com/LSC-Unicamp/processor-ci-sub000/internal/collections"
	"github.com/LSC-Unicamp/processor-ci-sub000/internal/hdl"
)

// Graph holds the canonical (name -> list<name>) shape in both directions.
// Every name appearing as a key in either map also appears (possibly with
// an empty list) in the other, per spec §3's invariant.
type Graph struct {
	children map[string][]string
	parents  map[string][]string
}

// New builds a Graph from a flat edge list (parent name -> child name).
// This is the one canonical constructor spec §9 calls for; any other input
// shape (a unit table, pairs, etc.) is coerced to this edge list by its
// caller before calling New.
func New(edges []Edge) *Graph {
	g := &Graph{children: make(map[string][]string), parents: make(map[string][]string)}
	ensure := func(m map[string][]string, name string) {
		if _, ok := m[name]; !ok {
			m[name] = nil
		}
	}
	for _, e := range edges {
		ensure(g.children, e.Parent)
		ensure(g.parents, e.Parent)
		ensure(g.children, e.Child)
		ensure(g.parents, e.Child)
		g.children[e.Parent] = append(g.children[e.Parent], e.Child)
		g.parents[e.Child] = append(g.parents[e.Child], e.Parent)
	}
	return g
}

// Edge is a canonical parent->child name pair.
type Edge struct {
	Parent string
	Child  string
}

// FromTable builds the canonical edge list from a unit Table: only
// instantiations whose child name resolves against a known unit in the
// table become edges (spec §4.3: "unrecognized names are dropped here").
// Names declared but never instantiated, and never instantiating
// anything, are still present in the graph (with empty adjacency lists)
// because FromTable registers every known unit name after calling New.
func FromTable(t *hdl.Table) *Graph {
	names := collections.SetOf[string]()
	for id := range t.Units {
		names.Add(id.Name)
	}
	edges := collections.FilterMapSlice(t.Instantiations, func(inst hdl.Instantiation) (Edge, bool) {
		if !names.Contains(inst.Child) {
			return Edge{}, false
		}
		return Edge{Parent: inst.Parent.Name, Child: inst.Child}, true
	})
	g := New(edges)
	// Register every declared unit, even ones with no edges at all, so
	// reachability and ranking can see them.
	for name := range names {
		g.ensureName(name)
	}
	return g
}

func (g *Graph) ensureName(name string) {
	if _, ok := g.children[name]; !ok {
		g.children[name] = nil
	}
	if _, ok := g.parents[name]; !ok {
		g.parents[name] = nil
	}
}

// ChildrenOf returns the names a unit instantiates.
func (g *Graph) ChildrenOf(name string) []string { return g.children[name] }

// ParentsOf returns the names that instantiate a unit.
func (g *Graph) ParentsOf(name string) []string { return g.parents[name] }

// Names returns every unit name known to the graph.
func (g *Graph) Names() []string {
	names := make([]string, 0, len(g.children))
	for name := range g.children {
		names = append(names, name)
	}
	return names
}

// ReachableCount does a BFS over children from start, excluding start
// itself, and returns the number of distinct names reached. Bounded by the
// number of names in the graph, so cyclic instantiation (spec §8 property
// 12) cannot cause non-termination.
func (g *Graph) ReachableCount(start string) int {
	visited := collections.SetOf(start)
	queue := []string{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, child := range g.children[cur] {
			if visited.Contains(child) {
				continue
			}
			visited.Add(child)
			queue = append(queue, child)
		}
	}
	return len(visited) - 1
}
