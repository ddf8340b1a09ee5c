package collections

import (
	"strings"
	"testing"
)

func TestSetAddContainsValues(t *testing.T) {
	s := SetOf("a", "b")
	s.Add("c")
	if !s.Contains("a") || !s.Contains("c") {
		t.Fatalf("expected set to contain a and c, got %v", s)
	}
	if s.Contains("z") {
		t.Fatalf("did not expect set to contain z")
	}
	if len(s.Values()) != 3 {
		t.Fatalf("Values() = %v, want 3 elements", s.Values())
	}
}

func TestSetSortedValues(t *testing.T) {
	s := SetOf("c", "a", "b")
	got := s.SortedValues(strings.Compare)
	want := []string{"a", "b", "c"}
	for i, v := range want {
		if got[i] != v {
			t.Fatalf("SortedValues() = %v, want %v", got, want)
		}
	}
}

func TestSetDiff(t *testing.T) {
	a := SetOf("x", "y", "z")
	b := SetOf("y")
	diff := a.Diff(b)
	if diff.Contains("y") || !diff.Contains("x") || !diff.Contains("z") {
		t.Fatalf("Diff() = %v, want {x, z}", diff)
	}
}

func TestSetJoin(t *testing.T) {
	a := SetOf("x")
	b := SetOf("y")
	a.Join(b)
	if !a.Contains("x") || !a.Contains("y") {
		t.Fatalf("Join() = %v, want {x, y}", a)
	}
}

func TestSetIntersect(t *testing.T) {
	a := SetOf("x", "y")
	b := SetOf("y", "z")
	got := a.Intersect(b)
	if len(got) != 1 || !got.Contains("y") {
		t.Fatalf("Intersect() = %v, want {y}", got)
	}
}

func TestSetIntersects(t *testing.T) {
	a := SetOf("x", "y")
	b := SetOf("y", "z")
	c := SetOf("q")
	if !a.Intersects(b) {
		t.Fatalf("expected a and b to intersect")
	}
	if a.Intersects(c) {
		t.Fatalf("did not expect a and c to intersect")
	}
}

func TestSetAll(t *testing.T) {
	s := SetOf("a", "b")
	seen := make(map[string]bool)
	for v := range s.All() {
		seen[v] = true
	}
	if !seen["a"] || !seen["b"] || len(seen) != 2 {
		t.Fatalf("All() visited %v, want {a, b}", seen)
	}
}

func TestFindDuplicates(t *testing.T) {
	got := FindDuplicates([]string{"a", "b", "a", "c", "b", "b"})
	want := map[string]bool{"a": true, "b": true}
	if len(got) != 3 {
		t.Fatalf("FindDuplicates() = %v, want 3 entries (one per repeat occurrence)", got)
	}
	for _, v := range got {
		if !want[v] {
			t.Fatalf("FindDuplicates() contained unexpected %q", v)
		}
	}
}

func TestFindDuplicatesNilWhenNoneRepeat(t *testing.T) {
	if got := FindDuplicates([]string{"a", "b", "c"}); got != nil {
		t.Fatalf("FindDuplicates() = %v, want nil", got)
	}
}
