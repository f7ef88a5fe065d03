package core

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNameSetBasics(t *testing.T) {
	intT := TCon{Name: "int"}
	x := NewLocal("x", intT)
	y := NewLocal("y", intT)

	s := NewNameSet(x, y)
	if s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", s.Len())
	}
	if !s.Contains(x) || !s.Contains(y) {
		t.Fatalf("expected set to contain both x and y")
	}

	without := s.Without(x)
	if without.Contains(x) {
		t.Fatalf("Without(x) still contains x")
	}
	if !without.Contains(y) {
		t.Fatalf("Without(x) lost y")
	}
	if s.Contains(x) == false {
		t.Fatalf("Without must not mutate the receiver")
	}
}

func TestNameSetUnionDifferenceIntersect(t *testing.T) {
	intT := TCon{Name: "int"}
	x, y, z := NewLocal("x", intT), NewLocal("y", intT), NewLocal("z", intT)

	a := NewNameSet(x, y)
	b := NewNameSet(y, z)

	union := a.Union(b)
	for _, n := range []TName{x, y, z} {
		if !union.Contains(n) {
			t.Fatalf("Union missing %v", n)
		}
	}

	diff := a.Difference(b)
	if !diff.Equal(NewNameSet(x)) {
		t.Fatalf("Difference = %v, want {x}", diff.Slice())
	}

	inter := a.Intersect(b)
	if !inter.Equal(NewNameSet(y)) {
		t.Fatalf("Intersect = %v, want {y}", inter.Slice())
	}

	// NameSet's own map internals are unexported, so structural diffs go
	// through the sorted Slice() view instead of cmp.Diff on the set
	// itself.
	if diff := cmp.Diff([]TName{x}, diff.Slice(), cmp.Comparer(func(a, b TName) bool { return a.Key() == b.Key() })); diff != "" {
		t.Fatalf("Difference slice mismatch (-want +got):\n%s", diff)
	}
}

func TestNameSetEqualityByTypeAndName(t *testing.T) {
	xInt := NewLocal("x", TCon{Name: "int"})
	xBool := NewLocal("x", TCon{Name: "bool"})

	s := NewNameSet(xInt)
	if s.Contains(xBool) {
		t.Fatalf("a name at a different type must not be considered the same entry")
	}
}

func TestNameSetSliceIsDeterministic(t *testing.T) {
	intT := TCon{Name: "int"}
	s := NewNameSet(NewLocal("c", intT), NewLocal("a", intT), NewLocal("b", intT))

	first := s.Slice()
	second := s.Slice()
	if len(first) != 3 || len(second) != 3 {
		t.Fatalf("expected 3 names, got %d and %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Key() != second[i].Key() {
			t.Fatalf("Slice() is not stable across calls")
		}
	}
	for i := 1; i < len(first); i++ {
		if first[i-1].Key() >= first[i].Key() {
			t.Fatalf("Slice() is not sorted by Key: %v", first)
		}
	}
}

func TestEmptyNameSet(t *testing.T) {
	e := EmptyNameSet()
	if e.Len() != 0 {
		t.Fatalf("EmptyNameSet().Len() = %d, want 0", e.Len())
	}
	if e.Contains(NewLocal("x", TCon{Name: "int"})) {
		t.Fatalf("EmptyNameSet() must contain nothing")
	}
}
