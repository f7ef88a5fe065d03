package core

import "sort"

// NameSet is an immutable-by-convention set of TName values keyed by
// TName.Key(). Every mutating-looking operation returns a new set; nothing
// in internal/parc ever mutates a NameSet value in place, matching the
// "owned set is a read-mostly context variable" design in spec.md §9.
type NameSet struct {
	m map[string]TName
}

// NewNameSet builds a NameSet from the given names.
func NewNameSet(names ...TName) NameSet {
	s := NameSet{m: make(map[string]TName, len(names))}
	for _, n := range names {
		s.m[n.Key()] = n
	}
	return s
}

// EmptyNameSet returns the empty set.
func EmptyNameSet() NameSet {
	return NameSet{}
}

// Len returns the number of names in the set.
func (s NameSet) Len() int {
	return len(s.m)
}

// Contains reports whether n is a member of s.
func (s NameSet) Contains(n TName) bool {
	if s.m == nil {
		return false
	}
	_, ok := s.m[n.Key()]
	return ok
}

// With returns a new set containing s plus n.
func (s NameSet) With(n TName) NameSet {
	out := s.clone()
	out.m[n.Key()] = n
	return out
}

// Without returns a new set containing s minus n.
func (s NameSet) Without(n TName) NameSet {
	out := s.clone()
	delete(out.m, n.Key())
	return out
}

// Union returns the union of s and other.
func (s NameSet) Union(other NameSet) NameSet {
	out := s.clone()
	for k, n := range other.m {
		out.m[k] = n
	}
	return out
}

// Difference returns the names in s that are not in other.
func (s NameSet) Difference(other NameSet) NameSet {
	out := NameSet{m: make(map[string]TName, len(s.m))}
	for k, n := range s.m {
		if _, ok := other.m[k]; !ok {
			out.m[k] = n
		}
	}
	return out
}

// Intersect returns the names present in both s and other.
func (s NameSet) Intersect(other NameSet) NameSet {
	out := NameSet{m: make(map[string]TName)}
	for k, n := range s.m {
		if _, ok := other.m[k]; ok {
			out.m[k] = n
		}
	}
	return out
}

// Equal reports whether s and other contain exactly the same names.
func (s NameSet) Equal(other NameSet) bool {
	if len(s.m) != len(other.m) {
		return false
	}
	for k := range s.m {
		if _, ok := other.m[k]; !ok {
			return false
		}
	}
	return true
}

// Slice returns the set's members sorted by Key, for deterministic
// iteration (used whenever the pass emits one primitive per name, e.g.
// dups for a lambda's captures).
func (s NameSet) Slice() []TName {
	out := make([]TName, 0, len(s.m))
	for _, n := range s.m {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key() < out[j].Key() })
	return out
}

func (s NameSet) clone() NameSet {
	out := NameSet{m: make(map[string]TName, len(s.m)+1)}
	for k, n := range s.m {
		out.m[k] = n
	}
	return out
}
