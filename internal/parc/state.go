package parc

import "github.com/cwbudde/go-dws/internal/core"

// State is the Analysis State threaded through the Expression
// Transformer's recursion: an immutable, stacked owned set and a single
// mutable live-set cell (spec.md §4.3, §5, §9). There is no other mutable
// state here besides the fresh-name counter, which belongs to the Case
// Normalizer and is held separately.
type State struct {
	owned    core.NameSet
	live     core.NameSet
	reg      core.NewTypes
	defChain []core.TName
}

// newState creates an Analysis State with empty owned and live sets.
func newState(reg core.NewTypes) *State {
	return &State{
		owned: core.EmptyNameSet(),
		live:  core.EmptyNameSet(),
		reg:   reg,
	}
}

// Owned returns the current owned set.
func (s *State) Owned() core.NameSet { return s.owned }

// Live returns the current live set.
func (s *State) Live() core.NameSet { return s.live }

// IsOwned reports whether n is in the current owned set.
func (s *State) IsOwned(n core.TName) bool { return s.owned.Contains(n) }

// IsLive reports whether n is in the current live set.
func (s *State) IsLive(n core.TName) bool { return s.live.Contains(n) }

// IsDead reports whether n is owned but not live: it can be consumed (or
// must be dropped) right now.
func (s *State) IsDead(n core.TName) bool { return s.IsOwned(n) && !s.IsLive(n) }

// MarkLive adds n to the live set, unless n is qualified (globals are
// never reference-counted and never enter the live set).
func (s *State) MarkLive(n core.TName) {
	if n.IsQualified() {
		return
	}
	s.live = s.live.With(n)
}

// MarkLives adds every unqualified name in ns to the live set.
func (s *State) MarkLives(ns core.NameSet) {
	for _, n := range ns.Slice() {
		s.MarkLive(n)
	}
}

// Forget removes every name in ns from the live set; used on leaving a
// pattern scope so pattern variables don't leak past their branch.
func (s *State) Forget(ns core.NameSet) {
	for _, n := range ns.Slice() {
		s.live = s.live.Without(n)
	}
}

// withOwned runs action with the owned set replaced by ns, restoring the
// prior owned set on every exit path (including a panicking fatalf).
func withOwned[R any](s *State, ns core.NameSet, action func() R) R {
	save := s.owned
	s.owned = ns
	defer func() { s.owned = save }()
	return action()
}

// extendOwned runs action with the owned set extended by ns.
func extendOwned[R any](s *State, ns core.NameSet, action func() R) R {
	return withOwned(s, s.owned.Union(ns), action)
}

// scoped runs action with the owned set extended by ns, then forgets ns
// from the live set once action returns.
func scoped[R any](s *State, ns core.NameSet, action func() R) R {
	result := extendOwned(s, ns, action)
	s.Forget(ns)
	return result
}

// isolated runs action, captures the resulting live set, then restores
// the live set to its value before the call — used to analyze a sibling
// whose liveness must not leak into the caller.
func isolated[R any](s *State, action func() R) (R, core.NameSet) {
	save := s.live
	defer func() { s.live = save }()
	result := action()
	return result, s.live
}

// isolateWith sets the live set to ns, runs action, and returns (result,
// resulting live set), restoring the caller's live set afterward.
func isolateWith[R any](s *State, ns core.NameSet, action func() R) (R, core.NameSet) {
	save := s.live
	s.live = ns
	defer func() { s.live = save }()
	result := action()
	return result, s.live
}

// pushDef records def as the innermost entry of the current-definition
// trace context (used only to name the current definition chain in a
// fatal internal error message), running action, then restoring the
// prior chain.
func pushDef(s *State, name core.TName, action func()) {
	save := s.defChain
	s.defChain = append(append([]core.TName(nil), save...), name)
	defer func() { s.defChain = save }()
	action()
}
