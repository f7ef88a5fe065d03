package parc

import (
	"testing"

	"github.com/cwbudde/go-dws/internal/core"
	"github.com/stretchr/testify/require"
)

func TestStateOwnedLiveDead(t *testing.T) {
	s := newState(core.NewMapNewTypes())
	intT := core.TCon{Name: "int"}
	x := core.NewLocal("x", intT)

	require.False(t, s.IsOwned(x), "a fresh state must own nothing")
	require.False(t, s.IsLive(x), "a fresh state must live nothing")

	withOwned(s, core.NewNameSet(x), func() struct{} {
		require.True(t, s.IsOwned(x), "withOwned did not install the owned set")
		require.True(t, s.IsDead(x), "x is owned and not live: must be dead")
		s.MarkLive(x)
		require.False(t, s.IsDead(x), "x was just marked live: must not be dead")
		return struct{}{}
	})

	require.False(t, s.IsOwned(x), "withOwned must restore the prior owned set on exit")
}

func TestStateMarkLiveIgnoresQualifiedNames(t *testing.T) {
	s := newState(core.NewMapNewTypes())
	g := core.NewQualified("globals", "counter", core.TCon{Name: "int"})

	s.MarkLive(g)
	require.False(t, s.IsLive(g), "a qualified (global) name must never enter the live set")
}

func TestScopedForgetsOnExit(t *testing.T) {
	s := newState(core.NewMapNewTypes())
	intT := core.TCon{Name: "int"}
	x := core.NewLocal("x", intT)

	scoped(s, core.NewNameSet(x), func() struct{} {
		s.MarkLive(x)
		return struct{}{}
	})

	require.False(t, s.IsLive(x), "scoped must forget ns from the live set once action returns")
}

func TestIsolatedRestoresLiveSet(t *testing.T) {
	s := newState(core.NewMapNewTypes())
	intT := core.TCon{Name: "int"}
	outer := core.NewLocal("outer", intT)
	inner := core.NewLocal("inner", intT)

	s.MarkLive(outer)

	_, observed := isolated(s, func() struct{} {
		s.MarkLive(inner)
		return struct{}{}
	})

	require.True(t, observed.Contains(inner), "isolated must return the live set as observed inside the call")
	require.False(t, s.IsLive(inner), "isolated must not leak inner's liveness back to the caller")
	require.True(t, s.IsLive(outer), "isolated must restore the caller's own live set afterward")
}

func TestIsolateWithSetsAndRestores(t *testing.T) {
	s := newState(core.NewMapNewTypes())
	intT := core.TCon{Name: "int"}
	a := core.NewLocal("a", intT)
	b := core.NewLocal("b", intT)

	s.MarkLive(a)

	_, observed := isolateWith(s, core.NewNameSet(b), func() struct{} {
		require.False(t, s.IsLive(a), "isolateWith must replace the live set with ns, not extend it")
		require.True(t, s.IsLive(b), "isolateWith did not install ns as the live set")
		return struct{}{}
	})

	require.True(t, observed.Contains(b), "isolateWith must return the resulting live set")
	require.True(t, s.IsLive(a), "isolateWith must restore the caller's live set on exit")
	require.False(t, s.IsLive(b), "isolateWith must restore the caller's live set on exit")
}

func TestPushDefRestoresChainOnPanic(t *testing.T) {
	s := newState(core.NewMapNewTypes())
	intT := core.TCon{Name: "int"}
	outer := core.NewLocal("outer", intT)
	inner := core.NewLocal("inner", intT)

	pushDef(s, outer, func() {
		require.Equal(t, []core.TName{outer}, s.defChain, "pushDef did not push outer")

		func() {
			defer func() { recover() }()
			pushDef(s, inner, func() {
				panic("boom")
			})
		}()

		require.Equal(t, []core.TName{outer}, s.defChain, "pushDef must restore the prior chain even when action panics")
	})
}
