package core

import "testing"

func TestSubstApplyReplacesFreeOccurrence(t *testing.T) {
	intT := TCon{Name: "int"}
	old := NewLocal("m0", intT)
	repl := Var{Name: NewLocal("e", intT), Info: VarInfo{Kind: InfoNone}}

	sub := Subst{old.Key(): repl}
	e := App{
		Fn:   Var{Name: NewQualified("prelude", "id", nil), Info: VarInfo{Kind: InfoArity}},
		Args: []Expr{Var{Name: old, Info: VarInfo{Kind: InfoNone}}},
		Typ:  intT,
	}

	got := sub.Apply(e)
	app, ok := got.(App)
	if !ok {
		t.Fatalf("Apply changed the expression shape: %T", got)
	}
	if len(app.Args) != 1 || app.Args[0] != Expr(repl) {
		t.Fatalf("Apply did not substitute the argument: %#v", app.Args)
	}
}

func TestSubstApplyStopsAtShadowingLambda(t *testing.T) {
	intT := TCon{Name: "int"}
	x := NewLocal("x", intT)
	repl := Var{Name: NewLocal("outer", intT), Info: VarInfo{Kind: InfoNone}}

	sub := Subst{x.Key(): repl}

	// \(x) x — x is rebound by the lambda, so the substitution must not
	// reach the body's reference to x.
	lam := Lambda{
		Params: []TName{x},
		Body:   Var{Name: x, Info: VarInfo{Kind: InfoNone}},
		Typ:    intT,
	}

	got := sub.Apply(lam)
	newLam, ok := got.(Lambda)
	if !ok {
		t.Fatalf("Apply changed the expression shape: %T", got)
	}
	body, ok := newLam.Body.(Var)
	if !ok || body.Name != x {
		t.Fatalf("substitution incorrectly crossed into the lambda's own binder: %#v", newLam.Body)
	}
}

func TestSubstApplyNoOpOnEmptySubst(t *testing.T) {
	e := Lit{Value: 42, Typ: TCon{Name: "int"}}
	got := Subst{}.Apply(e)
	if got != Expr(e) {
		t.Fatalf("Apply with an empty Subst must return e unchanged")
	}
}
