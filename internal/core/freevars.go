package core

// FreeLocals computes the set of free, unqualified local names occurring
// in e. This is the "free-variable computation over expressions" spec.md
// §9 assumes is a pre-existing Core IR utility; go-dws's surface AST has
// no equivalent (it has no lambda captures), so PARC supplies it here.
func FreeLocals(e Expr) NameSet {
	out := EmptyNameSet()
	freeVarsExpr(e, EmptyNameSet(), &out)
	return out
}

// freeVarsExpr walks e, adding to out every unqualified Var reference not
// present in bound.
func freeVarsExpr(e Expr, bound NameSet, out *NameSet) {
	switch v := e.(type) {
	case TypeLambda:
		freeVarsExpr(v.Body, bound, out)
	case TypeApp:
		freeVarsExpr(v.Body, bound, out)
	case Lambda:
		inner := bound
		for _, p := range v.Params {
			inner = inner.With(p)
		}
		freeVarsExpr(v.Body, inner, out)
	case Var:
		if v.Info.Kind == InfoNone && !v.Name.IsQualified() && !bound.Contains(v.Name) {
			*out = out.With(v.Name)
		}
	case Lit:
		// no-op
	case Con:
		// constructors are always qualified
	case App:
		freeVarsExpr(v.Fn, bound, out)
		for _, a := range v.Args {
			freeVarsExpr(a, bound, out)
		}
	case Seq:
		for _, b := range v.Before {
			freeVarsExpr(b, bound, out)
		}
		freeVarsExpr(v.Result, bound, out)
	case Let:
		innerBound := bound.Union(v.Group.BoundVars())
		for _, d := range v.Group.Defs {
			// A recursive group's bindings are in scope in every def's
			// own body too; a non-recursive single def's body sees only
			// the outer bound set.
			defBound := bound
			if v.Group.Kind == Rec {
				defBound = innerBound
			}
			freeVarsExpr(d.Body, defBound, out)
		}
		freeVarsExpr(v.Body, innerBound, out)
	case Case:
		for _, s := range v.Scrutinees {
			freeVarsExpr(s, bound, out)
		}
		for _, br := range v.Branches {
			branchBound := bound.Union(BoundVars(br.Patterns))
			for _, g := range br.Guards {
				freeVarsExpr(g.Test, branchBound, out)
				freeVarsExpr(g.Result, branchBound, out)
			}
		}
	}
}
