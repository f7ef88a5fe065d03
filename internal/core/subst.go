package core

// Subst is a variable-renaming substitution keyed by TName.Key(), mapping
// an old local name to its replacement expression. Used by the Case
// Normalizer to eliminate PatVar top-level scrutinee patterns.
type Subst map[string]Expr

// Apply returns e with every free occurrence of a name in s replaced by
// its mapped expression. Bound names shadow the substitution within their
// scope.
func (s Subst) Apply(e Expr) Expr {
	if len(s) == 0 {
		return e
	}
	return substExpr(e, s)
}

func substExpr(e Expr, s Subst) Expr {
	switch v := e.(type) {
	case TypeLambda:
		return TypeLambda{TypeParams: v.TypeParams, Body: substExpr(v.Body, s)}
	case TypeApp:
		return TypeApp{Body: substExpr(v.Body, s), TypeArgs: v.TypeArgs}
	case Lambda:
		inner := shadow(s, v.Params)
		return Lambda{Params: v.Params, Body: substExpr(v.Body, inner), Typ: v.Typ}
	case Var:
		if v.Info.Kind == InfoNone {
			if repl, ok := s[v.Name.Key()]; ok {
				return repl
			}
		}
		return v
	case Lit, Con:
		return v
	case App:
		args := make([]Expr, len(v.Args))
		for i, a := range v.Args {
			args[i] = substExpr(a, s)
		}
		return App{Fn: substExpr(v.Fn, s), Args: args, Typ: v.Typ}
	case Seq:
		before := make([]Expr, len(v.Before))
		for i, b := range v.Before {
			before[i] = substExpr(b, s)
		}
		return Seq{Before: before, Result: substExpr(v.Result, s)}
	case Let:
		inner := shadowSet(s, v.Group.BoundVars())
		defs := make([]Def, len(v.Group.Defs))
		for i, d := range v.Group.Defs {
			defBody := s
			if v.Group.Kind == Rec {
				defBody = inner
			}
			defs[i] = Def{Name: d.Name, Body: substExpr(d.Body, defBody)}
		}
		return Let{Group: DefGroup{Kind: v.Group.Kind, Defs: defs}, Body: substExpr(v.Body, inner)}
	case Case:
		scruts := make([]Expr, len(v.Scrutinees))
		for i, sc := range v.Scrutinees {
			scruts[i] = substExpr(sc, s)
		}
		branches := make([]Branch, len(v.Branches))
		for i, br := range v.Branches {
			inner := shadowSet(s, BoundVars(br.Patterns))
			guards := make([]Guard, len(br.Guards))
			for j, g := range br.Guards {
				guards[j] = Guard{Test: substExpr(g.Test, inner), Result: substExpr(g.Result, inner)}
			}
			branches[i] = Branch{Patterns: br.Patterns, Guards: guards}
		}
		return Case{Scrutinees: scruts, Branches: branches, Typ: v.Typ}
	default:
		return e
	}
}

func shadow(s Subst, names []TName) Subst {
	if len(names) == 0 {
		return s
	}
	out := make(Subst, len(s))
	for k, v := range s {
		out[k] = v
	}
	for _, n := range names {
		delete(out, n.Key())
	}
	return out
}

func shadowSet(s Subst, names NameSet) Subst {
	return shadow(s, names.Slice())
}
