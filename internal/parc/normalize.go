package parc

import "github.com/cwbudde/go-dws/internal/core"

// isNormalizedCase reports whether every scrutinee of c is already a
// plain variable reference and no branch pattern is a top-level
// variable-binding wrapper.
func isNormalizedCase(c core.Case) bool {
	for _, s := range c.Scrutinees {
		if _, ok := s.(core.Var); !ok {
			return false
		}
	}
	for _, br := range c.Branches {
		for _, p := range br.Patterns {
			if core.IsVarPattern(p) {
				return false
			}
		}
	}
	return true
}

// normalizeCase rewrites a non-normalized case into an equivalent
// `let m0 = e0 in ... case m0, ... of ...` whose scrutinees are all plain
// variables and whose branch patterns carry no top-level PatVar wrapper
// (spec.md §4.4). The result is re-entered through the main transformer,
// not analyzed directly here.
func (t *Transformer) normalizeCase(c core.Case) core.Expr {
	scrutVars := make([]core.TName, len(c.Scrutinees))
	bindings := make([]core.Def, 0, len(c.Scrutinees))

	for i, e := range c.Scrutinees {
		if v, ok := e.(core.Var); ok && v.Info.Kind == core.InfoNone {
			scrutVars[i] = v.Name
			continue
		}
		fresh := t.uniq.FreshMatchName(scrutTypeOf(e))
		bindings = append(bindings, core.Def{Name: fresh, Body: e})
		scrutVars[i] = fresh
	}

	newScruts := make([]core.Expr, len(scrutVars))
	for i, n := range scrutVars {
		newScruts[i] = core.Var{Name: n, Info: core.VarInfo{Kind: core.InfoNone}}
	}

	newBranches := make([]core.Branch, len(c.Branches))
	for bi, br := range c.Branches {
		sub := core.Subst{}
		newPats := make([]core.Pattern, len(br.Patterns))
		for pi, p := range br.Patterns {
			if pv, ok := p.(core.PatVar); ok {
				sub[pv.Name.Key()] = newScruts[pi]
				newPats[pi] = pv.Sub
				continue
			}
			newPats[pi] = p
		}
		newGuards := make([]core.Guard, len(br.Guards))
		for gi, g := range br.Guards {
			newGuards[gi] = core.Guard{
				Test:   sub.Apply(g.Test),
				Result: sub.Apply(g.Result),
			}
		}
		newBranches[bi] = core.Branch{Patterns: newPats, Guards: newGuards}
	}

	result := core.Expr(core.Case{Scrutinees: newScruts, Branches: newBranches, Typ: c.Typ})

	// Prepend the generated bindings in source order: the first
	// generated binding becomes the outermost let, so fold from the
	// last binding inward.
	for i := len(bindings) - 1; i >= 0; i-- {
		result = core.Let{
			Group: core.DefGroup{Kind: core.NonRec, Defs: []core.Def{bindings[i]}},
			Body:  result,
		}
	}
	return result
}

// scrutTypeOf recovers the type of a scrutinee expression for naming its
// fresh binder; every Core expression variant carries its result type
// except the always-transparent type-lambda/type-application wrappers,
// which are not valid scrutinees on their own.
func scrutTypeOf(e core.Expr) core.Type {
	switch v := e.(type) {
	case core.Var:
		return v.Name.Type
	case core.Lit:
		return v.Typ
	case core.Con:
		return v.Typ
	case core.App:
		return v.Typ
	case core.Seq:
		return scrutTypeOf(v.Result)
	case core.Let:
		return scrutTypeOf(v.Body)
	case core.Case:
		return v.Typ
	default:
		return nil
	}
}
