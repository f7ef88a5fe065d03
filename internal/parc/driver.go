package parc

import "github.com/cwbudde/go-dws/internal/core"

// parcDefGroups walks groups in reverse (spec.md §4.6: "traverse groups
// in reverse" so liveness analysis flows from later definitions back to
// earlier ones), returning the rewritten groups in their original order.
func (t *Transformer) parcDefGroups(top bool, groups []core.DefGroup) []core.DefGroup {
	out := make([]core.DefGroup, len(groups))
	for i := len(groups) - 1; i >= 0; i-- {
		out[i] = t.parcDefGroup(top, groups[i])
	}
	return out
}

// parcDefGroup transforms one definition group: a recursive group has
// each of its defs transformed in reverse (so later defs' uses flow back
// to earlier defs); a non-recursive group transforms its single def.
func (t *Transformer) parcDefGroup(top bool, group core.DefGroup) core.DefGroup {
	newDefs := make([]core.Def, len(group.Defs))
	if group.Kind == core.Rec {
		for i := len(group.Defs) - 1; i >= 0; i-- {
			newDefs[i] = t.parcDef(top, group.Defs[i])
		}
		return core.DefGroup{Kind: core.Rec, Defs: newDefs}
	}
	for i, d := range group.Defs {
		newDefs[i] = t.parcDef(top, d)
	}
	return core.DefGroup{Kind: core.NonRec, Defs: newDefs}
}

// parcDef transforms a single definition's body. A top-level definition
// runs under isolation so its liveness analysis cannot bleed into a
// sibling top-level definition's; current_def is pushed onto the trace
// context for fatal error messages either way.
func (t *Transformer) parcDef(top bool, def core.Def) core.Def {
	var newBody core.Expr
	run := func() {
		pushDef(t.state, def.Name, func() {
			newBody = t.ParcExpr(def.Body)
		})
	}

	if top {
		_, _ = isolated(t.state, func() struct{} {
			run()
			return struct{}{}
		})
	} else {
		run()
	}

	return core.Def{Name: def.Name, Body: newBody}
}
