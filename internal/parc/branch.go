package parc

import "github.com/cwbudde/go-dws/internal/core"

// guardResult holds one guard's rewritten pieces: the borrowed test, the
// dups owed at guard entry for pattern variables the result consumed and
// reused, and the rewritten result expression.
type guardResult struct {
	test   core.Expr
	dups   []core.Expr
	result core.Expr
}

// branchResult is the "closure" spec.md §4.5.1 describes: it closes over
// the guard results only (SPEC_FULL.md Open Question (a)), not over any
// live-set snapshot, so it can be safely applied once the surrounding
// case knows the final merged live set.
type branchResult struct {
	patterns []core.Pattern
	pvs      core.NameSet
	guards   []guardResult
}

// parcBranch analyzes one case branch in isolation from its siblings,
// per spec.md §4.5.1.
func (t *Transformer) parcBranch(br core.Branch, liveIn core.NameSet) *branchResult {
	pvs := core.BoundVars(br.Patterns)
	guards := make([]guardResult, len(br.Guards))

	for i := len(br.Guards) - 1; i >= 0; i-- {
		g := br.Guards[i]

		resultExpr, liveAfterResult := isolateWith(t.state, liveIn, func() core.Expr {
			return extendOwned(t.state, pvs, func() core.Expr {
				return t.ParcExpr(g.Result)
			})
		})

		// A pattern variable both bound and still live after the result
		// has transferred its ownership: the guard head (which also
		// mentions it) needs an additional reference.
		dupNames := pvs.Intersect(liveAfterResult)
		var dups []core.Expr
		for _, n := range dupNames.Slice() {
			if d, ok := t.dup(n); ok {
				dups = append(dups, d)
			}
		}

		t.state.MarkLives(liveAfterResult)

		// The test cannot consume pattern variables, only borrow them.
		testExpr := withOwned(t.state, core.EmptyNameSet(), func() core.Expr {
			return t.ParcExpr(g.Test)
		})

		guards[i] = guardResult{test: testExpr, dups: dups, result: resultExpr}
	}

	t.state.Forget(pvs)

	return &branchResult{patterns: br.Patterns, pvs: pvs, guards: guards}
}

// apply finalizes br once matchLive — the live set shared by every
// sibling branch of the enclosing case — is known: it emits drops for
// every name owned in this branch but not live in matchLive, and prepends
// each guard's dups and the branch's drops to its result.
func (br *branchResult) apply(t *Transformer, matchLive core.NameSet) core.Branch {
	ownedInBranch := t.state.Owned().Union(br.pvs)
	dropNames := ownedInBranch.Difference(matchLive)

	var drops []core.Expr
	for _, n := range dropNames.Slice() {
		if d, ok := t.drop(n); ok {
			drops = append(drops, d)
		}
	}

	newGuards := make([]core.Guard, len(br.guards))
	for i, g := range br.guards {
		pre := make([]core.Expr, 0, len(g.dups)+len(drops))
		pre = append(pre, g.dups...)
		pre = append(pre, drops...)

		body := g.result
		if len(pre) > 0 {
			body = core.Seq{Before: pre, Result: g.result}
		}
		newGuards[i] = core.Guard{Test: g.test, Result: body}
	}

	return core.Branch{Patterns: br.patterns, Guards: newGuards}
}
