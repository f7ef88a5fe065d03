package parc

import "github.com/cwbudde/go-dws/internal/core"

// Transformer is the Expression Transformer: the main recursive walk over
// Core expressions. It consults the Type Classifier via its Analysis
// State and emits primitive calls via the Primitive Emitter. Contract
// (spec.md §4.5): ParcExpr returns the rewritten expression and leaves
// the live set updated to reflect "names still needed to evaluate this
// expression's result", relative to the state before the call.
type Transformer struct {
	state *State
	reg   core.NewTypes
	uniq  *core.UniqueCounter
}

func newTransformer(reg core.NewTypes, uniq *core.UniqueCounter) *Transformer {
	return &Transformer{state: newState(reg), reg: reg, uniq: uniq}
}

func (t *Transformer) dup(name core.TName) (core.Expr, bool) {
	return genDup(name, t.reg, t.state.defChain)
}

func (t *Transformer) drop(name core.TName) (core.Expr, bool) {
	return genDrop(name, t.reg, t.state.defChain)
}

func (t *Transformer) classify(typ core.Type) RCClass {
	return classify(typ, t.reg, t.state.defChain)
}

// ParcExpr rewrites e per spec.md §4.5.
func (t *Transformer) ParcExpr(e core.Expr) core.Expr {
	switch v := e.(type) {
	case core.TypeLambda:
		return core.TypeLambda{TypeParams: v.TypeParams, Body: t.ParcExpr(v.Body)}

	case core.TypeApp:
		return core.TypeApp{Body: t.ParcExpr(v.Body), TypeArgs: v.TypeArgs}

	case core.Lambda:
		return t.parcLambda(v)

	case core.Var:
		return t.parcVar(v)

	case core.Lit:
		return v

	case core.Con:
		return v

	case core.App:
		return t.parcApp(v)

	case core.Let:
		return t.parcLet(v)

	case core.Case:
		return t.parcCase(v)

	case core.Seq:
		// Already-rewritten sequences (e.g. re-entry after normalization
		// of a nested case) are walked transparently.
		before := make([]core.Expr, len(v.Before))
		for i, b := range v.Before {
			before[i] = t.ParcExpr(b)
		}
		return core.Seq{Before: before, Result: t.ParcExpr(v.Result)}

	default:
		fatalf(t.state.defChain, "unhandled core expression type %T", e)
		return nil
	}
}

// parcVar implements spec.md §4.5's variable-occurrence rule.
func (t *Transformer) parcVar(v core.Var) core.Expr {
	// Qualified (top-level) names are never reference-counted.
	if v.Info.Kind != core.InfoNone || v.Name.IsQualified() {
		return v
	}
	wasLive := t.state.IsLive(v.Name)
	wasOwned := t.state.IsOwned(v.Name)
	t.state.MarkLive(v.Name)

	if wasLive || !wasOwned {
		// Another downstream use needs it, or this scope only borrows
		// it: a duplicate reference must be produced.
		if dup, ok := t.dup(v.Name); ok {
			return dup
		}
		return v
	}
	// Last use of an owned name: ownership moves into the consumer.
	return v
}

// parcApp implements spec.md §4.5's application rule: arguments right-to-
// left, then the function position.
func (t *Transformer) parcApp(v core.App) core.Expr {
	newArgs := make([]core.Expr, len(v.Args))
	for i := len(v.Args) - 1; i >= 0; i-- {
		newArgs[i] = t.ParcExpr(v.Args[i])
	}
	newFn := t.ParcExpr(v.Fn)
	return core.App{Fn: newFn, Args: newArgs, Typ: v.Typ}
}

// parcLambda implements spec.md §4.5's value-lambda rule.
func (t *Transformer) parcLambda(v core.Lambda) core.Expr {
	caps := core.FreeLocals(v)
	params := core.NewNameSet(v.Params...)

	// The body owns exactly its captures plus its parameters.
	newBody, live := isolateWith(t.state, core.EmptyNameSet(), func() core.Expr {
		return withOwned(t.state, caps, func() core.Expr {
			return scoped(t.state, params, func() core.Expr {
				body := t.ParcExpr(v.Body)

				dead := core.EmptyNameSet()
				for _, p := range v.Params {
					if !t.state.IsLive(p) {
						dead = dead.With(p)
					}
				}
				var drops []core.Expr
				for _, p := range dead.Slice() {
					if d, ok := t.drop(p); ok {
						drops = append(drops, d)
					}
				}
				if len(drops) == 0 {
					return body
				}
				return core.Seq{Before: drops, Result: body}
			})
		})
	})

	if !live.Equal(caps) {
		fatalf(t.state.defChain, "lambda capture/liveness mismatch: free-variable computation disagreed with the liveness analysis (captures=%v, observed=%v)", caps.Slice(), live.Slice())
	}

	t.state.MarkLives(caps)

	var dups []core.Expr
	for _, c := range caps.Slice() {
		if d, ok := t.dup(c); ok {
			dups = append(dups, d)
		}
	}

	newLambda := core.Lambda{Params: v.Params, Body: newBody, Typ: v.Typ, Captures: caps.Slice()}
	if len(dups) == 0 {
		return newLambda
	}
	return core.Seq{Before: dups, Result: newLambda}
}

// parcLet implements spec.md §4.5's let rule.
func (t *Transformer) parcLet(v core.Let) core.Expr {
	if len(v.Group.Defs) == 0 {
		return t.ParcExpr(v.Body)
	}
	if v.Group.Kind == core.Rec {
		fatalf(t.state.defChain, "recursive let is not supported at expression level")
	}

	def := v.Group.Defs[0]
	bound := core.NewNameSet(def.Name)

	newRest, wasLiveAtExit := func() (core.Expr, bool) {
		var liveAtExit bool
		rest := scoped(t.state, bound, func() core.Expr {
			r := t.ParcExpr(v.Body)
			liveAtExit = t.state.IsLive(def.Name)
			return r
		})
		return rest, liveAtExit
	}()

	if !wasLiveAtExit {
		if d, ok := t.drop(def.Name); ok {
			newRest = core.Seq{Before: []core.Expr{d}, Result: newRest}
		}
	}

	newBody := t.ParcExpr(def.Body)

	return core.Let{
		Group: core.DefGroup{Kind: core.NonRec, Defs: []core.Def{{Name: def.Name, Body: newBody}}},
		Body:  newRest,
	}
}

// parcCase implements spec.md §4.5's case rule, normalizing first if
// needed.
func (t *Transformer) parcCase(v core.Case) core.Expr {
	if !isNormalizedCase(v) {
		return t.ParcExpr(t.normalizeCase(v))
	}

	liveIn := t.state.Live()

	branches := make([]*branchResult, len(v.Branches))
	for i, br := range v.Branches {
		branches[i] = t.parcBranch(br, liveIn)
	}

	// match_live is the live set shared by every branch, taken before the
	// scrutinees are marked live: a branch that never needs a scrutinee
	// beyond dispatch is free to drop it on that path (SPEC_FULL.md Open
	// Question (e), resolving the sequencing of spec.md §4.5 steps 3-4 against the
	// "drop(m0) in each branch" requirement of scenario 5).
	matchLive := t.state.Live()

	newBranches := make([]core.Branch, len(branches))
	for i, br := range branches {
		newBranches[i] = br.apply(t, matchLive)
	}

	// Only now mark the scrutinees live, so that a caller wrapping this
	// Case (e.g. the Let a case-normalized scrutinee binding lives in)
	// sees them as accounted for: each branch above already took
	// responsibility for dropping a scrutinee it didn't need.
	for _, s := range v.Scrutinees {
		sv, ok := s.(core.Var)
		if !ok {
			fatalf(t.state.defChain, "normalized case scrutinee is not a variable")
		}
		t.state.MarkLive(sv.Name)
	}

	return core.Case{Scrutinees: v.Scrutinees, Branches: newBranches, Typ: v.Typ}
}
