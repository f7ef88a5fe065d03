package parc

import "github.com/cwbudde/go-dws/internal/core"

// Runtime primitive names, reserved globally (spec.md §6). The pass never
// executes these; it only constructs Core nodes that reference them by
// name, carrying the code generator's literal C-call template in the
// Var's info tag.
const (
	primDup           = "dup"
	primDrop          = "drop"
	primIsUnique      = "constructor_is_unique"
	primFree          = "constructor_free"
	primDropReuse     = "drop_reuse_datatype"
	primNoReuse       = "no_reuse"
	primAllocAt       = "alloc_at"
)

// reuseTokenType is the type of the opaque token threaded through reuse
// primitives (drop_reuse / alloc_at); unused by any reuse decision in
// this pass (see SPEC_FULL.md Open Question (b)) but needed to give the
// emitted primitive calls a well-formed result type.
var reuseTokenType core.Type = core.TCon{Name: "reuse"}
var unitType core.Type = core.TCon{Name: "unit"}
var boolType core.Type = core.TCon{Name: "bool"}

func externalVar(name, template string) core.Var {
	return core.Var{
		Name: core.NewQualified("runtime", name, nil),
		Info: core.VarInfo{Kind: core.InfoExternal, Template: template},
	}
}

// emitDup constructs `dup(x)`, a Core expression invoking the runtime dup
// primitive. Its result type is the same as the argument's.
func emitDup(arg core.Expr, typ core.Type) core.Expr {
	return core.App{
		Fn:   externalVar(primDup, "dup(#1)"),
		Args: []core.Expr{arg},
		Typ:  typ,
	}
}

// emitDrop constructs `drop(x)`, a unit-typed Core expression invoking
// the runtime drop primitive.
func emitDrop(arg core.Expr) core.Expr {
	return core.App{
		Fn:   externalVar(primDrop, "drop(#1)"),
		Args: []core.Expr{arg},
		Typ:  unitType,
	}
}

// emitIsUnique constructs `constructor_is_unique(x)`, a bool-typed Core
// expression.
func emitIsUnique(arg core.Expr) core.Expr {
	return core.App{
		Fn:   externalVar(primIsUnique, "constructor_is_unique(#1)"),
		Args: []core.Expr{arg},
		Typ:  boolType,
	}
}

// emitFree constructs `constructor_free(x)`, a unit-typed Core
// expression.
func emitFree(arg core.Expr) core.Expr {
	return core.App{
		Fn:   externalVar(primFree, "constructor_free(#1)"),
		Args: []core.Expr{arg},
		Typ:  unitType,
	}
}

// emitDropReuse constructs `drop_reuse_datatype(x, current_context())`, a
// reuse-token-typed Core expression.
func emitDropReuse(arg core.Expr) core.Expr {
	return core.App{
		Fn:   externalVar(primDropReuse, "drop_reuse_datatype(#1, current_context())"),
		Args: []core.Expr{arg},
		Typ:  reuseTokenType,
	}
}

// emitNoReuse constructs the nullary `no_reuse()` token expression.
func emitNoReuse() core.Expr {
	return core.App{
		Fn:   externalVar(primNoReuse, "no_reuse()"),
		Args: nil,
		Typ:  reuseTokenType,
	}
}

// emitAllocAt constructs an `alloc_at(reuseToken, conApp)` expression:
// allocate conApp's constructor in-place at the memory reuseToken
// describes. Its result type is conApp's type.
func emitAllocAt(reuseToken, conApp core.Expr, resultType core.Type) core.Expr {
	return core.App{
		Fn:   externalVar(primAllocAt, "alloc_at(#1, #2)"),
		Args: []core.Expr{reuseToken, conApp},
		Typ:  resultType,
	}
}

// genDup returns dup(name) wrapping a plain Var occurrence of name, but
// only when name's type classifies as RC; machine-word types need no
// reference-count traffic at all.
func genDup(name core.TName, reg core.NewTypes, defChain []core.TName) (core.Expr, bool) {
	if classify(name.Type, reg, defChain) != RC {
		return nil, false
	}
	return emitDup(core.Var{Name: name, Info: core.VarInfo{Kind: core.InfoNone}}, name.Type), true
}

// genDrop returns drop(name) wrapping a plain Var occurrence of name, but
// only when name's type classifies as RC.
func genDrop(name core.TName, reg core.NewTypes, defChain []core.TName) (core.Expr, bool) {
	if classify(name.Type, reg, defChain) != RC {
		return nil, false
	}
	return emitDrop(core.Var{Name: name, Info: core.VarInfo{Kind: core.InfoNone}}), true
}

// genKeepMatch and genReuseMatch construct the keep-or-reuse decision
// primitives around a matched constructor's fields: genKeepMatch returns
// drops for the given fields and leaves the cell itself untouched;
// genReuseMatch returns the scrutinee's uniqueness test and its
// drop_reuse token expression as a pair, without building the
// conditional that would combine them. Per SPEC_FULL.md Open Question
// (b), the transformer never invokes these, and no test calls them.
func genKeepMatch(scrutinee core.TName, fieldsToDrop []core.TName, reg core.NewTypes, defChain []core.TName) []core.Expr {
	drops := make([]core.Expr, 0, len(fieldsToDrop))
	for _, f := range fieldsToDrop {
		if d, ok := genDrop(f, reg, defChain); ok {
			drops = append(drops, d)
		}
	}
	return drops
}

func genReuseMatch(scrutinee core.TName) (testUnique core.Expr, reuseToken core.Expr) {
	v := core.Var{Name: scrutinee, Info: core.VarInfo{Kind: core.InfoNone}}
	return emitIsUnique(v), emitDropReuse(v)
}

// countPrimCalls walks e and counts occurrences of an externally-tagged
// Var named name used as an App's function position — i.e. calls to one
// of the runtime primitives above. Used both by tests pinning the six
// scenarios and by the trace builder's dup/drop counters.
func countPrimCalls(e core.Expr, name string) int {
	n := 0
	var walk func(core.Expr)
	walk = func(e core.Expr) {
		switch v := e.(type) {
		case core.App:
			if fv, ok := v.Fn.(core.Var); ok && fv.Info.Kind == core.InfoExternal && fv.Name.Name == name {
				n++
			}
			walk(v.Fn)
			for _, a := range v.Args {
				walk(a)
			}
		case core.Seq:
			for _, b := range v.Before {
				walk(b)
			}
			walk(v.Result)
		case core.Lambda:
			walk(v.Body)
		case core.Let:
			for _, d := range v.Group.Defs {
				walk(d.Body)
			}
			walk(v.Body)
		case core.Case:
			for _, s := range v.Scrutinees {
				walk(s)
			}
			for _, br := range v.Branches {
				for _, g := range br.Guards {
					walk(g.Test)
					walk(g.Result)
				}
			}
		case core.TypeLambda:
			walk(v.Body)
		case core.TypeApp:
			walk(v.Body)
		}
	}
	walk(e)
	return n
}
