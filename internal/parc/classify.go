package parc

import "github.com/cwbudde/go-dws/internal/core"

// RCClass is the result of classifying a Core type: does a value of this
// type ever need dup/drop traffic.
type RCClass int

const (
	// RC means values of this type carry pointer content: dup/drop apply.
	RC RCClass = iota
	// NoRC means values of this type are pure value-with-no-pointer-fields
	// (e.g. machine integers): no reference-count traffic is ever needed.
	NoRC
)

// classify resolves typ's head type constructor through type applications
// and forall quantifiers. If the head is a constructor whose registry
// descriptor is a pure value type with zero pointer fields, the result is
// NoRC; every other case (a normal heap type, a value type with at least
// one pointer field, or an unresolvable type variable) is RC. An unknown
// named type constructor is a fatal internal error: the type registry is
// expected to be complete at this stage.
func classify(typ core.Type, reg core.NewTypes, defChain []core.TName) RCClass {
	name, ok := core.HeadConstructor(typ)
	if !ok {
		// Unresolvable type variable: conservatively RC.
		return RC
	}
	info, found := reg.Lookup(name)
	if !found {
		fatalf(defChain, "unknown type constructor %q: type registry is expected to be complete at this stage", name)
	}
	if info.IsPureValue() {
		return NoRC
	}
	return RC
}

// fieldSize is the reuse-budget contribution of a single field's type: 0
// for a pure value type or a nullary constructor (handled by the caller),
// 1 for any non-value (pointer) field, or raw+scan for a value-type field
// with pointer content.
func fieldSize(typ core.Type, reg core.NewTypes, defChain []core.TName) int {
	name, ok := core.HeadConstructor(typ)
	if !ok {
		return 1
	}
	info, found := reg.Lookup(name)
	if !found {
		fatalf(defChain, "unknown type constructor %q: type registry is expected to be complete at this stage", name)
	}
	if info.Kind == core.KindValue {
		if info.Scan == 0 {
			return 0
		}
		return info.Raw + info.Scan
	}
	return 1
}

// constructorSize computes the reuse-budget size of a saturated
// constructor application: 0 for a pure value type or a nullary
// constructor, otherwise the sum of field sizes.
func constructorSize(conRepr core.Type, paramTypes []core.Type, reg core.NewTypes, defChain []core.TName) int {
	if len(paramTypes) == 0 {
		return 0
	}
	if name, ok := core.HeadConstructor(conRepr); ok {
		if info, found := reg.Lookup(name); found && info.IsPureValue() {
			return 0
		}
	}
	total := 0
	for _, pt := range paramTypes {
		total += fieldSize(pt, reg, defChain)
	}
	return total
}
