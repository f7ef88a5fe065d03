package core

import "strings"

// Type is a Core type expression: a type constructor, a type application,
// a universally quantified (forall) type, or a type variable.
type Type interface {
	// Key returns a structural identity string, used by TName.Key to tell
	// apart local bindings of the same name at different types.
	Key() string
	String() string
	typeNode()
}

// TCon is a named type constructor, e.g. "int" or "list".
type TCon struct {
	Name string
}

func (TCon) typeNode()       {}
func (t TCon) Key() string   { return "con:" + t.Name }
func (t TCon) String() string { return t.Name }

// TApp applies a head type to type arguments, e.g. list<int>.
type TApp struct {
	Head Type
	Args []Type
}

func (TApp) typeNode() {}

func (t TApp) Key() string {
	var sb strings.Builder
	sb.WriteString("app:")
	sb.WriteString(t.Head.Key())
	for _, a := range t.Args {
		sb.WriteByte(',')
		sb.WriteString(a.Key())
	}
	return sb.String()
}

func (t TApp) String() string {
	var sb strings.Builder
	sb.WriteString(t.Head.String())
	sb.WriteByte('<')
	for i, a := range t.Args {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(a.String())
	}
	sb.WriteByte('>')
	return sb.String()
}

// TForall is a universally quantified type, e.g. forall<a> a -> a.
type TForall struct {
	Vars []string
	Body Type
}

func (TForall) typeNode() {}

func (t TForall) Key() string {
	return "forall:" + strings.Join(t.Vars, ",") + ":" + t.Body.Key()
}

func (t TForall) String() string {
	return "forall<" + strings.Join(t.Vars, ", ") + "> " + t.Body.String()
}

// TVar is a type variable, e.g. the "a" in forall<a> a -> a.
type TVar struct {
	Name string
}

func (TVar) typeNode()        {}
func (t TVar) Key() string    { return "var:" + t.Name }
func (t TVar) String() string { return t.Name }

// HeadConstructor resolves t through TApp and TForall wrappers down to its
// head type constructor name. The second result is false when the head is
// an unresolvable type variable rather than a named constructor.
func HeadConstructor(t Type) (string, bool) {
	for {
		switch v := t.(type) {
		case TApp:
			t = v.Head
		case TForall:
			t = v.Body
		case TCon:
			return v.Name, true
		case TVar:
			return "", false
		default:
			return "", false
		}
	}
}

// DataKind classifies a data-type descriptor as returned by a NewTypes
// registry lookup.
type DataKind int

const (
	// KindHeap is any normal heap-allocated data type, or a value type
	// with at least one pointer-carrying field.
	KindHeap DataKind = iota
	// KindValue is a pure value type: raw bits, zero pointer fields.
	KindValue
)

// DataInfo is the essential bit of a data-definition descriptor that the
// Type Classifier needs: whether the type is a pure value type with no
// pointer content, and (for reuse-budget accounting) its raw/scan field
// counts.
type DataInfo struct {
	Kind DataKind
	// Raw is the count of non-pointer (scalar) fields; Scan is the count
	// of pointer-carrying fields. For KindHeap types these are unused.
	Raw  int
	Scan int
}

// IsPureValue reports whether d describes a value type with zero pointer
// fields — the only case the Type Classifier calls NoRC.
func (d DataInfo) IsPureValue() bool {
	return d.Kind == KindValue && d.Scan == 0
}

// NewTypes is the external, read-only type registry: a query for
// value-vs-heap representation, keyed by type-constructor name.
type NewTypes interface {
	Lookup(typeCtorName string) (DataInfo, bool)
}

// MapNewTypes is an in-memory NewTypes registry, following the
// lower-cased map-registry idiom used by internal/interp/types.TypeSystem.
type MapNewTypes struct {
	entries map[string]DataInfo
}

// NewMapNewTypes creates an empty registry.
func NewMapNewTypes() *MapNewTypes {
	return &MapNewTypes{entries: make(map[string]DataInfo)}
}

// Register adds or replaces the descriptor for typeCtorName.
func (r *MapNewTypes) Register(typeCtorName string, info DataInfo) {
	r.entries[strings.ToLower(typeCtorName)] = info
}

// Lookup implements NewTypes.
func (r *MapNewTypes) Lookup(typeCtorName string) (DataInfo, bool) {
	info, ok := r.entries[strings.ToLower(typeCtorName)]
	return info, ok
}
