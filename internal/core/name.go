// Package core defines the Core intermediate representation consumed and
// produced by the PARC pass: a small, typed, lambda-calculus-flavored IR
// sitting below go-dws's surface AST. Nodes are plain structs dispatched
// by type switch, in the same closed-interface idiom as internal/ast.
package core

import "strings"

// TName is a qualified identifier paired with its type. Names appearing in
// the owned/live sets analyzed by internal/parc are always local
// (unqualified); top-level (qualified) names are never reference-counted.
type TName struct {
	Name      string
	Qualifier string // empty for local/unqualified names
	Type      Type
}

// NewLocal builds an unqualified name.
func NewLocal(name string, typ Type) TName {
	return TName{Name: name, Type: typ}
}

// NewQualified builds a top-level, qualified name.
func NewQualified(qualifier, name string, typ Type) TName {
	return TName{Name: name, Qualifier: qualifier, Type: typ}
}

// IsQualified reports whether n refers to a top-level, globally allocated
// binding. Qualified names never enter the live set.
func (n TName) IsQualified() bool {
	return n.Qualifier != ""
}

// Key returns a stable identity for n, combining identifier (with scope
// disambiguation) and type position, per the equality rule in the data
// model: two names are the same entry only if both their qualified
// identifier and their type agree.
func (n TName) Key() string {
	var sb strings.Builder
	sb.WriteString(n.Qualifier)
	sb.WriteByte('/')
	sb.WriteString(n.Name)
	sb.WriteByte('@')
	if n.Type != nil {
		sb.WriteString(n.Type.Key())
	}
	return sb.String()
}

func (n TName) String() string {
	if n.IsQualified() {
		return n.Qualifier + "." + n.Name
	}
	return n.Name
}
