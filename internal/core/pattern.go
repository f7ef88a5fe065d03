package core

import "strings"

// Pattern is a single pattern in a case branch.
type Pattern interface {
	String() string
	patternNode()
}

// PatVar is a variable-binding pattern: it binds Name, and additionally
// matches Sub against the same scrutinee. A PatVar at the top level of a
// branch's pattern list (i.e. standing for the whole match against one
// scrutinee) must be eliminated by the Case Normalizer before analysis;
// a PatVar nested inside a PatCon's Fields is a genuine field binding and
// survives normalization unchanged.
type PatVar struct {
	Name TName
	Sub  Pattern
}

func (PatVar) patternNode() {}
func (p PatVar) String() string {
	return p.Name.String() + "@" + p.Sub.String()
}

// PatCon matches a saturated data constructor, binding its Fields.
type PatCon struct {
	Name   TName
	Fields []Pattern
	Typ    Type
}

func (PatCon) patternNode() {}
func (p PatCon) String() string {
	fields := make([]string, len(p.Fields))
	for i, f := range p.Fields {
		fields[i] = f.String()
	}
	return p.Name.String() + "(" + strings.Join(fields, ", ") + ")"
}

// PatWild matches anything and binds nothing.
type PatWild struct{}

func (PatWild) patternNode()     {}
func (PatWild) String() string   { return "_" }

// PatLit matches a literal value exactly.
type PatLit struct {
	Value any
}

func (PatLit) patternNode() {}
func (p PatLit) String() string {
	return stringifyLit(p.Value)
}

// Guard is one clause of a branch: Test must hold for Result to apply.
type Guard struct {
	Test   Expr
	Result Expr
}

func (g Guard) String() string {
	return "| " + g.Test.String() + " -> " + g.Result.String()
}

// Branch matches one pattern per scrutinee, then evaluates the first
// guard whose Test succeeds.
type Branch struct {
	Patterns []Pattern
	Guards   []Guard
}

func (b Branch) String() string {
	pats := make([]string, len(b.Patterns))
	for i, p := range b.Patterns {
		pats[i] = p.String()
	}
	guards := make([]string, len(b.Guards))
	for i, g := range b.Guards {
		guards[i] = g.String()
	}
	return strings.Join(pats, ", ") + " " + strings.Join(guards, " ")
}

// IsVarPattern reports whether p is a top-level variable-binding wrapper,
// the shape the Case Normalizer must eliminate.
func IsVarPattern(p Pattern) bool {
	_, ok := p.(PatVar)
	return ok
}

// boundVarsPattern recursively collects every name bound by p, including
// field bindings nested inside PatCon.
func boundVarsPattern(p Pattern, out *NameSet) {
	switch v := p.(type) {
	case PatVar:
		*out = out.With(v.Name)
		boundVarsPattern(v.Sub, out)
	case PatCon:
		for _, f := range v.Fields {
			boundVarsPattern(f, out)
		}
	case PatWild, PatLit:
		// no bindings
	}
}

// BoundVars returns every name bound across pats, recursively.
func BoundVars(pats []Pattern) NameSet {
	s := EmptyNameSet()
	for _, p := range pats {
		boundVarsPattern(p, &s)
	}
	return s
}

// Def is a single named binding.
type Def struct {
	Name TName
	Body Expr
}

// DefKind distinguishes a non-recursive binding from a recursive group.
type DefKind int

const (
	NonRec DefKind = iota
	Rec
)

// DefGroup is a named-binding group: either a single non-recursive Def,
// or a list of mutually recursive Defs. Groups preserve source order but
// PARC's Definition Driver processes them in reverse.
type DefGroup struct {
	Kind DefKind
	Defs []Def
}

// BoundVars returns the names bound by this group (one per Def).
func (g DefGroup) BoundVars() NameSet {
	s := EmptyNameSet()
	for _, d := range g.Defs {
		s = s.With(d.Name)
	}
	return s
}

// Program is a Core program: top-level definition groups in source order.
type Program struct {
	Groups []DefGroup
}
