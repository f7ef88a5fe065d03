package core

import (
	"fmt"
	"strings"
)

// Expr is a Core expression node. Dispatch is by type switch over the
// concrete variants below, not by virtual method, matching the Core IR's
// "tagged variant" data model.
type Expr interface {
	String() string
	exprNode()
}

// VarInfoKind distinguishes a plain reference-counted occurrence from one
// the pass must leave alone.
type VarInfoKind int

const (
	// InfoNone marks a plain local/global reference: reference-counted.
	InfoNone VarInfoKind = iota
	// InfoArity marks an arity-only reference (a function used only as a
	// call target, never duplicated as a value): not reference-counted.
	InfoArity
	// InfoExternal marks a reference to an externally-implemented
	// primitive; Template carries the runtime code-generator's literal
	// C-call template string. Not reference-counted.
	InfoExternal
)

// VarInfo is the info tag carried by a Var occurrence.
type VarInfo struct {
	Kind     VarInfoKind
	Arity    int    // meaningful when Kind == InfoArity
	Template string // meaningful when Kind == InfoExternal
}

// TypeLambda abstracts an expression over type parameters (transparent to
// PARC: it recurses into Body and preserves TypeParams).
type TypeLambda struct {
	TypeParams []string
	Body       Expr
}

func (TypeLambda) exprNode() {}
func (e TypeLambda) String() string {
	return "/\\<" + strings.Join(e.TypeParams, ", ") + "> " + e.Body.String()
}

// TypeApp instantiates a polymorphic expression at concrete type
// arguments (transparent to PARC).
type TypeApp struct {
	Body     Expr
	TypeArgs []Type
}

func (TypeApp) exprNode() {}
func (e TypeApp) String() string {
	var sb strings.Builder
	sb.WriteString(e.Body.String())
	sb.WriteByte('@')
	sb.WriteByte('<')
	for i, t := range e.TypeArgs {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(t.String())
	}
	sb.WriteByte('>')
	return sb.String()
}

// Lambda is a value-lambda: a closure over its free locals (Captures),
// taking Params, evaluating Body.
type Lambda struct {
	Params   []TName
	Body     Expr
	Typ      Type
	Captures []TName // set by the transformer; empty until analyzed
}

func (Lambda) exprNode() {}
func (e Lambda) String() string {
	names := make([]string, len(e.Params))
	for i, p := range e.Params {
		names[i] = p.String()
	}
	return "\\(" + strings.Join(names, ", ") + ") " + e.Body.String()
}

// Var is a variable occurrence.
type Var struct {
	Name TName
	Info VarInfo
}

func (Var) exprNode()        {}
func (e Var) String() string { return e.Name.String() }

// Lit is a literal value. Value is opaque to PARC (it never carries
// pointer content needing reference counting).
type Lit struct {
	Value any
	Typ   Type
}

func (Lit) exprNode() {}
func (e Lit) String() string {
	return stringifyLit(e.Value)
}

func stringifyLit(v any) string {
	if s, ok := v.(string); ok {
		return "\"" + s + "\""
	}
	return fmt.Sprint(v)
}

// Con is a bare reference to a data constructor, e.g. "Nil" or "Cons"
// used as the head of an Application. Constructors are always qualified
// (globally allocated), so — like a qualified Var — Con is a no-op for
// liveness/ownership purposes.
type Con struct {
	Name TName
	Typ  Type
}

func (Con) exprNode()        {}
func (e Con) String() string { return e.Name.String() }

// App is a function application (also used for saturated constructor
// applications: App{Fn: Con{...}, Args: fields}).
type App struct {
	Fn   Expr
	Args []Expr
	Typ  Type
}

func (App) exprNode() {}
func (e App) String() string {
	args := make([]string, len(e.Args))
	for i, a := range e.Args {
		args[i] = a.String()
	}
	return e.Fn.String() + "(" + strings.Join(args, ", ") + ")"
}

// Seq sequences zero or more side-effecting expressions (typically
// dup/drop primitive calls inserted by PARC) before a final Result. It is
// the statement-sequencing construct referenced by the "bodies ... may be
// wrapped in statement sequences" shape-preservation property: Core has no
// separate statement sub-language, so PARC uses Seq wherever it needs to
// prepend effects to an expression.
type Seq struct {
	Before []Expr
	Result Expr
}

func (Seq) exprNode() {}
func (e Seq) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for _, b := range e.Before {
		sb.WriteString(b.String())
		sb.WriteString("; ")
	}
	sb.WriteString(e.Result.String())
	sb.WriteByte('}')
	return sb.String()
}

// Let is a (non-recursive or recursive) local binding followed by a Body.
// An empty Group (no Defs) is equivalent to Body alone.
type Let struct {
	Group DefGroup
	Body  Expr
}

func (Let) exprNode() {}
func (e Let) String() string {
	if len(e.Group.Defs) == 0 {
		return e.Body.String()
	}
	var sb strings.Builder
	sb.WriteString("let ")
	for i, d := range e.Group.Defs {
		if i > 0 {
			sb.WriteString(" and ")
		}
		sb.WriteString(d.Name.String())
		sb.WriteString(" = ")
		sb.WriteString(d.Body.String())
	}
	sb.WriteString(" in ")
	sb.WriteString(e.Body.String())
	return sb.String()
}

// Case is a multi-way pattern match over one or more scrutinees.
type Case struct {
	Scrutinees []Expr
	Branches   []Branch
	Typ        Type
}

func (Case) exprNode() {}
func (e Case) String() string {
	scruts := make([]string, len(e.Scrutinees))
	for i, s := range e.Scrutinees {
		scruts[i] = s.String()
	}
	var sb strings.Builder
	sb.WriteString("case ")
	sb.WriteString(strings.Join(scruts, ", "))
	sb.WriteString(" of")
	for _, b := range e.Branches {
		sb.WriteString(" | ")
		sb.WriteString(b.String())
	}
	return sb.String()
}
