package core

import (
	"fmt"

	"github.com/goccy/go-yaml"
)

// FixtureProgram is the YAML-decodable shape of a whole Core program
// fixture: a newtype registry plus the top-level definition groups. This
// decoder is test tooling only — building an actual Core-IR front end
// (parsing DWScript, or any other surface syntax, down to Core) remains
// out of scope; fixtures let internal/parc's tests describe Core trees
// as data instead of hand-built Go literals.
type FixtureProgram struct {
	Types   map[string]typeSpec  `yaml:"types"`
	Program []defGroupSpec       `yaml:"program"`
}

type typeSpec struct {
	Kind string `yaml:"kind"` // "heap" or "value"
	Raw  int    `yaml:"raw"`
	Scan int    `yaml:"scan"`
}

type defGroupSpec struct {
	Rec  bool      `yaml:"rec"`
	Defs []defSpec `yaml:"defs"`
}

type defSpec struct {
	Name string   `yaml:"name"`
	Qual string   `yaml:"qual"`
	Type typeExpr `yaml:"type"`
	Body exprSpec `yaml:"body"`
}

// typeExpr is a small textual type grammar: a bare name ("int"), or
// "name<arg, arg, ...>" for an application. Forall/type-variable fixtures
// are out of scope for this decoder (Core programs built by hand in Go
// cover those cases; fixtures exercise the common monomorphic shapes).
type typeExpr string

func (t typeExpr) build() (Type, error) {
	s := string(t)
	lt := -1
	for i, r := range s {
		if r == '<' {
			lt = i
			break
		}
	}
	if lt < 0 {
		return TCon{Name: s}, nil
	}
	if s[len(s)-1] != '>' {
		return nil, fmt.Errorf("type %q: missing closing '>'", s)
	}
	head := s[:lt]
	argStr := s[lt+1 : len(s)-1]
	args, err := splitTypeArgs(argStr)
	if err != nil {
		return nil, fmt.Errorf("type %q: %w", s, err)
	}
	return TApp{Head: TCon{Name: head}, Args: args}, nil
}

func splitTypeArgs(s string) ([]Type, error) {
	var parts []string
	depth := 0
	start := 0
	for i, r := range s {
		switch r {
		case '<':
			depth++
		case '>':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	parts = append(parts, s[start:])
	out := make([]Type, 0, len(parts))
	for _, p := range parts {
		trimmed := trimSpace(p)
		if trimmed == "" {
			continue
		}
		typ, err := typeExpr(trimmed).build()
		if err != nil {
			return nil, err
		}
		out = append(out, typ)
	}
	return out, nil
}

func trimSpace(s string) string {
	i, j := 0, len(s)
	for i < j && s[i] == ' ' {
		i++
	}
	for j > i && s[j-1] == ' ' {
		j--
	}
	return s[i:j]
}

// exprSpec is the tagged-union YAML shape for a Core expression. Exactly
// one of its fields should be set, selecting the variant.
type exprSpec struct {
	Var  string     `yaml:"var"`
	Qual string     `yaml:"qual"`
	Lit  any        `yaml:"lit"`
	Con  string     `yaml:"con"`
	Type typeExpr   `yaml:"type"`
	App  *appSpec   `yaml:"app"`
	Let  *letSpec   `yaml:"let"`
	Case *caseSpec  `yaml:"case"`
	Lam  *lambdaSpec `yaml:"lambda"`
}

type appSpec struct {
	Fn   exprSpec   `yaml:"fn"`
	Args []exprSpec `yaml:"args"`
	Type typeExpr   `yaml:"type"`
}

type lambdaSpec struct {
	Params []paramSpec `yaml:"params"`
	Body   exprSpec    `yaml:"body"`
	Type   typeExpr    `yaml:"type"`
}

type paramSpec struct {
	Name string   `yaml:"name"`
	Type typeExpr `yaml:"type"`
}

type letSpec struct {
	Name string   `yaml:"name"`
	Type typeExpr `yaml:"type"`
	Bind exprSpec `yaml:"bind"`
	Body exprSpec `yaml:"body"`
}

type caseSpec struct {
	Scrutinees []exprSpec    `yaml:"scrutinees"`
	Branches   []branchSpec  `yaml:"branches"`
	Type       typeExpr      `yaml:"type"`
}

type branchSpec struct {
	Patterns []patternSpec `yaml:"patterns"`
	Guards   []guardSpec   `yaml:"guards"`
}

type guardSpec struct {
	Test   *exprSpec `yaml:"test"`
	Result exprSpec  `yaml:"result"`
}

type patternSpec struct {
	Wild   bool          `yaml:"wild"`
	Var    string        `yaml:"var"`
	Type   typeExpr      `yaml:"type"`
	Lit    any           `yaml:"lit"`
	Con    string        `yaml:"con"`
	Qual   string        `yaml:"qual"`
	Fields []patternSpec `yaml:"fields"`
	Sub    *patternSpec  `yaml:"sub"`
}

// DecodeProgram parses a YAML fixture into a Program plus the NewTypes
// registry it declares.
func DecodeProgram(data []byte) (Program, NewTypes, error) {
	var fp FixtureProgram
	if err := yaml.Unmarshal(data, &fp); err != nil {
		return Program{}, nil, fmt.Errorf("decode fixture: %w", err)
	}

	reg := NewMapNewTypes()
	for name, spec := range fp.Types {
		kind := KindHeap
		if spec.Kind == "value" {
			kind = KindValue
		}
		reg.Register(name, DataInfo{Kind: kind, Raw: spec.Raw, Scan: spec.Scan})
	}

	groups := make([]DefGroup, len(fp.Program))
	for i, g := range fp.Program {
		defs := make([]Def, len(g.Defs))
		for j, d := range g.Defs {
			typ, err := d.Type.build()
			if err != nil {
				return Program{}, nil, err
			}
			body, err := d.Body.build()
			if err != nil {
				return Program{}, nil, fmt.Errorf("def %s: %w", d.Name, err)
			}
			name := NewLocal(d.Name, typ)
			if d.Qual != "" {
				name = NewQualified(d.Qual, d.Name, typ)
			}
			defs[j] = Def{Name: name, Body: body}
		}
		kind := NonRec
		if g.Rec {
			kind = Rec
		}
		groups[i] = DefGroup{Kind: kind, Defs: defs}
	}

	return Program{Groups: groups}, reg, nil
}

func (e exprSpec) build() (Expr, error) {
	switch {
	case e.Var != "":
		typ, err := e.Type.build()
		if err != nil {
			return nil, err
		}
		name := NewLocal(e.Var, typ)
		if e.Qual != "" {
			name = NewQualified(e.Qual, e.Var, typ)
		}
		return Var{Name: name, Info: VarInfo{Kind: InfoNone}}, nil

	case e.Con != "":
		typ, err := e.Type.build()
		if err != nil {
			return nil, err
		}
		return Con{Name: NewQualified(e.Qual, e.Con, typ), Typ: typ}, nil

	case e.Lit != nil:
		typ, err := e.Type.build()
		if err != nil {
			return nil, err
		}
		return Lit{Value: e.Lit, Typ: typ}, nil

	case e.App != nil:
		fn, err := e.App.Fn.build()
		if err != nil {
			return nil, err
		}
		args := make([]Expr, len(e.App.Args))
		for i, a := range e.App.Args {
			ae, err := a.build()
			if err != nil {
				return nil, err
			}
			args[i] = ae
		}
		typ, err := e.App.Type.build()
		if err != nil {
			return nil, err
		}
		return App{Fn: fn, Args: args, Typ: typ}, nil

	case e.Lam != nil:
		params := make([]TName, len(e.Lam.Params))
		for i, p := range e.Lam.Params {
			typ, err := p.Type.build()
			if err != nil {
				return nil, err
			}
			params[i] = NewLocal(p.Name, typ)
		}
		body, err := e.Lam.Body.build()
		if err != nil {
			return nil, err
		}
		typ, err := e.Lam.Type.build()
		if err != nil {
			return nil, err
		}
		return Lambda{Params: params, Body: body, Typ: typ}, nil

	case e.Let != nil:
		typ, err := e.Let.Type.build()
		if err != nil {
			return nil, err
		}
		bind, err := e.Let.Bind.build()
		if err != nil {
			return nil, err
		}
		body, err := e.Let.Body.build()
		if err != nil {
			return nil, err
		}
		return Let{
			Group: DefGroup{Kind: NonRec, Defs: []Def{{Name: NewLocal(e.Let.Name, typ), Body: bind}}},
			Body:  body,
		}, nil

	case e.Case != nil:
		scruts := make([]Expr, len(e.Case.Scrutinees))
		for i, s := range e.Case.Scrutinees {
			se, err := s.build()
			if err != nil {
				return nil, err
			}
			scruts[i] = se
		}
		branches := make([]Branch, len(e.Case.Branches))
		for i, b := range e.Case.Branches {
			pats := make([]Pattern, len(b.Patterns))
			for j, p := range b.Patterns {
				pe, err := p.build()
				if err != nil {
					return nil, err
				}
				pats[j] = pe
			}
			guards := make([]Guard, len(b.Guards))
			for j, g := range b.Guards {
				result, err := g.Result.build()
				if err != nil {
					return nil, err
				}
				test := Expr(Lit{Value: true, Typ: TCon{Name: "bool"}})
				if g.Test != nil {
					test, err = g.Test.build()
					if err != nil {
						return nil, err
					}
				}
				guards[j] = Guard{Test: test, Result: result}
			}
			branches[i] = Branch{Patterns: pats, Guards: guards}
		}
		typ, err := e.Case.Type.build()
		if err != nil {
			return nil, err
		}
		return Case{Scrutinees: scruts, Branches: branches, Typ: typ}, nil

	default:
		return nil, fmt.Errorf("expression fixture has no recognized variant set")
	}
}

func (p patternSpec) build() (Pattern, error) {
	switch {
	case p.Wild:
		return PatWild{}, nil
	case p.Con != "":
		typ, err := p.Type.build()
		if err != nil {
			return nil, err
		}
		fields := make([]Pattern, len(p.Fields))
		for i, f := range p.Fields {
			fe, err := f.build()
			if err != nil {
				return nil, err
			}
			fields[i] = fe
		}
		return PatCon{Name: NewQualified(p.Qual, p.Con, typ), Fields: fields, Typ: typ}, nil
	case p.Lit != nil:
		return PatLit{Value: p.Lit}, nil
	case p.Var != "":
		typ, err := p.Type.build()
		if err != nil {
			return nil, err
		}
		sub := Pattern(PatWild{})
		if p.Sub != nil {
			var err error
			sub, err = p.Sub.build()
			if err != nil {
				return nil, err
			}
		}
		return PatVar{Name: NewLocal(p.Var, typ), Sub: sub}, nil
	default:
		return nil, fmt.Errorf("pattern fixture has no recognized variant set")
	}
}
