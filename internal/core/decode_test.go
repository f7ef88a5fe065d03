package core

import (
	"fmt"
	"testing"
)

func TestDecodeProgramBuildsTypeRegistryAndDefs(t *testing.T) {
	yamlSrc := []byte(`
types:
  int:
    kind: value
    raw: 1
  list:
    kind: heap
program:
  - rec: false
    defs:
      - name: identity
        type: int
        body:
          var: x
          type: int
`)

	prog, reg, err := DecodeProgram(yamlSrc)
	if err != nil {
		t.Fatalf("DecodeProgram: %v", err)
	}

	info, ok := reg.Lookup("int")
	if !ok || !info.IsPureValue() {
		t.Fatalf("expected int to register as a pure value type, got %#v ok=%v", info, ok)
	}
	if _, ok := reg.Lookup("list"); !ok {
		t.Fatalf("expected list to be registered")
	}

	if len(prog.Groups) != 1 || len(prog.Groups[0].Defs) != 1 {
		t.Fatalf("expected a single group with a single def, got %#v", prog.Groups)
	}
	def := prog.Groups[0].Defs[0]
	if def.Name.Name != "identity" {
		t.Fatalf("expected def name identity, got %q", def.Name.Name)
	}
	v, ok := def.Body.(Var)
	if !ok || v.Name.Name != "x" {
		t.Fatalf("expected the def body to be a bare Var x, got %#v", def.Body)
	}
}

func TestDecodeProgramBuildsNestedAppAndLambda(t *testing.T) {
	yamlSrc := []byte(`
types:
  int:
    kind: value
    raw: 1
program:
  - defs:
      - name: addOne
        type: int
        body:
          lambda:
            params:
              - name: n
                type: int
            type: int
            body:
              app:
                fn:
                  var: n
                  qual: prelude
                  type: int
                args:
                  - lit: 1
                    type: int
                type: int
`)

	prog, _, err := DecodeProgram(yamlSrc)
	if err != nil {
		t.Fatalf("DecodeProgram: %v", err)
	}

	lam, ok := prog.Groups[0].Defs[0].Body.(Lambda)
	if !ok {
		t.Fatalf("expected a Lambda body, got %T", prog.Groups[0].Defs[0].Body)
	}
	if len(lam.Params) != 1 || lam.Params[0].Name != "n" {
		t.Fatalf("expected a single param n, got %#v", lam.Params)
	}
	app, ok := lam.Body.(App)
	if !ok || len(app.Args) != 1 {
		t.Fatalf("expected an App with one arg, got %#v", lam.Body)
	}
	lit, ok := app.Args[0].(Lit)
	if !ok || fmt.Sprint(lit.Value) != "1" {
		t.Fatalf("expected the argument to be literal 1, got %#v", app.Args[0])
	}
}

func TestDecodeProgramBuildsCaseWithPatterns(t *testing.T) {
	yamlSrc := []byte(`
types:
  int:
    kind: value
    raw: 1
  list:
    kind: heap
program:
  - defs:
      - name: headOr
        type: int
        body:
          case:
            type: int
            scrutinees:
              - var: m
                type: list<int>
            branches:
              - patterns:
                  - con: Cons
                    qual: list
                    fields:
                      - var: h
                        type: int
                      - var: t
                        type: list<int>
                guards:
                  - result:
                      var: h
                      type: int
              - patterns:
                  - con: Nil
                    qual: list
                guards:
                  - result:
                      lit: 0
                      type: int
`)

	prog, _, err := DecodeProgram(yamlSrc)
	if err != nil {
		t.Fatalf("DecodeProgram: %v", err)
	}

	c, ok := prog.Groups[0].Defs[0].Body.(Case)
	if !ok {
		t.Fatalf("expected a Case body, got %T", prog.Groups[0].Defs[0].Body)
	}
	if len(c.Branches) != 2 {
		t.Fatalf("expected two branches, got %d", len(c.Branches))
	}
	cons, ok := c.Branches[0].Patterns[0].(PatCon)
	if !ok || cons.Name.Name != "Cons" || len(cons.Fields) != 2 {
		t.Fatalf("expected a Cons(h, t) pattern, got %#v", c.Branches[0].Patterns[0])
	}
	if c.Branches[0].Guards[0].Test == nil {
		t.Fatalf("an omitted guard test must default to a literal true, not nil")
	}
}

func TestDecodeProgramRejectsMalformedType(t *testing.T) {
	yamlSrc := []byte(`
types: {}
program:
  - defs:
      - name: bad
        type: "list<int"
        body:
          lit: 0
          type: int
`)
	if _, _, err := DecodeProgram(yamlSrc); err == nil {
		t.Fatalf("expected an error for an unterminated type application")
	}
}
