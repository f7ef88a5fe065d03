package parc

import (
	"os"
	"testing"

	"github.com/cwbudde/go-dws/internal/core"
)

func TestEnabledFromEnv(t *testing.T) {
	tests := []struct {
		name  string
		value string
		unset bool
		want  bool
	}{
		{name: "unset", unset: true, want: false},
		{name: "empty string", value: "", want: false},
		{name: "one", value: "1", want: true},
		{name: "ON mixed case", value: "On", want: true},
		{name: "YES upper", value: "YES", want: true},
		{name: "t shorthand", value: "t", want: true},
		{name: "zero", value: "0", want: false},
		{name: "garbage", value: "maybe", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.unset {
				if err := os.Unsetenv("KK_PARC"); err != nil {
					t.Fatalf("Unsetenv: %v", err)
				}
			} else {
				t.Setenv("KK_PARC", tt.value)
			}
			if got := EnabledFromEnv(); got != tt.want {
				t.Fatalf("EnabledFromEnv() with KK_PARC=%q (unset=%v) = %v, want %v", tt.value, tt.unset, got, tt.want)
			}
		})
	}
}

func TestRunCollectErrorsContinuesAfterOneGroupFails(t *testing.T) {
	intT := core.TCon{Name: "int"}
	reg := core.NewMapNewTypes()
	reg.Register("int", core.DataInfo{Kind: core.KindValue, Raw: 1})

	// A def whose body is a Let with a recursive group is a fatal
	// structural error (spec.md's "recursive let is fatal"); a sibling def
	// with a valid body must still be transformed under CollectErrors.
	// Run walks groups in reverse, so the bad group is placed last to fail
	// before the good one is reached.
	bad := core.Def{
		Name: core.NewQualified("m", "bad", intT),
		Body: core.Let{
			Group: core.DefGroup{Kind: core.Rec, Defs: []core.Def{
				{Name: core.NewLocal("r", intT), Body: core.Lit{Value: 0, Typ: intT}},
			}},
			Body: core.Lit{Value: 0, Typ: intT},
		},
	}
	good := core.Def{
		Name: core.NewQualified("m", "good", intT),
		Body: core.Lit{Value: 1, Typ: intT},
	}

	prog := core.Program{Groups: []core.DefGroup{
		{Kind: core.NonRec, Defs: []core.Def{good}},
		{Kind: core.NonRec, Defs: []core.Def{bad}},
	}}

	enabled := true
	got, err := Run(prog, reg, Options{Enabled: &enabled, CollectErrors: true})
	if err == nil {
		t.Fatalf("expected Run to report the recursive-let error under CollectErrors")
	}
	if len(got.Groups) != 2 || len(got.Groups[0].Defs) != 1 || got.Groups[0].Defs[0].Name != good.Name {
		t.Fatalf("expected the good group to be transformed after the bad one failed, got %#v", got.Groups)
	}
}

func TestRunFailFastPropagatesInternalError(t *testing.T) {
	intT := core.TCon{Name: "int"}
	reg := core.NewMapNewTypes()
	reg.Register("int", core.DataInfo{Kind: core.KindValue, Raw: 1})

	bad := core.Def{
		Name: core.NewQualified("m", "bad", intT),
		Body: core.Let{
			Group: core.DefGroup{Kind: core.Rec, Defs: []core.Def{
				{Name: core.NewLocal("r", intT), Body: core.Lit{Value: 0, Typ: intT}},
			}},
			Body: core.Lit{Value: 0, Typ: intT},
		},
	}
	prog := core.Program{Groups: []core.DefGroup{{Kind: core.NonRec, Defs: []core.Def{bad}}}}

	enabled := true
	_, err := Run(prog, reg, Options{Enabled: &enabled})
	if err == nil {
		t.Fatalf("expected Run to surface the InternalError instead of panicking past its recover boundary")
	}
	if _, ok := err.(*InternalError); !ok {
		t.Fatalf("expected a *InternalError, got %T", err)
	}
}
