package parc

import "github.com/cwbudde/go-dws/internal/core"

// DefTrace summarizes one definition's primitive insertions, for
// diagnostic output (the `dwscript parc --trace-json` subcommand).
type DefTrace struct {
	Name   string `json:"name"`
	Dups   int    `json:"dups"`
	Drops  int    `json:"drops"`
	Before string `json:"before"`
	After  string `json:"after"`
}

// ProgramTrace summarizes an entire Run, one DefTrace per definition in
// source order.
type ProgramTrace struct {
	Defs []DefTrace `json:"defs"`
}

// BuildTrace compares before (the program handed to Run) against after
// (the program Run returned) and counts the primitive calls the pass
// inserted into each definition's body. The two programs must have the
// same group/def shape, which always holds for a program returned by Run
// started from before.
func BuildTrace(before, after core.Program) ProgramTrace {
	var trace ProgramTrace
	for gi, group := range after.Groups {
		for di, def := range group.Defs {
			var beforeBody core.Expr
			if gi < len(before.Groups) && di < len(before.Groups[gi].Defs) {
				beforeBody = before.Groups[gi].Defs[di].Body
			}
			trace.Defs = append(trace.Defs, DefTrace{
				Name:   def.Name.String(),
				Dups:   countPrimCalls(def.Body, primDup),
				Drops:  countPrimCalls(def.Body, primDrop),
				Before: exprString(beforeBody),
				After:  def.Body.String(),
			})
		}
	}
	return trace
}

func exprString(e core.Expr) string {
	if e == nil {
		return ""
	}
	return e.String()
}
