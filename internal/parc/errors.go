// Package parc implements Precise Automatic Reference Counting: a compiler
// pass that inserts dup/drop/is-unique/free/reuse primitives into a Core
// program so that every heap reference is retained or released exactly
// when ownership changes.
package parc

import (
	"fmt"
	"strings"

	"github.com/cwbudde/go-dws/internal/core"
)

// InternalError is a fatal, unrecoverable failure of a structural
// invariant the pass assumes holds on its input (spec.md §7): a Let with
// a recursive group where only non-recursive lets are expected, a
// non-normalized case reaching the branch transformer, a capture/liveness
// mismatch at a lambda boundary, or a type constructor the registry
// cannot resolve. There are no user-facing errors in the normal sense —
// every InternalError corresponds to a bug in an earlier compiler stage
// or in this pass itself.
type InternalError struct {
	Message  string
	DefChain []core.TName
}

func (e *InternalError) Error() string {
	if len(e.DefChain) == 0 {
		return "parc: internal error: " + e.Message
	}
	names := make([]string, len(e.DefChain))
	for i, n := range e.DefChain {
		names[i] = n.String()
	}
	return fmt.Sprintf("parc: internal error in %s: %s", strings.Join(names, " -> "), e.Message)
}

// fatalf raises an InternalError by panicking with it. The pass's single
// recovery boundary is Run; every recursive call below that point simply
// lets this propagate, matching go-dws's own semantic-analyzer idiom of
// panicking deep in a tree walk and recovering once at the top.
func fatalf(defChain []core.TName, format string, args ...any) {
	panic(&InternalError{
		Message:  fmt.Sprintf(format, args...),
		DefChain: append([]core.TName(nil), defChain...),
	})
}
