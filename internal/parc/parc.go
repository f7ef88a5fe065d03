package parc

import (
	"os"
	"strings"

	"github.com/cwbudde/go-dws/internal/core"
	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"
)

// enabledValues are the KK_PARC values (case-insensitive) that turn the
// pass on; any other value — including unset — leaves the pass disabled
// and the input Core program returned unchanged.
var enabledValues = map[string]bool{
	"1": true, "on": true, "yes": true, "true": true, "y": true, "t": true,
}

// EnabledFromEnv reports whether the KK_PARC environment variable
// requests the pass to run.
func EnabledFromEnv() bool {
	v, ok := os.LookupEnv("KK_PARC")
	if !ok {
		return false
	}
	return enabledValues[strings.ToLower(v)]
}

// Options configures a Run. The zero value runs with the env-controlled
// enable flag, a discard logger, and fail-fast error handling — the
// first internal error aborts the whole run, matching spec.md §7's "the
// pass aborts" for the normal, embedded-compiler case.
type Options struct {
	// Enabled overrides EnabledFromEnv when non-nil.
	Enabled *bool
	// CollectErrors runs every top-level definition even after one fails,
	// joining every internal error with go-multierror instead of
	// aborting at the first. Intended for test suites that want to see
	// every fatal diagnosis from one run.
	CollectErrors bool
	// Logger receives trace/error diagnostics. Defaults to a discard
	// logger: tracing is explicitly out of scope for this pass (spec.md
	// §1), so nothing is logged unless the caller wants it for
	// debugging.
	Logger hclog.Logger
}

func (o Options) enabled() bool {
	if o.Enabled != nil {
		return *o.Enabled
	}
	return EnabledFromEnv()
}

func (o Options) logger() hclog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return hclog.NewNullLogger()
}

// Run transforms prog so that every heap reference is explicitly
// duplicated or dropped exactly when ownership changes (spec.md §1). If
// the pass is disabled, prog is returned unchanged (disabled idempotence,
// spec.md §8).
func Run(prog core.Program, reg core.NewTypes, opts Options) (result core.Program, err error) {
	if !opts.enabled() {
		return prog, nil
	}

	logger := opts.logger()

	defer func() {
		if r := recover(); r != nil {
			ierr, ok := r.(*InternalError)
			if !ok {
				panic(r)
			}
			err = ierr
		}
	}()

	tr := newTransformer(reg, core.NewUniqueCounter())
	groups := prog.Groups
	out := make([]core.DefGroup, len(groups))

	if !opts.CollectErrors {
		for i := len(groups) - 1; i >= 0; i-- {
			out[i] = tr.parcDefGroup(true, groups[i])
		}
		return core.Program{Groups: out}, nil
	}

	var collected error
	for i := len(groups) - 1; i >= 0; i-- {
		idx := i
		g := groups[idx]
		func() {
			defer func() {
				if r := recover(); r != nil {
					ierr, ok := r.(*InternalError)
					if !ok {
						panic(r)
					}
					logger.Error("parc: fatal internal error", "error", ierr.Error())
					collected = multierror.Append(collected, ierr)
					out[idx] = g
				}
			}()
			out[idx] = tr.parcDefGroup(true, g)
		}()
	}

	return core.Program{Groups: out}, collected
}
