package tc

import (
	"fmt"
	"os"

	"github.com/corekernel/corekernel/internal/env"
	"github.com/corekernel/corekernel/internal/reduce"
	"github.com/corekernel/corekernel/internal/tcerrors"
	"github.com/corekernel/corekernel/internal/term"
)

// Engine is the inference monad's runtime of spec.md §4.6: a term factory
// handle, an optional current module name, and a per-context memoization
// table. Scheduling is single-threaded and synchronous (spec.md §5); an
// Engine is not safe for concurrent use, mirroring the teacher's
// CoreTypeChecker.
type Engine struct {
	Fac     *term.Factory
	Env     *env.Environment
	Simp    reduce.Simpset
	ModName string
	hasMod  bool

	memo  map[int]term.Term
	debug bool
}

// New returns an Engine over fac/e with no current module and the default
// nat simpset.
func New(fac *term.Factory, e *env.Environment) *Engine {
	return &Engine{Fac: fac, Env: e, Simp: reduce.DefaultNatSimpset(), memo: make(map[int]term.Term)}
}

// WithModule sets the optional current module name (askModName).
func (en *Engine) WithModule(mod string) *Engine {
	en.ModName = mod
	en.hasMod = true
	return en
}

// SetDebugMode toggles stderr tracing of inference steps, in the teacher's
// fmt.Fprintf(os.Stderr, ...) style rather than a logging library (the
// teacher never imports one for this kind of internal trace).
func (en *Engine) SetDebugMode(debug bool) { en.debug = debug }

func (en *Engine) debugf(format string, args ...any) {
	if en.debug {
		fmt.Fprintf(os.Stderr, "[tc] "+format+"\n", args...)
	}
}

func (en *Engine) whnf(t term.Term) term.Term {
	return reduce.TypeCheckingWHNF(en.Fac, en.Env, t)
}

// withVar runs body under ctx extended by e, saving, clearing, and
// restoring the memo table around the call (spec.md §4.6: "memoized types
// are valid only under a fixed context"). An error escaping body is
// wrapped with ErrorCtx(e.Name, e.Type, inner).
func (en *Engine) withVar(ctx Context, e CtxEntry, body func(Context) (term.Term, error)) (term.Term, error) {
	saved := en.memo
	en.memo = make(map[int]term.Term)
	result, err := body(ctx.Push(e))
	en.memo = saved
	if err != nil {
		return nil, tcerrors.WithVar(e.Name, e.Type, err)
	}
	return result, nil
}

// atPos wraps any error escaping body with ErrorPos(pos, inner) unless the
// error already carries a position (idempotent, spec.md §4.6/§7).
func atPos(pos tcerrors.Position, result term.Term, err error) (term.Term, error) {
	if err != nil {
		return nil, tcerrors.AtPos(pos, err)
	}
	return result, nil
}
