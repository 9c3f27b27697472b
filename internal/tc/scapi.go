package tc

import (
	"github.com/corekernel/corekernel/internal/env"
	"github.com/corekernel/corekernel/internal/name"
	"github.com/corekernel/corekernel/internal/reduce"
	"github.com/corekernel/corekernel/internal/tcerrors"
	"github.com/corekernel/corekernel/internal/term"
)

// ScTypeCheck is spec.md §6's scTypeCheck(env, maybeModule, term): infer t's
// type in the empty context. pos labels the call for ErrorPos wrapping
// (e.g. a REPL command index or fixture name); pass Position{} if none is
// meaningful. module is the optional current module name; "" means none.
func ScTypeCheck(fac *term.Factory, e *env.Environment, module string, pos tcerrors.Position, t term.Term) (term.Term, error) {
	return ScTypeCheckInCtx(fac, e, module, pos, nil, t)
}

// ScTypeCheckInCtx is spec.md §6's scTypeCheckInCtx: infer t's type under
// an explicit starting context.
func ScTypeCheckInCtx(fac *term.Factory, e *env.Environment, module string, pos tcerrors.Position, ctx Context, t term.Term) (term.Term, error) {
	en := New(fac, e)
	if module != "" {
		en.WithModule(module)
	}
	ty, err := en.Infer(ctx, t)
	return atPos(pos, ty, err)
}

// ScConvertible is spec.md §6's scConvertible(env, t1, t2).
func ScConvertible(fac *term.Factory, e *env.Environment, t1, t2 term.Term) bool {
	return reduce.Convertible(fac, e, t1, t2)
}

// CtxBinding is one entry of the list TypeInferCtx processes: a name paired
// with its (not yet checked) type expression.
type CtxBinding struct {
	Name name.Ident
	Type term.Term
}

// CtxResult is one processed entry: the type's WHNF value and the sort it
// was found to inhabit.
type CtxResult struct {
	Name     name.Ident
	TypeWHNF term.Term
	Sort     name.Sort
}

// TypeInferCtx implements spec.md §4.9: process bindings left to right,
// inferring and sort-checking each a_i, then continuing with ctx extended
// by (name_i, whnf(a_i)) for the rest of the list. Returns the extended
// context alongside the per-entry results so a caller can run a body under
// it.
func (en *Engine) TypeInferCtx(ctx Context, bindings []CtxBinding) (Context, []CtxResult, error) {
	saved := en.memo
	defer func() { en.memo = saved }()
	cur := ctx
	results := make([]CtxResult, 0, len(bindings))
	for _, b := range bindings {
		ty, err := en.Infer(cur, b.Type)
		if err != nil {
			return nil, nil, err
		}
		s, err := en.ensureSort(ty)
		if err != nil {
			return nil, nil, err
		}
		w := en.whnf(b.Type)
		results = append(results, CtxResult{Name: b.Name, TypeWHNF: w, Sort: s})
		cur = cur.Push(CtxEntry{Name: b.Name, Type: w})
		en.memo = make(map[int]term.Term)
	}
	return cur, results, nil
}
