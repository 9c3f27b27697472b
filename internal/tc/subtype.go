package tc

import (
	"github.com/corekernel/corekernel/internal/name"
	"github.com/corekernel/corekernel/internal/reduce"
	"github.com/corekernel/corekernel/internal/subst"
	"github.com/corekernel/corekernel/internal/tcerrors"
	"github.com/corekernel/corekernel/internal/term"
)

// ensureSort requires t (already WHNF) to be a SortLit, returning its
// level or NotSort.
func (en *Engine) ensureSort(t term.Term) (name.Sort, error) {
	if sl, ok := term.Underlying(t).(term.SortLit); ok {
		return sl.S, nil
	}
	return 0, tcerrors.NotSort(t)
}

// isSubtype decides spec.md §4.5's isSubtype(a, b), both assumed types:
// Pi requires convertible domains and is covariant in the codomain (checked
// recursively, never by a fresh variable since de Bruijn indices already
// line both sides up under the shared binder position),
// Sort is cumulative, and everything else falls back to convertibility.
func (en *Engine) isSubtype(a, b term.Term) bool {
	aW := en.whnf(a)
	bW := en.whnf(b)

	if piA, ok := term.Underlying(aW).(*term.Pi); ok {
		piB, ok2 := term.Underlying(bW).(*term.Pi)
		if !ok2 {
			return false
		}
		return reduce.Convertible(en.Fac, en.Env, piA.Type, piB.Type) && en.isSubtype(piA.Body, piB.Body)
	}

	if sA, ok := term.Underlying(aW).(term.SortLit); ok {
		sB, ok2 := term.Underlying(bW).(term.SortLit)
		return ok2 && sA.S.LE(sB.S)
	}

	return reduce.Convertible(en.Fac, en.Env, aW, bW)
}

// applyPiTyped implements spec.md §4.8: funTy is reduced to WHNF and must
// be a Pi; argValue is checked against the domain and the codomain is
// instantiated at it.
func (en *Engine) applyPiTyped(ctx Context, funTy term.Term, argValue term.Term) (term.Term, error) {
	piN, ok := term.Underlying(en.whnf(funTy)).(*term.Pi)
	if !ok {
		return nil, tcerrors.NotFuncType(funTy)
	}
	argTy, err := en.Infer(ctx, argValue)
	if err != nil {
		return nil, err
	}
	if !en.isSubtype(argTy, piN.Type) {
		return nil, tcerrors.SubtypeFailure(argTy, piN.Type)
	}
	result := subst.InstantiateVarList(en.Fac, 0, []term.Term{argValue}, piN.Body)
	return en.whnf(result), nil
}
