package reduce

import (
	"github.com/corekernel/corekernel/internal/name"
	"github.com/corekernel/corekernel/internal/subst"
	"github.com/corekernel/corekernel/internal/term"
)

// WHNF reduces t to weak-head normal form under the empty substitution
// (spec.md §4.3): beta, iota (pairs, records, recursor-on-constructor), and
// delta (GlobalDef/Constant) reductions, applied only at the head. It is
// deterministic and idempotent: WHNF(WHNF(t)) == WHNF(t) up to sharing.
func WHNF(fac *term.Factory, r GlobalResolver, t term.Term) term.Term {
	switch n := term.Underlying(t).(type) {
	case term.GlobalDef:
		if val, ok := r.ValueOfGlobal(n.ID); ok {
			return WHNF(fac, r, val)
		}
		return fac.Mk(n)

	case *term.Constant:
		if n.Definition != nil {
			return WHNF(fac, r, n.Definition)
		}
		return fac.Mk(n)

	case *term.App:
		fw := WHNF(fac, r, n.Func)
		if lam, ok := term.Underlying(fw).(*term.Lambda); ok {
			beta := subst.InstantiateVarList(fac, 0, []term.Term{n.Arg}, lam.Body)
			return WHNF(fac, r, beta)
		}
		return fac.MkApp(fw, n.Arg)

	case *term.PairLeft:
		pw := WHNF(fac, r, n.Pair)
		if pv, ok := term.Underlying(pw).(*term.PairValue); ok {
			return WHNF(fac, r, pv.Left)
		}
		return fac.MkPairLeft(pw)

	case *term.PairRight:
		pw := WHNF(fac, r, n.Pair)
		if pv, ok := term.Underlying(pw).(*term.PairValue); ok {
			return WHNF(fac, r, pv.Right)
		}
		return fac.MkPairRight(pw)

	case *term.RecordSelector:
		rw := WHNF(fac, r, n.Record)
		if v, ok := findField(fac, r, rw, n.Field); ok {
			return WHNF(fac, r, v)
		}
		return fac.MkRecordSelector(rw, n.Field)

	case *term.RecursorApp:
		sw := WHNF(fac, r, n.Scrutinee)
		if ctor, ok := term.Underlying(sw).(*term.CtorApp); ok {
			if caseTerm, caseArgs, ok := recursorCase(r, n, ctor); ok {
				applied := fac.ApplyAll(caseTerm, caseArgs)
				return WHNF(fac, r, applied)
			}
		}
		return fac.MkRecursorApp(n.DataID, n.Params, n.Motive, n.Cases, n.Indices, sw)

	case *term.Let:
		width := len(n.Defs)
		companions := make([]term.Term, width)
		for i := range n.Defs {
			// Re-wrap each definition's value in the same Let group so that
			// mutually recursive references resolve one unfolding at a
			// time (spec.md §9 "Pattern equations / Let": substitution and
			// the reducer must support Let even though inference never
			// sees it).
			companions[i] = fac.MkLet(n.Defs, n.Defs[i].Eq)
		}
		body := subst.InstantiateVarList(fac, 0, companions, n.Body)
		return WHNF(fac, r, body)

	default:
		return fac.Mk(n)
	}
}

// findField walks a WHNF'd record value's right-nested FieldValue chain
// looking for field, WHNF-ing the tail as needed to expose the next cons
// cell. Returns false if the chain ends (EmptyRecordValue) without a match.
func findField(fac *term.Factory, r GlobalResolver, recordWHNF term.Term, field name.FieldName) (term.Term, bool) {
	cur := recordWHNF
	for {
		fv, ok := term.Underlying(cur).(*term.FieldValue)
		if !ok {
			return nil, false
		}
		if fv.Name == field {
			return fv.Value, true
		}
		cur = WHNF(fac, r, fv.Tail)
	}
}

// recursorCase looks up the case term for ctor's local name in app.Cases and
// splits off ctor's leading parameter arguments (already supplied via
// app.Params) so only the constructor's own arguments are applied to it.
func recursorCase(r GlobalResolver, app *term.RecursorApp, ctor *term.CtorApp) (term.Term, []term.Term, bool) {
	caseTerm, ok := app.Cases[ctor.ID.Local]
	if !ok {
		return nil, nil, false
	}
	numParams, ok := r.CtorNumParams(ctor.ID)
	if !ok || numParams > len(ctor.Args) {
		return nil, nil, false
	}
	return caseTerm, ctor.Args[numParams:], true
}
