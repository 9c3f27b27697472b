package tc

import (
	"fmt"

	"github.com/corekernel/corekernel/internal/env"
	"github.com/corekernel/corekernel/internal/name"
	"github.com/corekernel/corekernel/internal/subst"
	"github.com/corekernel/corekernel/internal/tcerrors"
	"github.com/corekernel/corekernel/internal/term"
)

// Infer returns t's type in WHNF under ctx (spec.md §4.7). Shared nodes are
// memoized by index; the cached entry is only ever valid for the context
// it was populated under, which withVar enforces by resetting the table on
// every context extension.
func (en *Engine) Infer(ctx Context, t term.Term) (term.Term, error) {
	if s, ok := t.(*term.Shared); ok {
		if cached, ok := en.memo[s.Index]; ok {
			en.debugf("memo hit #%d", s.Index)
			return cached, nil
		}
		ty, err := en.inferNode(ctx, s.Node)
		if err != nil {
			return nil, err
		}
		tyW := en.whnf(ty)
		en.memo[s.Index] = tyW
		return tyW, nil
	}
	ty, err := en.inferNode(ctx, t)
	if err != nil {
		return nil, err
	}
	return en.whnf(ty), nil
}

func (en *Engine) inferNode(ctx Context, node term.Term) (term.Term, error) {
	switch n := node.(type) {
	case term.LocalVar:
		entry, ok := ctx.At(n.Index)
		if !ok {
			return nil, tcerrors.DanglingVar(n.Index)
		}
		return subst.IncVars(en.Fac, 0, n.Index+1, entry.Type), nil

	case term.GlobalDef:
		ty, ok := en.Env.TypeOfGlobal(n.ID)
		if !ok {
			return nil, tcerrors.UnboundName(n.ID)
		}
		return ty, nil

	case *term.Lambda:
		return en.inferLambda(ctx, n)

	case *term.Pi:
		return en.inferPi(ctx, n)

	case *term.App:
		return en.inferApp(ctx, n)

	case *term.Let:
		return en.inferLet(ctx, n)

	case *term.Constant:
		return en.inferConstant(ctx, n)

	case term.SortLit:
		return en.Fac.MkSort(name.SortOf(n.S)), nil

	case term.NatLit:
		return en.Fac.MkGlobalDef(env.IdentNat), nil

	case term.StringLit:
		return en.Fac.MkGlobalDef(env.IdentString), nil

	case term.ExtCns:
		return n.Type, nil

	case term.UnitType:
		return en.Fac.MkSort(name.PropSort), nil

	case term.UnitValue:
		return en.Fac.MkUnitType(), nil

	case *term.PairType:
		return en.inferPairType(ctx, n)

	case *term.PairValue:
		lt, err := en.Infer(ctx, n.Left)
		if err != nil {
			return nil, err
		}
		rt, err := en.Infer(ctx, n.Right)
		if err != nil {
			return nil, err
		}
		return en.Fac.MkPairType(lt, rt), nil

	case *term.PairLeft:
		pt, err := en.Infer(ctx, n.Pair)
		if err != nil {
			return nil, err
		}
		pT, ok := term.Underlying(pt).(*term.PairType)
		if !ok {
			return nil, tcerrors.NotTupleType(pt)
		}
		return pT.Left, nil

	case *term.PairRight:
		pt, err := en.Infer(ctx, n.Pair)
		if err != nil {
			return nil, err
		}
		pT, ok := term.Underlying(pt).(*term.PairType)
		if !ok {
			return nil, tcerrors.NotTupleType(pt)
		}
		return pT.Right, nil

	case *term.FieldType:
		return en.inferFieldType(ctx, n)

	case term.EmptyRecordType:
		return en.Fac.MkSort(name.PropSort), nil

	case *term.FieldValue:
		vt, err := en.Infer(ctx, n.Value)
		if err != nil {
			return nil, err
		}
		tt, err := en.Infer(ctx, n.Tail)
		if err != nil {
			return nil, err
		}
		return en.Fac.MkFieldType(n.Name, vt, tt), nil

	case term.EmptyRecordValue:
		return en.Fac.MkEmptyRecordType(), nil

	case *term.RecordSelector:
		return en.inferRecordSelector(ctx, n)

	case *term.ArrayValue:
		return en.inferArrayValue(ctx, n)

	case *term.CtorApp:
		return en.inferCtorApp(ctx, n)

	case *term.DataTypeApp:
		return en.inferDataTypeApp(ctx, n)

	case *term.RecursorApp:
		return en.inferRecursorApp(ctx, n)

	default:
		return nil, tcerrors.MalformedRecursor(fmt.Sprintf("cannot infer a type for %T", node))
	}
}

func (en *Engine) inferLambda(ctx Context, n *term.Lambda) (term.Term, error) {
	aTy, err := en.Infer(ctx, n.Type)
	if err != nil {
		return nil, err
	}
	if _, err := en.ensureSort(aTy); err != nil {
		return nil, err
	}
	aW := en.whnf(n.Type)
	bTy, err := en.withVar(ctx, CtxEntry{n.Name, aW}, func(c Context) (term.Term, error) {
		return en.Infer(c, n.Body)
	})
	if err != nil {
		return nil, err
	}
	return en.Fac.MkPi(n.Name, aW, bTy), nil
}

func (en *Engine) inferPi(ctx Context, n *term.Pi) (term.Term, error) {
	aTy, err := en.Infer(ctx, n.Type)
	if err != nil {
		return nil, err
	}
	s1, err := en.ensureSort(aTy)
	if err != nil {
		return nil, err
	}
	aW := en.whnf(n.Type)
	bTy, err := en.withVar(ctx, CtxEntry{n.Name, aW}, func(c Context) (term.Term, error) {
		return en.Infer(c, n.Body)
	})
	if err != nil {
		return nil, err
	}
	s2, err := en.ensureSort(bTy)
	if err != nil {
		return nil, err
	}
	ret := s2
	if s2 != name.PropSort {
		ret = name.MaxSort(s1, s2)
	}
	return en.Fac.MkSort(ret), nil
}

func (en *Engine) inferApp(ctx Context, n *term.App) (term.Term, error) {
	fty, err := en.Infer(ctx, n.Func)
	if err != nil {
		return nil, err
	}
	piN, ok := term.Underlying(fty).(*term.Pi)
	if !ok {
		return nil, tcerrors.NotFuncType(fty)
	}
	argTy, err := en.Infer(ctx, n.Arg)
	if err != nil {
		return nil, err
	}
	if !en.isSubtype(argTy, piN.Type) {
		return nil, tcerrors.SubtypeFailure(argTy, piN.Type)
	}
	return subst.InstantiateVarList(en.Fac, 0, []term.Term{n.Arg}, piN.Body), nil
}

func (en *Engine) inferConstant(ctx Context, n *term.Constant) (term.Term, error) {
	declSortTy, err := en.Infer(ctx, n.DeclaredTyp)
	if err != nil {
		return nil, err
	}
	if _, err := en.ensureSort(declSortTy); err != nil {
		return nil, err
	}
	if n.Definition != nil {
		inferredTy, err := en.Infer(ctx, n.Definition)
		if err != nil {
			return nil, err
		}
		declW := en.whnf(n.DeclaredTyp)
		if !en.isSubtype(inferredTy, declW) {
			return nil, tcerrors.BadConstType(n.Name, inferredTy, n.DeclaredTyp)
		}
	}
	return n.DeclaredTyp, nil
}

// inferLet is a best-effort extension: spec.md §9 notes Let is "not
// exercised by the core type-checker for inferred Terms", only required to
// survive substitution and reduction. Definitions are checked sequentially
// (each may refer to the ones before it, not to itself or later ones),
// since the engine has no other guidance for a mutually recursive group.
func (en *Engine) inferLet(ctx Context, n *term.Let) (term.Term, error) {
	saved := en.memo
	defer func() { en.memo = saved }()
	cur := ctx
	for _, d := range n.Defs {
		tTy, err := en.Infer(cur, d.Type)
		if err != nil {
			return nil, err
		}
		if _, err := en.ensureSort(tTy); err != nil {
			return nil, err
		}
		tW := en.whnf(d.Type)
		eqTy, err := en.Infer(cur, d.Eq)
		if err != nil {
			return nil, err
		}
		if !en.isSubtype(eqTy, tW) {
			return nil, tcerrors.SubtypeFailure(eqTy, tW)
		}
		cur = cur.Push(CtxEntry{d.Name, tW})
		en.memo = make(map[int]term.Term)
	}
	return en.Infer(cur, n.Body)
}

func (en *Engine) inferPairType(ctx Context, n *term.PairType) (term.Term, error) {
	la, err := en.Infer(ctx, n.Left)
	if err != nil {
		return nil, err
	}
	ls, err := en.ensureSort(la)
	if err != nil {
		return nil, err
	}
	ra, err := en.Infer(ctx, n.Right)
	if err != nil {
		return nil, err
	}
	rs, err := en.ensureSort(ra)
	if err != nil {
		return nil, err
	}
	return en.Fac.MkSort(name.MaxSort(ls, rs)), nil
}

func (en *Engine) inferFieldType(ctx Context, n *term.FieldType) (term.Term, error) {
	ft, err := en.Infer(ctx, n.Type)
	if err != nil {
		return nil, err
	}
	fs, err := en.ensureSort(ft)
	if err != nil {
		return nil, err
	}
	tt, err := en.Infer(ctx, n.Tail)
	if err != nil {
		return nil, err
	}
	ts, err := en.ensureSort(tt)
	if err != nil {
		return nil, err
	}
	return en.Fac.MkSort(name.MaxSort(fs, ts)), nil
}

func (en *Engine) inferRecordSelector(ctx Context, n *term.RecordSelector) (term.Term, error) {
	rt, err := en.Infer(ctx, n.Record)
	if err != nil {
		return nil, err
	}
	cur := rt
	for {
		switch c := term.Underlying(cur).(type) {
		case *term.FieldType:
			if c.Name == n.Field {
				return c.Type, nil
			}
			cur = en.whnf(c.Tail)
		case term.EmptyRecordType:
			return nil, tcerrors.BadRecordField(n.Field)
		default:
			return nil, tcerrors.NotRecordType(cur)
		}
	}
}

func (en *Engine) inferArrayValue(ctx Context, n *term.ArrayValue) (term.Term, error) {
	ety, err := en.Infer(ctx, n.ElemType)
	if err != nil {
		return nil, err
	}
	if _, err := en.ensureSort(ety); err != nil {
		return nil, err
	}
	elemW := en.whnf(n.ElemType)
	for _, v := range n.Values {
		vt, err := en.Infer(ctx, v)
		if err != nil {
			return nil, err
		}
		if !en.isSubtype(vt, elemW) {
			return nil, tcerrors.SubtypeFailure(vt, elemW)
		}
	}
	lenTerm := en.Fac.MkNatLit(uint64(len(n.Values)))
	return en.Fac.MkDataTypeApp(env.IdentVec, []term.Term{elemW}, []term.Term{lenTerm}), nil
}
