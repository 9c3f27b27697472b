package reduce

import (
	"github.com/corekernel/corekernel/internal/term"
)

// Convertible decides alpha-equivalence of t1 and t2 up to type-checking
// WHNF and the nat-literal simpset (spec.md §4.4). Both terms are expected
// to be well-typed in the same ambient context; since LocalVar indices are
// de Bruijn, recursing under a shared binder needs no explicit context
// object — both sides are shifted identically, so raw index comparison
// after WHNF is exactly spec.md step 3's "extend context... and continue".
func Convertible(fac *term.Factory, r GlobalResolver, t1, t2 term.Term) bool {
	return convertibleAt(fac, r, t1, t2)
}

func convertibleAt(fac *term.Factory, r GlobalResolver, t1, t2 term.Term) bool {
	w1 := TypeCheckingWHNF(fac, r, t1)
	w2 := TypeCheckingWHNF(fac, r, t2)

	if i1, ok1 := term.Index(w1); ok1 {
		if i2, ok2 := term.Index(w2); ok2 && i1 == i2 {
			return true
		}
	}

	n1, n2 := term.Underlying(w1), term.Underlying(w2)

	switch a := n1.(type) {
	case term.LocalVar:
		b, ok := n2.(term.LocalVar)
		return ok && a.Index == b.Index

	case term.SortLit:
		b, ok := n2.(term.SortLit)
		return ok && a.S == b.S

	case term.NatLit:
		b, ok := n2.(term.NatLit)
		return ok && a.N == b.N

	case term.StringLit:
		b, ok := n2.(term.StringLit)
		return ok && a.S == b.S

	case term.GlobalDef:
		b, ok := n2.(term.GlobalDef)
		return ok && a.ID == b.ID

	case term.UnitType:
		_, ok := n2.(term.UnitType)
		return ok

	case term.UnitValue:
		_, ok := n2.(term.UnitValue)
		return ok

	case term.EmptyRecordValue:
		_, ok := n2.(term.EmptyRecordValue)
		return ok

	case term.EmptyRecordType:
		_, ok := n2.(term.EmptyRecordType)
		return ok

	case term.ExtCns:
		b, ok := n2.(term.ExtCns)
		return ok && a.VarIndex == b.VarIndex

	case *term.Lambda:
		b, ok := n2.(*term.Lambda)
		return ok && convertibleAt(fac, r, a.Type, b.Type) && convertibleAt(fac, r, a.Body, b.Body)

	case *term.Pi:
		b, ok := n2.(*term.Pi)
		return ok && convertibleAt(fac, r, a.Type, b.Type) && convertibleAt(fac, r, a.Body, b.Body)

	case *term.App:
		b, ok := n2.(*term.App)
		return ok && convertibleAt(fac, r, a.Func, b.Func) && convertibleAt(fac, r, a.Arg, b.Arg)

	case *term.Constant:
		b, ok := n2.(*term.Constant)
		return ok && a.Name == b.Name

	case *term.ArrayValue:
		b, ok := n2.(*term.ArrayValue)
		if !ok || len(a.Values) != len(b.Values) || !convertibleAt(fac, r, a.ElemType, b.ElemType) {
			return false
		}
		for i := range a.Values {
			if !convertibleAt(fac, r, a.Values[i], b.Values[i]) {
				return false
			}
		}
		return true

	case *term.CtorApp:
		b, ok := n2.(*term.CtorApp)
		return ok && a.ID == b.ID && convertibleList(fac, r, a.Args, b.Args)

	case *term.DataTypeApp:
		b, ok := n2.(*term.DataTypeApp)
		return ok && a.ID == b.ID && convertibleList(fac, r, a.Params, b.Params) && convertibleList(fac, r, a.Indices, b.Indices)

	case *term.RecursorApp:
		b, ok := n2.(*term.RecursorApp)
		if !ok || a.DataID != b.DataID {
			return false
		}
		return convertibleList(fac, r, a.Params, b.Params) &&
			convertibleAt(fac, r, a.Motive, b.Motive) &&
			convertibleCases(fac, r, a.Cases, b.Cases) &&
			convertibleList(fac, r, a.Indices, b.Indices) &&
			convertibleAt(fac, r, a.Scrutinee, b.Scrutinee)

	case *term.PairType:
		b, ok := n2.(*term.PairType)
		return ok && convertibleAt(fac, r, a.Left, b.Left) && convertibleAt(fac, r, a.Right, b.Right)

	case *term.PairValue:
		b, ok := n2.(*term.PairValue)
		return ok && convertibleAt(fac, r, a.Left, b.Left) && convertibleAt(fac, r, a.Right, b.Right)

	case *term.PairLeft:
		b, ok := n2.(*term.PairLeft)
		return ok && convertibleAt(fac, r, a.Pair, b.Pair)

	case *term.PairRight:
		b, ok := n2.(*term.PairRight)
		return ok && convertibleAt(fac, r, a.Pair, b.Pair)

	case *term.FieldValue:
		b, ok := n2.(*term.FieldValue)
		return ok && a.Name == b.Name && convertibleAt(fac, r, a.Value, b.Value) && convertibleAt(fac, r, a.Tail, b.Tail)

	case *term.FieldType:
		b, ok := n2.(*term.FieldType)
		return ok && a.Name == b.Name && convertibleAt(fac, r, a.Type, b.Type) && convertibleAt(fac, r, a.Tail, b.Tail)

	case *term.RecordSelector:
		b, ok := n2.(*term.RecordSelector)
		return ok && a.Field == b.Field && convertibleAt(fac, r, a.Record, b.Record)

	default:
		return false
	}
}

func convertibleList(fac *term.Factory, r GlobalResolver, as, bs []term.Term) bool {
	if len(as) != len(bs) {
		return false
	}
	for i := range as {
		if !convertibleAt(fac, r, as[i], bs[i]) {
			return false
		}
	}
	return true
}

func convertibleCases(fac *term.Factory, r GlobalResolver, as, bs map[string]term.Term) bool {
	if len(as) != len(bs) {
		return false
	}
	for k, v := range as {
		bv, ok := bs[k]
		if !ok || !convertibleAt(fac, r, v, bv) {
			return false
		}
	}
	return true
}
