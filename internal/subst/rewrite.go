package subst

import "github.com/corekernel/corekernel/internal/term"

// rewrite performs the common structural descent shared by IncVars,
// InstantiateVars, and InstantiateVarList: it rebuilds t node-by-node
// through fac, calling leaf at every LocalVar occurrence with the binder
// depth traversed since the top-level call, and leaving Constant nodes
// untouched (they are assumed closed, spec.md §3/§4.2).
func rewrite(fac *term.Factory, t term.Term, leaf func(lv term.LocalVar, depth int) term.Term) term.Term {
	return rewriteAt(fac, t, 0, leaf)
}

func rewriteAt(fac *term.Factory, t term.Term, depth int, leaf func(term.LocalVar, int) term.Term) term.Term {
	recur := func(child term.Term, d int) term.Term {
		return rewriteAt(fac, child, d, leaf)
	}

	switch n := term.Underlying(t).(type) {
	case term.LocalVar:
		return leaf(n, depth)
	case *term.Lambda:
		return fac.MkLambda(n.Name, recur(n.Type, depth), recur(n.Body, depth+1))
	case *term.Pi:
		return fac.MkPi(n.Name, recur(n.Type, depth), recur(n.Body, depth+1))
	case *term.Let:
		w := len(n.Defs)
		defs := make([]term.LetDef, len(n.Defs))
		for i, d := range n.Defs {
			defs[i] = term.LetDef{
				Name: d.Name,
				Type: recur(d.Type, depth),
				Eq:   recur(d.Eq, depth+w),
			}
		}
		return fac.MkLet(defs, recur(n.Body, depth+w))
	case *term.App:
		return fac.MkApp(recur(n.Func, depth), recur(n.Arg, depth))
	case *term.Constant:
		return fac.Mk(n)
	case term.GlobalDef:
		return fac.Mk(n)
	case term.SortLit:
		return fac.Mk(n)
	case term.NatLit:
		return fac.Mk(n)
	case term.StringLit:
		return fac.Mk(n)
	case term.UnitType:
		return fac.Mk(n)
	case term.UnitValue:
		return fac.Mk(n)
	case term.EmptyRecordValue:
		return fac.Mk(n)
	case term.EmptyRecordType:
		return fac.Mk(n)
	case term.ExtCns:
		return fac.MkExtCns(n.VarIndex, n.Name, recur(n.Type, depth))
	case *term.ArrayValue:
		vs := make([]term.Term, len(n.Values))
		for i, v := range n.Values {
			vs[i] = recur(v, depth)
		}
		return fac.MkArrayValue(recur(n.ElemType, depth), vs)
	case *term.CtorApp:
		args := make([]term.Term, len(n.Args))
		for i, a := range n.Args {
			args[i] = recur(a, depth)
		}
		return fac.MkCtorApp(n.ID, args)
	case *term.DataTypeApp:
		ps := make([]term.Term, len(n.Params))
		for i, p := range n.Params {
			ps[i] = recur(p, depth)
		}
		is := make([]term.Term, len(n.Indices))
		for i, ix := range n.Indices {
			is[i] = recur(ix, depth)
		}
		return fac.MkDataTypeApp(n.ID, ps, is)
	case *term.RecursorApp:
		ps := make([]term.Term, len(n.Params))
		for i, p := range n.Params {
			ps[i] = recur(p, depth)
		}
		is := make([]term.Term, len(n.Indices))
		for i, ix := range n.Indices {
			is[i] = recur(ix, depth)
		}
		cases := make(map[string]term.Term, len(n.Cases))
		for name, c := range n.Cases {
			cases[name] = recur(c, depth)
		}
		return fac.MkRecursorApp(n.DataID, ps, recur(n.Motive, depth), cases, is, recur(n.Scrutinee, depth))
	case *term.PairType:
		return fac.MkPairType(recur(n.Left, depth), recur(n.Right, depth))
	case *term.PairValue:
		return fac.MkPairValue(recur(n.Left, depth), recur(n.Right, depth))
	case *term.PairLeft:
		return fac.MkPairLeft(recur(n.Pair, depth))
	case *term.PairRight:
		return fac.MkPairRight(recur(n.Pair, depth))
	case *term.FieldValue:
		return fac.MkFieldValue(n.Name, recur(n.Value, depth), recur(n.Tail, depth))
	case *term.FieldType:
		return fac.MkFieldType(n.Name, recur(n.Type, depth), recur(n.Tail, depth))
	case *term.RecordSelector:
		return fac.MkRecordSelector(recur(n.Record, depth), n.Field)
	default:
		return t
	}
}
