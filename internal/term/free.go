package term

// computeFree implements the free-variable law of spec.md §3, given the
// already-computed free sets of t's immediate children (via freeOf).
func computeFree(t Term, freeOf func(Term) *FreeSet) *FreeSet {
	switch n := t.(type) {
	case LocalVar:
		return Singleton(n.Index)
	case *Lambda:
		return Union(freeOf(n.Type), bindOne(freeOf(n.Body)))
	case *Pi:
		return Union(freeOf(n.Type), bindOne(freeOf(n.Body)))
	case *Let:
		k := len(n.Defs)
		out := NewFreeSet()
		for _, d := range n.Defs {
			out = Union(out, freeOf(d.Type))
			out = Union(out, bindN(freeOf(d.Eq), k))
		}
		out = Union(out, bindN(freeOf(n.Body), k))
		return out
	case *Constant:
		return NewFreeSet()
	case *App:
		return Union(freeOf(n.Func), freeOf(n.Arg))
	case GlobalDef, SortLit, NatLit, StringLit, UnitType, UnitValue, EmptyRecordValue, EmptyRecordType:
		return NewFreeSet()
	case ExtCns:
		return freeOf(n.Type)
	case *ArrayValue:
		out := freeOf(n.ElemType)
		for _, v := range n.Values {
			out = Union(out, freeOf(v))
		}
		return out
	case *CtorApp:
		out := NewFreeSet()
		for _, a := range n.Args {
			out = Union(out, freeOf(a))
		}
		return out
	case *DataTypeApp:
		out := NewFreeSet()
		for _, p := range n.Params {
			out = Union(out, freeOf(p))
		}
		for _, ix := range n.Indices {
			out = Union(out, freeOf(ix))
		}
		return out
	case *RecursorApp:
		out := freeOf(n.Motive)
		for _, p := range n.Params {
			out = Union(out, freeOf(p))
		}
		for _, ix := range n.Indices {
			out = Union(out, freeOf(ix))
		}
		for _, c := range n.Cases {
			out = Union(out, freeOf(c))
		}
		out = Union(out, freeOf(n.Scrutinee))
		return out
	case *PairType:
		return Union(freeOf(n.Left), freeOf(n.Right))
	case *PairValue:
		return Union(freeOf(n.Left), freeOf(n.Right))
	case *PairLeft:
		return freeOf(n.Pair)
	case *PairRight:
		return freeOf(n.Pair)
	case *FieldValue:
		return Union(freeOf(n.Value), freeOf(n.Tail))
	case *FieldType:
		return Union(freeOf(n.Type), freeOf(n.Tail))
	case *RecordSelector:
		return freeOf(n.Record)
	default:
		return NewFreeSet()
	}
}

func bindOne(s *FreeSet) *FreeSet {
	return s.ShiftDown(1)
}

func bindN(s *FreeSet, n int) *FreeSet {
	return s.ShiftDown(n)
}
