package term

import (
	"fmt"
	"sort"
	"sync"

	"github.com/corekernel/corekernel/internal/name"
)

// Factory is the hash-consing term-creation capability of spec.md §4.1
// (the "MkTerm" capability). It is safe for concurrent use: a single
// inference holds it read-mostly, but construction of environments and
// fixtures may happen from multiple goroutines before type-checking starts
// (spec.md §5), mirroring the teacher's sync.RWMutex-guarded module cache
// (internal/module/loader.go).
type Factory struct {
	mu     sync.Mutex
	byKey  map[string]*Shared
	nextID int
}

// NewFactory returns an empty term factory.
func NewFactory() *Factory {
	return &Factory{byKey: make(map[string]*Shared)}
}

// Mk hash-conses a flat constructor into a Shared term, reusing an existing
// node when an equal one was already built.
func (f *Factory) Mk(node Term) *Shared {
	key := structuralKey(node)

	f.mu.Lock()
	defer f.mu.Unlock()

	if existing, ok := f.byKey[key]; ok {
		return existing
	}

	free := computeFree(node, func(child Term) *FreeSet {
		if s, ok := child.(*Shared); ok {
			return s.Free
		}
		if child == nil {
			return NewFreeSet()
		}
		// Unshared child (only ever hand-built in tests): compute directly.
		return computeFree(child, func(gc Term) *FreeSet {
			if s, ok := gc.(*Shared); ok {
				return s.Free
			}
			return NewFreeSet()
		})
	})

	s := &Shared{
		Index: f.nextID,
		Hash:  hashKey(key),
		Free:  free,
		Node:  node,
	}
	f.nextID++
	f.byKey[key] = s
	return s
}

// --- Convenience constructors ---

func (f *Factory) MkLocalVar(i int) *Shared      { return f.Mk(LocalVar{Index: i}) }
func (f *Factory) MkSort(s name.Sort) *Shared     { return f.Mk(SortLit{S: s}) }
func (f *Factory) MkNatLit(n uint64) *Shared      { return f.Mk(NatLit{N: n}) }
func (f *Factory) MkStringLit(s string) *Shared   { return f.Mk(StringLit{S: s}) }
func (f *Factory) MkGlobalDef(id name.Ident) *Shared { return f.Mk(GlobalDef{ID: id}) }
func (f *Factory) MkUnitType() *Shared            { return f.Mk(UnitType{}) }
func (f *Factory) MkUnitValue() *Shared           { return f.Mk(UnitValue{}) }
func (f *Factory) MkEmptyRecordValue() *Shared    { return f.Mk(EmptyRecordValue{}) }
func (f *Factory) MkEmptyRecordType() *Shared     { return f.Mk(EmptyRecordType{}) }

func (f *Factory) MkLambda(n name.Ident, ty, body Term) *Shared {
	return f.Mk(&Lambda{Name: n, Type: ty, Body: body})
}

func (f *Factory) MkPi(n name.Ident, ty, body Term) *Shared {
	return f.Mk(&Pi{Name: n, Type: ty, Body: body})
}

func (f *Factory) MkApp(fn, arg Term) *Shared {
	return f.Mk(&App{Func: fn, Arg: arg})
}

// ApplyAll iterates App construction over args, left to right, implementing
// spec.md §6's `applyAll(f, args)` collaborator.
func (f *Factory) ApplyAll(fn Term, args []Term) *Shared {
	cur := f.Mk(identityWrap(fn))
	for _, a := range args {
		cur = f.MkApp(cur, a)
	}
	return cur
}

// identityWrap lets ApplyAll start from either a Shared or unshared term
// without special-casing the first iteration.
func identityWrap(t Term) Term {
	if s, ok := t.(*Shared); ok {
		return s.Node
	}
	return t
}

func (f *Factory) MkConstant(n name.Ident, def, declTy Term) *Shared {
	return f.Mk(&Constant{Name: n, Definition: def, DeclaredTyp: declTy})
}

func (f *Factory) MkLet(defs []LetDef, body Term) *Shared {
	return f.Mk(&Let{Defs: defs, Body: body})
}

func (f *Factory) MkExtCns(idx int, n name.Ident, ty Term) *Shared {
	return f.Mk(ExtCns{VarIndex: idx, Name: n, Type: ty})
}

func (f *Factory) MkArrayValue(elemTy Term, vs []Term) *Shared {
	return f.Mk(&ArrayValue{ElemType: elemTy, Values: vs})
}

func (f *Factory) MkCtorApp(id name.Ident, args []Term) *Shared {
	return f.Mk(&CtorApp{ID: id, Args: args})
}

func (f *Factory) MkDataTypeApp(id name.Ident, params, indices []Term) *Shared {
	return f.Mk(&DataTypeApp{ID: id, Params: params, Indices: indices})
}

func (f *Factory) MkRecursorApp(dataID name.Ident, params []Term, motive Term, cases map[string]Term, indices []Term, scrutinee Term) *Shared {
	return f.Mk(&RecursorApp{DataID: dataID, Params: params, Motive: motive, Cases: cases, Indices: indices, Scrutinee: scrutinee})
}

func (f *Factory) MkPairType(l, r Term) *Shared  { return f.Mk(&PairType{Left: l, Right: r}) }
func (f *Factory) MkPairValue(l, r Term) *Shared { return f.Mk(&PairValue{Left: l, Right: r}) }
func (f *Factory) MkPairLeft(p Term) *Shared     { return f.Mk(&PairLeft{Pair: p}) }
func (f *Factory) MkPairRight(p Term) *Shared    { return f.Mk(&PairRight{Pair: p}) }

func (f *Factory) MkFieldValue(n name.FieldName, v, tail Term) *Shared {
	return f.Mk(&FieldValue{Name: n, Value: v, Tail: tail})
}

func (f *Factory) MkFieldType(n name.FieldName, ty, tail Term) *Shared {
	return f.Mk(&FieldType{Name: n, Type: ty, Tail: tail})
}

func (f *Factory) MkRecordSelector(rec Term, field name.FieldName) *Shared {
	return f.Mk(&RecordSelector{Record: rec, Field: field})
}

// --- Structural equality & keying ---

// Equal decides structural equality of two terms: for two Shared nodes this
// is index equality (I4); for anything else it recurses structurally.
func Equal(a, b Term) bool {
	as, aIsShared := a.(*Shared)
	bs, bIsShared := b.(*Shared)
	if aIsShared && bIsShared {
		return as.Index == bs.Index
	}
	return structuralKey(Underlying(a)) == structuralKey(Underlying(b))
}

// structuralKey renders a term (one level of sharing resolved per child via
// each child's own index when available) into a canonical string used both
// as the hash-cons dedup key and, degenerately, for structural-equality
// fallback on unshared terms.
func structuralKey(t Term) string {
	switch n := t.(type) {
	case LocalVar:
		return fmt.Sprintf("V%d", n.Index)
	case *Lambda:
		return fmt.Sprintf("L(%s,%s,%s)", n.Name, childKey(n.Type), childKey(n.Body))
	case *Pi:
		return fmt.Sprintf("P(%s,%s,%s)", n.Name, childKey(n.Type), childKey(n.Body))
	case *Let:
		parts := make([]string, len(n.Defs))
		for i, d := range n.Defs {
			parts[i] = fmt.Sprintf("%s:%s=%s", d.Name, childKey(d.Type), childKey(d.Eq))
		}
		return fmt.Sprintf("LET(%v,%s)", parts, childKey(n.Body))
	case *App:
		return fmt.Sprintf("A(%s,%s)", childKey(n.Func), childKey(n.Arg))
	case *Constant:
		return fmt.Sprintf("K(%s,%s,%s)", n.Name, childKey(n.Definition), childKey(n.DeclaredTyp))
	case GlobalDef:
		return fmt.Sprintf("G(%s)", n.ID)
	case SortLit:
		return fmt.Sprintf("S(%d)", n.S)
	case NatLit:
		return fmt.Sprintf("N(%d)", n.N)
	case StringLit:
		return fmt.Sprintf("Str(%q)", n.S)
	case *ArrayValue:
		parts := make([]string, len(n.Values))
		for i, v := range n.Values {
			parts[i] = childKey(v)
		}
		return fmt.Sprintf("Arr(%s,%v)", childKey(n.ElemType), parts)
	case ExtCns:
		return fmt.Sprintf("E(%d,%s,%s)", n.VarIndex, n.Name, childKey(n.Type))
	case *CtorApp:
		parts := make([]string, len(n.Args))
		for i, a := range n.Args {
			parts[i] = childKey(a)
		}
		return fmt.Sprintf("C(%s,%v)", n.ID, parts)
	case *DataTypeApp:
		ps := make([]string, len(n.Params))
		for i, p := range n.Params {
			ps[i] = childKey(p)
		}
		is := make([]string, len(n.Indices))
		for i, ix := range n.Indices {
			is[i] = childKey(ix)
		}
		return fmt.Sprintf("D(%s,%v,%v)", n.ID, ps, is)
	case *RecursorApp:
		ps := make([]string, len(n.Params))
		for i, p := range n.Params {
			ps[i] = childKey(p)
		}
		is := make([]string, len(n.Indices))
		for i, ix := range n.Indices {
			is[i] = childKey(ix)
		}
		names := make([]string, 0, len(n.Cases))
		for cn := range n.Cases {
			names = append(names, cn)
		}
		sort.Strings(names)
		cs := make([]string, len(names))
		for i, cn := range names {
			cs[i] = fmt.Sprintf("%s=%s", cn, childKey(n.Cases[cn]))
		}
		return fmt.Sprintf("R(%s,%v,%s,%v,%v,%s)", n.DataID, ps, childKey(n.Motive), cs, is, childKey(n.Scrutinee))
	case UnitType:
		return "UT"
	case UnitValue:
		return "UV"
	case *PairType:
		return fmt.Sprintf("PT(%s,%s)", childKey(n.Left), childKey(n.Right))
	case *PairValue:
		return fmt.Sprintf("PV(%s,%s)", childKey(n.Left), childKey(n.Right))
	case *PairLeft:
		return fmt.Sprintf("PL(%s)", childKey(n.Pair))
	case *PairRight:
		return fmt.Sprintf("PR(%s)", childKey(n.Pair))
	case *FieldValue:
		return fmt.Sprintf("FV(%s,%s,%s)", n.Name, childKey(n.Value), childKey(n.Tail))
	case *FieldType:
		return fmt.Sprintf("FT(%s,%s,%s)", n.Name, childKey(n.Type), childKey(n.Tail))
	case EmptyRecordValue:
		return "ERV"
	case EmptyRecordType:
		return "ERT"
	case *RecordSelector:
		return fmt.Sprintf("RS(%s,%s)", childKey(n.Record), n.Field)
	default:
		return fmt.Sprintf("?(%T)", t)
	}
}

// childKey keys a child by its Shared index when available (O(1), and the
// whole point of hash-consing), falling back to a full structural key for
// unshared children.
func childKey(t Term) string {
	if t == nil {
		return "-"
	}
	if s, ok := t.(*Shared); ok {
		return fmt.Sprintf("#%d", s.Index)
	}
	return structuralKey(t)
}

func hashKey(key string) uint64 {
	// FNV-1a, inlined to avoid an extra import for a debug-only field.
	var h uint64 = 1469598103934665603
	for i := 0; i < len(key); i++ {
		h ^= uint64(key[i])
		h *= 1099511628211
	}
	return h
}
