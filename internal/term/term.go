// Package term implements the shared-term representation of spec.md §3:
// a hash-consable de Bruijn-indexed syntax tree with cached free-variable
// bitsets, used throughout the kernel for both values and types.
package term

import "github.com/corekernel/corekernel/internal/name"

// Term is any node of the term tree, shared or unshared. Every constructor
// in spec.md §3 implements it.
type Term interface {
	term()
}

// Shared is a hash-consed term: a unique index, a cached hash, a cached
// free-variable bitset, and the underlying flat constructor. Two Shared
// nodes with equal Index are definitionally the same term (invariant I4).
type Shared struct {
	Index int
	Hash  uint64
	Free  *FreeSet
	Node  Term
}

func (*Shared) term() {}

// Underlying unwraps a Shared down to its flat constructor; if t is not
// Shared, it is returned unchanged (unshared nodes are otherwise identical
// in shape, and only ever occur in hand-built test fixtures — the factory
// never hands back an unshared node).
func Underlying(t Term) Term {
	if s, ok := t.(*Shared); ok {
		return s.Node
	}
	return t
}

// Index returns the hash-cons index of t, and false if t is not Shared.
func Index(t Term) (int, bool) {
	if s, ok := t.(*Shared); ok {
		return s.Index, true
	}
	return 0, false
}

// --- Binders ---

// LocalVar is a de Bruijn-indexed bound variable reference.
type LocalVar struct {
	Index int
}

func (LocalVar) term() {}

// Lambda is a function value: λ name : Type . Body.
type Lambda struct {
	Name name.Ident
	Type Term
	Body Term
}

func (*Lambda) term() {}

// Pi is a dependent function type: ∀ name : Type . Body.
type Pi struct {
	Name name.Ident
	Type Term
	Body Term
}

func (*Pi) term() {}

// LetDef is one binding of a (possibly mutually recursive) Let group.
type LetDef struct {
	Name name.Ident
	Type Term
	Eq   Term // the bound value
}

// Let is a group of mutually recursive local definitions followed by a body.
// Not exercised by the inference rules of spec.md §4.7 (the source routes
// only fully-elaborated terms through inference), but substitution and the
// reducer must still support it (spec.md §9 "Pattern equations / Let").
type Let struct {
	Defs []LetDef
	Body Term
}

func (*Let) term() {}

// --- Application ---

// App is function application: f x.
type App struct {
	Func Term
	Arg  Term
}

func (*App) term() {}

// --- Opaque ---

// Constant is a named, closed term with a declared type: it is treated as
// an opaque leaf by substitution and free-variable analysis (spec.md §3,
// §9 "Cyclic structures").
type Constant struct {
	Name        name.Ident
	Definition  Term
	DeclaredTyp Term
}

func (*Constant) term() {}

// --- Flat primitives ---

// GlobalDef references a global definition by qualified name, resolved
// through the environment (spec.md §4.7 "Global definitions").
type GlobalDef struct {
	ID name.Ident
}

func (GlobalDef) term() {}

// SortLit is a universe literal: Sort(s).
type SortLit struct {
	S name.Sort
}

func (SortLit) term() {}

// NatLit is a natural-number literal.
type NatLit struct {
	N uint64
}

func (NatLit) term() {}

// StringLit is a string literal.
type StringLit struct {
	S string
}

func (StringLit) term() {}

// ArrayValue is a homogeneous array/vector literal.
type ArrayValue struct {
	ElemType Term
	Values   []Term
}

func (*ArrayValue) term() {}

// ExtCns is an opaque free variable (external constant): a fresh index, a
// display name, and a type, used for postulates and partially-elaborated
// terms (spec.md §3; see name.NextExtCnsIndex).
type ExtCns struct {
	VarIndex int
	Name     name.Ident
	Type     Term
}

func (ExtCns) term() {}

// --- Datatypes, constructors, recursors ---

// CtorApp applies a constructor to its parameter and index/argument terms.
type CtorApp struct {
	ID   name.Ident
	Args []Term
}

func (*CtorApp) term() {}

// DataTypeApp applies a datatype to its parameters and indices.
type DataTypeApp struct {
	ID      name.Ident
	Params  []Term
	Indices []Term
}

func (*DataTypeApp) term() {}

// RecursorApp is a dependent eliminator application (spec.md §4.7).
type RecursorApp struct {
	DataID    name.Ident
	Params    []Term
	Motive    Term
	Cases     map[string]Term // constructor local-name -> case term
	Indices   []Term
	Scrutinee Term
}

func (*RecursorApp) term() {}

// --- Tuples ---

// UnitType is the unit type, Sort(0).
type UnitType struct{}

func (UnitType) term() {}

// UnitValue is the unique unit value.
type UnitValue struct{}

func (UnitValue) term() {}

// PairType is a dependent-free product type.
type PairType struct {
	Left  Term
	Right Term
}

func (*PairType) term() {}

// PairValue is a pair value.
type PairValue struct {
	Left  Term
	Right Term
}

func (*PairValue) term() {}

// PairLeft projects the first component of a pair.
type PairLeft struct {
	Pair Term
}

func (*PairLeft) term() {}

// PairRight projects the second component of a pair.
type PairRight struct {
	Pair Term
}

func (*PairRight) term() {}

// --- Records (right-nested field chains) ---

// FieldValue is one cons cell of a record value: {Name = Value; Tail}.
type FieldValue struct {
	Name  name.FieldName
	Value Term
	Tail  Term // FieldValue or EmptyRecordValue
}

func (*FieldValue) term() {}

// FieldType is one cons cell of a record type: {Name : Type; Tail}.
type FieldType struct {
	Name name.FieldName
	Type Term
	Tail Term // FieldType or EmptyRecordType
}

func (*FieldType) term() {}

// EmptyRecordValue terminates a FieldValue chain.
type EmptyRecordValue struct{}

func (EmptyRecordValue) term() {}

// EmptyRecordType terminates a FieldType chain.
type EmptyRecordType struct{}

func (EmptyRecordType) term() {}

// RecordSelector projects a named field out of a record value.
type RecordSelector struct {
	Record Term
	Field  name.FieldName
}

func (*RecordSelector) term() {}
