package env

import (
	"github.com/corekernel/corekernel/internal/name"
	"github.com/corekernel/corekernel/internal/reduce"
	"github.com/corekernel/corekernel/internal/term"
)

// Well-known primitive datatype identifiers. Nat and String are represented
// canonically by NatLit/StringLit (spec.md §3); the datatype records below
// exist so DataTypeApp(Nat,...) and DataTypeApp(String,...) still have a
// schema to look up, e.g. when Vec's index type mentions Nat.
var (
	IdentNat    = name.New("Prim", "Nat")
	IdentString = name.New("Prim", "String")
	IdentVec    = name.New("Prim", "Vec")
)

// RegisterBaseline populates e with the primitive datatypes and global
// operators the default nat simpset (internal/reduce) recognizes, matching
// the fixed "tuning parameter" baseline spec.md §9 describes. Callers
// building a fixture or REPL session call this once before loading any
// user declarations.
func RegisterBaseline(fac *term.Factory, e *Environment) error {
	if err := e.RegisterDataType(&DataType{
		Name:        IdentNat,
		Type:        fac.MkSort(name.SortOf(name.PropSort)),
		NumParams:   0,
		NumIndices:  0,
		IsPrimitive: true,
	}); err != nil {
		return err
	}
	if err := e.RegisterDataType(&DataType{
		Name:        IdentString,
		Type:        fac.MkSort(name.SortOf(name.PropSort)),
		NumParams:   0,
		NumIndices:  0,
		IsPrimitive: true,
	}); err != nil {
		return err
	}

	// NatLit/StringLit are typed by the GlobalDef inference rule (spec.md
	// §4.7), which resolves solely through TypeOfGlobal — so Nat and String
	// need a GlobalInfo entry alongside their DataType record, not just the
	// latter.
	e.RegisterGlobal(IdentNat, &GlobalInfo{Type: fac.MkSort(name.SortOf(name.PropSort))})
	e.RegisterGlobal(IdentString, &GlobalInfo{Type: fac.MkSort(name.SortOf(name.PropSort))})

	natType := fac.MkDataTypeApp(IdentNat, nil, nil)
	vecType := fac.MkPi(name.New("", "A"), fac.MkSort(name.SortOf(name.PropSort)),
		fac.MkPi(name.New("", "n"), natType, fac.MkSort(name.SortOf(name.PropSort))))
	if err := e.RegisterDataType(&DataType{
		Name:        IdentVec,
		Type:        vecType,
		NumParams:   1,
		NumIndices:  1,
		IsPrimitive: true,
	}); err != nil {
		return err
	}

	natToNat := fac.MkPi(name.New("", "_"), natType, natType)
	natToNatToNat := fac.MkPi(name.New("", "_"), natType, natToNat)

	e.RegisterGlobal(reduce.IdentSucc, &GlobalInfo{Type: natToNat})
	e.RegisterGlobal(reduce.IdentAdd, &GlobalInfo{Type: natToNatToNat})
	e.RegisterGlobal(reduce.IdentMul, &GlobalInfo{Type: natToNatToNat})
	return nil
}
