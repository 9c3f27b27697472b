// Package env implements the module/environment collaborator of spec.md
// §4.5: lookup of datatypes, constructors, and global definitions by
// qualified name, plus the schematic Pi types needed for recursor checking.
package env

import (
	"github.com/corekernel/corekernel/internal/name"
	"github.com/corekernel/corekernel/internal/term"
)

// DataType is the datatype record of spec.md §3: Type is the fully
// quantified Pi over params then indices, ending in a sort.
type DataType struct {
	Name        name.Ident
	Type        term.Term
	NumParams   int
	NumIndices  int
	Ctors       []name.Ident // in declaration order
	IsPrimitive bool
	// Small marks a datatype as subsingleton/empty, the externally-provided
	// fact spec.md §4.7 step 4 consults to allow Prop-sorted elimination.
	// The positivity/size analysis that would normally compute this is out
	// of scope (spec.md §1); the environment just records the result.
	Small bool
}

// Ctor is the constructor record of spec.md §3: Type is a closed Pi
// ∀params. ∀args. DataTypeApp(d, params, indices).
type Ctor struct {
	Name      name.Ident
	DataType  name.Ident
	Type      term.Term
	NumParams int
	NumArgs   int
}

// GlobalInfo is a global definition's type and (optional) value.
type GlobalInfo struct {
	Type    term.Term
	Value   term.Term
	HasDefn bool
}
