// Package reduce implements weak-head normal form reduction and the
// type-checking simpset of spec.md §4.3, plus convertibility (§4.4).
package reduce

import (
	"github.com/corekernel/corekernel/internal/name"
	"github.com/corekernel/corekernel/internal/term"
)

// GlobalResolver is the minimal read-only capability WHNF needs from the
// module/environment collaborator of spec.md §6: the value to unfold a
// GlobalDef to (delta reduction) and, for recursor iota reduction, how many
// leading arguments of a CtorApp are the datatype's parameters (already
// supplied separately on the RecursorApp and so dropped before applying a
// case function).
type GlobalResolver interface {
	ValueOfGlobal(id name.Ident) (term.Term, bool)
	CtorNumParams(id name.Ident) (int, bool)
}
