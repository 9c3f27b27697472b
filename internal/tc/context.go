// Package tc implements the bidirectional, context-threaded type-inference
// engine of spec.md §4.6/§4.7: per-subterm memoization, universe
// subtyping, dependent application, and recursor-application checking.
package tc

import (
	"github.com/corekernel/corekernel/internal/name"
	"github.com/corekernel/corekernel/internal/term"
)

// CtxEntry is one binding in a typing context: Type is always in WHNF
// (invariant I1).
type CtxEntry struct {
	Name name.Ident
	Type term.Term
}

// Context is the ordered sequence of spec.md §3: entries are stored
// outermost-first, so LocalVar(i) names the entry i steps in from the end.
// Push never mutates the receiver's backing array, matching the "no
// aliasing is observable" resource-model note of spec.md §5.
type Context []CtxEntry

// At resolves LocalVar(i) against c, reporting false if i is dangling.
func (c Context) At(i int) (CtxEntry, bool) {
	idx := len(c) - 1 - i
	if idx < 0 || idx >= len(c) {
		return CtxEntry{}, false
	}
	return c[idx], true
}

// Push returns a new Context with e appended as the innermost binding.
func (c Context) Push(e CtxEntry) Context {
	out := make(Context, len(c)+1)
	copy(out, c)
	out[len(c)] = e
	return out
}
