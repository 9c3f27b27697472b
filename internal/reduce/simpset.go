package reduce

import (
	"github.com/corekernel/corekernel/internal/name"
	"github.com/corekernel/corekernel/internal/term"
)

// Well-known primitive identifiers consulted by the default nat simpset.
// The module environment registers matching global types for these so that
// App(GlobalDef(IdentSucc), n) etc. type-check as ordinary applications; the
// simpset then recognizes the *fully-applied* spine and folds it to a
// literal, exactly the "tuning parameter" spec.md §9 describes.
var (
	IdentSucc = name.New("Prim", "Succ")
	IdentAdd  = name.New("Prim", "Add")
	IdentMul  = name.New("Prim", "Mul")
)

// Rule is one named rewrite rule in a Simpset. Apply attempts to rewrite
// t (whose head has already been exposed via a plain WHNF pass) and
// reports whether it fired.
type Rule struct {
	Name  string
	Apply func(fac *term.Factory, r GlobalResolver, whnfHead term.Term) (term.Term, bool)
}

// Simpset is an ordered, named table of rewrite rules (spec.md §9: "the
// exact set of identities... is a tuning parameter").
type Simpset []Rule

// DefaultNatSimpset provides literal-evaluation of Succ, addition, and
// multiplication, sufficient to decide the vector-length equalities spec.md
// §4.3 calls out.
func DefaultNatSimpset() Simpset {
	return Simpset{
		{Name: "succ-lit", Apply: succLit},
		{Name: "add-lit", Apply: addLit},
		{Name: "mul-lit", Apply: mulLit},
	}
}

func spine(t term.Term) (term.Term, []term.Term) {
	args := []term.Term(nil)
	cur := t
	for {
		app, ok := term.Underlying(cur).(*term.App)
		if !ok {
			return cur, reverseArgs(args)
		}
		args = append(args, app.Arg)
		cur = app.Func
	}
}

func reverseArgs(args []term.Term) []term.Term {
	out := make([]term.Term, len(args))
	for i, a := range args {
		out[len(args)-1-i] = a
	}
	return out
}

func asGlobal(t term.Term, id name.Ident) bool {
	g, ok := term.Underlying(t).(term.GlobalDef)
	return ok && g.ID == id
}

func asNatLit(fac *term.Factory, r GlobalResolver, t term.Term) (uint64, bool) {
	lit, ok := term.Underlying(WHNF(fac, r, t)).(term.NatLit)
	if !ok {
		return 0, false
	}
	return lit.N, true
}

func succLit(fac *term.Factory, r GlobalResolver, t term.Term) (term.Term, bool) {
	head, args := spine(t)
	if !asGlobal(head, IdentSucc) || len(args) != 1 {
		return nil, false
	}
	n, ok := asNatLit(fac, r, args[0])
	if !ok {
		return nil, false
	}
	return fac.MkNatLit(n + 1), true
}

func addLit(fac *term.Factory, r GlobalResolver, t term.Term) (term.Term, bool) {
	head, args := spine(t)
	if !asGlobal(head, IdentAdd) || len(args) != 2 {
		return nil, false
	}
	a, ok := asNatLit(fac, r, args[0])
	if !ok {
		return nil, false
	}
	b, ok := asNatLit(fac, r, args[1])
	if !ok {
		return nil, false
	}
	return fac.MkNatLit(a + b), true
}

func mulLit(fac *term.Factory, r GlobalResolver, t term.Term) (term.Term, bool) {
	head, args := spine(t)
	if !asGlobal(head, IdentMul) || len(args) != 2 {
		return nil, false
	}
	a, ok := asNatLit(fac, r, args[0])
	if !ok {
		return nil, false
	}
	b, ok := asNatLit(fac, r, args[1])
	if !ok {
		return nil, false
	}
	return fac.MkNatLit(a * b), true
}

// Rewrite exposes t's head via a plain WHNF pass, then applies the first
// matching rule in s (if any), recursively normalizing the result. Returns
// the plain-WHNF'd term unchanged if no rule fires.
func Rewrite(fac *term.Factory, r GlobalResolver, s Simpset, t term.Term) term.Term {
	w := WHNF(fac, r, t)
	for _, rule := range s {
		if out, ok := rule.Apply(fac, r, w); ok {
			return Rewrite(fac, r, s, out)
		}
	}
	return w
}

// TypeCheckingWHNF applies the default nat simpset and then WHNF, matching
// spec.md §4.3's "type-checking WHNF" used throughout the inference engine.
func TypeCheckingWHNF(fac *term.Factory, r GlobalResolver, t term.Term) term.Term {
	return WHNF(fac, r, Rewrite(fac, r, DefaultNatSimpset(), t))
}
