package replkernel

import (
	"sort"

	"github.com/corekernel/corekernel/internal/env"
	"github.com/corekernel/corekernel/internal/name"
	"github.com/corekernel/corekernel/internal/reduce"
	"github.com/corekernel/corekernel/internal/term"
)

// cannedTerm is one named example the REPL and "check" subcommand can load
// without a surface-syntax parser (out of scope per the kernel's term-level
// design), the way a worked example in a textbook stands in for a full
// program.
type cannedTerm struct {
	name string
	doc  string
	mk   func(fac *term.Factory) term.Term
}

var cannedTerms = []cannedTerm{
	{
		name: "nat-id",
		doc:  "identity function specialized to Nat: λ(x:Nat). x",
		mk: func(fac *term.Factory) term.Term {
			natTy := fac.MkGlobalDef(env.IdentNat)
			return fac.MkLambda(name.New("", "x"), natTy, fac.MkLocalVar(0))
		},
	},
	{
		name: "poly-id",
		doc:  "polymorphic identity: λ(A:Sort 1). λ(x:A). x",
		mk: func(fac *term.Factory) term.Term {
			aSort := fac.MkSort(1)
			return fac.MkLambda(name.New("", "A"), aSort,
				fac.MkLambda(name.New("", "x"), fac.MkLocalVar(0), fac.MkLocalVar(0)))
		},
	},
	{
		name: "succ-app",
		doc:  "Succ applied to a literal: Succ 0",
		mk: func(fac *term.Factory) term.Term {
			succTy := fac.MkGlobalDef(reduce.IdentSucc)
			return fac.MkApp(succTy, fac.MkNatLit(0))
		},
	},
	{
		name: "pi-sort",
		doc:  "a dependent function type: Π(A:Sort 1). A → A",
		mk: func(fac *term.Factory) term.Term {
			aSort := fac.MkSort(1)
			return fac.MkPi(name.New("", "A"), aSort,
				fac.MkPi(name.New("", "_"), fac.MkLocalVar(0), fac.MkLocalVar(1)))
		},
	},
	{
		name: "bad-app",
		doc:  "an ill-typed application: 0 applied to 0 (0 is not a function)",
		mk: func(fac *term.Factory) term.Term {
			return fac.MkApp(fac.MkNatLit(0), fac.MkNatLit(0))
		},
	},
}

// CannedNames returns the canned terms' names in sorted order.
func CannedNames() []string {
	out := make([]string, 0, len(cannedTerms))
	for _, c := range cannedTerms {
		out = append(out, c.name)
	}
	sort.Strings(out)
	return out
}

// FindCanned looks a canned term up by name, building it against fac.
func FindCanned(fac *term.Factory, name string) (term.Term, string, bool) {
	for _, c := range cannedTerms {
		if c.name == name {
			return c.mk(fac), c.doc, true
		}
	}
	return nil, "", false
}
