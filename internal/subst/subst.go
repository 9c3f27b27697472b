// Package subst implements the de Bruijn substitution and lifting
// primitives of spec.md §4.2: IncVars, InstantiateVars, and
// InstantiateVarList.
package subst

import "github.com/corekernel/corekernel/internal/term"

// IncVars shifts every free LocalVar(i) with i >= cutoff up by delta. A
// no-op when delta == 0 (spec.md §4.2). Constant nodes are returned
// unchanged since their definition is assumed closed.
func IncVars(fac *term.Factory, cutoff, delta int, t term.Term) term.Term {
	if delta == 0 {
		return t
	}
	return rewrite(fac, t, func(lv term.LocalVar, depth int) term.Term {
		c := cutoff + depth
		if lv.Index >= c {
			return fac.MkLocalVar(lv.Index + delta)
		}
		return fac.MkLocalVar(lv.Index)
	})
}

// InstantiateVars substitutes each dangling LocalVar(j) (j >= level at the
// point of occurrence) by sub(depth, j-cutoff), where depth is the number of
// binders traversed since this call started and cutoff = level+depth; the
// replacement is then shifted up by cutoff so it lands correctly at the
// occurrence's depth. Constant nodes are left unchanged.
func InstantiateVars(fac *term.Factory, sub func(depth, j int) term.Term, level int, t term.Term) term.Term {
	return rewrite(fac, t, func(lv term.LocalVar, depth int) term.Term {
		cutoff := level + depth
		if lv.Index < cutoff {
			return fac.MkLocalVar(lv.Index)
		}
		repl := sub(depth, lv.Index-cutoff)
		return IncVars(fac, 0, cutoff, repl)
	})
}

// InstantiateVarList substitutes ts[0..n-1] for LocalVar(k..k+n-1) and
// shifts every higher free variable down by n == len(ts). Memoizes the
// shifted copy of each ts[j] at every cutoff depth it is consulted at,
// since one call may need shifted[j] at many distinct depths during a
// single traversal (spec.md §4.2).
//
// Law (spec.md §4.2): InstantiateVarList(0, []Term{x,y,z}, t) equals the
// β-normal form of (λλλ t) z y x.
func InstantiateVarList(fac *term.Factory, k int, ts []term.Term, t term.Term) term.Term {
	n := len(ts)
	if n == 0 {
		return t
	}
	shifted := make(map[int]map[int]term.Term) // shifted[j][cutoff] = IncVars(0, cutoff, ts[j])
	shiftedOf := func(j, cutoff int) term.Term {
		row, ok := shifted[j]
		if !ok {
			row = make(map[int]term.Term)
			shifted[j] = row
		}
		if v, ok := row[cutoff]; ok {
			return v
		}
		v := IncVars(fac, 0, cutoff, ts[j])
		row[cutoff] = v
		return v
	}

	return rewrite(fac, t, func(lv term.LocalVar, depth int) term.Term {
		cutoff := k + depth
		switch {
		case lv.Index < cutoff:
			return fac.MkLocalVar(lv.Index)
		case lv.Index < cutoff+n:
			return shiftedOf(lv.Index-cutoff, cutoff)
		default:
			return fac.MkLocalVar(lv.Index - n)
		}
	})
}
