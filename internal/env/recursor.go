package env

import (
	"fmt"

	"github.com/corekernel/corekernel/internal/name"
	"github.com/corekernel/corekernel/internal/subst"
	"github.com/corekernel/corekernel/internal/term"
)

// piBinder is one layer peeled off a nested Pi chain; Type is left exactly
// as written, still relative to the binders that enclosed it originally.
type piBinder struct {
	Name name.Ident
	Type term.Term
}

// peelPis strips up to n leading Pi layers off t, returning the binders in
// outer-to-inner order and the remaining body. It does not WHNF t: datatype
// and constructor schemas are stored as literal nested Pi chains, never as
// reducible expressions, so a structural match suffices.
func peelPis(t term.Term, n int) ([]piBinder, term.Term, bool) {
	binders := make([]piBinder, 0, n)
	cur := t
	for i := 0; i < n; i++ {
		pi, ok := term.Underlying(cur).(*term.Pi)
		if !ok {
			return binders, cur, false
		}
		binders = append(binders, piBinder{pi.Name, pi.Type})
		cur = pi.Body
	}
	return binders, cur, true
}

// buildPis re-wraps binders (outer-to-inner) around body.
func buildPis(fac *term.Factory, binders []piBinder, body term.Term) term.Term {
	result := body
	for i := len(binders) - 1; i >= 0; i-- {
		result = fac.MkPi(binders[i].Name, binders[i].Type, result)
	}
	return result
}

// reverseTerms returns ts reversed, needed whenever a list of "outermost
// binder first" values must be handed to InstantiateVarList, whose ts[0]
// always targets LocalVar(0), i.e. the innermost (last-bound) variable.
func reverseTerms(ts []term.Term) []term.Term {
	out := make([]term.Term, len(ts))
	for i, t := range ts {
		out[len(ts)-1-i] = t
	}
	return out
}

// RecursorMotiveType builds the schematic type the motive of a RecursorApp
// on datatype d, instantiated at params, must have: spec.md §4.7 step 3,
//
//	∀indices. ∀x:(DataTypeApp d params indices). Sort(ret)
func RecursorMotiveType(fac *term.Factory, d *DataType, params []term.Term, ret name.Sort) (term.Term, error) {
	if len(params) != d.NumParams {
		return nil, fmt.Errorf("env: datatype %s wants %d params, got %d", d.Name, d.NumParams, len(params))
	}
	_, afterParams, ok := peelPis(d.Type, d.NumParams)
	if !ok {
		return nil, fmt.Errorf("env: datatype %s has a malformed schema", d.Name)
	}
	afterParamsInst := subst.InstantiateVarList(fac, 0, reverseTerms(params), afterParams)

	idxBinders, _, ok := peelPis(afterParamsInst, d.NumIndices)
	if !ok {
		return nil, fmt.Errorf("env: datatype %s has a malformed schema", d.Name)
	}

	n := d.NumIndices
	shiftedParams := make([]term.Term, len(params))
	for i, p := range params {
		shiftedParams[i] = subst.IncVars(fac, 0, n, p)
	}
	idxVars := make([]term.Term, n)
	for i := 0; i < n; i++ {
		idxVars[i] = fac.MkLocalVar(n - 1 - i)
	}

	scrutineeType := fac.MkDataTypeApp(d.Name, shiftedParams, idxVars)
	body := fac.MkPi(name.New("", "self"), scrutineeType, fac.MkSort(ret))
	return buildPis(fac, idxBinders, body), nil
}

// RecursorCaseType builds the schematic type the case function for
// constructor c of datatype d, instantiated at params and the already
// type-checked motive, must have: spec.md §4.7 step 5,
//
//	∀args. motive indices... (CtorApp c params... args...)
//
// where indices is c's own index-producing tail, substituted at params.
func RecursorCaseType(fac *term.Factory, d *DataType, c *Ctor, params []term.Term, motive term.Term) (term.Term, error) {
	if len(params) != c.NumParams {
		return nil, fmt.Errorf("env: constructor %s wants %d params, got %d", c.Name, c.NumParams, len(params))
	}
	_, afterParams, ok := peelPis(c.Type, c.NumParams)
	if !ok {
		return nil, fmt.Errorf("env: constructor %s has a malformed schema", c.Name)
	}
	afterParamsInst := subst.InstantiateVarList(fac, 0, reverseTerms(params), afterParams)

	argBinders, finalType, ok := peelPis(afterParamsInst, c.NumArgs)
	if !ok {
		return nil, fmt.Errorf("env: constructor %s has a malformed schema", c.Name)
	}
	dtApp, ok := term.Underlying(finalType).(*term.DataTypeApp)
	if !ok {
		return nil, fmt.Errorf("env: constructor %s does not end in its datatype", c.Name)
	}

	na := c.NumArgs
	shiftedMotive := subst.IncVars(fac, 0, na, motive)
	shiftedParams := make([]term.Term, len(params))
	for i, p := range params {
		shiftedParams[i] = subst.IncVars(fac, 0, na, p)
	}
	argVars := make([]term.Term, na)
	for i := 0; i < na; i++ {
		argVars[i] = fac.MkLocalVar(na - 1 - i)
	}
	ctorFull := fac.MkCtorApp(c.Name, append(append([]term.Term{}, shiftedParams...), argVars...))

	motiveArgs := append(append([]term.Term{}, dtApp.Indices...), ctorFull)
	body := fac.ApplyAll(shiftedMotive, motiveArgs)
	return buildPis(fac, argBinders, body), nil
}
