package tc

import (
	"fmt"

	"github.com/corekernel/corekernel/internal/env"
	"github.com/corekernel/corekernel/internal/name"
	"github.com/corekernel/corekernel/internal/tcerrors"
	"github.com/corekernel/corekernel/internal/term"
)

func (en *Engine) inferDataTypeApp(ctx Context, n *term.DataTypeApp) (term.Term, error) {
	d, ok := en.Env.FindDataType(n.ID)
	if !ok {
		return nil, tcerrors.NoSuchDataType(n.ID)
	}
	if len(n.Params) != d.NumParams || len(n.Indices) != d.NumIndices {
		return nil, tcerrors.BadParamsOrArgsLength(true, n.ID, len(n.Params), len(n.Indices))
	}
	cur := d.Type
	for _, a := range append(append([]term.Term{}, n.Params...), n.Indices...) {
		var err error
		cur, err = en.applyPiTyped(ctx, cur, a)
		if err != nil {
			return nil, err
		}
	}
	return cur, nil
}

func (en *Engine) inferCtorApp(ctx Context, n *term.CtorApp) (term.Term, error) {
	c, ok := en.Env.FindCtor(n.ID)
	if !ok {
		return nil, tcerrors.NoSuchCtor(n.ID)
	}
	if len(n.Args) != c.NumParams+c.NumArgs {
		return nil, tcerrors.BadParamsOrArgsLength(false, n.ID, c.NumParams, len(n.Args))
	}
	cur := c.Type
	for _, a := range n.Args {
		var err error
		cur, err = en.applyPiTyped(ctx, cur, a)
		if err != nil {
			return nil, err
		}
	}
	return cur, nil
}

// peelToSort walks a Pi chain's codomain (ignoring the domains and any
// binder-dependence, since only the trailing sort matters here) until a
// non-Pi head is exposed, requiring it be a SortLit.
func (en *Engine) peelToSort(t term.Term) (name.Sort, error) {
	cur := en.whnf(t)
	for {
		if sl, ok := term.Underlying(cur).(term.SortLit); ok {
			return sl.S, nil
		}
		pi, ok := term.Underlying(cur).(*term.Pi)
		if !ok {
			return 0, tcerrors.MalformedRecursor("Motive function should return a sort")
		}
		cur = en.whnf(pi.Body)
	}
}

// inferRecursorApp implements spec.md §4.7's seven-step recursor check.
func (en *Engine) inferRecursorApp(ctx Context, n *term.RecursorApp) (term.Term, error) {
	d, ok := en.Env.FindDataType(n.DataID)
	if !ok {
		return nil, tcerrors.NoSuchDataType(n.DataID)
	}
	if len(n.Params) != d.NumParams || len(n.Indices) != d.NumIndices {
		return nil, tcerrors.MalformedRecursor("parameter/index count mismatch")
	}

	// Step 2: params ++ indices must type-check against the datatype schema.
	cur := d.Type
	for _, a := range append(append([]term.Term{}, n.Params...), n.Indices...) {
		var err error
		cur, err = en.applyPiTyped(ctx, cur, a)
		if err != nil {
			return nil, err
		}
	}

	// Step 3: motive must end in a sort, and match the schematic motive type.
	motiveTy, err := en.Infer(ctx, n.Motive)
	if err != nil {
		return nil, err
	}
	sRet, err := en.peelToSort(motiveTy)
	if err != nil {
		return nil, err
	}
	motiveReqTy, err := env.RecursorMotiveType(en.Fac, d, n.Params, sRet)
	if err != nil {
		return nil, tcerrors.MalformedRecursor(err.Error())
	}
	if !en.isSubtype(motiveTy, motiveReqTy) {
		return nil, tcerrors.MalformedRecursor("motive type does not match the datatype's schema")
	}

	// Step 4: elimination-sort discipline.
	if !env.AllowedElimSort(d, sRet) {
		return nil, tcerrors.MalformedRecursor("Disallowed propositional elimination")
	}

	// Step 5: case set must match the constructor set exactly, and each
	// case's type must fit the schematic required type.
	seen := make(map[string]bool, len(d.Ctors))
	for _, ctorID := range d.Ctors {
		caseTerm, ok := n.Cases[ctorID.Local]
		if !ok {
			return nil, tcerrors.MalformedRecursor(fmt.Sprintf("Missing constructor: %s", ctorID))
		}
		seen[ctorID.Local] = true
		c, ok := en.Env.FindCtor(ctorID)
		if !ok {
			return nil, tcerrors.NoSuchCtor(ctorID)
		}
		required, err := env.RecursorCaseType(en.Fac, d, c, n.Params, n.Motive)
		if err != nil {
			return nil, tcerrors.MalformedRecursor(err.Error())
		}
		caseTy, err := en.Infer(ctx, caseTerm)
		if err != nil {
			return nil, err
		}
		if !en.isSubtype(caseTy, required) {
			return nil, tcerrors.SubtypeFailure(caseTy, required)
		}
	}
	for localName := range n.Cases {
		if !seen[localName] {
			return nil, tcerrors.MalformedRecursor(fmt.Sprintf("Extra constructors: %s", localName))
		}
	}

	// Step 6: the scrutinee must have the expected datatype application.
	scrutTy, err := en.Infer(ctx, n.Scrutinee)
	if err != nil {
		return nil, err
	}
	expected := en.Fac.MkDataTypeApp(n.DataID, n.Params, n.Indices)
	if !en.isSubtype(scrutTy, expected) {
		return nil, tcerrors.SubtypeFailure(scrutTy, expected)
	}

	// Step 7: result is the motive applied to the indices and the scrutinee.
	args := append(append([]term.Term{}, n.Indices...), n.Scrutinee)
	return en.Fac.ApplyAll(n.Motive, args), nil
}
