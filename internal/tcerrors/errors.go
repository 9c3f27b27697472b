// Package tcerrors implements the structured error taxonomy of spec.md
// §4.8: typed failure values plus two context-decorating wrappers,
// ErrorPos and ErrorCtx, that accumulate into a trace as an error unwinds
// through atPos/withVar without ever being retried or swallowed.
package tcerrors

import (
	"fmt"

	"github.com/corekernel/corekernel/internal/name"
	"github.com/corekernel/corekernel/internal/term"
)

// Code names one of the failure kinds spec.md §4.8 enumerates.
type Code string

const (
	CodeNotSort               Code = "NotSort"
	CodeNotFuncType           Code = "NotFuncType"
	CodeNotTupleType          Code = "NotTupleType"
	CodeBadTupleIndex         Code = "BadTupleIndex"
	CodeNotStringLit          Code = "NotStringLit"
	CodeNotRecordType         Code = "NotRecordType"
	CodeBadRecordField        Code = "BadRecordField"
	CodeDanglingVar           Code = "DanglingVar"
	CodeUnboundName           Code = "UnboundName"
	CodeSubtypeFailure        Code = "SubtypeFailure"
	CodeEmptyVectorLit        Code = "EmptyVectorLit"
	CodeNoSuchDataType        Code = "NoSuchDataType"
	CodeNoSuchCtor            Code = "NoSuchCtor"
	CodeNotFullyAppliedRec    Code = "NotFullyAppliedRec"
	CodeBadParamsOrArgsLength Code = "BadParamsOrArgsLength"
	CodeBadConstType          Code = "BadConstType"
	CodeMalformedRecursor     Code = "MalformedRecursor"
	CodeDeclError             Code = "DeclError"
)

// Error is a leaf failure: one code, a human-readable message, and whatever
// structured data the specific constructor in codes.go attached.
type Error struct {
	Code    Code
	Message string
	Data    map[string]any
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Position is an opaque source/command locator. The kernel checks already
// elaborated terms rather than source text (spec.md §1's parser/elaborator
// are out of scope), so Position carries only what a caller supplies for
// diagnostics, such as a REPL command index or a fixture entry name.
type Position struct {
	Label string
}

func (p Position) String() string { return p.Label }

// PosWrap is ErrorPos(pos, inner): spec.md's position-decorating wrapper.
type PosWrap struct {
	Pos   Position
	Inner error
}

func (e *PosWrap) Error() string { return fmt.Sprintf("%s: %v", e.Pos, e.Inner) }
func (e *PosWrap) Unwrap() error { return e.Inner }

// CtxWrap is ErrorCtx(varName, varType, inner): spec.md's context-decorating
// wrapper, pushed by withVar around the body that extended ctx.
type CtxWrap struct {
	VarName name.Ident
	VarType term.Term
	Inner   error
}

func (e *CtxWrap) Error() string {
	return fmt.Sprintf("in scope of %s: %v", e.VarName, e.Inner)
}
func (e *CtxWrap) Unwrap() error { return e.Inner }

// HasPos reports whether err already carries a PosWrap anywhere in its
// chain, the idempotence test atPos consults (spec.md §4.2/§4.8: "the
// outermost position wins only if no inner position exists").
func HasPos(err error) bool {
	for err != nil {
		if _, ok := err.(*PosWrap); ok {
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}

// AtPos wraps err in ErrorPos(pos, err) unless err is nil or already
// carries a position.
func AtPos(pos Position, err error) error {
	if err == nil || HasPos(err) {
		return err
	}
	return &PosWrap{Pos: pos, Inner: err}
}

// WithVar wraps err in ErrorCtx(varName, varType, err), forming one frame
// of the trace withVar builds as it unwinds out of an extended context.
func WithVar(varName name.Ident, varType term.Term, err error) error {
	if err == nil {
		return nil
	}
	return &CtxWrap{VarName: varName, VarType: varType, Inner: err}
}
