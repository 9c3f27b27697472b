package tcerrors

import (
	"fmt"

	"github.com/corekernel/corekernel/internal/name"
	"github.com/corekernel/corekernel/internal/term"
)

// NotSort reports that a term expected to be a Sort in WHNF was not.
func NotSort(got term.Term) *Error {
	return &Error{Code: CodeNotSort, Message: "expected a sort", Data: map[string]any{"got": got}}
}

// NotFuncType reports that an applied term's type is not a Pi in WHNF.
func NotFuncType(got term.Term) *Error {
	return &Error{Code: CodeNotFuncType, Message: "expected a function type", Data: map[string]any{"got": got}}
}

// NotTupleType reports that a PairLeft/PairRight projection's operand type
// is not a PairType in WHNF.
func NotTupleType(got term.Term) *Error {
	return &Error{Code: CodeNotTupleType, Message: "expected a tuple type", Data: map[string]any{"got": got}}
}

// BadTupleIndex reports an out-of-range tuple projection.
func BadTupleIndex(idx int) *Error {
	return &Error{Code: CodeBadTupleIndex, Message: fmt.Sprintf("no such tuple component %d", idx), Data: map[string]any{"index": idx}}
}

// NotStringLit reports that a record field name position held a non-literal.
func NotStringLit(got term.Term) *Error {
	return &Error{Code: CodeNotStringLit, Message: "expected a string literal", Data: map[string]any{"got": got}}
}

// NotRecordType reports that a RecordSelector's operand type is not a
// FieldType/EmptyRecordType chain in WHNF.
func NotRecordType(got term.Term) *Error {
	return &Error{Code: CodeNotRecordType, Message: "expected a record type", Data: map[string]any{"got": got}}
}

// BadRecordField reports that field is absent from a record type's chain.
func BadRecordField(field name.FieldName) *Error {
	return &Error{Code: CodeBadRecordField, Message: fmt.Sprintf("no such field %q", field), Data: map[string]any{"field": string(field)}}
}

// DanglingVar reports a LocalVar whose index has no binder in the current
// context (spec.md §4.2's I2 violated).
func DanglingVar(idx int) *Error {
	return &Error{Code: CodeDanglingVar, Message: fmt.Sprintf("local variable %d is unbound in this context", idx), Data: map[string]any{"index": idx}}
}

// UnboundName reports a GlobalDef/Constant reference the environment has no
// type for.
func UnboundName(id name.Ident) *Error {
	return &Error{Code: CodeUnboundName, Message: fmt.Sprintf("unbound name %s", id), Data: map[string]any{"name": id.String()}}
}

// SubtypeFailure reports that inferred is not a subtype of expected under
// universe cumulativity.
func SubtypeFailure(inferred, expected term.Term) *Error {
	return &Error{Code: CodeSubtypeFailure, Message: "type mismatch", Data: map[string]any{"inferred": inferred, "expected": expected}}
}

// EmptyVectorLit reports an ArrayValue a stricter caller rejects for having
// zero elements (spec.md §9: reserved, not raised by the kernel itself).
func EmptyVectorLit() *Error {
	return &Error{Code: CodeEmptyVectorLit, Message: "empty vector literal"}
}

// NoSuchDataType reports a DataTypeApp/RecursorApp naming an undeclared
// datatype.
func NoSuchDataType(id name.Ident) *Error {
	return &Error{Code: CodeNoSuchDataType, Message: fmt.Sprintf("no such datatype %s", id), Data: map[string]any{"name": id.String()}}
}

// NoSuchCtor reports a CtorApp naming an undeclared constructor.
func NoSuchCtor(id name.Ident) *Error {
	return &Error{Code: CodeNoSuchCtor, Message: fmt.Sprintf("no such constructor %s", id), Data: map[string]any{"name": id.String()}}
}

// NotFullyAppliedRec reports a RecursorApp missing cases for some
// constructor of its datatype.
func NotFullyAppliedRec(missing []name.Ident) *Error {
	names := make([]string, len(missing))
	for i, m := range missing {
		names[i] = m.String()
	}
	return &Error{Code: CodeNotFullyAppliedRec, Message: "recursor is missing a case", Data: map[string]any{"missing": names}}
}

// BadParamsOrArgsLength reports a DataTypeApp/CtorApp/RecursorApp whose
// params or args slice has the wrong length for the declared arity.
func BadParamsOrArgsLength(isDataType bool, id name.Ident, params, args int) *Error {
	kind := "constructor"
	if isDataType {
		kind = "datatype"
	}
	return &Error{
		Code:    CodeBadParamsOrArgsLength,
		Message: fmt.Sprintf("%s %s applied to %d params, %d args: arity mismatch", kind, id, params, args),
		Data:    map[string]any{"isDataType": isDataType, "name": id.String(), "params": params, "args": args},
	}
}

// BadConstType reports that a Constant's Definition's inferred type is not
// a subtype of its DeclaredTyp.
func BadConstType(id name.Ident, inferred, declared term.Term) *Error {
	return &Error{
		Code:    CodeBadConstType,
		Message: fmt.Sprintf("constant %s: declared type does not match its definition", id),
		Data:    map[string]any{"name": id.String(), "inferred": inferred, "declared": declared},
	}
}

// MalformedRecursor reports a RecursorApp that fails a well-formedness
// check not covered by a more specific code (motive/case shape mismatches).
func MalformedRecursor(reason string) *Error {
	return &Error{Code: CodeMalformedRecursor, Message: reason}
}

// DeclError reports a failure specific to one declaration in a module
// (spec.md's maybeModule parameter), carrying the declaration's name.
func DeclError(declName name.Ident, reason string) *Error {
	return &Error{Code: CodeDeclError, Message: fmt.Sprintf("%s: %s", declName, reason), Data: map[string]any{"name": declName.String()}}
}
