// Package name provides the identifier, universe-sort, and field-name
// primitives shared by every other kernel package.
package name

import (
	"fmt"

	"golang.org/x/text/unicode/norm"
)

// Ident is a qualified name: a module path plus a local name. Two idents are
// equal iff both components are equal after normalization.
type Ident struct {
	Module string
	Local  string
}

// New builds an Ident, normalizing both components to Unicode NFC so that
// names arriving from different upstream encodings compare equal.
func New(module, local string) Ident {
	return Ident{Module: normalize(module), Local: normalize(local)}
}

func normalize(s string) string {
	b := []byte(s)
	if norm.NFC.IsNormal(b) {
		return s
	}
	return string(norm.NFC.Bytes(b))
}

// String renders "module.local", or just the local name when Module is empty.
func (id Ident) String() string {
	if id.Module == "" {
		return id.Local
	}
	return fmt.Sprintf("%s.%s", id.Module, id.Local)
}

// Less gives Ident a total order (module first, then local), used for
// deterministic iteration when dumping environments or JSON error payloads.
func (id Ident) Less(other Ident) bool {
	if id.Module != other.Module {
		return id.Module < other.Module
	}
	return id.Local < other.Local
}

// extCnsCounter hands out fresh indices for ExtCns (opaque free variable)
// nodes. A kernel accepting partially-elaborated terms needs a source of
// fresh opaque variables, e.g. for postulated constants; the distilled
// constructor list names ExtCns but leaves index allocation to the caller.
var extCnsCounter int

// NextExtCnsIndex returns a fresh, monotonically increasing index for a new
// ExtCns node. Not safe for concurrent use without external synchronization,
// matching the single-threaded-engine resource model (spec.md §5).
func NextExtCnsIndex() int {
	extCnsCounter++
	return extCnsCounter
}

// FieldName is a record field name, ordered for deterministic enumeration of
// right-nested field chains in pretty-printing and JSON error output.
type FieldName string

// Less gives FieldName a total (lexicographic) order.
func (f FieldName) Less(other FieldName) bool {
	return string(f) < string(other)
}
