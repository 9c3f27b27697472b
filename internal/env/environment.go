package env

import (
	"fmt"
	"sort"
	"sync"

	"github.com/corekernel/corekernel/internal/name"
	"github.com/corekernel/corekernel/internal/term"
)

// Environment holds the declared datatypes, constructors, and globals a
// module of terms is checked against. It is safe for concurrent read and
// registration, mirroring the mutex-guarded caches of the teacher's module
// loader.
type Environment struct {
	mu        sync.RWMutex
	dataTypes map[name.Ident]*DataType
	ctors     map[name.Ident]*Ctor
	globals   map[name.Ident]*GlobalInfo
}

// New returns an empty environment.
func New() *Environment {
	return &Environment{
		dataTypes: make(map[name.Ident]*DataType),
		ctors:     make(map[name.Ident]*Ctor),
		globals:   make(map[name.Ident]*GlobalInfo),
	}
}

// RegisterDataType adds d, failing if its name is already bound.
func (e *Environment) RegisterDataType(d *DataType) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.dataTypes[d.Name]; ok {
		return fmt.Errorf("env: datatype %s already registered", d.Name)
	}
	e.dataTypes[d.Name] = d
	return nil
}

// RegisterCtor adds c, failing if its name is already bound.
func (e *Environment) RegisterCtor(c *Ctor) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.ctors[c.Name]; ok {
		return fmt.Errorf("env: constructor %s already registered", c.Name)
	}
	e.ctors[c.Name] = c
	return nil
}

// RegisterGlobal adds or replaces the global binding for id.
func (e *Environment) RegisterGlobal(id name.Ident, info *GlobalInfo) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.globals[id] = info
}

// FindDataType looks up a declared datatype by name.
func (e *Environment) FindDataType(id name.Ident) (*DataType, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	d, ok := e.dataTypes[id]
	return d, ok
}

// FindCtor looks up a declared constructor by qualified name.
func (e *Environment) FindCtor(id name.Ident) (*Ctor, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	c, ok := e.ctors[id]
	return c, ok
}

// TypeOfGlobal looks up a global's declared type.
func (e *Environment) TypeOfGlobal(id name.Ident) (term.Term, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	g, ok := e.globals[id]
	if !ok {
		return nil, false
	}
	return g.Type, true
}

// ValueOfGlobal satisfies reduce.GlobalResolver: it reports a global's
// unfolding only when one was registered (delta reduction is a no-op for
// opaque/abstract globals, matching spec.md §4.3).
func (e *Environment) ValueOfGlobal(id name.Ident) (term.Term, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	g, ok := e.globals[id]
	if !ok || !g.HasDefn {
		return nil, false
	}
	return g.Value, true
}

// CtorNumParams satisfies reduce.GlobalResolver by looking the constructor
// up and reporting the parameter count recorded on it.
func (e *Environment) CtorNumParams(id name.Ident) (int, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	c, ok := e.ctors[id]
	if !ok {
		return 0, false
	}
	return c.NumParams, true
}

// GlobalNames returns every registered global's identifier in a
// deterministic (Ident.Less) order, for callers that need to enumerate an
// environment, e.g. batch-checking a loaded fixture.
func (e *Environment) GlobalNames() []name.Ident {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]name.Ident, 0, len(e.globals))
	for id := range e.globals {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// AllowedElimSort reports whether a value of datatype d may be eliminated
// into target sort ret, per spec.md §4.7 step 4: eliminating into any sort
// above Prop is always allowed (ordinary large elimination), but
// eliminating into Prop itself — discarding computational content — is
// only allowed for a datatype marked Small (at most one constructor with no
// non-parameter arguments, i.e. singleton/empty).
func AllowedElimSort(d *DataType, ret name.Sort) bool {
	if ret != name.PropSort {
		return true
	}
	return d.Small
}
