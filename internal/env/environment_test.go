package env

import (
	"testing"

	"github.com/corekernel/corekernel/internal/name"
	"github.com/corekernel/corekernel/internal/term"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterDataTypeRejectsDuplicate(t *testing.T) {
	e := New()
	id := name.New("", "Foo")
	d := &DataType{Name: id}
	require.NoError(t, e.RegisterDataType(d))
	assert.Error(t, e.RegisterDataType(d))
}

func TestRegisterCtorRejectsDuplicate(t *testing.T) {
	e := New()
	id := name.New("", "Bar")
	c := &Ctor{Name: id}
	require.NoError(t, e.RegisterCtor(c))
	assert.Error(t, e.RegisterCtor(c))
}

func TestValueOfGlobalRespectsHasDefn(t *testing.T) {
	e := New()
	fac := term.NewFactory()
	abstract := name.New("", "axiom")
	e.RegisterGlobal(abstract, &GlobalInfo{Type: fac.MkSort(0)})

	_, ok := e.ValueOfGlobal(abstract)
	assert.False(t, ok, "a declared-but-undefined global has no unfolding")

	concrete := name.New("", "defined")
	e.RegisterGlobal(concrete, &GlobalInfo{Type: fac.MkSort(0), Value: fac.MkNatLit(1), HasDefn: true})
	v, ok := e.ValueOfGlobal(concrete)
	require.True(t, ok)
	assert.Equal(t, uint64(1), term.Underlying(v).(term.NatLit).N)
}

func TestCtorNumParamsSatisfiesGlobalResolver(t *testing.T) {
	e := New()
	id := name.New("", "Cons")
	require.NoError(t, e.RegisterCtor(&Ctor{Name: id, NumParams: 2}))

	n, ok := e.CtorNumParams(id)
	require.True(t, ok)
	assert.Equal(t, 2, n)

	_, ok = e.CtorNumParams(name.New("", "nope"))
	assert.False(t, ok)
}

func TestGlobalNamesSortedDeterministically(t *testing.T) {
	e := New()
	e.RegisterGlobal(name.New("", "zeta"), &GlobalInfo{})
	e.RegisterGlobal(name.New("", "alpha"), &GlobalInfo{})
	e.RegisterGlobal(name.New("", "mu"), &GlobalInfo{})

	names := e.GlobalNames()
	require.Len(t, names, 3)
	assert.Equal(t, "alpha", names[0].Local)
	assert.Equal(t, "mu", names[1].Local)
	assert.Equal(t, "zeta", names[2].Local)
}

func TestAllowedElimSort(t *testing.T) {
	small := &DataType{Small: true}
	big := &DataType{Small: false}

	assert.True(t, AllowedElimSort(big, 3), "any datatype can eliminate into a non-Prop sort")
	assert.True(t, AllowedElimSort(small, name.PropSort), "a Small datatype may also eliminate into Prop")
	assert.False(t, AllowedElimSort(big, name.PropSort), "a non-Small datatype may not eliminate into Prop")
}
