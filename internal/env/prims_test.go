package env

import (
	"testing"

	"github.com/corekernel/corekernel/internal/name"
	"github.com/corekernel/corekernel/internal/reduce"
	"github.com/corekernel/corekernel/internal/term"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterBaselineRegistersNatStringVec(t *testing.T) {
	fac := term.NewFactory()
	e := New()
	require.NoError(t, RegisterBaseline(fac, e))

	for _, id := range []name.Ident{IdentNat, IdentString, IdentVec} {
		d, ok := e.FindDataType(id)
		require.True(t, ok, "%s should be registered", id)
		assert.True(t, d.IsPrimitive)
	}

	vec, _ := e.FindDataType(IdentVec)
	assert.Equal(t, 1, vec.NumParams)
	assert.Equal(t, 1, vec.NumIndices)
}

func TestRegisterBaselineRegistersNatStringAsGlobals(t *testing.T) {
	fac := term.NewFactory()
	e := New()
	require.NoError(t, RegisterBaseline(fac, e))

	for _, id := range []name.Ident{IdentNat, IdentString} {
		ty, ok := e.TypeOfGlobal(id)
		require.True(t, ok, "%s must resolve via TypeOfGlobal since NatLit/StringLit infer as GlobalDef(%s)", id, id)
		assert.Equal(t, name.SortOf(name.PropSort), term.Underlying(ty).(term.SortLit).S)
	}
}

func TestRegisterBaselineRegistersSuccAddMulAsAbstract(t *testing.T) {
	fac := term.NewFactory()
	e := New()
	require.NoError(t, RegisterBaseline(fac, e))

	for _, id := range []name.Ident{reduce.IdentSucc, reduce.IdentAdd, reduce.IdentMul} {
		_, ok := e.TypeOfGlobal(id)
		require.True(t, ok)
		_, hasValue := e.ValueOfGlobal(id)
		assert.False(t, hasValue, "%s is recognized by the simpset, not unfolded by delta", id)
	}
}

func TestRegisterBaselineIsIdempotentPerEnvironment(t *testing.T) {
	fac := term.NewFactory()
	e := New()
	require.NoError(t, RegisterBaseline(fac, e))
	assert.Error(t, RegisterBaseline(fac, e), "registering twice on the same environment should fail on the duplicate datatype")
}
