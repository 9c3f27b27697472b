package term

import (
	"testing"

	"github.com/corekernel/corekernel/internal/name"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMkHashConsesEqualNodes(t *testing.T) {
	fac := NewFactory()

	a := fac.MkLambda(name.New("", "x"), fac.MkSort(0), fac.MkLocalVar(0))
	b := fac.MkLambda(name.New("", "x"), fac.MkSort(0), fac.MkLocalVar(0))

	assert.Same(t, a, b, "two structurally identical builds should share one node")
	assert.Equal(t, a.Index, b.Index)
}

func TestMkDistinguishesDifferentNodes(t *testing.T) {
	fac := NewFactory()

	a := fac.MkLambda(name.New("", "x"), fac.MkSort(0), fac.MkLocalVar(0))
	b := fac.MkLambda(name.New("", "y"), fac.MkSort(1), fac.MkLocalVar(0))

	assert.NotEqual(t, a.Index, b.Index)
}

func TestEqualUsesSharedIndexEquality(t *testing.T) {
	fac := NewFactory()

	x := fac.MkNatLit(7)
	y := fac.MkNatLit(7)
	z := fac.MkNatLit(8)

	require.True(t, Equal(x, y))
	require.False(t, Equal(x, z))
}

func TestApplyAllBuildsLeftAssociativeSpine(t *testing.T) {
	fac := NewFactory()

	f := fac.MkGlobalDef(name.New("Prim", "Add"))
	applied := fac.ApplyAll(f, []Term{fac.MkNatLit(1), fac.MkNatLit(2)})

	app, ok := Underlying(applied).(*App)
	require.True(t, ok)
	assert.Equal(t, uint64(2), Underlying(app.Arg).(NatLit).N)

	inner, ok := Underlying(app.Func).(*App)
	require.True(t, ok)
	assert.Equal(t, uint64(1), Underlying(inner.Arg).(NatLit).N)
}

func TestFreeSetComputedOnConstruction(t *testing.T) {
	fac := NewFactory()

	// λ(x:Sort 0). x has no free variables once the binder is accounted for.
	lam := fac.MkLambda(name.New("", "x"), fac.MkSort(0), fac.MkLocalVar(0))
	assert.False(t, lam.Free.Has(0))

	// A bare LocalVar(0) (as would occur inside an open subterm) is free.
	v := fac.MkLocalVar(0)
	assert.True(t, v.Free.Has(0))
}
