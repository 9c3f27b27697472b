package reduce

import (
	"testing"

	"github.com/corekernel/corekernel/internal/name"
	"github.com/corekernel/corekernel/internal/term"
	"github.com/stretchr/testify/assert"
)

func TestConvertibleUpToBeta(t *testing.T) {
	fac := term.NewFactory()
	r := newFakeResolver()

	id := fac.MkLambda(name.New("", "x"), fac.MkSort(0), fac.MkLocalVar(0))
	applied := fac.MkApp(id, fac.MkNatLit(3))

	assert.True(t, Convertible(fac, r, applied, fac.MkNatLit(3)))
}

func TestConvertibleUpToDelta(t *testing.T) {
	fac := term.NewFactory()
	r := newFakeResolver()
	id := name.New("", "three")
	r.values[id] = fac.MkNatLit(3)

	assert.True(t, Convertible(fac, r, fac.MkGlobalDef(id), fac.MkNatLit(3)))
}

func TestConvertibleStructuralMismatch(t *testing.T) {
	fac := term.NewFactory()
	r := newFakeResolver()

	assert.False(t, Convertible(fac, r, fac.MkNatLit(1), fac.MkNatLit(2)))
	assert.False(t, Convertible(fac, r, fac.MkSort(0), fac.MkSort(1)))
}

func TestConvertiblePiRecursesOnDomainAndCodomain(t *testing.T) {
	fac := term.NewFactory()
	r := newFakeResolver()

	p1 := fac.MkPi(name.New("", "x"), fac.MkSort(0), fac.MkLocalVar(0))
	p2 := fac.MkPi(name.New("", "y"), fac.MkSort(0), fac.MkLocalVar(0))
	assert.True(t, Convertible(fac, r, p1, p2), "alpha-equivalent Pi types are convertible")

	p3 := fac.MkPi(name.New("", "x"), fac.MkSort(1), fac.MkLocalVar(0))
	assert.False(t, Convertible(fac, r, p1, p3), "different domain sorts are not convertible")
}

func TestConvertibleSharedIndexFastPath(t *testing.T) {
	fac := term.NewFactory()
	r := newFakeResolver()

	a := fac.MkDataTypeApp(name.New("Prim", "Vec"), []term.Term{fac.MkSort(1)}, []term.Term{fac.MkNatLit(3)})
	b := fac.MkDataTypeApp(name.New("Prim", "Vec"), []term.Term{fac.MkSort(1)}, []term.Term{fac.MkNatLit(3)})

	assert.Same(t, a, b, "hash-consing should have produced one shared node")
	assert.True(t, Convertible(fac, r, a, b))
}
