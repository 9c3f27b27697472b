package tc

import (
	"testing"

	"github.com/corekernel/corekernel/internal/env"
	"github.com/corekernel/corekernel/internal/name"
	"github.com/corekernel/corekernel/internal/term"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildMyNatEngine registers a tiny two-constructor inductive (Zero, Succ)
// directly (bypassing RegisterBaseline) so inferDataTypeApp/inferCtorApp/
// inferRecursorApp can be exercised against a datatype with real
// constructors; the built-in Nat is represented canonically by NatLit and
// has none to recurse over.
func buildMyNatEngine(t *testing.T) (*Engine, *term.Factory, name.Ident, name.Ident, name.Ident) {
	t.Helper()
	fac := term.NewFactory()
	e := env.New()

	myNatID := name.New("", "MyNat")
	zeroID := name.New("", "Zero")
	succID := name.New("", "Succ")

	d := &env.DataType{Name: myNatID, Type: fac.MkSort(1), NumParams: 0, NumIndices: 0, Small: true}
	require.NoError(t, e.RegisterDataType(d))

	myNatApp := fac.MkDataTypeApp(myNatID, nil, nil)

	require.NoError(t, e.RegisterCtor(&env.Ctor{Name: zeroID, DataType: myNatID, Type: myNatApp, NumParams: 0, NumArgs: 0}))
	require.NoError(t, e.RegisterCtor(&env.Ctor{
		Name: succID, DataType: myNatID, Type: fac.MkPi(name.New("", "n"), myNatApp, myNatApp), NumParams: 0, NumArgs: 1,
	}))
	d.Ctors = []name.Ident{zeroID, succID}

	return New(fac, e), fac, myNatID, zeroID, succID
}

func constantMotive(fac *term.Factory, myNatID name.Ident) term.Term {
	myNatApp := fac.MkDataTypeApp(myNatID, nil, nil)
	return fac.MkLambda(name.New("", "self"), myNatApp, myNatApp)
}

func TestInferDataTypeAppForCustomDataType(t *testing.T) {
	en, fac, myNatID, _, _ := buildMyNatEngine(t)
	ty, err := en.Infer(nil, fac.MkDataTypeApp(myNatID, nil, nil))
	require.NoError(t, err)
	assert.Equal(t, name.Sort(1), term.Underlying(ty).(term.SortLit).S)
}

func TestInferCtorAppZeroAndSucc(t *testing.T) {
	en, fac, myNatID, zeroID, succID := buildMyNatEngine(t)
	myNatApp := fac.MkDataTypeApp(myNatID, nil, nil)

	zeroTy, err := en.Infer(nil, fac.MkCtorApp(zeroID, nil))
	require.NoError(t, err)
	assert.True(t, term.Equal(zeroTy, myNatApp))

	succTy, err := en.Infer(nil, fac.MkCtorApp(succID, []term.Term{fac.MkCtorApp(zeroID, nil)}))
	require.NoError(t, err)
	assert.True(t, term.Equal(succTy, myNatApp))
}

func TestInferRecursorAppSelectsZeroCase(t *testing.T) {
	en, fac, myNatID, zeroID, succID := buildMyNatEngine(t)
	myNatApp := fac.MkDataTypeApp(myNatID, nil, nil)
	motive := constantMotive(fac, myNatID)

	rec := fac.MkRecursorApp(myNatID, nil, motive, map[string]term.Term{
		"Zero": fac.MkCtorApp(zeroID, nil),
		"Succ": fac.MkLambda(name.New("", "n"), myNatApp, fac.MkLocalVar(0)),
	}, nil, fac.MkCtorApp(zeroID, nil))
	_ = succID

	ty, err := en.Infer(nil, rec)
	require.NoError(t, err)
	assert.True(t, term.Equal(ty, myNatApp))
}

func TestInferRecursorAppSelectsSuccCase(t *testing.T) {
	en, fac, myNatID, zeroID, succID := buildMyNatEngine(t)
	myNatApp := fac.MkDataTypeApp(myNatID, nil, nil)
	motive := constantMotive(fac, myNatID)

	scrutinee := fac.MkCtorApp(succID, []term.Term{fac.MkCtorApp(zeroID, nil)})
	rec := fac.MkRecursorApp(myNatID, nil, motive, map[string]term.Term{
		"Zero": fac.MkCtorApp(zeroID, nil),
		"Succ": fac.MkLambda(name.New("", "n"), myNatApp, fac.MkLocalVar(0)),
	}, nil, scrutinee)

	ty, err := en.Infer(nil, rec)
	require.NoError(t, err)
	assert.True(t, term.Equal(ty, myNatApp))
}

func TestInferRecursorAppMissingCaseErrors(t *testing.T) {
	en, fac, myNatID, zeroID, _ := buildMyNatEngine(t)
	motive := constantMotive(fac, myNatID)

	rec := fac.MkRecursorApp(myNatID, nil, motive, map[string]term.Term{
		"Zero": fac.MkCtorApp(zeroID, nil),
	}, nil, fac.MkCtorApp(zeroID, nil))

	_, err := en.Infer(nil, rec)
	assert.Error(t, err)
}

func TestInferRecursorAppExtraCaseErrors(t *testing.T) {
	en, fac, myNatID, zeroID, succID := buildMyNatEngine(t)
	myNatApp := fac.MkDataTypeApp(myNatID, nil, nil)
	motive := constantMotive(fac, myNatID)

	rec := fac.MkRecursorApp(myNatID, nil, motive, map[string]term.Term{
		"Zero":  fac.MkCtorApp(zeroID, nil),
		"Succ":  fac.MkLambda(name.New("", "n"), myNatApp, fac.MkLocalVar(0)),
		"Extra": fac.MkCtorApp(zeroID, nil),
	}, nil, fac.MkCtorApp(zeroID, nil))
	_ = succID

	_, err := en.Infer(nil, rec)
	assert.Error(t, err)
}

func TestInferRecursorAppScrutineeTypeMismatch(t *testing.T) {
	en, fac, myNatID, zeroID, succID := buildMyNatEngine(t)
	myNatApp := fac.MkDataTypeApp(myNatID, nil, nil)
	motive := constantMotive(fac, myNatID)

	rec := fac.MkRecursorApp(myNatID, nil, motive, map[string]term.Term{
		"Zero": fac.MkCtorApp(zeroID, nil),
		"Succ": fac.MkLambda(name.New("", "n"), myNatApp, fac.MkLocalVar(0)),
	}, nil, fac.MkNatLit(0))
	_ = succID

	_, err := en.Infer(nil, rec)
	assert.Error(t, err)
}
