package env

import (
	"testing"

	"github.com/corekernel/corekernel/internal/name"
	"github.com/corekernel/corekernel/internal/term"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildMyNat registers a tiny two-constructor inductive (Zero, Succ) to
// exercise RecursorMotiveType/RecursorCaseType end to end without relying on
// the built-in Nat (which is represented canonically by NatLit, not by
// constructors, and so has nothing to recurse over).
func buildMyNat(t *testing.T, fac *term.Factory) (*Environment, *DataType, *Ctor, *Ctor) {
	t.Helper()
	e := New()

	myNatID := name.New("", "MyNat")
	zeroID := name.New("", "Zero")
	succID := name.New("", "Succ")

	d := &DataType{
		Name:       myNatID,
		Type:       fac.MkSort(1),
		NumParams:  0,
		NumIndices: 0,
		Small:      true,
	}
	require.NoError(t, e.RegisterDataType(d))

	myNatApp := fac.MkDataTypeApp(myNatID, nil, nil)

	zero := &Ctor{
		Name:      zeroID,
		DataType:  myNatID,
		Type:      myNatApp,
		NumParams: 0,
		NumArgs:   0,
	}
	require.NoError(t, e.RegisterCtor(zero))

	succ := &Ctor{
		Name:      succID,
		DataType:  myNatID,
		Type:      fac.MkPi(name.New("", "n"), myNatApp, myNatApp),
		NumParams: 0,
		NumArgs:   1,
	}
	require.NoError(t, e.RegisterCtor(succ))

	d.Ctors = []name.Ident{zeroID, succID}
	return e, d, zero, succ
}

func TestRecursorMotiveTypeNoIndices(t *testing.T) {
	fac := term.NewFactory()
	_, d, _, _ := buildMyNat(t, fac)

	motiveTy, err := RecursorMotiveType(fac, d, nil, 1)
	require.NoError(t, err)

	pi, ok := term.Underlying(motiveTy).(*term.Pi)
	require.True(t, ok, "motive type should be a single Pi binding the scrutinee")

	dtApp, ok := term.Underlying(pi.Type).(*term.DataTypeApp)
	require.True(t, ok)
	assert.Equal(t, d.Name, dtApp.ID)
	assert.Empty(t, dtApp.Indices)

	sort, ok := term.Underlying(pi.Body).(term.SortLit)
	require.True(t, ok)
	assert.Equal(t, name.Sort(1), sort.S)
}

func TestRecursorCaseTypeZeroArgCtor(t *testing.T) {
	fac := term.NewFactory()
	_, d, zero, _ := buildMyNat(t, fac)

	motiveTy, err := RecursorMotiveType(fac, d, nil, 1)
	require.NoError(t, err)
	motive := fac.MkLambda(name.New("", "self"), term.Underlying(motiveTy).(*term.Pi).Type, fac.MkSort(1))

	caseTy, err := RecursorCaseType(fac, d, zero, nil, motive)
	require.NoError(t, err)

	app, ok := term.Underlying(caseTy).(*term.App)
	require.True(t, ok, "a zero-argument constructor's case type has no leading Pi")
	ctor, ok := term.Underlying(app.Arg).(*term.CtorApp)
	require.True(t, ok)
	assert.Equal(t, zero.Name, ctor.ID)
	assert.Empty(t, ctor.Args)
}

func TestRecursorCaseTypeOneArgCtor(t *testing.T) {
	fac := term.NewFactory()
	_, d, _, succ := buildMyNat(t, fac)

	motiveTy, err := RecursorMotiveType(fac, d, nil, 1)
	require.NoError(t, err)
	motive := fac.MkLambda(name.New("", "self"), term.Underlying(motiveTy).(*term.Pi).Type, fac.MkSort(1))

	caseTy, err := RecursorCaseType(fac, d, succ, nil, motive)
	require.NoError(t, err)

	pi, ok := term.Underlying(caseTy).(*term.Pi)
	require.True(t, ok, "a one-argument constructor's case type binds that argument")

	app, ok := term.Underlying(pi.Body).(*term.App)
	require.True(t, ok)
	ctor, ok := term.Underlying(app.Arg).(*term.CtorApp)
	require.True(t, ok)
	assert.Equal(t, succ.Name, ctor.ID)
	require.Len(t, ctor.Args, 1)
	assert.Equal(t, 0, term.Underlying(ctor.Args[0]).(term.LocalVar).Index, "the bound arg is referenced as LocalVar(0)")
}

func TestRecursorMotiveTypeWrongParamCount(t *testing.T) {
	fac := term.NewFactory()
	_, d, _, _ := buildMyNat(t, fac)

	_, err := RecursorMotiveType(fac, d, []term.Term{fac.MkNatLit(0)}, 1)
	assert.Error(t, err)
}
