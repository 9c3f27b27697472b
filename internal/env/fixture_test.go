package env

import (
	"strings"
	"testing"

	"github.com/corekernel/corekernel/internal/name"
	"github.com/corekernel/corekernel/internal/term"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleFixture = `
datatypes:
  - name: {module: "", local: "Bool"}
    type: {sort: 0}
    num_params: 0
    num_indices: 0
    small: true

constructors:
  - name: {module: "", local: "True"}
    datatype: {module: "", local: "Bool"}
    type: {datatype_app: {id: {module: "", local: "Bool"}}}
    num_params: 0
    num_args: 0

globals:
  - name: {module: "", local: "flag"}
    type: {datatype_app: {id: {module: "", local: "Bool"}}}
    value: {ctor_app: {id: {module: "", local: "True"}}}
`

func TestLoadFixtureRegistersEverything(t *testing.T) {
	fac := term.NewFactory()
	e, err := LoadFixture(fac, strings.NewReader(sampleFixture))
	require.NoError(t, err)

	boolID := name.New("", "Bool")
	d, ok := e.FindDataType(boolID)
	require.True(t, ok)
	assert.True(t, d.Small)
	assert.Contains(t, d.Ctors, name.New("", "True"))

	c, ok := e.FindCtor(name.New("", "True"))
	require.True(t, ok)
	assert.Equal(t, boolID, c.DataType)

	ty, ok := e.TypeOfGlobal(name.New("", "flag"))
	require.True(t, ok)
	dtApp, ok := term.Underlying(ty).(*term.DataTypeApp)
	require.True(t, ok)
	assert.Equal(t, boolID, dtApp.ID)

	val, ok := e.ValueOfGlobal(name.New("", "flag"))
	require.True(t, ok)
	_, ok = term.Underlying(val).(*term.CtorApp)
	assert.True(t, ok)

	// The baseline primitives load alongside the fixture's own declarations.
	_, ok = e.FindDataType(IdentNat)
	assert.True(t, ok)
}

func TestLoadFixtureRejectsMalformedYAML(t *testing.T) {
	fac := term.NewFactory()
	_, err := LoadFixture(fac, strings.NewReader("datatypes: [\n"))
	assert.Error(t, err)
}
