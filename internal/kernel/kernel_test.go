package kernel

import (
	"strings"
	"testing"

	"github.com/corekernel/corekernel/internal/env"
	"github.com/corekernel/corekernel/internal/name"
	"github.com/corekernel/corekernel/internal/term"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckSucceedsOnWellTypedTerm(t *testing.T) {
	fac := term.NewFactory()
	e := env.New()
	require.NoError(t, env.RegisterBaseline(fac, e))

	lam := fac.MkLambda(name.New("", "x"), fac.MkGlobalDef(env.IdentNat), fac.MkLocalVar(0))
	res := Check(Config{}, fac, e, lam)

	require.Nil(t, res.Report)
	require.NotNil(t, res.Type)
	assert.Contains(t, res.TypePretty, "Prim.Nat")
	assert.Contains(t, res.PhaseTimings, "infer")
}

func TestCheckReportsFailureWithPosition(t *testing.T) {
	fac := term.NewFactory()
	e := env.New()
	require.NoError(t, env.RegisterBaseline(fac, e))

	bad := fac.MkApp(fac.MkNatLit(1), fac.MkNatLit(2))
	res := Check(Config{PositionName: "demo"}, fac, e, bad)

	require.Nil(t, res.Type)
	require.NotNil(t, res.Report)
	require.Len(t, res.Report.Trace, 1)
	assert.Equal(t, "demo", res.Report.Trace[0]["pos"])
}

func TestCheckJSONReportRoundTrips(t *testing.T) {
	fac := term.NewFactory()
	e := env.New()
	require.NoError(t, env.RegisterBaseline(fac, e))

	bad := fac.MkApp(fac.MkNatLit(1), fac.MkNatLit(2))
	res := Check(Config{JSON: true, Compact: true}, fac, e, bad)
	require.NotNil(t, res.Report)

	out, err := res.Report.ToJSON(true)
	require.NoError(t, err)
	assert.Contains(t, out, `"code"`)
}

const kernelFixture = `
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
  - name: {module: "", local: "broken"}
    type: {datatype_app: {id: {module: "", local: "Bool"}}}
    value: {nat: 9}
`

func TestCheckFixtureChecksEveryDefinedGlobal(t *testing.T) {
	fac := term.NewFactory()
	e, results, err := CheckFixture(Config{}, fac, strings.NewReader(kernelFixture))
	require.NoError(t, err)
	require.NotNil(t, e)
	require.Len(t, results, 2)

	byOK := map[bool]int{}
	for _, r := range results {
		byOK[r.Report == nil]++
	}
	assert.Equal(t, 1, byOK[true], "flag should check out")
	assert.Equal(t, 1, byOK[false], "broken should fail (Nat used where Bool is expected)")
}

func TestCheckFixturePropagatesLoadError(t *testing.T) {
	fac := term.NewFactory()
	_, _, err := CheckFixture(Config{}, fac, strings.NewReader("datatypes: [\n"))
	assert.Error(t, err)
}
