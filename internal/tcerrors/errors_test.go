package tcerrors

import (
	"strings"
	"testing"

	"github.com/corekernel/corekernel/internal/name"
	"github.com/corekernel/corekernel/internal/term"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAtPosIdempotent(t *testing.T) {
	base := NotSort(nil)
	wrapped := AtPos(Position{Label: "outer"}, base)
	assert.True(t, HasPos(wrapped))

	rewrapped := AtPos(Position{Label: "inner"}, wrapped)
	pw, ok := rewrapped.(*PosWrap)
	require.True(t, ok)
	assert.Equal(t, "outer", pw.Pos.Label, "an existing position wins over a second AtPos call")
}

func TestAtPosNilIsNil(t *testing.T) {
	assert.Nil(t, AtPos(Position{Label: "x"}, nil))
}

func TestWithVarNilIsNil(t *testing.T) {
	assert.Nil(t, WithVar(name.New("", "x"), nil, nil))
}

func TestWithVarWrapsAndUnwraps(t *testing.T) {
	inner := DanglingVar(3)
	wrapped := WithVar(name.New("", "n"), nil, inner)

	cw, ok := wrapped.(*CtxWrap)
	require.True(t, ok)
	assert.Equal(t, inner, cw.Unwrap())
	assert.Contains(t, wrapped.Error(), "n")
}

func TestHasPosWalksChain(t *testing.T) {
	inner := NotFuncType(nil)
	posWrapped := AtPos(Position{Label: "p"}, inner)
	ctxWrapped := WithVar(name.New("", "x"), nil, posWrapped)

	assert.True(t, HasPos(ctxWrapped), "HasPos should see through an outer CtxWrap")
}

func TestToReportFlattensTrace(t *testing.T) {
	fac := term.NewFactory()
	leaf := SubtypeFailure(fac.MkNatLit(1), fac.MkNatLit(2))
	wrapped := WithVar(name.New("", "y"), fac.MkSort(0), leaf)
	wrapped = AtPos(Position{Label: "fixture:flag"}, wrapped)

	report := ToReport(wrapped)
	require.NotNil(t, report)
	assert.Equal(t, CodeSubtypeFailure, report.Code)
	require.Len(t, report.Trace, 2)
	assert.Equal(t, "fixture:flag", report.Trace[0]["pos"])
	assert.Equal(t, "y", report.Trace[1]["var"])
}

func TestToReportNilIsNil(t *testing.T) {
	assert.Nil(t, ToReport(nil))
}

func TestReportToJSONRoundTrips(t *testing.T) {
	report := ToReport(NoSuchDataType(name.New("", "Vec")))
	out, err := report.ToJSON(true)
	require.NoError(t, err)
	assert.True(t, strings.Contains(out, `"code":"NoSuchDataType"`))

	pretty, err := report.ToJSON(false)
	require.NoError(t, err)
	assert.True(t, strings.Contains(pretty, "\n"), "non-compact JSON should be indented")
}
