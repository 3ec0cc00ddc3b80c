package condition

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeEvent map[string]string

func (f fakeEvent) Attribute(name string) (string, bool) {
	v, ok := f[name]
	return v, ok
}

func TestParse_Empty(t *testing.T) {
	expr, err := Parse("")
	require.NoError(t, err)
	require.Nil(t, expr)
	require.True(t, Eval(expr, fakeEvent{}))
}

func TestParse_SimpleComparison(t *testing.T) {
	expr, err := Parse("A.grade > 50")
	require.NoError(t, err)
	require.True(t, Eval(expr, fakeEvent{"grade": "60"}))
	require.False(t, Eval(expr, fakeEvent{"grade": "40"}))
}

func TestParse_AndOrNot(t *testing.T) {
	expr, err := Parse("A.grade > 50 and not A.status == rejected")
	require.NoError(t, err)
	require.True(t, Eval(expr, fakeEvent{"grade": "90", "status": "approved"}))
	require.False(t, Eval(expr, fakeEvent{"grade": "90", "status": "rejected"}))
	require.False(t, Eval(expr, fakeEvent{"grade": "10", "status": "approved"}))
}

func TestParse_In(t *testing.T) {
	expr, err := Parse("A.status in {open, pending}")
	require.NoError(t, err)
	require.True(t, Eval(expr, fakeEvent{"status": "pending"}))
	require.False(t, Eval(expr, fakeEvent{"status": "closed"}))
}

func TestParse_Is(t *testing.T) {
	expr, err := Parse("A.kind is gold")
	require.NoError(t, err)
	require.True(t, Eval(expr, fakeEvent{"kind": "gold"}))
}

func TestParse_ParenthesesAndOr(t *testing.T) {
	expr, err := Parse("(A.a == 1 or A.a == 2) and A.b != 9")
	require.NoError(t, err)
	require.True(t, Eval(expr, fakeEvent{"a": "2", "b": "1"}))
	require.False(t, Eval(expr, fakeEvent{"a": "3", "b": "1"}))
	require.False(t, Eval(expr, fakeEvent{"a": "2", "b": "9"}))
}

func TestParse_MalformedReturnsError(t *testing.T) {
	_, err := Parse("A.grade >")
	require.Error(t, err)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
}

func TestParse_MissingClosingBrace(t *testing.T) {
	_, err := Parse("A.status in {open, pending")
	require.Error(t, err)
}

func TestEval_MissingAttributeIsFalse(t *testing.T) {
	expr, err := Parse("A.missing == 1")
	require.NoError(t, err)
	require.False(t, Eval(expr, fakeEvent{}))
}
