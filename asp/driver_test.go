package asp

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeExitError struct{ code int }

func (e fakeExitError) Error() string { return "exit status" }
func (e fakeExitError) ExitCode() int { return e.code }

func TestAsExitError_RecognisesExitCoder(t *testing.T) {
	code, ok := asExitError(fakeExitError{code: 20})
	require.True(t, ok)
	require.Equal(t, 20, code)
}

func TestAsExitError_RejectsOtherErrors(t *testing.T) {
	_, ok := asExitError(errors.New("boom"))
	require.False(t, ok)
}

func TestParseShownAtoms_ExtractsModelLine(t *testing.T) {
	output := "clingo version 5.6.2\nReading from stdin\nSolving...\nAnswer: 1\ntrace(a,1) trace(b,2) assigned_value(grade,55,1)\nSATISFIABLE\n\nModels       : 1\n"

	atoms := parseShownAtoms(output)

	require.Equal(t, []string{"trace(a,1)", "trace(b,2)", "assigned_value(grade,55,1)"}, atoms)
}

func TestParseShownAtoms_NoAnswerLineReturnsEmpty(t *testing.T) {
	atoms := parseShownAtoms("UNSATISFIABLE\n")
	require.Empty(t, atoms)
}

func TestPinTrace_AppendsOnlyTraceFacts(t *testing.T) {
	base := "activity(a).\n"
	pinned := PinTrace(base, []string{"trace(a,1)", "assigned_value(grade,55,1)", "trace(b,2)"})

	require.Contains(t, pinned, "activity(a).")
	require.Contains(t, pinned, "trace(a,1).")
	require.Contains(t, pinned, "trace(b,2).")
	require.NotContains(t, pinned, "assigned_value(grade,55,1).")
}

func TestNewSeed_DiffersAcrossCalls(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	s1 := NewSeed(rng)
	s2 := NewSeed(rng)
	require.NotEqual(t, s1, s2)
}
