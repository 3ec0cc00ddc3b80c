package asp

import (
	"testing"

	declare4py "github.com/jonghyeonk/declare4py"
	"github.com/stretchr/testify/require"
)

func fixedClock() string { return "2026-07-29T00:00:00Z" }

func TestLift_OrdersEventsByPosition(t *testing.T) {
	model := declare4py.NewParser().ParseString("activity a\nactivity b\nExistence[a]\n")
	atoms := []string{"trace(b,2)", "trace(a,1)"}

	trace := Lift(atoms, model, "trace_0", "positive", fixedClock)

	require.Equal(t, "trace_0", trace.Name)
	require.Equal(t, "positive", trace.Label)
	require.Len(t, trace.Events, 2)
	require.Equal(t, "a", trace.Events[0].Activity)
	require.Equal(t, 1, trace.Events[0].Position)
	require.Equal(t, "b", trace.Events[1].Activity)
	require.Equal(t, 2, trace.Events[1].Position)
	require.Equal(t, "2026-07-29T00:00:00Z", trace.Events[0].Timestamp)
}

func TestLift_DecodesEncodedActivityNames(t *testing.T) {
	model := declare4py.NewParser().ParseString("activity Register Request\nExistence[Register Request]\n")
	encoded := model.Encoding.Encode("Register Request")
	atoms := []string{"trace(" + encoded + ",1)"}

	trace := Lift(atoms, model, "trace_0", "positive", fixedClock)

	require.Len(t, trace.Events, 1)
	require.Equal(t, "Register Request", trace.Events[0].Activity)
}

func TestLift_RescalesFloatRangeResources(t *testing.T) {
	text := "activity a\nbind a: grade\ngrade: float between 0.0 and 10.0\nExistence[a]\n"
	model := declare4py.NewParser().ParseString(text)

	atoms := []string{"trace(a,1)", "assigned_value(grade,55,1)"}
	trace := Lift(atoms, model, "trace_0", "positive", fixedClock)

	require.Len(t, trace.Events, 1)
	value, ok := trace.Events[0].Attribute("grade")
	require.True(t, ok)
	require.Equal(t, "5.5", value)
}

func TestLift_EnumerationResourcePassesThrough(t *testing.T) {
	text := "activity a\nbind a: outcome\noutcome: approved, rejected\nExistence[a]\n"
	model := declare4py.NewParser().ParseString(text)
	encodedOutcome := model.Encoding.Encode("outcome")
	encodedVal := model.Encoding.Encode("approved")

	atoms := []string{"trace(a,1)", "assigned_value(" + encodedOutcome + "," + encodedVal + ",1)"}
	trace := Lift(atoms, model, "trace_0", "positive", fixedClock)

	value, ok := trace.Events[0].Attribute("outcome")
	require.True(t, ok)
	require.Equal(t, "approved", value)
}

func TestLift_NoClockLeavesTimestampEmpty(t *testing.T) {
	model := declare4py.NewParser().ParseString("activity a\nExistence[a]\n")
	trace := Lift([]string{"trace(a,1)"}, model, "trace_0", "positive", nil)
	require.Equal(t, "", trace.Events[0].Timestamp)
}
