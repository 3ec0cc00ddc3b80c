package xeslog

import (
	"bytes"
	"testing"

	declare4py "github.com/jonghyeonk/declare4py"
	"github.com/stretchr/testify/require"
)

func TestWriteRead_RoundTrips(t *testing.T) {
	traces := []declare4py.Trace{
		{
			Name:  "trace_0",
			Label: "positive",
			Events: []declare4py.Event{
				{Activity: "a", Position: 1, Resources: map[string]string{"grade": "60"}, Timestamp: "2026-01-01T00:00:00+01:00"},
				{Activity: "b", Position: 2, Resources: map[string]string{}, Timestamp: "2026-01-01T00:00:00+01:00"},
			},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, traces))

	got, err := Read(&buf)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "trace_0", got[0].Name)
	require.Equal(t, "positive", got[0].Label)
	require.Len(t, got[0].Events, 2)
	require.Equal(t, "a", got[0].Events[0].Activity)
	require.Equal(t, "60", got[0].Events[0].Resources["grade"])
	require.Equal(t, "b", got[0].Events[1].Activity)
}

func TestWrite_EmptyTraces(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, nil))
	require.Contains(t, buf.String(), "<log>")
}
