package generator

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"testing"

	declare4py "github.com/jonghyeonk/declare4py"
	"github.com/stretchr/testify/require"
)

// fakeDriver is a deterministic, toolchain-free stand-in for a real solver:
// every Solve call is satisfiable and returns a trace whose facts are
// derived from the requested length so tests never shell out.
type fakeDriver struct {
	mu    sync.Mutex
	calls int
	unsat map[int]bool // lengths that should report UNSAT
}

func (d *fakeDriver) Solve(ctx context.Context, program string, length int, seed uint32) ([]string, bool, error) {
	d.mu.Lock()
	d.calls++
	d.mu.Unlock()
	if d.unsat[length] {
		return nil, false, nil
	}
	var atoms []string
	for t := 1; t <= length; t++ {
		atoms = append(atoms, fmt.Sprintf("trace(a,%d)", t))
	}
	return atoms, true, nil
}

func baseConfig() *declare4py.GeneratorConfig {
	return &declare4py.GeneratorConfig{
		NumTraces:       5,
		MinEvent:        2,
		MaxEvent:        2,
		DistributorType: "uniform",
	}
}

func modelWithExistence() *declare4py.ParsedModel {
	return declare4py.NewParser().ParseString("activity a\nExistence[a]\n")
}

func TestGenerator_Run_ProducesRequestedPositiveCount(t *testing.T) {
	cfg := baseConfig()
	gen, err := New(&Options{
		Model:  modelWithExistence(),
		Config: cfg,
		Driver: &fakeDriver{},
		Rand:   rand.New(rand.NewSource(1)),
	})
	require.NoError(t, err)

	result, err := gen.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 5, result.Requested)
	require.Equal(t, 5, result.Got)
	require.Len(t, result.Traces, 5)
	for _, tr := range result.Traces {
		require.Equal(t, "positive", tr.Label)
	}
}

func TestGenerator_Run_SplitsPositiveAndNegative(t *testing.T) {
	cfg := baseConfig()
	cfg.NegativeTraces = 2
	cfg.ViolateAllConstraints = true

	gen, err := New(&Options{
		Model:  modelWithExistence(),
		Config: cfg,
		Driver: &fakeDriver{},
		Rand:   rand.New(rand.NewSource(2)),
	})
	require.NoError(t, err)

	result, err := gen.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 5, result.Got)

	var positive, negative int
	for _, tr := range result.Traces {
		if tr.Label == "positive" {
			positive++
		} else {
			negative++
		}
	}
	require.Equal(t, 3, positive)
	require.Equal(t, 2, negative)
}

func TestGenerator_Run_UnsatSlotIsSkippedNotFailed(t *testing.T) {
	cfg := baseConfig()
	driver := &fakeDriver{unsat: map[int]bool{2: true}}

	gen, err := New(&Options{
		Model:  modelWithExistence(),
		Config: cfg,
		Driver: driver,
		Rand:   rand.New(rand.NewSource(3)),
	})
	require.NoError(t, err)

	result, err := gen.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 5, result.Requested)
	require.Equal(t, 0, result.Got)
}

func TestGenerator_Run_RepetitionsProduceVariationNames(t *testing.T) {
	cfg := baseConfig()
	cfg.NumTraces = 1
	cfg.RepetitionsPerTrace = 3

	gen, err := New(&Options{
		Model:  modelWithExistence(),
		Config: cfg,
		Driver: &fakeDriver{},
		Rand:   rand.New(rand.NewSource(4)),
	})
	require.NoError(t, err)

	result, err := gen.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 3, result.Requested)
	require.Equal(t, 3, result.Got)

	var base, v1, v2 bool
	for _, tr := range result.Traces {
		switch {
		case tr.Name == "trace_0":
			base = true
		case strings.HasSuffix(tr.Name, "_variation_1"):
			v1 = true
		case strings.HasSuffix(tr.Name, "_variation_2"):
			v2 = true
		}
	}
	require.True(t, base)
	require.True(t, v1)
	require.True(t, v2)
}

func TestGenerator_Validate_RequiresDriverAndModel(t *testing.T) {
	_, err := New(&Options{Config: baseConfig()})
	require.Error(t, err)
}

func TestGenerator_Validate_RejectsInvalidConfig(t *testing.T) {
	cfg := baseConfig()
	cfg.MinEvent = 10
	cfg.MaxEvent = 2
	_, err := New(&Options{Model: modelWithExistence(), Config: cfg, Driver: &fakeDriver{}})
	require.Error(t, err)
}
