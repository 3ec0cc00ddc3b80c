package declare4py

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestComputeDistribution_Uniform(t *testing.T) {
	hist, err := ComputeDistribution(DistributionConfig{
		MinEvents: 3, MaxEvents: 5, TotalTraces: 9, Type: DistributorUniform,
	})
	require.NoError(t, err)
	sum := 0
	for l, c := range hist {
		require.GreaterOrEqual(t, l, 3)
		require.LessOrEqual(t, l, 5)
		sum += c
	}
	require.Equal(t, 9, sum)
}

func TestComputeDistribution_MinEqualsMax(t *testing.T) {
	hist, err := ComputeDistribution(DistributionConfig{
		MinEvents: 4, MaxEvents: 4, TotalTraces: 7, Type: DistributorUniform,
	})
	require.NoError(t, err)
	require.Equal(t, map[int]int{4: 7}, hist)
}

func TestComputeDistribution_Custom(t *testing.T) {
	hist, err := ComputeDistribution(DistributionConfig{
		MinEvents: 1, MaxEvents: 3, TotalTraces: 10, Type: DistributorCustom,
		CustomProbabilities: []float64{0.2, 0.3, 0.5},
	})
	require.NoError(t, err)
	sum := 0
	for _, c := range hist {
		sum += c
	}
	require.Equal(t, 10, sum)
	require.Equal(t, 5, hist[3])
}

func TestComputeDistribution_CustomMustSumToOne(t *testing.T) {
	_, err := ComputeDistribution(DistributionConfig{
		MinEvents: 1, MaxEvents: 2, TotalTraces: 10, Type: DistributorCustom,
		CustomProbabilities: []float64{0.2, 0.2},
	})
	require.Error(t, err)
	require.IsType(t, ConfigError{}, err)
}

func TestComputeDistribution_Gaussian(t *testing.T) {
	hist, err := ComputeDistribution(DistributionConfig{
		MinEvents: 1, MaxEvents: 20, TotalTraces: 1000, Type: DistributorGaussian,
		Loc: 10, Scale: 2, Rand: rand.New(rand.NewSource(42)),
	})
	require.NoError(t, err)
	total := 0
	for l, c := range hist {
		require.GreaterOrEqual(t, l, 1)
		require.LessOrEqual(t, l, 20)
		total += c
	}
	require.Greater(t, total, 0)
	require.LessOrEqual(t, total, 1000)
}

func TestComputeDistribution_GaussianRequiresLocAboveOne(t *testing.T) {
	_, err := ComputeDistribution(DistributionConfig{
		MinEvents: 1, MaxEvents: 5, TotalTraces: 10, Type: DistributorGaussian,
		Loc: 1, Scale: 1,
	})
	require.Error(t, err)
}

func TestComputeDistribution_RejectsInvertedRange(t *testing.T) {
	_, err := ComputeDistribution(DistributionConfig{
		MinEvents: 5, MaxEvents: 3, TotalTraces: 10, Type: DistributorUniform,
	})
	require.Error(t, err)
}
