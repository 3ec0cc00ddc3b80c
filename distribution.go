package declare4py

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
)

// DistributorType selects the shape of the length->count histogram produced
// by a Distribution.
type DistributorType int

const (
	DistributorUniform DistributorType = iota
	DistributorGaussian
	DistributorCustom
)

func (d DistributorType) String() string {
	switch d {
	case DistributorGaussian:
		return "gaussian"
	case DistributorCustom:
		return "custom"
	default:
		return "uniform"
	}
}

// ParseDistributorType resolves the YAML-facing distributor_type string.
func ParseDistributorType(s string) (DistributorType, error) {
	switch s {
	case "", "uniform":
		return DistributorUniform, nil
	case "gaussian":
		return DistributorGaussian, nil
	case "custom":
		return DistributorCustom, nil
	default:
		return DistributorUniform, ConfigError{Field: "distributor_type", Reason: fmt.Sprintf("unknown value %q", s)}
	}
}

// DistributionConfig carries the generator configuration parameters that
// shape the histogram.
type DistributionConfig struct {
	MinEvents           int
	MaxEvents           int
	TotalTraces         int
	Type                DistributorType
	CustomProbabilities []float64 // required iff Type == DistributorCustom; must sum to 1.0
	Loc                 float64   // required iff Type == DistributorGaussian; must be > 1
	Scale               float64   // required iff Type == DistributorGaussian; must be >= 0
	Rand                *rand.Rand
}

// Validate reports a ConfigError for any parameter combination the
// distribution planner cannot act on.
func (c DistributionConfig) Validate() error {
	if c.MinEvents < 1 || c.MinEvents > c.MaxEvents {
		return ConfigError{Field: "min_event/max_event", Reason: "require 1 <= min_event <= max_event"}
	}
	if c.TotalTraces < 0 {
		return ConfigError{Field: "num_traces", Reason: "must be >= 0"}
	}
	switch c.Type {
	case DistributorGaussian:
		if c.Loc <= 1 {
			return ConfigError{Field: "loc", Reason: "must be > 1"}
		}
		if c.Scale < 0 {
			return ConfigError{Field: "scale", Reason: "must be >= 0"}
		}
	case DistributorCustom:
		if len(c.CustomProbabilities) == 0 {
			return ConfigError{Field: "custom_probabilities", Reason: "required when distributor_type=custom"}
		}
		sum := 0.0
		for _, p := range c.CustomProbabilities {
			sum += p
		}
		if math.Abs(sum-1.0) > 1e-6 {
			return ConfigError{Field: "custom_probabilities", Reason: fmt.Sprintf("must sum to 1.0, got %v", sum)}
		}
	}
	return nil
}

// ComputeDistribution produces a length->count histogram summing to
// c.TotalTraces (modulo gaussian boundary clamping, which may discard mass
// outside [MinEvents, MaxEvents], matching log_generator.py's
// compute_distribution). Boundaries are inclusive.
func ComputeDistribution(c DistributionConfig) (map[int]int, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	rng := c.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}

	switch c.Type {
	case DistributorGaussian:
		return gaussianHistogram(c, rng), nil
	case DistributorCustom:
		return weightedHistogram(lengthsInRange(c.MinEvents, c.MaxEvents), c.CustomProbabilities, c.TotalTraces), nil
	default:
		return uniformHistogram(c), nil
	}
}

func lengthsInRange(min, max int) []int {
	out := make([]int, 0, max-min+1)
	for l := min; l <= max; l++ {
		out = append(out, l)
	}
	return out
}

func uniformHistogram(c DistributionConfig) map[int]int {
	lengths := lengthsInRange(c.MinEvents, c.MaxEvents)
	probs := make([]float64, len(lengths))
	for i := range probs {
		probs[i] = 1.0 / float64(len(lengths))
	}
	return weightedHistogram(lengths, probs, c.TotalTraces)
}

// gaussianHistogram draws c.TotalTraces samples from N(loc, scale), rounds
// each to the nearest integer length, and keeps only samples that land in
// [MinEvents, MaxEvents] — out-of-range mass is dropped rather than
// reflected or clamped, matching log_generator.py's compute_distribution
// refinement step.
func gaussianHistogram(c DistributionConfig, rng *rand.Rand) map[int]int {
	hist := map[int]int{}
	for i := 0; i < c.TotalTraces; i++ {
		sample := rng.NormFloat64()*c.Scale + c.Loc
		length := int(math.Round(sample))
		if length >= c.MinEvents && length <= c.MaxEvents {
			hist[length]++
		}
	}
	return hist
}

// weightedHistogram allocates c.TotalTraces draws across lengths according
// to probs (same order), using largest-remainder rounding so the resulting
// counts sum to exactly c.TotalTraces.
func weightedHistogram(lengths []int, probs []float64, total int) map[int]int {
	if len(lengths) != len(probs) {
		// Defensive: custom_probabilities length mismatch with the
		// [min,max] span. Fall back to a flat split over lengths.
		probs = make([]float64, len(lengths))
		for i := range probs {
			probs[i] = 1.0 / float64(len(lengths))
		}
	}
	raw := make([]float64, len(lengths))
	floor := make([]int, len(lengths))
	assigned := 0
	for i, p := range probs {
		raw[i] = p * float64(total)
		floor[i] = int(math.Floor(raw[i]))
		assigned += floor[i]
	}
	remainder := total - assigned
	type frac struct {
		idx int
		f   float64
	}
	fracs := make([]frac, len(lengths))
	for i := range raw {
		fracs[i] = frac{idx: i, f: raw[i] - float64(floor[i])}
	}
	sort.Slice(fracs, func(a, b int) bool { return fracs[a].f > fracs[b].f })
	for i := 0; i < remainder && i < len(fracs); i++ {
		floor[fracs[i].idx]++
	}

	hist := map[int]int{}
	for i, l := range lengths {
		if floor[i] > 0 {
			hist[l] = floor[i]
		}
	}
	return hist
}
