package declare4py

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	errorutil "github.com/projectdiscovery/utils/errors"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFilePath is the conventional location of a GeneratorConfig,
// mirroring alterx's DefaultConfigFilePath. NewGeneratorConfig and
// GenerateSampleConfig take an explicit path and do not fall back to it.
var DefaultConfigFilePath = filepath.Join(getUserHomeDir(), ".config/declare4py/generator.yaml")

// ActivationBound is the `[lo, hi]` pair of an activation_conditions map
// entry. hi may be +Inf, spelled "inf" in YAML.
type ActivationBound [2]float64

func (b ActivationBound) Lo() float64 { return b[0] }
func (b ActivationBound) Hi() float64 { return b[1] }

// UnmarshalYAML accepts either numbers or the literal string "inf" for the
// upper bound, since YAML has no native infinity token that survives every
// codec in this repo's stack.
func (b *ActivationBound) UnmarshalYAML(value *yaml.Node) error {
	var raw []string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	if len(raw) != 2 {
		return errorutil.New("activation bound must have exactly 2 elements")
	}
	for i, tok := range raw {
		tok = strings.TrimSpace(tok)
		if strings.EqualFold(tok, "inf") || strings.EqualFold(tok, ".inf") {
			b[i] = math.Inf(1)
			continue
		}
		f, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return errorutil.NewWithTag("declare4py", fmt.Sprintf("invalid activation bound %q", tok))
		}
		b[i] = f
	}
	return nil
}

// MarshalYAML renders both bounds as strings: +Inf as "inf" and everything
// else in its shortest decimal form, which UnmarshalYAML reads back.
func (b ActivationBound) MarshalYAML() (interface{}, error) {
	out := make([]string, 2)
	for i, v := range b {
		if math.IsInf(v, 1) {
			out[i] = "inf"
			continue
		}
		out[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return out, nil
}

// GeneratorConfig is the YAML-backed configuration surface for the
// synthetic-log generator, loaded the way alterx.Config is loaded from
// alterx's config.yaml.
type GeneratorConfig struct {
	NumTraces             int                        `yaml:"num_traces"`
	MinEvent              int                        `yaml:"min_event"`
	MaxEvent              int                        `yaml:"max_event"`
	DistributorType       string                     `yaml:"distributor_type"`
	CustomProbabilities   []float64                  `yaml:"custom_probabilities,omitempty"`
	Loc                   float64                    `yaml:"loc,omitempty"`
	Scale                 float64                    `yaml:"scale,omitempty"`
	EncodeDeclModel       bool                       `yaml:"encode_decl_model"`
	NegativeTraces        int                        `yaml:"negative_traces"`
	ViolateAllConstraints bool                       `yaml:"violate_all_constraints"`
	ViolatableConstraints []string                   `yaml:"violatable_constraints,omitempty"`
	ActivationConditions  map[string]ActivationBound `yaml:"activation_conditions,omitempty"`
	RepetitionsPerTrace   int                        `yaml:"repetitions_per_trace"`
}

// NewGeneratorConfig reads a GeneratorConfig from filePath, grounded on
// alterx's NewConfig.
func NewGeneratorConfig(filePath string) (*GeneratorConfig, error) {
	bin, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	var cfg GeneratorConfig
	if err = yaml.Unmarshal(bin, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// GenerateSampleConfig writes a sample GeneratorConfig with default/sample
// values to filePath, grounded on alterx's GenerateSample.
func GenerateSampleConfig(filePath string) error {
	cfg := GeneratorConfig{
		NumTraces:       100,
		MinEvent:        3,
		MaxEvent:        10,
		DistributorType: "uniform",
		NegativeTraces:  0,
	}
	bin, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(filePath, bin, 0644)
}

// Validate rejects inconsistent configuration before any solver work is
// attempted.
func (c *GeneratorConfig) Validate() error {
	if c.NumTraces < 0 {
		return ConfigError{Field: "num_traces", Reason: "must be >= 0"}
	}
	if c.MinEvent < 1 || c.MinEvent > c.MaxEvent {
		return ConfigError{Field: "min_event/max_event", Reason: "require 1 <= min_event <= max_event"}
	}
	if c.NegativeTraces < 0 || c.NegativeTraces > c.NumTraces {
		return ConfigError{Field: "negative_traces", Reason: "require 0 <= negative_traces <= num_traces"}
	}
	dt, err := ParseDistributorType(c.DistributorType)
	if err != nil {
		return err
	}
	if dt == DistributorGaussian {
		if c.Loc <= 1 {
			return ConfigError{Field: "loc", Reason: "required and must be > 1 when distributor_type=gaussian"}
		}
		if c.Scale < 0 {
			return ConfigError{Field: "scale", Reason: "required and must be >= 0 when distributor_type=gaussian"}
		}
	}
	if dt == DistributorCustom && len(c.CustomProbabilities) == 0 {
		return ConfigError{Field: "custom_probabilities", Reason: "required when distributor_type=custom"}
	}
	if c.RepetitionsPerTrace < 0 {
		return ConfigError{Field: "repetitions_per_trace", Reason: "must be >= 0"}
	}
	for rawLine, bound := range c.ActivationConditions {
		if bound.Lo() < 0 {
			return ConfigError{Field: "activation_conditions[" + rawLine + "]", Reason: "lower bound must be >= 0"}
		}
		if bound.Hi() < bound.Lo() {
			return ConfigError{Field: "activation_conditions[" + rawLine + "]", Reason: "upper bound must be >= lower bound"}
		}
	}
	return nil
}

// Distribution projects the generator-facing fields into a
// DistributionConfig for the positive-pass histogram (total = NumTraces -
// NegativeTraces) or the negative-pass histogram (total = NegativeTraces).
func (c *GeneratorConfig) Distribution(total int) (DistributionConfig, error) {
	dt, err := ParseDistributorType(c.DistributorType)
	if err != nil {
		return DistributionConfig{}, err
	}
	return DistributionConfig{
		MinEvents:           c.MinEvent,
		MaxEvents:           c.MaxEvent,
		TotalTraces:         total,
		Type:                dt,
		CustomProbabilities: c.CustomProbabilities,
		Loc:                 c.Loc,
		Scale:               c.Scale,
	}, nil
}

func getUserHomeDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return homeDir
}
