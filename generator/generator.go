// Package generator orchestrates the distribution planner, ASP translator,
// solver driver, and result lifter into end-to-end log generation. Shaped on
// mutator.go's Mutator/Options (Validate -> New -> context-cancellable
// Run, goroutine fan-in, atomic timing), generalized from
// combinatorial string generation to ASP-backed trace generation.
package generator

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	declare4py "github.com/jonghyeonk/declare4py"
	"github.com/jonghyeonk/declare4py/asp"
	"github.com/jonghyeonk/declare4py/internal/dedupe"
	"github.com/projectdiscovery/gologger"
	errorutil "github.com/projectdiscovery/utils/errors"
)

// Options configures a generation run.
type Options struct {
	// Model is the positive-pass model; the negative pass operates on a
	// Clone with `violate` flipped per Config.
	Model *declare4py.ParsedModel
	// Config carries num_traces, the distribution shape, and the
	// negative/violation knobs.
	Config *declare4py.GeneratorConfig
	// Driver invokes the solver. Required; tests inject a fake.
	Driver asp.Driver
	// Rand seeds solver invocations and the distribution planner. A
	// default source is used when nil.
	Rand *rand.Rand
}

func (o *Options) Validate() error {
	if o.Model == nil {
		return errorutil.New("generator: model is required")
	}
	if o.Driver == nil {
		return errorutil.New("generator: solver driver is required")
	}
	if o.Config == nil {
		return errorutil.New("generator: config is required")
	}
	if err := o.Config.Validate(); err != nil {
		return err
	}
	if o.Rand == nil {
		o.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return nil
}

// Result is the outcome of one generation run.
type Result struct {
	Traces    []declare4py.Trace
	Requested int // cfg.NumTraces * max(1, repetitions_per_trace)
	Got       int // len(Traces)
}

// Generator drives a single generation run end to end.
type Generator struct {
	Options *Options

	seedMu    sync.Mutex
	timeTaken int64 // atomic nanoseconds
}

// New validates opts and returns a ready Generator.
func New(opts *Options) (*Generator, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Generator{Options: opts}, nil
}

// Time returns how long the most recent Run took.
func (g *Generator) Time() string {
	return fmt.Sprintf("%.4fs", time.Duration(atomic.LoadInt64(&g.timeTaken)).Seconds())
}

func (g *Generator) nextSeed() uint32 {
	g.seedMu.Lock()
	defer g.seedMu.Unlock()
	return asp.NewSeed(g.Options.Rand)
}

// baseTrace is one accepted (length, index) slot awaiting lift and variation
// expansion.
type baseTrace struct {
	atoms  []string
	length int
	label  string
}

// Run executes the positive and negative passes, producing traces named
// trace_<i> (base) and trace_<i>_variation_<j> (j = 1..repetitions-1),
// sorted by name before being returned for deterministic ordering
// regardless of goroutine completion order. Cancellation discards partial
// results.
func (g *Generator) Run(ctx context.Context) (*Result, error) {
	now := time.Now()
	cfg := g.Options.Config
	repetitions := cfg.RepetitionsPerTrace
	if repetitions < 1 {
		repetitions = 1
	}

	positiveTotal := cfg.NumTraces - cfg.NegativeTraces
	negativeTotal := cfg.NegativeTraces

	positiveHist, err := distributionFor(cfg, positiveTotal)
	if err != nil {
		return nil, err
	}
	negativeHist, err := distributionFor(cfg, negativeTotal)
	if err != nil {
		return nil, err
	}

	tr := asp.NewTranslator()
	tr.ActivationConditions = cfg.ActivationConditions
	positiveProgram := tr.Translate(g.Options.Model)

	negativeModel := negativeModelFor(g.Options.Model, cfg)
	negativeProgram := tr.Translate(negativeModel)

	var mu sync.Mutex
	var bases []baseTrace
	var wg sync.WaitGroup

	launch := func(program string, length, count int, label string) {
		for i := 0; i < count; i++ {
			wg.Add(1)
			go func(index int) {
				defer wg.Done()
				select {
				case <-ctx.Done():
					return
				default:
				}
				atoms, ok, err := g.Options.Driver.Solve(ctx, program, length, g.nextSeed())
				if err != nil {
					gologger.Error().Msgf("generator: solver invocation failed for length=%d index=%d: %v", length, index, err)
					return
				}
				if !ok {
					gologger.Warning().Msgf("%v, skipping slot", declare4py.SolverUnsatisfiable{Length: length, Index: index})
					return
				}
				mu.Lock()
				bases = append(bases, baseTrace{atoms: atoms, length: length, label: label})
				mu.Unlock()
			}(i)
		}
	}

	for length, count := range positiveHist {
		launch(positiveProgram, length, count, "positive")
	}
	for length, count := range negativeHist {
		launch(negativeProgram, length, count, "negative")
	}
	wg.Wait()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	traces := g.expandAndLift(ctx, bases, repetitions)
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	sort.Slice(traces, func(i, j int) bool { return traces[i].Name < traces[j].Name })

	atomic.StoreInt64(&g.timeTaken, int64(time.Since(now)))

	requested := cfg.NumTraces * repetitions
	if len(traces) != requested {
		gologger.Warning().Msgf("generator: produced %d/%d requested traces", len(traces), requested)
	}
	return &Result{Traces: traces, Requested: requested, Got: len(traces)}, nil
}

// expandAndLift lifts each base trace and, when repetitions > 1, pins its
// trace/2 facts and re-solves r-1 additional times to produce variations.
// Variation generation is sequential per base trace.
func (g *Generator) expandAndLift(ctx context.Context, bases []baseTrace, repetitions int) []declare4py.Trace {
	model := g.Options.Model
	seen := dedupe.NewBackend(len(bases) * repetitions)
	defer seen.Cleanup()

	stamp := isoClock()
	clock := func() string { return stamp }

	var traces []declare4py.Trace
	for i, base := range bases {
		fingerprint := fingerprintOf(base.atoms)
		seen.Upsert(fingerprint)

		traces = append(traces, asp.Lift(base.atoms, model, fmt.Sprintf("trace_%d", i), base.label, clock))

		for j := 1; j < repetitions; j++ {
			select {
			case <-ctx.Done():
				return traces
			default:
			}
			variationAtoms, ok := g.solveVariation(ctx, base)
			if !ok {
				continue
			}
			fp := fingerprintOf(variationAtoms)
			var dup bool
			seen.IterCallback(func(elem string) {
				if elem == fp {
					dup = true
				}
			})
			if dup {
				continue
			}
			seen.Upsert(fp)
			name := fmt.Sprintf("trace_%d_variation_%d", i, j)
			traces = append(traces, asp.Lift(variationAtoms, model, name, base.label, clock))
		}
	}
	return traces
}

func (g *Generator) solveVariation(ctx context.Context, base baseTrace) ([]string, bool) {
	tr := asp.NewTranslator()
	tr.ActivationConditions = g.Options.Config.ActivationConditions
	model := g.Options.Model
	if base.label == "negative" {
		model = negativeModelFor(g.Options.Model, g.Options.Config)
	}
	program := asp.PinTrace(tr.Translate(model), base.atoms)
	atoms, ok, err := g.Options.Driver.Solve(ctx, program, base.length, g.nextSeed())
	if err != nil {
		gologger.Error().Msgf("generator: variation solve failed: %v", err)
		return nil, false
	}
	return atoms, ok
}

func distributionFor(cfg *declare4py.GeneratorConfig, total int) (map[int]int, error) {
	dist, err := cfg.Distribution(total)
	if err != nil {
		return nil, err
	}
	return declare4py.ComputeDistribution(dist)
}

// negativeModelFor clones model and flips Violate per cfg.ViolateAllConstraints
// / cfg.ViolatableConstraints to produce the negative-pass model.
func negativeModelFor(model *declare4py.ParsedModel, cfg *declare4py.GeneratorConfig) *declare4py.ParsedModel {
	clone := model.Clone()
	violatable := map[string]bool{}
	for _, raw := range cfg.ViolatableConstraints {
		violatable[strings.TrimSpace(raw)] = true
	}
	for _, t := range clone.Templates {
		if cfg.ViolateAllConstraints || violatable[t.RawLine] {
			t.Violate = true
		}
	}
	return clone
}

func fingerprintOf(atoms []string) string {
	sorted := append([]string(nil), atoms...)
	sort.Strings(sorted)
	return strings.Join(sorted, "|")
}

// isoClock formats the current wall-clock time as ISO-8601. expandAndLift
// calls it once per run, so every lifted event shares one timestamp.
func isoClock() string {
	return time.Now().Format("2006-01-02T15:04:05-07:00")
}
