package main

import (
	"context"
	"fmt"
	"os"

	declare4py "github.com/jonghyeonk/declare4py"
	"github.com/jonghyeonk/declare4py/asp"
	"github.com/jonghyeonk/declare4py/checker"
	"github.com/jonghyeonk/declare4py/generator"
	"github.com/jonghyeonk/declare4py/internal/runner"
	"github.com/jonghyeonk/declare4py/xeslog"
	"github.com/projectdiscovery/gologger"
)

func main() {
	opts := runner.ParseFlags()

	r, err := opts.ModelReader()
	if err != nil {
		gologger.Fatal().Msgf("failed to open model %q: %v", opts.ModelPath, err)
	}
	model, err := declare4py.NewParser().Parse(r)
	r.Close()
	if err != nil {
		gologger.Fatal().Msgf("failed to parse model: %v", err)
	}

	switch opts.Mode {
	case "check":
		runCheck(opts, model)
	default:
		runGenerate(opts, model)
	}
}

func runCheck(opts *runner.Options, model *declare4py.ParsedModel) {
	f, err := os.Open(opts.TracePath)
	if err != nil {
		gologger.Fatal().Msgf("failed to open trace log %q: %v", opts.TracePath, err)
	}
	defer f.Close()

	traces, err := xeslog.Read(f)
	if err != nil {
		gologger.Fatal().Msgf("failed to read trace log: %v", err)
	}

	out := outputWriter(opts.Output)
	defer closeOutput(out, opts.Output)

	c := checker.New()
	for i := range traces {
		trace := traces[i]
		verdicts := c.Check(&trace, model, opts.ConsiderVacuity)
		for _, t := range model.Templates {
			v, ok := verdicts[t.RawLine]
			if !ok {
				continue
			}
			fmt.Fprintf(out, "%s: %s -> %s\n", trace.Name, t.RawLine, v)
		}
	}
}

func runGenerate(opts *runner.Options, model *declare4py.ParsedModel) {
	if opts.Estimate {
		gologger.Info().Msgf("Estimated attribute-value combinations: %v", declare4py.EstimateAttributeCombinations(model.Attributes))
		return
	}

	cfg := &declare4py.GeneratorConfig{
		NumTraces:       100,
		MinEvent:        3,
		MaxEvent:        10,
		DistributorType: "uniform",
	}
	if opts.GeneratorConfig != "" {
		loaded, err := declare4py.NewGeneratorConfig(opts.GeneratorConfig)
		if err != nil {
			gologger.Fatal().Msgf("failed to read generator config %q: %v", opts.GeneratorConfig, err)
		}
		cfg = loaded
	}

	gen, err := generator.New(&generator.Options{
		Model:  model,
		Config: cfg,
		Driver: asp.NewExecDriver(opts.SolverBinary),
	})
	if err != nil {
		gologger.Fatal().Msgf("invalid generator configuration: %v", err)
	}

	result, err := gen.Run(context.Background())
	if err != nil {
		gologger.Fatal().Msgf("generation failed: %v", err)
	}
	gologger.Info().Msgf("generated %d/%d requested traces in %s", result.Got, result.Requested, gen.Time())

	out := outputWriter(opts.Output)
	defer closeOutput(out, opts.Output)
	if err := xeslog.Write(out, result.Traces); err != nil {
		gologger.Error().Msgf("failed to write output log: %v", err)
	}
}

func outputWriter(path string) *os.File {
	if path == "" {
		return os.Stdout
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		gologger.Fatal().Msgf("failed to open output file %v got %v", path, err)
	}
	return f
}

func closeOutput(f *os.File, path string) {
	if path != "" {
		f.Close()
	}
}
