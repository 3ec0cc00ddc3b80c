package runner

import (
	"io"
	"os"

	"github.com/projectdiscovery/goflags"
	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/gologger/levels"
	fileutil "github.com/projectdiscovery/utils/file"
)

// Options is the CLI-facing configuration surface, grounded on
// alterx's runner.Options: flag groups (input/generation/output/config)
// in place of alterx's (input/output/config/update), the generator
// domain's knobs replacing subdomain-permutation knobs.
type Options struct {
	// input
	ModelPath string // path to a Declare model file (or "-" for stdin)
	TracePath string // path to a log to conformance-check (check mode only)

	// generation
	Mode            string // "generate" or "check"
	GeneratorConfig string // path to a GeneratorConfig YAML file
	SolverBinary    string
	ConsiderVacuity bool

	// output
	Output   string
	Estimate bool
	Verbose  bool
	Silent   bool

	// config
	RunnerConfig string
}

func ParseFlags() *Options {
	opts := &Options{}
	flagSet := goflags.NewFlagSet()
	flagSet.SetDescription(`Declarative process mining toolkit: parse Declare models, generate synthetic event logs via Answer Set Programming, and check trace conformance.`)

	flagSet.CreateGroup("input", "Input",
		flagSet.StringVarP(&opts.ModelPath, "model", "m", "", "declare model file to parse (stdin if '-' or omitted with piped input)"),
		flagSet.StringVarP(&opts.TracePath, "trace", "t", "", "XES log file to conformance-check against the model (requires -mode check)"),
	)

	flagSet.CreateGroup("generation", "Generation",
		flagSet.StringVar(&opts.Mode, "mode", "generate", "operation to run: 'generate' or 'check'"),
		flagSet.StringVarP(&opts.GeneratorConfig, "gen-config", "gc", "", "generator config file (num_traces, min/max event, distribution, negative traces, ...)"),
		flagSet.StringVarP(&opts.SolverBinary, "solver", "s", DefaultRunnerDefaults.SolverBinary, "answer-set solver binary to invoke"),
		flagSet.BoolVarP(&opts.ConsiderVacuity, "vacuity", "vc", false, "surface vacuous satisfaction distinctly instead of folding it into SATISFIED"),
	)

	flagSet.CreateGroup("output", "Output",
		flagSet.BoolVarP(&opts.Estimate, "estimate", "es", false, "estimate the attribute-value combination count without invoking the solver"),
		flagSet.StringVarP(&opts.Output, "output", "o", "", "output file to write the generated XES log or conformance report to"),
		flagSet.BoolVarP(&opts.Verbose, "verbose", "v", false, "display verbose output"),
		flagSet.BoolVar(&opts.Silent, "silent", false, "display results only"),
		flagSet.CallbackVar(printVersion, "version", "display declare4py version"),
	)

	flagSet.CreateGroup("config", "Config",
		flagSet.StringVar(&opts.RunnerConfig, "config", "", `declare4py cli config file (default '$HOME/.config/declare4py/config.yaml')`),
	)

	if err := flagSet.Parse(); err != nil {
		gologger.Fatal().Msgf("Could not read flags: %s\n", err)
	}

	if opts.RunnerConfig != "" {
		if err := flagSet.MergeConfigFile(opts.RunnerConfig); err != nil {
			gologger.Error().Msgf("failed to read config file got %v", err)
		}
	}

	if opts.Silent {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelSilent)
	} else if opts.Verbose {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelVerbose)
	}
	showBanner()

	if opts.Mode != "generate" && opts.Mode != "check" {
		gologger.Fatal().Msgf("invalid mode: %s (must be 'generate' or 'check')", opts.Mode)
	}
	if opts.Mode == "check" && opts.TracePath == "" {
		gologger.Fatal().Msgf("-mode check requires -trace")
	}

	if opts.ModelPath == "" {
		if fileutil.HasStdin() {
			opts.ModelPath = "-"
		} else {
			gologger.Fatal().Msgf("declare4py: no model input found (use -model or pipe on stdin)")
		}
	} else if opts.ModelPath != "-" && !fileutil.FileExists(opts.ModelPath) {
		gologger.Fatal().Msgf("declare4py: model file %q not found", opts.ModelPath)
	}

	return opts
}

// ModelReader opens the configured model input, resolving "-"/stdin.
func (o *Options) ModelReader() (io.ReadCloser, error) {
	if o.ModelPath == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(o.ModelPath)
}

func printVersion() {
	gologger.Info().Msgf("Current version: %s", version)
	os.Exit(0)
}
