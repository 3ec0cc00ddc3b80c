package runner

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
	"github.com/projectdiscovery/gologger"
	fileutil "github.com/projectdiscovery/utils/file"
)

// RunnerDefaults is the persisted set of CLI defaults, read from
// runner_<version>.yaml or seeded there with the built-in values on first
// run (values used on the command line are not written back), grounded on
// alterx's own runner-local permutation_<version>.yaml
// bootstrap (internal/runner/config.go's init): a small YAML sidecar,
// loaded with a different codec (goccy/go-yaml) than the generator's own
// GeneratorConfig (gopkg.in/yaml.v3), exactly as alterx splits its
// two config layers.
type RunnerDefaults struct {
	SolverBinary string  `yaml:"solver_binary"`
	RandFreq     float64 `yaml:"rand_freq"`
}

// DefaultRunnerDefaults mirrors alterx.DefaultConfig: a package-level
// variable the init() below populates from disk (or seeds on first run).
var DefaultRunnerDefaults = RunnerDefaults{
	SolverBinary: "clingo",
	RandFreq:     0.9,
}

func getUserHomeDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		panic(err)
	}
	return homeDir
}

func defaultsPath() string {
	return filepath.Join(getUserHomeDir(), fmt.Sprintf(".config/declare4py/runner_%v.yaml", version))
}

func init() {
	path := defaultsPath()
	if fileutil.FileExists(path) {
		if bin, err := os.ReadFile(path); err == nil {
			var cfg RunnerDefaults
			if errx := yaml.Unmarshal(bin, &cfg); errx == nil {
				DefaultRunnerDefaults = cfg
				return
			}
			gologger.Error().Msgf("declare4py runner configuration syntax error.\n %v\n.", yaml.FormatError(err, true, true))
			return
		}
	}
	if err := validateDir(filepath.Join(getUserHomeDir(), ".config/declare4py")); err != nil {
		gologger.Error().Msgf("declare4py config dir not found and failed to create got: %v", err)
		return
	}
	bin, err := yaml.Marshal(DefaultRunnerDefaults)
	if err != nil {
		gologger.Error().Msgf("failed to render default runner config got: %v", err)
		return
	}
	if err := os.WriteFile(path, bin, 0600); err != nil {
		gologger.Error().Msgf("failed to save default config to %v got: %v", path, err)
	}
}

// validateDir checks if dir exists; if not, creates it.
func validateDir(dirPath string) error {
	if fileutil.FolderExists(dirPath) {
		return nil
	}
	return fileutil.CreateFolder(dirPath)
}
