package asp

import (
	"bytes"
	"context"
	"fmt"
	"math/rand"
	"os/exec"
	"strings"

	errorutil "github.com/projectdiscovery/utils/errors"

	"github.com/projectdiscovery/gologger"
)

// AnswerSet is the raw result of one solver invocation: the set of shown
// ground atoms (e.g. "trace(a,1)", "assigned_value(grade,60,1)").
type AnswerSet struct {
	Satisfiable bool
	Atoms       []string
}

// Driver invokes an Answer-Set solver once per request and returns the
// shown atoms of its first model, mirroring pattern_provider.go's
// single-method PatternProvider interface shape: one strategy behind one
// interface, swappable for tests.
type Driver interface {
	// Solve runs the solver on program with the trace length bound to
	// length, returning the first model's shown atoms. ok is false on
	// UNSAT.
	Solve(ctx context.Context, program string, length int, seed uint32) (atoms []string, ok bool, err error)
}

// ExecDriver shells out to an external Answer-Set solver binary compatible
// with the flags asp_generator.py's __generate_asp_trace passes to clingo:
// `-c t=<length>`, `--project`, a model limit of 1, `--sign-def=rnd`,
// `--restart-on-model`, `--rand-freq=0.9`, and a fresh per-call seed.
type ExecDriver struct {
	BinaryPath string
	RandFreq   float64 // defaults to 0.9, matching the source
}

// NewExecDriver returns an ExecDriver invoking binaryPath with the
// spec-mandated default flags.
func NewExecDriver(binaryPath string) *ExecDriver {
	return &ExecDriver{BinaryPath: binaryPath, RandFreq: 0.9}
}

func (d *ExecDriver) Solve(ctx context.Context, program string, length int, seed uint32) ([]string, bool, error) {
	freq := d.RandFreq
	if freq == 0 {
		freq = 0.9
	}
	args := []string{
		"-c", fmt.Sprintf("t=%d", length),
		"--project",
		"1",
		fmt.Sprintf("--seed=%d", seed),
		"--sign-def=rnd",
		"--restart-on-model",
		fmt.Sprintf("--rand-freq=%v", freq),
	}
	cmd := exec.CommandContext(ctx, d.BinaryPath, args...)
	cmd.Stdin = strings.NewReader(program)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	// clingo-family solvers exit 20 on UNSAT and 10/30 on SAT; any other
	// failure is a genuine invocation failure (missing binary, malformed
	// program).
	if err != nil {
		code, isExit := asExitError(err)
		switch {
		case isExit && code == 20:
			return nil, false, nil
		case isExit && (code == 10 || code == 30):
			// SAT: the model is on stdout.
		default:
			return nil, false, errorutil.NewWithTag("declare4py", fmt.Sprintf("solver invocation failed: %v: %s", err, stderr.String()))
		}
	}
	atoms := parseShownAtoms(stdout.String())
	if len(atoms) == 0 {
		return nil, false, nil
	}
	return atoms, true, nil
}

func asExitError(err error) (int, bool) {
	type exitCoder interface{ ExitCode() int }
	if ec, ok := err.(exitCoder); ok {
		return ec.ExitCode(), true
	}
	return 0, false
}

// parseShownAtoms extracts the space-separated atom tokens from a solver's
// "Answer: N" model-line output convention.
func parseShownAtoms(output string) []string {
	var atoms []string
	lines := strings.Split(output, "\n")
	for i, line := range lines {
		if !strings.HasPrefix(strings.TrimSpace(line), "Answer:") {
			continue
		}
		if i+1 >= len(lines) {
			break
		}
		fields := strings.Fields(lines[i+1])
		atoms = append(atoms, fields...)
		break
	}
	return atoms
}

// NewSeed returns a fresh pseudo-random 32-bit solver seed, grounded on
// the source's `randrange(0, 2**32-1)` per-invocation reseed.
func NewSeed(rng *rand.Rand) uint32 {
	return rng.Uint32()
}

// PinTrace appends the `trace(A,T).` facts extracted from a base answer
// set to program as forced facts, producing the input for a variation
// invocation — grounded on __generate_asp_trace's
// `asp_variation = asp + "\n"; for ev in c.events: asp_variation += f"trace({ev.name}, {ev.pos})."`.
func PinTrace(program string, traceAtoms []string) string {
	var b strings.Builder
	b.WriteString(program)
	b.WriteByte('\n')
	for _, atom := range traceAtoms {
		if strings.HasPrefix(atom, "trace(") {
			fmt.Fprintf(&b, "%s.\n", atom)
		}
	}
	return b.String()
}

var _ Driver = (*ExecDriver)(nil)

// warnUnsat logs a SolverUnsatisfiable warning for a skipped
// (length, index) slot.
func warnUnsat(length, index int) {
	gologger.Warning().Msgf("solver returned UNSAT for length=%d index=%d, skipping slot", length, index)
}
