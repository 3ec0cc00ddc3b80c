package declare4py

import "fmt"

// ConfigError reports an invalid generator configuration, caught before any
// solver work is attempted: e.g. min_event > max_event,
// negative_traces > num_traces, missing gaussian parameters.
type ConfigError struct {
	Field  string
	Reason string
}

func (e ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration for %q: %s", e.Field, e.Reason)
}

// SolverUnsatisfiable reports that a solver invocation for a given
// (length, index) slot returned UNSAT. This is logged as a
// warning and the slot is skipped; the overall run continues, so this type
// is never propagated across the generator's public API — it exists so the
// solver driver and generator can exchange the fact internally and in
// tests.
type SolverUnsatisfiable struct {
	Length int
	Index  int
}

func (e SolverUnsatisfiable) Error() string {
	return fmt.Sprintf("solver returned UNSAT for length=%d index=%d", e.Length, e.Index)
}

// ConditionSyntaxError reports that a constraint's activation, correlation,
// or time predicate failed to parse at check time. Logged
// once per distinct RawLine; the constraint is omitted from that trace's
// verdict map.
type ConditionSyntaxError struct {
	RawLine string
	Reason  string
}

func (e ConditionSyntaxError) Error() string {
	return fmt.Sprintf("condition syntax error in %q: %s", e.RawLine, e.Reason)
}
