// Package checker implements the per-template conformance verdict engine:
// given a trace and a parsed Declare model, it returns a map from each
// template's RawLine to a Verdict, handling activation and correlation
// predicates plus vacuity. The time condition (Conditions[2]) is not
// evaluated: it is neither parsed nor checked against event timestamps.
package checker

import (
	"github.com/jonghyeonk/declare4py"
	"github.com/jonghyeonk/declare4py/condition"
	"github.com/projectdiscovery/gologger"
)

// Checker holds the per-run state needed to dedupe malformed-predicate
// logging, grounded on api_functions.py's check_trace_conformance, which
// keeps an `error_constraint_set` across the whole trace so a given
// raw_line's syntax error is only ever printed once.
type Checker struct {
	warned map[string]bool
}

// New returns a ready-to-use Checker.
func New() *Checker {
	return &Checker{warned: map[string]bool{}}
}

// Check evaluates every template in model against trace and returns a map
// from RawLine to Verdict. Templates whose conditions fail to parse are
// omitted from the result (logged once per distinct RawLine).
func (c *Checker) Check(trace *declare4py.Trace, model *declare4py.ParsedModel, considerVacuity bool) map[string]declare4py.Verdict {
	results := make(map[string]declare4py.Verdict, len(model.Templates))
	for _, t := range model.Templates {
		activation, err := condition.Parse(t.Activation())
		if err != nil {
			c.warnOnce(t.RawLine, err)
			continue
		}
		var correlation *condition.Expr
		if t.Kind.IsBinary() {
			correlation, err = condition.Parse(t.Correlation())
			if err != nil {
				c.warnOnce(t.RawLine, err)
				continue
			}
		}
		results[t.RawLine] = verdictFor(t, trace, activation, correlation, considerVacuity)
	}
	return results
}

func (c *Checker) warnOnce(rawLine string, err error) {
	if c.warned[rawLine] {
		return
	}
	c.warned[rawLine] = true
	gologger.Warning().Msgf("%v", err)
}

func vacuous(considerVacuity bool) declare4py.Verdict {
	if considerVacuity {
		return declare4py.VacuouslySatisfied
	}
	return declare4py.Satisfied
}

func boolVerdict(ok bool) declare4py.Verdict {
	if ok {
		return declare4py.Satisfied
	}
	return declare4py.Violated
}

// matches reports whether an event's activity equals name and, if cond is
// non-nil, also satisfies cond.
func matches(ev declare4py.Event, name string, cond *condition.Expr) bool {
	return ev.Activity == name && condition.Eval(cond, ev)
}

func verdictFor(t *declare4py.Template, trace *declare4py.Trace, activation, correlation *condition.Expr, considerVacuity bool) declare4py.Verdict {
	a := t.Activities[0]
	events := trace.Events

	switch t.Kind {
	case declare4py.Existence:
		return boolVerdict(countMatching(events, a, activation) >= t.Cardinality)
	case declare4py.Absence:
		return boolVerdict(countMatching(events, a, activation) < t.Cardinality)
	case declare4py.Exactly:
		return boolVerdict(countMatching(events, a, activation) == t.Cardinality)
	case declare4py.Init:
		if len(events) == 0 {
			return vacuous(considerVacuity)
		}
		return boolVerdict(matches(events[0], a, activation))
	}

	b := ""
	if len(t.Activities) > 1 {
		b = t.Activities[1]
	}

	switch t.Kind {
	case declare4py.Choice:
		return boolVerdict(anyMatch(events, a, activation) || anyMatch(events, b, correlation))
	case declare4py.ExclusiveChoice:
		hasA := anyMatch(events, a, activation)
		hasB := anyMatch(events, b, correlation)
		return boolVerdict(hasA != hasB)
	case declare4py.RespondedExistence:
		if !anyMatch(events, a, activation) {
			return vacuous(considerVacuity)
		}
		return boolVerdict(anyMatch(events, b, correlation))
	case declare4py.Response:
		return checkResponse(events, a, b, activation, correlation, considerVacuity)
	case declare4py.AlternateResponse:
		return checkAlternateResponse(events, a, b, activation, correlation, considerVacuity)
	case declare4py.ChainResponse:
		return checkChainResponse(events, a, b, activation, correlation, considerVacuity)
	case declare4py.Precedence:
		return checkPrecedence(events, a, b, activation, correlation, considerVacuity)
	case declare4py.AlternatePrecedence:
		return checkAlternatePrecedence(events, a, b, activation, correlation, considerVacuity)
	case declare4py.ChainPrecedence:
		return checkChainPrecedence(events, a, b, activation, correlation, considerVacuity)
	case declare4py.NotRespondedExistence:
		if !anyMatch(events, a, activation) {
			return vacuous(considerVacuity)
		}
		return boolVerdict(!anyMatch(events, b, correlation))
	case declare4py.NotResponse:
		return checkNotResponse(events, a, b, activation, correlation, considerVacuity)
	case declare4py.NotChainResponse:
		return checkNotChainResponse(events, a, b, activation, correlation, considerVacuity)
	case declare4py.NotPrecedence:
		return checkNotPrecedence(events, a, b, activation, correlation, considerVacuity)
	case declare4py.NotChainPrecedence:
		return checkNotChainPrecedence(events, a, b, activation, correlation, considerVacuity)
	default:
		return declare4py.Violated
	}
}

func countMatching(events []declare4py.Event, name string, cond *condition.Expr) int {
	n := 0
	for _, ev := range events {
		if matches(ev, name, cond) {
			n++
		}
	}
	return n
}

func anyMatch(events []declare4py.Event, name string, cond *condition.Expr) bool {
	return countMatching(events, name, cond) > 0
}

// checkResponse: every activation a must be followed by a later
// correlation-matching b.
func checkResponse(events []declare4py.Event, a, b string, activation, correlation *condition.Expr, considerVacuity bool) declare4py.Verdict {
	seenActivation := false
	for i, ev := range events {
		if !matches(ev, a, activation) {
			continue
		}
		seenActivation = true
		if !laterMatch(events, i, b, correlation) {
			return declare4py.Violated
		}
	}
	if !seenActivation {
		return vacuous(considerVacuity)
	}
	return declare4py.Satisfied
}

// checkAlternateResponse: between any two consecutive a's there is a b, and
// the last a is followed by a b.
func checkAlternateResponse(events []declare4py.Event, a, b string, activation, correlation *condition.Expr, considerVacuity bool) declare4py.Verdict {
	positions := matchingPositions(events, a, activation)
	if len(positions) == 0 {
		return vacuous(considerVacuity)
	}
	for k, p := range positions {
		upper := len(events)
		if k+1 < len(positions) {
			upper = positions[k+1]
		}
		if !existsMatchBetween(events, p+1, upper, b, correlation) {
			return declare4py.Violated
		}
	}
	return declare4py.Satisfied
}

// checkChainResponse: every a is immediately followed by a b.
func checkChainResponse(events []declare4py.Event, a, b string, activation, correlation *condition.Expr, considerVacuity bool) declare4py.Verdict {
	seenActivation := false
	for i, ev := range events {
		if !matches(ev, a, activation) {
			continue
		}
		seenActivation = true
		if i+1 >= len(events) || !matches(events[i+1], b, correlation) {
			return declare4py.Violated
		}
	}
	if !seenActivation {
		return vacuous(considerVacuity)
	}
	return declare4py.Satisfied
}

// checkPrecedence: every b must be preceded somewhere earlier by an a.
func checkPrecedence(events []declare4py.Event, a, b string, activation, correlation *condition.Expr, considerVacuity bool) declare4py.Verdict {
	seenTarget := false
	for i, ev := range events {
		if !matches(ev, b, correlation) {
			continue
		}
		seenTarget = true
		if !earlierMatch(events, i, a, activation) {
			return declare4py.Violated
		}
	}
	if !seenTarget {
		return vacuous(considerVacuity)
	}
	return declare4py.Satisfied
}

// checkAlternatePrecedence: between any two consecutive b's there is an a,
// and the first b is preceded by an a.
func checkAlternatePrecedence(events []declare4py.Event, a, b string, activation, correlation *condition.Expr, considerVacuity bool) declare4py.Verdict {
	positions := matchingPositions(events, b, correlation)
	if len(positions) == 0 {
		return vacuous(considerVacuity)
	}
	for k, p := range positions {
		lower := -1
		if k > 0 {
			lower = positions[k-1]
		}
		if !existsMatchBetween(events, lower+1, p, a, activation) {
			return declare4py.Violated
		}
	}
	return declare4py.Satisfied
}

// checkChainPrecedence: every b must be immediately preceded by an a.
func checkChainPrecedence(events []declare4py.Event, a, b string, activation, correlation *condition.Expr, considerVacuity bool) declare4py.Verdict {
	seenTarget := false
	for i, ev := range events {
		if !matches(ev, b, correlation) {
			continue
		}
		seenTarget = true
		if i == 0 || !matches(events[i-1], a, activation) {
			return declare4py.Violated
		}
	}
	if !seenTarget {
		return vacuous(considerVacuity)
	}
	return declare4py.Satisfied
}

func checkNotResponse(events []declare4py.Event, a, b string, activation, correlation *condition.Expr, considerVacuity bool) declare4py.Verdict {
	seenActivation := false
	for i, ev := range events {
		if !matches(ev, a, activation) {
			continue
		}
		seenActivation = true
		if laterMatch(events, i, b, correlation) {
			return declare4py.Violated
		}
	}
	if !seenActivation {
		return vacuous(considerVacuity)
	}
	return declare4py.Satisfied
}

func checkNotChainResponse(events []declare4py.Event, a, b string, activation, correlation *condition.Expr, considerVacuity bool) declare4py.Verdict {
	seenActivation := false
	for i, ev := range events {
		if !matches(ev, a, activation) {
			continue
		}
		seenActivation = true
		if i+1 < len(events) && matches(events[i+1], b, correlation) {
			return declare4py.Violated
		}
	}
	if !seenActivation {
		return vacuous(considerVacuity)
	}
	return declare4py.Satisfied
}

func checkNotPrecedence(events []declare4py.Event, a, b string, activation, correlation *condition.Expr, considerVacuity bool) declare4py.Verdict {
	seenTarget := false
	for i, ev := range events {
		if !matches(ev, b, correlation) {
			continue
		}
		seenTarget = true
		if earlierMatch(events, i, a, activation) {
			return declare4py.Violated
		}
	}
	if !seenTarget {
		return vacuous(considerVacuity)
	}
	return declare4py.Satisfied
}

func checkNotChainPrecedence(events []declare4py.Event, a, b string, activation, correlation *condition.Expr, considerVacuity bool) declare4py.Verdict {
	seenTarget := false
	for i, ev := range events {
		if !matches(ev, b, correlation) {
			continue
		}
		seenTarget = true
		if i > 0 && matches(events[i-1], a, activation) {
			return declare4py.Violated
		}
	}
	if !seenTarget {
		return vacuous(considerVacuity)
	}
	return declare4py.Satisfied
}

func laterMatch(events []declare4py.Event, from int, name string, cond *condition.Expr) bool {
	for i := from + 1; i < len(events); i++ {
		if matches(events[i], name, cond) {
			return true
		}
	}
	return false
}

func earlierMatch(events []declare4py.Event, upto int, name string, cond *condition.Expr) bool {
	for i := 0; i < upto; i++ {
		if matches(events[i], name, cond) {
			return true
		}
	}
	return false
}

func existsMatchBetween(events []declare4py.Event, from, to int, name string, cond *condition.Expr) bool {
	if from < 0 {
		from = 0
	}
	if to > len(events) {
		to = len(events)
	}
	for i := from; i < to; i++ {
		if matches(events[i], name, cond) {
			return true
		}
	}
	return false
}

func matchingPositions(events []declare4py.Event, name string, cond *condition.Expr) []int {
	var out []int
	for i, ev := range events {
		if matches(ev, name, cond) {
			out = append(out, i)
		}
	}
	return out
}
