// Package condition implements the small boolean predicate grammar used by
// the conformance checker for per-event activation/correlation gating (the
// ASP translator does not evaluate condition strings):
//
//	expr       := term (("and" | "or") term)*
//	term       := "not" term | "(" expr ")" | comparison
//	comparison := "A." IDENT op value
//	op         := "==" | "!=" | "<=" | "<" | ">=" | ">" | "in" | "is"
//	value      := literal | "{" literal ("," literal)* "}"
//
// A blank condition string is always true (the template is unconditional).
package condition

import (
	"fmt"
	"strconv"
	"strings"
)

// Op is the closed set of comparison operators the grammar supports.
type Op int

const (
	OpEq Op = iota
	OpNeq
	OpLt
	OpLte
	OpGt
	OpGte
	OpIn
	OpIs
)

// Comparison is a leaf predicate `A.<Attr> <Op> <Literal(s)>`.
type Comparison struct {
	Attr     string
	Op       Op
	Literal  string   // meaningful for Eq/Neq/Lt/Lte/Gt/Gte/Is
	Literals []string // meaningful for In
}

// Expr is the closed AST of the predicate grammar.
type Expr struct {
	// Exactly one of Leaf, Not, or (Left/Right with a binary operator) is set.
	Leaf  *Comparison
	Not   *Expr
	Left  *Expr
	Right *Expr
	IsOr  bool // only meaningful when Left/Right are both set: true=or, false=and
}

// Empty reports whether the expression is the always-true empty condition.
func (e *Expr) Empty() bool { return e == nil }

// ParseError is returned for any condition string that does not conform to
// the grammar; the caller (checker/translator) logs this once per distinct
// raw_line and excludes the constraint from that trace's verdict map.
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("condition syntax error in %q: %s", e.Input, e.Reason)
}

// Parse compiles a condition string. An empty (or whitespace-only) string
// parses to a nil *Expr, which Eval always satisfies.
func Parse(input string) (*Expr, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return nil, nil
	}
	toks, err := tokenize(trimmed)
	if err != nil {
		return nil, &ParseError{Input: input, Reason: err.Error()}
	}
	p := &parser{toks: toks}
	expr, err := p.parseOr()
	if err != nil {
		return nil, &ParseError{Input: input, Reason: err.Error()}
	}
	if p.pos != len(p.toks) {
		return nil, &ParseError{Input: input, Reason: "unexpected trailing tokens"}
	}
	return expr, nil
}

// Event is the minimal view of a trace event the evaluator needs: an
// attribute-name to value lookup.
type Event interface {
	Attribute(name string) (string, bool)
}

// Eval evaluates the expression against an event. A nil expression (the
// empty condition) is always true.
func Eval(e *Expr, ev Event) bool {
	if e == nil {
		return true
	}
	if e.Leaf != nil {
		return evalComparison(e.Leaf, ev)
	}
	if e.Not != nil {
		return !Eval(e.Not, ev)
	}
	if e.IsOr {
		return Eval(e.Left, ev) || Eval(e.Right, ev)
	}
	return Eval(e.Left, ev) && Eval(e.Right, ev)
}

func evalComparison(c *Comparison, ev Event) bool {
	val, ok := ev.Attribute(c.Attr)
	if !ok {
		return false
	}
	switch c.Op {
	case OpEq, OpIs:
		return compareEqual(val, c.Literal)
	case OpNeq:
		return !compareEqual(val, c.Literal)
	case OpIn:
		for _, lit := range c.Literals {
			if compareEqual(val, lit) {
				return true
			}
		}
		return false
	case OpLt, OpLte, OpGt, OpGte:
		lv, lok := strconv.ParseFloat(val, 64)
		rv, rok := strconv.ParseFloat(c.Literal, 64)
		if !lok || !rok {
			return false
		}
		switch c.Op {
		case OpLt:
			return lv < rv
		case OpLte:
			return lv <= rv
		case OpGt:
			return lv > rv
		default:
			return lv >= rv
		}
	default:
		return false
	}
}

func compareEqual(a, b string) bool {
	if av, aok := strconv.ParseFloat(a, 64); aok {
		if bv, bok := strconv.ParseFloat(b, 64); bok {
			return av == bv
		}
	}
	return a == b
}
