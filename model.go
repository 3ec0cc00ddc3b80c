// Package declare4py implements a declarative process-mining toolkit for the
// Declare constraint language: parsing Declare models, generating synthetic
// event logs by reduction to Answer Set Programming, and checking trace
// conformance against a parsed model.
package declare4py

import (
	"fmt"
	"sort"
	"strings"
)

// ValueType is the closed enumeration of attribute value domains.
type ValueType int

const (
	// ValueTypeUnknown is the zero value; never produced by the parser.
	ValueTypeUnknown ValueType = iota
	ValueTypeInteger
	ValueTypeFloat
	ValueTypeIntegerRange
	ValueTypeFloatRange
	ValueTypeEnumeration
)

func (v ValueType) String() string {
	switch v {
	case ValueTypeInteger:
		return "integer"
	case ValueTypeFloat:
		return "float"
	case ValueTypeIntegerRange:
		return "integer_range"
	case ValueTypeFloatRange:
		return "float_range"
	case ValueTypeEnumeration:
		return "enumeration"
	default:
		return "unknown"
	}
}

// IsRange reports whether the value type carries (lower, upper, precision).
func (v ValueType) IsRange() bool {
	return v == ValueTypeIntegerRange || v == ValueTypeFloatRange
}

// IsFloat reports whether decoded values of this type need rescaling by
// RangePrecision to recover the real value.
func (v ValueType) IsFloat() bool {
	return v == ValueTypeFloat || v == ValueTypeFloatRange
}

// Activity is a named action, optionally grouped under a type tag (the
// first whitespace-delimited token on an event-declaration line).
type Activity struct {
	Name string
	Type string
}

// Attribute is a named variable bound to zero or more activities.
type Attribute struct {
	Name      string
	ValueType ValueType

	// Lower/Upper/RangePrecision are set iff ValueType.IsRange().
	Lower          float64
	Upper          float64
	RangePrecision int

	// Literals holds the ordered set of allowed tokens iff
	// ValueType == ValueTypeEnumeration.
	Literals []string

	// BoundTo lists the activity names this attribute was bound to via a
	// `bind <name>: <attr>` line, in declaration order.
	BoundTo []string
}

// TemplateKind is the closed set of Declare template families.
type TemplateKind int

const (
	TemplateUnknown TemplateKind = iota
	Existence
	Absence
	Init
	Exactly
	Choice
	ExclusiveChoice
	RespondedExistence
	Response
	AlternateResponse
	ChainResponse
	Precedence
	AlternatePrecedence
	ChainPrecedence
	NotRespondedExistence
	NotResponse
	NotChainResponse
	NotPrecedence
	NotChainPrecedence
)

var templateNames = map[TemplateKind]string{
	Existence:             "Existence",
	Absence:               "Absence",
	Init:                  "Init",
	Exactly:               "Exactly",
	Choice:                "Choice",
	ExclusiveChoice:       "Exclusive Choice",
	RespondedExistence:    "Responded Existence",
	Response:              "Response",
	AlternateResponse:     "Alternate Response",
	ChainResponse:         "Chain Response",
	Precedence:            "Precedence",
	AlternatePrecedence:   "Alternate Precedence",
	ChainPrecedence:       "Chain Precedence",
	NotRespondedExistence: "Not Responded Existence",
	NotResponse:           "Not Response",
	NotChainResponse:      "Not Chain Response",
	NotPrecedence:         "Not Precedence",
	NotChainPrecedence:    "Not Chain Precedence",
}

// String returns the canonical Declare-syntax name of the template kind.
func (t TemplateKind) String() string {
	if name, ok := templateNames[t]; ok {
		return name
	}
	return "Unknown"
}

// SupportsCardinality reports whether the template accepts a trailing
// cardinality integer (EXISTENCE, ABSENCE, EXACTLY).
func (t TemplateKind) SupportsCardinality() bool {
	switch t {
	case Existence, Absence, Exactly:
		return true
	default:
		return false
	}
}

// IsBinary reports whether the template takes two ordered activity operands
// rather than one.
func (t TemplateKind) IsBinary() bool {
	switch t {
	case Existence, Absence, Init, Exactly:
		return false
	default:
		return true
	}
}

// BothActivationCondition reports whether both the activation and
// correlation conditions of this (binary) template are subject to
// activation-condition cardinality directives. Ported from the original
// ASP generator's `template.both_activation_condition` check: templates
// whose correlation side names a genuine target event (response/precedence
// families, responded existence, the choice family) count both sides;
// chain variants only count the activation side since the target is
// positionally fixed relative to it.
func (t TemplateKind) BothActivationCondition() bool {
	switch t {
	case Response, AlternateResponse, Precedence, AlternatePrecedence,
		RespondedExistence, Choice, ExclusiveChoice,
		NotResponse, NotPrecedence:
		return true
	default:
		return false
	}
}

// Template is one parsed constraint instance.
type Template struct {
	Kind       TemplateKind
	Activities []string // 1 operand for unary templates, 2 (ordered) otherwise
	Cardinality int      // meaningful iff Kind.SupportsCardinality(); default 1

	// Conditions is the ordered triple (activation, correlation, time).
	// Correlation is only meaningful for binary templates; time is always
	// last.
	Conditions [3]string

	TemplateIndexID int
	Violate         bool
	RawLine         string
}

// Activation returns the activation condition, or "" if none was given.
func (t *Template) Activation() string { return t.Conditions[0] }

// Correlation returns the correlation condition, or "" if none was given.
func (t *Template) Correlation() string { return t.Conditions[1] }

// Time returns the time condition, or "" if none was given.
func (t *Template) Time() string { return t.Conditions[2] }

// EncodingTable is a bijective string<->token map used when the solver
// rejects a raw identifier (capitalised names, colon-bearing names). Encoded
// tokens are generated deterministically per model via a stable counter.
type EncodingTable struct {
	encode map[string]string
	decode map[string]string
	next   int
}

// NewEncodingTable returns an empty, ready-to-use encoding table.
func NewEncodingTable() *EncodingTable {
	return &EncodingTable{encode: map[string]string{}, decode: map[string]string{}}
}

// NeedsEncoding reports whether name must be substituted before being
// emitted into an ASP program: it begins with a non-lowercase letter, or it
// contains a colon.
func NeedsEncoding(name string) bool {
	if name == "" {
		return false
	}
	if strings.ContainsRune(name, ':') {
		return true
	}
	first := rune(name[0])
	return !(first >= 'a' && first <= 'z')
}

// Encode returns the deterministic lowercase token for name, synthesising
// and recording one on first use. Names that do not need encoding are
// returned unchanged and never recorded.
func (e *EncodingTable) Encode(name string) string {
	if !NeedsEncoding(name) {
		return name
	}
	if tok, ok := e.encode[name]; ok {
		return tok
	}
	tok := fmt.Sprintf("enc%d", e.next)
	e.next++
	e.encode[name] = tok
	e.decode[tok] = name
	return tok
}

// Decode reverses Encode. A token that was never produced by Encode is
// returned unchanged, per the round-trip invariant.
func (e *EncodingTable) Decode(token string) string {
	if name, ok := e.decode[token]; ok {
		return name
	}
	return token
}

// ParsedModel is the immutable (post-construction) in-memory representation
// of a parsed Declare model.
type ParsedModel struct {
	Activities map[string]*Activity
	Attributes map[string]*Attribute
	Templates  []*Template
	Encoding   *EncodingTable
}

// NewParsedModel returns an empty model ready for population by the parser.
func NewParsedModel() *ParsedModel {
	return &ParsedModel{
		Activities: map[string]*Activity{},
		Attributes: map[string]*Attribute{},
		Encoding:   NewEncodingTable(),
	}
}

// ActivityNames returns all activity names in a stable, sorted order.
func (m *ParsedModel) ActivityNames() []string {
	names := make([]string, 0, len(m.Activities))
	for n := range m.Activities {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// TemplateByRawLine returns the template whose RawLine equals line, or nil.
func (m *ParsedModel) TemplateByRawLine(line string) *Template {
	line = strings.TrimSpace(line)
	for _, t := range m.Templates {
		if t.RawLine == line {
			return t
		}
	}
	return nil
}

// Clone returns a deep copy of the template list with the rest of the model
// shared (activities and attributes are immutable once parsed, so sharing
// them is safe). Used by the negative-generation path, which flips Violate
// on a subset of templates without mutating the positive model.
func (m *ParsedModel) Clone() *ParsedModel {
	clone := &ParsedModel{
		Activities: m.Activities,
		Attributes: m.Attributes,
		Encoding:   m.Encoding,
		Templates:  make([]*Template, len(m.Templates)),
	}
	for i, t := range m.Templates {
		cp := *t
		cp.Activities = append([]string(nil), t.Activities...)
		clone.Templates[i] = &cp
	}
	return clone
}

// Event is one element of a Trace.
type Event struct {
	Activity  string
	Position  int // 1..L
	Resources map[string]string
	Timestamp string // ISO-8601, assigned at lift time
}

// Trace is a finite ordered sequence of Events produced by the generator (or
// supplied to the checker).
type Trace struct {
	Name     string
	Label    string // "positive" or "negative"
	Events   []Event
}

// Attribute returns the resource value bound to name on this event, if any.
// Satisfies condition.Event so checker/checker.go can evaluate predicate
// strings directly against an Event.
func (e Event) Attribute(name string) (string, bool) {
	v, ok := e.Resources[name]
	return v, ok
}

// ActivityAt returns the activity name at 1-based position pos, or "" if out
// of range.
func (t *Trace) ActivityAt(pos int) string {
	for _, e := range t.Events {
		if e.Position == pos {
			return e.Activity
		}
	}
	return ""
}

// Verdict is the result of checking a single constraint against a trace.
type Verdict int

const (
	Satisfied Verdict = iota
	Violated
	VacuouslySatisfied
)

func (v Verdict) String() string {
	switch v {
	case Satisfied:
		return "SATISFIED"
	case Violated:
		return "VIOLATED"
	case VacuouslySatisfied:
		return "VACUOUSLY_SATISFIED"
	default:
		return "UNKNOWN"
	}
}
