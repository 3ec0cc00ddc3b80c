package declare4py

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/projectdiscovery/gologger"
)

// ParseWarning is recorded (never returned as an error) for a Declare line
// that could not be interpreted. The parser always produces a partial but
// valid model.
type ParseWarning struct {
	LineNumber int
	Line       string
	Reason     string
}

func (w ParseWarning) String() string {
	return fmt.Sprintf("line %d: %s (%q)", w.LineNumber, w.Reason, w.Line)
}

// Parser drives the Classify/DetectValueType dispatch over a Declare text
// document, mutating a ParsedModel. Grounded on DeclareParser.parse_decl:
// one pass, left-to-right, never backtracking over previously accepted
// lines.
type Parser struct {
	Warnings []ParseWarning
}

// NewParser returns a ready-to-use Parser with no accumulated warnings.
func NewParser() *Parser {
	return &Parser{}
}

// Parse reads a full Declare document and returns the populated model. It
// never returns a non-nil error for malformed input — malformed or
// unrecognised lines are recorded as warnings and skipped. A non-nil
// error here only ever wraps an I/O failure on r.
func (p *Parser) Parse(r io.Reader) (*ParsedModel, error) {
	model := NewParsedModel()
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		p.parseLine(model, lineNo, line)
	}
	if err := scanner.Err(); err != nil {
		return model, err
	}
	return model, nil
}

// ParseString is a convenience wrapper around Parse for in-memory text.
func (p *Parser) ParseString(text string) *ParsedModel {
	model, _ := p.Parse(strings.NewReader(text))
	return model
}

func (p *Parser) warn(lineNo int, line, reason string) {
	w := ParseWarning{LineNumber: lineNo, Line: line, Reason: reason}
	p.Warnings = append(p.Warnings, w)
	gologger.Warning().Msg(w.String())
}

func (p *Parser) parseLine(model *ParsedModel, lineNo int, line string) {
	switch Classify(line) {
	case LineEventDeclaration:
		p.parseEventDeclaration(model, line)
	case LineEventBinding:
		p.parseEventBinding(model, lineNo, line)
	case LineAttributeValues:
		p.parseAttributeValues(model, lineNo, line)
	case LineTemplateInstance:
		p.parseTemplateInstance(model, lineNo, line)
	default:
		p.warn(lineNo, line, "unrecognised line shape")
	}
}

// parseEventDeclaration handles "<typeTag> <name>". The first token is
// the type tag and the remainder — which may itself contain whitespace —
// is the activity name.
func (p *Parser) parseEventDeclaration(model *ParsedModel, line string) {
	parts := strings.SplitN(line, " ", 2)
	if len(parts) != 2 {
		return
	}
	typeTag := parts[0]
	name := strings.TrimSpace(parts[1])
	model.Activities[name] = &Activity{Name: name, Type: typeTag}
}

// parseEventBinding handles "bind <name>: <attr>[, <attr>]*".
func (p *Parser) parseEventBinding(model *ParsedModel, lineNo int, line string) {
	left, right, ok := cutColon(line)
	if !ok {
		p.warn(lineNo, line, "event binding missing ':' separator")
		return
	}
	nameField := strings.TrimSpace(strings.TrimPrefix(left, "bind"))
	if nameField == "" {
		p.warn(lineNo, line, "event binding missing activity name")
		return
	}
	for _, attrName := range strings.Split(right, ",") {
		attrName = strings.TrimSpace(attrName)
		if attrName == "" {
			continue
		}
		attr, ok := model.Attributes[attrName]
		if !ok {
			attr = &Attribute{Name: attrName}
			model.Attributes[attrName] = attr
		}
		attr.BoundTo = append(attr.BoundTo, nameField)
	}
}

// parseAttributeValues handles "<attrOrCsv>: <valueSpec>".
func (p *Parser) parseAttributeValues(model *ParsedModel, lineNo int, line string) {
	left, right, ok := cutColon(line)
	if !ok {
		p.warn(lineNo, line, "attribute-values line missing ':' separator")
		return
	}
	valueType := DetectValueType(right)
	var lower, upper float64
	var precision int
	var literals []string
	switch valueType {
	case ValueTypeIntegerRange, ValueTypeFloatRange:
		var rangeOK bool
		lower, upper, precision, rangeOK = ParseRangeBounds(right)
		if !rangeOK {
			p.warn(lineNo, line, "malformed range value spec")
			return
		}
	case ValueTypeEnumeration:
		literals = ParseEnumerationLiterals(right)
	}
	for _, attrName := range strings.Split(left, ",") {
		attrName = strings.TrimSpace(attrName)
		if attrName == "" {
			continue
		}
		// A `group:name` qualifier is kept as part of the attribute's
		// identity; only bind lines need the unqualified name.
		attr, ok := model.Attributes[attrName]
		if !ok {
			attr = &Attribute{Name: attrName}
			model.Attributes[attrName] = attr
		}
		attr.ValueType = valueType
		attr.Lower = lower
		attr.Upper = upper
		attr.RangePrecision = precision
		attr.Literals = literals
	}
}

// parseTemplateInstance handles "<TemplateName><digits?>[<op>(,<op>)?]
// (|<cond>)*".
func (p *Parser) parseTemplateInstance(model *ParsedModel, lineNo int, line string) {
	m := templateInstanceRe.FindStringSubmatch(line)
	if m == nil {
		p.warn(lineNo, line, "malformed template-instance line")
		return
	}
	head := strings.TrimSpace(m[1])
	operandsField := m[2]
	tail := strings.TrimSpace(m[3])

	kindName, cardinality := splitTrailingCardinality(head)
	kind, ok := templateKindByName(kindName)
	if !ok {
		p.warn(lineNo, line, fmt.Sprintf("unknown template name %q", kindName))
		return
	}

	var operands []string
	for _, op := range strings.Split(operandsField, ",") {
		op = strings.TrimSpace(op)
		if op != "" {
			operands = append(operands, op)
		}
	}
	if len(operands) == 0 {
		p.warn(lineNo, line, "template instance with no operands")
		return
	}
	if kind.IsBinary() && len(operands) < 2 {
		p.warn(lineNo, line, "binary template missing second operand")
		return
	}
	if !kind.IsBinary() {
		operands = operands[:1]
	} else {
		operands = operands[:2]
	}

	conditions := [3]string{}
	// The condition suffix starts with its own '|' separator.
	tail = strings.TrimPrefix(tail, "|")
	if tail != "" {
		segs := strings.Split(tail, "|")
		for i := 0; i < len(segs) && i < 3; i++ {
			conditions[i] = strings.TrimSpace(segs[i])
		}
	}

	t := &Template{
		Kind:            kind,
		Activities:      operands,
		Cardinality:     cardinality,
		Conditions:      conditions,
		TemplateIndexID: len(model.Templates),
		RawLine:         line,
	}
	model.Templates = append(model.Templates, t)
}

// splitTrailingCardinality peels a trailing run of digits off a template
// head, e.g. "Existence2" -> ("Existence", 2); absent -> ("Existence", 1).
func splitTrailingCardinality(head string) (name string, cardinality int) {
	i := len(head)
	for i > 0 && head[i-1] >= '0' && head[i-1] <= '9' {
		i--
	}
	if i == len(head) {
		return head, 1
	}
	n, err := strconv.Atoi(head[i:])
	if err != nil {
		return head, 1
	}
	return head[:i], n
}

// templateNameLookup resolves both the canonical space-separated spelling
// (e.g. "Chain Response", "Exclusive Choice" — as used in spec examples and
// produced by TemplateKind.String) and the single-word spelling (e.g.
// "ChainResponse") to a TemplateKind, so either convention round-trips.
var templateNameLookup = buildTemplateNameLookup()

func buildTemplateNameLookup() map[string]TemplateKind {
	lookup := make(map[string]TemplateKind, len(templateNames)*2)
	for kind, name := range templateNames {
		lookup[name] = kind
		lookup[strings.ReplaceAll(name, " ", "")] = kind
	}
	return lookup
}

func templateKindByName(name string) (TemplateKind, bool) {
	k, ok := templateNameLookup[name]
	return k, ok
}

// cutColon splits on the first ": " (colon-space), matching
// declare_parsers.py's `line.split(": ")`. Splitting on ": " rather than a
// bare ':' keeps a `group:name`-qualified attribute name (e.g.
// "org:resource: 10") intact on the left: the qualifier's colon has no
// trailing space, so only the separator colon is matched.
func cutColon(line string) (left, right string, ok bool) {
	i := strings.Index(line, ": ")
	if i < 0 {
		return "", "", false
	}
	return line[:i], line[i+2:], true
}
