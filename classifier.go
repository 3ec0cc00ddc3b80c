package declare4py

import (
	"regexp"
	"strings"
)

// LineKind is the closed set of Declare textual line shapes recognised by
// the classifier.
type LineKind int

const (
	// LineUnknown is returned for blank, comment, or unrecognised lines.
	LineUnknown LineKind = iota
	LineEventDeclaration
	LineEventBinding
	LineAttributeValues
	LineTemplateInstance
)

var (
	// eventDeclarationRe matches "<typeTag> <name>": two-or-more
	// whitespace-separated word tokens and nothing else (no punctuation),
	// which incidentally also rules out bind/attribute-value/template
	// lines since all three always contain a `:` or a `[`.
	eventDeclarationRe = regexp.MustCompile(`^\w+ [\w ]+$`)

	// eventBindingRe matches "bind <name>: <attr>[, <attr>]*".
	eventBindingRe = regexp.MustCompile(`^bind (.*?)+$`)

	// attributeValuesRe matches "<attrOrCsv>: <valueSpec>" — one or more
	// comma-separated, possibly `group:name`-qualified attribute names,
	// then a colon, then the value spec. The caller additionally rejects
	// lines starting with "bind" so event-binding takes precedence.
	attributeValuesRe = regexp.MustCompile(`^([a-zA-Z_,0-9.?: ]+) *(: *[\w,.? ]+)$`)

	// templateInstanceRe matches "<template>[<operands>] (|<cond>)*".
	templateInstanceRe = regexp.MustCompile(`^(.*)\[(.*)\]\s*(.*)$`)
)

// Classify returns the LineKind of a single already-trimmed, non-empty,
// non-comment Declare line. Classification is the first matching rule in
// the order: event-declaration, event-binding, attribute-values,
// template-instance. The attribute-values rule carries a negative
// lookahead (handled here as a literal "bind" prefix check) so that a bind
// line, which its pattern would also accept, is never classified as
// attribute-values. Lines matching no rule yield LineUnknown.
func Classify(line string) LineKind {
	switch {
	case eventDeclarationRe.MatchString(line):
		return LineEventDeclaration
	case strings.HasPrefix(line, "bind") && eventBindingRe.MatchString(line):
		return LineEventBinding
	case !strings.HasPrefix(line, "bind") && attributeValuesRe.MatchString(line):
		return LineAttributeValues
	case templateInstanceRe.MatchString(line):
		return LineTemplateInstance
	default:
		return LineUnknown
	}
}
