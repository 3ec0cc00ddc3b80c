package asp

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	declare4py "github.com/jonghyeonk/declare4py"
	"github.com/projectdiscovery/gologger"
)

// Translator lowers a ParsedModel into a single ASP program string.
// Grounded on asp_generator.py's generate_asp_from_decl_model /
// ASPTranslator.from_decl_model and __handle_activations_condition_asp_generation.
type Translator struct {
	// ActivationConditions maps a template's RawLine to a [lo, hi] bound on
	// the number of activations (hi may be +Inf).
	ActivationConditions map[string]declare4py.ActivationBound
}

// NewTranslator returns a Translator with no activation-condition
// directives configured.
func NewTranslator() *Translator {
	return &Translator{ActivationConditions: map[string]declare4py.ActivationBound{}}
}

// Translate renders model into an ASP program string. Unresolvable
// template kinds (no matching rule fragment) are skipped with a warning —
// the program still contains every other fact and rule, consistent with
// the parser's own silently-skip-and-warn failure mode.
func (t *Translator) Translate(model *declare4py.ParsedModel) string {
	var b strings.Builder

	for _, name := range model.ActivityNames() {
		fmt.Fprintf(&b, "activity(%s).\n", model.Encoding.Encode(name))
	}

	attrNames := make([]string, 0, len(model.Attributes))
	for name := range model.Attributes {
		attrNames = append(attrNames, name)
	}
	sort.Strings(attrNames)
	for _, name := range attrNames {
		attr := model.Attributes[name]
		encName := model.Encoding.Encode(name)
		for _, bound := range attr.BoundTo {
			fmt.Fprintf(&b, "binding(%s,%s).\n", encName, model.Encoding.Encode(bound))
		}
		switch attr.ValueType {
		case declare4py.ValueTypeEnumeration:
			for _, lit := range attr.Literals {
				fmt.Fprintf(&b, "value(%s,%s).\n", encName, model.Encoding.Encode(lit))
			}
		case declare4py.ValueTypeIntegerRange, declare4py.ValueTypeFloatRange:
			precision := attr.RangePrecision
			if precision < 1 {
				precision = 1
			}
			lo := int(math.Round(attr.Lower * float64(precision)))
			hi := int(math.Round(attr.Upper * float64(precision)))
			fmt.Fprintf(&b, "value(%s,%d..%d).\n", encName, lo, hi)
		}
	}

	for _, tpl := range model.Templates {
		args := make([]string, len(tpl.Activities))
		for i, a := range tpl.Activities {
			args[i] = model.Encoding.Encode(a)
		}
		// template(idx,...), cardinality(idx,n), and the rule fragment are
		// emitted for every template regardless of Violate: the fragment's
		// violates/1 derivation and its paired integrity constraints are
		// what read the violated/1 fact below to invert the goal. Skipping
		// them for a violated template (as an earlier revision did) left
		// violated(idx) with nothing to act on, so the negative pass never
		// actually forced a violation.
		fmt.Fprintf(&b, "template(%d,%s).\n", tpl.TemplateIndexID, strings.Join(args, ","))
		if tpl.Kind.SupportsCardinality() {
			fmt.Fprintf(&b, "cardinality(%d,%d).\n", tpl.TemplateIndexID, tpl.Cardinality)
		}
		if tpl.Violate {
			fmt.Fprintf(&b, "violated(%d).\n", tpl.TemplateIndexID)
		}

		frag, ok := fragmentFor(tpl.Kind)
		if !ok {
			gologger.Warning().Msgf("no ASP rule fragment for template kind %v (raw_line %q)", tpl.Kind, tpl.RawLine)
			continue
		}
		values := map[string]interface{}{"idx": tpl.TemplateIndexID, "a": args[0]}
		if len(args) > 1 {
			values["b"] = args[1]
		}
		b.WriteString(declare4py.Render(frag, values))
	}

	t.renderActivationDirectives(&b, model)

	b.WriteString(encodingPreamble)
	return b.String()
}

// renderActivationDirectives emits a #count cardinality directive for
// every configured activation-condition bound, resolving RawLine to the
// owning template's TemplateIndexID.
func (t *Translator) renderActivationDirectives(b *strings.Builder, model *declare4py.ParsedModel) {
	for rawLine, bound := range t.ActivationConditions {
		tpl := model.TemplateByRawLine(rawLine)
		if tpl == nil {
			gologger.Warning().Msgf("activation_conditions references unknown raw_line %q", rawLine)
			continue
		}
		idx := tpl.TemplateIndexID
		lo, hi := bound.Lo(), bound.Hi()
		both := tpl.Kind.BothActivationCondition()

		emit := func(pred string, op string, bound float64) {
			fmt.Fprintf(b, ":- #count{T: trace(A,T), %s(%d,T)} %s %s.\n", pred, idx, op, formatBound(bound))
		}
		switch {
		case lo <= 0:
			emit("activation_condition", "<", hi)
			if both {
				emit("correlation_condition", "<", hi)
			}
		case math.IsInf(hi, 1):
			emit("activation_condition", ">", lo)
			if both {
				emit("correlation_condition", ">", lo)
			}
		default:
			// Finite-interval case: the lower bound uses "< a" and the
			// upper bound uses "> b" — distinct directives, not "> a"
			// reused for both.
			emit("activation_condition", "<", lo)
			emit("activation_condition", ">", hi)
			if both {
				emit("correlation_condition", "<", lo)
				emit("correlation_condition", ">", hi)
			}
		}
	}
}

func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
