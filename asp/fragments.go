// Package asp lowers a parsed Declare model into an Answer Set Programming
// logic program (translator), drives an external Answer-Set solver over
// that program (driver), and decodes the resulting answer sets back into
// typed traces (lifter). Grounded on
// pm_tasks/log_generation/asp/asp_generator.py's AspGenerator.
package asp

import declare4py "github.com/jonghyeonk/declare4py"

// encodingPreamble is the static part of every generated program: the
// generic rules that give meaning to trace/2 and assigned_value/3 over an
// arbitrary activity/attribute vocabulary (activation_condition/2 and
// correlation_condition/2 are defined by the per-template ruleFragments),
// plus the generate/test skeleton that produces a candidate trace of
// length t (bound via `-c t=<length>` on the solver command line).
const encodingPreamble = `
#const t = 5.
time(1..t).

1 { trace(A,T) : activity(A) } 1 :- time(T).

assigned_value(Attr,V,T) :- attribute(Attr,_), time(T), trace(A,T), binding(Attr,A), value(Attr,V).

#show trace/2.
#show assigned_value/3.
`

// ruleFragments maps each template family to an ASP rule-fragment template
// (rendered via declare4py.Render) that defines activation_condition/2,
// correlation_condition/2, and a derived violates/1 atom for instance
// {{idx}} over operands {{a}}/{{b}}, guarded by the template/cardinality
// facts the translator emits.
//
// Every fragment follows the same two-constraint shape: violates({{idx}})
// is derived exactly when the template's positive semantics fail for some
// witness in the trace, and the two integrity constraints below pin it to
// the violated/1 fact the translator emits for a Violate-flagged template —
// disallowing the violation when the constraint must hold, and forcing it
// when the constraint is flagged for negation. This is what actually
// inverts a constraint's goal for the negative-generation pass; a
// `violated({{idx}}).` fact on its own does nothing without it.
//
//	:- template(...), not violated({{idx}}), violates({{idx}}).
//	:- template(...),     violated({{idx}}), not violates({{idx}}).
var ruleFragments = map[declare4py.TemplateKind]string{
	declare4py.Existence: `
activation_condition({{idx}},T) :- trace({{a}},T), template({{idx}},{{a}}).
violates({{idx}}) :- template({{idx}},{{a}}), cardinality({{idx}},N), #count{T: activation_condition({{idx}},T)} < N.
:- template({{idx}},{{a}}), not violated({{idx}}), violates({{idx}}).
:- template({{idx}},{{a}}), violated({{idx}}), not violates({{idx}}).
`,
	declare4py.Absence: `
activation_condition({{idx}},T) :- trace({{a}},T), template({{idx}},{{a}}).
violates({{idx}}) :- template({{idx}},{{a}}), cardinality({{idx}},N), #count{T: activation_condition({{idx}},T)} >= N.
:- template({{idx}},{{a}}), not violated({{idx}}), violates({{idx}}).
:- template({{idx}},{{a}}), violated({{idx}}), not violates({{idx}}).
`,
	declare4py.Exactly: `
activation_condition({{idx}},T) :- trace({{a}},T), template({{idx}},{{a}}).
violates({{idx}}) :- template({{idx}},{{a}}), cardinality({{idx}},N), #count{T: activation_condition({{idx}},T)} != N.
:- template({{idx}},{{a}}), not violated({{idx}}), violates({{idx}}).
:- template({{idx}},{{a}}), violated({{idx}}), not violates({{idx}}).
`,
	declare4py.Init: `
activation_condition({{idx}},T) :- trace({{a}},T), T = 1, template({{idx}},{{a}}).
violates({{idx}}) :- template({{idx}},{{a}}), not activation_condition({{idx}},1).
:- template({{idx}},{{a}}), not violated({{idx}}), violates({{idx}}).
:- template({{idx}},{{a}}), violated({{idx}}), not violates({{idx}}).
`,
	declare4py.Choice: `
activation_condition({{idx}},T) :- trace({{a}},T), template({{idx}},{{a}},{{b}}).
correlation_condition({{idx}},T) :- trace({{b}},T), template({{idx}},{{a}},{{b}}).
violates({{idx}}) :- template({{idx}},{{a}},{{b}}), not activation_condition({{idx}},_), not correlation_condition({{idx}},_).
:- template({{idx}},{{a}},{{b}}), not violated({{idx}}), violates({{idx}}).
:- template({{idx}},{{a}},{{b}}), violated({{idx}}), not violates({{idx}}).
`,
	declare4py.ExclusiveChoice: `
activation_condition({{idx}},T) :- trace({{a}},T), template({{idx}},{{a}},{{b}}).
correlation_condition({{idx}},T) :- trace({{b}},T), template({{idx}},{{a}},{{b}}).
violates({{idx}}) :- template({{idx}},{{a}},{{b}}), not activation_condition({{idx}},_), not correlation_condition({{idx}},_).
violates({{idx}}) :- template({{idx}},{{a}},{{b}}), activation_condition({{idx}},_), correlation_condition({{idx}},_).
:- template({{idx}},{{a}},{{b}}), not violated({{idx}}), violates({{idx}}).
:- template({{idx}},{{a}},{{b}}), violated({{idx}}), not violates({{idx}}).
`,
	declare4py.RespondedExistence: `
activation_condition({{idx}},T) :- trace({{a}},T), template({{idx}},{{a}},{{b}}).
correlation_condition({{idx}},T) :- trace({{b}},T), template({{idx}},{{a}},{{b}}).
violates({{idx}}) :- template({{idx}},{{a}},{{b}}), activation_condition({{idx}},_), not correlation_condition({{idx}},_).
:- template({{idx}},{{a}},{{b}}), not violated({{idx}}), violates({{idx}}).
:- template({{idx}},{{a}},{{b}}), violated({{idx}}), not violates({{idx}}).
`,
	declare4py.Response: `
activation_condition({{idx}},T) :- trace({{a}},T), template({{idx}},{{a}},{{b}}).
correlation_condition({{idx}},T) :- trace({{b}},T), template({{idx}},{{a}},{{b}}).
violates({{idx}}) :- template({{idx}},{{a}},{{b}}), activation_condition({{idx}},T1), not correlation_condition({{idx}},T2) : T2 > T1.
:- template({{idx}},{{a}},{{b}}), not violated({{idx}}), violates({{idx}}).
:- template({{idx}},{{a}},{{b}}), violated({{idx}}), not violates({{idx}}).
`,
	declare4py.ChainResponse: `
activation_condition({{idx}},T) :- trace({{a}},T), template({{idx}},{{a}},{{b}}).
correlation_condition({{idx}},T) :- trace({{b}},T), template({{idx}},{{a}},{{b}}).
violates({{idx}}) :- template({{idx}},{{a}},{{b}}), activation_condition({{idx}},T), not correlation_condition({{idx}},T+1).
:- template({{idx}},{{a}},{{b}}), not violated({{idx}}), violates({{idx}}).
:- template({{idx}},{{a}},{{b}}), violated({{idx}}), not violates({{idx}}).
`,
	declare4py.Precedence: `
activation_condition({{idx}},T) :- trace({{a}},T), template({{idx}},{{a}},{{b}}).
correlation_condition({{idx}},T) :- trace({{b}},T), template({{idx}},{{a}},{{b}}).
violates({{idx}}) :- template({{idx}},{{a}},{{b}}), correlation_condition({{idx}},T2), not activation_condition({{idx}},T1) : T1 < T2.
:- template({{idx}},{{a}},{{b}}), not violated({{idx}}), violates({{idx}}).
:- template({{idx}},{{a}},{{b}}), violated({{idx}}), not violates({{idx}}).
`,
	declare4py.ChainPrecedence: `
activation_condition({{idx}},T) :- trace({{a}},T), template({{idx}},{{a}},{{b}}).
correlation_condition({{idx}},T) :- trace({{b}},T), template({{idx}},{{a}},{{b}}).
violates({{idx}}) :- template({{idx}},{{a}},{{b}}), correlation_condition({{idx}},T), T > 1, not activation_condition({{idx}},T-1).
:- template({{idx}},{{a}},{{b}}), not violated({{idx}}), violates({{idx}}).
:- template({{idx}},{{a}},{{b}}), violated({{idx}}), not violates({{idx}}).
`,
	declare4py.AlternateResponse: `
activation_condition({{idx}},T) :- trace({{a}},T), template({{idx}},{{a}},{{b}}).
correlation_condition({{idx}},T) :- trace({{b}},T), template({{idx}},{{a}},{{b}}).
violates({{idx}}) :- template({{idx}},{{a}},{{b}}), activation_condition({{idx}},T1),
   not correlation_condition({{idx}},T2) : T2 > T1, not activation_condition({{idx}},T3) : T1 < T3, T3 < T2.
:- template({{idx}},{{a}},{{b}}), not violated({{idx}}), violates({{idx}}).
:- template({{idx}},{{a}},{{b}}), violated({{idx}}), not violates({{idx}}).
`,
	declare4py.AlternatePrecedence: `
activation_condition({{idx}},T) :- trace({{a}},T), template({{idx}},{{a}},{{b}}).
correlation_condition({{idx}},T) :- trace({{b}},T), template({{idx}},{{a}},{{b}}).
violates({{idx}}) :- template({{idx}},{{a}},{{b}}), correlation_condition({{idx}},T2),
   not activation_condition({{idx}},T1) : T1 < T2, not correlation_condition({{idx}},T3) : T1 < T3, T3 < T2.
:- template({{idx}},{{a}},{{b}}), not violated({{idx}}), violates({{idx}}).
:- template({{idx}},{{a}},{{b}}), violated({{idx}}), not violates({{idx}}).
`,
	declare4py.NotRespondedExistence: `
activation_condition({{idx}},T) :- trace({{a}},T), template({{idx}},{{a}},{{b}}).
correlation_condition({{idx}},T) :- trace({{b}},T), template({{idx}},{{a}},{{b}}).
violates({{idx}}) :- template({{idx}},{{a}},{{b}}), activation_condition({{idx}},_), correlation_condition({{idx}},_).
:- template({{idx}},{{a}},{{b}}), not violated({{idx}}), violates({{idx}}).
:- template({{idx}},{{a}},{{b}}), violated({{idx}}), not violates({{idx}}).
`,
	declare4py.NotResponse: `
activation_condition({{idx}},T) :- trace({{a}},T), template({{idx}},{{a}},{{b}}).
correlation_condition({{idx}},T) :- trace({{b}},T), template({{idx}},{{a}},{{b}}).
violates({{idx}}) :- template({{idx}},{{a}},{{b}}), activation_condition({{idx}},T1), correlation_condition({{idx}},T2), T2 > T1.
:- template({{idx}},{{a}},{{b}}), not violated({{idx}}), violates({{idx}}).
:- template({{idx}},{{a}},{{b}}), violated({{idx}}), not violates({{idx}}).
`,
	declare4py.NotChainResponse: `
activation_condition({{idx}},T) :- trace({{a}},T), template({{idx}},{{a}},{{b}}).
correlation_condition({{idx}},T) :- trace({{b}},T), template({{idx}},{{a}},{{b}}).
violates({{idx}}) :- template({{idx}},{{a}},{{b}}), activation_condition({{idx}},T), correlation_condition({{idx}},T+1).
:- template({{idx}},{{a}},{{b}}), not violated({{idx}}), violates({{idx}}).
:- template({{idx}},{{a}},{{b}}), violated({{idx}}), not violates({{idx}}).
`,
	declare4py.NotPrecedence: `
activation_condition({{idx}},T) :- trace({{a}},T), template({{idx}},{{a}},{{b}}).
correlation_condition({{idx}},T) :- trace({{b}},T), template({{idx}},{{a}},{{b}}).
violates({{idx}}) :- template({{idx}},{{a}},{{b}}), correlation_condition({{idx}},T2), activation_condition({{idx}},T1), T1 < T2.
:- template({{idx}},{{a}},{{b}}), not violated({{idx}}), violates({{idx}}).
:- template({{idx}},{{a}},{{b}}), violated({{idx}}), not violates({{idx}}).
`,
	declare4py.NotChainPrecedence: `
activation_condition({{idx}},T) :- trace({{a}},T), template({{idx}},{{a}},{{b}}).
correlation_condition({{idx}},T) :- trace({{b}},T), template({{idx}},{{a}},{{b}}).
violates({{idx}}) :- template({{idx}},{{a}},{{b}}), correlation_condition({{idx}},T), T > 1, activation_condition({{idx}},T-1).
:- template({{idx}},{{a}},{{b}}), not violated({{idx}}), violates({{idx}}).
:- template({{idx}},{{a}},{{b}}), violated({{idx}}), not violates({{idx}}).
`,
}

func fragmentFor(kind declare4py.TemplateKind) (string, bool) {
	f, ok := ruleFragments[kind]
	return f, ok
}
