package checker

import (
	"testing"

	declare4py "github.com/jonghyeonk/declare4py"
	"github.com/stretchr/testify/require"
)

func trace(activities ...string) *declare4py.Trace {
	var events []declare4py.Event
	for i, a := range activities {
		events = append(events, declare4py.Event{Activity: a, Position: i + 1})
	}
	return &declare4py.Trace{Name: "t", Events: events}
}

func tmpl(kind declare4py.TemplateKind, raw string, cardinality int, activities ...string) *declare4py.Template {
	if cardinality == 0 {
		cardinality = 1
	}
	return &declare4py.Template{Kind: kind, Activities: activities, Cardinality: cardinality, RawLine: raw}
}

func modelOf(templates ...*declare4py.Template) *declare4py.ParsedModel {
	m := declare4py.NewParsedModel()
	m.Templates = templates
	return m
}

func TestCheck_S6_ExistenceAndResponse(t *testing.T) {
	model := modelOf(
		tmpl(declare4py.Existence, "Existence[a]", 1, "a"),
		tmpl(declare4py.Response, "Response[a,b]", 1, "a", "b"),
	)
	tr := trace("a", "b", "a", "b")
	results := New().Check(tr, model, false)
	require.Equal(t, declare4py.Satisfied, results["Existence[a]"])
	require.Equal(t, declare4py.Satisfied, results["Response[a,b]"])
}

func TestCheck_EmptyTrace_BoundaryBehaviours(t *testing.T) {
	model := modelOf(
		tmpl(declare4py.Existence, "Existence[a]", 1, "a"),
		tmpl(declare4py.Absence, "Absence[a]", 1, "a"),
		tmpl(declare4py.Response, "Response[a,b]", 1, "a", "b"),
		tmpl(declare4py.Precedence, "Precedence[a,b]", 1, "a", "b"),
	)
	results := New().Check(trace(), model, true)
	require.Equal(t, declare4py.Violated, results["Existence[a]"])
	require.Equal(t, declare4py.Satisfied, results["Absence[a]"])
	require.Equal(t, declare4py.VacuouslySatisfied, results["Response[a,b]"])
	require.Equal(t, declare4py.VacuouslySatisfied, results["Precedence[a,b]"])
}

// S1 — spec.md §8: Init[a] over [a,b,a] is SATISFIED, over [b,a] is
// VIOLATED, and over [] is VACUOUSLY_SATISFIED.
func TestCheck_S1_Init(t *testing.T) {
	model := modelOf(tmpl(declare4py.Init, "Init[a]", 1, "a"))
	require.Equal(t, declare4py.Satisfied, New().Check(trace("a", "b", "a"), model, false)["Init[a]"])
	require.Equal(t, declare4py.Violated, New().Check(trace("b", "a"), model, false)["Init[a]"])
	require.Equal(t, declare4py.VacuouslySatisfied, New().Check(trace(), model, true)["Init[a]"])
	require.Equal(t, declare4py.Satisfied, New().Check(trace(), model, false)["Init[a]"])
}

func TestCheck_Response_Violated(t *testing.T) {
	model := modelOf(tmpl(declare4py.Response, "Response[a,b]", 1, "a", "b"))
	results := New().Check(trace("a", "x"), model, false)
	require.Equal(t, declare4py.Violated, results["Response[a,b]"])
}

func TestCheck_ChainResponse(t *testing.T) {
	model := modelOf(tmpl(declare4py.ChainResponse, "ChainResponse[a,b]", 1, "a", "b"))
	require.Equal(t, declare4py.Satisfied, New().Check(trace("a", "b", "c"), model, false)["ChainResponse[a,b]"])
	require.Equal(t, declare4py.Violated, New().Check(trace("a", "c", "b"), model, false)["ChainResponse[a,b]"])
}

func TestCheck_ExclusiveChoice(t *testing.T) {
	model := modelOf(tmpl(declare4py.ExclusiveChoice, "ExclusiveChoice[a,b]", 1, "a", "b"))
	require.Equal(t, declare4py.Satisfied, New().Check(trace("a", "c"), model, false)["ExclusiveChoice[a,b]"])
	require.Equal(t, declare4py.Violated, New().Check(trace("a", "b"), model, false)["ExclusiveChoice[a,b]"])
	require.Equal(t, declare4py.Violated, New().Check(trace("c"), model, false)["ExclusiveChoice[a,b]"])
}

func TestCheck_NotResponse(t *testing.T) {
	model := modelOf(tmpl(declare4py.NotResponse, "NotResponse[a,b]", 1, "a", "b"))
	require.Equal(t, declare4py.Satisfied, New().Check(trace("a", "c"), model, false)["NotResponse[a,b]"])
	require.Equal(t, declare4py.Violated, New().Check(trace("a", "b"), model, false)["NotResponse[a,b]"])
}

func TestCheck_ActivationCondition(t *testing.T) {
	tmplResp := tmpl(declare4py.Response, "Response[a,b] | A.grade > 50 | | ", 1, "a", "b")
	tmplResp.Conditions[0] = "A.grade > 50"
	model := modelOf(tmplResp)

	events := []declare4py.Event{
		{Activity: "a", Position: 1, Resources: map[string]string{"grade": "30"}},
		{Activity: "a", Position: 2, Resources: map[string]string{"grade": "80"}},
		{Activity: "b", Position: 3},
	}
	tr := &declare4py.Trace{Events: events}
	results := New().Check(tr, model, false)
	require.Equal(t, declare4py.Satisfied, results[tmplResp.RawLine])
}

func TestCheck_MalformedConditionIsOmitted(t *testing.T) {
	bad := tmpl(declare4py.Response, "Response[a,b] | A.grade > | | ", 1, "a", "b")
	bad.Conditions[0] = "A.grade >"
	model := modelOf(bad)
	results := New().Check(trace("a", "b"), model, false)
	_, present := results[bad.RawLine]
	require.False(t, present)
}
