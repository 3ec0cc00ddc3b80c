package asp

import (
	"testing"

	declare4py "github.com/jonghyeonk/declare4py"
	"github.com/stretchr/testify/require"
)

func TestTranslate_BasicFacts(t *testing.T) {
	text := "activity a\nactivity b\nExistence[a]\nResponse[a,b]\n"
	model := declare4py.NewParser().ParseString(text)

	tr := NewTranslator()
	program := tr.Translate(model)

	require.Contains(t, program, "activity(a).")
	require.Contains(t, program, "activity(b).")
	require.Contains(t, program, "template(0,a).")
	require.Contains(t, program, "cardinality(0,1).")
	require.Contains(t, program, "template(1,a,b).")
	require.Contains(t, program, "activation_condition(1,T)")
}

func TestTranslate_ViolateEmitsNegationFactAndKeepsTemplateRule(t *testing.T) {
	text := "activity a\nactivity b\nResponse[a,b]\n"
	model := declare4py.NewParser().ParseString(text)
	model.Templates[0].Violate = true

	program := NewTranslator().Translate(model)
	require.Contains(t, program, "violated(0).")
	// The template fact and its rule fragment must survive the Violate
	// flag: violated/1 only has something to invert if violates/1 is still
	// derived from a live template(...) fact.
	require.Contains(t, program, "template(0,a,b).")
	require.Contains(t, program, "violates(0)")
}

func TestTranslate_ActivationConditionFiniteBound(t *testing.T) {
	text := "activity a\nactivity b\nResponse[a,b]\n"
	model := declare4py.NewParser().ParseString(text)

	tr := NewTranslator()
	tr.ActivationConditions["Response[a,b]"] = declare4py.ActivationBound{2, 4}
	program := tr.Translate(model)

	require.Contains(t, program, "activation_condition(0,T)} < 2.")
	require.Contains(t, program, "activation_condition(0,T)} > 4.")
}

func TestTranslate_EncodesCapitalizedIdentifiers(t *testing.T) {
	text := "activity Register Request\nExistence[Register Request]\n"
	model := declare4py.NewParser().ParseString(text)

	program := NewTranslator().Translate(model)
	require.Contains(t, program, "activity(enc0).")
	require.Equal(t, "Register Request", model.Encoding.Decode("enc0"))
}
