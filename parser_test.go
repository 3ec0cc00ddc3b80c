package declare4py

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParser_S5(t *testing.T) {
	text := "activity a\n" +
		"bind a: grade\n" +
		"grade: integer between 0 and 100\n" +
		"Response[a,a] | A.grade > 50 | | \n"

	p := NewParser()
	model := p.ParseString(text)
	require.Empty(t, p.Warnings)

	require.Len(t, model.Activities, 1)
	act, ok := model.Activities["a"]
	require.True(t, ok)
	require.Equal(t, "activity", act.Type)

	attr, ok := model.Attributes["grade"]
	require.True(t, ok)
	require.Equal(t, ValueTypeIntegerRange, attr.ValueType)
	require.Equal(t, 0.0, attr.Lower)
	require.Equal(t, 100.0, attr.Upper)
	require.Equal(t, []string{"a"}, attr.BoundTo)

	require.Len(t, model.Templates, 1)
	tpl := model.Templates[0]
	require.Equal(t, Response, tpl.Kind)
	require.Equal(t, []string{"a", "a"}, tpl.Activities)
	require.Equal(t, "A.grade > 50", tpl.Activation())
	require.Equal(t, "", tpl.Correlation())
	require.Equal(t, "", tpl.Time())
}

func TestParser_EnumerationAttribute(t *testing.T) {
	text := "activity a\n" +
		"bind a: status\n" +
		"status: open, closed, pending\n"

	model := NewParser().ParseString(text)
	attr := model.Attributes["status"]
	require.Equal(t, ValueTypeEnumeration, attr.ValueType)
	require.Equal(t, []string{"open", "closed", "pending"}, attr.Literals)
}

func TestParser_UnknownTemplateIsSkippedWithWarning(t *testing.T) {
	p := NewParser()
	model := p.ParseString("activity a\nNotARealTemplate[a]\n")
	require.Empty(t, model.Templates)
	require.Len(t, p.Warnings, 1)
	require.Contains(t, p.Warnings[0].Reason, "unknown template name")
}

func TestParser_CardinalityDefaultsToOne(t *testing.T) {
	model := NewParser().ParseString("activity a\nExistence[a]\n")
	require.Equal(t, 1, model.Templates[0].Cardinality)
}

func TestParser_TrailingDigitIsCardinality(t *testing.T) {
	model := NewParser().ParseString("activity a\nExistence2[a]\n")
	require.Equal(t, Existence, model.Templates[0].Kind)
	require.Equal(t, 2, model.Templates[0].Cardinality)
}

func TestParser_MultiWordActivityName(t *testing.T) {
	model := NewParser().ParseString("activity Register Request\n")
	_, ok := model.Activities["Register Request"]
	require.True(t, ok)
}

func TestParser_QualifiedAttributeNameSurvivesColonSplit(t *testing.T) {
	model := NewParser().ParseString("org:resource: 10\n")
	attr, ok := model.Attributes["org:resource"]
	require.True(t, ok)
	require.Equal(t, ValueTypeInteger, attr.ValueType)
}

func TestParser_MultiWordTemplateNames(t *testing.T) {
	model := NewParser().ParseString("activity a\nactivity b\nChain Response[a,b]\nExclusive Choice[a,b]\n")
	require.Empty(t, NewParser().ParseString("").Templates)
	require.Len(t, model.Templates, 2)
	require.Equal(t, ChainResponse, model.Templates[0].Kind)
	require.Equal(t, ExclusiveChoice, model.Templates[1].Kind)
}

func TestParser_CommentsAndBlankLinesIgnored(t *testing.T) {
	model := NewParser().ParseString("# a comment\n\nactivity a\n\n")
	require.Len(t, model.Activities, 1)
}

func TestParser_TemplateIndexIDsAreDense(t *testing.T) {
	model := NewParser().ParseString("activity a\nactivity b\nExistence[a]\nResponse[a,b]\n")
	require.Equal(t, 0, model.Templates[0].TemplateIndexID)
	require.Equal(t, 1, model.Templates[1].TemplateIndexID)
}
