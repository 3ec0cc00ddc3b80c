package declare4py

import (
	"fmt"

	"github.com/projectdiscovery/fasttemplate"
)

const (
	// ParenthesisOpen marker - begin of a placeholder in an ASP rule fragment.
	ParenthesisOpen = "{{"
	// ParenthesisClose marker - end of a placeholder.
	ParenthesisClose = "}}"
)

// Render substitutes `{{var}}` placeholders in an ASP rule-fragment template
// with values, the same fasttemplate-based substitution alterx uses
// for `{{sub}}-{{word}}.{{suffix}}` pattern rendering, generalized here to
// render per-instance ASP rule text (e.g. a RESPONSE rule block
// parameterized by `{{idx}}`, `{{a}}`, `{{b}}`).
func Render(template string, values map[string]interface{}) string {
	valuesMap := make(map[string]interface{}, len(values))
	for k, v := range values {
		valuesMap[k] = fmt.Sprint(v)
	}
	return fasttemplate.ExecuteStringStd(template, ParenthesisOpen, ParenthesisClose, valuesMap)
}
