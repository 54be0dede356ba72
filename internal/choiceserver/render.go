package choiceserver

import (
	"html/template"
	"io"
)

// choicesTemplate renders the markup the widget expects: one element per
// choice matching the default ".choice" selector, the value in data-value.
var choicesTemplate = template.Must(template.New("choices").Parse(
	`{{range .}}<span class="choice" data-value="{{.Value}}">{{.Label}}</span>
{{end}}`))

func renderChoices(w io.Writer, choices []Choice) error {
	return choicesTemplate.Execute(w, choices)
}
