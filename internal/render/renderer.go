// Package render turns field descriptors into form-input markup.
package render

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Options carries the per-field render parameters. Choices is only consulted
// for select inputs; Checked only for checkboxes.
type Options struct {
	Value       string
	Placeholder string
	Choices     []string
	Checked     bool
	Disabled    bool
}

const snippets = `
{{define "text"}}<div class="form-group">
<label for="{{.Name}}">{{.Label}}</label>
<input type="text" class="form-control" id="{{.Name}}" name="{{.Name}}" value="{{.Value}}"{{if .Placeholder}} placeholder="{{.Placeholder}}"{{end}}{{if .Disabled}} disabled{{end}}>
</div>
{{end}}
{{define "select"}}<div class="form-group">
<label for="{{.Name}}">{{.Label}}</label>
<select class="form-control" id="{{.Name}}" name="{{.Name}}"{{if .Disabled}} disabled{{end}}>
{{range .Choices}}<option value="{{.}}"{{if eq . $.Value}} selected{{end}}>{{.}}</option>
{{end}}</select>
</div>
{{end}}
{{define "textarea"}}<div class="form-group">
<label for="{{.Name}}">{{.Label}}</label>
<textarea class="form-control" id="{{.Name}}" name="{{.Name}}"{{if .Placeholder}} placeholder="{{.Placeholder}}"{{end}}{{if .Disabled}} disabled{{end}}>{{.Value}}</textarea>
</div>
{{end}}
{{define "checkbox"}}<div class="form-check">
<input type="checkbox" class="form-check-input" id="{{.Name}}" name="{{.Name}}" value="1"{{if .Checked}} checked{{end}}{{if .Disabled}} disabled{{end}}>
<label class="form-check-label" for="{{.Name}}">{{.Label}}</label>
</div>
{{end}}
{{define "wysiwyg"}}<div class="form-group">
<label for="{{.Name}}">{{.Label}}</label>
<textarea class="form-control wysiwyg" id="{{.Name}}" name="{{.Name}}"{{if .Disabled}} disabled{{end}}>{{.HTML}}</textarea>
</div>
{{end}}
{{define "help"}}<small class="form-text text-muted">{{.}}</small>
{{end}}
`

// Renderer emits markup for the supported field types. It is safe for
// concurrent use.
type Renderer struct {
	tmpl      *template.Template
	sanitizer *bluemonday.Policy
}

func New() *Renderer {
	return &Renderer{
		tmpl:      template.Must(template.New("fields").Parse(snippets)),
		sanitizer: bluemonday.UGCPolicy(),
	}
}

type inputData struct {
	Name        string
	Label       string
	Value       string
	HTML        template.HTML
	Placeholder string
	Choices     []string
	Checked     bool
	Disabled    bool
}

func (r *Renderer) render(kind string, data inputData) (string, error) {
	var sb strings.Builder
	if err := r.tmpl.ExecuteTemplate(&sb, kind, data); err != nil {
		return "", fmt.Errorf("render %s input: %w", kind, err)
	}
	return sb.String(), nil
}

func (r *Renderer) Text(name, label string, opts Options) (string, error) {
	return r.render("text", inputData{
		Name: name, Label: label, Value: opts.Value,
		Placeholder: opts.Placeholder, Disabled: opts.Disabled,
	})
}

func (r *Renderer) Select(name, label string, opts Options) (string, error) {
	return r.render("select", inputData{
		Name: name, Label: label, Value: opts.Value,
		Choices: opts.Choices, Disabled: opts.Disabled,
	})
}

func (r *Renderer) Textarea(name, label string, opts Options) (string, error) {
	return r.render("textarea", inputData{
		Name: name, Label: label, Value: opts.Value,
		Placeholder: opts.Placeholder, Disabled: opts.Disabled,
	})
}

func (r *Renderer) Checkbox(name, label string, opts Options) (string, error) {
	return r.render("checkbox", inputData{
		Name: name, Label: label,
		Checked: opts.Checked, Disabled: opts.Disabled,
	})
}

// Wysiwyg sanitizes the stored value before embedding it, since rich-text
// values contain user-supplied HTML.
func (r *Renderer) Wysiwyg(name, label string, opts Options) (string, error) {
	clean := r.sanitizer.Sanitize(opts.Value)
	return r.render("wysiwyg", inputData{
		Name: name, Label: label,
		HTML: template.HTML(clean), Disabled: opts.Disabled,
	})
}

// HelpText renders the translated help block appended after an input.
func (r *Renderer) HelpText(text string) (string, error) {
	var sb strings.Builder
	if err := r.tmpl.ExecuteTemplate(&sb, "help", text); err != nil {
		return "", fmt.Errorf("render help text: %w", err)
	}
	return sb.String(), nil
}
