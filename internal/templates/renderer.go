// Package templates renders a model.ResumeRecord into a self-contained A4
// HTML document.
package templates

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"time"

	"curriculo-generator/internal/domain"
	"curriculo-generator/internal/model"
)

var (
	//go:embed curriculum.html.tmpl
	curriculumTemplate string

	//go:embed style.css
	stylesheet string
)

// Renderer holds the parsed template. It is safe for concurrent use and its
// output depends only on the record.
type Renderer struct {
	tpl *template.Template
}

// New parses the embedded template.
func New() (*Renderer, error) {
	tpl, err := template.New("curriculum").Funcs(template.FuncMap{
		// embedded at build time, never user input
		"css":         func() template.CSS { return template.CSS(stylesheet) },
		"displayDate": displayDate,
	}).Parse(curriculumTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse curriculum template: %w", err)
	}
	return &Renderer{tpl: tpl}, nil
}

// MustNew is New for package initialization and tests.
func MustNew() *Renderer {
	r, err := New()
	if err != nil {
		panic(err)
	}
	return r
}

// Render produces the HTML document for r.
func (t *Renderer) Render(r model.ResumeRecord) (string, error) {
	var buf bytes.Buffer
	if err := t.tpl.Execute(&buf, r); err != nil {
		return "", domain.NewInternalError("execute curriculum template", err)
	}
	return buf.String(), nil
}

// displayDate shows an ISO date as DD/MM/YYYY.
func displayDate(iso string) string {
	d, err := time.Parse("2006-01-02", iso)
	if err != nil {
		return iso
	}
	return d.Format("02/01/2006")
}
