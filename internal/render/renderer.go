package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"sync"

	"github.com/joshua-takyi/breeze/internal/models"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Target is an output area whose content is replaced wholesale.
type Target interface {
	Replace(content template.HTML)
}

// Output is an in-memory Target.
type Output struct {
	mu      sync.Mutex
	content template.HTML
}

func (o *Output) Replace(content template.HTML) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.content = content
}

func (o *Output) HTML() template.HTML {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.content
}

type Renderer struct {
	tmpl *template.Template
}

func NewRenderer() (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse render templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

func (r *Renderer) execute(target Target, name string, data any) error {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("failed to render %s: %w", name, err)
	}
	// content comes from html/template, so it is already escaped
	target.Replace(template.HTML(buf.String()))
	return nil
}

// RenderIdea replaces target with the card for idea.
func (r *Renderer) RenderIdea(target Target, idea *models.EventIdea) error {
	if idea == nil {
		return fmt.Errorf("idea is nil")
	}
	return r.execute(target, "card", BuildCard(idea))
}

// RenderError replaces target with a single error placeholder.
func (r *Renderer) RenderError(target Target, message string) error {
	return r.execute(target, "error", message)
}

// RenderPlaceholder shows the initial empty-state hint.
func (r *Renderer) RenderPlaceholder(target Target) error {
	return r.execute(target, "placeholder", nil)
}
