// Package templating renders the widget body for the page shell.
package templating

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/yegors/wxwidget/internal/view"
	"github.com/yegors/wxwidget/pkg/logger"
)

//go:embed templates/*.html
var templateFS embed.FS

// Engine renders view models to HTML fragments
type Engine struct {
	tmpl   *template.Template
	logger *logger.Logger
}

// NewEngine parses the embedded templates
func NewEngine(logger *logger.Logger) (*Engine, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse widget templates: %w", err)
	}

	return &Engine{
		tmpl:   tmpl,
		logger: logger.Named("template-engine"),
	}, nil
}

// RenderWidget renders the widget body for a model
func (e *Engine) RenderWidget(m view.Model) (string, error) {
	var buf bytes.Buffer
	if err := e.tmpl.ExecuteTemplate(&buf, "widget", m); err != nil {
		e.logger.Error("Failed to render widget",
			logger.String("panel", string(m.Panel)),
			logger.String("tab", string(m.Tab)),
			logger.Error(err))
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	rendered := buf.String()
	e.logger.Debug("Widget rendered",
		logger.String("panel", string(m.Panel)),
		logger.Int("length", len(rendered)))

	return rendered, nil
}
