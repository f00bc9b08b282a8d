package service

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"beancatalog/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// RenderService renders the catalog page template
type RenderService struct {
	tmpl *template.Template
}

// NewRenderService parses the embedded templates
func NewRenderService() (*RenderService, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/catalog.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}
	return &RenderService{tmpl: tmpl}, nil
}

// RenderCatalogHTML renders the catalog page for view
func (s *RenderService) RenderCatalogHTML(view models.PageView) ([]byte, error) {
	var buf bytes.Buffer
	if err := s.tmpl.Execute(&buf, view); err != nil {
		return nil, fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.Bytes(), nil
}
