package controller

import (
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"beancatalog/service"
)

// ExportController handles PDF export of the catalog page
type ExportController struct {
	exportService service.ExportServiceInterface
}

// NewExportController creates a new ExportController
func NewExportController(exportService service.ExportServiceInterface) *ExportController {
	return &ExportController{exportService: exportService}
}

// ExportPDF handles GET /export.pdf?filterBy=&sortBy=&page=
func (c *ExportController) ExportPDF(w http.ResponseWriter, r *http.Request) {
	log := zerolog.Ctx(r.Context())

	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	state := viewState(r)
	pdfData, err := c.exportService.GeneratePDF(r.Context(), state)
	if err != nil {
		log.Error().Err(err).Msg("❌ ExportPDF: Error generating PDF")
		http.Error(w, fmt.Sprintf("Failed to generate PDF: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", service.ExportFilename(state.Page)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pdfData); err != nil {
		log.Error().Err(err).Msg("❌ ExportPDF: Error writing PDF response")
	}
}
