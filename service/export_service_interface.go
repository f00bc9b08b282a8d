package service

import (
	"context"

	"beancatalog/models"
)

// ExportServiceInterface defines the contract for PDF export of a catalog page
type ExportServiceInterface interface {
	GeneratePDF(ctx context.Context, state models.ViewState) ([]byte, error)
}

// Ensure ExportService implements ExportServiceInterface
var _ ExportServiceInterface = (*ExportService)(nil)
