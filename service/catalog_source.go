package service

import (
	"context"

	"beancatalog/models"
)

// CatalogSource defines the contract for anything that yields the bean catalog
type CatalogSource interface {
	FetchCatalog(ctx context.Context) (*models.CatalogPage, error)
}
