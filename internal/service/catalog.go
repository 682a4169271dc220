package service

import (
	"context"
	"log/slog"

	"github.com/adil24689/fashion-haven-hub-sub000/internal/catalog"
	"github.com/adil24689/fashion-haven-hub-sub000/internal/repository"
)

// CatalogService serves the category and search pages. The product set is
// loaded whole and narrowed in memory by the filter pipeline.
type CatalogService struct {
	catalogRepo repository.CatalogRepository
	logger      *slog.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(catalogRepo repository.CatalogRepository, logger *slog.Logger) *CatalogService {
	return &CatalogService{
		catalogRepo: catalogRepo,
		logger:      logger,
	}
}

// ListProducts returns the products matching the filter, in the filter's sort
// order.
func (s *CatalogService) ListProducts(ctx context.Context, filter catalog.Filter) ([]catalog.Product, error) {
	products, err := s.catalogRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.Apply(products, filter), nil
}
