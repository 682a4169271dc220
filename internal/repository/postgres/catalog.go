package postgres

import (
	"context"
	"fmt"

	"github.com/adil24689/fashion-haven-hub-sub000/internal/catalog"
)

// CatalogRepository implements repository.CatalogRepository using PostgreSQL.
// It loads the full active product set; filtering and sorting run in memory.
type CatalogRepository struct {
	db DB
}

// NewCatalogRepository creates a new PostgreSQL-backed catalog repository.
func NewCatalogRepository(db DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// List returns all active catalog products.
func (r *CatalogRepository) List(ctx context.Context) ([]catalog.Product, error) {
	query := `
		SELECT id, name, category, brand, price, original_price, sizes, colors,
		       badge, rating, image_url, out_of_stock
		FROM products
		WHERE active`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	products := []catalog.Product{}
	for rows.Next() {
		var p catalog.Product
		err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Category,
			&p.Brand,
			&p.Price,
			&p.OriginalPrice,
			&p.Sizes,
			&p.Colors,
			&p.Badge,
			&p.Rating,
			&p.ImageURL,
			&p.OutOfStock,
		)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate product rows: %w", err)
	}

	return products, nil
}
