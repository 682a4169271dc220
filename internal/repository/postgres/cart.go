package postgres

import (
	"context"
	"fmt"

	"github.com/adil24689/fashion-haven-hub-sub000/internal/domain"
)

// CartRepository implements repository.CartRepository using PostgreSQL.
type CartRepository struct {
	db DB
}

// NewCartRepository creates a new PostgreSQL-backed cart repository.
func NewCartRepository(db DB) *CartRepository {
	return &CartRepository{db: db}
}

// ListByUser returns all cart lines for the user.
func (r *CartRepository) ListByUser(ctx context.Context, userID string) ([]domain.CartLine, error) {
	query := `
		SELECT product_id, name, price, quantity, size, color, image_url
		FROM cart_items
		WHERE user_id = $1
		ORDER BY created_at`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list cart items: %w", err)
	}
	defer rows.Close()

	lines := []domain.CartLine{}
	for rows.Next() {
		var l domain.CartLine
		if err := rows.Scan(&l.ProductID, &l.Name, &l.Price, &l.Quantity, &l.Size, &l.Color, &l.ImageURL); err != nil {
			return nil, fmt.Errorf("scan cart item: %w", err)
		}
		lines = append(lines, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cart rows: %w", err)
	}

	return lines, nil
}

// Upsert writes a line keyed by (user, product, size, color). On conflict the
// incoming values win, including quantity; the in-memory store has already
// merged quantities, and during migration incoming-quantity-wins is the
// specified behavior.
func (r *CartRepository) Upsert(ctx context.Context, userID string, line domain.CartLine) error {
	query := `
		INSERT INTO cart_items (user_id, product_id, size, color, name, price, quantity, image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id, product_id, size, color)
		DO UPDATE SET
			name = EXCLUDED.name,
			price = EXCLUDED.price,
			quantity = EXCLUDED.quantity,
			image_url = EXCLUDED.image_url,
			updated_at = now()`

	_, err := r.db.Exec(ctx, query,
		userID,
		line.ProductID,
		line.Size,
		line.Color,
		line.Name,
		line.Price,
		line.Quantity,
		line.ImageURL,
	)
	if err != nil {
		return fmt.Errorf("upsert cart item: %w", err)
	}

	return nil
}

// UpdateQuantityByProduct sets the quantity on every variant of the product.
func (r *CartRepository) UpdateQuantityByProduct(ctx context.Context, userID, productID string, quantity int) error {
	query := `
		UPDATE cart_items
		SET quantity = $3, updated_at = now()
		WHERE user_id = $1 AND product_id = $2`

	if _, err := r.db.Exec(ctx, query, userID, productID, quantity); err != nil {
		return fmt.Errorf("update cart quantity: %w", err)
	}

	return nil
}

// DeleteByProduct removes every variant of the product from the user's cart.
func (r *CartRepository) DeleteByProduct(ctx context.Context, userID, productID string) error {
	query := `DELETE FROM cart_items WHERE user_id = $1 AND product_id = $2`

	if _, err := r.db.Exec(ctx, query, userID, productID); err != nil {
		return fmt.Errorf("delete cart item: %w", err)
	}

	return nil
}

// DeleteAllByUser removes all cart lines for the user.
func (r *CartRepository) DeleteAllByUser(ctx context.Context, userID string) error {
	query := `DELETE FROM cart_items WHERE user_id = $1`

	if _, err := r.db.Exec(ctx, query, userID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}

	return nil
}
