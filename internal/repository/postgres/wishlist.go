package postgres

import (
	"context"
	"fmt"

	"github.com/adil24689/fashion-haven-hub-sub000/internal/domain"
)

// WishlistRepository implements repository.WishlistRepository using PostgreSQL.
type WishlistRepository struct {
	db DB
}

// NewWishlistRepository creates a new PostgreSQL-backed wishlist repository.
func NewWishlistRepository(db DB) *WishlistRepository {
	return &WishlistRepository{db: db}
}

// ListByUser returns all wishlist entries for the user, newest first.
func (r *WishlistRepository) ListByUser(ctx context.Context, userID string) ([]domain.WishlistEntry, error) {
	query := `
		SELECT product_id, name, price, original_price, image_url, category
		FROM wishlist_items
		WHERE user_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list wishlist items: %w", err)
	}
	defer rows.Close()

	entries := []domain.WishlistEntry{}
	for rows.Next() {
		var e domain.WishlistEntry
		if err := rows.Scan(&e.ProductID, &e.Name, &e.Price, &e.OriginalPrice, &e.ImageURL, &e.Category); err != nil {
			return nil, fmt.Errorf("scan wishlist item: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate wishlist rows: %w", err)
	}

	return entries, nil
}

// Add inserts an entry. ON CONFLICT DO NOTHING keeps re-adds idempotent.
func (r *WishlistRepository) Add(ctx context.Context, userID string, entry domain.WishlistEntry) error {
	query := `
		INSERT INTO wishlist_items (user_id, product_id, name, price, original_price, image_url, category)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id, product_id) DO NOTHING`

	_, err := r.db.Exec(ctx, query,
		userID,
		entry.ProductID,
		entry.Name,
		entry.Price,
		entry.OriginalPrice,
		entry.ImageURL,
		entry.Category,
	)
	if err != nil {
		return fmt.Errorf("add wishlist item: %w", err)
	}

	return nil
}

// Remove deletes an entry. Removing an absent product is a no-op: the
// in-memory state has already dropped it and best-effort writes never
// surface to the caller.
func (r *WishlistRepository) Remove(ctx context.Context, userID, productID string) error {
	query := `DELETE FROM wishlist_items WHERE user_id = $1 AND product_id = $2`

	if _, err := r.db.Exec(ctx, query, userID, productID); err != nil {
		return fmt.Errorf("remove wishlist item: %w", err)
	}

	return nil
}

// RemoveAllByUser deletes all wishlist entries for the user.
func (r *WishlistRepository) RemoveAllByUser(ctx context.Context, userID string) error {
	query := `DELETE FROM wishlist_items WHERE user_id = $1`

	if _, err := r.db.Exec(ctx, query, userID); err != nil {
		return fmt.Errorf("clear wishlist: %w", err)
	}

	return nil
}
