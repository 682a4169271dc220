package repository

import (
	"context"

	"github.com/adil24689/fashion-haven-hub-sub000/internal/catalog"
	"github.com/adil24689/fashion-haven-hub-sub000/internal/domain"
)

// CartRepository defines the remote persistence operations for signed-in
// carts. Lines are addressed by the composite key (user, product, size,
// color); the product-scoped operations deliberately ignore size and color
// to match the storefront's remove/update semantics.
type CartRepository interface {
	// ListByUser returns all cart lines for the user.
	ListByUser(ctx context.Context, userID string) ([]domain.CartLine, error)

	// Upsert writes a line keyed by (user, product, size, color). An existing
	// line with the same key takes the incoming values, including quantity.
	Upsert(ctx context.Context, userID string, line domain.CartLine) error

	// UpdateQuantityByProduct sets the quantity on every line of the product,
	// regardless of size or color.
	UpdateQuantityByProduct(ctx context.Context, userID, productID string, quantity int) error

	// DeleteByProduct removes every line of the product, regardless of size
	// or color.
	DeleteByProduct(ctx context.Context, userID, productID string) error

	// DeleteAllByUser removes all cart lines for the user.
	DeleteAllByUser(ctx context.Context, userID string) error
}

// WishlistRepository defines the remote persistence operations for signed-in
// wishlists, keyed by (user, product).
type WishlistRepository interface {
	// ListByUser returns all wishlist entries for the user.
	ListByUser(ctx context.Context, userID string) ([]domain.WishlistEntry, error)

	// Add inserts an entry; adding an already-present product is a no-op.
	Add(ctx context.Context, userID string, entry domain.WishlistEntry) error

	// Remove deletes an entry. Removing an absent product is a no-op.
	Remove(ctx context.Context, userID, productID string) error

	// RemoveAllByUser deletes all wishlist entries for the user.
	RemoveAllByUser(ctx context.Context, userID string) error
}

// ProfileRepository defines persistence operations for account profiles.
type ProfileRepository interface {
	// Get retrieves the profile for the user.
	Get(ctx context.Context, userID string) (*domain.Profile, error)

	// Upsert creates or replaces the profile for the user.
	Upsert(ctx context.Context, profile *domain.Profile) error

	// UpdateAvatar sets the avatar URL on the profile.
	UpdateAvatar(ctx context.Context, userID, avatarURL string) error
}

// OrderRepository defines persistence operations for placed orders.
type OrderRepository interface {
	// Create inserts an order and its lines.
	Create(ctx context.Context, order *domain.Order) error

	// ListByUser returns a page of the user's orders, newest first, plus the
	// total count.
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]domain.Order, int, error)
}

// ReviewRepository defines persistence operations for product reviews.
type ReviewRepository interface {
	// Create inserts a review.
	Create(ctx context.Context, review *domain.Review) error

	// ListByProduct returns a page of reviews for the product, newest first,
	// plus the total count.
	ListByProduct(ctx context.Context, productID string, limit, offset int) ([]domain.Review, int, error)
}

// CatalogRepository provides the product read model backing the category and
// search pages. Filtering and sorting happen in memory through the catalog
// pipeline.
type CatalogRepository interface {
	// List returns all active catalog products.
	List(ctx context.Context) ([]catalog.Product, error)
}
