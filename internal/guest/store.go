package guest

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/adil24689/fashion-haven-hub-sub000/internal/domain"
)

const (
	cartKeyPrefix     = "guest:cart:"
	wishlistKeyPrefix = "guest:wishlist:"
)

// Store persists anonymous cart and wishlist snapshots in Redis, one JSON
// blob per session. It is the server-side stand-in for browser-local storage:
// the whole collection is written under a fixed per-session key on every
// mutation.
type Store struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewStore creates a Redis-backed guest snapshot store.
func NewStore(client *redis.Client, ttl time.Duration, logger *slog.Logger) *Store {
	return &Store{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// Cart loads the guest cart snapshot for the session. A missing key yields an
// empty cart. A snapshot that fails to parse is logged and treated as empty
// rather than surfaced; the storefront must stay usable on corrupt data.
func (s *Store) Cart(ctx context.Context, sessionID string) (*domain.Cart, error) {
	data, err := s.client.Get(ctx, cartKeyPrefix+sessionID).Bytes()
	if err != nil {
		if err == redis.Nil {
			return &domain.Cart{Lines: []domain.CartLine{}}, nil
		}
		return nil, fmt.Errorf("redis get guest cart: %w", err)
	}

	var cart domain.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		s.logger.WarnContext(ctx, "malformed guest cart snapshot, resetting to empty",
			slog.String("session_id", sessionID),
			slog.String("error", err.Error()),
		)
		return &domain.Cart{Lines: []domain.CartLine{}}, nil
	}
	if cart.Lines == nil {
		cart.Lines = []domain.CartLine{}
	}

	return &cart, nil
}

// SaveCart overwrites the guest cart snapshot for the session.
func (s *Store) SaveCart(ctx context.Context, sessionID string, cart *domain.Cart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("marshal guest cart: %w", err)
	}

	if err := s.client.Set(ctx, cartKeyPrefix+sessionID, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set guest cart: %w", err)
	}

	return nil
}

// ClearCart removes the guest cart snapshot for the session.
func (s *Store) ClearCart(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, cartKeyPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("redis del guest cart: %w", err)
	}
	return nil
}

// Wishlist loads the guest wishlist snapshot for the session, with the same
// missing/malformed handling as Cart.
func (s *Store) Wishlist(ctx context.Context, sessionID string) (*domain.Wishlist, error) {
	data, err := s.client.Get(ctx, wishlistKeyPrefix+sessionID).Bytes()
	if err != nil {
		if err == redis.Nil {
			return &domain.Wishlist{Entries: []domain.WishlistEntry{}}, nil
		}
		return nil, fmt.Errorf("redis get guest wishlist: %w", err)
	}

	var wishlist domain.Wishlist
	if err := json.Unmarshal(data, &wishlist); err != nil {
		s.logger.WarnContext(ctx, "malformed guest wishlist snapshot, resetting to empty",
			slog.String("session_id", sessionID),
			slog.String("error", err.Error()),
		)
		return &domain.Wishlist{Entries: []domain.WishlistEntry{}}, nil
	}
	if wishlist.Entries == nil {
		wishlist.Entries = []domain.WishlistEntry{}
	}

	return &wishlist, nil
}

// SaveWishlist overwrites the guest wishlist snapshot for the session.
func (s *Store) SaveWishlist(ctx context.Context, sessionID string, wishlist *domain.Wishlist) error {
	data, err := json.Marshal(wishlist)
	if err != nil {
		return fmt.Errorf("marshal guest wishlist: %w", err)
	}

	if err := s.client.Set(ctx, wishlistKeyPrefix+sessionID, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set guest wishlist: %w", err)
	}

	return nil
}

// ClearWishlist removes the guest wishlist snapshot for the session.
func (s *Store) ClearWishlist(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, wishlistKeyPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("redis del guest wishlist: %w", err)
	}
	return nil
}
