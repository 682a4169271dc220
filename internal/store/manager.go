package store

import (
	"context"
	"log/slog"
	"sync"

	"github.com/sony/gobreaker/v2"

	"github.com/adil24689/fashion-haven-hub-sub000/internal/identity"
	"github.com/adil24689/fashion-haven-hub-sub000/internal/repository"
)

// GuestStore combines the guest snapshot operations for both collections.
// *guest.Store satisfies it.
type GuestStore interface {
	GuestCartStore
	GuestWishlistStore
}

// Events combines the event publishing operations for both collections.
// *event.Producer satisfies it.
type Events interface {
	CartEvents
	WishlistEvents
}

// ManagerConfig holds the dependencies of a Manager.
type ManagerConfig struct {
	Identity     *identity.Provider
	Guest        GuestStore
	CartRepo     repository.CartRepository
	WishlistRepo repository.WishlistRepository
	Events       Events
	Logger       *slog.Logger
}

type sessionStores struct {
	cart     *CartStore
	wishlist *WishlistStore
}

// Manager owns the per-session cart and wishlist stores. Stores are created
// lazily on first access and kept for the life of the process; identity
// transitions reported by the provider are routed to the affected session's
// stores so guest state migrates exactly once per sign-in.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*sessionStores

	identity     *identity.Provider
	guest        GuestStore
	cartRepo     repository.CartRepository
	wishlistRepo repository.WishlistRepository
	events       Events
	logger       *slog.Logger

	cartBreaker     *gobreaker.CircuitBreaker[struct{}]
	wishlistBreaker *gobreaker.CircuitBreaker[struct{}]
}

// NewManager creates the store manager and subscribes it to identity changes.
func NewManager(cfg ManagerConfig) *Manager {
	m := &Manager{
		sessions:        make(map[string]*sessionStores),
		identity:        cfg.Identity,
		guest:           cfg.Guest,
		cartRepo:        cfg.CartRepo,
		wishlistRepo:    cfg.WishlistRepo,
		events:          cfg.Events,
		logger:          cfg.Logger,
		cartBreaker:     NewRemoteBreaker("cart-remote", cfg.Logger),
		wishlistBreaker: NewRemoteBreaker("wishlist-remote", cfg.Logger),
	}
	cfg.Identity.Subscribe(m.onIdentityChange)
	return m
}

// Cart returns the cart store for the session, creating it on first access.
func (m *Manager) Cart(ctx context.Context, sessionID string) *CartStore {
	return m.stores(ctx, sessionID).cart
}

// Wishlist returns the wishlist store for the session, creating it on first
// access.
func (m *Manager) Wishlist(ctx context.Context, sessionID string) *WishlistStore {
	return m.stores(ctx, sessionID).wishlist
}

func (m *Manager) stores(ctx context.Context, sessionID string) *sessionStores {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[sessionID]; ok {
		return s
	}

	userID := m.identity.CurrentUser(sessionID)
	s := &sessionStores{
		cart: NewCartStore(ctx, CartConfig{
			SessionID: sessionID,
			UserID:    userID,
			Guest:     m.guest,
			Remote:    m.cartRepo,
			Breaker:   m.cartBreaker,
			Events:    m.cartEvents(),
			Logger:    m.logger,
		}),
		wishlist: NewWishlistStore(ctx, WishlistConfig{
			SessionID: sessionID,
			UserID:    userID,
			Guest:     m.guest,
			Remote:    m.wishlistRepo,
			Breaker:   m.wishlistBreaker,
			Events:    m.wishlistEvents(),
			Logger:    m.logger,
		}),
	}
	m.sessions[sessionID] = s
	return s
}

// cartEvents returns the events sink as a CartEvents, preserving nilness.
// A typed nil interface would defeat the stores' nil checks.
func (m *Manager) cartEvents() CartEvents {
	if m.events == nil {
		return nil
	}
	return m.events
}

func (m *Manager) wishlistEvents() WishlistEvents {
	if m.events == nil {
		return nil
	}
	return m.events
}

func (m *Manager) onIdentityChange(ctx context.Context, change identity.Change) {
	s := m.stores(ctx, change.SessionID)

	if change.SignedIn() {
		s.cart.SignIn(ctx, change.UserID)
		s.wishlist.SignIn(ctx, change.UserID)
		return
	}

	s.cart.SignOut(ctx)
	s.wishlist.SignOut(ctx)
}

// Flush drains in-flight backend writes across all sessions. Called on
// shutdown so the last mutations reach persistence.
func (m *Manager) Flush() {
	m.mu.Lock()
	sessions := make([]*sessionStores, 0, len(m.sessions))
	for _, s := range m.sessions {
		sessions = append(sessions, s)
	}
	m.mu.Unlock()

	for _, s := range sessions {
		s.cart.Flush()
		s.wishlist.Flush()
	}
}
