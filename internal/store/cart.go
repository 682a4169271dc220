package store

import (
	"context"
	"log/slog"
	"sync"

	"github.com/sony/gobreaker/v2"

	"github.com/adil24689/fashion-haven-hub-sub000/internal/domain"
	"github.com/adil24689/fashion-haven-hub-sub000/internal/repository"
)

// GuestCartStore persists anonymous cart snapshots per session.
// *guest.Store satisfies it.
type GuestCartStore interface {
	Cart(ctx context.Context, sessionID string) (*domain.Cart, error)
	SaveCart(ctx context.Context, sessionID string, cart *domain.Cart) error
	ClearCart(ctx context.Context, sessionID string) error
}

// CartEvents publishes cart domain events. *event.Producer satisfies it; a
// nil value disables publishing.
type CartEvents interface {
	PublishCartUpdated(ctx context.Context, ownerID string, guest bool, cart *domain.Cart) error
	PublishCartCleared(ctx context.Context, ownerID string, guest bool) error
	PublishCartMigrated(ctx context.Context, sessionID, userID string, itemCount int) error
}

// CartConfig holds the dependencies of a CartStore.
type CartConfig struct {
	SessionID string
	// UserID is the signed-in user at construction time, empty for guests.
	UserID  string
	Guest   GuestCartStore
	Remote  repository.CartRepository
	Breaker *gobreaker.CircuitBreaker[struct{}]
	Events  CartEvents
	Logger  *slog.Logger
}

// CartStore holds the cart of one storefront session in memory and mirrors
// every mutation to the backing persistence. Mutations apply to the in-memory
// state synchronously; backend writes run detached and best-effort, so a slow
// or failing backend never blocks or breaks the shopping flow. Guest sessions
// mirror to per-session snapshots, signed-in sessions to the remote store
// behind the circuit breaker.
type CartStore struct {
	mu        sync.Mutex
	sessionID string
	userID    string
	cart      domain.Cart

	guest   GuestCartStore
	remote  repository.CartRepository
	breaker *gobreaker.CircuitBreaker[struct{}]
	events  CartEvents
	logger  *slog.Logger

	wg sync.WaitGroup
}

// NewCartStore creates the cart store for one session and loads its initial
// state from the appropriate backend. Load failures are logged and fall open
// to an empty cart; the session stays usable.
func NewCartStore(ctx context.Context, cfg CartConfig) *CartStore {
	s := &CartStore{
		sessionID: cfg.SessionID,
		userID:    cfg.UserID,
		cart:      domain.Cart{Lines: []domain.CartLine{}},
		guest:     cfg.Guest,
		remote:    cfg.Remote,
		breaker:   cfg.Breaker,
		events:    cfg.Events,
		logger:    cfg.Logger,
	}
	s.cart.Lines = s.loadLines(ctx, cfg.UserID)
	return s
}

func (s *CartStore) loadLines(ctx context.Context, userID string) []domain.CartLine {
	if userID != "" {
		lines, err := s.remote.ListByUser(ctx, userID)
		if err != nil {
			s.logger.WarnContext(ctx, "cart load failed, starting empty",
				slog.String("user_id", userID),
				slog.String("error", err.Error()),
			)
			return []domain.CartLine{}
		}
		return lines
	}

	cart, err := s.guest.Cart(ctx, s.sessionID)
	if err != nil {
		s.logger.WarnContext(ctx, "guest cart load failed, starting empty",
			slog.String("session_id", s.sessionID),
			slog.String("error", err.Error()),
		)
		return []domain.CartLine{}
	}
	return cart.Lines
}

// AddItem adds a line to the cart. A line with the same product, size, and
// color already in the cart absorbs the quantity instead of duplicating.
func (s *CartStore) AddItem(ctx context.Context, line domain.CartLine) {
	if line.Quantity < 1 {
		line.Quantity = 1
	}

	s.mu.Lock()
	if idx := s.cart.FindLine(line.Key()); idx >= 0 {
		s.cart.Lines[idx].Quantity += line.Quantity
		line = s.cart.Lines[idx]
	} else {
		s.cart.Lines = append(s.cart.Lines, line)
	}
	userID := s.userID
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.persist(ctx, "add cart item", func(ctx context.Context) error {
		if userID != "" {
			return s.remoteExec(func() error { return s.remote.Upsert(ctx, userID, line) })
		}
		return s.guest.SaveCart(ctx, s.sessionID, snapshot)
	})
	s.publishUpdated(ctx, userID, snapshot)
}

// RemoveItem removes every line of the product from the cart, regardless of
// size or color.
func (s *CartStore) RemoveItem(ctx context.Context, productID string) {
	s.mu.Lock()
	kept := make([]domain.CartLine, 0, len(s.cart.Lines))
	for _, l := range s.cart.Lines {
		if l.ProductID != productID {
			kept = append(kept, l)
		}
	}
	s.cart.Lines = kept
	userID := s.userID
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.persist(ctx, "remove cart item", func(ctx context.Context) error {
		if userID != "" {
			return s.remoteExec(func() error { return s.remote.DeleteByProduct(ctx, userID, productID) })
		}
		return s.guest.SaveCart(ctx, s.sessionID, snapshot)
	})
	s.publishUpdated(ctx, userID, snapshot)
}

// UpdateQuantity sets the quantity on every line of the product. A quantity
// below one removes the product instead.
func (s *CartStore) UpdateQuantity(ctx context.Context, productID string, quantity int) {
	if quantity < 1 {
		s.RemoveItem(ctx, productID)
		return
	}

	s.mu.Lock()
	for i := range s.cart.Lines {
		if s.cart.Lines[i].ProductID == productID {
			s.cart.Lines[i].Quantity = quantity
		}
	}
	userID := s.userID
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.persist(ctx, "update cart quantity", func(ctx context.Context) error {
		if userID != "" {
			return s.remoteExec(func() error {
				return s.remote.UpdateQuantityByProduct(ctx, userID, productID, quantity)
			})
		}
		return s.guest.SaveCart(ctx, s.sessionID, snapshot)
	})
	s.publishUpdated(ctx, userID, snapshot)
}

// Clear empties the cart.
func (s *CartStore) Clear(ctx context.Context) {
	s.mu.Lock()
	s.cart.Lines = []domain.CartLine{}
	userID := s.userID
	s.mu.Unlock()

	s.persist(ctx, "clear cart", func(ctx context.Context) error {
		if userID != "" {
			return s.remoteExec(func() error { return s.remote.DeleteAllByUser(ctx, userID) })
		}
		return s.guest.ClearCart(ctx, s.sessionID)
	})

	if s.events != nil {
		s.async(ctx, "publish cart cleared", func(ctx context.Context) error {
			return s.events.PublishCartCleared(ctx, s.owner(userID), userID == "")
		})
	}
}

// SignIn migrates the guest cart into the user's remote cart and switches the
// session to remote persistence. Guest lines are upserted one by one with the
// incoming quantity winning over any remote line for the same product, size,
// and color; upsert failures are logged and skipped, never rolled back. The
// in-memory state is then replaced by a full reload of the remote cart, so
// the session reflects what actually persisted.
func (s *CartStore) SignIn(ctx context.Context, userID string) {
	guestCart, err := s.guest.Cart(ctx, s.sessionID)
	if err != nil {
		s.logger.WarnContext(ctx, "guest cart read failed during sign-in, migrating nothing",
			slog.String("session_id", s.sessionID),
			slog.String("error", err.Error()),
		)
		guestCart = &domain.Cart{Lines: []domain.CartLine{}}
	}

	migrated := 0
	for _, line := range guestCart.Lines {
		line := line
		err := s.remoteExec(func() error { return s.remote.Upsert(ctx, userID, line) })
		if err != nil {
			s.logger.WarnContext(ctx, "cart line migration failed, skipping",
				slog.String("user_id", userID),
				slog.String("product_id", line.ProductID),
				slog.String("error", err.Error()),
			)
			continue
		}
		migrated++
	}

	if err := s.guest.ClearCart(ctx, s.sessionID); err != nil {
		s.logger.WarnContext(ctx, "guest cart clear failed after migration",
			slog.String("session_id", s.sessionID),
			slog.String("error", err.Error()),
		)
	}

	lines := s.loadLines(ctx, userID)

	s.mu.Lock()
	s.userID = userID
	s.cart.Lines = lines
	s.mu.Unlock()

	if s.events != nil {
		s.async(ctx, "publish cart migrated", func(ctx context.Context) error {
			return s.events.PublishCartMigrated(ctx, s.sessionID, userID, migrated)
		})
	}
}

// SignOut switches the session back to guest persistence and reloads the
// guest snapshot, which is normally empty after a sign-in migration.
func (s *CartStore) SignOut(ctx context.Context) {
	lines := s.loadLines(ctx, "")

	s.mu.Lock()
	s.userID = ""
	s.cart.Lines = lines
	s.mu.Unlock()
}

// Lines returns a copy of the current cart lines.
func (s *CartStore) Lines() []domain.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.CartLine(nil), s.cart.Lines...)
}

// Totals returns the current derived aggregates.
func (s *CartStore) Totals() domain.Totals {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Totals()
}

// Flush blocks until all in-flight backend writes have finished. Used on
// shutdown and in tests.
func (s *CartStore) Flush() {
	s.wg.Wait()
}

func (s *CartStore) snapshotLocked() *domain.Cart {
	return &domain.Cart{Lines: append([]domain.CartLine(nil), s.cart.Lines...)}
}

func (s *CartStore) owner(userID string) string {
	if userID != "" {
		return userID
	}
	return s.sessionID
}

// persist runs a backend write detached from the request. The write must not
// be cancelled when the request finishes, and its failure is logged rather
// than surfaced; the in-memory state is already updated.
func (s *CartStore) persist(ctx context.Context, op string, fn func(ctx context.Context) error) {
	s.async(ctx, op, fn)
}

func (s *CartStore) async(ctx context.Context, op string, fn func(ctx context.Context) error) {
	s.wg.Add(1)
	ctx = context.WithoutCancel(ctx)
	go func() {
		defer s.wg.Done()
		if err := fn(ctx); err != nil {
			s.logger.WarnContext(ctx, "cart backend write failed",
				slog.String("op", op),
				slog.String("session_id", s.sessionID),
				slog.String("error", err.Error()),
			)
		}
	}()
}

func (s *CartStore) remoteExec(fn func() error) error {
	if s.breaker == nil {
		return fn()
	}
	_, err := s.breaker.Execute(func() (struct{}, error) {
		return struct{}{}, fn()
	})
	return err
}

func (s *CartStore) publishUpdated(ctx context.Context, userID string, snapshot *domain.Cart) {
	if s.events == nil {
		return
	}
	s.async(ctx, "publish cart updated", func(ctx context.Context) error {
		return s.events.PublishCartUpdated(ctx, s.owner(userID), userID == "", snapshot)
	})
}
