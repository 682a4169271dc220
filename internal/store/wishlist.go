package store

import (
	"context"
	"log/slog"
	"sync"

	"github.com/sony/gobreaker/v2"

	"github.com/adil24689/fashion-haven-hub-sub000/internal/domain"
	"github.com/adil24689/fashion-haven-hub-sub000/internal/repository"
)

// GuestWishlistStore persists anonymous wishlist snapshots per session.
// *guest.Store satisfies it.
type GuestWishlistStore interface {
	Wishlist(ctx context.Context, sessionID string) (*domain.Wishlist, error)
	SaveWishlist(ctx context.Context, sessionID string, wishlist *domain.Wishlist) error
	ClearWishlist(ctx context.Context, sessionID string) error
}

// WishlistEvents publishes wishlist domain events. *event.Producer satisfies
// it; a nil value disables publishing.
type WishlistEvents interface {
	PublishWishlistUpdated(ctx context.Context, ownerID string, guest bool, wishlist *domain.Wishlist) error
	PublishWishlistMigrated(ctx context.Context, sessionID, userID string, itemCount int) error
}

// WishlistConfig holds the dependencies of a WishlistStore.
type WishlistConfig struct {
	SessionID string
	UserID    string
	Guest     GuestWishlistStore
	Remote    repository.WishlistRepository
	Breaker   *gobreaker.CircuitBreaker[struct{}]
	Events    WishlistEvents
	Logger    *slog.Logger
}

// WishlistStore holds the wishlist of one storefront session in memory with
// the same persistence model as CartStore: synchronous in-memory mutations,
// detached best-effort backend writes.
type WishlistStore struct {
	mu        sync.Mutex
	sessionID string
	userID    string
	wishlist  domain.Wishlist

	guest   GuestWishlistStore
	remote  repository.WishlistRepository
	breaker *gobreaker.CircuitBreaker[struct{}]
	events  WishlistEvents
	logger  *slog.Logger

	wg sync.WaitGroup
}

// NewWishlistStore creates the wishlist store for one session and loads its
// initial state. Load failures fall open to an empty wishlist.
func NewWishlistStore(ctx context.Context, cfg WishlistConfig) *WishlistStore {
	s := &WishlistStore{
		sessionID: cfg.SessionID,
		userID:    cfg.UserID,
		wishlist:  domain.Wishlist{Entries: []domain.WishlistEntry{}},
		guest:     cfg.Guest,
		remote:    cfg.Remote,
		breaker:   cfg.Breaker,
		events:    cfg.Events,
		logger:    cfg.Logger,
	}
	s.wishlist.Entries = s.loadEntries(ctx, cfg.UserID)
	return s
}

func (s *WishlistStore) loadEntries(ctx context.Context, userID string) []domain.WishlistEntry {
	if userID != "" {
		entries, err := s.remote.ListByUser(ctx, userID)
		if err != nil {
			s.logger.WarnContext(ctx, "wishlist load failed, starting empty",
				slog.String("user_id", userID),
				slog.String("error", err.Error()),
			)
			return []domain.WishlistEntry{}
		}
		return entries
	}

	wishlist, err := s.guest.Wishlist(ctx, s.sessionID)
	if err != nil {
		s.logger.WarnContext(ctx, "guest wishlist load failed, starting empty",
			slog.String("session_id", s.sessionID),
			slog.String("error", err.Error()),
		)
		return []domain.WishlistEntry{}
	}
	return wishlist.Entries
}

// AddItem adds a product to the wishlist. Adding an already-present product
// is a no-op.
func (s *WishlistStore) AddItem(ctx context.Context, entry domain.WishlistEntry) {
	s.mu.Lock()
	if s.wishlist.Contains(entry.ProductID) {
		s.mu.Unlock()
		return
	}
	s.wishlist.Entries = append(s.wishlist.Entries, entry)
	userID := s.userID
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.persist(ctx, "add wishlist item", func(ctx context.Context) error {
		if userID != "" {
			return s.remoteExec(func() error { return s.remote.Add(ctx, userID, entry) })
		}
		return s.guest.SaveWishlist(ctx, s.sessionID, snapshot)
	})
	s.publishUpdated(ctx, userID, snapshot)
}

// RemoveItem removes a product from the wishlist. Removing an absent product
// is a no-op.
func (s *WishlistStore) RemoveItem(ctx context.Context, productID string) {
	s.mu.Lock()
	if !s.wishlist.Contains(productID) {
		s.mu.Unlock()
		return
	}
	kept := make([]domain.WishlistEntry, 0, len(s.wishlist.Entries))
	for _, e := range s.wishlist.Entries {
		if e.ProductID != productID {
			kept = append(kept, e)
		}
	}
	s.wishlist.Entries = kept
	userID := s.userID
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.persist(ctx, "remove wishlist item", func(ctx context.Context) error {
		if userID != "" {
			return s.remoteExec(func() error { return s.remote.Remove(ctx, userID, productID) })
		}
		return s.guest.SaveWishlist(ctx, s.sessionID, snapshot)
	})
	s.publishUpdated(ctx, userID, snapshot)
}

// Toggle adds the product if absent and removes it if present. It reports
// whether the product is in the wishlist after the call.
func (s *WishlistStore) Toggle(ctx context.Context, entry domain.WishlistEntry) bool {
	s.mu.Lock()
	present := s.wishlist.Contains(entry.ProductID)
	s.mu.Unlock()

	if present {
		s.RemoveItem(ctx, entry.ProductID)
		return false
	}
	s.AddItem(ctx, entry)
	return true
}

// Clear empties the wishlist.
func (s *WishlistStore) Clear(ctx context.Context) {
	s.mu.Lock()
	s.wishlist.Entries = []domain.WishlistEntry{}
	userID := s.userID
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.persist(ctx, "clear wishlist", func(ctx context.Context) error {
		if userID != "" {
			return s.remoteExec(func() error { return s.remote.RemoveAllByUser(ctx, userID) })
		}
		return s.guest.ClearWishlist(ctx, s.sessionID)
	})
	s.publishUpdated(ctx, userID, snapshot)
}

// SignIn migrates the guest wishlist into the user's remote wishlist and
// switches the session to remote persistence. Entries are added one by one;
// products the user already wishlisted stay as they are. Failures are logged
// and skipped. The in-memory state is then replaced by a full remote reload.
func (s *WishlistStore) SignIn(ctx context.Context, userID string) {
	guestList, err := s.guest.Wishlist(ctx, s.sessionID)
	if err != nil {
		s.logger.WarnContext(ctx, "guest wishlist read failed during sign-in, migrating nothing",
			slog.String("session_id", s.sessionID),
			slog.String("error", err.Error()),
		)
		guestList = &domain.Wishlist{Entries: []domain.WishlistEntry{}}
	}

	migrated := 0
	for _, entry := range guestList.Entries {
		entry := entry
		err := s.remoteExec(func() error { return s.remote.Add(ctx, userID, entry) })
		if err != nil {
			s.logger.WarnContext(ctx, "wishlist entry migration failed, skipping",
				slog.String("user_id", userID),
				slog.String("product_id", entry.ProductID),
				slog.String("error", err.Error()),
			)
			continue
		}
		migrated++
	}

	if err := s.guest.ClearWishlist(ctx, s.sessionID); err != nil {
		s.logger.WarnContext(ctx, "guest wishlist clear failed after migration",
			slog.String("session_id", s.sessionID),
			slog.String("error", err.Error()),
		)
	}

	entries := s.loadEntries(ctx, userID)

	s.mu.Lock()
	s.userID = userID
	s.wishlist.Entries = entries
	s.mu.Unlock()

	if s.events != nil {
		s.async(ctx, "publish wishlist migrated", func(ctx context.Context) error {
			return s.events.PublishWishlistMigrated(ctx, s.sessionID, userID, migrated)
		})
	}
}

// SignOut switches the session back to guest persistence and reloads the
// guest snapshot.
func (s *WishlistStore) SignOut(ctx context.Context) {
	entries := s.loadEntries(ctx, "")

	s.mu.Lock()
	s.userID = ""
	s.wishlist.Entries = entries
	s.mu.Unlock()
}

// Contains reports whether the product is in the wishlist.
func (s *WishlistStore) Contains(productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wishlist.Contains(productID)
}

// Entries returns a copy of the current wishlist entries.
func (s *WishlistStore) Entries() []domain.WishlistEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.WishlistEntry(nil), s.wishlist.Entries...)
}

// ItemCount returns the number of wishlisted products.
func (s *WishlistStore) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wishlist.ItemCount()
}

// Flush blocks until all in-flight backend writes have finished.
func (s *WishlistStore) Flush() {
	s.wg.Wait()
}

func (s *WishlistStore) snapshotLocked() *domain.Wishlist {
	return &domain.Wishlist{Entries: append([]domain.WishlistEntry(nil), s.wishlist.Entries...)}
}

func (s *WishlistStore) owner(userID string) string {
	if userID != "" {
		return userID
	}
	return s.sessionID
}

func (s *WishlistStore) persist(ctx context.Context, op string, fn func(ctx context.Context) error) {
	s.async(ctx, op, fn)
}

func (s *WishlistStore) async(ctx context.Context, op string, fn func(ctx context.Context) error) {
	s.wg.Add(1)
	ctx = context.WithoutCancel(ctx)
	go func() {
		defer s.wg.Done()
		if err := fn(ctx); err != nil {
			s.logger.WarnContext(ctx, "wishlist backend write failed",
				slog.String("op", op),
				slog.String("session_id", s.sessionID),
				slog.String("error", err.Error()),
			)
		}
	}()
}

func (s *WishlistStore) remoteExec(fn func() error) error {
	if s.breaker == nil {
		return fn()
	}
	_, err := s.breaker.Execute(func() (struct{}, error) {
		return struct{}{}, fn()
	})
	return err
}

func (s *WishlistStore) publishUpdated(ctx context.Context, userID string, snapshot *domain.Wishlist) {
	if s.events == nil {
		return
	}
	s.async(ctx, "publish wishlist updated", func(ctx context.Context) error {
		return s.events.PublishWishlistUpdated(ctx, s.owner(userID), userID == "", snapshot)
	})
}
