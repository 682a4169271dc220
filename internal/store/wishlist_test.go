package store

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/adil24689/fashion-haven-hub-sub000/internal/domain"
)

// MockWishlistRepo mocks repository.WishlistRepository.
type MockWishlistRepo struct {
	mock.Mock
}

func (m *MockWishlistRepo) ListByUser(ctx context.Context, userID string) ([]domain.WishlistEntry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WishlistEntry), args.Error(1)
}

func (m *MockWishlistRepo) Add(ctx context.Context, userID string, entry domain.WishlistEntry) error {
	args := m.Called(ctx, userID, entry)
	return args.Error(0)
}

func (m *MockWishlistRepo) Remove(ctx context.Context, userID, productID string) error {
	args := m.Called(ctx, userID, productID)
	return args.Error(0)
}

func (m *MockWishlistRepo) RemoveAllByUser(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func newGuestWishlistStore(t *testing.T) (*WishlistStore, *MockWishlistRepo, *miniredis.Miniredis) {
	t.Helper()
	gs, mr := newGuestStore(t)
	repo := new(MockWishlistRepo)
	s := NewWishlistStore(context.Background(), WishlistConfig{
		SessionID: "sess-1",
		Guest:     gs,
		Remote:    repo,
		Logger:    testLogger(),
	})
	return s, repo, mr
}

func scarfEntry() domain.WishlistEntry {
	return domain.WishlistEntry{
		ProductID: "prod-1",
		Name:      "Silk Scarf",
		Price:     1800,
		Category:  "Accessories",
	}
}

// ---------------------------------------------------------------------------
// AddItem / RemoveItem
// ---------------------------------------------------------------------------

func TestWishlistStore_AddItem_Idempotent(t *testing.T) {
	s, _, _ := newGuestWishlistStore(t)
	ctx := context.Background()

	s.AddItem(ctx, scarfEntry())
	s.AddItem(ctx, scarfEntry())
	s.Flush()

	assert.Equal(t, 1, s.ItemCount())
	assert.True(t, s.Contains("prod-1"))
}

func TestWishlistStore_AddItem_PersistsGuestSnapshot(t *testing.T) {
	s, _, mr := newGuestWishlistStore(t)

	s.AddItem(context.Background(), scarfEntry())
	s.Flush()

	assert.True(t, mr.Exists("guest:wishlist:sess-1"))
}

func TestWishlistStore_RemoveItem(t *testing.T) {
	s, _, _ := newGuestWishlistStore(t)
	ctx := context.Background()

	s.AddItem(ctx, scarfEntry())
	s.RemoveItem(ctx, "prod-1")
	s.Flush()

	assert.Equal(t, 0, s.ItemCount())
	assert.False(t, s.Contains("prod-1"))
}

func TestWishlistStore_RemoveItem_AbsentIsNoop(t *testing.T) {
	s, _, _ := newGuestWishlistStore(t)
	ctx := context.Background()

	s.AddItem(ctx, scarfEntry())
	s.RemoveItem(ctx, "prod-missing")
	s.Flush()

	assert.Equal(t, 1, s.ItemCount())
}

// ---------------------------------------------------------------------------
// Toggle
// ---------------------------------------------------------------------------

func TestWishlistStore_Toggle(t *testing.T) {
	s, _, _ := newGuestWishlistStore(t)
	ctx := context.Background()

	added := s.Toggle(ctx, scarfEntry())
	assert.True(t, added)
	assert.True(t, s.Contains("prod-1"))

	added = s.Toggle(ctx, scarfEntry())
	assert.False(t, added)
	assert.False(t, s.Contains("prod-1"))
	s.Flush()
}

func TestWishlistStore_Clear(t *testing.T) {
	s, _, mr := newGuestWishlistStore(t)
	ctx := context.Background()

	s.AddItem(ctx, scarfEntry())
	s.Flush()
	require.True(t, mr.Exists("guest:wishlist:sess-1"))

	s.Clear(ctx)
	s.Flush()

	assert.Equal(t, 0, s.ItemCount())
	assert.False(t, mr.Exists("guest:wishlist:sess-1"))
}

// ---------------------------------------------------------------------------
// Signed-in persistence
// ---------------------------------------------------------------------------

func TestWishlistStore_SignedIn_AddWritesRemote(t *testing.T) {
	gs, _ := newGuestStore(t)
	repo := new(MockWishlistRepo)
	repo.On("ListByUser", mock.Anything, "user-1").Return([]domain.WishlistEntry{}, nil).Once()

	s := NewWishlistStore(context.Background(), WishlistConfig{
		SessionID: "sess-1",
		UserID:    "user-1",
		Guest:     gs,
		Remote:    repo,
		Logger:    testLogger(),
	})

	entry := scarfEntry()
	repo.On("Add", mock.Anything, "user-1", entry).Return(nil).Once()

	s.AddItem(context.Background(), entry)
	s.Flush()

	repo.AssertExpectations(t)
}

func TestWishlistStore_SignedIn_RemoteFailureKeepsMemoryState(t *testing.T) {
	gs, _ := newGuestStore(t)
	repo := new(MockWishlistRepo)
	repo.On("ListByUser", mock.Anything, "user-1").Return([]domain.WishlistEntry{}, nil).Once()
	repo.On("Add", mock.Anything, "user-1", mock.Anything).Return(errors.New("db down")).Once()

	s := NewWishlistStore(context.Background(), WishlistConfig{
		SessionID: "sess-1",
		UserID:    "user-1",
		Guest:     gs,
		Remote:    repo,
		Logger:    testLogger(),
	})

	s.AddItem(context.Background(), scarfEntry())
	s.Flush()

	assert.True(t, s.Contains("prod-1"))
	repo.AssertExpectations(t)
}

// ---------------------------------------------------------------------------
// SignIn / SignOut
// ---------------------------------------------------------------------------

func TestWishlistStore_SignIn_MigratesGuestEntries(t *testing.T) {
	s, repo, mr := newGuestWishlistStore(t)
	ctx := context.Background()

	entry := scarfEntry()
	s.AddItem(ctx, entry)
	s.Flush()

	remote := []domain.WishlistEntry{entry, {ProductID: "prod-9", Name: "Belt", Price: 700}}
	repo.On("Add", mock.Anything, "user-1", entry).Return(nil).Once()
	repo.On("ListByUser", mock.Anything, "user-1").Return(remote, nil).Once()

	s.SignIn(ctx, "user-1")
	s.Flush()

	assert.Equal(t, remote, s.Entries())
	assert.False(t, mr.Exists("guest:wishlist:sess-1"), "guest snapshot should be cleared after migration")
	repo.AssertExpectations(t)
}

func TestWishlistStore_SignOut_ReloadsGuestSnapshot(t *testing.T) {
	s, repo, _ := newGuestWishlistStore(t)
	ctx := context.Background()

	s.AddItem(ctx, scarfEntry())
	s.Flush()

	repo.On("Add", mock.Anything, "user-1", mock.Anything).Return(nil)
	repo.On("ListByUser", mock.Anything, "user-1").Return([]domain.WishlistEntry{scarfEntry()}, nil).Once()
	s.SignIn(ctx, "user-1")

	s.SignOut(ctx)
	s.Flush()

	assert.Equal(t, 0, s.ItemCount())
}
