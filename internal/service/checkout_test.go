package service

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/adil24689/fashion-haven-hub-sub000/internal/domain"
	"github.com/adil24689/fashion-haven-hub-sub000/internal/event"
	"github.com/adil24689/fashion-haven-hub-sub000/internal/guest"
	"github.com/adil24689/fashion-haven-hub-sub000/internal/store"
	apperrors "github.com/adil24689/fashion-haven-hub-sub000/pkg/errors"
	pkgkafka "github.com/adil24689/fashion-haven-hub-sub000/pkg/kafka"
	"github.com/adil24689/fashion-haven-hub-sub000/pkg/pagination"
)

// ============================================================================
// Mocks and helpers
// ============================================================================

type mockOrderRepo struct {
	mock.Mock
}

func (m *mockOrderRepo) Create(ctx context.Context, order *domain.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *mockOrderRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]domain.Order, int, error) {
	args := m.Called(ctx, userID, limit, offset)
	return args.Get(0).([]domain.Order), args.Int(1), args.Error(2)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

// testEventProducer points at an unreachable broker; publish failures are
// logged by the services, never surfaced.
func testEventProducer() *event.Producer {
	logger := testLogger()
	kafka := pkgkafka.NewProducer(pkgkafka.DefaultProducerConfig([]string{"localhost:19092"}), logger)
	return event.NewProducer(kafka, logger)
}

type staticCartProvider struct {
	cart *store.CartStore
}

func (p staticCartProvider) Cart(ctx context.Context, sessionID string) *store.CartStore {
	return p.cart
}

// newGuestCart builds a guest-backed cart store over miniredis.
func newGuestCart(t *testing.T) *store.CartStore {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	logger := testLogger()
	cart := store.NewCartStore(context.Background(), store.CartConfig{
		SessionID: "sess-1",
		Guest:     guest.NewStore(client, time.Hour, logger),
		Logger:    logger,
	})
	t.Cleanup(cart.Flush)
	return cart
}

// ============================================================================
// PlaceOrder
// ============================================================================

func TestCheckoutService_PlaceOrder_Success(t *testing.T) {
	cart := newGuestCart(t)
	cart.AddItem(context.Background(), domain.CartLine{
		ProductID: "prod-1", Name: "Linen Shirt", Price: 1200, Quantity: 2, Size: "M",
	})

	repo := new(mockOrderRepo)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(o *domain.Order) bool {
		return o.UserID == "user-1" &&
			o.Status == domain.OrderStatusPending &&
			o.Subtotal == 2400 &&
			o.Shipping == 0 &&
			o.Total == 2400 &&
			len(o.Lines) == 1
	})).Return(nil)

	svc := NewCheckoutService(repo, staticCartProvider{cart}, testEventProducer(), testLogger())

	order, err := svc.PlaceOrder(context.Background(), "sess-1", "user-1")

	require.NoError(t, err)
	require.NotNil(t, order)
	assert.NotEmpty(t, order.ID)
	assert.Equal(t, int64(2400), order.Total)
	assert.Empty(t, cart.Lines(), "cart is emptied after checkout")
	repo.AssertExpectations(t)
}

func TestCheckoutService_PlaceOrder_RequiresSignIn(t *testing.T) {
	repo := new(mockOrderRepo)
	svc := NewCheckoutService(repo, staticCartProvider{newGuestCart(t)}, testEventProducer(), testLogger())

	order, err := svc.PlaceOrder(context.Background(), "sess-1", "")

	assert.Nil(t, order)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCheckoutService_PlaceOrder_EmptyCart(t *testing.T) {
	repo := new(mockOrderRepo)
	svc := NewCheckoutService(repo, staticCartProvider{newGuestCart(t)}, testEventProducer(), testLogger())

	order, err := svc.PlaceOrder(context.Background(), "sess-1", "user-1")

	assert.Nil(t, order)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCheckoutService_PlaceOrder_FlatShippingOnSmallOrder(t *testing.T) {
	cart := newGuestCart(t)
	cart.AddItem(context.Background(), domain.CartLine{
		ProductID: "prod-1", Name: "Wool Scarf", Price: 600, Quantity: 1,
	})

	repo := new(mockOrderRepo)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	svc := NewCheckoutService(repo, staticCartProvider{cart}, testEventProducer(), testLogger())

	order, err := svc.PlaceOrder(context.Background(), "sess-1", "user-1")

	require.NoError(t, err)
	assert.Equal(t, int64(600), order.Subtotal)
	assert.Equal(t, int64(100), order.Shipping)
	assert.Equal(t, int64(700), order.Total)
}

func TestCheckoutService_PlaceOrder_RepositoryError(t *testing.T) {
	cart := newGuestCart(t)
	cart.AddItem(context.Background(), domain.CartLine{
		ProductID: "prod-1", Name: "Linen Shirt", Price: 600, Quantity: 1,
	})

	repo := new(mockOrderRepo)
	repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("connection lost"))

	svc := NewCheckoutService(repo, staticCartProvider{cart}, testEventProducer(), testLogger())

	order, err := svc.PlaceOrder(context.Background(), "sess-1", "user-1")

	assert.Nil(t, order)
	assert.Error(t, err)
	assert.Len(t, cart.Lines(), 1, "cart is kept when the order cannot be stored")
}

// ============================================================================
// ListOrders
// ============================================================================

func TestCheckoutService_ListOrders_Success(t *testing.T) {
	repo := new(mockOrderRepo)
	repo.On("ListByUser", mock.Anything, "user-1", 20, 0).
		Return([]domain.Order{{ID: "order-1", UserID: "user-1"}}, 1, nil)

	svc := NewCheckoutService(repo, staticCartProvider{newGuestCart(t)}, testEventProducer(), testLogger())

	orders, total, err := svc.ListOrders(context.Background(), "user-1", pagination.DefaultParams())

	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, orders, 1)
	assert.Equal(t, "order-1", orders[0].ID)
}

func TestCheckoutService_ListOrders_RequiresSignIn(t *testing.T) {
	repo := new(mockOrderRepo)
	svc := NewCheckoutService(repo, staticCartProvider{newGuestCart(t)}, testEventProducer(), testLogger())

	_, _, err := svc.ListOrders(context.Background(), "", pagination.DefaultParams())

	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	repo.AssertNotCalled(t, "ListByUser", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
