package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/adil24689/fashion-haven-hub-sub000/internal/domain"
	"github.com/adil24689/fashion-haven-hub-sub000/internal/event"
	"github.com/adil24689/fashion-haven-hub-sub000/internal/repository"
	"github.com/adil24689/fashion-haven-hub-sub000/internal/store"
	apperrors "github.com/adil24689/fashion-haven-hub-sub000/pkg/errors"
	"github.com/adil24689/fashion-haven-hub-sub000/pkg/pagination"
)

// CartProvider resolves the cart store for a session. *store.Manager
// satisfies it.
type CartProvider interface {
	Cart(ctx context.Context, sessionID string) *store.CartStore
}

// CheckoutService implements the business logic for placing orders.
type CheckoutService struct {
	orderRepo repository.OrderRepository
	carts     CartProvider
	producer  *event.Producer
	logger    *slog.Logger
}

// NewCheckoutService creates a new checkout service.
func NewCheckoutService(
	orderRepo repository.OrderRepository,
	carts CartProvider,
	producer *event.Producer,
	logger *slog.Logger,
) *CheckoutService {
	return &CheckoutService{
		orderRepo: orderRepo,
		carts:     carts,
		producer:  producer,
		logger:    logger,
	}
}

// PlaceOrder turns the session's cart into an order. Checkout requires a
// signed-in user; the cart is snapshotted with its current totals, persisted,
// and then emptied.
func (s *CheckoutService) PlaceOrder(ctx context.Context, sessionID, userID string) (*domain.Order, error) {
	if userID == "" {
		return nil, apperrors.Unauthorized("sign in to check out")
	}

	cart := s.carts.Cart(ctx, sessionID)
	lines := cart.Lines()
	if len(lines) == 0 {
		return nil, apperrors.InvalidInput("cart is empty")
	}
	totals := cart.Totals()

	order := &domain.Order{
		ID:        uuid.New().String(),
		UserID:    userID,
		Status:    domain.OrderStatusPending,
		Subtotal:  totals.Subtotal,
		Shipping:  totals.Shipping,
		Total:     totals.Total,
		Lines:     lines,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	cart.Clear(ctx)

	// Publish order event (non-blocking on failure).
	if err := s.producer.PublishOrderPlaced(ctx, order); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish order.placed event",
			slog.String("order_id", order.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "order placed",
		slog.String("order_id", order.ID),
		slog.String("user_id", userID),
		slog.Int64("total", order.Total),
	)

	return order, nil
}

// ListOrders returns a page of the user's order history, newest first.
func (s *CheckoutService) ListOrders(ctx context.Context, userID string, params pagination.Params) ([]domain.Order, int, error) {
	if userID == "" {
		return nil, 0, apperrors.Unauthorized("sign in to view orders")
	}
	return s.orderRepo.ListByUser(ctx, userID, params.PerPage, params.Offset)
}
