package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/adil24689/fashion-haven-hub-sub000/internal/domain"
	pkgkafka "github.com/adil24689/fashion-haven-hub-sub000/pkg/kafka"
)

// Kafka topics for storefront domain events.
const (
	TopicCartUpdated      = "storefront.cart.updated"
	TopicCartCleared      = "storefront.cart.cleared"
	TopicCartMigrated     = "storefront.cart.migrated"
	TopicWishlistUpdated  = "storefront.wishlist.updated"
	TopicWishlistMigrated = "storefront.wishlist.migrated"
	TopicOrderPlaced      = "storefront.order.placed"
	TopicReviewCreated    = "storefront.review.created"
	TopicProfileUpdated   = "storefront.profile.updated"
)

// Aggregate type constants.
const (
	AggregateTypeCart     = "cart"
	AggregateTypeWishlist = "wishlist"
	AggregateTypeOrder    = "order"
	AggregateTypeReview   = "review"
	AggregateTypeProfile  = "profile"
)

// Source identifier for events originating from the storefront.
const SourceStorefront = "storefront"

// CartUpdatedData is the payload for a cart.updated event. OwnerID is the
// user id for signed-in carts and the session id for guest carts.
type CartUpdatedData struct {
	OwnerID   string            `json:"owner_id"`
	Guest     bool              `json:"guest"`
	Lines     []domain.CartLine `json:"lines"`
	ItemCount int               `json:"item_count"`
	Subtotal  int64             `json:"subtotal"`
	Shipping  int64             `json:"shipping"`
	Total     int64             `json:"total"`
}

// CartClearedData is the payload for a cart.cleared event.
type CartClearedData struct {
	OwnerID string `json:"owner_id"`
	Guest   bool   `json:"guest"`
}

// MigratedData is the payload for cart.migrated and wishlist.migrated events,
// published after a guest session's state is moved to a signed-in account.
type MigratedData struct {
	SessionID string `json:"session_id"`
	UserID    string `json:"user_id"`
	ItemCount int    `json:"item_count"`
}

// WishlistUpdatedData is the payload for a wishlist.updated event.
type WishlistUpdatedData struct {
	OwnerID   string                 `json:"owner_id"`
	Guest     bool                   `json:"guest"`
	Entries   []domain.WishlistEntry `json:"entries"`
	ItemCount int                    `json:"item_count"`
}

// OrderPlacedData is the payload for an order.placed event.
type OrderPlacedData struct {
	OrderID   string `json:"order_id"`
	UserID    string `json:"user_id"`
	ItemCount int    `json:"item_count"`
	Total     int64  `json:"total"`
}

// ReviewCreatedData is the payload for a review.created event.
type ReviewCreatedData struct {
	ReviewID  string `json:"review_id"`
	ProductID string `json:"product_id"`
	UserID    string `json:"user_id"`
	Rating    int    `json:"rating"`
}

// ProfileUpdatedData is the payload for a profile.updated event.
type ProfileUpdatedData struct {
	UserID string `json:"user_id"`
}

// Producer publishes storefront domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer for the storefront.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishCartUpdated publishes a cart.updated event.
func (p *Producer) PublishCartUpdated(ctx context.Context, ownerID string, guest bool, cart *domain.Cart) error {
	totals := cart.Totals()
	data := CartUpdatedData{
		OwnerID:   ownerID,
		Guest:     guest,
		Lines:     cart.Lines,
		ItemCount: totals.ItemCount,
		Subtotal:  totals.Subtotal,
		Shipping:  totals.Shipping,
		Total:     totals.Total,
	}

	event, err := pkgkafka.NewEvent(TopicCartUpdated, ownerID, AggregateTypeCart, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create cart.updated event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicCartUpdated, event); err != nil {
		return fmt.Errorf("publish cart.updated event: %w", err)
	}

	p.logger.DebugContext(ctx, "published cart.updated event",
		slog.String("owner_id", ownerID),
		slog.Int("item_count", totals.ItemCount),
	)

	return nil
}

// PublishCartCleared publishes a cart.cleared event.
func (p *Producer) PublishCartCleared(ctx context.Context, ownerID string, guest bool) error {
	data := CartClearedData{OwnerID: ownerID, Guest: guest}

	event, err := pkgkafka.NewEvent(TopicCartCleared, ownerID, AggregateTypeCart, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create cart.cleared event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicCartCleared, event); err != nil {
		return fmt.Errorf("publish cart.cleared event: %w", err)
	}

	return nil
}

// PublishCartMigrated publishes a cart.migrated event.
func (p *Producer) PublishCartMigrated(ctx context.Context, sessionID, userID string, itemCount int) error {
	data := MigratedData{SessionID: sessionID, UserID: userID, ItemCount: itemCount}

	event, err := pkgkafka.NewEvent(TopicCartMigrated, userID, AggregateTypeCart, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create cart.migrated event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicCartMigrated, event); err != nil {
		return fmt.Errorf("publish cart.migrated event: %w", err)
	}

	p.logger.DebugContext(ctx, "published cart.migrated event",
		slog.String("session_id", sessionID),
		slog.String("user_id", userID),
	)

	return nil
}

// PublishWishlistUpdated publishes a wishlist.updated event.
func (p *Producer) PublishWishlistUpdated(ctx context.Context, ownerID string, guest bool, wishlist *domain.Wishlist) error {
	data := WishlistUpdatedData{
		OwnerID:   ownerID,
		Guest:     guest,
		Entries:   wishlist.Entries,
		ItemCount: wishlist.ItemCount(),
	}

	event, err := pkgkafka.NewEvent(TopicWishlistUpdated, ownerID, AggregateTypeWishlist, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create wishlist.updated event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicWishlistUpdated, event); err != nil {
		return fmt.Errorf("publish wishlist.updated event: %w", err)
	}

	return nil
}

// PublishWishlistMigrated publishes a wishlist.migrated event.
func (p *Producer) PublishWishlistMigrated(ctx context.Context, sessionID, userID string, itemCount int) error {
	data := MigratedData{SessionID: sessionID, UserID: userID, ItemCount: itemCount}

	event, err := pkgkafka.NewEvent(TopicWishlistMigrated, userID, AggregateTypeWishlist, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create wishlist.migrated event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicWishlistMigrated, event); err != nil {
		return fmt.Errorf("publish wishlist.migrated event: %w", err)
	}

	return nil
}

// PublishOrderPlaced publishes an order.placed event.
func (p *Producer) PublishOrderPlaced(ctx context.Context, order *domain.Order) error {
	var itemCount int
	for _, l := range order.Lines {
		itemCount += l.Quantity
	}
	data := OrderPlacedData{
		OrderID:   order.ID,
		UserID:    order.UserID,
		ItemCount: itemCount,
		Total:     order.Total,
	}

	event, err := pkgkafka.NewEvent(TopicOrderPlaced, order.ID, AggregateTypeOrder, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create order.placed event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicOrderPlaced, event); err != nil {
		return fmt.Errorf("publish order.placed event: %w", err)
	}

	p.logger.DebugContext(ctx, "published order.placed event",
		slog.String("order_id", order.ID),
		slog.String("user_id", order.UserID),
	)

	return nil
}

// PublishReviewCreated publishes a review.created event.
func (p *Producer) PublishReviewCreated(ctx context.Context, review *domain.Review) error {
	data := ReviewCreatedData{
		ReviewID:  review.ID,
		ProductID: review.ProductID,
		UserID:    review.UserID,
		Rating:    review.Rating,
	}

	event, err := pkgkafka.NewEvent(TopicReviewCreated, review.ID, AggregateTypeReview, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create review.created event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicReviewCreated, event); err != nil {
		return fmt.Errorf("publish review.created event: %w", err)
	}

	return nil
}

// PublishProfileUpdated publishes a profile.updated event.
func (p *Producer) PublishProfileUpdated(ctx context.Context, userID string) error {
	data := ProfileUpdatedData{UserID: userID}

	event, err := pkgkafka.NewEvent(TopicProfileUpdated, userID, AggregateTypeProfile, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create profile.updated event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicProfileUpdated, event); err != nil {
		return fmt.Errorf("publish profile.updated event: %w", err)
	}

	return nil
}
