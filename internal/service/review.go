package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/adil24689/fashion-haven-hub-sub000/internal/domain"
	"github.com/adil24689/fashion-haven-hub-sub000/internal/event"
	"github.com/adil24689/fashion-haven-hub-sub000/internal/repository"
	apperrors "github.com/adil24689/fashion-haven-hub-sub000/pkg/errors"
	"github.com/adil24689/fashion-haven-hub-sub000/pkg/pagination"
)

// ReviewService implements the business logic for product reviews.
type ReviewService struct {
	reviewRepo repository.ReviewRepository
	producer   *event.Producer
	logger     *slog.Logger
}

// NewReviewService creates a new review service.
func NewReviewService(reviewRepo repository.ReviewRepository, producer *event.Producer, logger *slog.Logger) *ReviewService {
	return &ReviewService{
		reviewRepo: reviewRepo,
		producer:   producer,
		logger:     logger,
	}
}

// CreateReviewInput holds the parameters for creating a review.
type CreateReviewInput struct {
	ProductID string
	UserID    string
	Rating    int
	Title     string
	Body      string
}

// Create validates and stores a review.
func (s *ReviewService) Create(ctx context.Context, input CreateReviewInput) (*domain.Review, error) {
	if input.UserID == "" {
		return nil, apperrors.Unauthorized("sign in to review products")
	}
	if input.Rating < 1 || input.Rating > 5 {
		return nil, apperrors.InvalidInput("rating must be between 1 and 5")
	}
	if strings.TrimSpace(input.Body) == "" {
		return nil, apperrors.InvalidInput("review body must not be empty")
	}

	review := &domain.Review{
		ID:        uuid.New().String(),
		ProductID: input.ProductID,
		UserID:    input.UserID,
		Rating:    input.Rating,
		Title:     strings.TrimSpace(input.Title),
		Body:      strings.TrimSpace(input.Body),
		CreatedAt: time.Now().UTC(),
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}

	// Publish review event (non-blocking on failure).
	if err := s.producer.PublishReviewCreated(ctx, review); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish review.created event",
			slog.String("review_id", review.ID),
			slog.String("error", err.Error()),
		)
	}

	return review, nil
}

// ListByProduct returns a page of the product's reviews, newest first.
func (s *ReviewService) ListByProduct(ctx context.Context, productID string, params pagination.Params) ([]domain.Review, int, error) {
	return s.reviewRepo.ListByProduct(ctx, productID, params.PerPage, params.Offset)
}
