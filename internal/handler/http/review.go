package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/adil24689/fashion-haven-hub-sub000/internal/domain"
	"github.com/adil24689/fashion-haven-hub-sub000/internal/identity"
	"github.com/adil24689/fashion-haven-hub-sub000/internal/service"
	"github.com/adil24689/fashion-haven-hub-sub000/pkg/httputil"
	"github.com/adil24689/fashion-haven-hub-sub000/pkg/pagination"
	"github.com/adil24689/fashion-haven-hub-sub000/pkg/validator"
)

// ReviewHandler handles HTTP requests for product reviews.
type ReviewHandler struct {
	service  *service.ReviewService
	identity *identity.Provider
	logger   *slog.Logger
}

// NewReviewHandler creates a new review HTTP handler.
func NewReviewHandler(svc *service.ReviewService, provider *identity.Provider, logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{
		service:  svc,
		identity: provider,
		logger:   logger,
	}
}

// CreateReviewRequest is the JSON request body for creating a review.
type CreateReviewRequest struct {
	Rating int    `json:"rating" validate:"required,gte=1,lte=5"`
	Title  string `json:"title" validate:"max=200"`
	Body   string `json:"body" validate:"required,min=1,max=5000"`
}

// ReviewListResponse is a page of a product's reviews.
type ReviewListResponse struct {
	Reviews    []domain.Review   `json:"reviews"`
	Pagination pagination.Params `json:"pagination"`
	Total      int               `json:"total"`
}

// CreateReview handles POST /api/v1/products/{productId}/reviews
func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")
	if productID == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "productId is required"},
		})
		return
	}

	var req CreateReviewRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	userID := h.identity.CurrentUser(sessionIDFromContext(r.Context()))

	review, err := h.service.Create(r.Context(), service.CreateReviewInput{
		ProductID: productID,
		UserID:    userID,
		Rating:    req.Rating,
		Title:     req.Title,
		Body:      req.Body,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: review})
}

// ListReviews handles GET /api/v1/products/{productId}/reviews
func (h *ReviewHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")
	if productID == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "productId is required"},
		})
		return
	}

	params := pagination.FromRequest(r)
	reviews, total, err := h.service.ListByProduct(r.Context(), productID, params)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: ReviewListResponse{
		Reviews:    reviews,
		Pagination: params,
		Total:      total,
	}})
}
