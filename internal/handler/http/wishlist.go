package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/adil24689/fashion-haven-hub-sub000/internal/domain"
	"github.com/adil24689/fashion-haven-hub-sub000/internal/store"
	"github.com/adil24689/fashion-haven-hub-sub000/pkg/httputil"
	"github.com/adil24689/fashion-haven-hub-sub000/pkg/validator"
)

// WishlistHandler handles HTTP requests for wishlist endpoints.
type WishlistHandler struct {
	stores *store.Manager
	logger *slog.Logger
}

// NewWishlistHandler creates a new wishlist HTTP handler.
func NewWishlistHandler(stores *store.Manager, logger *slog.Logger) *WishlistHandler {
	return &WishlistHandler{
		stores: stores,
		logger: logger,
	}
}

// WishlistEntryRequest is the JSON request body for adding or toggling a
// wishlist entry.
type WishlistEntryRequest struct {
	ProductID     string `json:"product_id" validate:"required"`
	Name          string `json:"name" validate:"required,min=1,max=500"`
	Price         int64  `json:"price" validate:"gte=0"`
	OriginalPrice *int64 `json:"original_price"`
	ImageURL      string `json:"image_url"`
	Category      string `json:"category"`
}

func (r WishlistEntryRequest) entry() domain.WishlistEntry {
	return domain.WishlistEntry{
		ProductID:     r.ProductID,
		Name:          r.Name,
		Price:         r.Price,
		OriginalPrice: r.OriginalPrice,
		ImageURL:      r.ImageURL,
		Category:      r.Category,
	}
}

// WishlistResponse is the wishlist state returned by every wishlist endpoint.
type WishlistResponse struct {
	Entries   []domain.WishlistEntry `json:"entries"`
	ItemCount int                    `json:"item_count"`
}

// ToggleResponse augments the wishlist state with the toggle outcome.
type ToggleResponse struct {
	WishlistResponse
	Added bool `json:"added"`
}

// ContainsResponse is the membership answer for one product.
type ContainsResponse struct {
	ProductID  string `json:"product_id"`
	InWishlist bool   `json:"in_wishlist"`
}

func wishlistResponse(s *store.WishlistStore) WishlistResponse {
	return WishlistResponse{Entries: s.Entries(), ItemCount: s.ItemCount()}
}

// GetWishlist handles GET /api/v1/wishlist
func (h *WishlistHandler) GetWishlist(w http.ResponseWriter, r *http.Request) {
	s := h.stores.Wishlist(r.Context(), sessionIDFromContext(r.Context()))
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: wishlistResponse(s)})
}

// AddItem handles POST /api/v1/wishlist/items
func (h *WishlistHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req WishlistEntryRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	s := h.stores.Wishlist(r.Context(), sessionIDFromContext(r.Context()))
	s.AddItem(r.Context(), req.entry())

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: wishlistResponse(s)})
}

// Toggle handles POST /api/v1/wishlist/toggle
func (h *WishlistHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	var req WishlistEntryRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	s := h.stores.Wishlist(r.Context(), sessionIDFromContext(r.Context()))
	added := s.Toggle(r.Context(), req.entry())

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: ToggleResponse{
		WishlistResponse: wishlistResponse(s),
		Added:            added,
	}})
}

// Contains handles GET /api/v1/wishlist/contains/{productId}
func (h *WishlistHandler) Contains(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")
	if productID == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "productId is required"},
		})
		return
	}

	s := h.stores.Wishlist(r.Context(), sessionIDFromContext(r.Context()))

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: ContainsResponse{
		ProductID:  productID,
		InWishlist: s.Contains(productID),
	}})
}

// RemoveItem handles DELETE /api/v1/wishlist/items/{productId}
func (h *WishlistHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")
	if productID == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "productId is required"},
		})
		return
	}

	s := h.stores.Wishlist(r.Context(), sessionIDFromContext(r.Context()))
	s.RemoveItem(r.Context(), productID)

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: wishlistResponse(s)})
}

// ClearWishlist handles DELETE /api/v1/wishlist
func (h *WishlistHandler) ClearWishlist(w http.ResponseWriter, r *http.Request) {
	s := h.stores.Wishlist(r.Context(), sessionIDFromContext(r.Context()))
	s.Clear(r.Context())

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: wishlistResponse(s)})
}
