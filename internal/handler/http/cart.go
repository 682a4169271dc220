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

// CartHandler handles HTTP requests for cart endpoints. All mutations apply
// to the in-memory session state synchronously, so the response always
// reflects the new cart.
type CartHandler struct {
	stores *store.Manager
	logger *slog.Logger
}

// NewCartHandler creates a new cart HTTP handler.
func NewCartHandler(stores *store.Manager, logger *slog.Logger) *CartHandler {
	return &CartHandler{
		stores: stores,
		logger: logger,
	}
}

// --- Request DTOs ---

// AddCartItemRequest is the JSON request body for adding an item to the cart.
type AddCartItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Name      string `json:"name" validate:"required,min=1,max=500"`
	Price     int64  `json:"price" validate:"gte=0"`
	Quantity  int    `json:"quantity" validate:"required,gte=1"`
	Size      string `json:"size"`
	Color     string `json:"color"`
	ImageURL  string `json:"image_url"`
}

// UpdateQuantityRequest is the JSON request body for updating a product's
// quantity. A quantity of zero or below removes the product.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// CartResponse is the cart state returned by every cart endpoint.
type CartResponse struct {
	Lines  []domain.CartLine `json:"lines"`
	Totals domain.Totals     `json:"totals"`
}

func cartResponse(s *store.CartStore) CartResponse {
	return CartResponse{Lines: s.Lines(), Totals: s.Totals()}
}

// --- Handlers ---

// GetCart handles GET /api/v1/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	s := h.stores.Cart(r.Context(), sessionIDFromContext(r.Context()))
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: cartResponse(s)})
}

// AddItem handles POST /api/v1/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddCartItemRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	s := h.stores.Cart(r.Context(), sessionIDFromContext(r.Context()))
	s.AddItem(r.Context(), domain.CartLine{
		ProductID: req.ProductID,
		Name:      req.Name,
		Price:     req.Price,
		Quantity:  req.Quantity,
		Size:      req.Size,
		Color:     req.Color,
		ImageURL:  req.ImageURL,
	})

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: cartResponse(s)})
}

// UpdateQuantity handles PUT /api/v1/cart/items/{productId}
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")
	if productID == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "productId is required"},
		})
		return
	}

	var req UpdateQuantityRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	s := h.stores.Cart(r.Context(), sessionIDFromContext(r.Context()))
	s.UpdateQuantity(r.Context(), productID, req.Quantity)

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: cartResponse(s)})
}

// RemoveItem handles DELETE /api/v1/cart/items/{productId}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")
	if productID == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "productId is required"},
		})
		return
	}

	s := h.stores.Cart(r.Context(), sessionIDFromContext(r.Context()))
	s.RemoveItem(r.Context(), productID)

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: cartResponse(s)})
}

// ClearCart handles DELETE /api/v1/cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	s := h.stores.Cart(r.Context(), sessionIDFromContext(r.Context()))
	s.Clear(r.Context())

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: cartResponse(s)})
}
