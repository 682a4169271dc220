package http

import (
	"log/slog"
	"net/http"

	"github.com/adil24689/fashion-haven-hub-sub000/internal/domain"
	"github.com/adil24689/fashion-haven-hub-sub000/internal/identity"
	"github.com/adil24689/fashion-haven-hub-sub000/internal/service"
	"github.com/adil24689/fashion-haven-hub-sub000/pkg/httputil"
	"github.com/adil24689/fashion-haven-hub-sub000/pkg/pagination"
)

// CheckoutHandler handles HTTP requests for checkout and order history.
type CheckoutHandler struct {
	service  *service.CheckoutService
	identity *identity.Provider
	logger   *slog.Logger
}

// NewCheckoutHandler creates a new checkout HTTP handler.
func NewCheckoutHandler(svc *service.CheckoutService, provider *identity.Provider, logger *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		service:  svc,
		identity: provider,
		logger:   logger,
	}
}

// OrderListResponse is a page of the user's order history.
type OrderListResponse struct {
	Orders     []domain.Order    `json:"orders"`
	Pagination pagination.Params `json:"pagination"`
	Total      int               `json:"total"`
}

// PlaceOrder handles POST /api/v1/checkout
func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	sessionID := sessionIDFromContext(r.Context())
	userID := h.identity.CurrentUser(sessionID)

	order, err := h.service.PlaceOrder(r.Context(), sessionID, userID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: order})
}

// ListOrders handles GET /api/v1/orders
func (h *CheckoutHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	userID := h.identity.CurrentUser(sessionIDFromContext(r.Context()))
	params := pagination.FromRequest(r)

	orders, total, err := h.service.ListOrders(r.Context(), userID, params)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: OrderListResponse{
		Orders:     orders,
		Pagination: params,
		Total:      total,
	}})
}
