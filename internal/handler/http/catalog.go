package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/adil24689/fashion-haven-hub-sub000/internal/catalog"
	"github.com/adil24689/fashion-haven-hub-sub000/internal/service"
	apperrors "github.com/adil24689/fashion-haven-hub-sub000/pkg/errors"
	"github.com/adil24689/fashion-haven-hub-sub000/pkg/httputil"
)

// CatalogHandler handles HTTP requests for the product catalog.
type CatalogHandler struct {
	service *service.CatalogService
	logger  *slog.Logger
}

// NewCatalogHandler creates a new catalog HTTP handler.
func NewCatalogHandler(svc *service.CatalogService, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: svc,
		logger:  logger,
	}
}

// ProductListResponse is the filtered, sorted product list.
type ProductListResponse struct {
	Products []catalog.Product `json:"products"`
	Total    int               `json:"total"`
	SortBy   string            `json:"sort_by"`
}

// ListProducts handles GET /api/v1/products
//
// Query parameters: category, min_price, max_price, sizes, colors, brands,
// discount, availability (comma-separated lists), and sort. An unknown sort
// value falls back to featured.
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	filter, err := filterFromQuery(r)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	products, err := h.service.ListProducts(r.Context(), filter)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	sortBy := filter.SortBy
	if !catalog.IsValidSort(sortBy) {
		sortBy = catalog.SortFeatured
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: ProductListResponse{
		Products: products,
		Total:    len(products),
		SortBy:   sortBy,
	}})
}

func filterFromQuery(r *http.Request) (catalog.Filter, error) {
	q := r.URL.Query()

	f := catalog.Filter{
		Category:     q.Get("category"),
		Sizes:        splitParam(q.Get("sizes")),
		Colors:       splitParam(q.Get("colors")),
		Brands:       splitParam(q.Get("brands")),
		Availability: splitParam(q.Get("availability")),
		SortBy:       q.Get("sort"),
	}

	var err error
	if f.MinPrice, err = priceParam(q.Get("min_price"), "min_price"); err != nil {
		return catalog.Filter{}, err
	}
	if f.MaxPrice, err = priceParam(q.Get("max_price"), "max_price"); err != nil {
		return catalog.Filter{}, err
	}

	for _, raw := range splitParam(q.Get("discount")) {
		tier, err := strconv.Atoi(raw)
		if err != nil || tier < 0 {
			return catalog.Filter{}, apperrInvalidQuery("discount", raw)
		}
		f.DiscountTiers = append(f.DiscountTiers, tier)
	}

	return f, nil
}

func splitParam(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func apperrInvalidQuery(param, value string) error {
	return apperrors.InvalidInput(fmt.Sprintf("invalid %s value: %q", param, value))
}

func priceParam(raw, name string) (*int64, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v < 0 {
		return nil, apperrInvalidQuery(name, raw)
	}
	return &v, nil
}
