package http

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adil24689/fashion-haven-hub-sub000/internal/domain"
	"github.com/adil24689/fashion-haven-hub-sub000/internal/guest"
	"github.com/adil24689/fashion-haven-hub-sub000/internal/identity"
	"github.com/adil24689/fashion-haven-hub-sub000/internal/store"
	"github.com/adil24689/fashion-haven-hub-sub000/pkg/httputil"
)

// ============================================================================
// Stub remote repositories
//
// Handler tests exercise guest sessions; remote persistence is not reached.
// ============================================================================

type stubCartRepo struct{}

func (stubCartRepo) ListByUser(ctx context.Context, userID string) ([]domain.CartLine, error) {
	return []domain.CartLine{}, nil
}
func (stubCartRepo) Upsert(ctx context.Context, userID string, line domain.CartLine) error {
	return nil
}
func (stubCartRepo) UpdateQuantityByProduct(ctx context.Context, userID, productID string, quantity int) error {
	return nil
}
func (stubCartRepo) DeleteByProduct(ctx context.Context, userID, productID string) error { return nil }
func (stubCartRepo) DeleteAllByUser(ctx context.Context, userID string) error            { return nil }

type stubWishlistRepo struct{}

func (stubWishlistRepo) ListByUser(ctx context.Context, userID string) ([]domain.WishlistEntry, error) {
	return []domain.WishlistEntry{}, nil
}
func (stubWishlistRepo) Add(ctx context.Context, userID string, entry domain.WishlistEntry) error {
	return nil
}
func (stubWishlistRepo) Remove(ctx context.Context, userID, productID string) error { return nil }
func (stubWishlistRepo) RemoveAllByUser(ctx context.Context, userID string) error   { return nil }

// ============================================================================
// Test helpers
// ============================================================================

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func testStoreManager(t *testing.T) *store.Manager {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	logger := testLogger()
	return store.NewManager(store.ManagerConfig{
		Identity:     identity.NewProvider(logger),
		Guest:        guest.NewStore(client, 24*time.Hour, logger),
		CartRepo:     stubCartRepo{},
		WishlistRepo: stubWishlistRepo{},
		Logger:       logger,
	})
}

// setupCartRouter creates a chi router matching the production route layout
// so the session middleware is tested end-to-end.
func setupCartRouter(t *testing.T) http.Handler {
	t.Helper()
	handler := NewCartHandler(testStoreManager(t), testLogger())

	r := chi.NewRouter()
	r.Route("/api/v1/cart", func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Use(SessionIDFromHeader)

		r.Get("/", handler.GetCart)
		r.Delete("/", handler.ClearCart)
		r.Post("/items", handler.AddItem)
		r.Put("/items/{productId}", handler.UpdateQuantity)
		r.Delete("/items/{productId}", handler.RemoveItem)
	})
	return r
}

// decodeResponse reads the response body into the standard Response struct.
func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) httputil.Response {
	t.Helper()
	var resp httputil.Response
	err := json.NewDecoder(rec.Body).Decode(&resp)
	require.NoError(t, err)
	return resp
}

func decodeCart(t *testing.T, rec *httptest.ResponseRecorder) CartResponse {
	t.Helper()
	var resp struct {
		Data CartResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp.Data
}

func addItemBody(t *testing.T, productID string, price int64, qty int, size string) *bytes.Buffer {
	t.Helper()
	body, err := json.Marshal(AddCartItemRequest{
		ProductID: productID,
		Name:      "Test Product " + productID,
		Price:     price,
		Quantity:  qty,
		Size:      size,
	})
	require.NoError(t, err)
	return bytes.NewBuffer(body)
}

func doRequest(router http.Handler, method, path string, body *bytes.Buffer, sessionID string) *httptest.ResponseRecorder {
	if body == nil {
		body = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if sessionID != "" {
		req.Header.Set("X-Session-ID", sessionID)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

// ============================================================================
// Tests
// ============================================================================

func TestCartHandler_MissingSessionHeader(t *testing.T) {
	router := setupCartRouter(t)

	rec := doRequest(router, http.MethodGet, "/api/v1/cart", nil, "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INVALID_INPUT", resp.Error.Code)
}

func TestCartHandler_GetCart_Empty(t *testing.T) {
	router := setupCartRouter(t)

	rec := doRequest(router, http.MethodGet, "/api/v1/cart", nil, "sess-1")

	require.Equal(t, http.StatusOK, rec.Code)
	cart := decodeCart(t, rec)
	assert.Len(t, cart.Lines, 0)
	assert.Equal(t, int64(0), cart.Totals.Subtotal)
	assert.Equal(t, int64(100), cart.Totals.Shipping)
}

func TestCartHandler_AddItem(t *testing.T) {
	router := setupCartRouter(t)

	rec := doRequest(router, http.MethodPost, "/api/v1/cart/items", addItemBody(t, "prod-1", 1200, 2, "M"), "sess-1")

	require.Equal(t, http.StatusOK, rec.Code)
	cart := decodeCart(t, rec)
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, 2, cart.Lines[0].Quantity)
	assert.Equal(t, int64(2400), cart.Totals.Subtotal)
	assert.Equal(t, int64(0), cart.Totals.Shipping, "free shipping at 2000")
}

func TestCartHandler_AddItem_MergesSameVariant(t *testing.T) {
	router := setupCartRouter(t)

	doRequest(router, http.MethodPost, "/api/v1/cart/items", addItemBody(t, "prod-1", 600, 1, "M"), "sess-1")
	rec := doRequest(router, http.MethodPost, "/api/v1/cart/items", addItemBody(t, "prod-1", 600, 2, "M"), "sess-1")

	require.Equal(t, http.StatusOK, rec.Code)
	cart := decodeCart(t, rec)
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, 3, cart.Lines[0].Quantity)
}

func TestCartHandler_AddItem_ValidationError(t *testing.T) {
	router := setupCartRouter(t)

	body, err := json.Marshal(AddCartItemRequest{ProductID: "", Name: "", Quantity: 0})
	require.NoError(t, err)

	rec := doRequest(router, http.MethodPost, "/api/v1/cart/items", bytes.NewBuffer(body), "sess-1")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
}

func TestCartHandler_UpdateQuantity_ZeroRemoves(t *testing.T) {
	router := setupCartRouter(t)

	doRequest(router, http.MethodPost, "/api/v1/cart/items", addItemBody(t, "prod-1", 600, 2, "M"), "sess-1")

	body, err := json.Marshal(UpdateQuantityRequest{Quantity: 0})
	require.NoError(t, err)
	rec := doRequest(router, http.MethodPut, "/api/v1/cart/items/prod-1", bytes.NewBuffer(body), "sess-1")

	require.Equal(t, http.StatusOK, rec.Code)
	cart := decodeCart(t, rec)
	assert.Len(t, cart.Lines, 0)
}

func TestCartHandler_UpdateQuantity_NegativeRemoves(t *testing.T) {
	router := setupCartRouter(t)

	doRequest(router, http.MethodPost, "/api/v1/cart/items", addItemBody(t, "prod-1", 600, 2, "M"), "sess-1")

	body, err := json.Marshal(UpdateQuantityRequest{Quantity: -3})
	require.NoError(t, err)
	rec := doRequest(router, http.MethodPut, "/api/v1/cart/items/prod-1", bytes.NewBuffer(body), "sess-1")

	require.Equal(t, http.StatusOK, rec.Code)
	cart := decodeCart(t, rec)
	assert.Len(t, cart.Lines, 0)
}

func TestCartHandler_RemoveItem_DropsAllVariants(t *testing.T) {
	router := setupCartRouter(t)

	doRequest(router, http.MethodPost, "/api/v1/cart/items", addItemBody(t, "prod-1", 600, 1, "M"), "sess-1")
	doRequest(router, http.MethodPost, "/api/v1/cart/items", addItemBody(t, "prod-1", 600, 1, "L"), "sess-1")
	doRequest(router, http.MethodPost, "/api/v1/cart/items", addItemBody(t, "prod-2", 900, 1, ""), "sess-1")

	rec := doRequest(router, http.MethodDelete, "/api/v1/cart/items/prod-1", nil, "sess-1")

	require.Equal(t, http.StatusOK, rec.Code)
	cart := decodeCart(t, rec)
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, "prod-2", cart.Lines[0].ProductID)
}

func TestCartHandler_ClearCart(t *testing.T) {
	router := setupCartRouter(t)

	doRequest(router, http.MethodPost, "/api/v1/cart/items", addItemBody(t, "prod-1", 600, 1, "M"), "sess-1")
	rec := doRequest(router, http.MethodDelete, "/api/v1/cart", nil, "sess-1")

	require.Equal(t, http.StatusOK, rec.Code)
	cart := decodeCart(t, rec)
	assert.Len(t, cart.Lines, 0)
}

func TestCartHandler_SessionsAreIsolated(t *testing.T) {
	router := setupCartRouter(t)

	doRequest(router, http.MethodPost, "/api/v1/cart/items", addItemBody(t, "prod-1", 600, 1, "M"), "sess-1")
	rec := doRequest(router, http.MethodGet, "/api/v1/cart", nil, "sess-2")

	require.Equal(t, http.StatusOK, rec.Code)
	cart := decodeCart(t, rec)
	assert.Len(t, cart.Lines, 0)
}

func TestCartHandler_UnsupportedMediaType(t *testing.T) {
	router := setupCartRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", bytes.NewBufferString("product_id=prod-1"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("X-Session-ID", "sess-1")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}
