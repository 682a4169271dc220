package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupWishlistRouter creates a chi router matching the production route
// layout for the wishlist group.
func setupWishlistRouter(t *testing.T) http.Handler {
	t.Helper()
	handler := NewWishlistHandler(testStoreManager(t), testLogger())

	r := chi.NewRouter()
	r.Route("/api/v1/wishlist", func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Use(SessionIDFromHeader)

		r.Get("/", handler.GetWishlist)
		r.Delete("/", handler.ClearWishlist)
		r.Post("/items", handler.AddItem)
		r.Post("/toggle", handler.Toggle)
		r.Get("/contains/{productId}", handler.Contains)
		r.Delete("/items/{productId}", handler.RemoveItem)
	})
	return r
}

func wishlistEntryBody(t *testing.T, productID string) *bytes.Buffer {
	t.Helper()
	body, err := json.Marshal(WishlistEntryRequest{
		ProductID: productID,
		Name:      "Test Product " + productID,
		Price:     1800,
		Category:  "Accessories",
	})
	require.NoError(t, err)
	return bytes.NewBuffer(body)
}

func decodeContains(t *testing.T, rec *httptest.ResponseRecorder) ContainsResponse {
	t.Helper()
	var resp struct {
		Data ContainsResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp.Data
}

func TestWishlistHandler_Contains_AbsentProduct(t *testing.T) {
	router := setupWishlistRouter(t)

	rec := doRequest(router, http.MethodGet, "/api/v1/wishlist/contains/prod-1", nil, "sess-1")

	require.Equal(t, http.StatusOK, rec.Code)
	result := decodeContains(t, rec)
	assert.Equal(t, "prod-1", result.ProductID)
	assert.False(t, result.InWishlist)
}

func TestWishlistHandler_Contains_AfterAdd(t *testing.T) {
	router := setupWishlistRouter(t)

	doRequest(router, http.MethodPost, "/api/v1/wishlist/items", wishlistEntryBody(t, "prod-1"), "sess-1")
	rec := doRequest(router, http.MethodGet, "/api/v1/wishlist/contains/prod-1", nil, "sess-1")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decodeContains(t, rec).InWishlist)
}

func TestWishlistHandler_Contains_AfterToggleOff(t *testing.T) {
	router := setupWishlistRouter(t)

	doRequest(router, http.MethodPost, "/api/v1/wishlist/toggle", wishlistEntryBody(t, "prod-1"), "sess-1")
	doRequest(router, http.MethodPost, "/api/v1/wishlist/toggle", wishlistEntryBody(t, "prod-1"), "sess-1")
	rec := doRequest(router, http.MethodGet, "/api/v1/wishlist/contains/prod-1", nil, "sess-1")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, decodeContains(t, rec).InWishlist)
}

func TestWishlistHandler_Contains_SessionScoped(t *testing.T) {
	router := setupWishlistRouter(t)

	doRequest(router, http.MethodPost, "/api/v1/wishlist/items", wishlistEntryBody(t, "prod-1"), "sess-1")
	rec := doRequest(router, http.MethodGet, "/api/v1/wishlist/contains/prod-1", nil, "sess-2")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, decodeContains(t, rec).InWishlist)
}

func TestWishlistHandler_Contains_MissingSessionHeader(t *testing.T) {
	router := setupWishlistRouter(t)

	rec := doRequest(router, http.MethodGet, "/api/v1/wishlist/contains/prod-1", nil, "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
