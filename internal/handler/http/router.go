package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/adil24689/fashion-haven-hub-sub000/internal/identity"
	"github.com/adil24689/fashion-haven-hub-sub000/internal/service"
	"github.com/adil24689/fashion-haven-hub-sub000/internal/store"
	"github.com/adil24689/fashion-haven-hub-sub000/pkg/health"
	"github.com/adil24689/fashion-haven-hub-sub000/pkg/middleware"
)

// RouterConfig bundles the dependencies of the HTTP router.
type RouterConfig struct {
	Stores          *store.Manager
	Identity        *identity.Provider
	CatalogService  *service.CatalogService
	ProfileService  *service.ProfileService
	CheckoutService *service.CheckoutService
	ReviewService   *service.ReviewService
	HealthHandler   *health.Handler
	Logger          *slog.Logger
}

// NewRouter creates a chi router with all storefront routes registered.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(cfg.Logger))
	r.Use(middleware.PrometheusMetrics("storefront"))
	r.Use(middleware.Tracing("storefront"))
	r.Use(CORS)

	// Health check endpoints
	r.Get("/health/live", cfg.HealthHandler.LivenessHandler())
	r.Get("/health/ready", cfg.HealthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	cartHandler := NewCartHandler(cfg.Stores, cfg.Logger)
	wishlistHandler := NewWishlistHandler(cfg.Stores, cfg.Logger)
	sessionHandler := NewSessionHandler(cfg.Identity, cfg.Logger)
	catalogHandler := NewCatalogHandler(cfg.CatalogService, cfg.Logger)
	profileHandler := NewProfileHandler(cfg.ProfileService, cfg.Identity, cfg.Logger)
	checkoutHandler := NewCheckoutHandler(cfg.CheckoutService, cfg.Identity, cfg.Logger)
	reviewHandler := NewReviewHandler(cfg.ReviewService, cfg.Identity, cfg.Logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Use(SessionIDFromHeader)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.GetCart)
			r.Delete("/", cartHandler.ClearCart)
			r.Post("/items", cartHandler.AddItem)
			r.Put("/items/{productId}", cartHandler.UpdateQuantity)
			r.Delete("/items/{productId}", cartHandler.RemoveItem)
		})

		r.Route("/wishlist", func(r chi.Router) {
			r.Get("/", wishlistHandler.GetWishlist)
			r.Delete("/", wishlistHandler.ClearWishlist)
			r.Post("/items", wishlistHandler.AddItem)
			r.Post("/toggle", wishlistHandler.Toggle)
			r.Get("/contains/{productId}", wishlistHandler.Contains)
			r.Delete("/items/{productId}", wishlistHandler.RemoveItem)
		})

		r.Route("/session", func(r chi.Router) {
			r.Get("/", sessionHandler.GetSession)
			r.Post("/sign-in", sessionHandler.SignIn)
			r.Post("/sign-out", sessionHandler.SignOut)
		})

		r.Get("/products", catalogHandler.ListProducts)
		r.Route("/products/{productId}/reviews", func(r chi.Router) {
			r.Get("/", reviewHandler.ListReviews)
			r.Post("/", reviewHandler.CreateReview)
		})

		r.Route("/profile", func(r chi.Router) {
			r.Get("/", profileHandler.GetProfile)
			r.Put("/", profileHandler.UpdateProfile)
			r.Post("/avatar", profileHandler.UploadAvatar)
		})

		r.Post("/checkout", checkoutHandler.PlaceOrder)
		r.Get("/orders", checkoutHandler.ListOrders)
	})

	return r
}
