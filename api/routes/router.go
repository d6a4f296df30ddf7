package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/storefront/api/controllers"
	"github.com/angelmondragon/storefront/api/middleware"
	"github.com/angelmondragon/storefront/internal/storefront"
	"github.com/angelmondragon/storefront/pkg/config"
	"github.com/angelmondragon/storefront/pkg/logger"
	"github.com/angelmondragon/storefront/pkg/metrics"
	"github.com/angelmondragon/storefront/pkg/redis"
)

// Observability groups the optional metrics plumbing. A nil Gatherer
// leaves /metrics unmounted.
type Observability struct {
	Gatherer    prometheus.Gatherer
	HTTPMetrics *metrics.HTTPMetrics
}

// NewRouter mounts the storefront API. limiter may be nil, in which case cart
// writes are not throttled.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	svc storefront.Service,
	limiter redis.RateLimiter,
	obs Observability,
	readiness ...controllers.ReadinessCheck,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(obs.HTTPMetrics),
		middleware.CORS(cfg.App.CORSAllowedOrigins),
	)

	cartPolicy := middleware.NewRateLimitPolicy(
		"cart",
		cfg.RateLimit.Window,
		cfg.RateLimit.CartWrites,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, readiness...))
	})

	if obs.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(obs.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/categories", controllers.ListCategories(svc))
		r.Get("/categories/{category}/products", controllers.ListCategoryProducts(svc, logg))

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(svc, logg))
			r.Get("/featured", controllers.FeaturedProducts(svc, cfg.Catalog.FeaturedLimit, logg))
			r.Get("/{productId}", controllers.GetProduct(svc, logg))
		})

		r.Post("/sessions", controllers.CreateSession(svc, logg))
		r.Route("/sessions/{"+middleware.SessionIDParam+"}", func(r chi.Router) {
			r.Use(middleware.SessionContext(logg))
			r.Use(middleware.RateLimit(cartPolicy, limiter, logg))

			r.Delete("/", controllers.DeleteSession(svc, logg))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.GetCart(svc, logg))
				r.Delete("/", controllers.ClearCart(svc, logg))
				r.Post("/items", controllers.AddCartItem(svc, logg))
				r.Patch("/items/{productId}", controllers.UpdateCartItem(svc, logg))
				r.Delete("/items/{productId}", controllers.RemoveCartItem(svc, logg))
			})

			r.Get("/theme", controllers.GetTheme(svc, logg))
			r.Post("/theme/toggle", controllers.ToggleTheme(svc, logg))
		})
	})

	return r
}
