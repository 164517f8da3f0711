package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vkuzmenko/techstore-backend/api/controllers"
	"github.com/vkuzmenko/techstore-backend/api/middleware"
	"github.com/vkuzmenko/techstore-backend/internal/cart"
	"github.com/vkuzmenko/techstore-backend/internal/catalog"
	"github.com/vkuzmenko/techstore-backend/internal/orders"
	"github.com/vkuzmenko/techstore-backend/pkg/config"
	"github.com/vkuzmenko/techstore-backend/pkg/db"
	"github.com/vkuzmenko/techstore-backend/pkg/logger"
	"github.com/vkuzmenko/techstore-backend/pkg/metrics"
	"github.com/vkuzmenko/techstore-backend/pkg/redis"
)

// NewRouter assembles the HTTP surface: storefront reads, cart operations,
// checkout, and order management.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisP redis.Pinger,
	httpMetrics *metrics.HTTPMetrics,
	metricsRegistry prometheus.Gatherer,
	catalogService catalog.Service,
	cartService cart.Service,
	ordersService orders.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisP))
	})

	if metricsRegistry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(metricsRegistry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/categories", controllers.CategoriesList(catalogService, logg))
		r.Get("/smartphones", controllers.SmartphonesList(catalogService, logg))
		r.Get("/notebooks", controllers.NotebooksList(catalogService, logg))

		r.Route("/products", func(r chi.Router) {
			r.Get("/latest", controllers.LatestProducts(catalogService, logg))
			r.Get("/{kind}/{slug}", controllers.ProductDetail(catalogService, logg))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartFetch(cartService, logg))
			r.Post("/items", controllers.CartAddItem(cartService, logg))
			r.Patch("/items/{itemId}", controllers.CartChangeQty(cartService, logg))
			r.Delete("/items/{itemId}", controllers.CartRemoveItem(cartService, logg))
		})

		r.Post("/checkout", controllers.Checkout(ordersService, logg))

		r.Route("/orders", func(r chi.Router) {
			r.Patch("/{orderId}/status", controllers.OrderStatusUpdate(ordersService, logg))
		})

		r.Route("/customers", func(r chi.Router) {
			r.Get("/{customerId}/orders", controllers.CustomerOrders(ordersService, logg))
		})
	})

	return r
}
