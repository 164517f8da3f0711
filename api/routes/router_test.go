package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vkuzmenko/techstore-backend/internal/cart"
	"github.com/vkuzmenko/techstore-backend/internal/catalog"
	"github.com/vkuzmenko/techstore-backend/internal/orders"
	"github.com/vkuzmenko/techstore-backend/pkg/config"
	"github.com/vkuzmenko/techstore-backend/pkg/db/models"
	"github.com/vkuzmenko/techstore-backend/pkg/logger"
	"github.com/vkuzmenko/techstore-backend/pkg/metrics"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type routerCatalogStub struct{}

func (routerCatalogStub) ListCategories(context.Context) ([]catalog.CategoryEntry, error) {
	return []catalog.CategoryEntry{}, nil
}

func (routerCatalogStub) ListNotebooks(context.Context) ([]catalog.NotebookDTO, error) {
	return []catalog.NotebookDTO{}, nil
}

func (routerCatalogStub) ListSmartphones(context.Context) ([]catalog.SmartphoneDTO, error) {
	return []catalog.SmartphoneDTO{}, nil
}

func (routerCatalogStub) LatestProducts(context.Context, string) ([]catalog.LatestProduct, error) {
	return []catalog.LatestProduct{}, nil
}

func (routerCatalogStub) GetProductDetail(context.Context, string, string) (*catalog.ProductDetail, error) {
	return &catalog.ProductDetail{}, nil
}

func (routerCatalogStub) ResolveProduct(context.Context, catalog.ProductRef) (*catalog.ProductSnapshot, error) {
	return &catalog.ProductSnapshot{}, nil
}

func (routerCatalogStub) CreateCategory(context.Context, catalog.CreateCategoryInput) (*models.Category, error) {
	return &models.Category{}, nil
}

func (routerCatalogStub) CreateNotebook(context.Context, catalog.CreateNotebookInput) (*models.Notebook, error) {
	return &models.Notebook{}, nil
}

func (routerCatalogStub) CreateSmartphone(context.Context, catalog.CreateSmartphoneInput) (*models.Smartphone, error) {
	return &models.Smartphone{}, nil
}

type routerCartStub struct{}

func (routerCartStub) GetCart(context.Context, cart.Ref) (*cart.DTO, error) {
	return &cart.DTO{}, nil
}

func (routerCartStub) AddItem(context.Context, cart.Ref, catalog.ProductRef, int) (*cart.DTO, error) {
	return &cart.DTO{}, nil
}

func (routerCartStub) ChangeQty(context.Context, cart.Ref, uuid.UUID, int) (*cart.DTO, error) {
	return &cart.DTO{}, nil
}

func (routerCartStub) RemoveItem(context.Context, cart.Ref, uuid.UUID) (*cart.DTO, error) {
	return &cart.DTO{}, nil
}

func (routerCartStub) ResolveCart(context.Context, cart.Ref) (*models.Cart, error) {
	return &models.Cart{}, nil
}

type routerOrdersStub struct{}

func (routerOrdersStub) Checkout(context.Context, orders.CheckoutInput) (*orders.DTO, error) {
	return &orders.DTO{}, nil
}

func (routerOrdersStub) UpdateStatus(context.Context, uuid.UUID, string) (*orders.DTO, error) {
	return &orders.DTO{}, nil
}

func (routerOrdersStub) ListCustomerOrders(context.Context, orders.HistoryParams) (*orders.HistoryResult, error) {
	return &orders.HistoryResult{}, nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	cfg := &config.Config{}
	cfg.App.Env = "test"
	logg := logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("debug"), Output: io.Discard})
	registry := prometheus.NewRegistry()

	return NewRouter(
		cfg,
		logg,
		stubPinger{},
		stubPinger{},
		metrics.NewHTTPMetrics(registry),
		registry,
		routerCatalogStub{},
		routerCartStub{},
		routerOrdersStub{},
	)
}

func TestRouterRoutes(t *testing.T) {
	router := newTestRouter(t)

	cases := []struct {
		method string
		path   string
		status int
	}{
		{http.MethodGet, "/health/live", http.StatusOK},
		{http.MethodGet, "/health/ready", http.StatusOK},
		{http.MethodGet, "/metrics", http.StatusOK},
		{http.MethodGet, "/api/v1/categories", http.StatusOK},
		{http.MethodGet, "/api/v1/smartphones", http.StatusOK},
		{http.MethodGet, "/api/v1/notebooks", http.StatusOK},
		{http.MethodGet, "/api/v1/products/latest", http.StatusOK},
		{http.MethodGet, "/api/v1/products/notebook/some-slug", http.StatusOK},
		{http.MethodGet, "/api/v1/cart", http.StatusOK},
		{http.MethodGet, "/api/v1/customers/" + uuid.NewString() + "/orders", http.StatusOK},
		{http.MethodGet, "/api/v1/unknown", http.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			assert.Equal(t, tc.status, rec.Code)
		})
	}
}

func TestRouterSetsRequestID(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}
