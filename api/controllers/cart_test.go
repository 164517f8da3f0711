package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vkuzmenko/techstore-backend/internal/cart"
	"github.com/vkuzmenko/techstore-backend/internal/catalog"
	"github.com/vkuzmenko/techstore-backend/pkg/db/models"
)

type stubCartService struct {
	dto *cart.DTO
	err error

	lastRef     cart.Ref
	lastProduct catalog.ProductRef
	lastQty     int
	lastItemID  uuid.UUID
}

func (s *stubCartService) GetCart(_ context.Context, ref cart.Ref) (*cart.DTO, error) {
	s.lastRef = ref
	return s.dto, s.err
}

func (s *stubCartService) AddItem(_ context.Context, ref cart.Ref, product catalog.ProductRef, qty int) (*cart.DTO, error) {
	s.lastRef = ref
	s.lastProduct = product
	s.lastQty = qty
	return s.dto, s.err
}

func (s *stubCartService) ChangeQty(_ context.Context, ref cart.Ref, itemID uuid.UUID, qty int) (*cart.DTO, error) {
	s.lastRef = ref
	s.lastItemID = itemID
	s.lastQty = qty
	return s.dto, s.err
}

func (s *stubCartService) RemoveItem(_ context.Context, ref cart.Ref, itemID uuid.UUID) (*cart.DTO, error) {
	s.lastRef = ref
	s.lastItemID = itemID
	return s.dto, s.err
}

func (s *stubCartService) ResolveCart(_ context.Context, ref cart.Ref) (*models.Cart, error) {
	s.lastRef = ref
	return nil, s.err
}

func TestCartFetchMintsToken(t *testing.T) {
	stub := &stubCartService{dto: &cart.DTO{ID: uuid.New()}}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	rec := httptest.NewRecorder()
	CartFetch(stub, testLogger()).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	token := rec.Header().Get("X-Cart-Token")
	require.NotEmpty(t, token)
	assert.Equal(t, token, stub.lastRef.Token)
	assert.Nil(t, stub.lastRef.CustomerID)
}

func TestCartFetchReusesToken(t *testing.T) {
	stub := &stubCartService{dto: &cart.DTO{}}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.Header.Set("X-Cart-Token", "existing-token")
	rec := httptest.NewRecorder()
	CartFetch(stub, testLogger()).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "existing-token", stub.lastRef.Token)
	assert.Equal(t, "existing-token", rec.Header().Get("X-Cart-Token"))
}

func TestCartFetchCustomerHeader(t *testing.T) {
	stub := &stubCartService{dto: &cart.DTO{}}
	customerID := uuid.New()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.Header.Set("X-Customer-Id", customerID.String())
	rec := httptest.NewRecorder()
	CartFetch(stub, testLogger()).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, stub.lastRef.CustomerID)
	assert.Equal(t, customerID, *stub.lastRef.CustomerID)
}

func TestCartFetchBadCustomerHeader(t *testing.T) {
	stub := &stubCartService{dto: &cart.DTO{}}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.Header.Set("X-Customer-Id", "not-a-uuid")
	rec := httptest.NewRecorder()
	CartFetch(stub, testLogger()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCartAddItem(t *testing.T) {
	stub := &stubCartService{dto: &cart.DTO{}}
	productID := uuid.New()

	body := `{"product_kind":"smartphone","product_id":"` + productID.String() + `","qty":2}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(body))
	rec := httptest.NewRecorder()
	CartAddItem(stub, testLogger()).ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, productID, stub.lastProduct.ID)
	assert.Equal(t, 2, stub.lastQty)
}

func TestCartAddItemDefaultsQty(t *testing.T) {
	stub := &stubCartService{dto: &cart.DTO{}}

	body := `{"product_kind":"notebook","product_id":"` + uuid.NewString() + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(body))
	rec := httptest.NewRecorder()
	CartAddItem(stub, testLogger()).ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 1, stub.lastQty)
}

func TestCartAddItemRejectsBadKind(t *testing.T) {
	stub := &stubCartService{dto: &cart.DTO{}}

	body := `{"product_kind":"toaster","product_id":"` + uuid.NewString() + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(body))
	rec := httptest.NewRecorder()
	CartAddItem(stub, testLogger()).ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var payload struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "VALIDATION_ERROR", payload.Error.Code)
}

func TestCartChangeQty(t *testing.T) {
	stub := &stubCartService{dto: &cart.DTO{}}
	itemID := uuid.New()

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/cart/items/"+itemID.String(), strings.NewReader(`{"qty":3}`))
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("itemId", itemID.String())
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
	rec := httptest.NewRecorder()
	CartChangeQty(stub, testLogger()).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, itemID, stub.lastItemID)
	assert.Equal(t, 3, stub.lastQty)
}

func TestCartChangeQtyRejectsZero(t *testing.T) {
	stub := &stubCartService{dto: &cart.DTO{}}
	itemID := uuid.New()

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/cart/items/"+itemID.String(), strings.NewReader(`{"qty":0}`))
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("itemId", itemID.String())
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
	rec := httptest.NewRecorder()
	CartChangeQty(stub, testLogger()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCartRemoveItemBadID(t *testing.T) {
	stub := &stubCartService{dto: &cart.DTO{}}

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/cart/items/not-a-uuid", nil)
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("itemId", "not-a-uuid")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
	rec := httptest.NewRecorder()
	CartRemoveItem(stub, testLogger()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
