package cart

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/vkuzmenko/techstore-backend/internal/catalog"
	"github.com/vkuzmenko/techstore-backend/pkg/enums"
	pkgerrors "github.com/vkuzmenko/techstore-backend/pkg/errors"
)

func setupCartTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	carts := `
CREATE TABLE IF NOT EXISTS carts (
  id TEXT PRIMARY KEY,
  owner_id TEXT,
  in_order INTEGER NOT NULL DEFAULT 0,
  for_anonymous_user INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`
	cartItems := `
CREATE TABLE IF NOT EXISTS cart_items (
  id TEXT PRIMARY KEY,
  cart_id TEXT NOT NULL,
  customer_id TEXT,
  product_kind TEXT NOT NULL,
  product_id TEXT NOT NULL,
  qty INTEGER NOT NULL DEFAULT 1,
  final_price NUMERIC NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, conn.Exec(carts).Error)
	require.NoError(t, conn.Exec(cartItems).Error)
	return conn
}

type stubResolver struct {
	products map[uuid.UUID]*catalog.ProductSnapshot
}

func (s *stubResolver) ResolveProduct(_ context.Context, ref catalog.ProductRef) (*catalog.ProductSnapshot, error) {
	snapshot, ok := s.products[ref.ID]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return snapshot, nil
}

func (s *stubResolver) add(kind enums.ProductKind, slug string, price string) catalog.ProductRef {
	ref := catalog.ProductRef{Kind: kind, ID: uuid.New()}
	s.products[ref.ID] = &catalog.ProductSnapshot{
		Ref:   ref,
		Title: slug,
		Slug:  slug,
		Price: decimal.RequireFromString(price),
	}
	return ref
}

type stubSessions struct {
	bindings map[string]uuid.UUID
	touched  int
	dropped  int
}

func (s *stubSessions) CartID(_ context.Context, token string) (uuid.UUID, bool, error) {
	id, ok := s.bindings[token]
	return id, ok, nil
}

func (s *stubSessions) Bind(_ context.Context, token string, cartID uuid.UUID) error {
	s.bindings[token] = cartID
	return nil
}

func (s *stubSessions) Touch(_ context.Context, _ string) error {
	s.touched++
	return nil
}

func (s *stubSessions) Drop(_ context.Context, token string) error {
	delete(s.bindings, token)
	s.dropped++
	return nil
}

func newCartTestService(t *testing.T) (Service, *stubResolver, *stubSessions) {
	t.Helper()

	conn := setupCartTestDB(t)
	resolver := &stubResolver{products: map[uuid.UUID]*catalog.ProductSnapshot{}}
	sessions := &stubSessions{bindings: map[string]uuid.UUID{}}
	svc, err := NewService(NewRepository(conn), resolver, sessions)
	require.NoError(t, err)
	return svc, resolver, sessions
}

func TestAddItemCreatesAnonymousCart(t *testing.T) {
	svc, resolver, sessions := newCartTestService(t)
	ctx := context.Background()
	ref := Ref{Token: "anon-token"}

	product := resolver.add(enums.ProductKindSmartphone, "galaxy-x", "30000")

	dto, err := svc.AddItem(ctx, ref, product, 1)
	require.NoError(t, err)
	assert.True(t, dto.ForAnonymousUser)
	require.Len(t, dto.Items, 1)
	assert.Equal(t, dto.ID, sessions.bindings["anon-token"])
	assert.Positive(t, sessions.touched)
}

func TestCartTotalsDerivedFromItems(t *testing.T) {
	svc, resolver, _ := newCartTestService(t)
	ctx := context.Background()
	ref := Ref{Token: "totals"}

	p1 := resolver.add(enums.ProductKindNotebook, "p1", "10")
	p2 := resolver.add(enums.ProductKindSmartphone, "p2", "5")

	_, err := svc.AddItem(ctx, ref, p1, 1)
	require.NoError(t, err)
	dto, err := svc.AddItem(ctx, ref, p2, 3)
	require.NoError(t, err)

	require.Len(t, dto.Items, 2)
	bySlug := map[string]ItemDTO{}
	for _, item := range dto.Items {
		bySlug[item.Slug] = item
	}
	assert.True(t, bySlug["p1"].FinalPrice.Equal(decimal.NewFromInt(10)))
	assert.True(t, bySlug["p2"].FinalPrice.Equal(decimal.NewFromInt(15)))
	assert.Equal(t, 4, dto.TotalProducts)
	assert.True(t, dto.FinalPrice.Equal(decimal.NewFromInt(25)))
}

func TestAddItemTwiceBumpsQty(t *testing.T) {
	svc, resolver, _ := newCartTestService(t)
	ctx := context.Background()
	ref := Ref{Token: "bump"}

	product := resolver.add(enums.ProductKindNotebook, "legion", "100")

	_, err := svc.AddItem(ctx, ref, product, 1)
	require.NoError(t, err)
	dto, err := svc.AddItem(ctx, ref, product, 2)
	require.NoError(t, err)

	require.Len(t, dto.Items, 1)
	assert.Equal(t, 3, dto.Items[0].Qty)
	assert.True(t, dto.Items[0].FinalPrice.Equal(decimal.NewFromInt(300)))
}

func TestChangeQtyRecomputesFromCurrentPrice(t *testing.T) {
	svc, resolver, _ := newCartTestService(t)
	ctx := context.Background()
	ref := Ref{Token: "reprice"}

	product := resolver.add(enums.ProductKindSmartphone, "galaxy-x", "100")
	dto, err := svc.AddItem(ctx, ref, product, 1)
	require.NoError(t, err)
	require.Len(t, dto.Items, 1)

	// Price change before the next save: the stored line keeps its snapshot
	// until the item is saved again.
	resolver.products[product.ID].Price = decimal.NewFromInt(80)
	current, err := svc.GetCart(ctx, ref)
	require.NoError(t, err)
	assert.True(t, current.Items[0].FinalPrice.Equal(decimal.NewFromInt(100)))

	updated, err := svc.ChangeQty(ctx, ref, dto.Items[0].ID, 2)
	require.NoError(t, err)
	assert.True(t, updated.Items[0].FinalPrice.Equal(decimal.NewFromInt(160)))
	assert.Equal(t, 2, updated.TotalProducts)
}

func TestChangeQtyRejectsZero(t *testing.T) {
	svc, resolver, _ := newCartTestService(t)
	ctx := context.Background()
	ref := Ref{Token: "zero"}

	product := resolver.add(enums.ProductKindNotebook, "legion", "100")
	dto, err := svc.AddItem(ctx, ref, product, 1)
	require.NoError(t, err)

	_, err = svc.ChangeQty(ctx, ref, dto.Items[0].ID, 0)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())
}

func TestRemoveItem(t *testing.T) {
	svc, resolver, _ := newCartTestService(t)
	ctx := context.Background()
	ref := Ref{Token: "remove"}

	p1 := resolver.add(enums.ProductKindNotebook, "p1", "10")
	p2 := resolver.add(enums.ProductKindSmartphone, "p2", "5")
	_, err := svc.AddItem(ctx, ref, p1, 1)
	require.NoError(t, err)
	dto, err := svc.AddItem(ctx, ref, p2, 1)
	require.NoError(t, err)
	require.Len(t, dto.Items, 2)

	var removeID uuid.UUID
	for _, item := range dto.Items {
		if item.Slug == "p1" {
			removeID = item.ID
		}
	}
	updated, err := svc.RemoveItem(ctx, ref, removeID)
	require.NoError(t, err)
	require.Len(t, updated.Items, 1)
	assert.Equal(t, "p2", updated.Items[0].Slug)
	assert.True(t, updated.FinalPrice.Equal(decimal.NewFromInt(5)))
}

func TestRemoveMissingItem(t *testing.T) {
	svc, _, _ := newCartTestService(t)
	ctx := context.Background()
	ref := Ref{Token: "missing"}

	_, err := svc.GetCart(ctx, ref)
	require.NoError(t, err)

	_, err = svc.RemoveItem(ctx, ref, uuid.New())
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeNotFound, appErr.Code())
}

func TestCustomerCartReuse(t *testing.T) {
	svc, resolver, _ := newCartTestService(t)
	ctx := context.Background()
	customerID := uuid.New()
	ref := Ref{CustomerID: &customerID}

	product := resolver.add(enums.ProductKindNotebook, "legion", "100")
	first, err := svc.AddItem(ctx, ref, product, 1)
	require.NoError(t, err)
	assert.False(t, first.ForAnonymousUser)

	second, err := svc.GetCart(ctx, ref)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	require.Len(t, second.Items, 1)
}

func TestResolveCartRequiresRef(t *testing.T) {
	svc, _, _ := newCartTestService(t)

	_, err := svc.ResolveCart(context.Background(), Ref{})
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())
}

func TestUnavailableProductKeptInCart(t *testing.T) {
	svc, resolver, _ := newCartTestService(t)
	ctx := context.Background()
	ref := Ref{Token: "gone"}

	product := resolver.add(enums.ProductKindSmartphone, "galaxy-x", "100")
	_, err := svc.AddItem(ctx, ref, product, 1)
	require.NoError(t, err)

	delete(resolver.products, product.ID)

	dto, err := svc.GetCart(ctx, ref)
	require.NoError(t, err)
	require.Len(t, dto.Items, 1)
	assert.True(t, dto.Items[0].Unavailable)
	assert.True(t, dto.FinalPrice.Equal(decimal.NewFromInt(100)))
}

func TestConsumedCartNotReachableByToken(t *testing.T) {
	conn := setupCartTestDB(t)
	resolver := &stubResolver{products: map[uuid.UUID]*catalog.ProductSnapshot{}}
	sessions := &stubSessions{bindings: map[string]uuid.UUID{}}
	repo := NewRepository(conn)
	svc, err := NewService(repo, resolver, sessions)
	require.NoError(t, err)

	ctx := context.Background()
	ref := Ref{Token: "anon-token"}
	product := resolver.add(enums.ProductKindSmartphone, "galaxy-x", "30000")

	before, err := svc.AddItem(ctx, ref, product, 1)
	require.NoError(t, err)
	require.NoError(t, repo.MarkCartInOrder(ctx, before.ID))

	_, err = svc.ChangeQty(ctx, ref, before.Items[0].ID, 5)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeNotFound, appErr.Code())

	_, err = svc.RemoveItem(ctx, ref, before.Items[0].ID)
	appErr = pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeNotFound, appErr.Code())

	after, err := svc.AddItem(ctx, ref, product, 2)
	require.NoError(t, err)
	assert.NotEqual(t, before.ID, after.ID)
	assert.Equal(t, 1, sessions.dropped)
	assert.Equal(t, after.ID, sessions.bindings["anon-token"])

	consumed, err := repo.FindCartByID(ctx, before.ID)
	require.NoError(t, err)
	require.Len(t, consumed.Items, 1)
	assert.Equal(t, 1, consumed.Items[0].Qty)
}

func TestGetCartAfterCheckoutStartsFresh(t *testing.T) {
	conn := setupCartTestDB(t)
	resolver := &stubResolver{products: map[uuid.UUID]*catalog.ProductSnapshot{}}
	sessions := &stubSessions{bindings: map[string]uuid.UUID{}}
	repo := NewRepository(conn)
	svc, err := NewService(repo, resolver, sessions)
	require.NoError(t, err)

	ctx := context.Background()
	ref := Ref{Token: "anon-token"}
	product := resolver.add(enums.ProductKindNotebook, "thinkpad", "100000")

	before, err := svc.AddItem(ctx, ref, product, 1)
	require.NoError(t, err)
	require.NoError(t, repo.MarkCartInOrder(ctx, before.ID))

	fresh, err := svc.GetCart(ctx, ref)
	require.NoError(t, err)
	assert.NotEqual(t, before.ID, fresh.ID)
	assert.Empty(t, fresh.Items)
	assert.False(t, fresh.InOrder)
}
