package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/vkuzmenko/techstore-backend/internal/catalog"
	"github.com/vkuzmenko/techstore-backend/pkg/db/models"
	pkgerrors "github.com/vkuzmenko/techstore-backend/pkg/errors"
)

// Ref identifies whose cart an operation targets: a known customer or an
// anonymous session token. Exactly one side should be set.
type Ref struct {
	CustomerID *uuid.UUID
	Token      string
}

// ItemDTO is one cart line joined with its product's current state.
type ItemDTO struct {
	ID          uuid.UUID          `json:"id"`
	Product     catalog.ProductRef `json:"product"`
	Title       string             `json:"title"`
	Slug        string             `json:"slug"`
	ImagePath   string             `json:"image_path"`
	Qty         int                `json:"qty"`
	FinalPrice  decimal.Decimal    `json:"final_price"`
	UnitPrice   decimal.Decimal    `json:"unit_price"`
	Unavailable bool               `json:"unavailable,omitempty"`
}

// DTO is a cart with totals derived from its items on every read.
type DTO struct {
	ID               uuid.UUID       `json:"id"`
	ForAnonymousUser bool            `json:"for_anonymous_user"`
	InOrder          bool            `json:"in_order"`
	Items            []ItemDTO       `json:"items"`
	TotalProducts    int             `json:"total_products"`
	FinalPrice       decimal.Decimal `json:"final_price"`
}

type productResolver interface {
	ResolveProduct(ctx context.Context, ref catalog.ProductRef) (*catalog.ProductSnapshot, error)
}

type sessionBinder interface {
	CartID(ctx context.Context, token string) (uuid.UUID, bool, error)
	Bind(ctx context.Context, token string, cartID uuid.UUID) error
	Touch(ctx context.Context, token string) error
	Drop(ctx context.Context, token string) error
}

// Service exposes cart operations for customers and anonymous sessions.
type Service interface {
	GetCart(ctx context.Context, ref Ref) (*DTO, error)
	AddItem(ctx context.Context, ref Ref, product catalog.ProductRef, qty int) (*DTO, error)
	ChangeQty(ctx context.Context, ref Ref, itemID uuid.UUID, qty int) (*DTO, error)
	RemoveItem(ctx context.Context, ref Ref, itemID uuid.UUID) (*DTO, error)
	ResolveCart(ctx context.Context, ref Ref) (*models.Cart, error)
}

type service struct {
	repo     *Repository
	products productResolver
	sessions sessionBinder
}

// NewService constructs a cart service instance.
func NewService(repo *Repository, products productResolver, sessions sessionBinder) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if products == nil {
		return nil, fmt.Errorf("product resolver required")
	}
	if sessions == nil {
		return nil, fmt.Errorf("session binder required")
	}
	return &service{repo: repo, products: products, sessions: sessions}, nil
}

// GetCart returns the cart for the ref, creating an empty one when none
// exists yet.
func (s *service) GetCart(ctx context.Context, ref Ref) (*DTO, error) {
	cart, err := s.resolveOrCreate(ctx, ref)
	if err != nil {
		return nil, err
	}
	return s.toDTO(ctx, cart)
}

// AddItem puts a product in the cart. Adding a product already in the cart
// bumps the existing line's quantity instead of inserting a duplicate.
func (s *service) AddItem(ctx context.Context, ref Ref, product catalog.ProductRef, qty int) (*DTO, error) {
	if qty < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "qty must be at least 1")
	}

	cart, err := s.resolveOrCreate(ctx, ref)
	if err != nil {
		return nil, err
	}

	snapshot, err := s.products.ResolveProduct(ctx, product)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.FindItemByProduct(ctx, cart.ID, product.Kind, product.ID)
	switch {
	case err == nil:
		existing.Qty += qty
		existing.FinalPrice = lineTotal(snapshot.Price, existing.Qty)
		if _, err := s.repo.SaveItem(ctx, existing); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update cart item")
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		item := &models.CartItem{
			ID:          uuid.New(),
			CartID:      cart.ID,
			CustomerID:  cart.OwnerID,
			ProductKind: product.Kind,
			ProductID:   product.ID,
			Qty:         qty,
			FinalPrice:  lineTotal(snapshot.Price, qty),
		}
		if _, err := s.repo.CreateItem(ctx, item); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert cart item")
		}
	default:
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart item")
	}

	return s.reload(ctx, ref, cart.ID)
}

// ChangeQty sets a line's quantity and recomputes its price from the
// product's current price.
func (s *service) ChangeQty(ctx context.Context, ref Ref, itemID uuid.UUID, qty int) (*DTO, error) {
	if qty < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "qty must be at least 1")
	}

	cart, err := s.resolveActive(ctx, ref)
	if err != nil {
		return nil, err
	}

	item, err := s.repo.FindItemByID(ctx, cart.ID, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "cart item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart item")
	}

	snapshot, err := s.products.ResolveProduct(ctx, catalog.ProductRef{Kind: item.ProductKind, ID: item.ProductID})
	if err != nil {
		return nil, err
	}

	item.Qty = qty
	item.FinalPrice = lineTotal(snapshot.Price, qty)
	if _, err := s.repo.SaveItem(ctx, item); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update cart item")
	}

	return s.reload(ctx, ref, cart.ID)
}

// RemoveItem deletes a line from the cart.
func (s *service) RemoveItem(ctx context.Context, ref Ref, itemID uuid.UUID) (*DTO, error) {
	cart, err := s.resolveActive(ctx, ref)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.FindItemByID(ctx, cart.ID, itemID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "cart item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart item")
	}

	if err := s.repo.DeleteItem(ctx, cart.ID, itemID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete cart item")
	}

	return s.reload(ctx, ref, cart.ID)
}

// ResolveCart finds the ref's existing cart without creating one.
func (s *service) ResolveCart(ctx context.Context, ref Ref) (*models.Cart, error) {
	if ref.CustomerID != nil {
		cart, err := s.repo.FindActiveCartByOwner(ctx, *ref.CustomerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "cart not found")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
		}
		return cart, nil
	}

	if ref.Token == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart token or customer id required")
	}
	cartID, ok, err := s.sessions.CartID(ctx, ref.Token)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve cart session")
	}
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart not found")
	}
	cart, err := s.repo.FindCartByID(ctx, cartID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "cart not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	return cart, nil
}

// resolveActive resolves the ref's cart and refuses one already consumed by
// an order.
func (s *service) resolveActive(ctx context.Context, ref Ref) (*models.Cart, error) {
	cart, err := s.ResolveCart(ctx, ref)
	if err != nil {
		return nil, err
	}
	if cart.InOrder {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart not found")
	}
	return cart, nil
}

func (s *service) resolveOrCreate(ctx context.Context, ref Ref) (*models.Cart, error) {
	cart, err := s.ResolveCart(ctx, ref)
	switch {
	case err == nil && !cart.InOrder:
		return cart, nil
	case err == nil:
		// checkout consumed the bound cart; release the stale session so
		// the token starts a fresh cart instead of mutating the order's
		if ref.CustomerID == nil {
			if err := s.sessions.Drop(ctx, ref.Token); err != nil {
				return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "drop cart session")
			}
		}
	default:
		appErr := pkgerrors.As(err)
		if appErr == nil || appErr.Code() != pkgerrors.CodeNotFound {
			return nil, err
		}
	}

	fresh := &models.Cart{
		ID:               uuid.New(),
		OwnerID:          ref.CustomerID,
		ForAnonymousUser: ref.CustomerID == nil,
	}
	if _, err := s.repo.CreateCart(ctx, fresh); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert cart")
	}
	if ref.CustomerID == nil {
		if err := s.sessions.Bind(ctx, ref.Token, fresh.ID); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "bind cart session")
		}
	}
	return fresh, nil
}

func (s *service) reload(ctx context.Context, ref Ref, cartID uuid.UUID) (*DTO, error) {
	if ref.CustomerID == nil && ref.Token != "" {
		if err := s.sessions.Touch(ctx, ref.Token); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "touch cart session")
		}
	}
	cart, err := s.repo.FindCartByID(ctx, cartID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload cart")
	}
	return s.toDTO(ctx, cart)
}

func (s *service) toDTO(ctx context.Context, cart *models.Cart) (*DTO, error) {
	dto := &DTO{
		ID:               cart.ID,
		ForAnonymousUser: cart.ForAnonymousUser,
		InOrder:          cart.InOrder,
		Items:            make([]ItemDTO, 0, len(cart.Items)),
		FinalPrice:       decimal.Zero,
	}

	for _, item := range cart.Items {
		line := ItemDTO{
			ID:         item.ID,
			Product:    catalog.ProductRef{Kind: item.ProductKind, ID: item.ProductID},
			Qty:        item.Qty,
			FinalPrice: item.FinalPrice,
		}
		snapshot, err := s.products.ResolveProduct(ctx, line.Product)
		if err != nil {
			appErr := pkgerrors.As(err)
			if appErr == nil || appErr.Code() != pkgerrors.CodeNotFound {
				return nil, err
			}
			line.Unavailable = true
		} else {
			line.Title = snapshot.Title
			line.Slug = snapshot.Slug
			line.ImagePath = snapshot.ImagePath
			line.UnitPrice = snapshot.Price
		}
		dto.Items = append(dto.Items, line)
		dto.TotalProducts += item.Qty
		dto.FinalPrice = dto.FinalPrice.Add(item.FinalPrice)
	}
	return dto, nil
}

func lineTotal(unitPrice decimal.Decimal, qty int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(qty)))
}
