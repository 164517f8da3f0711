package cart

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vkuzmenko/techstore-backend/pkg/db/models"
	"github.com/vkuzmenko/techstore-backend/pkg/enums"
)

// Repository wires together cart and cart item persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// CreateCart inserts a new cart row.
func (r *Repository) CreateCart(ctx context.Context, cart *models.Cart) (*models.Cart, error) {
	if err := r.db.WithContext(ctx).Create(cart).Error; err != nil {
		return nil, err
	}
	return cart, nil
}

// FindCartByID loads a cart with its items, oldest item first.
func (r *Repository) FindCartByID(ctx context.Context, id uuid.UUID) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC").Order("id ASC")
		}).
		First(&cart, "id = ?", id).
		Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// FindActiveCartByOwner returns the owner's cart that is not yet attached to
// an order.
func (r *Repository) FindActiveCartByOwner(ctx context.Context, ownerID uuid.UUID) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC").Order("id ASC")
		}).
		Where("owner_id = ? AND in_order = ?", ownerID, false).
		Order("created_at DESC").
		First(&cart).
		Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// MarkCartInOrder flags the cart as consumed by an order.
func (r *Repository) MarkCartInOrder(ctx context.Context, cartID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.Cart{}).
		Where("id = ?", cartID).
		Update("in_order", true).
		Error
}

// DeleteAbandonedBefore removes anonymous carts that were never checked out
// and whose last activity predates the cutoff, together with their items.
// It returns the number of carts removed.
func (r *Repository) DeleteAbandonedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	stale := r.db.
		Model(&models.Cart{}).
		Select("id").
		Where("for_anonymous_user = ? AND in_order = ? AND updated_at < ?", true, false, cutoff)

	if err := r.db.WithContext(ctx).
		Where("cart_id IN (?)", stale).
		Delete(&models.CartItem{}).
		Error; err != nil {
		return 0, err
	}

	result := r.db.WithContext(ctx).
		Where("for_anonymous_user = ? AND in_order = ? AND updated_at < ?", true, false, cutoff).
		Delete(&models.Cart{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// CreateItem inserts a new cart item row.
func (r *Repository) CreateItem(ctx context.Context, item *models.CartItem) (*models.CartItem, error) {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// SaveItem persists all fields of an existing cart item row.
func (r *Repository) SaveItem(ctx context.Context, item *models.CartItem) (*models.CartItem, error) {
	if err := r.db.WithContext(ctx).Save(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// FindItemByID loads one cart item scoped to its cart.
func (r *Repository) FindItemByID(ctx context.Context, cartID, itemID uuid.UUID) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.WithContext(ctx).
		Where("cart_id = ? AND id = ?", cartID, itemID).
		First(&item).
		Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// FindItemByProduct returns the cart's line for the given product reference.
func (r *Repository) FindItemByProduct(ctx context.Context, cartID uuid.UUID, kind enums.ProductKind, productID uuid.UUID) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.WithContext(ctx).
		Where("cart_id = ? AND product_kind = ? AND product_id = ?", cartID, kind, productID).
		First(&item).
		Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// DeleteItem removes a cart item scoped to its cart.
func (r *Repository) DeleteItem(ctx context.Context, cartID, itemID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("cart_id = ? AND id = ?", cartID, itemID).
		Delete(&models.CartItem{}).
		Error
}
