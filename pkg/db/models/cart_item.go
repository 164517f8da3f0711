package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vkuzmenko/techstore-backend/pkg/enums"
)

// CartItem is one line of a cart: a tagged product reference plus quantity.
// FinalPrice is a snapshot of qty x product price taken on every save; it is
// never written independently.
type CartItem struct {
	ID          uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CartID      uuid.UUID         `gorm:"column:cart_id;type:uuid;not null"`
	CustomerID  *uuid.UUID        `gorm:"column:customer_id;type:uuid"`
	ProductKind enums.ProductKind `gorm:"column:product_kind;not null"`
	ProductID   uuid.UUID         `gorm:"column:product_id;type:uuid;not null"`
	Qty         int               `gorm:"column:qty;not null;default:1"`
	FinalPrice  decimal.Decimal   `gorm:"column:final_price;type:numeric(9,2);not null"`
	CreatedAt   time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
