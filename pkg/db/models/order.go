package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/vkuzmenko/techstore-backend/pkg/enums"
)

// Order snapshots a checkout for exactly one customer. It references a cart
// without owning it; the cart is flagged in_order once attached.
type Order struct {
	ID         uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CustomerID uuid.UUID         `gorm:"column:customer_id;type:uuid;not null"`
	Customer   *Customer         `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE"`
	FirstName  string            `gorm:"column:first_name;not null"`
	LastName   string            `gorm:"column:last_name;not null"`
	Phone      string            `gorm:"column:phone;not null"`
	CartID     *uuid.UUID        `gorm:"column:cart_id;type:uuid"`
	Cart       *Cart             `gorm:"foreignKey:CartID"`
	Address    *string           `gorm:"column:address"`
	Status     enums.OrderStatus `gorm:"column:status;not null;default:'new'"`
	BuyingType enums.BuyingType  `gorm:"column:buying_type;not null;default:'self_pickup'"`
	Comment    *string           `gorm:"column:comment"`
	OrderDate  time.Time         `gorm:"column:order_date;not null"`
	CreatedAt  time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
