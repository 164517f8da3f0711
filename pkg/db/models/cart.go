package models

import (
	"time"

	"github.com/google/uuid"
)

// Cart aggregates line items for one customer or one anonymous session.
// Totals are not stored; they are derived from Items on read so they cannot
// drift from the line items.
type Cart struct {
	ID               uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OwnerID          *uuid.UUID `gorm:"column:owner_id;type:uuid"`
	Owner            *Customer  `gorm:"foreignKey:OwnerID"`
	InOrder          bool       `gorm:"column:in_order;not null;default:false"`
	ForAnonymousUser bool       `gorm:"column:for_anonymous_user;not null;default:false"`
	Items            []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	CreatedAt        time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
