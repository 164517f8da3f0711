package models

import (
	"time"

	"github.com/google/uuid"
)

// Customer carries the contact and address details attached to an account.
// Email stands in for the account reference; one email maps to at most one
// customer row.
type Customer struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Email     string    `gorm:"column:email;not null;uniqueIndex"`
	FirstName string    `gorm:"column:first_name;not null"`
	LastName  string    `gorm:"column:last_name;not null"`
	Phone     *string   `gorm:"column:phone"`
	Address   *string   `gorm:"column:address"`
	Orders    []Order   `gorm:"foreignKey:CustomerID"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
