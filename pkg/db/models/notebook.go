package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Notebook is one of the two concrete product tables. The shared storefront
// columns (category, title, slug, image, description, price) are repeated per
// table; a product's kind is determined by the table it lives in.
type Notebook struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CategoryID  uuid.UUID       `gorm:"column:category_id;type:uuid;not null"`
	Category    *Category       `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
	Title       string          `gorm:"column:title;not null"`
	Slug        string          `gorm:"column:slug;not null;uniqueIndex"`
	ImagePath   string          `gorm:"column:image_path"`
	Description *string         `gorm:"column:description"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(9,2);not null"`

	Diagonal          string `gorm:"column:diagonal"`
	DisplayType       string `gorm:"column:display_type"`
	ProcessorFreq     string `gorm:"column:processor_freq"`
	RAM               string `gorm:"column:ram"`
	Video             string `gorm:"column:video"`
	TimeWithoutCharge string `gorm:"column:time_without_charge"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
