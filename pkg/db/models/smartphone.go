package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Smartphone mirrors Notebook's shared columns and adds its own attribute set.
// SDVolume is only meaningful while SD is true.
type Smartphone struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CategoryID  uuid.UUID       `gorm:"column:category_id;type:uuid;not null"`
	Category    *Category       `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
	Title       string          `gorm:"column:title;not null"`
	Slug        string          `gorm:"column:slug;not null;uniqueIndex"`
	ImagePath   string          `gorm:"column:image_path"`
	Description *string         `gorm:"column:description"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(9,2);not null"`

	Diagonal    string  `gorm:"column:diagonal"`
	DisplayType string  `gorm:"column:display_type"`
	Resolution  string  `gorm:"column:resolution"`
	AccumVolume string  `gorm:"column:accum_volume"`
	RAM         string  `gorm:"column:ram"`
	SD          bool    `gorm:"column:sd;not null;default:true"`
	SDVolume    *string `gorm:"column:sd_volume"`
	MainCam     string  `gorm:"column:main_cam"`
	FrontCam    string  `gorm:"column:front_cam"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
