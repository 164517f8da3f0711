package catalog

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vkuzmenko/techstore-backend/pkg/db/models"
	"github.com/vkuzmenko/techstore-backend/pkg/enums"
)

// ProductRef points at one row of one concrete product table.
type ProductRef struct {
	Kind enums.ProductKind `json:"kind"`
	ID   uuid.UUID         `json:"id"`
}

// ParseProductRef builds a ref from raw kind and id strings.
func ParseProductRef(kind, id string) (ProductRef, error) {
	parsedKind, err := enums.ParseProductKind(kind)
	if err != nil {
		return ProductRef{}, err
	}
	parsedID, err := uuid.Parse(id)
	if err != nil {
		return ProductRef{}, err
	}
	return ProductRef{Kind: parsedKind, ID: parsedID}, nil
}

// ProductSnapshot is the kind-agnostic product view handed to cart pricing.
type ProductSnapshot struct {
	Ref       ProductRef      `json:"ref"`
	Title     string          `json:"title"`
	Slug      string          `json:"slug"`
	ImagePath string          `json:"image_path"`
	Price     decimal.Decimal `json:"price"`
}

// NotebookDTO is the notebook list/detail payload.
type NotebookDTO struct {
	ID                uuid.UUID       `json:"id"`
	Category          string          `json:"category"`
	Title             string          `json:"title"`
	Slug              string          `json:"slug"`
	ImagePath         string          `json:"image_path"`
	Description       *string         `json:"description,omitempty"`
	Price             decimal.Decimal `json:"price"`
	Diagonal          string          `json:"diagonal"`
	DisplayType       string          `json:"display_type"`
	ProcessorFreq     string          `json:"processor_freq"`
	RAM               string          `json:"ram"`
	Video             string          `json:"video"`
	TimeWithoutCharge string          `json:"time_without_charge"`
}

// SmartphoneDTO is the smartphone list/detail payload.
type SmartphoneDTO struct {
	ID          uuid.UUID       `json:"id"`
	Category    string          `json:"category"`
	Title       string          `json:"title"`
	Slug        string          `json:"slug"`
	ImagePath   string          `json:"image_path"`
	Description *string         `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Diagonal    string          `json:"diagonal"`
	DisplayType string          `json:"display_type"`
	Resolution  string          `json:"resolution"`
	AccumVolume string          `json:"accum_volume"`
	RAM         string          `json:"ram"`
	SD          bool            `json:"sd"`
	SDVolume    *string         `json:"sd_volume,omitempty"`
	MainCam     string          `json:"main_cam"`
	FrontCam    string          `json:"front_cam"`
}

// ProductDetail is a single product plus its specification table.
type ProductDetail struct {
	Kind       enums.ProductKind `json:"kind"`
	Notebook   *NotebookDTO      `json:"notebook,omitempty"`
	Smartphone *SmartphoneDTO    `json:"smartphone,omitempty"`
	Specs      []SpecRow         `json:"specs"`
}

func notebookToDTO(n *models.Notebook) NotebookDTO {
	dto := NotebookDTO{
		ID:                n.ID,
		Title:             n.Title,
		Slug:              n.Slug,
		ImagePath:         n.ImagePath,
		Description:       n.Description,
		Price:             n.Price,
		Diagonal:          n.Diagonal,
		DisplayType:       n.DisplayType,
		ProcessorFreq:     n.ProcessorFreq,
		RAM:               n.RAM,
		Video:             n.Video,
		TimeWithoutCharge: n.TimeWithoutCharge,
	}
	if n.Category != nil {
		dto.Category = n.Category.Name
	}
	return dto
}

func smartphoneToDTO(s *models.Smartphone) SmartphoneDTO {
	dto := SmartphoneDTO{
		ID:          s.ID,
		Title:       s.Title,
		Slug:        s.Slug,
		ImagePath:   s.ImagePath,
		Description: s.Description,
		Price:       s.Price,
		Diagonal:    s.Diagonal,
		DisplayType: s.DisplayType,
		Resolution:  s.Resolution,
		AccumVolume: s.AccumVolume,
		RAM:         s.RAM,
		SD:          s.SD,
		SDVolume:    s.SDVolume,
		MainCam:     s.MainCam,
		FrontCam:    s.FrontCam,
	}
	if s.Category != nil {
		dto.Category = s.Category.Name
	}
	return dto
}
