package catalog

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vkuzmenko/techstore-backend/pkg/db/models"
	"github.com/vkuzmenko/techstore-backend/pkg/enums"
)

// LatestPerKind caps how many rows of each product kind the main page feed
// pulls.
const LatestPerKind = 5

// LatestProduct is the kind-agnostic view used by the main page feed.
type LatestProduct struct {
	Kind      enums.ProductKind `json:"kind"`
	ID        uuid.UUID         `json:"id"`
	Title     string            `json:"title"`
	Slug      string            `json:"slug"`
	ImagePath string            `json:"image_path"`
	Price     decimal.Decimal   `json:"price"`
	CreatedAt time.Time         `json:"created_at"`
}

func latestFromNotebook(n models.Notebook) LatestProduct {
	return LatestProduct{
		Kind:      enums.ProductKindNotebook,
		ID:        n.ID,
		Title:     n.Title,
		Slug:      n.Slug,
		ImagePath: n.ImagePath,
		Price:     n.Price,
		CreatedAt: n.CreatedAt,
	}
}

func latestFromSmartphone(s models.Smartphone) LatestProduct {
	return LatestProduct{
		Kind:      enums.ProductKindSmartphone,
		ID:        s.ID,
		Title:     s.Title,
		Slug:      s.Slug,
		ImagePath: s.ImagePath,
		Price:     s.Price,
		CreatedAt: s.CreatedAt,
	}
}

// orderWithRespectTo stably moves products of the given kind to the front.
// Relative order within both groups is preserved; an empty kind is a no-op.
func orderWithRespectTo(products []LatestProduct, respectTo enums.ProductKind) []LatestProduct {
	if !respectTo.IsValid() {
		return products
	}
	sort.SliceStable(products, func(i, j int) bool {
		return products[i].Kind == respectTo && products[j].Kind != respectTo
	})
	return products
}
