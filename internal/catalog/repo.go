package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vkuzmenko/techstore-backend/pkg/db/models"
	"github.com/vkuzmenko/techstore-backend/pkg/enums"
)

// CategoryEntry is a sidebar line: a category with its product count.
type CategoryEntry struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Slug  string    `json:"slug"`
	URL   string    `json:"url"`
	Count int64     `json:"count"`
}

// Repository wires together catalog persistence for categories and both
// product tables.
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

// CreateCategory inserts a new category row.
func (r *Repository) CreateCategory(ctx context.Context, category *models.Category) (*models.Category, error) {
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

// FindCategoryBySlug loads one category by its slug.
func (r *Repository) FindCategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, "slug = ?", slug).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// ListCategoriesWithCounts returns every category with the number of products
// it contains. Counts are gathered per product kind and summed, so category
// names never participate in the lookup.
func (r *Repository) ListCategoriesWithCounts(ctx context.Context) ([]CategoryEntry, error) {
	var categories []models.Category
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}

	totals := make(map[uuid.UUID]int64, len(categories))
	for _, kind := range enums.AllProductKinds() {
		counts, err := r.countByCategory(ctx, kind)
		if err != nil {
			return nil, err
		}
		for categoryID, count := range counts {
			totals[categoryID] += count
		}
	}

	entries := make([]CategoryEntry, 0, len(categories))
	for _, category := range categories {
		entries = append(entries, CategoryEntry{
			ID:    category.ID,
			Name:  category.Name,
			Slug:  category.Slug,
			URL:   "/categories/" + category.Slug,
			Count: totals[category.ID],
		})
	}
	return entries, nil
}

func (r *Repository) countByCategory(ctx context.Context, kind enums.ProductKind) (map[uuid.UUID]int64, error) {
	type categoryCount struct {
		CategoryID uuid.UUID
		Total      int64
	}

	query := r.db.WithContext(ctx).
		Select("category_id", "COUNT(*) AS total").
		Group("category_id")

	switch kind {
	case enums.ProductKindNotebook:
		query = query.Model(&models.Notebook{})
	case enums.ProductKindSmartphone:
		query = query.Model(&models.Smartphone{})
	default:
		return nil, fmt.Errorf("unsupported product kind %q", kind)
	}

	var rows []categoryCount
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[uuid.UUID]int64, len(rows))
	for _, row := range rows {
		counts[row.CategoryID] = row.Total
	}
	return counts, nil
}

// CreateNotebook inserts a new notebook row.
func (r *Repository) CreateNotebook(ctx context.Context, notebook *models.Notebook) (*models.Notebook, error) {
	if err := r.db.WithContext(ctx).Create(notebook).Error; err != nil {
		return nil, err
	}
	return notebook, nil
}

// FindNotebookByID loads the notebook without associations.
func (r *Repository) FindNotebookByID(ctx context.Context, id uuid.UUID) (*models.Notebook, error) {
	var notebook models.Notebook
	if err := r.db.WithContext(ctx).First(&notebook, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &notebook, nil
}

// FindNotebookBySlug loads the notebook with its category preloaded.
func (r *Repository) FindNotebookBySlug(ctx context.Context, slug string) (*models.Notebook, error) {
	var notebook models.Notebook
	err := r.db.WithContext(ctx).
		Preload("Category").
		First(&notebook, "slug = ?", slug).
		Error
	if err != nil {
		return nil, err
	}
	return &notebook, nil
}

// ListNotebooks returns all notebooks newest first.
func (r *Repository) ListNotebooks(ctx context.Context) ([]models.Notebook, error) {
	var rows []models.Notebook
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Find(&rows).
		Error
	return rows, err
}

// LatestNotebooks returns the most recently created notebooks.
func (r *Repository) LatestNotebooks(ctx context.Context, limit int) ([]models.Notebook, error) {
	var rows []models.Notebook
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&rows).
		Error
	return rows, err
}

// CreateSmartphone inserts a new smartphone row.
func (r *Repository) CreateSmartphone(ctx context.Context, smartphone *models.Smartphone) (*models.Smartphone, error) {
	if err := r.db.WithContext(ctx).Create(smartphone).Error; err != nil {
		return nil, err
	}
	return smartphone, nil
}

// FindSmartphoneByID loads the smartphone without associations.
func (r *Repository) FindSmartphoneByID(ctx context.Context, id uuid.UUID) (*models.Smartphone, error) {
	var smartphone models.Smartphone
	if err := r.db.WithContext(ctx).First(&smartphone, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &smartphone, nil
}

// FindSmartphoneBySlug loads the smartphone with its category preloaded.
func (r *Repository) FindSmartphoneBySlug(ctx context.Context, slug string) (*models.Smartphone, error) {
	var smartphone models.Smartphone
	err := r.db.WithContext(ctx).
		Preload("Category").
		First(&smartphone, "slug = ?", slug).
		Error
	if err != nil {
		return nil, err
	}
	return &smartphone, nil
}

// ListSmartphones returns all smartphones newest first.
func (r *Repository) ListSmartphones(ctx context.Context) ([]models.Smartphone, error) {
	var rows []models.Smartphone
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Find(&rows).
		Error
	return rows, err
}

// LatestSmartphones returns the most recently created smartphones.
func (r *Repository) LatestSmartphones(ctx context.Context, limit int) ([]models.Smartphone, error) {
	var rows []models.Smartphone
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&rows).
		Error
	return rows, err
}
