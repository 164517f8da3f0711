package catalog

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/vkuzmenko/techstore-backend/pkg/db/models"
)

func setupCatalogTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	categories := `
CREATE TABLE IF NOT EXISTS categories (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  slug TEXT NOT NULL UNIQUE,
  created_at DATETIME,
  updated_at DATETIME
);`
	notebooks := `
CREATE TABLE IF NOT EXISTS notebooks (
  id TEXT PRIMARY KEY,
  category_id TEXT NOT NULL,
  title TEXT NOT NULL,
  slug TEXT NOT NULL UNIQUE,
  image_path TEXT,
  description TEXT,
  price NUMERIC NOT NULL,
  diagonal TEXT,
  display_type TEXT,
  processor_freq TEXT,
  ram TEXT,
  video TEXT,
  time_without_charge TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	smartphones := `
CREATE TABLE IF NOT EXISTS smartphones (
  id TEXT PRIMARY KEY,
  category_id TEXT NOT NULL,
  title TEXT NOT NULL,
  slug TEXT NOT NULL UNIQUE,
  image_path TEXT,
  description TEXT,
  price NUMERIC NOT NULL,
  diagonal TEXT,
  display_type TEXT,
  resolution TEXT,
  accum_volume TEXT,
  ram TEXT,
  sd INTEGER NOT NULL DEFAULT 1,
  sd_volume TEXT,
  main_cam TEXT,
  front_cam TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, conn.Exec(categories).Error)
	require.NoError(t, conn.Exec(notebooks).Error)
	require.NoError(t, conn.Exec(smartphones).Error)
	return conn
}

func newCategory(t *testing.T, conn *gorm.DB, name, slug string) *models.Category {
	t.Helper()

	category := &models.Category{ID: uuid.New(), Name: name, Slug: slug}
	require.NoError(t, conn.Create(category).Error)
	return category
}

func newNotebook(t *testing.T, conn *gorm.DB, categoryID uuid.UUID, slug string, createdAt time.Time) *models.Notebook {
	t.Helper()

	notebook := &models.Notebook{
		ID:         uuid.New(),
		CategoryID: categoryID,
		Title:      "Notebook " + slug,
		Slug:       slug,
		Price:      decimal.NewFromInt(50000),
		CreatedAt:  createdAt,
	}
	require.NoError(t, conn.Create(notebook).Error)
	return notebook
}

func newSmartphone(t *testing.T, conn *gorm.DB, categoryID uuid.UUID, slug string, createdAt time.Time) *models.Smartphone {
	t.Helper()

	phone := &models.Smartphone{
		ID:         uuid.New(),
		CategoryID: categoryID,
		Title:      "Smartphone " + slug,
		Slug:       slug,
		Price:      decimal.NewFromInt(30000),
		SD:         true,
		CreatedAt:  createdAt,
	}
	require.NoError(t, conn.Create(phone).Error)
	return phone
}

func TestListCategoriesWithCounts(t *testing.T) {
	conn := setupCatalogTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	notebooks := newCategory(t, conn, "Ноутбуки", "notebooks")
	phones := newCategory(t, conn, "Смартфоны", "smartphones")
	empty := newCategory(t, conn, "Аксессуары", "accessories")

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		newNotebook(t, conn, notebooks.ID, fmt.Sprintf("nb-%d", i), base.Add(time.Duration(i)*time.Minute))
	}
	newSmartphone(t, conn, phones.ID, "sp-0", base)

	entries, err := repo.ListCategoriesWithCounts(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	byName := map[string]CategoryEntry{}
	for _, entry := range entries {
		byName[entry.Name] = entry
	}
	assert.Equal(t, int64(3), byName["Ноутбуки"].Count)
	assert.Equal(t, int64(1), byName["Смартфоны"].Count)
	assert.Equal(t, int64(0), byName["Аксессуары"].Count)
	assert.Equal(t, "/categories/notebooks", byName["Ноутбуки"].URL)
	_ = empty
}

func TestListCategoriesWithCountsMixedKinds(t *testing.T) {
	conn := setupCatalogTestDB(t)
	repo := NewRepository(conn)

	mixed := newCategory(t, conn, "Витрина", "showcase")
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	newNotebook(t, conn, mixed.ID, "mix-nb", base)
	newSmartphone(t, conn, mixed.ID, "mix-sp", base)

	entries, err := repo.ListCategoriesWithCounts(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, int64(2), entries[0].Count)
}

func TestLatestNotebooksOrderAndLimit(t *testing.T) {
	conn := setupCatalogTestDB(t)
	repo := NewRepository(conn)

	category := newCategory(t, conn, "Ноутбуки", "notebooks")
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 7; i++ {
		newNotebook(t, conn, category.ID, fmt.Sprintf("latest-nb-%d", i), base.Add(time.Duration(i)*time.Minute))
	}

	rows, err := repo.LatestNotebooks(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, rows, 5)

	assert.Equal(t, "latest-nb-6", rows[0].Slug)
	assert.Equal(t, "latest-nb-2", rows[4].Slug)
	for i := 1; i < len(rows); i++ {
		assert.False(t, rows[i].CreatedAt.After(rows[i-1].CreatedAt))
	}
}

func TestFindSmartphoneBySlugPreloadsCategory(t *testing.T) {
	conn := setupCatalogTestDB(t)
	repo := NewRepository(conn)

	category := newCategory(t, conn, "Смартфоны", "smartphones")
	created := newSmartphone(t, conn, category.ID, "galaxy-x", time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))

	found, err := repo.FindSmartphoneBySlug(context.Background(), "galaxy-x")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	require.NotNil(t, found.Category)
	assert.Equal(t, "Смартфоны", found.Category.Name)
}

func TestFindNotebookBySlugMissing(t *testing.T) {
	conn := setupCatalogTestDB(t)
	repo := NewRepository(conn)

	_, err := repo.FindNotebookBySlug(context.Background(), "no-such-slug")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
