package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/vkuzmenko/techstore-backend/pkg/db/models"
	"github.com/vkuzmenko/techstore-backend/pkg/enums"
	pkgerrors "github.com/vkuzmenko/techstore-backend/pkg/errors"
)

// Service exposes storefront catalog operations.
type Service interface {
	ListCategories(ctx context.Context) ([]CategoryEntry, error)
	ListNotebooks(ctx context.Context) ([]NotebookDTO, error)
	ListSmartphones(ctx context.Context) ([]SmartphoneDTO, error)
	LatestProducts(ctx context.Context, respectTo string) ([]LatestProduct, error)
	GetProductDetail(ctx context.Context, kind, slug string) (*ProductDetail, error)
	ResolveProduct(ctx context.Context, ref ProductRef) (*ProductSnapshot, error)
	CreateCategory(ctx context.Context, input CreateCategoryInput) (*models.Category, error)
	CreateNotebook(ctx context.Context, input CreateNotebookInput) (*models.Notebook, error)
	CreateSmartphone(ctx context.Context, input CreateSmartphoneInput) (*models.Smartphone, error)
}

// ImageUpload carries one raw product image through the save path.
type ImageUpload struct {
	Filename string
	Data     []byte
}

// CreateCategoryInput holds the validated payload to create a category.
type CreateCategoryInput struct {
	Name string
	Slug string
}

// CreateNotebookInput holds the validated payload to create a notebook.
type CreateNotebookInput struct {
	CategoryID        uuid.UUID
	Title             string
	Slug              string
	Description       *string
	Price             decimal.Decimal
	Diagonal          string
	DisplayType       string
	ProcessorFreq     string
	RAM               string
	Video             string
	TimeWithoutCharge string
	Image             *ImageUpload
}

// CreateSmartphoneInput holds the validated payload to create a smartphone.
type CreateSmartphoneInput struct {
	CategoryID  uuid.UUID
	Title       string
	Slug        string
	Description *string
	Price       decimal.Decimal
	Diagonal    string
	DisplayType string
	Resolution  string
	AccumVolume string
	RAM         string
	SD          bool
	SDVolume    *string
	MainCam     string
	FrontCam    string
	Image       *ImageUpload
}

type service struct {
	repo   *Repository
	images *ImageStore
}

// NewService constructs a catalog service instance.
func NewService(repo *Repository, images *ImageStore) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if images == nil {
		return nil, fmt.Errorf("image store required")
	}
	return &service{repo: repo, images: images}, nil
}

// ListCategories returns the sidebar entries with product counts.
func (s *service) ListCategories(ctx context.Context) ([]CategoryEntry, error) {
	entries, err := s.repo.ListCategoriesWithCounts(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list categories")
	}
	return entries, nil
}

// ListNotebooks returns every notebook newest first.
func (s *service) ListNotebooks(ctx context.Context) ([]NotebookDTO, error) {
	rows, err := s.repo.ListNotebooks(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list notebooks")
	}
	dtos := make([]NotebookDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, notebookToDTO(&rows[i]))
	}
	return dtos, nil
}

// ListSmartphones returns every smartphone newest first.
func (s *service) ListSmartphones(ctx context.Context) ([]SmartphoneDTO, error) {
	rows, err := s.repo.ListSmartphones(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list smartphones")
	}
	dtos := make([]SmartphoneDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, smartphoneToDTO(&rows[i]))
	}
	return dtos, nil
}

// LatestProducts builds the main page feed: the newest rows of every product
// kind, optionally reordered so the respectTo kind leads. An empty or unknown
// respectTo leaves the concatenation untouched.
func (s *service) LatestProducts(ctx context.Context, respectTo string) ([]LatestProduct, error) {
	products := make([]LatestProduct, 0, LatestPerKind*len(enums.AllProductKinds()))
	for _, kind := range enums.AllProductKinds() {
		switch kind {
		case enums.ProductKindNotebook:
			rows, err := s.repo.LatestNotebooks(ctx, LatestPerKind)
			if err != nil {
				return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load latest notebooks")
			}
			for _, row := range rows {
				products = append(products, latestFromNotebook(row))
			}
		case enums.ProductKindSmartphone:
			rows, err := s.repo.LatestSmartphones(ctx, LatestPerKind)
			if err != nil {
				return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load latest smartphones")
			}
			for _, row := range rows {
				products = append(products, latestFromSmartphone(row))
			}
		}
	}
	return orderWithRespectTo(products, enums.ProductKind(respectTo)), nil
}

// GetProductDetail returns one product with its specification rows.
func (s *service) GetProductDetail(ctx context.Context, kind, slug string) (*ProductDetail, error) {
	parsedKind, err := enums.ParseProductKind(kind)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "parse product kind")
	}

	switch parsedKind {
	case enums.ProductKindNotebook:
		notebook, err := s.repo.FindNotebookBySlug(ctx, slug)
		if err != nil {
			return nil, notFoundOrDependency(err, "load notebook")
		}
		dto := notebookToDTO(notebook)
		return &ProductDetail{
			Kind:     parsedKind,
			Notebook: &dto,
			Specs:    NotebookSpecRows(notebook),
		}, nil
	case enums.ProductKindSmartphone:
		smartphone, err := s.repo.FindSmartphoneBySlug(ctx, slug)
		if err != nil {
			return nil, notFoundOrDependency(err, "load smartphone")
		}
		dto := smartphoneToDTO(smartphone)
		return &ProductDetail{
			Kind:       parsedKind,
			Smartphone: &dto,
			Specs:      SmartphoneSpecRows(smartphone),
		}, nil
	}
	return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unsupported product kind %q", kind))
}

// ResolveProduct resolves a tagged product reference to its current state.
func (s *service) ResolveProduct(ctx context.Context, ref ProductRef) (*ProductSnapshot, error) {
	switch ref.Kind {
	case enums.ProductKindNotebook:
		notebook, err := s.repo.FindNotebookByID(ctx, ref.ID)
		if err != nil {
			return nil, notFoundOrDependency(err, "resolve notebook")
		}
		return &ProductSnapshot{
			Ref:       ref,
			Title:     notebook.Title,
			Slug:      notebook.Slug,
			ImagePath: notebook.ImagePath,
			Price:     notebook.Price,
		}, nil
	case enums.ProductKindSmartphone:
		smartphone, err := s.repo.FindSmartphoneByID(ctx, ref.ID)
		if err != nil {
			return nil, notFoundOrDependency(err, "resolve smartphone")
		}
		return &ProductSnapshot{
			Ref:       ref,
			Title:     smartphone.Title,
			Slug:      smartphone.Slug,
			ImagePath: smartphone.ImagePath,
			Price:     smartphone.Price,
		}, nil
	}
	return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unsupported product kind %q", ref.Kind))
}

// CreateCategory inserts a new category.
func (s *service) CreateCategory(ctx context.Context, input CreateCategoryInput) (*models.Category, error) {
	category := &models.Category{
		ID:   uuid.New(),
		Name: input.Name,
		Slug: input.Slug,
	}
	created, err := s.repo.CreateCategory(ctx, category)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert category")
	}
	return created, nil
}

// CreateNotebook validates the optional image and inserts a notebook row.
func (s *service) CreateNotebook(ctx context.Context, input CreateNotebookInput) (*models.Notebook, error) {
	imagePath, err := s.storeImage(input.Image)
	if err != nil {
		return nil, err
	}
	notebook := &models.Notebook{
		ID:                uuid.New(),
		CategoryID:        input.CategoryID,
		Title:             input.Title,
		Slug:              input.Slug,
		ImagePath:         imagePath,
		Description:       input.Description,
		Price:             input.Price,
		Diagonal:          input.Diagonal,
		DisplayType:       input.DisplayType,
		ProcessorFreq:     input.ProcessorFreq,
		RAM:               input.RAM,
		Video:             input.Video,
		TimeWithoutCharge: input.TimeWithoutCharge,
	}
	created, err := s.repo.CreateNotebook(ctx, notebook)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert notebook")
	}
	return created, nil
}

// CreateSmartphone validates the optional image and inserts a smartphone row.
func (s *service) CreateSmartphone(ctx context.Context, input CreateSmartphoneInput) (*models.Smartphone, error) {
	imagePath, err := s.storeImage(input.Image)
	if err != nil {
		return nil, err
	}
	smartphone := &models.Smartphone{
		ID:          uuid.New(),
		CategoryID:  input.CategoryID,
		Title:       input.Title,
		Slug:        input.Slug,
		ImagePath:   imagePath,
		Description: input.Description,
		Price:       input.Price,
		Diagonal:    input.Diagonal,
		DisplayType: input.DisplayType,
		Resolution:  input.Resolution,
		AccumVolume: input.AccumVolume,
		RAM:         input.RAM,
		SD:          input.SD,
		SDVolume:    input.SDVolume,
		MainCam:     input.MainCam,
		FrontCam:    input.FrontCam,
	}
	created, err := s.repo.CreateSmartphone(ctx, smartphone)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert smartphone")
	}
	return created, nil
}

func (s *service) storeImage(upload *ImageUpload) (string, error) {
	if upload == nil {
		return "", nil
	}
	path, err := s.images.Save(upload.Filename, upload.Data)
	if err != nil {
		if errors.Is(err, ErrImageTooSmall) || errors.Is(err, ErrImageTooLarge) {
			return "", pkgerrors.Wrap(pkgerrors.CodeValidation, err, "validate product image")
		}
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "store product image")
	}
	return path, nil
}

func notFoundOrDependency(err error, message string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, message)
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, message)
}
