package customers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vkuzmenko/techstore-backend/pkg/db/models"
	pkgerrors "github.com/vkuzmenko/techstore-backend/pkg/errors"
)

// ContactInput carries the contact fields collected at checkout.
type ContactInput struct {
	Email     string
	FirstName string
	LastName  string
	Phone     *string
	Address   *string
}

// Service exposes customer account operations.
type Service interface {
	GetCustomer(ctx context.Context, id uuid.UUID) (*models.Customer, error)
	EnsureCustomer(ctx context.Context, input ContactInput) (*models.Customer, error)
}

type service struct {
	repo *Repository
}

// NewService constructs a customer service instance.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("customer repository required")
	}
	return &service{repo: repo}, nil
}

// GetCustomer loads one customer by id.
func (s *service) GetCustomer(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	customer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "customer not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load customer")
	}
	return customer, nil
}

// EnsureCustomer returns the customer registered under the contact email,
// creating one on first sight and refreshing the stored contact details
// otherwise. One email maps to at most one customer.
func (s *service) EnsureCustomer(ctx context.Context, input ContactInput) (*models.Customer, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email required")
	}

	existing, err := s.repo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		existing.FirstName = input.FirstName
		existing.LastName = input.LastName
		if input.Phone != nil {
			existing.Phone = input.Phone
		}
		if input.Address != nil {
			existing.Address = input.Address
		}
		updated, err := s.repo.Save(ctx, existing)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update customer")
		}
		return updated, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		customer := &models.Customer{
			ID:        uuid.New(),
			Email:     email,
			FirstName: input.FirstName,
			LastName:  input.LastName,
			Phone:     input.Phone,
			Address:   input.Address,
		}
		created, err := s.repo.Create(ctx, customer)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert customer")
		}
		return created, nil
	default:
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load customer")
	}
}
