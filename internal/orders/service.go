package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vkuzmenko/techstore-backend/internal/cart"
	"github.com/vkuzmenko/techstore-backend/internal/customers"
	"github.com/vkuzmenko/techstore-backend/pkg/db/models"
	"github.com/vkuzmenko/techstore-backend/pkg/enums"
	pkgerrors "github.com/vkuzmenko/techstore-backend/pkg/errors"
	"github.com/vkuzmenko/techstore-backend/pkg/pagination"
)

// CheckoutInput carries the validated checkout payload.
type CheckoutInput struct {
	Cart       cart.Ref
	Email      string
	FirstName  string
	LastName   string
	Phone      string
	Address    *string
	BuyingType string
	Comment    *string
	OrderDate  *time.Time
}

// DTO is the order payload returned by checkout and history reads.
type DTO struct {
	ID         uuid.UUID         `json:"id"`
	CustomerID uuid.UUID         `json:"customer_id"`
	FirstName  string            `json:"first_name"`
	LastName   string            `json:"last_name"`
	Phone      string            `json:"phone"`
	CartID     *uuid.UUID        `json:"cart_id,omitempty"`
	Address    *string           `json:"address,omitempty"`
	Status     enums.OrderStatus `json:"status"`
	BuyingType enums.BuyingType  `json:"buying_type"`
	Comment    *string           `json:"comment,omitempty"`
	OrderDate  time.Time         `json:"order_date"`
	CreatedAt  time.Time         `json:"created_at"`
}

// HistoryParams scope an order history read to one customer.
type HistoryParams struct {
	CustomerID uuid.UUID
	pagination.Params
}

// HistoryResult is one page of a customer's order history.
type HistoryResult struct {
	Items  []DTO  `json:"items"`
	Cursor string `json:"cursor"`
}

type historyQuery struct {
	customerID uuid.UUID
	limit      int
	cursor     *pagination.Cursor
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type cartResolver interface {
	ResolveCart(ctx context.Context, ref cart.Ref) (*models.Cart, error)
}

type customerEnsurer interface {
	EnsureCustomer(ctx context.Context, input customers.ContactInput) (*models.Customer, error)
}

// Service exposes checkout and order management operations.
type Service interface {
	Checkout(ctx context.Context, input CheckoutInput) (*DTO, error)
	UpdateStatus(ctx context.Context, orderID uuid.UUID, status string) (*DTO, error)
	ListCustomerOrders(ctx context.Context, params HistoryParams) (*HistoryResult, error)
}

type service struct {
	tx        txRunner
	repo      *Repository
	cartRepo  *cart.Repository
	carts     cartResolver
	customers customerEnsurer
}

// NewService constructs an order service instance.
func NewService(tx txRunner, repo *Repository, cartRepo *cart.Repository, carts cartResolver, customerSvc customerEnsurer) (Service, error) {
	if tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	if repo == nil {
		return nil, fmt.Errorf("order repository required")
	}
	if cartRepo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if carts == nil {
		return nil, fmt.Errorf("cart resolver required")
	}
	if customerSvc == nil {
		return nil, fmt.Errorf("customer service required")
	}
	return &service{
		tx:        tx,
		repo:      repo,
		cartRepo:  cartRepo,
		carts:     carts,
		customers: customerSvc,
	}, nil
}

// Checkout creates a new order from the ref's cart. The order starts in
// status "new"; the cart is attached and flagged in_order in the same
// transaction.
func (s *service) Checkout(ctx context.Context, input CheckoutInput) (*DTO, error) {
	buyingType := enums.BuyingTypeSelfPickup
	if input.BuyingType != "" {
		parsed, err := enums.ParseBuyingType(input.BuyingType)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "parse buying type")
		}
		buyingType = parsed
	}

	record, err := s.carts.ResolveCart(ctx, input.Cart)
	if err != nil {
		return nil, err
	}
	if record.InOrder {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "cart already attached to an order")
	}
	if len(record.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	customer, err := s.customers.EnsureCustomer(ctx, customers.ContactInput{
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Phone:     &input.Phone,
		Address:   input.Address,
	})
	if err != nil {
		return nil, err
	}

	orderDate := time.Now().UTC()
	if input.OrderDate != nil {
		orderDate = *input.OrderDate
	}

	order := &models.Order{
		ID:         uuid.New(),
		CustomerID: customer.ID,
		FirstName:  input.FirstName,
		LastName:   input.LastName,
		Phone:      input.Phone,
		CartID:     &record.ID,
		Address:    input.Address,
		Status:     enums.OrderStatusNew,
		BuyingType: buyingType,
		Comment:    input.Comment,
		OrderDate:  orderDate,
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if _, err := s.repo.WithTx(tx).Create(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert order")
		}
		if err := s.cartRepo.WithTx(tx).MarkCartInOrder(ctx, record.ID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark cart in order")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	dto := toDTO(order)
	return &dto, nil
}

// UpdateStatus sets an order's status to the parsed value. Transitions are
// externally driven; any known status is accepted.
func (s *service) UpdateStatus(ctx context.Context, orderID uuid.UUID, status string) (*DTO, error) {
	parsed, err := enums.ParseOrderStatus(status)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "parse order status")
	}

	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}

	order.Status = parsed
	if _, err := s.repo.Save(ctx, order); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order")
	}

	dto := toDTO(order)
	return &dto, nil
}

// ListCustomerOrders returns one page of the customer's order history,
// newest first.
func (s *service) ListCustomerOrders(ctx context.Context, params HistoryParams) (*HistoryResult, error) {
	if params.CustomerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer id required")
	}

	limit := pagination.NormalizeLimit(params.Limit)
	query := historyQuery{
		customerID: params.CustomerID,
		limit:      pagination.LimitWithBuffer(params.Limit),
	}
	if params.Cursor != "" {
		cursor, err := pagination.ParseCursor(params.Cursor)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
		}
		query.cursor = cursor
	}

	rows, err := s.repo.ListByCustomer(ctx, query)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}

	nextCursor := ""
	if len(rows) > limit {
		rows = rows[:limit]
		// the repo filters strictly below the cursor, so encode the last
		// returned row, not the first row of the next page
		nextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: rows[limit-1].CreatedAt,
			ID:        rows[limit-1].ID,
		})
	}

	items := make([]DTO, len(rows))
	for i := range rows {
		items[i] = toDTO(&rows[i])
	}
	return &HistoryResult{Items: items, Cursor: nextCursor}, nil
}

func toDTO(order *models.Order) DTO {
	return DTO{
		ID:         order.ID,
		CustomerID: order.CustomerID,
		FirstName:  order.FirstName,
		LastName:   order.LastName,
		Phone:      order.Phone,
		CartID:     order.CartID,
		Address:    order.Address,
		Status:     order.Status,
		BuyingType: order.BuyingType,
		Comment:    order.Comment,
		OrderDate:  order.OrderDate,
		CreatedAt:  order.CreatedAt,
	}
}
