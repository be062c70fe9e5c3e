package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/aliffarhan/threadmart-backend/internal/pricing"
	"github.com/aliffarhan/threadmart-backend/pkg/db/models"
	"github.com/aliffarhan/threadmart-backend/pkg/enums"
	pkgerrors "github.com/aliffarhan/threadmart-backend/pkg/errors"
	"github.com/aliffarhan/threadmart-backend/pkg/types"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type orderRepository interface {
	CreateWithTx(tx *gorm.DB, order *models.Order) error
	FindByID(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error)
}

type cartClearer interface {
	ClearWithTx(tx *gorm.DB, cartID uuid.UUID) error
}

// PlaceOrderInput is everything checkout hands over once validation and
// pricing are done. Items are the cart's snapshotted lines.
type PlaceOrderInput struct {
	UserID          uuid.UUID
	CartID          uuid.UUID
	Items           []models.CartItem
	Totals          pricing.Totals
	CouponCode      *string
	PaymentMethod   enums.PaymentMethod
	ShippingAddress types.Address
}

// Service exposes order placement and history.
type Service interface {
	Place(ctx context.Context, input PlaceOrderInput) (*OrderDTO, error)
	GetByID(ctx context.Context, userID, orderID uuid.UUID) (*OrderDTO, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]OrderDTO, error)
}

type service struct {
	tx    txRunner
	repo  orderRepository
	carts cartClearer
}

// NewService builds the orders service.
func NewService(tx txRunner, repo orderRepository, carts cartClearer) (Service, error) {
	if tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	if repo == nil {
		return nil, fmt.Errorf("order repository required")
	}
	if carts == nil {
		return nil, fmt.Errorf("cart clearer required")
	}
	return &service{tx: tx, repo: repo, carts: carts}, nil
}

// Place writes the order with its line items and clears the source cart in one
// transaction. Payment is simulated, so the order lands confirmed and paid.
func (s *service) Place(ctx context.Context, input PlaceOrderInput) (*OrderDTO, error) {
	if input.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	if len(input.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order needs at least one line")
	}

	order := &models.Order{
		UserID:          input.UserID,
		Status:          enums.OrderStatusConfirmed,
		PaymentStatus:   enums.PaymentStatusPaid,
		PaymentMethod:   input.PaymentMethod,
		Subtotal:        input.Totals.Subtotal,
		Discount:        input.Totals.Discount,
		Tax:             input.Totals.Tax,
		Shipping:        input.Totals.Shipping,
		Total:           input.Totals.Total,
		CouponCode:      input.CouponCode,
		ShippingAddress: input.ShippingAddress,
		Items:           buildLineItems(input.Items),
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.CreateWithTx(tx, order); err != nil {
			return err
		}
		if input.CartID != uuid.Nil {
			return s.carts.ClearWithTx(tx, input.CartID)
		}
		return nil
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "place order")
	}

	return FromModel(order), nil
}

func (s *service) GetByID(ctx context.Context, userID, orderID uuid.UUID) (*OrderDTO, error) {
	order, err := s.repo.FindByID(ctx, userID, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return FromModel(order), nil
}

func (s *service) ListByUser(ctx context.Context, userID uuid.UUID) ([]OrderDTO, error) {
	records, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	dtos := make([]OrderDTO, 0, len(records))
	for i := range records {
		dtos = append(dtos, *FromModel(&records[i]))
	}
	return dtos, nil
}

func buildLineItems(items []models.CartItem) []models.OrderLineItem {
	lines := make([]models.OrderLineItem, 0, len(items))
	for _, item := range items {
		qty := decimal.NewFromInt(int64(item.Quantity))
		lines = append(lines, models.OrderLineItem{
			ProductID: item.ProductID,
			VariantID: item.VariantID,
			Name:      item.Name,
			UnitPrice: item.UnitPrice,
			Size:      item.Size,
			Color:     item.Color,
			Quantity:  item.Quantity,
			LineTotal: item.UnitPrice.Mul(qty),
		})
	}
	return lines
}
