package orders

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/aliffarhan/threadmart-backend/internal/pricing"
	"github.com/aliffarhan/threadmart-backend/pkg/db/models"
	"github.com/aliffarhan/threadmart-backend/pkg/enums"
	pkgerrors "github.com/aliffarhan/threadmart-backend/pkg/errors"
	"github.com/aliffarhan/threadmart-backend/pkg/types"
)

type stubTxRunner struct {
	err error
}

func (s *stubTxRunner) WithTx(_ context.Context, fn func(tx *gorm.DB) error) error {
	if s.err != nil {
		return s.err
	}
	return fn(&gorm.DB{})
}

type stubOrderRepo struct {
	createFn     func(tx *gorm.DB, order *models.Order) error
	findByIDFn   func(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, error)
	listByUserFn func(ctx context.Context, userID uuid.UUID) ([]models.Order, error)
}

func (s *stubOrderRepo) CreateWithTx(tx *gorm.DB, order *models.Order) error {
	return s.createFn(tx, order)
}

func (s *stubOrderRepo) FindByID(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, error) {
	return s.findByIDFn(ctx, userID, orderID)
}

func (s *stubOrderRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	return s.listByUserFn(ctx, userID)
}

type stubCartClearer struct {
	cleared []uuid.UUID
	err     error
}

func (s *stubCartClearer) ClearWithTx(_ *gorm.DB, cartID uuid.UUID) error {
	if s.err != nil {
		return s.err
	}
	s.cleared = append(s.cleared, cartID)
	return nil
}

func placeInput(userID, cartID uuid.UUID) PlaceOrderInput {
	return PlaceOrderInput{
		UserID: userID,
		CartID: cartID,
		Items: []models.CartItem{{
			ProductID: uuid.New(),
			VariantID: uuid.New(),
			Name:      "Box Logo Tee",
			UnitPrice: decimal.RequireFromString("29.99"),
			Size:      "M",
			Color:     "black",
			Quantity:  2,
		}},
		Totals: pricing.Totals{
			Subtotal: decimal.RequireFromString("59.98"),
			Discount: decimal.Zero,
			Tax:      decimal.RequireFromString("4.80"),
			Shipping: decimal.Zero,
			Total:    decimal.RequireFromString("64.78"),
		},
		PaymentMethod:   enums.PaymentMethodCard,
		ShippingAddress: types.Address{Line1: "123 Mock St", City: "City", Country: "Country"},
	}
}

func TestPlaceWritesOrderAndClearsCart(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	cartID := uuid.New()

	var saved *models.Order
	repo := &stubOrderRepo{
		createFn: func(_ *gorm.DB, order *models.Order) error {
			saved = order
			return nil
		},
	}
	clearer := &stubCartClearer{}
	svc, err := NewService(&stubTxRunner{}, repo, clearer)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	dto, err := svc.Place(context.Background(), placeInput(userID, cartID))
	if err != nil {
		t.Fatalf("Place: %v", err)
	}

	if saved == nil || saved.UserID != userID {
		t.Fatalf("order not persisted for user: %+v", saved)
	}
	if saved.Status != enums.OrderStatusConfirmed || saved.PaymentStatus != enums.PaymentStatusPaid {
		t.Fatalf("unexpected statuses: %s %s", saved.Status, saved.PaymentStatus)
	}
	if len(saved.Items) != 1 || !saved.Items[0].LineTotal.Equal(decimal.RequireFromString("59.98")) {
		t.Fatalf("line total wrong: %+v", saved.Items)
	}
	if len(clearer.cleared) != 1 || clearer.cleared[0] != cartID {
		t.Fatalf("cart not cleared: %v", clearer.cleared)
	}
	if !dto.Total.Equal(decimal.RequireFromString("64.78")) {
		t.Fatalf("dto total: %s", dto.Total)
	}
}

func TestPlaceRejectsEmptyOrder(t *testing.T) {
	t.Parallel()

	svc, err := NewService(&stubTxRunner{}, &stubOrderRepo{}, &stubCartClearer{})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	input := placeInput(uuid.New(), uuid.New())
	input.Items = nil
	_, err = svc.Place(context.Background(), input)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestPlaceRollsUpTxFailure(t *testing.T) {
	t.Parallel()

	repo := &stubOrderRepo{
		createFn: func(*gorm.DB, *models.Order) error {
			return errors.New("insert failed")
		},
	}
	svc, err := NewService(&stubTxRunner{}, repo, &stubCartClearer{})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	_, err = svc.Place(context.Background(), placeInput(uuid.New(), uuid.New()))
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
}

func TestGetByIDNotFound(t *testing.T) {
	t.Parallel()

	repo := &stubOrderRepo{
		findByIDFn: func(context.Context, uuid.UUID, uuid.UUID) (*models.Order, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc, err := NewService(&stubTxRunner{}, repo, &stubCartClearer{})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	_, err = svc.GetByID(context.Background(), uuid.New(), uuid.New())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestListByUserMapsItems(t *testing.T) {
	t.Parallel()

	repo := &stubOrderRepo{
		listByUserFn: func(context.Context, uuid.UUID) ([]models.Order, error) {
			return []models.Order{{
				ID:     uuid.New(),
				Status: enums.OrderStatusConfirmed,
				Total:  decimal.RequireFromString("42.39"),
				Items: []models.OrderLineItem{{
					Name:      "Cap",
					UnitPrice: decimal.RequireFromString("12.50"),
					Quantity:  1,
					LineTotal: decimal.RequireFromString("12.50"),
				}},
			}}, nil
		},
	}
	svc, err := NewService(&stubTxRunner{}, repo, &stubCartClearer{})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	dtos, err := svc.ListByUser(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(dtos) != 1 || len(dtos[0].Items) != 1 || dtos[0].Items[0].Name != "Cap" {
		t.Fatalf("unexpected dtos: %+v", dtos)
	}
}
