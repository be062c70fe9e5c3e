package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/aliffarhan/threadmart-backend/pkg/db/models"
	pkgerrors "github.com/aliffarhan/threadmart-backend/pkg/errors"
)

const maxLineQuantity = 99

type cartRepository interface {
	FindByUser(ctx context.Context, userID uuid.UUID) (*models.CartRecord, error)
	ReplaceItems(ctx context.Context, cartID uuid.UUID, items []models.CartItem) error
}

type productReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	FindVariant(ctx context.Context, productID, variantID uuid.UUID) (*models.ProductVariant, error)
}

// Service exposes cart operations.
type Service interface {
	Get(ctx context.Context, userID uuid.UUID) (*CartDTO, error)
	Replace(ctx context.Context, userID uuid.UUID, items []ReplaceItemInput) (*CartDTO, error)
}

type service struct {
	repo     cartRepository
	products productReader
}

// NewService builds a cart service.
func NewService(repo cartRepository, products productReader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if products == nil {
		return nil, fmt.Errorf("product reader required")
	}
	return &service{repo: repo, products: products}, nil
}

func (s *service) Get(ctx context.Context, userID uuid.UUID) (*CartDTO, error) {
	record, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	return FromModel(record), nil
}

// Replace swaps the cart's full line set. Prices, names, and variant details
// are snapshotted from the live catalog so a stale client cannot set its own.
func (s *service) Replace(ctx context.Context, userID uuid.UUID, inputs []ReplaceItemInput) (*CartDTO, error) {
	record, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}

	items := make([]models.CartItem, 0, len(inputs))
	for _, input := range inputs {
		item, err := s.snapshotLine(ctx, input)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}

	if err := s.repo.ReplaceItems(ctx, record.ID, items); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "replace cart items")
	}

	record.Items = items
	return FromModel(record), nil
}

func (s *service) snapshotLine(ctx context.Context, input ReplaceItemInput) (*models.CartItem, error) {
	if input.Quantity < 1 || input.Quantity > maxLineQuantity {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("quantity must be between 1 and %d", maxLineQuantity))
	}

	product, err := s.products.FindByID(ctx, input.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	variant, err := s.products.FindVariant(ctx, input.ProductID, input.VariantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "product variant not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product variant")
	}

	if variant.Stock < input.Quantity {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("insufficient stock for %s (%s/%s)", product.Name, variant.Size, variant.Color))
	}

	return &models.CartItem{
		ProductID: product.ID,
		VariantID: variant.ID,
		Name:      product.Name,
		UnitPrice: product.Price,
		Size:      variant.Size,
		Color:     variant.Color,
		Quantity:  input.Quantity,
		ImageURL:  product.ImageURL,
	}, nil
}
