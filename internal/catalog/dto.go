package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/aliffarhan/threadmart-backend/pkg/db/models"
)

// ProductDTO is the API shape of a catalog entry.
type ProductDTO struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description *string         `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	ImageURL    *string         `json:"imageUrl,omitempty"`
	Variants    []VariantDTO    `json:"variants"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// VariantDTO is one size/color combination of a product.
type VariantDTO struct {
	ID      uuid.UUID `json:"id"`
	Size    string    `json:"size"`
	Color   string    `json:"color"`
	InStock bool      `json:"inStock"`
}

// FromModel maps a stored product to its API shape.
func FromModel(product *models.Product) *ProductDTO {
	if product == nil {
		return nil
	}
	variants := make([]VariantDTO, 0, len(product.Variants))
	for _, variant := range product.Variants {
		variants = append(variants, VariantDTO{
			ID:      variant.ID,
			Size:    variant.Size,
			Color:   variant.Color,
			InStock: variant.Stock > 0,
		})
	}
	return &ProductDTO{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		Category:    product.Category,
		ImageURL:    product.ImageURL,
		Variants:    variants,
		CreatedAt:   product.CreatedAt,
	}
}

// ListFilter narrows catalog listings.
type ListFilter struct {
	Category string
	Search   string
	Limit    int
	Offset   int
}
