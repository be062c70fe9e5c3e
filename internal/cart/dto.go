package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/aliffarhan/threadmart-backend/internal/pricing"
	"github.com/aliffarhan/threadmart-backend/pkg/db/models"
)

// CartDTO is the API shape of a buyer's cart.
type CartDTO struct {
	ID       uuid.UUID       `json:"id"`
	Items    []CartItemDTO   `json:"items"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// CartItemDTO is one snapshotted line of the cart.
type CartItemDTO struct {
	ProductID uuid.UUID       `json:"productId"`
	VariantID uuid.UUID       `json:"variantId"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Size      string          `json:"size"`
	Color     string          `json:"color"`
	Quantity  int             `json:"quantity"`
	ImageURL  *string         `json:"imageUrl,omitempty"`
}

// ReplaceItemInput is one requested line when the cart is replaced. Snapshot
// fields come from the catalog, never from the caller.
type ReplaceItemInput struct {
	ProductID uuid.UUID
	VariantID uuid.UUID
	Quantity  int
}

// FromModel maps a stored cart to its API shape.
func FromModel(record *models.CartRecord) *CartDTO {
	if record == nil {
		return nil
	}
	items := make([]CartItemDTO, 0, len(record.Items))
	for _, item := range record.Items {
		items = append(items, CartItemDTO{
			ProductID: item.ProductID,
			VariantID: item.VariantID,
			Name:      item.Name,
			UnitPrice: item.UnitPrice,
			Size:      item.Size,
			Color:     item.Color,
			Quantity:  item.Quantity,
			ImageURL:  item.ImageURL,
		})
	}
	return &CartDTO{
		ID:       record.ID,
		Items:    items,
		Subtotal: Subtotal(record.Items),
	}
}

// Subtotal sums the cart's snapshotted line prices.
func Subtotal(items []models.CartItem) decimal.Decimal {
	lines := make([]pricing.LineItem, 0, len(items))
	for _, item := range items {
		lines = append(lines, pricing.LineItem{UnitPrice: item.UnitPrice, Quantity: item.Quantity})
	}
	return pricing.Subtotal(lines)
}
