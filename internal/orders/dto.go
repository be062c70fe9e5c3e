package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/aliffarhan/threadmart-backend/pkg/db/models"
	"github.com/aliffarhan/threadmart-backend/pkg/enums"
	"github.com/aliffarhan/threadmart-backend/pkg/types"
)

// OrderDTO is the API shape of a placed order.
type OrderDTO struct {
	ID              uuid.UUID           `json:"id"`
	Status          enums.OrderStatus   `json:"status"`
	PaymentStatus   enums.PaymentStatus `json:"paymentStatus"`
	PaymentMethod   enums.PaymentMethod `json:"paymentMethod"`
	Subtotal        decimal.Decimal     `json:"subtotal"`
	Discount        decimal.Decimal     `json:"discount"`
	Tax             decimal.Decimal     `json:"tax"`
	Shipping        decimal.Decimal     `json:"shipping"`
	Total           decimal.Decimal     `json:"total"`
	CouponCode      *string             `json:"couponCode,omitempty"`
	ShippingAddress types.Address       `json:"shippingAddress"`
	Items           []OrderLineItemDTO  `json:"items"`
	CreatedAt       time.Time           `json:"createdAt"`
}

// OrderLineItemDTO is one line of a placed order.
type OrderLineItemDTO struct {
	ProductID uuid.UUID       `json:"productId"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Size      string          `json:"size"`
	Color     string          `json:"color"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

// FromModel maps a stored order to its API shape.
func FromModel(order *models.Order) *OrderDTO {
	if order == nil {
		return nil
	}
	items := make([]OrderLineItemDTO, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderLineItemDTO{
			ProductID: item.ProductID,
			Name:      item.Name,
			UnitPrice: item.UnitPrice,
			Size:      item.Size,
			Color:     item.Color,
			Quantity:  item.Quantity,
			LineTotal: item.LineTotal,
		})
	}
	return &OrderDTO{
		ID:              order.ID,
		Status:          order.Status,
		PaymentStatus:   order.PaymentStatus,
		PaymentMethod:   order.PaymentMethod,
		Subtotal:        order.Subtotal,
		Discount:        order.Discount,
		Tax:             order.Tax,
		Shipping:        order.Shipping,
		Total:           order.Total,
		CouponCode:      order.CouponCode,
		ShippingAddress: order.ShippingAddress,
		Items:           items,
		CreatedAt:       order.CreatedAt,
	}
}
