package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/aliffarhan/threadmart-backend/pkg/enums"
)

// Order-level pricing rules. All math runs on decimals and only the final
// figures are rounded, so intermediate percentages never drift.
var (
	TaxRate               = decimal.NewFromFloat(0.08)
	ShippingFlat          = decimal.NewFromFloat(9.99)
	FreeShippingThreshold = decimal.NewFromInt(50)

	oneHundred = decimal.NewFromInt(100)
)

// Coupon is the pricing-relevant slice of a stored coupon. Value is a percent
// for the percentage kind, an absolute amount for fixed, and ignored for
// free shipping.
type Coupon struct {
	Code  string
	Kind  enums.CouponKind
	Value decimal.Decimal
}

// Totals is a fully priced order. Total is always
// Subtotal - Discount + Tax + Shipping.
type Totals struct {
	Subtotal decimal.Decimal
	Discount decimal.Decimal
	Tax      decimal.Decimal
	Shipping decimal.Decimal
	Total    decimal.Decimal
}

// LineItem carries the quantity and unit price a cart line contributes.
type LineItem struct {
	UnitPrice decimal.Decimal
	Quantity  int
}

// Subtotal sums unit price times quantity across the cart.
func Subtotal(items []LineItem) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return sum
}

// Calculate prices an order from its subtotal and an optional coupon.
//
// Tax applies to the undiscounted subtotal. Shipping is a flat rate waived
// once the subtotal exceeds the free threshold, or when a free-shipping
// coupon is attached. Fixed discounts are clamped so the discount never
// exceeds the subtotal.
func Calculate(subtotal decimal.Decimal, coupon *Coupon) Totals {
	tax := subtotal.Mul(TaxRate)

	shipping := ShippingFlat
	if subtotal.GreaterThan(FreeShippingThreshold) {
		shipping = decimal.Zero
	}

	discount := decimal.Zero
	if coupon != nil {
		switch coupon.Kind {
		case enums.CouponKindPercentage:
			discount = subtotal.Mul(coupon.Value).Div(oneHundred)
		case enums.CouponKindFixed:
			discount = coupon.Value
		case enums.CouponKindFreeShipping:
			shipping = decimal.Zero
		}
	}
	if discount.GreaterThan(subtotal) {
		discount = subtotal
	}

	total := subtotal.Sub(discount).Add(tax).Add(shipping)

	return Totals{
		Subtotal: subtotal.Round(2),
		Discount: discount.Round(2),
		Tax:      tax.Round(2),
		Shipping: shipping.Round(2),
		Total:    total.Round(2),
	}
}
