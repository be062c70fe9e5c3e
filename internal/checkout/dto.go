package checkout

import (
	"github.com/aliffarhan/threadmart-backend/internal/orders"
	"github.com/aliffarhan/threadmart-backend/internal/payments"
	"github.com/aliffarhan/threadmart-backend/internal/pricing"
	"github.com/aliffarhan/threadmart-backend/pkg/enums"
	"github.com/aliffarhan/threadmart-backend/pkg/types"
)

// SubmitInput is one checkout attempt. Card details are only read when the
// payment method requires them.
type SubmitInput struct {
	PaymentMethod   enums.PaymentMethod
	Card            payments.CardDetails
	CouponCode      string
	ShippingAddress types.Address
}

// Result reports where the attempt landed. Totals and Order are populated
// only on success.
type Result struct {
	State  State
	Totals pricing.Totals
	Order  *orders.OrderDTO
}
