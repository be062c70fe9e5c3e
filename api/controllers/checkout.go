package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/aliffarhan/threadmart-backend/api/responses"
	"github.com/aliffarhan/threadmart-backend/api/validators"
	checkoutsvc "github.com/aliffarhan/threadmart-backend/internal/checkout"
	"github.com/aliffarhan/threadmart-backend/internal/orders"
	"github.com/aliffarhan/threadmart-backend/internal/payments"
	"github.com/aliffarhan/threadmart-backend/pkg/enums"
	pkgerrors "github.com/aliffarhan/threadmart-backend/pkg/errors"
	"github.com/aliffarhan/threadmart-backend/pkg/logger"
	"github.com/aliffarhan/threadmart-backend/pkg/types"
)

type checkoutRequest struct {
	PaymentMethod   string              `json:"payment_method" validate:"required,oneof=card paypal"`
	Card            checkoutCardPayload `json:"card"`
	CouponCode      string              `json:"coupon_code" validate:"max=64"`
	ShippingAddress *types.Address      `json:"shipping_address"`
}

type checkoutCardPayload struct {
	Number string `json:"number"`
	Expiry string `json:"expiry"`
	CVC    string `json:"cvc"`
	Name   string `json:"name"`
}

type checkoutResponse struct {
	State  string           `json:"state"`
	Totals *checkoutTotals  `json:"totals,omitempty"`
	Order  *orders.OrderDTO `json:"order,omitempty"`
}

type checkoutTotals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Discount decimal.Decimal `json:"discount"`
	Tax      decimal.Decimal `json:"tax"`
	Shipping decimal.Decimal `json:"shipping"`
	Total    decimal.Decimal `json:"total"`
}

// Checkout runs the caller's cart through validation, payment processing and
// order placement.
func Checkout(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		userID, err := userIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload checkoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		method, err := enums.ParsePaymentMethod(payload.PaymentMethod)
		if err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payment method"))
			return
		}

		input := checkoutsvc.SubmitInput{
			PaymentMethod: method,
			Card: payments.CardDetails{
				Number: payload.Card.Number,
				Expiry: payload.Card.Expiry,
				CVC:    payload.Card.CVC,
				Name:   payload.Card.Name,
			},
			CouponCode: payload.CouponCode,
		}
		if payload.ShippingAddress != nil {
			input.ShippingAddress = *payload.ShippingAddress
		}

		result, err := svc.Submit(r.Context(), userID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		resp := checkoutResponse{
			State: result.State.Phase.String(),
			Totals: &checkoutTotals{
				Subtotal: result.Totals.Subtotal,
				Discount: result.Totals.Discount,
				Tax:      result.Totals.Tax,
				Shipping: result.Totals.Shipping,
				Total:    result.Totals.Total,
			},
			Order: result.Order,
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, resp)
	}
}
