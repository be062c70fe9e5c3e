package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/aliffarhan/threadmart-backend/api/responses"
	"github.com/aliffarhan/threadmart-backend/api/validators"
	cartsvc "github.com/aliffarhan/threadmart-backend/internal/cart"
	pkgerrors "github.com/aliffarhan/threadmart-backend/pkg/errors"
	"github.com/aliffarhan/threadmart-backend/pkg/logger"
)

type replaceCartRequest struct {
	Items []replaceCartItem `json:"items" validate:"dive"`
}

type replaceCartItem struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	VariantID uuid.UUID `json:"variant_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,min=1,max=99"`
}

// GetCart returns the caller's cart, creating an empty one on first touch.
func GetCart(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		userID, err := userIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		cart, err := svc.Get(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, cart)
	}
}

// ReplaceCart swaps the cart's contents for the submitted lines.
func ReplaceCart(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		userID, err := userIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload replaceCartRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items := make([]cartsvc.ReplaceItemInput, 0, len(payload.Items))
		for _, line := range payload.Items {
			items = append(items, cartsvc.ReplaceItemInput{
				ProductID: line.ProductID,
				VariantID: line.VariantID,
				Quantity:  line.Quantity,
			})
		}

		cart, err := svc.Replace(r.Context(), userID, items)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, cart)
	}
}
