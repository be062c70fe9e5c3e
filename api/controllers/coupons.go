package controllers

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/aliffarhan/threadmart-backend/api/responses"
	"github.com/aliffarhan/threadmart-backend/api/validators"
	couponsvc "github.com/aliffarhan/threadmart-backend/internal/coupons"
	"github.com/aliffarhan/threadmart-backend/pkg/enums"
	pkgerrors "github.com/aliffarhan/threadmart-backend/pkg/errors"
	"github.com/aliffarhan/threadmart-backend/pkg/logger"
)

type createCouponRequest struct {
	Code        string          `json:"code" validate:"required,min=2,max=64"`
	Kind        string          `json:"kind" validate:"required,oneof=percentage fixed shipping"`
	Value       decimal.Decimal `json:"value"`
	Description *string         `json:"description"`
	IsActive    *bool           `json:"is_active"`
	ExpiresAt   *time.Time      `json:"expires_at"`
}

type updateCouponRequest struct {
	Kind        *string          `json:"kind" validate:"omitempty,oneof=percentage fixed shipping"`
	Value       *decimal.Decimal `json:"value"`
	Description *string          `json:"description"`
	IsActive    *bool            `json:"is_active"`
	ExpiresAt   *time.Time       `json:"expires_at"`
	ClearExpiry bool             `json:"clear_expiry"`
}

// ListActiveCoupons returns the coupons a buyer may redeem right now.
func ListActiveCoupons(svc couponsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "coupon service unavailable"))
			return
		}

		coupons, err := svc.ListActive(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, coupons)
	}
}

// ListCoupons returns every coupon, active or not. Admin only.
func ListCoupons(svc couponsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "coupon service unavailable"))
			return
		}

		coupons, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, coupons)
	}
}

// CreateCoupon registers a new coupon code. Admin only.
func CreateCoupon(svc couponsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "coupon service unavailable"))
			return
		}

		var payload createCouponRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		kind, err := enums.ParseCouponKind(payload.Kind)
		if err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid coupon kind"))
			return
		}

		coupon, err := svc.Create(r.Context(), couponsvc.CreateCouponDTO{
			Code:        payload.Code,
			Kind:        kind,
			Value:       payload.Value,
			Description: payload.Description,
			IsActive:    payload.IsActive,
			ExpiresAt:   payload.ExpiresAt,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, coupon)
	}
}

// UpdateCoupon patches an existing coupon. Admin only.
func UpdateCoupon(svc couponsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "coupon service unavailable"))
			return
		}

		id, err := pathUUID(r, "couponID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateCouponRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := couponsvc.UpdateCouponInput{
			Value:       payload.Value,
			Description: payload.Description,
			IsActive:    payload.IsActive,
			ExpiresAt:   payload.ExpiresAt,
			ClearExpiry: payload.ClearExpiry,
		}
		if payload.Kind != nil {
			kind, err := enums.ParseCouponKind(*payload.Kind)
			if err != nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid coupon kind"))
				return
			}
			input.Kind = &kind
		}

		coupon, err := svc.Update(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, coupon)
	}
}

// DeleteCoupon removes a coupon. Admin only.
func DeleteCoupon(svc couponsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "coupon service unavailable"))
			return
		}

		id, err := pathUUID(r, "couponID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
