package coupons

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/aliffarhan/threadmart-backend/pkg/db/models"
	"github.com/aliffarhan/threadmart-backend/pkg/enums"
)

// CouponDTO is the API shape of a coupon.
type CouponDTO struct {
	ID          uuid.UUID        `json:"id"`
	Code        string           `json:"code"`
	Kind        enums.CouponKind `json:"kind"`
	Value       decimal.Decimal  `json:"value"`
	Description *string          `json:"description,omitempty"`
	IsActive    bool             `json:"isActive"`
	ExpiresAt   *time.Time       `json:"expiresAt,omitempty"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// FromModel maps a stored coupon to its API shape.
func FromModel(coupon *models.Coupon) *CouponDTO {
	if coupon == nil {
		return nil
	}
	return &CouponDTO{
		ID:          coupon.ID,
		Code:        coupon.Code,
		Kind:        coupon.Kind,
		Value:       coupon.Value,
		Description: coupon.Description,
		IsActive:    coupon.IsActive,
		ExpiresAt:   coupon.ExpiresAt,
		CreatedAt:   coupon.CreatedAt,
		UpdatedAt:   coupon.UpdatedAt,
	}
}

// CreateCouponDTO carries the fields an admin supplies for a new coupon.
type CreateCouponDTO struct {
	Code        string
	Kind        enums.CouponKind
	Value       decimal.Decimal
	Description *string
	IsActive    *bool
	ExpiresAt   *time.Time
}

// ToModel builds the persistence row, normalizing the code to its canonical
// uppercase form and zeroing the value for free-shipping coupons.
func (d CreateCouponDTO) ToModel() *models.Coupon {
	value := d.Value
	if d.Kind == enums.CouponKindFreeShipping {
		value = decimal.Zero
	}
	active := true
	if d.IsActive != nil {
		active = *d.IsActive
	}
	return &models.Coupon{
		Code:        CanonicalCode(d.Code),
		Kind:        d.Kind,
		Value:       value,
		Description: d.Description,
		IsActive:    active,
		ExpiresAt:   d.ExpiresAt,
	}
}

// UpdateCouponInput captures the mutable coupon fields. Nil means unchanged.
type UpdateCouponInput struct {
	Kind        *enums.CouponKind
	Value       *decimal.Decimal
	Description *string
	IsActive    *bool
	ExpiresAt   *time.Time
	ClearExpiry bool
}

// CanonicalCode trims and uppercases a buyer-entered coupon code.
func CanonicalCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
