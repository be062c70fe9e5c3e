package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/aliffarhan/threadmart-backend/pkg/enums"
)

// Coupon is an admin-managed discount rule. Code is stored in its canonical
// uppercase form; Value is zero for the free-shipping kind.
type Coupon struct {
	ID          uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Code        string           `gorm:"column:code;not null;uniqueIndex"`
	Kind        enums.CouponKind `gorm:"column:kind;type:text;not null"`
	Value       decimal.Decimal  `gorm:"column:value;type:numeric(12,2);not null;default:0"`
	Description *string          `gorm:"column:description"`
	IsActive    bool             `gorm:"column:is_active;not null;default:true"`
	ExpiresAt   *time.Time       `gorm:"column:expires_at"`
	CreatedAt   time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

// IsRedeemable reports whether checkout may apply the coupon right now.
func (c Coupon) IsRedeemable(now time.Time) bool {
	if !c.IsActive {
		return false
	}
	if c.ExpiresAt != nil && now.After(*c.ExpiresAt) {
		return false
	}
	return true
}
