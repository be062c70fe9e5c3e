package coupons

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/aliffarhan/threadmart-backend/pkg/db/models"
)

// Repository handles coupon persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to coupon operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new coupon row.
func (r *Repository) Create(ctx context.Context, coupon *models.Coupon) error {
	if coupon == nil {
		return fmt.Errorf("coupon is required")
	}
	return r.db.WithContext(ctx).Create(coupon).Error
}

// FindByID loads a coupon by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Coupon, error) {
	var coupon models.Coupon
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&coupon).Error; err != nil {
		return nil, err
	}
	return &coupon, nil
}

// FindByCode loads a coupon by its canonical code.
func (r *Repository) FindByCode(ctx context.Context, code string) (*models.Coupon, error) {
	var coupon models.Coupon
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&coupon).Error; err != nil {
		return nil, err
	}
	return &coupon, nil
}

// List returns every coupon, newest first.
func (r *Repository) List(ctx context.Context) ([]models.Coupon, error) {
	var coupons []models.Coupon
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&coupons).Error; err != nil {
		return nil, err
	}
	return coupons, nil
}

// ListActive returns coupons buyers can redeem at the given moment.
func (r *Repository) ListActive(ctx context.Context, now time.Time) ([]models.Coupon, error) {
	var coupons []models.Coupon
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Where("expires_at IS NULL OR expires_at > ?", now).
		Order("code ASC").
		Find(&coupons).Error; err != nil {
		return nil, err
	}
	return coupons, nil
}

// Update saves the provided coupon.
func (r *Repository) Update(ctx context.Context, coupon *models.Coupon) error {
	if coupon == nil {
		return fmt.Errorf("coupon is required")
	}
	return r.db.WithContext(ctx).Save(coupon).Error
}

// Delete removes the coupon row.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Coupon{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
