package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/aliffarhan/threadmart-backend/pkg/db/models"
)

// Repository handles cart persistence. Each user has at most one cart row.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to cart operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByUser loads the user's cart with its items, creating an empty cart on
// first touch.
func (r *Repository) FindByUser(ctx context.Context, userID uuid.UUID) (*models.CartRecord, error) {
	var record models.CartRecord
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		First(&record).Error
	if err == nil {
		return &record, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	record = models.CartRecord{UserID: userID}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, err
	}
	record.Items = []models.CartItem{}
	return &record, nil
}

// ReplaceItems swaps the cart's full line set inside one transaction and
// bumps the cart's updated timestamp.
func (r *Repository) ReplaceItems(ctx context.Context, cartID uuid.UUID, items []models.CartItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].CartID = cartID
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}

		res := tx.Model(&models.CartRecord{}).
			Where("id = ?", cartID).
			Update("updated_at", gorm.Expr("CURRENT_TIMESTAMP"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("cart %s not found", cartID)
		}
		return nil
	})
}

// ClearWithTx empties the cart using the caller's transaction. Checkout uses
// this so the cart clears atomically with order placement.
func (r *Repository) ClearWithTx(tx *gorm.DB, cartID uuid.UUID) error {
	if tx == nil {
		return gorm.ErrInvalidTransaction
	}
	return tx.Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error
}
