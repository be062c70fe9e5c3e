package coupons

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/aliffarhan/threadmart-backend/internal/pricing"
	"github.com/aliffarhan/threadmart-backend/pkg/db/models"
	"github.com/aliffarhan/threadmart-backend/pkg/enums"
	pkgerrors "github.com/aliffarhan/threadmart-backend/pkg/errors"
)

const catalogCacheKeyPart = "coupons-active"

type couponRepository interface {
	Create(ctx context.Context, coupon *models.Coupon) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Coupon, error)
	FindByCode(ctx context.Context, code string) (*models.Coupon, error)
	List(ctx context.Context) ([]models.Coupon, error)
	ListActive(ctx context.Context, now time.Time) ([]models.Coupon, error)
	Update(ctx context.Context, coupon *models.Coupon) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type catalogCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	CacheKey(parts ...string) string
}

// Service exposes coupon operations for buyers and admins.
type Service interface {
	ListActive(ctx context.Context) ([]CouponDTO, error)
	Resolve(ctx context.Context, code string, now time.Time) (*pricing.Coupon, error)

	List(ctx context.Context) ([]CouponDTO, error)
	Create(ctx context.Context, input CreateCouponDTO) (*CouponDTO, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateCouponInput) (*CouponDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo     couponRepository
	cache    catalogCache
	cacheTTL time.Duration
	now      func() time.Time
}

// NewService builds a coupon service. The cache is optional; without it every
// catalog read hits the database.
func NewService(repo couponRepository, cache catalogCache, cacheTTL time.Duration) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("coupon repository required")
	}
	return &service{
		repo:     repo,
		cache:    cache,
		cacheTTL: cacheTTL,
		now:      time.Now,
	}, nil
}

func (s *service) ListActive(ctx context.Context) ([]CouponDTO, error) {
	if dtos, ok := s.cachedCatalog(ctx); ok {
		return dtos, nil
	}

	coupons, err := s.repo.ListActive(ctx, s.now())
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list active coupons")
	}

	dtos := make([]CouponDTO, 0, len(coupons))
	for i := range coupons {
		dtos = append(dtos, *FromModel(&coupons[i]))
	}

	s.storeCatalog(ctx, dtos)
	return dtos, nil
}

// Resolve looks up a buyer-entered code for checkout. An empty code resolves
// to no coupon; anything unknown, inactive, or expired is a validation error.
func (s *service) Resolve(ctx context.Context, code string, now time.Time) (*pricing.Coupon, error) {
	canonical := CanonicalCode(code)
	if canonical == "" {
		return nil, nil
	}

	coupon, err := s.repo.FindByCode(ctx, canonical)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, invalidCouponError()
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup coupon")
	}
	if !coupon.IsRedeemable(now) {
		return nil, invalidCouponError()
	}

	return &pricing.Coupon{
		Code:  coupon.Code,
		Kind:  coupon.Kind,
		Value: coupon.Value,
	}, nil
}

func (s *service) List(ctx context.Context) ([]CouponDTO, error) {
	coupons, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list coupons")
	}
	dtos := make([]CouponDTO, 0, len(coupons))
	for i := range coupons {
		dtos = append(dtos, *FromModel(&coupons[i]))
	}
	return dtos, nil
}

func (s *service) Create(ctx context.Context, input CreateCouponDTO) (*CouponDTO, error) {
	if CanonicalCode(input.Code) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "coupon code is required")
	}
	if !input.Kind.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid coupon kind")
	}
	if err := validateValue(input.Kind, input.Value); err != nil {
		return nil, err
	}

	coupon := input.ToModel()
	if err := s.repo.Create(ctx, coupon); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "coupon code already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create coupon")
	}

	s.invalidateCatalog(ctx)
	return FromModel(coupon), nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateCouponInput) (*CouponDTO, error) {
	coupon, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "coupon not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load coupon")
	}

	if input.Kind != nil {
		if !input.Kind.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid coupon kind")
		}
		coupon.Kind = *input.Kind
	}
	if input.Value != nil {
		coupon.Value = *input.Value
	}
	if input.Description != nil {
		coupon.Description = input.Description
	}
	if input.IsActive != nil {
		coupon.IsActive = *input.IsActive
	}
	if input.ClearExpiry {
		coupon.ExpiresAt = nil
	} else if input.ExpiresAt != nil {
		coupon.ExpiresAt = input.ExpiresAt
	}

	if coupon.Kind == enums.CouponKindFreeShipping {
		coupon.Value = decimal.Zero
	}
	if err := validateValue(coupon.Kind, coupon.Value); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, coupon); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update coupon")
	}

	s.invalidateCatalog(ctx)
	return FromModel(coupon), nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "coupon not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete coupon")
	}
	s.invalidateCatalog(ctx)
	return nil
}

// Cache reads and writes are best effort. A broken cache degrades to direct
// database reads instead of failing the request.
func (s *service) cachedCatalog(ctx context.Context) ([]CouponDTO, bool) {
	if s.cache == nil || s.cacheTTL <= 0 {
		return nil, false
	}
	raw, err := s.cache.Get(ctx, s.cache.CacheKey(catalogCacheKeyPart))
	if err != nil {
		return nil, false
	}
	var dtos []CouponDTO
	if err := json.Unmarshal([]byte(raw), &dtos); err != nil {
		s.invalidateCatalog(ctx)
		return nil, false
	}
	return dtos, true
}

func (s *service) storeCatalog(ctx context.Context, dtos []CouponDTO) {
	if s.cache == nil || s.cacheTTL <= 0 {
		return
	}
	payload, err := json.Marshal(dtos)
	if err != nil {
		return
	}
	_ = s.cache.Set(ctx, s.cache.CacheKey(catalogCacheKeyPart), payload, s.cacheTTL)
}

func (s *service) invalidateCatalog(ctx context.Context) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Del(ctx, s.cache.CacheKey(catalogCacheKeyPart))
}

func validateValue(kind enums.CouponKind, value decimal.Decimal) error {
	switch kind {
	case enums.CouponKindPercentage:
		if value.LessThanOrEqual(decimal.Zero) || value.GreaterThan(decimal.NewFromInt(100)) {
			return pkgerrors.New(pkgerrors.CodeValidation, "percentage value must be between 0 and 100")
		}
	case enums.CouponKindFixed:
		if value.LessThanOrEqual(decimal.Zero) {
			return pkgerrors.New(pkgerrors.CodeValidation, "fixed value must be positive")
		}
	}
	return nil
}

func invalidCouponError() error {
	return pkgerrors.New(pkgerrors.CodeValidation, "invalid or expired coupon code").
		WithDetails(map[string]string{"coupon": "invalid or expired coupon code"})
}
