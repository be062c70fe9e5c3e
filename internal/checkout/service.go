package checkout

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/aliffarhan/threadmart-backend/internal/cart"
	"github.com/aliffarhan/threadmart-backend/internal/orders"
	"github.com/aliffarhan/threadmart-backend/internal/payments"
	"github.com/aliffarhan/threadmart-backend/internal/pricing"
	"github.com/aliffarhan/threadmart-backend/pkg/config"
	"github.com/aliffarhan/threadmart-backend/pkg/db/models"
	"github.com/aliffarhan/threadmart-backend/pkg/enums"
	pkgerrors "github.com/aliffarhan/threadmart-backend/pkg/errors"
	"github.com/aliffarhan/threadmart-backend/pkg/metrics"
	"github.com/aliffarhan/threadmart-backend/pkg/types"
)

const couponField = "coupon"

// Orders ship to the simulated fulfillment destination unless the buyer
// provides one.
var mockDestination = types.Address{Line1: "123 Mock St", City: "City", Country: "Country"}

// OrderPlacer turns a validated, priced attempt into a persisted order.
type OrderPlacer interface {
	Place(ctx context.Context, input orders.PlaceOrderInput) (*orders.OrderDTO, error)
}

type cartReader interface {
	FindByUser(ctx context.Context, userID uuid.UUID) (*models.CartRecord, error)
}

type couponResolver interface {
	Resolve(ctx context.Context, code string, now time.Time) (*pricing.Coupon, error)
}

// Service runs checkout attempts end to end.
type Service interface {
	Submit(ctx context.Context, userID uuid.UUID, input SubmitInput) (*Result, error)
}

type service struct {
	carts   cartReader
	coupons couponResolver
	placer  OrderPlacer
	metrics *metrics.CheckoutMetrics
	cfg     config.CheckoutConfig

	sleep func(ctx context.Context, d time.Duration) error
	now   func() time.Time

	mu       sync.Mutex
	inFlight map[uuid.UUID]struct{}
}

// NewService builds the checkout orchestrator. Metrics are optional.
func NewService(
	carts cartReader,
	coupons couponResolver,
	placer OrderPlacer,
	checkoutMetrics *metrics.CheckoutMetrics,
	cfg config.CheckoutConfig,
) (Service, error) {
	if carts == nil {
		return nil, fmt.Errorf("cart reader required")
	}
	if coupons == nil {
		return nil, fmt.Errorf("coupon resolver required")
	}
	if placer == nil {
		return nil, fmt.Errorf("order placer required")
	}
	return &service{
		carts:    carts,
		coupons:  coupons,
		placer:   placer,
		metrics:  checkoutMetrics,
		cfg:      cfg,
		sleep:    sleepFor,
		now:      time.Now,
		inFlight: make(map[uuid.UUID]struct{}),
	}, nil
}

// Submit runs one attempt through the state machine: validate in idle, hold
// in processing for the simulated payment delay, then settle in success or
// failed. A second submit while the user's attempt is processing is rejected
// as a state conflict.
func (s *service) Submit(ctx context.Context, userID uuid.UUID, input SubmitInput) (*Result, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	if !input.PaymentMethod.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid payment method")
	}

	if !s.acquire(userID) {
		state := State{Phase: enums.CheckoutStateProcessing}
		_, err := Transition(state, Submit{})
		return nil, err
	}
	defer s.release(userID)

	started := s.now()
	method := input.PaymentMethod.String()
	defer func() {
		s.metrics.ObserveDuration(method, s.now().Sub(started))
	}()

	record, err := s.carts.FindByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	if len(record.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart contains no items")
	}

	state := NewState()

	fieldErrs, coupon, err := s.validate(ctx, input)
	if err != nil {
		return nil, err
	}
	if len(fieldErrs) > 0 {
		state, err = Transition(state, ValidationFailed{Errors: fieldErrs})
		if err != nil {
			return nil, err
		}
		for field := range fieldErrs {
			s.metrics.IncValidationError(field)
		}
		s.metrics.IncOutcome(method, "rejected")
		return &Result{State: state}, pkgerrors.New(pkgerrors.CodeValidation, "checkout validation failed").
			WithDetails(fieldErrs)
	}

	state, err = Transition(state, Submit{})
	if err != nil {
		return nil, err
	}

	// Simulated payment processing window.
	if err := s.sleep(ctx, s.cfg.ProcessingDelay); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "checkout interrupted")
	}

	subtotal := cart.Subtotal(record.Items)
	totals := pricing.Calculate(subtotal, coupon)

	destination := input.ShippingAddress
	if destination.IsZero() {
		destination = mockDestination
	}

	var couponCode *string
	if coupon != nil {
		code := coupon.Code
		couponCode = &code
	}

	order, placeErr := s.placer.Place(ctx, orders.PlaceOrderInput{
		UserID:          userID,
		CartID:          record.ID,
		Items:           record.Items,
		Totals:          totals,
		CouponCode:      couponCode,
		PaymentMethod:   input.PaymentMethod,
		ShippingAddress: destination,
	})
	if placeErr != nil {
		state, err = Transition(state, PlacementFailed{})
		if err != nil {
			return nil, err
		}
		s.metrics.IncOutcome(method, "failed")
		return &Result{State: state}, pkgerrors.Wrap(pkgerrors.CodePayment, placeErr, "order placement failed")
	}

	state, err = Transition(state, PlacementSucceeded{})
	if err != nil {
		return nil, err
	}
	s.metrics.IncOutcome(method, "success")

	return &Result{State: state, Totals: totals, Order: order}, nil
}

// validate collects every field failure for one response. Card checks only
// run for methods that carry card details.
func (s *service) validate(ctx context.Context, input SubmitInput) (payments.FieldErrors, *pricing.Coupon, error) {
	fieldErrs := payments.FieldErrors{}

	if input.PaymentMethod.RequiresCardDetails() {
		_, cardErrs := payments.ValidateCard(input.Card, s.now())
		for field, msg := range cardErrs {
			fieldErrs[field] = msg
		}
	}

	coupon, err := s.coupons.Resolve(ctx, input.CouponCode, s.now())
	if err != nil {
		typed := pkgerrors.As(err)
		if typed == nil || typed.Code() != pkgerrors.CodeValidation {
			return nil, nil, err
		}
		fieldErrs[couponField] = typed.Message()
		coupon = nil
	}

	return fieldErrs, coupon, nil
}

func (s *service) acquire(userID uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inFlight[userID]; busy {
		return false
	}
	s.inFlight[userID] = struct{}{}
	return true
}

func (s *service) release(userID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, userID)
}

func sleepFor(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
