package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/aliffarhan/threadmart-backend/api/middleware"
	checkoutsvc "github.com/aliffarhan/threadmart-backend/internal/checkout"
	"github.com/aliffarhan/threadmart-backend/internal/orders"
	"github.com/aliffarhan/threadmart-backend/internal/pricing"
	"github.com/aliffarhan/threadmart-backend/pkg/enums"
	pkgerrors "github.com/aliffarhan/threadmart-backend/pkg/errors"
)

type stubCheckoutService struct {
	result *checkoutsvc.Result
	err    error

	gotUser  uuid.UUID
	gotInput checkoutsvc.SubmitInput
}

func (s *stubCheckoutService) Submit(ctx context.Context, userID uuid.UUID, input checkoutsvc.SubmitInput) (*checkoutsvc.Result, error) {
	s.gotUser = userID
	s.gotInput = input
	return s.result, s.err
}

func TestCheckoutSuccess(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	orderID := uuid.New()
	svc := &stubCheckoutService{
		result: &checkoutsvc.Result{
			State: checkoutsvc.State{Phase: enums.CheckoutStateSuccess},
			Totals: pricing.Totals{
				Subtotal: decimal.RequireFromString("100.00"),
				Tax:      decimal.RequireFromString("8.00"),
				Total:    decimal.RequireFromString("108.00"),
			},
			Order: &orders.OrderDTO{ID: orderID},
		},
	}

	body := `{"payment_method":"card","card":{"number":"4000 0000 0000 0002","expiry":"12/30","cvc":"123","name":"Ada Lovelace"},"coupon_code":"SAVE10"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = req.WithContext(middleware.WithUserID(req.Context(), userID.String()))

	resp := httptest.NewRecorder()
	Checkout(svc, nil).ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.gotUser != userID {
		t.Fatalf("expected user %s got %s", userID, svc.gotUser)
	}
	if svc.gotInput.PaymentMethod != enums.PaymentMethodCard {
		t.Fatalf("expected card payment method got %s", svc.gotInput.PaymentMethod)
	}
	if svc.gotInput.CouponCode != "SAVE10" {
		t.Fatalf("expected coupon code forwarded got %q", svc.gotInput.CouponCode)
	}

	var envelope struct {
		Data struct {
			State  string `json:"state"`
			Totals struct {
				Total decimal.Decimal `json:"total"`
			} `json:"totals"`
		} `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.State != "success" {
		t.Fatalf("expected success state got %q", envelope.Data.State)
	}
	if !envelope.Data.Totals.Total.Equal(decimal.RequireFromString("108.00")) {
		t.Fatalf("expected total 108.00 got %s", envelope.Data.Totals.Total)
	}
}

func TestCheckoutValidationFailureReturnsFieldErrors(t *testing.T) {
	t.Parallel()

	svc := &stubCheckoutService{
		err: pkgerrors.New(pkgerrors.CodeValidation, "checkout validation failed").
			WithDetails(map[string]string{"number": "invalid card number", "coupon": "invalid or expired coupon code"}),
	}

	body := `{"payment_method":"card","card":{"number":"1234","expiry":"01/20","cvc":"12","name":""},"coupon_code":"NOPE"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = req.WithContext(middleware.WithUserID(req.Context(), uuid.NewString()))

	resp := httptest.NewRecorder()
	Checkout(svc, nil).ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}

	var envelope struct {
		Error struct {
			Code    string            `json:"code"`
			Details map[string]string `json:"details"`
		} `json:"error"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Error.Details["number"] == "" || envelope.Error.Details["coupon"] == "" {
		t.Fatalf("expected field errors in details got %v", envelope.Error.Details)
	}
}

func TestCheckoutRejectsUnknownPaymentMethod(t *testing.T) {
	t.Parallel()

	svc := &stubCheckoutService{}
	body := `{"payment_method":"wire","card":{}}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = req.WithContext(middleware.WithUserID(req.Context(), uuid.NewString()))

	resp := httptest.NewRecorder()
	Checkout(svc, nil).ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
	if svc.gotUser != uuid.Nil {
		t.Fatal("service should not be called for an unknown payment method")
	}
}

func TestCheckoutRequiresUserContext(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", strings.NewReader(`{"payment_method":"paypal"}`))
	req.Header.Set("Content-Type", "application/json")

	resp := httptest.NewRecorder()
	Checkout(&stubCheckoutService{}, nil).ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}
