package payments

import (
	"strings"
	"time"

	"go.uber.org/multierr"

	"github.com/aliffarhan/threadmart-backend/pkg/enums"
	pkgerrors "github.com/aliffarhan/threadmart-backend/pkg/errors"
)

// Field names used to key validation errors back to the form.
const (
	FieldNumber = "number"
	FieldExpiry = "expiry"
	FieldCVC    = "cvc"
	FieldName   = "name"
)

// CardDetails is the transient card input collected at checkout. It lives in
// request scope only and is never persisted.
type CardDetails struct {
	Number string `json:"number"`
	Expiry string `json:"expiry"`
	CVC    string `json:"cvc"`
	Name   string `json:"name"`
}

// FieldErrors maps a form field to its user-facing validation message.
type FieldErrors map[string]string

// Combined folds the field messages into one error for structured logging.
func (f FieldErrors) Combined() error {
	var err error
	for field, msg := range f {
		err = multierr.Append(err, pkgerrors.New(pkgerrors.CodeValidation, field+": "+msg))
	}
	return err
}

// ValidateCard runs the full submission-time check: strict number pattern,
// expiry calendar check, brand-conditioned CVV length, and a non-empty
// cardholder name. All failing fields are reported together so the form can
// surface every problem in one pass.
func ValidateCard(details CardDetails, now time.Time) (enums.CardBrand, FieldErrors) {
	fieldErrs := FieldErrors{}

	brand, err := ValidateNumber(details.Number)
	if err != nil {
		fieldErrs[FieldNumber] = validationMessage(err)
	}

	if err := ValidateExpiry(details.Expiry, now); err != nil {
		fieldErrs[FieldExpiry] = validationMessage(err)
	}

	// CVV length follows the live brand, matching the on-screen feedback even
	// when the number itself failed the strict check.
	if err := ValidateCVV(details.CVC, DetectBrand(details.Number)); err != nil {
		fieldErrs[FieldCVC] = validationMessage(err)
	}

	if strings.TrimSpace(details.Name) == "" {
		fieldErrs[FieldName] = "cardholder name is required"
	}

	if len(fieldErrs) > 0 {
		return enums.CardBrandNone, fieldErrs
	}
	return brand, nil
}

func validationMessage(err error) string {
	if typed := pkgerrors.As(err); typed != nil {
		return typed.Message()
	}
	return err.Error()
}
