package payments

import (
	"regexp"

	"github.com/aliffarhan/threadmart-backend/pkg/enums"
	pkgerrors "github.com/aliffarhan/threadmart-backend/pkg/errors"
)

// Strict per-brand patterns applied at submission time. Unlike DetectBrand
// these enforce the full length: visa 13 or 16 digits, mastercard 16, amex 15.
var (
	visaPattern       = regexp.MustCompile(`^4[0-9]{12}(?:[0-9]{3})?$`)
	mastercardPattern = regexp.MustCompile(`^5[1-5][0-9]{14}$`)
	amexPattern       = regexp.MustCompile(`^3[47][0-9]{13}$`)
)

// ValidateNumber is the authoritative card number check. A correctly prefixed
// number with the wrong length is rejected here even though DetectBrand would
// still classify it.
func ValidateNumber(number string) (enums.CardBrand, error) {
	digits := digitsOnly(number)

	switch {
	case visaPattern.MatchString(digits):
		return enums.CardBrandVisa, nil
	case mastercardPattern.MatchString(digits):
		return enums.CardBrandMastercard, nil
	case amexPattern.MatchString(digits):
		return enums.CardBrandAmex, nil
	}

	return enums.CardBrandNone, pkgerrors.New(pkgerrors.CodeValidation,
		"invalid card number or unsupported card type (Visa, Mastercard, Amex)")
}
