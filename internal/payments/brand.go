package payments

import (
	"strings"

	"github.com/aliffarhan/threadmart-backend/pkg/enums"
)

// DetectBrand classifies a card number by prefix alone. It is deliberately
// looser than ValidateNumber (no length check) so callers can show brand
// feedback while the number is still being typed.
func DetectBrand(number string) enums.CardBrand {
	digits := digitsOnly(number)
	switch {
	case strings.HasPrefix(digits, "4"):
		return enums.CardBrandVisa
	case isMastercardPrefix(digits):
		return enums.CardBrandMastercard
	case strings.HasPrefix(digits, "34"), strings.HasPrefix(digits, "37"):
		return enums.CardBrandAmex
	default:
		return enums.CardBrandNone
	}
}

// MaxDigits returns the longest number length accepted for the brand.
func MaxDigits(brand enums.CardBrand) int {
	if brand == enums.CardBrandAmex {
		return 15
	}
	return 16
}

// FormatNumber normalizes keystroke input: strips non-digits, truncates to the
// live brand's maximum length, and re-inserts separator spaces (4-6-5 for
// amex, 4-4-4-4 otherwise). The returned brand is the live classification.
func FormatNumber(raw string) (string, enums.CardBrand) {
	digits := digitsOnly(raw)
	brand := DetectBrand(digits)

	if max := MaxDigits(brand); len(digits) > max {
		digits = digits[:max]
	}

	if brand == enums.CardBrandAmex {
		return groupDigits(digits, 4, 6, 5), brand
	}
	return groupDigits(digits, 4, 4, 4, 4), brand
}

func groupDigits(digits string, groups ...int) string {
	var b strings.Builder
	rest := digits
	for _, size := range groups {
		if rest == "" {
			break
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		if len(rest) <= size {
			b.WriteString(rest)
			rest = ""
			break
		}
		b.WriteString(rest[:size])
		rest = rest[size:]
	}
	return b.String()
}

func isMastercardPrefix(digits string) bool {
	if len(digits) < 2 || digits[0] != '5' {
		return false
	}
	return digits[1] >= '1' && digits[1] <= '5'
}

func digitsOnly(value string) string {
	var b strings.Builder
	for _, r := range value {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
