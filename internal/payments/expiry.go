package payments

import (
	"regexp"
	"strconv"
	"time"

	pkgerrors "github.com/aliffarhan/threadmart-backend/pkg/errors"
)

var expiryPattern = regexp.MustCompile(`^\d{2}/\d{2}$`)

// ValidateExpiry checks an MM/YY expiry against the provided calendar moment.
// Years compare on their two-digit form within the current century; any future
// date is accepted, however far out.
func ValidateExpiry(value string, now time.Time) error {
	if !expiryPattern.MatchString(value) {
		return expiryError()
	}

	month, _ := strconv.Atoi(value[:2])
	year, _ := strconv.Atoi(value[3:])

	if month < 1 || month > 12 {
		return expiryError()
	}

	currentYear := now.Year() % 100
	currentMonth := int(now.Month())

	if year < currentYear {
		return expiryError()
	}
	if year == currentYear && month < currentMonth {
		return expiryError()
	}

	return nil
}

// FormatExpiry masks keystroke input: digits only, a "/" inserted after the
// second digit, capped at four digits total.
func FormatExpiry(raw string) string {
	digits := digitsOnly(raw)
	if len(digits) > 4 {
		digits = digits[:4]
	}
	if len(digits) < 2 {
		return digits
	}
	return digits[:2] + "/" + digits[2:]
}

func expiryError() error {
	return pkgerrors.New(pkgerrors.CodeValidation, "invalid expiry date (MM/YY) or expired")
}
