package payments

import (
	"regexp"
	"strings"

	"github.com/aliffarhan/threadmart-backend/pkg/enums"
	pkgerrors "github.com/aliffarhan/threadmart-backend/pkg/errors"
)

var (
	cvv3Pattern = regexp.MustCompile(`^\d{3}$`)
	cvv4Pattern = regexp.MustCompile(`^\d{4}$`)
)

// ValidateCVV checks the security code length for the brand: amex uses four
// digits, everything else three. An unclassified brand falls into the
// three-digit branch; at submission time the number validator has already
// rejected such cards, so this branch only matters for live feedback.
func ValidateCVV(cvv string, brand enums.CardBrand) error {
	cleaned := strings.ReplaceAll(cvv, " ", "")

	pattern := cvv3Pattern
	if brand == enums.CardBrandAmex {
		pattern = cvv4Pattern
	}
	if !pattern.MatchString(cleaned) {
		return cvvError()
	}
	return nil
}

func cvvError() error {
	return pkgerrors.New(pkgerrors.CodeValidation, "invalid CVV")
}
