package payments

import (
	"testing"

	"github.com/aliffarhan/threadmart-backend/pkg/enums"
)

func TestValidateCVV(t *testing.T) {
	t.Parallel()

	cases := []struct {
		cvv   string
		brand enums.CardBrand
		valid bool
	}{
		{"123", enums.CardBrandMastercard, true},
		{"123", enums.CardBrandVisa, true},
		{"123", enums.CardBrandAmex, false},
		{"1234", enums.CardBrandAmex, true},
		{"1234", enums.CardBrandVisa, false},
		{"12", enums.CardBrandVisa, false},
		{"12a", enums.CardBrandVisa, false},
		{"", enums.CardBrandVisa, false},
		// Unclassified numbers fall into the 3-digit branch.
		{"123", enums.CardBrandNone, true},
		{"1234", enums.CardBrandNone, false},
	}

	for _, tc := range cases {
		err := ValidateCVV(tc.cvv, tc.brand)
		if tc.valid && err != nil {
			t.Fatalf("ValidateCVV(%q, %s) unexpected error: %v", tc.cvv, tc.brand, err)
		}
		if !tc.valid && err == nil {
			t.Fatalf("ValidateCVV(%q, %s) expected rejection", tc.cvv, tc.brand)
		}
	}
}
