package payments

import (
	"testing"

	"github.com/aliffarhan/threadmart-backend/pkg/enums"
	pkgerrors "github.com/aliffarhan/threadmart-backend/pkg/errors"
)

func TestValidateNumber(t *testing.T) {
	t.Parallel()

	cases := []struct {
		number string
		want   enums.CardBrand
		valid  bool
	}{
		{"4111111111111111", enums.CardBrandVisa, true},
		{"4111111111111", enums.CardBrandVisa, true},  // 13-digit visa
		{"411111111111", enums.CardBrandNone, false},  // 12 digits, too short
		{"41111111111111", enums.CardBrandNone, false}, // 14 digits, between valid lengths
		{"5500005555555559", enums.CardBrandMastercard, true},
		{"550000555555555", enums.CardBrandNone, false}, // mastercard needs 16
		{"340000000000009", enums.CardBrandAmex, true},
		{"34000000000009", enums.CardBrandNone, false}, // amex needs 15
		{"6011000000000004", enums.CardBrandNone, false},
		{"", enums.CardBrandNone, false},
	}

	for _, tc := range cases {
		brand, err := ValidateNumber(tc.number)
		if tc.valid {
			if err != nil {
				t.Fatalf("ValidateNumber(%q) unexpected error: %v", tc.number, err)
			}
			if brand != tc.want {
				t.Fatalf("ValidateNumber(%q) = %s, want %s", tc.number, brand, tc.want)
			}
			continue
		}
		if err == nil {
			t.Fatalf("ValidateNumber(%q) expected rejection", tc.number)
		}
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("ValidateNumber(%q) unexpected error code: %v", tc.number, err)
		}
	}
}

func TestValidateNumberIgnoresSpaces(t *testing.T) {
	t.Parallel()

	brand, err := ValidateNumber("4111 1111 1111 1111")
	if err != nil || brand != enums.CardBrandVisa {
		t.Fatalf("formatted input should validate: %s %v", brand, err)
	}
}
