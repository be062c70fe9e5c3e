package enums

import "fmt"

// CardBrand is the card network classification inferred from the number.
type CardBrand string

const (
	CardBrandVisa       CardBrand = "visa"
	CardBrandMastercard CardBrand = "mastercard"
	CardBrandAmex       CardBrand = "amex"
	CardBrandNone       CardBrand = "none"
)

var validCardBrands = []CardBrand{
	CardBrandVisa,
	CardBrandMastercard,
	CardBrandAmex,
	CardBrandNone,
}

// String implements fmt.Stringer.
func (c CardBrand) String() string {
	return string(c)
}

// IsValid reports whether the value is a known CardBrand.
func (c CardBrand) IsValid() bool {
	for _, candidate := range validCardBrands {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCardBrand converts raw input into a CardBrand.
func ParseCardBrand(value string) (CardBrand, error) {
	for _, candidate := range validCardBrands {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid card brand %q", value)
}
