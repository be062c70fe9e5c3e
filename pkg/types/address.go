package types

import "strings"

// Address is the shipping destination attached to carts and orders.
type Address struct {
	Line1      string `json:"line1" validate:"required"`
	City       string `json:"city" validate:"required"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country" validate:"required"`
}

// String renders the single-line form used on invoices and logs.
func (a Address) String() string {
	parts := make([]string, 0, 4)
	for _, p := range []string{a.Line1, a.City, a.PostalCode, a.Country} {
		if strings.TrimSpace(p) != "" {
			parts = append(parts, strings.TrimSpace(p))
		}
	}
	return strings.Join(parts, ", ")
}

// IsZero reports whether no field is populated.
func (a Address) IsZero() bool {
	return a.Line1 == "" && a.City == "" && a.PostalCode == "" && a.Country == ""
}
