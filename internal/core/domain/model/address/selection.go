package address

import "strings"

// Selection is an immutable snapshot of the address part of a draft.
// Only Resolver produces selections with a changed division, district or
// sub-district, which keeps the cascade rules in one place.
type Selection struct {
	division      string
	district      string
	subDistrict   string
	streetAddress string
	postalCode    string
}

// RestoreSelection rebuilds a selection from persisted columns.
func RestoreSelection(division, district, subDistrict, streetAddress, postalCode string) Selection {
	return Selection{
		division:      division,
		district:      district,
		subDistrict:   subDistrict,
		streetAddress: streetAddress,
		postalCode:    postalCode,
	}
}

func (s Selection) Division() string      { return s.division }
func (s Selection) District() string      { return s.district }
func (s Selection) SubDistrict() string   { return s.subDistrict }
func (s Selection) StreetAddress() string { return s.streetAddress }
func (s Selection) PostalCode() string    { return s.postalCode }

// WithStreet returns a copy with the free-text parts replaced. Surrounding
// whitespace is trimmed.
func (s Selection) WithStreet(streetAddress, postalCode string) Selection {
	s.streetAddress = strings.TrimSpace(streetAddress)
	s.postalCode = strings.TrimSpace(postalCode)
	return s
}

// Text joins the address in courier order: street, district, sub-district,
// division, postal code. Empty parts are skipped.
func (s Selection) Text() string {
	parts := make([]string, 0, 5)
	for _, p := range []string{s.streetAddress, s.district, s.subDistrict, s.division, s.postalCode} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}
