// Package shipping defines the delivery tiers offered at checkout.
package shipping

import (
	"fmt"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/pkg/errs"
)

// Tier is a named shipping option with a flat delivery cost and an
// estimated duration. The zero value means "no tier selected".
type Tier int

const (
	// Unset is the zero value; validation reports it as Required.
	Unset Tier = iota

	// NearZone delivers inside Dhaka.
	NearZone

	// FarZone delivers anywhere outside Dhaka.
	FarZone
)

type tierSpec struct {
	code    string
	title   string
	cost    int64
	minDays int
	maxDays int
}

func getTierSpecs() map[Tier]tierSpec {
	//nolint:exhaustive // Unset has no entry
	return map[Tier]tierSpec{
		NearZone: {code: "inside_dhaka", title: "Inside Dhaka", cost: 60, minDays: 1, maxDays: 3},
		FarZone:  {code: "outside_dhaka", title: "Outside Dhaka", cost: 120, minDays: 3, maxDays: 5},
	}
}

// Tiers lists the selectable tiers in display order.
func Tiers() []Tier {
	return []Tier{NearZone, FarZone}
}

// ParseTier reads a wire code ("inside_dhaka", "outside_dhaka").
// The empty string yields Unset without error.
func ParseTier(code string) (Tier, error) {
	if code == "" {
		return Unset, nil
	}
	for tier, spec := range getTierSpecs() {
		if spec.code == code {
			return tier, nil
		}
	}
	return Unset, errs.NewValueIsInvalidErrorWithCause("shippingTier", fmt.Errorf("%q is not a shipping tier", code))
}

// Validate rejects Unset and out-of-range values.
func (t Tier) Validate() error {
	if _, ok := getTierSpecs()[t]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("shippingTier", fmt.Errorf("%d is not a valid tier", t))
	}
	return nil
}

// IsSet reports whether a real tier is selected.
func (t Tier) IsSet() bool {
	return t.Validate() == nil
}

// Code is the wire identifier; empty for Unset.
func (t Tier) Code() string {
	return getTierSpecs()[t].code
}

// String returns the English title, e.g. "Inside Dhaka".
func (t Tier) String() string {
	if spec, ok := getTierSpecs()[t]; ok {
		return spec.title
	}
	return "Unset"
}

// FlatCost is the delivery charge of the tier; ৳0 for Unset.
func (t Tier) FlatCost() kernel.Money {
	spec, ok := getTierSpecs()[t]
	if !ok {
		return kernel.Money{}
	}
	return kernel.MustMoneyFromInt(spec.cost)
}

// EstimatedDays returns the delivery estimate as an inclusive day range.
func (t Tier) EstimatedDays() (minDays, maxDays int) {
	spec := getTierSpecs()[t]
	return spec.minDays, spec.maxDays
}
