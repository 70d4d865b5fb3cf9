package address

import (
	"fmt"
	"slices"

	"checkout/internal/pkg/errs"
)

// Resolver owns the cascading division → district → sub-district selection.
// The district and sub-district views are computed on first access and
// recomputed only after the broader unit changes.
//
//	r := address.NewResolver(dataset, draft.Address())
//	if err := r.SetDivision("Dhaka"); err != nil { ... }
//	districts := r.Districts() // districts of Dhaka; district and sub-district are now empty
type Resolver struct {
	dataset   Dataset
	selection Selection

	districts          []string
	districtsOf        string
	districtsLoaded    bool
	subDistricts       []string
	subDistrictsOf     string
	subDistrictsLoaded bool
}

// NewResolver starts from an existing selection, typically the draft's.
func NewResolver(dataset Dataset, selection Selection) *Resolver {
	return &Resolver{dataset: dataset, selection: selection}
}

// Selection returns the current snapshot.
func (r *Resolver) Selection() Selection {
	return r.selection
}

// Divisions returns every selectable division.
func (r *Resolver) Divisions() []string {
	return slices.Clone(r.dataset.Divisions())
}

// Districts returns the districts of the current division, or nil when no
// division is selected.
func (r *Resolver) Districts() []string {
	division := r.selection.division
	if division == "" {
		return nil
	}
	if !r.districtsLoaded || r.districtsOf != division {
		r.districts = r.dataset.DistrictsOf(division)
		r.districtsOf = division
		r.districtsLoaded = true
	}
	return slices.Clone(r.districts)
}

// SubDistricts returns the sub-districts of the current district, or nil
// when no district is selected.
func (r *Resolver) SubDistricts() []string {
	district := r.selection.district
	if district == "" {
		return nil
	}
	if !r.subDistrictsLoaded || r.subDistrictsOf != district {
		r.subDistricts = r.dataset.SubDistrictsOf(district)
		r.subDistrictsOf = district
		r.subDistrictsLoaded = true
	}
	return slices.Clone(r.subDistricts)
}

// Set dispatches to the setter of the given level.
func (r *Resolver) Set(level Level, value string) error {
	switch level {
	case DivisionLevel:
		return r.SetDivision(value)
	case DistrictLevel:
		return r.SetDistrict(value)
	case SubDistrictLevel:
		return r.SetSubDistrict(value)
	case UnknownLevel:
	}
	return errs.NewValueIsInvalidErrorWithCause("level", fmt.Errorf("%d is not an address level", level))
}

// SetDivision selects a division and clears district and sub-district,
// even when the same division is selected again. An empty value clears the
// whole cascade. Unknown divisions are rejected and leave the selection untouched.
func (r *Resolver) SetDivision(value string) error {
	if value != "" && !slices.Contains(r.dataset.Divisions(), value) {
		return errs.NewValueIsInvalidErrorWithCause("division", fmt.Errorf("%q is not a known division", value))
	}

	r.selection.division = value
	r.selection.district = ""
	r.selection.subDistrict = ""
	return nil
}

// SetDistrict selects a district and clears the sub-district. With a division
// selected the district must be one of Districts(); without one it is kept
// as-is and the draft stays incomplete.
func (r *Resolver) SetDistrict(value string) error {
	if value != "" && r.selection.division != "" && !slices.Contains(r.Districts(), value) {
		return errs.NewValueIsInvalidErrorWithCause("district",
			fmt.Errorf("%q is not a district of %q", value, r.selection.division))
	}

	r.selection.district = value
	r.selection.subDistrict = ""
	return nil
}

// SetSubDistrict selects a sub-district. With a district selected it must be
// one of SubDistricts().
func (r *Resolver) SetSubDistrict(value string) error {
	if value != "" && r.selection.district != "" && !slices.Contains(r.SubDistricts(), value) {
		return errs.NewValueIsInvalidErrorWithCause("subDistrict",
			fmt.Errorf("%q is not a sub-district of %q", value, r.selection.district))
	}

	r.selection.subDistrict = value
	return nil
}
