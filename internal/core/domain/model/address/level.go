package address

import (
	"fmt"

	"checkout/internal/pkg/errs"
)

// Level names one tier of the geographic hierarchy.
type Level int

const (
	UnknownLevel Level = iota
	DivisionLevel
	DistrictLevel
	SubDistrictLevel
)

func getLevelNames() map[Level]string {
	return map[Level]string{
		DivisionLevel:    "division",
		DistrictLevel:    "district",
		SubDistrictLevel: "subDistrict",
	}
}

// ParseLevel reads the wire name of a level ("division", "district", "subDistrict").
func ParseLevel(s string) (Level, error) {
	for level, name := range getLevelNames() {
		if name == s {
			return level, nil
		}
	}
	return UnknownLevel, errs.NewValueIsInvalidErrorWithCause("level", fmt.Errorf("%q is not an address level", s))
}

func (l Level) String() string {
	if name, ok := getLevelNames()[l]; ok {
		return name
	}
	return "unknown"
}

// Validate rejects UnknownLevel and out-of-range values.
func (l Level) Validate() error {
	if _, ok := getLevelNames()[l]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("level", fmt.Errorf("%d is not an address level", l))
	}
	return nil
}
