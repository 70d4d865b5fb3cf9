package checkout

import (
	"errors"
	"fmt"
	"strings"
)

// ErrValidationFailed is matched by every *ValidationError.
var ErrValidationFailed = errors.New("order draft is invalid")

// FieldCode classifies a field-level validation failure.
type FieldCode string

const (
	Required      FieldCode = "Required"
	InvalidFormat FieldCode = "InvalidFormat"
)

// Field names as reported to clients.
const (
	FieldFullName      = "fullName"
	FieldPhone         = "phone"
	FieldDivision      = "division"
	FieldDistrict      = "district"
	FieldStreetAddress = "streetAddress"
	FieldShippingTier  = "shippingTier"
	FieldPaymentMethod = "paymentMethod"
)

// FieldError names one failing field.
type FieldError struct {
	Field string    `json:"field"`
	Code  FieldCode `json:"code"`
}

func (f FieldError) String() string {
	return fmt.Sprintf("%s: %s", f.Field, f.Code)
}

// ValidationError collects every failing field of a draft.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.String())
	}
	return fmt.Sprintf("%s: %s", ErrValidationFailed, strings.Join(parts, ", "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}

// Has reports whether field failed with code.
func (e *ValidationError) Has(field string, code FieldCode) bool {
	for _, f := range e.Fields {
		if f.Field == field && f.Code == code {
			return true
		}
	}
	return false
}
