// Package payment defines how an order is paid. Only cash on delivery is
// offered; the type exists so that new methods do not change call sites.
package payment

import (
	"fmt"

	"checkout/internal/pkg/errs"
)

// Method is a payment method. The zero value means "not selected".
type Method int

const (
	Unset Method = iota
	CashOnDelivery
)

func getMethodCodes() map[Method]string {
	//nolint:exhaustive // Unset has no code
	return map[Method]string{
		CashOnDelivery: "cash_on_delivery",
	}
}

// ParseMethod reads a wire code. The empty string yields Unset.
func ParseMethod(code string) (Method, error) {
	if code == "" {
		return Unset, nil
	}
	for method, c := range getMethodCodes() {
		if c == code {
			return method, nil
		}
	}
	return Unset, errs.NewValueIsInvalidErrorWithCause("paymentMethod", fmt.Errorf("%q is not a payment method", code))
}

// Validate rejects Unset and unknown values.
func (m Method) Validate() error {
	if _, ok := getMethodCodes()[m]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("paymentMethod", fmt.Errorf("%d is not a valid method", m))
	}
	return nil
}

// IsSet reports whether a real method is selected.
func (m Method) IsSet() bool {
	return m.Validate() == nil
}

// Code is the wire identifier; empty for Unset.
func (m Method) Code() string {
	return getMethodCodes()[m]
}

func (m Method) String() string {
	switch m {
	case CashOnDelivery:
		return "Cash on Delivery"
	case Unset:
	}
	return "Unset"
}
