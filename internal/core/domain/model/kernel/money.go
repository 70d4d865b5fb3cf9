package kernel

import (
	"fmt"

	"checkout/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// MoneyScale is the number of fractional digits an amount may carry.
const MoneyScale = 2

// MaxMoney is the largest storable amount: ten integer digits and two
// fractional ones.
var MaxMoney = decimal.RequireFromString("9999999999.99")

// Money is a non-negative amount in Bangladeshi taka with at most two
// fractional digits. The zero value is ৳0.
type Money struct {
	amount decimal.Decimal
}

// NewMoney wraps a decimal amount. Negative values, values with more than
// MoneyScale fractional digits and values above MaxMoney are rejected.
func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("money", fmt.Errorf("%s is negative", amount))
	}
	if !amount.Equal(amount.Round(MoneyScale)) {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("money",
			fmt.Errorf("%s has more than %d fractional digits", amount, MoneyScale))
	}
	if amount.GreaterThan(MaxMoney) {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("money", fmt.Errorf("%s exceeds %s", amount, MaxMoney))
	}
	return Money{amount: amount}, nil
}

// MoneyFromInt builds a whole-taka amount.
func MoneyFromInt(taka int64) (Money, error) {
	return NewMoney(decimal.NewFromInt(taka))
}

// MustMoneyFromInt is MoneyFromInt for constants; it panics on negative input.
func MustMoneyFromInt(taka int64) Money {
	m, err := MoneyFromInt(taka)
	if err != nil {
		panic(err)
	}
	return m
}

// ParseMoney reads an amount such as "199.50".
func ParseMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("money", err)
	}
	return NewMoney(d)
}

// Add returns m + other.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// Times returns m multiplied by a non-negative quantity.
func (m Money) Times(quantity int) Money {
	if quantity <= 0 {
		return Money{}
	}
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(quantity)))}
}

// Decimal exposes the underlying amount for persistence and formatting.
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// Exceeds reports whether m is greater than limit.
func (m Money) Exceeds(limit decimal.Decimal) bool {
	return m.amount.GreaterThan(limit)
}

// IsZero reports whether the amount is ৳0.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// Equal compares amounts numerically, so 400 equals 400.00.
func (m Money) Equal(other Money) bool {
	return m.amount.Equal(other.amount)
}

// String renders the shortest exact decimal form: "400", "199.5".
func (m Money) String() string {
	return m.amount.String()
}
