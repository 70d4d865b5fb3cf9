package order

import (
	"errors"
	"slices"

	"checkout/internal/core/domain/model/checkout"
	"checkout/internal/core/domain/model/payment"
	"checkout/internal/core/domain/model/shipping"
	"checkout/internal/pkg/errs"
)

// Composition is a validated order with its invoice and courier payload. It
// turns into a Result once the courier accepts it.
type Composition struct {
	payload Payload
	result  *Result
}

// NewComposition pairs the payload with the record that will be archived if
// the courier accepts it.
func NewComposition(payload Payload, result *Result) (*Composition, error) {
	if err := result.Validate(); err != nil {
		return nil, err
	}
	if payload.Invoice != result.Invoice().ID() {
		return nil, errs.NewValueIsInvalidError("payload invoice")
	}
	return &Composition{payload: payload, result: result}, nil
}

func (c *Composition) Invoice() Invoice { return c.result.invoice }
func (c *Composition) Payload() Payload { return c.payload }

// Result is the record to archive once the courier has accepted the payload.
func (c *Composition) Result() *Result {
	return c.result
}

// ErrResultIsNotConstructed is returned for a Result not built by NewResult.
var ErrResultIsNotConstructed = errors.New("Result must be created via NewResult constructor")

// Result is the immutable record of an accepted order.
type Result struct {
	invoice     Invoice
	contact     checkout.ContactInfo
	addressText string
	tier        shipping.Tier
	method      payment.Method
	notes       string
	lines       []Line
	pricing     Pricing

	isConstructed bool
}

// NewResult builds a Result. Lines are copied.
func NewResult(
	invoice Invoice,
	contact checkout.ContactInfo,
	addressText string,
	tier shipping.Tier,
	method payment.Method,
	notes string,
	lines []Line,
	pricing Pricing,
) (*Result, error) {
	var invoiceErr error
	if invoice.ID() == "" {
		invoiceErr = errs.NewValueIsRequiredError("invoice")
	}
	var linesErr error
	if len(lines) == 0 {
		linesErr = checkout.ErrCartIsEmpty
	}

	if err := errors.Join(invoiceErr, tier.Validate(), method.Validate(), linesErr); err != nil {
		return nil, err
	}

	return &Result{
		invoice:       invoice,
		contact:       contact,
		addressText:   addressText,
		tier:          tier,
		method:        method,
		notes:         notes,
		lines:         slices.Clone(lines),
		pricing:       pricing,
		isConstructed: true,
	}, nil
}

// Validate ensures the result was built by NewResult.
func (r *Result) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrResultIsNotConstructed
	}
	return nil
}

func (r *Result) Invoice() Invoice              { return r.invoice }
func (r *Result) Contact() checkout.ContactInfo { return r.contact }
func (r *Result) AddressText() string           { return r.addressText }
func (r *Result) ShippingTier() shipping.Tier   { return r.tier }
func (r *Result) PaymentMethod() payment.Method { return r.method }
func (r *Result) Notes() string                 { return r.notes }
func (r *Result) Lines() []Line                 { return slices.Clone(r.lines) }
func (r *Result) Pricing() Pricing              { return r.pricing }
