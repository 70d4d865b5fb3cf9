package services

import (
	"errors"
	"regexp"

	"checkout/internal/core/domain/model/cart"
	"checkout/internal/core/domain/model/checkout"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/model/order"
	"checkout/internal/pkg/errs"
)

// phonePattern is the local mobile number format: 11 digits, "01" then an
// operator digit 3-9.
var phonePattern = regexp.MustCompile(`^01[3-9][0-9]{8}$`)

// ErrInvoiceSourceIsRequired is returned by NewOrderComposer without a source.
var ErrInvoiceSourceIsRequired = errors.New("invoice source is required")

// OrderComposer validates drafts and turns valid ones into courier payloads.
//
// Validation runs every rule and reports all failing fields together:
//   - fullName, division, district, streetAddress: Required when empty
//   - phone: Required when empty, InvalidFormat when it is not a local mobile number
//   - shippingTier, paymentMethod: Required when unset
//   - subDistrict, postalCode, notes: optional
//
// Example usage:
//
//	composer, _ := services.NewOrderComposer(services.NewInvoiceGenerator())
//	pricing := services.NewPricingEngine().Price(lines, draft.ShippingTier())
//	composition, err := composer.Compose(draft, lines, pricing)
//	var verr *checkout.ValidationError
//	if errors.As(err, &verr) {
//	    // report verr.Fields to the buyer
//	}
type OrderComposer struct {
	invoices InvoiceSource
}

// NewOrderComposer creates an OrderComposer drawing invoices from source.
func NewOrderComposer(source InvoiceSource) (*OrderComposer, error) {
	if source == nil {
		return nil, ErrInvoiceSourceIsRequired
	}
	return &OrderComposer{invoices: source}, nil
}

// FieldErrors returns every failing field of draft, in form order.
func (c *OrderComposer) FieldErrors(draft checkout.Draft) []checkout.FieldError {
	var fields []checkout.FieldError
	add := func(field string, code checkout.FieldCode) {
		fields = append(fields, checkout.FieldError{Field: field, Code: code})
	}

	contact := draft.Contact()
	if contact.FullName() == "" {
		add(checkout.FieldFullName, checkout.Required)
	}
	switch {
	case contact.Phone() == "":
		add(checkout.FieldPhone, checkout.Required)
	case !phonePattern.MatchString(contact.Phone()):
		add(checkout.FieldPhone, checkout.InvalidFormat)
	}

	addr := draft.Address()
	if addr.Division() == "" {
		add(checkout.FieldDivision, checkout.Required)
	}
	if addr.District() == "" {
		add(checkout.FieldDistrict, checkout.Required)
	}
	if addr.StreetAddress() == "" {
		add(checkout.FieldStreetAddress, checkout.Required)
	}
	if !draft.ShippingTier().IsSet() {
		add(checkout.FieldShippingTier, checkout.Required)
	}
	if !draft.PaymentMethod().IsSet() {
		add(checkout.FieldPaymentMethod, checkout.Required)
	}

	return fields
}

// Validate returns nil for a complete draft and a *checkout.ValidationError
// otherwise.
func (c *OrderComposer) Validate(draft checkout.Draft) error {
	if fields := c.FieldErrors(draft); len(fields) > 0 {
		return &checkout.ValidationError{Fields: fields}
	}
	return nil
}

// Compose validates draft, assigns a fresh invoice and builds the payload.
// The collected amount is pricing.Total.
//
// Returns:
//   - *checkout.ValidationError when the draft is incomplete
//   - checkout.ErrCartIsEmpty when lines is empty
//   - errs.ValueIsOutOfRangeError when the total exceeds kernel.MaxMoney
//   - an invoice generation error, which is unexpected
func (c *OrderComposer) Compose(draft checkout.Draft, lines []*cart.Line, pricing order.Pricing) (*order.Composition, error) {
	if err := c.Validate(draft); err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, checkout.ErrCartIsEmpty
	}
	if pricing.Subtotal.Exceeds(kernel.MaxMoney) || pricing.Total.Exceeds(kernel.MaxMoney) {
		return nil, errs.NewValueIsOutOfRangeError("total", pricing.Total.String(), "0", kernel.MaxMoney.String())
	}

	invoice, err := c.invoices.Next()
	if err != nil {
		return nil, err
	}

	addressText := draft.Address().Text()
	var note *string
	if notes := draft.Notes(); notes != "" {
		note = &notes
	}

	payload := order.Payload{
		Invoice:          invoice.ID(),
		RecipientName:    draft.Contact().FullName(),
		RecipientAddress: addressText,
		RecipientPhone:   draft.Contact().Phone(),
		CODAmount:        pricing.Total.String(),
		Note:             note,
	}

	result, err := order.NewResult(
		invoice,
		draft.Contact(),
		addressText,
		draft.ShippingTier(),
		draft.PaymentMethod(),
		draft.Notes(),
		order.LinesFromCart(lines),
		pricing,
	)
	if err != nil {
		return nil, err
	}

	return order.NewComposition(payload, result)
}
