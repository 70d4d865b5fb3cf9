package checkout

import (
	"strings"

	"checkout/internal/core/domain/model/address"
	"checkout/internal/core/domain/model/payment"
	"checkout/internal/core/domain/model/shipping"
)

// ContactInfo identifies the recipient.
type ContactInfo struct {
	fullName string
	phone    string
}

// NewContactInfo trims both values. Format rules are checked at validation
// time so that a half-typed phone number can still be saved.
func NewContactInfo(fullName, phone string) ContactInfo {
	return ContactInfo{
		fullName: strings.TrimSpace(fullName),
		phone:    strings.TrimSpace(phone),
	}
}

func (c ContactInfo) FullName() string { return c.fullName }
func (c ContactInfo) Phone() string    { return c.phone }

// Draft is the unsubmitted order form. It is an immutable value; the With
// methods return modified copies.
type Draft struct {
	contact ContactInfo
	address address.Selection
	tier    shipping.Tier
	payment payment.Method
	notes   string
}

// NewDraft returns the initial form state: empty fields with the near zone
// tier and cash on delivery preselected.
func NewDraft() Draft {
	return Draft{
		tier:    shipping.NearZone,
		payment: payment.CashOnDelivery,
	}
}

// RestoreDraft rebuilds a draft from persisted values without validation.
func RestoreDraft(
	contact ContactInfo,
	selection address.Selection,
	tier shipping.Tier,
	method payment.Method,
	notes string,
) Draft {
	return Draft{
		contact: contact,
		address: selection,
		tier:    tier,
		payment: method,
		notes:   notes,
	}
}

func (d Draft) Contact() ContactInfo          { return d.contact }
func (d Draft) Address() address.Selection    { return d.address }
func (d Draft) ShippingTier() shipping.Tier   { return d.tier }
func (d Draft) PaymentMethod() payment.Method { return d.payment }
func (d Draft) Notes() string                 { return d.notes }

func (d Draft) WithContact(contact ContactInfo) Draft {
	d.contact = contact
	return d
}

func (d Draft) WithAddress(selection address.Selection) Draft {
	d.address = selection
	return d
}

func (d Draft) WithShippingTier(tier shipping.Tier) Draft {
	d.tier = tier
	return d
}

func (d Draft) WithPaymentMethod(method payment.Method) Draft {
	d.payment = method
	return d
}

// WithNotes trims surrounding whitespace but keeps inner line breaks.
func (d Draft) WithNotes(notes string) Draft {
	d.notes = strings.TrimSpace(notes)
	return d
}
