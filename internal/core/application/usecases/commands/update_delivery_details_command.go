package commands

import (
	"errors"
	"unicode/utf8"

	"checkout/internal/core/domain/model/checkout"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/pkg/errs"
	"checkout/internal/pkg/guard"
)

// Upper bounds on free-text fields, counted in characters.
const (
	MaxFullNameLength      = 100
	MaxPhoneLength         = 20
	MaxStreetAddressLength = 250
	MaxPostalCodeLength    = 10
	MaxNotesLength         = 1000
)

var ErrUpdateDeliveryDetailsCommandIsNotConstructed = errors.New(
	"UpdateDeliveryDetailsCommand must be created via NewUpdateDeliveryDetailsCommand constructor",
)

// UpdateDeliveryDetailsCommand replaces the free-text fields of the draft.
// Completeness and phone format are not checked here; incomplete drafts are
// saved as typed and reported by validation on read and on submit.
type UpdateDeliveryDetailsCommand struct {
	sessionID kernel.UUID
	details   checkout.DeliveryDetails

	guard guard.ConstructorGuard
}

// NewUpdateDeliveryDetailsCommand only enforces the length bounds.
func NewUpdateDeliveryDetailsCommand(
	sessionID kernel.UUID,
	details checkout.DeliveryDetails,
) (UpdateDeliveryDetailsCommand, error) {
	if err := errors.Join(
		sessionID.Validate(),
		checkLength("fullName", details.FullName, MaxFullNameLength),
		checkLength("phone", details.Phone, MaxPhoneLength),
		checkLength("streetAddress", details.StreetAddress, MaxStreetAddressLength),
		checkLength("postalCode", details.PostalCode, MaxPostalCodeLength),
		checkLength("notes", details.Notes, MaxNotesLength),
	); err != nil {
		return UpdateDeliveryDetailsCommand{}, err
	}

	return UpdateDeliveryDetailsCommand{
		sessionID: sessionID,
		details:   details,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateDeliveryDetailsCommand) Validate() error {
	return c.guard.Validate(ErrUpdateDeliveryDetailsCommandIsNotConstructed)
}

func (c UpdateDeliveryDetailsCommand) SessionID() kernel.UUID            { return c.sessionID }
func (c UpdateDeliveryDetailsCommand) Details() checkout.DeliveryDetails { return c.details }

func checkLength(field, value string, limit int) error {
	if n := utf8.RuneCountInString(value); n > limit {
		return errs.NewValueIsOutOfRangeError(field+" length", n, 0, limit)
	}
	return nil
}
