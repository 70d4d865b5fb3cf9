package commands

import (
	"context"

	"checkout/internal/core/domain/model/address"
	"checkout/internal/core/domain/model/checkout"
)

// SelectAddressCommandHandler applies an address selection against the
// reference dataset.
type SelectAddressCommandHandler struct {
	uowFactory SessionUoWFactory
	dataset    address.Dataset
}

// NewSelectAddressCommandHandler creates the handler.
func NewSelectAddressCommandHandler(uowFactory SessionUoWFactory, dataset address.Dataset) SelectAddressCommandHandler {
	return SelectAddressCommandHandler{uowFactory: uowFactory, dataset: dataset}
}

// Handle rejects values outside the selected broader unit with
// errs.ValueIsInvalidError and leaves the session unchanged.
func (h SelectAddressCommandHandler) Handle(ctx context.Context, command SelectAddressCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	return mutateSession(ctx, h.uowFactory, command.SessionID(), func(s *checkout.Session) error {
		return s.SelectAddress(h.dataset, command.Level(), command.Value())
	})
}
