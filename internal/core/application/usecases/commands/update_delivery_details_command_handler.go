package commands

import (
	"context"

	"checkout/internal/core/domain/model/checkout"
)

// UpdateDeliveryDetailsCommandHandler saves the free-text fields of a draft.
type UpdateDeliveryDetailsCommandHandler struct {
	uowFactory SessionUoWFactory
}

// NewUpdateDeliveryDetailsCommandHandler creates the handler.
func NewUpdateDeliveryDetailsCommandHandler(uowFactory SessionUoWFactory) UpdateDeliveryDetailsCommandHandler {
	return UpdateDeliveryDetailsCommandHandler{uowFactory: uowFactory}
}

// Handle loads the session, replaces the details and saves it.
func (h UpdateDeliveryDetailsCommandHandler) Handle(ctx context.Context, command UpdateDeliveryDetailsCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	return mutateSession(ctx, h.uowFactory, command.SessionID(), func(s *checkout.Session) error {
		return s.UpdateDeliveryDetails(command.Details())
	})
}
