package commands

import (
	"context"

	"checkout/internal/core/domain/model/checkout"
)

// SelectShippingTierCommandHandler saves the chosen tier.
type SelectShippingTierCommandHandler struct {
	uowFactory SessionUoWFactory
}

// NewSelectShippingTierCommandHandler creates the handler.
func NewSelectShippingTierCommandHandler(uowFactory SessionUoWFactory) SelectShippingTierCommandHandler {
	return SelectShippingTierCommandHandler{uowFactory: uowFactory}
}

// Handle loads the session, sets the tier and saves it.
func (h SelectShippingTierCommandHandler) Handle(ctx context.Context, command SelectShippingTierCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	return mutateSession(ctx, h.uowFactory, command.SessionID(), func(s *checkout.Session) error {
		return s.SelectShippingTier(command.Tier())
	})
}
