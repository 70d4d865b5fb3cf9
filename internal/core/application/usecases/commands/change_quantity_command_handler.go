package commands

import (
	"context"

	"checkout/internal/core/domain/model/checkout"
)

// ChangeQuantityCommandHandler applies a quantity change. The price summary
// is not stored; readers price the updated lines again.
type ChangeQuantityCommandHandler struct {
	uowFactory SessionUoWFactory
}

// NewChangeQuantityCommandHandler creates the handler.
func NewChangeQuantityCommandHandler(uowFactory SessionUoWFactory) ChangeQuantityCommandHandler {
	return ChangeQuantityCommandHandler{uowFactory: uowFactory}
}

// Handle loads the session, changes the line and saves it.
func (h ChangeQuantityCommandHandler) Handle(ctx context.Context, command ChangeQuantityCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	return mutateSession(ctx, h.uowFactory, command.SessionID(), func(s *checkout.Session) error {
		return s.ChangeQuantity(command.LineID(), command.Change())
	})
}
