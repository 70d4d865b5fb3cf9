package commands

import (
	"context"

	"checkout/internal/core/domain/model/checkout"
)

// DismissConfirmationCommandHandler returns a session to Idle.
type DismissConfirmationCommandHandler struct {
	uowFactory SessionUoWFactory
}

// NewDismissConfirmationCommandHandler creates the handler.
func NewDismissConfirmationCommandHandler(uowFactory SessionUoWFactory) DismissConfirmationCommandHandler {
	return DismissConfirmationCommandHandler{uowFactory: uowFactory}
}

// Handle clears the last outcome of the session.
func (h DismissConfirmationCommandHandler) Handle(ctx context.Context, command DismissConfirmationCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	return mutateSession(ctx, h.uowFactory, command.SessionID(), func(s *checkout.Session) error {
		return s.DismissConfirmation()
	})
}
