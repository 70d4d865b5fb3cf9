package commands

import (
	"errors"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/pkg/guard"
)

var ErrDismissConfirmationCommandIsNotConstructed = errors.New(
	"DismissConfirmationCommand must be created via NewDismissConfirmationCommand constructor",
)

// DismissConfirmationCommand closes the confirmation of the last submission.
// The archived order is kept; only the session forgets it.
type DismissConfirmationCommand struct {
	sessionID kernel.UUID

	guard guard.ConstructorGuard
}

// NewDismissConfirmationCommand validates the session id.
func NewDismissConfirmationCommand(sessionID kernel.UUID) (DismissConfirmationCommand, error) {
	if err := sessionID.Validate(); err != nil {
		return DismissConfirmationCommand{}, err
	}

	return DismissConfirmationCommand{
		sessionID: sessionID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c DismissConfirmationCommand) Validate() error {
	return c.guard.Validate(ErrDismissConfirmationCommandIsNotConstructed)
}

// SessionID returns the session to reset.
func (c DismissConfirmationCommand) SessionID() kernel.UUID {
	return c.sessionID
}
