package commands

import (
	"errors"
	"fmt"
	"strings"

	"checkout/internal/core/domain/model/checkout"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/pkg/errs"
	"checkout/internal/pkg/guard"
)

var ErrChangeQuantityCommandIsNotConstructed = errors.New(
	"ChangeQuantityCommand must be created via NewChangeQuantityCommand constructor",
)

// ChangeQuantityCommand increments or decrements one cart line of a session.
type ChangeQuantityCommand struct {
	sessionID kernel.UUID
	lineID    string
	change    checkout.QuantityChange

	guard guard.ConstructorGuard
}

// NewChangeQuantityCommand validates all three inputs together.
func NewChangeQuantityCommand(
	sessionID kernel.UUID,
	lineID string,
	change checkout.QuantityChange,
) (ChangeQuantityCommand, error) {
	var lineErr error
	if strings.TrimSpace(lineID) == "" {
		lineErr = errs.NewValueIsRequiredError("lineId")
	}
	var changeErr error
	if change != checkout.Increment && change != checkout.Decrement {
		changeErr = errs.NewValueIsInvalidErrorWithCause("change", fmt.Errorf("%d is not a quantity change", change))
	}

	if err := errors.Join(sessionID.Validate(), lineErr, changeErr); err != nil {
		return ChangeQuantityCommand{}, err
	}

	return ChangeQuantityCommand{
		sessionID: sessionID,
		lineID:    lineID,
		change:    change,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ChangeQuantityCommand) Validate() error {
	return c.guard.Validate(ErrChangeQuantityCommandIsNotConstructed)
}

func (c ChangeQuantityCommand) SessionID() kernel.UUID          { return c.sessionID }
func (c ChangeQuantityCommand) LineID() string                  { return c.lineID }
func (c ChangeQuantityCommand) Change() checkout.QuantityChange { return c.change }
