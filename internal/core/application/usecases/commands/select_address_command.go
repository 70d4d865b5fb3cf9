package commands

import (
	"errors"
	"strings"

	"checkout/internal/core/domain/model/address"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/pkg/guard"
)

var ErrSelectAddressCommandIsNotConstructed = errors.New(
	"SelectAddressCommand must be created via NewSelectAddressCommand constructor",
)

// SelectAddressCommand chooses a division, district or sub-district. An empty
// value clears that level and everything below it.
//
// Example:
//
//	cmd, _ := NewSelectAddressCommand(sessionID, address.DivisionLevel, "Dhaka")
//	err := handler.Handle(ctx, cmd) // clears district and sub-district
type SelectAddressCommand struct {
	sessionID kernel.UUID
	level     address.Level
	value     string

	guard guard.ConstructorGuard
}

// NewSelectAddressCommand validates the session id and the level.
func NewSelectAddressCommand(sessionID kernel.UUID, level address.Level, value string) (SelectAddressCommand, error) {
	if err := errors.Join(sessionID.Validate(), level.Validate()); err != nil {
		return SelectAddressCommand{}, err
	}

	return SelectAddressCommand{
		sessionID: sessionID,
		level:     level,
		value:     strings.TrimSpace(value),
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c SelectAddressCommand) Validate() error {
	return c.guard.Validate(ErrSelectAddressCommandIsNotConstructed)
}

func (c SelectAddressCommand) SessionID() kernel.UUID { return c.sessionID }
func (c SelectAddressCommand) Level() address.Level   { return c.level }
func (c SelectAddressCommand) Value() string          { return c.value }
