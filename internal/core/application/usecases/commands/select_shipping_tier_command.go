package commands

import (
	"errors"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/model/shipping"
	"checkout/internal/pkg/guard"
)

var ErrSelectShippingTierCommandIsNotConstructed = errors.New(
	"SelectShippingTierCommand must be created via NewSelectShippingTierCommand constructor",
)

// SelectShippingTierCommand picks the shipping tier and with it the delivery cost.
type SelectShippingTierCommand struct {
	sessionID kernel.UUID
	tier      shipping.Tier

	guard guard.ConstructorGuard
}

// NewSelectShippingTierCommand rejects an unset tier.
func NewSelectShippingTierCommand(sessionID kernel.UUID, tier shipping.Tier) (SelectShippingTierCommand, error) {
	if err := errors.Join(sessionID.Validate(), tier.Validate()); err != nil {
		return SelectShippingTierCommand{}, err
	}

	return SelectShippingTierCommand{
		sessionID: sessionID,
		tier:      tier,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c SelectShippingTierCommand) Validate() error {
	return c.guard.Validate(ErrSelectShippingTierCommandIsNotConstructed)
}

func (c SelectShippingTierCommand) SessionID() kernel.UUID { return c.sessionID }
func (c SelectShippingTierCommand) Tier() shipping.Tier    { return c.tier }
