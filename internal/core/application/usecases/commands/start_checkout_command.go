package commands

import (
	"errors"
	"fmt"

	"checkout/internal/core/domain/model/cart"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/pkg/guard"
)

var ErrStartCheckoutCommandIsNotConstructed = errors.New(
	"StartCheckoutCommand must be created via NewStartCheckoutCommand constructor",
)

// StartCheckoutItem is one product handed over from the storefront.
type StartCheckoutItem struct {
	ID        string
	Name      string
	UnitPrice kernel.Money
	Quantity  int
	ImageRef  string
}

// StartCheckoutCommand opens a checkout session over the buyer's cart.
//
// Example:
//
//	cmd, err := NewStartCheckoutCommand([]StartCheckoutItem{
//	    {ID: "sku-1", Name: "Panjabi", UnitPrice: kernel.MustMoneyFromInt(200), Quantity: 2},
//	})
//	if err != nil {
//	    return fmt.Errorf("invalid cart: %w", err)
//	}
//	sessionID, err := handler.Handle(ctx, cmd)
type StartCheckoutCommand struct {
	cart *cart.Cart

	guard guard.ConstructorGuard
}

// NewStartCheckoutCommand builds the cart, collecting the errors of every item.
func NewStartCheckoutCommand(items []StartCheckoutItem) (StartCheckoutCommand, error) {
	lines := make([]*cart.Line, 0, len(items))
	var itemErrs []error
	for i, item := range items {
		line, err := cart.NewLine(item.ID, item.Name, item.UnitPrice, item.Quantity, item.ImageRef)
		if err != nil {
			itemErrs = append(itemErrs, fmt.Errorf("item %d: %w", i, err))
			continue
		}
		lines = append(lines, line)
	}
	if err := errors.Join(itemErrs...); err != nil {
		return StartCheckoutCommand{}, err
	}

	c, err := cart.NewCart(lines...)
	if err != nil {
		return StartCheckoutCommand{}, err
	}

	return StartCheckoutCommand{
		cart:  c,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c StartCheckoutCommand) Validate() error {
	return c.guard.Validate(ErrStartCheckoutCommandIsNotConstructed)
}

// Cart returns the cart the session will own.
func (c StartCheckoutCommand) Cart() *cart.Cart {
	return c.cart
}
