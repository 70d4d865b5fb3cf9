package services

import (
	"checkout/internal/core/domain/model/cart"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/model/order"
	"checkout/internal/core/domain/model/shipping"
)

// PricingEngine derives the price summary of a cart. It keeps no state, so
// callers price the current lines again after every quantity change instead
// of storing totals that could drift.
//
// Pricing rules:
//   - Subtotal is the sum of unit price times quantity over all lines
//   - Delivery cost is the flat cost of the tier (৳0 when no tier is set)
//   - Total equals Subtotal; the delivery cost is displayed, not collected
//
// Example usage:
//
//	engine := services.NewPricingEngine()
//	pricing := engine.Price(session.Lines(), session.Draft().ShippingTier())
//	fmt.Println(pricing.Total) // "400"
type PricingEngine struct{}

// NewPricingEngine creates a PricingEngine.
func NewPricingEngine() PricingEngine {
	return PricingEngine{}
}

// Price computes the summary for lines under tier.
func (PricingEngine) Price(lines []*cart.Line, tier shipping.Tier) order.Pricing {
	subtotal := kernel.Money{}
	for _, line := range lines {
		subtotal = subtotal.Add(line.Amount())
	}

	return order.Pricing{
		Subtotal:     subtotal,
		DeliveryCost: tier.FlatCost(),
		Total:        subtotal,
	}
}
