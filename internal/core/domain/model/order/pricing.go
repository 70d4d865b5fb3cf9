package order

import "checkout/internal/core/domain/model/kernel"

// Pricing is the price summary of a cart under a shipping tier.
//
// Total is the amount charged on delivery. It equals Subtotal: the delivery
// cost is shown to the buyer but not added to the collected amount.
type Pricing struct {
	Subtotal     kernel.Money
	DeliveryCost kernel.Money
	Total        kernel.Money
}
