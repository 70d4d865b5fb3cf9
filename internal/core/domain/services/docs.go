// Package services provides the domain services of checkout: the rules that
// read several aggregates or values at once and belong to none of them.
//
// The package includes:
//   - PricingEngine: subtotal, delivery cost and payable total of a cart
//   - OrderComposer: draft validation and courier payload construction
//   - InvoiceGenerator: unique, time-ordered INV- identifiers
//
// All three are free of I/O. InvoiceGenerator reads the clock and a random
// source and is safe for concurrent use.
package services
