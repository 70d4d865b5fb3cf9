// Package cart holds the line items of a checkout session.
//
// Key business rules:
//   - Line identifiers are unique within a cart
//   - Unit prices are non-negative; quantities are at least 1
//   - Decrementing a line at quantity 1 is a no-op; there is no remove-line operation
//   - Totals are never stored here; pricing is recomputed from Lines() on every read
package cart
