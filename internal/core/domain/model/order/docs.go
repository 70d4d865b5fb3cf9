// Package order holds what a checkout produces: the invoice identifier, the
// courier-facing payload, and the immutable Result of an accepted
// submission.
//
// The package includes:
//   - Invoice: "INV-" prefixed identifier plus its creation instant
//   - Payload: one entry of the courier bulk-order request
//   - Pricing: subtotal, delivery cost and payable total of a cart
//   - Composition: a validated order ready to be sent
//   - Result: the archived record a receipt is rendered from
//   - SubmissionError: an upstream rejection or a broken exchange
//
// A Result exists only after the courier has accepted the order. It is never
// mutated; the archive reads it back for receipt downloads.
package order
