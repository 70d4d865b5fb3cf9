// Package checkout contains the checkout session aggregate: the server-side
// owner of one buyer's order draft, cart, and submission state.
//
// A Session moves through the submission state machine
//
//	Idle ──> Submitting ──┬──> Succeeded ──┐
//	  ^          ^        │                │
//	  │          └────────┼── Failed <─────┤ (retry / new order)
//	  └── DismissConfirmation ─────────────┘
//
// While a session is Submitting every mutation is rejected with
// ErrSessionIsSubmitting, so the draft that reached the courier is the one
// the buyer saw. A failed submission leaves the draft and cart untouched; a
// successful one resets the draft to its defaults and clears the cart.
//
// Address changes go through address.Resolver, which owns the cascading
// division/district/sub-district rules. Draft validation lives in
// services.OrderComposer and reports every failing field at once through
// ValidationError.
package checkout
