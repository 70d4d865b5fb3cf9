// Package guard provides ConstructorGuard, a marker embedded in value objects,
// commands and queries to tell a constructor-built value from a zero value.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the caller passes a nil error.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard records that its owner was built by the designated constructor.
// Embed it as a private field and call Validate from the owner's Validate method:
//
//	type SelectShippingTierCommand struct {
//	    sessionID kernel.UUID
//	    tier      shipping.Tier
//	    guard     guard.ConstructorGuard
//	}
//
//	func (c SelectShippingTierCommand) Validate() error {
//	    return c.guard.Validate(ErrSelectShippingTierCommandIsNotConstructed)
//	}
//
// The zero value is "not constructed". Guards are plain values and safe to copy.
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marked as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// if the guard is a zero value, and nil otherwise.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
