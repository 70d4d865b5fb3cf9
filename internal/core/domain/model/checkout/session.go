package checkout

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"checkout/internal/core/domain/model/address"
	"checkout/internal/core/domain/model/cart"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/model/shipping"
	"checkout/internal/pkg/errs"
)

var (
	// ErrSessionIsNotConstructed is returned when a Session was not created
	// through NewSession or RestoreSession.
	ErrSessionIsNotConstructed = errors.New("Session must be created via NewSession constructor")

	// ErrSessionIsSubmitting is returned by every mutation, and by a second
	// submit, while a submission is in flight.
	ErrSessionIsSubmitting = errors.New("a submission is already in progress for this session")

	// ErrCartIsEmpty is returned when an order is composed from a cart with no lines.
	ErrCartIsEmpty = errors.New("cart is empty")
)

// QuantityChange is the direction of a cart quantity edit.
type QuantityChange int

const (
	Increment QuantityChange = iota + 1
	Decrement
)

// ParseQuantityChange reads "increment" or "decrement".
func ParseQuantityChange(s string) (QuantityChange, error) {
	switch strings.ToLower(s) {
	case "increment":
		return Increment, nil
	case "decrement":
		return Decrement, nil
	}
	return 0, errs.NewValueIsInvalidErrorWithCause("change", fmt.Errorf("%q is neither increment nor decrement", s))
}

// DeliveryDetails carries the free-text form fields of a draft.
type DeliveryDetails struct {
	FullName      string
	Phone         string
	StreetAddress string
	PostalCode    string
	Notes         string
}

// Session is the aggregate root of one buyer's checkout. It owns the draft,
// the cart and the submission state, and it is the only place where they
// change.
//
// Session follows these invariants:
//   - The address selection never points at a unit outside its broader unit
//   - Cart quantities never drop below one
//   - Nothing changes while the status is Submitting
//   - A failed submission leaves the draft and cart exactly as they were
//
// version is an optimistic concurrency token. Repositories compare it on
// write and call BumpVersion after a successful write; two writers that
// loaded the same version cannot both persist.
type Session struct {
	id          kernel.UUID
	draft       Draft
	cart        *cart.Cart
	status      SubmissionStatus
	lastInvoice string
	lastError   string
	version     int
	updatedAt   time.Time

	isConstructed bool
}

// NewSession starts a checkout over the given cart with a default draft.
//
// Example:
//
//	line, _ := cart.NewLine("sku-1", "Panjabi", kernel.MustMoneyFromInt(200), 2, "")
//	c, _ := cart.NewCart(line)
//	session, err := checkout.NewSession(c)
func NewSession(c *cart.Cart) (*Session, error) {
	if c == nil {
		return nil, errs.NewValueIsRequiredError("cart")
	}

	return &Session{
		id:            kernel.NewUUID(),
		draft:         NewDraft(),
		cart:          c,
		status:        Idle,
		updatedAt:     time.Now().UTC(),
		isConstructed: true,
	}, nil
}

// RestoreSession rebuilds a session from storage.
func RestoreSession(
	id kernel.UUID,
	draft Draft,
	c *cart.Cart,
	status SubmissionStatus,
	lastInvoice string,
	lastError string,
	version int,
	updatedAt time.Time,
) (*Session, error) {
	var cartErr error
	if c == nil {
		cartErr = errs.NewValueIsRequiredError("cart")
	}
	var versionErr error
	if version < 0 {
		versionErr = errs.NewValueIsInvalidErrorWithCause("version", fmt.Errorf("%d is negative", version))
	}

	if err := errors.Join(id.Validate(), status.Validate(), cartErr, versionErr); err != nil {
		return nil, err
	}

	return &Session{
		id:            id,
		draft:         draft,
		cart:          c,
		status:        status,
		lastInvoice:   lastInvoice,
		lastError:     lastError,
		version:       version,
		updatedAt:     updatedAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the session was built by a constructor.
func (s *Session) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrSessionIsNotConstructed
	}
	return nil
}

func (s *Session) ID() kernel.UUID          { return s.id }
func (s *Session) Draft() Draft             { return s.draft }
func (s *Session) Cart() *cart.Cart         { return s.cart }
func (s *Session) Status() SubmissionStatus { return s.status }
func (s *Session) LastInvoice() string      { return s.lastInvoice }
func (s *Session) LastError() string        { return s.lastError }
func (s *Session) Version() int             { return s.version }
func (s *Session) UpdatedAt() time.Time     { return s.updatedAt }
func (s *Session) IsSubmitting() bool       { return s.status == Submitting }
func (s *Session) Lines() []*cart.Line      { return s.cart.Lines() }

// Resolver returns an address resolver positioned at the draft's current selection.
func (s *Session) Resolver(d address.Dataset) *address.Resolver {
	return address.NewResolver(d, s.draft.Address())
}

// BumpVersion advances the concurrency token. Only repositories call it, after
// a write that matched the previous version.
func (s *Session) BumpVersion() {
	s.version++
}

// ChangeQuantity increments or decrements one cart line. Decrementing a line
// at quantity one is a no-op.
func (s *Session) ChangeQuantity(lineID string, change QuantityChange) error {
	if err := s.ensureEditable(); err != nil {
		return err
	}

	var err error
	switch change {
	case Increment:
		err = s.cart.Increment(lineID)
	case Decrement:
		err = s.cart.Decrement(lineID)
	default:
		err = errs.NewValueIsInvalidErrorWithCause("change", fmt.Errorf("%d is not a quantity change", change))
	}
	if err != nil {
		return err
	}

	s.touch()
	return nil
}

// SelectAddress sets one level of the address cascade through the resolver
// for dataset. A broader change clears the narrower levels.
//
// Returns:
//   - errs.ValueIsInvalidError if value is not a child of the selected broader unit
//   - ErrSessionIsSubmitting while a submission is in flight
func (s *Session) SelectAddress(dataset address.Dataset, level address.Level, value string) error {
	if err := s.ensureEditable(); err != nil {
		return err
	}

	resolver := s.Resolver(dataset)
	if err := resolver.Set(level, value); err != nil {
		return err
	}

	s.draft = s.draft.WithAddress(resolver.Selection())
	s.touch()
	return nil
}

// UpdateDeliveryDetails replaces the free-text fields of the draft. The
// address cascade is left as it is.
func (s *Session) UpdateDeliveryDetails(details DeliveryDetails) error {
	if err := s.ensureEditable(); err != nil {
		return err
	}

	selection := s.draft.Address().WithStreet(details.StreetAddress, details.PostalCode)
	s.draft = s.draft.
		WithContact(NewContactInfo(details.FullName, details.Phone)).
		WithAddress(selection).
		WithNotes(details.Notes)
	s.touch()
	return nil
}

// SelectShippingTier sets the tier and with it the delivery cost.
func (s *Session) SelectShippingTier(tier shipping.Tier) error {
	if err := s.ensureEditable(); err != nil {
		return err
	}
	if err := tier.Validate(); err != nil {
		return err
	}

	s.draft = s.draft.WithShippingTier(tier)
	s.touch()
	return nil
}

// BeginSubmit moves the session to Submitting and clears the previous
// outcome. The caller validates and composes the order before calling it.
func (s *Session) BeginSubmit() error {
	next, err := s.status.Submit()
	if err != nil {
		return err
	}

	s.status = next
	s.lastError = ""
	s.lastInvoice = ""
	s.touch()
	return nil
}

// CompleteSubmit records an accepted order: the draft returns to its
// defaults and the cart is cleared.
func (s *Session) CompleteSubmit(invoiceID string) error {
	if strings.TrimSpace(invoiceID) == "" {
		return errs.NewValueIsRequiredError("invoice")
	}
	next, err := s.status.Succeed()
	if err != nil {
		return err
	}

	s.status = next
	s.lastInvoice = invoiceID
	s.lastError = ""
	s.draft = NewDraft()
	s.cart.Clear()
	s.touch()
	return nil
}

// FailSubmit records a rejected or lost submission. Draft and cart are kept
// so the buyer can retry.
func (s *Session) FailSubmit(reason string) error {
	next, err := s.status.Fail()
	if err != nil {
		return err
	}

	s.status = next
	s.lastError = reason
	s.touch()
	return nil
}

// MarkUnrecorded flags a submission the courier accepted but the archive
// never stored. The session stays Submitting and holds invoiceID as its last
// invoice until it is reconciled; ExpireSubmit never releases it.
func (s *Session) MarkUnrecorded(invoiceID string) error {
	if strings.TrimSpace(invoiceID) == "" {
		return errs.NewValueIsRequiredError("invoice")
	}
	if !s.IsSubmitting() {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%s is not a valid status to mark unrecorded", s.status))
	}

	s.lastInvoice = invoiceID
	s.touch()
	return nil
}

// IsUnrecorded reports whether the session holds an accepted order that was
// never archived.
func (s *Session) IsUnrecorded() bool {
	return s.IsSubmitting() && s.lastInvoice != ""
}

// ExpireSubmit releases a submission that has been in flight since before
// cutoff: the session moves to Failed with reason, draft and cart untouched.
// It reports whether the session was released. Recent and unrecorded
// submissions are left alone.
func (s *Session) ExpireSubmit(cutoff time.Time, reason string) bool {
	if s.IsUnrecorded() || !s.updatedAt.Before(cutoff) {
		return false
	}
	next, err := s.status.Fail()
	if err != nil {
		return false
	}

	s.status = next
	s.lastError = reason
	s.touch()
	return true
}

// DismissConfirmation discards the shown confirmation or failure and
// returns the session to Idle.
func (s *Session) DismissConfirmation() error {
	if err := s.ensureEditable(); err != nil {
		return err
	}

	s.status = Idle
	s.lastInvoice = ""
	s.lastError = ""
	s.touch()
	return nil
}

// IsStale reports whether the session has not changed since before cutoff.
// A session with a submission in flight is never stale.
func (s *Session) IsStale(cutoff time.Time) bool {
	return !s.IsSubmitting() && s.updatedAt.Before(cutoff)
}

func (s *Session) ensureEditable() error {
	if s.status == Submitting {
		return ErrSessionIsSubmitting
	}
	return nil
}

func (s *Session) touch() {
	s.updatedAt = time.Now().UTC()
}
