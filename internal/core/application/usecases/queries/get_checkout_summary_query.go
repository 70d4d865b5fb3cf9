package queries

import (
	"errors"

	"checkout/internal/core/domain/model/checkout"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/model/order"
	"checkout/internal/pkg/guard"
)

var ErrGetCheckoutSummaryQueryIsNotConstructed = errors.New(
	"GetCheckoutSummaryQuery must be created via NewGetCheckoutSummaryQuery constructor",
)

// GetCheckoutSummaryQuery reads everything the checkout form shows for a session.
//
// Example:
//
//	query, _ := NewGetCheckoutSummaryQuery(sessionID)
//	summary, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(summary.Pricing.Subtotal, summary.CanSubmit)
type GetCheckoutSummaryQuery struct {
	sessionID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetCheckoutSummaryQuery validates the session id.
func NewGetCheckoutSummaryQuery(sessionID kernel.UUID) (GetCheckoutSummaryQuery, error) {
	if err := sessionID.Validate(); err != nil {
		return GetCheckoutSummaryQuery{}, err
	}
	return GetCheckoutSummaryQuery{sessionID: sessionID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetCheckoutSummaryQuery) Validate() error {
	return q.guard.Validate(ErrGetCheckoutSummaryQueryIsNotConstructed)
}

// SessionID returns the session to read.
func (q GetCheckoutSummaryQuery) SessionID() kernel.UUID {
	return q.sessionID
}

// DraftView is the current form state.
type DraftView struct {
	FullName      string
	Phone         string
	Division      string
	District      string
	SubDistrict   string
	StreetAddress string
	PostalCode    string
	AddressText   string
	ShippingTier  string
	PaymentMethod string
	Notes         string
}

// LineView is one cart line with its amount.
type LineView struct {
	ID        string
	Name      string
	UnitPrice kernel.Money
	Quantity  int
	Amount    kernel.Money
	ImageRef  string
}

// TierView is one selectable shipping option.
type TierView struct {
	Code     string
	Title    string
	Cost     kernel.Money
	MinDays  int
	MaxDays  int
	Selected bool
}

// GetCheckoutSummaryQueryResponse is the read model of one session.
//
// Districts and SubDistricts are the choices under the current selection;
// they are empty until the broader unit is chosen. FieldErrors lists what
// would block a submit right now.
type GetCheckoutSummaryQueryResponse struct {
	SessionID   kernel.UUID
	Version     int
	Status      checkout.SubmissionStatus
	LastInvoice string
	LastError   string

	Draft        DraftView
	Divisions    []string
	Districts    []string
	SubDistricts []string
	Lines        []LineView
	Pricing      order.Pricing
	Tiers        []TierView
	FieldErrors  []checkout.FieldError
	CanSubmit    bool
}
