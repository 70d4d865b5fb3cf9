package queries

import (
	"context"

	"checkout/internal/core/domain/model/address"
	"checkout/internal/core/domain/model/checkout"
	"checkout/internal/core/domain/model/shipping"
	"checkout/internal/core/domain/services"
)

// GetCheckoutSummaryQueryHandler assembles the checkout form read model. The
// price summary and field errors are derived on every read from the stored
// lines and draft.
type GetCheckoutSummaryQueryHandler struct {
	sessions SessionReader
	dataset  address.Dataset
	composer *services.OrderComposer
	pricing  services.PricingEngine
}

// NewGetCheckoutSummaryQueryHandler creates the handler.
func NewGetCheckoutSummaryQueryHandler(
	sessions SessionReader,
	dataset address.Dataset,
	composer *services.OrderComposer,
) GetCheckoutSummaryQueryHandler {
	return GetCheckoutSummaryQueryHandler{
		sessions: sessions,
		dataset:  dataset,
		composer: composer,
		pricing:  services.NewPricingEngine(),
	}
}

// Handle reads the session and derives its summary.
func (h GetCheckoutSummaryQueryHandler) Handle(
	ctx context.Context,
	query GetCheckoutSummaryQuery,
) (GetCheckoutSummaryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetCheckoutSummaryQueryResponse{}, err
	}

	session, err := h.sessions.Get(ctx, query.SessionID())
	if err != nil {
		return GetCheckoutSummaryQueryResponse{}, err
	}

	draft := session.Draft()
	lines := session.Lines()
	resolver := session.Resolver(h.dataset)
	fieldErrors := h.composer.FieldErrors(draft)

	response := GetCheckoutSummaryQueryResponse{
		SessionID:    session.ID(),
		Version:      session.Version(),
		Status:       session.Status(),
		LastInvoice:  session.LastInvoice(),
		LastError:    session.LastError(),
		Draft:        draftView(draft),
		Divisions:    resolver.Divisions(),
		Districts:    resolver.Districts(),
		SubDistricts: resolver.SubDistricts(),
		Lines:        make([]LineView, 0, len(lines)),
		Pricing:      h.pricing.Price(lines, draft.ShippingTier()),
		FieldErrors:  fieldErrors,
		CanSubmit:    len(fieldErrors) == 0 && len(lines) > 0 && !session.IsSubmitting(),
	}

	for _, line := range lines {
		response.Lines = append(response.Lines, LineView{
			ID:        line.ID(),
			Name:      line.Name(),
			UnitPrice: line.UnitPrice(),
			Quantity:  line.Quantity(),
			Amount:    line.Amount(),
			ImageRef:  line.ImageRef(),
		})
	}

	for _, tier := range shipping.Tiers() {
		lo, hi := tier.EstimatedDays()
		response.Tiers = append(response.Tiers, TierView{
			Code:     tier.Code(),
			Title:    tier.String(),
			Cost:     tier.FlatCost(),
			MinDays:  lo,
			MaxDays:  hi,
			Selected: tier == draft.ShippingTier(),
		})
	}

	return response, nil
}

func draftView(d checkout.Draft) DraftView {
	addr := d.Address()
	return DraftView{
		FullName:      d.Contact().FullName(),
		Phone:         d.Contact().Phone(),
		Division:      addr.Division(),
		District:      addr.District(),
		SubDistrict:   addr.SubDistrict(),
		StreetAddress: addr.StreetAddress(),
		PostalCode:    addr.PostalCode(),
		AddressText:   addr.Text(),
		ShippingTier:  d.ShippingTier().Code(),
		PaymentMethod: d.PaymentMethod().Code(),
		Notes:         d.Notes(),
	}
}
