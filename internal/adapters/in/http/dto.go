package http

import (
	"encoding/json"

	"checkout/internal/core/application/usecases/commands"
	"checkout/internal/core/application/usecases/queries"
	"checkout/internal/core/domain/model/checkout"
	"checkout/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// Error is the JSON body of every failed API call.
type Error struct {
	Code    string                `json:"code"`
	Message string                `json:"message"`
	Fields  []checkout.FieldError `json:"fields,omitempty"`
}

type StartCheckoutItem struct {
	ID        string          `json:"id" validate:"required"`
	Name      string          `json:"name" validate:"required"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Quantity  int             `json:"quantity" validate:"min=1"`
	ImageRef  string          `json:"imageRef"`
}

type StartCheckoutRequest struct {
	Items []StartCheckoutItem `json:"items" validate:"required,min=1,dive"`
}

func (r StartCheckoutRequest) toCommandItems() ([]commands.StartCheckoutItem, error) {
	items := make([]commands.StartCheckoutItem, 0, len(r.Items))
	for _, item := range r.Items {
		price, err := kernel.NewMoney(item.UnitPrice)
		if err != nil {
			return nil, err
		}
		items = append(items, commands.StartCheckoutItem{
			ID:        item.ID,
			Name:      item.Name,
			UnitPrice: price,
			Quantity:  item.Quantity,
			ImageRef:  item.ImageRef,
		})
	}
	return items, nil
}

type ChangeQuantityRequest struct {
	Change string `json:"change" validate:"required,oneof=increment decrement"`
}

type SelectAddressRequest struct {
	Level string `json:"level" validate:"required,oneof=division district subDistrict"`
	Value string `json:"value"`
}

type DeliveryDetailsRequest struct {
	FullName      string `json:"fullName"`
	Phone         string `json:"phone"`
	StreetAddress string `json:"streetAddress"`
	PostalCode    string `json:"postalCode"`
	Notes         string `json:"notes"`
}

type SelectShippingTierRequest struct {
	Tier string `json:"tier" validate:"required"`
}

// ForwardOrdersRequest is the body of the courier proxy. Orders are passed
// on without being decoded.
type ForwardOrdersRequest struct {
	Orders json.RawMessage `json:"orders"`
}

type Draft struct {
	FullName      string `json:"fullName"`
	Phone         string `json:"phone"`
	Division      string `json:"division"`
	District      string `json:"district"`
	SubDistrict   string `json:"subDistrict"`
	StreetAddress string `json:"streetAddress"`
	PostalCode    string `json:"postalCode"`
	AddressText   string `json:"addressText"`
	ShippingTier  string `json:"shippingTier"`
	PaymentMethod string `json:"paymentMethod"`
	Notes         string `json:"notes"`
}

type Line struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	UnitPrice string `json:"unitPrice"`
	Quantity  int    `json:"quantity"`
	Amount    string `json:"amount"`
	ImageRef  string `json:"imageRef,omitempty"`
}

type Tier struct {
	Code     string `json:"code"`
	Title    string `json:"title"`
	Cost     string `json:"cost"`
	MinDays  int    `json:"minDays"`
	MaxDays  int    `json:"maxDays"`
	Selected bool   `json:"selected"`
}

type Pricing struct {
	Subtotal     string `json:"subtotal"`
	DeliveryCost string `json:"deliveryCost"`
	Total        string `json:"total"`
}

type CheckoutSummary struct {
	SessionID    string                `json:"sessionId"`
	Version      int                   `json:"version"`
	Status       string                `json:"status"`
	LastInvoice  string                `json:"lastInvoice,omitempty"`
	LastError    string                `json:"lastError,omitempty"`
	Draft        Draft                 `json:"draft"`
	Divisions    []string              `json:"divisions"`
	Districts    []string              `json:"districts"`
	SubDistricts []string              `json:"subDistricts"`
	Lines        []Line                `json:"lines"`
	Pricing      Pricing               `json:"pricing"`
	Tiers        []Tier                `json:"tiers"`
	FieldErrors  []checkout.FieldError `json:"fieldErrors"`
	CanSubmit    bool                  `json:"canSubmit"`
}

func newCheckoutSummary(r queries.GetCheckoutSummaryQueryResponse) CheckoutSummary {
	lines := make([]Line, 0, len(r.Lines))
	for _, l := range r.Lines {
		lines = append(lines, Line{
			ID:        l.ID,
			Name:      l.Name,
			UnitPrice: l.UnitPrice.String(),
			Quantity:  l.Quantity,
			Amount:    l.Amount.String(),
			ImageRef:  l.ImageRef,
		})
	}
	tiers := make([]Tier, 0, len(r.Tiers))
	for _, t := range r.Tiers {
		tiers = append(tiers, Tier{
			Code:     t.Code,
			Title:    t.Title,
			Cost:     t.Cost.String(),
			MinDays:  t.MinDays,
			MaxDays:  t.MaxDays,
			Selected: t.Selected,
		})
	}
	fieldErrors := r.FieldErrors
	if fieldErrors == nil {
		fieldErrors = []checkout.FieldError{}
	}

	return CheckoutSummary{
		SessionID:   r.SessionID.String(),
		Version:     r.Version,
		Status:      r.Status.String(),
		LastInvoice: r.LastInvoice,
		LastError:   r.LastError,
		Draft: Draft{
			FullName:      r.Draft.FullName,
			Phone:         r.Draft.Phone,
			Division:      r.Draft.Division,
			District:      r.Draft.District,
			SubDistrict:   r.Draft.SubDistrict,
			StreetAddress: r.Draft.StreetAddress,
			PostalCode:    r.Draft.PostalCode,
			AddressText:   r.Draft.AddressText,
			ShippingTier:  r.Draft.ShippingTier,
			PaymentMethod: r.Draft.PaymentMethod,
			Notes:         r.Draft.Notes,
		},
		Divisions:    nonNil(r.Divisions),
		Districts:    nonNil(r.Districts),
		SubDistricts: nonNil(r.SubDistricts),
		Lines:        lines,
		Pricing: Pricing{
			Subtotal:     r.Pricing.Subtotal.String(),
			DeliveryCost: r.Pricing.DeliveryCost.String(),
			Total:        r.Pricing.Total.String(),
		},
		Tiers:       tiers,
		FieldErrors: fieldErrors,
		CanSubmit:   r.CanSubmit,
	}
}

type SubmitOrderResponse struct {
	Invoice      string          `json:"invoice"`
	Total        string          `json:"total"`
	Upstream     json.RawMessage `json:"upstream,omitempty"`
	ReceiptHTML  string          `json:"receiptHtml,omitempty"`
	ReceiptError string          `json:"receiptError,omitempty"`
}

func newSubmitOrderResponse(r commands.SubmitOrderResponse) SubmitOrderResponse {
	resp := SubmitOrderResponse{
		Invoice:      r.Result.Invoice().ID(),
		Total:        r.Result.Pricing().Total.String(),
		Upstream:     r.Upstream,
		ReceiptError: r.ReceiptError,
	}
	if r.Receipt != nil {
		resp.ReceiptHTML = string(r.Receipt.Body)
	}
	return resp
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
