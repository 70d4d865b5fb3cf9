// Package orderrepo is the archive of accepted orders. Each row is a frozen
// copy of the confirmation data; lines are stored in order_lines.
package orderrepo

import (
	"time"

	"checkout/internal/core/domain/model/checkout"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/model/order"
	"checkout/internal/core/domain/model/payment"
	"checkout/internal/core/domain/model/shipping"

	"github.com/shopspring/decimal"
)

// OrderDTO is one archived order.
type OrderDTO struct {
	Invoice        string          `gorm:"type:varchar(64);primaryKey"`
	PlacedAt       time.Time       `gorm:"not null;index"`
	RecipientName  string          `gorm:"type:varchar(100);not null"`
	RecipientPhone string          `gorm:"type:varchar(20);not null"`
	AddressText    string          `gorm:"type:text;not null"`
	ShippingTier   string          `gorm:"type:varchar(32);not null"`
	PaymentMethod  string          `gorm:"type:varchar(32);not null"`
	Notes          string          `gorm:"type:text"`
	Subtotal       decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	DeliveryCost   decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Total          decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Lines          []LineDTO       `gorm:"foreignKey:Invoice;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// LineDTO is one frozen line of an archived order.
type LineDTO struct {
	Invoice   string          `gorm:"type:varchar(64);primaryKey"`
	Position  int             `gorm:"primaryKey;autoIncrement:false"`
	ProductID string          `gorm:"type:varchar(64);not null"`
	Name      string          `gorm:"type:varchar(255);not null"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Quantity  int             `gorm:"type:int;not null"`
	ImageRef  string          `gorm:"type:varchar(512)"`
}

func (LineDTO) TableName() string {
	return "order_lines"
}

func fromDomain(r *order.Result) OrderDTO {
	invoice := r.Invoice().ID()
	pricing := r.Pricing()

	lines := make([]LineDTO, 0, len(r.Lines()))
	for i, l := range r.Lines() {
		lines = append(lines, LineDTO{
			Invoice:   invoice,
			Position:  i,
			ProductID: l.ID(),
			Name:      l.Name(),
			UnitPrice: l.UnitPrice().Decimal(),
			Quantity:  l.Quantity(),
			ImageRef:  l.ImageRef(),
		})
	}

	return OrderDTO{
		Invoice:        invoice,
		PlacedAt:       r.Invoice().CreatedAt(),
		RecipientName:  r.Contact().FullName(),
		RecipientPhone: r.Contact().Phone(),
		AddressText:    r.AddressText(),
		ShippingTier:   r.ShippingTier().Code(),
		PaymentMethod:  r.PaymentMethod().Code(),
		Notes:          r.Notes(),
		Subtotal:       pricing.Subtotal.Decimal(),
		DeliveryCost:   pricing.DeliveryCost.Decimal(),
		Total:          pricing.Total.Decimal(),
		Lines:          lines,
	}
}

func toDomain(dto OrderDTO) (*order.Result, error) {
	invoice, err := order.NewInvoice(dto.Invoice, dto.PlacedAt.UTC())
	if err != nil {
		return nil, err
	}
	tier, err := shipping.ParseTier(dto.ShippingTier)
	if err != nil {
		return nil, err
	}
	method, err := payment.ParseMethod(dto.PaymentMethod)
	if err != nil {
		return nil, err
	}

	var pricing order.Pricing
	if pricing.Subtotal, err = kernel.NewMoney(dto.Subtotal); err != nil {
		return nil, err
	}
	if pricing.DeliveryCost, err = kernel.NewMoney(dto.DeliveryCost); err != nil {
		return nil, err
	}
	if pricing.Total, err = kernel.NewMoney(dto.Total); err != nil {
		return nil, err
	}

	lines := make([]order.Line, 0, len(dto.Lines))
	for _, l := range dto.Lines {
		price, priceErr := kernel.NewMoney(l.UnitPrice)
		if priceErr != nil {
			return nil, priceErr
		}
		lines = append(lines, order.NewLine(l.ProductID, l.Name, price, l.Quantity, l.ImageRef))
	}

	return order.NewResult(
		invoice,
		checkout.NewContactInfo(dto.RecipientName, dto.RecipientPhone),
		dto.AddressText,
		tier,
		method,
		dto.Notes,
		lines,
		pricing,
	)
}
