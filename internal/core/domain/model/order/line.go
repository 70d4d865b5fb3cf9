package order

import (
	"checkout/internal/core/domain/model/cart"
	"checkout/internal/core/domain/model/kernel"
)

// Line is a frozen copy of a cart line taken when the order was composed.
type Line struct {
	id        string
	name      string
	unitPrice kernel.Money
	quantity  int
	imageRef  string
}

// NewLine is used when restoring archived orders.
func NewLine(id, name string, unitPrice kernel.Money, quantity int, imageRef string) Line {
	return Line{id: id, name: name, unitPrice: unitPrice, quantity: quantity, imageRef: imageRef}
}

// LinesFromCart snapshots cart lines.
func LinesFromCart(lines []*cart.Line) []Line {
	out := make([]Line, 0, len(lines))
	for _, l := range lines {
		out = append(out, NewLine(l.ID(), l.Name(), l.UnitPrice(), l.Quantity(), l.ImageRef()))
	}
	return out
}

func (l Line) ID() string              { return l.id }
func (l Line) Name() string            { return l.name }
func (l Line) UnitPrice() kernel.Money { return l.unitPrice }
func (l Line) Quantity() int           { return l.quantity }
func (l Line) ImageRef() string        { return l.imageRef }

// Amount is unit price times quantity.
func (l Line) Amount() kernel.Money {
	return l.unitPrice.Times(l.quantity)
}
