package cart

import (
	"errors"
	"fmt"
	"strings"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/pkg/errs"
)

var ErrLineIsNotConstructed = errors.New("Line must be created via NewLine constructor")

// MinQuantity is the quantity floor of a line.
const MinQuantity = 1

// Line is one product in the cart. Its quantity is the only mutable field.
type Line struct {
	id        string
	name      string
	unitPrice kernel.Money
	quantity  int
	imageRef  string

	isConstructed bool
}

// NewLine validates and creates a cart line. All field errors are joined.
func NewLine(id, name string, unitPrice kernel.Money, quantity int, imageRef string) (*Line, error) {
	line := &Line{
		unitPrice:     unitPrice,
		imageRef:      strings.TrimSpace(imageRef),
		isConstructed: true,
	}

	if err := errors.Join(
		line.setID(id),
		line.setName(name),
		line.setQuantity(quantity),
	); err != nil {
		return nil, err
	}

	return line, nil
}

// Validate ensures the line was created through NewLine.
func (l *Line) Validate() error {
	if l == nil || !l.isConstructed {
		return ErrLineIsNotConstructed
	}
	return nil
}

func (l *Line) ID() string              { return l.id }
func (l *Line) Name() string            { return l.name }
func (l *Line) UnitPrice() kernel.Money { return l.unitPrice }
func (l *Line) Quantity() int           { return l.quantity }
func (l *Line) ImageRef() string        { return l.imageRef }

// Amount is unitPrice × quantity.
func (l *Line) Amount() kernel.Money {
	return l.unitPrice.Times(l.quantity)
}

// Increment adds one unit. It always succeeds.
func (l *Line) Increment() {
	l.quantity++
}

// Decrement removes one unit, keeping the quantity at MinQuantity or above.
// It reports whether the quantity changed.
func (l *Line) Decrement() bool {
	if l.quantity <= MinQuantity {
		return false
	}
	l.quantity--
	return true
}

func (l *Line) clone() *Line {
	cp := *l
	return &cp
}

func (l *Line) setID(id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return errs.NewValueIsRequiredError("line id")
	}
	l.id = id
	return nil
}

func (l *Line) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("line name")
	}
	l.name = name
	return nil
}

func (l *Line) setQuantity(quantity int) error {
	if quantity < MinQuantity {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is less than %d", quantity, MinQuantity))
	}
	l.quantity = quantity
	return nil
}
