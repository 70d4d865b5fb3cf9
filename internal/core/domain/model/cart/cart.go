package cart

import (
	"fmt"

	"checkout/internal/pkg/errs"
)

// Cart is the ordered set of lines owned by one checkout session.
type Cart struct {
	lines []*Line
}

// NewCart builds a cart from validated lines, rejecting duplicate ids.
func NewCart(lines ...*Line) (*Cart, error) {
	c := &Cart{lines: make([]*Line, 0, len(lines))}
	seen := make(map[string]struct{}, len(lines))
	for _, line := range lines {
		if err := line.Validate(); err != nil {
			return nil, err
		}
		if _, dup := seen[line.ID()]; dup {
			return nil, errs.NewValueIsInvalidErrorWithCause("line id", fmt.Errorf("%q appears more than once", line.ID()))
		}
		seen[line.ID()] = struct{}{}
		c.lines = append(c.lines, line)
	}
	return c, nil
}

// Lines returns copies of the lines in insertion order.
func (c *Cart) Lines() []*Line {
	out := make([]*Line, len(c.lines))
	for i, line := range c.lines {
		out[i] = line.clone()
	}
	return out
}

// Len is the number of distinct lines.
func (c *Cart) Len() int {
	return len(c.lines)
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// Increment adds one unit to the line.
func (c *Cart) Increment(lineID string) error {
	line, err := c.find(lineID)
	if err != nil {
		return err
	}
	line.Increment()
	return nil
}

// Decrement removes one unit from the line, never below MinQuantity.
func (c *Cart) Decrement(lineID string) error {
	line, err := c.find(lineID)
	if err != nil {
		return err
	}
	line.Decrement()
	return nil
}

// Clear empties the cart after a successful order.
func (c *Cart) Clear() {
	c.lines = c.lines[:0]
}

func (c *Cart) find(lineID string) (*Line, error) {
	for _, line := range c.lines {
		if line.ID() == lineID {
			return line, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("line", lineID)
}
