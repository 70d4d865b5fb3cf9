package order

import (
	"fmt"
	"strings"
	"time"

	"checkout/internal/pkg/errs"
)

// InvoicePrefix starts every invoice identifier.
const InvoicePrefix = "INV-"

// Invoice identifies one composed order.
type Invoice struct {
	id        string
	createdAt time.Time
}

// NewInvoice checks the prefix and that a token follows it.
func NewInvoice(id string, createdAt time.Time) (Invoice, error) {
	if !strings.HasPrefix(id, InvoicePrefix) || len(id) == len(InvoicePrefix) {
		return Invoice{}, errs.NewValueIsInvalidErrorWithCause("invoice", fmt.Errorf("%q is not an %s identifier", id, InvoicePrefix))
	}
	if createdAt.IsZero() {
		return Invoice{}, errs.NewValueIsRequiredError("invoice createdAt")
	}
	return Invoice{id: id, createdAt: createdAt.UTC()}, nil
}

func (i Invoice) ID() string           { return i.id }
func (i Invoice) CreatedAt() time.Time { return i.createdAt }

// CreatedAtEpochMillis is the creation instant in Unix milliseconds.
func (i Invoice) CreatedAtEpochMillis() int64 {
	return i.createdAt.UnixMilli()
}

func (i Invoice) String() string {
	return i.id
}
