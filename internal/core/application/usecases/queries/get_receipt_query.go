package queries

import (
	"errors"
	"strings"

	"checkout/internal/core/domain/model/order"
	"checkout/internal/core/domain/model/receipt"
	"checkout/internal/pkg/errs"
	"checkout/internal/pkg/guard"
)

var ErrGetReceiptQueryIsNotConstructed = errors.New(
	"GetReceiptQuery must be created via NewGetReceiptQuery constructor",
)

// GetReceiptQuery renders the receipt of an archived order for one sink.
type GetReceiptQuery struct {
	invoice string
	options receipt.Options

	guard guard.ConstructorGuard
}

// NewGetReceiptQuery requires an INV- invoice id.
func NewGetReceiptQuery(invoice string, sink receipt.Sink, language receipt.Language) (GetReceiptQuery, error) {
	invoice = strings.TrimSpace(invoice)
	if !strings.HasPrefix(invoice, order.InvoicePrefix) {
		return GetReceiptQuery{}, errs.NewValueIsInvalidError("invoice")
	}
	if sink == "" {
		sink = receipt.Display
	}
	if language == "" {
		language = receipt.Bengali
	}

	return GetReceiptQuery{
		invoice: invoice,
		options: receipt.Options{Sink: sink, Language: language},
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetReceiptQuery) Validate() error {
	return q.guard.Validate(ErrGetReceiptQueryIsNotConstructed)
}

func (q GetReceiptQuery) Invoice() string          { return q.invoice }
func (q GetReceiptQuery) Options() receipt.Options { return q.options }
