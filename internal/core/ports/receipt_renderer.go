package ports

import (
	"checkout/internal/core/domain/model/order"
	"checkout/internal/core/domain/model/receipt"
)

// ReceiptRenderer renders the confirmation document of an accepted order.
// Every sink goes through the same rendering, so the document body is
// identical for display, download and print apart from the print trigger.
type ReceiptRenderer interface {
	Render(result *order.Result, opts receipt.Options) (receipt.Document, error)
}
