package queries

import (
	"context"

	"checkout/internal/core/domain/model/receipt"
	"checkout/internal/core/ports"
)

// GetReceiptQueryHandler re-renders receipts from the order archive.
type GetReceiptQueryHandler struct {
	orders   OrderReader
	renderer ports.ReceiptRenderer
}

// NewGetReceiptQueryHandler creates the handler.
func NewGetReceiptQueryHandler(orders OrderReader, renderer ports.ReceiptRenderer) GetReceiptQueryHandler {
	return GetReceiptQueryHandler{orders: orders, renderer: renderer}
}

// Handle returns errs.ObjectNotFoundError for an unknown invoice.
func (h GetReceiptQueryHandler) Handle(ctx context.Context, query GetReceiptQuery) (receipt.Document, error) {
	if err := query.Validate(); err != nil {
		return receipt.Document{}, err
	}

	result, err := h.orders.Get(ctx, query.Invoice())
	if err != nil {
		return receipt.Document{}, err
	}

	return h.renderer.Render(result, query.Options())
}
