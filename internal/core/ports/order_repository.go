package ports

import (
	"context"

	"checkout/internal/core/domain/model/order"
)

// OrderRepository is the archive of accepted orders. Records are never
// updated once written.
type OrderRepository interface {
	// Add archives an accepted order.
	Add(ctx context.Context, result *order.Result) error

	// Get loads an archived order by invoice id. A missing invoice is reported
	// as errs.ObjectNotFoundError.
	Get(ctx context.Context, invoice string) (*order.Result, error)
}
