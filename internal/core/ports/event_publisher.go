package ports

import (
	"context"

	"checkout/internal/core/domain/model/order"
)

// OrderEventPublisher announces accepted orders. Publishing is best effort:
// a failure is logged by the caller and never undoes the order.
type OrderEventPublisher interface {
	PublishOrderPlaced(ctx context.Context, result *order.Result) error
}
