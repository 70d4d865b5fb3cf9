package ports

import (
	"context"
	"encoding/json"

	"checkout/internal/core/domain/model/order"
)

// OrderGateway submits composed orders to the courier bulk-order service,
// either directly or through the remote proxy boundary.
//
// On success the upstream JSON body is returned unchanged. Every failure is
// an *order.SubmissionError: a non-2xx answer carries the upstream status and
// detail, a network, timeout or decoding failure carries the generic message.
// Implementations never retry.
type OrderGateway interface {
	Submit(ctx context.Context, orders []order.Payload) (json.RawMessage, error)
}
