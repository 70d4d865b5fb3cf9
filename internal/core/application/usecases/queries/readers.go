// Package queries contains the read operations of checkout. Queries never
// change state; they return read models assembled from the aggregates.
package queries

import (
	"context"

	"checkout/internal/core/domain/model/checkout"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/model/order"
)

type (
	// SessionReader loads sessions outside any transaction.
	SessionReader interface {
		Get(ctx context.Context, id kernel.UUID) (*checkout.Session, error)
	}

	// OrderReader loads archived orders outside any transaction.
	OrderReader interface {
		Get(ctx context.Context, invoice string) (*order.Result, error)
	}
)
