package queries

import (
	"errors"

	"checkout/internal/core/domain/model/address"
	"checkout/internal/pkg/guard"
)

var ErrListDivisionsQueryIsNotConstructed = errors.New(
	"ListDivisionsQuery must be created via NewListDivisionsQuery constructor",
)

// ListDivisionsQuery is parameterless.
type ListDivisionsQuery struct {
	guard guard.ConstructorGuard
}

func NewListDivisionsQuery() ListDivisionsQuery {
	return ListDivisionsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q ListDivisionsQuery) Validate() error {
	return q.guard.Validate(ErrListDivisionsQueryIsNotConstructed)
}

// ListDivisionsQueryHandler reads the reference dataset.
type ListDivisionsQueryHandler struct {
	dataset address.Dataset
}

func NewListDivisionsQueryHandler(dataset address.Dataset) ListDivisionsQueryHandler {
	return ListDivisionsQueryHandler{dataset: dataset}
}

// Handle returns the divisions in dataset order.
func (h ListDivisionsQueryHandler) Handle(query ListDivisionsQuery) ([]string, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	return h.dataset.Divisions(), nil
}
