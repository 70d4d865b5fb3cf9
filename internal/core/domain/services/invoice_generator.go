package services

import (
	"crypto/rand"
	"fmt"
	"io"
	"sync"
	"time"

	"checkout/internal/core/domain/model/order"

	"github.com/oklog/ulid/v2"
)

// InvoiceSource hands out invoice identifiers.
type InvoiceSource interface {
	Next() (order.Invoice, error)
}

var _ InvoiceSource = &InvoiceGenerator{}

// InvoiceGenerator issues "INV-<ULID>" identifiers. Within one millisecond
// the monotonic entropy increments the random part, so rapid successive
// submissions never collide and identifiers sort by creation time.
type InvoiceGenerator struct {
	mu      sync.Mutex
	now     func() time.Time
	entropy *ulid.MonotonicEntropy
}

// NewInvoiceGenerator uses the wall clock and crypto/rand.
func NewInvoiceGenerator() *InvoiceGenerator {
	return NewInvoiceGeneratorWith(time.Now, rand.Reader)
}

// NewInvoiceGeneratorWith injects the clock and the random source.
func NewInvoiceGeneratorWith(now func() time.Time, random io.Reader) *InvoiceGenerator {
	return &InvoiceGenerator{
		now:     now,
		entropy: ulid.Monotonic(random, 0),
	}
}

// Next returns a fresh invoice stamped with the current time.
func (g *InvoiceGenerator) Next() (order.Invoice, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	createdAt := g.now().UTC()
	id, err := ulid.New(ulid.Timestamp(createdAt), g.entropy)
	if err != nil {
		return order.Invoice{}, fmt.Errorf("generate invoice id: %w", err)
	}

	return order.NewInvoice(order.InvoicePrefix+id.String(), createdAt)
}
