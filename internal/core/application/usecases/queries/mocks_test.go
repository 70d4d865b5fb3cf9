package queries

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"checkout/internal/core/domain/model/address"
	"checkout/internal/core/domain/model/cart"
	"checkout/internal/core/domain/model/checkout"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/model/order"
	"checkout/internal/core/domain/model/receipt"
	"checkout/internal/core/domain/services"
)

type MockSessionReader struct{ mock.Mock }

func (m *MockSessionReader) Get(ctx context.Context, id kernel.UUID) (*checkout.Session, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(*checkout.Session)
	return s, args.Error(1)
}

type MockOrderReader struct{ mock.Mock }

func (m *MockOrderReader) Get(ctx context.Context, invoice string) (*order.Result, error) {
	args := m.Called(ctx, invoice)
	r, _ := args.Get(0).(*order.Result)
	return r, args.Error(1)
}

type MockReceiptRenderer struct{ mock.Mock }

func (m *MockReceiptRenderer) Render(result *order.Result, opts receipt.Options) (receipt.Document, error) {
	args := m.Called(result, opts)
	return args.Get(0).(receipt.Document), args.Error(1)
}

type geo struct{}

func (geo) Divisions() []string { return []string{"Dhaka", "Sylhet"} }
func (geo) DistrictsOf(division string) []string {
	if division == "Dhaka" {
		return []string{"Dhaka", "Gazipur"}
	}
	return nil
}
func (geo) SubDistrictsOf(district string) []string {
	if district == "Gazipur" {
		return []string{"Tongi"}
	}
	return nil
}

type noInvoices struct{}

func (noInvoices) Next() (order.Invoice, error) {
	panic("summary must not consume invoices")
}

func newComposer(t *testing.T) *services.OrderComposer {
	t.Helper()
	composer, err := services.NewOrderComposer(noInvoices{})
	require.NoError(t, err)
	return composer
}

func restoreSession(t *testing.T, draft checkout.Draft, status checkout.SubmissionStatus) *checkout.Session {
	t.Helper()
	line, err := cart.NewLine("sku-1", "Panjabi", kernel.MustMoneyFromInt(200), 2, "/p.jpg")
	require.NoError(t, err)
	c, err := cart.NewCart(line)
	require.NoError(t, err)

	s, err := checkout.RestoreSession(kernel.NewUUID(), draft, c, status, "", "", 3, time.Now().UTC())
	require.NoError(t, err)
	return s
}

func completeDraft() checkout.Draft {
	return checkout.NewDraft().
		WithContact(checkout.NewContactInfo("Karim", "01812345678")).
		WithAddress(address.RestoreSelection("Dhaka", "Gazipur", "", "12 Green Rd", ""))
}
