package http_test

import (
	"context"
	"encoding/json"

	checkouthttp "checkout/internal/adapters/in/http"
	"checkout/internal/adapters/out/courier"
	"checkout/internal/core/application/usecases/commands"
	"checkout/internal/core/application/usecases/queries"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/model/receipt"

	"github.com/stretchr/testify/mock"
)

var (
	_ checkouthttp.StartCheckoutHandler         = (*MockStartCheckout)(nil)
	_ checkouthttp.ChangeQuantityHandler        = (*MockMutation[commands.ChangeQuantityCommand])(nil)
	_ checkouthttp.SelectAddressHandler         = (*MockMutation[commands.SelectAddressCommand])(nil)
	_ checkouthttp.UpdateDeliveryDetailsHandler = (*MockMutation[commands.UpdateDeliveryDetailsCommand])(nil)
	_ checkouthttp.SelectShippingTierHandler    = (*MockMutation[commands.SelectShippingTierCommand])(nil)
	_ checkouthttp.DismissConfirmationHandler   = (*MockMutation[commands.DismissConfirmationCommand])(nil)
	_ checkouthttp.SubmitOrderHandler           = (*MockSubmitOrder)(nil)
	_ checkouthttp.CheckoutSummaryHandler       = (*MockSummary)(nil)
	_ checkouthttp.ReceiptHandler               = (*MockReceipt)(nil)
	_ checkouthttp.DivisionsHandler             = (*MockDivisions)(nil)
	_ checkouthttp.OrderForwarder               = (*courier.Client)(nil)
)

type MockStartCheckout struct{ mock.Mock }

func (m *MockStartCheckout) Handle(ctx context.Context, command commands.StartCheckoutCommand) (kernel.UUID, error) {
	args := m.Called(ctx, command)
	return args.Get(0).(kernel.UUID), args.Error(1)
}

// MockMutation serves every command handler that only returns an error.
type MockMutation[C any] struct{ mock.Mock }

func (m *MockMutation[C]) Handle(ctx context.Context, command C) error {
	return m.Called(ctx, command).Error(0)
}

type MockSubmitOrder struct{ mock.Mock }

func (m *MockSubmitOrder) Handle(ctx context.Context, command commands.SubmitOrderCommand) (commands.SubmitOrderResponse, error) {
	args := m.Called(ctx, command)
	return args.Get(0).(commands.SubmitOrderResponse), args.Error(1)
}

type MockSummary struct{ mock.Mock }

func (m *MockSummary) Handle(
	ctx context.Context,
	query queries.GetCheckoutSummaryQuery,
) (queries.GetCheckoutSummaryQueryResponse, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.GetCheckoutSummaryQueryResponse), args.Error(1)
}

type MockReceipt struct{ mock.Mock }

func (m *MockReceipt) Handle(ctx context.Context, query queries.GetReceiptQuery) (receipt.Document, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(receipt.Document), args.Error(1)
}

type MockDivisions struct{ mock.Mock }

func (m *MockDivisions) Handle(query queries.ListDivisionsQuery) ([]string, error) {
	args := m.Called(query)
	return args.Get(0).([]string), args.Error(1)
}

type MockForwarder struct{ mock.Mock }

func (m *MockForwarder) Forward(ctx context.Context, orders json.RawMessage) (courier.Response, error) {
	args := m.Called(ctx, orders)
	return args.Get(0).(courier.Response), args.Error(1)
}
