package commands_test

import (
	"context"
	"time"

	"checkout/internal/core/application/usecases/commands"
	"checkout/internal/core/domain/model/cart"
	"checkout/internal/core/domain/model/checkout"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockSessionRepository struct{ mock.Mock }

func (m *MockSessionRepository) Add(ctx context.Context, s *checkout.Session) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSessionRepository) Update(ctx context.Context, s *checkout.Session) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSessionRepository) Get(ctx context.Context, id kernel.UUID) (*checkout.Session, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*checkout.Session), args.Error(1)
}

func (m *MockSessionRepository) DeleteStale(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSessionRepository) ReleaseExpiredSubmissions(ctx context.Context, cutoff time.Time, reason string) (int64, error) {
	args := m.Called(ctx, cutoff, reason)
	return args.Get(0).(int64), args.Error(1)
}

type MockSessionUoW struct{ mock.Mock }

func (m *MockSessionUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockSessionUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockSessionUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockSessionUoW) SessionRepository() ports.SessionRepository {
	args := m.Called()
	return args.Get(0).(ports.SessionRepository)
}

type MockSessionUoWFactory struct{ mock.Mock }

func (m *MockSessionUoWFactory) Create() commands.SessionUoW {
	args := m.Called()
	return args.Get(0).(commands.SessionUoW)
}

// newTestSession returns a persisted-looking session with one line of ৳200 x2.
func newTestSession() *checkout.Session {
	line, _ := cart.NewLine("sku-1", "Panjabi", kernel.MustMoneyFromInt(200), 2, "/p.jpg")
	c, _ := cart.NewCart(line)
	s, _ := checkout.NewSession(c)
	return s
}
