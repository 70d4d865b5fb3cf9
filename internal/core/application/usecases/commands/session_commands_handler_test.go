package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"checkout/internal/core/application/usecases/commands"
	"checkout/internal/core/domain/model/address"
	"checkout/internal/core/domain/model/checkout"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/model/order"
	"checkout/internal/core/domain/model/shipping"
	"checkout/internal/core/ports"
	"checkout/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type geo struct{}

func (geo) Divisions() []string { return []string{"Dhaka", "Sylhet"} }
func (geo) DistrictsOf(division string) []string {
	if division == "Dhaka" {
		return []string{"Dhaka", "Gazipur"}
	}
	return nil
}
func (geo) SubDistrictsOf(string) []string { return nil }

func detailsWithNotes(notes string) checkout.DeliveryDetails {
	return checkout.DeliveryDetails{FullName: "Karim", Phone: "01812345678", StreetAddress: "12 Green Rd", Notes: notes}
}

// expectMutation wires one load-mutate-save round trip.
func expectMutation(ctx context.Context, session *checkout.Session) (*MockSessionUoWFactory, *MockSessionUoW, *MockSessionRepository) {
	repo := new(MockSessionRepository)
	uow := new(MockSessionUoW)
	factory := new(MockSessionUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("SessionRepository").Return(repo).Once(),
		repo.On("Get", ctx, session.ID()).Return(session, nil).Once(),
		repo.On("Update", ctx, session).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	return factory, uow, repo
}

func TestStartCheckoutCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewStartCheckoutCommand([]commands.StartCheckoutItem{
		{ID: "sku-1", Name: "Panjabi", UnitPrice: kernel.MustMoneyFromInt(200), Quantity: 2},
	})
	require.NoError(t, err)

	t.Run("should persist a new idle session", func(t *testing.T) {
		repo := new(MockSessionRepository)
		uow := new(MockSessionUoW)
		factory := new(MockSessionUoWFactory)

		var added *checkout.Session
		mock.InOrder(
			factory.On("Create").Return(uow).Once(),
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("SessionRepository").Return(repo).Once(),
			repo.On("Add", ctx, mock.AnythingOfType("*checkout.Session")).
				Run(func(args mock.Arguments) { added = args.Get(1).(*checkout.Session) }).
				Return(nil).Once(),
			uow.On("Commit", ctx).Return(nil).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)

		id, err := commands.NewStartCheckoutCommandHandler(factory).Handle(ctx, cmd)

		require.NoError(t, err)
		require.NotNil(t, added)
		assert.True(t, id.IsEqual(added.ID()))
		assert.Equal(t, checkout.Idle, added.Status())
		uow.AssertExpectations(t)
		repo.AssertExpectations(t)
	})

	t.Run("should not commit when add fails", func(t *testing.T) {
		repo := new(MockSessionRepository)
		uow := new(MockSessionUoW)
		factory := new(MockSessionUoWFactory)

		mock.InOrder(
			factory.On("Create").Return(uow).Once(),
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("SessionRepository").Return(repo).Once(),
			repo.On("Add", ctx, mock.Anything).Return(errors.New("insert failed")).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)

		_, err := commands.NewStartCheckoutCommandHandler(factory).Handle(ctx, cmd)

		require.EqualError(t, err, "insert failed")
		uow.AssertNotCalled(t, "Commit", ctx)
	})

	t.Run("should reject an unconstructed command", func(t *testing.T) {
		factory := new(MockSessionUoWFactory)

		_, err := commands.NewStartCheckoutCommandHandler(factory).Handle(ctx, commands.StartCheckoutCommand{})

		require.ErrorIs(t, err, commands.ErrStartCheckoutCommandIsNotConstructed)
		factory.AssertNotCalled(t, "Create")
	})
}

func TestChangeQuantityCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()

	t.Run("should save the changed line", func(t *testing.T) {
		session := newTestSession()
		factory, uow, repo := expectMutation(ctx, session)
		cmd, err := commands.NewChangeQuantityCommand(session.ID(), "sku-1", checkout.Increment)
		require.NoError(t, err)

		err = commands.NewChangeQuantityCommandHandler(factory).Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, 3, session.Lines()[0].Quantity())
		uow.AssertExpectations(t)
		repo.AssertExpectations(t)
	})

	t.Run("should not save when the line is unknown", func(t *testing.T) {
		session := newTestSession()
		repo := new(MockSessionRepository)
		uow := new(MockSessionUoW)
		factory := new(MockSessionUoWFactory)
		mock.InOrder(
			factory.On("Create").Return(uow).Once(),
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("SessionRepository").Return(repo).Once(),
			repo.On("Get", ctx, session.ID()).Return(session, nil).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)
		cmd, err := commands.NewChangeQuantityCommand(session.ID(), "missing", checkout.Decrement)
		require.NoError(t, err)

		err = commands.NewChangeQuantityCommandHandler(factory).Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("should surface a missing session", func(t *testing.T) {
		id := kernel.NewUUID()
		repo := new(MockSessionRepository)
		uow := new(MockSessionUoW)
		factory := new(MockSessionUoWFactory)
		mock.InOrder(
			factory.On("Create").Return(uow).Once(),
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("SessionRepository").Return(repo).Once(),
			repo.On("Get", ctx, id).Return(nil, errs.NewObjectNotFoundError("session", id.String())).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)
		cmd, err := commands.NewChangeQuantityCommand(id, "sku-1", checkout.Increment)
		require.NoError(t, err)

		err = commands.NewChangeQuantityCommandHandler(factory).Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("should surface a begin error", func(t *testing.T) {
		uow := new(MockSessionUoW)
		factory := new(MockSessionUoWFactory)
		mock.InOrder(
			factory.On("Create").Return(uow).Once(),
			uow.On("Begin", ctx).Return(errors.New("begin error")).Once(),
		)
		cmd, err := commands.NewChangeQuantityCommand(kernel.NewUUID(), "sku-1", checkout.Increment)
		require.NoError(t, err)

		err = commands.NewChangeQuantityCommandHandler(factory).Handle(ctx, cmd)

		require.EqualError(t, err, "begin error")
	})
}

func TestSelectAddressCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()

	t.Run("should store the cascade", func(t *testing.T) {
		session := newTestSession()
		factory, _, repo := expectMutation(ctx, session)
		cmd, err := commands.NewSelectAddressCommand(session.ID(), address.DivisionLevel, " Dhaka ")
		require.NoError(t, err)

		err = commands.NewSelectAddressCommandHandler(factory, geo{}).Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, "Dhaka", session.Draft().Address().Division())
		repo.AssertExpectations(t)
	})

	t.Run("should reject an unknown level", func(t *testing.T) {
		_, err := commands.NewSelectAddressCommand(kernel.NewUUID(), address.UnknownLevel, "Dhaka")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestUpdateDeliveryDetailsCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	session := newTestSession()
	factory, _, repo := expectMutation(ctx, session)
	cmd, err := commands.NewUpdateDeliveryDetailsCommand(session.ID(), detailsWithNotes("Ring twice"))
	require.NoError(t, err)

	err = commands.NewUpdateDeliveryDetailsCommandHandler(factory).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, "Karim", session.Draft().Contact().FullName())
	assert.Equal(t, "Ring twice", session.Draft().Notes())
	repo.AssertExpectations(t)
}

func TestSelectShippingTierCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()

	t.Run("should store the tier", func(t *testing.T) {
		session := newTestSession()
		factory, _, repo := expectMutation(ctx, session)
		cmd, err := commands.NewSelectShippingTierCommand(session.ID(), shipping.FarZone)
		require.NoError(t, err)

		err = commands.NewSelectShippingTierCommandHandler(factory).Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, shipping.FarZone, session.Draft().ShippingTier())
		repo.AssertExpectations(t)
	})

	t.Run("should reject an unset tier", func(t *testing.T) {
		_, err := commands.NewSelectShippingTierCommand(kernel.NewUUID(), shipping.Unset)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestDismissConfirmationCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	session := newTestSession()
	require.NoError(t, session.BeginSubmit())
	require.NoError(t, session.CompleteSubmit("INV-1"))
	factory, _, repo := expectMutation(ctx, session)
	cmd, err := commands.NewDismissConfirmationCommand(session.ID())
	require.NoError(t, err)

	err = commands.NewDismissConfirmationCommandHandler(factory).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, checkout.Idle, session.Status())
	assert.Empty(t, session.LastInvoice())
	repo.AssertExpectations(t)
}

func TestSweepStaleSessionsCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	now := time.Date(2024, 5, 2, 12, 0, 0, 0, time.UTC)
	repo := new(MockSessionRepository)
	uow := new(MockSessionUoW)
	factory := new(MockSessionUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("SessionRepository").Return(repo).Once(),
		repo.On("ReleaseExpiredSubmissions", ctx, now.Add(-time.Minute), order.GenericSubmissionMessage).
			Return(int64(1), nil).Once(),
		repo.On("DeleteStale", ctx, now.Add(-24*time.Hour)).Return(int64(3), nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	cmd, err := commands.NewSweepStaleSessionsCommand(24*time.Hour, time.Minute)
	require.NoError(t, err)

	handler := commands.NewSweepStaleSessionsCommandHandler(factory).WithClock(func() time.Time { return now })
	res, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, commands.SweepStaleSessionsResult{Removed: 3, Released: 1}, res)
	repo.AssertExpectations(t)
}

func TestSweepStaleSessions_KeepsSubmitting(t *testing.T) {
	ctx := t.Context()
	c := newTestSession().Cart()
	old := time.Now().Add(-48 * time.Hour)
	idle, err := checkout.RestoreSession(kernel.NewUUID(), checkout.NewDraft(), c, checkout.Idle, "", "", 1, old)
	require.NoError(t, err)
	stuck, err := checkout.RestoreSession(kernel.NewUUID(), checkout.NewDraft(), c, checkout.Submitting, "", "", 1, old)
	require.NoError(t, err)
	unrecorded, err := checkout.RestoreSession(
		kernel.NewUUID(), checkout.NewDraft(), c, checkout.Submitting, "INV-ACCEPTED", "", 1, old,
	)
	require.NoError(t, err)
	store := newMemStore(idle, stuck, unrecorded)

	cmd, err := commands.NewSweepStaleSessionsCommand(24*time.Hour, time.Minute)
	require.NoError(t, err)
	factory := sessionFactory(store)

	res, err := commands.NewSweepStaleSessionsCommandHandler(factory).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, commands.SweepStaleSessionsResult{Removed: 1, Released: 1}, res)

	released := store.session(stuck.ID())
	require.NotNil(t, released)
	assert.Equal(t, checkout.Failed, released.Status())
	assert.Equal(t, order.GenericSubmissionMessage, released.LastError())

	kept := store.session(unrecorded.ID())
	require.NotNil(t, kept)
	assert.True(t, kept.IsUnrecorded())
	assert.Equal(t, "INV-ACCEPTED", kept.LastInvoice())
}

// sessionFactory narrows the store to the session-only unit of work.
func sessionFactory(store *memStore) commands.SessionUoWFactory {
	return funcSessionFactory(func() commands.SessionUoW { return store.Create() })
}

type funcSessionFactory func() commands.SessionUoW

func (f funcSessionFactory) Create() commands.SessionUoW { return f() }

var _ ports.SessionRepository = (*MockSessionRepository)(nil)
