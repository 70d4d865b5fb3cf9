package commands

import (
	"context"
	"time"

	"checkout/internal/core/domain/model/order"
)

// SweepStaleSessionsResult counts what one sweep changed.
type SweepStaleSessionsResult struct {
	// Removed is the number of abandoned sessions deleted.
	Removed int64
	// Released is the number of stuck submissions moved to Failed.
	Released int64
}

// SweepStaleSessionsCommandHandler releases stuck submissions and deletes
// abandoned sessions. Sessions with a submission in flight are never
// deleted, and an accepted but unrecorded order is never released.
type SweepStaleSessionsCommandHandler struct {
	uowFactory SessionUoWFactory
	now        func() time.Time
}

// NewSweepStaleSessionsCommandHandler creates the handler with the wall clock.
func NewSweepStaleSessionsCommandHandler(uowFactory SessionUoWFactory) SweepStaleSessionsCommandHandler {
	return SweepStaleSessionsCommandHandler{uowFactory: uowFactory, now: time.Now}
}

// WithClock returns a copy of the handler reading time from now.
func (h SweepStaleSessionsCommandHandler) WithClock(now func() time.Time) SweepStaleSessionsCommandHandler {
	h.now = now
	return h
}

// Handle runs one sweep. Released sessions are touched, so the same sweep
// never deletes them.
func (h SweepStaleSessionsCommandHandler) Handle(
	ctx context.Context,
	command SweepStaleSessionsCommand,
) (SweepStaleSessionsResult, error) {
	if err := command.Validate(); err != nil {
		return SweepStaleSessionsResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return SweepStaleSessionsResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.SessionRepository()
	now := h.now().UTC()

	released, err := repo.ReleaseExpiredSubmissions(ctx, now.Add(-command.SubmitLease()), order.GenericSubmissionMessage)
	if err != nil {
		return SweepStaleSessionsResult{}, err
	}
	removed, err := repo.DeleteStale(ctx, now.Add(-command.TTL()))
	if err != nil {
		return SweepStaleSessionsResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return SweepStaleSessionsResult{}, err
	}

	return SweepStaleSessionsResult{Removed: removed, Released: released}, nil
}
