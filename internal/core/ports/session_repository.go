// Package ports defines the contracts between the checkout core and its
// adapters: persistence, the courier gateway, receipt rendering and event
// publishing.
package ports

import (
	"context"
	"errors"
	"time"

	"checkout/internal/core/domain/model/checkout"
	"checkout/internal/core/domain/model/kernel"
)

// ErrVersionConflict is returned by SessionRepository.Update when the stored
// session changed after it was loaded.
var ErrVersionConflict = errors.New("session was modified concurrently")

// SessionRepository persists checkout sessions together with their cart lines.
type SessionRepository interface {
	// Add stores a new session.
	Add(ctx context.Context, session *checkout.Session) error

	// Update writes the session if the stored version still equals
	// session.Version(), then advances the version. Otherwise it returns
	// ErrVersionConflict and writes nothing.
	Update(ctx context.Context, session *checkout.Session) error

	// Get loads a session with its lines. A missing session is reported as
	// errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*checkout.Session, error)

	// DeleteStale removes sessions last updated before cutoff, except those with
	// a submission in flight, and returns how many were removed.
	DeleteStale(ctx context.Context, cutoff time.Time) (int64, error)

	// ReleaseExpiredSubmissions moves sessions Submitting since before cutoff
	// to Failed with reason and returns how many moved. Sessions holding an
	// unrecorded accepted order are kept.
	ReleaseExpiredSubmissions(ctx context.Context, cutoff time.Time, reason string) (int64, error)
}
