package commands

import (
	"errors"
	"fmt"
	"time"

	"checkout/internal/pkg/errs"
	"checkout/internal/pkg/guard"
)

var ErrSweepStaleSessionsCommandIsNotConstructed = errors.New(
	"SweepStaleSessionsCommand must be created via NewSweepStaleSessionsCommand constructor",
)

// SweepStaleSessionsCommand removes sessions idle for longer than ttl and
// releases submissions in flight for longer than submitLease.
type SweepStaleSessionsCommand struct {
	ttl         time.Duration
	submitLease time.Duration

	guard guard.ConstructorGuard
}

// NewSweepStaleSessionsCommand requires a positive ttl and submitLease.
func NewSweepStaleSessionsCommand(ttl, submitLease time.Duration) (SweepStaleSessionsCommand, error) {
	var ttlErr error
	if ttl <= 0 {
		ttlErr = errs.NewValueIsInvalidErrorWithCause("ttl", fmt.Errorf("%s is not positive", ttl))
	}
	var leaseErr error
	if submitLease <= 0 {
		leaseErr = errs.NewValueIsInvalidErrorWithCause("submitLease", fmt.Errorf("%s is not positive", submitLease))
	}
	if err := errors.Join(ttlErr, leaseErr); err != nil {
		return SweepStaleSessionsCommand{}, err
	}

	return SweepStaleSessionsCommand{
		ttl:         ttl,
		submitLease: submitLease,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c SweepStaleSessionsCommand) Validate() error {
	return c.guard.Validate(ErrSweepStaleSessionsCommandIsNotConstructed)
}

// TTL returns the idle period after which a session is removed.
func (c SweepStaleSessionsCommand) TTL() time.Duration {
	return c.ttl
}

// SubmitLease returns how long a submission may stay in flight before it is
// released to Failed.
func (c SweepStaleSessionsCommand) SubmitLease() time.Duration {
	return c.submitLease
}
