package commands

import (
	"context"

	"checkout/internal/core/domain/model/checkout"
	"checkout/internal/core/domain/model/kernel"
)

// mutateSession loads a session, applies mutate and writes it back inside one
// transaction. Nothing is written when mutate fails.
func mutateSession(
	ctx context.Context,
	factory SessionUoWFactory,
	id kernel.UUID,
	mutate func(*checkout.Session) error,
) error {
	uow := factory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.SessionRepository()

	session, err := repo.Get(ctx, id)
	if err != nil {
		return err
	}

	if err = mutate(session); err != nil {
		return err
	}

	if err = repo.Update(ctx, session); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
