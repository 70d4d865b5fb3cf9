package commands

import (
	"context"

	"checkout/internal/core/domain/model/checkout"
	"checkout/internal/core/domain/model/kernel"
)

// StartCheckoutCommandHandler persists a fresh session with a default draft.
type StartCheckoutCommandHandler struct {
	uowFactory SessionUoWFactory
}

// NewStartCheckoutCommandHandler creates the handler.
func NewStartCheckoutCommandHandler(uowFactory SessionUoWFactory) StartCheckoutCommandHandler {
	return StartCheckoutCommandHandler{uowFactory: uowFactory}
}

// Handle stores the session and returns its id.
func (h StartCheckoutCommandHandler) Handle(ctx context.Context, command StartCheckoutCommand) (kernel.UUID, error) {
	if err := command.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	session, err := checkout.NewSession(command.Cart())
	if err != nil {
		return kernel.UUID{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.SessionRepository().Add(ctx, session); err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	return session.ID(), nil
}
