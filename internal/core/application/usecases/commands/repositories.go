// Package commands contains the checkout operations that change state.
// Every command is built by a validating constructor and executed by a
// handler that owns the transaction boundary.
package commands

import (
	"context"

	"checkout/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// SessionRepoFactory provides access to the session repository within a transaction.
	SessionRepoFactory interface {
		SessionRepository() ports.SessionRepository
	}

	// OrderRepoFactory provides access to the order archive within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// SessionUoW manages transactions for session-only operations.
	SessionUoW interface {
		TxManager
		SessionRepoFactory
	}

	// SessionUoWFactory creates new session unit of work instances.
	SessionUoWFactory interface {
		Create() SessionUoW
	}

	// UoW manages transactions that touch both sessions and the order archive.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   sessions := uow.SessionRepository()
	//   orders := uow.OrderRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		SessionRepoFactory
		OrderRepoFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate operations.
	UoWFactory interface {
		Create() UoW
	}
)
