package ports

import (
	"context"
	"errors"
)

// ErrRouteRebuildConflict is returned when the store could not serialize a
// route rebuild against concurrent work. Rebuilds are idempotent, so the
// caller may simply retry.
var ErrRouteRebuildConflict = errors.New("route rebuild conflict")

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// Client code must explicitly manage transaction lifecycle.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// LockRoute takes the single route critical section for the rest of the
	// transaction. Two transactions holding it never overlap. Returns
	// ErrRouteRebuildConflict when the lock cannot be taken in time.
	LockRoute(ctx context.Context) error

	// OrderRepository returns an OrderRepository bound to the current
	// transaction.
	OrderRepository() OrderRepository
}
