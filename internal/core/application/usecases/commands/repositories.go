// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"mealroute/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// RouteLocker serializes route rebuilds.
	RouteLocker interface {
		LockRoute(ctx context.Context) error
	}

	// OrderUoW manages transactions for single-order lifecycle operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// RouteUoW manages the transaction of a route rebuild, which spans every
	// routable order and must hold the route lock.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   err = uow.LockRoute(ctx)
	//   orders, err := uow.OrderRepository().GetAllInStatusForUpdate(ctx, order.Ready)
	//   // ... assign positions
	//
	//   err = uow.Commit(ctx)
	RouteUoW interface {
		TxManager
		RouteLocker
		OrderRepoFactory
	}

	// RouteUoWFactory creates new route unit of work instances.
	RouteUoWFactory interface {
		Create() RouteUoW
	}
)
