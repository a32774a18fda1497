package ports

import (
	"context"
	"time"

	"mealroute/internal/core/domain/model/kernel"
	"mealroute/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists the full state of an existing order, including fields
	// that were cleared.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by id. Returns *errs.ObjectNotFoundError when no
	// order matches.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate is Get with a row lock held until the transaction ends.
	// Lifecycle transitions use it as their compare-and-set on the current
	// status. Requires an open transaction.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllInStatus returns the orders in any of statuses ordered by
	// creation time.
	GetAllInStatus(ctx context.Context, statuses ...order.Status) ([]*order.Order, error)

	// GetAllInStatusForUpdate is GetAllInStatus with every returned row
	// locked until the transaction ends.
	GetAllInStatusForUpdate(ctx context.Context, statuses ...order.Status) ([]*order.Order, error)

	// GetDeliveredBetween returns Delivered orders whose delivery time falls
	// in [from, to).
	GetDeliveredBetween(ctx context.Context, from, to time.Time) ([]*order.Order, error)
}
