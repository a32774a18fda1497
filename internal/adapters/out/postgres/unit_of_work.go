// Package postgres provides the GORM-based Unit of Work and the route lock.
//
// Every business operation gets its own GormUnitOfWork from the factory.
// Repositories obtained from a unit of work run inside its transaction once
// Begin has been called, and on the plain connection otherwise.
//
// Route rebuilds additionally call LockRoute, which takes a transaction-scoped
// advisory lock under a bounded lock_timeout:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	if err := uow.LockRoute(ctx); err != nil {
//	    return err // ports.ErrRouteRebuildConflict on timeout
//	}
//	orders, err := uow.OrderRepository().GetAllInStatusForUpdate(ctx, order.Ready)
//	// ... assign positions, Update each order
//	return uow.Commit(ctx)
//
// Once the route lock is held, lock timeouts, deadlocks and serialization
// failures from the repository and from Commit are reported as
// ports.ErrRouteRebuildConflict.
package postgres

import (
	"context"
	"fmt"
	"time"

	"mealroute/internal/adapters/out/postgres/orderrepo"
	"mealroute/internal/core/domain/model/kernel"
	"mealroute/internal/core/ports"

	"gorm.io/gorm"
)

// routeLockKey is the pg_advisory_xact_lock key guarding the tour.
const routeLockKey int64 = 0x6d65616c726f7574 // "mealrout"

// DefaultRouteLockTimeout bounds how long a rebuild waits for the route lock
// and for row locks held by in-flight transitions.
const DefaultRouteLockTimeout = 5 * time.Second

// trackedAggregate is an aggregate written during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// GormUnitOfWorkFactory creates UnitOfWork instances using GORM database connections.
type GormUnitOfWorkFactory struct {
	db          *gorm.DB
	lockTimeout time.Duration
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work
// instances. A non-positive lockTimeout falls back to
// DefaultRouteLockTimeout.
//
// Example:
//
//	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
//	if err != nil {
//	    return err
//	}
//	factory := NewGormUnitOfWorkFactory(db, 3*time.Second)
func NewGormUnitOfWorkFactory(db *gorm.DB, lockTimeout time.Duration) *GormUnitOfWorkFactory {
	if lockTimeout <= 0 {
		lockTimeout = DefaultRouteLockTimeout
	}
	return &GormUnitOfWorkFactory{db: db, lockTimeout: lockTimeout}
}

// Create produces a new UnitOfWork instance with its own transaction state.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		lockTimeout:       f.lockTimeout,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates one database transaction and tracks the
// aggregates written in it.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	lockTimeout       time.Duration
	routeLocked       bool
	trackedAggregates []trackedAggregate
}

// Begin initiates a new database transaction for the unit of work.
// Multiple calls to Begin on the same instance are safe and will not create nested transactions.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit finalizes all changes made within the current transaction.
// Returns error if no active transaction exists or if the commit operation fails.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	if uow.routeLocked {
		uow.routeLocked = false
		return mapRouteError(err)
	}
	return err
}

// Rollback discards all changes made within the current transaction.
// Returns error if no active transaction exists or if the rollback operation fails.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.routeLocked = false
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

// LockRoute takes the route advisory lock for the rest of the transaction.
// The lock timeout also applies to every row lock taken afterwards in the
// same transaction.
func (uow *GormUnitOfWork) LockRoute(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	tx := uow.tx.WithContext(ctx)

	// SET cannot take bind parameters.
	setTimeout := fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", uow.lockTimeout.Milliseconds())
	if err := tx.Exec(setTimeout).Error; err != nil {
		return mapRouteError(err)
	}

	if err := tx.Exec("SELECT pg_advisory_xact_lock(?)", routeLockKey).Error; err != nil {
		return mapRouteError(err)
	}

	uow.routeLocked = true
	return nil
}

// OrderRepository returns an order repository bound to the current
// transaction if one is active.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	db := uow.db
	if uow.tx != nil {
		db = uow.tx
	}

	repo := orderrepo.NewGormOrderRepository(db, uow)
	if uow.routeLocked {
		return routeOrderRepository{next: repo}
	}
	return repo
}

// TrackAggregate registers a domain aggregate as modified within this unit of work.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

// TrackedIDs lists the ids of aggregates written so far, in write order.
// A rollback clears the list.
func (uow *GormUnitOfWork) TrackedIDs() []kernel.UUID {
	ids := make([]kernel.UUID, 0, len(uow.trackedAggregates))
	for _, tracked := range uow.trackedAggregates {
		ids = append(ids, tracked.ID)
	}
	return ids
}
