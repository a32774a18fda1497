package postgres

import (
	"errors"
	"fmt"

	"mealroute/internal/core/ports"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes that mean the route rebuild lost a race and can be retried.
const (
	sqlStateSerializationFailure = "40001"
	sqlStateDeadlockDetected     = "40P01"
	sqlStateLockNotAvailable     = "55P03"
	sqlStateUniqueViolation      = "23505"

	tourPositionConstraint = "orders_tour_position_unique"
)

// mapRouteError turns store-level serialization failures into
// ports.ErrRouteRebuildConflict. The original error stays in the chain.
func mapRouteError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case sqlStateSerializationFailure, sqlStateDeadlockDetected, sqlStateLockNotAvailable:
		return fmt.Errorf("%w: %w", ports.ErrRouteRebuildConflict, err)
	case sqlStateUniqueViolation:
		if pgErr.ConstraintName == tourPositionConstraint {
			return fmt.Errorf("%w: %w", ports.ErrRouteRebuildConflict, err)
		}
	}

	return err
}
