package queries

import (
	"errors"
	"time"

	"mealroute/internal/pkg/errs"
	"mealroute/internal/pkg/guard"
)

var ErrGetDeliveryStatsQueryIsNotConstructed = errors.New(
	"GetDeliveryStatsQuery must be created via NewGetDeliveryStatsQuery constructor",
)

// GetDeliveryStatsQuery computes the stats as of now. The location of now
// decides which local day counts as today.
type GetDeliveryStatsQuery struct {
	now time.Time

	guard guard.ConstructorGuard
}

func NewGetDeliveryStatsQuery(now time.Time) (GetDeliveryStatsQuery, error) {
	if now.IsZero() {
		return GetDeliveryStatsQuery{}, errs.NewValueIsRequiredError("now")
	}

	return GetDeliveryStatsQuery{now: now, guard: guard.NewConstructorGuard()}, nil
}

func (q GetDeliveryStatsQuery) Validate() error {
	return q.guard.Validate(ErrGetDeliveryStatsQueryIsNotConstructed)
}

func (q GetDeliveryStatsQuery) Now() time.Time {
	return q.now
}
