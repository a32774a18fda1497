package queries

import (
	"errors"

	"mealroute/internal/core/domain/model/kernel"
	"mealroute/internal/pkg/guard"
)

var ErrGetRouteQueryIsNotConstructed = errors.New(
	"GetRouteQuery must be created via NewGetRouteQuery constructor",
)

// GetRouteQuery reads the tour as persisted by the last rebuild. It never
// rebuilds.
//
// Example:
//
//	stops, err := handler.Handle(ctx, queries.NewGetRouteQuery())
//	if err != nil {
//	    return err
//	}
//	for _, stop := range stops {
//	    fmt.Printf("%d. %s (%.2f km)\n", stop.Position, stop.OrderID, stop.DistanceKm)
//	}
type GetRouteQuery struct {
	guard guard.ConstructorGuard
}

func NewGetRouteQuery() GetRouteQuery {
	return GetRouteQuery{guard: guard.NewConstructorGuard()}
}

func (q GetRouteQuery) Validate() error {
	return q.guard.Validate(ErrGetRouteQueryIsNotConstructed)
}

// GetRouteQueryResponse is one tour stop.
type GetRouteQueryResponse struct {
	OrderID    kernel.UUID
	Position   int
	DistanceKm float64
	Lat        float64
	Lng        float64
}
