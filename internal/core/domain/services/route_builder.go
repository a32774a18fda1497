package services

import (
	"cmp"
	"slices"

	"mealroute/internal/core/domain/model/kernel"
	"mealroute/internal/core/domain/model/order"
)

// TourStop is one entry of a built tour.
type TourStop struct {
	OrderID    kernel.UUID
	Position   int
	DistanceKm float64
}

// RouteBuilder sequences orders into a single delivery tour starting at the
// kitchen.
//
// Business rules:
//   - only Ready orders with a valid GPS fix take part
//   - distance is recomputed from the fix on every build
//   - the tour runs nearest first; equal distances keep placement order
//     (createdAt, then id) so repeated builds are stable
//   - positions are contiguous 1..N
//   - any other order in the input loses a stale position
//
// Example usage:
//
//	builder := services.NewRouteBuilder()
//	stops, err := builder.Build(readyOrders, kitchen)
//	if err != nil {
//	    return err
//	}
//	for _, stop := range stops {
//	    fmt.Println(stop.Position, stop.OrderID, stop.DistanceKm)
//	}
type RouteBuilder struct{}

func NewRouteBuilder() RouteBuilder {
	return RouteBuilder{}
}

type candidate struct {
	order      *order.Order
	distanceKm float64
}

// Build assigns tour positions to orders in place and returns the tour in
// position order. Orders that are not routable are skipped, which is not an
// error. The returned slice is empty, never nil, when nothing is routable.
func (RouteBuilder) Build(orders []*order.Order, origin kernel.GeoPoint) ([]TourStop, error) {
	if err := origin.Validate(); err != nil {
		return nil, err
	}

	candidates := make([]candidate, 0, len(orders))
	for _, o := range orders {
		if err := o.Validate(); err != nil {
			return nil, err
		}

		if !o.IsRoutable() {
			o.ClearTourPosition()
			continue
		}

		candidates = append(candidates, candidate{
			order:      o,
			distanceKm: kernel.DistanceKm(origin, o.GPSFix().Point()),
		})
	}

	slices.SortStableFunc(candidates, compareCandidates)

	stops := make([]TourStop, 0, len(candidates))
	for i, c := range candidates {
		position := i + 1
		if err := c.order.AssignTourPosition(position, c.distanceKm); err != nil {
			return nil, err
		}

		stops = append(stops, TourStop{
			OrderID:    c.order.ID(),
			Position:   position,
			DistanceKm: c.distanceKm,
		})
	}

	return stops, nil
}

func compareCandidates(a, b candidate) int {
	if c := cmp.Compare(a.distanceKm, b.distanceKm); c != 0 {
		return c
	}
	if c := a.order.CreatedAt().Compare(b.order.CreatedAt()); c != 0 {
		return c
	}
	return a.order.ID().Compare(b.order.ID())
}
