package services

import (
	"time"

	"mealroute/internal/core/domain/model/order"
)

// DeliveryStats is a point-in-time view of the order set.
type DeliveryStats struct {
	ReadyCount          int
	OutForDeliveryCount int

	// DeliveredToday counts orders delivered within the local day of now.
	DeliveredToday int

	// AverageDistanceKm is the mean kitchen distance of Ready orders that
	// carry one, or 0 when there are none.
	AverageDistanceKm float64

	// TotalDistanceKm sums the same distances as AverageDistanceKm.
	TotalDistanceKm float64

	// TourLength is the number of Ready orders holding a tour position.
	TourLength int
}

// DeliveryStatsAggregator derives DeliveryStats from orders. It keeps no state
// between calls.
type DeliveryStatsAggregator struct{}

func NewDeliveryStatsAggregator() DeliveryStatsAggregator {
	return DeliveryStatsAggregator{}
}

// Aggregate computes the stats at now. The day boundary for DeliveredToday is
// midnight in now's location, so callers choose the local day by choosing the
// location of now.
func (DeliveryStatsAggregator) Aggregate(orders []*order.Order, now time.Time) DeliveryStats {
	var (
		stats        DeliveryStats
		withDistance int
	)

	dayStart, dayEnd := DayWindow(now)

	for _, o := range orders {
		if o.Validate() != nil {
			continue
		}

		switch o.Status() {
		case order.Ready:
			stats.ReadyCount++
			if d := o.DistanceKm(); d != nil {
				stats.TotalDistanceKm += *d
				withDistance++
			}
			if o.TourPosition() != nil {
				stats.TourLength++
			}
		case order.OutForDelivery:
			stats.OutForDeliveryCount++
		case order.Delivered:
			if at := o.ActualDeliveryAt(); at != nil && !at.Before(dayStart) && at.Before(dayEnd) {
				stats.DeliveredToday++
			}
		default:
		}
	}

	if withDistance > 0 {
		stats.AverageDistanceKm = stats.TotalDistanceKm / float64(withDistance)
	}

	return stats
}

// DayWindow returns the half-open local day [start, end) containing now, in
// now's location. On a DST change the day is 23 or 25 hours long.
func DayWindow(now time.Time) (time.Time, time.Time) {
	y, m, d := now.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	return start, start.AddDate(0, 0, 1)
}
