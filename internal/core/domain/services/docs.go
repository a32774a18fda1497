// Package services holds the domain services that work across many orders at
// once and therefore do not belong to the Order aggregate.
//
// The package includes:
//   - RouteBuilder: sequences the routable orders into a single delivery tour
//   - DeliveryStatsAggregator: derives operational counters from an order set
//
// Both services are pure: they never touch storage, read the clock or log.
// Persistence and locking are the caller's concern.
package services
