// Package kernel provides the value objects shared by the routing engine's
// aggregates.
//
// The package includes:
//   - UUID: an order identifier wrapping github.com/google/uuid
//   - GeoPoint: a validated latitude/longitude pair, with great-circle distance
//   - GPSFix: a GeoPoint stamped with the moment it was captured
//
// Zero values of these types are invalid; create them through their
// constructors. All of them are immutable and safe for concurrent use.
package kernel
