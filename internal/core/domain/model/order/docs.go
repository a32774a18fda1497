// Package order provides the Order aggregate and its status state machine.
//
// Lifecycle:
//
//	Pending ──> Confirmed ──> Ready ──> OutForDelivery ──> Delivered
//	   │            │           │              │
//	   └────────────┴───────────┴──────────────┴──> Cancelled
//
// Delivered and Cancelled are terminal. Lifecycle methods own the status, the
// GPS fix and the delivery timestamps; the route builder owns the tour
// position through AssignTourPosition and ClearTourPosition.
//
// Key business rules:
//   - a tour position exists only while the order is Ready and located
//   - the actual delivery time is stamped once, on entry into Delivered
//   - transitions are never coerced; a wrong source status is an error
package order
