// Package queries contains the read side of the CQRS split. Query handlers
// never modify state; the order and route views read the database directly
// with SQL, the stats view reuses the domain aggregator.
package queries
