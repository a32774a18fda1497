// Package ports declares the contracts the core needs from the outside world:
// order storage, transaction boundaries and the time source.
//
// Adapters in internal/adapters implement them; the domain and application
// layers depend only on these interfaces.
package ports
