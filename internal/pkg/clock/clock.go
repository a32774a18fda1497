// Package clock provides the time source injected into use-case handlers.
package clock

import "time"

// System reads the wall clock. The zero value is ready to use.
type System struct{}

func (System) Now() time.Time {
	return time.Now()
}

// Fixed always returns the same instant. Useful for deterministic handlers
// and tests.
type Fixed struct {
	At time.Time
}

func (f Fixed) Now() time.Time {
	return f.At
}
