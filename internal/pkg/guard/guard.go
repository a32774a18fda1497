// Package guard detects value objects and commands that bypassed their
// constructors.
package guard

import "errors"

// ErrNotConstructed is returned by Validate when no specific error is given.
var ErrNotConstructed = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded in types whose zero value must never be used.
// Only NewConstructorGuard yields a guard that passes Validate.
type ConstructorGuard struct {
	isConstructed bool
}

func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrNotConstructed when it is nil) for
// a zero-value guard and nil otherwise.
func (g ConstructorGuard) Validate(validationError error) error {
	if g.isConstructed {
		return nil
	}
	if validationError == nil {
		return ErrNotConstructed
	}
	return validationError
}
