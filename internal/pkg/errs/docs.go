// Package errs provides the typed error values shared by every layer of the
// routing engine.
//
// Each error kind follows the same shape:
//   - a sentinel (e.g. ErrObjectNotFound) usable with errors.Is
//   - a struct carrying the offending parameter and an optional cause
//   - New...Error / New...ErrorWithCause constructors
//   - Error() for the message and Unwrap() returning the sentinel
//
// The kinds map onto the engine's failure vocabulary:
//   - ObjectNotFoundError: an order id that does not resolve to a record
//   - InvalidTransitionError: a status precondition that does not hold
//   - ValueIsInvalidError, ValueIsOutOfRangeError, ValueIsRequiredError: input validation
package errs
