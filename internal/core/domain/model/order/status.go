package order

import (
	"fmt"
	"strings"

	"mealroute/internal/pkg/errs"
)

// Status is the lifecycle state of an order.
//
// Valid transitions:
//
//	Pending        -> Confirmed | Cancelled
//	Confirmed      -> Ready | Cancelled
//	Ready          -> OutForDelivery | Cancelled
//	OutForDelivery -> Delivered | Cancelled
//
// The numeric values are persisted; do not reorder them.
type Status int

const (
	// Unknown (0) catches uninitialised values.
	Unknown Status = iota

	// Pending is an order placed but not yet paid or confirmed.
	Pending

	// Confirmed orders have passed the external payment/confirmation step.
	Confirmed

	// Ready orders carry a customer GPS fix and are eligible for the tour.
	Ready

	// OutForDelivery orders have left the kitchen with the driver.
	OutForDelivery

	// Delivered is terminal.
	Delivered

	// Cancelled is terminal.
	Cancelled
)

const (
	actionConfirm          = "confirm"
	actionMarkReady        = "mark ready"
	actionStartDelivery    = "start delivery"
	actionCompleteDelivery = "complete delivery"
	actionCancel           = "cancel"
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "UNKNOWN",
		Pending:        "PENDING",
		Confirmed:      "CONFIRMED",
		Ready:          "READY",
		OutForDelivery: "OUT_FOR_DELIVERY",
		Delivered:      "DELIVERED",
		Cancelled:      "CANCELLED",
	}
}

// AllStatuses lists every valid status in lifecycle order.
func AllStatuses() []Status {
	return []Status{Pending, Confirmed, Ready, OutForDelivery, Delivered, Cancelled}
}

// ParseStatus accepts the String() form, case-insensitively.
func ParseStatus(s string) (Status, error) {
	needle := strings.ToUpper(strings.TrimSpace(s))
	for _, status := range AllStatuses() {
		if status.String() == needle {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate rejects Unknown and any value outside the declared set.
func (s Status) Validate() error {
	if s < Pending || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name; unknown values render as "UNKNOWN".
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return getStatusStrings()[Unknown]
}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// Confirm moves Pending to Confirmed.
func (s Status) Confirm() (Status, error) {
	return s.advance(Pending, Confirmed, actionConfirm)
}

// Ready moves Confirmed to Ready.
func (s Status) Ready() (Status, error) {
	return s.advance(Confirmed, Ready, actionMarkReady)
}

// StartDelivery moves Ready to OutForDelivery.
func (s Status) StartDelivery() (Status, error) {
	return s.advance(Ready, OutForDelivery, actionStartDelivery)
}

// CompleteDelivery moves OutForDelivery to Delivered.
func (s Status) CompleteDelivery() (Status, error) {
	return s.advance(OutForDelivery, Delivered, actionCompleteDelivery)
}

// Cancel moves any non-terminal valid status to Cancelled.
func (s Status) Cancel() (Status, error) {
	if s.Validate() != nil || s.IsTerminal() {
		return Unknown, errs.NewInvalidTransitionError(s, actionCancel)
	}
	return Cancelled, nil
}

func (s Status) advance(from, to Status, action string) (Status, error) {
	if s != from {
		return Unknown, errs.NewInvalidTransitionError(s, action)
	}
	return to, nil
}
