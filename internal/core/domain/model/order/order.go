package order

import (
	"errors"
	"fmt"
	"time"

	"mealroute/internal/core/domain/model/kernel"
	"mealroute/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned for an Order that bypassed NewOrder
	// and RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrInvalidLocation wraps every rejection of a readiness location.
	ErrInvalidLocation = errors.New("invalid location")

	// ErrOrderIsNotRoutable is returned when a tour position is assigned to an
	// order that is not Ready or has no GPS fix.
	ErrOrderIsNotRoutable = errors.New("order is not routable")
)

// Order is the aggregate root tracked by the routing engine.
//
// Invariants:
//   - tourPosition is set only while status is Ready and gpsFix is present
//   - actualDeliveryAt is set only in Delivered
//   - a gpsFix exists only once the order has been marked ready
type Order struct {
	id         kernel.UUID
	status     Status
	plan       string
	priceMinor *int64
	createdAt  time.Time

	// gpsFix is the customer location captured by the readiness event.
	gpsFix *kernel.GPSFix

	// distanceKm is the great-circle distance from the kitchen to gpsFix.
	distanceKm *float64

	// tourPosition is the 1-based rank in the current tour.
	tourPosition *int

	estimatedDeliveryAt *time.Time
	actualDeliveryAt    *time.Time

	isConstructed bool
}

// NewOrder creates a Pending order.
//
// Parameters:
//   - id: unique identifier (must be valid)
//   - createdAt: placement time, used to break distance ties in the tour
//   - plan: optional subscription plan label
//   - priceMinor: optional price in minor currency units, must not be negative
func NewOrder(id kernel.UUID, createdAt time.Time, plan string, priceMinor *int64) (*Order, error) {
	o := &Order{
		status:        Pending,
		plan:          plan,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCreatedAt(createdAt),
		o.setPriceMinor(priceMinor),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Snapshot is the full persisted state of an order.
type Snapshot struct {
	ID                  kernel.UUID
	Status              Status
	Plan                string
	PriceMinor          *int64
	CreatedAt           time.Time
	GPSFix              *kernel.GPSFix
	DistanceKm          *float64
	TourPosition        *int
	EstimatedDeliveryAt *time.Time
	ActualDeliveryAt    *time.Time
}

// RestoreOrder rebuilds an order from persistence and re-checks every
// invariant, so a corrupted record never becomes a live aggregate.
func RestoreOrder(s Snapshot) (*Order, error) {
	o := &Order{
		plan:                s.Plan,
		estimatedDeliveryAt: s.EstimatedDeliveryAt,
		isConstructed:       true,
	}

	if err := errors.Join(
		o.setID(s.ID),
		o.setCreatedAt(s.CreatedAt),
		o.setPriceMinor(s.PriceMinor),
		s.Status.Validate(),
	); err != nil {
		return nil, err
	}
	o.status = s.Status

	if s.GPSFix != nil {
		if s.Status == Pending || s.Status == Confirmed {
			return nil, errs.NewValueIsInvalidErrorWithCause(
				"gpsFix", fmt.Errorf("%s order cannot carry a GPS fix", s.Status))
		}
		if err := s.GPSFix.Validate(); err != nil {
			return nil, err
		}
		fix := *s.GPSFix
		o.gpsFix = &fix
	}

	if s.DistanceKm != nil {
		if *s.DistanceKm < 0 {
			return nil, errs.NewValueIsInvalidErrorWithCause(
				"distanceKm", fmt.Errorf("%f is negative", *s.DistanceKm))
		}
		d := *s.DistanceKm
		o.distanceKm = &d
	}

	if s.TourPosition != nil {
		if err := o.checkRoutable(*s.TourPosition); err != nil {
			return nil, err
		}
		p := *s.TourPosition
		o.tourPosition = &p
	}

	if s.ActualDeliveryAt != nil {
		if s.Status != Delivered {
			return nil, errs.NewValueIsInvalidErrorWithCause(
				"actualDeliveryAt", fmt.Errorf("%s order cannot carry a delivery time", s.Status))
		}
		at := *s.ActualDeliveryAt
		o.actualDeliveryAt = &at
	}

	return o, nil
}

// Validate ensures the order went through a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares orders by identity.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) Plan() string {
	return o.plan
}

// PriceMinor returns the price in minor currency units, or nil when unknown.
func (o *Order) PriceMinor() *int64 {
	return copyPtr(o.priceMinor)
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// GPSFix returns the readiness location, or nil before the order is ready.
func (o *Order) GPSFix() *kernel.GPSFix {
	return copyPtr(o.gpsFix)
}

// DistanceKm returns the last computed distance from the kitchen, or nil.
func (o *Order) DistanceKm() *float64 {
	return copyPtr(o.distanceKm)
}

// TourPosition returns the 1-based tour rank, or nil when not in the tour.
func (o *Order) TourPosition() *int {
	return copyPtr(o.tourPosition)
}

func (o *Order) EstimatedDeliveryAt() *time.Time {
	return copyPtr(o.estimatedDeliveryAt)
}

func (o *Order) ActualDeliveryAt() *time.Time {
	return copyPtr(o.actualDeliveryAt)
}

// IsRoutable reports whether the order belongs to the routable set.
func (o *Order) IsRoutable() bool {
	return o.status == Ready && o.gpsFix != nil && o.gpsFix.Validate() == nil
}

// Confirm records the external confirmation. estimatedDeliveryAt is the
// promised delivery slot carried by the confirmation, if any.
func (o *Order) Confirm(estimatedDeliveryAt *time.Time) error {
	next, err := o.status.Confirm()
	if err != nil {
		return err
	}

	o.status = next
	o.estimatedDeliveryAt = copyPtr(estimatedDeliveryAt)
	return nil
}

// MarkReady stores the customer fix and its distance from kitchen and moves
// the order to Ready. It does not assign a tour position.
//
// Returns:
//   - *errs.InvalidTransitionError unless the order is Confirmed
//   - ErrInvalidLocation when the fix or the kitchen point is not valid
func (o *Order) MarkReady(fix kernel.GPSFix, kitchen kernel.GeoPoint) error {
	next, err := o.status.Ready()
	if err != nil {
		return err
	}

	if err = errors.Join(fix.Validate(), kitchen.Validate()); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidLocation, err)
	}

	distance := kernel.DistanceKm(kitchen, fix.Point())
	o.status = next
	o.gpsFix = &fix
	o.distanceKm = &distance
	return nil
}

// StartDelivery hands the order to the driver. The order leaves the
// routable set, so its tour position is cleared.
func (o *Order) StartDelivery() error {
	next, err := o.status.StartDelivery()
	if err != nil {
		return err
	}

	o.status = next
	o.tourPosition = nil
	return nil
}

// CompleteDelivery marks the order Delivered and stamps deliveredAt.
func (o *Order) CompleteDelivery(deliveredAt time.Time) error {
	next, err := o.status.CompleteDelivery()
	if err != nil {
		return err
	}
	if deliveredAt.IsZero() {
		return errs.NewValueIsRequiredError("deliveredAt")
	}

	o.status = next
	o.actualDeliveryAt = &deliveredAt
	return nil
}

// Cancel terminates a non-terminal order and drops any tour position.
func (o *Order) Cancel() error {
	next, err := o.status.Cancel()
	if err != nil {
		return err
	}

	o.status = next
	o.tourPosition = nil
	return nil
}

// AssignTourPosition is used by the route builder only. It records the
// order's rank in the freshly built tour together with the recomputed
// distance.
func (o *Order) AssignTourPosition(position int, distanceKm float64) error {
	if err := o.checkRoutable(position); err != nil {
		return err
	}
	if distanceKm < 0 {
		return errs.NewValueIsInvalidErrorWithCause("distanceKm", fmt.Errorf("%f is negative", distanceKm))
	}

	o.tourPosition = &position
	o.distanceKm = &distanceKm
	return nil
}

// ClearTourPosition removes the order from the tour.
func (o *Order) ClearTourPosition() {
	o.tourPosition = nil
}

func (o *Order) checkRoutable(position int) error {
	if position < 1 {
		return errs.NewValueIsOutOfRangeError("tourPosition", position, 1, "unbounded")
	}
	if !o.IsRoutable() {
		return fmt.Errorf("%w: %s order %s", ErrOrderIsNotRoutable, o.status, o.id)
	}
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	o.createdAt = createdAt
	return nil
}

func (o *Order) setPriceMinor(priceMinor *int64) error {
	if priceMinor != nil && *priceMinor < 0 {
		return errs.NewValueIsInvalidErrorWithCause("price is invalid", fmt.Errorf("%d is negative", *priceMinor))
	}
	o.priceMinor = copyPtr(priceMinor)
	return nil
}

// NewDeliveryPoint validates raw readiness coordinates. Every rejection
// wraps ErrInvalidLocation.
func NewDeliveryPoint(lat, lng float64) (kernel.GeoPoint, error) {
	p, err := kernel.NewGeoPoint(lat, lng)
	if err != nil {
		return kernel.GeoPoint{}, fmt.Errorf("%w: %w", ErrInvalidLocation, err)
	}
	return p, nil
}

func copyPtr[T any](v *T) *T {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
