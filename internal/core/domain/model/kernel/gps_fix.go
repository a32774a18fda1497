package kernel

import (
	"errors"
	"fmt"
	"time"

	"mealroute/internal/pkg/errs"
	"mealroute/internal/pkg/guard"
)

// ErrGPSFixIsNotConstructed is returned when validating a zero GPSFix.
var ErrGPSFixIsNotConstructed = errs.NewValueIsRequiredError("GPS fix must be created via NewGPSFix")

// GPSFix is a customer location reading taken at CapturedAt.
type GPSFix struct { //nolint:recvcheck //using for validation
	point      GeoPoint
	capturedAt time.Time
	guard      guard.ConstructorGuard
}

func NewGPSFix(point GeoPoint, capturedAt time.Time) (GPSFix, error) {
	fix := GPSFix{guard: guard.NewConstructorGuard()}

	if err := errors.Join(fix.setPoint(point), fix.setCapturedAt(capturedAt)); err != nil {
		return GPSFix{}, err
	}

	return fix, nil
}

func (f GPSFix) Validate() error {
	if err := f.guard.Validate(ErrGPSFixIsNotConstructed); err != nil {
		return err
	}
	return f.point.Validate()
}

func (f GPSFix) Point() GeoPoint {
	return f.point
}

func (f GPSFix) CapturedAt() time.Time {
	return f.capturedAt
}

func (f GPSFix) String() string {
	return fmt.Sprintf("GPSFix(%s@%s)", f.point, f.capturedAt.Format(time.RFC3339))
}

func (f *GPSFix) setPoint(point GeoPoint) error {
	if err := point.Validate(); err != nil {
		return err
	}
	f.point = point
	return nil
}

func (f *GPSFix) setCapturedAt(capturedAt time.Time) error {
	if capturedAt.IsZero() {
		return errs.NewValueIsRequiredError("capturedAt")
	}
	f.capturedAt = capturedAt
	return nil
}
