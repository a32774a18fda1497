package kernel

import (
	"errors"
	"fmt"
	"math"

	"mealroute/internal/pkg/errs"
	"mealroute/internal/pkg/guard"
)

const (
	LatitudeMin  = -90.0
	LatitudeMax  = 90.0
	LongitudeMin = -180.0
	LongitudeMax = 180.0

	// EarthRadiusKm is the mean radius of the spherical Earth model.
	EarthRadiusKm = 6371.0
)

var (
	// ErrGeoPointIsNotConstructed is returned when validating a zero GeoPoint.
	ErrGeoPointIsNotConstructed = errs.NewValueIsRequiredError("geo point must be created via NewGeoPoint")

	// ErrGeoPointIsZero marks a coordinate of exactly 0. Clients send 0 when no
	// location is available, so 0 is never treated as a real reading.
	ErrGeoPointIsZero = errors.New("coordinate is zero")
)

// GeoPoint is a WGS84 latitude/longitude pair in degrees.
//
// A constructed GeoPoint always satisfies lat ∈ [-90,90], lng ∈ [-180,180],
// is finite and has no zero coordinate.
type GeoPoint struct { //nolint:recvcheck //using for validation
	lat   float64
	lng   float64
	guard guard.ConstructorGuard
}

// NewGeoPoint validates and builds a GeoPoint. All violations are reported
// together.
//
// Example:
//
//	kitchen, err := kernel.NewGeoPoint(55.7558, 37.6173)
//	if err != nil {
//	    return err
//	}
func NewGeoPoint(lat, lng float64) (GeoPoint, error) {
	p := GeoPoint{guard: guard.NewConstructorGuard()}

	if err := errors.Join(p.setLat(lat), p.setLng(lng)); err != nil {
		return GeoPoint{}, err
	}

	return p, nil
}

// MustNewGeoPoint is NewGeoPoint for compile-time constants; it panics on
// invalid input.
func MustNewGeoPoint(lat, lng float64) GeoPoint {
	p, err := NewGeoPoint(lat, lng)
	if err != nil {
		panic(err)
	}
	return p
}

func (p GeoPoint) Validate() error {
	return p.guard.Validate(ErrGeoPointIsNotConstructed)
}

func (p GeoPoint) Lat() float64 {
	return p.lat
}

func (p GeoPoint) Lng() float64 {
	return p.lng
}

func (p GeoPoint) String() string {
	return fmt.Sprintf("GeoPoint(%.6f,%.6f)", p.lat, p.lng)
}

// IsEqual reports whether both points carry identical coordinates.
func (p GeoPoint) IsEqual(other GeoPoint) bool {
	return p.lat == other.lat && p.lng == other.lng
}

// DistanceTo is DistanceKm(p, other).
func (p GeoPoint) DistanceTo(other GeoPoint) float64 {
	return DistanceKm(p, other)
}

// DistanceKm returns the great-circle distance between origin and point in
// kilometres using the haversine formula. It does not validate its inputs;
// callers pass constructed points.
func DistanceKm(origin, point GeoPoint) float64 {
	const degToRad = math.Pi / 180

	dLat := (point.lat - origin.lat) * degToRad
	dLng := (point.lng - origin.lng) * degToRad
	lat1 := origin.lat * degToRad
	lat2 := point.lat * degToRad

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusKm * c
}

func (p *GeoPoint) setLat(lat float64) error {
	if err := checkCoordinate("lat", lat, LatitudeMin, LatitudeMax); err != nil {
		return err
	}
	p.lat = lat
	return nil
}

func (p *GeoPoint) setLng(lng float64) error {
	if err := checkCoordinate("lng", lng, LongitudeMin, LongitudeMax); err != nil {
		return err
	}
	p.lng = lng
	return nil
}

func checkCoordinate(name string, v, minValue, maxValue float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < minValue || v > maxValue {
		return errs.NewValueIsOutOfRangeError(name, v, minValue, maxValue)
	}
	if v == 0 {
		return fmt.Errorf("%w: %s", ErrGeoPointIsZero, name)
	}
	return nil
}
