package vincenty

import (
	"math"

	"github.com/pkg/errors"
)

// ErrInvalidArgument is wrapped by every error returned for inputs that are
// rejected before any computation starts.
var ErrInvalidArgument = errors.New("invalid argument")

// Point is a geodetic position in radians.
type Point struct {
	Lat float64 // [-π/2, π/2]
	Lon float64 // [-π, π]
}

// PointFromDegrees returns the point at lat, lon given in degrees.
func PointFromDegrees(lat, lon float64) Point {
	return Point{Lat: Radians(lat), Lon: Radians(lon)}
}

// Degrees returns the latitude and longitude of p in degrees.
func (p Point) Degrees() (lat, lon float64) {
	return Degrees(p.Lat), Degrees(p.Lon)
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return deg * radians
}

// Degrees converts radians to degrees.
func Degrees(rad float64) float64 {
	return rad * degrees
}

// Params bounds the iterative step of the Vincenty solvers.
type Params struct {
	// MaxIterations caps the number of iterations, must be at least 1.
	MaxIterations int
	// Tolerance is the largest change between successive estimates
	// (radians) that counts as converged, must be positive.
	Tolerance float64
}

// InverseResult is the solution of the inverse problem.
type InverseResult struct {
	Distance       float64 // meters
	InitialBearing float64 // radians, [0, 2π)
	FinalBearing   float64 // radians, [0, 2π)
	Iterations     int
	Converged      bool
}

// DirectResult is the solution of the direct problem.
type DirectResult struct {
	Destination  Point
	FinalBearing float64 // radians, [0, 2π)
	Iterations   int
	Converged    bool
}

func (p Params) validate() error {
	if p.MaxIterations < 1 {
		return errors.Wrapf(ErrInvalidArgument, "max iterations %d must be at least 1", p.MaxIterations)
	}
	if !(p.Tolerance > 0) || math.IsInf(p.Tolerance, 0) {
		return errors.Wrapf(ErrInvalidArgument, "tolerance %g must be positive and finite", p.Tolerance)
	}
	return nil
}

func validatePoint(p Point) error {
	if !(p.Lat >= -math.Pi/2 && p.Lat <= math.Pi/2) {
		return errors.Wrapf(ErrInvalidArgument, "latitude %g outside [-π/2, π/2]", p.Lat)
	}
	if !(p.Lon >= -math.Pi && p.Lon <= math.Pi) {
		return errors.Wrapf(ErrInvalidArgument, "longitude %g outside [-π, π]", p.Lon)
	}
	return nil
}

func validateBearing(bearing float64) error {
	if math.IsNaN(bearing) || math.IsInf(bearing, 0) {
		return errors.Wrapf(ErrInvalidArgument, "bearing %g is not finite", bearing)
	}
	return nil
}

func validateDistance(distance float64) error {
	if !(distance >= 0) || math.IsInf(distance, 0) {
		return errors.Wrapf(ErrInvalidArgument, "distance %g must be non-negative and finite", distance)
	}
	return nil
}
