package vincenty

// WGS84 ellipsoid parameters.
// https://en.wikipedia.org/wiki/World_Geodetic_System
const (
	SemiMajorAxis = 6378137.0
	Flattening    = 1 / 298.257223563
	SemiMinorAxis = (1 - Flattening) * SemiMajorAxis
)

// WGS84 conforming ellipsoid.
//
// The package-level Inverse and Direct functions do not read this variable,
// they use their own copy of the same parameters.
var WGS84 = NewEllipsoid(SemiMajorAxis, Flattening)

// Globe is a pre-initialized spherical representing Earth as a
// terrestrial globe.
var Globe = NewSpherical(SemiMajorAxis)

var wgs84 = NewEllipsoid(SemiMajorAxis, Flattening)

// Ellipsoid is an immutable reference surface for geodesic operations.
// The zero value is not usable, use NewEllipsoid or NewSpherical.
type Ellipsoid struct {
	a         float64 // semi-major axis
	f         float64 // flattening
	b         float64 // semi-minor axis
	ep2       float64 // (a²-b²)/b²
	spherical bool
}

// NewEllipsoid initializes a new geodesic ellipsoid object.
//
// Param radius is the equatorial radius (meters).
// Param flattening is the flattening factor of the ellipsoid.
//
// The WGS84 package-level variable is a pre-initialized ellipsoid
// representing Earth.
func NewEllipsoid(radius, flattening float64) Ellipsoid {
	b := (1 - flattening) * radius
	return Ellipsoid{
		a:   radius,
		f:   flattening,
		b:   b,
		ep2: (radius*radius - b*b) / (b * b),
	}
}

// NewSpherical initializes a new geodesic ellipsoid object that uses
// simplified operations on a sphere.
//
// Inverse and Direct do not iterate on a sphere, they use closed form
// great-circle calculations such as the Haversine formula.
//
// Param radius is the sphere radius (meters).
//
// The Globe package-level variable is a pre-initialized spherical
// representing Earth as a terrestrial globe.
func NewSpherical(radius float64) Ellipsoid {
	e := NewEllipsoid(radius, 0)
	e.spherical = true
	return e
}

// Radius of the Ellipsoid
func (e Ellipsoid) Radius() float64 {
	return e.a
}

// SemiMinorAxis of the Ellipsoid, (1-f)·a.
func (e Ellipsoid) SemiMinorAxis() float64 {
	return e.b
}

// Flattening of the Ellipsoid
func (e Ellipsoid) Flattening() float64 {
	return e.f
}

// Spherical returns true if the ellipsoid was initialized using NewSpherical.
func (e Ellipsoid) Spherical() bool {
	return e.spherical
}

// Inverse solves the inverse geodesic problem.
//
// Param p1 is the start point (radians).
// Param p2 is the end point (radians).
// Param params bounds the λ iteration.
//
// Point latitudes must be in [-π/2, π/2] and longitudes in [-π, π].
// The bearings returned are in the range [0, 2π). FinalBearing is the
// forward azimuth at p2, the direction of travel on arrival.
//
// Coincident points yield a zero distance and zero bearings. When the
// iteration does not converge within params.MaxIterations (possible for
// nearly antipodal points) the last estimate is returned with Converged
// set to false.
func (e Ellipsoid) Inverse(p1, p2 Point, params Params) (InverseResult, error) {
	if err := validatePoint(p1); err != nil {
		return InverseResult{}, err
	}
	if err := validatePoint(p2); err != nil {
		return InverseResult{}, err
	}
	if err := params.validate(); err != nil {
		return InverseResult{}, err
	}
	if e.spherical {
		return sphericalInverse(e.a, p1, p2), nil
	}
	return vincentyInverse(e, p1, p2, params), nil
}

// Direct solves the direct geodesic problem.
//
// Param p1 is the start point (radians).
// Param bearing is the initial bearing at p1 (radians clockwise from north).
// Param distance is the distance to travel along the geodesic (meters).
// Param params bounds the σ iteration.
//
// The destination longitude is in the range [-π, π] and the final bearing
// in [0, 2π).
func (e Ellipsoid) Direct(p1 Point, bearing, distance float64, params Params) (DirectResult, error) {
	if err := validatePoint(p1); err != nil {
		return DirectResult{}, err
	}
	if err := validateBearing(bearing); err != nil {
		return DirectResult{}, err
	}
	if err := validateDistance(distance); err != nil {
		return DirectResult{}, err
	}
	if err := params.validate(); err != nil {
		return DirectResult{}, err
	}
	if e.spherical {
		return sphericalDirect(e.a, p1, bearing, distance), nil
	}
	return vincentyDirect(e, p1, bearing, distance, params), nil
}

// Inverse solves the inverse problem on the WGS84 ellipsoid.
// See Ellipsoid.Inverse.
func Inverse(p1, p2 Point, params Params) (InverseResult, error) {
	return wgs84.Inverse(p1, p2, params)
}

// Direct solves the direct problem on the WGS84 ellipsoid.
// See Ellipsoid.Direct.
func Direct(p1 Point, bearing, distance float64, params Params) (DirectResult, error) {
	return wgs84.Direct(p1, bearing, distance, params)
}
