// Great-circle routines for the spherical model.
//
// Copyright (c) Joshua Baker (2021) and licensed under the MIT License.
//
/* - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - */
/* Latitude/longitude spherical geodesy tools   (c) Chris Veness 2002-2019 */
/*                                                             MIT Licence */
/* www.movable-type.co.uk/scripts/latlong.html                             */
/* www.movable-type.co.uk/scripts/geodesy-library.html#latlon-spherical    */
/* - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - */

package vincenty

import "math"

func sphericalInverse(radius float64, p1, p2 Point) InverseResult {
	if p1 == p2 {
		return InverseResult{Converged: true}
	}
	return InverseResult{
		Distance:       haversine(radius, p1, p2),
		InitialBearing: bearing(p1, p2),
		FinalBearing:   wrap2Pi(bearing(p2, p1) + math.Pi),
		Converged:      true,
	}
}

func sphericalDirect(radius float64, p1 Point, brng, meters float64) DirectResult {
	p2 := destination(radius, p1, brng, meters)
	var final float64
	if meters == 0 {
		final = wrap2Pi(brng)
	} else {
		final = wrap2Pi(bearing(p2, p1) + math.Pi)
	}
	return DirectResult{
		Destination:  p2,
		FinalBearing: final,
		Converged:    true,
	}
}

func destination(radius float64, p1 Point, brng, meters float64) Point {
	// sinφ2 = sinφ1⋅cosδ + cosφ1⋅sinδ⋅cosθ
	// tanΔλ = sinθ⋅sinδ⋅cosφ1 / cosδ−sinφ1⋅sinφ2
	// see mathforum.org/library/drmath/view/52049.html for derivation
	δ := meters / radius
	θ := brng
	φ1 := p1.Lat
	λ1 := p1.Lon
	sinδ, cosδ := math.Sincos(δ)
	sinφ1, cosφ1 := math.Sincos(φ1)
	sinφ2 := sinφ1*cosδ + cosφ1*sinδ*math.Cos(θ)
	φ2 := math.Asin(math.Max(-1, math.Min(1, sinφ2)))
	λ2 := λ1 + math.Atan2(math.Sin(θ)*sinδ*cosφ1, cosδ-sinφ1*sinφ2)
	return Point{Lat: φ2, Lon: wrapPi(λ2)}
}

func haversine(radius float64, p1, p2 Point) float64 {
	Δφ := p2.Lat - p1.Lat
	Δλ := p2.Lon - p1.Lon
	sΔφ2 := math.Sin(Δφ / 2)
	sΔλ2 := math.Sin(Δλ / 2)
	haver := sΔφ2*sΔφ2 + math.Cos(p1.Lat)*math.Cos(p2.Lat)*sΔλ2*sΔλ2
	return radius * 2 * math.Asin(math.Sqrt(math.Min(1, haver)))
}

// bearing is the initial great-circle bearing from p1 to p2 in [0, 2π).
func bearing(p1, p2 Point) float64 {
	// tanθ = sinΔλ⋅cosφ2 / cosφ1⋅sinφ2 − sinφ1⋅cosφ2⋅cosΔλ
	// see mathforum.org/library/drmath/view/55417.html for derivation
	Δλ := p2.Lon - p1.Lon
	y := math.Sin(Δλ) * math.Cos(p2.Lat)
	x := math.Cos(p1.Lat)*math.Sin(p2.Lat) - math.Sin(p1.Lat)*math.Cos(p2.Lat)*math.Cos(Δλ)
	return wrap2Pi(math.Atan2(y, x))
}
