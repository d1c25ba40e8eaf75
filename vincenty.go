// Vincenty's inverse and direct formulae on an oblate ellipsoid.
//
// T. Vincenty, "Direct and Inverse Solutions of Geodesics on the Ellipsoid
// with application of nested equations", Survey Review, vol XXIII no 176,
// 1975. www.ngs.noaa.gov/PUBS_LIB/inverse.pdf

package vincenty

import "math"

func vincentyInverse(e Ellipsoid, p1, p2 Point, params Params) InverseResult {
	f := e.f
	sinU1, cosU1 := reduced(f, p1.Lat)
	sinU2, cosU2 := reduced(f, p2.Lat)
	L := wrapPi(p2.Lon - p1.Lon)

	var sinλ, cosλ float64
	var sinσ, cosσ, σ float64
	var sinα, cos2α, cos2σm float64

	var res InverseResult
	λ := L
	for res.Iterations < params.MaxIterations {
		res.Iterations++
		sinλ, cosλ = math.Sincos(λ)
		x := cosU2 * sinλ
		y := cosU1*sinU2 - sinU1*cosU2*cosλ
		sinσ = math.Sqrt(x*x + y*y)
		cosσ = sinU1*sinU2 + cosU1*cosU2*cosλ
		if sinσ == 0 && cosσ > 0 {
			// coincident points
			res.Converged = true
			return res
		}
		σ = math.Atan2(sinσ, cosσ)
		if sinσ == 0 {
			// exactly antipodal along a meridian
			sinα = 0
		} else {
			sinα = cosU1 * cosU2 * sinλ / sinσ
		}
		cos2α = 1 - sinα*sinα
		if cos2α != 0 {
			cos2σm = cosσ - 2*sinU1*sinU2/cos2α
		} else {
			// equatorial line
			cos2σm = 0
		}
		prev := λ
		λ = L + lambdaCorrection(f, sinα, cos2α, σ, sinσ, cosσ, cos2σm)
		if math.Abs(λ-prev) <= params.Tolerance {
			res.Converged = true
			break
		}
	}
	// the bearings use the λ the final σ was computed from
	a, b := series(e.ep2, cos2α)
	Δσ := deltaSigma(b, sinσ, cosσ, cos2σm)
	res.Distance = e.b * a * (σ - Δσ)
	res.InitialBearing = wrap2Pi(math.Atan2(cosU2*sinλ, cosU1*sinU2-sinU1*cosU2*cosλ))
	res.FinalBearing = wrap2Pi(math.Atan2(cosU1*sinλ, -sinU1*cosU2+cosU1*sinU2*cosλ))
	return res
}

func vincentyDirect(e Ellipsoid, p1 Point, bearing, distance float64, params Params) DirectResult {
	f := e.f
	sinα1, cosα1 := math.Sincos(bearing)
	sinU1, cosU1 := reduced(f, p1.Lat)
	tanU1 := sinU1 / cosU1
	σ1 := math.Atan2(tanU1, cosα1)
	sinα := cosU1 * sinα1
	cos2α := 1 - sinα*sinα
	a, b := series(e.ep2, cos2α)

	var res DirectResult
	var sinσ, cosσ, cos2σm float64
	s := distance / (e.b * a)
	σ := s
	for res.Iterations < params.MaxIterations {
		res.Iterations++
		cos2σm = math.Cos(2*σ1 + σ)
		sinσ, cosσ = math.Sincos(σ)
		prev := σ
		σ = s + deltaSigma(b, sinσ, cosσ, cos2σm)
		if math.Abs(σ-prev) <= params.Tolerance {
			res.Converged = true
			break
		}
	}
	cos2σm = math.Cos(2*σ1 + σ)
	sinσ, cosσ = math.Sincos(σ)

	x := sinU1*sinσ - cosU1*cosσ*cosα1
	lat2 := math.Atan2(sinU1*cosσ+cosU1*sinσ*cosα1, (1-f)*math.Sqrt(sinα*sinα+x*x))
	λ := math.Atan2(sinσ*sinα1, cosU1*cosσ-sinU1*sinσ*cosα1)
	L := λ - lambdaCorrection(f, sinα, cos2α, σ, sinσ, cosσ, cos2σm)

	res.Destination = Point{Lat: lat2, Lon: wrapPi(p1.Lon + L)}
	res.FinalBearing = wrap2Pi(math.Atan2(sinα, -x))
	return res
}
