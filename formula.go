package vincenty

import "math"

const radians = math.Pi / 180
const degrees = 180 / math.Pi

// reduced returns sin and cos of the reduced latitude U of lat,
// tanU = (1-f)·tan(lat).
func reduced(f, lat float64) (sinU, cosU float64) {
	tanU := (1 - f) * math.Tan(lat)
	cosU = 1 / math.Sqrt(1+tanU*tanU)
	sinU = tanU * cosU
	return sinU, cosU
}

// lambdaC is the C coefficient of the λ/L correction.
func lambdaC(f, cos2α float64) float64 {
	return f / 16 * cos2α * (4 + f*(4-3*cos2α))
}

// lambdaCorrection returns (1-C)·f·sinα·(σ + C·sinσ·(cos2σm + C·cosσ·(-1+2cos²2σm))),
// the difference between longitude on the auxiliary sphere and on the
// ellipsoid.
func lambdaCorrection(f, sinα, cos2α, σ, sinσ, cosσ, cos2σm float64) float64 {
	c := lambdaC(f, cos2α)
	return (1 - c) * f * sinα *
		(σ + c*sinσ*(cos2σm+c*cosσ*(-1+2*cos2σm*cos2σm)))
}

// series returns Vincenty's A and B coefficients for u² = cos²α·ep2.
func series(ep2, cos2α float64) (a, b float64) {
	u2 := cos2α * ep2
	a = 1 + u2/16384*(4096+u2*(-768+u2*(320-175*u2)))
	b = u2 / 1024 * (256 + u2*(-128+u2*(74-47*u2)))
	return a, b
}

func deltaSigma(b, sinσ, cosσ, cos2σm float64) float64 {
	c2 := cos2σm * cos2σm
	return b * sinσ * (cos2σm + b/4*(cosσ*(-1+2*c2)-
		b/6*cos2σm*(-3+4*sinσ*sinσ)*(-3+4*c2)))
}

// wrap2Pi normalizes an angle to [0, 2π).
func wrap2Pi(rad float64) float64 {
	if rad >= 0 && rad < 2*math.Pi {
		return rad
	}
	rad = math.Mod(rad, 2*math.Pi)
	if rad < 0 {
		rad += 2 * math.Pi
	}
	if rad >= 2*math.Pi {
		// -tiny + 2π rounds up to 2π
		rad = 0
	}
	return rad
}

// wrapPi normalizes an angle to [-π, π].
func wrapPi(rad float64) float64 {
	if rad >= -math.Pi && rad <= math.Pi {
		return rad
	}
	rad = math.Mod(rad+math.Pi, 2*math.Pi)
	if rad < 0 {
		rad += 2 * math.Pi
	}
	return rad - math.Pi
}
