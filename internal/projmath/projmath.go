// Package projmath holds the series expansions and iterative solvers shared
// by the projection formulas. All angles are radians and all lengths are on
// an ellipsoid with unit semi-major axis.
package projmath

import "math"

const (
	HalfPi = math.Pi / 2
	FortPi = math.Pi / 4
	TwoPi  = math.Pi * 2

	// Eps10 is the near-singularity threshold used by the projection formulas.
	Eps10 = 1e-10

	DegToRad = math.Pi / 180
	RadToDeg = 180 / math.Pi

	// sPi is slightly greater than math.Pi so that longitudes which drifted a
	// few ULP past the antimeridian keep their sign.
	sPi = 3.14159265359

	phi2Tol   = 1e-10
	phi2Iter  = 15
	mlfnEps   = 1e-11
	mlfnIter  = 10
	qsfnEpsln = 1e-7
)

// AdjLon wraps a longitude into the range [-π, π].
func AdjLon(lon float64) float64 {
	if math.Abs(lon) <= sPi {
		return lon
	}
	lon += math.Pi
	lon -= TwoPi * math.Floor(lon/TwoPi)
	return lon - math.Pi
}

// Aasin is math.Asin with its argument clamped to [-1, 1].
func Aasin(v float64) float64 {
	if v >= 1 {
		return HalfPi
	}
	if v <= -1 {
		return -HalfPi
	}
	return math.Asin(v)
}

// Msfn is the radius of the parallel at a latitude, divided by the
// semi-major axis.
func Msfn(sinphi, cosphi, es float64) float64 {
	return cosphi / math.Sqrt(1-es*sinphi*sinphi)
}

// Tsfn is the conformal latitude function t used by the conformal
// projections (Snyder 7-10).
func Tsfn(phi, sinphi, e float64) float64 {
	sinphi *= e
	return math.Tan(0.5*(HalfPi-phi)) / math.Pow((1-sinphi)/(1+sinphi), 0.5*e)
}

// Phi2 recovers the geodetic latitude from the conformal function t.
// ok is false when the iteration does not converge.
func Phi2(ts, e float64) (phi float64, ok bool) {
	eccnth := 0.5 * e
	phi = HalfPi - 2*math.Atan(ts)
	for i := 0; i < phi2Iter; i++ {
		con := e * math.Sin(phi)
		dphi := HalfPi - 2*math.Atan(ts*math.Pow((1-con)/(1+con), eccnth)) - phi
		phi += dphi
		if math.Abs(dphi) <= phi2Tol {
			return phi, true
		}
	}
	return phi, false
}

// Qsfn is the authalic q function (Snyder 3-12).
func Qsfn(sinphi, e, oneEs float64) float64 {
	if e < qsfnEpsln {
		return sinphi + sinphi
	}
	con := e * sinphi
	return oneEs * (sinphi/(1-con*con) - (0.5/e)*math.Log((1-con)/(1+con)))
}

// Srat is the ratio ((1-x)/(1+x))^exp used by the Gaussian sphere mapping.
func Srat(esinp, exp float64) float64 {
	return math.Pow((1-esinp)/(1+esinp), exp)
}

// Meridian holds the series coefficients for the meridian arc length.
type Meridian [5]float64

// NewMeridian computes the meridian distance coefficients for an ellipsoid
// with squared eccentricity es.
func NewMeridian(es float64) Meridian {
	const (
		c00 = 1.
		c02 = .25
		c04 = .046875
		c06 = .01953125
		c08 = .01068115234375
		c22 = .75
		c44 = .46875
		c46 = .01302083333333333333
		c48 = .00712890625
		c66 = .36458333333333333333
		c68 = .00569661458333333333
		c88 = .3076171875
	)
	var en Meridian
	en[0] = c00 - es*(c02+es*(c04+es*(c06+es*c08)))
	en[1] = es * (c22 - es*(c04+es*(c06+es*c08)))
	t := es * es
	en[2] = t * (c44 - es*(c46+es*c48))
	t *= es
	en[3] = t * (c66 - es*c68)
	en[4] = t * es * c88
	return en
}

// Length returns the meridian arc length from the equator to phi.
func (en *Meridian) Length(phi, sphi, cphi float64) float64 {
	cphi *= sphi
	sphi *= sphi
	return en[0]*phi - cphi*(en[1]+sphi*(en[2]+sphi*(en[3]+sphi*en[4])))
}

// Latitude inverts Length by Newton iteration.
func (en *Meridian) Latitude(arg, es float64) (phi float64, ok bool) {
	k := 1 / (1 - es)
	phi = arg
	for i := 0; i < mlfnIter; i++ {
		s := math.Sin(phi)
		t := 1 - es*s*s
		t = (en.Length(phi, s, math.Cos(phi)) - arg) * (t * math.Sqrt(t)) * k
		phi -= t
		if math.Abs(t) < mlfnEps {
			return phi, true
		}
	}
	return phi, false
}

// Authalic holds the series coefficients converting authalic latitude back
// to geodetic latitude.
type Authalic [3]float64

// NewAuthalic computes the authalic latitude coefficients for es.
func NewAuthalic(es float64) Authalic {
	const (
		p00 = .33333333333333333333
		p01 = .17222222222222222222
		p02 = .10257936507936507936
		p10 = .06388888888888888888
		p11 = .06640211640211640211
		p20 = .01641501294219154443
	)
	var apa Authalic
	apa[0] = es * p00
	t := es * es
	apa[0] += t * p01
	apa[1] = t * p10
	t *= es
	apa[0] += t * p02
	apa[1] += t * p11
	apa[2] = t * p20
	return apa
}

// Latitude returns the geodetic latitude for authalic latitude beta.
func (apa *Authalic) Latitude(beta float64) float64 {
	t := beta + beta
	return beta + apa[0]*math.Sin(t) + apa[1]*math.Sin(t+t) + apa[2]*math.Sin(t+t+t)
}
