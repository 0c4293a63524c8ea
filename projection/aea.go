package projection

import (
	"math"

	"github.com/pkg/errors"

	"github.com/pspoerri/geotransform/internal/projmath"
)

const (
	aeaIter = 15
	aeaTol  = 1e-10
	aeaTol7 = 1e-7
)

// AlbersEqualArea is the Albers conic equal-area projection with one or two
// standard parallels. A NaN Lat2 makes the cone tangent at Lat1.
type AlbersEqualArea struct {
	base
	ellips bool
	n, n2  float64
	c      float64
	dd     float64
	rho0   float64
	ec     float64
}

func NewAlbersEqualArea(p Params) (*AlbersEqualArea, error) {
	b, err := newBase(p)
	if err != nil {
		return nil, err
	}
	phi1, phi2 := p.Lat1, p.Lat2
	if math.IsNaN(phi2) {
		phi2 = phi1
	}
	if math.Abs(phi1+phi2) < projmath.Eps10 {
		return nil, errors.Wrap(ErrInvalidParams, "aea: standard parallels symmetric about the equator")
	}

	a := &AlbersEqualArea{base: b, ellips: b.es > 0}
	sinphi, cosphi := math.Sincos(phi1)
	a.n = sinphi
	secant := math.Abs(phi1-phi2) >= projmath.Eps10

	if a.ellips {
		m1 := projmath.Msfn(sinphi, cosphi, b.es)
		ml1 := projmath.Qsfn(sinphi, b.e, b.oneEs)
		if secant {
			s2, c2 := math.Sincos(phi2)
			m2 := projmath.Msfn(s2, c2, b.es)
			ml2 := projmath.Qsfn(s2, b.e, b.oneEs)
			if ml2 == ml1 {
				return nil, errors.Wrap(ErrInvalidParams, "aea: degenerate standard parallels")
			}
			a.n = (m1*m1 - m2*m2) / (ml2 - ml1)
		}
		a.ec = 1 - 0.5*b.oneEs*math.Log((1-b.e)/(1+b.e))/b.e
		a.c = m1*m1 + a.n*ml1
		a.dd = 1 / a.n
		a.rho0 = a.dd * math.Sqrt(a.c-a.n*projmath.Qsfn(math.Sin(p.Lat0), b.e, b.oneEs))
	} else {
		if secant {
			a.n = 0.5 * (a.n + math.Sin(phi2))
		}
		a.n2 = a.n + a.n
		a.c = cosphi*cosphi + a.n2*sinphi
		a.dd = 1 / a.n
		a.rho0 = a.dd * math.Sqrt(a.c-a.n2*math.Sin(p.Lat0))
	}
	return a, nil
}

func (*AlbersEqualArea) Name() string { return "aea" }

func (a *AlbersEqualArea) Forward(lam, phi float64) (x, y float64, err error) {
	var rho float64
	if a.ellips {
		rho = a.c - a.n*projmath.Qsfn(math.Sin(phi), a.e, a.oneEs)
	} else {
		rho = a.c - a.n2*math.Sin(phi)
	}
	if rho < 0 {
		return 0, 0, errors.Wrap(ErrOutOfDomain, "aea")
	}
	rho = a.dd * math.Sqrt(rho)
	lam *= a.n
	return rho * math.Sin(lam), a.rho0 - rho*math.Cos(lam), nil
}

func (a *AlbersEqualArea) Inverse(x, y float64) (lam, phi float64, err error) {
	y = a.rho0 - y
	rho := math.Hypot(x, y)
	if rho == 0 {
		if a.n > 0 {
			return 0, projmath.HalfPi, nil
		}
		return 0, -projmath.HalfPi, nil
	}
	if a.n < 0 {
		rho, x, y = -rho, -x, -y
	}
	phi = rho / a.dd
	if a.ellips {
		phi = (a.c - phi*phi) / a.n
		if math.Abs(a.ec-math.Abs(phi)) > aeaTol7 {
			var ok bool
			if phi, ok = a.authalicToGeodetic(phi); !ok {
				return 0, 0, errors.Wrap(ErrNoConvergence, "aea")
			}
		} else {
			phi = math.Copysign(projmath.HalfPi, phi)
		}
	} else {
		phi = (a.c - phi*phi) / a.n2
		if math.Abs(phi) <= 1 {
			phi = math.Asin(phi)
		} else {
			phi = math.Copysign(projmath.HalfPi, phi)
		}
	}
	return math.Atan2(x, y) / a.n, phi, nil
}

// authalicToGeodetic solves q(phi) = qs for phi by Newton iteration.
func (a *AlbersEqualArea) authalicToGeodetic(qs float64) (float64, bool) {
	phi := projmath.Aasin(0.5 * qs)
	if a.e < 1e-7 {
		return phi, true
	}
	for i := 0; i < aeaIter; i++ {
		sinpi, cospi := math.Sincos(phi)
		con := a.e * sinpi
		com := 1 - con*con
		dphi := 0.5 * com * com / cospi * (qs/a.oneEs - sinpi/com + 0.5/a.e*math.Log((1-con)/(1+con)))
		phi += dphi
		if math.Abs(dphi) <= aeaTol {
			return phi, true
		}
	}
	return phi, false
}
