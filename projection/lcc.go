package projection

import (
	"math"

	"github.com/pkg/errors"

	"github.com/pspoerri/geotransform/internal/projmath"
)

// LambertConformalConic is the Lambert conformal conic projection with one
// or two standard parallels. A NaN Lat2 makes the cone tangent at Lat1.
type LambertConformalConic struct {
	base
	k0     float64
	ellips bool
	n      float64
	c      float64
	rho0   float64
}

func NewLambertConformalConic(p Params) (*LambertConformalConic, error) {
	b, err := newBase(p)
	if err != nil {
		return nil, err
	}
	phi1, phi2 := p.Lat1, p.Lat2
	if math.IsNaN(phi2) {
		phi2 = phi1
	}
	if math.Abs(phi1+phi2) < projmath.Eps10 {
		return nil, errors.Wrap(ErrInvalidParams, "lcc: standard parallels symmetric about the equator")
	}

	l := &LambertConformalConic{base: b, k0: p.K0, ellips: b.es != 0}
	sinphi, cosphi := math.Sincos(phi1)
	l.n = sinphi
	secant := math.Abs(phi1-phi2) >= projmath.Eps10
	atPole := math.Abs(math.Abs(p.Lat0)-projmath.HalfPi) < projmath.Eps10

	if l.ellips {
		m1 := projmath.Msfn(sinphi, cosphi, b.es)
		ml1 := projmath.Tsfn(phi1, sinphi, b.e)
		if secant {
			s2, c2 := math.Sincos(phi2)
			l.n = math.Log(m1/projmath.Msfn(s2, c2, b.es)) / math.Log(ml1/projmath.Tsfn(phi2, s2, b.e))
		}
		l.c = m1 * math.Pow(ml1, -l.n) / l.n
		if !atPole {
			l.rho0 = l.c * math.Pow(projmath.Tsfn(p.Lat0, math.Sin(p.Lat0), b.e), l.n)
		}
	} else {
		if secant {
			l.n = math.Log(cosphi/math.Cos(phi2)) /
				math.Log(math.Tan(projmath.FortPi+0.5*phi2)/math.Tan(projmath.FortPi+0.5*phi1))
		}
		l.c = cosphi * math.Pow(math.Tan(projmath.FortPi+0.5*phi1), l.n) / l.n
		if !atPole {
			l.rho0 = l.c * math.Pow(math.Tan(projmath.FortPi+0.5*p.Lat0), -l.n)
		}
	}
	if math.IsNaN(l.n) || math.IsInf(l.c, 0) {
		return nil, errors.Wrap(ErrInvalidParams, "lcc: degenerate standard parallels")
	}
	return l, nil
}

func (*LambertConformalConic) Name() string { return "lcc" }

func (l *LambertConformalConic) Forward(lam, phi float64) (x, y float64, err error) {
	var rho float64
	switch {
	case math.Abs(math.Abs(phi)-projmath.HalfPi) < projmath.Eps10:
		if phi*l.n <= 0 {
			return 0, 0, errors.Wrap(ErrSingular, "lcc: pole opposite the cone apex")
		}
	case l.ellips:
		rho = l.c * math.Pow(projmath.Tsfn(phi, math.Sin(phi), l.e), l.n)
	default:
		rho = l.c * math.Pow(math.Tan(projmath.FortPi+0.5*phi), -l.n)
	}
	lam *= l.n
	return l.k0 * rho * math.Sin(lam), l.k0 * (l.rho0 - rho*math.Cos(lam)), nil
}

func (l *LambertConformalConic) Inverse(x, y float64) (lam, phi float64, err error) {
	x /= l.k0
	y = l.rho0 - y/l.k0
	rho := math.Hypot(x, y)
	if rho == 0 {
		if l.n > 0 {
			return 0, projmath.HalfPi, nil
		}
		return 0, -projmath.HalfPi, nil
	}
	if l.n < 0 {
		rho, x, y = -rho, -x, -y
	}
	if l.ellips {
		var ok bool
		if phi, ok = projmath.Phi2(math.Pow(rho/l.c, 1/l.n), l.e); !ok {
			return 0, 0, errors.Wrap(ErrNoConvergence, "lcc")
		}
	} else {
		phi = 2*math.Atan(math.Pow(l.c/rho, 1/l.n)) - projmath.HalfPi
	}
	return math.Atan2(x, y) / l.n, phi, nil
}
