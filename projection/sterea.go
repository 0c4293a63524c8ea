package projection

import (
	"math"

	"github.com/pkg/errors"

	"github.com/pspoerri/geotransform/internal/projmath"
)

const (
	gaussIter = 20
	gaussTol  = 1e-14
)

// gaussSphere maps the ellipsoid conformally onto a sphere of radius rc
// tangent at the latitude of origin.
type gaussSphere struct {
	c      float64
	k      float64
	e      float64
	ratexp float64
}

func newGaussSphere(e, phi0 float64) (g gaussSphere, chi, rc float64) {
	es := e * e
	sphi, cphi := math.Sincos(phi0)
	cphi *= cphi
	rc = math.Sqrt(1-es) / (1 - es*sphi*sphi)
	g.e = e
	g.c = math.Sqrt(1 + es*cphi*cphi/(1-es))
	chi = math.Asin(sphi / g.c)
	g.ratexp = 0.5 * g.c * e
	g.k = math.Tan(0.5*chi+projmath.FortPi) /
		(math.Pow(math.Tan(0.5*phi0+projmath.FortPi), g.c) * projmath.Srat(e*sphi, g.ratexp))
	return g, chi, rc
}

func (g *gaussSphere) forward(lam, phi float64) (float64, float64) {
	phi = 2*math.Atan(g.k*math.Pow(math.Tan(0.5*phi+projmath.FortPi), g.c)*
		projmath.Srat(g.e*math.Sin(phi), g.ratexp)) - projmath.HalfPi
	return g.c * lam, phi
}

func (g *gaussSphere) inverse(lam, phi float64) (float64, float64, bool) {
	num := math.Pow(math.Tan(0.5*phi+projmath.FortPi)/g.k, 1/g.c)
	for i := 0; i < gaussIter; i++ {
		next := 2*math.Atan(num*projmath.Srat(g.e*math.Sin(phi), -0.5*g.e)) - projmath.HalfPi
		if math.Abs(next-phi) < gaussTol {
			return lam / g.c, next, true
		}
		phi = next
	}
	return 0, 0, false
}

// ObliqueStereographic is the double stereographic projection: the
// ellipsoid is first mapped onto a conformal sphere, which is then projected
// stereographically. The Dutch RD New grid uses it.
type ObliqueStereographic struct {
	base
	k0           float64
	gauss        gaussSphere
	phic0        float64
	sinc0, cosc0 float64
	r2           float64
}

func NewObliqueStereographic(p Params) (*ObliqueStereographic, error) {
	b, err := newBase(p)
	if err != nil {
		return nil, err
	}
	g, chi, rc := newGaussSphere(b.e, p.Lat0)
	if math.IsNaN(chi) || math.IsNaN(g.k) {
		return nil, errors.Wrapf(ErrInvalidParams, "sterea: latitude of origin %g", p.Lat0)
	}
	s := &ObliqueStereographic{base: b, k0: p.K0, gauss: g, phic0: chi, r2: 2 * rc}
	s.sinc0, s.cosc0 = math.Sincos(chi)
	return s, nil
}

func (*ObliqueStereographic) Name() string { return "sterea" }

func (s *ObliqueStereographic) Forward(lam, phi float64) (x, y float64, err error) {
	lam, phi = s.gauss.forward(lam, phi)
	sinc, cosc := math.Sincos(phi)
	sinl, cosl := math.Sincos(lam)
	den := 1 + s.sinc0*sinc + s.cosc0*cosc*cosl
	if den <= projmath.Eps10 {
		return 0, 0, errors.Wrap(ErrSingular, "sterea: antipode of the centre")
	}
	k := s.k0 * s.r2 / den
	return k * cosc * sinl, k * (s.cosc0*sinc - s.sinc0*cosc*cosl), nil
}

func (s *ObliqueStereographic) Inverse(x, y float64) (lam, phi float64, err error) {
	x /= s.k0
	y /= s.k0
	phi = s.phic0
	if rho := math.Hypot(x, y); rho != 0 {
		c := 2 * math.Atan2(rho, s.r2)
		sinc, cosc := math.Sincos(c)
		phi = projmath.Aasin(cosc*s.sinc0 + y*sinc*s.cosc0/rho)
		lam = math.Atan2(x*sinc, rho*s.cosc0*cosc-y*s.sinc0*sinc)
	}
	lam, phi, ok := s.gauss.inverse(lam, phi)
	if !ok {
		return 0, 0, errors.Wrap(ErrNoConvergence, "sterea")
	}
	return lam, phi, nil
}
