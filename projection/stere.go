package projection

import (
	"math"

	"github.com/pkg/errors"

	"github.com/pspoerri/geotransform/internal/projmath"
)

const (
	stereTol   = 1e-8
	stereIter  = 8
	stereConv  = 1e-10
	polarSlack = 1e-8
)

// aspect is the orientation of an azimuthal projection, chosen from the
// latitude of its centre.
type aspect int

const (
	aspectNorthPole aspect = iota
	aspectSouthPole
	aspectEquatorial
	aspectOblique
)

func aspectOf(lat0 float64) aspect {
	t := math.Abs(lat0)
	switch {
	case math.Abs(t-projmath.HalfPi) < projmath.Eps10:
		if lat0 < 0 {
			return aspectSouthPole
		}
		return aspectNorthPole
	case t > projmath.Eps10:
		return aspectOblique
	default:
		return aspectEquatorial
	}
}

// Stereographic is the azimuthal conformal projection in polar, oblique or
// equatorial aspect. Polar aspects honour LatTS, defaulting to the pole.
type Stereographic struct {
	base
	aspect       aspect
	phits        float64
	akm1         float64
	sinX1, cosX1 float64
	lat0         float64
}

func NewStereographic(p Params) (*Stereographic, error) {
	b, err := newBase(p)
	if err != nil {
		return nil, err
	}
	s := &Stereographic{base: b, aspect: aspectOf(p.Lat0), phits: projmath.HalfPi, lat0: p.Lat0, cosX1: 1}
	if !math.IsNaN(p.LatTS) {
		s.phits = math.Abs(p.LatTS)
	}

	if b.es != 0 {
		switch s.aspect {
		case aspectNorthPole, aspectSouthPole:
			if math.Abs(s.phits-projmath.HalfPi) < projmath.Eps10 {
				s.akm1 = 2 * p.K0 / math.Sqrt(math.Pow(1+b.e, 1+b.e)*math.Pow(1-b.e, 1-b.e))
			} else {
				t := math.Sin(s.phits)
				s.akm1 = math.Cos(s.phits) / projmath.Tsfn(s.phits, t, b.e)
				t *= b.e
				s.akm1 /= math.Sqrt(1 - t*t)
			}
		case aspectEquatorial:
			s.akm1 = 2 * p.K0
		case aspectOblique:
			t := math.Sin(p.Lat0)
			x := 2*math.Atan(ssfn(p.Lat0, t, b.e)) - projmath.HalfPi
			t *= b.e
			s.akm1 = 2 * p.K0 * math.Cos(p.Lat0) / math.Sqrt(1-t*t)
			s.sinX1, s.cosX1 = math.Sincos(x)
		}
		return s, nil
	}

	switch s.aspect {
	case aspectOblique:
		s.sinX1, s.cosX1 = math.Sincos(p.Lat0)
		s.akm1 = 2 * p.K0
	case aspectEquatorial:
		s.akm1 = 2 * p.K0
	default:
		if math.Abs(s.phits-projmath.HalfPi) >= projmath.Eps10 {
			s.akm1 = math.Cos(s.phits) / math.Tan(projmath.FortPi-0.5*s.phits)
		} else {
			s.akm1 = 2 * p.K0
		}
	}
	return s, nil
}

// ssfn maps a geodetic latitude to the tangent of the conformal half angle.
func ssfn(phit, sinphi, e float64) float64 {
	sinphi *= e
	return math.Tan(0.5*(projmath.HalfPi+phit)) * math.Pow((1-sinphi)/(1+sinphi), 0.5*e)
}

func (*Stereographic) Name() string { return "stere" }

func (s *Stereographic) Forward(lam, phi float64) (x, y float64, err error) {
	if s.es == 0 {
		return s.forwardSphere(lam, phi)
	}
	sinlam, coslam := math.Sincos(lam)
	sinphi := math.Sin(phi)

	switch s.aspect {
	case aspectOblique, aspectEquatorial:
		sinX, cosX := math.Sincos(2*math.Atan(ssfn(phi, sinphi, s.e)) - projmath.HalfPi)
		den := 1 + s.sinX1*sinX + s.cosX1*cosX*coslam
		if den <= projmath.Eps10 {
			return 0, 0, errors.Wrap(ErrSingular, "stere: antipode of the centre")
		}
		a := s.akm1 / (s.cosX1 * den)
		x = a * cosX
		y = a * (s.cosX1*sinX - s.sinX1*cosX*coslam)
	default:
		if s.aspect == aspectSouthPole {
			phi, coslam, sinphi = -phi, -coslam, -sinphi
		}
		if math.Abs(phi+projmath.HalfPi) < polarSlack {
			return 0, 0, errors.Wrap(ErrSingular, "stere: opposite pole")
		}
		x = s.akm1 * projmath.Tsfn(phi, sinphi, s.e)
		y = -x * coslam
	}
	return x * sinlam, y, nil
}

func (s *Stereographic) forwardSphere(lam, phi float64) (x, y float64, err error) {
	sinphi, cosphi := math.Sincos(phi)
	sinlam, coslam := math.Sincos(lam)

	switch s.aspect {
	case aspectEquatorial, aspectOblique:
		den := 1 + s.sinX1*sinphi + s.cosX1*cosphi*coslam
		if den <= projmath.Eps10 {
			return 0, 0, errors.Wrap(ErrSingular, "stere: antipode of the centre")
		}
		a := s.akm1 / den
		return a * cosphi * sinlam, a * (s.cosX1*sinphi - s.sinX1*cosphi*coslam), nil
	default:
		if s.aspect == aspectNorthPole {
			coslam, phi = -coslam, -phi
		}
		if math.Abs(phi-projmath.HalfPi) < stereTol {
			return 0, 0, errors.Wrap(ErrSingular, "stere: opposite pole")
		}
		r := s.akm1 * math.Tan(projmath.FortPi+0.5*phi)
		return sinlam * r, r * coslam, nil
	}
}

func (s *Stereographic) Inverse(x, y float64) (lam, phi float64, err error) {
	if s.es == 0 {
		return s.inverseSphere(x, y)
	}
	rho := math.Hypot(x, y)

	var tp, phiL, halfpi, halfe float64
	switch s.aspect {
	case aspectOblique, aspectEquatorial:
		tp = 2 * math.Atan2(rho*s.cosX1, s.akm1)
		sinphi, cosphi := math.Sincos(tp)
		if rho == 0 {
			phiL = math.Asin(cosphi * s.sinX1)
		} else {
			phiL = math.Asin(cosphi*s.sinX1 + y*sinphi*s.cosX1/rho)
		}
		tp = math.Tan(0.5 * (projmath.HalfPi + phiL))
		x *= sinphi
		y = rho*s.cosX1*cosphi - y*s.sinX1*sinphi
		halfpi = projmath.HalfPi
		halfe = 0.5 * s.e
	default:
		if s.aspect == aspectNorthPole {
			y = -y
		}
		tp = -rho / s.akm1
		phiL = projmath.HalfPi - 2*math.Atan(tp)
		halfpi = -projmath.HalfPi
		halfe = -0.5 * s.e
	}

	for i := 0; i < stereIter; i++ {
		sinphi := s.e * math.Sin(phiL)
		phi = 2*math.Atan(tp*math.Pow((1+sinphi)/(1-sinphi), halfe)) - halfpi
		if math.Abs(phiL-phi) < stereConv {
			if s.aspect == aspectSouthPole {
				phi = -phi
			}
			if x != 0 || y != 0 {
				lam = math.Atan2(x, y)
			}
			return lam, phi, nil
		}
		phiL = phi
	}
	return 0, 0, errors.Wrap(ErrNoConvergence, "stere")
}

func (s *Stereographic) inverseSphere(x, y float64) (lam, phi float64, err error) {
	rh := math.Hypot(x, y)
	c := 2 * math.Atan(rh/s.akm1)
	sinc, cosc := math.Sincos(c)

	switch s.aspect {
	case aspectEquatorial:
		if math.Abs(rh) > projmath.Eps10 {
			phi = projmath.Aasin(y * sinc / rh)
		}
		if cosc != 0 || x != 0 {
			lam = math.Atan2(x*sinc, cosc*rh)
		}
	case aspectOblique:
		if math.Abs(rh) <= projmath.Eps10 {
			phi = s.lat0
		} else {
			phi = projmath.Aasin(cosc*s.sinX1 + y*sinc*s.cosX1/rh)
		}
		if c = cosc - s.sinX1*math.Sin(phi); c != 0 || x != 0 {
			lam = math.Atan2(x*sinc*s.cosX1, c*rh)
		}
	default:
		if s.aspect == aspectNorthPole {
			y = -y
		}
		if math.Abs(rh) <= projmath.Eps10 {
			phi = s.lat0
		} else if s.aspect == aspectSouthPole {
			phi = math.Asin(-cosc)
		} else {
			phi = math.Asin(cosc)
		}
		if x != 0 || y != 0 {
			lam = math.Atan2(x, y)
		}
	}
	return lam, phi, nil
}
