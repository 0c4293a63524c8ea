package projection

import (
	"math"

	"github.com/pkg/errors"

	"github.com/pspoerri/geotransform/internal/projmath"
)

// LambertAzimuthalEqualArea is the Lambert azimuthal equal-area projection
// in polar, oblique or equatorial aspect. On an ellipsoid it projects the
// authalic sphere.
type LambertAzimuthalEqualArea struct {
	base
	aspect       aspect
	lat0         float64
	sinb1, cosb1 float64
	xmf, ymf     float64
	qp           float64
	dd           float64
	rq           float64
	apa          projmath.Authalic
}

func NewLambertAzimuthalEqualArea(p Params) (*LambertAzimuthalEqualArea, error) {
	b, err := newBase(p)
	if err != nil {
		return nil, err
	}
	l := &LambertAzimuthalEqualArea{base: b, aspect: aspectOf(p.Lat0), lat0: p.Lat0, cosb1: 1}

	if b.es == 0 {
		if l.aspect == aspectOblique {
			l.sinb1, l.cosb1 = math.Sincos(p.Lat0)
		}
		return l, nil
	}

	l.qp = projmath.Qsfn(1, b.e, b.oneEs)
	l.apa = projmath.NewAuthalic(b.es)
	switch l.aspect {
	case aspectNorthPole, aspectSouthPole:
		l.dd = 1
	case aspectEquatorial:
		l.rq = math.Sqrt(0.5 * l.qp)
		l.dd = 1 / l.rq
		l.xmf = 1
		l.ymf = 0.5 * l.qp
	case aspectOblique:
		l.rq = math.Sqrt(0.5 * l.qp)
		sinphi := math.Sin(p.Lat0)
		l.sinb1 = projmath.Qsfn(sinphi, b.e, b.oneEs) / l.qp
		l.cosb1 = math.Sqrt(1 - l.sinb1*l.sinb1)
		l.dd = math.Cos(p.Lat0) / (math.Sqrt(1-b.es*sinphi*sinphi) * l.rq * l.cosb1)
		l.xmf = l.rq * l.dd
		l.ymf = l.rq / l.dd
	}
	return l, nil
}

func (*LambertAzimuthalEqualArea) Name() string { return "laea" }

func (l *LambertAzimuthalEqualArea) Forward(lam, phi float64) (x, y float64, err error) {
	if l.es == 0 {
		return l.forwardSphere(lam, phi)
	}
	sinlam, coslam := math.Sincos(lam)
	q := projmath.Qsfn(math.Sin(phi), l.e, l.oneEs)

	var b, sinb, cosb float64
	switch l.aspect {
	case aspectNorthPole:
		b = projmath.HalfPi + phi
		q = l.qp - q
	case aspectSouthPole:
		b = phi - projmath.HalfPi
		q = l.qp + q
	default:
		sinb = q / l.qp
		cosb = math.Sqrt(1 - sinb*sinb)
		b = 1 + l.sinb1*sinb + l.cosb1*cosb*coslam
	}
	if math.Abs(b) < projmath.Eps10 {
		return 0, 0, errors.Wrap(ErrSingular, "laea: antipode of the centre")
	}

	switch l.aspect {
	case aspectNorthPole, aspectSouthPole:
		if q < 0 {
			return 0, 0, nil
		}
		b = math.Sqrt(q)
		if l.aspect == aspectSouthPole {
			return b * sinlam, coslam * b, nil
		}
		return b * sinlam, -coslam * b, nil
	default:
		b = math.Sqrt(2 / b)
		x = l.xmf * b * cosb * sinlam
		y = l.ymf * b * (l.cosb1*sinb - l.sinb1*cosb*coslam)
		return x, y, nil
	}
}

func (l *LambertAzimuthalEqualArea) forwardSphere(lam, phi float64) (x, y float64, err error) {
	sinphi, cosphi := math.Sincos(phi)
	sinlam, coslam := math.Sincos(lam)

	switch l.aspect {
	case aspectEquatorial, aspectOblique:
		y = 1 + l.sinb1*sinphi + l.cosb1*cosphi*coslam
		if y <= projmath.Eps10 {
			return 0, 0, errors.Wrap(ErrSingular, "laea: antipode of the centre")
		}
		k := math.Sqrt(2 / y)
		return k * cosphi * sinlam, k * (l.cosb1*sinphi - l.sinb1*cosphi*coslam), nil
	default:
		if math.Abs(phi+l.lat0) < projmath.Eps10 {
			return 0, 0, errors.Wrap(ErrSingular, "laea: opposite pole")
		}
		y = projmath.FortPi - 0.5*phi
		if l.aspect == aspectSouthPole {
			y = 2 * math.Cos(y)
		} else {
			y = 2 * math.Sin(y)
			coslam = -coslam
		}
		return y * sinlam, y * coslam, nil
	}
}

func (l *LambertAzimuthalEqualArea) Inverse(x, y float64) (lam, phi float64, err error) {
	if l.es == 0 {
		return l.inverseSphere(x, y)
	}
	var ab float64
	switch l.aspect {
	case aspectEquatorial, aspectOblique:
		x /= l.dd
		y *= l.dd
		rho := math.Hypot(x, y)
		if rho < projmath.Eps10 {
			return 0, l.lat0, nil
		}
		ce := 2 * projmath.Aasin(0.5*rho/l.rq)
		sCe, cCe := math.Sincos(ce)
		x *= sCe
		ab = cCe*l.sinb1 + y*sCe*l.cosb1/rho
		y = rho*l.cosb1*cCe - y*l.sinb1*sCe
	default:
		if l.aspect == aspectNorthPole {
			y = -y
		}
		q := x*x + y*y
		if q == 0 {
			return 0, l.lat0, nil
		}
		ab = 1 - q/l.qp
		if l.aspect == aspectSouthPole {
			ab = -ab
		}
	}
	return math.Atan2(x, y), l.apa.Latitude(projmath.Aasin(ab)), nil
}

func (l *LambertAzimuthalEqualArea) inverseSphere(x, y float64) (lam, phi float64, err error) {
	rh := math.Hypot(x, y)
	if phi = rh * 0.5; phi > 1 {
		return 0, 0, errors.Wrap(ErrOutOfDomain, "laea")
	}
	phi = 2 * math.Asin(phi)

	switch l.aspect {
	case aspectEquatorial, aspectOblique:
		sinz, cosz := math.Sincos(phi)
		if math.Abs(rh) <= projmath.Eps10 {
			phi = l.lat0
		} else {
			phi = projmath.Aasin(cosz*l.sinb1 + y*sinz*l.cosb1/rh)
		}
		x *= sinz * l.cosb1
		y = (cosz - math.Sin(phi)*l.sinb1) * rh
		if y == 0 {
			return 0, phi, nil
		}
	case aspectNorthPole:
		y = -y
		phi = projmath.HalfPi - phi
	case aspectSouthPole:
		phi -= projmath.HalfPi
	}
	return math.Atan2(x, y), phi, nil
}
