package projection

import (
	"math"

	"github.com/pkg/errors"

	"github.com/pspoerri/geotransform/ellipsoid"
	"github.com/pspoerri/geotransform/internal/projmath"
)

// Series coefficients of the ellipsoidal transverse Mercator.
const (
	tmFC1 = 1.
	tmFC2 = .5
	tmFC3 = .16666666666666666666
	tmFC4 = .08333333333333333333
	tmFC5 = .05
	tmFC6 = .03333333333333333333
	tmFC7 = .02380952380952380952
	tmFC8 = .01785714285714285714
)

// TransverseMercator is the Gauss-Krüger transverse Mercator projection.
// On an ellipsoid it uses the PROJ series expansion, valid up to 90° from
// the central meridian.
type TransverseMercator struct {
	base
	k0   float64
	lat0 float64
	en   projmath.Meridian
	ml0  float64
	esp  float64
}

func NewTransverseMercator(p Params) (*TransverseMercator, error) {
	b, err := newBase(p)
	if err != nil {
		return nil, err
	}
	t := &TransverseMercator{base: b, k0: p.K0, lat0: p.Lat0}
	if b.es != 0 {
		t.en = projmath.NewMeridian(b.es)
		t.ml0 = t.en.Length(p.Lat0, math.Sin(p.Lat0), math.Cos(p.Lat0))
		t.esp = b.es / b.oneEs
	} else {
		t.esp = p.K0
		t.ml0 = 0.5 * t.esp
	}
	return t, nil
}

// NewUTM returns the transverse Mercator of a Universal Transverse Mercator
// zone between 1 and 60.
func NewUTM(zone int, south bool, e *ellipsoid.Ellipsoid) (*TransverseMercator, error) {
	if zone < 1 || zone > 60 {
		return nil, errors.Wrapf(ErrInvalidParams, "utm: zone %d", zone)
	}
	if e == nil || e.IsSphere() {
		return nil, errors.Wrap(ErrInvalidParams, "utm: requires an ellipsoid")
	}
	p := DefaultParams(e)
	p.Lon0 = (float64(zone)-0.5)*math.Pi/30 - math.Pi
	p.K0 = 0.9996
	p.X0 = 500000
	if south {
		p.Y0 = 10000000
	}
	return NewTransverseMercator(p)
}

func (*TransverseMercator) Name() string { return "tmerc" }

func (t *TransverseMercator) Forward(lam, phi float64) (x, y float64, err error) {
	if t.es == 0 {
		return t.forwardSphere(lam, phi)
	}
	if lam < -projmath.HalfPi || lam > projmath.HalfPi {
		return 0, 0, errors.Wrapf(ErrOutOfDomain, "tmerc: %g rad from central meridian", lam)
	}

	sinphi, cosphi := math.Sincos(phi)
	if b := cosphi * math.Sin(lam); 1-b*b < projmath.Eps10 {
		return 0, 0, errors.Wrap(ErrSingular, "tmerc: 90° from central meridian")
	}
	tt := 0.0
	if math.Abs(cosphi) > 1e-10 {
		tt = sinphi / cosphi
	}
	tt *= tt
	al := cosphi * lam
	als := al * al
	al /= math.Sqrt(1 - t.es*sinphi*sinphi)
	n := t.esp * cosphi * cosphi

	x = t.k0 * al * (tmFC1 +
		tmFC3*als*(1-tt+n+
			tmFC5*als*(5+tt*(tt-18)+n*(14-58*tt)+
				tmFC7*als*(61+tt*(tt*(179-tt)-479)))))
	y = t.k0 * (t.en.Length(phi, sinphi, cosphi) - t.ml0 +
		sinphi*al*lam*tmFC2*(1+
			tmFC4*als*(5-tt+n*(9+4*n)+
				tmFC6*als*(61+tt*(tt-58)+n*(270-330*tt)+
					tmFC8*als*(1385+tt*(tt*(543-tt)-3111))))))
	return x, y, nil
}

func (t *TransverseMercator) forwardSphere(lam, phi float64) (x, y float64, err error) {
	cosphi := math.Cos(phi)
	b := cosphi * math.Sin(lam)
	if math.Abs(math.Abs(b)-1) <= projmath.Eps10 {
		return 0, 0, errors.Wrap(ErrSingular, "tmerc: 90° from central meridian")
	}
	x = t.ml0 * math.Log((1+b)/(1-b))
	y = cosphi * math.Cos(lam) / math.Sqrt(1-b*b)
	if b = math.Abs(y); b >= 1 {
		if b-1 > projmath.Eps10 {
			return 0, 0, errors.Wrap(ErrSingular, "tmerc")
		}
		y = 0
	} else {
		y = math.Acos(y)
	}
	if phi < 0 {
		y = -y
	}
	return x, t.esp * (y - t.lat0), nil
}

func (t *TransverseMercator) Inverse(x, y float64) (lam, phi float64, err error) {
	if t.es == 0 {
		h := math.Exp(x / t.esp)
		g := 0.5 * (h - 1/h)
		d := t.lat0 + y/t.esp
		h = math.Cos(d)
		phi = projmath.Aasin(math.Sqrt((1 - h*h) / (1 + g*g)))
		if d < 0 {
			phi = -phi
		}
		if g != 0 || h != 0 {
			lam = math.Atan2(g, h)
		}
		return lam, phi, nil
	}

	phi, ok := t.en.Latitude(t.ml0+y/t.k0, t.es)
	if !ok {
		return 0, 0, errors.Wrap(ErrNoConvergence, "tmerc")
	}
	if math.Abs(phi) >= projmath.HalfPi {
		if y < 0 {
			return 0, -projmath.HalfPi, nil
		}
		return 0, projmath.HalfPi, nil
	}

	sinphi, cosphi := math.Sincos(phi)
	tt := 0.0
	if math.Abs(cosphi) > 1e-10 {
		tt = sinphi / cosphi
	}
	n := t.esp * cosphi * cosphi
	con := 1 - t.es*sinphi*sinphi
	d := x * math.Sqrt(con) / t.k0
	con *= tt
	tt *= tt
	ds := d * d
	phi -= (con * ds / (1 - t.es)) * tmFC2 * (1 -
		ds*tmFC4*(5+tt*(3-9*n)+n*(1-4*n)-
			ds*tmFC6*(61+tt*(90-252*n+45*tt)+46*n-
				ds*tmFC8*(1385+tt*(3633+tt*(4095+1574*tt))))))
	lam = d * (tmFC1 -
		ds*tmFC3*(1+2*tt+n-
			ds*tmFC5*(5+tt*(28+24*tt+8*n)+6*n-
				ds*tmFC7*(61+tt*(662+tt*(1320+720*tt)))))) / cosphi
	return lam, phi, nil
}
