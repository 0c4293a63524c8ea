package projection

import (
	"math"

	"github.com/pkg/errors"

	"github.com/pspoerri/geotransform/ellipsoid"
	"github.com/pspoerri/geotransform/internal/projmath"
)

const (
	// EarthCircumference is the equatorial circumference of the Web Mercator
	// sphere in metres.
	EarthCircumference = 40075016.685578488
	// OriginShift is half the earth's circumference, the largest absolute
	// Web Mercator easting.
	OriginShift = EarthCircumference / 2.0
)

// webMercatorSphere is the sphere of EPSG:3857, radius equal to the WGS84
// semi-major axis.
var webMercatorSphere = func() *ellipsoid.Ellipsoid {
	e, err := ellipsoid.NewEllipsoidES("webmerc", "Popular Visualisation Sphere", 6378137, 0)
	if err != nil {
		panic(err)
	}
	return e
}()

// Mercator is the normal aspect Mercator projection, ellipsoidal or
// spherical depending on the ellipsoid. A true scale latitude overrides K0.
type Mercator struct {
	base
	k0        float64
	spherical bool
}

func NewMercator(p Params) (*Mercator, error) {
	b, err := newBase(p)
	if err != nil {
		return nil, err
	}
	m := &Mercator{base: b, k0: p.K0, spherical: b.es == 0}
	if !math.IsNaN(p.LatTS) {
		phits := math.Abs(p.LatTS)
		if phits >= projmath.HalfPi {
			return nil, errors.Wrapf(ErrInvalidParams, "merc: true scale latitude %g", p.LatTS)
		}
		if m.spherical {
			m.k0 = math.Cos(phits)
		} else {
			m.k0 = projmath.Msfn(math.Sin(phits), math.Cos(phits), b.es)
		}
	}
	return m, nil
}

// NewWebMercator returns the spherical Mercator used by web maps (EPSG:3857).
func NewWebMercator() *Mercator {
	m, err := NewMercator(DefaultParams(webMercatorSphere))
	if err != nil {
		panic(err)
	}
	return m
}

func (*Mercator) Name() string        { return "merc" }
func (*Mercator) IsRectilinear() bool { return true }

func (m *Mercator) Forward(lam, phi float64) (x, y float64, err error) {
	if math.Abs(math.Abs(phi)-projmath.HalfPi) <= projmath.Eps10 {
		return 0, 0, errors.Wrap(ErrSingular, "merc: pole")
	}
	x = m.k0 * lam
	if m.spherical {
		y = m.k0 * math.Log(math.Tan(projmath.FortPi+0.5*phi))
	} else {
		y = -m.k0 * math.Log(projmath.Tsfn(phi, math.Sin(phi), m.e))
	}
	return x, y, nil
}

func (m *Mercator) Inverse(x, y float64) (lam, phi float64, err error) {
	if m.spherical {
		phi = projmath.HalfPi - 2*math.Atan(math.Exp(-y/m.k0))
	} else {
		var ok bool
		if phi, ok = projmath.Phi2(math.Exp(-y/m.k0), m.e); !ok {
			return 0, 0, errors.Wrap(ErrNoConvergence, "merc")
		}
	}
	return x / m.k0, phi, nil
}
