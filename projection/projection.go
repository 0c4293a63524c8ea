// Package projection implements map projections between geodetic and planar
// coordinates.
//
// Each variant precomputes its constants when constructed and afterwards
// only reads them, so a Projection may be shared between goroutines.
// Variants work on an ellipsoid with unit semi-major axis and longitudes
// relative to the central meridian. Project and Unproject wrap them with the
// behaviour common to all projections: central meridian, semi-major axis,
// false origin and output units.
package projection

import (
	"math"

	"github.com/pkg/errors"

	"github.com/pspoerri/geotransform/ellipsoid"
	"github.com/pspoerri/geotransform/internal/projmath"
)

// latitudeSlack allows latitudes that overshoot the poles by rounding.
const latitudeSlack = 1e-12

var (
	// ErrSingular is returned when a formula reaches a near-zero denominator.
	ErrSingular = errors.New("projection: singular point")
	// ErrNoConvergence is returned when an iterative solution fails to converge.
	ErrNoConvergence = errors.New("projection: iteration did not converge")
	// ErrLatitudeRange is returned for latitudes beyond ±90°.
	ErrLatitudeRange = errors.New("projection: latitude out of range")
	// ErrOutOfDomain is returned for points the projection cannot represent.
	ErrOutOfDomain = errors.New("projection: point outside projection domain")
	// ErrNoInverse is returned by Inverse on forward-only projections.
	ErrNoInverse = errors.New("projection: inverse not available")
	// ErrInvalidParams is returned by constructors for unsupported parameter
	// combinations.
	ErrInvalidParams = errors.New("projection: invalid parameters")
)

// Projection maps geodetic coordinates to planar coordinates and back.
//
// Forward takes the longitude relative to the central meridian and the
// latitude in radians and returns coordinates on the unit ellipsoid. Inverse
// reverses it.
type Projection interface {
	Forward(lam, phi float64) (x, y float64, err error)
	Inverse(x, y float64) (lam, phi float64, err error)

	// HasInverse reports whether Inverse is implemented.
	HasInverse() bool
	// IsRectilinear reports whether meridians and parallels map to
	// straight, perpendicular lines.
	IsRectilinear() bool

	// Name returns the short PROJ name of the projection method.
	Name() string
	Params() Params
}

// Params holds the attributes shared by all projections. Angles are in
// radians, false easting and northing in metres.
type Params struct {
	Ellipsoid *ellipsoid.Ellipsoid

	Lon0 float64 // central meridian
	Lat0 float64 // latitude of origin
	Lat1 float64 // first standard parallel
	Lat2 float64 // second standard parallel, NaN for a tangent cone
	// LatTS is the latitude of true scale, NaN when unset.
	LatTS float64

	K0 float64 // scale factor
	X0 float64 // false easting
	Y0 float64 // false northing

	// FromMetres is the number of output units per metre.
	FromMetres float64
}

// DefaultParams returns parameters on ellipsoid e with unit scale, metres as
// output unit and no standard parallels or true scale latitude.
func DefaultParams(e *ellipsoid.Ellipsoid) Params {
	return Params{
		Ellipsoid:  e,
		Lat2:       math.NaN(),
		LatTS:      math.NaN(),
		K0:         1,
		FromMetres: 1,
	}
}

// WithUnits returns a copy of p producing units of toMetre metres each.
func (p Params) WithUnits(toMetre float64) Params {
	p.FromMetres = 1 / toMetre
	return p
}

func (p Params) validate() error {
	switch {
	case p.Ellipsoid == nil:
		return errors.Wrap(ErrInvalidParams, "missing ellipsoid")
	case !(p.K0 > 0) || math.IsInf(p.K0, 0):
		return errors.Wrapf(ErrInvalidParams, "scale factor %g", p.K0)
	case !(p.FromMetres > 0) || math.IsInf(p.FromMetres, 0):
		return errors.Wrapf(ErrInvalidParams, "unit factor %g", p.FromMetres)
	case math.Abs(p.Lat0) > projmath.HalfPi:
		return errors.Wrapf(ErrInvalidParams, "latitude of origin %g", p.Lat0)
	}
	return nil
}

// base carries the parameters and the derived ellipsoid constants every
// variant needs.
type base struct {
	p     Params
	e     float64
	es    float64
	oneEs float64
}

func newBase(p Params) (base, error) {
	if err := p.validate(); err != nil {
		return base{}, err
	}
	es := p.Ellipsoid.Es()
	return base{p: p, e: p.Ellipsoid.E(), es: es, oneEs: 1 - es}, nil
}

func (b *base) Params() Params      { return b.p }
func (b *base) HasInverse() bool    { return true }
func (b *base) IsRectilinear() bool { return false }

// Project converts a geodetic longitude and latitude in radians to projected
// coordinates in the projection's units. Geographic projections return
// degrees.
func Project(p Projection, lon, lat float64) (x, y float64, err error) {
	if math.IsNaN(lat) || math.Abs(lat) > projmath.HalfPi+latitudeSlack {
		return 0, 0, errors.Wrapf(ErrLatitudeRange, "latitude %g", lat)
	}
	if math.IsNaN(lon) || math.IsInf(lon, 0) {
		return 0, 0, errors.Wrapf(ErrOutOfDomain, "longitude %g", lon)
	}
	if _, ok := p.(*LongLat); ok {
		return lon * projmath.RadToDeg, lat * projmath.RadToDeg, nil
	}
	prm := p.Params()
	x, y, err = p.Forward(projmath.AdjLon(lon-prm.Lon0), lat)
	if err != nil {
		return 0, 0, err
	}
	a := prm.Ellipsoid.A()
	return prm.FromMetres * (a*x + prm.X0), prm.FromMetres * (a*y + prm.Y0), nil
}

// Unproject converts projected coordinates back to a geodetic longitude and
// latitude in radians.
func Unproject(p Projection, x, y float64) (lon, lat float64, err error) {
	if _, ok := p.(*LongLat); ok {
		return x * projmath.DegToRad, y * projmath.DegToRad, nil
	}
	prm := p.Params()
	a := prm.Ellipsoid.A()
	lam, phi, err := p.Inverse((x/prm.FromMetres-prm.X0)/a, (y/prm.FromMetres-prm.Y0)/a)
	if err != nil {
		return 0, 0, err
	}
	return projmath.AdjLon(lam + prm.Lon0), phi, nil
}
