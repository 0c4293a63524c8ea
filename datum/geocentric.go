package datum

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pspoerri/geotransform/ellipsoid"
)

const (
	// geodeticThreshold is the residual, in metres, below which the
	// geocentric to geodetic iteration stops.
	geodeticThreshold = 4.8481368110953599e-08
	geodeticMaxIter   = 100

	// poleAllowance is the relative amount by which a latitude may exceed
	// ±π/2 and still be clamped to the pole.
	poleAllowance = 1.001
)

// GeocentricConverter converts between geodetic coordinates (longitude and
// latitude in radians, height in metres) and earth-centred geocentric
// coordinates in metres on a single ellipsoid.
//
// Ported from GEOCENTRIC by the U.S. Army Topographic Engineering Center via
// PROJ.4. A converter holds only constants and is safe for concurrent use.
type GeocentricConverter struct {
	a, b   float64
	a2, b2 float64
	e2     float64
	ep2    float64
}

// NewGeocentricConverter returns a converter bound to ellipsoid e.
func NewGeocentricConverter(e *ellipsoid.Ellipsoid) *GeocentricConverter {
	return NewGeocentricConverterAB(e.A(), e.B())
}

// NewGeocentricConverterAB returns a converter for the ellipsoid with
// equatorial radius a and polar radius b.
func NewGeocentricConverterAB(a, b float64) *GeocentricConverter {
	a2, b2 := a*a, b*b
	return &GeocentricConverter{
		a:   a,
		b:   b,
		a2:  a2,
		b2:  b2,
		e2:  (a2 - b2) / a2,
		ep2: (a2 - b2) / b2,
	}
}

// ToGeocentric converts a geodetic position to geocentric X, Y, Z.
//
// Latitudes a little beyond the poles, as produced by rounding, are clamped.
// Anything further out returns ErrLatitudeRange.
func (c *GeocentricConverter) ToGeocentric(lon, lat, height float64) (r3.Vec, error) {
	switch {
	case lat < -math.Pi/2 && lat > -poleAllowance*math.Pi/2:
		lat = -math.Pi / 2
	case lat > math.Pi/2 && lat < poleAllowance*math.Pi/2:
		lat = math.Pi / 2
	case lat < -math.Pi/2 || lat > math.Pi/2 || math.IsNaN(lat):
		return r3.Vec{}, errors.Wrapf(ErrLatitudeRange, "latitude %g", lat)
	}
	lon = wrapLon(lon)

	sinLat, cosLat := math.Sincos(lat)
	rn := c.a / math.Sqrt(1-c.e2*sinLat*sinLat)
	sinLon, cosLon := math.Sincos(lon)
	return r3.Vec{
		X: (rn + height) * cosLat * cosLon,
		Y: (rn + height) * cosLat * sinLon,
		Z: (rn*(1-c.e2) + height) * sinLat,
	}, nil
}

// ToGeodetic converts a geocentric position to longitude, latitude and
// height by fixed-point iteration on latitude and height. It returns
// ErrNoConvergence when the residual stays above the threshold.
func (c *GeocentricConverter) ToGeodetic(p r3.Vec) (lon, lat, height float64, err error) {
	eccFactor := 1 - c.e2

	lon = math.Atan2(p.Y, p.X)

	u := math.Hypot(p.X, p.Y)
	lat = math.Atan2(p.Z, u)
	height = r3.Norm(p) - c.primeVerticalRadius(lat)

	for i := 0; i < geodeticMaxIter; i++ {
		sinLat, cosLat := math.Sincos(lat)
		rn := c.primeVerticalRadius(lat)

		deltaU := u - (rn+height)*cosLat
		deltaZ := p.Z - (rn*eccFactor+height)*sinLat

		lat += (-deltaU*sinLat + deltaZ*cosLat) / (c.meridianRadius(lat) + height)
		height += deltaU*cosLat + deltaZ*sinLat

		if math.Abs(deltaU) <= geodeticThreshold && math.Abs(deltaZ) <= geodeticThreshold {
			return lon, lat, height, nil
		}
	}
	return 0, 0, 0, errors.Wrapf(ErrNoConvergence, "after %d iterations at %v", geodeticMaxIter, p)
}

func (c *GeocentricConverter) primeVerticalRadius(lat float64) float64 {
	s := math.Sin(lat)
	return c.a / math.Sqrt(1-c.e2*s*s)
}

func (c *GeocentricConverter) meridianRadius(lat float64) float64 {
	s := math.Sin(lat)
	den := 1 - c.e2*s*s
	return c.a * (1 - c.e2) / math.Sqrt(den*den*den)
}

// wrapLon maps a longitude into (-π, π].
func wrapLon(lon float64) float64 {
	if lon > -math.Pi && lon <= math.Pi {
		return lon
	}
	lon = math.Mod(lon+math.Pi, 2*math.Pi)
	if lon <= 0 {
		lon += 2 * math.Pi
	}
	return lon - math.Pi
}
