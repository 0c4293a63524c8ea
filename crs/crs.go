// Package crs ties datums and projections into coordinate reference systems
// and transforms coordinates between them.
package crs

import (
	"fmt"
	"strings"

	"github.com/pspoerri/geotransform/datum"
	"github.com/pspoerri/geotransform/ellipsoid"
	"github.com/pspoerri/geotransform/projection"
)

// Coordinate is a position in a CRS. X and Y are easting and northing in
// projected units, or longitude and latitude for geographic systems; Z is
// the ellipsoidal height in metres.
type Coordinate struct {
	X, Y, Z float64
}

func (c Coordinate) String() string {
	return fmt.Sprintf("(%g, %g, %g)", c.X, c.Y, c.Z)
}

// CRS is an immutable coordinate reference system: a datum and an optional
// projection, together with the parameters it was built from.
//
// A CRS without a projection takes geographic coordinates in radians. One
// with a projection.LongLat takes degrees.
type CRS struct {
	name       string
	params     []string
	datum      *datum.Datum
	projection projection.Projection
}

// Geographic is the generic geographic CRS with no datum and no projection.
// Its coordinates are longitude and latitude in radians.
var Geographic = &CRS{name: "geographic"}

// New creates a CRS. An empty name defaults to the projection name followed
// by "-CS". params is copied.
func New(name string, params []string, d *datum.Datum, p projection.Projection) *CRS {
	if name == "" && p != nil {
		name = p.Name() + "-CS"
	}
	return &CRS{
		name:       name,
		params:     append([]string(nil), params...),
		datum:      d,
		projection: p,
	}
}

func (c *CRS) Name() string { return c.name }

// Parameters returns a copy of the parameters the CRS was built from.
func (c *CRS) Parameters() []string {
	return append([]string(nil), c.params...)
}

// ParameterString joins the parameters with spaces, as in a PROJ.4 string.
func (c *CRS) ParameterString() string {
	return strings.Join(c.params, " ")
}

func (c *CRS) Datum() *datum.Datum { return c.datum }

func (c *CRS) Projection() projection.Projection { return c.projection }

// Ellipsoid returns the datum's ellipsoid, falling back to the projection's.
func (c *CRS) Ellipsoid() *ellipsoid.Ellipsoid {
	if c.datum != nil {
		return c.datum.Ellipsoid()
	}
	if c.projection != nil {
		return c.projection.Params().Ellipsoid
	}
	return nil
}

// IsGeographic reports whether coordinates are longitude and latitude.
func (c *CRS) IsGeographic() bool {
	if c.projection == nil {
		return true
	}
	_, ok := c.projection.(*projection.LongLat)
	return ok
}

func (c *CRS) String() string { return c.name }

// geographicParams are the parameter keys kept when deriving a geographic
// CRS: they describe the datum, not the projection.
var geographicParams = []string{"+datum=", "+ellps=", "+towgs84=", "+a=", "+b=", "+rf=", "+R=", "+nadgrids="}

// Geographic derives the geographic CRS sharing c's datum, with coordinates
// in degrees. It returns the Geographic sentinel when c has no ellipsoid.
func (c *CRS) Geographic() *CRS {
	e := c.Ellipsoid()
	if e == nil {
		return Geographic
	}
	p, err := projection.NewLongLat(projection.DefaultParams(e))
	if err != nil {
		return Geographic
	}

	params := []string{"+proj=longlat"}
	for _, prm := range c.params {
		for _, key := range geographicParams {
			if strings.HasPrefix(prm, key) {
				params = append(params, prm)
				break
			}
		}
	}
	name := "GEO-" + e.ShortName()
	if c.datum != nil {
		name = "GEO-" + c.datum.Code()
	}
	return New(name, params, c.datum, p)
}
