package projection

import (
	"math"

	"github.com/pkg/errors"

	"github.com/pspoerri/geotransform/internal/projmath"
)

// PlateCarree is the equidistant cylindrical projection. Longitudes are
// scaled by the cosine of the true scale latitude, zero by default, and
// latitudes offset by the latitude of origin.
type PlateCarree struct {
	base
	rc   float64
	lat0 float64
}

func NewPlateCarree(p Params) (*PlateCarree, error) {
	b, err := newBase(p)
	if err != nil {
		return nil, err
	}
	latts := p.LatTS
	if math.IsNaN(latts) {
		latts = 0
	}
	rc := math.Cos(latts)
	if rc <= projmath.Eps10 {
		return nil, errors.Wrapf(ErrInvalidParams, "eqc: true scale latitude %g", p.LatTS)
	}
	return &PlateCarree{base: b, rc: rc, lat0: p.Lat0}, nil
}

func (*PlateCarree) Name() string        { return "eqc" }
func (*PlateCarree) IsRectilinear() bool { return true }

func (e *PlateCarree) Forward(lam, phi float64) (x, y float64, err error) {
	return e.rc * lam, phi - e.lat0, nil
}

func (e *PlateCarree) Inverse(x, y float64) (lam, phi float64, err error) {
	return x / e.rc, y + e.lat0, nil
}
