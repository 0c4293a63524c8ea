package projection

import (
	"math"
	"testing"

	"github.com/pspoerri/geotransform/ellipsoid"
)

// lv95 is the projection of EPSG:2056 (CH1903+ / LV95) on the Bessel ellipsoid.
func lv95(t *testing.T) *SwissObliqueMercator {
	t.Helper()
	p := DefaultParams(ellipsoid.Bessel)
	p.Lat0 = deg(46.95240555555556)
	p.Lon0 = deg(7.439583333333333)
	p.X0, p.Y0 = 2600000, 1200000
	s, err := NewSwissObliqueMercator(p)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestSwissObliqueMercator_Origin(t *testing.T) {
	s := lv95(t)
	prm := s.Params()

	// The old Bern observatory is the origin of the grid.
	e, n, err := Project(s, prm.Lon0, prm.Lat0)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(e-2_600_000) > 1e-6 || math.Abs(n-1_200_000) > 1e-6 {
		t.Errorf("Project(origin) = (%.6f, %.6f), want (2600000, 1200000)", e, n)
	}
}

func TestSwissObliqueMercator_EdgeOfSwitzerland(t *testing.T) {
	s := lv95(t)

	// Points near the edges of Switzerland, CH1903+ geographic.
	edges := [][2]float64{
		{5.96, 45.82},  // SW corner (near Geneva)
		{10.49, 47.81}, // NE corner (near Bodensee)
		{6.13, 47.50},  // NW (Jura)
		{10.47, 46.17}, // SE (Engadin)
	}

	for _, pt := range edges {
		lon, lat := deg(pt[0]), deg(pt[1])
		e, n, err := Project(s, lon, lat)
		if err != nil {
			t.Fatal(err)
		}
		if e < 2_470_000 || e > 2_850_000 || n < 1_060_000 || n > 1_310_000 {
			t.Errorf("(%.2f, %.2f) projects outside the LV95 extent: (%.1f, %.1f)", pt[0], pt[1], e, n)
		}
		gotLon, gotLat, err := Unproject(s, e, n)
		if err != nil {
			t.Fatal(err)
		}

		tol := 1e-10 // radians, well below a millimetre
		if math.Abs(gotLon-lon) > tol || math.Abs(gotLat-lat) > tol {
			t.Errorf("edge roundtrip (%.2f, %.2f): delta=(%.2e, %.2e)",
				pt[0], pt[1], gotLon-lon, gotLat-lat)
		}
	}
}
