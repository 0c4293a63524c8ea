package projection

import (
	"math"
	"testing"

	"github.com/pspoerri/geotransform/ellipsoid"
)

// TestWebMercator_KnownValues checks against well-known Web Mercator values.
func TestWebMercator_KnownValues(t *testing.T) {
	wm := NewWebMercator()

	// (0, 0) in Web Mercator should map to (0, 0) in geographic.
	lon, lat, err := Unproject(wm, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(lon) > 1e-10 || math.Abs(lat) > 1e-10 {
		t.Errorf("Unproject(0, 0) = (%v, %v), want (0, 0)", lon, lat)
	}

	x, y, err := Project(wm, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(x) > 1e-6 || math.Abs(y) > 1e-6 {
		t.Errorf("Project(0, 0) = (%v, %v), want (0, ~0)", x, y)
	}

	// lon=180 should map to x = OriginShift (~20037508.34)
	x, _, err = Project(wm, math.Pi, 0)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(x-OriginShift) > 1 {
		t.Errorf("Project(180°, 0).x = %v, want ~%v", x, OriginShift)
	}

	// lon=-180 should map to x = -OriginShift
	x, _, err = Project(wm, -math.Pi, 0)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(x+OriginShift) > 1 {
		t.Errorf("Project(-180°, 0).x = %v, want ~%v", x, -OriginShift)
	}

	// The square world extent ends near ±85.0511°.
	_, lat, err = Unproject(wm, 0, OriginShift)
	if err != nil {
		t.Fatal(err)
	}
	if got := lat * 180 / math.Pi; got < 85.05 || got > 85.06 {
		t.Errorf("Unproject(0, OriginShift) lat = %v, want ~85.0511", got)
	}
}

func TestMercatorTrueScaleLatitude(t *testing.T) {
	p := DefaultParams(ellipsoid.Sphere)
	p.LatTS = deg(60)
	m, err := NewMercator(p)
	if err != nil {
		t.Fatal(err)
	}
	x, _, err := Project(m, deg(1), 0)
	if err != nil {
		t.Fatal(err)
	}
	want := ellipsoid.Sphere.A() * deg(1) * 0.5
	if math.Abs(x-want) > 1e-6 {
		t.Errorf("x = %v, want %v", x, want)
	}
	if !m.IsRectilinear() {
		t.Errorf("IsRectilinear() = false, want true")
	}
}
