package projmath

import (
	"math"
	"testing"
)

func TestAdjLon(t *testing.T) {
	tests := []struct{ in, want float64 }{
		{0, 0},
		{math.Pi, math.Pi},
		{-math.Pi, -math.Pi},
		{3 * math.Pi / 2, -math.Pi / 2},
		{-3 * math.Pi / 2, math.Pi / 2},
		{7 * math.Pi / 2, -math.Pi / 2},
	}
	for _, tt := range tests {
		if got := AdjLon(tt.in); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("AdjLon(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestPhi2InvertsTsfn(t *testing.T) {
	const e = 0.0818191908426 // WGS84
	for lat := -85.0; lat <= 85; lat += 5 {
		phi := lat * DegToRad
		got, ok := Phi2(Tsfn(phi, math.Sin(phi), e), e)
		if !ok {
			t.Fatalf("Phi2 did not converge at %v°", lat)
		}
		if math.Abs(got-phi) > 1e-10 {
			t.Errorf("Phi2(Tsfn(%v°)) = %v, want %v", lat, got, phi)
		}
	}
}

func TestMeridianLatitudeInvertsLength(t *testing.T) {
	const es = 0.00669437999014
	en := NewMeridian(es)
	for lat := -89.0; lat <= 89; lat += 4 {
		phi := lat * DegToRad
		got, ok := en.Latitude(en.Length(phi, math.Sin(phi), math.Cos(phi)), es)
		if !ok {
			t.Fatalf("Latitude did not converge at %v°", lat)
		}
		if math.Abs(got-phi) > 1e-11 {
			t.Errorf("Latitude(Length(%v°)) = %v, want %v", lat, got, phi)
		}
	}

	// A quarter meridian of WGS84 is 10001965.729 m.
	if got := en.Length(HalfPi, 1, 0) * 6378137; math.Abs(got-10001965.729) > 1e-3 {
		t.Errorf("quarter meridian = %.4f m, want 10001965.729", got)
	}
}

func TestAuthalicLatitude(t *testing.T) {
	const es = 0.00669437999014
	e := math.Sqrt(es)
	apa := NewAuthalic(es)
	qp := Qsfn(1, e, 1-es)
	for lat := -80.0; lat <= 80; lat += 10 {
		phi := lat * DegToRad
		beta := math.Asin(Qsfn(math.Sin(phi), e, 1-es) / qp)
		if got := apa.Latitude(beta); math.Abs(got-phi) > 1e-9 {
			t.Errorf("authalic round trip at %v°: got %v, want %v", lat, got, phi)
		}
	}
}

func TestAasinClamps(t *testing.T) {
	if got := Aasin(1 + 1e-15); got != HalfPi {
		t.Errorf("Aasin(1+) = %v, want π/2", got)
	}
	if got := Aasin(-1.5); got != -HalfPi {
		t.Errorf("Aasin(-1.5) = %v, want -π/2", got)
	}
}
