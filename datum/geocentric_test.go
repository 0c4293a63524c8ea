package datum

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pspoerri/geotransform/ellipsoid"
)

func TestGeocentricRoundTrip(t *testing.T) {
	for _, e := range []*ellipsoid.Ellipsoid{ellipsoid.WGS84, ellipsoid.Bessel, ellipsoid.Sphere} {
		conv := NewGeocentricConverter(e)
		t.Run(e.ShortName(), func(t *testing.T) {
			for lat := -89.0; lat <= 89; lat += 7 {
				for lon := -179.0; lon < 180; lon += 15 {
					for _, h := range []float64{0, 1500, -100} {
						lonR, latR := lon*math.Pi/180, lat*math.Pi/180
						p, err := conv.ToGeocentric(lonR, latR, h)
						require.NoError(t, err)

						gotLon, gotLat, gotH, err := conv.ToGeodetic(p)
						require.NoError(t, err)
						assert.InDelta(t, lonR, gotLon, 1e-9, "lon at (%v, %v)", lon, lat)
						assert.InDelta(t, latR, gotLat, 1e-9, "lat at (%v, %v)", lon, lat)
						assert.InDelta(t, h, gotH, 1e-3, "height at (%v, %v)", lon, lat)
					}
				}
			}
		})
	}
}

func TestToGeocentricKnownValues(t *testing.T) {
	conv := NewGeocentricConverter(ellipsoid.WGS84)

	p, err := conv.ToGeocentric(0, 0, 0)
	require.NoError(t, err)
	assert.InDelta(t, ellipsoid.WGS84.A(), p.X, 1e-9)
	assert.InDelta(t, 0, p.Y, 1e-9)
	assert.InDelta(t, 0, p.Z, 1e-9)

	p, err = conv.ToGeocentric(math.Pi/2, 0, 10)
	require.NoError(t, err)
	assert.InDelta(t, ellipsoid.WGS84.A()+10, p.Y, 1e-9)

	p, err = conv.ToGeocentric(0, math.Pi/2, 0)
	require.NoError(t, err)
	assert.InDelta(t, 0, math.Hypot(p.X, p.Y), 1e-6)
	assert.InDelta(t, ellipsoid.WGS84.B(), p.Z, 1e-6)
}

func TestToGeocentricPole(t *testing.T) {
	conv := NewGeocentricConverterAB(ellipsoid.WGS84.A(), ellipsoid.WGS84.B())

	t.Run("clamped", func(t *testing.T) {
		pole, err := conv.ToGeocentric(0, math.Pi/2, 0)
		require.NoError(t, err)
		over, err := conv.ToGeocentric(0, math.Pi/2*1.0005, 0)
		require.NoError(t, err)
		assert.Equal(t, pole, over)

		under, err := conv.ToGeocentric(0, -math.Pi/2*1.0005, 0)
		require.NoError(t, err)
		assert.InDelta(t, -ellipsoid.WGS84.B(), under.Z, 1e-6)
	})

	t.Run("out of range", func(t *testing.T) {
		for _, lat := range []float64{math.Pi / 2 * 1.01, -2, math.NaN()} {
			_, err := conv.ToGeocentric(0, lat, 0)
			assert.True(t, errors.Is(err, ErrLatitudeRange), "lat %v: got %v", lat, err)
		}
	})

	t.Run("back to geodetic", func(t *testing.T) {
		p, err := conv.ToGeocentric(0.3, -math.Pi/2, 25)
		require.NoError(t, err)
		lon, lat, h, err := conv.ToGeodetic(p)
		require.NoError(t, err)
		assert.False(t, math.IsNaN(lon) || math.IsNaN(lat) || math.IsNaN(h))
		assert.InDelta(t, -math.Pi/2, lat, 1e-9)
		assert.InDelta(t, 25, h, 1e-3)
	})
}

func TestToGeodeticNoConvergence(t *testing.T) {
	conv := NewGeocentricConverter(ellipsoid.WGS84)
	for _, p := range []r3.Vec{
		{X: math.NaN(), Y: 0, Z: 0},
		{X: 4e6, Y: math.Inf(1), Z: 4e6},
	} {
		_, _, _, err := conv.ToGeodetic(p)
		assert.True(t, errors.Is(err, ErrNoConvergence), "%v: got %v", p, err)
	}
}

func TestToGeocentricWrapsLongitude(t *testing.T) {
	conv := NewGeocentricConverter(ellipsoid.WGS84)
	want, err := conv.ToGeocentric(-math.Pi/2, 0.5, 0)
	require.NoError(t, err)
	got, err := conv.ToGeocentric(3*math.Pi/2, 0.5, 0)
	require.NoError(t, err)
	assert.InDelta(t, want.X, got.X, 1e-6)
	assert.InDelta(t, want.Y, got.Y, 1e-6)
	assert.InDelta(t, want.Z, got.Z, 1e-6)
}

func TestWrapLon(t *testing.T) {
	tests := []struct{ in, want float64 }{
		{0, 0},
		{math.Pi, math.Pi},
		{-math.Pi, math.Pi},
		{3 * math.Pi / 2, -math.Pi / 2},
		{-3 * math.Pi / 2, math.Pi / 2},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, wrapLon(tt.in), 1e-12, "wrapLon(%v)", tt.in)
	}
}
