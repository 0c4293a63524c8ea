package ellipsoid

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWellKnown(t *testing.T) {
	assert.Equal(t, 6378137.0, WGS84.A())
	assert.InDelta(t, 6356752.314245, WGS84.B(), 1e-6)
	assert.InDelta(t, 0.00669437999014, WGS84.Es(), 1e-14)
	assert.InDelta(t, 0.0818191908426, WGS84.E(), 1e-12)

	// Clarke 1866 is defined by its polar radius, which is kept as given.
	assert.Equal(t, 6356583.8, Clarke1866.B())
	a, b := 6378206.4, 6356583.8
	assert.InDelta(t, 1-(b*b)/(a*a), Clarke1866.Es(), 1e-15)

	assert.True(t, Sphere.IsSphere())
	assert.False(t, Bessel.IsSphere())
	assert.Len(t, Ellipsoids(), 16)
	for _, e := range Ellipsoids() {
		assert.NotEmpty(t, e.ShortName())
		assert.Equal(t, e.Name(), e.String())
	}
}

func TestNewEllipsoid(t *testing.T) {
	t.Run("inverse flattening wins", func(t *testing.T) {
		e, err := NewEllipsoid("test", "Test", 6378160.0, 6356774.7, 298.25)
		require.NoError(t, err)
		f := 1 / 298.25
		assert.InDelta(t, 2*f-f*f, e.Es(), 1e-18)
	})

	t.Run("radius and eccentricity", func(t *testing.T) {
		e, err := NewEllipsoidES("grs80", "GRS80", GRS80.A(), GRS80.Es())
		require.NoError(t, err)
		assert.True(t, e.Equal(GRS80))
		assert.InDelta(t, GRS80.B(), e.B(), 1e-6)
	})

	tests := []struct {
		name     string
		a, b, rf float64
	}{
		{"no shape", 6378137, 0, 0},
		{"zero radius", 0, 0, 298.257223563},
		{"negative radius", -1, 6356752, 0},
		{"polar radius larger than equatorial", 6356752, 6378137, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewEllipsoid("bad", "Bad", tt.a, tt.b, tt.rf)
			var cfg *ConfigurationError
			require.True(t, errors.As(err, &cfg), "got %v", err)
			assert.Contains(t, cfg.Error(), "ellipsoid bad")
		})
	}

	_, err := NewEllipsoidES("bad", "Bad", 6378137, 1)
	assert.Error(t, err)
}

func TestEqual(t *testing.T) {
	same, err := NewEllipsoid("WGS84", "copy", 6378137.0, 0, 298.257223563)
	require.NoError(t, err)

	assert.True(t, WGS84.Equal(WGS84))
	assert.True(t, WGS84.Equal(same))
	assert.True(t, same.Equal(WGS84))
	assert.False(t, WGS84.Equal(GRS80), "WGS84 and GRS80 differ in the 11th digit of e²")
	assert.False(t, WGS84.Equal(nil))
	assert.False(t, Bessel.Equal(International))
}
