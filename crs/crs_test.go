package crs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pspoerri/geotransform/datum"
	"github.com/pspoerri/geotransform/ellipsoid"
	"github.com/pspoerri/geotransform/projection"
)

func TestNewDefaultName(t *testing.T) {
	p, err := projection.NewUTM(32, false, ellipsoid.WGS84)
	require.NoError(t, err)

	c := New("", nil, datum.WGS84, p)
	assert.Equal(t, "tmerc-CS", c.Name())
	assert.Equal(t, "tmerc-CS", c.String())

	named := New("EPSG:32632", nil, datum.WGS84, p)
	assert.Equal(t, "EPSG:32632", named.Name())
}

func TestParametersAreCopied(t *testing.T) {
	params := []string{"+proj=utm", "+zone=32", "+datum=WGS84"}
	p, err := projection.NewUTM(32, false, ellipsoid.WGS84)
	require.NoError(t, err)

	c := New("EPSG:32632", params, datum.WGS84, p)
	params[0] = "+proj=merc"
	assert.Equal(t, "+proj=utm +zone=32 +datum=WGS84", c.ParameterString())

	got := c.Parameters()
	got[1] = "+zone=33"
	assert.Equal(t, "+zone=32", c.Parameters()[1])
}

func TestEllipsoidFallback(t *testing.T) {
	p, err := projection.NewUTM(36, true, ellipsoid.Clarke1866)
	require.NoError(t, err)

	withDatum := New("", nil, datum.Potsdam, p)
	assert.Same(t, ellipsoid.Bessel, withDatum.Ellipsoid())

	withoutDatum := New("", nil, nil, p)
	assert.Same(t, ellipsoid.Clarke1866, withoutDatum.Ellipsoid())

	assert.Nil(t, Geographic.Ellipsoid())
	assert.Nil(t, Geographic.Datum())
	assert.Nil(t, Geographic.Projection())
}

func TestIsGeographic(t *testing.T) {
	utm, err := projection.NewUTM(32, false, ellipsoid.WGS84)
	require.NoError(t, err)
	ll, err := projection.NewLongLat(projection.DefaultParams(ellipsoid.WGS84))
	require.NoError(t, err)

	tests := []struct {
		name string
		crs  *CRS
		want bool
	}{
		{"sentinel", Geographic, true},
		{"longlat", New("EPSG:4326", nil, datum.WGS84, ll), true},
		{"no projection", New("bare", nil, datum.WGS84, nil), true},
		{"utm", New("EPSG:32632", nil, datum.WGS84, utm), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.crs.IsGeographic())
		})
	}
}

func TestDeriveGeographic(t *testing.T) {
	t.Run("keeps datum parameters", func(t *testing.T) {
		rd := rdNew(t)
		geo := rd.Geographic()

		assert.Equal(t, "GEO-amersfoort", geo.Name())
		assert.Same(t, rd.Datum(), geo.Datum())
		assert.True(t, geo.IsGeographic())
		assert.Equal(t,
			[]string{"+proj=longlat", "+ellps=bessel", "+towgs84=565.237,50.0087,465.658,-0.406857,0.350733,-1.87035,4.0812"},
			geo.Parameters())
	})

	t.Run("ellipsoid only", func(t *testing.T) {
		p, err := projection.NewUTM(36, true, ellipsoid.Clarke1866)
		require.NoError(t, err)
		geo := New("tete", []string{"+proj=utm", "+zone=36", "+south", "+ellps=clrk66"}, nil, p).Geographic()

		assert.Equal(t, "GEO-clrk66", geo.Name())
		assert.Nil(t, geo.Datum())
		assert.Same(t, ellipsoid.Clarke1866, geo.Ellipsoid())
		assert.Equal(t, "+proj=longlat +ellps=clrk66", geo.ParameterString())
	})

	t.Run("sentinel", func(t *testing.T) {
		assert.Same(t, Geographic, Geographic.Geographic())
	})
}
