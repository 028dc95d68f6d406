package projection

import (
	"image"
	"math"
	"testing"

	"github.com/geonext/hexmap/geom"
	"github.com/geonext/hexmap/hexgrid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRobinson_RoundTrip(t *testing.T) {
	var p Robinson[geom.Native]
	for lat := -85.0; lat <= 85.0; lat += 2.5 {
		for lon := -180.0; lon < 180.0; lon += 7.3 {
			ll := LatLon{Lat: lat, Lon: lon}
			back := p.Inverse(p.Forward(ll))
			assert.InDelta(t, lat, back.Lat, 1e-6, "lat of %v", ll)
			assert.InDelta(t, lon, back.Lon, 1e-6, "lon of %v", ll)
		}
	}
}

func TestRobinson_KnownValues(t *testing.T) {
	assert := assert.New(t)
	var p Robinson[geom.Native]

	assert.Equal(geom.V[geom.Native](0, 0), p.Forward(LatLon{}))

	v := p.Forward(LatLon{Lat: 90, Lon: 180})
	assert.InDelta(robinsonYScale, v.Y, 1e-12)
	assert.InDelta(robinsonXScale*0.5322*math.Pi, v.X, 1e-12)

	south := p.Forward(LatLon{Lat: -45, Lon: 0})
	assert.InDelta(-robinsonYScale*0.5571, south.Y, 1e-12)

	// Beyond the pole the inverse saturates.
	assert.Equal(90.0, p.Inverse(geom.V[geom.Native](0, 2)).Lat)
}

func TestNormalize(t *testing.T) {
	testCases := []struct {
		in, want LatLon
	}{
		{LatLon{Lat: 10, Lon: 20}, LatLon{Lat: 10, Lon: 20}},
		{LatLon{Lat: 90.0001, Lon: 180}, LatLon{Lat: 90, Lon: -180}},
		{LatLon{Lat: -91, Lon: -180.5}, LatLon{Lat: -90, Lon: 179.5}},
		{LatLon{Lat: 0, Lon: 540}, LatLon{Lat: 0, Lon: -180}},
	}
	for _, tc := range testCases {
		got := Normalize(tc.in)
		assert.InDelta(t, tc.want.Lat, got.Lat, 1e-9)
		assert.InDelta(t, tc.want.Lon, got.Lon, 1e-9)
	}
}

func TestChartOf(t *testing.T) {
	assert.Equal(t, geom.V[geom.Chart](3, 4), ChartOf(hexgrid.GridCoord{Col: 3, Row: 4}))
	assert.Equal(t, geom.V[geom.Chart](2.5, 5), ChartOf(hexgrid.GridCoord{Col: 3, Row: 5}))
	assert.Equal(t, geom.V[geom.Chart](-0.5, -1), ChartOf(hexgrid.GridCoord{Col: 0, Row: -1}))
}

func TestByName(t *testing.T) {
	assert := assert.New(t)

	p, err := ByName[geom.Native]("Robinson")
	require.NoError(t, err)
	assert.Equal("robinson", p.Name())

	q, err := ByName[geom.Equirect]("")
	require.NoError(t, err)
	assert.Equal("equirectangular", q.Name())

	_, err = ByName[geom.Native]("mollweide")
	assert.True(errors.Is(err, ErrUnknownProjection))

	_, err = ByName[geom.Equirect]("+proj=nonsense")
	assert.True(errors.Is(err, ErrUnknownProjection))
}

func TestProj4_Mercator(t *testing.T) {
	p, err := NewProj4[geom.Equirect]("+proj=merc +a=6378137 +b=6378137 +lat_ts=0.0 +lon_0=0.0 +x_0=0.0 +y_0=0 +k=1.0 +units=m +no_defs")
	require.NoError(t, err)

	origin := p.Forward(LatLon{})
	assert.InDelta(t, 0, origin.X, 1e-6)
	assert.InDelta(t, 0, origin.Y, 1e-6)

	ll := LatLon{Lat: 20, Lon: 10}
	back := p.Inverse(p.Forward(ll))
	assert.InDelta(t, ll.Lat, back.Lat, 1e-6)
	assert.InDelta(t, ll.Lon, back.Lon, 1e-6)

	_, err = NewProj4[geom.Equirect]("+proj=nonsense")
	assert.True(t, errors.Is(err, ErrUnknownProjection))
}

func testAnchors() (Anchor, Anchor) {
	return Anchor{Hex: "North", Coord: hexgrid.GridCoord{Col: 10, Row: 4}, Geo: LatLon{Lat: 51.5, Lon: -0.1}},
		Anchor{Hex: "South", Coord: hexgrid.GridCoord{Col: 30, Row: 31}, Geo: LatLon{Lat: -33.9, Lon: 18.4}}
}

func TestCalibrateWorld_AnchorsMapBack(t *testing.T) {
	a1, a2 := testAnchors()
	world, err := CalibrateWorld(Robinson[geom.Native]{}, a1, a2)
	require.NoError(t, err)

	for _, a := range []Anchor{a1, a2} {
		got := world.Geo(a.Coord)
		assert.InDelta(t, a.Geo.Lat, got.Lat, 1e-9)
		assert.InDelta(t, a.Geo.Lon, got.Lon, 1e-9)
	}

	// SVG rows grow southwards.
	assert.Less(t, world.ChartToNative.Y.Scale, 0.0)

	mid := world.Geo(hexgrid.GridCoord{Col: 20, Row: 18})
	assert.Less(t, mid.Lat, a1.Geo.Lat)
	assert.Greater(t, mid.Lat, a2.Geo.Lat)
}

func TestCalibrateWorld_Degenerate(t *testing.T) {
	a1, a2 := testAnchors()
	a2.Coord.Row = a1.Coord.Row
	_, err := CalibrateWorld(Robinson[geom.Native]{}, a1, a2)
	assert.True(t, errors.Is(err, geom.ErrDegenerateAnchors))
}

func TestRasterCalibration_Pixel(t *testing.T) {
	assert := assert.New(t)
	a1, a2 := testAnchors()

	r, err := CalibrateRaster(Equirectangular[geom.Equirect]{}, a1, a2,
		geom.V[geom.Pixel](100, 40), geom.V[geom.Pixel](300, 250), 400, 300)
	require.NoError(t, err)

	p, err := r.Pixel(a1.Geo)
	require.NoError(t, err)
	assert.Equal(image.Pt(100, 40), p)

	p, err = r.Pixel(a2.Geo)
	require.NoError(t, err)
	assert.Equal(image.Pt(300, 250), p)

	// Far outside the crop: clamped into the bounds.
	p, err = r.Pixel(LatLon{Lat: -89, Lon: 179})
	require.NoError(t, err)
	assert.Equal(image.Pt(399, 299), p)

	_, err = CalibrateRaster(Equirectangular[geom.Equirect]{}, a1, a2,
		geom.V[geom.Pixel](0, 0), geom.V[geom.Pixel](1, 1), 0, 10)
	assert.Error(err)
}

func TestPipeline_ShortCircuitsUnpopulated(t *testing.T) {
	assert := assert.New(t)
	a1, a2 := testAnchors()

	world, err := CalibrateWorld(Robinson[geom.Native]{}, a1, a2)
	require.NoError(t, err)
	raster, err := CalibrateRaster(Equirectangular[geom.Equirect]{}, a1, a2,
		geom.V[geom.Pixel](100, 40), geom.V[geom.Pixel](300, 250), 400, 300)
	require.NoError(t, err)

	pl := NewPipeline(world, []hexgrid.GridCoord{a1.Coord, a2.Coord})
	assert.True(pl.Populated(a1.Coord))

	p, err := pl.Pixel(a2.Coord, raster)
	require.NoError(t, err)
	assert.Equal(image.Pt(300, 250), p)

	_, err = pl.Pixel(hexgrid.GridCoord{Col: 11, Row: 4}, raster)
	assert.True(errors.Is(err, ErrNoGeography))

	_, err = pl.Geo(hexgrid.GridCoord{Col: 0, Row: 0})
	assert.True(errors.Is(err, ErrNoGeography))
}
