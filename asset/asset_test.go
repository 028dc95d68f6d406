package asset

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/geonext/hexmap/country"
	"github.com/geonext/hexmap/hexgrid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsset_MapLayout(t *testing.T) {
	assert := assert.New(t)

	m, err := NewMap(3, 2, 2, []string{"France", "Spain"})
	require.NoError(t, err)
	m.Set(1, 0, 0, []uint8{10, 20})
	m.Set(2, 1, 1, []uint8{30})

	var buf bytes.Buffer
	n, err := m.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(int64(buf.Len()), n)

	data := buf.Bytes()
	assert.Equal(uint16(3), binary.LittleEndian.Uint16(data[0:]))
	assert.Equal(uint16(2), binary.LittleEndian.Uint16(data[2:]))
	assert.Equal(uint16(2), binary.LittleEndian.Uint16(data[4:]))
	assert.Equal(byte(2), data[6])
	assert.Equal("\x06France\x05Spain", string(data[7:20]))

	cells := data[20:]
	assert.Len(cells, 3*2*3)
	// column 0 is absent
	assert.Equal([]byte{254, 255, 255, 254, 255, 255}, cells[0:6])
	// column 1, row 0 comes right after all of column 0
	assert.Equal([]byte{0, 10, 20}, cells[6:9])
	// column 2, row 1 is the last record; the missing sample keeps its sentinel
	assert.Equal([]byte{1, 30, 255}, cells[15:18])
}

func TestAsset_MapRoundTrip(t *testing.T) {
	assert := assert.New(t)

	m, err := NewMap(4, 5, 1, []string{"Chile"})
	require.NoError(t, err)
	m.Set(3, 4, 0, []uint8{99})

	var buf bytes.Buffer
	_, err = m.WriteTo(&buf)
	require.NoError(t, err)

	got, err := ReadMap(&buf)
	require.NoError(t, err)
	assert.Equal(m.Width, got.Width)
	assert.Equal(m.Height, got.Height)
	assert.Equal(m.Channels, got.Channels)
	assert.Equal(m.Countries, got.Countries)

	owner, samples := got.Cell(3, 4)
	assert.Equal(uint8(0), owner)
	assert.Equal([]uint8{99}, samples)
	owner, samples = got.Cell(0, 0)
	assert.Equal(country.Unclaimed, owner)
	assert.Equal([]uint8{NoSample}, samples)

	_, err = ReadMap(bytes.NewReader(buf.Bytes()[:3]))
	assert.Error(err)
}

func TestAsset_MapLimits(t *testing.T) {
	assert := assert.New(t)

	_, err := NewMap(math.MaxUint16+1, 1, 0, nil)
	assert.ErrorIs(err, ErrMapLayout)
	_, err = NewMap(1, 1, 256, nil)
	assert.ErrorIs(err, ErrMapLayout)
	_, err = NewMap(1, 1, 0, make([]string, 255))
	assert.ErrorIs(err, country.ErrTooManyCountries)
	_, err = NewMap(1, 1, 0, []string{strings.Repeat("x", 256)})
	assert.ErrorIs(err, country.ErrNameTooLong)
}

func TestAsset_Varint(t *testing.T) {
	cases := []struct {
		v    uint64
		size int
	}{
		{0, 1},
		{250, 1},
		{251, 3},
		{65535, 3},
		{65536, 5},
		{math.MaxUint32, 5},
		{math.MaxUint32 + 1, 9},
		{math.MaxUint64, 9},
	}
	for _, tc := range cases {
		buf := AppendUvarint(nil, tc.v)
		assert.Len(t, buf, tc.size, "value %d", tc.v)

		got, err := ReadUvarint(bytes.NewReader(buf))
		require.NoError(t, err)
		assert.Equal(t, tc.v, got)
	}
}

func TestAsset_VarintErrors(t *testing.T) {
	assert := assert.New(t)

	_, err := ReadUvarint(bytes.NewReader([]byte{255}))
	assert.ErrorIs(err, ErrVarint)

	_, err = ReadUvarint(bytes.NewReader([]byte{251, 1}))
	assert.Error(err)

	wide := append([]byte{254, 7}, make([]byte, 15)...)
	v, err := ReadUvarint(bytes.NewReader(wide))
	assert.NoError(err)
	assert.Equal(uint64(7), v)

	wide[16] = 1
	_, err = ReadUvarint(bytes.NewReader(wide))
	assert.ErrorIs(err, ErrVarint)
}

func TestAsset_Territories(t *testing.T) {
	assert := assert.New(t)

	m, err := NewMap(3, 2, 0, []string{"Peru"})
	require.NoError(t, err)
	m.Set(0, 0, 0, nil)
	m.Set(1, 0, 0, nil)
	m.Set(2, 1, 0, nil)

	terr := TerritoriesOf(m)
	assert.Equal([]uint8{0, 0, 254, 254, 254, 0}, terr.Owners)
	assert.Equal([]Run{{2, 0}, {3, 254}, {1, 0}}, terr.Runs())

	var buf bytes.Buffer
	require.NoError(t, WriteTerritories(&buf, terr))
	assert.Equal([]byte{3, 3, 2, 0, 3, 254, 1, 0, 1, 4, 'P', 'e', 'r', 'u'}, buf.Bytes())

	got, err := ReadTerritories(&buf)
	require.NoError(t, err)
	assert.Equal(terr, got)
}

func TestAsset_TerritoriesLongRuns(t *testing.T) {
	assert := assert.New(t)

	terr := &Territories{Width: 1000, Owners: make([]uint8, math.MaxUint16+10), Names: []string{"Russia"}}
	runs := terr.Runs()
	assert.Equal([]Run{{math.MaxUint16, 0}, {10, 0}}, runs)

	var buf bytes.Buffer
	require.NoError(t, WriteTerritories(&buf, terr))
	got, err := ReadTerritories(&buf)
	require.NoError(t, err)
	assert.Len(got.Owners, math.MaxUint16+10)
}

func testAdjacency() *hexgrid.Adjacency {
	return hexgrid.NewAdjacency(map[string]hexgrid.AxialCoord{
		"Spain1":  {Q: 0, R: 0},
		"France1": {Q: 1, R: 0},
		"France2": {Q: 1, R: -1},
	})
}

func TestAsset_SideTables(t *testing.T) {
	assert := assert.New(t)
	adj := testAdjacency()

	var axial bytes.Buffer
	require.NoError(t, WriteAxialTable(&axial, adj))
	assert.Equal(`{
  "0,0": "Spain1",
  "1,-1": "France2",
  "1,0": "France1"
}
`, axial.String())

	table, err := ReadAxialTable(bytes.NewReader(axial.Bytes()))
	require.NoError(t, err)
	assert.Equal("France2", table[hexgrid.AxialCoord{Q: 1, R: -1}])
	assert.Len(table, 3)

	_, err = ReadAxialTable(strings.NewReader(`{"1;0": "France1"}`))
	assert.Error(err)

	var neighbors bytes.Buffer
	require.NoError(t, WriteNeighborTable(&neighbors, adj))
	var got map[string][]string
	require.NoError(t, json.Unmarshal(neighbors.Bytes(), &got))
	assert.Equal([]string{"France1", "France2"}, got["Spain1"])
	assert.Equal([]string{"France2", "Spain1"}, got["France1"])
	assert.True(strings.Index(neighbors.String(), `"France1"`) < strings.Index(neighbors.String(), `"Spain1": [`))
}

func TestAsset_Countries(t *testing.T) {
	assert := assert.New(t)

	reg, err := country.NewRegistry([]string{"Spain", "France", "Atlantis"})
	require.NoError(t, err)

	entries := Countries(reg)
	assert.Equal([]CountryEntry{
		{Index: 0, Name: "Atlantis"},
		{Index: 1, Name: "France", ISO: "FR"},
		{Index: 2, Name: "Spain", ISO: "ES"},
	}, entries)

	var buf bytes.Buffer
	require.NoError(t, WriteCountries(&buf, reg))
	assert.Contains(buf.String(), `"iso": "FR"`)
}

func TestAsset_GeoIndex(t *testing.T) {
	assert := assert.New(t)

	hexes := []Hex{
		{Name: "France1", Country: "France", Lat: 48.85, Lon: 2.35},
		{Name: "Spain1", Country: "Spain", Lat: 40.4, Lon: -3.7},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteGeoIndex(&buf, hexes, DefaultH3Resolution))

	var got map[string]struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
		H3  string  `json:"h3"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Len(got, 2)
	assert.Equal(48.85, got["France1"].Lat)
	assert.Len(got["France1"].H3, 15)
	assert.NotEqual(got["France1"].H3, got["Spain1"].H3)

	err := WriteGeoIndex(&buf, hexes, 99)
	assert.Error(err)
}

func TestAsset_GeoJSON(t *testing.T) {
	assert := assert.New(t)

	hexes := []Hex{
		{Name: "France1", Country: "France", Coord: hexgrid.GridCoord{Col: 4, Row: 2}, Lat: 48.85, Lon: 2.35},
		{Name: "Spain1", Country: "Spain", Lat: 40.4, Lon: -3.7},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteGeoJSON(&buf, hexes))

	var fc struct {
		Type     string `json:"type"`
		Features []struct {
			Geometry struct {
				Coordinates []float64 `json:"coordinates"`
			} `json:"geometry"`
			Properties map[string]any `json:"properties"`
		} `json:"features"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &fc))
	assert.Equal("FeatureCollection", fc.Type)
	require.Len(t, fc.Features, 2)
	assert.Equal([]float64{2.35, 48.85}, fc.Features[0].Geometry.Coordinates)
	assert.Equal("France1", fc.Features[0].Properties["name"])
	assert.Equal(float64(4), fc.Features[0].Properties["col"])
}
