package asset

import (
	"io"

	"github.com/geonext/hexmap/hexgrid"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/pkg/errors"
	"github.com/uber/h3-go/v4"
)

// DefaultH3Resolution gives cells of roughly 250 km², about the size of a hex
// on a world map a few hundred columns wide.
const DefaultH3Resolution = 4

// Hex is the geographic position of a populated hex.
type Hex struct {
	Name    string
	Country string
	Coord   hexgrid.GridCoord
	Lat     float64
	Lon     float64
}

type geoEntry struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
	H3  string  `json:"h3"`
}

// WriteGeoIndex writes hex name -> {lat, lon, h3} with the H3 cell of every
// hex centre at the given resolution.
func WriteGeoIndex(w io.Writer, hexes []Hex, resolution int) error {
	index := make(map[string]geoEntry, len(hexes))
	for _, hex := range hexes {
		cell, err := h3.LatLngToCell(h3.NewLatLng(hex.Lat, hex.Lon), resolution)
		if err != nil {
			return errors.Wrapf(err, "h3 cell of %s", hex.Name)
		}
		index[hex.Name] = geoEntry{Lat: hex.Lat, Lon: hex.Lon, H3: cell.String()}
	}
	return writeJSON(w, index, "geo index")
}

// WriteGeoJSON writes the hex centres as a point FeatureCollection for
// inspection in GIS tools.
func WriteGeoJSON(w io.Writer, hexes []Hex) error {
	fc := geojson.NewFeatureCollection()
	for _, hex := range hexes {
		f := geojson.NewFeature(orb.Point{hex.Lon, hex.Lat})
		f.Properties["name"] = hex.Name
		f.Properties["country"] = hex.Country
		f.Properties["col"] = hex.Coord.Col
		f.Properties["row"] = hex.Coord.Row
		fc.Append(f)
	}
	data, err := fc.MarshalJSON()
	if err != nil {
		return errors.Wrap(err, "geojson")
	}
	_, err = w.Write(data)
	return errors.Wrap(err, "geojson")
}
