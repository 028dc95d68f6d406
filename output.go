package hexmap

import (
	"bytes"
	"io"
	"os"
	"path/filepath"

	"github.com/geonext/hexmap/asset"
	"github.com/pkg/errors"
)

// Output file names.
const (
	MapFile         = "map.bin"
	AxialFile       = "axial.json"
	NeighborsFile   = "neighbors.json"
	TerritoriesFile = "territories.bin"
	CountriesFile   = "countries.json"
	GeoIndexFile    = "geo.json"
	GeoJSONFile     = "hexes.geojson"
)

// Output is one encoded asset file.
type Output struct {
	Name string
	Data []byte
}

// Outputs encodes every asset in memory. The GeoJSON debug export is only
// included when geojson is set.
func (r *Result) Outputs(geojson bool) ([]Output, error) {
	type encoder struct {
		name string
		fn   func(io.Writer) error
	}
	encoders := []encoder{
		{MapFile, func(w io.Writer) error { _, err := r.Map.WriteTo(w); return err }},
		{AxialFile, func(w io.Writer) error { return asset.WriteAxialTable(w, r.Adjacency) }},
		{NeighborsFile, func(w io.Writer) error { return asset.WriteNeighborTable(w, r.Adjacency) }},
		{TerritoriesFile, func(w io.Writer) error { return asset.WriteTerritories(w, asset.TerritoriesOf(r.Map)) }},
		{CountriesFile, func(w io.Writer) error { return asset.WriteCountries(w, r.Registry) }},
		{GeoIndexFile, func(w io.Writer) error { return asset.WriteGeoIndex(w, r.GeoHexes(), r.H3Resolution) }},
	}
	if geojson {
		encoders = append(encoders, encoder{GeoJSONFile, func(w io.Writer) error {
			return asset.WriteGeoJSON(w, r.GeoHexes())
		}})
	}

	outputs := make([]Output, 0, len(encoders))
	for _, enc := range encoders {
		var buf bytes.Buffer
		if err := enc.fn(&buf); err != nil {
			return nil, errors.Wrapf(err, "encoding %s", enc.name)
		}
		outputs = append(outputs, Output{Name: enc.name, Data: buf.Bytes()})
	}
	return outputs, nil
}

// WriteOutputs writes the encoded files into dir, creating it if needed.
func WriteOutputs(dir string, outputs []Output) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "unable to create the output directory %s", dir)
	}
	for _, out := range outputs {
		path := filepath.Join(dir, out.Name)
		if err := os.WriteFile(path, out.Data, 0o644); err != nil {
			return errors.Wrapf(err, "unable to write %s", path)
		}
	}
	return nil
}
