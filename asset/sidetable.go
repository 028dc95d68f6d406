package asset

import (
	"encoding/json"
	"io"

	"github.com/geonext/hexmap/country"
	"github.com/geonext/hexmap/hexgrid"
	"github.com/pkg/errors"
)

// writeJSON writes v two-space indented. Map keys come out sorted.
func writeJSON(w io.Writer, v any, what string) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return errors.Wrap(enc.Encode(v), what)
}

// WriteAxialTable writes the "q,r" -> hex name table.
func WriteAxialTable(w io.Writer, adj *hexgrid.Adjacency) error {
	return writeJSON(w, adj.ByAxial, "axial table")
}

// ReadAxialTable reads a table written by WriteAxialTable.
func ReadAxialTable(r io.Reader) (map[hexgrid.AxialCoord]string, error) {
	var raw map[string]string
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, errors.Wrap(err, "axial table")
	}
	table := make(map[hexgrid.AxialCoord]string, len(raw))
	for key, name := range raw {
		a, err := hexgrid.ParseAxial(key)
		if err != nil {
			return nil, errors.Wrap(err, "axial table")
		}
		table[a] = name
	}
	return table, nil
}

// WriteNeighborTable writes the hex name -> neighbor names table. Neighbors
// keep the direction order E, NE, NW, W, SW, SE.
func WriteNeighborTable(w io.Writer, adj *hexgrid.Adjacency) error {
	return writeJSON(w, adj.Neighbors, "neighbor table")
}

// CountryEntry is one row of the country side table.
type CountryEntry struct {
	Index uint8  `json:"index"`
	Name  string `json:"name"`
	ISO   string `json:"iso,omitempty"`
}

// Countries lists the registry in index order with the ISO code of every label
// that names a real country.
func Countries(reg *country.Registry) []CountryEntry {
	entries := make([]CountryEntry, 0, reg.Len())
	for i, label := range reg.Labels() {
		entries = append(entries, CountryEntry{Index: uint8(i), Name: label, ISO: country.ISO(label)})
	}
	return entries
}

// WriteCountries writes the country side table.
func WriteCountries(w io.Writer, reg *country.Registry) error {
	return writeJSON(w, Countries(reg), "country table")
}
