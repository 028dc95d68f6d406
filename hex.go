package hexmap

import (
	"github.com/geonext/hexmap/geom"
	"github.com/geonext/hexmap/hexgrid"
	"github.com/geonext/hexmap/projection"
)

// HexCell is one populated cell of the map.
type HexCell struct {
	Name string
	// Anchor is the top-left corner of the outline in the vector map.
	Anchor geom.Vec[geom.SVG]
	Coord  hexgrid.GridCoord
	Axial  hexgrid.AxialCoord
	// Label is the country part of Name.
	Label   string
	Country uint8
	// Samples holds one byte per channel, in channel order.
	Samples []uint8
	// Geo is the position of the hex on the globe. It is only meaningful
	// when HasGeo is set.
	Geo    projection.LatLon
	HasGeo bool
}
