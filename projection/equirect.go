package projection

import "github.com/geonext/hexmap/geom"

// Equirectangular is the plate carrée projection most global raster products
// are distributed in: x is the longitude and y the latitude, in degrees.
type Equirectangular[S geom.Space] struct{}

func (Equirectangular[S]) Name() string { return "equirectangular" }

func (Equirectangular[S]) Forward(ll LatLon) geom.Vec[S] {
	return geom.V[S](ll.Lon, ll.Lat)
}

func (Equirectangular[S]) Inverse(v geom.Vec[S]) LatLon {
	return LatLon{Lat: v.Y, Lon: v.X}
}
