// Package projection chains the coordinate transforms that take a hex grid
// coordinate to a pixel of a geographic raster.
//
// The chart drawn by the vector map is a world projection whose scale and
// offset are unknown, and every raster product crops the globe differently.
// Both gaps are closed by two-point calibrations against reference hexes whose
// true position is known.
package projection

import (
	"math"
	"strings"

	"github.com/geonext/hexmap/geom"
	"github.com/pkg/errors"
)

// LatLon is a geographic position in degrees.
type LatLon struct {
	Lat float64 `json:"lat" toml:"lat"`
	Lon float64 `json:"lon" toml:"lon"`
}

// Projection maps geographic positions to the native units of space S and back.
// Positions outside the projection's domain map to NaN coordinates.
type Projection[S geom.Space] interface {
	Forward(LatLon) geom.Vec[S]
	Inverse(geom.Vec[S]) LatLon
	Name() string
}

var ErrUnknownProjection = errors.New("unknown projection")

// ByName resolves "robinson", "equirectangular" (or "eqc") or a proj4
// definition starting with "+proj=".
func ByName[S geom.Space](name string) (Projection[S], error) {
	switch n := strings.TrimSpace(name); {
	case strings.EqualFold(n, "robinson"), strings.EqualFold(n, "robin"):
		return Robinson[S]{}, nil
	case n == "", strings.EqualFold(n, "equirectangular"), strings.EqualFold(n, "eqc"):
		return Equirectangular[S]{}, nil
	case strings.HasPrefix(n, "+proj="):
		p, err := NewProj4[S](n)
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, errors.Wrapf(ErrUnknownProjection, "%q", name)
	}
}

// Normalize wraps the longitude into [-180, 180) and clamps the latitude into
// [-90, 90], absorbing numerical drift near the poles and the antimeridian.
func Normalize(ll LatLon) LatLon {
	lon := math.Mod(ll.Lon+180, 360)
	if lon < 0 {
		lon += 360
	}
	return LatLon{
		Lat: math.Max(-90, math.Min(90, ll.Lat)),
		Lon: lon - 180,
	}
}

func isNaN[S geom.Space](v geom.Vec[S]) bool {
	return math.IsNaN(v.X) || math.IsNaN(v.Y) || math.IsInf(v.X, 0) || math.IsInf(v.Y, 0)
}
