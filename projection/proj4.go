package projection

import (
	"math"

	"github.com/ctessum/geom/proj"
	"github.com/geonext/hexmap/geom"
	"github.com/pkg/errors"
)

// geographicDef is the spatial reference of LatLon values.
const geographicDef = "+proj=longlat +datum=WGS84 +no_defs"

// Proj4 is a projection described by a proj4 definition string, for raster
// products that are not distributed in plate carrée.
type Proj4[S geom.Space] struct {
	def      string
	forward  proj.Transformer
	backward proj.Transformer
}

// NewProj4 parses a proj4 definition and prepares the transforms to and from
// geographic coordinates.
func NewProj4[S geom.Space](def string) (*Proj4[S], error) {
	geoSR, err := proj.Parse(geographicDef)
	if err != nil {
		return nil, errors.Wrap(err, "while parsing the geographic reference")
	}
	sr, err := proj.Parse(def)
	if err != nil {
		return nil, errors.Wrapf(err, "while parsing %q", def)
	}
	fwd, err := geoSR.NewTransform(sr)
	if err != nil {
		return nil, errors.Wrapf(err, "while creating the forward transform of %q", def)
	}
	bwd, err := sr.NewTransform(geoSR)
	if err != nil {
		return nil, errors.Wrapf(err, "while creating the inverse transform of %q", def)
	}
	// proj accepts unknown projection names and fails on first use.
	x, y, err := fwd(0, 0)
	if err != nil || math.IsNaN(x) || math.IsNaN(y) {
		return nil, errors.Wrapf(ErrUnknownProjection, "%q", def)
	}
	return &Proj4[S]{def: def, forward: fwd, backward: bwd}, nil
}

func (p *Proj4[S]) Name() string { return p.def }

func (p *Proj4[S]) Forward(ll LatLon) geom.Vec[S] {
	x, y, err := p.forward(ll.Lon, ll.Lat)
	if err != nil {
		return geom.V[S](math.NaN(), math.NaN())
	}
	return geom.V[S](x, y)
}

func (p *Proj4[S]) Inverse(v geom.Vec[S]) LatLon {
	lon, lat, err := p.backward(v.X, v.Y)
	if err != nil {
		return LatLon{Lat: math.NaN(), Lon: math.NaN()}
	}
	return LatLon{Lat: lat, Lon: lon}
}
