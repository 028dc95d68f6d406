package projection

import (
	"image"
	"math"

	"github.com/geonext/hexmap/geom"
	"github.com/geonext/hexmap/hexgrid"
	"github.com/pkg/errors"
)

var (
	// ErrNoGeography is returned for grid cells outside the populated hex set.
	ErrNoGeography = errors.New("grid cell has no geography")
	// ErrOutOfDomain is returned when a position falls outside a projection's domain.
	ErrOutOfDomain = errors.New("position outside the projection domain")
)

// Anchor is a reference hex whose geographic position is known.
type Anchor struct {
	Hex   string
	Coord hexgrid.GridCoord
	Geo   LatLon
}

// ChartOf undoes the odd-row half-column shift of an offset coordinate.
func ChartOf(g hexgrid.GridCoord) geom.Vec[geom.Chart] {
	return geom.V[geom.Chart](float64(g.Col)-0.5*float64(g.Row&1), float64(g.Row))
}

// WorldCalibration maps chart units onto the native units of the world
// projection the vector map was drawn in.
type WorldCalibration struct {
	World         Projection[geom.Native]
	ChartToNative geom.Affine[geom.Chart, geom.Native]
}

// CalibrateWorld fits the chart to the world projection from two anchors.
func CalibrateWorld(world Projection[geom.Native], a1, a2 Anchor) (WorldCalibration, error) {
	t, err := geom.FitTwoPoint(
		ChartOf(a1.Coord), world.Forward(a1.Geo),
		ChartOf(a2.Coord), world.Forward(a2.Geo),
	)
	if err != nil {
		return WorldCalibration{}, errors.Wrapf(err, "anchors %q and %q", a1.Hex, a2.Hex)
	}
	return WorldCalibration{World: world, ChartToNative: t}, nil
}

// Geo returns the geographic position of a grid coordinate. It does not check
// whether the coordinate is populated.
func (c WorldCalibration) Geo(g hexgrid.GridCoord) LatLon {
	native := c.ChartToNative.Apply(ChartOf(g))
	return Normalize(c.World.Inverse(native))
}

// RasterCalibration maps geographic positions onto the pixels of one raster.
type RasterCalibration struct {
	Projection Projection[geom.Equirect]
	ToPixel    geom.Affine[geom.Equirect, geom.Pixel]
	Width      int
	Height     int
}

// CalibrateRaster fits the raster's native units to its pixels from the two
// anchors and their known pixel locations p1 and p2 in that raster.
func CalibrateRaster(p Projection[geom.Equirect], a1, a2 Anchor, p1, p2 geom.Vec[geom.Pixel], width, height int) (RasterCalibration, error) {
	if width <= 0 || height <= 0 {
		return RasterCalibration{}, errors.Errorf("invalid raster size %dx%d", width, height)
	}
	n1, n2 := p.Forward(a1.Geo), p.Forward(a2.Geo)
	if isNaN(n1) || isNaN(n2) {
		return RasterCalibration{}, errors.Wrapf(ErrOutOfDomain, "anchors %q and %q in %s", a1.Hex, a2.Hex, p.Name())
	}
	t, err := geom.FitTwoPoint(n1, p1, n2, p2)
	if err != nil {
		return RasterCalibration{}, errors.Wrapf(err, "anchors %q and %q", a1.Hex, a2.Hex)
	}
	return RasterCalibration{Projection: p, ToPixel: t, Width: width, Height: height}, nil
}

// Pixel returns the raster pixel of a geographic position, clamped into the
// raster bounds.
func (c RasterCalibration) Pixel(ll LatLon) (image.Point, error) {
	native := c.Projection.Forward(ll)
	if isNaN(native) {
		return image.Point{}, ErrOutOfDomain
	}
	px := c.ToPixel.Apply(native)
	x := math.Max(0, math.Min(float64(c.Width-1), px.X))
	y := math.Max(0, math.Min(float64(c.Height-1), px.Y))
	return image.Pt(int(math.Round(x)), int(math.Round(y))), nil
}

// Pipeline runs the full chain for the populated part of the grid.
type Pipeline struct {
	World     WorldCalibration
	populated map[hexgrid.GridCoord]struct{}
}

// NewPipeline creates a pipeline restricted to the given populated cells.
func NewPipeline(world WorldCalibration, populated []hexgrid.GridCoord) *Pipeline {
	set := make(map[hexgrid.GridCoord]struct{}, len(populated))
	for _, g := range populated {
		set[g] = struct{}{}
	}
	return &Pipeline{World: world, populated: set}
}

// Populated reports whether a grid coordinate holds a hex.
func (p *Pipeline) Populated(g hexgrid.GridCoord) bool {
	_, ok := p.populated[g]
	return ok
}

// Geo returns the geographic position of a populated grid coordinate.
func (p *Pipeline) Geo(g hexgrid.GridCoord) (LatLon, error) {
	if !p.Populated(g) {
		return LatLon{}, ErrNoGeography
	}
	ll := p.World.Geo(g)
	if math.IsNaN(ll.Lat) || math.IsNaN(ll.Lon) {
		return LatLon{}, ErrOutOfDomain
	}
	return ll, nil
}

// Pixel returns the pixel of raster r sampled for a populated grid coordinate.
func (p *Pipeline) Pixel(g hexgrid.GridCoord, r RasterCalibration) (image.Point, error) {
	ll, err := p.Geo(g)
	if err != nil {
		return image.Point{}, err
	}
	return r.Pixel(ll)
}
