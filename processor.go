package hexmap

import (
	"io"
	"log/slog"

	"github.com/geonext/hexmap/asset"
	"github.com/geonext/hexmap/country"
	"github.com/geonext/hexmap/geom"
	"github.com/geonext/hexmap/hexgrid"
	"github.com/geonext/hexmap/logger"
	"github.com/geonext/hexmap/projection"
	"github.com/geonext/hexmap/raster"
	"github.com/geonext/hexmap/svgpath"
	"github.com/geonext/hexmap/utils"
	"github.com/pkg/errors"
)

var (
	// ErrNoHexes is returned for a document without a single hex path.
	ErrNoHexes = errors.New("no hex paths in the document")
	// ErrMissingAnchor is returned when a reference hex is not on the map.
	ErrMissingAnchor = errors.New("anchor hex not found")
)

// Anchor is a reference hex with its known position on the globe.
type Anchor struct {
	Hex string
	Geo projection.LatLon
}

// Channel is a raster sampled into one byte of every cell record.
type Channel struct {
	Name       string
	Image      *raster.Image
	Projection projection.Projection[geom.Equirect]
	// Pixels are the known locations of the two anchors in Image.
	Pixels [2]geom.Vec[geom.Pixel]
}

// Processor options
type Processor struct {
	Anchors  [2]Anchor
	World    projection.Projection[geom.Native]
	Channels []Channel
	// Countries restricts the country table. When empty every label found
	// on the map is registered.
	Countries    []string
	H3Resolution int
	Logger       *slog.Logger
	Spinner      *utils.Spinner
}

// Result holds everything the build produced, ready to be encoded.
type Result struct {
	Hexes        []HexCell
	Layout       *hexgrid.Layout
	Adjacency    *hexgrid.Adjacency
	Registry     *country.Registry
	World        projection.WorldCalibration
	Map          *asset.Map
	Report       Report
	H3Resolution int
}

func (p *Processor) log() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return logger.L()
}

// phase reports the progress of a build. While a spinner owns the terminal
// line the phases are only logged at debug level.
func (p *Processor) phase(msg string, args ...any) {
	if p.Spinner == nil {
		p.log().Info(msg, args...)
		return
	}
	p.log().Debug(msg, args...)
	p.Spinner.SetMessage(utils.DecorateText("⇢ "+msg, utils.DefaultMessage))
}

// Process reads the vector map and runs every phase of the build. Nothing is
// written; the returned Result is encoded by Outputs.
func (p *Processor) Process(svg io.Reader) (*Result, error) {
	world := p.World
	if world == nil {
		world = projection.Robinson[geom.Native]{}
	}
	res := &Result{H3Resolution: p.H3Resolution}

	elems, err := svgpath.ReadDocument(svg)
	if err != nil {
		return nil, err
	}
	if len(elems) == 0 {
		return nil, ErrNoHexes
	}
	named := make([]hexgrid.Named, 0, len(elems))
	anchors := make([]geom.Vec[geom.SVG], 0, len(elems))
	for _, el := range elems {
		path, err := svgpath.Parse(el.D, el.ID)
		if errors.Is(err, svgpath.ErrEmptyPath) {
			p.log().Warn("skipping hex without outline", "hex", el.ID)
			continue
		}
		if err != nil {
			return nil, err
		}
		if path.Subpaths > 1 {
			p.log().Warn("hex outline has several subpaths", "hex", path.Name, "subpaths", path.Subpaths)
		}
		named = append(named, hexgrid.Named{Name: path.Name, Anchor: path.Anchor})
		anchors = append(anchors, path.Anchor)
	}
	if len(named) == 0 {
		return nil, ErrNoHexes
	}
	p.phase("parsed paths", "hexes", len(named))

	cal, err := hexgrid.Calibrate(anchors)
	if err != nil {
		return nil, errors.Wrap(err, "grid calibration")
	}
	res.Layout, err = hexgrid.AssignCoords(cal, named)
	if err != nil {
		return nil, err
	}
	p.phase("calibrated grid",
		"radius", cal.Radius, "apothem", cal.Apothem,
		"width", res.Layout.Width, "height", res.Layout.Height)

	axial := make(map[string]hexgrid.AxialCoord, len(res.Layout.Coords))
	for name, g := range res.Layout.Coords {
		axial[name] = hexgrid.MustRoundTrip(g)
	}
	res.Adjacency = hexgrid.NewAdjacency(axial)

	if err := p.register(res, named); err != nil {
		return nil, err
	}
	p.phase("registered countries", "countries", res.Registry.Len())

	pipe, rasters, err := p.calibrate(world, res)
	if err != nil {
		return nil, err
	}
	p.phase("calibrated projections", "world", world.Name(), "channels", len(rasters))

	if err := p.sample(pipe, rasters, res); err != nil {
		return nil, err
	}
	p.phase("sampled rasters", "report", res.Report)
	return res, nil
}

// register builds the country registry and the hex cells in name order.
func (p *Processor) register(res *Result, named []hexgrid.Named) error {
	anchorOf := make(map[string]geom.Vec[geom.SVG], len(named))
	for _, n := range named {
		anchorOf[n.Name] = n.Anchor
	}

	names := res.Adjacency.Names()
	labels := make([]string, len(names))
	for i, name := range names {
		labels[i] = country.Label(name)
	}

	known := p.Countries
	if len(known) == 0 {
		known = labels
	}
	reg, err := country.NewRegistry(known)
	if err != nil {
		return err
	}
	res.Registry = reg

	res.Hexes = make([]HexCell, len(names))
	for i, name := range names {
		idx, ok := reg.Lookup(labels[i])
		if !ok {
			res.Report.Unclaimed++
			p.log().Warn("hex without a registered country", "hex", name, "label", labels[i])
		}
		a, _ := res.Adjacency.Axial(name)
		res.Hexes[i] = HexCell{
			Name:    name,
			Anchor:  anchorOf[name],
			Coord:   res.Layout.Coords[name],
			Axial:   a,
			Label:   labels[i],
			Country: idx,
		}
	}
	res.Report.Hexes = len(names)
	res.Report.Countries = reg.Len()
	return nil
}

// calibrate fits the world projection and every raster to the anchors.
func (p *Processor) calibrate(world projection.Projection[geom.Native], res *Result) (*projection.Pipeline, []projection.RasterCalibration, error) {
	var anchors [2]projection.Anchor
	for i, a := range p.Anchors {
		g, ok := res.Layout.Coords[a.Hex]
		if !ok {
			return nil, nil, errors.Wrapf(ErrMissingAnchor, "%q", a.Hex)
		}
		anchors[i] = projection.Anchor{Hex: a.Hex, Coord: g, Geo: a.Geo}
	}

	wc, err := projection.CalibrateWorld(world, anchors[0], anchors[1])
	if err != nil {
		return nil, nil, errors.Wrap(err, "world calibration")
	}
	res.World = wc

	populated := make([]hexgrid.GridCoord, 0, len(res.Layout.Coords))
	for _, g := range res.Layout.Coords {
		populated = append(populated, g)
	}
	pipe := projection.NewPipeline(wc, populated)

	rasters := make([]projection.RasterCalibration, len(p.Channels))
	for i, ch := range p.Channels {
		proj := ch.Projection
		if proj == nil {
			proj = projection.Equirectangular[geom.Equirect]{}
		}
		rc, err := projection.CalibrateRaster(proj, anchors[0], anchors[1],
			ch.Pixels[0], ch.Pixels[1], ch.Image.Width, ch.Image.Height)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "raster %s", ch.Name)
		}
		rasters[i] = rc
	}
	return pipe, rasters, nil
}

// sample walks the whole grid in asset order and fills the map records.
func (p *Processor) sample(pipe *projection.Pipeline, rasters []projection.RasterCalibration, res *Result) error {
	labels := res.Registry.Labels()
	m, err := asset.NewMap(res.Layout.Width, res.Layout.Height, len(p.Channels), labels)
	if err != nil {
		return err
	}
	res.Map = m

	byCoord := make(map[hexgrid.GridCoord]int, len(res.Hexes))
	for i, h := range res.Hexes {
		byCoord[h.Coord] = i
	}

	for col := 0; col < m.Width; col++ {
		for row := 0; row < m.Height; row++ {
			g := hexgrid.GridCoord{Col: col, Row: row}
			ll, err := pipe.Geo(g)
			if errors.Is(err, projection.ErrNoGeography) {
				res.Report.OffMap++
				p.log().Debug("cell without geography", "cell", g.String())
				continue
			}

			hex := &res.Hexes[byCoord[g]]
			hex.Samples = make([]uint8, len(p.Channels))
			for i := range hex.Samples {
				hex.Samples[i] = asset.NoSample
			}
			if err != nil {
				res.Report.OutOfDomain += len(p.Channels)
				p.log().Warn("hex outside the world projection", "hex", hex.Name)
				m.Set(col, row, hex.Country, hex.Samples)
				continue
			}
			hex.Geo, hex.HasGeo = ll, true

			for i, rc := range rasters {
				px, err := rc.Pixel(ll)
				if err != nil {
					res.Report.OutOfDomain++
					p.log().Warn("hex outside the raster projection", "hex", hex.Name, "raster", p.Channels[i].Name)
					continue
				}
				v, ok := p.Channels[i].Image.SampleFilled(px)
				if !ok {
					res.Report.Unfilled++
					p.log().Warn("no data around hex", "hex", hex.Name, "raster", p.Channels[i].Name,
						"x", px.X, "y", px.Y, "fallback", v)
				}
				hex.Samples[i] = v
			}
			m.Set(col, row, hex.Country, hex.Samples)
		}
	}
	return nil
}

// GeoHexes lists the hexes that have a position on the globe, by name.
func (r *Result) GeoHexes() []asset.Hex {
	out := make([]asset.Hex, 0, len(r.Hexes))
	for _, h := range r.Hexes {
		if !h.HasGeo {
			continue
		}
		out = append(out, asset.Hex{
			Name:    h.Name,
			Country: h.Label,
			Coord:   h.Coord,
			Lat:     h.Geo.Lat,
			Lon:     h.Geo.Lon,
		})
	}
	return out
}
