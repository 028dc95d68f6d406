package hexmap

import (
	"log/slog"
	"os"

	"github.com/geonext/hexmap/config"
	"github.com/geonext/hexmap/geom"
	"github.com/geonext/hexmap/projection"
	"github.com/geonext/hexmap/raster"
	"github.com/geonext/hexmap/utils"
	"github.com/pkg/errors"
)

// NewProcessor builds a processor from a validated configuration. Every
// raster is loaded, downloading it first when its path is a url.
func NewProcessor(cfg *config.Config, log *slog.Logger) (*Processor, error) {
	world, err := projection.ByName[geom.Native](cfg.World)
	if err != nil {
		return nil, errors.Wrap(err, "world projection")
	}

	p := &Processor{
		World:        world,
		Countries:    cfg.Countries,
		H3Resolution: cfg.H3Resolution,
		Logger:       log,
	}
	for i, a := range cfg.Anchors {
		if i >= len(p.Anchors) {
			break
		}
		p.Anchors[i] = Anchor{Hex: a.Hex, Geo: projection.LatLon{Lat: a.Lat, Lon: a.Lon}}
	}

	for _, rc := range cfg.Rasters {
		ch, err := loadChannel(rc)
		if err != nil {
			return nil, errors.Wrapf(err, "raster %s", rc.Name)
		}
		p.log().Debug("loaded raster", "raster", rc.Name, "width", ch.Image.Width, "height", ch.Image.Height)
		p.Channels = append(p.Channels, ch)
	}
	return p, nil
}

func loadChannel(rc config.Raster) (Channel, error) {
	proj, err := projection.ByName[geom.Equirect](rc.Projection)
	if err != nil {
		return Channel{}, err
	}
	if len(rc.Pixels) != 2 {
		return Channel{}, errors.Wrapf(config.ErrInvalid, "%d anchor pixels", len(rc.Pixels))
	}

	path := rc.Path
	if utils.IsValidUrl(path) {
		f, err := utils.DownloadFile(path)
		if err != nil {
			return Channel{}, err
		}
		defer os.Remove(f.Name())
		f.Close()
		path = f.Name()
	}
	img, err := raster.Load(path)
	if err != nil {
		return Channel{}, err
	}
	img.NoData = rc.NoDataValue()
	img.Fallback = byte(rc.Fallback)

	return Channel{
		Name:       rc.Name,
		Image:      img,
		Projection: proj,
		Pixels: [2]geom.Vec[geom.Pixel]{
			geom.V[geom.Pixel](rc.Pixels[0][0], rc.Pixels[0][1]),
			geom.V[geom.Pixel](rc.Pixels[1][0], rc.Pixels[1][1]),
		},
	}, nil
}
