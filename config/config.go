// Package config loads the build description of a map: input chart, reference
// anchors and the rasters sampled into channels.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/geonext/hexmap/asset"
	"github.com/geonext/hexmap/raster"
	"github.com/geonext/hexmap/utils"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

// Environment variables providing defaults for the CLI.
const (
	EnvConfig = "HEXMAP_CONFIG"
	EnvOut    = "HEXMAP_OUT"
)

var ErrInvalid = errors.New("invalid configuration")

// Anchor is a reference hex and its true position.
type Anchor struct {
	Hex string  `toml:"hex"`
	Lat float64 `toml:"lat"`
	Lon float64 `toml:"lon"`
}

// Raster describes one sampled channel. Pixels holds the known pixel location
// of the first and second anchor in this raster.
type Raster struct {
	Name       string       `toml:"name"`
	Path       string       `toml:"path"`
	Projection string       `toml:"projection"`
	NoData     *int         `toml:"nodata"`
	Fallback   int          `toml:"fallback"`
	Pixels     [][2]float64 `toml:"pixels"`
}

// NoDataValue returns the configured sentinel or the raster default.
func (r Raster) NoDataValue() byte {
	if r.NoData == nil {
		return raster.DefaultNoData
	}
	return byte(*r.NoData)
}

// Config is the full build description.
type Config struct {
	SVG          string   `toml:"svg"`
	Out          string   `toml:"out"`
	World        string   `toml:"world"`
	H3Resolution int      `toml:"h3_resolution"`
	GeoJSON      bool     `toml:"geojson"`
	// Countries optionally fixes the country table; hexes with another
	// label are left unclaimed.
	Countries []string `toml:"countries"`
	Anchors   []Anchor `toml:"anchors"`
	Rasters   []Raster `toml:"rasters"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Out:          "assets",
		World:        "robinson",
		H3Resolution: asset.DefaultH3Resolution,
	}
}

// LoadEnv reads .env files into the environment. Missing files are skipped.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); os.IsNotExist(err) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return errors.Wrapf(err, "env file %s", f)
		}
	}
	return nil
}

// Path returns the config file named by HEXMAP_CONFIG, if any.
func Path() string {
	return os.Getenv(EnvConfig)
}

// Load decodes a TOML file on top of the defaults. Relative input paths are
// resolved against the directory of the file and HEXMAP_OUT overrides the
// output directory.
func Load(path string) (*Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, errors.Wrapf(err, "config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.Wrapf(ErrInvalid, "unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}
	cfg.resolve(filepath.Dir(path))
	cfg.ApplyEnv()
	return cfg, nil
}

// ApplyEnv applies the environment overrides.
func (c *Config) ApplyEnv() {
	if out := os.Getenv(EnvOut); out != "" {
		c.Out = out
	}
}

func (c *Config) resolve(dir string) {
	join := func(p string) string {
		if p == "" || filepath.IsAbs(p) || utils.IsValidUrl(p) {
			return p
		}
		return filepath.Join(dir, p)
	}
	c.SVG = join(c.SVG)
	for i := range c.Rasters {
		c.Rasters[i].Path = join(c.Rasters[i].Path)
	}
}

// Validate checks everything that can be checked before reading any input.
func (c *Config) Validate() error {
	if c.SVG == "" {
		return errors.Wrap(ErrInvalid, "no svg input")
	}
	if c.H3Resolution < 0 || c.H3Resolution > 15 {
		return errors.Wrapf(ErrInvalid, "h3 resolution %d outside [0, 15]", c.H3Resolution)
	}
	if len(c.Anchors) != 2 {
		return errors.Wrapf(ErrInvalid, "need exactly 2 anchors, got %d", len(c.Anchors))
	}
	for i, a := range c.Anchors {
		if a.Hex == "" {
			return errors.Wrapf(ErrInvalid, "anchor %d has no hex", i)
		}
		if a.Lat < -90 || a.Lat > 90 || a.Lon < -180 || a.Lon > 180 {
			return errors.Wrapf(ErrInvalid, "anchor %s at (%g, %g)", a.Hex, a.Lat, a.Lon)
		}
	}
	if c.Anchors[0].Hex == c.Anchors[1].Hex {
		return errors.Wrapf(ErrInvalid, "anchors share hex %s", c.Anchors[0].Hex)
	}
	if len(c.Rasters) > 255 {
		return errors.Wrapf(ErrInvalid, "%d rasters, at most 255 channels", len(c.Rasters))
	}

	seen := make(map[string]bool, len(c.Rasters))
	for i, r := range c.Rasters {
		switch {
		case r.Name == "":
			return errors.Wrapf(ErrInvalid, "raster %d has no name", i)
		case seen[r.Name]:
			return errors.Wrapf(ErrInvalid, "raster %s listed twice", r.Name)
		case r.Path == "":
			return errors.Wrapf(ErrInvalid, "raster %s has no path", r.Name)
		case len(r.Pixels) != 2:
			return errors.Wrapf(ErrInvalid, "raster %s needs one pixel per anchor, got %d", r.Name, len(r.Pixels))
		case r.NoData != nil && (*r.NoData < 0 || *r.NoData > 255):
			return errors.Wrapf(ErrInvalid, "raster %s nodata %d outside a byte", r.Name, *r.NoData)
		case r.Fallback < 0 || r.Fallback > 255:
			return errors.Wrapf(ErrInvalid, "raster %s fallback %d outside a byte", r.Name, r.Fallback)
		}
		seen[r.Name] = true
	}
	return nil
}
