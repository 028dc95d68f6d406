package main

import (
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/geonext/hexmap"
	"github.com/geonext/hexmap/asset"
	"github.com/geonext/hexmap/config"
	"github.com/geonext/hexmap/hexgrid"
	"github.com/geonext/hexmap/logger"
	"github.com/geonext/hexmap/utils"
	"github.com/pkg/errors"
)

const HelpBanner = `
┬ ┬┌─┐─┐ ┬┌┬┐┌─┐┌─┐
├─┤├┤ ┌┴┬┘│││├─┤├─┘
┴ ┴└─┘┴ └─┴ ┴┴ ┴┴

Hex world map asset builder.
    Version: %s

`

// Version indicates the current build version.
var Version string

var (
	// Flags
	configPath = flag.String("config", "", "TOML build description (default $HEXMAP_CONFIG)")
	svgPath    = flag.String("svg", "", "Source vector map, local path or url")
	outDir     = flag.String("out", "", "Output directory (default $HEXMAP_OUT or assets)")
	world      = flag.String("world", "", "World projection of the vector map: robinson, equirectangular or a proj4 string")
	h3Res      = flag.Int("h3", asset.DefaultH3Resolution, "H3 resolution of the geo index")
	geoJSON    = flag.Bool("geojson", false, "Also write the hex centres as GeoJSON")
	inspect    = flag.String("inspect", "", "Print the header and country table of a map.bin, check the axial.json next to it and exit")
	debug      = flag.Bool("debug", false, "Log every phase and off-map cell")
)

func main() {
	log.SetFlags(0)

	if err := config.LoadEnv(); err != nil {
		log.Fatalf(utils.DecorateText("Failed to load the environment: %v", utils.ErrorMessage), err)
	}

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, HelpBanner, Version)
		flag.PrintDefaults()
	}
	flag.Parse()

	if *inspect != "" {
		if err := inspectMap(os.Stdout, *inspect); err != nil {
			log.Fatalf(utils.DecorateText("Failed to inspect the map: %v", utils.ErrorMessage), err)
		}
		return
	}

	opts := logger.FromEnv()
	if *debug {
		opts.Level = "debug"
	}
	l := logger.SetupWith(opts)

	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf(utils.DecorateText("Invalid configuration: %v", utils.ErrorMessage), err)
	}

	proc, err := hexmap.NewProcessor(cfg, l)
	if err != nil {
		log.Fatalf(utils.DecorateText("Failed to load the rasters: %v", utils.ErrorMessage), err)
	}

	op := &hexmap.Ops{
		Src:     cfg.SVG,
		Dst:     cfg.Out,
		GeoJSON: cfg.GeoJSON,
	}
	if err := proc.Execute(op); err != nil {
		log.Fatalf("%s%s",
			utils.DecorateText("\nError building the map", utils.ErrorMessage),
			utils.DecorateText(fmt.Sprintf("\n\tReason: %v\n", err), utils.DefaultMessage),
		)
	}
}

// loadConfig reads the config file, if any, and applies the flags given on
// the command line on top of it.
func loadConfig() (*config.Config, error) {
	path := *configPath
	if path == "" {
		path = config.Path()
	}

	cfg := config.Default()
	if path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return nil, err
		}
	} else {
		cfg.ApplyEnv()
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "svg":
			cfg.SVG = *svgPath
		case "out":
			cfg.Out = *outDir
		case "world":
			cfg.World = *world
		case "h3":
			cfg.H3Resolution = *h3Res
		case "geojson":
			cfg.GeoJSON = *geoJSON
		}
	})
	return cfg, cfg.Validate()
}

func inspectMap(w io.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	m, err := asset.ReadMap(f)
	if err != nil {
		return err
	}

	var populated int
	for col := 0; col < m.Width; col++ {
		for row := 0; row < m.Height; row++ {
			if owner, _ := m.Cell(col, row); int(owner) < len(m.Countries) {
				populated++
			}
		}
	}
	fmt.Fprintf(w, "%s %dx%d, %d channels, %d claimed cells\n",
		utils.DecorateText(path, utils.StatusMessage), m.Width, m.Height, m.Channels, populated)
	for i, name := range m.Countries {
		fmt.Fprintf(w, "%4d  %s\n", i, name)
	}
	return inspectAxial(w, m, filepath.Join(filepath.Dir(path), hexmap.AxialFile))
}

// inspectAxial checks the axial table written next to the map, if any, against
// the map's grid.
func inspectAxial(w io.Writer, m *asset.Map, path string) error {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	defer f.Close()

	table, err := asset.ReadAxialTable(f)
	if err != nil {
		return err
	}
	var outside int
	for a := range table {
		g := hexgrid.ToGrid(a)
		if g.Col < 0 || g.Row < 0 || g.Col >= m.Width || g.Row >= m.Height {
			outside++
		}
	}
	fmt.Fprintf(w, "%s %d hexes, %d outside the grid\n",
		utils.DecorateText(filepath.Base(path), utils.StatusMessage), len(table), outside)
	return nil
}
