/*
Package hexmap turns a hex-tiled vector world map and a set of global raster
images into the binary map asset of the game, together with its JSON side
tables.

Every hex of the map is a <path> element whose id carries the country it
belongs to. The grid is recovered from the raw path geometry, each populated
cell is placed on the globe through two reference hexes whose true position is
known and every raster is sampled at that position.

The package provides a command line interface under cmd/hexmap. To check the
supported flags type:

	$ hexmap --help

The library can also be used on its own:

	package main

	import (
		"log"
		"os"

		"github.com/geonext/hexmap"
	)

	func main() {
		p := &hexmap.Processor{
			// Anchors, World and Channels
		}

		f, _ := os.Open("world.svg")
		res, err := p.Process(f)
		if err != nil {
			log.Fatalf("could not build the map: %v", err)
		}
		log.Printf("%d hexes", len(res.Hexes))
	}
*/
package hexmap
