// Package raster holds single channel geographic images and samples them.
package raster

import (
	"image"

	"github.com/geonext/hexmap/utils"
)

// DefaultNoData is the fill value of the global raster products used for the
// map: ocean and missing measurements.
const DefaultNoData = 255

// Ring search used by SampleFilled: radii in pixels and the number of steps
// taken in each direction at every radius.
var (
	FillRadii = []int{5, 10, 15, 20, 25, 30}
	fillSteps = 5
)

// Image is a grid of one byte intensity samples.
type Image struct {
	Width  int
	Height int
	Pix    []byte
	// NoData marks pixels without a measurement.
	NoData byte
	// Fallback is returned by SampleFilled when the ring search finds nothing.
	Fallback byte
}

// New creates a blank image filled with NoData.
func New(width, height int, noData byte) *Image {
	pix := make([]byte, width*height)
	for i := range pix {
		pix[i] = noData
	}
	return &Image{Width: width, Height: height, Pix: pix, NoData: noData}
}

// Bounds returns the image rectangle.
func (im *Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, im.Width, im.Height)
}

// Set writes a pixel; out of range positions are ignored.
func (im *Image) Set(x, y int, v byte) {
	if !image.Pt(x, y).In(im.Bounds()) {
		return
	}
	im.Pix[y*im.Width+x] = v
}

// Sample returns the raw byte at p, clamped into the image bounds.
func (im *Image) Sample(p image.Point) byte {
	x := utils.Clamp(p.X, 0, im.Width-1)
	y := utils.Clamp(p.Y, 0, im.Height-1)
	return im.Pix[y*im.Width+x]
}

// SampleFilled returns the byte at p. When p holds NoData, concentric rings
// around p are searched and the first measured value wins; near coastlines this
// trades exactness for coverage. The boolean is false when the whole search
// failed and Fallback was returned.
func (im *Image) SampleFilled(p image.Point) (byte, bool) {
	if v := im.Sample(p); v != im.NoData {
		return v, true
	}
	for _, radius := range FillRadii {
		step := radius / fillSteps
		for i := -fillSteps; i <= fillSteps; i++ {
			for j := -fillSteps; j <= fillSteps; j++ {
				v := im.Sample(p.Add(image.Pt(i*step, j*step)))
				if v != im.NoData {
					return v, true
				}
			}
		}
	}
	return im.Fallback, false
}
