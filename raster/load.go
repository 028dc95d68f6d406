package raster

import (
	"image"
	"io"
	"os"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/geonext/hexmap/utils"
	"github.com/pkg/errors"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// Decode reads an encoded image and reduces it to one byte per pixel.
func Decode(r io.Reader) (*Image, error) {
	src, err := imaging.Decode(r)
	if err != nil {
		return nil, errors.Wrap(err, "could not decode the raster")
	}
	return FromImage(src), nil
}

// Load reads a raster from a local file.
func Load(path string) (*Image, error) {
	ctype, err := utils.DetectContentType(path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not open the raster %s", path)
	}
	// tiff is not sniffed by net/http and comes back as octet-stream.
	if !strings.Contains(ctype, "image") && !strings.HasSuffix(strings.ToLower(path), ".tif") &&
		!strings.HasSuffix(strings.ToLower(path), ".tiff") {
		return nil, errors.Errorf("%s is not an image file (%s)", path, ctype)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not open the raster %s", path)
	}
	defer f.Close()

	im, err := Decode(f)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return im, nil
}

// FromImage converts any image to a single channel raster with its min-point
// at (0, 0). Gray images are copied as is and paletted images keep their
// indices. Everything else goes through a luminance conversion.
func FromImage(img image.Image) *Image {
	b := img.Bounds()
	dst := &Image{Width: b.Dx(), Height: b.Dy(), Pix: make([]byte, b.Dx()*b.Dy()), NoData: DefaultNoData}

	switch src := img.(type) {
	case *image.Gray:
		for y := 0; y < dst.Height; y++ {
			si := src.PixOffset(b.Min.X, b.Min.Y+y)
			copy(dst.Pix[y*dst.Width:(y+1)*dst.Width], src.Pix[si:si+dst.Width])
		}
	case *image.Paletted:
		// Indexed products store the data value as the palette index.
		for y := 0; y < dst.Height; y++ {
			si := src.PixOffset(b.Min.X, b.Min.Y+y)
			copy(dst.Pix[y*dst.Width:(y+1)*dst.Width], src.Pix[si:si+dst.Width])
		}
	case *image.NRGBA:
		for y := 0; y < dst.Height; y++ {
			si := src.PixOffset(b.Min.X, b.Min.Y+y)
			for x := 0; x < dst.Width; x++ {
				r, g, bl := src.Pix[si], src.Pix[si+1], src.Pix[si+2]
				dst.Pix[y*dst.Width+x] = luminance(r, g, bl)
				si += 4
			}
		}
	case *image.YCbCr:
		// jpeg: the Y plane already is the luminance.
		for y := 0; y < dst.Height; y++ {
			for x := 0; x < dst.Width; x++ {
				dst.Pix[y*dst.Width+x] = src.Y[src.YOffset(b.Min.X+x, b.Min.Y+y)]
			}
		}
	default:
		gray := imaging.Grayscale(img)
		// The gray NRGBA carries the luminance in every color channel.
		for y := 0; y < dst.Height; y++ {
			si := gray.PixOffset(0, y)
			for x := 0; x < dst.Width; x++ {
				dst.Pix[y*dst.Width+x] = gray.Pix[si+x*4]
			}
		}
	}
	return dst
}

func luminance(r, g, b uint8) uint8 {
	lum := float64(r)*0.299 + float64(g)*0.587 + float64(b)*0.114
	return uint8(min(lum+0.5, 255))
}
