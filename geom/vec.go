// Package geom provides the small 2D vector types shared by every pipeline stage.
//
// Each vector is tagged with the coordinate space it lives in, so an SVG-space
// point can never be handed to a function expecting raster pixels without an
// explicit conversion.
package geom

import "math"

// Space is implemented by the marker types naming a coordinate space.
type Space interface {
	SpaceName() string
}

// SVG is the user-unit space of the source vector map.
type SVG struct{}

// Chart is the continuous de-offset hex grid space.
type Chart struct{}

// Native is the projection-native space of the world map projection.
type Native struct{}

// Equirect is the projection-native space of a raster product.
type Equirect struct{}

// Pixel is the pixel space of a raster image.
type Pixel struct{}

func (SVG) SpaceName() string      { return "svg" }
func (Chart) SpaceName() string    { return "chart" }
func (Native) SpaceName() string   { return "native" }
func (Equirect) SpaceName() string { return "equirect" }
func (Pixel) SpaceName() string    { return "pixel" }

// Vec is a point in the coordinate space S.
type Vec[S Space] struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// V creates a new vector in space S.
func V[S Space](x, y float64) Vec[S] {
	return Vec[S]{X: x, Y: y}
}

// Add returns the sum of two vectors.
func (v Vec[S]) Add(o Vec[S]) Vec[S] {
	return Vec[S]{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns the difference of two vectors.
func (v Vec[S]) Sub(o Vec[S]) Vec[S] {
	return Vec[S]{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns the vector scaled by a factor.
func (v Vec[S]) Scale(f float64) Vec[S] {
	return Vec[S]{X: v.X * f, Y: v.Y * f}
}

// Distance returns the Euclidean distance to another vector.
func (v Vec[S]) Distance(o Vec[S]) float64 {
	return math.Hypot(v.X-o.X, v.Y-o.Y)
}

// Min returns the component-wise minimum of two vectors.
func (v Vec[S]) Min(o Vec[S]) Vec[S] {
	return Vec[S]{X: math.Min(v.X, o.X), Y: math.Min(v.Y, o.Y)}
}

// Space returns the name of the vector's coordinate space.
func (v Vec[S]) Space() string {
	var s S
	return s.SpaceName()
}
