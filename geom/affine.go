package geom

import "github.com/pkg/errors"

// ErrDegenerateAnchors is returned when two calibration points share a coordinate
// on one axis, leaving the scale on that axis undetermined.
var ErrDegenerateAnchors = errors.New("calibration anchors coincide on an axis")

// AxisMap is a one dimensional linear map: v*Scale + Shift.
type AxisMap struct {
	Scale float64 `json:"scale"`
	Shift float64 `json:"shift"`
}

// Apply maps a single coordinate.
func (m AxisMap) Apply(v float64) float64 {
	return v*m.Scale + m.Shift
}

// FitAxis solves the axis map sending from1 to to1 and from2 to to2.
func FitAxis(from1, to1, from2, to2 float64) (AxisMap, error) {
	if from1 == from2 {
		return AxisMap{}, ErrDegenerateAnchors
	}
	scale := (to2 - to1) / (from2 - from1)
	return AxisMap{Scale: scale, Shift: to1 - from1*scale}, nil
}

// Affine is a per-axis affine transform from space From to space To.
// The axes are independent: there is no rotation or shear term.
type Affine[From, To Space] struct {
	X AxisMap `json:"x"`
	Y AxisMap `json:"y"`
}

// Apply applies the transform to a vector.
func (a Affine[From, To]) Apply(v Vec[From]) Vec[To] {
	return Vec[To]{X: a.X.Apply(v.X), Y: a.Y.Apply(v.Y)}
}

// FitTwoPoint computes the per-axis affine transform mapping from1 onto to1 and
// from2 onto to2.
func FitTwoPoint[From, To Space](from1 Vec[From], to1 Vec[To], from2 Vec[From], to2 Vec[To]) (Affine[From, To], error) {
	x, err := FitAxis(from1.X, to1.X, from2.X, to2.X)
	if err != nil {
		return Affine[From, To]{}, errors.Wrap(err, "x axis")
	}
	y, err := FitAxis(from1.Y, to1.Y, from2.Y, to2.Y)
	if err != nil {
		return Affine[From, To]{}, errors.Wrap(err, "y axis")
	}
	return Affine[From, To]{X: x, Y: y}, nil
}
