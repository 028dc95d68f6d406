// Package hexgrid maps hex anchors onto an integer grid and builds the
// adjacency graph between populated hexes.
//
// Grid (offset) coordinates use an "odd row shifted" layout; axial coordinates
// make the six neighbor offsets independent of row parity.
package hexgrid

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// GridCoord is an offset hex address.
type GridCoord struct {
	Col int `json:"col"`
	Row int `json:"row"`
}

// AxialCoord is an axial hex address.
type AxialCoord struct {
	Q int `json:"q"`
	R int `json:"r"`
}

// Direction names, in canonical enumeration order.
const (
	East = iota
	NorthEast
	NorthWest
	West
	SouthWest
	SouthEast
)

// Directions are the six axial unit steps in canonical order: E, NE, NW, W, SW, SE.
var Directions = [6]AxialCoord{
	{Q: 1, R: 0},
	{Q: 1, R: -1},
	{Q: 0, R: -1},
	{Q: -1, R: 0},
	{Q: -1, R: 1},
	{Q: 0, R: 1},
}

// parity returns 1 for odd rows, including negative ones.
func parity(row int) int {
	return row & 1
}

// ToAxial converts an offset coordinate to axial form.
// The >> 1 is an exact floor division for negative rows as well.
func ToAxial(g GridCoord) AxialCoord {
	return AxialCoord{Q: g.Col - (g.Row+parity(g.Row))>>1, R: g.Row}
}

// ToGrid converts an axial coordinate back to offset form.
func ToGrid(a AxialCoord) GridCoord {
	return GridCoord{Col: a.Q + (a.R+parity(a.R))>>1, Row: a.R}
}

// MustRoundTrip converts g to axial form and panics if the conversion does not
// invert exactly. A failure is a defect in the coordinate code, never bad input.
func MustRoundTrip(g GridCoord) AxialCoord {
	a := ToAxial(g)
	if back := ToGrid(a); back != g {
		panic(fmt.Sprintf("hexgrid: axial round trip of %v produced %v", g, back))
	}
	return a
}

// Add returns the sum of two axial coordinates.
func (a AxialCoord) Add(o AxialCoord) AxialCoord {
	return AxialCoord{Q: a.Q + o.Q, R: a.R + o.R}
}

// Neighbor returns the neighbor in direction dir (0..5).
func (a AxialCoord) Neighbor(dir int) AxialCoord {
	return a.Add(Directions[dir])
}

// String formats the coordinate as "q,r", the key used by the side tables.
func (a AxialCoord) String() string {
	return strconv.Itoa(a.Q) + "," + strconv.Itoa(a.R)
}

// ParseAxial parses the "q,r" form produced by String.
func ParseAxial(s string) (AxialCoord, error) {
	q, r, ok := strings.Cut(s, ",")
	if !ok {
		return AxialCoord{}, errors.Errorf("invalid axial coordinate %q", s)
	}
	qi, err := strconv.Atoi(q)
	if err != nil {
		return AxialCoord{}, errors.Wrapf(err, "invalid axial coordinate %q", s)
	}
	ri, err := strconv.Atoi(r)
	if err != nil {
		return AxialCoord{}, errors.Wrapf(err, "invalid axial coordinate %q", s)
	}
	return AxialCoord{Q: qi, R: ri}, nil
}

func (g GridCoord) String() string {
	return fmt.Sprintf("(%d,%d)", g.Col, g.Row)
}
