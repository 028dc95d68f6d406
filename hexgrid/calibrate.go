package hexgrid

import (
	"fmt"
	"math"
	"sort"

	"github.com/geonext/hexmap/geom"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Spacing bands accepted by the estimators, in SVG units. Differences outside
// them are same-row duplicates or unrelated far points.
const (
	rowPitchMin = 2.0
	rowPitchMax = 4.0
	colPitchMin = 1.0
	colPitchMax = 4.0
)

// ErrInsufficientCalibration is returned when no anchor spacing falls into the
// plausible band.
var ErrInsufficientCalibration = errors.New("insufficient calibration data")

// DuplicateCoordError reports two hexes resolving to the same grid cell.
type DuplicateCoordError struct {
	Coord       GridCoord
	First, Then string
}

func (e *DuplicateCoordError) Error() string {
	return fmt.Sprintf("hexes %q and %q both map to grid cell %v", e.First, e.Then, e.Coord)
}

// GridCalibration holds the spacing statistics inferred from the anchors.
type GridCalibration struct {
	// Radius is half of the row pitch.
	Radius float64 `json:"radius"`
	// Apothem is half of the column pitch.
	Apothem float64 `json:"apothem"`
}

// Row returns the grid row of an anchor.
func (c GridCalibration) Row(p geom.Vec[geom.SVG]) int {
	return int(math.Round(p.Y / (2 * c.Radius)))
}

// Coord converts an SVG anchor into an offset grid coordinate.
func (c GridCalibration) Coord(p geom.Vec[geom.SVG]) GridCoord {
	row := c.Row(p)
	col := int(math.Round(p.X/(2*c.Apothem) + 0.5*float64(parity(row))))
	return GridCoord{Col: col, Row: row}
}

// EstimateRadius derives the hex radius from consecutive sorted y differences.
func EstimateRadius(anchors []geom.Vec[geom.SVG]) (float64, error) {
	ys := make([]float64, len(anchors))
	for i, a := range anchors {
		ys[i] = a.Y
	}
	sort.Float64s(ys)

	var kept []float64
	for i := 1; i < len(ys); i++ {
		if d := ys[i] - ys[i-1]; d > rowPitchMin && d < rowPitchMax {
			kept = append(kept, d)
		}
	}
	if len(kept) == 0 {
		return 0, errors.Wrap(ErrInsufficientCalibration, "no row spacing in band")
	}
	return floats.Max(kept) / 2, nil
}

// EstimateApothem derives the hex apothem from the x spacing inside each row.
func EstimateApothem(anchors []geom.Vec[geom.SVG], radius float64) (float64, error) {
	cal := GridCalibration{Radius: radius}
	rows := make(map[int][]float64)
	for _, a := range anchors {
		r := cal.Row(a)
		rows[r] = append(rows[r], a.X)
	}

	keys := make([]int, 0, len(rows))
	for r := range rows {
		keys = append(keys, r)
	}
	sort.Ints(keys)

	var halves []float64
	for _, r := range keys {
		xs := rows[r]
		sort.Float64s(xs)
		for i := 1; i < len(xs); i++ {
			if d := xs[i] - xs[i-1]; d > colPitchMin && d < colPitchMax {
				halves = append(halves, d/2)
			}
		}
	}
	if len(halves) == 0 {
		return 0, errors.Wrap(ErrInsufficientCalibration, "no column spacing in band")
	}
	return stat.Mean(halves, nil), nil
}

// Calibrate estimates radius and apothem from the full anchor set.
func Calibrate(anchors []geom.Vec[geom.SVG]) (GridCalibration, error) {
	radius, err := EstimateRadius(anchors)
	if err != nil {
		return GridCalibration{}, err
	}
	apothem, err := EstimateApothem(anchors, radius)
	if err != nil {
		return GridCalibration{}, err
	}
	return GridCalibration{Radius: radius, Apothem: apothem}, nil
}

// Named is an anchor together with the name of its hex.
type Named struct {
	Name   string
	Anchor geom.Vec[geom.SVG]
}

// Layout is the result of placing every hex on the grid.
type Layout struct {
	Calibration GridCalibration
	Coords      map[string]GridCoord
	Width       int
	Height      int
}

// AssignCoords places the hexes on the grid. Columns are shifted so the smallest
// column is zero and rows by the smallest even number not above the minimum row,
// which keeps row parity intact.
func AssignCoords(cal GridCalibration, hexes []Named) (*Layout, error) {
	l := &Layout{Calibration: cal, Coords: make(map[string]GridCoord, len(hexes))}
	if len(hexes) == 0 {
		return l, nil
	}

	raw := make([]GridCoord, len(hexes))
	minCol, minRow := math.MaxInt, math.MaxInt
	for i, h := range hexes {
		g := cal.Coord(h.Anchor)
		raw[i] = g
		minCol = min(minCol, g.Col)
		minRow = min(minRow, g.Row)
	}
	minRow -= parity(minRow)

	owner := make(map[GridCoord]string, len(hexes))
	for i, h := range hexes {
		g := GridCoord{Col: raw[i].Col - minCol, Row: raw[i].Row - minRow}
		if prev, ok := owner[g]; ok {
			return nil, &DuplicateCoordError{Coord: g, First: prev, Then: h.Name}
		}
		owner[g] = h.Name
		l.Coords[h.Name] = g
		l.Width = max(l.Width, g.Col+1)
		l.Height = max(l.Height, g.Row+1)
	}
	return l, nil
}
