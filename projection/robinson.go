package projection

import (
	"math"
	"sort"

	"github.com/geonext/hexmap/geom"
)

// Robinson's table: parallel length and distance from the equator, every 5 degrees.
var robinsonTable = [19][2]float64{
	{1.0000, 0.0000},
	{0.9986, 0.0620},
	{0.9954, 0.1240},
	{0.9900, 0.1860},
	{0.9822, 0.2480},
	{0.9730, 0.3100},
	{0.9600, 0.3720},
	{0.9427, 0.4340},
	{0.9216, 0.4958},
	{0.8962, 0.5571},
	{0.8679, 0.6176},
	{0.8350, 0.6769},
	{0.7986, 0.7346},
	{0.7597, 0.7903},
	{0.7186, 0.8435},
	{0.6732, 0.8936},
	{0.6213, 0.9394},
	{0.5722, 0.9761},
	{0.5322, 1.0000},
}

const (
	robinsonXScale = 0.8487
	robinsonYScale = 1.3523
	robinsonStep   = 5.0
	robinsonLast   = len(robinsonTable) - 1
)

// Robinson is the Robinson world projection on a unit sphere. The table is
// linearly interpolated, which keeps Inverse an exact inverse of Forward.
type Robinson[S geom.Space] struct{}

func (Robinson[S]) Name() string { return "robinson" }

// Forward projects a position.
func (Robinson[S]) Forward(ll LatLon) geom.Vec[S] {
	alat := math.Min(math.Abs(ll.Lat), 90)
	i := int(alat / robinsonStep)
	if i >= robinsonLast {
		i = robinsonLast - 1
	}
	t := (alat - float64(i)*robinsonStep) / robinsonStep
	plen := lerp(robinsonTable[i][0], robinsonTable[i+1][0], t)
	pdfe := lerp(robinsonTable[i][1], robinsonTable[i+1][1], t)

	x := robinsonXScale * plen * ll.Lon * math.Pi / 180
	y := math.Copysign(robinsonYScale*pdfe, ll.Lat)
	return geom.V[S](x, y)
}

// Inverse recovers the position of a projected point.
func (Robinson[S]) Inverse(v geom.Vec[S]) LatLon {
	pdfe := math.Abs(v.Y) / robinsonYScale
	var alat, plen float64
	if pdfe >= 1 {
		alat, plen = 90, robinsonTable[robinsonLast][0]
	} else {
		// First segment whose upper bound exceeds pdfe.
		i := sort.Search(robinsonLast, func(k int) bool {
			return robinsonTable[k+1][1] > pdfe
		})
		lo, hi := robinsonTable[i], robinsonTable[i+1]
		t := (pdfe - lo[1]) / (hi[1] - lo[1])
		alat = (float64(i) + t) * robinsonStep
		plen = lerp(lo[0], hi[0], t)
	}
	return LatLon{
		Lat: math.Copysign(alat, v.Y),
		Lon: v.X / (robinsonXScale * plen) * 180 / math.Pi,
	}
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
