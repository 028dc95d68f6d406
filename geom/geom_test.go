package geom

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVec_Operations(t *testing.T) {
	assert := assert.New(t)

	a := V[SVG](1, 2)
	b := V[SVG](4, -2)

	assert.Equal(V[SVG](5, 0), a.Add(b))
	assert.Equal(V[SVG](-3, 4), a.Sub(b))
	assert.Equal(V[SVG](2, 4), a.Scale(2))
	assert.InDelta(5.0, a.Distance(b), 1e-12)
	assert.Equal(V[SVG](1, -2), a.Min(b))
	assert.Equal("svg", a.Space())
	assert.Equal("pixel", V[Pixel](0, 0).Space())
}

func TestAffine_FitTwoPoint(t *testing.T) {
	assert := assert.New(t)

	from1, to1 := V[Chart](0, 0), V[Native](10, -5)
	from2, to2 := V[Chart](4, 2), V[Native](18, -9)

	tr, err := FitTwoPoint(from1, to1, from2, to2)
	require.NoError(t, err)

	assert.Equal(to1, tr.Apply(from1))
	assert.Equal(to2, tr.Apply(from2))
	assert.InDelta(2.0, tr.X.Scale, 1e-12)
	assert.InDelta(-2.0, tr.Y.Scale, 1e-12)
	assert.Equal(V[Native](14, -7), tr.Apply(V[Chart](2, 1)))
}

func TestAffine_DegenerateAnchors(t *testing.T) {
	_, err := FitTwoPoint(V[Chart](1, 0), V[Native](0, 0), V[Chart](1, 5), V[Native](3, 3))
	assert.True(t, errors.Is(err, ErrDegenerateAnchors))

	_, err = FitTwoPoint(V[Chart](0, 2), V[Native](0, 0), V[Chart](1, 2), V[Native](3, 3))
	assert.True(t, errors.Is(err, ErrDegenerateAnchors))
}
