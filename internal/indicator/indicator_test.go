package indicator

import (
	"errors"
	"image"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/huepad/internal/geom"
)

func TestSetPositionAlwaysWithinBounds(t *testing.T) {
	ind, err := New(geom.Sz(12, 8), geom.Sz(300, 200))
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(1))
	for n := 0; n < 2000; n++ {
		x := (rng.Float64() - 0.5) * 1e7
		y := (rng.Float64() - 0.5) * 1e7
		ind.SetPosition(x, y)
		p := ind.Position()
		assert.GreaterOrEqual(t, p.X, -6.0)
		assert.LessOrEqual(t, p.X, 300.0-6)
		assert.GreaterOrEqual(t, p.Y, -4.0)
		assert.LessOrEqual(t, p.Y, 200.0-4)
	}
}

func TestSetPositionClampsAxesIndependently(t *testing.T) {
	ind, err := New(geom.Sz(10, 10), geom.Sz(100, 100))
	require.NoError(t, err)

	ind.SetPosition(-500, 40)
	assert.Equal(t, geom.Pt(-5, 40), ind.Position())

	ind.SetPosition(50, 1e6)
	assert.Equal(t, geom.Pt(50, 95), ind.Position())
}

func TestPositionReturnsStoredValue(t *testing.T) {
	ind, err := New(geom.Sz(10, 10), geom.Sz(100, 100))
	require.NoError(t, err)
	ind.SetPosition(12.25, 33.5)
	assert.Equal(t, geom.Pt(12.25, 33.5), ind.Position())
	assert.Equal(t, geom.Pt(17.25, 38.5), ind.Center())
}

func TestCenteredAndCenterOn(t *testing.T) {
	ind, err := New(geom.Sz(12, 12), geom.Sz(300, 300), Centered())
	require.NoError(t, err)
	assert.Equal(t, geom.Pt(150, 150), ind.Center())

	ind.CenterOn(geom.Pt(-40, 999))
	assert.Equal(t, geom.Pt(0, 300), ind.Center())
}

func TestVerticalOnly(t *testing.T) {
	ind, err := New(geom.Sz(50, 6), geom.Sz(50, 300), VerticalOnly())
	require.NoError(t, err)
	ind.SetPosition(17, 120)
	assert.Equal(t, geom.Pt(0, 120), ind.Position())
}

func TestResizeReclamps(t *testing.T) {
	ind, err := New(geom.Sz(10, 10), geom.Sz(300, 300), WithPosition(280, 280))
	require.NoError(t, err)
	require.NoError(t, ind.Resize(geom.Sz(100, 100)))
	assert.Equal(t, geom.Pt(95, 95), ind.Position())
	assert.True(t, errors.Is(ind.Resize(geom.Sz(0, 1)), ErrInvalidSize))
}

func TestNewRejectsInvalidSizes(t *testing.T) {
	_, err := New(geom.Sz(0, 5), geom.Sz(10, 10))
	assert.True(t, errors.Is(err, ErrInvalidSize))
	_, err = New(geom.Sz(5, 5), geom.Sz(10, -1))
	assert.True(t, errors.Is(err, ErrInvalidSize))
}

func TestBounds(t *testing.T) {
	ind, err := New(geom.Sz(12, 12), geom.Sz(300, 300), WithPosition(-6, 10.5))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(94, 20, 106, 32), ind.Bounds(image.Pt(100, 10)))
}
