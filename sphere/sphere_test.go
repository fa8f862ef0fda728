package sphere

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCartesianRoundTrip(t *testing.T) {
	points := [][2]float64{
		{0, 0},
		{0.75 * math.Pi, 0.5},
		{1.25 * math.Pi, -0.5},
		{1.999 * math.Pi, 1.2},
	}
	for _, p := range points {
		lon, lat := LonLat(Cartesian(p[0], p[1]))
		assert.InDelta(t, p[0], lon, 1e-12)
		assert.InDelta(t, p[1], lat, 1e-12)
	}
	// Polar axis points get longitude zero.
	lon, lat := LonLat(Cartesian(1.0, math.Pi/2))
	assert.Equal(t, 0., lon)
	assert.InDelta(t, math.Pi/2, lat, 1e-12)
}

func TestRotate(t *testing.T) {
	v := Cartesian(0, 0) // +X
	r := Rotate(v, ZAxis, math.Pi/2)
	assert.InDelta(t, 0, r.X, 1e-15)
	assert.InDelta(t, -1, r.Y, 1e-15)

	assert.Panics(t, func() { Rotate(v, Axis(7), 1) })
}

func TestGreatCircleDistance(t *testing.T) {
	// Half circumference between antipodal equator points.
	assert.InDelta(t, math.Pi*Radius, GreatCircleDistance(0, 0, math.Pi, 0), 1e-6)
	// Quarter circumference.
	assert.InDelta(t, 0.5*math.Pi*Radius, GreatCircleDistance(0, 0, math.Pi/2, 0), 1e-6)
	assert.InDelta(t, 0.5*math.Pi*Radius, GreatCircleDistance(0.3, 0, 0.3, math.Pi/2), 1e-6)
}

func TestSlerp(t *testing.T) {
	lon, lat, err := Slerp(0.5, 0, 0, math.Pi/2, 0)
	assert.NoError(t, err)
	assert.InDelta(t, math.Pi/4, lon, 1e-12)
	assert.InDelta(t, 0, lat, 1e-12)

	// Midpoint toward the pole stays on the meridian.
	lon, lat, err = Slerp(0.5, 0.3, 0, 0.3, math.Pi/2)
	assert.NoError(t, err)
	assert.InDelta(t, 0.3, lon, 1e-12)
	assert.InDelta(t, math.Pi/4, lat, 1e-12)

	// Coincident endpoints return the first point.
	lon, lat, err = Slerp(0.25, 1.1, -0.2, 1.1, -0.2)
	assert.NoError(t, err)
	assert.Equal(t, 1.1, lon)
	assert.Equal(t, -0.2, lat)

	// Nearly identical but not coincident endpoints degenerate.
	_, _, err = Slerp(0.5, 0, 0, 1e-6, 0)
	assert.Error(t, err)
}

func TestMirror(t *testing.T) {
	// Reflection across the equatorial plane flips latitude.
	lon, lat := Mirror(0, 0, math.Pi/2, 0, 0, 0.3)
	assert.InDelta(t, 0, lon, 1e-12)
	assert.InDelta(t, -0.3, lat, 1e-12)

	// A point on the mirror plane is unchanged.
	lon, lat = Mirror(0, 0, math.Pi/2, 0, 0.7, 0)
	assert.InDelta(t, 0.7, lon, 1e-12)
	assert.InDelta(t, 0, lat, 1e-12)
}

func TestQuadAreaCubeFace(t *testing.T) {
	// A gnomonic cube face covers one sixth of the sphere.
	alpha := math.Asin(1 / math.Sqrt(3))
	ll := [2]float64{0.75 * math.Pi, -alpha}
	lr := [2]float64{1.25 * math.Pi, -alpha}
	ur := [2]float64{1.25 * math.Pi, alpha}
	ul := [2]float64{0.75 * math.Pi, alpha}
	want := 2 * math.Pi / 3 * Radius * Radius
	assert.InEpsilon(t, want, QuadArea(ll, lr, ur, ul), 1e-10)
}

func TestQuadAreaSmallCell(t *testing.T) {
	// A small equatorial cell is nearly flat; its spherical area
	// approaches the planar product of its side lengths.
	d := 1e-3
	ll := [2]float64{0, 0}
	lr := [2]float64{d, 0}
	ur := [2]float64{d, d}
	ul := [2]float64{0, d}
	want := d * d * Radius * Radius
	assert.InEpsilon(t, want, QuadArea(ll, lr, ur, ul), 1e-5)
}
