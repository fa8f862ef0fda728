package cubesphere

import (
	"io"
	"math"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridtools/cubedsphere/sphere"
)

func quietLog() *logrus.Entry {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return logrus.NewEntry(log)
}

func TestStretchFlags(t *testing.T) {
	assert.False(t, Stretch{}.Active())
	assert.False(t, Stretch{}.Stretched())
	assert.True(t, Stretch{Mode: Schmidt, Factor: 3}.Active())
	assert.True(t, Stretch{Mode: Schmidt, Factor: 3}.Stretched())
	// Factor 1 is a pure rotation, not a stretch.
	assert.True(t, Stretch{Mode: CubeTransform, Factor: 1}.Active())
	assert.False(t, Stretch{Mode: CubeTransform, Factor: 1}.Stretched())
}

func TestSchmidtUnitFactorIsRotation(t *testing.T) {
	// With c=1 the latitude remap vanishes; a south-pole target keeps
	// latitudes and shifts longitudes rigidly by lonP - pi, so the
	// canonical target lonP = pi is the identity.
	lon := []float64{0.3}
	lat := []float64{0.5}
	schmidtTransform(1, math.Pi, -math.Pi/2, lon, lat)
	assert.InDelta(t, 0.3, lon[0], 1e-12)
	assert.InDelta(t, 0.5, lat[0], 1e-12)

	lonP := math.Pi / 2
	lon[0], lat[0] = 0.3, 0.5
	schmidtTransform(1, lonP, -math.Pi/2, lon, lat)
	assert.InDelta(t, 0.3+lonP-math.Pi+2*math.Pi, lon[0], 1e-12)
	assert.InDelta(t, 0.5, lat[0], 1e-12)
}

func TestSchmidtStretchConcentrates(t *testing.T) {
	// Stretching with c>1 pulls grid points toward the target; the
	// face-center image must land on the target point itself.
	lon := []float64{math.Pi}
	lat := []float64{0}
	target := [2]float64{1.0, 0.5}
	schmidtTransform(3, target[0], target[1], lon, lat)

	// The untransformed center (pi, 0) maps off-target; the stretch
	// pole pre-image (pi, -pi/2) maps onto the target exactly.
	lonC := []float64{math.Pi}
	latC := []float64{-math.Pi / 2}
	schmidtTransform(3, target[0], target[1], lonC, latC)
	assert.InDelta(t, target[0], lonC[0], 1e-9)
	assert.InDelta(t, target[1], latC[0], 1e-9)

	// Latitudes stay physical.
	assert.LessOrEqual(t, math.Abs(lat[0]), math.Pi/2)
}

func TestSuggestTargetLatsPlacesPoles(t *testing.T) {
	// On a fine enough grid the advisory finds vertices steering both
	// poles onto the grid; re-running the transform with the adjusted
	// target must then put a vertex exactly at each pole.
	ni := 192
	nip := ni + 1
	xc, yc, l := buildBase(t, ni, false)
	stitchEdges(ni, l, xc, yc)

	c := 3.
	lonP := 262.4 * sphere.Deg2Rad
	latP := -40. * sphere.Deg2Rad
	sug := suggestTargetLats(quietLog(), c, lonP, latP, ni, xc, yc)
	require.True(t, sug.HasNorth)
	require.True(t, sug.HasSouth)

	x2 := append([]float64(nil), xc...)
	y2 := append([]float64(nil), yc...)
	for n := 0; n < BaseTiles; n++ {
		face := n * nip * nip
		schmidtTransform(c, lonP, sug.North, x2[face:face+nip*nip], y2[face:face+nip*nip])
	}
	maxLat := -math.Pi
	for _, v := range y2 {
		if v > maxLat {
			maxLat = v
		}
	}
	assert.Equal(t, math.Pi/2, maxLat)

	// Repeat with stretch factor 2, choosing the input target latitude
	// so the search lands on the same pole candidate vertex.
	cN := 2.
	g := ((1 - c*c) + (1 + c*c)*math.Sin(latP)) /
		((1 + c*c) + (1 - c*c)*math.Sin(latP))
	latP2 := math.Asin((5*g + 3) / (5 + 3*g))
	sug2 := suggestTargetLats(quietLog(), cN, lonP, latP2, ni, xc, yc)
	require.True(t, sug2.HasNorth)

	x3 := append([]float64(nil), xc...)
	y3 := append([]float64(nil), yc...)
	for n := 0; n < BaseTiles; n++ {
		face := n * nip * nip
		schmidtTransform(cN, lonP, sug2.North, x3[face:face+nip*nip], y3[face:face+nip*nip])
	}
	maxLat = -math.Pi
	for _, v := range y3 {
		if v > maxLat {
			maxLat = v
		}
	}
	assert.InDelta(t, math.Pi/2, maxLat, 1e-4)
}
