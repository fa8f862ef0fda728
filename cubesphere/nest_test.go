package cubesphere

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParentIndex(t *testing.T) {
	// In bounds.
	idx, err := parentIndex(2, 5, 3, 4, 4, false)
	require.NoError(t, err)
	assert.Equal(t, 13, idx)

	// Out of bounds is fatal for windowed nests.
	_, err = parentIndex(5, 5, 3, 4, 4, false)
	assert.Error(t, err)
	_, err = parentIndex(2, 5, 5, 4, 4, false)
	assert.Error(t, err)

	// Global refinement saturates at the last row/column.
	idx, err = parentIndex(5, 5, 3, 4, 4, true)
	require.NoError(t, err)
	assert.Equal(t, 4*5+3, idx)
	idx, err = parentIndex(2, 5, 5, 4, 4, true)
	require.NoError(t, err)
	assert.Equal(t, 2*5+4, idx)
}

func testGenerator(t *testing.T) *Generator {
	t.Helper()
	g, err := New(Spec{
		SuperGridSizes: [BaseTiles]int{8, 8, 8, 8, 8, 8},
	}, WithLogger(quietLog()))
	require.NoError(t, err)
	return g
}

func TestAlignNestWindowBounds(t *testing.T) {
	g := testGenerator(t)
	parentX := make([]float64, 5*5)
	parentY := make([]float64, 5*5)
	xc := make([]float64, 5*5)
	yc := make([]float64, 5*5)

	// Window touching the parent edge violates a halo of one cell.
	err := g.alignNest(4, 4, parentX, parentY, 1, 2, 1, 2, 1, 2, xc, yc, false)
	assert.Error(t, err)
	err = g.alignNest(4, 4, parentX, parentY, 1, 2, 3, 4, 2, 3, xc, yc, false)
	assert.Error(t, err)
}

func TestAlignNestWindowAtParentEdge(t *testing.T) {
	// A window reaching the parent's last cell is valid with halo
	// zero; the closing row and column coincide with the parent's own
	// edge vertices.
	g := testGenerator(t)
	ni := 4
	nip := ni + 1
	lon, lat := projectFace(ni)
	symmetrizeFace(ni, lon, lat)

	npi := 2*ni + 1
	xc := make([]float64, npi*npi)
	yc := make([]float64, npi*npi)
	err := g.alignNest(ni, ni, lon, lat, 0, 2, 1, ni, 1, ni, xc, yc, false)
	require.NoError(t, err)

	for j := 0; j <= ni; j++ {
		assert.Equal(t, lon[j*nip+ni], xc[2*j*npi+2*ni])
		assert.Equal(t, lat[j*nip+ni], yc[2*j*npi+2*ni])
		assert.Equal(t, lon[ni*nip+j], xc[2*ni*npi+2*j])
		assert.Equal(t, lat[ni*nip+j], yc[2*ni*npi+2*j])
	}
}

func TestAlignNestUnitRatioCopies(t *testing.T) {
	// Ratio one makes every child vertex coincide with a parent
	// vertex, so the alignment is a plain window copy.
	g := testGenerator(t)
	ni := 4
	nip := ni + 1
	lon, lat := projectFace(ni)

	xc := make([]float64, 3*3)
	yc := make([]float64, 3*3)
	err := g.alignNest(ni, ni, lon, lat, 1, 1, 2, 3, 2, 3, xc, yc, false)
	require.NoError(t, err)

	for j := 0; j <= 2; j++ {
		for i := 0; i <= 2; i++ {
			p := (j+1)*nip + i + 1
			want := lon[p]
			if want < 0 {
				want += 2 * math.Pi
			}
			assert.Equal(t, want, xc[j*3+i])
			assert.Equal(t, lat[p], yc[j*3+i])
		}
	}
}

func TestAlignNestRefinedMidpoints(t *testing.T) {
	// With ratio two, odd child vertices bisect the parent edges along
	// great circles.
	g := testGenerator(t)
	ni := 4
	nip := ni + 1
	lon, lat := projectFace(ni)
	symmetrizeFace(ni, lon, lat)

	xc := make([]float64, 3*3)
	yc := make([]float64, 3*3)
	err := g.alignNest(ni, ni, lon, lat, 0, 2, 2, 2, 2, 2, xc, yc, false)
	require.NoError(t, err)

	// Corners coincide with parent vertices.
	assert.Equal(t, lon[1*nip+1], xc[0])
	assert.Equal(t, lat[1*nip+1], yc[0])
	assert.Equal(t, lon[2*nip+2], xc[8])
	assert.Equal(t, lat[2*nip+2], yc[8])

	// The i-midpoint of the bottom edge lies on the great circle
	// between its parent endpoints.
	wantLon, wantLat, err := g.slerpCheck(0.5, lon[1*nip+1], lat[1*nip+1], lon[1*nip+2], lat[1*nip+2])
	require.NoError(t, err)
	assert.InDelta(t, wantLon, xc[1], 1e-12)
	assert.InDelta(t, wantLat, yc[1], 1e-12)
}

// slerpCheck exposes plain interpolation for test comparison.
func (g *Generator) slerpCheck(beta, lon1, lat1, lon2, lat2 float64) (float64, float64, error) {
	p, err := g.slerp(beta, [2]float64{lon1, lat1}, [2]float64{lon2, lat2})
	return p[0], p[1], err
}
