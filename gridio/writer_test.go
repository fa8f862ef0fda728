package gridio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridtools/cubedsphere/cubesphere"
)

func TestWriteReadRoundTrip(t *testing.T) {
	dir := t.TempDir()

	gen, err := cubesphere.New(cubesphere.Spec{
		SuperGridSizes:    [cubesphere.BaseTiles]int{4, 4, 4, 4, 4, 4},
		ShiftFac:          18,
		OutputLengthAngle: true,
	})
	require.NoError(t, err)
	grid, err := gen.Generate()
	require.NoError(t, err)

	require.NoError(t, WriteGrid(dir, grid))

	man, err := ReadManifest(dir)
	require.NoError(t, err)
	assert.Equal(t, "gnomonic_ed", man.GridType)
	require.Len(t, man.Tiles, 6)
	assert.Equal(t, 2, man.Tiles[0].Ni)
	assert.Equal(t, 4, man.Tiles[0].Nx)
	require.Len(t, man.Fields, 7)

	for _, f := range man.Fields {
		data, err := ReadField(dir, f)
		require.NoError(t, err)
		var want []float64
		switch f.Name {
		case "x":
			want = grid.X
		case "y":
			want = grid.Y
		case "dx":
			want = grid.DX
		case "dy":
			want = grid.DY
		case "area":
			want = grid.Area
		case "angle_dx":
			want = grid.AngleDX
		case "angle_dy":
			want = grid.AngleDY
		}
		assert.Equal(t, want, data, "field %s", f.Name)
	}
}

func TestWriteGridSkipsAbsentFields(t *testing.T) {
	dir := t.TempDir()

	gen, err := cubesphere.New(cubesphere.Spec{
		SuperGridSizes: [cubesphere.BaseTiles]int{4, 4, 4, 4, 4, 4},
	})
	require.NoError(t, err)
	grid, err := gen.Generate()
	require.NoError(t, err)

	require.NoError(t, WriteGrid(dir, grid))
	man, err := ReadManifest(dir)
	require.NoError(t, err)
	assert.Len(t, man.Fields, 3) // x, y, area

	_, err = os.Stat(filepath.Join(dir, "dx.bin"))
	assert.True(t, os.IsNotExist(err))
}

func TestReadFieldSizeMismatch(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "x.bin"), []byte{1, 2, 3}, 0644))
	_, err := ReadField(dir, FieldInfo{Name: "x", File: "x.bin", Count: 4})
	assert.Error(t, err)
}
