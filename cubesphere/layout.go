// Package cubesphere generates the horizontal grid geometry of a
// gnomonic cubed sphere: six projected faces stitched into one
// topologically consistent cube, optional Schmidt/cube stretch
// transforms, aligned nested grids, and the derived supergrid with its
// edge lengths, cell areas and rotation angles.
package cubesphere

import "fmt"

// BaseTiles is the number of cube faces; tiles beyond it are nests.
const BaseTiles = 6

// MaxNests bounds the number of nest specifications per invocation.
const MaxNests = 32

// TileShape holds one tile's cell-grid dimensions. Base faces are
// square; nests may be rectangular.
type TileShape struct {
	Ni, Nj int
}

// Nx and Ny are the supergrid dimensions, twice the cell grid.
func (s TileShape) Nx() int { return 2 * s.Ni }
func (s TileShape) Ny() int { return 2 * s.Nj }

// Layout maps (tile, i, j) positions to element offsets in the flat
// per-field buffers. Tiles may differ in size, so each of the four
// field families (cell vertices, supergrid vertices, edge lengths,
// cell areas) carries its own offset table.
type Layout struct {
	Shapes []TileShape

	vert, super, length, area                     []int
	vertTotal, superTotal, lengthTotal, areaTotal int
}

// NewLayout computes the offset tables for the given tile shapes.
func NewLayout(shapes []TileShape) *Layout {
	l := &Layout{
		Shapes: shapes,
		vert:   make([]int, len(shapes)),
		super:  make([]int, len(shapes)),
		length: make([]int, len(shapes)),
		area:   make([]int, len(shapes)),
	}
	for n, s := range shapes {
		l.vert[n] = l.vertTotal
		l.super[n] = l.superTotal
		l.length[n] = l.lengthTotal
		l.area[n] = l.areaTotal
		l.vertTotal += (s.Ni + 1) * (s.Nj + 1)
		l.superTotal += (s.Nx() + 1) * (s.Ny() + 1)
		l.lengthTotal += lengthSize(s)
		l.areaTotal += s.Nx() * s.Ny()
	}
	return l
}

func (l *Layout) NumTiles() int { return len(l.Shapes) }

// lengthSize is the per-tile extent of the edge-length family. The
// i-edge block spans Nx*(Ny+1) and the j-edge block (Nx+1)*Ny from the
// same base; these coincide on square tiles but not on rectangular
// nests, so the region accommodates the larger of the two.
func lengthSize(s TileShape) int {
	sz := s.Nx() * (s.Ny() + 1)
	if alt := (s.Nx() + 1) * s.Ny(); alt > sz {
		sz = alt
	}
	return sz
}

// Vert returns the flat index of cell-grid vertex (i, j) on tile n.
func (l *Layout) Vert(n, i, j int) int {
	s := l.Shapes[n]
	if i < 0 || i > s.Ni || j < 0 || j > s.Nj {
		panic(fmt.Sprintf("cubesphere: vertex (%d,%d) out of range for tile %d (%dx%d cells)", i, j, n, s.Ni, s.Nj))
	}
	return l.vert[n] + j*(s.Ni+1) + i
}

// Super returns the flat index of supergrid vertex (i, j) on tile n.
func (l *Layout) Super(n, i, j int) int {
	s := l.Shapes[n]
	if i < 0 || i > s.Nx() || j < 0 || j > s.Ny() {
		panic(fmt.Sprintf("cubesphere: supergrid vertex (%d,%d) out of range for tile %d (%dx%d)", i, j, n, s.Nx(), s.Ny()))
	}
	return l.super[n] + j*(s.Nx()+1) + i
}

// Per-tile base offsets into each field family.
func (l *Layout) VertBase(n int) int   { return l.vert[n] }
func (l *Layout) SuperBase(n int) int  { return l.super[n] }
func (l *Layout) LengthBase(n int) int { return l.length[n] }
func (l *Layout) AreaBase(n int) int   { return l.area[n] }

// Total element counts across all tiles.
func (l *Layout) VertCount() int   { return l.vertTotal }
func (l *Layout) SuperCount() int  { return l.superTotal }
func (l *Layout) LengthCount() int { return l.lengthTotal }
func (l *Layout) AreaCount() int   { return l.areaTotal }

// VertSlice returns the sub-slices of buf holding tile n's cell grid.
func (l *Layout) VertSlice(buf []float64, n int) []float64 {
	s := l.Shapes[n]
	return buf[l.vert[n] : l.vert[n]+(s.Ni+1)*(s.Nj+1)]
}
