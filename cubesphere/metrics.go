package cubesphere

import (
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/gridtools/cubedsphere/sphere"
)

// calcEdgeLengths fills the great-circle lengths of all supergrid
// edges. dx holds the i-direction edges of tile n at
// LengthBase(n)+j*Nx+i; dy holds the j-direction edges at
// LengthBase(n)+j*(Nx+1)+i. On unstretched base faces the grid is
// symmetric under transposition, so dy is taken from dx instead of
// recomputed.
func calcEdgeLengths(l *Layout, stretched bool, x, y, dx, dy []float64) {
	for n := 0; n < l.NumTiles(); n++ {
		s := l.Shapes[n]
		nx, ny := s.Nx(), s.Ny()
		base := l.LengthBase(n)
		for j := 0; j <= ny; j++ {
			for i := 0; i < nx; i++ {
				p1 := l.Super(n, i, j)
				p2 := l.Super(n, i+1, j)
				dx[base+j*nx+i] = sphere.GreatCircleDistance(x[p1], y[p1], x[p2], y[p2])
			}
		}
	}

	for n := 0; n < l.NumTiles(); n++ {
		s := l.Shapes[n]
		nx, ny := s.Nx(), s.Ny()
		base := l.LengthBase(n)
		if stretched || n >= BaseTiles {
			for j := 0; j < ny; j++ {
				for i := 0; i <= nx; i++ {
					p1 := l.Super(n, i, j)
					p2 := l.Super(n, i, j+1)
					dy[base+j*(nx+1)+i] = sphere.GreatCircleDistance(x[p1], y[p1], x[p2], y[p2])
				}
			}
		} else {
			for j := 0; j <= ny; j++ {
				for i := 0; i < nx; i++ {
					dy[base+i*(nx+1)+j] = dx[base+j*nx+i]
				}
			}
		}
	}

	fixEdgeSeams(l, dx, dy)
}

// fixEdgeSeams copies j-edge lengths across the nine cube seams where
// a tile's west or east column duplicates a neighbor's edge row,
// keeping the shared edges bitwise consistent between tiles.
func fixEdgeSeams(l *Layout, dx, dy []float64) {
	nx := l.Shapes[0].Nx()
	nxp := nx + 1
	t := func(n int) int { return l.LengthBase(n) }

	for j := 0; j < nx; j++ {
		dy[t(0)+j*nxp] = dx[t(4)+nx*nx+nx-j-1]      // 5N -> 1W
		dy[t(0)+j*nxp+nx] = dy[t(1)+j*nxp]          // 2W -> 1E
		dy[t(1)+j*nxp+nx] = dx[t(3)+nx-j-1]         // 4S -> 2E
		dy[t(2)+j*nxp] = dx[t(0)+nx*nx+nx-j-1]      // 1N -> 3W
		dy[t(2)+j*nxp+nx] = dy[t(3)+j*nxp]          // 4W -> 3E
		dy[t(3)+j*nxp+nx] = dx[t(5)+nx-j-1]         // 6S -> 4E
		dy[t(4)+j*nxp] = dx[t(2)+nx*nx+nx-j-1]      // 3N -> 5W
		dy[t(4)+j*nxp+nx] = dy[t(5)+j*nxp]          // 6W -> 5E
		dy[t(5)+j*nxp+nx] = dx[t(1)+nx-j-1]         // 2S -> 6E
	}
}

// calcCellArea fills the spherical-excess areas of one tile's
// supergrid cells. x and y are the tile's supergrid vertices with row
// stride nx+1; area receives nx*ny values in square meters.
func calcCellArea(nx, ny int, x, y, area []float64) {
	nxp := nx + 1
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			ll := [2]float64{x[j*nxp+i], y[j*nxp+i]}
			lr := [2]float64{x[j*nxp+i+1], y[j*nxp+i+1]}
			ur := [2]float64{x[(j+1)*nxp+i+1], y[(j+1)*nxp+i+1]}
			ul := [2]float64{x[(j+1)*nxp+i], y[(j+1)*nxp+i]}
			area[j*nx+i] = sphere.QuadArea(ll, lr, ur, ul)
		}
	}
}

// calcAreas fills cell areas for every tile. Without a stretch
// transform the six faces are congruent, so only the first face is
// computed and copied; stretched grids and nests get per-tile
// calculations, fanned out since each tile writes a disjoint region.
func calcAreas(l *Layout, stretched bool, x, y, area []float64) error {
	var grp errgroup.Group

	s0 := l.Shapes[0]
	if stretched {
		for n := 0; n < BaseTiles; n++ {
			base := n
			grp.Go(func() error {
				calcCellArea(s0.Nx(), s0.Ny(),
					x[l.SuperBase(base):], y[l.SuperBase(base):], area[l.AreaBase(base):])
				return nil
			})
		}
	} else {
		calcCellArea(s0.Nx(), s0.Ny(), x, y, area)
		first := area[:l.AreaBase(1)]
		for n := 1; n < BaseTiles; n++ {
			copy(area[l.AreaBase(n):l.AreaBase(n)+len(first)], first)
		}
	}
	for n := BaseTiles; n < l.NumTiles(); n++ {
		s, base := l.Shapes[n], n
		grp.Go(func() error {
			calcCellArea(s.Nx(), s.Ny(),
				x[l.SuperBase(base):], y[l.SuperBase(base):], area[l.AreaBase(base):])
			return nil
		})
	}
	return grp.Wait()
}

// calcRotationAngles fills the local angle in degrees between grid
// axes and geographic east/north at every supergrid vertex of the six
// base faces. Points on a face edge take their finite-difference
// neighbors from the adjacent face; even and odd faces attach their
// neighbors with opposite orientations.
func calcRotationAngles(l *Layout, x, y, angleDX, angleDY []float64) {
	nx := l.Shapes[0].Nx()
	nxp := nx + 1

	for n := 0; n < BaseTiles; n++ {
		for j := 0; j < nxp; j++ {
			for i := 0; i < nxp; i++ {
				n1 := l.Super(n, i, j)
				lonScale := math.Cos(y[n1] * sphere.Deg2Rad)

				tp1, tm1 := n, n
				ip1, im1 := i+1, i-1
				jp1, jm1 := j, j
				if ip1 >= nxp {
					if n%2 == 0 {
						tp1 = n + 1
						ip1 = 0
					} else {
						tp1 = (n + 2) % BaseTiles
						ip1 = nx - j - 1
						jp1 = 0
					}
				}
				if im1 < 0 {
					if n%2 == 0 {
						tm1 = (n - 2 + BaseTiles) % BaseTiles
						jm1 = nx
						im1 = nx - j
					} else {
						tm1 = n - 1
						im1 = nx
					}
				}
				// The odd-tile east rule walks off the corner at
				// (nx,nx): ip1 becomes -1 and the flat index lands on
				// vertex (nx,nx) of the tile before tp1. Kept, like
				// the lon_scale radians quirk, to reproduce upstream
				// values.
				var n2 int
				if ip1 < 0 {
					n2 = l.SuperBase(tp1) + jp1*nxp + ip1
				} else {
					n2 = l.Super(tp1, ip1, jp1)
				}
				n3 := l.Super(tm1, im1, jm1)
				angleDX[n1] = math.Atan2(y[n2]-y[n3], (x[n2]-x[n3])*lonScale) * sphere.Rad2Deg

				tp1, tm1 = n, n
				ip1, im1 = i, i
				jp1, jm1 = j+1, j-1
				if jp1 >= nxp {
					if n%2 == 0 {
						tp1 = (n + 2) % BaseTiles
						jp1 = nx - i
						ip1 = 0
					} else {
						tp1 = (n + 1) % BaseTiles
						jp1 = 0
					}
				}
				if jm1 < 0 {
					if n%2 == 0 {
						tm1 = (n - 1 + BaseTiles) % BaseTiles
						jm1 = nx
					} else {
						tm1 = (n - 2 + BaseTiles) % BaseTiles
						im1 = nx
						jm1 = nx - i
					}
				}
				n2 = l.Super(tp1, ip1, jp1)
				n3 = l.Super(tm1, im1, jm1)
				angleDY[n1] = math.Atan2(y[n2]-y[n3], (x[n2]-x[n3])*lonScale) * sphere.Rad2Deg
			}
		}
	}

	for n := BaseTiles; n < l.NumTiles(); n++ {
		s := l.Shapes[n]
		base := l.SuperBase(n)
		for i := 0; i < (s.Nx()+1)*(s.Ny()+1); i++ {
			angleDX[base+i] = 0
			angleDY[base+i] = 0
		}
	}
}
