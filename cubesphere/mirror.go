package cubesphere

import (
	"math"

	"github.com/gridtools/cubedsphere/sphere"
)

func signOf(v float64) float64 {
	if v >= 0 {
		return 1
	}
	return -1
}

// symmetrizeTileZero enforces the reference face's four-fold symmetry
// in the centered frame: the magnitudes of the four mirror positions
// are averaged while each position keeps its own sign, and on grids
// with a literal center column the dateline/prime-meridian longitudes
// are forced to exactly zero.
func symmetrizeTileZero(ni int, xc, yc []float64) {
	nip := ni + 1
	half := (nip + 1) / 2
	for j := 0; j < half; j++ {
		jp := ni - j
		for i := 0; i < half; i++ {
			ip := ni - i

			x1 := 0.25 * (math.Abs(xc[j*nip+i]) + math.Abs(xc[j*nip+ip]) +
				math.Abs(xc[jp*nip+i]) + math.Abs(xc[jp*nip+ip]))
			xc[j*nip+i] = x1 * signOf(xc[j*nip+i])
			xc[j*nip+ip] = x1 * signOf(xc[j*nip+ip])
			xc[jp*nip+i] = x1 * signOf(xc[jp*nip+i])
			xc[jp*nip+ip] = x1 * signOf(xc[jp*nip+ip])

			y1 := 0.25 * (math.Abs(yc[j*nip+i]) + math.Abs(yc[j*nip+ip]) +
				math.Abs(yc[jp*nip+i]) + math.Abs(yc[jp*nip+ip]))
			yc[j*nip+i] = y1 * signOf(yc[j*nip+i])
			yc[j*nip+ip] = y1 * signOf(yc[j*nip+ip])
			yc[jp*nip+i] = y1 * signOf(yc[jp*nip+i])
			yc[jp*nip+ip] = y1 * signOf(yc[jp*nip+ip])

			if nip%2 == 1 && i == (nip-1)/2 {
				xc[j*nip+i] = 0
				xc[jp*nip+i] = 0
			}
		}
	}
}

// replicateTile computes one vertex of tile nt (1..5) from the
// corresponding vertex of the symmetric tile 0 by the cube's rotation
// group, then forces exact pole and dateline/prime-meridian values at
// the center row/column where floating point would leave a residual.
// Center forcing only applies when the grid has an odd vertex count,
// so a literal center exists.
func replicateTile(nt, nip, i, j int, lon, lat float64) (lon2, lat2 float64) {
	mid := (nip - 1) / 2
	hasCenter := nip%2 == 1

	switch nt {
	case 1: // tile 2
		lon2, lat2 = sphere.RotateLonLat(lon, lat, sphere.ZAxis, -math.Pi/2)

	case 2: // tile 3, holds the north pole
		lon2, lat2 = sphere.RotateLonLat(lon, lat, sphere.ZAxis, -math.Pi/2)
		lon2, lat2 = sphere.RotateLonLat(lon2, lat2, sphere.XAxis, math.Pi/2)
		if hasCenter {
			if i == mid && j == mid {
				lon2 = 0
				lat2 = math.Pi / 2
			}
			if j == mid && i < mid {
				lon2 = 0
			}
			if j == mid && i > mid {
				lon2 = math.Pi
			}
		}

	case 3: // tile 4
		lon2, lat2 = sphere.RotateLonLat(lon, lat, sphere.ZAxis, -math.Pi)
		lon2, lat2 = sphere.RotateLonLat(lon2, lat2, sphere.XAxis, math.Pi/2)
		if hasCenter && j == mid {
			lon2 = math.Pi
		}

	case 4: // tile 5
		lon2, lat2 = sphere.RotateLonLat(lon, lat, sphere.ZAxis, math.Pi/2)
		lon2, lat2 = sphere.RotateLonLat(lon2, lat2, sphere.YAxis, math.Pi/2)

	case 5: // tile 6, holds the south pole
		lon2, lat2 = sphere.RotateLonLat(lon, lat, sphere.YAxis, math.Pi/2)
		if hasCenter {
			if i == mid && j == mid {
				lon2 = 0
				lat2 = -math.Pi / 2
			}
			if i == mid && j > mid {
				lon2 = 0
			}
			if i == mid && j < mid {
				lon2 = math.Pi
			}
		}
	}
	return
}

// mirrorCube fills tiles 1..5 from tile 0 and enforces tile 0's own
// four-fold symmetry. The arrays hold six faces of (ni+1)^2 vertices;
// longitudes are in the [-pi, pi] frame with tile 0 centered on the
// equator and the prime meridian.
func mirrorCube(ni int, xc, yc []float64) {
	nip := ni + 1

	symmetrizeTileZero(ni, xc, yc)

	for nt := 1; nt < BaseTiles; nt++ {
		for j := 0; j < nip; j++ {
			for i := 0; i < nip; i++ {
				lon2, lat2 := replicateTile(nt, nip, i, j, xc[j*nip+i], yc[j*nip+i])
				xc[nt*nip*nip+j*nip+i] = lon2
				yc[nt*nip*nip+j*nip+i] = lat2
			}
		}
	}
}
