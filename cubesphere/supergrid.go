package cubesphere

import (
	"github.com/golang/geo/r3"
	"github.com/gridtools/cubedsphere/sphere"
)

// cellCenter places one point at the centroid of every cell, computed
// as the normalized Cartesian mean of its four corners. Input arrays
// hold (ni+1)*(nj+1) vertices; output arrays hold ni*nj centers.
func cellCenter(ni, nj int, lon, lat, lonC, latC []float64) {
	nip := ni + 1
	for j := 0; j < nj; j++ {
		for i := 0; i < ni; i++ {
			p1 := sphere.Cartesian(lon[j*nip+i], lat[j*nip+i])
			p2 := sphere.Cartesian(lon[j*nip+i+1], lat[j*nip+i+1])
			p3 := sphere.Cartesian(lon[(j+1)*nip+i], lat[(j+1)*nip+i])
			p4 := sphere.Cartesian(lon[(j+1)*nip+i+1], lat[(j+1)*nip+i+1])
			sum := r3.Vector{
				X: p1.X + p2.X + p3.X + p4.X,
				Y: p1.Y + p2.Y + p3.Y + p4.Y,
				Z: p1.Z + p2.Z + p3.Z + p4.Z,
			}
			lonC[j*ni+i], latC[j*ni+i] = sphere.LonLat(sum)
		}
	}
}

// cellEast places one point midway along every west-east cell wall,
// halfway between vertically adjacent vertices. Output arrays hold
// (ni+1)*nj points.
func cellEast(ni, nj int, lon, lat, lonE, latE []float64) {
	nip := ni + 1
	for j := 0; j < nj; j++ {
		for i := 0; i <= ni; i++ {
			p1 := sphere.Cartesian(lon[j*nip+i], lat[j*nip+i])
			p2 := sphere.Cartesian(lon[(j+1)*nip+i], lat[(j+1)*nip+i])
			sum := r3.Vector{X: p1.X + p2.X, Y: p1.Y + p2.Y, Z: p1.Z + p2.Z}
			lonE[j*nip+i], latE[j*nip+i] = sphere.LonLat(sum)
		}
	}
}

// cellNorth places one point midway along every south-north cell wall,
// halfway between horizontally adjacent vertices. Output arrays hold
// ni*(nj+1) points.
func cellNorth(ni, nj int, lon, lat, lonN, latN []float64) {
	for j := 0; j <= nj; j++ {
		for i := 0; i < ni; i++ {
			p1 := sphere.Cartesian(lon[j*(ni+1)+i], lat[j*(ni+1)+i])
			p2 := sphere.Cartesian(lon[j*(ni+1)+i+1], lat[j*(ni+1)+i+1])
			sum := r3.Vector{X: p1.X + p2.X, Y: p1.Y + p2.Y, Z: p1.Z + p2.Z}
			lonN[j*ni+i], latN[j*ni+i] = sphere.LonLat(sum)
		}
	}
}

// assembleTile interleaves cell vertices, centers and wall midpoints
// of one tile into its supergrid arrays. Vertices land on even-even
// supergrid indices, centers on odd-odd, east-wall midpoints on
// even-odd and north-wall midpoints on odd-even.
func assembleTile(ni, nj int, lon, lat, xs, ys []float64) {
	nip := ni + 1
	nx := 2 * ni
	nxp := nx + 1

	lonC := make([]float64, ni*nj)
	latC := make([]float64, ni*nj)
	cellCenter(ni, nj, lon, lat, lonC, latC)

	lonE := make([]float64, nip*nj)
	latE := make([]float64, nip*nj)
	cellEast(ni, nj, lon, lat, lonE, latE)

	lonN := make([]float64, ni*(nj+1))
	latN := make([]float64, ni*(nj+1))
	cellNorth(ni, nj, lon, lat, lonN, latN)

	for j := 0; j <= nj; j++ {
		for i := 0; i <= ni; i++ {
			xs[2*j*nxp+2*i] = lon[j*nip+i]
			ys[2*j*nxp+2*i] = lat[j*nip+i]
		}
	}
	for j := 0; j < nj; j++ {
		for i := 0; i < ni; i++ {
			xs[(2*j+1)*nxp+2*i+1] = lonC[j*ni+i]
			ys[(2*j+1)*nxp+2*i+1] = latC[j*ni+i]
		}
	}
	for j := 0; j < nj; j++ {
		for i := 0; i <= ni; i++ {
			xs[(2*j+1)*nxp+2*i] = lonE[j*nip+i]
			ys[(2*j+1)*nxp+2*i] = latE[j*nip+i]
		}
	}
	for j := 0; j <= nj; j++ {
		for i := 0; i < ni; i++ {
			xs[2*j*nxp+2*i+1] = lonN[j*ni+i]
			ys[2*j*nxp+2*i+1] = latN[j*ni+i]
		}
	}
}
