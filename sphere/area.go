package sphere

import (
	"math"

	"github.com/golang/geo/r3"
)

// planeNormal returns the unit normal of the plane through the sphere
// center and the two given points.
func planeNormal(p1, p2 r3.Vector) r3.Vector {
	n := p1.Cross(p2)
	if mag := n.Norm(); mag > 0 {
		return n.Mul(1 / mag)
	}
	return n
}

// angleBetween returns the angle between two vectors, or 0 when either
// is degenerate.
func angleBetween(v1, v2 r3.Vector) float64 {
	nrm1 := v1.Norm2()
	nrm2 := v2.Norm2()
	if nrm1*nrm2 <= 0 {
		return 0
	}
	return math.Acos(v1.Dot(v2) / math.Sqrt(nrm1*nrm2))
}

// ExcessOfQuad returns the spherical excess of the quadrilateral whose
// corners are the given cyclically-ordered unit vectors: the sum of the
// four interior angles minus 2*pi. Multiply by Radius squared for the
// enclosed area.
func ExcessOfQuad(v1, v2, v3, v4 r3.Vector) float64 {
	plane1 := planeNormal(v1, v2)
	plane2 := planeNormal(v2, v3)
	plane3 := planeNormal(v3, v4)
	plane4 := planeNormal(v4, v1)

	ang12 := math.Pi - angleBetween(plane2, plane1)
	ang23 := math.Pi - angleBetween(plane3, plane2)
	ang34 := math.Pi - angleBetween(plane4, plane3)
	ang41 := math.Pi - angleBetween(plane1, plane4)

	return ang12 + ang23 + ang34 + ang41 - 2*math.Pi
}

// QuadArea returns the spherical-excess area in square meters of the
// cell with corner points ll, lr, ur, ul given as (lon, lat) pairs in
// counterclockwise order viewed from outside the sphere.
func QuadArea(ll, lr, ur, ul [2]float64) float64 {
	excess := ExcessOfQuad(
		Cartesian(ll[0], ll[1]),
		Cartesian(lr[0], lr[1]),
		Cartesian(ur[0], ur[1]),
		Cartesian(ul[0], ul[1]),
	)
	return excess * Radius * Radius
}
