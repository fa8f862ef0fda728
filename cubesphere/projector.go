package cubesphere

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"

	"github.com/gridtools/cubedsphere/sphere"
)

// Projection selects the gnomonic family used to lay grid lines on a
// cube face. Only Equidistant is implemented; the other two members
// are recognized configuration values whose construction fails, so an
// unsupported projection can never reach the generation pipeline.
type Projection int

const (
	// Equidistant ("gnomonic_ed") spaces grid lines equally along the
	// four face edges; grid lines are intersections of great circles
	// with the face.
	Equidistant Projection = iota
	// EquiAngular ("gnomonic_angl") is recognized but not implemented.
	EquiAngular
	// EquiDistance ("gnomonic_dist") is recognized but not implemented.
	EquiDistance
)

func (p Projection) String() string {
	switch p {
	case Equidistant:
		return "gnomonic_ed"
	case EquiAngular:
		return "gnomonic_angl"
	case EquiDistance:
		return "gnomonic_dist"
	}
	return fmt.Sprintf("Projection(%d)", int(p))
}

// ParseProjection maps a grid-type string to a Projection. The
// unimplemented variants parse to an error so callers fail at
// construction time rather than mid-generation.
func ParseProjection(s string) (Projection, error) {
	switch s {
	case "gnomonic_ed":
		return Equidistant, nil
	case "gnomonic_angl":
		return EquiAngular, fmt.Errorf("cubesphere: projection %q not yet implemented", s)
	case "gnomonic_dist":
		return EquiDistance, fmt.Errorf("cubesphere: projection %q not yet implemented", s)
	}
	return 0, fmt.Errorf("cubesphere: grid type must be %q, %q or %q, got %q",
		"gnomonic_ed", "gnomonic_dist", "gnomonic_angl", s)
}

// projectFace produces the (ni+1)x(ni+1) vertex lon/lat arrays of the
// reference face for the equidistant gnomonic projection. The face
// spans lon [0.75*pi, 1.25*pi] and lat [-alpha, alpha] with
// alpha = asin(1/sqrt(3)), the half-angle subtended by a cube face.
//
// The four edges are laid out analytically: the west and east edges
// have equally spaced latitudes, and the south and north edges follow
// by great-circle mirror reflection about the face diagonal. The full
// boundary is then back-projected onto the cube face plane
// x = -1/sqrt(3) and the interior filled by the separable combination
// of boundary values in the plane before reconverting to lon/lat.
func projectFace(ni int) (lon, lat []float64) {
	nip := ni + 1
	rsq3 := 1 / math.Sqrt(3)
	alpha := math.Asin(rsq3)
	dely := 2 * alpha / float64(ni)

	lon = make([]float64, nip*nip)
	lat = make([]float64, nip*nip)

	// West and east edges.
	for j := 0; j < nip; j++ {
		lon[j*nip] = 0.75 * math.Pi
		lon[j*nip+ni] = 1.25 * math.Pi
		lat[j*nip] = -alpha + dely*float64(j)
		lat[j*nip+ni] = lat[j*nip]
	}

	// South and north edges by mirror symmetry about the diagonal from
	// the south-west to the north-east corner.
	for i := 1; i < ni; i++ {
		lon[i], lat[i] = sphere.Mirror(lon[0], lat[0], lon[ni*nip+ni], lat[ni*nip+ni], lon[i*nip], lat[i*nip])
		lon[ni*nip+i] = lon[i]
		lat[ni*nip+i] = -lat[i]
	}

	y := make([]float64, nip*nip)
	z := make([]float64, nip*nip)

	// The corners already lie on the face plane.
	for _, p := range []int{0, ni, ni * nip, ni*nip + ni} {
		v := sphere.Cartesian(lon[p], lat[p])
		y[p] = v.Y
		z[p] = v.Z
	}

	// Project the west and south edge interiors onto x = -1/sqrt(3).
	for j := 1; j < ni; j++ {
		p := j * nip
		v := sphere.Cartesian(lon[p], lat[p])
		y[p] = -v.Y * rsq3 / v.X
		z[p] = -v.Z * rsq3 / v.X
	}
	for i := 1; i < ni; i++ {
		v := sphere.Cartesian(lon[i], lat[i])
		y[i] = -v.Y * rsq3 / v.X
		z[i] = -v.Z * rsq3 / v.X
	}

	// In the face plane the grid is separable: y varies only with i,
	// z only with j.
	for j := 1; j < nip; j++ {
		for i := 1; i < nip; i++ {
			y[j*nip+i] = y[i]
			z[j*nip+i] = z[j*nip]
		}
	}

	for p := range lon {
		lon[p], lat[p] = sphere.LonLat(r3.Vector{X: -rsq3, Y: y[p], Z: z[p]})
	}
	return
}
