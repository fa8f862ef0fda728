package cubesphere

import (
	"math"

	"github.com/sirupsen/logrus"

	"github.com/gridtools/cubedsphere/sphere"
)

// StretchMode selects the optional conformal transform relocating one
// pole of the stretch to a target point.
type StretchMode int

const (
	NoStretch StretchMode = iota
	// Schmidt stretches about the south pole, then rotates the pole
	// image to the target point.
	Schmidt
	// CubeTransform stretches about the north pole; the longitude is
	// pre-rotated by pi so the final orientation comes out right.
	CubeTransform
)

// Stretch parameterizes a conformal transform. Target coordinates are
// degrees, matching the user-facing configuration.
type Stretch struct {
	Mode      StretchMode
	Factor    float64
	TargetLon float64
	TargetLat float64
}

// Active reports whether a transform is requested at all.
func (s Stretch) Active() bool { return s.Mode != NoStretch }

// Stretched reports whether the stretch factor meaningfully differs
// from 1; metric shortcuts that assume identical faces only apply when
// it does not.
func (s Stretch) Stretched() bool {
	return s.Active() && math.Abs(s.Factor-1) > epsln5
}

// stretchRotate applies the stretch-then-rotate transform in place on
// one face's vertex arrays, radians in and out. The latitude remap
// sin(latT) = ((1-c^2) + (1+c^2) sin(lat)) / ((1+c^2) + (1-c^2) sin(lat))
// compresses toward the stretch pole; the subsequent rigid rotation
// places the pole image at (lonP, latP). Points landing within 1e-7 of
// a pole are snapped there exactly, with longitude 0, to avoid the
// atan2 singularity.
func stretchRotate(c, lonP, latP float64, preRotate bool, lon, lat []float64) {
	c2p1 := 1 + c*c
	c2m1 := 1 - c*c
	sinP := math.Sin(latP)
	cosP := math.Cos(latP)
	twoPi := 2 * math.Pi

	for l := range lon {
		latT := lat[l]
		if math.Abs(c2m1) > epsln7 {
			sinLat := math.Sin(lat[l])
			latT = math.Asin((c2m1 + c2p1*sinLat) / (c2p1 + c2m1*sinLat))
		}
		sinLat := math.Sin(latT)
		cosLat := math.Cos(latT)
		lonL := lon[l]
		if preRotate {
			lonL += math.Pi
		}
		sinO := -(sinP*sinLat + cosP*cosLat*math.Cos(lonL))
		if 1-math.Abs(sinO) < epsln7 {
			lon[l] = 0
			if sinO < 0 {
				lat[l] = -math.Pi / 2
			} else {
				lat[l] = math.Pi / 2
			}
		} else {
			lat[l] = math.Asin(sinO)
			lon[l] = lonP + math.Atan2(-cosLat*math.Sin(lonL), -sinLat*cosP+cosLat*sinP*math.Cos(lonL))
			if lon[l] < 0 {
				lon[l] += twoPi
			} else if lon[l] >= twoPi {
				lon[l] -= twoPi
			}
		}
	}
}

// schmidtTransform applies the south-pole-centered Schmidt transform to
// one face.
func schmidtTransform(c, lonP, latP float64, lon, lat []float64) {
	stretchRotate(c, lonP, latP, false, lon, lat)
}

// cubeTransform applies the north-pole-centered variant.
func cubeTransform(c, lonP, latP float64, lon, lat []float64) {
	stretchRotate(c, lonP, latP, true, lon, lat)
}

// TargetLatSuggestions holds advisory target latitudes, in radians,
// that would place the North pole, the South pole, or both exactly on
// a grid vertex after the Schmidt transform.
type TargetLatSuggestions struct {
	North, South, Both          float64
	HasNorth, HasSouth, HasBoth bool
}

// suggestTargetLats searches the untransformed base faces for vertices
// whose transform image can be steered onto a pole by a small
// adjustment of the target latitude, and reports the adjusted values.
// A pole lands on a vertex when its pre-image under the rigid
// rotation, the point (pi, -latP) for the North pole, is itself a grid
// vertex; inverting the stretch formula gives the grid latitude to
// look for, and re-applying it to the nearest actual vertex gives the
// adjusted target. The joint condition for both poles is the
// closed-form consistency relation between the two vertex latitudes.
// Diagnostic only: the grid is never mutated.
func suggestTargetLats(log *logrus.Entry, c, lonP, latP float64, ni int, xc, yc []float64) TargetLatSuggestions {
	var sug TargetLatSuggestions

	nip := ni + 1
	c2p1 := 1 + c*c
	c2m1 := 1 - c*c
	sinP := math.Sin(latP)

	log.Infof("input target latitude: %g", sphere.Rad2Deg*latP)

	lamNorthPre := -math.Asin((c2m1 + c2p1*sinP) / (c2p1 + c2m1*sinP))
	lamSouthPre := -math.Asin((c2m1 - c2p1*sinP) / (c2p1 - c2m1*sinP))

	npTile, npI, npJ := -1, -1, -1
	spTile, spI, spJ := -1, -1, -1

	for n := 0; n < BaseTiles; n++ {
		for j := 0; j < nip; j++ {
			for i := 0; i < nip; i++ {
				l := n*nip*nip + j*nip + i
				if math.Abs(xc[l]-math.Pi) < epsln4 && math.Abs(yc[l]-lamNorthPre) < 5e-3 {
					npTile, npJ, npI = n, j, i
					s := math.Sin(yc[l])
					sug.North = -math.Asin((c2m1 + c2p1*s) / (c2p1 + c2m1*s))
					sug.HasNorth = true
					log.Infof("suggested target latitude to have the North pole in the grid: %g", sphere.Rad2Deg*sug.North)
					break
				}
			}
			if npTile == n {
				break
			}
		}
		for j := 0; j < nip; j++ {
			for i := 0; i < nip; i++ {
				l := n*nip*nip + j*nip + i
				if math.Abs(xc[l]-math.Pi) < epsln4 && math.Abs(yc[l]-lamSouthPre) < 5e-3 {
					spTile, spJ, spI = n, j, i
					s := math.Sin(yc[l])
					sug.South = math.Asin((c2m1 + c2p1*s) / (c2p1 + c2m1*s))
					sug.HasSouth = true
					log.Infof("suggested target latitude to have the South pole in the grid: %g", sphere.Rad2Deg*sug.South)
					break
				}
			}
			if spTile == n {
				break
			}
		}
	}

	if !sug.HasNorth || !sug.HasSouth {
		return sug
	}

	// f == b is the joint condition placing both poles on vertices for
	// this stretch factor; scan vertices near the two pre-images for a
	// latitude pair satisfying it.
	f := c2p1/c2m1 + c2m1/c2p1
	for in := max(npI-10, 0); in <= min(npI+10, ni); in++ {
		for is := max(spI-10, 0); is <= min(spI+10, ni); is++ {
			ln := npTile*nip*nip + npJ*nip + in
			ls := spTile*nip*nip + spJ*nip + is
			b := -2 * (1 + math.Sin(yc[ln])*math.Sin(yc[ls])) / (math.Sin(yc[ln]) + math.Sin(yc[ls]))
			if math.Abs(f-b) < epsln4 {
				sS := math.Sin(yc[ls])
				sug.Both = math.Asin((c2m1 + c2p1*sS) / (c2p1 + c2m1*sS))
				sug.HasBoth = true
				log.Infof("suggested target latitude to have both North and South poles in the grid: %g", sphere.Rad2Deg*sug.Both)
			}
		}
	}
	return sug
}
