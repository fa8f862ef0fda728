package cubesphere

import (
	"fmt"
	"math"

	"github.com/gridtools/cubedsphere/sphere"
)

// NestSpec declares one nested grid. The index window is given in the
// parent's supergrid index space, as configured by users, and is
// halved into cell space during validation. ParentTile is 1..6 for a
// base face and 7 upward for an earlier nest; ParentTile 0 is the
// reserved sentinel meaning global uniform refinement of all six
// faces.
type NestSpec struct {
	ParentTile  int
	RefineRatio int
	IStart      int
	IEnd        int
	JStart      int
	JEnd        int
}

// nest is a validated NestSpec with the window in cell space and the
// resulting child dimensions resolved.
type nest struct {
	spec                       NestSpec
	istart, iend, jstart, jend int
	ni, nj                     int
	parentNi, parentNj         int
}

// parentIndex computes the flat index of parent vertex (ic, jc).
// Lookups past the parent's last row/column saturate there, but only
// for the global uniform-refinement variant, which legitimately probes
// one step beyond the coarse array by construction; in the windowed
// variant an out-of-range lookup is a configuration bug and fatal.
func parentIndex(jc, parentNpi, ic, maxNi, maxNj int, globalRefine bool) (int, error) {
	if jc > maxNj {
		if !globalRefine {
			return 0, fmt.Errorf("cubesphere: nest alignment row %d beyond parent extent %d", jc, maxNj)
		}
		jc = maxNj
	}
	if ic > maxNi {
		if !globalRefine {
			return 0, fmt.Errorf("cubesphere: nest alignment column %d beyond parent extent %d", ic, maxNi)
		}
		ic = maxNi
	}
	return jc*parentNpi + ic, nil
}

// slerp interpolates between two (lon, lat) points along their great
// circle, logging a warning and continuing with the first endpoint
// when the two coincide.
func (g *Generator) slerp(beta float64, p1, p2 [2]float64) ([2]float64, error) {
	if sphere.Coincident(p1[0], p1[1], p2[0], p2[1]) {
		g.log.Warnf("great-circle interpolation passed two colocated points (%g,%g)", p1[0], p1[1])
		return p1, nil
	}
	lon, lat, err := sphere.Slerp(beta, p1[0], p1[1], p2[0], p2[1])
	if err != nil {
		return [2]float64{}, err
	}
	return [2]float64{lon, lat}, nil
}

// alignNest fills the child cell grid for the window
// [istart,iend]x[jstart,jend] of the parent at the given refinement
// ratio. Child vertices that coincide with parent vertices are copied
// exactly; the rest are placed by two-stage great-circle
// interpolation, first along j between two parent rows, then along i
// between the two resulting points. The same routine serves windowed
// nests, telescoping nests (parent arrays belonging to another nest)
// and global uniform refinement (full-extent window against the coarse
// snapshot, with saturating lookups).
func (g *Generator) alignNest(parentNi, parentNj int, parentX, parentY []float64,
	halo, refine, istart, iend, jstart, jend int, xc, yc []float64, globalRefine bool) error {

	if jstart-halo < 1 || istart-halo < 1 || jend+halo > parentNj || iend+halo > parentNi {
		return fmt.Errorf("cubesphere: nested grid window [%d:%d,%d:%d] with halo %d lies outside its parent (%dx%d cells)",
			istart, iend, jstart, jend, halo, parentNi, parentNj)
	}

	ni := (iend - istart + 1) * refine
	nj := (jend - jstart + 1) * refine
	npi := ni + 1
	parentNpi := parentNi + 1
	twoPi := 2 * math.Pi

	g.log.Debugf("aligning nest: parent %dx%d window [%d:%d,%d:%d] refine %d",
		parentNi, parentNj, istart, iend, jstart, jend, refine)

	for j := 0; j <= nj; j++ {
		jc := jstart - 1 + j/refine
		jmod := j % refine
		jfrac := float64(jmod) / float64(refine)

		for i := 0; i <= ni; i++ {
			ic := istart - 1 + i/refine
			imod := i % refine

			// The ic+1 column is fetched only when a horizontal
			// interpolation actually needs it. Vertices with imod==0
			// sit on a parent column, and at a window touching the
			// parent's last cell the eager fetch would read past the
			// parent extent.
			var q1, q2 [2]float64
			if jmod == 0 {
				idx, err := parentIndex(jc, parentNpi, ic, parentNi, parentNj, globalRefine)
				if err != nil {
					return err
				}
				q1 = [2]float64{parentX[idx], parentY[idx]}
				if imod != 0 {
					idxPi, err := parentIndex(jc, parentNpi, ic+1, parentNi, parentNj, globalRefine)
					if err != nil {
						return err
					}
					q2 = [2]float64{parentX[idxPi], parentY[idxPi]}
				}
			} else {
				idx, err := parentIndex(jc, parentNpi, ic, parentNi, parentNj, globalRefine)
				if err != nil {
					return err
				}
				idxPj, err := parentIndex(jc+1, parentNpi, ic, parentNi, parentNj, globalRefine)
				if err != nil {
					return err
				}
				q1, err = g.slerp(jfrac,
					[2]float64{parentX[idx], parentY[idx]},
					[2]float64{parentX[idxPj], parentY[idxPj]})
				if err != nil {
					return err
				}
				if imod != 0 {
					idxPi, err := parentIndex(jc, parentNpi, ic+1, parentNi, parentNj, globalRefine)
					if err != nil {
						return err
					}
					idxPjPi, err := parentIndex(jc+1, parentNpi, ic+1, parentNi, parentNj, globalRefine)
					if err != nil {
						return err
					}
					q2, err = g.slerp(jfrac,
						[2]float64{parentX[idxPi], parentY[idxPi]},
						[2]float64{parentX[idxPjPi], parentY[idxPjPi]})
					if err != nil {
						return err
					}
				}
			}

			p := q1
			if imod != 0 {
				var err error
				p, err = g.slerp(float64(imod)/float64(refine), q1, q2)
				if err != nil {
					return err
				}
			}

			if p[0] > twoPi {
				p[0] -= twoPi
			}
			if p[0] < 0 {
				p[0] += twoPi
			}
			xc[j*npi+i] = p[0]
			yc[j*npi+i] = p[1]
		}
	}
	return nil
}
