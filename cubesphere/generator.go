package cubesphere

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"

	"github.com/gridtools/cubedsphere/sphere"
)

// Spec is the user-facing description of one grid generation run. All
// six base faces must request the same even supergrid size.
type Spec struct {
	// SuperGridSizes holds the supergrid dimension of each face; the
	// cell grid is half that.
	SuperGridSizes [BaseTiles]int

	Projection Projection
	Stretch    Stretch

	// ShiftFac enables the fixed 10 degree westward seam shift on
	// untransformed grids when greater than 1e-4. The conventional
	// value is 18.
	ShiftFac float64

	Nests []NestSpec

	// Halo is the clearance in parent cells a windowed nest must keep
	// from its parent's edges.
	Halo int

	// OutputLengthAngle controls whether edge lengths and rotation
	// angles are computed; cell areas always are.
	OutputLengthAngle bool

	// LegacyGlobalRefine enforces the contract of the historical
	// global-refinement entry point, which accepted exactly one
	// refinement spec. The geometry pipeline is shared either way.
	LegacyGlobalRefine bool
}

// Grid is the generated geometry. X and Y are supergrid vertex
// longitudes and latitudes in degrees; DX and DY edge lengths in
// meters; Area cell areas in square meters; AngleDX and AngleDY local
// rotation angles in degrees. DX, DY and the angles are nil unless
// requested. All fields are flat multi-tile buffers addressed through
// the Layout.
type Grid struct {
	Layout  *Layout
	X, Y    []float64
	DX, DY  []float64
	Area    []float64
	AngleDX []float64
	AngleDY []float64
}

// Generator produces cubed-sphere grids for one validated Spec.
type Generator struct {
	spec Spec
	log  *logrus.Entry

	ni           int
	nests        []nest
	globalRefine bool
}

// Option adjusts a Generator at construction.
type Option func(*Generator)

// WithLogger routes the generator's progress and diagnostics through
// the given entry.
func WithLogger(log *logrus.Entry) Option {
	return func(g *Generator) { g.log = log }
}

// New validates the spec and returns a Generator for it.
func New(spec Spec, opts ...Option) (*Generator, error) {
	g := &Generator{
		spec: spec,
		log:  logrus.NewEntry(logrus.StandardLogger()),
	}
	for _, o := range opts {
		o(g)
	}

	for n, sz := range spec.SuperGridSizes {
		if sz <= 0 {
			return nil, fmt.Errorf("cubesphere: face %d has no grid size", n+1)
		}
		if sz%2 != 0 {
			return nil, fmt.Errorf("cubesphere: supergrid size %d of face %d is not divisible by 2", sz, n+1)
		}
		if sz != spec.SuperGridSizes[0] {
			return nil, fmt.Errorf("cubesphere: all six faces must share one size, face %d has %d, face 1 has %d",
				n+1, sz, spec.SuperGridSizes[0])
		}
	}
	g.ni = spec.SuperGridSizes[0] / 2

	if spec.Projection != Equidistant {
		return nil, fmt.Errorf("cubesphere: %v projection is not implemented", spec.Projection)
	}
	if spec.Stretch.Active() && spec.Stretch.Factor <= 0 {
		return nil, fmt.Errorf("cubesphere: stretch factor %g must be positive", spec.Stretch.Factor)
	}

	if len(spec.Nests) > MaxNests {
		return nil, fmt.Errorf("cubesphere: %d nests exceed the limit of %d", len(spec.Nests), MaxNests)
	}
	if len(spec.Nests) > 0 && spec.Nests[0].ParentTile == 0 {
		if err := g.validateGlobalRefine(); err != nil {
			return nil, err
		}
	} else if err := g.validateNests(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Generator) validateGlobalRefine() error {
	g.globalRefine = true
	if g.spec.LegacyGlobalRefine && len(g.spec.Nests) != 1 {
		return fmt.Errorf("cubesphere: legacy global refinement takes exactly one refinement spec, got %d", len(g.spec.Nests))
	}
	r := g.spec.Nests[0].RefineRatio
	if r < 2 {
		return fmt.Errorf("cubesphere: global refinement ratio must be at least 2, got %d", r)
	}
	for _, ns := range g.spec.Nests {
		if ns.ParentTile != 0 {
			return fmt.Errorf("cubesphere: cannot mix global refinement with a windowed nest on tile %d", ns.ParentTile)
		}
		if ns.RefineRatio != r {
			return fmt.Errorf("cubesphere: global refinement requires one ratio, got %d and %d", r, ns.RefineRatio)
		}
	}
	if g.ni%r != 0 {
		return fmt.Errorf("cubesphere: cell grid size %d is not divisible by the refinement ratio %d", g.ni, r)
	}
	return nil
}

func (g *Generator) validateNests() error {
	for nn, ns := range g.spec.Nests {
		if ns.ParentTile < 1 || ns.ParentTile > BaseTiles+nn {
			return fmt.Errorf("cubesphere: nest %d names parent tile %d, want 1..%d or an earlier nest",
				nn+1, ns.ParentTile, BaseTiles+nn)
		}
		if ns.RefineRatio < 1 {
			return fmt.Errorf("cubesphere: nest %d refinement ratio must be at least 1, got %d", nn+1, ns.RefineRatio)
		}
		if (ns.IStart+1)%2 != 0 {
			return fmt.Errorf("cubesphere: nest %d istart+1 is not divisible by 2", nn+1)
		}
		if ns.IEnd%2 != 0 {
			return fmt.Errorf("cubesphere: nest %d iend is not divisible by 2", nn+1)
		}
		if (ns.JStart+1)%2 != 0 {
			return fmt.Errorf("cubesphere: nest %d jstart+1 is not divisible by 2", nn+1)
		}
		if ns.JEnd%2 != 0 {
			return fmt.Errorf("cubesphere: nest %d jend is not divisible by 2", nn+1)
		}

		rn := nest{
			spec:   ns,
			istart: (ns.IStart + 1) / 2,
			iend:   ns.IEnd / 2,
			jstart: (ns.JStart + 1) / 2,
			jend:   ns.JEnd / 2,
		}
		if rn.iend < rn.istart || rn.jend < rn.jstart {
			return fmt.Errorf("cubesphere: nest %d window [%d:%d,%d:%d] is empty",
				nn+1, ns.IStart, ns.IEnd, ns.JStart, ns.JEnd)
		}
		rn.ni = (rn.iend - rn.istart + 1) * ns.RefineRatio
		rn.nj = (rn.jend - rn.jstart + 1) * ns.RefineRatio
		if ns.ParentTile <= BaseTiles {
			rn.parentNi, rn.parentNj = g.ni, g.ni
		} else {
			p := g.nests[ns.ParentTile-BaseTiles-1]
			rn.parentNi, rn.parentNj = p.ni, p.nj
		}
		g.nests = append(g.nests, rn)
	}
	return nil
}

// layout builds the offset tables for the base faces plus any windowed
// nest tiles.
func (g *Generator) layout() *Layout {
	shapes := make([]TileShape, 0, BaseTiles+len(g.nests))
	for n := 0; n < BaseTiles; n++ {
		shapes = append(shapes, TileShape{Ni: g.ni, Nj: g.ni})
	}
	for _, rn := range g.nests {
		shapes = append(shapes, TileShape{Ni: rn.ni, Nj: rn.nj})
	}
	return NewLayout(shapes)
}

// baseFaces runs the shared face pipeline at cell size ni: gnomonic
// projection, symmetrization, replication to all six tiles, longitude
// normalization with the optional seam shift, edge stitching, the
// optional target-latitude advisory and the optional stretch
// transform. Returns the 6*(ni+1)^2 vertex longitudes and latitudes in
// radians.
func (g *Generator) baseFaces(ni int) (xc, yc []float64) {
	nip := ni + 1
	st := g.spec.Stretch

	lon, lat := projectFace(ni)
	symmetrizeFace(ni, lon, lat)

	xc = make([]float64, BaseTiles*nip*nip)
	yc = make([]float64, BaseTiles*nip*nip)
	for p := 0; p < nip*nip; p++ {
		xc[p] = lon[p] - math.Pi
		yc[p] = lat[p]
	}
	mirrorCube(ni, xc, yc)

	shift := !st.Active() && g.spec.ShiftFac > epsln4
	normalizeBaseFaces(ni, xc, yc, shift)

	base := NewLayout([]TileShape{
		{ni, ni}, {ni, ni}, {ni, ni}, {ni, ni}, {ni, ni}, {ni, ni},
	})
	stitchEdges(ni, base, xc, yc)

	// The target-latitude advisory is diagnostic only and is
	// suppressed whenever any nest is configured, global refinement
	// included.
	if st.Mode == Schmidt && len(g.spec.Nests) == 0 {
		suggestTargetLats(g.log, st.Factor,
			st.TargetLon*sphere.Deg2Rad, st.TargetLat*sphere.Deg2Rad, ni, xc, yc)
	}

	if st.Active() {
		for n := 0; n < BaseTiles; n++ {
			face := n * nip * nip
			lonF := xc[face : face+nip*nip]
			latF := yc[face : face+nip*nip]
			switch st.Mode {
			case Schmidt:
				g.log.Debugf("applying Schmidt transform to tile %d", n+1)
				schmidtTransform(st.Factor, st.TargetLon*sphere.Deg2Rad, st.TargetLat*sphere.Deg2Rad, lonF, latF)
			case CubeTransform:
				g.log.Debugf("applying cube transform to tile %d", n+1)
				cubeTransform(st.Factor, st.TargetLon*sphere.Deg2Rad, st.TargetLat*sphere.Deg2Rad, lonF, latF)
			}
		}
	}
	return xc, yc
}

// Generate produces the grid.
func (g *Generator) Generate() (*Grid, error) {
	l := g.layout()
	xc := make([]float64, l.VertCount())
	yc := make([]float64, l.VertCount())

	if g.globalRefine {
		r := g.spec.Nests[0].RefineRatio
		ci := g.ni / r
		g.log.Infof("global refinement: coarse cell grid %d, ratio %d", ci, r)
		cx, cy := g.baseFaces(ci)
		cip := ci + 1
		for n := 0; n < BaseTiles; n++ {
			face := n * cip * cip
			if err := g.alignNest(ci, ci, cx[face:face+cip*cip], cy[face:face+cip*cip],
				0, r, 1, ci, 1, ci,
				l.VertSlice(xc, n), l.VertSlice(yc, n), true); err != nil {
				return nil, err
			}
		}
	} else {
		bx, by := g.baseFaces(g.ni)
		copy(xc, bx)
		copy(yc, by)
		for nn, rn := range g.nests {
			g.log.Infof("aligning nest %d on parent tile %d", nn+1, rn.spec.ParentTile)
			parent := rn.spec.ParentTile - 1
			if err := g.alignNest(rn.parentNi, rn.parentNj,
				l.VertSlice(xc, parent), l.VertSlice(yc, parent),
				g.spec.Halo, rn.spec.RefineRatio,
				rn.istart, rn.iend, rn.jstart, rn.jend,
				l.VertSlice(xc, BaseTiles+nn), l.VertSlice(yc, BaseTiles+nn), false); err != nil {
				return nil, err
			}
		}
	}

	grid := &Grid{
		Layout: l,
		X:      make([]float64, l.SuperCount()),
		Y:      make([]float64, l.SuperCount()),
		Area:   make([]float64, l.AreaCount()),
	}

	var grp errgroup.Group
	for n := 0; n < l.NumTiles(); n++ {
		s := l.Shapes[n]
		base := l.SuperBase(n)
		end := base + (s.Nx()+1)*(s.Ny()+1)
		lonT, latT := l.VertSlice(xc, n), l.VertSlice(yc, n)
		xs, ys := grid.X[base:end], grid.Y[base:end]
		grp.Go(func() error {
			assembleTile(s.Ni, s.Nj, lonT, latT, xs, ys)
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, err
	}

	if g.spec.OutputLengthAngle {
		grid.DX = make([]float64, l.LengthCount())
		grid.DY = make([]float64, l.LengthCount())
		calcEdgeLengths(l, g.spec.Stretch.Stretched(), grid.X, grid.Y, grid.DX, grid.DY)
	}

	if err := calcAreas(l, g.spec.Stretch.Active(), grid.X, grid.Y, grid.Area); err != nil {
		return nil, err
	}

	if g.spec.OutputLengthAngle {
		grid.AngleDX = make([]float64, l.SuperCount())
		grid.AngleDY = make([]float64, l.SuperCount())
		calcRotationAngles(l, grid.X, grid.Y, grid.AngleDX, grid.AngleDY)
	}

	floats.Scale(sphere.Rad2Deg, grid.X)
	floats.Scale(sphere.Rad2Deg, grid.Y)
	return grid, nil
}
