package cubesphere

import "math"

const (
	epsln4  = 1.e-4
	epsln5  = 1.e-5
	epsln7  = 1.e-7
	epsln10 = 1.e-10
)

// edgeRule names one directed edge correspondence of the cube: the
// destination edge is overwritten with the authoritative values of the
// source edge. The index functions map the running edge coordinate
// k in [0, ni] to (tile, i, j) vertex positions.
type edgeRule struct {
	name string
	dst  func(ni, k int) (tile, i, j int)
	src  func(ni, k int) (tile, i, j int)
}

// cubeEdges lists the cube's 12 shared edges exactly once each, in the
// order the copies must run: later rules read edges that earlier rules
// have already finalized. Tiles are named 1..6 in the rule labels and
// indexed 0..5 in the functions.
var cubeEdges = []edgeRule{
	{"1E->2W",
		func(ni, k int) (int, int, int) { return 1, 0, k },
		func(ni, k int) (int, int, int) { return 0, ni, k }},
	{"1N->3W",
		func(ni, k int) (int, int, int) { return 2, 0, k },
		func(ni, k int) (int, int, int) { return 0, ni - k, ni }},
	{"1W->5N",
		func(ni, k int) (int, int, int) { return 4, k, ni },
		func(ni, k int) (int, int, int) { return 0, 0, ni - k }},
	{"1S->6N",
		func(ni, k int) (int, int, int) { return 5, k, ni },
		func(ni, k int) (int, int, int) { return 0, k, 0 }},
	{"2N->3S",
		func(ni, k int) (int, int, int) { return 2, k, 0 },
		func(ni, k int) (int, int, int) { return 1, k, ni }},
	{"2E->4S",
		func(ni, k int) (int, int, int) { return 3, k, 0 },
		func(ni, k int) (int, int, int) { return 1, ni, ni - k }},
	{"2S->6E",
		func(ni, k int) (int, int, int) { return 5, ni, k },
		func(ni, k int) (int, int, int) { return 1, ni - k, 0 }},
	{"3E->4W",
		func(ni, k int) (int, int, int) { return 3, 0, k },
		func(ni, k int) (int, int, int) { return 2, ni, k }},
	{"3N->5W",
		func(ni, k int) (int, int, int) { return 4, 0, k },
		func(ni, k int) (int, int, int) { return 2, ni - k, ni }},
	{"4N->5S",
		func(ni, k int) (int, int, int) { return 4, k, 0 },
		func(ni, k int) (int, int, int) { return 3, k, ni }},
	{"4E->6S",
		func(ni, k int) (int, int, int) { return 5, k, 0 },
		func(ni, k int) (int, int, int) { return 3, ni, ni - k }},
	{"5E->6W",
		func(ni, k int) (int, int, int) { return 5, 0, k },
		func(ni, k int) (int, int, int) { return 4, ni, k }},
}

// normalizeBaseFaces optionally applies the fixed -10 degree seam
// shift (moving the default corner off the east coast of Asia), wraps
// all longitudes into [0, 2*pi), and snaps coordinates within 1e-10 of
// zero to exactly zero so later trigonometry stays well conditioned.
func normalizeBaseFaces(ni int, xc, yc []float64, shift bool) {
	nip := ni + 1
	for n := 0; n < BaseTiles*nip*nip; n++ {
		if shift {
			xc[n] -= math.Pi / 18
		}
		if xc[n] < 0 {
			xc[n] += 2 * math.Pi
		}
		if math.Abs(xc[n]) < epsln10 {
			xc[n] = 0
		}
		if math.Abs(yc[n]) < epsln10 {
			yc[n] = 0
		}
	}
}

// stitchEdges overwrites one side of every shared edge with a copy of
// the other side, making the shared-edge coordinates of adjacent tiles
// bit-identical. The base faces must occupy layout tiles 0..5.
func stitchEdges(ni int, l *Layout, xc, yc []float64) {
	for _, e := range cubeEdges {
		for k := 0; k <= ni; k++ {
			dt, di, dj := e.dst(ni, k)
			st, si, sj := e.src(ni, k)
			d := l.Vert(dt, di, dj)
			s := l.Vert(st, si, sj)
			xc[d] = xc[s]
			yc[d] = yc[s]
		}
	}
}
