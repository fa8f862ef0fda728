// Package sphere provides the spherical geometry primitives used by the
// cubed-sphere grid generator: conversion between (longitude, latitude)
// pairs and unit Cartesian vectors, axis rotations, great-circle
// distance and interpolation, mirror reflection, and spherical-excess
// quadrilateral areas. Angles are radians throughout; longitudes are
// normalized into [0, 2*pi) on conversion back from Cartesian space.
package sphere

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
)

const (
	// Radius is the sphere radius in meters used for all metric output.
	Radius = 6371000.

	Deg2Rad = math.Pi / 180.
	Rad2Deg = 180. / math.Pi

	epsln5  = 1.e-5
	epsln8  = 1.e-8
	epsln10 = 1.e-10
)

// Cartesian converts a (lon, lat) pair to a unit vector with the north
// pole at +Z and lon 0 at +X.
func Cartesian(lon, lat float64) r3.Vector {
	return r3.Vector{
		X: math.Cos(lat) * math.Cos(lon),
		Y: math.Cos(lat) * math.Sin(lon),
		Z: math.Sin(lat),
	}
}

// LonLat converts a Cartesian vector back to (lon, lat) with longitude
// in [0, 2*pi). Points on the polar axis get longitude 0.
func LonLat(v r3.Vector) (lon, lat float64) {
	v = v.Normalize()
	if math.Abs(v.X)+math.Abs(v.Y) < epsln10 {
		lon = 0
	} else {
		lon = math.Atan2(v.Y, v.X)
	}
	lat = math.Asin(v.Z)
	if lon < 0 {
		lon += 2 * math.Pi
	}
	return
}

// Axis selects a coordinate axis for Rotate.
type Axis int

const (
	XAxis Axis = iota + 1
	YAxis
	ZAxis
)

// Rotate rotates v by angle about the given coordinate axis. An
// unrecognized axis is a programming error, not a user error.
func Rotate(v r3.Vector, axis Axis, angle float64) r3.Vector {
	c, s := math.Cos(angle), math.Sin(angle)
	switch axis {
	case XAxis:
		return r3.Vector{X: v.X, Y: c*v.Y + s*v.Z, Z: -s*v.Y + c*v.Z}
	case YAxis:
		return r3.Vector{X: c*v.X - s*v.Z, Y: v.Y, Z: s*v.X + c*v.Z}
	case ZAxis:
		return r3.Vector{X: c*v.X + s*v.Y, Y: -s*v.X + c*v.Y, Z: v.Z}
	}
	panic(fmt.Sprintf("sphere: invalid rotation axis %d: must be XAxis, YAxis or ZAxis", axis))
}

// RotateLonLat rotates a (lon, lat) point about a coordinate axis using
// the pole-down Cartesian convention of the cube replication step. The
// returned longitude is in [-pi, pi], matching the centered frame that
// step works in; points landing on the polar axis get longitude 0.
func RotateLonLat(lon, lat float64, axis Axis, angle float64) (lon2, lat2 float64) {
	v := r3.Vector{
		X: math.Cos(lon) * math.Cos(lat),
		Y: math.Sin(lon) * math.Cos(lat),
		Z: -math.Sin(lat),
	}
	v = Rotate(v, axis, angle)
	if math.Abs(v.X)+math.Abs(v.Y) < epsln10 {
		lon2 = 0
	} else {
		lon2 = math.Atan2(v.Y, v.X)
	}
	lat2 = math.Acos(v.Z/v.Norm()) - math.Pi/2
	return
}

// GreatCircleDistance returns the distance in meters between two
// (lon, lat) points along the great circle connecting them.
func GreatCircleDistance(lon1, lat1, lon2, lat2 float64) float64 {
	sinLat := math.Sin(0.5 * (lat1 - lat2))
	sinLon := math.Sin(0.5 * (lon1 - lon2))
	beta := 2 * math.Asin(math.Sqrt(sinLat*sinLat+math.Cos(lat1)*math.Cos(lat2)*sinLon*sinLon))
	return Radius * beta
}

// Coincident reports whether two points are numerically colocated.
// Great-circle interpolation between such points is degenerate; callers
// that care should fall back to either endpoint (Slerp does so).
func Coincident(lon1, lat1, lon2, lat2 float64) bool {
	return math.Abs(lon1-lon2) < epsln8 && math.Abs(lat1-lat2) < epsln8
}

// Slerp interpolates along the great circle from p1 toward p2 at
// fraction beta in [0, 1], using the Shoemake/Davis spherical linear
// interpolation weights sin(beta*omega)/sin(omega). Coincident inputs
// return p1 verbatim. The interpolation is undefined when the angular
// separation omega degenerates, which returns an error.
func Slerp(beta, lon1, lat1, lon2, lat2 float64) (lon, lat float64, err error) {
	if Coincident(lon1, lat1, lon2, lat2) {
		return lon1, lat1, nil
	}

	e1 := Cartesian(lon1, lat1).Normalize()
	e2 := Cartesian(lon2, lat2).Normalize()

	omega := math.Acos(e1.Dot(e2))
	if math.Abs(omega) < epsln5 {
		return 0, 0, fmt.Errorf("sphere: great-circle interpolation not well defined between (%g,%g) and (%g,%g): omega=%g",
			lon1, lat1, lon2, lat2, omega)
	}
	alpha := 1. - beta

	eb := e2.Mul(math.Sin(beta * omega)).Add(e1.Mul(math.Sin(alpha * omega))).Mul(1 / math.Sin(omega))
	lon, lat = LonLat(eb)
	return
}

// Mirror reflects (lon0, lat0) across the plane through the sphere
// center containing the great circle defined by (lon1, lat1) and
// (lon2, lat2).
func Mirror(lon1, lat1, lon2, lat2, lon0, lat0 float64) (lon, lat float64) {
	p0 := Cartesian(lon0, lat0)
	nb := Cartesian(lon1, lat1).Cross(Cartesian(lon2, lat2)).Normalize()
	pp := p0.Sub(nb.Mul(2 * p0.Dot(nb)))
	return LonLat(pp)
}
