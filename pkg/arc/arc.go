// Package arc bends planar coordinates onto a vertical cylinder.
//
// A flat panel is assumed to touch the cylinder along its local vertical
// line x = 0, with the cylinder's axis sitting radius units in front of it
// (at local z = +radius). Horizontal distance along the panel is treated as
// arc length, so a panel of width 2πr wraps the cylinder exactly once.
package arc

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Axis is the shared vertical axis every panel is bent and rotated around.
var Axis = mgl64.Vec3{0, 1, 0}

// Center returns the point on the cylinder axis at height 0, in panel-local
// coordinates.
func Center(radius float64) mgl64.Vec3 {
	return mgl64.Vec3{0, 0, radius}
}

// Angle converts a local horizontal coordinate into the angle it subtends
// on a circle of the given radius.
func Angle(x, radius float64) float64 {
	center := Center(radius)
	return (x - center.X()) / center.Z()
}

// Project maps a panel-local vertex onto the cylinder of the given radius.
//
// The vertex height is passed through untouched. The horizontal coordinate
// becomes an angle θ = x/radius; the point (0, y, -radius) is rotated by θ
// about the vertical axis and moved back by the axis offset. The result lies
// exactly radius away from the axis.
func Project(v mgl64.Vec3, radius float64) mgl64.Vec3 {
	center := Center(radius)
	theta := Angle(v.X(), radius)

	p := mgl64.Vec3{0, v.Y(), -center.Z()}
	return mgl64.Rotate3DY(theta).Mul3x1(p).Add(center)
}

// ProjectAll returns a new slice holding Project applied to every vertex.
// The input slice is not modified.
func ProjectAll(vertices []mgl64.Vec3, radius float64) []mgl64.Vec3 {
	out := make([]mgl64.Vec3, len(vertices))
	for i, v := range vertices {
		out[i] = Project(v, radius)
	}
	return out
}

// Centered re-expresses a projected point relative to the cylinder axis,
// so the circle is centred on the origin instead of on (0, 0, radius).
func Centered(p mgl64.Vec3, radius float64) mgl64.Vec3 {
	return p.Sub(Center(radius))
}

// Normal returns the unit vector pointing from a projected point towards
// the cylinder axis. Panels are viewed from inside, so this is their front
// face normal.
func Normal(p mgl64.Vec3, radius float64) mgl64.Vec3 {
	center := Center(radius)
	n := mgl64.Vec3{center.X() - p.X(), 0, center.Z() - p.Z()}
	if n.Len() == 0 {
		return mgl64.Vec3{0, 0, 1}
	}
	return n.Normalize()
}

// Azimuth is the angle of a centred point around the vertical axis, measured
// so that Centered(Project(v, r), r) has azimuth Angle(v.X(), r).
func Azimuth(p mgl64.Vec3) float64 {
	return math.Atan2(-p.X(), -p.Z())
}

// AxisDistance is the horizontal distance between a projected point and the
// cylinder axis.
func AxisDistance(p mgl64.Vec3, radius float64) float64 {
	center := Center(radius)
	return math.Hypot(p.X()-center.X(), p.Z()-center.Z())
}

// Span is the angle each of n equal panels covers on the full circle.
func Span(n int) float64 {
	if n <= 0 {
		return 0
	}
	return 2 * math.Pi / float64(n)
}

// PanelWidth is the arc length of one of n equal panels on a circle of the
// given radius.
func PanelWidth(radius float64, n int) float64 {
	if n <= 0 {
		return 0
	}
	return 2 * math.Pi * radius / float64(n)
}
