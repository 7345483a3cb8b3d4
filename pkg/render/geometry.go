package render

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Rotate returns the point reached by moving length units from p in
// direction angle (radians, y axis pointing down).
func Rotate(p r2.Vec, length, angle float64) r2.Vec {
	return r2.Vec{
		X: p.X + length*math.Cos(angle),
		Y: p.Y + length*math.Sin(angle),
	}
}

// EdgeAngle returns the direction pointing from dst back towards src.
//
// The angle comes from atan of the slope, which only covers two quadrants,
// so pi is added whenever src is left of dst (or vertically aligned).
// Coincident points have no direction and report ok == false.
func EdgeAngle(src, dst r2.Vec) (theta float64, ok bool) {
	dx := dst.X - src.X
	dy := dst.Y - src.Y
	if dx == 0 && dy == 0 {
		return 0, false
	}
	theta = math.Atan(dy / dx)
	if src.X <= dst.X {
		theta += math.Pi
	}
	return theta, true
}

// TrimEdge shortens the segment src->dst by radius at both ends so that it
// starts and stops on the node circles.
func TrimEdge(src, dst r2.Vec, radius float64) (from, to r2.Vec, theta float64, ok bool) {
	theta, ok = EdgeAngle(src, dst)
	if !ok {
		return src, dst, 0, false
	}
	return Rotate(src, -radius, theta), Rotate(dst, radius, theta), theta, true
}

// ArrowHead returns the wedge tip, top, bottom for an arrow ending at tip.
// The wings open back along theta by +/- alpha.
func ArrowHead(tip r2.Vec, length, alpha, theta float64) [3]r2.Vec {
	return [3]r2.Vec{
		tip,
		Rotate(tip, length, theta+alpha),
		Rotate(tip, length, theta-alpha),
	}
}
