package geom

import "math"

// degenerateLenSq guards projection math against zero-length segments.
const degenerateLenSq = 1e-12

// ClosestPointOnSegment projects p onto the segment ab, clamping the line
// parameter to [0,1]. It returns the closest point together with the
// clamped parameter. A degenerate segment returns a with parameter 0.
func ClosestPointOnSegment(p, a, b Point) (Point, float64) {
	dx := b.X - a.X
	dy := b.Y - a.Y
	lenSq := dx*dx + dy*dy
	if lenSq < degenerateLenSq {
		return a, 0
	}
	t := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / lenSq
	t = math.Max(0, math.Min(1, t))
	return Point{a.X + t*dx, a.Y + t*dy}, t
}

// DistToSegment returns the distance from p to the nearest point of the
// segment ab.
func DistToSegment(p, a, b Point) float64 {
	q, _ := ClosestPointOnSegment(p, a, b)
	return Dist(p, q)
}

// Midpoint returns the point halfway between a and b.
func Midpoint(a, b Point) Point {
	return Point{(a.X + b.X) / 2, (a.Y + b.Y) / 2}
}

// PerpendicularFoot projects p onto the infinite line through ab without
// clamping. The returned parameter is 0 at a and 1 at b; ok is false for a
// degenerate segment.
func PerpendicularFoot(p, a, b Point) (foot Point, t float64, ok bool) {
	dx := b.X - a.X
	dy := b.Y - a.Y
	lenSq := dx*dx + dy*dy
	if lenSq < degenerateLenSq {
		return Point{}, 0, false
	}
	t = ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / lenSq
	return Point{a.X + t*dx, a.Y + t*dy}, t, true
}
