package geom

import "math"

// RelativeSnapTolerance is the capture half-width, in radians, within which
// a relative angle candidate wins over the absolute increment snap.
const RelativeSnapTolerance = 15 * math.Pi / 180

// Degrees converts degrees to radians.
func Degrees(deg float64) float64 { return deg * math.Pi / 180 }

// NormalizeAngle wraps an angle into (-pi, pi].
func NormalizeAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

// SnapAngle rounds theta to the nearest multiple of increment. Both are in
// radians; increment <= 0 returns theta unchanged.
func SnapAngle(theta, increment float64) float64 {
	if increment <= 0 {
		return theta
	}
	return math.Round(theta/increment) * increment
}

// SnapAngleRelative rounds theta against the absolute increment and
// additionally against base plus 0, 90, 180 and 270 degrees; a relative
// candidate inside RelativeSnapTolerance wins when it sits closer to theta
// than the absolute snap does.
func SnapAngleRelative(theta, base, increment float64) float64 {
	best := SnapAngle(theta, increment)
	bestDiff := math.Abs(NormalizeAngle(theta - best))
	for _, off := range [...]float64{0, math.Pi / 2, math.Pi, 3 * math.Pi / 2} {
		cand := NormalizeAngle(base + off)
		diff := math.Abs(NormalizeAngle(theta - cand))
		if diff <= RelativeSnapTolerance && diff < bestDiff {
			best = cand
			bestDiff = diff
		}
	}
	return best
}

// RotateAround rotates p about center by theta radians counterclockwise.
func RotateAround(p, center Point, theta float64) Point {
	s, c := math.Sincos(theta)
	dx := p.X - center.X
	dy := p.Y - center.Y
	return Point{center.X + dx*c - dy*s, center.Y + dx*s + dy*c}
}
