// Package geom provides the 2D primitives behind snapping, hit testing and
// corner cleanup: points, segments, infinite-line intersection, polygon
// tests and angle arithmetic. Everything is a pure function over plain
// value types; world coordinates are float64 model units.
package geom

import "math"

// Point is a location or displacement in world coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for constructing a Point.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

func (p Point) Mul(s float64) Point { return Point{p.X * s, p.Y * s} }

// Len returns the length of p treated as a vector from the origin.
func (p Point) Len() float64 { return math.Hypot(p.X, p.Y) }

// Angle returns the direction of p treated as a vector, in radians.
func (p Point) Angle() float64 { return math.Atan2(p.Y, p.X) }

// Dist returns the Euclidean distance between p and q.
func Dist(p, q Point) float64 { return math.Hypot(p.X-q.X, p.Y-q.Y) }

// Lerp interpolates linearly from a to b; t=0 yields a, t=1 yields b.
func Lerp(a, b Point, t float64) Point {
	return Point{a.X + (b.X-a.X)*t, a.Y + (b.Y-a.Y)*t}
}

// PointAtAngle returns the point dist units from origin in the direction
// angle (radians).
func PointAtAngle(origin Point, angle, dist float64) Point {
	s, c := math.Sincos(angle)
	return Point{origin.X + dist*c, origin.Y + dist*s}
}

// SnapToGrid rounds v to the nearest multiple of size. A size of zero or
// less disables snapping and returns v unchanged.
func SnapToGrid(v, size float64) float64 {
	if size <= 0 {
		return v
	}
	return math.Round(v/size) * size
}

// SnapPointToGrid snaps both coordinates independently.
func SnapPointToGrid(p Point, size float64) Point {
	return Point{SnapToGrid(p.X, size), SnapToGrid(p.Y, size)}
}

// Rect is an axis-aligned bounding rectangle.
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

func (r Rect) Width() float64 { return r.MaxX - r.MinX }

func (r Rect) Height() float64 { return r.MaxY - r.MinY }

func (r Rect) Center() Point {
	return Point{(r.MinX + r.MaxX) / 2, (r.MinY + r.MaxY) / 2}
}

func (r Rect) Contains(p Point) bool {
	return p.X >= r.MinX && p.X <= r.MaxX && p.Y >= r.MinY && p.Y <= r.MaxY
}

// Expand grows the rectangle by d on every side.
func (r Rect) Expand(d float64) Rect {
	return Rect{r.MinX - d, r.MinY - d, r.MaxX + d, r.MaxY + d}
}

// Union returns the smallest rectangle covering both r and s.
func (r Rect) Union(s Rect) Rect {
	return Rect{
		math.Min(r.MinX, s.MinX),
		math.Min(r.MinY, s.MinY),
		math.Max(r.MaxX, s.MaxX),
		math.Max(r.MaxY, s.MaxY),
	}
}

// RectAround returns the bounding rectangle of the given points. An empty
// slice yields the zero Rect.
func RectAround(points ...Point) Rect {
	if len(points) == 0 {
		return Rect{}
	}
	r := Rect{points[0].X, points[0].Y, points[0].X, points[0].Y}
	for _, p := range points[1:] {
		r.MinX = math.Min(r.MinX, p.X)
		r.MinY = math.Min(r.MinY, p.Y)
		r.MaxX = math.Max(r.MaxX, p.X)
		r.MaxY = math.Max(r.MaxY, p.Y)
	}
	return r
}
