package geom

import "math"

// PointInPolygon reports whether p lies inside the polygon using the
// even-odd ray casting rule. Polygons with fewer than three vertices
// contain nothing.
func PointInPolygon(p Point, poly []Point) bool {
	if len(poly) < 3 {
		return false
	}
	inside := false
	j := len(poly) - 1
	for i := 0; i < len(poly); i++ {
		pi, pj := poly[i], poly[j]
		if (pi.Y > p.Y) != (pj.Y > p.Y) &&
			p.X < (pj.X-pi.X)*(p.Y-pi.Y)/(pj.Y-pi.Y)+pi.X {
			inside = !inside
		}
		j = i
	}
	return inside
}

// PolygonArea returns the absolute area of the polygon via the shoelace
// formula.
func PolygonArea(poly []Point) float64 {
	if len(poly) < 3 {
		return 0
	}
	sum := 0.0
	j := len(poly) - 1
	for i := range poly {
		sum += (poly[j].X + poly[i].X) * (poly[j].Y - poly[i].Y)
		j = i
	}
	return math.Abs(sum) / 2
}

// PolygonCentroid returns the arithmetic mean of the vertices, not the
// area-weighted centroid.
func PolygonCentroid(poly []Point) Point {
	if len(poly) == 0 {
		return Point{}
	}
	var sx, sy float64
	for _, p := range poly {
		sx += p.X
		sy += p.Y
	}
	n := float64(len(poly))
	return Point{sx / n, sy / n}
}

// PolygonBounds returns the axis-aligned bounding rectangle of the polygon.
func PolygonBounds(poly []Point) Rect {
	return RectAround(poly...)
}

// DistToPolygonEdge returns the distance from p to the nearest boundary
// segment of the closed polygon.
func DistToPolygonEdge(p Point, poly []Point) float64 {
	if len(poly) == 0 {
		return math.Inf(1)
	}
	best := math.Inf(1)
	j := len(poly) - 1
	for i := range poly {
		if d := DistToSegment(p, poly[j], poly[i]); d < best {
			best = d
		}
		j = i
	}
	return best
}
