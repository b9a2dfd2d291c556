package geom

import "math"

// parallelEps bounds the line/line determinant below which two lines are
// treated as parallel and no intersection is reported.
const parallelEps = 1e-3

// LineIntersection intersects the infinite lines through p1-p2 and p3-p4
// using the standard determinant formula. ok is false when the determinant
// magnitude falls under parallelEps.
func LineIntersection(p1, p2, p3, p4 Point) (Point, bool) {
	pt, _, _, ok := LineIntersectionParams(p1, p2, p3, p4)
	return pt, ok
}

// LineIntersectionParams reports the intersection point together with the
// line parameters t along p1-p2 and u along p3-p4 (0 at the first point of
// each pair, 1 at the second).
func LineIntersectionParams(p1, p2, p3, p4 Point) (Point, float64, float64, bool) {
	d1x := p2.X - p1.X
	d1y := p2.Y - p1.Y
	d2x := p4.X - p3.X
	d2y := p4.Y - p3.Y

	denom := d1x*d2y - d1y*d2x
	if math.Abs(denom) < parallelEps {
		return Point{}, 0, 0, false
	}

	ex := p3.X - p1.X
	ey := p3.Y - p1.Y
	t := (ex*d2y - ey*d2x) / denom
	u := (ex*d1y - ey*d1x) / denom
	return Point{p1.X + t*d1x, p1.Y + t*d1y}, t, u, true
}

// SegmentIntersection intersects the segments p1-p2 and p3-p4, accepting
// only intersections whose parameters on both segments lie inside
// [tol, 1-tol]. Trim and corner logic pass a small positive tol to reject
// touches at shared endpoints.
func SegmentIntersection(p1, p2, p3, p4 Point, tol float64) (Point, float64, float64, bool) {
	pt, t, u, ok := LineIntersectionParams(p1, p2, p3, p4)
	if !ok {
		return Point{}, 0, 0, false
	}
	if t < tol || t > 1-tol || u < tol || u > 1-tol {
		return Point{}, 0, 0, false
	}
	return pt, t, u, true
}
