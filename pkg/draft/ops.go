package draft

import (
	"math"
	"sort"

	"github.com/OpenPlanLab/OpenPlanCAD/pkg/document"
	"github.com/OpenPlanLab/OpenPlanCAD/pkg/geom"
	"github.com/OpenPlanLab/OpenPlanCAD/pkg/plan"
)

// Corner-repair constants. Every operator here is a silent no-op when
// it finds nothing to act on: no nearby walls, no intersection, or a
// degenerate angle.
const (
	// extendPickRadius is in screen pixels; it is divided by the zoom so
	// endpoint picking feels the same at any magnification.
	extendPickRadius = 30.0

	// Trim accepts crossings whose parameters on both walls lie strictly
	// inside this span, rejecting touches at shared endpoints.
	trimSpanMin = 0.01
	trimSpanMax = 0.99

	// extendForwardEps rejects intersections at the picked endpoint
	// itself.
	extendForwardEps = 1e-3

	chamferSetback = 24.0
	filletRadius   = 30.0
)

// extendAt lengthens the wall whose endpoint is nearest the click until
// it meets the first wall crossed by the extension ray.
func (e *Engine) extendAt(w geom.Point) {
	f := e.store.Floor()
	radius := extendPickRadius / e.cam.Zoom
	var wall plan.Wall
	var atStart bool
	best := radius
	found := false
	for _, cand := range f.Walls {
		if d := geom.Dist(w, cand.Start); d <= best {
			wall, atStart, best, found = cand, true, d, true
		}
		if d := geom.Dist(w, cand.End); d <= best {
			wall, atStart, best, found = cand, false, d, true
		}
	}
	if !found {
		return
	}

	tip := wall.End
	inner := wall.Start
	if atStart {
		tip = wall.Start
		inner = wall.End
	}
	// Ray from the tip outward: t is in wall lengths past the tip, and
	// the hit must land on the other wall's actual span.
	ahead := geom.Pt(tip.X+(tip.X-inner.X), tip.Y+(tip.Y-inner.Y))
	bestT := math.Inf(1)
	var hit geom.Point
	hitFound := false
	for _, other := range f.Walls {
		if other.ID == wall.ID {
			continue
		}
		pt, t, u, ok := geom.LineIntersectionParams(tip, ahead, other.Start, other.End)
		if !ok || t <= extendForwardEps || u < 0 || u > 1 {
			continue
		}
		if t < bestT {
			bestT, hit, hitFound = t, pt, true
		}
	}
	if !hitFound {
		return
	}
	e.apply(document.SetWallEnd{ID: wall.ID, AtStart: atStart, P: hit})
}

// trimAt cuts the wall nearest the click against every wall crossing
// it. Clicking a piece that touches a wall end keeps that piece and
// discards the rest; clicking a piece between two crossings cuts it
// out, leaving a wall on each side.
func (e *Engine) trimAt(w geom.Point) {
	f := e.store.Floor()
	wall, tc, ok := nearestWall(&f, w, e.cfg.Radii().Corner)
	if !ok {
		return
	}
	var cuts []float64
	for _, other := range f.Walls {
		if other.ID == wall.ID {
			continue
		}
		_, t, u, ok := geom.LineIntersectionParams(wall.Start, wall.End, other.Start, other.End)
		if !ok {
			continue
		}
		if t <= trimSpanMin || t >= trimSpanMax || u <= trimSpanMin || u >= trimSpanMax {
			continue
		}
		cuts = append(cuts, t)
	}
	if len(cuts) == 0 {
		return
	}
	sort.Float64s(cuts)

	lo, hi := 0.0, 1.0
	for _, t := range cuts {
		if t <= tc {
			lo = t
		} else {
			hi = t
			break
		}
	}
	switch {
	case lo == 0:
		e.apply(document.SetWallEnd{ID: wall.ID, AtStart: false, P: wall.PointAt(hi)})
	case hi == 1:
		e.apply(document.SetWallEnd{ID: wall.ID, AtStart: true, P: wall.PointAt(lo)})
	default:
		first := plan.NewWall(wall.Start, wall.PointAt(lo), wall.Type)
		second := plan.NewWall(wall.PointAt(hi), wall.End, wall.Type)
		first.Height = wall.Height
		second.Height = wall.Height
		e.apply(document.SplitWall{ID: wall.ID, First: first, Second: second})
	}
}

// wallPair is two walls meeting at a corner: the endpoint of each
// closest to the other, plus the infinite-line intersection.
type wallPair struct {
	a, b           plan.Wall
	aStart, bStart bool
	corner         geom.Point
}

// findCornerPair locates the two distinct walls nearest the click
// within radius and their closest endpoint pairing. Parallel walls
// report no pair.
func findCornerPair(f *plan.Floor, click geom.Point, radius float64) (wallPair, bool) {
	var a, b plan.Wall
	da, db := radius, radius
	na, nb := false, false
	for _, w := range f.Walls {
		d := geom.DistToSegment(click, w.Start, w.End)
		if d > radius {
			continue
		}
		if !na || d < da {
			if na {
				b, db, nb = a, da, true
			}
			a, da, na = w, d, true
		} else if !nb || d < db {
			b, db, nb = w, d, true
		}
	}
	if !na || !nb {
		return wallPair{}, false
	}

	bestD := math.Inf(1)
	var aStart, bStart bool
	for _, ae := range []bool{true, false} {
		for _, be := range []bool{true, false} {
			d := geom.Dist(wallEnd(a, ae), wallEnd(b, be))
			if d < bestD {
				bestD, aStart, bStart = d, ae, be
			}
		}
	}
	corner, ok := geom.LineIntersection(a.Start, a.End, b.Start, b.End)
	if !ok {
		return wallPair{}, false
	}
	return wallPair{a: a, b: b, aStart: aStart, bStart: bStart, corner: corner}, true
}

func wallEnd(w plan.Wall, start bool) geom.Point {
	if start {
		return w.Start
	}
	return w.End
}

// awayDir is the unit direction from the corner into the wall, toward
// the endpoint that keeps its position.
func awayDir(w plan.Wall, start bool, corner geom.Point) (geom.Point, bool) {
	far := w.End
	if !start {
		far = w.Start
	}
	v := far.Sub(corner)
	l := v.Len()
	if l < 1e-9 {
		return geom.Point{}, false
	}
	return v.Mul(1 / l), true
}

// cornerAt joins the two walls nearest the click by snapping their
// closest endpoints onto the walls' intersection.
func (e *Engine) cornerAt(w geom.Point) {
	f := e.store.Floor()
	pr, ok := findCornerPair(&f, w, e.cfg.Radii().Corner)
	if !ok {
		return
	}
	corner := geom.SnapPointToGrid(pr.corner, e.gridSize())
	e.apply(document.Batch{
		Label: "corner join",
		Cmds: []document.Command{
			document.SetWallEnd{ID: pr.a.ID, AtStart: pr.aStart, P: corner},
			document.SetWallEnd{ID: pr.b.ID, AtStart: pr.bStart, P: corner},
		},
	})
}

// chamferAt joins two walls with a short straight wall set back from
// their intersection along each wall's direction.
func (e *Engine) chamferAt(w geom.Point) {
	f := e.store.Floor()
	pr, ok := findCornerPair(&f, w, e.cfg.Radii().Corner)
	if !ok {
		return
	}
	da, oka := awayDir(pr.a, pr.aStart, pr.corner)
	db, okb := awayDir(pr.b, pr.bStart, pr.corner)
	if !oka || !okb {
		return
	}
	pa := pr.corner.Add(da.Mul(chamferSetback))
	pb := pr.corner.Add(db.Mul(chamferSetback))
	if geom.Dist(pa, pb) < 1 {
		return
	}
	e.apply(document.Batch{
		Label: "chamfer",
		Cmds: []document.Command{
			document.SetWallEnd{ID: pr.a.ID, AtStart: pr.aStart, P: pa},
			document.SetWallEnd{ID: pr.b.ID, AtStart: pr.bStart, P: pb},
			document.Add{E: plan.NewWall(pa, pb, pr.a.Type)},
		},
	})
}

// filletAt rounds the corner between two walls: both are pulled back to
// the tangent points of a fixed-radius arc and the arc is recorded as
// its own entity. The center sits radius/sin(theta/2) along the angle
// bisector, which makes both tangent points exactly radius from it.
func (e *Engine) filletAt(w geom.Point) {
	f := e.store.Floor()
	pr, ok := findCornerPair(&f, w, e.cfg.Radii().Corner)
	if !ok {
		return
	}
	da, oka := awayDir(pr.a, pr.aStart, pr.corner)
	db, okb := awayDir(pr.b, pr.bStart, pr.corner)
	if !oka || !okb {
		return
	}
	cosTheta := da.X*db.X + da.Y*db.Y
	half := math.Acos(math.Max(-1, math.Min(1, cosTheta))) / 2
	if math.Sin(half) < 1e-3 || math.Cos(half) < 1e-3 {
		return
	}
	tangentDist := filletRadius / math.Tan(half)
	centerDist := filletRadius / math.Sin(half)
	ta := pr.corner.Add(da.Mul(tangentDist))
	tb := pr.corner.Add(db.Mul(tangentDist))
	bisector := da.Add(db)
	bl := bisector.Len()
	if bl < 1e-9 {
		return
	}
	center := pr.corner.Add(bisector.Mul(centerDist / bl))
	arc := plan.NewFilletArc(center, filletRadius, ta.Sub(center).Angle(), tb.Sub(center).Angle())
	e.apply(document.Batch{
		Label: "fillet",
		Cmds: []document.Command{
			document.SetWallEnd{ID: pr.a.ID, AtStart: pr.aStart, P: ta},
			document.SetWallEnd{ID: pr.b.ID, AtStart: pr.bStart, P: tb},
			document.Add{E: arc},
		},
	})
}
