package draft

import (
	"github.com/OpenPlanLab/OpenPlanCAD/pkg/document"
	"github.com/OpenPlanLab/OpenPlanCAD/pkg/geom"
	"github.com/OpenPlanLab/OpenPlanCAD/pkg/plan"
)

// Openings must land on the usable span of their host wall.
const (
	openingMinT = 0.05
	openingMaxT = 0.95
)

// segmentDown anchors a two-point tool at the snapped press point. When
// the anchor lands on an existing wall endpoint the wall's direction
// becomes the base angle for relative angle tracking.
func (e *Engine) segmentDown(w geom.Point) {
	f := e.store.Floor()
	s := ResolveSnap(&f, e.cfg, SnapRequest{Raw: w})
	e.snap = s
	st := segmentState{Anchor: s.Point, Current: s.Point}
	if e.tool.angleSnaps() && s.Kind == SnapEndpoint {
		if base, ok := wallAngleAt(&f, s.Point); ok {
			st.Base = &base
		}
	}
	e.state = st
}

// wallAngleAt returns the direction of a wall with an endpoint at p.
func wallAngleAt(f *plan.Floor, p geom.Point) (float64, bool) {
	for _, w := range f.Walls {
		if geom.Dist(w.Start, p) < 0.5 || geom.Dist(w.End, p) < 0.5 {
			return w.Angle(), true
		}
	}
	return 0, false
}

func (e *Engine) segmentMove(st segmentState, w geom.Point) {
	f := e.store.Floor()
	s := ResolveSnap(&f, e.cfg, SnapRequest{
		Raw:       w,
		Ref:       &st.Anchor,
		BaseAngle: st.Base,
		Segment:   e.tool.angleSnaps(),
	})
	st.Current = s.Point
	e.state = st
	e.snap = s
}

// segmentUp commits the segment, or discards it when it is shorter
// than the tool's minimum.
func (e *Engine) segmentUp(st segmentState, w geom.Point) {
	e.segmentMove(st, w)
	st = e.state.(segmentState)
	e.state = idleState{}
	if geom.Dist(st.Anchor, st.Current) < e.tool.minLength() {
		return
	}
	switch e.tool {
	case ToolWall:
		e.apply(document.Add{E: plan.NewWall(st.Anchor, st.Current, e.cfg.WallType)})
	case ToolLine:
		e.apply(document.Add{E: plan.NewLine(st.Anchor, st.Current)})
	case ToolDimension:
		e.apply(document.Add{E: plan.NewDimension(st.Anchor, st.Current)})
	}
}

// polygonDown appends a vertex. For ring tools a press near the first
// vertex closes and commits the shape instead.
func (e *Engine) polygonDown(w geom.Point) {
	f := e.store.Floor()
	st, active := e.state.(polygonState)
	req := SnapRequest{Raw: w}
	if active {
		req.Ref = &st.Points[len(st.Points)-1]
	}
	s := ResolveSnap(&f, e.cfg, req)
	e.snap = s
	if !active {
		e.state = polygonState{Points: []geom.Point{s.Point}, Preview: s.Point}
		return
	}
	if e.tool != ToolPolyline && len(st.Points) >= e.tool.minVertices() &&
		geom.Dist(w, st.Points[0]) <= e.cfg.Radii().Close {
		e.commitRing(st)
		return
	}
	st.Points = append(st.Points, s.Point)
	st.Preview = s.Point
	e.state = st
}

func (e *Engine) polygonMove(st polygonState, w geom.Point) {
	f := e.store.Floor()
	s := ResolveSnap(&f, e.cfg, SnapRequest{
		Raw: w,
		Ref: &st.Points[len(st.Points)-1],
	})
	st.Preview = s.Point
	e.state = st
	e.snap = s
}

func (e *Engine) commitRing(st polygonState) {
	pts := append([]geom.Point(nil), st.Points...)
	e.state = idleState{}
	switch e.tool {
	case ToolRoom:
		e.apply(document.Add{E: plan.NewRoom(pts)})
	case ToolRoof:
		e.apply(document.Add{E: plan.NewRoof(pts, plan.RoofGable)})
	case ToolHatch:
		e.apply(document.Add{E: plan.NewHatch(pts, plan.HatchDiagonal)})
	}
}

// commitPolyline ends an open polyline. The double-click that finishes
// it has already appended its press point, so trailing vertices sitting
// on their predecessor are dropped first.
func (e *Engine) commitPolyline(st polygonState) {
	pts := append([]geom.Point(nil), st.Points...)
	for len(pts) >= 2 && geom.Dist(pts[len(pts)-1], pts[len(pts)-2]) < 1 {
		pts = pts[:len(pts)-1]
	}
	e.state = idleState{}
	if len(pts) < 2 {
		return
	}
	e.apply(document.Add{E: plan.NewPolyline(pts, false)})
}

// placeOpening drops a door or window on the wall nearest the click.
// No wall within reach, or a position off the usable span, rejects the
// placement without touching the document.
func (e *Engine) placeOpening(w geom.Point, kind plan.Kind) {
	f := e.store.Floor()
	wall, t, ok := nearestWall(&f, w, e.cfg.Radii().WallReach)
	if !ok || t < openingMinT || t > openingMaxT {
		return
	}
	var o plan.Opening
	if kind == plan.KindDoor {
		o = plan.NewDoor(wall.ID, t)
	} else {
		o = plan.NewWindow(wall.ID, t)
	}
	e.apply(document.Add{E: o})
}

// nearestWall returns the wall closest to p within maxDist and the
// parametric position of the closest point on it.
func nearestWall(f *plan.Floor, p geom.Point, maxDist float64) (plan.Wall, float64, bool) {
	var best plan.Wall
	var bestT float64
	bestD := maxDist
	found := false
	for _, w := range f.Walls {
		cp, t := geom.ClosestPointOnSegment(p, w.Start, w.End)
		if d := geom.Dist(p, cp); d <= bestD {
			best, bestT, bestD, found = w, t, d, true
		}
	}
	return best, bestT, found
}

func (e *Engine) placeText(w geom.Point) {
	f := e.store.Floor()
	s := ResolveSnap(&f, e.cfg, SnapRequest{Raw: w})
	e.snap = s
	text := e.PendingText
	if text == "" {
		text = "Text"
	}
	e.apply(document.Add{E: plan.NewTextNote(s.Point, text)})
}

func (e *Engine) placeFurniture(w geom.Point) {
	f := e.store.Floor()
	s := ResolveSnap(&f, e.cfg, SnapRequest{Raw: w})
	e.snap = s
	item := e.PendingFurniture
	if item.Width <= 0 || item.Depth <= 0 {
		item = FurnitureSpec{Name: "table", Width: 120, Depth: 80}
	}
	e.apply(document.Add{E: plan.NewFurniture(s.Point, item.Name, item.Width, item.Depth)})
}
