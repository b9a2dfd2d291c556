package draft

import (
	"math"

	"github.com/OpenPlanLab/OpenPlanCAD/pkg/geom"
	"github.com/OpenPlanLab/OpenPlanCAD/pkg/plan"
)

// Per-type hit tolerances in world units.
const (
	wallHitSlack    = 5  // added to half the wall thickness
	openingHitSlack = 10 // added to half the opening width
	polygonEdgeTol  = 12 // boundary proximity for rooms, roofs, hatches
	segmentHitTol   = 8  // dimensions, lines, polyline edges
	endpointHitTol  = 12 // endpoint grab on segment entities
	furnitureSlack  = 5  // added around the footprint rectangle
)

// HitTest returns the topmost entity at the world point. Layers are
// tested in the fixed precedence of plan.HitOrder; invisible or locked
// layers never hit, and only the first match is returned.
func HitTest(f *plan.Floor, cfg Config, p geom.Point) (plan.Ref, bool) {
	for _, kind := range plan.HitOrder {
		if !cfg.Layers.Pickable(kind) {
			continue
		}
		if ref, ok := hitLayer(f, kind, p); ok {
			return ref, true
		}
	}
	return plan.Ref{}, false
}

func hitLayer(f *plan.Floor, kind plan.Kind, p geom.Point) (plan.Ref, bool) {
	switch kind {
	case plan.KindFurniture:
		for _, fu := range f.Furniture {
			if hitFurniture(fu, p) {
				return fu.Ref(), true
			}
		}
	case plan.KindDoor:
		for _, o := range f.Doors {
			if hitOpening(f, o, p) {
				return o.Ref(), true
			}
		}
	case plan.KindWindow:
		for _, o := range f.Windows {
			if hitOpening(f, o, p) {
				return o.Ref(), true
			}
		}
	case plan.KindWall:
		for _, w := range f.Walls {
			if geom.DistToSegment(p, w.Start, w.End) <= w.Type.Thickness()/2+wallHitSlack {
				return w.Ref(), true
			}
		}
	case plan.KindRoom:
		for _, r := range f.Rooms {
			if hitPolygon(r.Points, p) {
				return r.Ref(), true
			}
		}
	case plan.KindRoof:
		for _, r := range f.Roofs {
			if hitPolygon(r.Points, p) {
				return r.Ref(), true
			}
		}
	case plan.KindDimension:
		for _, d := range f.Dimensions {
			if hitSegment(d.Start, d.End, p) {
				return d.Ref(), true
			}
		}
	case plan.KindLine:
		for _, l := range f.Lines {
			if hitSegment(l.Start, l.End, p) {
				return l.Ref(), true
			}
		}
	case plan.KindPolyline:
		for _, pl := range f.Polylines {
			for _, s := range pl.Segments() {
				if hitSegment(s[0], s[1], p) {
					return pl.Ref(), true
				}
			}
		}
	case plan.KindText:
		for _, n := range f.Texts {
			if geom.Dist(p, n.Position) <= n.Size/2+openingHitSlack {
				return n.Ref(), true
			}
		}
	case plan.KindHatch:
		for _, h := range f.Hatches {
			if hitPolygon(h.Points, p) {
				return h.Ref(), true
			}
		}
	}
	return plan.Ref{}, false
}

func hitOpening(f *plan.Floor, o plan.Opening, p geom.Point) bool {
	w, ok := f.FindWall(o.WallID)
	if !ok {
		return false
	}
	return geom.Dist(p, o.CenterOn(w)) <= o.Width/2+openingHitSlack
}

func hitPolygon(pts []geom.Point, p geom.Point) bool {
	if geom.PointInPolygon(p, pts) {
		return true
	}
	return geom.DistToPolygonEdge(p, pts) <= polygonEdgeTol
}

func hitSegment(a, b geom.Point, p geom.Point) bool {
	if geom.DistToSegment(p, a, b) <= segmentHitTol {
		return true
	}
	return geom.Dist(p, a) <= endpointHitTol || geom.Dist(p, b) <= endpointHitTol
}

func hitFurniture(fu plan.Furniture, p geom.Point) bool {
	local := geom.RotateAround(p, fu.Position, -fu.Rotation)
	return math.Abs(local.X-fu.Position.X) <= fu.Width/2+furnitureSlack &&
		math.Abs(local.Y-fu.Position.Y) <= fu.Depth/2+furnitureSlack
}
