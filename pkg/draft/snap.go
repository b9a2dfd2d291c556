package draft

import (
	"fmt"
	"math"

	"github.com/OpenPlanLab/OpenPlanCAD/pkg/geom"
	"github.com/OpenPlanLab/OpenPlanCAD/pkg/plan"
)

// SnapKind classifies what produced a resolved point, topmost priority
// first. The presentation layer keys its snap marker off this.
type SnapKind uint8

const (
	SnapNone SnapKind = iota
	SnapEndpoint
	SnapMidpoint
	SnapCenter
	SnapPerpendicular
	SnapNearest
	SnapAlign
	SnapGrid
	SnapAngle
)

var snapKindNames = map[SnapKind]string{
	SnapNone:          "None",
	SnapEndpoint:      "Endpoint",
	SnapMidpoint:      "Midpoint",
	SnapCenter:        "Center",
	SnapPerpendicular: "Perpendicular",
	SnapNearest:       "Nearest",
	SnapAlign:         "Align",
	SnapGrid:          "Grid",
	SnapAngle:         "Angle",
}

func (k SnapKind) String() string {
	if name, ok := snapKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("SnapKind(%d)", k)
}

// Guide is a transient reference line for the presentation layer. Angle 0
// is horizontal, pi/2 vertical; colinear guides carry the wall's angle.
// SnappedTo marks the pair of guides emitted through an actual snap point
// rather than a mere axis alignment.
type Guide struct {
	Through   geom.Point
	Angle     float64
	SnappedTo bool
}

func hGuide(p geom.Point, snapped bool) Guide {
	return Guide{Through: p, SnappedTo: snapped}
}

func vGuide(p geom.Point, snapped bool) Guide {
	return Guide{Through: p, Angle: math.Pi / 2, SnappedTo: snapped}
}

// Snap is one resolution outcome: the effective point plus the visual
// feedback that explains it.
type Snap struct {
	Point  geom.Point
	Kind   SnapKind
	Guides []Guide
}

// SelfAlign adds a dragging grip's own origin, and for wall endpoint
// grips the far endpoint's direction line, as alignment sources. They
// arm only after the drag travels beyond selfAlignMinTravel so the grip
// does not stick at drag start.
type SelfAlign struct {
	Origin   geom.Point
	Colinear bool
	Through  geom.Point
	Angle    float64
}

const (
	// selfAlignMinTravel is the drag distance before self-alignment arms.
	selfAlignMinTravel = 20.0

	// refExclusion drops candidates this close to the reference point so
	// a segment in progress cannot snap back onto its own anchor.
	refExclusion = 5.0

	// perpSpanMin and perpSpanMax keep perpendicular feet strictly inside
	// their segment.
	perpSpanMin = 0.01
	perpSpanMax = 0.99

	// degenerateLen is the segment length below which candidate
	// generation skips the segment.
	degenerateLen = 1e-6
)

// SnapRequest is one resolver query. Ref is the tool's anchor point, nil
// when no segment is in progress. BaseAngle, when set, switches angle
// snapping to relative tracking against that direction.
type SnapRequest struct {
	Raw       geom.Point
	Ref       *geom.Point
	BaseAngle *float64
	Segment   bool
	SelfAlign *SelfAlign
}

type snapCandidate struct {
	pt   geom.Point
	kind SnapKind
}

type worldSegment struct {
	A, B geom.Point
}

func (s worldSegment) degenerate() bool {
	return geom.Dist(s.A, s.B) < degenerateLen
}

// planSegments gathers the segments that feed snapping: walls, annotation
// lines and polyline edges. Rooms, roofs, hatches and dimensions do not
// contribute.
func planSegments(f *plan.Floor) []worldSegment {
	segs := make([]worldSegment, 0, len(f.Walls)+len(f.Lines))
	for _, w := range f.Walls {
		segs = append(segs, worldSegment{w.Start, w.End})
	}
	for _, l := range f.Lines {
		segs = append(segs, worldSegment{l.Start, l.End})
	}
	for _, p := range f.Polylines {
		for _, s := range p.Segments() {
			segs = append(segs, worldSegment{s[0], s[1]})
		}
	}
	return segs
}

// ResolveSnap turns a raw world point into the effective point the active
// tool should use.
//
// Order: angle snap first (it changes the cursor every later step sees),
// then the candidate tiers (point-class, perpendicular, nearest), then
// grid and axis alignment as fallbacks when no tier fires. Perpendicular
// capture is measured against the raw cursor; everything else against
// the angle-snapped point.
func ResolveSnap(f *plan.Floor, cfg Config, req SnapRequest) Snap {
	r := cfg.Radii()

	eff := req.Raw
	angleApplied := false
	if req.Segment && cfg.Snap.Angle && cfg.AngleStep > 0 && req.Ref != nil {
		eff = snapSegmentAngle(req.Raw, *req.Ref, req.BaseAngle, cfg.AngleStep)
		angleApplied = true
	}

	segs := planSegments(f)
	points := pointCandidates(f, segs, cfg, req.Ref)

	// Tier 1: endpoint/midpoint-class.
	if c, ok := closestCandidate(points, eff, r.Point); ok {
		return Snap{
			Point:  c.pt,
			Kind:   c.kind,
			Guides: []Guide{hGuide(c.pt, true), vGuide(c.pt, true)},
		}
	}

	// Tier 2: perpendicular foot from the reference point, gated on the
	// raw cursor being inside the capture radius.
	if cfg.Snap.Perpendicular && req.Ref != nil {
		feet := perpCandidates(segs, *req.Ref, req.Raw, r.Perp)
		if c, ok := closestCandidate(feet, eff, math.Inf(1)); ok {
			return Snap{Point: c.pt, Kind: c.kind}
		}
	}

	// Tier 3: nearest point on any segment.
	if cfg.Snap.Nearest {
		if c, ok := nearestOnSegments(segs, eff, req.Ref, r.Nearest); ok {
			return Snap{Point: c.pt, Kind: c.kind}
		}
	}

	// No tier fired: fall back to grid, then axis alignment on top.
	res := eff
	kind := SnapNone
	if angleApplied {
		kind = SnapAngle
	}

	if cfg.Snap.Grid && cfg.GridSize > 0 {
		if angleApplied && req.Ref != nil {
			res = snapLengthToGrid(eff, *req.Ref, cfg.GridSize)
		} else {
			res = geom.SnapPointToGrid(eff, cfg.GridSize)
		}
		kind = SnapGrid
	}

	var guides []Guide
	if ax, ok := alignAxis(points, eff.X, r.Align, func(p geom.Point) float64 { return p.X }); ok {
		res.X = ax.pt.X
		guides = append(guides, vGuide(ax.pt, false))
		kind = SnapAlign
	}
	if ay, ok := alignAxis(points, eff.Y, r.Align, func(p geom.Point) float64 { return p.Y }); ok {
		res.Y = ay.pt.Y
		guides = append(guides, hGuide(ay.pt, false))
		kind = SnapAlign
	}

	if sa := req.SelfAlign; sa != nil && geom.Dist(req.Raw, sa.Origin) > selfAlignMinTravel {
		if math.Abs(res.X-sa.Origin.X) <= r.Align {
			res.X = sa.Origin.X
			guides = append(guides, vGuide(sa.Origin, false))
			kind = SnapAlign
		}
		if math.Abs(res.Y-sa.Origin.Y) <= r.Align {
			res.Y = sa.Origin.Y
			guides = append(guides, hGuide(sa.Origin, false))
			kind = SnapAlign
		}
		if sa.Colinear {
			proj := projectOntoLine(res, sa.Through, sa.Angle)
			if geom.Dist(res, proj) <= r.Align {
				res = proj
				guides = append(guides, Guide{Through: sa.Through, Angle: sa.Angle})
				kind = SnapAlign
			}
		}
	}

	return Snap{Point: res, Kind: kind, Guides: guides}
}

// snapSegmentAngle rotates the raw point about the anchor onto the
// nearest polar-tracking direction, preserving the cursor distance.
func snapSegmentAngle(raw, anchor geom.Point, base *float64, stepDeg float64) geom.Point {
	d := raw.Sub(anchor)
	dist := d.Len()
	if dist < degenerateLen {
		return raw
	}
	theta := d.Angle()
	inc := geom.Degrees(stepDeg)
	var snapped float64
	if base != nil {
		snapped = geom.SnapAngleRelative(theta, *base, inc)
	} else {
		snapped = geom.SnapAngle(theta, inc)
	}
	return geom.PointAtAngle(anchor, snapped, dist)
}

// snapLengthToGrid rounds the anchor-to-point distance to the grid along
// the already-snapped direction, so grid snapping cannot bend the angle.
func snapLengthToGrid(p, anchor geom.Point, grid float64) geom.Point {
	d := p.Sub(anchor)
	length := d.Len()
	if length < degenerateLen {
		return p
	}
	return geom.PointAtAngle(anchor, d.Angle(), geom.SnapToGrid(length, grid))
}

// pointCandidates collects the tier-1 snap points: segment endpoints and
// midpoints plus opening centers, honoring the snap toggles and the
// reference exclusion zone.
func pointCandidates(f *plan.Floor, segs []worldSegment, cfg Config, ref *geom.Point) []snapCandidate {
	var out []snapCandidate
	add := func(p geom.Point, kind SnapKind) {
		if ref != nil && geom.Dist(p, *ref) < refExclusion {
			return
		}
		out = append(out, snapCandidate{pt: p, kind: kind})
	}

	for _, s := range segs {
		if s.degenerate() {
			continue
		}
		if cfg.Snap.Endpoint {
			add(s.A, SnapEndpoint)
			add(s.B, SnapEndpoint)
		}
		if cfg.Snap.Midpoint {
			add(geom.Midpoint(s.A, s.B), SnapMidpoint)
		}
	}

	if cfg.Snap.Midpoint {
		for _, o := range f.Doors {
			if w, ok := f.FindWall(o.WallID); ok {
				add(o.CenterOn(w), SnapCenter)
			}
		}
		for _, o := range f.Windows {
			if w, ok := f.FindWall(o.WallID); ok {
				add(o.CenterOn(w), SnapCenter)
			}
		}
	}
	return out
}

// perpCandidates collects perpendicular feet from ref that land strictly
// inside their segment with the raw cursor within the capture radius.
func perpCandidates(segs []worldSegment, ref, raw geom.Point, radius float64) []snapCandidate {
	var out []snapCandidate
	for _, s := range segs {
		if s.degenerate() {
			continue
		}
		foot, t, ok := geom.PerpendicularFoot(ref, s.A, s.B)
		if !ok || t <= perpSpanMin || t >= perpSpanMax {
			continue
		}
		if geom.Dist(raw, foot) > radius {
			continue
		}
		if geom.Dist(foot, ref) < refExclusion {
			continue
		}
		out = append(out, snapCandidate{pt: foot, kind: SnapPerpendicular})
	}
	return out
}

func nearestOnSegments(segs []worldSegment, p geom.Point, ref *geom.Point, radius float64) (snapCandidate, bool) {
	best := snapCandidate{kind: SnapNearest}
	bestDist := math.Inf(1)
	for _, s := range segs {
		if s.degenerate() {
			continue
		}
		pt, _ := geom.ClosestPointOnSegment(p, s.A, s.B)
		if ref != nil && geom.Dist(pt, *ref) < refExclusion {
			continue
		}
		d := geom.Dist(p, pt)
		if d <= radius && d < bestDist {
			bestDist = d
			best.pt = pt
		}
	}
	return best, !math.IsInf(bestDist, 1)
}

func closestCandidate(cands []snapCandidate, p geom.Point, radius float64) (snapCandidate, bool) {
	var win snapCandidate
	bestDist := math.Inf(1)
	for _, c := range cands {
		d := geom.Dist(p, c.pt)
		if d <= radius && d < bestDist {
			bestDist = d
			win = c
		}
	}
	return win, !math.IsInf(bestDist, 1)
}

// alignAxis finds the candidate whose coordinate (selected by coord) is
// closest to v within the tolerance.
func alignAxis(cands []snapCandidate, v, tol float64, coord func(geom.Point) float64) (snapCandidate, bool) {
	var win snapCandidate
	bestDist := math.Inf(1)
	for _, c := range cands {
		d := math.Abs(coord(c.pt) - v)
		if d <= tol && d < bestDist {
			bestDist = d
			win = c
		}
	}
	return win, !math.IsInf(bestDist, 1)
}

func projectOntoLine(p, through geom.Point, angle float64) geom.Point {
	dx := math.Cos(angle)
	dy := math.Sin(angle)
	t := (p.X-through.X)*dx + (p.Y-through.Y)*dy
	return geom.Pt(through.X+dx*t, through.Y+dy*t)
}
