package plan

import (
	"github.com/google/uuid"

	"github.com/OpenPlanLab/OpenPlanCAD/pkg/geom"
)

// WallType selects the nominal construction of a wall. The thickness feeds
// both rendering and the wall hit-testing tolerance.
type WallType string

const (
	WallExterior  WallType = "exterior"
	WallInterior  WallType = "interior"
	WallPartition WallType = "partition"
)

// Thickness returns the drawn thickness in world units (20 units = 6").
func (t WallType) Thickness() float64 {
	switch t {
	case WallExterior:
		return 20
	case WallPartition:
		return 8
	default:
		return 15
	}
}

// DefaultWallHeight is 8 feet in world units.
const DefaultWallHeight = 320

// Wall is a straight wall segment. Invariant: Start != End; creation paths
// reject walls shorter than the drawing minimum.
type Wall struct {
	ID      string     `json:"id"`
	Start   geom.Point `json:"start"`
	End     geom.Point `json:"end"`
	Type    WallType   `json:"type"`
	Height  float64    `json:"height"`
	Flipped bool       `json:"flipped,omitempty"`
}

// NewWall creates a wall with a fresh ID and the default height.
func NewWall(start, end geom.Point, typ WallType) Wall {
	return Wall{
		ID:     uuid.NewString(),
		Start:  start,
		End:    end,
		Type:   typ,
		Height: DefaultWallHeight,
	}
}

func (w Wall) Length() float64 { return geom.Dist(w.Start, w.End) }

// Angle returns the direction from Start to End in radians.
func (w Wall) Angle() float64 { return w.End.Sub(w.Start).Angle() }

func (w Wall) Midpoint() geom.Point { return geom.Midpoint(w.Start, w.End) }

// PointAt returns the world position at parametric position t along the wall.
func (w Wall) PointAt(t float64) geom.Point { return geom.Lerp(w.Start, w.End, t) }

func (w Wall) Ref() Ref { return Ref{Kind: KindWall, ID: w.ID} }

func (w Wall) EditablePoints() []geom.Point { return []geom.Point{w.Start, w.End} }

func (w Wall) WithPoint(i int, p geom.Point) Entity {
	if i == 0 {
		w.Start = p
	} else {
		w.End = p
	}
	return w
}

func (w Wall) Translated(dx, dy float64) Entity {
	w.Start = geom.Pt(w.Start.X+dx, w.Start.Y+dy)
	w.End = geom.Pt(w.End.X+dx, w.End.Y+dy)
	return w
}

func (w Wall) RotatedAround(center geom.Point, angle float64) Entity {
	w.Start = geom.RotateAround(w.Start, center, angle)
	w.End = geom.RotateAround(w.End, center, angle)
	return w
}

func (w Wall) GridSnapped(size float64) Entity {
	w.Start = geom.SnapPointToGrid(w.Start, size)
	w.End = geom.SnapPointToGrid(w.End, size)
	return w
}

// FilletArc is the derived arc the fillet operator records. It references
// no wall; rendering draws it from center, radius and the angle span.
type FilletArc struct {
	ID         string     `json:"id"`
	Center     geom.Point `json:"center"`
	Radius     float64    `json:"radius"`
	StartAngle float64    `json:"startAngle"`
	EndAngle   float64    `json:"endAngle"`
}

func NewFilletArc(center geom.Point, radius, startAngle, endAngle float64) FilletArc {
	return FilletArc{
		ID:         uuid.NewString(),
		Center:     center,
		Radius:     radius,
		StartAngle: startAngle,
		EndAngle:   endAngle,
	}
}

func (a FilletArc) Ref() Ref { return Ref{Kind: KindFillet, ID: a.ID} }

func (a FilletArc) EditablePoints() []geom.Point { return nil }

func (a FilletArc) WithPoint(int, geom.Point) Entity { return a }

func (a FilletArc) Translated(dx, dy float64) Entity {
	a.Center = geom.Pt(a.Center.X+dx, a.Center.Y+dy)
	return a
}

func (a FilletArc) RotatedAround(center geom.Point, angle float64) Entity {
	a.Center = geom.RotateAround(a.Center, center, angle)
	a.StartAngle += angle
	a.EndAngle += angle
	return a
}

// Snapping the center would break tangency with the rewritten walls.
func (a FilletArc) GridSnapped(float64) Entity { return a }
