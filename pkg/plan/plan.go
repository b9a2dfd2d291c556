// Package plan defines the floor-plan entity model: walls, openings, rooms,
// roofs and annotation primitives, together with the Floor scene that holds
// them. Entities are plain value records identified by UUID. Editing
// operators never hold references into a Floor; they read entities, derive
// rewritten copies and put them back.
package plan

import "github.com/OpenPlanLab/OpenPlanCAD/pkg/geom"

// Kind names an entity layer. The constant order below is also the fixed
// hit-testing precedence, topmost first.
type Kind string

const (
	KindFurniture Kind = "furniture"
	KindDoor      Kind = "door"
	KindWindow    Kind = "window"
	KindWall      Kind = "wall"
	KindRoom      Kind = "room"
	KindRoof      Kind = "roof"
	KindDimension Kind = "dimension"
	KindLine      Kind = "line"
	KindPolyline  Kind = "polyline"
	KindText      Kind = "text"
	KindHatch     Kind = "hatch"
	KindFillet    Kind = "fillet"
)

// HitOrder lists the layers in picking priority.
var HitOrder = []Kind{
	KindFurniture, KindDoor, KindWindow, KindWall, KindRoom, KindRoof,
	KindDimension, KindLine, KindPolyline, KindText, KindHatch,
}

// Ref identifies one entity within a floor.
type Ref struct {
	Kind Kind   `json:"kind"`
	ID   string `json:"id"`
}

// Entity is the capability surface every kind implements once, so that
// move, rotate and grip editing run one polymorphic call instead of
// enumerating kinds at each site.
//
// EditablePoints returns the grip points exposed to interactive editing, in
// a stable order (endpoints before interior vertices); kinds without grips
// return nil. WithPoint returns a copy with grip i relocated. Translated
// and RotatedAround return displaced copies; kinds whose position is
// derived (openings ride their host wall) return themselves unchanged.
// GridSnapped rounds every defining point to the grid, for the re-snap step
// after move and rotate.
type Entity interface {
	Ref() Ref
	EditablePoints() []geom.Point
	WithPoint(i int, p geom.Point) Entity
	Translated(dx, dy float64) Entity
	RotatedAround(center geom.Point, angle float64) Entity
	GridSnapped(size float64) Entity
}

func translatePoints(pts []geom.Point, dx, dy float64) []geom.Point {
	out := make([]geom.Point, len(pts))
	for i, p := range pts {
		out[i] = geom.Point{X: p.X + dx, Y: p.Y + dy}
	}
	return out
}

func rotatePoints(pts []geom.Point, center geom.Point, angle float64) []geom.Point {
	out := make([]geom.Point, len(pts))
	for i, p := range pts {
		out[i] = geom.RotateAround(p, center, angle)
	}
	return out
}

func clonePoints(pts []geom.Point) []geom.Point {
	return append([]geom.Point(nil), pts...)
}

func snapPoints(pts []geom.Point, size float64) []geom.Point {
	out := make([]geom.Point, len(pts))
	for i, p := range pts {
		out[i] = geom.SnapPointToGrid(p, size)
	}
	return out
}
