package plan

import (
	"github.com/google/uuid"

	"github.com/OpenPlanLab/OpenPlanCAD/pkg/geom"
)

// DefaultDoorWidth and DefaultWindowWidth are in world units.
const (
	DefaultDoorWidth   = 110 // 2'-9"
	DefaultWindowWidth = 120 // 3'
)

// Opening is a door or window hosted on a wall. It has no independent
// coordinates: Position is parametric along the host span and the world
// center is derived from the wall at render or hit-test time. Interactive
// placement keeps Position inside [0.05, 0.95].
type Opening struct {
	ID       string  `json:"id"`
	Kind     Kind    `json:"kind"`
	WallID   string  `json:"wallId"`
	Position float64 `json:"position"`
	Width    float64 `json:"width"`
	Flipped  bool    `json:"flipped,omitempty"`
}

// NewDoor creates a door opening at parametric position t on the wall.
func NewDoor(wallID string, t float64) Opening {
	return Opening{ID: uuid.NewString(), Kind: KindDoor, WallID: wallID, Position: t, Width: DefaultDoorWidth}
}

// NewWindow creates a window opening at parametric position t on the wall.
func NewWindow(wallID string, t float64) Opening {
	return Opening{ID: uuid.NewString(), Kind: KindWindow, WallID: wallID, Position: t, Width: DefaultWindowWidth}
}

// CenterOn returns the opening's world position derived from its host wall.
func (o Opening) CenterOn(w Wall) geom.Point {
	return geom.Lerp(w.Start, w.End, o.Position)
}

func (o Opening) Ref() Ref { return Ref{Kind: o.Kind, ID: o.ID} }

// Openings carry no grips; they ride their host wall.
func (o Opening) EditablePoints() []geom.Point { return nil }

func (o Opening) WithPoint(int, geom.Point) Entity { return o }

func (o Opening) Translated(float64, float64) Entity { return o }

func (o Opening) RotatedAround(geom.Point, float64) Entity { return o }

func (o Opening) GridSnapped(float64) Entity { return o }
