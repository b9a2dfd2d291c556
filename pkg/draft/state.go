package draft

import (
	"fmt"

	"github.com/OpenPlanLab/OpenPlanCAD/pkg/geom"
	"github.com/OpenPlanLab/OpenPlanCAD/pkg/plan"
)

// Phase names the interaction step the engine is in, for status display
// and tests.
type Phase uint8

const (
	PhaseIdle Phase = iota
	PhaseDraw
	PhasePolygon
	PhaseGrip
	PhaseDrag
	PhaseMove
	PhaseRotateRef
	PhaseRotate
)

var phaseNames = map[Phase]string{
	PhaseIdle:      "Idle",
	PhaseDraw:      "Draw",
	PhasePolygon:   "Polygon",
	PhaseGrip:      "Grip",
	PhaseDrag:      "Drag",
	PhaseMove:      "Move",
	PhaseRotateRef: "RotateRef",
	PhaseRotate:    "Rotate",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return fmt.Sprintf("Phase(%d)", p)
}

// toolState is the in-progress interaction of the active tool. Exactly
// one variant is live at a time; pointer events replace it wholesale, so
// no stale per-tool flags can survive a tool switch or cancel.
type toolState interface {
	phase() Phase
}

// idleState means no interaction is in progress.
type idleState struct{}

func (idleState) phase() Phase { return PhaseIdle }

// segmentState is a single-drag creator (wall, line, dimension) between
// pointer-down and pointer-up. Base carries the direction of the wall
// the anchor continues from, when there is one, for relative angle
// tracking.
type segmentState struct {
	Anchor  geom.Point
	Current geom.Point
	Base    *float64
}

func (segmentState) phase() Phase { return PhaseDraw }

// polygonState accumulates vertices for room, roof, hatch and polyline
// tools until an explicit close or commit gesture.
type polygonState struct {
	Points  []geom.Point
	Preview geom.Point
}

func (polygonState) phase() Phase { return PhasePolygon }

// gripKind distinguishes vertex grips from the dimension offset handle.
type gripKind uint8

const (
	gripVertex gripKind = iota
	gripOffset
)

// gripState is a grip drag on one selected entity. Origin is the grip's
// position at pointer-down; self-alignment guides arm only after the
// drag travels beyond selfAlignMinTravel from it.
type gripState struct {
	Target  plan.Ref
	Kind    gripKind
	Index   int
	Origin  geom.Point
	Current geom.Point
}

func (gripState) phase() Phase { return PhaseGrip }

// dragState is a whole-entity drag of the current selection from a
// pointer-down on an entity body.
type dragState struct {
	Start   geom.Point
	Current geom.Point
}

func (dragState) phase() Phase { return PhaseDrag }

// moveState is the move tool after its base-point click, previewing the
// delta until the second click applies it.
type moveState struct {
	Base    geom.Point
	Current geom.Point
}

func (moveState) phase() Phase { return PhaseMove }

// rotateRefState is the rotate tool after the center click, waiting for
// the click that fixes the reference angle.
type rotateRefState struct {
	Center  geom.Point
	Current geom.Point
}

func (rotateRefState) phase() Phase { return PhaseRotateRef }

// rotateState is the rotate tool previewing the live rotation; the next
// click applies Current-RefAngle to the selection.
type rotateState struct {
	Center   geom.Point
	RefAngle float64
	Current  float64
}

func (rotateState) phase() Phase { return PhaseRotate }
