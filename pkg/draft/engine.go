// Package draft is the interactive drafting core. It owns the active
// tool, the in-progress tool state and the selection, and turns raw
// pointer input into snapped coordinates and document commands. The
// package is presentation-agnostic: hosts feed it pointer events in
// screen coordinates and render whatever Feedback reports.
package draft

import (
	"fmt"
	"math"

	"github.com/OpenPlanLab/OpenPlanCAD/pkg/document"
	"github.com/OpenPlanLab/OpenPlanCAD/pkg/geom"
	"github.com/OpenPlanLab/OpenPlanCAD/pkg/plan"
)

// Modifiers carries the pointer modifier keys the engine recognizes.
type Modifiers struct {
	Shift bool
}

// Feedback is the per-frame visual state the engine exposes to the
// presentation layer. Everything in it is advisory: the authoritative
// geometry lives in the document store and changes only via commands.
type Feedback struct {
	Tool     Tool
	Phase    Phase
	Snap     Snap         // last snap resolution, drives the indicator and guides
	Draft    []geom.Point // committed points of the in-progress shape
	Preview  geom.Point   // current effective cursor position
	HasDraft bool
	Grips    []Grip // hotspots of the current selection, in paint order
	MoveDX   float64
	MoveDY   float64
	RotateBy float64 // live rotation preview in radians
	Status   string
}

// Engine drives one floor's interactive editing session. It is not
// safe for concurrent use; hosts call it from their event loop only.
type Engine struct {
	store *document.Store
	cfg   Config
	cam   *Camera
	sel   Selection
	tool  Tool
	state toolState
	snap  Snap

	// PendingText is placed by the next text-tool click.
	PendingText string
	// PendingFurniture is stamped by the next furniture-tool click.
	PendingFurniture FurnitureSpec
}

// FurnitureSpec describes the item the furniture tool places.
type FurnitureSpec struct {
	Name  string
	Width float64
	Depth float64
}

// NewEngine wires an engine to a store. The camera starts at the
// world origin with zoom 1; hosts fit it once the window size is known.
func NewEngine(store *document.Store, cfg Config) *Engine {
	return &Engine{
		store:       store,
		cfg:         cfg,
		cam:         NewCamera(800, 600),
		tool:        ToolSelect,
		state:       idleState{},
		PendingText: "Text",
		PendingFurniture: FurnitureSpec{
			Name:  "table",
			Width: 120,
			Depth: 80,
		},
	}
}

func (e *Engine) Store() *document.Store { return e.store }

func (e *Engine) Camera() *Camera { return e.cam }

func (e *Engine) Config() Config { return e.cfg }

// SetConfig replaces the live configuration. The in-progress tool
// state is kept; the next pointer move resolves under the new settings.
func (e *Engine) SetConfig(cfg Config) { e.cfg = cfg }

func (e *Engine) Tool() Tool { return e.tool }

// SetTool switches the active tool. An in-progress polyline is
// committed first; any other in-progress state is discarded. The
// selection survives so the move and rotate tools can act on it.
func (e *Engine) SetTool(t Tool) {
	if st, ok := e.state.(polygonState); ok && e.tool == ToolPolyline {
		e.commitPolyline(st)
	}
	e.tool = t
	e.state = idleState{}
	e.snap = Snap{}
}

func (e *Engine) Phase() Phase { return e.state.phase() }

// Selection returns the selected entity references in selection order.
func (e *Engine) Selection() []plan.Ref { return e.sel.Refs() }

// SelectOnly programmatically replaces the selection.
func (e *Engine) SelectOnly(refs ...plan.Ref) {
	e.sel.Clear()
	for _, r := range refs {
		e.sel.Toggle(r)
	}
}

// PointerDown handles a primary-button press at screen coordinates.
func (e *Engine) PointerDown(x, y float64, mods Modifiers) {
	w := e.cam.ScreenToWorld(x, y)
	switch e.tool {
	case ToolSelect:
		e.selectDown(w, mods)
	case ToolWall, ToolLine, ToolDimension:
		e.segmentDown(w)
	case ToolPolyline, ToolRoom, ToolRoof, ToolHatch:
		e.polygonDown(w)
	case ToolDoor:
		e.placeOpening(w, plan.KindDoor)
	case ToolWindow:
		e.placeOpening(w, plan.KindWindow)
	case ToolText:
		e.placeText(w)
	case ToolFurniture:
		e.placeFurniture(w)
	case ToolMove:
		e.moveDown(w)
	case ToolRotate:
		e.rotateDown(w)
	case ToolExtend:
		e.extendAt(w)
	case ToolTrim:
		e.trimAt(w)
	case ToolCorner:
		e.cornerAt(w)
	case ToolChamfer:
		e.chamferAt(w)
	case ToolFillet:
		e.filletAt(w)
	}
}

// PointerMove handles cursor motion at screen coordinates. In an idle
// creation tool it still resolves the snap so hosts can show the
// indicator before the first click.
func (e *Engine) PointerMove(x, y float64) {
	w := e.cam.ScreenToWorld(x, y)
	switch st := e.state.(type) {
	case idleState:
		e.hoverMove(w)
	case segmentState:
		e.segmentMove(st, w)
	case polygonState:
		e.polygonMove(st, w)
	case gripState:
		e.gripMove(st, w)
	case dragState:
		st.Current = w
		e.state = st
	case moveState:
		e.moveMove(st, w)
	case rotateRefState:
		st.Current = w
		e.state = st
	case rotateState:
		st.Current = w.Sub(st.Center).Angle()
		e.state = st
	}
}

// PointerUp handles the primary-button release. Drag-style tools
// commit here; click-driven tools ignore it.
func (e *Engine) PointerUp(x, y float64) {
	w := e.cam.ScreenToWorld(x, y)
	switch st := e.state.(type) {
	case segmentState:
		e.segmentUp(st, w)
	case gripState:
		e.gripUp(st)
	case dragState:
		e.dragUp(st)
	}
}

// DoubleClick commits an in-progress polyline. Other tools treat it
// as a plain click pair, which PointerDown has already handled.
func (e *Engine) DoubleClick(x, y float64) {
	st, ok := e.state.(polygonState)
	if !ok || e.tool != ToolPolyline {
		return
	}
	e.commitPolyline(st)
}

// Cancel aborts the in-progress action without touching the document.
// A second cancel from idle clears the selection.
func (e *Engine) Cancel() {
	if _, idle := e.state.(idleState); !idle {
		e.state = idleState{}
		e.snap = Snap{}
		return
	}
	e.sel.Clear()
}

// DeleteSelection removes every selected entity as one undo step.
func (e *Engine) DeleteSelection() {
	refs := e.sel.Refs()
	if len(refs) == 0 {
		return
	}
	cmds := make([]document.Command, 0, len(refs))
	for _, r := range refs {
		cmds = append(cmds, document.Delete{Ref: r})
	}
	e.apply(document.Batch{Label: "delete selection", Cmds: cmds})
	e.sel.Clear()
	e.state = idleState{}
}

func (e *Engine) apply(cmd document.Command) {
	e.store.Apply(cmd)
}

// gridSize returns the grid pitch commands should re-snap to, or 0
// when grid snapping is off.
func (e *Engine) gridSize() float64 {
	if !e.cfg.Snap.Grid {
		return 0
	}
	return e.cfg.GridSize
}

func (e *Engine) hoverMove(w geom.Point) {
	switch e.tool {
	case ToolWall, ToolLine, ToolDimension, ToolPolyline, ToolRoom, ToolRoof,
		ToolHatch, ToolDoor, ToolWindow, ToolText, ToolFurniture, ToolMove, ToolRotate:
		f := e.store.Floor()
		e.snap = ResolveSnap(&f, e.cfg, SnapRequest{Raw: w})
	default:
		e.snap = Snap{}
	}
}

// Feedback snapshots the engine state for rendering.
func (e *Engine) Feedback() Feedback {
	fb := Feedback{
		Tool:  e.tool,
		Phase: e.state.phase(),
		Snap:  e.snap,
	}
	switch st := e.state.(type) {
	case segmentState:
		fb.Draft = []geom.Point{st.Anchor}
		fb.Preview = st.Current
		fb.HasDraft = true
	case polygonState:
		fb.Draft = append([]geom.Point(nil), st.Points...)
		fb.Preview = st.Preview
		fb.HasDraft = true
	case gripState:
		fb.Preview = st.Current
		fb.HasDraft = true
	case dragState:
		fb.MoveDX = st.Current.X - st.Start.X
		fb.MoveDY = st.Current.Y - st.Start.Y
	case moveState:
		fb.Draft = []geom.Point{st.Base}
		fb.Preview = st.Current
		fb.HasDraft = true
		fb.MoveDX = st.Current.X - st.Base.X
		fb.MoveDY = st.Current.Y - st.Base.Y
	case rotateRefState:
		fb.Draft = []geom.Point{st.Center}
		fb.Preview = st.Current
		fb.HasDraft = true
	case rotateState:
		fb.Draft = []geom.Point{st.Center}
		fb.Preview = st.Center
		fb.HasDraft = true
		fb.RotateBy = geom.NormalizeAngle(st.Current - st.RefAngle)
	}
	f := e.store.Floor()
	fb.Grips = collectGrips(&f, e.sel.refs).all()
	fb.Status = e.status()
	return fb
}

func (e *Engine) status() string {
	switch st := e.state.(type) {
	case segmentState:
		return fmt.Sprintf("%s: %.0f units, release to commit", e.tool, geom.Dist(st.Anchor, st.Current))
	case polygonState:
		if e.tool == ToolPolyline {
			return fmt.Sprintf("%s: %d points, double-click to finish", e.tool, len(st.Points))
		}
		return fmt.Sprintf("%s: %d points, click the first point to close", e.tool, len(st.Points))
	case gripState:
		return "drag grip, release to commit"
	case dragState:
		return fmt.Sprintf("drag: %.0f, %.0f", st.Current.X-st.Start.X, st.Current.Y-st.Start.Y)
	case moveState:
		return fmt.Sprintf("move: %.0f, %.0f, click to place", st.Current.X-st.Base.X, st.Current.Y-st.Base.Y)
	case rotateRefState:
		return "rotate: click the reference direction"
	case rotateState:
		deg := geom.NormalizeAngle(st.Current-st.RefAngle) * 180 / math.Pi
		return fmt.Sprintf("rotate: %.1f deg, click to apply", deg)
	}
	switch e.tool {
	case ToolSelect:
		if n := e.sel.Len(); n > 0 {
			return fmt.Sprintf("%d selected", n)
		}
		return "select: click an entity"
	case ToolMove:
		if e.sel.Empty() {
			return "move: select entities first"
		}
		return "move: click the base point"
	case ToolRotate:
		if e.sel.Empty() {
			return "rotate: select entities first"
		}
		return "rotate: click the center"
	case ToolDoor, ToolWindow:
		return fmt.Sprintf("%s: click on a wall", e.tool)
	case ToolExtend:
		return "extend: click a wall end"
	case ToolTrim:
		return "trim: click a wall segment"
	case ToolCorner, ToolChamfer, ToolFillet:
		return fmt.Sprintf("%s: click near two wall ends", e.tool)
	}
	return fmt.Sprintf("%s: click to start", e.tool)
}
