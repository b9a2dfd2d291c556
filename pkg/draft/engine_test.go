package draft

import (
	"testing"

	"github.com/OpenPlanLab/OpenPlanCAD/pkg/document"
	"github.com/OpenPlanLab/OpenPlanCAD/pkg/geom"
	"github.com/OpenPlanLab/OpenPlanCAD/pkg/plan"
)

func newTestEngine() *Engine {
	return NewEngine(document.NewStore(document.New("test")), DefaultConfig())
}

// The engine takes screen coordinates; these helpers feed it world
// points through the camera so tests read in world units.
func press(e *Engine, p geom.Point, mods Modifiers) {
	x, y := e.Camera().WorldToScreen(p)
	e.PointerDown(x, y, mods)
}

func moveTo(e *Engine, p geom.Point) {
	x, y := e.Camera().WorldToScreen(p)
	e.PointerMove(x, y)
}

func release(e *Engine, p geom.Point) {
	x, y := e.Camera().WorldToScreen(p)
	e.PointerUp(x, y)
}

func click(e *Engine, p geom.Point) {
	press(e, p, Modifiers{})
	release(e, p)
}

func TestWallDrawSnapsToGridAndAngle(t *testing.T) {
	e := newTestEngine()
	e.SetTool(ToolWall)

	press(e, geom.Pt(3, 4), Modifiers{})
	moveTo(e, geom.Pt(50, 3))
	release(e, geom.Pt(97, 2))

	f := e.Store().Floor()
	if len(f.Walls) != 1 {
		t.Fatalf("wall count = %d, want 1", len(f.Walls))
	}
	w := f.Walls[0]
	if geom.Dist(w.Start, geom.Pt(0, 0)) > 1e-9 || geom.Dist(w.End, geom.Pt(100, 0)) > 1e-9 {
		t.Fatalf("wall = %v-%v, want (0,0)-(100,0)", w.Start, w.End)
	}
	if w.Type != plan.WallInterior {
		t.Errorf("wall type = %v, want the configured default", w.Type)
	}
}

func TestShortWallDiscarded(t *testing.T) {
	e := newTestEngine()
	e.SetTool(ToolWall)

	press(e, geom.Pt(0, 0), Modifiers{})
	release(e, geom.Pt(6, 2))

	if f := e.Store().Floor(); len(f.Walls) != 0 {
		t.Fatalf("wall count = %d, want 0 for a sub-minimum drag", len(f.Walls))
	}
}

func TestLineMinimumIsLower(t *testing.T) {
	e := newTestEngine()
	cfg := DefaultConfig()
	cfg.Snap.Grid = false
	e.SetConfig(cfg)

	e.SetTool(ToolLine)
	press(e, geom.Pt(0, 0), Modifiers{})
	release(e, geom.Pt(6, 1))

	if f := e.Store().Floor(); len(f.Lines) != 1 {
		t.Fatalf("line count = %d, want 1: six units clears the line minimum", len(f.Lines))
	}
}

func TestDimensionDrawCommits(t *testing.T) {
	e := newTestEngine()
	e.SetTool(ToolDimension)

	press(e, geom.Pt(0, 0), Modifiers{})
	release(e, geom.Pt(200, 3))

	f := e.Store().Floor()
	if len(f.Dimensions) != 1 {
		t.Fatalf("dimension count = %d, want 1", len(f.Dimensions))
	}
	d := f.Dimensions[0]
	if geom.Dist(d.End, geom.Pt(200, 0)) > 1e-9 {
		t.Errorf("dimension end = %v, want (200,0)", d.End)
	}
	if d.Offset != plan.DefaultDimensionOffset {
		t.Errorf("offset = %v, want the default", d.Offset)
	}
}

func TestRoomClosesNearFirstVertex(t *testing.T) {
	e := newTestEngine()
	e.SetTool(ToolRoom)

	click(e, geom.Pt(0, 0))
	click(e, geom.Pt(400, 0))
	click(e, geom.Pt(400, 300))
	click(e, geom.Pt(0, 300))
	click(e, geom.Pt(5, 5)) // inside the closing tolerance of the first vertex

	f := e.Store().Floor()
	if len(f.Rooms) != 1 {
		t.Fatalf("room count = %d, want 1", len(f.Rooms))
	}
	want := []geom.Point{geom.Pt(0, 0), geom.Pt(400, 0), geom.Pt(400, 300), geom.Pt(0, 300)}
	got := f.Rooms[0].Points
	if len(got) != len(want) {
		t.Fatalf("vertex count = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if geom.Dist(got[i], want[i]) > 1e-9 {
			t.Errorf("vertex %d = %v, want %v", i, got[i], want[i])
		}
	}
	if e.Phase() != PhaseIdle {
		t.Errorf("phase = %v, want Idle after commit", e.Phase())
	}
}

func TestRoofRequiresFourVertices(t *testing.T) {
	e := newTestEngine()
	e.SetTool(ToolRoof)

	click(e, geom.Pt(0, 0))
	click(e, geom.Pt(400, 0))
	click(e, geom.Pt(400, 300))
	click(e, geom.Pt(4, 4)) // three vertices: close attempt must not commit

	if f := e.Store().Floor(); len(f.Roofs) != 0 {
		t.Fatalf("roof committed with only three vertices")
	}
	e.Cancel()

	click(e, geom.Pt(0, 0))
	click(e, geom.Pt(400, 0))
	click(e, geom.Pt(400, 300))
	click(e, geom.Pt(0, 300))
	click(e, geom.Pt(5, 5))

	f := e.Store().Floor()
	if len(f.Roofs) != 1 || len(f.Roofs[0].Points) != 4 {
		t.Fatalf("roofs = %d, want one four-vertex roof", len(f.Roofs))
	}
}

func TestPolylineCommitsOnlyOnDoubleClick(t *testing.T) {
	e := newTestEngine()
	e.SetTool(ToolPolyline)

	click(e, geom.Pt(0, 0))
	click(e, geom.Pt(100, 0))
	click(e, geom.Pt(100, 100))
	// A click near the first vertex appends; polylines never close
	// implicitly.
	click(e, geom.Pt(3, 2))
	if f := e.Store().Floor(); len(f.Polylines) != 0 {
		t.Fatal("polyline committed without a double-click")
	}

	// The finishing double-click arrives after its own click pair.
	click(e, geom.Pt(3, 2))
	x, y := e.Camera().WorldToScreen(geom.Pt(3, 2))
	e.DoubleClick(x, y)

	f := e.Store().Floor()
	if len(f.Polylines) != 1 {
		t.Fatalf("polyline count = %d, want 1", len(f.Polylines))
	}
	pl := f.Polylines[0]
	if pl.Closed {
		t.Error("polyline must stay open")
	}
	if len(pl.Points) != 4 {
		t.Fatalf("points = %d, want 4 with the double-click duplicate dropped", len(pl.Points))
	}
}

func TestToolSwitchCommitsPolyline(t *testing.T) {
	e := newTestEngine()
	e.SetTool(ToolPolyline)

	click(e, geom.Pt(0, 0))
	click(e, geom.Pt(100, 0))
	click(e, geom.Pt(100, 100))
	e.SetTool(ToolSelect)

	f := e.Store().Floor()
	if len(f.Polylines) != 1 || len(f.Polylines[0].Points) != 3 {
		t.Fatalf("switching tools should commit the open polyline")
	}
}

func TestEscapeDiscardsDraft(t *testing.T) {
	e := newTestEngine()
	e.SetTool(ToolWall)

	press(e, geom.Pt(0, 0), Modifiers{})
	moveTo(e, geom.Pt(80, 0))
	e.Cancel()
	release(e, geom.Pt(80, 0))

	if f := e.Store().Floor(); len(f.Walls) != 0 {
		t.Fatal("cancelled draw still committed a wall")
	}
	if e.Phase() != PhaseIdle {
		t.Errorf("phase = %v, want Idle", e.Phase())
	}
}

func TestOpeningPlacementBounds(t *testing.T) {
	e := newTestEngine()
	wall := plan.NewWall(geom.Pt(0, 0), geom.Pt(400, 0), plan.WallInterior)
	e.Store().Apply(document.Add{E: wall})
	e.SetTool(ToolDoor)

	// Parametric 0.02 sits in the forbidden band at the wall start.
	click(e, geom.Pt(8, 0))
	if f := e.Store().Floor(); len(f.Doors) != 0 {
		t.Fatal("door near the wall end must be rejected")
	}

	// Forty units off the wall is outside the placement reach.
	click(e, geom.Pt(60, 40))
	if f := e.Store().Floor(); len(f.Doors) != 0 {
		t.Fatal("door far from any wall must be rejected")
	}

	click(e, geom.Pt(200, 5))
	f := e.Store().Floor()
	if len(f.Doors) != 1 {
		t.Fatalf("door count = %d, want 1", len(f.Doors))
	}
	d := f.Doors[0]
	if d.WallID != wall.ID || d.Position != 0.5 {
		t.Fatalf("door = host %s t=%v, want host %s t=0.5", d.WallID, d.Position, wall.ID)
	}
}

func TestSelectClickAndShiftToggle(t *testing.T) {
	e := newTestEngine()
	a := plan.NewWall(geom.Pt(0, 0), geom.Pt(200, 0), plan.WallInterior)
	b := plan.NewWall(geom.Pt(0, 200), geom.Pt(200, 200), plan.WallInterior)
	e.Store().Apply(document.Add{E: a})
	e.Store().Apply(document.Add{E: b})

	click(e, geom.Pt(100, 2))
	if sel := e.Selection(); len(sel) != 1 || sel[0] != a.Ref() {
		t.Fatalf("selection = %v, want wall a", sel)
	}

	press(e, geom.Pt(100, 198), Modifiers{Shift: true})
	release(e, geom.Pt(100, 198))
	if sel := e.Selection(); len(sel) != 2 {
		t.Fatalf("selection = %v, want both walls", sel)
	}

	press(e, geom.Pt(100, 2), Modifiers{Shift: true})
	release(e, geom.Pt(100, 2))
	if sel := e.Selection(); len(sel) != 1 || sel[0] != b.Ref() {
		t.Fatalf("selection = %v, want wall b only", sel)
	}

	// Empty space clears.
	click(e, geom.Pt(1000, 1000))
	if sel := e.Selection(); len(sel) != 0 {
		t.Fatalf("selection = %v, want empty", sel)
	}
}

func TestBodyDragMovesSelection(t *testing.T) {
	e := newTestEngine()
	wall := plan.NewWall(geom.Pt(0, 0), geom.Pt(100, 0), plan.WallInterior)
	e.Store().Apply(document.Add{E: wall})

	press(e, geom.Pt(50, 2), Modifiers{})
	moveTo(e, geom.Pt(73, 41))
	release(e, geom.Pt(73, 41))

	f := e.Store().Floor()
	w, ok := f.FindWall(wall.ID)
	if !ok {
		t.Fatal("wall vanished")
	}
	// Delta (23,39), then each endpoint re-snapped to the 20 grid.
	if w.Start != geom.Pt(20, 40) || w.End != geom.Pt(120, 40) {
		t.Fatalf("wall = %v-%v, want (20,40)-(120,40)", w.Start, w.End)
	}

	e.Store().Undo()
	f = e.Store().Floor()
	if w, _ := f.FindWall(wall.ID); w.Start != geom.Pt(0, 0) {
		t.Fatalf("undo left wall at %v", w.Start)
	}
}

func TestGripDragWallEndpoint(t *testing.T) {
	e := newTestEngine()
	wall := plan.NewWall(geom.Pt(0, 0), geom.Pt(100, 0), plan.WallInterior)
	e.Store().Apply(document.Add{E: wall})
	e.SelectOnly(wall.Ref())

	press(e, geom.Pt(102, 3), Modifiers{}) // grab the end grip
	if e.Phase() != PhaseGrip {
		t.Fatalf("phase = %v, want Grip", e.Phase())
	}
	moveTo(e, geom.Pt(161, 7))
	release(e, geom.Pt(161, 7))

	f := e.Store().Floor()
	w, _ := f.FindWall(wall.ID)
	if w.Start != geom.Pt(0, 0) {
		t.Errorf("start moved to %v", w.Start)
	}
	if geom.Dist(w.End, geom.Pt(160, 0)) > 1e-9 {
		t.Fatalf("end = %v, want (160,0)", w.End)
	}
}

func TestGripDragBelowMinimumDiscarded(t *testing.T) {
	e := newTestEngine()
	wall := plan.NewWall(geom.Pt(0, 0), geom.Pt(100, 0), plan.WallInterior)
	e.Store().Apply(document.Add{E: wall})
	e.SelectOnly(wall.Ref())

	press(e, geom.Pt(102, 3), Modifiers{})
	moveTo(e, geom.Pt(52, 30))
	moveTo(e, geom.Pt(4, 6))
	release(e, geom.Pt(4, 6))

	f := e.Store().Floor()
	w, _ := f.FindWall(wall.ID)
	if w.End != geom.Pt(100, 0) {
		t.Fatalf("end = %v, want unchanged (100,0) for a collapsing edit", w.End)
	}
}

func TestMoveToolTwoClick(t *testing.T) {
	e := newTestEngine()
	wall := plan.NewWall(geom.Pt(0, 0), geom.Pt(100, 0), plan.WallInterior)
	e.Store().Apply(document.Add{E: wall})
	e.SelectOnly(wall.Ref())
	e.SetTool(ToolMove)

	click(e, geom.Pt(0, 0))
	if e.Phase() != PhaseMove {
		t.Fatalf("phase = %v, want Move after the base click", e.Phase())
	}
	moveTo(e, geom.Pt(95, 58))
	click(e, geom.Pt(95, 58))

	f := e.Store().Floor()
	w, _ := f.FindWall(wall.ID)
	if w.Start != geom.Pt(100, 60) || w.End != geom.Pt(200, 60) {
		t.Fatalf("wall = %v-%v, want (100,60)-(200,60)", w.Start, w.End)
	}
}

func TestRotateToolThreeClick(t *testing.T) {
	e := newTestEngine()
	wall := plan.NewWall(geom.Pt(0, 0), geom.Pt(100, 0), plan.WallInterior)
	e.Store().Apply(document.Add{E: wall})
	e.SelectOnly(wall.Ref())
	e.SetTool(ToolRotate)

	click(e, geom.Pt(0, 0))   // center
	click(e, geom.Pt(100, 0)) // reference direction
	if e.Phase() != PhaseRotate {
		t.Fatalf("phase = %v, want Rotate", e.Phase())
	}
	click(e, geom.Pt(0, 100)) // quarter turn

	f := e.Store().Floor()
	w, _ := f.FindWall(wall.ID)
	if w.Start != geom.Pt(0, 0) || w.End != geom.Pt(0, 100) {
		t.Fatalf("wall = %v-%v, want (0,0)-(0,100)", w.Start, w.End)
	}
}

func TestDeleteSelectionIsOneUndoStep(t *testing.T) {
	e := newTestEngine()
	wall := plan.NewWall(geom.Pt(0, 0), geom.Pt(400, 0), plan.WallInterior)
	door := plan.NewDoor(wall.ID, 0.5)
	e.Store().Apply(document.Add{E: wall})
	e.Store().Apply(document.Add{E: door})
	e.SelectOnly(wall.Ref())

	e.DeleteSelection()
	f := e.Store().Floor()
	if len(f.Walls) != 0 || len(f.Doors) != 0 {
		t.Fatalf("walls=%d doors=%d after delete, want 0/0 (cascade)", len(f.Walls), len(f.Doors))
	}
	if len(e.Selection()) != 0 {
		t.Error("selection must clear after delete")
	}

	e.Store().Undo()
	f = e.Store().Floor()
	if len(f.Walls) != 1 || len(f.Doors) != 1 {
		t.Fatalf("walls=%d doors=%d after undo, want 1/1", len(f.Walls), len(f.Doors))
	}
}

func TestTextAndFurniturePlacement(t *testing.T) {
	e := newTestEngine()
	e.SetTool(ToolText)
	e.PendingText = "pantry"
	click(e, geom.Pt(203, 117))

	f := e.Store().Floor()
	if len(f.Texts) != 1 || f.Texts[0].Text != "pantry" {
		t.Fatalf("texts = %+v, want one note reading pantry", f.Texts)
	}
	if f.Texts[0].Position != geom.Pt(200, 120) {
		t.Errorf("position = %v, want grid-snapped (200,120)", f.Texts[0].Position)
	}

	e.SetTool(ToolFurniture)
	click(e, geom.Pt(400, 400))
	f = e.Store().Floor()
	if len(f.Furniture) != 1 || f.Furniture[0].Width != 120 {
		t.Fatalf("furniture = %+v, want the default table", f.Furniture)
	}
}

func TestFeedbackTracksDraft(t *testing.T) {
	e := newTestEngine()
	e.SetTool(ToolWall)

	press(e, geom.Pt(0, 0), Modifiers{})
	moveTo(e, geom.Pt(97, 2))

	fb := e.Feedback()
	if fb.Phase != PhaseDraw || !fb.HasDraft {
		t.Fatalf("feedback = %+v, want an active draw draft", fb)
	}
	if geom.Dist(fb.Preview, geom.Pt(100, 0)) > 1e-9 {
		t.Errorf("preview = %v, want the resolved (100,0)", fb.Preview)
	}
	if fb.Snap.Kind != SnapGrid {
		t.Errorf("snap kind = %v, want Grid", fb.Snap.Kind)
	}

	release(e, geom.Pt(97, 2))
	if fb := e.Feedback(); fb.Phase != PhaseIdle {
		t.Errorf("phase = %v, want Idle after commit", fb.Phase)
	}
}
