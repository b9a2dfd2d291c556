package document

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/OpenPlanLab/OpenPlanCAD/pkg/geom"
	"github.com/OpenPlanLab/OpenPlanCAD/pkg/plan"
)

func TestApplyAddAndUndoRedo(t *testing.T) {
	s := NewStore(New("test"))
	w := plan.NewWall(geom.Pt(0, 0), geom.Pt(100, 0), plan.WallInterior)

	s.Apply(Add{E: w})
	if got := len(s.Floor().Walls); got != 1 {
		t.Fatalf("walls after add = %d, want 1", got)
	}

	if !s.CanUndo() {
		t.Fatal("CanUndo should be true after a command")
	}
	if !s.Undo() {
		t.Fatal("Undo failed")
	}
	if got := len(s.Floor().Walls); got != 0 {
		t.Fatalf("walls after undo = %d, want 0", got)
	}

	if !s.Redo() {
		t.Fatal("Redo failed")
	}
	if got := len(s.Floor().Walls); got != 1 {
		t.Fatalf("walls after redo = %d, want 1", got)
	}

	// A new command clears the redo stack.
	s.Apply(Add{E: plan.NewLine(geom.Pt(0, 0), geom.Pt(10, 10))})
	if s.CanRedo() {
		t.Fatal("redo stack must clear on a fresh command")
	}
}

func TestBatchIsOneUndoStep(t *testing.T) {
	s := NewStore(New("test"))
	a := plan.NewWall(geom.Pt(0, 0), geom.Pt(100, 0), plan.WallInterior)
	b := plan.NewWall(geom.Pt(100, 0), geom.Pt(100, 100), plan.WallInterior)

	s.Apply(Batch{Label: "corner", Cmds: []Command{Add{E: a}, Add{E: b}}})
	if got := len(s.Floor().Walls); got != 2 {
		t.Fatalf("walls = %d, want 2", got)
	}
	s.Undo()
	if got := len(s.Floor().Walls); got != 0 {
		t.Fatalf("one undo must revert the whole batch, walls = %d", got)
	}
}

func TestMoveEntitiesGridResnap(t *testing.T) {
	s := NewStore(New("test"))
	w := plan.NewWall(geom.Pt(0, 0), geom.Pt(100, 0), plan.WallInterior)
	s.Apply(Add{E: w})

	s.Apply(MoveEntities{Refs: []plan.Ref{w.Ref()}, DX: 13, DY: 7, Grid: 20})
	f := s.Floor()
	moved, ok := f.FindWall(w.ID)
	if !ok {
		t.Fatal("wall disappeared")
	}
	if moved.Start != geom.Pt(20, 0) || moved.End != geom.Pt(120, 0) {
		t.Fatalf("moved wall = %v-%v, want (20,0)-(120,0)", moved.Start, moved.End)
	}
}

func TestDeleteWallCascades(t *testing.T) {
	s := NewStore(New("test"))
	w := plan.NewWall(geom.Pt(0, 0), geom.Pt(400, 0), plan.WallExterior)
	s.Apply(Batch{Cmds: []Command{Add{E: w}, Add{E: plan.NewDoor(w.ID, 0.5)}}})

	s.Apply(Delete{Ref: w.Ref()})
	f := s.Floor()
	if len(f.Walls) != 0 || len(f.Doors) != 0 {
		t.Fatalf("cascade failed: walls=%d doors=%d", len(f.Walls), len(f.Doors))
	}
}

func TestSplitWall(t *testing.T) {
	s := NewStore(New("test"))
	w := plan.NewWall(geom.Pt(0, 0), geom.Pt(200, 0), plan.WallInterior)
	s.Apply(Add{E: w})

	first := plan.NewWall(geom.Pt(0, 0), geom.Pt(80, 0), w.Type)
	second := plan.NewWall(geom.Pt(80, 0), geom.Pt(200, 0), w.Type)
	s.Apply(SplitWall{ID: w.ID, First: first, Second: second})

	f := s.Floor()
	if len(f.Walls) != 2 {
		t.Fatalf("walls = %d, want 2", len(f.Walls))
	}
	if _, ok := f.FindWall(w.ID); ok {
		t.Fatal("original wall should be gone")
	}
}

func TestFloorIsolation(t *testing.T) {
	s := NewStore(New("test"))
	s.Apply(Add{E: plan.NewWall(geom.Pt(0, 0), geom.Pt(100, 0), plan.WallInterior)})

	f := s.Floor()
	f.Walls[0].End = geom.Pt(-1, -1)
	if s.Floor().Walls[0].End != geom.Pt(100, 0) {
		t.Fatal("Floor() must return an isolated copy")
	}
}

func TestAutosaveWritesDocument(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "autosave.json")

	s := NewStore(New("autosaved"))
	s.SetAutosave(path)
	s.Apply(Add{E: plan.NewWall(geom.Pt(0, 0), geom.Pt(100, 0), plan.WallInterior)})

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("autosave file missing: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(loaded.Floors[0].Walls) != 1 {
		t.Fatalf("loaded walls = %d, want 1", len(loaded.Floors[0].Walls))
	}
}

func TestStoreChangeCallback(t *testing.T) {
	s := NewStore(New("test"))
	fired := 0
	s.OnChange(func() { fired++ })
	s.Apply(Add{E: plan.NewLine(geom.Pt(0, 0), geom.Pt(5, 5))})
	s.Undo()
	if fired != 2 {
		t.Fatalf("onChange fired %d times, want 2", fired)
	}
}

func TestAddFloorAndSwitch(t *testing.T) {
	s := NewStore(New("test"))
	s.AddFloor("Floor 2")
	if s.FloorCount() != 2 || s.ActiveIndex() != 1 {
		t.Fatalf("count=%d active=%d", s.FloorCount(), s.ActiveIndex())
	}
	s.Apply(Add{E: plan.NewWall(geom.Pt(0, 0), geom.Pt(50, 0), plan.WallInterior)})
	s.SetActive(0)
	if got := len(s.Floor().Walls); got != 0 {
		t.Fatalf("ground floor walls = %d, want 0", got)
	}
}
