package draft

import (
	"math"
	"testing"

	"github.com/OpenPlanLab/OpenPlanCAD/pkg/geom"
	"github.com/OpenPlanLab/OpenPlanCAD/pkg/plan"
)

func TestHitDoorBeforeWall(t *testing.T) {
	wall := plan.NewWall(geom.Pt(0, 0), geom.Pt(400, 0), plan.WallInterior)
	door := plan.NewDoor(wall.ID, 0.5)
	f := floorWith(wall, door)
	cfg := DefaultConfig()

	ref, ok := HitTest(&f, cfg, geom.Pt(210, 0))
	if !ok || ref != door.Ref() {
		t.Fatalf("HitTest((210,0)) = %v %v, want the door", ref, ok)
	}

	// Outside the opening capture the wall takes the pick.
	ref, ok = HitTest(&f, cfg, geom.Pt(300, 3))
	if !ok || ref != wall.Ref() {
		t.Fatalf("HitTest((300,3)) = %v %v, want the wall", ref, ok)
	}
}

func TestHitWallToleranceScalesWithThickness(t *testing.T) {
	f := floorWith(plan.NewWall(geom.Pt(0, 0), geom.Pt(200, 0), plan.WallExterior))
	cfg := DefaultConfig()

	if _, ok := HitTest(&f, cfg, geom.Pt(100, 14)); !ok {
		t.Error("14 units from an exterior wall centerline should hit")
	}
	if _, ok := HitTest(&f, cfg, geom.Pt(100, 16)); ok {
		t.Error("16 units from an exterior wall centerline should miss")
	}
}

func TestHitWallBeforeRoom(t *testing.T) {
	pts := []geom.Point{geom.Pt(0, 0), geom.Pt(300, 0), geom.Pt(300, 300), geom.Pt(0, 300)}
	room := plan.NewRoom(pts)
	wall := plan.NewWall(geom.Pt(0, 0), geom.Pt(300, 0), plan.WallInterior)
	f := floorWith(room, wall)
	cfg := DefaultConfig()

	ref, ok := HitTest(&f, cfg, geom.Pt(150, 2))
	if !ok || ref != wall.Ref() {
		t.Fatalf("on the shared edge = %v %v, want the wall", ref, ok)
	}

	ref, ok = HitTest(&f, cfg, geom.Pt(150, 150))
	if !ok || ref != room.Ref() {
		t.Fatalf("room interior = %v %v, want the room", ref, ok)
	}
}

func TestHitRoomBeforeRoof(t *testing.T) {
	pts := []geom.Point{geom.Pt(0, 0), geom.Pt(300, 0), geom.Pt(300, 300), geom.Pt(0, 300)}
	room := plan.NewRoom(pts)
	roof := plan.NewRoof(pts, plan.RoofGable)
	f := floorWith(room, roof)
	cfg := DefaultConfig()

	ref, ok := HitTest(&f, cfg, geom.Pt(150, 150))
	if !ok || ref != room.Ref() {
		t.Fatalf("HitTest = %v %v, want the room above the roof", ref, ok)
	}
}

func TestHitPolygonEdgeFromOutside(t *testing.T) {
	room := plan.NewRoom([]geom.Point{geom.Pt(0, 0), geom.Pt(300, 0), geom.Pt(300, 300), geom.Pt(0, 300)})
	f := floorWith(room)
	cfg := DefaultConfig()

	if _, ok := HitTest(&f, cfg, geom.Pt(150, -8)); !ok {
		t.Error("8 units outside the edge should still pick the room")
	}
	if _, ok := HitTest(&f, cfg, geom.Pt(150, -20)); ok {
		t.Error("20 units outside the edge should miss")
	}
}

func TestHitLineSegmentAndEndpoint(t *testing.T) {
	line := plan.NewLine(geom.Pt(0, 400), geom.Pt(200, 400))
	f := floorWith(line)
	cfg := DefaultConfig()

	if _, ok := HitTest(&f, cfg, geom.Pt(100, 407)); !ok {
		t.Error("7 units off the line body should hit")
	}
	if _, ok := HitTest(&f, cfg, geom.Pt(100, 409)); ok {
		t.Error("9 units off the line body should miss")
	}
	// The endpoint capture is wider than the body capture.
	if _, ok := HitTest(&f, cfg, geom.Pt(210, 405)); !ok {
		t.Error("11 units from the endpoint should hit")
	}
}

func TestHitPolylineEdge(t *testing.T) {
	pl := plan.NewPolyline([]geom.Point{geom.Pt(400, 0), geom.Pt(460, 40), geom.Pt(520, 0)}, false)
	f := floorWith(pl)
	cfg := DefaultConfig()

	ref, ok := HitTest(&f, cfg, geom.Pt(490, 22))
	if !ok || ref != pl.Ref() {
		t.Fatalf("HitTest = %v %v, want the polyline", ref, ok)
	}
}

func TestHitTextRadius(t *testing.T) {
	note := plan.NewTextNote(geom.Pt(500, 500), "kitchen")
	f := floorWith(note)
	cfg := DefaultConfig()

	if _, ok := HitTest(&f, cfg, geom.Pt(510, 510)); !ok {
		t.Error("click near the note position should hit")
	}
	if _, ok := HitTest(&f, cfg, geom.Pt(540, 500)); ok {
		t.Error("click far past the note radius should miss")
	}
}

func TestHitFurnitureRespectsRotation(t *testing.T) {
	item := plan.NewFurniture(geom.Pt(100, 100), "table", 120, 80)
	item.Rotation = math.Pi / 2
	f := floorWith(item)
	cfg := DefaultConfig()

	// (135,155) is outside the unrotated footprint but inside the
	// rotated one.
	if _, ok := HitTest(&f, cfg, geom.Pt(135, 155)); !ok {
		t.Error("rotated footprint should contain (135,155)")
	}
	if _, ok := HitTest(&f, cfg, geom.Pt(170, 100)); ok {
		t.Error("(170,100) is outside the rotated footprint")
	}
}

func TestHitHatchInterior(t *testing.T) {
	h := plan.NewHatch([]geom.Point{geom.Pt(600, 0), geom.Pt(700, 0), geom.Pt(700, 100), geom.Pt(600, 100)}, plan.HatchDiagonal)
	f := floorWith(h)
	cfg := DefaultConfig()

	ref, ok := HitTest(&f, cfg, geom.Pt(650, 50))
	if !ok || ref != h.Ref() {
		t.Fatalf("HitTest = %v %v, want the hatch", ref, ok)
	}
}

func TestHitHonorsVisibilityAndLock(t *testing.T) {
	wall := plan.NewWall(geom.Pt(0, 0), geom.Pt(200, 0), plan.WallInterior)
	f := floorWith(wall)
	cfg := DefaultConfig()

	cfg.Layers.SetVisible(plan.KindWall, false)
	if _, ok := HitTest(&f, cfg, geom.Pt(100, 0)); ok {
		t.Error("hidden layer must not pick")
	}

	cfg.Layers.SetVisible(plan.KindWall, true)
	cfg.Layers.SetLocked(plan.KindWall, true)
	if _, ok := HitTest(&f, cfg, geom.Pt(100, 0)); ok {
		t.Error("locked layer must not pick")
	}

	cfg.Layers.SetLocked(plan.KindWall, false)
	if _, ok := HitTest(&f, cfg, geom.Pt(100, 0)); !ok {
		t.Error("unlocked visible layer should pick again")
	}
}

func TestHitEmptySpace(t *testing.T) {
	f := floorWith(plan.NewWall(geom.Pt(0, 0), geom.Pt(200, 0), plan.WallInterior))
	cfg := DefaultConfig()

	if ref, ok := HitTest(&f, cfg, geom.Pt(1000, 1000)); ok {
		t.Fatalf("empty space returned %v", ref)
	}
}
