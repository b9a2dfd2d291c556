package document

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/OpenPlanLab/OpenPlanCAD/pkg/geom"
	"github.com/OpenPlanLab/OpenPlanCAD/pkg/plan"
)

func TestNewDocument(t *testing.T) {
	d := New("My House")
	if d.Title != "My House" {
		t.Fatalf("Title = %q", d.Title)
	}
	if len(d.Floors) != 1 || d.Floors[0].Name != "Floor 1" {
		t.Fatalf("new document floors = %+v, want one empty ground floor", d.Floors)
	}
	if d.Sheet.Paper != "ARCH D" {
		t.Fatalf("Sheet.Paper = %q, want ARCH D", d.Sheet.Paper)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plan.json")

	d := New("roundtrip")
	f := d.ActiveFloor()
	w := plan.NewWall(geom.Pt(0, 0), geom.Pt(300, 0), plan.WallExterior)
	f.Put(w)
	f.Put(plan.NewDoor(w.ID, 0.4))
	f.Put(plan.NewRoom([]geom.Point{geom.Pt(0, 0), geom.Pt(300, 0), geom.Pt(300, 200), geom.Pt(0, 200)}))
	f.Put(plan.NewTextNote(geom.Pt(150, 100), "Kitchen"))

	if err := Save(path, &d); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	lf := got.ActiveFloor()
	if len(lf.Walls) != 1 || len(lf.Doors) != 1 || len(lf.Rooms) != 1 || len(lf.Texts) != 1 {
		t.Fatalf("loaded floor = walls %d doors %d rooms %d texts %d",
			len(lf.Walls), len(lf.Doors), len(lf.Rooms), len(lf.Texts))
	}
	if lf.Walls[0].End != geom.Pt(300, 0) {
		t.Fatalf("wall end = %v, want (300,0)", lf.Walls[0].End)
	}
	if lf.Doors[0].Position != 0.4 {
		t.Fatalf("door position = %v, want 0.4", lf.Doors[0].Position)
	}
}

// Files written before polygons replaced rectangles carry rooms and
// roofs as {x,y,width,height}; loading must canonicalize them.
func TestLoadLegacyRectangles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "legacy.json")
	raw := `{
		"title": "old file",
		"floors": [{
			"id": "f1", "name": "Floor 1", "level": 0,
			"rooms": [{"id": "r1", "name": "Bedroom", "x": 10, "y": 20, "width": 100, "height": 80}],
			"roofs": [{"id": "rf1", "type": "gable", "pitch": 0.5, "x": 0, "y": 0, "width": 200, "height": 150}]
		}]
	}`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}

	d, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	f := d.ActiveFloor()

	room := f.Rooms[0]
	wantRoom := []geom.Point{geom.Pt(10, 20), geom.Pt(110, 20), geom.Pt(110, 100), geom.Pt(10, 100)}
	if len(room.Points) != 4 {
		t.Fatalf("room points = %d, want 4", len(room.Points))
	}
	for i, p := range wantRoom {
		if room.Points[i] != p {
			t.Fatalf("room corner %d = %v, want %v", i, room.Points[i], p)
		}
	}
	if room.Name != "Bedroom" {
		t.Fatalf("room name = %q", room.Name)
	}

	roof := f.Roofs[0]
	if len(roof.Points) != 4 || roof.Points[2] != geom.Pt(200, 150) {
		t.Fatalf("roof points = %v, want far corner (200,150)", roof.Points)
	}
	if roof.Type != plan.RoofGable || roof.Pitch != 0.5 {
		t.Fatalf("roof meta = %q %v", roof.Type, roof.Pitch)
	}
}

func TestLoadEmptyDocumentNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.json")
	if err := os.WriteFile(path, []byte(`{"title":"bare","active":7}`), 0o644); err != nil {
		t.Fatal(err)
	}
	d, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(d.Floors) != 1 {
		t.Fatalf("floors = %d, want a synthesized ground floor", len(d.Floors))
	}
	if d.Active != 0 {
		t.Fatalf("active = %d, want clamped to 0", d.Active)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("Load of a missing file should fail")
	}
}

func TestWriteSexp(t *testing.T) {
	d := New("export me")
	f := d.ActiveFloor()
	w := plan.NewWall(geom.Pt(0, 0), geom.Pt(120, 0), plan.WallInterior)
	f.Put(w)
	f.Put(plan.NewWindow(w.ID, 0.5))
	f.Put(plan.NewLine(geom.Pt(5, 5), geom.Pt(25, 5)))

	var sb strings.Builder
	if err := WriteSexp(&sb, &d); err != nil {
		t.Fatalf("WriteSexp: %v", err)
	}
	out := sb.String()

	for _, frag := range []string{
		`(plan`,
		`(title "export me")`,
		`(floor (name "Floor 1")`,
		`(wall (id "` + w.ID + `")`,
		`(type "interior")`,
		`(window (id "`,
		`(position 0.5)`,
		`(line (id "`,
	} {
		if !strings.Contains(out, frag) {
			t.Fatalf("export missing %q in:\n%s", frag, out)
		}
	}
	if strings.Count(out, "(") != strings.Count(out, ")") {
		t.Fatalf("unbalanced parens in export:\n%s", out)
	}
}
