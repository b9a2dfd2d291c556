package draft

import (
	"testing"

	"gonum.org/v1/gonum/floats/scalar"

	"github.com/OpenPlanLab/OpenPlanCAD/pkg/geom"
)

func TestScreenWorldRoundTrip(t *testing.T) {
	c := NewCamera(800, 600)
	c.CenterX, c.CenterY = 123.4, -55.2
	c.Zoom = 2.5
	points := []geom.Point{geom.Pt(0, 0), geom.Pt(100, 50), geom.Pt(-321.5, 77.25)}
	for _, p := range points {
		sx, sy := c.WorldToScreen(p)
		if back := c.ScreenToWorld(sx, sy); geom.Dist(back, p) > 1e-9 {
			t.Errorf("ScreenToWorld(WorldToScreen(%v)) = %v", p, back)
		}
	}
}

func TestScreenToWorldAtCenter(t *testing.T) {
	c := NewCamera(800, 600)
	c.CenterX, c.CenterY = 40, 30
	c.Zoom = 4
	if got := c.ScreenToWorld(400, 300); geom.Dist(got, geom.Pt(40, 30)) > 1e-9 {
		t.Fatalf("screen center maps to %v, want (40,30)", got)
	}
}

func TestZoomAtKeepsCursorStationary(t *testing.T) {
	c := NewCamera(800, 600)
	c.CenterX, c.CenterY = 40, 30
	before := c.ScreenToWorld(620, 130)
	c.ZoomAt(620, 130, 1.8)
	after := c.ScreenToWorld(620, 130)
	if geom.Dist(before, after) > 1e-9 {
		t.Fatalf("world point under cursor moved from %v to %v", before, after)
	}
}

func TestZoomAtClamps(t *testing.T) {
	c := NewCamera(800, 600)
	c.ZoomAt(400, 300, 1e9)
	if c.Zoom != maxZoom {
		t.Errorf("Zoom = %v, want %v", c.Zoom, maxZoom)
	}
	c.ZoomAt(400, 300, 1e-12)
	if c.Zoom != minZoom {
		t.Errorf("Zoom = %v, want %v", c.Zoom, minZoom)
	}
}

func TestPanMovesCenterInWorldUnits(t *testing.T) {
	c := NewCamera(800, 600)
	c.Zoom = 2
	c.Pan(100, -50)
	if !scalar.EqualWithinAbs(c.CenterX, -50, 1e-9) || !scalar.EqualWithinAbs(c.CenterY, 25, 1e-9) {
		t.Fatalf("center = (%v, %v), want (-50, 25)", c.CenterX, c.CenterY)
	}
}

func TestFitCentersAndPads(t *testing.T) {
	c := NewCamera(800, 600)
	c.Fit(geom.Rect{MinX: 0, MinY: 0, MaxX: 400, MaxY: 300})
	if !scalar.EqualWithinAbs(c.CenterX, 200, 1e-9) || !scalar.EqualWithinAbs(c.CenterY, 150, 1e-9) {
		t.Fatalf("center = (%v, %v), want (200, 150)", c.CenterX, c.CenterY)
	}
	if !scalar.EqualWithinAbs(c.Zoom, 1.8, 1e-9) {
		t.Errorf("Zoom = %v, want 1.8", c.Zoom)
	}
}

func TestFitDegenerateBoundsKeepsZoom(t *testing.T) {
	c := NewCamera(800, 600)
	c.Zoom = 3
	c.Fit(geom.Rect{MinX: 10, MinY: 20, MaxX: 10, MaxY: 20})
	if c.Zoom != 3 {
		t.Errorf("Zoom = %v, want unchanged 3", c.Zoom)
	}
	if c.CenterX != 10 || c.CenterY != 20 {
		t.Errorf("center = (%v, %v), want (10, 20)", c.CenterX, c.CenterY)
	}
}

func TestFitZeroHeightUsesWidth(t *testing.T) {
	c := NewCamera(800, 600)
	c.Fit(geom.Rect{MinX: 0, MinY: 50, MaxX: 7200, MaxY: 50})
	if !scalar.EqualWithinAbs(c.Zoom, 0.1, 1e-9) {
		t.Errorf("Zoom = %v, want 0.1", c.Zoom)
	}
}

func TestVisibleBounds(t *testing.T) {
	c := NewCamera(800, 600)
	c.CenterX, c.CenterY = 100, 100
	c.Zoom = 2
	b := c.VisibleBounds()
	want := geom.Rect{MinX: -100, MinY: -50, MaxX: 300, MaxY: 250}
	if b != want {
		t.Fatalf("VisibleBounds = %+v, want %+v", b, want)
	}
}
