package draft

import (
	"math"

	"github.com/OpenPlanLab/OpenPlanCAD/pkg/geom"
)

// Camera represents a viewport onto a floor plan. World coordinates are
// drawing units, screen coordinates are pixels, and the transform is
// translate-then-scale about the screen center so the render side can
// apply the same affine.
type Camera struct {
	// Center position in world coordinates
	CenterX float64
	CenterY float64

	// Zoom level (pixels per unit). Higher values = more zoomed in.
	Zoom float64

	// Screen dimensions (pixels)
	ScreenWidth  int
	ScreenHeight int
}

const (
	minZoom = 0.1
	maxZoom = 100.0
)

// NewCamera creates a camera with default settings.
func NewCamera(screenWidth, screenHeight int) *Camera {
	return &Camera{
		Zoom:         1.0,
		ScreenWidth:  screenWidth,
		ScreenHeight: screenHeight,
	}
}

// WorldToScreen converts world coordinates (units) to screen coordinates
// (pixels).
func (c *Camera) WorldToScreen(p geom.Point) (float64, float64) {
	x := (p.X - c.CenterX) * c.Zoom
	y := (p.Y - c.CenterY) * c.Zoom

	x += float64(c.ScreenWidth) / 2.0
	y += float64(c.ScreenHeight) / 2.0
	return x, y
}

// ScreenToWorld converts screen coordinates (pixels) to world coordinates.
// It is the exact inverse of WorldToScreen; the snap resolver depends on
// that.
func (c *Camera) ScreenToWorld(screenX, screenY float64) geom.Point {
	x := screenX - float64(c.ScreenWidth)/2.0
	y := screenY - float64(c.ScreenHeight)/2.0

	x /= c.Zoom
	y /= c.Zoom

	return geom.Pt(x+c.CenterX, y+c.CenterY)
}

// Pan moves the camera by screen pixel offsets.
func (c *Camera) Pan(deltaX, deltaY float64) {
	c.CenterX -= deltaX / c.Zoom
	c.CenterY -= deltaY / c.Zoom
}

// ZoomAt zooms in/out at a specific screen position.
// factor > 1 zooms in, factor < 1 zooms out.
func (c *Camera) ZoomAt(screenX, screenY, factor float64) {
	// Get world position before zoom
	worldPos := c.ScreenToWorld(screenX, screenY)

	c.Zoom *= factor
	if c.Zoom < minZoom {
		c.Zoom = minZoom
	}
	if c.Zoom > maxZoom {
		c.Zoom = maxZoom
	}

	// Adjust center to keep the point under the cursor stationary
	newWorldPos := c.ScreenToWorld(screenX, screenY)
	c.CenterX += worldPos.X - newWorldPos.X
	c.CenterY += worldPos.Y - newWorldPos.Y
}

// Fit adjusts the camera to fit the given world bounds in view with 10%
// padding. Degenerate bounds center the camera without changing zoom.
func (c *Camera) Fit(b geom.Rect) {
	center := b.Center()
	c.CenterX = center.X
	c.CenterY = center.Y

	width := b.Width()
	height := b.Height()
	if width <= 0 && height <= 0 {
		return
	}

	zoomX := math.Inf(1)
	zoomY := math.Inf(1)
	if width > 0 {
		zoomX = float64(c.ScreenWidth) * 0.9 / width
	}
	if height > 0 {
		zoomY = float64(c.ScreenHeight) * 0.9 / height
	}

	zoom := math.Min(zoomX, zoomY)
	if zoom < minZoom {
		zoom = minZoom
	}
	if zoom > maxZoom {
		zoom = maxZoom
	}
	c.Zoom = zoom
}

// UpdateScreenSize updates the camera when the window is resized.
func (c *Camera) UpdateScreenSize(width, height int) {
	c.ScreenWidth = width
	c.ScreenHeight = height
}

// VisibleBounds returns the bounding box of the visible area in world
// coordinates. Useful for culling off-screen elements and grid drawing.
func (c *Camera) VisibleBounds() geom.Rect {
	topLeft := c.ScreenToWorld(0, 0)
	bottomRight := c.ScreenToWorld(float64(c.ScreenWidth), float64(c.ScreenHeight))
	return geom.Rect{MinX: topLeft.X, MinY: topLeft.Y, MaxX: bottomRight.X, MaxY: bottomRight.Y}
}
