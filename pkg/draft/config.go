package draft

import (
	"github.com/OpenPlanLab/OpenPlanCAD/pkg/plan"
)

// Radii is the single source of truth for capture tolerances, in world
// units. Every snap, grip and search distance the tools use comes from
// this table so desktop and touch stay consistent.
type Radii struct {
	Point     float64 // endpoint/midpoint-class snaps
	Perp      float64 // perpendicular-foot capture
	Nearest   float64 // nearest-point-on-segment capture
	Align     float64 // axis alignment guides
	Grip      float64 // grip hotspots on selected entities
	Close     float64 // polygon auto-close distance to first vertex
	Corner    float64 // wall search for corner/chamfer/fillet
	WallReach float64 // perpendicular distance for opening placement
}

var (
	desktopRadii = Radii{Point: 20, Perp: 15, Nearest: 12, Align: 10, Grip: 12, Close: 15, Corner: 100, WallReach: 30}
	touchRadii   = Radii{Point: 50, Perp: 40, Nearest: 35, Align: 25, Grip: 20, Close: 30, Corner: 150, WallReach: 30}
)

// SnapConfig toggles individual snap categories.
type SnapConfig struct {
	Grid          bool `json:"grid"`
	Endpoint      bool `json:"endpoint"`
	Midpoint      bool `json:"midpoint"`
	Perpendicular bool `json:"perpendicular"`
	Nearest       bool `json:"nearest"`
	Angle         bool `json:"angle"`
}

// Config carries the drafting preferences that shape tool behavior. The
// host owns it; the engine only reads.
type Config struct {
	// GridSize is the grid spacing in world units, 0 disables the grid.
	GridSize float64 `json:"gridSize"`

	// AngleStep is the polar tracking increment in degrees.
	AngleStep float64 `json:"angleStep"`

	// WallType is the default type for newly drawn walls.
	WallType plan.WallType `json:"wallType"`

	// Touch widens every capture radius for coarse pointers.
	Touch bool `json:"touch"`

	Snap SnapConfig `json:"snap"`

	Layers *LayerConfig `json:"-"`
}

// DefaultConfig returns the desktop defaults: a six-inch grid, 45 degree
// polar tracking and every snap category enabled.
func DefaultConfig() Config {
	return Config{
		GridSize:  20,
		AngleStep: 45,
		WallType:  plan.WallInterior,
		Snap: SnapConfig{
			Grid:          true,
			Endpoint:      true,
			Midpoint:      true,
			Perpendicular: true,
			Nearest:       true,
			Angle:         true,
		},
		Layers: NewLayerConfig(),
	}
}

// Radii returns the capture-tolerance table for the current pointer mode.
func (c Config) Radii() Radii {
	if c.Touch {
		return touchRadii
	}
	return desktopRadii
}

// LayerConfig controls which entity layers are visible and which are
// locked against picking. Layers are named by entity kind.
type LayerConfig struct {
	visible map[plan.Kind]bool
	locked  map[plan.Kind]bool
}

// NewLayerConfig creates a layer configuration with all layers visible
// and unlocked.
func NewLayerConfig() *LayerConfig {
	return &LayerConfig{
		visible: make(map[plan.Kind]bool),
		locked:  make(map[plan.Kind]bool),
	}
}

// SetVisible sets the visibility of a specific layer.
func (lc *LayerConfig) SetVisible(kind plan.Kind, visible bool) {
	lc.visible[kind] = visible
}

// IsVisible returns whether a layer is visible (default: true if not set).
func (lc *LayerConfig) IsVisible(kind plan.Kind) bool {
	if lc == nil {
		return true
	}
	if visible, exists := lc.visible[kind]; exists {
		return visible
	}
	return true
}

// SetLocked locks or unlocks a layer. Locked layers render but never hit.
func (lc *LayerConfig) SetLocked(kind plan.Kind, locked bool) {
	lc.locked[kind] = locked
}

// IsLocked returns whether a layer is locked (default: false if not set).
func (lc *LayerConfig) IsLocked(kind plan.Kind) bool {
	if lc == nil {
		return false
	}
	return lc.locked[kind]
}

// Pickable reports whether entities on the layer respond to hit testing.
func (lc *LayerConfig) Pickable(kind plan.Kind) bool {
	return lc.IsVisible(kind) && !lc.IsLocked(kind)
}

// ShowOnly shows only the specified layers, hiding all others.
func (lc *LayerConfig) ShowOnly(kinds ...plan.Kind) {
	for _, k := range plan.HitOrder {
		lc.visible[k] = false
	}
	lc.visible[plan.KindFillet] = false
	for _, k := range kinds {
		lc.visible[k] = true
	}
}

// ShowAll clears every override, returning to all visible.
func (lc *LayerConfig) ShowAll() {
	lc.visible = make(map[plan.Kind]bool)
}
