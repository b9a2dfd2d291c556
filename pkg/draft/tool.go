package draft

import "fmt"

// Tool identifies the active drafting tool.
type Tool uint8

const (
	ToolSelect Tool = iota
	ToolWall
	ToolLine
	ToolPolyline
	ToolRoom
	ToolRoof
	ToolHatch
	ToolDimension
	ToolDoor
	ToolWindow
	ToolText
	ToolFurniture
	ToolMove
	ToolRotate
	ToolExtend
	ToolTrim
	ToolCorner
	ToolChamfer
	ToolFillet
)

var toolNames = map[Tool]string{
	ToolSelect:    "Select",
	ToolWall:      "Wall",
	ToolLine:      "Line",
	ToolPolyline:  "Polyline",
	ToolRoom:      "Room",
	ToolRoof:      "Roof",
	ToolHatch:     "Hatch",
	ToolDimension: "Dimension",
	ToolDoor:      "Door",
	ToolWindow:    "Window",
	ToolText:      "Text",
	ToolFurniture: "Furniture",
	ToolMove:      "Move",
	ToolRotate:    "Rotate",
	ToolExtend:    "Extend",
	ToolTrim:      "Trim",
	ToolCorner:    "Corner",
	ToolChamfer:   "Chamfer",
	ToolFillet:    "Fillet",
}

func (t Tool) String() string {
	if name, ok := toolNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Tool(%d)", t)
}

// drawsSegments reports whether the tool anchors a start point and
// commits a two-point entity on release.
func (t Tool) drawsSegments() bool {
	switch t {
	case ToolWall, ToolLine, ToolDimension:
		return true
	}
	return false
}

// angleSnaps reports whether the segment being drawn tracks the polar
// angle increment. Dimensions follow the measured geometry instead.
func (t Tool) angleSnaps() bool {
	return t == ToolWall || t == ToolLine
}

// minLength is the shortest segment the tool will commit.
func (t Tool) minLength() float64 {
	if t == ToolLine {
		return 5
	}
	return 10
}

// accumulatesPolygon reports whether the tool collects vertices until an
// explicit close gesture.
func (t Tool) accumulatesPolygon() bool {
	switch t {
	case ToolRoom, ToolRoof, ToolHatch, ToolPolyline:
		return true
	}
	return false
}

// minVertices is the smallest polygon the tool will close.
func (t Tool) minVertices() int {
	if t == ToolRoof {
		return 4
	}
	return 3
}
