package ui

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/OpenPlanLab/OpenPlanCAD/pkg/draft"
	"github.com/OpenPlanLab/OpenPlanCAD/pkg/plan"
)

// The canvas palette is built once from HSV so related colors stay on the
// same ramp. Paper is warm white like a plotted sheet; walls darken with
// their structural weight.
func hsv(h, s, v float64) color.NRGBA {
	c := colorful.Hsv(h, s, v)
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xFF}
}

func alpha(c color.NRGBA, a uint8) color.NRGBA {
	c.A = a
	return c
}

var (
	colorPaper     = hsv(45, 0.02, 0.99)
	colorGridMinor = hsv(45, 0.02, 0.90)
	colorGridMajor = hsv(45, 0.03, 0.80)
	colorAxis      = hsv(45, 0.04, 0.68)

	colorWallExterior  = hsv(0, 0, 0.15)
	colorWallInterior  = hsv(0, 0, 0.32)
	colorWallPartition = hsv(0, 0, 0.48)

	colorLine     = hsv(0, 0, 0.25)
	colorRoomFill = alpha(hsv(200, 0.30, 0.95), 56)
	colorRoomEdge = hsv(200, 0.45, 0.55)
	colorRoofFill = alpha(hsv(15, 0.38, 0.88), 48)
	colorRoofEdge = hsv(15, 0.55, 0.60)
	colorHatch    = alpha(hsv(260, 0.22, 0.75), 70)

	colorDoor      = hsv(28, 0.72, 0.62)
	colorWindow    = hsv(205, 0.68, 0.70)
	colorDimension = hsv(212, 0.78, 0.62)
	colorText      = hsv(0, 0, 0.20)
	colorFurniture = hsv(130, 0.35, 0.42)

	colorSelection = hsv(28, 0.92, 0.95)
	colorPreview   = alpha(hsv(28, 0.92, 0.85), 210)
	colorGuide     = alpha(hsv(182, 0.80, 0.70), 160)
	colorGrip      = hsv(212, 0.85, 0.92)
	colorGripRim   = hsv(212, 0.85, 0.45)

	colorStatusOK = hsv(130, 0.55, 0.60)
)

func wallColor(t plan.WallType) color.NRGBA {
	switch t {
	case plan.WallExterior:
		return colorWallExterior
	case plan.WallPartition:
		return colorWallPartition
	default:
		return colorWallInterior
	}
}

// snapColor keys the snap marker to what produced the point, so a glance
// tells an endpoint capture from a plain grid round.
func snapColor(k draft.SnapKind) color.NRGBA {
	switch k {
	case draft.SnapEndpoint, draft.SnapMidpoint, draft.SnapCenter:
		return hsv(130, 0.85, 0.78)
	case draft.SnapPerpendicular, draft.SnapNearest:
		return hsv(330, 0.80, 0.88)
	case draft.SnapAlign:
		return colorGuide
	case draft.SnapAngle:
		return hsv(265, 0.70, 0.85)
	case draft.SnapGrid:
		return hsv(212, 0.60, 0.75)
	default:
		return colorSelection
	}
}
