package ui

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"gioui.org/f32"
	"gioui.org/font"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget"

	"github.com/OpenPlanLab/OpenPlanCAD/pkg/draft"
	"github.com/OpenPlanLab/OpenPlanCAD/pkg/geom"
	"github.com/OpenPlanLab/OpenPlanCAD/pkg/plan"
	"github.com/OpenPlanLab/OpenPlanCAD/pkg/units"
)

// Stroke widths below are screen pixels; wall thickness is the one width
// that scales with zoom.
const (
	hairline    = 1.0
	entityLine  = 1.5
	gripSize    = 7.0
	snapMarker  = 5.0
	minTextSize = 8.0
	maxTextSize = 50.0
)

func strokeLine(gtx layout.Context, x1, y1, x2, y2, width float64, col color.NRGBA) {
	if width < 1.0 {
		width = 1.0
	}
	var path clip.Path
	path.Begin(gtx.Ops)
	path.MoveTo(f32.Pt(float32(x1), float32(y1)))
	path.LineTo(f32.Pt(float32(x2), float32(y2)))
	paint.FillShape(gtx.Ops, col, clip.Stroke{
		Path:  path.End(),
		Width: float32(width),
	}.Op())
}

func worldLine(gtx layout.Context, cam *draft.Camera, a, b geom.Point, width float64, col color.NRGBA) {
	x1, y1 := cam.WorldToScreen(a)
	x2, y2 := cam.WorldToScreen(b)
	strokeLine(gtx, x1, y1, x2, y2, width, col)
}

func worldPath(gtx layout.Context, cam *draft.Camera, pts []geom.Point, closed bool) clip.PathSpec {
	var path clip.Path
	path.Begin(gtx.Ops)
	for i, p := range pts {
		x, y := cam.WorldToScreen(p)
		if i == 0 {
			path.MoveTo(f32.Pt(float32(x), float32(y)))
		} else {
			path.LineTo(f32.Pt(float32(x), float32(y)))
		}
	}
	if closed {
		path.Close()
	}
	return path.End()
}

func strokeWorldPoly(gtx layout.Context, cam *draft.Camera, pts []geom.Point, closed bool, width float64, col color.NRGBA) {
	if len(pts) < 2 {
		return
	}
	if width < 1.0 {
		width = 1.0
	}
	paint.FillShape(gtx.Ops, col, clip.Stroke{
		Path:  worldPath(gtx, cam, pts, closed),
		Width: float32(width),
	}.Op())
}

func fillWorldPoly(gtx layout.Context, cam *draft.Camera, pts []geom.Point, col color.NRGBA) {
	if len(pts) < 3 {
		return
	}
	paint.FillShape(gtx.Ops, col, clip.Outline{
		Path: worldPath(gtx, cam, pts, true),
	}.Op())
}

func fillCircle(gtx layout.Context, x, y, radius float64, col color.NRGBA) {
	r := int(radius)
	if r < 1 {
		r = 1
	}
	stack := op.Affine(f32.Affine2D{}.Offset(f32.Pt(float32(x), float32(y)))).Push(gtx.Ops)
	defer stack.Pop()
	paint.FillShape(gtx.Ops, col, clip.Ellipse(image.Rectangle{
		Min: image.Pt(-r, -r),
		Max: image.Pt(r, r),
	}).Op(gtx.Ops))
}

// worldArc strokes a circular arc. The sweep is signed, following the
// same screen-space angle convention the geometry uses.
func worldArc(gtx layout.Context, cam *draft.Camera, center geom.Point, radius, start, sweep, width float64, col color.NRGBA) {
	if width < 1.0 {
		width = 1.0
	}
	sx, sy := cam.WorldToScreen(geom.PointAtAngle(center, start, radius))
	cx, cy := cam.WorldToScreen(center)
	focus := f32.Pt(float32(cx), float32(cy))
	var path clip.Path
	path.Begin(gtx.Ops)
	path.MoveTo(f32.Pt(float32(sx), float32(sy)))
	path.ArcTo(focus, focus, float32(sweep))
	paint.FillShape(gtx.Ops, col, clip.Stroke{
		Path:  path.End(),
		Width: float32(width),
	}.Op())
}

// drawLabel paints a single line of text at a screen position. Size is in
// pixels; labels below the legibility floor are skipped entirely, the way
// tiny board text is.
func drawLabel(gtx layout.Context, shaper *text.Shaper, x, y, size float64, col color.NRGBA, s string, centered bool) {
	if s == "" || size < minTextSize {
		return
	}
	if size > maxTextSize {
		size = maxTextSize
	}
	if centered {
		x -= float64(len(s)) * size * 0.27
		y -= size * 0.6
	}
	macro := op.Record(gtx.Ops)
	stack := op.Affine(f32.Affine2D{}.Offset(f32.Pt(float32(x), float32(y)))).Push(gtx.Ops)
	paint.ColorOp{Color: col}.Add(gtx.Ops)
	label := widget.Label{
		Alignment: text.Start,
		MaxLines:  1,
	}
	label.Layout(gtx, shaper, font.Font{}, unit.Sp(size), s, op.CallOp{})
	stack.Pop()
	call := macro.Stop()
	call.Add(gtx.Ops)
}

// drawGrid paints minor lines at the grid spacing and heavier lines every
// fifth. When zoomed far out the minors collapse below readable spacing
// and only majors survive; below that the grid disappears.
func drawGrid(gtx layout.Context, cam *draft.Camera, size float64) {
	if size <= 0 {
		return
	}
	step := size * cam.Zoom
	minorsVisible := step >= 5
	if step*5 < 5 {
		return
	}
	b := cam.VisibleBounds()
	w := float64(cam.ScreenWidth)
	h := float64(cam.ScreenHeight)

	for x := math.Floor(b.MinX/size) * size; x <= b.MaxX; x += size {
		i := int(math.Round(x / size))
		major := i%5 == 0
		if !major && !minorsVisible {
			continue
		}
		col := colorGridMinor
		if major {
			col = colorGridMajor
		}
		sx, _ := cam.WorldToScreen(geom.Pt(x, 0))
		strokeLine(gtx, sx, 0, sx, h, hairline, col)
	}
	for y := math.Floor(b.MinY/size) * size; y <= b.MaxY; y += size {
		i := int(math.Round(y / size))
		major := i%5 == 0
		if !major && !minorsVisible {
			continue
		}
		col := colorGridMinor
		if major {
			col = colorGridMajor
		}
		_, sy := cam.WorldToScreen(geom.Pt(0, y))
		strokeLine(gtx, 0, sy, w, sy, hairline, col)
	}

	// Origin axes on top of the grid.
	ox, oy := cam.WorldToScreen(geom.Pt(0, 0))
	strokeLine(gtx, ox, 0, ox, h, hairline, colorAxis)
	strokeLine(gtx, 0, oy, w, oy, hairline, colorAxis)
}

// drawFloor renders every visible layer back to front: area fills first,
// then structure, then annotation ink.
func drawFloor(gtx layout.Context, cam *draft.Camera, shaper *text.Shaper, f *plan.Floor, cfg draft.Config, selected map[plan.Ref]bool) {
	visible := func(k plan.Kind) bool { return cfg.Layers.IsVisible(k) }

	if visible(plan.KindRoom) {
		for _, r := range f.Rooms {
			drawRoom(gtx, cam, shaper, r, selected[r.Ref()])
		}
	}
	if visible(plan.KindRoof) {
		for _, r := range f.Roofs {
			drawRoof(gtx, cam, r, selected[r.Ref()])
		}
	}
	if visible(plan.KindHatch) {
		for _, h := range f.Hatches {
			drawHatch(gtx, cam, h, selected[h.Ref()])
		}
	}
	if visible(plan.KindWall) {
		for _, w := range f.Walls {
			drawWall(gtx, cam, w, selected[w.Ref()])
		}
		for _, a := range f.Fillets {
			drawFilletArc(gtx, cam, a, selected[a.Ref()])
		}
	}
	if visible(plan.KindDoor) {
		for _, o := range f.Doors {
			if w, ok := f.FindWall(o.WallID); ok {
				drawDoor(gtx, cam, w, o, selected[o.Ref()])
			}
		}
	}
	if visible(plan.KindWindow) {
		for _, o := range f.Windows {
			if w, ok := f.FindWall(o.WallID); ok {
				drawWindow(gtx, cam, w, o, selected[o.Ref()])
			}
		}
	}
	if visible(plan.KindLine) {
		for _, l := range f.Lines {
			col := colorLine
			if selected[l.Ref()] {
				col = colorSelection
			}
			worldLine(gtx, cam, l.Start, l.End, entityLine, col)
		}
	}
	if visible(plan.KindPolyline) {
		for _, pl := range f.Polylines {
			col := colorLine
			if selected[pl.Ref()] {
				col = colorSelection
			}
			strokeWorldPoly(gtx, cam, pl.Points, pl.Closed, entityLine, col)
		}
	}
	if visible(plan.KindFurniture) {
		for _, fu := range f.Furniture {
			drawFurniture(gtx, cam, shaper, fu, selected[fu.Ref()])
		}
	}
	if visible(plan.KindDimension) {
		for _, d := range f.Dimensions {
			drawDimension(gtx, cam, shaper, d, selected[d.Ref()])
		}
	}
	if visible(plan.KindText) {
		for _, n := range f.Texts {
			col := colorText
			if selected[n.Ref()] {
				col = colorSelection
			}
			x, y := cam.WorldToScreen(n.Position)
			drawLabel(gtx, shaper, x, y, n.Size*cam.Zoom, col, n.Text, false)
		}
	}
}

func drawWall(gtx layout.Context, cam *draft.Camera, w plan.Wall, sel bool) {
	thickness := w.Type.Thickness() * cam.Zoom
	if sel {
		worldLine(gtx, cam, w.Start, w.End, thickness+6, alpha(colorSelection, 110))
	}
	worldLine(gtx, cam, w.Start, w.End, thickness, wallColor(w.Type))
}

func drawFilletArc(gtx layout.Context, cam *draft.Camera, a plan.FilletArc, sel bool) {
	sweep := geom.NormalizeAngle(a.EndAngle - a.StartAngle)
	width := plan.WallInterior.Thickness() * cam.Zoom
	if sel {
		worldArc(gtx, cam, a.Center, a.Radius, a.StartAngle, sweep, width+6, alpha(colorSelection, 110))
	}
	worldArc(gtx, cam, a.Center, a.Radius, a.StartAngle, sweep, width, colorWallInterior)
}

// drawDoor masks the wall gap, then draws the leaf and its quarter-circle
// swing from the hinge side. Flipped mirrors the swing across the wall.
func drawDoor(gtx layout.Context, cam *draft.Camera, w plan.Wall, o plan.Opening, sel bool) {
	angle := w.Angle()
	center := o.CenterOn(w)
	half := o.Width / 2
	hinge := geom.PointAtAngle(center, angle, -half)
	latch := geom.PointAtAngle(center, angle, half)

	worldLine(gtx, cam, hinge, latch, w.Type.Thickness()*cam.Zoom+2, colorPaper)

	normal := angle - math.Pi/2
	swing := math.Pi / 2
	if o.Flipped {
		normal = angle + math.Pi/2
		swing = -math.Pi / 2
	}
	leafTip := geom.PointAtAngle(hinge, normal, o.Width)
	col := colorDoor
	if sel {
		col = colorSelection
	}
	worldLine(gtx, cam, hinge, leafTip, entityLine, col)
	worldArc(gtx, cam, hinge, o.Width, normal, swing, hairline, alpha(col, 180))
}

// drawWindow masks the gap and draws the frame rectangle with a center
// line along the glazing.
func drawWindow(gtx layout.Context, cam *draft.Camera, w plan.Wall, o plan.Opening, sel bool) {
	angle := w.Angle()
	center := o.CenterOn(w)
	half := o.Width / 2
	a := geom.PointAtAngle(center, angle, -half)
	b := geom.PointAtAngle(center, angle, half)

	thickness := w.Type.Thickness()
	worldLine(gtx, cam, a, b, thickness*cam.Zoom+2, colorPaper)

	col := colorWindow
	if sel {
		col = colorSelection
	}
	depth := thickness / 2
	normal := angle + math.Pi/2
	corners := []geom.Point{
		geom.PointAtAngle(a, normal, -depth),
		geom.PointAtAngle(b, normal, -depth),
		geom.PointAtAngle(b, normal, depth),
		geom.PointAtAngle(a, normal, depth),
	}
	strokeWorldPoly(gtx, cam, corners, true, hairline, col)
	worldLine(gtx, cam, a, b, hairline, col)
}

func drawRoom(gtx layout.Context, cam *draft.Camera, shaper *text.Shaper, r plan.Room, sel bool) {
	fillWorldPoly(gtx, cam, r.Points, colorRoomFill)
	edge := colorRoomEdge
	if sel {
		edge = colorSelection
	}
	strokeWorldPoly(gtx, cam, r.Points, true, entityLine, edge)

	cx, cy := cam.WorldToScreen(r.Centroid())
	label := r.Name
	area := fmt.Sprintf("%.0f sq ft", r.Area()/(units.PerFoot*units.PerFoot))
	if label == "" {
		label = area
	} else {
		label = label + "  " + area
	}
	drawLabel(gtx, shaper, cx, cy, 12*cam.Zoom, colorRoomEdge, label, true)
}

func drawRoof(gtx layout.Context, cam *draft.Camera, r plan.Roof, sel bool) {
	fillWorldPoly(gtx, cam, r.Points, colorRoofFill)
	edge := colorRoofEdge
	if sel {
		edge = colorSelection
	}
	strokeWorldPoly(gtx, cam, r.Points, true, entityLine, edge)
	// Ridge hint: diagonals from each vertex toward the centroid.
	c := geom.PolygonCentroid(r.Points)
	for _, p := range r.Points {
		worldLine(gtx, cam, p, c, hairline, alpha(edge, 120))
	}
}

// drawHatch clips the pattern strokes to the polygon outline so the fill
// lines stop exactly at the boundary.
func drawHatch(gtx layout.Context, cam *draft.Camera, h plan.Hatch, sel bool) {
	if len(h.Points) < 3 {
		return
	}
	fillWorldPoly(gtx, cam, h.Points, alpha(colorHatch, 30))

	clipStack := clip.Outline{Path: worldPath(gtx, cam, h.Points, true)}.Op().Push(gtx.Ops)
	b := geom.RectAround(h.Points...)
	spacing := 16.0
	span := b.Width() + b.Height()
	for d := 0.0; d <= span; d += spacing {
		worldLine(gtx, cam,
			geom.Pt(b.MinX+d, b.MinY),
			geom.Pt(b.MinX, b.MinY+d),
			hairline, colorHatch)
		if h.Pattern == plan.HatchCross {
			worldLine(gtx, cam,
				geom.Pt(b.MaxX-d, b.MinY),
				geom.Pt(b.MaxX, b.MinY+d),
				hairline, colorHatch)
		}
	}
	clipStack.Pop()

	edge := colorHatch
	if sel {
		edge = colorSelection
	}
	strokeWorldPoly(gtx, cam, h.Points, true, hairline, edge)
}

// drawDimension renders extension lines, the offset measurement line with
// slash ticks, and the formatted length above the handle.
func drawDimension(gtx layout.Context, cam *draft.Camera, shaper *text.Shaper, d plan.Dimension, sel bool) {
	col := colorDimension
	if sel {
		col = colorSelection
	}
	dir := d.End.Sub(d.Start)
	length := dir.Len()
	if length == 0 {
		return
	}
	nx := -dir.Y / length
	ny := dir.X / length
	offA := geom.Pt(d.Start.X+nx*d.Offset, d.Start.Y+ny*d.Offset)
	offB := geom.Pt(d.End.X+nx*d.Offset, d.End.Y+ny*d.Offset)

	worldLine(gtx, cam, d.Start, offA, hairline, alpha(col, 150))
	worldLine(gtx, cam, d.End, offB, hairline, alpha(col, 150))
	worldLine(gtx, cam, offA, offB, hairline, col)

	// Slash ticks at 45 degrees to the measurement line, fixed on screen.
	tick := 5.0 / cam.Zoom
	tickAngle := math.Atan2(dir.Y, dir.X) + math.Pi/4
	for _, p := range []geom.Point{offA, offB} {
		worldLine(gtx, cam,
			geom.PointAtAngle(p, tickAngle, -tick),
			geom.PointAtAngle(p, tickAngle, tick),
			hairline, col)
	}

	hx, hy := cam.WorldToScreen(d.OffsetHandle())
	drawLabel(gtx, shaper, hx, hy-4, 11, col, units.Format(d.Length()), true)
}

func drawFurniture(gtx layout.Context, cam *draft.Camera, shaper *text.Shaper, fu plan.Furniture, sel bool) {
	col := colorFurniture
	if sel {
		col = colorSelection
	}
	hw, hd := fu.Width/2, fu.Depth/2
	corners := make([]geom.Point, 4)
	for i, c := range []geom.Point{{X: -hw, Y: -hd}, {X: hw, Y: -hd}, {X: hw, Y: hd}, {X: -hw, Y: hd}} {
		r := geom.RotateAround(geom.Pt(fu.Position.X+c.X, fu.Position.Y+c.Y), fu.Position, fu.Rotation)
		corners[i] = r
	}
	strokeWorldPoly(gtx, cam, corners, true, entityLine, col)
	worldLine(gtx, cam, corners[0], corners[2], hairline, alpha(col, 110))

	x, y := cam.WorldToScreen(fu.Position)
	drawLabel(gtx, shaper, x, y, 10*cam.Zoom, col, fu.Name, true)
}

// drawFeedback paints the transient layer: alignment guides, the snap
// marker, the rubber-band draft, and grips on the selection.
func drawFeedback(gtx layout.Context, cam *draft.Camera, fb draft.Feedback) {
	b := cam.VisibleBounds()
	reach := b.Width() + b.Height()
	for _, g := range fb.Snap.Guides {
		col := colorGuide
		if g.SnappedTo {
			col = alpha(colorGuide, 230)
		}
		worldLine(gtx, cam,
			geom.PointAtAngle(g.Through, g.Angle, -reach),
			geom.PointAtAngle(g.Through, g.Angle, reach),
			hairline, col)
	}

	if fb.HasDraft {
		col := colorPreview
		switch fb.Phase {
		case draft.PhasePolygon:
			if len(fb.Draft) > 1 {
				strokeWorldPoly(gtx, cam, fb.Draft, false, entityLine, col)
			}
			if len(fb.Draft) > 0 {
				worldLine(gtx, cam, fb.Draft[len(fb.Draft)-1], fb.Preview, entityLine, col)
			}
			for _, p := range fb.Draft {
				x, y := cam.WorldToScreen(p)
				fillCircle(gtx, x, y, 3, col)
			}
		case draft.PhaseRotate, draft.PhaseRotateRef:
			if len(fb.Draft) > 0 {
				worldLine(gtx, cam, fb.Draft[0], fb.Preview, hairline, col)
				x, y := cam.WorldToScreen(fb.Draft[0])
				fillCircle(gtx, x, y, 3, col)
			}
		default:
			if len(fb.Draft) > 0 {
				worldLine(gtx, cam, fb.Draft[0], fb.Preview, entityLine, col)
			}
		}
	}

	for _, g := range fb.Grips {
		x, y := cam.WorldToScreen(g.Point)
		if g.Index < 0 {
			drawDiamond(gtx, x, y, gripSize, colorGrip, colorGripRim)
		} else {
			drawSquare(gtx, x, y, gripSize, colorGrip, colorGripRim)
		}
	}

	if fb.Snap.Kind != draft.SnapNone && (fb.HasDraft || fb.Tool != draft.ToolSelect) {
		x, y := cam.WorldToScreen(fb.Snap.Point)
		col := snapColor(fb.Snap.Kind)
		fillCircle(gtx, x, y, snapMarker+2, col)
		fillCircle(gtx, x, y, snapMarker-1, colorPaper)
	}
}

func drawSquare(gtx layout.Context, x, y, size float64, fill, rim color.NRGBA) {
	h := int(size / 2)
	r := image.Rectangle{Min: image.Pt(int(x)-h, int(y)-h), Max: image.Pt(int(x)+h, int(y)+h)}
	paint.FillShape(gtx.Ops, rim, clip.Rect(r).Op())
	paint.FillShape(gtx.Ops, fill, clip.Rect(r.Inset(1)).Op())
}

func drawDiamond(gtx layout.Context, x, y, size float64, fill, rim color.NRGBA) {
	h := float32(size/2) + 1
	cx, cy := float32(x), float32(y)
	var path clip.Path
	path.Begin(gtx.Ops)
	path.MoveTo(f32.Pt(cx, cy-h))
	path.LineTo(f32.Pt(cx+h, cy))
	path.LineTo(f32.Pt(cx, cy+h))
	path.LineTo(f32.Pt(cx-h, cy))
	path.Close()
	paint.FillShape(gtx.Ops, rim, clip.Outline{Path: path.End()}.Op())

	h -= 2
	var inner clip.Path
	inner.Begin(gtx.Ops)
	inner.MoveTo(f32.Pt(cx, cy-h))
	inner.LineTo(f32.Pt(cx+h, cy))
	inner.LineTo(f32.Pt(cx, cy+h))
	inner.LineTo(f32.Pt(cx-h, cy))
	inner.Close()
	paint.FillShape(gtx.Ops, fill, clip.Outline{Path: inner.End()}.Op())
}
