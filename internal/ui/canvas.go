package ui

import (
	"math"
	"time"

	"gioui.org/f32"
	"gioui.org/font/gofont"
	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"

	"github.com/OpenPlanLab/OpenPlanCAD/pkg/draft"
	"github.com/OpenPlanLab/OpenPlanCAD/pkg/plan"
)

// Press pairs closer than both thresholds count as a double click.
const (
	doubleClickWindow = 350 * time.Millisecond
	doubleClickSlop   = 5.0
)

// Canvas routes pointer input to the drafting engine and paints the
// floor plus the engine's transient feedback. The right button pans and
// the wheel zooms; everything else belongs to the active tool.
type Canvas struct {
	engine *draft.Engine
	shaper *text.Shaper

	tag struct{}

	panning   bool
	lastPan   f32.Point
	lastClick time.Time
	clickAt   f32.Point
}

func NewCanvas(engine *draft.Engine) *Canvas {
	return &Canvas{
		engine: engine,
		shaper: text.NewShaper(text.WithCollection(gofont.Collection())),
	}
}

func (c *Canvas) Layout(gtx layout.Context) layout.Dimensions {
	maxSize := gtx.Constraints.Max
	cam := c.engine.Camera()
	cam.UpdateScreenSize(maxSize.X, maxSize.Y)

	c.handlePointer(gtx)

	paint.FillShape(gtx.Ops, colorPaper, clip.Rect{Max: maxSize}.Op())
	drawGrid(gtx, cam, c.engine.Config().GridSize)

	floor := c.engine.Store().Floor()
	selected := make(map[plan.Ref]bool)
	for _, r := range c.engine.Selection() {
		selected[r] = true
	}
	drawFloor(gtx, cam, c.shaper, &floor, c.engine.Config(), selected)
	drawFeedback(gtx, cam, c.engine.Feedback())

	// Input layer on top for event routing.
	area := clip.Rect{Max: maxSize}.Push(gtx.Ops)
	event.Op(gtx.Ops, &c.tag)
	area.Pop()

	return layout.Dimensions{Size: maxSize}
}

func (c *Canvas) handlePointer(gtx layout.Context) {
	cam := c.engine.Camera()
	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target:  &c.tag,
			Kinds:   pointer.Press | pointer.Release | pointer.Drag | pointer.Move | pointer.Scroll,
			ScrollX: pointer.ScrollRange{Min: -240, Max: 240},
			ScrollY: pointer.ScrollRange{Min: -240, Max: 240},
		})
		if !ok {
			break
		}

		pev, ok := ev.(pointer.Event)
		if !ok {
			continue
		}
		x := float64(pev.Position.X)
		y := float64(pev.Position.Y)

		switch pev.Kind {
		case pointer.Press:
			if pev.Buttons == pointer.ButtonPrimary {
				if gtx.Now.Sub(c.lastClick) < doubleClickWindow && clickDist(pev.Position, c.clickAt) < doubleClickSlop {
					c.engine.DoubleClick(x, y)
					c.lastClick = time.Time{}
				} else {
					mods := draft.Modifiers{Shift: pev.Modifiers.Contain(key.ModShift)}
					c.engine.PointerDown(x, y, mods)
					c.lastClick = gtx.Now
					c.clickAt = pev.Position
				}
			} else if pev.Buttons == pointer.ButtonSecondary {
				c.panning = true
				c.lastPan = pev.Position
			}

		case pointer.Drag:
			if c.panning && pev.Buttons&pointer.ButtonSecondary != 0 {
				cam.Pan(float64(pev.Position.X-c.lastPan.X), float64(pev.Position.Y-c.lastPan.Y))
				c.lastPan = pev.Position
			} else {
				c.engine.PointerMove(x, y)
			}

		case pointer.Move:
			c.engine.PointerMove(x, y)

		case pointer.Release:
			if c.panning {
				c.panning = false
			} else {
				c.engine.PointerUp(x, y)
			}

		case pointer.Scroll:
			// Wheel notches arrive as pixel deltas, roughly 120 per step.
			factor := math.Pow(1.1, -float64(pev.Scroll.Y)/60.0)
			cam.ZoomAt(x, y, factor)
		}

		gtx.Execute(op.InvalidateCmd{})
	}
}

func clickDist(a, b f32.Point) float64 {
	return math.Hypot(float64(a.X-b.X), float64(a.Y-b.Y))
}
