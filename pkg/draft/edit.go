package draft

import (
	"math"

	"github.com/OpenPlanLab/OpenPlanCAD/pkg/document"
	"github.com/OpenPlanLab/OpenPlanCAD/pkg/geom"
	"github.com/OpenPlanLab/OpenPlanCAD/pkg/plan"
)

// selectDown picks a grip of the current selection first, then falls
// back to entity picking. A press on empty space clears the selection
// unless shift is held.
func (e *Engine) selectDown(w geom.Point, mods Modifiers) {
	f := e.store.Floor()
	if !e.sel.Empty() {
		if g, ok := collectGrips(&f, e.sel.refs).pick(w, e.cfg.Radii().Grip); ok {
			e.state = gripState{
				Target:  g.Target,
				Kind:    g.Kind,
				Index:   g.Index,
				Origin:  g.Point,
				Current: g.Point,
			}
			return
		}
	}
	if ref, ok := HitTest(&f, e.cfg, w); ok {
		if mods.Shift {
			e.sel.Toggle(ref)
		} else if !e.sel.Contains(ref) {
			e.sel.Set(ref)
		}
		e.state = dragState{Start: w, Current: w}
		return
	}
	if !mods.Shift {
		e.sel.Clear()
	}
	e.state = idleState{}
}

// gripMove drags a grip through the resolver. The grip's origin is the
// reference point; a wall endpoint grip additionally arms a colinear
// guide along the far endpoint's direction.
func (e *Engine) gripMove(st gripState, w geom.Point) {
	f := e.store.Floor()
	sa := &SelfAlign{Origin: st.Origin}
	if st.Target.Kind == plan.KindWall && st.Kind == gripVertex {
		if wall, ok := f.FindWall(st.Target.ID); ok {
			far := wall.End
			if st.Index != 0 {
				far = wall.Start
			}
			sa.Colinear = true
			sa.Through = far
			sa.Angle = wall.Angle()
		}
	}
	s := ResolveSnap(&f, e.cfg, SnapRequest{Raw: w, Ref: &st.Origin, SelfAlign: sa})
	st.Current = s.Point
	e.state = st
	e.snap = s
}

// gripUp commits the dragged grip. Without a live snap the final point
// falls back to the grid. Edits that collapse a segment entity under
// its creation minimum are discarded.
func (e *Engine) gripUp(st gripState) {
	e.state = idleState{}
	if st.Current == st.Origin {
		return
	}
	p := st.Current
	if e.snap.Kind == SnapNone {
		p = geom.SnapPointToGrid(p, e.gridSize())
	}
	f := e.store.Floor()
	ent, ok := f.Entity(st.Target)
	if !ok {
		return
	}
	if st.Kind == gripOffset {
		d, ok := ent.(plan.Dimension)
		if !ok {
			return
		}
		d.Offset = d.OffsetFor(p)
		e.apply(document.Replace{E: d})
		return
	}
	moved := ent.WithPoint(st.Index, p)
	if collapsed(moved) {
		return
	}
	e.apply(document.Replace{E: moved})
}

func collapsed(ent plan.Entity) bool {
	switch v := ent.(type) {
	case plan.Wall:
		return v.Length() < ToolWall.minLength()
	case plan.Line:
		return v.Length() < ToolLine.minLength()
	case plan.Dimension:
		return v.Length() < ToolDimension.minLength()
	}
	return false
}

// dragUp commits a body drag as one move command. A press-release
// without real travel is just a click.
func (e *Engine) dragUp(st dragState) {
	e.state = idleState{}
	dx := st.Current.X - st.Start.X
	dy := st.Current.Y - st.Start.Y
	if math.Hypot(dx, dy) < 1 || e.sel.Empty() {
		return
	}
	e.apply(document.MoveEntities{Refs: e.sel.Refs(), DX: dx, DY: dy, Grid: e.gridSize()})
}

// moveDown is the two-click move tool: the first click fixes the base
// point, the second applies the snapped delta to the selection.
func (e *Engine) moveDown(w geom.Point) {
	if e.sel.Empty() {
		return
	}
	f := e.store.Floor()
	switch st := e.state.(type) {
	case moveState:
		s := ResolveSnap(&f, e.cfg, SnapRequest{Raw: w, Ref: &st.Base})
		e.snap = s
		e.state = idleState{}
		dx := s.Point.X - st.Base.X
		dy := s.Point.Y - st.Base.Y
		if dx == 0 && dy == 0 {
			return
		}
		e.apply(document.MoveEntities{Refs: e.sel.Refs(), DX: dx, DY: dy, Grid: e.gridSize()})
	default:
		s := ResolveSnap(&f, e.cfg, SnapRequest{Raw: w})
		e.snap = s
		e.state = moveState{Base: s.Point, Current: s.Point}
	}
}

func (e *Engine) moveMove(st moveState, w geom.Point) {
	f := e.store.Floor()
	s := ResolveSnap(&f, e.cfg, SnapRequest{Raw: w, Ref: &st.Base})
	st.Current = s.Point
	e.state = st
	e.snap = s
}

// rotateDown is the three-click rotate tool: center, reference
// direction, then the click that applies the swept angle.
func (e *Engine) rotateDown(w geom.Point) {
	if e.sel.Empty() {
		return
	}
	switch st := e.state.(type) {
	case rotateRefState:
		if geom.Dist(w, st.Center) < 1 {
			return
		}
		a := w.Sub(st.Center).Angle()
		e.state = rotateState{Center: st.Center, RefAngle: a, Current: a}
	case rotateState:
		angle := geom.NormalizeAngle(w.Sub(st.Center).Angle() - st.RefAngle)
		e.state = idleState{}
		if angle == 0 {
			return
		}
		e.apply(document.RotateEntities{
			Refs:   e.sel.Refs(),
			Center: st.Center,
			Angle:  angle,
			Grid:   e.gridSize(),
		})
	default:
		f := e.store.Floor()
		s := ResolveSnap(&f, e.cfg, SnapRequest{Raw: w})
		e.snap = s
		e.state = rotateRefState{Center: s.Point, Current: s.Point}
	}
}
