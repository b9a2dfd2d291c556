package document

import (
	"fmt"

	"github.com/OpenPlanLab/OpenPlanCAD/pkg/geom"
	"github.com/OpenPlanLab/OpenPlanCAD/pkg/plan"
)

// Command is one atomic rewrite of a floor. The store is the only code
// that runs Apply, always against a fresh clone of its master copy, so
// commands may mutate the floor they receive freely.
type Command interface {
	Name() string
	Apply(f *plan.Floor)
}

// Add inserts a new entity.
type Add struct {
	E plan.Entity
}

func (c Add) Name() string { return fmt.Sprintf("add %s", c.E.Ref().Kind) }

func (c Add) Apply(f *plan.Floor) { f.Put(c.E) }

// Replace rewrites an existing entity wholesale, matched by ID.
type Replace struct {
	E plan.Entity
}

func (c Replace) Name() string { return fmt.Sprintf("edit %s", c.E.Ref().Kind) }

func (c Replace) Apply(f *plan.Floor) { f.Put(c.E) }

// Delete removes the referenced entity; wall deletion cascades to its
// hosted openings.
type Delete struct {
	Ref plan.Ref
}

func (c Delete) Name() string { return fmt.Sprintf("delete %s", c.Ref.Kind) }

func (c Delete) Apply(f *plan.Floor) { f.Remove(c.Ref) }

// MoveEntities displaces every referenced entity by (DX, DY), re-snapping
// each output point to the grid when Grid > 0.
type MoveEntities struct {
	Refs   []plan.Ref
	DX, DY float64
	Grid   float64
}

func (c MoveEntities) Name() string { return fmt.Sprintf("move %d entities", len(c.Refs)) }

func (c MoveEntities) Apply(f *plan.Floor) {
	for _, ref := range c.Refs {
		e, ok := f.Entity(ref)
		if !ok {
			continue
		}
		f.Put(e.Translated(c.DX, c.DY).GridSnapped(c.Grid))
	}
}

// RotateEntities turns every referenced entity about Center by Angle
// radians, re-snapping each output point to the grid when Grid > 0.
type RotateEntities struct {
	Refs   []plan.Ref
	Center geom.Point
	Angle  float64
	Grid   float64
}

func (c RotateEntities) Name() string { return fmt.Sprintf("rotate %d entities", len(c.Refs)) }

func (c RotateEntities) Apply(f *plan.Floor) {
	for _, ref := range c.Refs {
		e, ok := f.Entity(ref)
		if !ok {
			continue
		}
		f.Put(e.RotatedAround(c.Center, c.Angle).GridSnapped(c.Grid))
	}
}

// SetWallEnd moves one endpoint of a wall; trim, extend and corner repair
// are built from it.
type SetWallEnd struct {
	ID      string
	AtStart bool
	P       geom.Point
}

func (c SetWallEnd) Name() string { return "reshape wall" }

func (c SetWallEnd) Apply(f *plan.Floor) {
	w, ok := f.FindWall(c.ID)
	if !ok {
		return
	}
	if c.AtStart {
		w.Start = c.P
	} else {
		w.End = c.P
	}
	f.Put(w)
}

// SplitWall replaces one wall with two covering its former span. Openings
// hosted on the original are removed with it.
type SplitWall struct {
	ID            string
	First, Second plan.Wall
}

func (c SplitWall) Name() string { return "split wall" }

func (c SplitWall) Apply(f *plan.Floor) {
	if _, ok := f.FindWall(c.ID); !ok {
		return
	}
	f.Remove(plan.Ref{Kind: plan.KindWall, ID: c.ID})
	f.Put(c.First)
	f.Put(c.Second)
}

// Batch groups commands into one undo step; corner operators use it to
// rewrite two walls and insert a connecting entity atomically.
type Batch struct {
	Label string
	Cmds  []Command
}

func (c Batch) Name() string {
	if c.Label != "" {
		return c.Label
	}
	return fmt.Sprintf("batch of %d", len(c.Cmds))
}

func (c Batch) Apply(f *plan.Floor) {
	for _, cmd := range c.Cmds {
		cmd.Apply(f)
	}
}
