package draft

import (
	"github.com/OpenPlanLab/OpenPlanCAD/pkg/geom"
	"github.com/OpenPlanLab/OpenPlanCAD/pkg/plan"
)

// Selection is the ordered set of picked entities. Order is pick order.
// It references the scene and is never persisted with the document.
type Selection struct {
	refs []plan.Ref
}

func (s *Selection) Len() int { return len(s.refs) }

func (s *Selection) Empty() bool { return len(s.refs) == 0 }

// Refs returns a copy of the selected references in pick order.
func (s *Selection) Refs() []plan.Ref {
	return append([]plan.Ref(nil), s.refs...)
}

func (s *Selection) Contains(ref plan.Ref) bool {
	for _, r := range s.refs {
		if r == ref {
			return true
		}
	}
	return false
}

// Set replaces the selection with a single entity.
func (s *Selection) Set(ref plan.Ref) {
	s.refs = []plan.Ref{ref}
}

// Toggle adds the entity, or removes it if already selected. Used for
// shift-click additive selection.
func (s *Selection) Toggle(ref plan.Ref) {
	for i, r := range s.refs {
		if r == ref {
			s.refs = append(s.refs[:i], s.refs[i+1:]...)
			return
		}
	}
	s.refs = append(s.refs, ref)
}

func (s *Selection) Clear() { s.refs = nil }

// Drop removes a reference without touching the rest of the selection.
func (s *Selection) Drop(ref plan.Ref) {
	for i, r := range s.refs {
		if r == ref {
			s.refs = append(s.refs[:i], s.refs[i+1:]...)
			return
		}
	}
}

// Grip is one editable hotspot on a selected entity.
type Grip struct {
	Target plan.Ref
	Kind   gripKind
	Index  int
	Point  geom.Point
}

// gripSet holds a selection's hotspots grouped by picking priority:
// dimension offset diamonds beat endpoints, endpoints beat polygon
// vertices.
type gripSet struct {
	offsets   []Grip
	endpoints []Grip
	vertices  []Grip
}

// collectGrips gathers the hotspots of every selected entity.
func collectGrips(f *plan.Floor, sel []plan.Ref) gripSet {
	var gs gripSet
	for _, ref := range sel {
		e, ok := f.Entity(ref)
		if !ok {
			continue
		}
		if d, ok := e.(plan.Dimension); ok {
			gs.offsets = append(gs.offsets, Grip{Target: ref, Kind: gripOffset, Index: -1, Point: d.OffsetHandle()})
		}
		pts := e.EditablePoints()
		class := &gs.vertices
		if len(pts) == 2 {
			class = &gs.endpoints
		}
		for i, p := range pts {
			*class = append(*class, Grip{Target: ref, Kind: gripVertex, Index: i, Point: p})
		}
	}
	return gs
}

// all returns every grip, priority classes first, for rendering.
func (gs gripSet) all() []Grip {
	out := make([]Grip, 0, len(gs.offsets)+len(gs.endpoints)+len(gs.vertices))
	out = append(out, gs.offsets...)
	out = append(out, gs.endpoints...)
	out = append(out, gs.vertices...)
	return out
}

// pick returns the closest grip within radius, searching each priority
// class in turn and stopping at the first class with a hit.
func (gs gripSet) pick(p geom.Point, radius float64) (Grip, bool) {
	for _, class := range [][]Grip{gs.offsets, gs.endpoints, gs.vertices} {
		var win Grip
		found := false
		best := radius
		for _, g := range class {
			d := geom.Dist(p, g.Point)
			if d <= best {
				best = d
				win = g
				found = true
			}
		}
		if found {
			return win, true
		}
	}
	return Grip{}, false
}
