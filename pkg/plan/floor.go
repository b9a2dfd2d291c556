package plan

import (
	"github.com/google/uuid"

	"github.com/OpenPlanLab/OpenPlanCAD/pkg/geom"
)

// Floor is one storey's scene: ordered collections of typed entities.
// Editing code treats a Floor as a value; the document store hands out
// copies and applies rewrites against its own master copy.
type Floor struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Level      int         `json:"level"`
	Walls      []Wall      `json:"walls"`
	Doors      []Opening   `json:"doors"`
	Windows    []Opening   `json:"windows"`
	Rooms      []Room      `json:"rooms"`
	Roofs      []Roof      `json:"roofs"`
	Polylines  []Polyline  `json:"polylines"`
	Hatches    []Hatch     `json:"hatches"`
	Dimensions []Dimension `json:"dimensions"`
	Lines      []Line      `json:"lines"`
	Texts      []TextNote  `json:"texts"`
	Furniture  []Furniture `json:"furniture"`
	Fillets    []FilletArc `json:"fillets"`
}

// NewFloor creates an empty named floor.
func NewFloor(name string, level int) Floor {
	return Floor{ID: uuid.NewString(), Name: name, Level: level}
}

// Clone deep-copies the floor, including every vertex slice.
func (f Floor) Clone() Floor {
	c := f
	c.Walls = append([]Wall(nil), f.Walls...)
	c.Doors = append([]Opening(nil), f.Doors...)
	c.Windows = append([]Opening(nil), f.Windows...)
	c.Dimensions = append([]Dimension(nil), f.Dimensions...)
	c.Lines = append([]Line(nil), f.Lines...)
	c.Texts = append([]TextNote(nil), f.Texts...)
	c.Furniture = append([]Furniture(nil), f.Furniture...)
	c.Fillets = append([]FilletArc(nil), f.Fillets...)
	c.Rooms = make([]Room, len(f.Rooms))
	for i, r := range f.Rooms {
		r.Points = clonePoints(r.Points)
		c.Rooms[i] = r
	}
	c.Roofs = make([]Roof, len(f.Roofs))
	for i, r := range f.Roofs {
		r.Points = clonePoints(r.Points)
		c.Roofs[i] = r
	}
	c.Polylines = make([]Polyline, len(f.Polylines))
	for i, p := range f.Polylines {
		p.Points = clonePoints(p.Points)
		c.Polylines[i] = p
	}
	c.Hatches = make([]Hatch, len(f.Hatches))
	for i, h := range f.Hatches {
		h.Points = clonePoints(h.Points)
		c.Hatches[i] = h
	}
	return c
}

// FindWall returns the wall with the given ID.
func (f *Floor) FindWall(id string) (Wall, bool) {
	for _, w := range f.Walls {
		if w.ID == id {
			return w, true
		}
	}
	return Wall{}, false
}

// Entity looks up one entity by reference.
func (f *Floor) Entity(ref Ref) (Entity, bool) {
	switch ref.Kind {
	case KindWall:
		for _, w := range f.Walls {
			if w.ID == ref.ID {
				return w, true
			}
		}
	case KindDoor:
		for _, o := range f.Doors {
			if o.ID == ref.ID {
				return o, true
			}
		}
	case KindWindow:
		for _, o := range f.Windows {
			if o.ID == ref.ID {
				return o, true
			}
		}
	case KindRoom:
		for _, r := range f.Rooms {
			if r.ID == ref.ID {
				return r, true
			}
		}
	case KindRoof:
		for _, r := range f.Roofs {
			if r.ID == ref.ID {
				return r, true
			}
		}
	case KindPolyline:
		for _, p := range f.Polylines {
			if p.ID == ref.ID {
				return p, true
			}
		}
	case KindHatch:
		for _, h := range f.Hatches {
			if h.ID == ref.ID {
				return h, true
			}
		}
	case KindDimension:
		for _, d := range f.Dimensions {
			if d.ID == ref.ID {
				return d, true
			}
		}
	case KindLine:
		for _, l := range f.Lines {
			if l.ID == ref.ID {
				return l, true
			}
		}
	case KindText:
		for _, n := range f.Texts {
			if n.ID == ref.ID {
				return n, true
			}
		}
	case KindFurniture:
		for _, fu := range f.Furniture {
			if fu.ID == ref.ID {
				return fu, true
			}
		}
	case KindFillet:
		for _, a := range f.Fillets {
			if a.ID == ref.ID {
				return a, true
			}
		}
	}
	return nil, false
}

// Put inserts the entity, replacing any existing entity with the same ID.
func (f *Floor) Put(e Entity) {
	switch v := e.(type) {
	case Wall:
		f.Walls = putSlice(f.Walls, v, v.ID)
	case Opening:
		if v.Kind == KindWindow {
			f.Windows = putSlice(f.Windows, v, v.ID)
		} else {
			f.Doors = putSlice(f.Doors, v, v.ID)
		}
	case Room:
		f.Rooms = putSlice(f.Rooms, v, v.ID)
	case Roof:
		f.Roofs = putSlice(f.Roofs, v, v.ID)
	case Polyline:
		f.Polylines = putSlice(f.Polylines, v, v.ID)
	case Hatch:
		f.Hatches = putSlice(f.Hatches, v, v.ID)
	case Dimension:
		f.Dimensions = putSlice(f.Dimensions, v, v.ID)
	case Line:
		f.Lines = putSlice(f.Lines, v, v.ID)
	case TextNote:
		f.Texts = putSlice(f.Texts, v, v.ID)
	case Furniture:
		f.Furniture = putSlice(f.Furniture, v, v.ID)
	case FilletArc:
		f.Fillets = putSlice(f.Fillets, v, v.ID)
	}
}

func putSlice[T Entity](s []T, v T, id string) []T {
	for i := range s {
		if s[i].Ref().ID == id {
			s[i] = v
			return s
		}
	}
	return append(s, v)
}

func dropSlice[T Entity](s []T, id string) []T {
	for i := range s {
		if s[i].Ref().ID == id {
			return append(s[:i], s[i+1:]...)
		}
	}
	return s
}

// Remove deletes the referenced entity. Removing a wall cascades to the
// openings hosted on it.
func (f *Floor) Remove(ref Ref) {
	switch ref.Kind {
	case KindWall:
		f.Walls = dropSlice(f.Walls, ref.ID)
		f.Doors = dropOpeningsOn(f.Doors, ref.ID)
		f.Windows = dropOpeningsOn(f.Windows, ref.ID)
	case KindDoor:
		f.Doors = dropSlice(f.Doors, ref.ID)
	case KindWindow:
		f.Windows = dropSlice(f.Windows, ref.ID)
	case KindRoom:
		f.Rooms = dropSlice(f.Rooms, ref.ID)
	case KindRoof:
		f.Roofs = dropSlice(f.Roofs, ref.ID)
	case KindPolyline:
		f.Polylines = dropSlice(f.Polylines, ref.ID)
	case KindHatch:
		f.Hatches = dropSlice(f.Hatches, ref.ID)
	case KindDimension:
		f.Dimensions = dropSlice(f.Dimensions, ref.ID)
	case KindLine:
		f.Lines = dropSlice(f.Lines, ref.ID)
	case KindText:
		f.Texts = dropSlice(f.Texts, ref.ID)
	case KindFurniture:
		f.Furniture = dropSlice(f.Furniture, ref.ID)
	case KindFillet:
		f.Fillets = dropSlice(f.Fillets, ref.ID)
	}
}

func dropOpeningsOn(openings []Opening, wallID string) []Opening {
	kept := make([]Opening, 0, len(openings))
	for _, o := range openings {
		if o.WallID != wallID {
			kept = append(kept, o)
		}
	}
	return kept
}

// OpeningsOn returns all doors and windows hosted on the wall.
func (f *Floor) OpeningsOn(wallID string) []Opening {
	var out []Opening
	for _, o := range f.Doors {
		if o.WallID == wallID {
			out = append(out, o)
		}
	}
	for _, o := range f.Windows {
		if o.WallID == wallID {
			out = append(out, o)
		}
	}
	return out
}

// Bounds returns the bounding rectangle of all geometry, for view fitting.
func (f *Floor) Bounds() geom.Rect {
	var pts []geom.Point
	for _, w := range f.Walls {
		pts = append(pts, w.Start, w.End)
	}
	for _, r := range f.Rooms {
		pts = append(pts, r.Points...)
	}
	for _, r := range f.Roofs {
		pts = append(pts, r.Points...)
	}
	for _, p := range f.Polylines {
		pts = append(pts, p.Points...)
	}
	for _, h := range f.Hatches {
		pts = append(pts, h.Points...)
	}
	for _, d := range f.Dimensions {
		pts = append(pts, d.Start, d.End)
	}
	for _, l := range f.Lines {
		pts = append(pts, l.Start, l.End)
	}
	for _, n := range f.Texts {
		pts = append(pts, n.Position)
	}
	for _, fu := range f.Furniture {
		pts = append(pts, fu.Position)
	}
	return geom.RectAround(pts...)
}

// IsEmpty reports whether the floor holds no entities at all.
func (f *Floor) IsEmpty() bool {
	return len(f.Walls) == 0 && len(f.Doors) == 0 && len(f.Windows) == 0 &&
		len(f.Rooms) == 0 && len(f.Roofs) == 0 && len(f.Polylines) == 0 &&
		len(f.Hatches) == 0 && len(f.Dimensions) == 0 && len(f.Lines) == 0 &&
		len(f.Texts) == 0 && len(f.Furniture) == 0 && len(f.Fillets) == 0
}
