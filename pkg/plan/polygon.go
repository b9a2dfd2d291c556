package plan

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/OpenPlanLab/OpenPlanCAD/pkg/geom"
)

// RectPoints canonicalizes a legacy rectangle into its 4-point polygon,
// counterclockwise from the origin corner. Every constructor and decoder
// funnels legacy input through here so polygon algorithms only ever see
// point arrays.
func RectPoints(x, y, w, h float64) []geom.Point {
	return []geom.Point{
		geom.Pt(x, y),
		geom.Pt(x+w, y),
		geom.Pt(x+w, y+h),
		geom.Pt(x, y+h),
	}
}

// legacyPolygon is the wire form shared by Room, Roof and Hatch: either a
// points array or the legacy {x,y,width,height} rectangle.
type legacyPolygon struct {
	Points []geom.Point `json:"points,omitempty"`
	X      *float64     `json:"x,omitempty"`
	Y      *float64     `json:"y,omitempty"`
	Width  *float64     `json:"width,omitempty"`
	Height *float64     `json:"height,omitempty"`
}

func (l legacyPolygon) points() []geom.Point {
	if len(l.Points) == 0 && l.X != nil && l.Y != nil && l.Width != nil && l.Height != nil {
		return RectPoints(*l.X, *l.Y, *l.Width, *l.Height)
	}
	return l.Points
}

// Room is a simple polygon; winding order is insertion order as drawn.
type Room struct {
	ID     string       `json:"id"`
	Name   string       `json:"name,omitempty"`
	Points []geom.Point `json:"points"`
}

// NewRoom creates a room from at least three vertices.
func NewRoom(points []geom.Point) Room {
	return Room{ID: uuid.NewString(), Points: clonePoints(points)}
}

// NewRoomRect creates a room from the legacy rectangle form.
func NewRoomRect(x, y, w, h float64) Room {
	return Room{ID: uuid.NewString(), Points: RectPoints(x, y, w, h)}
}

func (r *Room) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID   string `json:"id"`
		Name string `json:"name"`
		legacyPolygon
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r.ID = raw.ID
	r.Name = raw.Name
	r.Points = raw.points()
	return nil
}

// Centroid is the room's label anchor: the vertex mean.
func (r Room) Centroid() geom.Point { return geom.PolygonCentroid(r.Points) }

func (r Room) Area() float64 { return geom.PolygonArea(r.Points) }

func (r Room) Ref() Ref { return Ref{Kind: KindRoom, ID: r.ID} }

func (r Room) EditablePoints() []geom.Point { return clonePoints(r.Points) }

func (r Room) WithPoint(i int, p geom.Point) Entity {
	r.Points = clonePoints(r.Points)
	if i >= 0 && i < len(r.Points) {
		r.Points[i] = p
	}
	return r
}

func (r Room) Translated(dx, dy float64) Entity {
	r.Points = translatePoints(r.Points, dx, dy)
	return r
}

func (r Room) RotatedAround(center geom.Point, angle float64) Entity {
	r.Points = rotatePoints(r.Points, center, angle)
	return r
}

func (r Room) GridSnapped(size float64) Entity {
	r.Points = snapPoints(r.Points, size)
	return r
}

// RoofType selects the roof construction drawn over the polygon.
type RoofType string

const (
	RoofGable RoofType = "gable"
	RoofHip   RoofType = "hip"
	RoofShed  RoofType = "shed"
	RoofFlat  RoofType = "flat"
)

// Roof is a polygon of four or more vertices with pitch metadata. The
// legacy rectangle fallback is identical to Room's.
type Roof struct {
	ID             string       `json:"id"`
	Points         []geom.Point `json:"points"`
	Type           RoofType     `json:"type"`
	Pitch          float64      `json:"pitch"`
	RidgeDirection float64      `json:"ridgeDirection"`
}

// DefaultRoofPitch is rise over run for new roofs (6:12).
const DefaultRoofPitch = 0.5

func NewRoof(points []geom.Point, typ RoofType) Roof {
	return Roof{ID: uuid.NewString(), Points: clonePoints(points), Type: typ, Pitch: DefaultRoofPitch}
}

func NewRoofRect(x, y, w, h float64, typ RoofType) Roof {
	return Roof{ID: uuid.NewString(), Points: RectPoints(x, y, w, h), Type: typ, Pitch: DefaultRoofPitch}
}

func (r *Roof) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID             string   `json:"id"`
		Type           RoofType `json:"type"`
		Pitch          float64  `json:"pitch"`
		RidgeDirection float64  `json:"ridgeDirection"`
		legacyPolygon
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r.ID = raw.ID
	r.Type = raw.Type
	r.Pitch = raw.Pitch
	r.RidgeDirection = raw.RidgeDirection
	r.Points = raw.points()
	return nil
}

func (r Roof) Ref() Ref { return Ref{Kind: KindRoof, ID: r.ID} }

func (r Roof) EditablePoints() []geom.Point { return clonePoints(r.Points) }

func (r Roof) WithPoint(i int, p geom.Point) Entity {
	r.Points = clonePoints(r.Points)
	if i >= 0 && i < len(r.Points) {
		r.Points[i] = p
	}
	return r
}

func (r Roof) Translated(dx, dy float64) Entity {
	r.Points = translatePoints(r.Points, dx, dy)
	return r
}

func (r Roof) RotatedAround(center geom.Point, angle float64) Entity {
	r.Points = rotatePoints(r.Points, center, angle)
	return r
}

func (r Roof) GridSnapped(size float64) Entity {
	r.Points = snapPoints(r.Points, size)
	return r
}

// HatchPattern names the fill drawn inside a hatch polygon.
type HatchPattern string

const (
	HatchDiagonal   HatchPattern = "diagonal"
	HatchCross      HatchPattern = "cross"
	HatchDots       HatchPattern = "dots"
	HatchInsulation HatchPattern = "insulation"
)

// Hatch is a filled annotation polygon.
type Hatch struct {
	ID      string       `json:"id"`
	Points  []geom.Point `json:"points"`
	Pattern HatchPattern `json:"pattern"`
}

func NewHatch(points []geom.Point, pattern HatchPattern) Hatch {
	return Hatch{ID: uuid.NewString(), Points: clonePoints(points), Pattern: pattern}
}

func (h *Hatch) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID      string       `json:"id"`
		Pattern HatchPattern `json:"pattern"`
		legacyPolygon
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	h.ID = raw.ID
	h.Pattern = raw.Pattern
	h.Points = raw.points()
	return nil
}

func (h Hatch) Ref() Ref { return Ref{Kind: KindHatch, ID: h.ID} }

func (h Hatch) EditablePoints() []geom.Point { return clonePoints(h.Points) }

func (h Hatch) WithPoint(i int, p geom.Point) Entity {
	h.Points = clonePoints(h.Points)
	if i >= 0 && i < len(h.Points) {
		h.Points[i] = p
	}
	return h
}

func (h Hatch) Translated(dx, dy float64) Entity {
	h.Points = translatePoints(h.Points, dx, dy)
	return h
}

func (h Hatch) RotatedAround(center geom.Point, angle float64) Entity {
	h.Points = rotatePoints(h.Points, center, angle)
	return h
}

func (h Hatch) GridSnapped(size float64) Entity {
	h.Points = snapPoints(h.Points, size)
	return h
}
