package plan

import (
	"github.com/google/uuid"

	"github.com/OpenPlanLab/OpenPlanCAD/pkg/geom"
)

// Polyline is an open or closed chain of two or more vertices. Closing is
// always explicit; drawing tools never close a polyline implicitly.
type Polyline struct {
	ID     string       `json:"id"`
	Points []geom.Point `json:"points"`
	Closed bool         `json:"closed"`
}

func NewPolyline(points []geom.Point, closed bool) Polyline {
	return Polyline{ID: uuid.NewString(), Points: clonePoints(points), Closed: closed}
}

// Segments returns consecutive vertex pairs, including the closing segment
// for closed polylines.
func (p Polyline) Segments() [][2]geom.Point {
	if len(p.Points) < 2 {
		return nil
	}
	n := len(p.Points) - 1
	if p.Closed {
		n++
	}
	segs := make([][2]geom.Point, 0, n)
	for i := 0; i < len(p.Points)-1; i++ {
		segs = append(segs, [2]geom.Point{p.Points[i], p.Points[i+1]})
	}
	if p.Closed {
		segs = append(segs, [2]geom.Point{p.Points[len(p.Points)-1], p.Points[0]})
	}
	return segs
}

func (p Polyline) Ref() Ref { return Ref{Kind: KindPolyline, ID: p.ID} }

func (p Polyline) EditablePoints() []geom.Point { return clonePoints(p.Points) }

func (p Polyline) WithPoint(i int, pt geom.Point) Entity {
	p.Points = clonePoints(p.Points)
	if i >= 0 && i < len(p.Points) {
		p.Points[i] = pt
	}
	return p
}

func (p Polyline) Translated(dx, dy float64) Entity {
	p.Points = translatePoints(p.Points, dx, dy)
	return p
}

func (p Polyline) RotatedAround(center geom.Point, angle float64) Entity {
	p.Points = rotatePoints(p.Points, center, angle)
	return p
}

func (p Polyline) GridSnapped(size float64) Entity {
	p.Points = snapPoints(p.Points, size)
	return p
}

// Dimension is a linear measurement between two points. Offset is the
// signed perpendicular distance of the rendered dimension line from the
// start-end reference segment.
type Dimension struct {
	ID     string     `json:"id"`
	Start  geom.Point `json:"start"`
	End    geom.Point `json:"end"`
	Offset float64    `json:"offset"`
}

// DefaultDimensionOffset places new dimension lines one foot off the
// measured segment.
const DefaultDimensionOffset = 40

func NewDimension(start, end geom.Point) Dimension {
	return Dimension{ID: uuid.NewString(), Start: start, End: end, Offset: DefaultDimensionOffset}
}

func (d Dimension) Length() float64 { return geom.Dist(d.Start, d.End) }

// OffsetHandle is the diamond grip at the midpoint displaced by Offset
// along the left normal of start-end.
func (d Dimension) OffsetHandle() geom.Point {
	mid := geom.Midpoint(d.Start, d.End)
	dir := d.End.Sub(d.Start)
	length := dir.Len()
	if length == 0 {
		return mid
	}
	nx := -dir.Y / length
	ny := dir.X / length
	return geom.Pt(mid.X+nx*d.Offset, mid.Y+ny*d.Offset)
}

// OffsetFor returns the signed offset that would place the handle at p.
func (d Dimension) OffsetFor(p geom.Point) float64 {
	dir := d.End.Sub(d.Start)
	length := dir.Len()
	if length == 0 {
		return d.Offset
	}
	nx := -dir.Y / length
	ny := dir.X / length
	mid := geom.Midpoint(d.Start, d.End)
	return (p.X-mid.X)*nx + (p.Y-mid.Y)*ny
}

func (d Dimension) Ref() Ref { return Ref{Kind: KindDimension, ID: d.ID} }

func (d Dimension) EditablePoints() []geom.Point { return []geom.Point{d.Start, d.End} }

func (d Dimension) WithPoint(i int, p geom.Point) Entity {
	if i == 0 {
		d.Start = p
	} else {
		d.End = p
	}
	return d
}

func (d Dimension) Translated(dx, dy float64) Entity {
	d.Start = geom.Pt(d.Start.X+dx, d.Start.Y+dy)
	d.End = geom.Pt(d.End.X+dx, d.End.Y+dy)
	return d
}

func (d Dimension) RotatedAround(center geom.Point, angle float64) Entity {
	d.Start = geom.RotateAround(d.Start, center, angle)
	d.End = geom.RotateAround(d.End, center, angle)
	return d
}

func (d Dimension) GridSnapped(size float64) Entity {
	d.Start = geom.SnapPointToGrid(d.Start, size)
	d.End = geom.SnapPointToGrid(d.End, size)
	return d
}

// Line is a plain annotation segment.
type Line struct {
	ID    string     `json:"id"`
	Start geom.Point `json:"start"`
	End   geom.Point `json:"end"`
}

func NewLine(start, end geom.Point) Line {
	return Line{ID: uuid.NewString(), Start: start, End: end}
}

func (l Line) Length() float64 { return geom.Dist(l.Start, l.End) }

func (l Line) Ref() Ref { return Ref{Kind: KindLine, ID: l.ID} }

func (l Line) EditablePoints() []geom.Point { return []geom.Point{l.Start, l.End} }

func (l Line) WithPoint(i int, p geom.Point) Entity {
	if i == 0 {
		l.Start = p
	} else {
		l.End = p
	}
	return l
}

func (l Line) Translated(dx, dy float64) Entity {
	l.Start = geom.Pt(l.Start.X+dx, l.Start.Y+dy)
	l.End = geom.Pt(l.End.X+dx, l.End.Y+dy)
	return l
}

func (l Line) RotatedAround(center geom.Point, angle float64) Entity {
	l.Start = geom.RotateAround(l.Start, center, angle)
	l.End = geom.RotateAround(l.End, center, angle)
	return l
}

func (l Line) GridSnapped(size float64) Entity {
	l.Start = geom.SnapPointToGrid(l.Start, size)
	l.End = geom.SnapPointToGrid(l.End, size)
	return l
}

// TextNote is a free-standing annotation anchored at a single point.
type TextNote struct {
	ID       string     `json:"id"`
	Position geom.Point `json:"position"`
	Text     string     `json:"text"`
	Size     float64    `json:"size"`
}

// DefaultTextSize is in world units.
const DefaultTextSize = 30

func NewTextNote(position geom.Point, text string) TextNote {
	return TextNote{ID: uuid.NewString(), Position: position, Text: text, Size: DefaultTextSize}
}

func (n TextNote) Ref() Ref { return Ref{Kind: KindText, ID: n.ID} }

func (n TextNote) EditablePoints() []geom.Point { return nil }

func (n TextNote) WithPoint(int, geom.Point) Entity { return n }

func (n TextNote) Translated(dx, dy float64) Entity {
	n.Position = geom.Pt(n.Position.X+dx, n.Position.Y+dy)
	return n
}

func (n TextNote) RotatedAround(center geom.Point, angle float64) Entity {
	n.Position = geom.RotateAround(n.Position, center, angle)
	return n
}

func (n TextNote) GridSnapped(size float64) Entity {
	n.Position = geom.SnapPointToGrid(n.Position, size)
	return n
}

// Furniture is a placed symbol: a footprint rectangle about an anchor with
// its own rotation.
type Furniture struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Position geom.Point `json:"position"`
	Width    float64    `json:"width"`
	Depth    float64    `json:"depth"`
	Rotation float64    `json:"rotation"`
}

func NewFurniture(position geom.Point, name string, width, depth float64) Furniture {
	return Furniture{ID: uuid.NewString(), Name: name, Position: position, Width: width, Depth: depth}
}

func (f Furniture) Ref() Ref { return Ref{Kind: KindFurniture, ID: f.ID} }

func (f Furniture) EditablePoints() []geom.Point { return nil }

func (f Furniture) WithPoint(int, geom.Point) Entity { return f }

func (f Furniture) Translated(dx, dy float64) Entity {
	f.Position = geom.Pt(f.Position.X+dx, f.Position.Y+dy)
	return f
}

func (f Furniture) RotatedAround(center geom.Point, angle float64) Entity {
	f.Position = geom.RotateAround(f.Position, center, angle)
	f.Rotation += angle
	return f
}

func (f Furniture) GridSnapped(size float64) Entity {
	f.Position = geom.SnapPointToGrid(f.Position, size)
	return f
}
