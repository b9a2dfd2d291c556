package document

import (
	"fmt"
	"io"

	"github.com/OpenPlanLab/OpenPlanCAD/pkg/geom"
	"github.com/OpenPlanLab/OpenPlanCAD/pkg/plan"
)

// WriteSexp writes the document in an s-expression interchange form, one
// node per entity. The layout mirrors the JSON model closely enough that
// `opc inspect` can audit an export structurally without a schema.
func WriteSexp(w io.Writer, d *Document) error {
	ew := &errWriter{w: w}
	ew.printf("(plan\n")
	ew.printf("  (title %q)\n", d.Title)
	ew.printf("  (sheet (paper %q) (scale %q))\n", d.Sheet.Paper, d.Sheet.Scale)
	for _, f := range d.Floors {
		writeFloorSexp(ew, &f)
	}
	ew.printf(")\n")
	return ew.err
}

func writeFloorSexp(ew *errWriter, f *plan.Floor) {
	ew.printf("  (floor (name %q) (level %d)\n", f.Name, f.Level)
	for _, wl := range f.Walls {
		ew.printf("    (wall (id %q) %s %s (type %q) (height %s))\n",
			wl.ID, pt("start", wl.Start), pt("end", wl.End), wl.Type, num(wl.Height))
	}
	for _, o := range f.Doors {
		writeOpeningSexp(ew, "door", o)
	}
	for _, o := range f.Windows {
		writeOpeningSexp(ew, "window", o)
	}
	for _, r := range f.Rooms {
		ew.printf("    (room (id %q) (name %q) %s)\n", r.ID, r.Name, ptList(r.Points))
	}
	for _, r := range f.Roofs {
		ew.printf("    (roof (id %q) (type %q) (pitch %s) %s)\n", r.ID, r.Type, num(r.Pitch), ptList(r.Points))
	}
	for _, p := range f.Polylines {
		ew.printf("    (polyline (id %q) (closed %v) %s)\n", p.ID, p.Closed, ptList(p.Points))
	}
	for _, h := range f.Hatches {
		ew.printf("    (hatch (id %q) (pattern %q) %s)\n", h.ID, h.Pattern, ptList(h.Points))
	}
	for _, d := range f.Dimensions {
		ew.printf("    (dimension (id %q) %s %s (offset %s))\n",
			d.ID, pt("start", d.Start), pt("end", d.End), num(d.Offset))
	}
	for _, l := range f.Lines {
		ew.printf("    (line (id %q) %s %s)\n", l.ID, pt("start", l.Start), pt("end", l.End))
	}
	for _, n := range f.Texts {
		ew.printf("    (text (id %q) %s (size %s) (value %q))\n", n.ID, pt("at", n.Position), num(n.Size), n.Text)
	}
	for _, fu := range f.Furniture {
		ew.printf("    (furniture (id %q) (name %q) %s (size %s %s) (rotation %s))\n",
			fu.ID, fu.Name, pt("at", fu.Position), num(fu.Width), num(fu.Depth), num(fu.Rotation))
	}
	for _, a := range f.Fillets {
		ew.printf("    (fillet (id %q) %s (radius %s) (span %s %s))\n",
			a.ID, pt("center", a.Center), num(a.Radius), num(a.StartAngle), num(a.EndAngle))
	}
	ew.printf("  )\n")
}

func writeOpeningSexp(ew *errWriter, tag string, o plan.Opening) {
	ew.printf("    (%s (id %q) (wall %q) (position %s) (width %s))\n",
		tag, o.ID, o.WallID, num(o.Position), num(o.Width))
}

func pt(tag string, p geom.Point) string {
	return fmt.Sprintf("(%s %s %s)", tag, num(p.X), num(p.Y))
}

func ptList(pts []geom.Point) string {
	s := "(points"
	for _, p := range pts {
		s += fmt.Sprintf(" (%s %s)", num(p.X), num(p.Y))
	}
	return s + ")"
}

func num(v float64) string {
	return fmt.Sprintf("%g", v)
}

// errWriter sticks on the first write error so the emitters stay flat.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...any) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}
