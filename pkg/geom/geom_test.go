package geom

import (
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

func TestDist(t *testing.T) {
	cases := []struct {
		p, q Point
		want float64
	}{
		{Pt(0, 0), Pt(3, 4), 5},
		{Pt(-1, -1), Pt(-1, -1), 0},
		{Pt(10, 0), Pt(0, 0), 10},
	}
	for _, tc := range cases {
		if got := Dist(tc.p, tc.q); !scalar.EqualWithinAbs(got, tc.want, 1e-9) {
			t.Fatalf("Dist(%v, %v) = %v, want %v", tc.p, tc.q, got, tc.want)
		}
	}
}

func TestLerp(t *testing.T) {
	a, b := Pt(0, 0), Pt(100, 50)
	cases := []struct {
		t    float64
		want Point
	}{
		{0, Pt(0, 0)},
		{1, Pt(100, 50)},
		{0.5, Pt(50, 25)},
		{0.25, Pt(25, 12.5)},
	}
	for _, tc := range cases {
		got := Lerp(a, b, tc.t)
		if !scalar.EqualWithinAbs(got.X, tc.want.X, 1e-9) || !scalar.EqualWithinAbs(got.Y, tc.want.Y, 1e-9) {
			t.Fatalf("Lerp(%v, %v, %v) = %v, want %v", a, b, tc.t, got, tc.want)
		}
	}
}

func TestSnapToGrid(t *testing.T) {
	cases := []struct {
		v, size float64
		want    float64
	}{
		{3, 20, 0},
		{4, 20, 0},
		{97.02, 20, 100},
		{50, 20, 60},
		{-13, 10, -10},
		{7, 0, 7},
	}
	for _, tc := range cases {
		if got := SnapToGrid(tc.v, tc.size); !scalar.EqualWithinAbs(got, tc.want, 1e-9) {
			t.Fatalf("SnapToGrid(%v, %v) = %v, want %v", tc.v, tc.size, got, tc.want)
		}
	}
}

func TestRectAround(t *testing.T) {
	r := RectAround(Pt(10, -5), Pt(-3, 8), Pt(4, 4))
	want := Rect{-3, -5, 10, 8}
	if r != want {
		t.Fatalf("RectAround = %+v, want %+v", r, want)
	}
	if c := r.Center(); c != Pt(3.5, 1.5) {
		t.Fatalf("Center = %v, want %v", c, Pt(3.5, 1.5))
	}
	if !r.Contains(Pt(0, 0)) || r.Contains(Pt(11, 0)) {
		t.Fatalf("Contains misclassified points of %+v", r)
	}
}

func TestRectUnionExpand(t *testing.T) {
	a := Rect{0, 0, 10, 10}
	b := Rect{5, -5, 20, 8}
	u := a.Union(b)
	if u != (Rect{0, -5, 20, 10}) {
		t.Fatalf("Union = %+v", u)
	}
	e := a.Expand(2)
	if e != (Rect{-2, -2, 12, 12}) {
		t.Fatalf("Expand = %+v", e)
	}
}
