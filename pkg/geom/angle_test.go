package geom

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

func TestSnapAngle(t *testing.T) {
	inc45 := Degrees(45)
	cases := []struct {
		theta, increment float64
		want             float64
	}{
		{Degrees(1.2), inc45, 0},
		{Degrees(23), inc45, Degrees(45)},
		{Degrees(-80), inc45, Degrees(-90)},
		{Degrees(91), Degrees(90), Degrees(90)},
		{Degrees(17), 0, Degrees(17)}, // disabled
	}
	for _, tc := range cases {
		if got := SnapAngle(tc.theta, tc.increment); !scalar.EqualWithinAbs(got, tc.want, 1e-9) {
			t.Fatalf("SnapAngle(%v, %v) = %v, want %v", tc.theta, tc.increment, got, tc.want)
		}
	}
}

func TestSnapAngleRelative(t *testing.T) {
	base := Degrees(30)
	cases := []struct {
		name  string
		theta float64
		want  float64
	}{
		// 10 degrees off the base's perpendicular: relative candidate wins.
		{"near perpendicular", Degrees(110), Degrees(120)},
		{"near base", Degrees(33), Degrees(30)},
		{"near opposite", Degrees(-155), Degrees(-150)},
		// 22 degrees from every relative candidate: falls back to the 45 grid.
		{"outside tolerance", Degrees(52), Degrees(45)},
	}
	for _, tc := range cases {
		got := SnapAngleRelative(tc.theta, base, Degrees(45))
		if !scalar.EqualWithinAbs(NormalizeAngle(got-tc.want), 0, 1e-9) {
			t.Fatalf("%s: SnapAngleRelative(%v) = %v, want %v", tc.name, tc.theta, got, tc.want)
		}
	}
}

func TestNormalizeAngle(t *testing.T) {
	cases := []struct{ in, want float64 }{
		{3 * math.Pi, math.Pi},
		{-3 * math.Pi, math.Pi},
		{math.Pi / 2, math.Pi / 2},
		{2 * math.Pi, 0},
	}
	for _, tc := range cases {
		if got := NormalizeAngle(tc.in); !scalar.EqualWithinAbs(got, tc.want, 1e-9) {
			t.Fatalf("NormalizeAngle(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestRotateAround(t *testing.T) {
	got := RotateAround(Pt(10, 0), Pt(0, 0), math.Pi/2)
	if Dist(got, Pt(0, 10)) > 1e-9 {
		t.Fatalf("quarter turn = %v, want (0,10)", got)
	}
	got = RotateAround(Pt(5, 5), Pt(5, 5), 1.234)
	if Dist(got, Pt(5, 5)) > 1e-9 {
		t.Fatalf("rotating the center must not move it, got %v", got)
	}
	got = RotateAround(Pt(20, 10), Pt(10, 10), math.Pi)
	if Dist(got, Pt(0, 10)) > 1e-9 {
		t.Fatalf("half turn = %v, want (0,10)", got)
	}
}

func TestPointAtAngle(t *testing.T) {
	got := PointAtAngle(Pt(10, 20), 0, 5)
	if Dist(got, Pt(15, 20)) > 1e-9 {
		t.Fatalf("PointAtAngle east = %v", got)
	}
	got = PointAtAngle(Pt(0, 0), Degrees(90), 7)
	if Dist(got, Pt(0, 7)) > 1e-9 {
		t.Fatalf("PointAtAngle north = %v", got)
	}
}
