package geom

import (
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

func TestLineIntersection(t *testing.T) {
	cases := []struct {
		name           string
		p1, p2, p3, p4 Point
		want           Point
		ok             bool
	}{
		{"perpendicular", Pt(0, 0), Pt(100, 0), Pt(80, -50), Pt(80, 50), Pt(80, 0), true},
		{"diagonal", Pt(0, 0), Pt(10, 10), Pt(0, 10), Pt(10, 0), Pt(5, 5), true},
		{"parallel", Pt(0, 0), Pt(10, 0), Pt(0, 5), Pt(10, 5), Point{}, false},
		{"colinear", Pt(0, 0), Pt(10, 0), Pt(20, 0), Pt(30, 0), Point{}, false},
		// Extends beyond both segments; infinite lines still intersect.
		{"beyond segments", Pt(0, 0), Pt(1, 0), Pt(50, 1), Pt(50, 2), Pt(50, 0), true},
	}
	for _, tc := range cases {
		got, ok := LineIntersection(tc.p1, tc.p2, tc.p3, tc.p4)
		if ok != tc.ok {
			t.Fatalf("%s: ok = %v, want %v", tc.name, ok, tc.ok)
		}
		if ok && Dist(got, tc.want) > 1e-9 {
			t.Fatalf("%s: intersection = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestLineIntersectionParams(t *testing.T) {
	pt, tt, u, ok := LineIntersectionParams(Pt(0, 0), Pt(200, 0), Pt(80, -50), Pt(80, 50))
	if !ok {
		t.Fatal("expected intersection")
	}
	if Dist(pt, Pt(80, 0)) > 1e-9 {
		t.Fatalf("point = %v, want (80,0)", pt)
	}
	if !scalar.EqualWithinAbs(tt, 0.4, 1e-9) || !scalar.EqualWithinAbs(u, 0.5, 1e-9) {
		t.Fatalf("params t=%v u=%v, want 0.4 0.5", tt, u)
	}
}

func TestSegmentIntersection(t *testing.T) {
	// Crossing near an endpoint falls outside the [tol, 1-tol] band.
	_, _, _, ok := SegmentIntersection(Pt(0, 0), Pt(100, 0), Pt(0, -10), Pt(0, 10), 0.01)
	if ok {
		t.Fatal("endpoint touch should be rejected")
	}
	pt, tt, u, ok := SegmentIntersection(Pt(0, 0), Pt(100, 0), Pt(40, -10), Pt(40, 10), 0.01)
	if !ok || Dist(pt, Pt(40, 0)) > 1e-9 {
		t.Fatalf("interior crossing = %v ok=%v", pt, ok)
	}
	if !scalar.EqualWithinAbs(tt, 0.4, 1e-9) || !scalar.EqualWithinAbs(u, 0.5, 1e-9) {
		t.Fatalf("params t=%v u=%v", tt, u)
	}
	// Segments whose lines cross beyond either span produce no hit.
	if _, _, _, ok = SegmentIntersection(Pt(0, 0), Pt(10, 0), Pt(50, -10), Pt(50, 10), 0.01); ok {
		t.Fatal("crossing beyond span should be rejected")
	}
}
