package units

import (
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{`12'`, 480},
		{`12'-6"`, 500},
		{`12' 6"`, 500},
		{`12'6"`, 500},
		{`6"`, 20},
		{`6 1/2"`, 6.5 * PerInch},
		{`1/2"`, 0.5 * PerInch},
		{`12'-6 1/2"`, 480 + 6.5*PerInch},
		{`3.5'`, 140},
		{`450`, 450},
		{`2m`, 2 * PerMeter},
		{`120mm`, 0.12 * PerMeter},
		{`45cm`, 0.45 * PerMeter},
		{`12ft`, 480},
		{`18in`, 60},
		{`12 FT`, 480},
	}
	for _, tt := range tests {
		got, err := Parse(tt.in)
		if err != nil {
			t.Errorf("Parse(%q) error: %v", tt.in, err)
			continue
		}
		if !scalar.EqualWithinAbs(got, tt.want, 1e-9) {
			t.Errorf("Parse(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseErrors(t *testing.T) {
	for _, in := range []string{"", "abc", `'`, `1/0"`, `12xyz`, `--3`} {
		if _, err := Parse(in); err == nil {
			t.Errorf("Parse(%q) should fail", in)
		}
	}
}

func TestParseFormatRoundTrip(t *testing.T) {
	for _, u := range []float64{0, 20, 45, 500, 1234.375} {
		s := Format(u)
		got, err := Parse(s)
		if err != nil {
			t.Fatalf("Parse(Format(%v) = %q) error: %v", u, s, err)
		}
		// Format rounds to 1/16 inch, so allow half of that.
		if !scalar.EqualWithinAbs(got, u, PerInch/16) {
			t.Errorf("Parse(Format(%v)) = %v", u, got)
		}
	}
}
