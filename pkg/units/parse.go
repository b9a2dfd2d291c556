package units

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// dimLexer tokenizes length expressions. Unit suffixes are matched after
// numbers so `3.5m` splits into Number and Unit.
var dimLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `[ \t]+`},
	{Name: "Number", Pattern: `[0-9]+(\.[0-9]+)?`},
	{Name: "Foot", Pattern: `'`},
	{Name: "Inch", Pattern: `"`},
	{Name: "Unit", Pattern: `(?i)(mm|cm|ft|in|m)\b`},
	{Name: "Slash", Pattern: `/`},
	{Name: "Dash", Pattern: `-`},
})

// dimExpr is the root of one length expression.
type dimExpr struct {
	FeetIn *feetInches `  @@`
	In     *inches     `| @@`
	Scaled *unitLength `| @@`
	Plain  *float64    `| @Number`
}

// feetInches is a feet count with an optional inch remainder.
// Example: 12'  |  12'-6"  |  12' 6 1/2"
type feetInches struct {
	Feet float64 `@Number Foot Dash?`
	In   *inches `@@?`
}

// inches matches `6"`, `1/2"` and `6 1/2"`.
type inches struct {
	Whole float64  `@Number`
	Num   *float64 `( ( @Number Slash`
	Den   *float64 `    @Number )`
	Alt   *float64 `  | ( Slash @Number ) )? Inch`
}

// unitLength is a number with an explicit unit suffix.
// Example: 3.5m  |  450mm  |  12ft
type unitLength struct {
	Value float64 `@Number`
	Unit  string  `@Unit`
}

var dimParser = participle.MustBuild[dimExpr](
	participle.Lexer(dimLexer),
	participle.Elide("Whitespace"),
	participle.UseLookahead(2),
)

// Parse evaluates a length expression to drawing units. Accepted forms
// are architectural feet and inches (12', 6", 12'-6 1/2"), suffixed
// lengths (3.5m, 450mm, 12ft), and bare unit counts (450).
func Parse(input string) (float64, error) {
	expr, err := dimParser.ParseString("", input)
	if err != nil {
		return 0, fmt.Errorf("units: parse %q: %w", input, err)
	}
	v, err := expr.value()
	if err != nil {
		return 0, fmt.Errorf("units: parse %q: %w", input, err)
	}
	return v, nil
}

func (d dimExpr) value() (float64, error) {
	switch {
	case d.FeetIn != nil:
		u := d.FeetIn.Feet * PerFoot
		if d.FeetIn.In != nil {
			in, err := d.FeetIn.In.value()
			if err != nil {
				return 0, err
			}
			u += in * PerInch
		}
		return u, nil
	case d.In != nil:
		in, err := d.In.value()
		if err != nil {
			return 0, err
		}
		return in * PerInch, nil
	case d.Scaled != nil:
		return d.Scaled.units()
	case d.Plain != nil:
		return *d.Plain, nil
	}
	return 0, fmt.Errorf("empty expression")
}

func (i inches) value() (float64, error) {
	switch {
	case i.Alt != nil:
		if *i.Alt == 0 {
			return 0, fmt.Errorf("zero denominator")
		}
		return i.Whole / *i.Alt, nil
	case i.Num != nil:
		if *i.Den == 0 {
			return 0, fmt.Errorf("zero denominator")
		}
		return i.Whole + *i.Num / *i.Den, nil
	}
	return i.Whole, nil
}

func (s unitLength) units() (float64, error) {
	switch strings.ToLower(s.Unit) {
	case "mm":
		return s.Value / 1000 * PerMeter, nil
	case "cm":
		return s.Value / 100 * PerMeter, nil
	case "m":
		return s.Value * PerMeter, nil
	case "ft":
		return s.Value * PerFoot, nil
	case "in":
		return s.Value * PerInch, nil
	}
	return 0, fmt.Errorf("unknown unit %q", s.Unit)
}
