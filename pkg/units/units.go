// Package units converts between drawing units and real-world lengths.
//
// One drawing unit is 1/20 of six inches, so a foot is 40 units and the
// default 20-unit grid step lands on six-inch increments. Metric lengths
// go through the exact 0.3048 m/ft definition.
package units

import (
	"fmt"
	"math"
)

const (
	PerFoot  = 40.0
	PerInch  = PerFoot / 12
	PerMeter = PerFoot / 0.3048
)

func FromFeet(ft float64) float64   { return ft * PerFoot }
func FromInches(in float64) float64 { return in * PerInch }
func FromMeters(m float64) float64  { return m * PerMeter }

func ToFeet(u float64) float64   { return u / PerFoot }
func ToInches(u float64) float64 { return u / PerInch }
func ToMeters(u float64) float64 { return u / PerMeter }

// Format renders a length as architectural feet and inches, rounded to
// the nearest 1/16 inch. Format(500) is `12'-6"`.
func Format(u float64) string {
	sign := ""
	if u < 0 {
		sign, u = "-", -u
	}
	sixteenths := int(math.Round(u * 16 / PerInch))
	feet := sixteenths / 192
	rem := sixteenths - feet*192
	whole := rem / 16
	num := rem % 16

	var in string
	switch {
	case num == 0:
		in = fmt.Sprintf("%d\"", whole)
	case whole == 0 && feet == 0:
		g := gcd(num, 16)
		in = fmt.Sprintf("%d/%d\"", num/g, 16/g)
	default:
		g := gcd(num, 16)
		in = fmt.Sprintf("%d %d/%d\"", whole, num/g, 16/g)
	}

	if feet > 0 {
		if rem == 0 {
			return fmt.Sprintf("%s%d'", sign, feet)
		}
		return fmt.Sprintf("%s%d'-%s", sign, feet, in)
	}
	return sign + in
}

// FormatMetric renders a length in metric, picking the unit by size.
func FormatMetric(u float64) string {
	mm := u / PerMeter * 1000
	a := math.Abs(mm)
	switch {
	case a >= 1000:
		return fmt.Sprintf("%.2f m", mm/1000)
	case a >= 100:
		return fmt.Sprintf("%.1f cm", mm/10)
	default:
		return fmt.Sprintf("%.0f mm", mm)
	}
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
