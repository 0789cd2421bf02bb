package docxwriter

import "math"

// Length is a physical length stored in English Metric Units (EMU), the
// native unit of DrawingML. WordprocessingML uses twips and half-points,
// which are derived from it.
type Length int64

const (
	emuPerInch  = 914400
	emuPerPoint = 12700
	emuPerTwip  = 635
)

// Inches returns a Length of v inches
func Inches(v float64) Length {
	return Length(math.Round(v * emuPerInch))
}

// Pt returns a Length of v points
func Pt(v float64) Length {
	return Length(math.Round(v * emuPerPoint))
}

// EMU returns the length in English Metric Units
func (l Length) EMU() int64 {
	return int64(l)
}

// Points returns the length in points
func (l Length) Points() float64 {
	return float64(l) / emuPerPoint
}

// Inches returns the length in inches
func (l Length) Inches() float64 {
	return float64(l) / emuPerInch
}

// Twips returns the length in twentieths of a point
func (l Length) Twips() int {
	return int(math.Round(float64(l) / emuPerTwip))
}

// HalfPoints returns the length in half-points, the unit of w:sz
func (l Length) HalfPoints() int {
	return int(math.Round(float64(l) * 2 / emuPerPoint))
}
