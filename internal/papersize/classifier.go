// Package papersize owns the standard paper size table and the
// dimension-to-size classifier used before rule matching.
package papersize

import (
	"errors"
	"math"

	"github.com/shopspring/decimal"
)

type Size string

const (
	SizeA1 Size = "A1"
	SizeA2 Size = "A2"
	SizeA3 Size = "A3"
	SizeA4 Size = "A4"
	SizeA5 Size = "A5"

	// SizeNone means no standard size matched; the caller should treat
	// the request as custom-sized.
	SizeNone Size = ""
)

var ErrInvalidDimension = errors.New("invalid_dimension")

// toleranceCm is the slack allowed on each dimension when comparing
// against the reference table.
const toleranceCm = 1.0

type reference struct {
	size     Size
	widthCm  float64
	heightCm float64
}

// Ordered largest first so that when tolerance windows overlap the
// larger, more common size wins.
var standardSizes = []reference{
	{SizeA1, 59.4, 84.1},
	{SizeA2, 42.0, 59.4},
	{SizeA3, 29.7, 42.0},
	{SizeA4, 21.0, 29.7},
	{SizeA5, 14.8, 21.0},
}

// Classify maps a physical width x height in centimeters to a standard
// size label. It is orientation-agnostic: width and height may be
// swapped. SizeNone with a nil error means no standard size matched.
func Classify(widthCm, heightCm float64) (Size, error) {
	if widthCm <= 0 || heightCm <= 0 {
		return SizeNone, ErrInvalidDimension
	}
	for _, ref := range standardSizes {
		if withinTolerance(widthCm, heightCm, ref) || withinTolerance(heightCm, widthCm, ref) {
			return ref.size, nil
		}
	}
	return SizeNone, nil
}

func withinTolerance(w, h float64, ref reference) bool {
	return math.Abs(w-ref.widthCm) <= toleranceCm && math.Abs(h-ref.heightCm) <= toleranceCm
}

var cmPerMeter = decimal.NewFromInt(100)

// AreaSquareMeters converts centimeter dimensions to square meters.
// No rounding is applied; display rounding is a caller concern.
func AreaSquareMeters(widthCm, heightCm float64) decimal.Decimal {
	w := decimal.NewFromFloat(widthCm).Div(cmPerMeter)
	h := decimal.NewFromFloat(heightCm).Div(cmPerMeter)
	return w.Mul(h)
}
