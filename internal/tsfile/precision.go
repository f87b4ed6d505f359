package tsfile

import (
	"math"
	"strings"
)

// PrecisionDefault is the default signed output precision: at most two
// fraction digits, fewer when a value would overflow its column.
const PrecisionDefault = -2

// SelectPrecision resolves a requested precision against a fixed column
// width for a specific value. A non-negative request is an explicit
// fraction digit count and is returned unchanged. A negative request
// means "at most this many digits": the requested count is kept only if
// abs(value) fits in the column with those digits, a decimal point, and
// a sign column when the value is negative; otherwise 0 is returned and
// the value is written with no fraction digits.
func SelectPrecision(requested, width int, value float64) int {
	if requested >= 0 {
		return requested
	}
	digits := -requested
	whole := width - digits - 1 // decimal point
	if value < 0 {
		whole--
	}
	if whole < 1 {
		return 0
	}
	if math.Abs(value) < math.Pow(10, float64(whole)) {
		return digits
	}
	return 0
}

// unitsPrecision maps known StateMod data units to a default signed
// precision for output. Units not listed fall back to the caller's
// requested precision.
var unitsPrecision = map[string]int{
	"AF":   PrecisionDefault,
	"ACFT": PrecisionDefault,
	"AF/M": PrecisionDefault,
	"CFS":  PrecisionDefault,
	"IN":   PrecisionDefault,
	"MM":   PrecisionDefault,
	"DAY":  PrecisionDefault,
}

// One units string tends to repeat for thousands of lines in a file, so
// remember the last lookup.
var (
	lastUnits          string
	lastUnitsPrecision = PrecisionDefault
	haveLastUnits      bool
)

// PrecisionForUnits selects an output precision from the data units,
// then fits it to the column width and value as SelectPrecision does.
func PrecisionForUnits(units string, width int, value float64) int {
	requested := PrecisionDefault
	key := strings.ToUpper(strings.TrimSpace(units))
	if key != "" {
		if haveLastUnits && key == lastUnits {
			requested = lastUnitsPrecision
		} else if p, ok := unitsPrecision[key]; ok {
			requested = p
			lastUnits = key
			lastUnitsPrecision = p
			haveLastUnits = true
		}
	}
	return SelectPrecision(requested, width, value)
}

// SumUnits reports whether period totals for the units are computed as a
// sum rather than a mean. Volumetric and depth units accumulate; rates
// average.
func SumUnits(units string) bool {
	switch strings.ToUpper(strings.TrimSpace(units)) {
	case "AF", "ACFT", "AF/M", "IN", "MM":
		return true
	}
	return false
}
