package calc

import (
	"math"
	"strconv"
	"strings"
)

// ErrorDisplay is the literal shown after a failed evaluation.
const ErrorDisplay = "Error"

// FormatNumber renders a result for display. Magnitudes above 1e15 or
// below 1e-6 (excluding zero) use exponential notation with six
// fractional digits; everything else is a plain decimal string, rounded
// to 10 significant digits when a fractional representation grows past
// 12 characters.
func FormatNumber(v float64) string {
	abs := math.Abs(v)
	if abs > 1e15 || (abs > 0 && abs < 1e-6) {
		return strconv.FormatFloat(v, 'e', 6, 64)
	}

	s := strconv.FormatFloat(v, 'f', -1, 64)
	if strings.Contains(s, ".") && len(s) > 12 {
		// Round via a 10-significant-digit detour, then re-render in
		// plain form so no exponent leaks into the display.
		rounded, err := strconv.ParseFloat(strconv.FormatFloat(v, 'g', 10, 64), 64)
		if err == nil {
			s = strconv.FormatFloat(rounded, 'f', -1, 64)
		}
	}
	return s
}

// FormatDisplay canonicalises a raw display value. The error literal and
// anything non-numeric pass through unchanged, so formatting an already
// canonical display is the identity.
func FormatDisplay(display string) string {
	if display == ErrorDisplay {
		return display
	}
	v, err := strconv.ParseFloat(display, 64)
	if err != nil {
		return display
	}
	return FormatNumber(v)
}
