package emit

import (
	"math"
	"strconv"
)

func formatInt(i int64) string {
	return strconv.FormatInt(i, 10)
}

// formatFloat implements spec.md §4.8's three-tier float rule: a value
// that is exactly integral (and fits in 64 bits) prints as "X.0"; a value
// within 1e-7 of the nearest integer otherwise prints at full double
// precision via %g; everything else prints as a plain decimal.
func formatFloat(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	if f == math.Floor(f) && f >= math.MinInt64 && f <= math.MaxInt64 {
		return strconv.FormatInt(int64(f), 10) + ".0"
	}
	if math.Abs(f-math.Round(f)) < 1e-7 {
		return strconv.FormatFloat(f, 'g', 17, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
