package utils

import (
	"fmt"
	"math"
)

// FormatTimestamp renders seconds as HH:MM:SS, rounding to the
// nearest whole second. Negative input clamps to 00:00:00.
func FormatTimestamp(seconds float64) string {
	if seconds < 0 || math.IsNaN(seconds) {
		seconds = 0
	}
	total := int(math.Round(seconds))
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
