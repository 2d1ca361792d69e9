package race

import (
	"fmt"
	"math"
)

// FormatLapTime renders a millisecond duration as MM:SS.mmm.
func FormatLapTime(ms float64) string {
	if ms < 0 || math.IsNaN(ms) {
		ms = 0
	}
	total := int64(math.Floor(ms))
	m := total / 60000
	total %= 60000
	s := total / 1000
	return fmt.Sprintf("%02d:%02d.%03d", m, s, total%1000)
}
