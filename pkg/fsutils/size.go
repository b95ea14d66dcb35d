package fsutils

import (
	"math"
	"strconv"
	"strings"
)

var sizeUnits = []string{"B", "K", "M", "G", "T", "P"}

// ShortSize formats size in 1024-based units: "512B", "1.5K", "12M".
// One decimal place is kept while the value is below 10.
func ShortSize(size int64) string {
	if size < 1024 {
		return strconv.FormatInt(size, 10) + sizeUnits[0]
	}
	value, unit := float64(size), 0
	for value >= 1024 && unit < len(sizeUnits)-1 {
		value /= 1024
		unit++
	}
	if value < 10 {
		s := strconv.FormatFloat(value, 'f', 1, 64)
		return strings.TrimSuffix(s, ".0") + sizeUnits[unit]
	}
	return strconv.FormatFloat(math.Round(value), 'f', 0, 64) + sizeUnits[unit]
}
