package utils

import (
	"fmt"
	"strings"
)

// byteSizeUnits lists the supported magnitude suffixes, smallest first.
var byteSizeUnits = []string{"B", "KB", "MB", "GB", "TB"}

// FormatByteSize converts a byte count into a human-readable magnitude string.
// The value is divided by 1024 until it drops below 1024 or the unit set is
// exhausted, and renders with at most two fractional digits, trailing zeros
// trimmed. Negative input clamps to zero.
func FormatByteSize(byteCount int64) string {
	if byteCount < 0 {
		byteCount = 0
	}
	value := float64(byteCount)
	unitIndex := 0
	for value >= 1024 && unitIndex < len(byteSizeUnits)-1 {
		value /= 1024
		unitIndex++
	}
	if unitIndex == 0 {
		return fmt.Sprintf("%d %s", byteCount, byteSizeUnits[unitIndex])
	}
	formatted := strings.TrimRight(fmt.Sprintf("%.2f", value), "0")
	formatted = strings.TrimSuffix(formatted, ".")
	return formatted + " " + byteSizeUnits[unitIndex]
}
