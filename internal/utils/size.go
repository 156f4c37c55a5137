package utils

import (
	"fmt"
	"strings"
)

// sizeUnits are the binary multiples used in the document's conclusion line.
var sizeUnits = []string{"b", "kb", "mb", "gb", "tb", "pb"}

// FormatFileSize renders the total size of listed files for the Conclusion
// section: whole bytes below 1 KiB, one decimal below 10 of a unit, whole
// numbers above. Negative sizes render as "0b".
func FormatFileSize(bytes int64) string {
	if bytes < 0 {
		return "0" + sizeUnits[0]
	}
	if bytes < 1024 {
		return fmt.Sprintf("%d%s", bytes, sizeUnits[0])
	}
	value := float64(bytes)
	unitIndex := 0
	for value >= 1024 && unitIndex < len(sizeUnits)-1 {
		value /= 1024
		unitIndex++
	}
	if value < 10 {
		return strings.TrimSuffix(fmt.Sprintf("%.1f", value), ".0") + sizeUnits[unitIndex]
	}
	return fmt.Sprintf("%.0f%s", value, sizeUnits[unitIndex])
}
