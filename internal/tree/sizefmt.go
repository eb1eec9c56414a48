package tree

import "fmt"

var sizeUnits = []string{"B", "KB", "MB", "GB"}

// FormatSize renders a raw byte count as a human-readable string with one
// decimal place, e.g. 1536 -> "1.5KB". The value is divided by 1024 while it
// stays at or above 1024 and a larger unit remains, across B, KB, MB, GB.
func FormatSize(size int64) string {
	value := float64(size)
	unit := 0
	for value >= 1024 && unit < len(sizeUnits)-1 {
		value /= 1024
		unit++
	}
	return fmt.Sprintf("%.1f%s", value, sizeUnits[unit])
}
