// Package util holds small formatting helpers shared across packages.
package util

import "strconv"

const byteUnits = "KMGTPE"

// FormatBytes renders n with a binary unit, e.g. "512 B", "1.5 KB", "8.0 MB".
func FormatBytes(n int64) string {
	if n < 0 {
		n = 0
	}
	if n < 1024 {
		return strconv.FormatInt(n, 10) + " B"
	}

	div, exp := int64(1024), 0
	for rest := n / 1024; rest >= 1024 && exp < len(byteUnits)-1; rest /= 1024 {
		div *= 1024
		exp++
	}

	return strconv.FormatFloat(float64(n)/float64(div), 'f', 1, 64) + " " + string(byteUnits[exp]) + "B"
}
