package entity

import (
	"strconv"
	"strings"
)

// fixedRead slices a line into trimmed fields of the given widths.
// Anything past the end of a short line yields empty fields.
func fixedRead(line string, widths []int) []string {
	fields := make([]string, len(widths))
	start := 0
	for i, w := range widths {
		if start < len(line) {
			end := start + w
			if end > len(line) {
				end = len(line)
			}
			fields[i] = strings.TrimSpace(line[start:end])
		}
		start += w
	}
	return fields
}

func parseInt(s string, def int) (int, error) {
	if s == "" {
		return def, nil
	}
	return strconv.Atoi(s)
}

func parseFloat(s string, def float64) (float64, error) {
	if s == "" {
		return def, nil
	}
	return strconv.ParseFloat(s, 64)
}
