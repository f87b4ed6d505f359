// Package entity holds the StateMod station, right, and network records
// read from the fixed-width input files referenced by a response file.
// The readers are tolerant per record: a malformed line is logged and
// dropped rather than failing the whole file.
package entity

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// StreamGage is one stream gage station (.ris record).
type StreamGage struct {
	ID   string
	Name string
	// Cgoto is the river node identifier the gage sits on.
	Cgoto string
	// Crunidy identifies the daily stream station used for daily data,
	// or a special code ("0" monthly interpolated, "3" divided).
	Crunidy string
}

// ReadStreamGages reads a stream gage station file.
func ReadStreamGages(path string) ([]*StreamGage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var list []*StreamGage
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := fixedRead(line, []int{12, 24, 12, 1, 12})
		list = append(list, &StreamGage{
			ID:      fields[0],
			Name:    fields[1],
			Cgoto:   fields[2],
			Crunidy: fields[4],
		})
	}
	if err := scanner.Err(); err != nil {
		return list, fmt.Errorf("read %s: %w", path, err)
	}
	return list, nil
}
