package entity

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/lox/statemod/internal/metrics"
)

// DiversionRight is one decreed diversion right (.ddr record).
type DiversionRight struct {
	ID   string
	Name string
	// Cgoto is the identifier of the diversion station the right
	// belongs to.
	Cgoto string
	// Irtem is the administration number, kept as a string to preserve
	// its fixed decimal formatting.
	Irtem string
	// Dcrdiv is the decreed amount in CFS.
	Dcrdiv float64
	// Switch is 1 when the right is on, 0 when off, or a year to turn
	// on (+) or off (-).
	Switch int
}

// ReadDiversionRights reads a diversion rights file.
func ReadDiversionRights(path string) ([]*DiversionRight, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var list []*DiversionRight
	scanner := bufio.NewScanner(f)
	lineNum := 0
	for scanner.Scan() {
		line := scanner.Text()
		lineNum++
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := fixedRead(line, []int{12, 24, 12, 16, 8, 8})
		dcrdiv, err := parseFloat(fields[4], 0)
		if err != nil {
			log.Printf("Error reading %q at line %d: %v", path, lineNum, err)
			metrics.ParseErrors.WithLabelValues("diversionright").Inc()
			continue
		}
		onoff, err := parseInt(fields[5], 1)
		if err != nil {
			log.Printf("Error reading %q at line %d: %v", path, lineNum, err)
			metrics.ParseErrors.WithLabelValues("diversionright").Inc()
			continue
		}
		list = append(list, &DiversionRight{
			ID:     fields[0],
			Name:   fields[1],
			Cgoto:  fields[2],
			Irtem:  fields[3],
			Dcrdiv: dcrdiv,
			Switch: onoff,
		})
	}
	if err := scanner.Err(); err != nil {
		return list, fmt.Errorf("read %s: %w", path, err)
	}
	return list, nil
}

// ConnectAllRights attaches each right to the diversion station whose
// identifier matches the right's station field. Rights naming an unknown
// station are left unconnected.
func ConnectAllRights(stations []*Diversion, rights []*DiversionRight) {
	byID := make(map[string]*Diversion, len(stations))
	for _, s := range stations {
		byID[s.ID] = s
	}
	for _, r := range rights {
		if s, ok := byID[r.Cgoto]; ok {
			s.Rights = append(s.Rights, r)
		}
	}
}
