package entity

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/lox/statemod/internal/metrics"
	"github.com/lox/statemod/internal/ts"
)

// RiverNetworkNode is one node in the river network (.rin record).
type RiverNetworkNode struct {
	ID   string
	Name string
	// Cstadn is the identifier of the next node downstream, empty at
	// the most downstream node.
	Cstadn  string
	Comment string
	// Gwmaxr is the maximum groundwater recharge limit, missing when
	// not modeled.
	Gwmaxr float64
}

// ReadRiverNetwork reads a river network file.
func ReadRiverNetwork(path string) ([]*RiverNetworkNode, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var list []*RiverNetworkNode
	scanner := bufio.NewScanner(f)
	lineNum := 0
	for scanner.Scan() {
		line := scanner.Text()
		lineNum++
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := fixedRead(line, []int{12, 24, 12, 1, 12, 1, 8})
		gwmaxr, err := parseFloat(fields[6], ts.MissingValue)
		if err != nil {
			log.Printf("Error reading %q at line %d: %v", path, lineNum, err)
			metrics.ParseErrors.WithLabelValues("rivernetwork").Inc()
			continue
		}
		list = append(list, &RiverNetworkNode{
			ID:      fields[0],
			Name:    fields[1],
			Cstadn:  fields[2],
			Comment: fields[4],
			Gwmaxr:  gwmaxr,
		})
	}
	if err := scanner.Err(); err != nil {
		return list, fmt.Errorf("read %s: %w", path, err)
	}
	return list, nil
}
