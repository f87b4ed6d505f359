package entity

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/lox/statemod/internal/metrics"
)

// ReturnFlow is one return flow assignment on a diversion or well
// station: a percentage of return flow routed to a river node through a
// delay table.
type ReturnFlow struct {
	// Crtnid is the river node receiving the return flow.
	Crtnid string
	// Pcttot is the percent of return flow routed to the node.
	Pcttot float64
	// Irtndl is the delay table identifier.
	Irtndl int
}

// Diversion is one diversion station (.dds record, two physical lines
// plus optional efficiency and return flow lines).
type Diversion struct {
	ID   string
	Name string
	// Cgoto is the river node identifier the station diverts at.
	Cgoto string
	// Idivsw is the on/off switch.
	Idivsw int
	// Divcap is the structure capacity in CFS.
	Divcap float64
	// Ireptyp controls replacement reservoir behavior.
	Ireptyp int
	// Cdividy identifies the daily station used for daily data.
	Cdividy  string
	Username string
	// Idvcom selects the demand data source type.
	Idvcom int
	// Divefc is the annual system efficiency percent; negative means
	// monthly efficiencies follow.
	Divefc float64
	// DivefcMonthly holds the 12 monthly efficiencies when Divefc is
	// negative.
	DivefcMonthly [12]float64
	// Area is the irrigated acreage.
	Area float64
	// Irturn is the use type.
	Irturn int
	// Demsrc is the irrigated acreage source.
	Demsrc int

	ReturnFlows []ReturnFlow
	// Rights is populated by ConnectAllRights.
	Rights []*DiversionRight
}

// ReadDiversions reads a diversion station file. Each station spans two
// fixed-width lines, optionally followed by a monthly efficiency line
// and one line per return flow.
func ReadDiversions(path string) ([]*Diversion, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var list []*Diversion
	scanner := bufio.NewScanner(f)
	lineNum := 0

	next := func() (string, bool) {
		for scanner.Scan() {
			line := scanner.Text()
			lineNum++
			if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
				continue
			}
			return line, true
		}
		return "", false
	}

	recordErr := func(err error) {
		log.Printf("Error reading %q at line %d: %v", path, lineNum, err)
		metrics.ParseErrors.WithLabelValues("diversion").Inc()
	}

	for {
		line, ok := next()
		if !ok {
			break
		}
		d := &Diversion{}
		fields := fixedRead(line, []int{12, 24, 12, 8, 8, 8, 12})
		d.ID = fields[0]
		d.Name = fields[1]
		d.Cgoto = fields[2]
		d.Cdividy = fields[6]
		var err error
		if d.Idivsw, err = parseInt(fields[3], 1); err != nil {
			recordErr(err)
			continue
		}
		if d.Divcap, err = parseFloat(fields[4], 0); err != nil {
			recordErr(err)
			continue
		}
		if d.Ireptyp, err = parseInt(fields[5], 0); err != nil {
			recordErr(err)
			continue
		}

		line, ok = next()
		if !ok {
			recordErr(fmt.Errorf("station %q truncated before second line", d.ID))
			break
		}
		fields = fixedRead(line, []int{12, 24, 8, 8, 8, 8, 8, 8})
		d.Username = fields[1]
		nrtn := 0
		if d.Idvcom, err = parseInt(fields[2], 1); err != nil {
			recordErr(err)
			continue
		}
		if nrtn, err = parseInt(fields[3], 0); err != nil {
			recordErr(err)
			continue
		}
		if d.Divefc, err = parseFloat(fields[4], 0); err != nil {
			recordErr(err)
			continue
		}
		if d.Area, err = parseFloat(fields[5], 0); err != nil {
			recordErr(err)
			continue
		}
		if d.Irturn, err = parseInt(fields[6], 1); err != nil {
			recordErr(err)
			continue
		}
		if d.Demsrc, err = parseInt(fields[7], 0); err != nil {
			recordErr(err)
			continue
		}

		if d.Divefc < 0 {
			line, ok = next()
			if !ok {
				recordErr(fmt.Errorf("station %q truncated before monthly efficiencies", d.ID))
				break
			}
			widths := make([]int, 12)
			for i := range widths {
				widths[i] = 8
			}
			effs := fixedRead(line, widths)
			bad := false
			for i, s := range effs {
				if d.DivefcMonthly[i], err = parseFloat(s, 0); err != nil {
					recordErr(err)
					bad = true
					break
				}
			}
			if bad {
				continue
			}
		}

		bad := false
		for i := 0; i < nrtn; i++ {
			line, ok = next()
			if !ok {
				recordErr(fmt.Errorf("station %q truncated in return flows", d.ID))
				bad = true
				break
			}
			rf := ReturnFlow{Pcttot: 100, Irtndl: 1}
			fields = fixedRead(line, []int{36, 12, 8, 8})
			rf.Crtnid = fields[1]
			if rf.Pcttot, err = parseFloat(fields[2], 100); err != nil {
				recordErr(err)
				bad = true
				break
			}
			if rf.Irtndl, err = parseInt(fields[3], 1); err != nil {
				recordErr(err)
				bad = true
				break
			}
			d.ReturnFlows = append(d.ReturnFlows, rf)
		}
		if bad {
			continue
		}

		list = append(list, d)
	}
	if err := scanner.Err(); err != nil {
		return list, fmt.Errorf("read %s: %w", path, err)
	}
	return list, nil
}
