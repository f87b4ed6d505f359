package tsfile

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/lox/statemod/internal/metrics"
	"github.com/lox/statemod/internal/ts"
)

// xopBlock accumulates one operational-right summary block while its
// header and yearly rows are being scanned.
type xopBlock struct {
	id          string
	name        string
	oprType     string
	adminNum    string
	source1     string
	destination string
	yearOn      string
	yearOff     string
	firstMonth  string
	years       []int
	rows        [][12]float64
}

func (b *xopBlock) reset() {
	*b = xopBlock{}
}

// afterLabel extracts a fixed-width field following "label" in a free-text
// header line, or "" when the label is absent.
func afterLabel(line, label string, width int) string {
	pos := strings.Index(line, label)
	if pos < 0 {
		return ""
	}
	return fixedField(line, pos+len(label), width)
}

// ReadXOP reads an operational-right summary output file. The format is
// one block per right: a free-text header naming the right, a row of
// monthly values per year, and a closing "AVG" row that ends the block.
// Only the monthly layout is supported.
func ReadXOP(r io.Reader, path string, interval ts.Interval, opts ReadOptions) ([]*ts.TimeSeries, error) {
	if interval != ts.IntervalMonth {
		return nil, fmt.Errorf("read %s: only monthly operational output is supported, not %s", path, interval)
	}

	// Periods in right identifiers collide with delimited time series
	// identifiers elsewhere, so they become underscores.
	reqID := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(opts.ID), ".", "_"))

	var list []*ts.TimeSeries
	var blk xopBlock
	units := ""
	inHeader := false
	inData := false
	lineCount := 0

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		lineCount++
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !inHeader && !inData {
			if strings.HasPrefix(line, " Operational Right Summary") || strings.HasPrefix(line, " ID =") {
				inHeader = true
			}
		}
		switch {
		case inHeader:
			switch {
			case strings.HasPrefix(line, "_"):
				// Separator row under the column headings ends the
				// header section.
				inHeader = false
				inData = true
			case strings.HasPrefix(line, " Operational Right Summary"):
				units = strings.TrimSpace(line[26:])
			case strings.HasPrefix(line, " ID ="):
				blk.id = strings.ReplaceAll(afterLabel(line, "ID =", 20), ".", "_")
				blk.name = afterLabel(line, "Name =", 24)
				blk.oprType = afterLabel(line, "Opr Type =", 5)
				blk.adminNum = afterLabel(line, "Admin # =", 17)
			case strings.HasPrefix(line, " Source 1 ="):
				blk.source1 = afterLabel(line, "Source 1 =", 12)
				blk.destination = afterLabel(line, "Destination =", 12)
				blk.yearOn = afterLabel(line, "Year On =", 6)
				blk.yearOff = afterLabel(line, "Year Off =", 6)
			case strings.HasPrefix(line, "YEAR"):
				// The first month column heading tells the year type.
				blk.firstMonth = fixedField(line, 6, 8)
			}
		case inData:
			if strings.HasPrefix(line, "AVG") {
				series, err := blk.materialize(path, units, opts)
				if err != nil {
					metrics.ParseErrors.WithLabelValues("xop").Inc()
					return list, fmt.Errorf("error reading %s near line %d: %w", path, lineCount, err)
				}
				if reqID != "" {
					if strings.ToUpper(blk.id) == reqID {
						list = append(list, series)
						metrics.SeriesRead.WithLabelValues(interval.String()).Inc()
						return list, nil
					}
				} else {
					list = append(list, series)
				}
				blk.reset()
				inHeader = true
				inData = false
				continue
			}
			year, err := fixedInt(line, 0, 4)
			if err != nil || fixedField(line, 0, 4) == "" {
				log.Printf("Don't know how to parse data line %d: %s", lineCount, strings.TrimSpace(line))
				continue
			}
			var row [12]float64
			for j := 0; j < 12; j++ {
				v, err := fixedFloat(line, 4+j*8, 8)
				if err != nil {
					metrics.ParseErrors.WithLabelValues("xop").Inc()
					return list, fmt.Errorf("error reading %s near line %d: value %d: %w", path, lineCount, j+1, err)
				}
				row[j] = v
			}
			blk.years = append(blk.years, year)
			blk.rows = append(blk.rows, row)
		}
	}
	if err := scanner.Err(); err != nil {
		return list, fmt.Errorf("read %s: %w", path, err)
	}
	metrics.SeriesRead.WithLabelValues(interval.String()).Add(float64(len(list)))
	return list, nil
}

// materialize builds a time series from an accumulated block.
func (b *xopBlock) materialize(path, units string, opts ReadOptions) (*ts.TimeSeries, error) {
	if len(b.years) == 0 {
		return nil, fmt.Errorf("block %q has no data rows", b.id)
	}
	var yt ts.YearType
	switch strings.ToUpper(b.firstMonth) {
	case "JAN":
		yt = ts.YearCalendar
	case "OCT":
		yt = ts.YearWater
	case "NOV":
		yt = ts.YearNovToOct
	default:
		return nil, fmt.Errorf("block %q: cannot handle year starting with month %q", b.id, b.firstMonth)
	}

	series := ts.New(ts.IntervalMonth)
	series.ID = b.id
	series.Description = b.name
	series.DataType = "Operation"
	series.StartOriginal = ts.Date{Year: b.years[0] + yt.StartYearOffset(), Month: yt.StartMonth()}
	series.EndOriginal = ts.Date{Year: b.years[len(b.years)-1], Month: yt.EndMonth()}
	if opts.Start != nil {
		series.Start = *opts.Start
	} else {
		series.Start = series.StartOriginal
	}
	if opts.End != nil {
		series.End = *opts.End
	} else {
		series.End = series.EndOriginal
	}
	series.Units = units
	series.InputName = path
	series.AddGenesis(fmt.Sprintf("Read StateMod TS for %s to %s from %q", series.Start, series.End, path))
	series.SetProperty("OprType", b.oprType)
	series.SetProperty("AdminNum", b.adminNum)
	series.SetProperty("Source1", b.source1)
	series.SetProperty("Destination", b.destination)
	series.SetProperty("YearOn", b.yearOn)
	series.SetProperty("YearOff", b.yearOff)

	if opts.ReadData {
		if err := series.AllocateDataSpace(); err != nil {
			return nil, err
		}
		for i, year := range b.years {
			d := ts.Date{Year: year + yt.StartYearOffset(), Month: yt.StartMonth()}
			for j := 0; j < 12; j++ {
				series.SetValue(d, b.rows[i][j])
				d = d.AddMonths(1)
			}
		}
	}
	return series, nil
}
