package tsfile

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/lox/statemod/internal/metrics"
	"github.com/lox/statemod/internal/ts"
)

// Comment markers used in StateMod time series files.
const (
	PermanentComment    = "#"
	NonPermanentComment = "#>"
)

// ReadOptions control how a time series file is read.
type ReadOptions struct {
	// ID restricts the read to one station. Empty reads every station.
	ID string
	// Start and End clip or extend the allocated period. Both must be
	// set to take effect; otherwise the file header period is used.
	Start *ts.Date
	End   *ts.Date
	// ReadData false establishes identifiers and periods only.
	ReadData bool
}

// ReadFile reads a StateMod time series file, detecting the data
// interval from the content. *.xop operational output files are
// dispatched to the XOP reader.
func ReadFile(path string, opts ReadOptions) ([]*ts.TimeSeries, error) {
	interval, err := DetectInterval(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	if strings.HasSuffix(strings.ToUpper(path), "XOP") {
		return ReadXOP(f, path, interval, opts)
	}
	return Read(f, path, interval, opts)
}

// fixedField returns the trimmed substring [start, start+width), treating
// anything past the end of a short line as empty.
func fixedField(line string, start, width int) string {
	if start >= len(line) {
		return ""
	}
	end := start + width
	if end > len(line) {
		end = len(line)
	}
	return strings.TrimSpace(line[start:end])
}

func fixedInt(line string, start, width int) (int, error) {
	s := fixedField(line, start, width)
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}

func fixedFloat(line string, start, width int) (float64, error) {
	s := fixedField(line, start, width)
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

// header is the parsed period line of a time series file.
type header struct {
	m1, y1, m2, y2 int
	units          string
	yearType       ts.YearType
}

// parseHeader parses the fixed-width period header. Some archived demand
// files carry a malformed header with the start month shifted one column
// left, detectable by a "/" in column 3; that layout is compensated for
// with a warning.
func parseHeader(line, path string) (header, error) {
	var h header
	offsets := [8]int{0, 6, 15, 21, 25, 30} // m1, y1, m2, y2, units, yearType
	widths := [8]int{5, 4, 5, 4, 5, 5}
	if len(line) > 3 && line[3] == '/' {
		log.Printf("Non-standard header for file %q, allowing with work-around", path)
		offsets = [8]int{0, 4, 13, 19, 23, 28}
		widths = [8]int{3, 4, 5, 4, 5, 5}
	}
	var err error
	if h.m1, err = fixedInt(line, offsets[0], widths[0]); err != nil {
		return h, fmt.Errorf("start month: %w", err)
	}
	if h.y1, err = fixedInt(line, offsets[1], widths[1]); err != nil {
		return h, fmt.Errorf("start year: %w", err)
	}
	if h.m2, err = fixedInt(line, offsets[2], widths[2]); err != nil {
		return h, fmt.Errorf("end month: %w", err)
	}
	if h.y2, err = fixedInt(line, offsets[3], widths[3]); err != nil {
		return h, fmt.Errorf("end year: %w", err)
	}
	h.units = fixedField(line, offsets[4], widths[4])
	h.yearType, _ = ts.ParseYearType(fixedField(line, offsets[5], widths[5]))
	return h, nil
}

// Read reads one or more time series from a standard StateMod time
// series file with the given interval. The file interleaves stations
// within each reporting period; the station list is established during
// the first period and later periods are matched positionally, assuming
// the file keeps a stable station order throughout.
func Read(r io.Reader, path string, interval ts.Interval, opts ReadOptions) ([]*ts.TimeSeries, error) {
	if interval != ts.IntervalDay && interval != ts.IntervalMonth {
		return nil, fmt.Errorf("read %s: unsupported interval %s", path, interval)
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	lineCount := 0
	var hdr header
	readFailure := func(err error) error {
		metrics.ParseErrors.WithLabelValues("timeseries").Inc()
		return fmt.Errorf("error reading %s near line %d, header indicates interval %s, period %d/%d to %d/%d, units %q: %w",
			path, lineCount, interval, hdr.m1, hdr.y1, hdr.m2, hdr.y2, hdr.units, err)
	}

	// Skip comments and blanks up to the header line.
	i := 0
	for ; i < len(lines); i++ {
		lineCount++
		trimmed := strings.TrimSpace(lines[i])
		if trimmed != "" && !strings.HasPrefix(trimmed, PermanentComment) {
			break
		}
	}
	if i >= len(lines) {
		return nil, readFailure(fmt.Errorf("no header line"))
	}

	var err error
	hdr, err = parseHeader(lines[i], path)
	if err != nil {
		return nil, readFailure(err)
	}
	i++

	headerStart := ts.Date{Year: hdr.y1, Month: hdr.m1}
	headerEnd := ts.Date{Year: hdr.y2, Month: hdr.m2}
	if interval == ts.IntervalDay {
		headerStart.Day = 1
		headerEnd.Day = ts.DaysInMonth(hdr.y2, hdr.m2)
	}

	// Field offsets within a data line.
	idStart := 5
	if interval == ts.IntervalDay {
		idStart = 9
	}
	const idWidth = 12

	standard := true
	initYear := hdr.y1
	endYear := hdr.y2
	if hdr.y1 == 0 {
		// A start year of zero marks a 12-value long-term average
		// record with no real year, anchored at synthetic year 0.
		standard = false
		initYear = 0
		if hdr.m2 < hdr.m1 {
			endYear = 1
		}
	} else if interval == ts.IntervalMonth && hdr.m2 < hdr.m1 {
		// Monthly non-calendar data: the year label on the first data
		// line is the water/irrigation year, one ahead of the header's
		// calendar start year.
		initYear = hdr.y1 + 1
	}
	initMonth := hdr.m1

	reqID := strings.ToUpper(strings.TrimSpace(opts.ID))

	var list []*ts.TimeSeries
	var target *ts.TimeSeries
	reqFound := false
	singleTS := false
	numts := 0
	currentTSindex := 0
	dataLineCount := 0
	pendingLine := ""
	havePending := false

	for {
		var line string
		if dataLineCount == 0 {
			if i >= len(lines) {
				break
			}
			line = lines[i]
			i++
			lineCount++
			if strings.HasPrefix(line, PermanentComment) {
				continue
			}
			if strings.TrimSpace(line) == "" {
				continue
			}
			// Peek the next data line to detect a file holding a single
			// station repeated every period: same identifier, different
			// year.
			if i < len(lines) {
				pendingLine = lines[i]
				i++
				havePending = true
				y1 := fixedField(line, 0, 5)
				y2 := fixedField(pendingLine, 0, 5)
				id1 := fixedField(line, idStart, idWidth)
				id2 := fixedField(pendingLine, idStart, idWidth)
				if id1 != "" && id1 == id2 && y1 != y2 {
					singleTS = true
					log.Printf("Single time series detected in %q, reading all", path)
					if reqID != "" && strings.ToUpper(id1) != reqID {
						log.Printf("Requested ID is %q but file contains only %q; reading the file's data but using the requested identifier", opts.ID, id1)
					}
				}
			}
		} else if havePending {
			line = pendingLine
			havePending = false
			lineCount++
		} else {
			if i >= len(lines) {
				break
			}
			line = lines[i]
			i++
			lineCount++
		}

		if strings.HasPrefix(line, PermanentComment) {
			continue
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		dataLineCount++

		id := fixedField(line, idStart, idWidth)
		if reqID != "" && !singleTS && strings.ToUpper(id) != reqID {
			continue
		}

		currentYear := initYear
		currentMonth := initMonth
		if standard {
			if interval == ts.IntervalDay {
				if currentYear, err = fixedInt(line, 0, 4); err != nil {
					return list, readFailure(fmt.Errorf("year field: %w", err))
				}
				if currentMonth, err = fixedInt(line, 4, 4); err != nil {
					return list, readFailure(fmt.Errorf("month field: %w", err))
				}
			} else {
				if currentYear, err = fixedInt(line, 0, 5); err != nil {
					return list, readFailure(fmt.Errorf("year field: %w", err))
				}
			}
		}

		inFirstPeriod := currentYear == initYear
		if interval == ts.IntervalDay {
			inFirstPeriod = inFirstPeriod && currentMonth == initMonth
		}

		if inFirstPeriod {
			var series *ts.TimeSeries
			if reqID == "" {
				series = ts.New(interval)
				series.ID = id
			} else if strings.ToUpper(id) == reqID || singleTS {
				series = ts.New(interval)
				series.ID = opts.ID
				reqFound = true
				numts = 1
			}
			if series != nil {
				if opts.Start != nil && opts.End != nil {
					series.Start = *opts.Start
					series.End = *opts.End
				} else {
					series.Start = ts.Date{Year: hdr.y1, Month: hdr.m1}
					series.End = ts.Date{Year: endYear, Month: hdr.m2}
					if interval == ts.IntervalDay {
						series.Start.Day = 1
						series.End.Day = ts.DaysInMonth(endYear, hdr.m2)
					}
				}
				series.StartOriginal = headerStart
				series.EndOriginal = headerEnd
				if opts.ReadData {
					if err := series.AllocateDataSpace(); err != nil {
						return list, readFailure(err)
					}
				}
				series.Units = hdr.units
				series.InputName = path
				series.Description = id
				series.AddGenesis(fmt.Sprintf("Read StateMod TS for %s to %s from %q", series.Start, series.End, path))
				if !reqFound {
					list = append(list, series)
					numts++
				} else {
					target = series
				}
			}
		} else if !opts.ReadData {
			// Identifiers and period are established; nothing further
			// to collect.
			break
		}

		if numts == 0 {
			continue
		}

		// First period grows the list; later periods walk the
		// established station order positionally, wrapping the index.
		// This assumes the number and order of stations is the same in
		// every period of the file.
		if currentTSindex >= numts {
			currentTSindex = 0
		}
		var current *ts.TimeSeries
		if reqFound {
			current = target
		} else {
			current = list[currentTSindex]
		}

		var date ts.Date
		if interval == ts.IntervalDay {
			date = ts.Date{Year: currentYear, Month: currentMonth, Day: 1}
		} else {
			y := currentYear
			if standard && hdr.yearType != ts.YearCalendar {
				// Values are grouped under the water/irrigation year
				// label; the first month belongs to the prior calendar
				// year.
				y = currentYear - 1
			}
			date = ts.Date{Year: y, Month: hdr.m1}
		}
		if opts.End != nil && date.After(*opts.End) {
			break
		}

		if opts.ReadData {
			ndata := 12
			doffset := 17
			if interval == ts.IntervalDay {
				ndata = ts.DaysInMonth(date.Year, date.Month)
				doffset = 21
			}
			for j := 0; j < ndata; j++ {
				v, err := fixedFloat(line, doffset+j*8, 8)
				if err != nil {
					return list, readFailure(fmt.Errorf("value %d: %w", j+1, err))
				}
				current.SetValue(date, v)
				if interval == ts.IntervalDay {
					date = date.AddDays(1)
				} else {
					date = date.AddMonths(1)
				}
			}
		}
		currentTSindex++
	}

	if reqFound {
		metrics.SeriesRead.WithLabelValues(interval.String()).Inc()
		return []*ts.TimeSeries{target}, nil
	}
	metrics.SeriesRead.WithLabelValues(interval.String()).Add(float64(len(list)))
	return list, nil
}
