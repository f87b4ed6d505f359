package tsfile

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/lox/statemod/internal/ts"
)

// WriteOptions control formatting of a time series file.
type WriteOptions struct {
	// Start and End override the output period. Both must be set to
	// take effect; otherwise the union of the series periods is used,
	// aligned to whole years of the year type.
	Start *ts.Date
	End   *ts.Date
	// YearType groups monthly rows. Ignored for daily output.
	YearType ts.YearType
	// Precision requests fraction digits for values. Negative means "at
	// most", reduced per value when a column would overflow. Nil selects
	// a precision from the data units via PrecisionForUnits.
	Precision *int
	// MissingDV is written in place of missing values. Nil selects the
	// standard -999 sentinel.
	MissingDV *float64
}

// WriteFile writes a list of time series to a StateMod time series file.
func WriteFile(path string, list []*ts.TimeSeries, opts WriteOptions) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Write(f, list, opts); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// labelYear returns the year-type label year containing the date. Water
// and irrigation years are labeled by the calendar year they end in.
func labelYear(d ts.Date, yt ts.YearType) int {
	if d.Month >= yt.StartMonth() && yt.StartYearOffset() < 0 {
		return d.Year + 1
	}
	return d.Year
}

// Write writes a list of time series in StateMod fixed-width format.
// All series must share one interval; series with a different interval
// are skipped with a warning. The header and data follow the year type,
// and each row's total column is computed from the values as printed,
// so a reader recomputing the total from the row reproduces it exactly.
func Write(w io.Writer, list []*ts.TimeSeries, opts WriteOptions) error {
	if len(list) == 0 {
		return fmt.Errorf("no time series to write")
	}

	interval := ts.IntervalUnknown
	var out []*ts.TimeSeries
	for _, t := range list {
		if t == nil {
			continue
		}
		if interval == ts.IntervalUnknown {
			interval = t.Interval
		}
		if t.Interval != interval {
			log.Printf("Skipping time series %q with interval %s (writing %s data)", t.ID, t.Interval, interval)
			continue
		}
		out = append(out, t)
	}
	if len(out) == 0 {
		return fmt.Errorf("no time series to write")
	}
	if interval != ts.IntervalDay && interval != ts.IntervalMonth {
		return fmt.Errorf("unsupported interval %s", interval)
	}

	yt := opts.YearType
	if interval == ts.IntervalDay {
		yt = ts.YearCalendar
	}
	units := out[0].Units

	missingDV := ts.MissingValue
	if opts.MissingDV != nil {
		missingDV = *opts.MissingDV
	}

	var start, end ts.Date
	if opts.Start != nil && opts.End != nil {
		start, end = *opts.Start, *opts.End
	} else {
		start, end = out[0].Start, out[0].End
		for _, t := range out[1:] {
			if t.Start.Before(start) {
				start = t.Start
			}
			if end.Before(t.End) {
				end = t.End
			}
		}
	}
	// Align to whole years of the year type.
	y1 := labelYear(start, yt)
	y2 := labelYear(end, yt)
	start = ts.Date{Year: y1 + yt.StartYearOffset(), Month: yt.StartMonth()}
	end = ts.Date{Year: y2, Month: yt.EndMonth()}
	if interval == ts.IntervalDay {
		start.Day = 1
		end.Day = ts.DaysInMonth(end.Year, end.Month)
	}

	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "#>\n")
	fmt.Fprintf(bw, "#> StateMod time series file\n")
	fmt.Fprintf(bw, "#> Written %s\n", time.Now().Format("2006-01-02 15:04"))
	fmt.Fprintf(bw, "#>\n")
	fmt.Fprintf(bw, "#> Interval : %s\n", interval)
	if interval == ts.IntervalMonth {
		fmt.Fprintf(bw, "#> YearType : %s\n", yt)
	}
	fmt.Fprintf(bw, "#> Units    : %s\n", units)
	fmt.Fprintf(bw, "#> Period   : %s to %s\n", start, end)
	fmt.Fprintf(bw, "#> Stations : %d\n", len(out))
	for _, t := range out {
		fmt.Fprintf(bw, "#>   %-12s %s\n", t.ID, t.Description)
	}
	fmt.Fprintf(bw, "#>\n")
	fmt.Fprintf(bw, "#EndHeader\n")

	fmt.Fprintf(bw, "%5d/%4d  -  %5d/%4d%5s%5s\n",
		start.Month, start.Year, end.Month, end.Year, units, yt.Code())

	formatValue := func(v float64, width int) string {
		if ts.IsMissing(v) {
			v = missingDV
		}
		var p int
		if opts.Precision != nil {
			p = SelectPrecision(*opts.Precision, width, v)
		} else {
			p = PrecisionForUnits(units, width, v)
		}
		return fmt.Sprintf("%*.*f", width, p, v)
	}

	sum := SumUnits(units)

	writeRow := func(prefix string, t *ts.TimeSeries, first ts.Date, n int, step func(ts.Date) ts.Date) {
		bw.WriteString(prefix)
		total := 0.0
		count := 0
		d := first
		for j := 0; j < n; j++ {
			v := t.Value(d)
			s := formatValue(v, 8)
			bw.WriteString(s)
			// The total reflects the values as printed, not the stored
			// values, so rounding in the columns carries into it.
			if !ts.IsMissing(v) {
				printed, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
				if err == nil {
					total += printed
					count++
				}
			}
			d = step(d)
		}
		if count == 0 {
			bw.WriteString(formatValue(missingDV, 10))
		} else {
			if !sum {
				total /= float64(count)
			}
			bw.WriteString(formatValue(total, 10))
		}
		bw.WriteString("\n")
	}

	if interval == ts.IntervalMonth {
		for year := y1; year <= y2; year++ {
			first := ts.Date{Year: year + yt.StartYearOffset(), Month: yt.StartMonth()}
			for _, t := range out {
				prefix := fmt.Sprintf("%4d %-12s", year, t.ID)
				writeRow(prefix, t, first, 12, func(d ts.Date) ts.Date { return d.AddMonths(1) })
			}
		}
	} else {
		for d := (ts.Date{Year: start.Year, Month: start.Month, Day: 1}); !d.After(end); d = d.AddMonths(1) {
			ndays := ts.DaysInMonth(d.Year, d.Month)
			for _, t := range out {
				prefix := fmt.Sprintf("%4d%4d %-12s", d.Year, d.Month, t.ID)
				bw.WriteString(prefix)
				total := 0.0
				count := 0
				day := d
				// Short months are padded to 31 columns with zeros; a
				// reader only consumes days the month actually has.
				for j := 0; j < 31; j++ {
					if j >= ndays {
						bw.WriteString(formatValue(0, 8))
						continue
					}
					v := t.Value(day)
					s := formatValue(v, 8)
					bw.WriteString(s)
					if !ts.IsMissing(v) {
						printed, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
						if err == nil {
							total += printed
							count++
						}
					}
					day = day.AddDays(1)
				}
				if count == 0 {
					bw.WriteString(formatValue(missingDV, 10))
				} else {
					if !sum {
						total /= float64(count)
					}
					bw.WriteString(formatValue(total, 10))
				}
				bw.WriteString("\n")
			}
		}
	}

	return bw.Flush()
}
