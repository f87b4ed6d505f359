package tsfile

import (
	"bytes"
	"strings"
	"testing"

	"github.com/lox/statemod/internal/ts"
)

func newMonthlySeries(t *testing.T, id string, start, end ts.Date) *ts.TimeSeries {
	t.Helper()
	s := ts.New(ts.IntervalMonth)
	s.ID = id
	s.Units = "ACFT"
	s.Start = start
	s.End = end
	if err := s.AllocateDataSpace(); err != nil {
		t.Fatalf("AllocateDataSpace: %v", err)
	}
	return s
}

func findDataLine(t *testing.T, out, prefix string) string {
	t.Helper()
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, prefix) {
			if len(line) < 123 {
				t.Fatalf("data line length = %d, want >= 123", len(line))
			}
			return line
		}
	}
	t.Fatalf("no data line with prefix %q in output", prefix)
	return ""
}

func TestWriteReadRoundTripMonthly(t *testing.T) {
	start := ts.Date{Year: 1978, Month: 1}
	end := ts.Date{Year: 1979, Month: 12}

	s1 := newMonthlySeries(t, "STA1", start, end)
	s2 := newMonthlySeries(t, "STA2", start, end)
	n := 0.0
	for d := start; !d.After(end); d = d.AddMonths(1) {
		s1.SetValue(d, 100.25+n)
		s2.SetValue(d, 200.5+n)
		n++
	}

	var buf bytes.Buffer
	if err := Write(&buf, []*ts.TimeSeries{s1, s2}, WriteOptions{}); err != nil {
		t.Fatalf("Write: %v", err)
	}

	list, err := Read(strings.NewReader(buf.String()), "roundtrip.ddm", ts.IntervalMonth, ReadOptions{ReadData: true})
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("len(list) = %d, want 2", len(list))
	}
	for i, orig := range []*ts.TimeSeries{s1, s2} {
		got := list[i]
		if got.ID != orig.ID {
			t.Errorf("series %d ID = %q, want %q", i, got.ID, orig.ID)
		}
		for d := start; !d.After(end); d = d.AddMonths(1) {
			if gv, ov := got.Value(d), orig.Value(d); gv != ov {
				t.Errorf("series %s %s = %v, want %v", orig.ID, d, gv, ov)
			}
		}
	}
}

func TestWritePrintedTotal(t *testing.T) {
	s := newMonthlySeries(t, "STA1", ts.Date{Year: 1978, Month: 1}, ts.Date{Year: 1978, Month: 12})
	s.SetValue(ts.Date{Year: 1978, Month: 1}, 1234.567)

	var buf bytes.Buffer
	if err := Write(&buf, []*ts.TimeSeries{s}, WriteOptions{}); err != nil {
		t.Fatalf("Write: %v", err)
	}

	dataLine := findDataLine(t, buf.String(), "1978 ")

	// The January column rounds 1234.567 to two digits, and the ACFT
	// total is the sum of the printed values, not the stored ones.
	if got := dataLine[17:25]; got != " 1234.57" {
		t.Errorf("January column = %q, want \" 1234.57\"", got)
	}
	if got := dataLine[113:123]; got != "   1234.57" {
		t.Errorf("total column = %q, want \"   1234.57\"", got)
	}
}

func TestWriteAllMissingTotal(t *testing.T) {
	s := newMonthlySeries(t, "STA1", ts.Date{Year: 1978, Month: 1}, ts.Date{Year: 1978, Month: 12})

	var buf bytes.Buffer
	if err := Write(&buf, []*ts.TimeSeries{s}, WriteOptions{}); err != nil {
		t.Fatalf("Write: %v", err)
	}

	list, err := Read(strings.NewReader(buf.String()), "missing.ddm", ts.IntervalMonth, ReadOptions{ReadData: true})
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("len(list) = %d, want 1", len(list))
	}
	for d := s.Start; !d.After(s.End); d = d.AddMonths(1) {
		if v := list[0].Value(d); !ts.IsMissing(v) {
			t.Errorf("%s = %v, want missing", d, v)
		}
	}
}

func TestWriteWaterYearRoundTrip(t *testing.T) {
	start := ts.Date{Year: 1978, Month: 1}
	end := ts.Date{Year: 1978, Month: 12}
	s := newMonthlySeries(t, "STA1", start, end)
	n := 0.0
	for d := start; !d.After(end); d = d.AddMonths(1) {
		s.SetValue(d, 10.5+n)
		n++
	}

	var buf bytes.Buffer
	if err := Write(&buf, []*ts.TimeSeries{s}, WriteOptions{YearType: ts.YearWater}); err != nil {
		t.Fatalf("Write: %v", err)
	}

	// A calendar 1978 period spans water years 1978 and 1979, so the
	// output period is Oct 1977 through Sep 1979.
	if !strings.Contains(buf.String(), "   10/1977  -      9/1979") {
		t.Errorf("output header does not carry the water-year period:\n%s", buf.String())
	}

	list, err := Read(strings.NewReader(buf.String()), "wyr.ddm", ts.IntervalMonth, ReadOptions{ReadData: true})
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("len(list) = %d, want 1", len(list))
	}
	for d := start; !d.After(end); d = d.AddMonths(1) {
		if gv, ov := list[0].Value(d), s.Value(d); gv != ov {
			t.Errorf("%s = %v, want %v", d, gv, ov)
		}
	}
}

func TestWriteReadRoundTripDaily(t *testing.T) {
	s := ts.New(ts.IntervalDay)
	s.ID = "STA1"
	s.Units = "CFS"
	s.Start = ts.Date{Year: 1978, Month: 1, Day: 1}
	s.End = ts.Date{Year: 1978, Month: 1, Day: 31}
	if err := s.AllocateDataSpace(); err != nil {
		t.Fatalf("AllocateDataSpace: %v", err)
	}
	for day := 1; day <= 31; day++ {
		s.SetValue(ts.Date{Year: 1978, Month: 1, Day: day}, float64(day)+0.5)
	}

	var buf bytes.Buffer
	if err := Write(&buf, []*ts.TimeSeries{s}, WriteOptions{}); err != nil {
		t.Fatalf("Write: %v", err)
	}

	list, err := Read(strings.NewReader(buf.String()), "roundtrip.ddd", ts.IntervalDay, ReadOptions{ReadData: true})
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("len(list) = %d, want 1", len(list))
	}
	for day := 1; day <= 31; day++ {
		d := ts.Date{Year: 1978, Month: 1, Day: day}
		if gv, ov := list[0].Value(d), s.Value(d); gv != ov {
			t.Errorf("%s = %v, want %v", d, gv, ov)
		}
	}
}

func TestWriteReadRoundTripDailyMultiMonth(t *testing.T) {
	s := ts.New(ts.IntervalDay)
	s.ID = "STA1"
	s.Units = "CFS"
	s.Start = ts.Date{Year: 1978, Month: 1, Day: 1}
	s.End = ts.Date{Year: 1978, Month: 3, Day: 31}
	if err := s.AllocateDataSpace(); err != nil {
		t.Fatalf("AllocateDataSpace: %v", err)
	}
	for d := s.Start; !d.After(s.End); d = d.AddDays(1) {
		s.SetValue(d, float64(d.Month*100+d.Day)+0.25)
	}

	var buf bytes.Buffer
	if err := Write(&buf, []*ts.TimeSeries{s}, WriteOptions{}); err != nil {
		t.Fatalf("Write: %v", err)
	}

	list, err := Read(strings.NewReader(buf.String()), "roundtrip.ddd", ts.IntervalDay, ReadOptions{ReadData: true})
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("len(list) = %d, want 1", len(list))
	}
	for d := s.Start; !d.After(s.End); d = d.AddDays(1) {
		if gv, ov := list[0].Value(d), s.Value(d); gv != ov {
			t.Errorf("%s = %v, want %v", d, gv, ov)
		}
	}
}

func TestWriteExplicitZeroPrecision(t *testing.T) {
	s := newMonthlySeries(t, "STA1", ts.Date{Year: 1978, Month: 1}, ts.Date{Year: 1978, Month: 12})
	s.SetValue(ts.Date{Year: 1978, Month: 1}, 1234.567)

	precision := 0
	var buf bytes.Buffer
	if err := Write(&buf, []*ts.TimeSeries{s}, WriteOptions{Precision: &precision}); err != nil {
		t.Fatalf("Write: %v", err)
	}

	dataLine := findDataLine(t, buf.String(), "1978 ")
	if got := dataLine[17:25]; got != "    1235" {
		t.Errorf("January column = %q, want \"    1235\"", got)
	}
}

func TestWriteUnitsDefaultPrecision(t *testing.T) {
	// With no explicit precision the writer selects one from the data
	// units: ACFT carries two fraction digits, dropped per value when
	// the column would overflow.
	s := newMonthlySeries(t, "STA1", ts.Date{Year: 1978, Month: 1}, ts.Date{Year: 1978, Month: 12})
	s.SetValue(ts.Date{Year: 1978, Month: 1}, 1234.567)
	s.SetValue(ts.Date{Year: 1978, Month: 2}, 100000.123)

	var buf bytes.Buffer
	if err := Write(&buf, []*ts.TimeSeries{s}, WriteOptions{}); err != nil {
		t.Fatalf("Write: %v", err)
	}

	dataLine := findDataLine(t, buf.String(), "1978 ")
	if got := dataLine[17:25]; got != " 1234.57" {
		t.Errorf("January column = %q, want \" 1234.57\"", got)
	}
	if got := dataLine[25:33]; got != "  100000" {
		t.Errorf("February column = %q, want \"  100000\"", got)
	}
}

func TestWriteMissingDVOverride(t *testing.T) {
	s := newMonthlySeries(t, "STA1", ts.Date{Year: 1978, Month: 1}, ts.Date{Year: 1978, Month: 12})

	missingDV := 0.0
	var buf bytes.Buffer
	if err := Write(&buf, []*ts.TimeSeries{s}, WriteOptions{MissingDV: &missingDV}); err != nil {
		t.Fatalf("Write: %v", err)
	}

	dataLine := findDataLine(t, buf.String(), "1978 ")
	if got := dataLine[17:25]; got != "    0.00" {
		t.Errorf("January column = %q, want \"    0.00\"", got)
	}
	if strings.Contains(dataLine, "-999") {
		t.Errorf("data line carries the default sentinel despite the override:\n%s", dataLine)
	}
}

func TestWriteSkipsMismatchedInterval(t *testing.T) {
	monthly := newMonthlySeries(t, "STA1", ts.Date{Year: 1978, Month: 1}, ts.Date{Year: 1978, Month: 12})
	daily := ts.New(ts.IntervalDay)
	daily.ID = "STA2"

	var buf bytes.Buffer
	if err := Write(&buf, []*ts.TimeSeries{monthly, daily}, WriteOptions{}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if strings.Contains(buf.String(), "STA2") {
		t.Error("output contains the skipped daily series")
	}
}

func TestWriteEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, nil, WriteOptions{}); err == nil {
		t.Error("Write with no series succeeded, want error")
	}
	if err := Write(&buf, []*ts.TimeSeries{nil}, WriteOptions{}); err == nil {
		t.Error("Write with only nil series succeeded, want error")
	}
}
