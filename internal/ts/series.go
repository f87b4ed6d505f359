package ts

import "fmt"

// Missing value sentinels used throughout StateMod files.
const (
	MissingInt   = -999
	MissingValue = -999.0

	missingFloor   = -999.1
	missingCeiling = -998.9
)

// IsMissing reports whether a value is the missing sentinel, allowing for
// rounding noise introduced by formatting.
func IsMissing(v float64) bool {
	return v > missingFloor && v < missingCeiling
}

// IsMissingInt reports whether an integer is the missing sentinel.
func IsMissingInt(v int) bool {
	return v == MissingInt
}

// TimeSeries is one station's data read from or written to a StateMod
// time series file. Storage is allocated from Start to End inclusive at
// the series interval.
type TimeSeries struct {
	ID          string
	Description string
	DataType    string
	Units       string
	InputName   string
	Interval    Interval

	Start Date
	End   Date
	// Header period from the file, which may differ from the allocated
	// period when a caller requests a sub-period.
	StartOriginal Date
	EndOriginal   Date

	Genesis    []string
	Properties map[string]string

	values []float64
}

// New returns an empty series with the given interval. Data space is not
// allocated until the period is set and AllocateDataSpace is called.
func New(interval Interval) *TimeSeries {
	return &TimeSeries{Interval: interval}
}

// AllocateDataSpace sizes the backing storage for the period [Start, End]
// and fills it with the missing value.
func (t *TimeSeries) AllocateDataSpace() error {
	n := 0
	switch t.Interval {
	case IntervalMonth:
		n = t.End.absMonth() - t.Start.absMonth() + 1
	case IntervalDay:
		for m := t.Start.absMonth(); m <= t.End.absMonth(); m++ {
			y := m / 12
			if m < 0 && m%12 != 0 {
				y = (m - 11) / 12
			}
			n += DaysInMonth(y, m-y*12+1)
		}
		n -= t.Start.Day - 1
		n -= DaysInMonth(t.End.Year, t.End.Month) - t.End.Day
	default:
		return fmt.Errorf("cannot allocate data space for %s interval", t.Interval)
	}
	if n <= 0 {
		return fmt.Errorf("invalid period %s to %s", t.Start, t.End)
	}
	t.values = make([]float64, n)
	for i := range t.values {
		t.values[i] = MissingValue
	}
	return nil
}

// HasData reports whether data space has been allocated.
func (t *TimeSeries) HasData() bool {
	return t.values != nil
}

func (t *TimeSeries) index(d Date) int {
	switch t.Interval {
	case IntervalMonth:
		i := d.absMonth() - t.Start.absMonth()
		if i < 0 || i >= len(t.values) {
			return -1
		}
		return i
	case IntervalDay:
		if d.Day < 1 || d.Day > DaysInMonth(d.Year, d.Month) {
			return -1
		}
		i := 0
		for m := t.Start.absMonth(); m < d.absMonth(); m++ {
			y := m / 12
			if m < 0 && m%12 != 0 {
				y = (m - 11) / 12
			}
			i += DaysInMonth(y, m-y*12+1)
		}
		i += d.Day - t.Start.Day
		if i < 0 || i >= len(t.values) {
			return -1
		}
		return i
	}
	return -1
}

// SetValue stores a value at the date. Dates outside the allocated
// period are ignored, matching the tolerant write-into-period behavior
// of the file readers.
func (t *TimeSeries) SetValue(d Date, v float64) {
	if t.values == nil {
		return
	}
	if i := t.index(d); i >= 0 {
		t.values[i] = v
	}
}

// Value returns the value at the date, or the missing sentinel when the
// date is outside the allocated period.
func (t *TimeSeries) Value(d Date) float64 {
	if t.values == nil {
		return MissingValue
	}
	if i := t.index(d); i >= 0 {
		return t.values[i]
	}
	return MissingValue
}

// AddGenesis appends a line to the series history.
func (t *TimeSeries) AddGenesis(line string) {
	t.Genesis = append(t.Genesis, line)
}

// SetProperty attaches named metadata, such as the operational-right
// header fields of an XOP block.
func (t *TimeSeries) SetProperty(key, value string) {
	if t.Properties == nil {
		t.Properties = map[string]string{}
	}
	t.Properties[key] = value
}

// Property returns named metadata, or "" when unset.
func (t *TimeSeries) Property(key string) string {
	return t.Properties[key]
}
