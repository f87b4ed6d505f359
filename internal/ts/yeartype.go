package ts

import (
	"fmt"
	"strings"
)

// Interval is the data spacing of a time series or file.
type Interval int

const (
	IntervalUnknown Interval = iota
	IntervalDay
	IntervalMonth
	IntervalYear
)

func (i Interval) String() string {
	switch i {
	case IntervalDay:
		return "Day"
	case IntervalMonth:
		return "Month"
	case IntervalYear:
		return "Year"
	}
	return "Unknown"
}

// YearType describes how monthly records are grouped into labeled years.
type YearType int

const (
	// YearCalendar is January through December.
	YearCalendar YearType = iota
	// YearWater is October through September, labeled by the ending year.
	YearWater
	// YearNovToOct is November through October, labeled by the ending year.
	YearNovToOct
)

// ParseYearType maps a file header year-type code to a YearType.
// A blank code means calendar year.
func ParseYearType(code string) (YearType, error) {
	switch strings.ToUpper(strings.TrimSpace(code)) {
	case "", "CYR":
		return YearCalendar, nil
	case "WYR":
		return YearWater, nil
	case "IYR":
		return YearNovToOct, nil
	}
	return YearCalendar, fmt.Errorf("unknown year type %q", code)
}

// Code returns the file header code for the year type.
func (y YearType) Code() string {
	switch y {
	case YearWater:
		return "WYR"
	case YearNovToOct:
		return "IYR"
	}
	return "CYR"
}

// StartMonth is the calendar month the labeled year begins in.
func (y YearType) StartMonth() int {
	switch y {
	case YearWater:
		return 10
	case YearNovToOct:
		return 11
	}
	return 1
}

// EndMonth is the calendar month the labeled year ends in.
func (y YearType) EndMonth() int {
	switch y {
	case YearWater:
		return 9
	case YearNovToOct:
		return 10
	}
	return 12
}

// StartYearOffset is the offset from the labeled year to the calendar
// year of the starting month (-1 for water and irrigation years).
func (y YearType) StartYearOffset() int {
	if y == YearCalendar {
		return 0
	}
	return -1
}

func (y YearType) String() string {
	switch y {
	case YearWater:
		return "Water"
	case YearNovToOct:
		return "NovToOct"
	}
	return "Calendar"
}
