package ts

import "fmt"

// Date is a year/month or year/month/day timestamp, depending on the
// interval of the series it belongs to. Day is 0 for month precision.
type Date struct {
	Year  int
	Month int
	Day   int
}

func NewMonthDate(year, month int) Date {
	return Date{Year: year, Month: month}
}

func NewDayDate(year, month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

// absMonth positions a date on a continuous month axis so month spans
// can be computed across year boundaries (including year 0).
func (d Date) absMonth() int {
	return d.Year*12 + d.Month - 1
}

func (d Date) After(o Date) bool {
	if d.Year != o.Year {
		return d.Year > o.Year
	}
	if d.Month != o.Month {
		return d.Month > o.Month
	}
	return d.Day > o.Day
}

func (d Date) Before(o Date) bool {
	return o.After(d)
}

// AddMonths returns the date n months later, preserving the day field.
func (d Date) AddMonths(n int) Date {
	abs := d.absMonth() + n
	y := abs / 12
	m := abs%12 + 1
	if abs < 0 && abs%12 != 0 {
		y = (abs - 11) / 12
		m = abs - y*12 + 1
	}
	return Date{Year: y, Month: m, Day: d.Day}
}

// AddDays returns the date n days later. Only forward stepping within a
// series period is needed so n must be non-negative.
func (d Date) AddDays(n int) Date {
	out := d
	for i := 0; i < n; i++ {
		if out.Day < DaysInMonth(out.Year, out.Month) {
			out.Day++
			continue
		}
		out = Date{Year: out.Year, Month: out.Month, Day: 1}.AddMonths(1)
	}
	return out
}

func (d Date) String() string {
	if d.Day > 0 {
		return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
	}
	return fmt.Sprintf("%04d-%02d", d.Year, d.Month)
}

func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

var monthDays = [13]int{0, 31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// DaysInMonth returns the number of days in a calendar month, leap-year aware.
func DaysInMonth(year, month int) int {
	if month < 1 || month > 12 {
		return 0
	}
	if month == 2 && IsLeapYear(year) {
		return 29
	}
	return monthDays[month]
}
