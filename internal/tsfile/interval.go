package tsfile

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/lox/statemod/internal/ts"
)

// dailyLineThreshold separates monthly from daily data lines. A daily
// record carries up to 31 value columns of width 8 plus identifiers; a
// monthly record carries 12. The 150-character threshold is a heuristic
// carried over from the legacy format, not a structural guarantee.
const dailyLineThreshold = 150

// DetectInterval determines whether a StateMod time series file is daily
// or monthly by inspecting its content. For *.xop files the "Time Step:"
// comment is consulted; otherwise the length of the first data line
// decides. IntervalUnknown is returned when the file gives no answer.
func DetectInterval(path string) (ts.Interval, error) {
	f, err := os.Open(path)
	if err != nil {
		return ts.IntervalUnknown, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	if strings.HasSuffix(strings.ToUpper(path), "XOP") {
		return detectXOPInterval(f), nil
	}

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	sawHeader := false
	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		if !sawHeader {
			// First non-comment line is the period header.
			sawHeader = true
			continue
		}
		if len(trimmed) > dailyLineThreshold {
			return ts.IntervalDay, nil
		}
		return ts.IntervalMonth, nil
	}
	if err := scanner.Err(); err != nil {
		return ts.IntervalUnknown, fmt.Errorf("scan %s: %w", path, err)
	}
	return ts.IntervalUnknown, nil
}

func detectXOPInterval(f *os.File) ts.Interval {
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "#") {
			continue
		}
		upper := strings.ToUpper(line)
		idx := strings.Index(upper, "TIME STEP:")
		if idx < 0 {
			continue
		}
		switch strings.TrimSpace(upper[idx+len("TIME STEP:"):]) {
		case "MONTHLY":
			return ts.IntervalMonth
		case "DAILY":
			return ts.IntervalDay
		}
	}
	return ts.IntervalUnknown
}
