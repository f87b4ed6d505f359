package ts

import "testing"

func TestParseYearType(t *testing.T) {
	tests := []struct {
		code    string
		want    YearType
		wantErr bool
	}{
		{"CYR", YearCalendar, false},
		{"WYR", YearWater, false},
		{"IYR", YearNovToOct, false},
		{"", YearCalendar, false},
		{"  wyr ", YearWater, false},
		{"XYZ", YearCalendar, true},
	}

	for _, tt := range tests {
		got, err := ParseYearType(tt.code)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseYearType(%q) error = %v, wantErr %v", tt.code, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseYearType(%q) = %v, want %v", tt.code, got, tt.want)
		}
	}
}

func TestYearTypeMonths(t *testing.T) {
	tests := []struct {
		yt                YearType
		start, end, offs  int
		code              string
	}{
		{YearCalendar, 1, 12, 0, "CYR"},
		{YearWater, 10, 9, -1, "WYR"},
		{YearNovToOct, 11, 10, -1, "IYR"},
	}

	for _, tt := range tests {
		if got := tt.yt.StartMonth(); got != tt.start {
			t.Errorf("%v.StartMonth() = %d, want %d", tt.yt, got, tt.start)
		}
		if got := tt.yt.EndMonth(); got != tt.end {
			t.Errorf("%v.EndMonth() = %d, want %d", tt.yt, got, tt.end)
		}
		if got := tt.yt.StartYearOffset(); got != tt.offs {
			t.Errorf("%v.StartYearOffset() = %d, want %d", tt.yt, got, tt.offs)
		}
		if got := tt.yt.Code(); got != tt.code {
			t.Errorf("%v.Code() = %q, want %q", tt.yt, got, tt.code)
		}
	}
}
