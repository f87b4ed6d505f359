package tsfile

import "testing"

func TestSelectPrecision(t *testing.T) {
	tests := []struct {
		name      string
		requested int
		width     int
		value     float64
		want      int
	}{
		{"explicit zero", 0, 8, 12345.0, 0},
		{"explicit two", 2, 8, 12345.0, 2},
		{"fits with two digits", -2, 8, 1234.5, 2},
		{"small value", -2, 8, 0.25, 2},
		{"overflows column", -2, 8, 123456.7, 0},
		{"negative fits", -2, 8, -999.0, 2},
		{"negative overflows", -2, 8, -12345.6, 0},
		{"boundary just fits", -2, 8, 99999.0, 2},
		{"boundary just overflows", -2, 8, 100000.0, 0},
		{"narrow column", -2, 3, 1.5, 0},
		{"wide total column fits", -2, 10, 1234567.8, 2},
		{"wide total column overflows", -2, 10, 12345678.9, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SelectPrecision(tt.requested, tt.width, tt.value)
			if got != tt.want {
				t.Errorf("SelectPrecision(%d, %d, %v) = %d, want %d",
					tt.requested, tt.width, tt.value, got, tt.want)
			}
		})
	}
}

func TestPrecisionForUnits(t *testing.T) {
	// Known units get the default signed precision, resolved against the
	// column; repeated lookups exercise the memo path.
	for i := 0; i < 3; i++ {
		if got := PrecisionForUnits("ACFT", 8, 1234.5); got != 2 {
			t.Errorf("PrecisionForUnits(ACFT, 8, 1234.5) = %d, want 2", got)
		}
	}
	if got := PrecisionForUnits("cfs", 8, 1234567.0); got != 0 {
		t.Errorf("PrecisionForUnits(cfs, 8, 1234567) = %d, want 0", got)
	}
	if got := PrecisionForUnits("", 8, 1.0); got != 2 {
		t.Errorf("PrecisionForUnits(blank, 8, 1) = %d, want 2", got)
	}
}

func TestSumUnits(t *testing.T) {
	tests := []struct {
		units string
		want  bool
	}{
		{"AF", true},
		{"ACFT", true},
		{"AF/M", true},
		{"IN", true},
		{"MM", true},
		{"acft ", true},
		{"CFS", false},
		{"DAY", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := SumUnits(tt.units); got != tt.want {
			t.Errorf("SumUnits(%q) = %v, want %v", tt.units, got, tt.want)
		}
	}
}
