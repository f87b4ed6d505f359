package ts

import "testing"

func TestIsMissing(t *testing.T) {
	tests := []struct {
		v    float64
		want bool
	}{
		{MissingValue, true},
		{-999.05, true},
		{-998.95, true},
		{-998.0, false},
		{-1000.0, false},
		{0, false},
		{100.5, false},
	}

	for _, tt := range tests {
		if got := IsMissing(tt.v); got != tt.want {
			t.Errorf("IsMissing(%v) = %v, want %v", tt.v, got, tt.want)
		}
	}
}

func TestAllocateDataSpaceMonthly(t *testing.T) {
	s := New(IntervalMonth)
	s.Start = Date{Year: 1978, Month: 10}
	s.End = Date{Year: 1979, Month: 9}
	if err := s.AllocateDataSpace(); err != nil {
		t.Fatalf("AllocateDataSpace: %v", err)
	}
	if !s.HasData() {
		t.Fatal("HasData() = false after allocation")
	}
	if v := s.Value(Date{Year: 1978, Month: 10}); !IsMissing(v) {
		t.Errorf("initial value = %v, want missing", v)
	}

	s.SetValue(Date{Year: 1979, Month: 3}, 42.5)
	if v := s.Value(Date{Year: 1979, Month: 3}); v != 42.5 {
		t.Errorf("Value = %v, want 42.5", v)
	}

	// Out of period is silently ignored on write, missing on read.
	s.SetValue(Date{Year: 1980, Month: 1}, 7)
	if v := s.Value(Date{Year: 1980, Month: 1}); !IsMissing(v) {
		t.Errorf("out-of-period value = %v, want missing", v)
	}
}

func TestAllocateDataSpaceDaily(t *testing.T) {
	s := New(IntervalDay)
	s.Start = Date{Year: 1980, Month: 1, Day: 1}
	s.End = Date{Year: 1980, Month: 3, Day: 31}
	if err := s.AllocateDataSpace(); err != nil {
		t.Fatalf("AllocateDataSpace: %v", err)
	}

	// 31 + 29 (leap) + 31 days, every one addressable.
	n := 0
	for d := s.Start; !d.After(s.End); d = d.AddDays(1) {
		s.SetValue(d, float64(n))
		n++
	}
	if n != 91 {
		t.Fatalf("stepped %d days, want 91", n)
	}
	if v := s.Value(Date{Year: 1980, Month: 2, Day: 29}); IsMissing(v) {
		t.Error("leap day value missing after fill")
	}
	if v := s.Value(Date{Year: 1980, Month: 3, Day: 31}); v != 90 {
		t.Errorf("last day value = %v, want 90", v)
	}
}

func TestAllocateDataSpacePartialMonths(t *testing.T) {
	s := New(IntervalDay)
	s.Start = Date{Year: 1978, Month: 1, Day: 15}
	s.End = Date{Year: 1978, Month: 2, Day: 10}
	if err := s.AllocateDataSpace(); err != nil {
		t.Fatalf("AllocateDataSpace: %v", err)
	}
	s.SetValue(Date{Year: 1978, Month: 1, Day: 15}, 1)
	s.SetValue(Date{Year: 1978, Month: 2, Day: 10}, 2)
	if v := s.Value(Date{Year: 1978, Month: 1, Day: 15}); v != 1 {
		t.Errorf("first day value = %v, want 1", v)
	}
	if v := s.Value(Date{Year: 1978, Month: 2, Day: 10}); v != 2 {
		t.Errorf("last day value = %v, want 2", v)
	}
	if v := s.Value(Date{Year: 1978, Month: 1, Day: 14}); !IsMissing(v) {
		t.Errorf("day before period = %v, want missing", v)
	}
	if v := s.Value(Date{Year: 1978, Month: 2, Day: 11}); !IsMissing(v) {
		t.Errorf("day after period = %v, want missing", v)
	}
}

func TestAllocateDataSpaceInvalid(t *testing.T) {
	s := New(IntervalMonth)
	s.Start = Date{Year: 1979, Month: 1}
	s.End = Date{Year: 1978, Month: 1}
	if err := s.AllocateDataSpace(); err == nil {
		t.Error("AllocateDataSpace with inverted period succeeded, want error")
	}

	s = New(IntervalYear)
	s.Start = Date{Year: 1978}
	s.End = Date{Year: 1979}
	if err := s.AllocateDataSpace(); err == nil {
		t.Error("AllocateDataSpace for yearly interval succeeded, want error")
	}
}

func TestProperties(t *testing.T) {
	s := New(IntervalMonth)
	if got := s.Property("OprType"); got != "" {
		t.Errorf("unset Property = %q, want empty", got)
	}
	s.SetProperty("OprType", "1")
	if got := s.Property("OprType"); got != "1" {
		t.Errorf("Property = %q, want 1", got)
	}
}
