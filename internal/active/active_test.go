package active

import (
	"testing"
	"time"
)

func TestParseMonthLabel(t *testing.T) {
	tests := []struct {
		name      string
		label     string
		wantMonth time.Month
		wantYear  int
		wantOK    bool
	}{
		{"plain label", "March 2023", time.March, 2023, true},
		{"case insensitive", "fEbRuArY 2024", time.February, 2024, true},
		{"extra middle token", "December Read 2022", time.December, 2022, true},
		{"unknown literal", "Unknown", 0, 0, false},
		{"empty", "", 0, 0, false},
		{"abbreviated month", "Mar 2023", 0, 0, false},
		{"two digit year", "March 23", 0, 0, false},
		{"year only", "2023", 0, 0, false},
		{"month only", "March", 0, 0, false},
		{"garbage year", "March 2Oz3", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			month, year, ok := ParseMonthLabel(tt.label)
			if ok != tt.wantOK {
				t.Fatalf("ParseMonthLabel(%q) ok = %v, want %v", tt.label, ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if month != tt.wantMonth || year != tt.wantYear {
				t.Errorf("ParseMonthLabel(%q) = %v %d, want %v %d",
					tt.label, month, year, tt.wantMonth, tt.wantYear)
			}
		})
	}
}

func TestInWindow(t *testing.T) {
	// Fixed "current" date: mid-April 2024. The window is February, March
	// and April 2024.
	now := time.Date(2024, time.April, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		label  string
		active bool
	}{
		{"current month", "April 2024", true},
		{"one month back", "March 2024", true},
		{"two months back", "February 2024", true},
		{"three months back", "January 2024", false},
		{"previous year", "December 2023", false},
		{"future month", "May 2024", true},
		{"unknown label", "Unknown", false},
		{"empty label", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InWindow(tt.label, now); got != tt.active {
				t.Errorf("InWindow(%q) = %v, want %v", tt.label, got, tt.active)
			}
		})
	}
}

func TestInWindowAcrossYearBoundary(t *testing.T) {
	// January window reaches back into the previous year.
	now := time.Date(2024, time.January, 3, 0, 0, 0, 0, time.UTC)

	if !InWindow("November 2023", now) {
		t.Error("November 2023 should be active in January 2024")
	}
	if InWindow("October 2023", now) {
		t.Error("October 2023 should not be active in January 2024")
	}
}
