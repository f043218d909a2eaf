package scraper

import (
	"testing"
	"time"

	"frontpages-collector/internal/observability"
)

func newTestChecker(now time.Time) *DateChecker {
	dc := NewDateChecker(observability.NewLogger("", "error"))
	dc.now = func() time.Time { return now }
	return dc
}

func TestIsTodayPermissivePass(t *testing.T) {
	dc := newTestChecker(time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC))

	tests := []string{"", "   ", "abc", "no date here", "45/6"}
	for _, input := range tests {
		if !dc.IsToday(input) {
			t.Errorf("IsToday(%q) = false, want true (permissive pass)", input)
		}
	}
}

func TestIsTodayExactMatch(t *testing.T) {
	dc := newTestChecker(time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC))

	tests := []struct {
		input    string
		expected bool
	}{
		{"15/6/2024", true},
		{"15/06/2024", true},
		{"14/6/2024", false},
		{"16/6/2024", false},
		{"15/6", true},
		{"14/6", false},
		{"Φύλλο της 15/6", true},
		{"15 / 6 / 2024", true},
	}

	for _, tt := range tests {
		if got := dc.IsToday(tt.input); got != tt.expected {
			t.Errorf("IsToday(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}

func TestIsTodayDecemberRollover(t *testing.T) {
	// January 2: a yearless 31/12 is last year's paper, not this year's.
	dc := newTestChecker(time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC))

	if dc.IsToday("31/12") {
		t.Errorf("IsToday(31/12) on Jan 2 = true, want false")
	}

	// On December 31 itself the same text matches.
	dc = newTestChecker(time.Date(2023, 12, 31, 9, 0, 0, 0, time.UTC))
	if !dc.IsToday("31/12") {
		t.Errorf("IsToday(31/12) on Dec 31 = false, want true")
	}
}

func TestIsTodayCalendarInvalidDatePasses(t *testing.T) {
	dc := newTestChecker(time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC))

	// Days that do not exist in their month must not turn into the
	// normalized neighbor date and fail the comparison.
	tests := []string{"30/02/2024", "31/4", "29/02/2023", "0/5"}
	for _, input := range tests {
		if !dc.IsToday(input) {
			t.Errorf("IsToday(%q) = false, want true (invalid date = permissive pass)", input)
		}
	}

	// A real date that is simply not today still fails.
	if dc.IsToday("04/03/2024") {
		t.Errorf("IsToday(04/03/2024) = true, want false")
	}
}

func TestIsTodayExplicitYearNotIgnored(t *testing.T) {
	// 05/03/2024 must not be read as the yearless 5/3 of the current
	// year.
	dc := newTestChecker(time.Date(2025, 3, 5, 9, 0, 0, 0, time.UTC))

	if dc.IsToday("05/03/2024") {
		t.Errorf("IsToday(05/03/2024) in 2025 = true, want false")
	}
}
