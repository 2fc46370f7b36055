package dateutil

import (
	"testing"
	"time"
)

func TestISO(t *testing.T) {
	got := ISO(time.Date(2024, 6, 1, 23, 59, 0, 0, time.UTC))
	if got != "2024-06-01" {
		t.Errorf("ISO = %q, want 2024-06-01", got)
	}
}

func TestValid(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"2024-01-10", true},
		{"2024-12-31", true},
		{"2024-13-01", false},
		{"2024-02-30", false},
		{"24-01-10", false},
		{"2024/01/10", false},
		{"", false},
		{"2024-01-10T00:00:00Z", false},
	}
	for _, tt := range tests {
		if got := Valid(tt.in); got != tt.want {
			t.Errorf("Valid(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestRelativeChecks(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	if !IsToday("2024-06-01", now) {
		t.Error("2024-06-01 should be today")
	}
	if !IsPast("2024-05-31", now) {
		t.Error("2024-05-31 should be past")
	}
	if !IsFuture("2024-06-02", now) {
		t.Error("2024-06-02 should be future")
	}
	if IsPast("2024-06-01", now) || IsFuture("2024-06-01", now) {
		t.Error("today is neither past nor future")
	}
}
