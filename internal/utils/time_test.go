package utils

import (
	"testing"
	"time"
)

func TestLoadLocation(t *testing.T) {
	tests := []struct {
		name     string
		timezone string
		wantErr  bool
	}{
		{"empty is local", "", false},
		{"Local", "Local", false},
		{"UTC", "UTC", false},
		{"IANA name", "America/New_York", false},
		{"invalid", "Mars/Olympus", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := LoadLocation(tt.timezone)
			if (err != nil) != tt.wantErr {
				t.Fatalf("LoadLocation(%q) error = %v, wantErr %v", tt.timezone, err, tt.wantErr)
			}
			if !tt.wantErr && loc == nil {
				t.Errorf("LoadLocation(%q) returned nil location", tt.timezone)
			}
		})
	}
}

func TestGetTodayInTimezone(t *testing.T) {
	today, err := GetTodayInTimezone("UTC")
	if err != nil {
		t.Fatalf("GetTodayInTimezone failed: %v", err)
	}
	if _, err := time.Parse("2006-01-02", today); err != nil {
		t.Errorf("GetTodayInTimezone returned malformed date %q", today)
	}

	if _, err := GetTodayInTimezone("Not/AZone"); err == nil {
		t.Error("expected error for invalid timezone")
	}
}

func TestIsFutureDate(t *testing.T) {
	now := time.Date(2024, 6, 15, 23, 30, 0, 0, time.UTC)

	tests := []struct {
		date    string
		want    bool
		wantErr bool
	}{
		{"2024-06-14", false, false},
		{"2024-06-15", false, false},
		{"2024-06-16", true, false},
		{"2025-01-01", true, false},
		{"06/16/2024", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			got, err := IsFutureDate(tt.date, now)
			if (err != nil) != tt.wantErr {
				t.Fatalf("IsFutureDate(%q) error = %v, wantErr %v", tt.date, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("IsFutureDate(%q) = %v, want %v", tt.date, got, tt.want)
			}
		})
	}
}

func TestIsFutureMonth(t *testing.T) {
	now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		month time.Time
		want  bool
	}{
		{"same month", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), false},
		{"previous month", time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), false},
		{"next month", time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC), true},
		{"earlier month next year", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), true},
		{"later month last year", time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsFutureMonth(tt.month, now); got != tt.want {
				t.Errorf("IsFutureMonth() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFormatDisplayDate(t *testing.T) {
	if got := FormatDisplayDate("2024-06-03"); got != "Monday, June 3, 2024" {
		t.Errorf("FormatDisplayDate() = %q", got)
	}
	if got := FormatDisplayDate("garbage"); got != "garbage" {
		t.Errorf("FormatDisplayDate() = %q, want input unchanged", got)
	}
}
