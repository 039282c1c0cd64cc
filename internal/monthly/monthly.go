// Package monthly derives calendar-month views and unlock eligibility from journal entries.
package monthly

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/julianstephens/onething/internal/constants"
	"github.com/julianstephens/onething/internal/models"
	"github.com/julianstephens/onething/internal/utils"
)

// Thresholds are the unlock requirements for a month.
type Thresholds struct {
	MinEntries    int
	MinCharacters int
}

// DefaultThresholds returns the built-in unlock requirements.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MinEntries:    constants.DefaultMinEntries,
		MinCharacters: constants.DefaultMinCharacters,
	}
}

// Bounds returns the first and last instants of the month containing anchor,
// in anchor's location. Both ends are inclusive.
func Bounds(anchor time.Time) (time.Time, time.Time) {
	start := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, anchor.Location())
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return start, end
}

// MonthKey returns the canonical YYYY-MM key for the month containing anchor.
func MonthKey(anchor time.Time) string {
	return anchor.Format(constants.MonthKeyFormat)
}

// MonthLabel returns the human-readable label, e.g. "June 2024".
func MonthLabel(anchor time.Time) string {
	return anchor.Format(constants.MonthLabelFormat)
}

// ParseMonthKey parses a YYYY-MM key into the first day of that month in loc.
func ParseMonthKey(key string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(constants.MonthKeyFormat, key, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q (expected YYYY-MM): %w", key, err)
	}
	return t, nil
}

// EntriesInMonth returns the entries whose date falls inside the month
// containing anchor, preserving input order. Entries with unparseable dates
// are skipped.
func EntriesInMonth(entries []models.Entry, anchor time.Time) []models.Entry {
	start, end := Bounds(anchor)

	result := make([]models.Entry, 0)
	for _, e := range entries {
		d, err := utils.ParseDateInLocation(e.Date, anchor.Location())
		if err != nil {
			continue
		}
		if d.Before(start) || d.After(end) {
			continue
		}
		result = append(result, e)
	}
	return result
}

// AnswerLength counts answer characters as Unicode code points.
func AnswerLength(answer string) int {
	return utf8.RuneCountInString(answer)
}

// ComputeEligibility derives the unlock state for the month containing anchor.
// It is pure and independent of the order of entries.
func ComputeEligibility(entries []models.Entry, anchor time.Time, thresholds Thresholds) models.MonthEligibility {
	start, end := Bounds(anchor)
	inMonth := EntriesInMonth(entries, anchor)

	total := 0
	for _, e := range inMonth {
		total += AnswerLength(e.Answer)
	}

	return models.MonthEligibility{
		MonthKey:          MonthKey(anchor),
		MonthStart:        start,
		MonthEnd:          end,
		EntryCount:        len(inMonth),
		TotalAnswerLength: total,
		MinEntries:        thresholds.MinEntries,
		MinCharacters:     thresholds.MinCharacters,
		Unlocked:          len(inMonth) >= thresholds.MinEntries && total >= thresholds.MinCharacters,
	}
}
