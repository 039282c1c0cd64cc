package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/onething/internal/constants"
	"github.com/julianstephens/onething/internal/models"
	"github.com/julianstephens/onething/internal/utils"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictInvalidDate       ConflictType = "invalid_date"
	ConflictFutureDate        ConflictType = "future_date"
	ConflictEmptyAnswer       ConflictType = "empty_answer"
	ConflictInvalidMood       ConflictType = "invalid_mood"
	ConflictDuplicateDate     ConflictType = "duplicate_date"
	ConflictInvalidMonthKey   ConflictType = "invalid_month_key"
	ConflictEmptySummary      ConflictType = "empty_summary"
	ConflictInvalidSetting    ConflictType = "invalid_setting"
	ConflictReflectionNoBasis ConflictType = "reflection_without_entries"
)

// Conflict represents a problem found in stored data
type Conflict struct {
	Type        ConflictType
	Description string
	Key         string // entry date or month key, when applicable
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, conflict := range vr.Conflicts {
		fmt.Fprintf(&b, "- %s\n", conflict.Description)
	}
	return b.String()
}

// Validator checks stored entries, reflections and settings for inconsistencies
type Validator struct {
	now func() time.Time
}

// New creates a new Validator
func New() *Validator {
	return &Validator{now: time.Now}
}

// ValidateEntries checks every entry's date, answer and mood, and reports
// dates that appear more than once.
func (v *Validator) ValidateEntries(entries []models.Entry) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}
	now := v.now()

	seen := make(map[string]int)
	for _, e := range entries {
		seen[e.Date]++

		if err := ValidateDate(e.Date); err != nil {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidDate,
				Description: fmt.Sprintf("Entry has invalid date %q", e.Date),
				Key:         e.Date,
			})
			continue
		}
		if future, _ := utils.IsFutureDate(e.Date, now); future {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictFutureDate,
				Description: fmt.Sprintf("Entry for %s is dated in the future", e.Date),
				Key:         e.Date,
			})
		}
		if err := ValidateAnswer(e.Answer); err != nil {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictEmptyAnswer,
				Description: fmt.Sprintf("Entry for %s has an empty answer", e.Date),
				Key:         e.Date,
			})
		}
		if !e.Mood.Valid() {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidMood,
				Description: fmt.Sprintf("Entry for %s has unknown mood %q", e.Date, e.Mood),
				Key:         e.Date,
			})
		}
	}

	for date, count := range seen {
		if count > 1 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicateDate,
				Description: fmt.Sprintf("Date %s has %d entries", date, count),
				Key:         date,
			})
		}
	}

	return result
}

// ValidateReflections checks cached reflections against the entries they were built from.
func (v *Validator) ValidateReflections(records []models.MonthSummaryRecord, entries []models.Entry) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	months := make(map[string]bool)
	for _, e := range entries {
		if len(e.Date) >= 7 {
			months[e.Date[:7]] = true
		}
	}

	for _, rec := range records {
		if err := ValidateMonthKey(rec.MonthKey); err != nil {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidMonthKey,
				Description: fmt.Sprintf("Reflection has invalid month key %q", rec.MonthKey),
				Key:         rec.MonthKey,
			})
			continue
		}
		if strings.TrimSpace(rec.Summary) == "" {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictEmptySummary,
				Description: fmt.Sprintf("Reflection for %s has an empty summary", rec.MonthKey),
				Key:         rec.MonthKey,
			})
		}
		if !months[rec.MonthKey] {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictReflectionNoBasis,
				Description: fmt.Sprintf("Reflection for %s has no entries in that month", rec.MonthKey),
				Key:         rec.MonthKey,
			})
		}
	}

	return result
}

// ValidateSettings checks the stored settings record.
func (v *Validator) ValidateSettings(s models.Settings) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	if err := ValidateHour(s.NotificationHour); err != nil {
		result.Conflicts = append(result.Conflicts, Conflict{Type: ConflictInvalidSetting, Description: err.Error(), Key: constants.SettingNotificationHour})
	}
	if err := ValidateMinute(s.NotificationMinute); err != nil {
		result.Conflicts = append(result.Conflicts, Conflict{Type: ConflictInvalidSetting, Description: err.Error(), Key: constants.SettingNotificationMinute})
	}
	if err := ValidateTimezone(s.Timezone); err != nil {
		result.Conflicts = append(result.Conflicts, Conflict{Type: ConflictInvalidSetting, Description: err.Error(), Key: constants.SettingTimezone})
	}

	return result
}

// ValidateDate checks a YYYY-MM-DD date string.
func ValidateDate(date string) error {
	if _, err := time.Parse(constants.DateFormat, date); err != nil {
		return fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", date)
	}
	return nil
}

// ValidateMonthKey checks a YYYY-MM month key.
func ValidateMonthKey(key string) error {
	if _, err := time.Parse(constants.MonthKeyFormat, key); err != nil {
		return fmt.Errorf("invalid month %q (expected YYYY-MM)", key)
	}
	return nil
}

// ValidateAnswer rejects answers that are empty after trimming whitespace.
func ValidateAnswer(answer string) error {
	if strings.TrimSpace(answer) == "" {
		return fmt.Errorf("answer cannot be empty")
	}
	return nil
}

// ValidateTime checks an HH:MM time string.
func ValidateTime(value string) error {
	if !isValidTimeFormat(value) {
		return fmt.Errorf("invalid time %q (expected HH:MM)", value)
	}
	return nil
}

func ValidateHour(hour int) error {
	if hour < 0 || hour > 23 {
		return fmt.Errorf("notification hour must be between 0 and 23, got %d", hour)
	}
	return nil
}

func ValidateMinute(minute int) error {
	if minute < 0 || minute > 59 {
		return fmt.Errorf("notification minute must be between 0 and 59, got %d", minute)
	}
	return nil
}

// ValidateTimezone accepts "Local" or any IANA timezone name.
func ValidateTimezone(tz string) error {
	if _, err := utils.LoadLocation(tz); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", tz, err)
	}
	return nil
}

// isValidTimeFormat checks if a time string is in valid HH:MM format
func isValidTimeFormat(timeStr string) bool {
	_, err := time.Parse(constants.TimeFormat, timeStr)
	return err == nil
}
