package models

import "time"

// MonthSummaryRecord is a cached AI-generated summary for one calendar month
type MonthSummaryRecord struct {
	ID          string    `json:"id"`
	MonthKey    string    `json:"month_key"` // YYYY-MM format
	Summary     string    `json:"summary"`
	GeneratedAt time.Time `json:"generated_at"`
	Provider    string    `json:"provider,omitempty"`
	Model       string    `json:"model,omitempty"`
	EntryCount  int       `json:"entry_count"`
}

// MonthEligibility is derived from the entry store on every read and never persisted
type MonthEligibility struct {
	MonthKey          string    `json:"month_key"`
	MonthStart        time.Time `json:"month_start"`
	MonthEnd          time.Time `json:"month_end"`
	EntryCount        int       `json:"entry_count"`
	TotalAnswerLength int       `json:"total_answer_length"`
	MinEntries        int       `json:"min_entries"`
	MinCharacters     int       `json:"min_characters"`
	Unlocked          bool      `json:"unlocked"`
}

// EntriesRemaining returns how many more entries are needed to unlock the month.
func (e MonthEligibility) EntriesRemaining() int {
	if e.EntryCount >= e.MinEntries {
		return 0
	}
	return e.MinEntries - e.EntryCount
}

// CharactersRemaining returns how many more answer characters are needed to unlock the month.
func (e MonthEligibility) CharactersRemaining() int {
	if e.TotalAnswerLength >= e.MinCharacters {
		return 0
	}
	return e.MinCharacters - e.TotalAnswerLength
}
