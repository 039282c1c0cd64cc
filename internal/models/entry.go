package models

import (
	"fmt"
	"strings"
)

// Mood is the optional tag a user attaches to an answer
type Mood string

const (
	MoodCalm    Mood = "Calm"
	MoodNeutral Mood = "Neutral"
	MoodHeavy   Mood = "Heavy"
	MoodHopeful Mood = "Hopeful"
	MoodNone    Mood = "None" // mood was skipped
)

// Moods lists every valid mood in display order.
var Moods = []Mood{MoodCalm, MoodNeutral, MoodHeavy, MoodHopeful, MoodNone}

// Valid reports whether m is one of the known moods.
func (m Mood) Valid() bool {
	for _, known := range Moods {
		if m == known {
			return true
		}
	}
	return false
}

// ParseMood parses a mood name case-insensitively. An empty string maps to MoodNone.
func ParseMood(s string) (Mood, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return MoodNone, nil
	}
	for _, known := range Moods {
		if strings.EqualFold(s, string(known)) {
			return known, nil
		}
	}
	return "", fmt.Errorf("invalid mood %q (expected one of calm, neutral, heavy, hopeful, none)", s)
}

// Entry is one day's question, answer and mood. Date is unique.
type Entry struct {
	Date     string `json:"date"` // YYYY-MM-DD format
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Mood     Mood   `json:"mood"`
}
