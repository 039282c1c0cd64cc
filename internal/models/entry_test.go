package models

import "testing"

func TestParseMood(t *testing.T) {
	tests := []struct {
		input   string
		want    Mood
		wantErr bool
	}{
		{"Calm", MoodCalm, false},
		{"calm", MoodCalm, false},
		{" HOPEFUL ", MoodHopeful, false},
		{"", MoodNone, false},
		{"none", MoodNone, false},
		{"ecstatic", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseMood(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMood(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseMood(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestMoodValid(t *testing.T) {
	for _, m := range Moods {
		if !m.Valid() {
			t.Errorf("%q.Valid() = false, want true", m)
		}
	}
	if Mood("calm").Valid() {
		t.Error("lowercase mood should not be valid without parsing")
	}
}

func TestEligibilityRemaining(t *testing.T) {
	e := MonthEligibility{EntryCount: 1, TotalAnswerLength: 120, MinEntries: 3, MinCharacters: 300}
	if got := e.EntriesRemaining(); got != 2 {
		t.Errorf("EntriesRemaining() = %d, want 2", got)
	}
	if got := e.CharactersRemaining(); got != 180 {
		t.Errorf("CharactersRemaining() = %d, want 180", got)
	}

	e = MonthEligibility{EntryCount: 5, TotalAnswerLength: 900, MinEntries: 3, MinCharacters: 300}
	if e.EntriesRemaining() != 0 || e.CharactersRemaining() != 0 {
		t.Error("expected nothing remaining once thresholds are exceeded")
	}
}
