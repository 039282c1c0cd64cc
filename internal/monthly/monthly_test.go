package monthly

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/onething/internal/models"
)

func entry(date string, answerLen int) models.Entry {
	return models.Entry{
		Date:     date,
		Question: "What did you notice today?",
		Answer:   strings.Repeat("x", answerLen),
		Mood:     models.MoodNeutral,
	}
}

func june(day int) time.Time {
	return time.Date(2024, 6, day, 12, 0, 0, 0, time.UTC)
}

func TestBounds(t *testing.T) {
	tests := []struct {
		name      string
		anchor    time.Time
		wantStart string
		wantEnd   string
	}{
		{"mid month", june(15), "2024-06-01", "2024-06-30"},
		{"leap february", time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC), "2024-02-01", "2024-02-29"},
		{"december", time.Date(2023, 12, 31, 23, 59, 0, 0, time.UTC), "2023-12-01", "2023-12-31"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := Bounds(tt.anchor)
			if got := start.Format("2006-01-02"); got != tt.wantStart {
				t.Errorf("start = %s, want %s", got, tt.wantStart)
			}
			if got := end.Format("2006-01-02"); got != tt.wantEnd {
				t.Errorf("end = %s, want %s", got, tt.wantEnd)
			}
			if start.Hour() != 0 || end.Hour() != 23 || end.Minute() != 59 {
				t.Errorf("bounds are not full days: %v - %v", start, end)
			}
		})
	}
}

func TestMonthKeyAndLabel(t *testing.T) {
	anchor := june(3)
	if got := MonthKey(anchor); got != "2024-06" {
		t.Errorf("MonthKey() = %q, want 2024-06", got)
	}
	if got := MonthLabel(anchor); got != "June 2024" {
		t.Errorf("MonthLabel() = %q, want June 2024", got)
	}
}

func TestParseMonthKey(t *testing.T) {
	got, err := ParseMonthKey("2024-06", time.UTC)
	if err != nil {
		t.Fatalf("ParseMonthKey failed: %v", err)
	}
	if !got.Equal(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("ParseMonthKey() = %v", got)
	}

	for _, bad := range []string{"", "2024-13", "June 2024", "2024-6-01"} {
		if _, err := ParseMonthKey(bad, time.UTC); err == nil {
			t.Errorf("ParseMonthKey(%q) expected error", bad)
		}
	}
}

func TestEntriesInMonthInclusiveAndOrdered(t *testing.T) {
	entries := []models.Entry{
		entry("2024-07-01", 10),
		entry("2024-06-30", 10),
		entry("2024-06-15", 10),
		entry("2024-06-01", 10),
		entry("2024-05-31", 10),
		{Date: "not-a-date", Answer: "ignored"},
	}

	got := EntriesInMonth(entries, june(10))
	want := []string{"2024-06-30", "2024-06-15", "2024-06-01"}
	if len(got) != len(want) {
		t.Fatalf("got %d entries, want %d", len(got), len(want))
	}
	for i, date := range want {
		if got[i].Date != date {
			t.Errorf("entry %d = %s, want %s", i, got[i].Date, date)
		}
	}
}

func TestComputeEligibilityThresholdBoundary(t *testing.T) {
	th := DefaultThresholds()

	tests := []struct {
		name    string
		entries []models.Entry
		want    bool
	}{
		{
			name:    "exactly at both thresholds",
			entries: []models.Entry{entry("2024-06-01", 100), entry("2024-06-02", 100), entry("2024-06-03", 100)},
			want:    true,
		},
		{
			name:    "one character short",
			entries: []models.Entry{entry("2024-06-01", 100), entry("2024-06-02", 100), entry("2024-06-03", 99)},
			want:    false,
		},
		{
			name:    "one entry short",
			entries: []models.Entry{entry("2024-06-01", 200), entry("2024-06-02", 200)},
			want:    false,
		},
		{
			name:    "no entries",
			entries: nil,
			want:    false,
		},
		{
			name: "entries outside month do not count",
			entries: []models.Entry{
				entry("2024-06-01", 150), entry("2024-06-02", 150),
				entry("2024-05-31", 150), entry("2024-07-01", 150),
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeEligibility(tt.entries, june(20), th)
			if got.Unlocked != tt.want {
				t.Errorf("Unlocked = %v, want %v (count=%d, chars=%d)", got.Unlocked, tt.want, got.EntryCount, got.TotalAnswerLength)
			}
		})
	}
}

func TestComputeEligibilityCountsNoneMood(t *testing.T) {
	entries := []models.Entry{
		{Date: "2024-06-01", Answer: strings.Repeat("a", 100), Mood: models.MoodNone},
		{Date: "2024-06-02", Answer: strings.Repeat("a", 100), Mood: models.MoodNone},
		{Date: "2024-06-03", Answer: strings.Repeat("a", 100), Mood: models.MoodNone},
	}
	if got := ComputeEligibility(entries, june(1), DefaultThresholds()); !got.Unlocked {
		t.Error("entries with skipped mood should count toward unlock")
	}
}

func TestComputeEligibilityCountsCodePoints(t *testing.T) {
	// 100 code points each, 300 bytes each
	answer := strings.Repeat("日", 100)
	entries := []models.Entry{
		{Date: "2024-06-01", Answer: answer},
		{Date: "2024-06-02", Answer: answer},
		{Date: "2024-06-03", Answer: answer},
	}

	got := ComputeEligibility(entries, june(1), Thresholds{MinEntries: 3, MinCharacters: 301})
	if got.TotalAnswerLength != 300 {
		t.Errorf("TotalAnswerLength = %d, want 300", got.TotalAnswerLength)
	}
	if got.Unlocked {
		t.Error("multibyte answers should be counted by code point, not byte")
	}
}

func TestComputeEligibilityPermutationInvariant(t *testing.T) {
	entries := []models.Entry{
		entry("2024-06-01", 40),
		entry("2024-06-04", 90),
		entry("2024-06-09", 130),
		entry("2024-06-21", 55),
		entry("2024-05-30", 500),
		entry("2024-07-02", 500),
	}
	anchor := june(10)
	want := ComputeEligibility(entries, anchor, DefaultThresholds())

	r := rand.New(rand.NewSource(42))
	for i := 0; i < 20; i++ {
		shuffled := append([]models.Entry(nil), entries...)
		r.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })

		got := ComputeEligibility(shuffled, anchor, DefaultThresholds())
		if got != want {
			t.Fatalf("permutation %d: got %+v, want %+v", i, got, want)
		}
	}

	if again := ComputeEligibility(entries, anchor, DefaultThresholds()); again != want {
		t.Errorf("ComputeEligibility is not idempotent: %+v vs %+v", again, want)
	}
}

func TestJuneScenarioUnlocks(t *testing.T) {
	entries := []models.Entry{
		entry("2024-06-03", 120),
		entry("2024-06-10", 120),
		entry("2024-06-17", 120),
	}

	got := ComputeEligibility(entries, june(30), DefaultThresholds())
	if got.MonthKey != "2024-06" || got.EntryCount != 3 || got.TotalAnswerLength != 360 || !got.Unlocked {
		t.Errorf("unexpected eligibility: %+v", got)
	}
	if got.EntriesRemaining() != 0 || got.CharactersRemaining() != 0 {
		t.Errorf("expected nothing remaining, got %d entries / %d chars", got.EntriesRemaining(), got.CharactersRemaining())
	}
}
