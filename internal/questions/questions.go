// Package questions picks the reflective prompt shown on a given day.
package questions

import (
	"fmt"
	"time"

	"github.com/julianstephens/onething/internal/constants"
)

var rotation = []string{
	"What is one thing that stayed with you today?",
	"What took most of your energy today?",
	"What is one moment you would like to remember?",
	"What felt heavier than expected today?",
	"What felt lighter than expected today?",
	"Who did you think about today?",
	"What did you notice that you usually overlook?",
	"What is one thing you put off today?",
	"Where did you feel most like yourself today?",
	"What surprised you today?",
	"What is one thing you said yes to today?",
	"What is one thing you said no to today?",
	"What were you waiting for today?",
	"What is one small thing that went well?",
	"What did your body need today?",
	"What did you keep coming back to in your thoughts?",
	"What is one thing you learned today?",
	"What made you pause today?",
	"What would you do differently about today?",
	"What is one thing you are carrying into tomorrow?",
	"What did you enjoy without planning to?",
	"What felt unfinished today?",
	"Where did you spend your attention today?",
	"What is one conversation you remember from today?",
	"What did you want more of today?",
	"What did you want less of today?",
	"What is one thing you are grateful for today?",
	"What is one thing you are uncertain about right now?",
	"What gave you a sense of calm today?",
	"What is one word that describes today?",
	"What did you make time for today?",
}

// ForDate returns the question for the calendar day of t. The same day always
// yields the same question.
func ForDate(t time.Time) string {
	return rotation[(t.YearDay()-1)%len(rotation)]
}

// ForDateString returns the question for a YYYY-MM-DD date.
func ForDateString(date string) (string, error) {
	t, err := time.Parse(constants.DateFormat, date)
	if err != nil {
		return "", fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", date, err)
	}
	return ForDate(t), nil
}

// All returns every question in rotation order.
func All() []string {
	out := make([]string, len(rotation))
	copy(out, rotation)
	return out
}
