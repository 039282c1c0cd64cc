// Package journal records daily answers against the entry store.
package journal

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/onething/internal/constants"
	"github.com/julianstephens/onething/internal/models"
	"github.com/julianstephens/onething/internal/questions"
	"github.com/julianstephens/onething/internal/storage"
	"github.com/julianstephens/onething/internal/utils"
	"github.com/julianstephens/onething/internal/validation"
)

// ErrFutureDate is returned when an answer is recorded for a day that has not happened yet
var ErrFutureDate = errors.New("cannot answer for a future date")

// Day is the question for one date and the saved answer, if any.
type Day struct {
	Date     string
	Question string
	Entry    *models.Entry
}

// Answered reports whether the day already has a saved entry.
func (d Day) Answered() bool {
	return d.Entry != nil
}

// Lookup returns the question and saved entry for date. A saved entry keeps
// the question it was answered with.
func Lookup(store storage.EntryStore, date string) (Day, error) {
	if err := validation.ValidateDate(date); err != nil {
		return Day{}, err
	}

	day := Day{Date: date}
	entry, err := store.GetEntry(date)
	switch {
	case err == nil:
		day.Entry = &entry
		day.Question = entry.Question
	case errors.Is(err, storage.ErrNotFound):
		q, qErr := questions.ForDateString(date)
		if qErr != nil {
			return Day{}, qErr
		}
		day.Question = q
	default:
		return Day{}, fmt.Errorf("failed to read entry for %s: %w", date, err)
	}
	return day, nil
}

// Today returns the Day for the calendar date of now.
func Today(store storage.EntryStore, now time.Time) (Day, error) {
	return Lookup(store, now.Format(constants.DateFormat))
}

// SaveAnswer writes the answer for date, replacing any previous answer for
// that day. Future dates and blank answers are refused.
func SaveAnswer(store storage.EntryStore, date, answer string, mood models.Mood, now time.Time) (models.Entry, error) {
	if err := validation.ValidateDate(date); err != nil {
		return models.Entry{}, err
	}
	future, err := utils.IsFutureDate(date, now)
	if err != nil {
		return models.Entry{}, err
	}
	if future {
		return models.Entry{}, ErrFutureDate
	}

	answer = strings.TrimSpace(answer)
	if err := validation.ValidateAnswer(answer); err != nil {
		return models.Entry{}, err
	}
	if mood == "" {
		mood = models.MoodNone
	}
	if !mood.Valid() {
		return models.Entry{}, fmt.Errorf("invalid mood %q", mood)
	}

	day, err := Lookup(store, date)
	if err != nil {
		return models.Entry{}, err
	}

	entry := models.Entry{
		Date:     date,
		Question: day.Question,
		Answer:   answer,
		Mood:     mood,
	}
	if err := store.PutEntry(entry); err != nil {
		return models.Entry{}, fmt.Errorf("failed to save entry for %s: %w", date, err)
	}
	return entry, nil
}
