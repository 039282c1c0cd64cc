package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/onething/internal/journal"
	"github.com/julianstephens/onething/internal/models"
	"github.com/julianstephens/onething/internal/utils"
)

type AnswerFormModel struct {
	Answer string
	Mood   models.Mood
}

// NewAnswerFormModel pre-fills the form from the day's saved entry.
func NewAnswerFormModel(day journal.Day) *AnswerFormModel {
	fm := &AnswerFormModel{Mood: models.MoodNone}
	if day.Entry != nil {
		fm.Answer = day.Entry.Answer
		if day.Entry.Mood != "" {
			fm.Mood = day.Entry.Mood
		}
	}
	return fm
}

// NewAnswerForm builds the answer and mood form for day, bound to fm.
func NewAnswerForm(day journal.Day, fm *AnswerFormModel) *huh.Form {
	options := make([]huh.Option[models.Mood], 0, len(models.Moods))
	for _, m := range models.Moods {
		options = append(options, huh.NewOption(string(m), m))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title(utils.FormatDisplayDate(day.Date)).
				Description(day.Question),
			huh.NewText().
				Title("Your answer").
				CharLimit(2000).
				Value(&fm.Answer).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("answer cannot be empty")
					}
					return nil
				}),
			huh.NewSelect[models.Mood]().
				Title("Mood").
				Options(options...).
				Value(&fm.Mood),
		),
	)
}
