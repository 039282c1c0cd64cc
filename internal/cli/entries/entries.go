package entries

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/onething/internal/cli"
	"github.com/julianstephens/onething/internal/constants"
	"github.com/julianstephens/onething/internal/journal"
	"github.com/julianstephens/onething/internal/models"
	"github.com/julianstephens/onething/internal/monthly"
	"github.com/julianstephens/onething/internal/storage"
	"github.com/julianstephens/onething/internal/tui"
	"github.com/julianstephens/onething/internal/utils"
)

type TodayCmd struct{}

func (c *TodayCmd) Run(ctx *cli.Context) error {
	now, err := ctx.Now()
	if err != nil {
		return err
	}

	day, err := journal.Today(ctx.Store, now)
	if err != nil {
		return err
	}

	fmt.Println(utils.FormatDisplayDate(day.Date))
	fmt.Println()
	fmt.Printf("  %s\n\n", day.Question)
	if day.Answered() {
		fmt.Printf("✓ Answered: %s\n", day.Entry.Answer)
		fmt.Printf("  Mood: %s\n", cli.FormatMood(day.Entry.Mood))
	} else {
		fmt.Println("Not answered yet. Use 'onething answer' to respond.")
	}
	return nil
}

type AnswerCmd struct {
	Text string `arg:"" optional:"" help:"Answer text. Opens an interactive form when omitted."`
	Mood string `help:"Mood: calm, neutral, heavy, hopeful or none." default:""`
	Date string `help:"Date to answer for (YYYY-MM-DD). Defaults to today."`
}

func (c *AnswerCmd) Run(ctx *cli.Context) error {
	now, err := ctx.Now()
	if err != nil {
		return err
	}

	date := c.Date
	if date == "" {
		date = now.Format(constants.DateFormat)
	}

	mood, err := models.ParseMood(c.Mood)
	if err != nil {
		return err
	}

	answer := c.Text
	if strings.TrimSpace(answer) == "" {
		day, err := journal.Lookup(ctx.Store, date)
		if err != nil {
			return err
		}
		answer, mood, err = runAnswerForm(day, mood)
		if err != nil {
			return err
		}
	}

	entry, err := journal.SaveAnswer(ctx.Store, date, answer, mood, now)
	if err != nil {
		return err
	}

	fmt.Printf("✓ Answer saved for %s\n", utils.FormatDisplayDate(entry.Date))
	return nil
}

// runAnswerForm asks for the answer and mood interactively.
func runAnswerForm(day journal.Day, mood models.Mood) (string, models.Mood, error) {
	fm := tui.NewAnswerFormModel(day)
	if mood != models.MoodNone {
		fm.Mood = mood
	}

	if err := tui.NewAnswerForm(day, fm).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", "", errors.New("answer cancelled")
		}
		return "", "", err
	}
	return fm.Answer, fm.Mood, nil
}

type HistoryCmd struct {
	Month string `help:"Only show entries for this month (YYYY-MM)."`
}

func (c *HistoryCmd) Run(ctx *cli.Context) error {
	entries := ctx.Store.GetAllEntries()

	if c.Month != "" {
		anchor, err := ctx.ResolveMonth(c.Month)
		if err != nil {
			return err
		}
		entries = monthly.EntriesInMonth(entries, anchor)
	}

	if len(entries) == 0 {
		fmt.Println("No entries found.")
		return nil
	}

	for i, e := range entries {
		if i > 0 {
			fmt.Println()
		}
		fmt.Printf("%s  [%s]\n", utils.FormatDisplayDate(e.Date), cli.FormatMood(e.Mood))
		fmt.Printf("  Q: %s\n", e.Question)
		fmt.Printf("  A: %s\n", e.Answer)
	}
	return nil
}

type ShowCmd struct {
	Date string `arg:"" help:"Date of the entry (YYYY-MM-DD)."`
}

func (c *ShowCmd) Run(ctx *cli.Context) error {
	day, err := journal.Lookup(ctx.Store, c.Date)
	if err != nil {
		return err
	}
	if !day.Answered() {
		return fmt.Errorf("no entry for %s: %w", c.Date, storage.ErrNotFound)
	}

	fmt.Println(utils.FormatDisplayDate(day.Date))
	fmt.Printf("Question: %s\n", day.Entry.Question)
	fmt.Printf("Answer:   %s\n", day.Entry.Answer)
	fmt.Printf("Mood:     %s\n", cli.FormatMood(day.Entry.Mood))
	return nil
}
