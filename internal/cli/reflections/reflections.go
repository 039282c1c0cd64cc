package reflections

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/julianstephens/onething/internal/cli"
	"github.com/julianstephens/onething/internal/models"
	"github.com/julianstephens/onething/internal/monthly"
	"github.com/julianstephens/onething/internal/synthesis"
)

const progressWidth = 20

type MonthCmd struct {
	Month string `arg:"" optional:"" help:"Month to show (YYYY-MM). Defaults to the current month."`
}

func (c *MonthCmd) Run(ctx *cli.Context) error {
	anchor, err := ctx.ResolveMonth(c.Month)
	if err != nil {
		return err
	}

	status, err := ctx.Orchestrator.Status(context.Background(), anchor)
	if err != nil {
		return err
	}

	e := status.Eligibility
	fmt.Printf("%s (%s)\n\n", monthly.MonthLabel(anchor), e.MonthKey)
	fmt.Printf("  Entries:    %s %d/%d\n", bar(e.EntryCount, e.MinEntries), e.EntryCount, e.MinEntries)
	fmt.Printf("  Characters: %s %d/%d\n", bar(e.TotalAnswerLength, e.MinCharacters), e.TotalAnswerLength, e.MinCharacters)
	fmt.Println()

	switch status.State {
	case synthesis.StateLocked:
		fmt.Printf("🔒 Locked: %s\n", remaining(e))
	case synthesis.StateUnlocked:
		fmt.Println("✓ Unlocked. Run 'onething reflect' to generate this month's reflection.")
	case synthesis.StateGenerating:
		fmt.Println("… A reflection is being generated.")
	case synthesis.StateGenerated:
		printReflection(*status.Reflection)
	}
	return nil
}

type ReflectCmd struct {
	Month      string `arg:"" optional:"" help:"Month to reflect on (YYYY-MM). Defaults to the current month."`
	Regenerate bool   `help:"Replace an existing reflection when regeneration is enabled in config."`
}

func (c *ReflectCmd) Run(ctx *cli.Context) error {
	anchor, err := ctx.ResolveMonth(c.Month)
	if err != nil {
		return err
	}

	if c.Regenerate && !ctx.Orchestrator.AllowRegeneration() {
		return errors.New("regeneration is disabled; set synthesis.allow_regeneration: true in the config file to enable it")
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("Generating reflection for %s...\n", monthly.MonthLabel(anchor))
	rec, err := ctx.Orchestrator.Generate(runCtx, anchor, synthesis.GenerateOptions{Regenerate: c.Regenerate})
	if err != nil {
		return err
	}

	fmt.Println()
	printReflection(rec)
	return nil
}

func printReflection(rec models.MonthSummaryRecord) {
	fmt.Printf("✓ Reflection generated %s", rec.GeneratedAt.Local().Format("January 2, 2006 15:04"))
	if rec.Provider != "" {
		fmt.Printf(" (%s", rec.Provider)
		if rec.Model != "" {
			fmt.Printf(", %s", rec.Model)
		}
		fmt.Print(")")
	}
	fmt.Println()
	fmt.Println()
	fmt.Println(rec.Summary)
}

func remaining(e models.MonthEligibility) string {
	var parts []string
	if n := e.EntriesRemaining(); n > 0 {
		parts = append(parts, plural(n, "more entry", "more entries"))
	}
	if n := e.CharactersRemaining(); n > 0 {
		parts = append(parts, plural(n, "more character", "more characters"))
	}
	return strings.Join(parts, " and ") + " needed"
}

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}

// bar renders a fixed-width text progress bar capped at 100%.
func bar(value, target int) string {
	filled := progressWidth
	if target > 0 && value < target {
		filled = value * progressWidth / target
	}
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", progressWidth-filled) + "]"
}
