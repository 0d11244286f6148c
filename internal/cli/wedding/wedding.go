package wedding

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/aisle/internal/cli"
	"github.com/julianstephens/aisle/internal/stats"
)

type WeddingShowCmd struct{}

func (c *WeddingShowCmd) Run(ctx *cli.Context) error {
	details, err := ctx.Repos.Wedding.GetDetails(ctx.Ctx)
	if err != nil {
		return fmt.Errorf("failed to load wedding details: %w", err)
	}

	days, err := stats.DaysUntilWedding(details, ctx.Time())
	if errors.Is(err, stats.ErrNoWeddingDate) {
		fmt.Fprintln(ctx.Out, "No wedding date set. Use 'aisle wedding set-date YYYY-MM-DD' to set one.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("stored wedding date is invalid: %w", err)
	}

	date, _ := stats.ParseWeddingDate(details.WeddingDate, time.Local)
	fmt.Fprintf(ctx.Out, "Wedding date: %s\n", date.Local().Format("Monday, January 2, 2006"))
	switch {
	case days > 1:
		fmt.Fprintf(ctx.Out, "%d days to go\n", days)
	case days == 1:
		fmt.Fprintln(ctx.Out, "1 day to go")
	case days == 0:
		fmt.Fprintln(ctx.Out, "The big day is today!")
	default:
		fmt.Fprintf(ctx.Out, "Married %d days ago\n", -days)
	}
	return nil
}

type WeddingSetDateCmd struct {
	Date string `arg:"" help:"Wedding date (YYYY-MM-DD or RFC 3339 timestamp)."`
}

func (c *WeddingSetDateCmd) Run(ctx *cli.Context) error {
	date, err := cli.ParseDate(c.Date, time.Local)
	if err != nil {
		return err
	}

	if err := ctx.Repos.Wedding.SetWeddingDate(ctx.Ctx, date); err != nil {
		return fmt.Errorf("failed to save wedding date: %w", err)
	}
	ctx.PerformAutomaticBackup()

	fmt.Fprintf(ctx.Out, "✓ Wedding date set to %s\n", date.Format("January 2, 2006"))
	return nil
}
