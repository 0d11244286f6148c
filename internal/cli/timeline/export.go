package timeline

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/julianstephens/aisle/internal/calendar"
	"github.com/julianstephens/aisle/internal/cli"
)

type TimelineExportCmd struct {
	Output           string   `short:"o" help:"Write the calendar to this file instead of stdout." type:"path"`
	Name             string   `help:"Calendar name." default:"Wedding planning"`
	IncludeCompleted bool     `help:"Include completed tasks." name:"include-completed"`
	Category         []string `short:"c" help:"Only these categories (comma-separated)."`
	Priority         []string `short:"p" help:"Only these priorities (comma-separated)."`
}

func (c *TimelineExportCmd) Run(ctx *cli.Context) error {
	wedding, err := ctx.Repos.Wedding.GetDetails(ctx.Ctx)
	if err != nil {
		return fmt.Errorf("failed to load wedding details: %w", err)
	}
	details, err := ctx.Repos.Timeline.GetDetails(ctx.Ctx)
	if err != nil {
		return fmt.Errorf("failed to load timeline: %w", err)
	}

	opts := calendar.Options{
		Name:             c.Name,
		IncludeCompleted: c.IncludeCompleted,
		Location:         time.Local,
		Now:              ctx.Time(),
	}
	if len(c.Category) > 0 || len(c.Priority) > 0 {
		filter, err := BuildFilter(c.Category, c.Priority, nil, true)
		if err != nil {
			return err
		}
		opts.Filter = &filter
	}

	var w io.Writer = ctx.Out
	if c.Output != "" {
		f, err := os.Create(c.Output)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", c.Output, err)
		}
		defer f.Close()
		w = f
	}

	n, err := calendar.Export(w, wedding, details, opts)
	if err != nil {
		return fmt.Errorf("failed to export calendar: %w", err)
	}

	if c.Output != "" {
		fmt.Fprintf(ctx.Out, "✓ Exported %d events to %s\n", n, c.Output)
	}
	return nil
}
