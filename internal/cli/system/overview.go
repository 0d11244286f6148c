package system

import (
	"fmt"
	"sort"

	"github.com/julianstephens/aisle/internal/cli"
	"github.com/julianstephens/aisle/internal/stats"
)

type OverviewCmd struct{}

func (cmd *OverviewCmd) Run(ctx *cli.Context) error {
	docs, err := ctx.Documents()
	if err != nil {
		return fmt.Errorf("failed to load documents: %w", err)
	}
	o := stats.Summarize(docs.Wedding, docs.Budget, docs.Timeline, docs.Guests, docs.Vendors, ctx.Time())

	if o.HasDate {
		fmt.Fprintf(ctx.Out, "Wedding: %s (%d days to go)\n", o.WeddingDate.Local().Format("January 2, 2006"), o.DaysUntil)
	} else {
		fmt.Fprintln(ctx.Out, "Wedding: date not set")
	}
	fmt.Fprintf(ctx.Out, "Overall progress: %d%%\n", o.Progress.Percentage)

	domains := make([]string, 0, len(o.Progress.Domains))
	for name := range o.Progress.Domains {
		domains = append(domains, name)
	}
	sort.Strings(domains)
	for _, name := range domains {
		fmt.Fprintf(ctx.Out, "  %-9s %3d%%\n", name, o.Progress.Domains[name])
	}

	fmt.Fprintln(ctx.Out)
	fmt.Fprintf(ctx.Out, "Timeline: %d/%d tasks completed, %d overdue\n",
		o.Timeline.Completed, o.Timeline.Total, o.Timeline.Overdue)
	fmt.Fprintf(ctx.Out, "Budget:   %s of %s spent, %s remaining\n",
		cli.FormatMoney(o.Budget.TotalSpent), cli.FormatMoney(o.Budget.TotalBudget), cli.FormatMoney(o.Budget.Remaining))
	fmt.Fprintf(ctx.Out, "Guests:   %d invited, %d confirmed, %d declined, %d pending\n",
		o.Guests.Total, o.Guests.Confirmed, o.Guests.Declined, o.Guests.Pending)
	fmt.Fprintf(ctx.Out, "Seating:  %d tables, %d guests unassigned\n",
		len(o.Seating.Tables), len(o.Seating.Unassigned))
	fmt.Fprintf(ctx.Out, "Vendors:  %d tracked, %d hired, %s accepted quotes\n",
		o.Vendors.Total, o.Vendors.Hired, cli.FormatMoney(o.Vendors.SpentBudget))
	return nil
}
