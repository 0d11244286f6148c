package guests

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/aisle/internal/cli"
	"github.com/julianstephens/aisle/internal/models"
	"github.com/julianstephens/aisle/internal/stats"
)

type TableListCmd struct {
	ShowIDs bool `help:"Show table IDs." name:"show-ids"`
}

func (c *TableListCmd) Run(ctx *cli.Context) error {
	details, err := ctx.Repos.Guests.GetDetails(ctx.Ctx)
	if err != nil {
		return fmt.Errorf("failed to load guests: %w", err)
	}
	if details == nil || len(details.Tables) == 0 {
		fmt.Fprintln(ctx.Out, "No tables found")
		return nil
	}

	plan := stats.Seating(details)
	for _, ts := range plan.Tables {
		idStr := ""
		if c.ShowIDs {
			idStr = fmt.Sprintf(" (ID: %s)", cli.ShortID(ts.Table.ID))
		}
		marker := ""
		if ts.SeatsFree < 0 {
			marker = " ⚠ over capacity"
		}
		fmt.Fprintf(ctx.Out, "%s%s - %d/%d seats%s\n", ts.Table.Name, idStr, ts.SeatsUsed, ts.Table.Capacity, marker)
		if ts.Table.Location != "" {
			fmt.Fprintf(ctx.Out, "  Location: %s\n", ts.Table.Location)
		}
		for _, g := range ts.Guests {
			name := g.FullName()
			if g.PlusOne {
				name += " (+1)"
			}
			fmt.Fprintf(ctx.Out, "  - %s\n", name)
		}
	}

	if len(plan.Unassigned) > 0 {
		fmt.Fprintf(ctx.Out, "\nUnassigned (%d):\n", len(plan.Unassigned))
		for _, g := range plan.Unassigned {
			fmt.Fprintf(ctx.Out, "  - %s\n", g.FullName())
		}
	}
	return nil
}

type TableAddCmd struct {
	Name     string `arg:"" help:"Table name."`
	Capacity int    `short:"c" help:"Number of seats." required:""`
	Location string `short:"l" help:"Location in the room."`
	Notes    string `short:"n" help:"Notes."`
}

func (c *TableAddCmd) Run(ctx *cli.Context) error {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		return errors.New("table name cannot be empty")
	}
	if c.Capacity <= 0 {
		return errors.New("capacity must be positive")
	}

	table, err := ctx.Repos.Guests.AddTable(ctx.Ctx, models.Table{
		Name:     name,
		Capacity: c.Capacity,
		Location: c.Location,
		Notes:    c.Notes,
	})
	if err != nil {
		return fmt.Errorf("failed to add table: %w", err)
	}
	ctx.PerformAutomaticBackup()

	fmt.Fprintf(ctx.Out, "✓ Added table: %s (ID: %s)\n", table.Name, cli.ShortID(table.ID))
	return nil
}

type TableEditCmd struct {
	ID       string  `arg:"" help:"Table ID or unique prefix."`
	Name     *string `help:"New name."`
	Capacity *int    `short:"c" help:"New number of seats."`
	Location *string `short:"l" help:"New location."`
	Notes    *string `short:"n" help:"New notes."`
}

func (c *TableEditCmd) Run(ctx *cli.Context) error {
	if c.Name != nil && strings.TrimSpace(*c.Name) == "" {
		return errors.New("table name cannot be empty")
	}
	if c.Capacity != nil && *c.Capacity <= 0 {
		return errors.New("capacity must be positive")
	}

	id, err := resolveTable(ctx, c.ID)
	if err != nil {
		return err
	}
	patch := models.TablePatch{
		Name:     c.Name,
		Capacity: c.Capacity,
		Location: c.Location,
		Notes:    c.Notes,
	}
	if err := ctx.Repos.Guests.UpdateTable(ctx.Ctx, id, patch); err != nil {
		return fmt.Errorf("failed to update table: %w", err)
	}
	ctx.PerformAutomaticBackup()

	fmt.Fprintf(ctx.Out, "✓ Updated table %s\n", cli.ShortID(id))
	return nil
}

type TableDeleteCmd struct {
	ID  string `arg:"" help:"Table ID or unique prefix."`
	Yes bool   `short:"y" help:"Skip confirmation."`
}

func (c *TableDeleteCmd) Run(ctx *cli.Context) error {
	id, err := resolveTable(ctx, c.ID)
	if err != nil {
		return err
	}

	ok, err := ctx.ConfirmDestructive(c.Yes, "Delete table?", "Guests seated at it become unassigned.")
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(ctx.Out, "Delete cancelled.")
		return nil
	}

	if err := ctx.Repos.Guests.DeleteTable(ctx.Ctx, id); err != nil {
		return fmt.Errorf("failed to delete table: %w", err)
	}
	ctx.PerformAutomaticBackup()

	fmt.Fprintf(ctx.Out, "Deleted table %s\n", cli.ShortID(id))
	return nil
}
