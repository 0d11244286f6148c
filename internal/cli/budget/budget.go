package budget

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/aisle/internal/cli"
	"github.com/julianstephens/aisle/internal/models"
	"github.com/julianstephens/aisle/internal/stats"
)

type BudgetShowCmd struct {
	ShowIDs bool `help:"Show item IDs." name:"show-ids"`
}

func (c *BudgetShowCmd) Run(ctx *cli.Context) error {
	details, err := ctx.Repos.Budget.GetDetails(ctx.Ctx)
	if err != nil {
		return fmt.Errorf("failed to load budget: %w", err)
	}
	if details == nil {
		fmt.Fprintln(ctx.Out, "No budget yet. Use 'aisle budget set-total' or 'aisle budget add' to start one.")
		return nil
	}

	summary := stats.Budget(details)
	fmt.Fprintf(ctx.Out, "Total budget: %s\n", cli.FormatMoney(summary.TotalBudget))
	fmt.Fprintf(ctx.Out, "Spent:        %s (%.0f%%)\n", cli.FormatMoney(summary.TotalSpent), summary.SpentPercentage)
	fmt.Fprintf(ctx.Out, "Remaining:    %s\n", cli.FormatMoney(summary.Remaining))

	if len(details.Items) == 0 {
		fmt.Fprintln(ctx.Out, "\nNo budget items.")
		return nil
	}

	fmt.Fprintln(ctx.Out, "\nItems:")
	for _, item := range details.Items {
		idStr := ""
		if c.ShowIDs {
			idStr = fmt.Sprintf(" (ID: %s)", cli.ShortID(item.ID))
		}
		line := fmt.Sprintf("  [%s] %s%s - est %s", item.Category, item.Name, idStr, cli.FormatMoney(item.EstimatedCost))
		if item.ActualCost != nil {
			line += ", actual " + cli.FormatMoney(*item.ActualCost)
		}
		if item.Paid != nil {
			line += ", paid " + cli.FormatMoney(*item.Paid)
		}
		fmt.Fprintln(ctx.Out, line)
		if item.Notes != "" {
			fmt.Fprintf(ctx.Out, "      %s\n", item.Notes)
		}
	}
	return nil
}

type BudgetSetTotalCmd struct {
	Amount float64 `arg:"" help:"Total budget amount."`
}

func (c *BudgetSetTotalCmd) Run(ctx *cli.Context) error {
	if c.Amount < 0 {
		return errors.New("total budget cannot be negative")
	}
	if err := ctx.Repos.Budget.SetTotalBudget(ctx.Ctx, c.Amount); err != nil {
		return fmt.Errorf("failed to set total budget: %w", err)
	}
	ctx.PerformAutomaticBackup()

	fmt.Fprintf(ctx.Out, "✓ Total budget set to %s\n", cli.FormatMoney(c.Amount))
	return nil
}

type BudgetAddCmd struct {
	Name      string   `arg:"" help:"Item name."`
	Category  string   `short:"c" help:"Item category." default:"other"`
	Estimated float64  `short:"e" help:"Estimated cost." required:""`
	Actual    *float64 `short:"a" help:"Actual cost."`
	Paid      *float64 `short:"p" help:"Amount paid so far."`
	Notes     string   `short:"n" help:"Notes."`
}

func (c *BudgetAddCmd) Run(ctx *cli.Context) error {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		return errors.New("item name cannot be empty")
	}
	if err := checkAmounts(&c.Estimated, c.Actual, c.Paid); err != nil {
		return err
	}

	item, err := ctx.Repos.Budget.AddItem(ctx.Ctx, models.BudgetItem{
		Name:          name,
		Category:      strings.TrimSpace(c.Category),
		EstimatedCost: c.Estimated,
		ActualCost:    c.Actual,
		Paid:          c.Paid,
		Notes:         c.Notes,
	})
	if err != nil {
		return fmt.Errorf("failed to add budget item: %w", err)
	}
	ctx.PerformAutomaticBackup()

	fmt.Fprintf(ctx.Out, "✓ Added budget item: %s (ID: %s)\n", item.Name, cli.ShortID(item.ID))
	return nil
}

type BudgetEditCmd struct {
	ID        string   `arg:"" help:"Item ID or unique prefix."`
	Name      *string  `help:"New name."`
	Category  *string  `short:"c" help:"New category."`
	Estimated *float64 `short:"e" help:"New estimated cost."`
	Actual    *float64 `short:"a" help:"New actual cost." xor:"actual"`
	Paid      *float64 `short:"p" help:"New amount paid." xor:"paid"`
	Notes     *string  `short:"n" help:"New notes."`

	ClearActual bool `help:"Remove the actual cost." name:"clear-actual" xor:"actual"`
	ClearPaid   bool `help:"Remove the amount paid." name:"clear-paid" xor:"paid"`
}

func (c *BudgetEditCmd) Run(ctx *cli.Context) error {
	if err := checkAmounts(c.Estimated, c.Actual, c.Paid); err != nil {
		return err
	}
	if c.Name != nil && strings.TrimSpace(*c.Name) == "" {
		return errors.New("item name cannot be empty")
	}

	id, err := resolveItem(ctx, c.ID)
	if err != nil {
		return err
	}

	patch := models.BudgetItemPatch{
		Category:        c.Category,
		Name:            c.Name,
		EstimatedCost:   c.Estimated,
		ActualCost:      c.Actual,
		Paid:            c.Paid,
		Notes:           c.Notes,
		ClearActualCost: c.ClearActual,
		ClearPaid:       c.ClearPaid,
	}
	if err := ctx.Repos.Budget.UpdateItem(ctx.Ctx, id, patch); err != nil {
		return fmt.Errorf("failed to update budget item: %w", err)
	}
	ctx.PerformAutomaticBackup()

	fmt.Fprintf(ctx.Out, "✓ Updated budget item %s\n", cli.ShortID(id))
	return nil
}

type BudgetDeleteCmd struct {
	ID  string `arg:"" help:"Item ID or unique prefix."`
	Yes bool   `short:"y" help:"Skip confirmation."`
}

func (c *BudgetDeleteCmd) Run(ctx *cli.Context) error {
	id, err := resolveItem(ctx, c.ID)
	if err != nil {
		return err
	}

	ok, err := ctx.ConfirmDestructive(c.Yes, "Delete budget item?", "This cannot be undone.")
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(ctx.Out, "Delete cancelled.")
		return nil
	}

	if err := ctx.Repos.Budget.DeleteItem(ctx.Ctx, id); err != nil {
		return fmt.Errorf("failed to delete budget item: %w", err)
	}
	ctx.PerformAutomaticBackup()

	fmt.Fprintf(ctx.Out, "Deleted budget item %s\n", cli.ShortID(id))
	return nil
}

func resolveItem(ctx *cli.Context, prefix string) (string, error) {
	details, err := ctx.Repos.Budget.GetDetails(ctx.Ctx)
	if err != nil {
		return "", fmt.Errorf("failed to load budget: %w", err)
	}
	var ids []string
	if details != nil {
		for _, item := range details.Items {
			ids = append(ids, item.ID)
		}
	}
	return cli.ResolveID("budget item", prefix, ids)
}

func checkAmounts(amounts ...*float64) error {
	for _, a := range amounts {
		if a != nil && *a < 0 {
			return errors.New("amounts cannot be negative")
		}
	}
	return nil
}
