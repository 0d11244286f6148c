package timeline

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/julianstephens/aisle/internal/cli"
	"github.com/julianstephens/aisle/internal/models"
)

type CategoryListCmd struct{}

func (c *CategoryListCmd) Run(ctx *cli.Context) error {
	details, err := ctx.Repos.Timeline.GetDetails(ctx.Ctx)
	if err != nil {
		return fmt.Errorf("failed to load timeline: %w", err)
	}
	if details == nil {
		fmt.Fprintln(ctx.Out, "No timeline yet. Add a task to create one.")
		return nil
	}

	categories := make([]models.TaskCategory, 0, len(details.Categories))
	for cat := range details.Categories {
		categories = append(categories, cat)
	}
	slices.SortFunc(categories, func(a, b models.TaskCategory) int {
		if n := cmp.Compare(details.Categories[a].Order, details.Categories[b].Order); n != 0 {
			return n
		}
		return cmp.Compare(a, b)
	})

	for _, cat := range categories {
		setting := details.Categories[cat]
		state := "shown"
		if !setting.IsEnabled {
			state = "hidden"
		}
		fmt.Fprintf(ctx.Out, "  %2d  %-15s %s\n", setting.Order, cat, state)
	}
	return nil
}

type CategoryOrderCmd struct {
	Category string `arg:"" help:"Task category."`
	Order    int    `arg:"" help:"New sort position."`
}

func (c *CategoryOrderCmd) Run(ctx *cli.Context) error {
	category, err := models.ParseTaskCategory(c.Category)
	if err != nil {
		return err
	}
	if err := ctx.Repos.Timeline.UpdateCategoryOrder(ctx.Ctx, category, c.Order); err != nil {
		return fmt.Errorf("failed to update category order: %w", err)
	}
	ctx.PerformAutomaticBackup()

	fmt.Fprintf(ctx.Out, "✓ Category %s moved to position %d\n", category, c.Order)
	return nil
}

type CategoryToggleCmd struct {
	Category string `arg:"" help:"Task category."`
}

func (c *CategoryToggleCmd) Run(ctx *cli.Context) error {
	category, err := models.ParseTaskCategory(c.Category)
	if err != nil {
		return err
	}
	if err := ctx.Repos.Timeline.ToggleCategoryVisibility(ctx.Ctx, category); err != nil {
		return fmt.Errorf("failed to toggle category: %w", err)
	}
	ctx.PerformAutomaticBackup()

	details, err := ctx.Repos.Timeline.GetDetails(ctx.Ctx)
	if err != nil {
		return fmt.Errorf("failed to load timeline: %w", err)
	}
	state := "hidden"
	if details != nil && details.Categories[category].IsEnabled {
		state = "shown"
	}
	fmt.Fprintf(ctx.Out, "✓ Category %s is now %s\n", category, state)
	return nil
}
