package vendors

import (
	"fmt"

	"github.com/julianstephens/aisle/internal/cli"
	"github.com/julianstephens/aisle/internal/models"
)

type CategoryOrderCmd struct {
	Category string `arg:"" help:"Vendor category."`
	Order    int    `arg:"" help:"New sort position."`
}

func (c *CategoryOrderCmd) Run(ctx *cli.Context) error {
	category, err := models.ParseVendorCategory(c.Category)
	if err != nil {
		return err
	}
	if err := ctx.Repos.Vendors.UpdateCategoryOrder(ctx.Ctx, category, c.Order); err != nil {
		return fmt.Errorf("failed to update category order: %w", err)
	}
	ctx.PerformAutomaticBackup()

	fmt.Fprintf(ctx.Out, "✓ Category %s moved to position %d\n", category, c.Order)
	return nil
}

type CategoryToggleCmd struct {
	Category string `arg:"" help:"Vendor category."`
}

func (c *CategoryToggleCmd) Run(ctx *cli.Context) error {
	category, err := models.ParseVendorCategory(c.Category)
	if err != nil {
		return err
	}
	if err := ctx.Repos.Vendors.ToggleCategoryVisibility(ctx.Ctx, category); err != nil {
		return fmt.Errorf("failed to toggle category: %w", err)
	}
	ctx.PerformAutomaticBackup()

	details, err := ctx.Repos.Vendors.GetDetails(ctx.Ctx)
	if err != nil {
		return fmt.Errorf("failed to load vendors: %w", err)
	}
	state := "hidden"
	if details != nil && details.Categories[category].IsEnabled {
		state = "shown"
	}
	fmt.Fprintf(ctx.Out, "✓ Category %s is now %s\n", category, state)
	return nil
}
