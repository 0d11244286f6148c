package vendors

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/aisle/internal/cli"
	"github.com/julianstephens/aisle/internal/constants"
	"github.com/julianstephens/aisle/internal/models"
)

type QuoteAddCmd struct {
	Vendor      string  `arg:"" help:"Vendor ID or unique prefix."`
	Amount      float64 `arg:"" help:"Quoted amount."`
	Description string  `short:"d" help:"What the quote covers." required:""`
	Date        string  `help:"Quote date (YYYY-MM-DD), defaults to today."`
	Status      string  `short:"s" help:"Quote status (pending|accepted|declined)." default:"pending"`
	Notes       string  `short:"n" help:"Notes."`
}

func (c *QuoteAddCmd) Run(ctx *cli.Context) error {
	if c.Amount <= 0 {
		return errors.New("quote amount must be positive")
	}
	description := strings.TrimSpace(c.Description)
	if description == "" {
		return errors.New("quote description cannot be empty")
	}
	status, err := models.ParseQuoteStatus(c.Status)
	if err != nil {
		return err
	}
	date := ctx.Time().Format(constants.DateFormat)
	if c.Date != "" {
		d, err := time.Parse(constants.DateFormat, c.Date)
		if err != nil {
			return fmt.Errorf("invalid quote date %q: use YYYY-MM-DD", c.Date)
		}
		date = d.Format(constants.DateFormat)
	}

	id, err := resolveVendor(ctx, c.Vendor)
	if err != nil {
		return err
	}
	quote := models.VendorQuote{
		Amount:      c.Amount,
		Description: description,
		Date:        date,
		Status:      status,
		Notes:       c.Notes,
	}
	if err := ctx.Repos.Vendors.AddQuote(ctx.Ctx, id, quote); err != nil {
		return fmt.Errorf("failed to add quote: %w", err)
	}
	ctx.PerformAutomaticBackup()

	fmt.Fprintf(ctx.Out, "✓ Added quote of %s to vendor %s\n", cli.FormatMoney(c.Amount), cli.ShortID(id))
	return nil
}

type QuoteStatusCmd struct {
	Vendor string `arg:"" help:"Vendor ID or unique prefix."`
	Number int    `arg:"" help:"Quote number as shown by 'vendor list'."`
	Status string `arg:"" help:"New status (pending|accepted|declined)."`
}

func (c *QuoteStatusCmd) Run(ctx *cli.Context) error {
	status, err := models.ParseQuoteStatus(c.Status)
	if err != nil {
		return err
	}
	id, err := resolveVendor(ctx, c.Vendor)
	if err != nil {
		return err
	}

	details, err := ctx.Repos.Vendors.GetDetails(ctx.Ctx)
	if err != nil {
		return fmt.Errorf("failed to load vendors: %w", err)
	}
	for _, v := range details.Vendors {
		if v.ID == id && (c.Number < 1 || c.Number > len(v.Quotes)) {
			return fmt.Errorf("vendor %s has no quote %d", cli.ShortID(id), c.Number)
		}
	}

	if err := ctx.Repos.Vendors.SetQuoteStatus(ctx.Ctx, id, c.Number-1, status); err != nil {
		return fmt.Errorf("failed to update quote: %w", err)
	}
	ctx.PerformAutomaticBackup()

	fmt.Fprintf(ctx.Out, "✓ Quote %d is now %s\n", c.Number, status)
	return nil
}
