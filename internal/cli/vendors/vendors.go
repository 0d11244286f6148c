package vendors

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/julianstephens/aisle/internal/cli"
	"github.com/julianstephens/aisle/internal/models"
	"github.com/julianstephens/aisle/internal/stats"
)

type VendorListCmd struct {
	Category []string `short:"c" help:"Only these categories (comma-separated)."`
	Status   []string `short:"s" help:"Only these statuses (comma-separated)."`
	All      bool     `help:"Include vendors in hidden categories."`
	ShowIDs  bool     `help:"Show vendor IDs." name:"show-ids"`
}

func (c *VendorListCmd) Run(ctx *cli.Context) error {
	var categories []models.VendorCategory
	for _, s := range c.Category {
		v, err := models.ParseVendorCategory(s)
		if err != nil {
			return err
		}
		categories = append(categories, v)
	}
	var statuses []models.VendorStatus
	for _, s := range c.Status {
		v, err := models.ParseVendorStatus(s)
		if err != nil {
			return err
		}
		statuses = append(statuses, v)
	}

	details, err := ctx.Repos.Vendors.GetDetails(ctx.Ctx)
	if err != nil {
		return fmt.Errorf("failed to load vendors: %w", err)
	}
	if details == nil || len(details.Vendors) == 0 {
		fmt.Fprintln(ctx.Out, "No vendors found")
		return nil
	}

	summary := stats.Vendors(details.Vendors)
	fmt.Fprintf(ctx.Out, "Vendors: %d total, %d hired\n", summary.Total, summary.Hired)
	fmt.Fprintf(ctx.Out, "Quotes:  %s quoted, %s accepted\n", cli.FormatMoney(summary.TotalBudget), cli.FormatMoney(summary.SpentBudget))

	var shown []models.Vendor
	for _, v := range details.Vendors {
		setting, ok := details.Categories[v.Category]
		if !c.All && (!ok || !setting.IsEnabled) {
			continue
		}
		if len(categories) > 0 && !slices.Contains(categories, v.Category) {
			continue
		}
		if len(statuses) > 0 && !slices.Contains(statuses, v.Status) {
			continue
		}
		shown = append(shown, v)
	}
	slices.SortStableFunc(shown, func(a, b models.Vendor) int {
		return cmp.Compare(details.Categories[a.Category].Order, details.Categories[b.Category].Order)
	})

	if len(shown) == 0 {
		fmt.Fprintln(ctx.Out, "\nNo vendors match the filter")
		return nil
	}

	var current models.VendorCategory
	for _, v := range shown {
		if v.Category != current {
			current = v.Category
			fmt.Fprintf(ctx.Out, "\n%s:\n", current)
		}
		idStr := ""
		if c.ShowIDs {
			idStr = fmt.Sprintf(" (ID: %s)", cli.ShortID(v.ID))
		}
		line := fmt.Sprintf("  [%s] %s%s", v.Status, v.Name, idStr)
		if v.Rating != nil {
			line += fmt.Sprintf(" - rated %.1f", *v.Rating)
		}
		fmt.Fprintln(ctx.Out, line)
		for _, contact := range v.Contacts {
			fmt.Fprintf(ctx.Out, "      Contact: %s\n", formatContact(contact))
		}
		for i, q := range v.Quotes {
			fmt.Fprintf(ctx.Out, "      Quote %d: %s %s (%s, %s)\n", i+1, cli.FormatMoney(q.Amount), q.Description, q.Date, q.Status)
		}
	}
	return nil
}

func formatContact(c models.VendorContact) string {
	parts := []string{c.Name}
	if c.Role != "" {
		parts[0] += " (" + c.Role + ")"
	}
	if c.Email != "" {
		parts = append(parts, c.Email)
	}
	if c.Phone != "" {
		parts = append(parts, c.Phone)
	}
	return strings.Join(parts, ", ")
}

type VendorAddCmd struct {
	Name         string   `arg:"" help:"Vendor name."`
	Category     string   `short:"c" help:"Vendor category." default:"other"`
	Status       string   `short:"s" help:"Vendor status." default:"researching"`
	Website      string   `help:"Website URL."`
	Instagram    string   `help:"Instagram handle."`
	Address      string   `help:"Street address."`
	Description  string   `help:"Description."`
	Rating       *float64 `short:"r" help:"Rating from 0 to 5."`
	Notes        string   `short:"n" help:"Notes."`
	ContactName  string   `help:"Primary contact name." name:"contact-name"`
	ContactRole  string   `help:"Primary contact role." name:"contact-role"`
	ContactEmail string   `help:"Primary contact email." name:"contact-email"`
	ContactPhone string   `help:"Primary contact phone." name:"contact-phone"`
}

func (c *VendorAddCmd) Run(ctx *cli.Context) error {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		return errors.New("vendor name cannot be empty")
	}
	category, err := models.ParseVendorCategory(c.Category)
	if err != nil {
		return err
	}
	status, err := models.ParseVendorStatus(c.Status)
	if err != nil {
		return err
	}
	if err := checkRating(c.Rating); err != nil {
		return err
	}

	vendor := models.Vendor{
		Name:        name,
		Category:    category,
		Status:      status,
		Website:     c.Website,
		Instagram:   c.Instagram,
		Address:     c.Address,
		Description: c.Description,
		Rating:      c.Rating,
		Notes:       c.Notes,
	}
	if contact := strings.TrimSpace(c.ContactName); contact != "" {
		vendor.Contacts = []models.VendorContact{{
			Name:  contact,
			Role:  c.ContactRole,
			Email: c.ContactEmail,
			Phone: c.ContactPhone,
		}}
	} else if c.ContactRole != "" || c.ContactEmail != "" || c.ContactPhone != "" {
		return errors.New("--contact-name is required when adding contact details")
	}

	added, err := ctx.Repos.Vendors.AddVendor(ctx.Ctx, vendor)
	if err != nil {
		return fmt.Errorf("failed to add vendor: %w", err)
	}
	ctx.PerformAutomaticBackup()

	fmt.Fprintf(ctx.Out, "✓ Added vendor: %s (ID: %s)\n", added.Name, cli.ShortID(added.ID))
	return nil
}

type VendorEditCmd struct {
	ID          string   `arg:"" help:"Vendor ID or unique prefix."`
	Name        *string  `help:"New name."`
	Category    *string  `short:"c" help:"New category."`
	Status      *string  `short:"s" help:"New status."`
	Website     *string  `help:"New website URL."`
	Instagram   *string  `help:"New Instagram handle."`
	Address     *string  `help:"New address."`
	Description *string  `help:"New description."`
	Rating      *float64 `short:"r" help:"New rating from 0 to 5." xor:"rating"`
	ClearRating bool     `help:"Remove the rating." name:"clear-rating" xor:"rating"`
	Notes       *string  `short:"n" help:"New notes."`
}

func (c *VendorEditCmd) Run(ctx *cli.Context) error {
	patch := models.VendorPatch{
		Website:     c.Website,
		Instagram:   c.Instagram,
		Address:     c.Address,
		Description: c.Description,
		Rating:      c.Rating,
		Notes:       c.Notes,
		ClearRating: c.ClearRating,
	}
	if c.Name != nil {
		if strings.TrimSpace(*c.Name) == "" {
			return errors.New("vendor name cannot be empty")
		}
		patch.Name = c.Name
	}
	if c.Category != nil {
		v, err := models.ParseVendorCategory(*c.Category)
		if err != nil {
			return err
		}
		patch.Category = &v
	}
	if c.Status != nil {
		v, err := models.ParseVendorStatus(*c.Status)
		if err != nil {
			return err
		}
		patch.Status = &v
	}
	if err := checkRating(c.Rating); err != nil {
		return err
	}

	id, err := resolveVendor(ctx, c.ID)
	if err != nil {
		return err
	}
	if err := ctx.Repos.Vendors.UpdateVendor(ctx.Ctx, id, patch); err != nil {
		return fmt.Errorf("failed to update vendor: %w", err)
	}
	ctx.PerformAutomaticBackup()

	fmt.Fprintf(ctx.Out, "✓ Updated vendor %s\n", cli.ShortID(id))
	return nil
}

type VendorDeleteCmd struct {
	ID  string `arg:"" help:"Vendor ID or unique prefix."`
	Yes bool   `short:"y" help:"Skip confirmation."`
}

func (c *VendorDeleteCmd) Run(ctx *cli.Context) error {
	id, err := resolveVendor(ctx, c.ID)
	if err != nil {
		return err
	}

	ok, err := ctx.ConfirmDestructive(c.Yes, "Delete vendor?", "Its contacts and quotes are removed too.")
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(ctx.Out, "Delete cancelled.")
		return nil
	}

	if err := ctx.Repos.Vendors.DeleteVendor(ctx.Ctx, id); err != nil {
		return fmt.Errorf("failed to delete vendor: %w", err)
	}
	ctx.PerformAutomaticBackup()

	fmt.Fprintf(ctx.Out, "Deleted vendor %s\n", cli.ShortID(id))
	return nil
}

func checkRating(r *float64) error {
	if r != nil && (*r < 0 || *r > 5) {
		return errors.New("rating must be between 0 and 5")
	}
	return nil
}

func resolveVendor(ctx *cli.Context, prefix string) (string, error) {
	details, err := ctx.Repos.Vendors.GetDetails(ctx.Ctx)
	if err != nil {
		return "", fmt.Errorf("failed to load vendors: %w", err)
	}
	var ids []string
	if details != nil {
		for _, v := range details.Vendors {
			ids = append(ids, v.ID)
		}
	}
	return cli.ResolveID("vendor", prefix, ids)
}
