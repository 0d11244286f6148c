package guests

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/aisle/internal/cli"
	"github.com/julianstephens/aisle/internal/models"
	"github.com/julianstephens/aisle/internal/stats"
)

type GuestListCmd struct {
	Status  []string `short:"s" help:"Only guests with these statuses (comma-separated)."`
	ShowIDs bool     `help:"Show guest IDs." name:"show-ids"`
}

func (c *GuestListCmd) Run(ctx *cli.Context) error {
	var statuses []models.GuestStatus
	for _, s := range c.Status {
		v, err := models.ParseGuestStatus(s)
		if err != nil {
			return err
		}
		statuses = append(statuses, v)
	}

	details, err := ctx.Repos.Guests.GetDetails(ctx.Ctx)
	if err != nil {
		return fmt.Errorf("failed to load guests: %w", err)
	}
	if details == nil || len(details.Guests) == 0 {
		fmt.Fprintln(ctx.Out, "No guests found")
		return nil
	}

	summary := stats.Guests(details.Guests)
	fmt.Fprintf(ctx.Out, "Guests: %d total, %d confirmed, %d declined, %d pending\n",
		summary.Total, summary.Confirmed, summary.Declined, summary.Pending)
	fmt.Fprintf(ctx.Out, "        %d adults, %d children, %d infants\n\n",
		summary.Adults, summary.Children, summary.Infants)

	tables := make(map[string]string, len(details.Tables))
	for _, t := range details.Tables {
		tables[t.ID] = t.Name
	}

	for _, g := range details.Guests {
		if len(statuses) > 0 && !containsStatus(statuses, g.Status) {
			continue
		}
		idStr := ""
		if c.ShowIDs {
			idStr = fmt.Sprintf(" (ID: %s)", cli.ShortID(g.ID))
		}
		line := fmt.Sprintf("  [%s] %s%s - %s", g.Status, g.FullName(), idStr, g.AgeRange)
		if g.PlusOne {
			if g.PlusOneName != "" {
				line += ", +1 " + g.PlusOneName
			} else {
				line += ", +1"
			}
		}
		if name, ok := tables[g.TableID]; ok {
			line += ", table " + name
		}
		fmt.Fprintln(ctx.Out, line)

		if len(g.DietaryRestrictions) > 0 {
			diets := make([]string, len(g.DietaryRestrictions))
			for i, d := range g.DietaryRestrictions {
				diets[i] = string(d)
			}
			fmt.Fprintf(ctx.Out, "      Dietary: %s\n", strings.Join(diets, ", "))
		}
	}
	return nil
}

func containsStatus(statuses []models.GuestStatus, s models.GuestStatus) bool {
	for _, v := range statuses {
		if v == s {
			return true
		}
	}
	return false
}

type GuestAddCmd struct {
	FirstName   string `arg:"" help:"First name."`
	LastName    string `arg:"" optional:"" help:"Last name."`
	Age         string `short:"a" help:"Age range (adult|child|infant)." default:"adult"`
	Status      string `short:"s" help:"RSVP status (invited|confirmed|declined|maybe)." default:"invited"`
	Email       string `short:"e" help:"Email address."`
	Phone       string `help:"Phone number."`
	Dietary     string `help:"Comma-separated dietary restrictions (none|vegetarian|vegan|gluten_free|other)."`
	Notes       string `short:"n" help:"Additional notes."`
	Table       string `short:"t" help:"Table ID or unique prefix."`
	PlusOne     bool   `help:"Guest brings a plus-one." name:"plus-one"`
	PlusOneName string `help:"Name of the plus-one." name:"plus-one-name"`
}

func (c *GuestAddCmd) Run(ctx *cli.Context) error {
	first := strings.TrimSpace(c.FirstName)
	if first == "" {
		return errors.New("first name cannot be empty")
	}
	age, err := models.ParseAgeRange(c.Age)
	if err != nil {
		return err
	}
	status, err := models.ParseGuestStatus(c.Status)
	if err != nil {
		return err
	}
	diets, err := parseDietary(c.Dietary)
	if err != nil {
		return err
	}

	guest := models.Guest{
		FirstName:           first,
		LastName:            strings.TrimSpace(c.LastName),
		AgeRange:            age,
		Status:              status,
		Email:               c.Email,
		Phone:               c.Phone,
		DietaryRestrictions: diets,
		AdditionalNotes:     c.Notes,
		PlusOne:             c.PlusOne || c.PlusOneName != "",
		PlusOneName:         c.PlusOneName,
	}
	if c.Table != "" {
		if guest.TableID, err = resolveTable(ctx, c.Table); err != nil {
			return err
		}
	}

	added, err := ctx.Repos.Guests.AddGuest(ctx.Ctx, guest)
	if err != nil {
		return fmt.Errorf("failed to add guest: %w", err)
	}
	ctx.PerformAutomaticBackup()

	fmt.Fprintf(ctx.Out, "✓ Added guest: %s (ID: %s)\n", added.FullName(), cli.ShortID(added.ID))
	return nil
}

type GuestEditCmd struct {
	ID          string  `arg:"" help:"Guest ID or unique prefix."`
	FirstName   *string `help:"New first name." name:"first-name"`
	LastName    *string `help:"New last name." name:"last-name"`
	Age         *string `short:"a" help:"New age range."`
	Status      *string `short:"s" help:"New RSVP status."`
	Email       *string `short:"e" help:"New email address."`
	Phone       *string `help:"New phone number."`
	Dietary     *string `help:"Replace dietary restrictions (comma-separated, empty to clear)."`
	Notes       *string `short:"n" help:"New notes."`
	Table       *string `short:"t" help:"Assign to table ID or prefix, empty to unassign."`
	PlusOne     *bool   `help:"Set whether the guest brings a plus-one." name:"plus-one"`
	PlusOneName *string `help:"New plus-one name." name:"plus-one-name"`
}

func (c *GuestEditCmd) Run(ctx *cli.Context) error {
	patch := models.GuestPatch{
		LastName:        c.LastName,
		Email:           c.Email,
		Phone:           c.Phone,
		AdditionalNotes: c.Notes,
		PlusOne:         c.PlusOne,
		PlusOneName:     c.PlusOneName,
	}
	if c.FirstName != nil {
		if strings.TrimSpace(*c.FirstName) == "" {
			return errors.New("first name cannot be empty")
		}
		patch.FirstName = c.FirstName
	}
	if c.Age != nil {
		v, err := models.ParseAgeRange(*c.Age)
		if err != nil {
			return err
		}
		patch.AgeRange = &v
	}
	if c.Status != nil {
		v, err := models.ParseGuestStatus(*c.Status)
		if err != nil {
			return err
		}
		patch.Status = &v
	}
	if c.Dietary != nil {
		diets, err := parseDietary(*c.Dietary)
		if err != nil {
			return err
		}
		patch.DietaryRestrictions = &diets
	}
	if c.Table != nil {
		tableID := ""
		if strings.TrimSpace(*c.Table) != "" {
			var err error
			if tableID, err = resolveTable(ctx, *c.Table); err != nil {
				return err
			}
		}
		patch.TableID = &tableID
	}

	id, err := resolveGuest(ctx, c.ID)
	if err != nil {
		return err
	}
	if err := ctx.Repos.Guests.UpdateGuest(ctx.Ctx, id, patch); err != nil {
		return fmt.Errorf("failed to update guest: %w", err)
	}
	ctx.PerformAutomaticBackup()

	fmt.Fprintf(ctx.Out, "✓ Updated guest %s\n", cli.ShortID(id))
	return nil
}

type GuestDeleteCmd struct {
	ID  string `arg:"" help:"Guest ID or unique prefix."`
	Yes bool   `short:"y" help:"Skip confirmation."`
}

func (c *GuestDeleteCmd) Run(ctx *cli.Context) error {
	id, err := resolveGuest(ctx, c.ID)
	if err != nil {
		return err
	}

	ok, err := ctx.ConfirmDestructive(c.Yes, "Remove guest?", "This cannot be undone.")
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(ctx.Out, "Delete cancelled.")
		return nil
	}

	if err := ctx.Repos.Guests.DeleteGuest(ctx.Ctx, id); err != nil {
		return fmt.Errorf("failed to delete guest: %w", err)
	}
	ctx.PerformAutomaticBackup()

	fmt.Fprintf(ctx.Out, "Deleted guest %s\n", cli.ShortID(id))
	return nil
}

func parseDietary(s string) ([]models.DietaryRestriction, error) {
	var diets []models.DietaryRestriction
	for _, part := range cli.SplitList(s) {
		v, err := models.ParseDietaryRestriction(part)
		if err != nil {
			return nil, err
		}
		diets = append(diets, v)
	}
	return diets, nil
}

func resolveGuest(ctx *cli.Context, prefix string) (string, error) {
	details, err := ctx.Repos.Guests.GetDetails(ctx.Ctx)
	if err != nil {
		return "", fmt.Errorf("failed to load guests: %w", err)
	}
	var ids []string
	if details != nil {
		for _, g := range details.Guests {
			ids = append(ids, g.ID)
		}
	}
	return cli.ResolveID("guest", prefix, ids)
}

func resolveTable(ctx *cli.Context, prefix string) (string, error) {
	details, err := ctx.Repos.Guests.GetDetails(ctx.Ctx)
	if err != nil {
		return "", fmt.Errorf("failed to load guests: %w", err)
	}
	var ids []string
	if details != nil {
		for _, t := range details.Tables {
			ids = append(ids, t.ID)
		}
	}
	return cli.ResolveID("table", prefix, ids)
}
