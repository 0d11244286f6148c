package vendors

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/aisle/internal/cli"
	"github.com/julianstephens/aisle/internal/config"
	"github.com/julianstephens/aisle/internal/models"
	"github.com/julianstephens/aisle/internal/storage"
)

func ptr[T any](v T) *T { return &v }

func setup(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	ctx := cli.NewContext(context.Background(), storage.NewMemoryStore(), config.Config{}, &out)
	ctx.Confirm = nil
	ctx.Now = func() time.Time { return time.Date(2026, 2, 14, 10, 0, 0, 0, time.UTC) }
	return ctx, &out
}

func load(t *testing.T, ctx *cli.Context) *models.VendorDetails {
	t.Helper()
	details, err := ctx.Repos.Vendors.GetDetails(ctx.Ctx)
	require.NoError(t, err)
	require.NotNil(t, details)
	return details
}

func TestVendorAddAndList(t *testing.T) {
	ctx, out := setup(t)

	require.NoError(t, (&VendorAddCmd{Name: "Bloom & Co", Category: "florist", Status: "contacted", Rating: ptr(4.5),
		ContactName: "Rosa", ContactRole: "owner", ContactEmail: "rosa@bloom.example"}).Run(ctx))
	require.NoError(t, (&VendorAddCmd{Name: "Grand Hall", Category: "venue", Status: "hired"}).Run(ctx))

	details := load(t, ctx)
	require.Len(t, details.Vendors, 2)
	assert.Equal(t, []models.VendorContact{{Name: "Rosa", Role: "owner", Email: "rosa@bloom.example"}}, details.Vendors[0].Contacts)
	assert.NotNil(t, details.Vendors[1].Contacts)
	assert.NotNil(t, details.Vendors[1].Quotes)

	out.Reset()
	require.NoError(t, (&VendorListCmd{}).Run(ctx))
	got := out.String()
	assert.Contains(t, got, "Vendors: 2 total, 1 hired")
	assert.Contains(t, got, "[contacted] Bloom & Co - rated 4.5")
	assert.Contains(t, got, "Contact: Rosa (owner), rosa@bloom.example")
	assert.Less(t, strings.Index(got, "venue:"), strings.Index(got, "florist:"))
}

func TestVendorValidation(t *testing.T) {
	ctx, _ := setup(t)
	assert.Error(t, (&VendorAddCmd{Name: "", Category: "venue", Status: "hired"}).Run(ctx))
	assert.Error(t, (&VendorAddCmd{Name: "X", Category: "dj", Status: "hired"}).Run(ctx))
	assert.Error(t, (&VendorAddCmd{Name: "X", Category: "venue", Status: "booked"}).Run(ctx))
	assert.Error(t, (&VendorAddCmd{Name: "X", Category: "venue", Status: "hired", Rating: ptr(6.0)}).Run(ctx))
	assert.Error(t, (&VendorAddCmd{Name: "X", Category: "venue", Status: "hired", ContactEmail: "a@b.example"}).Run(ctx))
	assert.Error(t, (&VendorEditCmd{ID: "missing", Notes: ptr("n")}).Run(ctx))
}

func TestVendorQuotes(t *testing.T) {
	ctx, out := setup(t)
	require.NoError(t, (&VendorAddCmd{Name: "Grand Hall", Category: "venue", Status: "proposal_received"}).Run(ctx))
	id := load(t, ctx).Vendors[0].ID

	require.NoError(t, (&QuoteAddCmd{Vendor: id, Amount: 12000, Description: "Saturday package", Status: "pending"}).Run(ctx))
	require.NoError(t, (&QuoteAddCmd{Vendor: id, Amount: 9000, Description: "Friday package", Date: "2026-02-01", Status: "pending"}).Run(ctx))

	quotes := load(t, ctx).Vendors[0].Quotes
	require.Len(t, quotes, 2)
	assert.Equal(t, "2026-02-14", quotes[0].Date)
	assert.Equal(t, "2026-02-01", quotes[1].Date)

	require.NoError(t, (&QuoteStatusCmd{Vendor: id[:5], Number: 2, Status: "accepted"}).Run(ctx))
	assert.Equal(t, models.QuoteStatusAccepted, load(t, ctx).Vendors[0].Quotes[1].Status)

	assert.Error(t, (&QuoteStatusCmd{Vendor: id, Number: 3, Status: "accepted"}).Run(ctx))
	assert.Error(t, (&QuoteStatusCmd{Vendor: id, Number: 1, Status: "maybe"}).Run(ctx))
	assert.Error(t, (&QuoteAddCmd{Vendor: id, Amount: 0, Description: "free", Status: "pending"}).Run(ctx))
	assert.Error(t, (&QuoteAddCmd{Vendor: id, Amount: 10, Description: "x", Date: "Feb 1", Status: "pending"}).Run(ctx))

	out.Reset()
	require.NoError(t, (&VendorListCmd{}).Run(ctx))
	assert.Contains(t, out.String(), "Quotes:  $21000.00 quoted, $9000.00 accepted")
	assert.Contains(t, out.String(), "Quote 2: $9000.00 Friday package (2026-02-01, accepted)")
}

func TestVendorEditDeleteAndCategories(t *testing.T) {
	ctx, out := setup(t)
	require.NoError(t, (&VendorAddCmd{Name: "DJ Sam", Category: "music", Status: "researching"}).Run(ctx))
	id := load(t, ctx).Vendors[0].ID

	require.NoError(t, (&VendorEditCmd{ID: id, Status: ptr("hired"), Rating: ptr(5.0)}).Run(ctx))
	v := load(t, ctx).Vendors[0]
	assert.Equal(t, models.VendorStatusHired, v.Status)
	require.NotNil(t, v.Rating)
	assert.Equal(t, 5.0, *v.Rating)

	require.NoError(t, (&VendorEditCmd{ID: id, ClearRating: true}).Run(ctx))
	assert.Nil(t, load(t, ctx).Vendors[0].Rating)

	require.NoError(t, (&CategoryToggleCmd{Category: "music"}).Run(ctx))
	out.Reset()
	require.NoError(t, (&VendorListCmd{}).Run(ctx))
	assert.Contains(t, out.String(), "No vendors match the filter")

	out.Reset()
	require.NoError(t, (&VendorListCmd{All: true}).Run(ctx))
	assert.Contains(t, out.String(), "DJ Sam")

	require.NoError(t, (&CategoryOrderCmd{Category: "music", Order: 0}).Run(ctx))
	assert.Equal(t, models.CategorySetting{IsEnabled: false, Order: 0}, load(t, ctx).Categories[models.VendorCategoryMusic])

	require.NoError(t, (&VendorDeleteCmd{ID: id, Yes: true}).Run(ctx))
	assert.Empty(t, load(t, ctx).Vendors)
}
