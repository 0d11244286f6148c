package budget

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/aisle/internal/cli"
	"github.com/julianstephens/aisle/internal/config"
	"github.com/julianstephens/aisle/internal/storage"
)

func ptr[T any](v T) *T { return &v }

func setup(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	ctx := cli.NewContext(context.Background(), storage.NewMemoryStore(), config.Config{}, &out)
	ctx.Confirm = nil
	return ctx, &out
}

func TestBudgetShowEmpty(t *testing.T) {
	ctx, out := setup(t)
	require.NoError(t, (&BudgetShowCmd{}).Run(ctx))
	assert.Contains(t, out.String(), "No budget yet")
}

func TestBudgetLifecycle(t *testing.T) {
	ctx, out := setup(t)

	require.NoError(t, (&BudgetSetTotalCmd{Amount: 20000}).Run(ctx))
	require.NoError(t, (&BudgetAddCmd{Name: "Venue", Category: "venue", Estimated: 8000, Actual: ptr(8500.0)}).Run(ctx))
	require.NoError(t, (&BudgetAddCmd{Name: "Flowers", Category: "flowers", Estimated: 1500}).Run(ctx))

	details, err := ctx.Repos.Budget.GetDetails(ctx.Ctx)
	require.NoError(t, err)
	require.Len(t, details.Items, 2)
	flowers := details.Items[1].ID

	require.NoError(t, (&BudgetEditCmd{ID: flowers[:6], Paid: ptr(500.0), Notes: ptr("deposit paid")}).Run(ctx))
	details, err = ctx.Repos.Budget.GetDetails(ctx.Ctx)
	require.NoError(t, err)
	require.NotNil(t, details.Items[1].Paid)
	assert.Equal(t, 500.0, *details.Items[1].Paid)
	assert.Equal(t, "deposit paid", details.Items[1].Notes)

	out.Reset()
	require.NoError(t, (&BudgetShowCmd{}).Run(ctx))
	assert.Contains(t, out.String(), "Total budget: $20000.00")
	assert.Contains(t, out.String(), "Spent:        $10000.00 (50%)")
	assert.Contains(t, out.String(), "[venue] Venue - est $8000.00, actual $8500.00")

	venue := details.Items[0].ID
	require.NoError(t, (&BudgetEditCmd{ID: venue, ClearActual: true}).Run(ctx))
	details, err = ctx.Repos.Budget.GetDetails(ctx.Ctx)
	require.NoError(t, err)
	assert.Nil(t, details.Items[0].ActualCost)
	assert.Equal(t, 8000.0, details.Items[0].EstimatedCost)

	require.NoError(t, (&BudgetEditCmd{ID: flowers, ClearPaid: true}).Run(ctx))
	details, err = ctx.Repos.Budget.GetDetails(ctx.Ctx)
	require.NoError(t, err)
	assert.Nil(t, details.Items[1].Paid)

	require.NoError(t, (&BudgetDeleteCmd{ID: flowers, Yes: true}).Run(ctx))
	details, err = ctx.Repos.Budget.GetDetails(ctx.Ctx)
	require.NoError(t, err)
	assert.Len(t, details.Items, 1)
}

func TestBudgetRejectsInvalidInput(t *testing.T) {
	ctx, _ := setup(t)

	assert.Error(t, (&BudgetSetTotalCmd{Amount: -1}).Run(ctx))
	assert.Error(t, (&BudgetAddCmd{Name: "  ", Estimated: 10}).Run(ctx))
	assert.Error(t, (&BudgetAddCmd{Name: "Cake", Estimated: -10}).Run(ctx))
	assert.Error(t, (&BudgetEditCmd{ID: "x", Actual: ptr(-5.0)}).Run(ctx))
	assert.Error(t, (&BudgetEditCmd{ID: "missing", Notes: ptr("n")}).Run(ctx))
}

func TestBudgetDeleteRequiresConfirmation(t *testing.T) {
	ctx, out := setup(t)
	require.NoError(t, (&BudgetAddCmd{Name: "Cake", Estimated: 400}).Run(ctx))
	details, err := ctx.Repos.Budget.GetDetails(ctx.Ctx)
	require.NoError(t, err)
	id := details.Items[0].ID

	assert.Error(t, (&BudgetDeleteCmd{ID: id}).Run(ctx))

	ctx.Confirm = func(string, string) (bool, error) { return false, nil }
	require.NoError(t, (&BudgetDeleteCmd{ID: id}).Run(ctx))
	assert.Contains(t, out.String(), "Delete cancelled.")

	details, err = ctx.Repos.Budget.GetDetails(ctx.Ctx)
	require.NoError(t, err)
	assert.Len(t, details.Items, 1)
}
