package backups

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/aisle/internal/cli"
	"github.com/julianstephens/aisle/internal/config"
	"github.com/julianstephens/aisle/internal/storage"
)

func setup(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	cfg := config.Config{ConfigDir: t.TempDir(), MaxBackups: 3}
	ctx := cli.NewContext(context.Background(), storage.NewMemoryStore(), cfg, &out)
	ctx.Confirm = nil
	return ctx, &out
}

func TestBackupListEmpty(t *testing.T) {
	ctx, out := setup(t)
	require.NoError(t, (&BackupListCmd{}).Run(ctx))
	assert.Contains(t, out.String(), "No backups found.")
}

func TestBackupCreateListRestore(t *testing.T) {
	ctx, out := setup(t)
	require.NoError(t, ctx.Repos.Budget.SetTotalBudget(ctx.Ctx, 15000))

	require.NoError(t, (&BackupCreateCmd{}).Run(ctx))
	assert.Contains(t, out.String(), "✓ Backup created: aisle-")

	out.Reset()
	require.NoError(t, (&BackupListCmd{}).Run(ctx))
	assert.Contains(t, out.String(), "Available backups (1 total, keeping most recent 3)")

	backups, err := ctx.BackupManager().ListBackups()
	require.NoError(t, err)
	require.Len(t, backups, 1)

	require.NoError(t, ctx.Repos.Budget.SetTotalBudget(ctx.Ctx, 99))
	require.NoError(t, ctx.Repos.Wedding.SetWeddingDate(ctx.Ctx, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)))

	out.Reset()
	require.NoError(t, (&BackupRestoreCmd{BackupFile: filepath.Base(backups[0].Path), Yes: true}).Run(ctx))
	assert.Contains(t, out.String(), "✓ Data restored successfully!")

	budget, err := ctx.Repos.Budget.GetDetails(ctx.Ctx)
	require.NoError(t, err)
	assert.Equal(t, 15000.0, budget.TotalBudget)

	wedding, err := ctx.Repos.Wedding.GetDetails(ctx.Ctx)
	require.NoError(t, err)
	assert.Nil(t, wedding, "keys absent from the backup are removed")
}

func TestBackupRestoreCancelled(t *testing.T) {
	ctx, out := setup(t)
	require.NoError(t, ctx.Repos.Budget.SetTotalBudget(ctx.Ctx, 100))
	path, err := ctx.BackupManager().CreateBackup(ctx.Ctx)
	require.NoError(t, err)
	require.NoError(t, ctx.Repos.Budget.SetTotalBudget(ctx.Ctx, 200))

	ctx.Confirm = func(string, string) (bool, error) { return false, nil }
	require.NoError(t, (&BackupRestoreCmd{BackupFile: path}).Run(ctx))
	assert.Contains(t, out.String(), "Restore cancelled.")

	budget, err := ctx.Repos.Budget.GetDetails(ctx.Ctx)
	require.NoError(t, err)
	assert.Equal(t, 200.0, budget.TotalBudget)
}

func TestBackupRestoreMissingFile(t *testing.T) {
	ctx, _ := setup(t)
	assert.Error(t, (&BackupRestoreCmd{BackupFile: "aisle-20200101-0000.json", Yes: true}).Run(ctx))
	assert.Error(t, (&BackupRestoreCmd{BackupFile: "/nonexistent/backup.json", Yes: true}).Run(ctx))
}
