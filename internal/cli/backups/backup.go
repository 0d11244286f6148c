package backups

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/aisle/internal/cli"
)

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *cli.Context) error {
	mgr := ctx.BackupManager()
	backupPath, err := mgr.CreateBackup(ctx.Ctx)
	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}

	fmt.Fprintf(ctx.Out, "✓ Backup created: %s\n", filepath.Base(backupPath))
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *cli.Context) error {
	mgr := ctx.BackupManager()
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}

	if len(backups) == 0 {
		fmt.Fprintln(ctx.Out, "No backups found.")
		fmt.Fprintf(ctx.Out, "Backups are stored in: %s\n", mgr.GetBackupDir())
		return nil
	}

	fmt.Fprintf(ctx.Out, "Available backups (%d total, keeping most recent %d):\n\n", len(backups), mgr.MaxBackups())
	for _, b := range backups {
		sizeKB := float64(b.Size) / 1024.0
		timestamp := b.Timestamp.Format("2006-01-02 15:04:05")
		fmt.Fprintf(ctx.Out, "  %s  %s  (%.1f KB)\n", timestamp, filepath.Base(b.Path), sizeKB)
	}
	fmt.Fprintf(ctx.Out, "\nBackup directory: %s\n", mgr.GetBackupDir())
	return nil
}

type BackupRestoreCmd struct {
	BackupFile string `arg:"" help:"Path or filename of the backup to restore."`
	Yes        bool   `short:"y" help:"Skip confirmation."`
}

func (c *BackupRestoreCmd) Run(ctx *cli.Context) error {
	mgr := ctx.BackupManager()

	backupPath, err := c.resolvePath(mgr.GetBackupDir())
	if err != nil {
		return err
	}

	fmt.Fprintln(ctx.Out, "⚠️  WARNING: This will replace your current planner data with the backup.")
	fmt.Fprintln(ctx.Out, "⚠️  IMPORTANT: Close any running aisle dashboard before restoring.")
	fmt.Fprintln(ctx.Out, "A backup of your current data will be created before restoring.")
	fmt.Fprintf(ctx.Out, "\nRestore from: %s\n", backupPath)

	ok, err := ctx.ConfirmDestructive(c.Yes, "Restore this backup?", backupPath)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(ctx.Out, "Restore cancelled.")
		return nil
	}

	preRestore, err := mgr.RestoreBackup(ctx.Ctx, backupPath)
	if err != nil {
		return fmt.Errorf("restore failed: %w", err)
	}

	fmt.Fprintln(ctx.Out, "✓ Data restored successfully!")
	fmt.Fprintf(ctx.Out, "  Previous data saved to: %s\n", filepath.Base(preRestore))
	return nil
}

// resolvePath accepts an absolute path, a path relative to the working
// directory or a file name inside the backup directory.
func (c *BackupRestoreCmd) resolvePath(backupDir string) (string, error) {
	backupPath := c.BackupFile

	if filepath.IsAbs(backupPath) {
		if _, err := os.Stat(backupPath); os.IsNotExist(err) {
			return "", fmt.Errorf("backup file not found: %s", backupPath)
		}
		return backupPath, nil
	}

	if _, err := os.Stat(backupPath); err == nil {
		absPath, err := filepath.Abs(backupPath)
		if err != nil {
			return "", fmt.Errorf("failed to resolve backup path: %w", err)
		}
		return absPath, nil
	}

	possiblePath := filepath.Join(backupDir, c.BackupFile)
	if _, err := os.Stat(possiblePath); err == nil {
		return possiblePath, nil
	}
	return "", fmt.Errorf("backup file not found: tried current directory and %s", backupDir)
}
