package system

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/aisle/internal/cli"
	"github.com/julianstephens/aisle/internal/storage"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting existing data before initialization."`
	Source string `help:"Source store path or connection string to copy data from."`
	Seed   bool   `help:"Create empty budget, timeline, guest and vendor documents."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if err := c.reset(ctx); err != nil {
			return err
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Fprintf(ctx.Out, "Initialized aisle storage at: %s\n", ctx.Store.GetConfigPath())

	if c.Force {
		if err := clearKeys(ctx); err != nil {
			return err
		}
	}

	if c.Source != "" {
		fmt.Fprintf(ctx.Out, "Copying data from: %s\n", c.Source)
		n, err := c.copyFrom(ctx)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		fmt.Fprintf(ctx.Out, "  Copied %d keys\n", n)
	}

	if c.Seed {
		if err := seed(ctx); err != nil {
			return err
		}
		fmt.Fprintln(ctx.Out, "Created empty planner documents")
	}

	return nil
}

// reset deletes a file-backed store so Init starts from scratch.
func (c *InitCmd) reset(ctx *cli.Context) error {
	dbPath := ctx.Store.GetConfigPath()
	if c.Source != "" {
		absDbPath, err := filepath.Abs(dbPath)
		if err == nil {
			dbPath = absDbPath
		}
		absSource, err := filepath.Abs(c.Source)
		if err == nil && absSource == dbPath {
			return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
		}
	}

	info, err := os.Stat(dbPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to access existing database: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("refusing to delete directory %s", dbPath)
	}

	if err := ctx.Store.Close(); err != nil {
		return fmt.Errorf("failed to close existing database: %w", err)
	}
	if err := os.Remove(dbPath); err != nil {
		return fmt.Errorf("failed to delete existing database: %w", err)
	}
	fmt.Fprintf(ctx.Out, "Deleted existing database at: %s\n", dbPath)
	return nil
}

// clearKeys empties stores that are not a single local file.
func clearKeys(ctx *cli.Context) error {
	keys, err := ctx.Store.Keys(ctx.Ctx)
	if err != nil {
		return fmt.Errorf("failed to list existing keys: %w", err)
	}
	for _, key := range keys {
		if err := ctx.Store.Remove(ctx.Ctx, key); err != nil {
			return fmt.Errorf("failed to clear %s: %w", key, err)
		}
	}
	return nil
}

func (c *InitCmd) copyFrom(ctx *cli.Context) (int, error) {
	source, err := storage.Open(c.Source)
	if err != nil {
		if errors.Is(err, storage.ErrEmbeddedCredentials) {
			return 0, errors.New("PostgreSQL source connection string contains embedded credentials. Use environment variables or .pgpass instead")
		}
		return 0, err
	}
	if err := source.Load(); err != nil {
		return 0, fmt.Errorf("failed to load source store: %w", err)
	}
	defer source.Close()

	return storage.Copy(ctx.Ctx, ctx.Store, source)
}

func seed(ctx *cli.Context) error {
	r := ctx.Repos
	for name, initialize := range map[string]func() error{
		"budget":   func() error { return r.Budget.Initialize(ctx.Ctx) },
		"timeline": func() error { return r.Timeline.Initialize(ctx.Ctx) },
		"guests":   func() error { return r.Guests.Initialize(ctx.Ctx) },
		"vendors":  func() error { return r.Vendors.Initialize(ctx.Ctx) },
	} {
		if err := initialize(); err != nil {
			return fmt.Errorf("failed to create %s document: %w", name, err)
		}
	}
	return nil
}
