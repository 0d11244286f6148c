package system

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/aisle/internal/cli"
	"github.com/julianstephens/aisle/internal/stats"
	"github.com/julianstephens/aisle/internal/storage"
	"github.com/julianstephens/aisle/internal/validation"
)

type DoctorCmd struct{}

type check struct {
	name string
	// warnOnly checks report ⚠ instead of failing the run
	warnOnly bool
	// needsStore checks are skipped when the store is unreachable
	needsStore bool
	run        func(ctx *cli.Context) error
}

var checks = []check{
	{name: "Store reachable", run: checkStoreReachable},
	{name: "Documents decode", needsStore: true, run: checkDocuments},
	{name: "Data validation", needsStore: true, run: checkValidation},
	{name: "Wedding date", warnOnly: true, needsStore: true, run: checkWeddingDate},
	{name: "Backups present", warnOnly: true, run: checkBackupsPresent},
	{name: "Clock/timezone", run: checkClockTimezone},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Fprintln(ctx.Out, "Running diagnostics...")
	fmt.Fprintln(ctx.Out)

	hasError := false
	storeReachable := true

	for i, chk := range checks {
		if chk.needsStore && !storeReachable {
			fmt.Fprintf(ctx.Out, "⊘ %s: SKIPPED (store not reachable)\n", chk.name)
			continue
		}

		err := chk.run(ctx)
		switch {
		case err == nil:
			fmt.Fprintf(ctx.Out, "✓ %s: OK\n", chk.name)
		case chk.warnOnly:
			fmt.Fprintf(ctx.Out, "⚠ %s: WARNING\n", chk.name)
			fmt.Fprintf(ctx.Out, "   %v\n", err)
		default:
			fmt.Fprintf(ctx.Out, "❌ %s: FAIL\n", chk.name)
			fmt.Fprintf(ctx.Out, "   Error: %v\n", err)
			hasError = true
			if i == 0 {
				storeReachable = false
			}
		}
	}

	fmt.Fprintln(ctx.Out)
	if hasError {
		fmt.Fprintln(ctx.Out, "Diagnostics completed with errors.")
		return errors.New("one or more health checks failed")
	}

	fmt.Fprintln(ctx.Out, "All diagnostics passed!")
	return nil
}

func checkStoreReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load store: %w", err)
	}

	if sqliteStore, ok := ctx.Store.(*storage.SQLiteStore); ok {
		db := sqliteStore.GetDB()
		if db == nil {
			return errors.New("database connection is nil")
		}
		var result int
		if err := db.QueryRowContext(ctx.Ctx, "SELECT 1").Scan(&result); err != nil {
			return fmt.Errorf("failed to query database: %w", err)
		}
	}

	if _, err := ctx.Store.Keys(ctx.Ctx); err != nil {
		return fmt.Errorf("failed to list keys: %w", err)
	}
	return nil
}

func checkDocuments(ctx *cli.Context) error {
	_, err := ctx.Documents()
	return err
}

func checkValidation(ctx *cli.Context) error {
	docs, err := ctx.Documents()
	if err != nil {
		return err
	}
	result := validation.New().Validate(docs)
	if result.HasConflicts() {
		return fmt.Errorf("%d conflicts found - run 'aisle validate' for details", len(result.Conflicts))
	}
	return nil
}

func checkWeddingDate(ctx *cli.Context) error {
	details, err := ctx.Repos.Wedding.GetDetails(ctx.Ctx)
	if err != nil {
		return err
	}
	if _, err := stats.DaysUntilWedding(details, ctx.Time()); err != nil {
		if errors.Is(err, stats.ErrNoWeddingDate) {
			return errors.New("no wedding date set - use 'aisle wedding set-date'")
		}
		return fmt.Errorf("stored wedding date is invalid: %w", err)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	backups, err := ctx.BackupManager().ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return errors.New("no backups found - consider creating one with 'aisle backup create'")
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	now := ctx.Time()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	return nil
}
