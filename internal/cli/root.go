package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/aisle/internal/backup"
	"github.com/julianstephens/aisle/internal/config"
	"github.com/julianstephens/aisle/internal/constants"
	"github.com/julianstephens/aisle/internal/logger"
	"github.com/julianstephens/aisle/internal/repository"
	"github.com/julianstephens/aisle/internal/storage"
	"github.com/julianstephens/aisle/internal/validation"
)

type Context struct {
	Ctx    context.Context
	Store  storage.Provider
	Repos  *repository.Repositories
	Config config.Config
	Out    io.Writer
	// Now is the clock used for countdowns and overdue checks; nil means time.Now.
	Now func() time.Time
	// Confirm asks a yes/no question before destructive commands.
	Confirm func(title, description string) (bool, error)
}

// NewContext wires repositories over store and prompts through huh.
func NewContext(ctx context.Context, store storage.Provider, cfg config.Config, out io.Writer) *Context {
	if out == nil {
		out = os.Stdout
	}
	return &Context{
		Ctx:     ctx,
		Store:   store,
		Repos:   repository.New(store),
		Config:  cfg,
		Out:     out,
		Confirm: ConfirmPrompt,
	}
}

func (c *Context) Time() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

// BackupManager returns a manager for the configured backup directory.
func (c *Context) BackupManager() *backup.Manager {
	return backup.NewManager(c.Store, c.Config.BackupDir()).WithMaxBackups(c.Config.MaxBackups)
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	if !c.Config.AutoBackup {
		return
	}
	if _, err := c.BackupManager().CreateBackup(c.Ctx); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// Documents loads every document for reports. Absent documents stay nil.
func (c *Context) Documents() (validation.Documents, error) {
	return c.Repos.LoadAll(c.Ctx)
}

// ConfirmDestructive returns true when skip is set or the user agrees.
func (c *Context) ConfirmDestructive(skip bool, title, description string) (bool, error) {
	if skip {
		return true, nil
	}
	if c.Confirm == nil {
		return false, errors.New("confirmation required, pass --yes to proceed")
	}
	return c.Confirm(title, description)
}

// ConfirmPrompt shows a huh confirmation. Aborting counts as no.
func ConfirmPrompt(title, description string) (bool, error) {
	var ok bool
	err := huh.NewConfirm().
		Title(title).
		Description(description).
		Affirmative("Yes").
		Negative("No").
		Value(&ok).
		Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return false, nil
	}
	return ok, err
}

// ParseDate accepts YYYY-MM-DD in loc or an RFC 3339 timestamp.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.ParseInLocation(constants.DateFormat, s, loc); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: use YYYY-MM-DD or RFC 3339", s)
	}
	return t, nil
}

// SplitList splits a comma-separated flag value, dropping empty entries.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// FormatMoney renders an amount with two decimals.
func FormatMoney(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

// ShortID trims uuids for list output.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// ResolveID matches a full id or a unique prefix against ids.
func ResolveID(kind, prefix string, ids []string) (string, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return "", fmt.Errorf("%s id is required", kind)
	}
	var match string
	for _, id := range ids {
		if id == prefix {
			return id, nil
		}
		if strings.HasPrefix(id, prefix) {
			if match != "" {
				return "", fmt.Errorf("%s id %q is ambiguous", kind, prefix)
			}
			match = id
		}
	}
	if match == "" {
		return "", fmt.Errorf("no %s with id %q", kind, prefix)
	}
	return match, nil
}
