package backup

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/aisle/internal/constants"
	"github.com/julianstephens/aisle/internal/logger"
	"github.com/julianstephens/aisle/internal/storage"
)

// BackupInfo contains information about a backup file
type BackupInfo struct {
	Path      string
	Timestamp time.Time
	Size      int64
	// Sequence is the counter suffix added when several backups share a timestamp.
	Sequence int
}

// Manager snapshots every key of a store into JSON files. A snapshot uses
// the same layout as a JSON-backed store, so it can be opened with
// storage.NewJSONStore.
type Manager struct {
	store      storage.Provider
	backupDir  string
	maxBackups int
	// Now names new backups; nil means time.Now.
	Now func() time.Time
}

// NewManager creates a backup manager writing into backupDir.
func NewManager(store storage.Provider, backupDir string) *Manager {
	return &Manager{
		store:      store,
		backupDir:  backupDir,
		maxBackups: constants.MaxBackups,
	}
}

// WithMaxBackups overrides the retention count. Values below 1 are ignored.
func (m *Manager) WithMaxBackups(n int) *Manager {
	if n > 0 {
		m.maxBackups = n
	}
	return m
}

// MaxBackups returns the retention count
func (m *Manager) MaxBackups() int {
	return m.maxBackups
}

// GetBackupDir returns the backup directory path
func (m *Manager) GetBackupDir() string {
	return m.backupDir
}

func (m *Manager) now() time.Time {
	if m.Now != nil {
		return m.Now()
	}
	return time.Now()
}

// CreateBackup writes a snapshot of the store and prunes old backups.
func (m *Manager) CreateBackup(ctx context.Context) (string, error) {
	return m.createBackup(ctx, false)
}

// createBackup skips rotation when called from a restore so the pre-restore
// snapshot never evicts the backup being restored.
func (m *Manager) createBackup(ctx context.Context, skipRotation bool) (string, error) {
	if err := os.MkdirAll(m.backupDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	backupPath, err := m.nextBackupPath()
	if err != nil {
		return "", err
	}

	snapshot := storage.NewJSONStore(backupPath)
	if err := snapshot.Init(); err != nil {
		return "", fmt.Errorf("failed to create backup file: %w", err)
	}
	n, err := storage.Copy(ctx, snapshot, m.store)
	if err != nil {
		os.Remove(backupPath)
		return "", fmt.Errorf("failed to snapshot store: %w", err)
	}
	logger.Info("Created backup", "path", backupPath, "keys", n)

	if !skipRotation {
		if err := m.rotateBackups(); err != nil {
			// Log error but don't fail the backup operation
			logger.Warn("Failed to rotate old backups", "error", err)
		}
	}

	return backupPath, nil
}

// nextBackupPath uses minute precision, then seconds, then a counter to stay unique.
func (m *Manager) nextBackupPath() (string, error) {
	now := m.now()
	name := func(stamp string) string {
		return filepath.Join(m.backupDir, constants.BackupFilePrefix+stamp+constants.BackupFileSuffix)
	}

	path := name(now.Format("20060102-1504"))
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return path, nil
	}

	stamp := now.Format("20060102-150405")
	path = name(stamp)
	for counter := 1; ; counter++ {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path, nil
		}
		if counter > 100 {
			return "", fmt.Errorf("failed to generate unique backup filename")
		}
		path = name(fmt.Sprintf("%s-%d", stamp, counter))
	}
}

// parseBackupName extracts the timestamp and counter from aisle-YYYYMMDD-HHMM[SS][-N].json.
func parseBackupName(name string) (time.Time, int, bool) {
	if !strings.HasPrefix(name, constants.BackupFilePrefix) || !strings.HasSuffix(name, constants.BackupFileSuffix) {
		return time.Time{}, 0, false
	}
	stamp := strings.TrimSuffix(strings.TrimPrefix(name, constants.BackupFilePrefix), constants.BackupFileSuffix)

	sequence := 0
	parts := strings.Split(stamp, "-")
	if len(parts) == 3 {
		n, err := strconv.Atoi(parts[2])
		if err != nil {
			return time.Time{}, 0, false
		}
		sequence = n
		stamp = parts[0] + "-" + parts[1]
	}

	for _, layout := range []string{"20060102-1504", "20060102-150405"} {
		if t, err := time.ParseInLocation(layout, stamp, time.Local); err == nil {
			return t, sequence, true
		}
	}
	return time.Time{}, 0, false
}

// ListBackups returns a list of all available backups, sorted by timestamp (newest first)
func (m *Manager) ListBackups() ([]BackupInfo, error) {
	if _, err := os.Stat(m.backupDir); os.IsNotExist(err) {
		return []BackupInfo{}, nil
	}

	entries, err := os.ReadDir(m.backupDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	backups := []BackupInfo{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		timestamp, sequence, ok := parseBackupName(entry.Name())
		if !ok {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		backups = append(backups, BackupInfo{
			Path:      filepath.Join(m.backupDir, entry.Name()),
			Timestamp: timestamp,
			Size:      info.Size(),
			Sequence:  sequence,
		})
	}

	// Sort by timestamp, newest first
	sort.Slice(backups, func(i, j int) bool {
		if backups[i].Timestamp.Equal(backups[j].Timestamp) {
			return backups[i].Sequence > backups[j].Sequence
		}
		return backups[i].Timestamp.After(backups[j].Timestamp)
	})

	return backups, nil
}

// rotateBackups removes old backups beyond the retention limit
func (m *Manager) rotateBackups() error {
	backups, err := m.ListBackups()
	if err != nil {
		return err
	}

	for i := m.maxBackups; i < len(backups); i++ {
		if err := os.Remove(backups[i].Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", backups[i].Path, err)
		}
		logger.Debug("Removed old backup", "path", backups[i].Path)
	}
	return nil
}

// RestoreBackup replaces the store contents with the snapshot at backupPath.
// The current contents are backed up first. Keys missing from the snapshot
// are removed.
func (m *Manager) RestoreBackup(ctx context.Context, backupPath string) (string, error) {
	if _, err := os.Stat(backupPath); os.IsNotExist(err) {
		return "", fmt.Errorf("backup file does not exist: %s", backupPath)
	}

	snapshot := storage.NewJSONStore(backupPath)
	if err := snapshot.Load(); err != nil {
		return "", fmt.Errorf("backup file is corrupted or invalid: %w", err)
	}
	wanted, err := snapshot.Keys(ctx)
	if err != nil {
		return "", fmt.Errorf("backup file is corrupted or invalid: %w", err)
	}

	preRestore, err := m.createBackup(ctx, true)
	if err != nil {
		return "", fmt.Errorf("failed to backup current store before restore: %w", err)
	}

	current, err := m.store.Keys(ctx)
	if err != nil {
		return preRestore, err
	}
	for _, key := range current {
		if slices.Contains(wanted, key) {
			continue
		}
		if err := m.store.Remove(ctx, key); err != nil {
			return preRestore, fmt.Errorf("failed to clear %s: %w", key, err)
		}
	}

	if _, err := storage.Copy(ctx, m.store, snapshot); err != nil {
		return preRestore, fmt.Errorf("failed to restore store: %w", err)
	}
	logger.Info("Restored backup", "path", backupPath, "pre_restore", preRestore)
	return preRestore, nil
}
