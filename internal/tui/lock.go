package tui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/aisle/internal/constants"
	"github.com/julianstephens/aisle/internal/logger"
)

var (
	findProcessFunc = ps.FindProcess

	ErrAlreadyRunning = errors.New("dashboard is already running")
)

// Lock keeps a second dashboard from opening against the same config dir.
type Lock struct {
	path string
}

// AcquireLock writes the current PID to path. A lockfile whose process is
// gone, or belongs to another program, is treated as stale and replaced.
func AcquireLock(path string) (*Lock, error) {
	if pid, err := readLockfile(path); err == nil {
		if isDashboardProcess(pid) {
			return nil, fmt.Errorf("%w (pid %d)", ErrAlreadyRunning, pid)
		}
		logger.Debug("Replacing stale lockfile", "path", path, "pid", pid)
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to remove stale lockfile: %w", err)
		}
	} else if !os.IsNotExist(err) {
		logger.Debug("Ignoring unreadable lockfile", "path", path, "error", err)
		_ = os.Remove(path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		if os.IsExist(err) {
			return nil, ErrAlreadyRunning
		}
		return nil, fmt.Errorf("failed to create lockfile: %w", err)
	}
	defer f.Close()
	if _, err := f.WriteString(strconv.Itoa(os.Getpid())); err != nil {
		return nil, fmt.Errorf("failed to write lockfile: %w", err)
	}
	return &Lock{path: path}, nil
}

// Release removes the lockfile if it still holds this process's PID.
func (l *Lock) Release() error {
	pid, err := readLockfile(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if pid != os.Getpid() {
		return nil
	}
	return os.Remove(l.path)
}

func readLockfile(path string) (int, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(content)))
	if err != nil || pid <= 0 {
		return 0, errors.New("invalid process ID in lockfile")
	}
	return pid, nil
}

func isDashboardProcess(pid int) bool {
	process, err := findProcessFunc(pid)
	if err != nil || process == nil {
		return false
	}
	return strings.HasPrefix(process.Executable(), constants.AppName)
}
