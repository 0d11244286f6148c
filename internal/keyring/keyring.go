// Package keyring keeps PostgreSQL connection strings in the OS keyring, one
// entry per profile under the application's service name.
package keyring

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/zalando/go-keyring"

	"github.com/julianstephens/aisle/internal/constants"
)

var (
	ErrNotFound           = errors.New("no connection string stored in keyring")
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// Profile selects one keyring entry, so planners kept in different databases
// can each have their own credentials. The empty profile is the default.
type Profile string

const DefaultProfile Profile = "default"

// ProfileFromEnv returns the profile named by AISLE_KEYRING_PROFILE.
func ProfileFromEnv() Profile {
	return Profile(strings.TrimSpace(os.Getenv(constants.EnvKeyringProfile)))
}

// Name is the profile as shown to users.
func (p Profile) Name() string {
	if p == "" {
		return string(DefaultProfile)
	}
	return string(p)
}

// The default profile keeps the bare user name so entries written before
// profiles existed are still found.
func (p Profile) user() string {
	if p.Name() == string(DefaultProfile) {
		return constants.DefaultKeyringUser
	}
	return constants.DefaultKeyringUser + ":" + string(p)
}

func (p Profile) ConnectionString() (string, error) {
	connStr, err := keyring.Get(constants.AppName, p.user())
	switch {
	case errors.Is(err, keyring.ErrNotFound):
		return "", fmt.Errorf("%w for profile %q", ErrNotFound, p.Name())
	case err != nil:
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return connStr, nil
}

func (p Profile) SetConnectionString(connStr string) error {
	connStr = strings.TrimSpace(connStr)
	if connStr == "" {
		return errors.New("connection string cannot be empty")
	}
	if err := keyring.Set(constants.AppName, p.user(), connStr); err != nil {
		return fmt.Errorf("failed to store credentials for profile %q: %w", p.Name(), err)
	}
	return nil
}

func (p Profile) DeleteConnectionString() error {
	err := keyring.Delete(constants.AppName, p.user())
	switch {
	case errors.Is(err, keyring.ErrNotFound):
		return fmt.Errorf("%w for profile %q", ErrNotFound, p.Name())
	case err != nil:
		return fmt.Errorf("failed to delete credentials for profile %q: %w", p.Name(), err)
	}
	return nil
}

// GetConnectionString reads the entry of the profile chosen by the environment.
// The config resolver uses it as the keyring fallback.
func GetConnectionString() (string, error) {
	return ProfileFromEnv().ConnectionString()
}

// IsAvailable is best-effort: a lookup that fails for any reason other than
// a missing entry counts as unavailable.
func IsAvailable() bool {
	_, err := keyring.Get(constants.AppName, "availability-check")
	return err == nil || errors.Is(err, keyring.ErrNotFound)
}
