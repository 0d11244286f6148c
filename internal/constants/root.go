package constants

import "time"

const (
	AppName            = "aisle"
	DefaultKeyringUser = "database-connection"
	DefaultConfigDir   = "~/.config/aisle"
	DefaultStorePath   = "~/.config/aisle/aisle.db"
	ConfigFileName     = "config.yaml"
	Version            = "v0.3.0"

	// Environment overrides
	EnvStore        = "AISLE_STORE"
	EnvDBConnection = "AISLE_DB_CONNECTION"
	// EnvKeyringProfile picks the keyring entry read when no store is configured
	EnvKeyringProfile = "AISLE_KEYRING_PROFILE"

	// DateFormat is the calendar date format used for due dates and quotes (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimestampFormat matches JavaScript's Date.toISOString output
	TimestampFormat = "2006-01-02T15:04:05.000Z07:00"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "aisle-"
	BackupFileSuffix = ".json"

	// TUI lock file, guarded with a PID check
	TUILockfileName = "aisle-tui.lock"

	// JSONStoreVersion is written to the envelope of file-backed stores
	JSONStoreVersion = 1

	// WatchDebounce coalesces bursts of file events from a single save
	WatchDebounce = 50 * time.Millisecond

	// Day is the unit used for countdowns
	Day = 24 * time.Hour
)

// Store keys, one per document.
const (
	KeyOnboarding = "has_completed_onboarding"
	KeyWedding    = "wedding_details"
	KeyBudget     = "budget_details"
	KeyTimeline   = "timeline_details"
	KeyGuests     = "guest_details"
	KeyVendors    = "vendor_details"
)

// DocumentKeys lists every key the application owns, in display order.
var DocumentKeys = []string{
	KeyOnboarding,
	KeyWedding,
	KeyBudget,
	KeyTimeline,
	KeyGuests,
	KeyVendors,
}
