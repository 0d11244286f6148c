package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/julianstephens/aisle/internal/constants"
)

// Source records where the resolved store target came from.
type Source string

const (
	SourceFlag    Source = "flag"
	SourceEnv     Source = "environment"
	SourceKeyring Source = "keyring"
	SourceFile    Source = "config file"
	SourceDefault Source = "default"
)

// BackupSettings controls automatic snapshots.
type BackupSettings struct {
	Max  int   `yaml:"max"`
	Auto *bool `yaml:"auto"`
}

// File is the on-disk YAML configuration.
type File struct {
	Store   string         `yaml:"store"`
	Debug   bool           `yaml:"debug"`
	LogDir  string         `yaml:"log_dir"`
	Backups BackupSettings `yaml:"backups"`
}

// Config is the effective configuration after every layer has been applied.
type Config struct {
	Store       string
	StoreSource Source
	Debug       bool
	ConfigDir   string
	LogDir      string
	MaxBackups  int
	AutoBackup  bool
}

// Trusted reports whether the store target came from a location allowed to
// hold credentials.
func (c Config) Trusted() bool {
	return c.StoreSource == SourceEnv || c.StoreSource == SourceKeyring
}

// BackupDir is where snapshots are written.
func (c Config) BackupDir() string {
	return filepath.Join(c.ConfigDir, constants.BackupDirName)
}

// Overrides holds values given on the command line. Empty fields are unset.
type Overrides struct {
	Store  string
	Config string
	Debug  bool
}

// Load reads a YAML config file. A missing file yields an empty File.
func Load(path string) (File, error) {
	var f File
	path, err := ExpandPath(path)
	if err != nil {
		return f, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return f, nil
		}
		return f, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &f); err != nil {
		return f, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if f.Backups.Max < 0 {
		return f, fmt.Errorf("invalid config file %s: backups.max must not be negative", path)
	}
	return f, nil
}

// Save writes f as YAML, creating the parent directory.
func Save(path string, f File) error {
	path, err := ExpandPath(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(&f)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}
	return nil
}

// Resolver applies the configuration layers. The lookup functions are
// replaceable for tests.
type Resolver struct {
	LookupEnv  func(string) (string, bool)
	KeyringGet func() (string, error)
}

// NewResolver returns a Resolver reading the process environment and the
// given keyring lookup.
func NewResolver(keyringGet func() (string, error)) *Resolver {
	return &Resolver{
		LookupEnv:  os.LookupEnv,
		KeyringGet: keyringGet,
	}
}

// Resolve builds the effective configuration. The store target is chosen by
// precedence: flag, AISLE_STORE, AISLE_DB_CONNECTION, keyring, file, default.
func (r *Resolver) Resolve(o Overrides) (Config, error) {
	configPath := o.Config
	if configPath == "" {
		configPath = filepath.Join(constants.DefaultConfigDir, constants.ConfigFileName)
	}
	configPath, err := ExpandPath(configPath)
	if err != nil {
		return Config{}, err
	}

	f, err := Load(configPath)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Debug:      o.Debug || f.Debug,
		ConfigDir:  filepath.Dir(configPath),
		MaxBackups: constants.MaxBackups,
		AutoBackup: true,
	}
	if f.Backups.Max > 0 {
		cfg.MaxBackups = f.Backups.Max
	}
	if f.Backups.Auto != nil {
		cfg.AutoBackup = *f.Backups.Auto
	}
	if f.LogDir != "" {
		if cfg.LogDir, err = ExpandPath(f.LogDir); err != nil {
			return Config{}, err
		}
	}

	cfg.Store, cfg.StoreSource = r.storeTarget(o, f)
	if cfg.StoreSource != SourceEnv && cfg.StoreSource != SourceKeyring {
		if cfg.Store, err = ExpandPath(cfg.Store); err != nil {
			return Config{}, err
		}
	}
	return cfg, nil
}

func (r *Resolver) storeTarget(o Overrides, f File) (string, Source) {
	if v := strings.TrimSpace(o.Store); v != "" {
		return v, SourceFlag
	}
	if r.LookupEnv != nil {
		if v, ok := r.LookupEnv(constants.EnvStore); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v), SourceEnv
		}
		if v, ok := r.LookupEnv(constants.EnvDBConnection); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v), SourceEnv
		}
	}
	if r.KeyringGet != nil {
		// Keyring errors fall through to the next layer
		if v, err := r.KeyringGet(); err == nil && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v), SourceKeyring
		}
	}
	if v := strings.TrimSpace(f.Store); v != "" {
		return v, SourceFile
	}
	return constants.DefaultStorePath, SourceDefault
}

// ExpandPath replaces a leading ~ with the user's home directory.
func ExpandPath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
