// Package logger holds the process-wide logger. Every helper is a no-op until
// Init runs, so packages below the CLI can log unconditionally.
package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/julianstephens/aisle/internal/constants"
)

// Rotation limits for the log file.
const (
	maxSizeMB  = 10
	maxBackups = 3
	maxAgeDays = 28
)

var (
	// Logger is the global logger instance
	Logger *log.Logger

	logFile string
)

type Config struct {
	Debug     bool
	ConfigDir string
	// LogDir overrides <ConfigDir>/logs when set
	LogDir string
	// Backend and StoreSource are attached to every entry when set. Never
	// pass the raw store target here, it may carry a password.
	Backend     string
	StoreSource string
}

// Init points the global logger at a rotating file. Debug lowers the level,
// reports callers and tees output to stderr.
func Init(cfg Config) error {
	dir := cfg.LogDir
	if dir == "" {
		dir = filepath.Join(cfg.ConfigDir, "logs")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	logFile = filepath.Join(dir, constants.AppName+".log")

	var out io.Writer = &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		MaxAge:     maxAgeDays,
		Compress:   true,
	}
	level := log.WarnLevel
	if cfg.Debug {
		level = log.DebugLevel
		out = io.MultiWriter(os.Stderr, out)
	}

	l := log.NewWithOptions(out, log.Options{
		ReportCaller:    cfg.Debug,
		ReportTimestamp: true,
		Level:           level,
		Prefix:          constants.AppName,
	})

	var fields []any
	if cfg.Backend != "" {
		fields = append(fields, "backend", cfg.Backend)
	}
	if cfg.StoreSource != "" {
		fields = append(fields, "store_source", cfg.StoreSource)
	}
	if len(fields) > 0 {
		l = l.With(fields...)
	}
	Logger = l

	Logger.Debug("Logger initialized", "file", logFile)
	return nil
}

// Path returns the active log file, or "" before Init.
func Path() string {
	if Logger == nil {
		return ""
	}
	return logFile
}

func Debug(msg string, keyvals ...any) {
	if Logger != nil {
		Logger.Debug(msg, keyvals...)
	}
}

func Info(msg string, keyvals ...any) {
	if Logger != nil {
		Logger.Info(msg, keyvals...)
	}
}

func Warn(msg string, keyvals ...any) {
	if Logger != nil {
		Logger.Warn(msg, keyvals...)
	}
}

// Error records a failure; callers still return the error themselves.
func Error(msg string, keyvals ...any) {
	if Logger != nil {
		Logger.Error(msg, keyvals...)
	}
}

// Fatal logs and exits with status 1 even when Init never ran.
func Fatal(msg string, keyvals ...any) {
	if Logger != nil {
		Logger.Fatal(msg, keyvals...)
	}
	os.Exit(1)
}
