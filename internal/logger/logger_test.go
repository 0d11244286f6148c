package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInit(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "config")

	err := Init(Config{
		Debug:     false,
		ConfigDir: configDir,
	})
	if err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}

	logDir := filepath.Join(configDir, "logs")
	if _, err := os.Stat(logDir); os.IsNotExist(err) {
		t.Errorf("Log directory was not created: %s", logDir)
	}

	if Logger == nil {
		t.Error("Logger is nil after initialization")
	}

	Debug("Test debug message")
	Info("Test info message")
	Warn("Test warning message")
	Error("Test error message", "key", "budget_details")
}

func TestInitCustomLogDir(t *testing.T) {
	tempDir := t.TempDir()
	logDir := filepath.Join(tempDir, "elsewhere")

	if err := Init(Config{ConfigDir: filepath.Join(tempDir, "config"), LogDir: logDir}); err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}

	Warn("written to the custom directory")

	if _, err := os.Stat(logDir); os.IsNotExist(err) {
		t.Errorf("custom log directory was not created: %s", logDir)
	}
	if _, err := os.Stat(filepath.Join(tempDir, "config", "logs")); err == nil {
		t.Error("default log directory should not be created when LogDir is set")
	}
}

func TestInitAttachesStoreFields(t *testing.T) {
	logDir := t.TempDir()
	if err := Init(Config{LogDir: logDir, Backend: "json", StoreSource: "flag"}); err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}

	want := filepath.Join(logDir, "aisle.log")
	if Path() != want {
		t.Fatalf("Path() = %q, want %q", Path(), want)
	}

	Warn("store unreachable", "key", "guest_details")

	data, err := os.ReadFile(want)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	line := string(data)
	for _, field := range []string{"backend=json", "store_source=flag", "key=guest_details"} {
		if !strings.Contains(line, field) {
			t.Errorf("log line %q missing %q", line, field)
		}
	}
}

func TestInitDebugMode(t *testing.T) {
	err := Init(Config{
		Debug:     true,
		ConfigDir: filepath.Join(t.TempDir(), "config"),
	})
	if err != nil {
		t.Fatalf("Failed to initialize logger in debug mode: %v", err)
	}

	if Logger == nil {
		t.Error("Logger is nil after initialization")
	}

	Debug("Test debug message in debug mode")
	Info("Test info message in debug mode")
}

func TestLogFunctionsWithoutInit(t *testing.T) {
	Logger = nil

	if Path() != "" {
		t.Errorf("Path() before Init = %q, want empty", Path())
	}

	// These should not panic when Logger is nil
	Debug("Test debug message")
	Info("Test info message")
	Warn("Test warning message")
	Error("Test error message")
}
