package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/leonhh/applist/internal/models"
	"github.com/spf13/pflag"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("", nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Icon.Size != 256 {
		t.Errorf("Expected default icon size 256, got %d", cfg.Icon.Size)
	}
	if cfg.Workers.IO != 64 || cfg.Workers.CPU <= 0 {
		t.Errorf("Unexpected worker defaults: %+v", cfg.Workers)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "text" {
		t.Errorf("Unexpected log defaults: %+v", cfg.Log)
	}
	if cfg.Registry != "" {
		t.Errorf("Expected no default registry, got %s", cfg.Registry)
	}
}

func TestLoadPrecedence(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "applist.yaml")
	content := `registry: /from/file.yaml
icon:
  size: 96
workers:
  io: 8
log:
  format: json
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	t.Setenv("APPLIST_WORKERS_IO", "16")
	t.Setenv("APPLIST_LOG_LEVEL", "debug")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("registry", "", "")
	flags.Int("icon-size", 0, "")
	if err := flags.Parse([]string{"--registry", "/from/flag.yaml"}); err != nil {
		t.Fatalf("Failed to parse flags: %v", err)
	}

	cfg, err := Load(configPath, flags)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Registry != "/from/flag.yaml" {
		t.Errorf("Flag must win over file, got %s", cfg.Registry)
	}
	if cfg.Icon.Size != 96 {
		t.Errorf("Unset flag must not override file, got %d", cfg.Icon.Size)
	}
	if cfg.Workers.IO != 16 {
		t.Errorf("Environment must win over file, got %d", cfg.Workers.IO)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("Unexpected log config: %+v", cfg.Log)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Setenv("APPLIST_ICON_SIZE", "0")
	if _, err := Load("", nil); !models.IsType(err, models.ErrInvalidConfig) {
		t.Errorf("Expected InvalidConfig for zero icon size, got %v", err)
	}
}

func TestLoadRejectsUnknownLogFormat(t *testing.T) {
	t.Setenv("APPLIST_LOG_FORMAT", "xml")
	if _, err := Load("", nil); !models.IsType(err, models.ErrInvalidConfig) {
		t.Errorf("Expected InvalidConfig for unknown log format, got %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	if !models.IsType(err, models.ErrInvalidConfig) {
		t.Errorf("Expected InvalidConfig for missing file, got %v", err)
	}
}
