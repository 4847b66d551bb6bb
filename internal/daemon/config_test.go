package daemon

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.API.Host != "127.0.0.1" {
		t.Errorf("API.Host = %q, want %q", cfg.API.Host, "127.0.0.1")
	}
	if cfg.API.Port != 7433 {
		t.Errorf("API.Port = %d, want %d", cfg.API.Port, 7433)
	}
	if cfg.Engine.MinChecksPerDay != 5 {
		t.Errorf("Engine.MinChecksPerDay = %d, want 5", cfg.Engine.MinChecksPerDay)
	}
	if !cfg.Engine.SeedCatalogs {
		t.Error("Engine.SeedCatalogs = false, want true")
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "info")
	}
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("GLINT_HOME", t.TempDir())

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.API.Port != 7433 {
		t.Errorf("API.Port = %d, want default 7433", cfg.API.Port)
	}
}

func TestSaveLoadConfigRoundTrip(t *testing.T) {
	t.Setenv("GLINT_HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.API.Port = 9999
	cfg.Engine.MinChecksPerDay = 3
	if err := SaveConfig(cfg); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}

	got, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if got.API.Port != 9999 {
		t.Errorf("API.Port = %d, want 9999", got.API.Port)
	}
	if got.Engine.MinChecksPerDay != 3 {
		t.Errorf("Engine.MinChecksPerDay = %d, want 3", got.Engine.MinChecksPerDay)
	}
}

func TestLoadConfigCorrectsBadThreshold(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("GLINT_HOME", dir)

	raw := "[engine]\nmin_checks_per_day = -2\n"
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(raw), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Engine.MinChecksPerDay != 5 {
		t.Errorf("MinChecksPerDay = %d, want corrected default 5", cfg.Engine.MinChecksPerDay)
	}
}
