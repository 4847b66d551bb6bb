// Package daemon manages the Glint daemon lifecycle and configuration.
package daemon

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all daemon configuration.
type Config struct {
	Engine  EngineConfig  `toml:"engine"`
	API     APIConfig     `toml:"api"`
	Storage StorageConfig `toml:"storage"`
	Logging LoggingConfig `toml:"logging"`
}

// EngineConfig controls the scoring engine's policy knobs.
type EngineConfig struct {
	// MinChecksPerDay is the completed-checkmark threshold for a streak
	// qualifying day.
	MinChecksPerDay int `toml:"min_checks_per_day"`
	// SeedCatalogs seeds the starter achievement/reward catalogs on first run.
	SeedCatalogs bool `toml:"seed_catalogs"`
}

// APIConfig controls the HTTP API server.
type APIConfig struct {
	Host        string   `toml:"host"`
	Port        int      `toml:"port"`
	CORSOrigins []string `toml:"cors_origins"`
	Prometheus  bool     `toml:"prometheus"`
}

// StorageConfig controls where engine state lives.
type StorageConfig struct {
	Dir string `toml:"dir"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() Config {
	homeDir := glintHome()
	return Config{
		Engine: EngineConfig{
			MinChecksPerDay: 5,
			SeedCatalogs:    true,
		},
		API: APIConfig{
			Host:        "127.0.0.1",
			Port:        7433,
			CORSOrigins: []string{"*"},
			Prometheus:  true,
		},
		Storage: StorageConfig{
			Dir: homeDir,
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  filepath.Join(homeDir, "glint.log"),
		},
	}
}

// LoadConfig reads config from ~/.glint/config.toml, falling back to defaults.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()
	path := filepath.Join(glintHome(), "config.toml")

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil // No config file yet — use defaults
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	if cfg.Engine.MinChecksPerDay <= 0 {
		cfg.Engine.MinChecksPerDay = 5
	}

	return cfg, nil
}

// SaveConfig writes the config to ~/.glint/config.toml.
func SaveConfig(cfg Config) error {
	path := filepath.Join(glintHome(), "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	return encoder.Encode(cfg)
}

// glintHome returns the Glint data directory.
func glintHome() string {
	if env := os.Getenv("GLINT_HOME"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".glint")
}
