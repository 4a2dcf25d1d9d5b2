package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface.
type Config struct {
	Inventory InventoryConfig
	Logging   LoggingConfig
}

// InventoryConfig holds the inventory file locations.
type InventoryConfig struct {
	FilePath   string
	BackupPath string
}

// LoggingConfig holds the log sink settings.
type LoggingConfig struct {
	FilePath string
	Level    string
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Ignore the returned error here; missing .env files are acceptable when
		// configuration comes from the environment directly.
		_ = godotenv.Load()
	}

	cfg := &Config{
		Inventory: InventoryConfig{
			FilePath:   getenvWithDefault("INVENTORY_FILE", "inventory.txt"),
			BackupPath: getenvWithDefault("INVENTORY_BACKUP_FILE", "inventory_backup.txt"),
		},
		Logging: LoggingConfig{
			FilePath: getenvWithDefault("LOG_FILE", "inventory_system.log"),
			Level:    getenvWithDefault("LOG_LEVEL", "info"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Inventory.FilePath == "" {
		return errors.New("INVENTORY_FILE must be provided")
	}

	if c.Inventory.BackupPath == "" {
		return errors.New("INVENTORY_BACKUP_FILE must be provided")
	}

	if c.Inventory.BackupPath == c.Inventory.FilePath {
		return errors.New("INVENTORY_BACKUP_FILE must differ from INVENTORY_FILE")
	}

	if c.Logging.FilePath == "" {
		return errors.New("LOG_FILE must be provided")
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("LOG_LEVEL %q is not one of debug, info, warn, error", c.Logging.Level)
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
