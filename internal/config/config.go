package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/julianstephens/mooded/internal/constants"
	"github.com/julianstephens/mooded/internal/keyring"
	"github.com/julianstephens/mooded/internal/logger"
	"github.com/julianstephens/mooded/internal/utils"
)

// Config is read from the YAML config file when present, then from the
// environment. Command-line flags are applied on top by the caller.
type Config struct {
	// DB is a SQLite path or a postgres://, redis:// or dir:// DSN.
	// Empty means the keyring connection string, then the default SQLite file.
	DB        string `yaml:"db" env:"MOODED_DB" env-default:""`
	Timezone  string `yaml:"timezone" env:"MOODED_TIMEZONE" env-default:"Local"`
	Debug     bool   `yaml:"debug" env:"MOODED_DEBUG" env-default:"false"`
	ExportDir string `yaml:"export_dir" env:"MOODED_EXPORT_DIR" env-default:"."`
}

// Load reads path (if it exists) and the environment.
func Load(path string) (Config, error) {
	var cfg Config

	path = ExpandPath(path)
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := cleanenv.ReadConfig(path, &cfg); err != nil {
				return Config{}, fmt.Errorf("read config %s: %w", path, err)
			}
			return cfg, nil
		}
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("read env: %w", err)
	}
	return cfg, nil
}

// Location returns the time zone used for calendar days.
func (c Config) Location() (*time.Location, error) {
	return utils.LoadLocation(c.Timezone)
}

// ResolveDSN picks the storage DSN: the configured value, then a connection
// string stored in the OS keyring, then the default SQLite file.
func (c Config) ResolveDSN() string {
	if c.DB != "" {
		return ExpandPath(c.DB)
	}
	connStr, err := keyring.GetConnectionString()
	if err == nil && connStr != "" {
		return connStr
	}
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		logger.Debug("Keyring lookup failed, using default database", "error", err)
	}
	return ExpandPath(constants.DefaultDBPath)
}

// ConfigDir is the directory holding logs and the default database
func ConfigDir() string {
	return ExpandPath(constants.DefaultConfigDir)
}

// ExpandPath replaces a leading ~ with the user's home directory.
func ExpandPath(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
