// Package config resolves the runtime configuration from command-line flags,
// STREAKLY_* environment variables and the OS keyring, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/julianstephens/streakly/internal/constants"
	"github.com/julianstephens/streakly/internal/keyring"
	"github.com/julianstephens/streakly/internal/stats"
	"github.com/julianstephens/streakly/internal/storage/postgres"
	"github.com/julianstephens/streakly/internal/utils"
)

// Env holds the STREAKLY_* environment overrides.
type Env struct {
	Config       string `env:"STREAKLY_CONFIG"`
	Debug        bool   `env:"STREAKLY_DEBUG"`
	Timezone     string `env:"STREAKLY_TIMEZONE"`
	DBConnection string `env:"STREAKLY_DB_CONNECTION"`
	ActiveRule   string `env:"STREAKLY_ACTIVE_RULE"`
}

// Flags are the global command-line options. Empty values are unset.
type Flags struct {
	Config     string
	Debug      bool
	Timezone   string
	ActiveRule string
}

// Config is the resolved configuration.
type Config struct {
	// Path is the SQLite database or JSON file, empty when ConnString is set.
	Path string
	// ConnString is a PostgreSQL connection string.
	ConnString string
	// Source names where the store location came from, for diagnostics.
	Source     string
	Debug      bool
	Timezone   string
	Location   *time.Location
	ActiveRule stats.ActiveRule
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// keyringLookup is replaced in tests.
var keyringLookup = keyring.GetConnectionString

// Load parses the environment and resolves it against flags.
func Load(flags Flags) (Config, error) {
	var e Env
	if err := ParseEnv(&e); err != nil {
		return Config{}, err
	}
	return Resolve(flags, e)
}

// Resolve merges flags over env. The store location is taken from, in order:
// the --config flag, STREAKLY_CONFIG, STREAKLY_DB_CONNECTION, the OS keyring
// and finally the default SQLite path. Connection strings given on the
// command line or in STREAKLY_CONFIG must not embed a password.
func Resolve(flags Flags, e Env) (Config, error) {
	cfg := Config{
		Debug:    flags.Debug || e.Debug,
		Timezone: firstNonEmpty(flags.Timezone, e.Timezone, constants.DefaultTimezone),
	}

	loc, err := utils.LoadLocation(cfg.Timezone)
	if err != nil {
		return Config{}, fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
	}
	cfg.Location = loc

	ruleName := firstNonEmpty(flags.ActiveRule, e.ActiveRule, stats.ActiveEngaged.String())
	rule, ok := stats.ParseActiveRule(ruleName)
	if !ok {
		return Config{}, fmt.Errorf("invalid active habit rule %q", ruleName)
	}
	cfg.ActiveRule = rule

	switch {
	case flags.Config != "":
		err = cfg.setLocation(flags.Config, "flag", true)
	case e.Config != "":
		err = cfg.setLocation(e.Config, "STREAKLY_CONFIG", true)
	case e.DBConnection != "":
		err = cfg.setLocation(e.DBConnection, "STREAKLY_DB_CONNECTION", false)
	default:
		connStr, kerr := keyringLookup()
		if kerr == nil && connStr != "" {
			err = cfg.setLocation(connStr, "keyring", false)
			break
		}
		if kerr != nil && !errors.Is(kerr, keyring.ErrNotFound) && !errors.Is(kerr, keyring.ErrKeyringUnavailable) {
			return Config{}, kerr
		}
		err = cfg.setLocation(constants.DefaultConfigPath, "default", false)
	}
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) setLocation(value, source string, rejectCredentials bool) error {
	c.Source = source
	if postgres.IsConnString(value) {
		if _, err := postgres.ValidateConnString(value); err != nil {
			if !errors.Is(err, postgres.ErrEmbeddedCredentials) || rejectCredentials {
				return err
			}
		}
		c.ConnString = value
		return nil
	}
	path, err := ExpandPath(value)
	if err != nil {
		return err
	}
	c.Path = path
	return nil
}

// IsPostgres reports whether the store is a PostgreSQL database.
func (c Config) IsPostgres() bool {
	return c.ConnString != ""
}

// IsJSON reports whether the store is a single JSON file.
func (c Config) IsJSON() bool {
	return strings.EqualFold(filepath.Ext(c.Path), ".json")
}

// Dir is the directory for logs, backups and exports: next to the store file,
// or the user config directory for PostgreSQL.
func (c Config) Dir() string {
	if c.Path != "" {
		return filepath.Dir(c.Path)
	}
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, constants.AppName)
	}
	return "."
}

// ExpandPath expands a leading "~" to the home directory.
func ExpandPath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return filepath.Clean(path), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
