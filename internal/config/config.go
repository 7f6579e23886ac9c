// Package config loads weekly's settings from a TOML file, environment
// variables and command-line flags, in that order of precedence (flags
// win).
package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/adrg/xdg"

	"github.com/manav03panchal/weekly/internal/errors"
	"github.com/manav03panchal/weekly/internal/logging"
	"github.com/manav03panchal/weekly/internal/model"
	"github.com/manav03panchal/weekly/internal/storage"
)

// FileName is the name of the config file inside the config directory.
const FileName = "config.toml"

// MemoryPath selects an in-memory store.
const MemoryPath = ":memory:"

// Config holds all user-facing settings.
type Config struct {
	Storage StorageConfig `toml:"storage"`
	Display DisplayConfig `toml:"display"`
}

// StorageConfig selects where and how tasks are stored.
type StorageConfig struct {
	// Backend is "badger" or "sqlite".
	Backend string `toml:"backend"`

	// Path is the database location. Empty uses the XDG data directory;
	// ":memory:" keeps everything in memory.
	Path string `toml:"path"`

	// Key is the storage key of the task array.
	Key string `toml:"key"`

	// MinFreeSpaceMB is the free space required before opening a file
	// store. Zero disables the check.
	MinFreeSpaceMB uint64 `toml:"min_free_space_mb"`

	// Undo keeps a snapshot of the last change.
	Undo bool `toml:"undo"`
}

// DisplayConfig controls how the board is drawn.
type DisplayConfig struct {
	Locale        string `toml:"locale"`
	Color         string `toml:"color"`
	Format        string `toml:"format"`
	HideCompleted bool   `toml:"hide_completed"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			Backend:        string(storage.BackendBadger),
			Key:            model.KeyTasks,
			MinFreeSpaceMB: storage.MinFreeSpace / (1024 * 1024),
			Undo:           true,
		},
		Display: DisplayConfig{
			Locale: string(model.LocaleEN),
			Color:  "auto",
			Format: "cli",
		},
	}
}

// Dir returns the weekly config directory.
func Dir() string {
	return filepath.Join(xdg.ConfigHome, "weekly")
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return filepath.Join(Dir(), FileName)
}

// Load reads the config file at path on top of the defaults, then applies
// environment overrides. A missing file is not an error. An empty path
// uses DefaultPath, or WEEKLY_CONFIG when set.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("WEEKLY_CONFIG")
	}
	if path == "" {
		path = DefaultPath()
	}

	cfg := Default()
	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}
	cfg.loadFromEnv()
	if err := cfg.finalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.NewSystemErrorWithOp("load config", "cannot read config file", err)
	}

	md, err := toml.DecodeFile(path, c)
	if err != nil {
		return errors.NewUserErrorWithField("config", path,
			"invalid config file: "+err.Error(),
			"Fix the TOML syntax or run 'weekly config init --force' to start over.")
	}
	for _, key := range md.Undecoded() {
		logging.Warn("unknown config key", "key", key.String(), "path", path)
	}
	return nil
}

// loadFromEnv applies WEEKLY_* environment overrides.
func (c *Config) loadFromEnv() {
	if v := os.Getenv("WEEKLY_DATABASE"); v != "" {
		c.Storage.Path = v
	}
	if v := os.Getenv("WEEKLY_BACKEND"); v != "" {
		c.Storage.Backend = v
	}
	if v := os.Getenv("WEEKLY_KEY"); v != "" {
		c.Storage.Key = v
	}
	if v := os.Getenv("WEEKLY_LOCALE"); v != "" {
		c.Display.Locale = v
	}
	if os.Getenv("NO_COLOR") != "" {
		c.Display.Color = "never"
	}
}

// finalize normalizes values and rejects ones that cannot work.
func (c *Config) finalize() error {
	c.Storage.Backend = strings.ToLower(strings.TrimSpace(c.Storage.Backend))
	if c.Storage.Backend == "" {
		c.Storage.Backend = string(storage.BackendBadger)
	}
	switch storage.Backend(c.Storage.Backend) {
	case storage.BackendBadger, storage.BackendSQLite:
	default:
		return errors.Invalid(errors.ErrUnknownBackend, "storage.backend", c.Storage.Backend)
	}

	if c.Storage.Path != MemoryPath {
		c.Storage.Path = expandPath(c.Storage.Path)
	}
	if strings.TrimSpace(c.Storage.Key) == "" {
		c.Storage.Key = model.KeyTasks
	}

	c.Display.Locale = strings.ToLower(strings.TrimSpace(c.Display.Locale))
	if !model.ValidLocale(model.Locale(c.Display.Locale)) {
		logging.Warn("unknown locale, using English", "locale", c.Display.Locale)
		c.Display.Locale = string(model.LocaleEN)
	}
	return nil
}

// InMemory reports whether the store should live in memory only.
func (c *Config) InMemory() bool {
	return c.Storage.Path == MemoryPath
}

// DatabasePath returns the configured database location, falling back to
// the default for the selected backend.
func (c *Config) DatabasePath() string {
	if c.InMemory() {
		return ""
	}
	if c.Storage.Path != "" {
		return c.Storage.Path
	}
	if storage.Backend(c.Storage.Backend) == storage.BackendSQLite {
		return filepath.Join(storage.DataDir(), "weekly.db")
	}
	return storage.DefaultPath()
}

// Locale returns the display locale.
func (c *Config) Locale() model.Locale {
	return model.Locale(c.Display.Locale)
}

func expandPath(p string) string {
	if p == "" {
		return p
	}

	expanded := os.ExpandEnv(p)
	if expanded == "~" || strings.HasPrefix(expanded, "~/") ||
		(runtime.GOOS == "windows" && strings.HasPrefix(expanded, "~\\")) {
		home, err := os.UserHomeDir()
		if err != nil {
			return expanded
		}
		if expanded == "~" {
			return home
		}
		return filepath.Join(home, expanded[2:])
	}
	return expanded
}
