package config

import (
	"bytes"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/manav03panchal/weekly/internal/errors"
	"github.com/manav03panchal/weekly/internal/storage"
)

// Example is the commented file written by 'weekly config init'.
const Example = `# weekly configuration

[storage]
# "badger" (default) or "sqlite"
backend = "badger"

# Database location. Empty uses ~/.local/share/weekly, ":memory:" keeps
# tasks in memory only.
path = ""

# Key holding the task list.
key = "to-do-list-gn"

# Refuse to open a file store with less free space than this (MB, 0 = off).
min_free_space_mb = 10

# Keep a snapshot of the last change for 'weekly undo'.
undo = true

[display]
# "en" or "pt"
locale = "en"

# "auto", "always" or "never"
color = "auto"

# "cli", "json" or "plain"
format = "cli"

# Leave checked tasks off the board.
hide_completed = false
`

// Encode writes cfg as TOML.
func (c *Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// String returns cfg as TOML.
func (c *Config) String() string {
	var buf bytes.Buffer
	if err := c.Encode(&buf); err != nil {
		return ""
	}
	return buf.String()
}

// WriteExample writes the example file to path. An existing file is kept
// unless overwrite is set.
func WriteExample(path string, overwrite bool) error {
	if path == "" {
		path = DefaultPath()
	}
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return errors.NewUserErrorWithField("config", path,
				"config file already exists",
				"Pass --force to overwrite it.")
		}
	}
	if err := storage.EnsureDirectory(filepath.Dir(path)); err != nil {
		return err
	}
	return storage.SafeWrite(path, []byte(Example), 0o644)
}
