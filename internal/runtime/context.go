// Package runtime wires configuration, storage and output together for
// one weekly invocation.
package runtime

import (
	"context"
	"path/filepath"

	"github.com/manav03panchal/weekly/internal/config"
	"github.com/manav03panchal/weekly/internal/logging"
	"github.com/manav03panchal/weekly/internal/model"
	"github.com/manav03panchal/weekly/internal/output"
	"github.com/manav03panchal/weekly/internal/render"
	"github.com/manav03panchal/weekly/internal/storage"
	"github.com/manav03panchal/weekly/internal/store"
	"github.com/manav03panchal/weekly/internal/week"
)

// Context holds the application runtime context.
type Context struct {
	Config    *config.Config
	KV        storage.KV
	Store     *store.Store
	Formatter *output.Formatter

	// Ctx carries the request ID of this invocation.
	Ctx context.Context
	Log *logging.ContextLogger

	// Debug mode
	Debug bool
}

// Options configures the runtime context. Empty fields keep the value
// from the config file and environment.
type Options struct {
	ConfigPath string
	DBPath     string
	Backend    string
	Format     output.Format
	ColorMode  output.ColorMode
	Debug      bool
	// Command is the command path logged with every record.
	Command    string
}

// DefaultOptions returns default runtime options. The config file is
// found through WEEKLY_CONFIG or the XDG config directory.
func DefaultOptions() Options {
	return Options{}
}

// New loads the configuration, opens the store and builds the formatter.
func New(opts Options) (*Context, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	if opts.DBPath != "" {
		cfg.Storage.Path = opts.DBPath
	}
	if opts.Backend != "" {
		cfg.Storage.Backend = opts.Backend
	}

	ctx := logging.WithCommand(logging.NewRequestContext(), opts.Command)
	log := logging.FromContext(ctx).With(logging.KeyBackend, cfg.Storage.Backend)

	path := cfg.DatabasePath()
	if !cfg.InMemory() {
		if err := storage.CheckDiskSpaceAtLeast(filepath.Dir(path), cfg.Storage.MinFreeSpaceMB*1024*1024); err != nil {
			return nil, err
		}
		if warning := storage.CheckDiskSpaceWarning(filepath.Dir(path)); warning != "" {
			log.Warn(warning)
		}
	}

	kv, err := storage.OpenBackend(storage.BackendOptions{
		Backend:  storage.Backend(cfg.Storage.Backend),
		Path:     path,
		InMemory: cfg.InMemory(),
	})
	if err != nil {
		return nil, err
	}
	log.Debug("store opened", "path", path)

	return newContext(ctx, log, cfg, kv, opts), nil
}

// NewWithKV builds a context over an already opened KV. It is used by
// tests and by callers that manage storage themselves.
func NewWithKV(cfg *config.Config, kv storage.KV, opts Options) *Context {
	if cfg == nil {
		cfg = config.Default()
	}
	ctx := logging.WithCommand(logging.NewRequestContext(), opts.Command)
	return newContext(ctx, logging.FromContext(ctx), cfg, kv, opts)
}

func newContext(ctx context.Context, log *logging.ContextLogger, cfg *config.Config, kv storage.KV, opts Options) *Context {
	storeOpts := []store.Option{store.WithLogger(logging.LoggerFromContext(ctx))}
	if !cfg.Storage.Undo {
		storeOpts = append(storeOpts, store.WithoutUndo())
	}

	formatter := output.NewFormatter()
	formatter.Format = output.Format(cfg.Display.Format)
	formatter.ColorMode = output.ColorMode(cfg.Display.Color)
	if opts.Format != "" {
		formatter.Format = opts.Format
	}
	if opts.ColorMode != "" {
		formatter.ColorMode = opts.ColorMode
	}

	return &Context{
		Config:    cfg,
		KV:        kv,
		Store:     store.New(kv, cfg.Storage.Key, storeOpts...),
		Formatter: formatter,
		Ctx:       ctx,
		Log:       log,
		Debug:     opts.Debug,
	}
}

// Close closes the store.
func (c *Context) Close() error {
	if c.KV != nil {
		return c.KV.Close()
	}
	return nil
}

// Locale returns the display locale.
func (c *Context) Locale() model.Locale {
	return c.Config.Locale()
}

// RenderWeek renders w with the configured locale, leaving checked tasks
// out when display.hide_completed is set.
func (c *Context) RenderWeek(w week.Week) []render.Day {
	if c.Config.Display.HideCompleted {
		w = w.Filter(func(t model.Task) bool { return !t.Checked })
	}
	return render.Week(w, c.Locale())
}

// CLIFormatter returns a CLI formatter.
func (c *Context) CLIFormatter() *output.CLIFormatter {
	return output.NewCLIFormatter(c.Formatter)
}

// JSONFormatter returns a JSON formatter.
func (c *Context) JSONFormatter() *output.JSONFormatter {
	return output.NewJSONFormatter(c.Formatter)
}

// PlainFormatter returns a plain formatter.
func (c *Context) PlainFormatter() *output.PlainFormatter {
	return output.NewPlainFormatter(c.Formatter)
}

// IsJSON returns true if output format is JSON.
func (c *Context) IsJSON() bool {
	return c.Formatter.Format == output.FormatJSON
}

// IsPlain returns true if output format is plain.
func (c *Context) IsPlain() bool {
	return c.Formatter.Format == output.FormatPlain
}

// PrintWeek prints the board in the selected format.
func (c *Context) PrintWeek(w week.Week) error {
	days := c.RenderWeek(w)
	switch c.Formatter.Format {
	case output.FormatJSON:
		return c.JSONFormatter().PrintWeek(days)
	case output.FormatPlain:
		c.PlainFormatter().PrintWeek(days)
	default:
		c.CLIFormatter().PrintWeek(days, c.Config.Display.HideCompleted)
	}
	return nil
}
