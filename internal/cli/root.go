package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/julianstephens/streakly/internal/backup"
	"github.com/julianstephens/streakly/internal/config"
	"github.com/julianstephens/streakly/internal/logger"
	"github.com/julianstephens/streakly/internal/reminders"
	"github.com/julianstephens/streakly/internal/storage"
	"github.com/julianstephens/streakly/internal/storage/postgres"
	"github.com/julianstephens/streakly/internal/storage/sqlite"
	"github.com/julianstephens/streakly/internal/tracker"
)

// ErrNoFileStore is returned by file-only commands run against PostgreSQL.
var ErrNoFileStore = errors.New("backups are only available for SQLite and JSON stores; use pg_dump for PostgreSQL")

// Context is passed to every command.
type Context struct {
	Store   storage.Provider
	Tracker *tracker.Tracker
	Config  config.Config
	Out     io.Writer
	// Sender delivers reminders; nil selects the tray notifier.
	Sender reminders.Sender
	// Interactive allows prompts; false in tests and when stdin is not a terminal.
	Interactive bool
}

// OpenStore returns the provider selected by cfg without loading it.
func OpenStore(cfg config.Config) storage.Provider {
	switch {
	case cfg.IsPostgres():
		return postgres.New(cfg.ConnString)
	case cfg.IsJSON():
		return storage.NewJSONStore(cfg.Path)
	default:
		return sqlite.NewStore(cfg.Path)
	}
}

// NewContext wires a tracker over store.
func NewContext(store storage.Provider, cfg config.Config) *Context {
	opts := []tracker.Option{tracker.WithActiveRule(cfg.ActiveRule)}
	if cfg.Location != nil {
		opts = append(opts, tracker.WithLocation(cfg.Location))
	}
	return &Context{
		Store:   store,
		Tracker: tracker.New(store, opts...),
		Config:  cfg,
		Out:     os.Stdout,
	}
}

func (c *Context) Printf(format string, args ...any) {
	fmt.Fprintf(c.Out, format, args...)
}

func (c *Context) Println(args ...any) {
	fmt.Fprintln(c.Out, args...)
}

// BackupManager returns the backup manager of a file-based store.
func (c *Context) BackupManager() (*backup.Manager, error) {
	if c.Config.IsPostgres() {
		return nil, ErrNoFileStore
	}
	return backup.NewManager(c.Store.GetConfigPath()), nil
}

// PerformAutomaticBackup creates a backup and only logs failures.
func (c *Context) PerformAutomaticBackup() {
	mgr, err := c.BackupManager()
	if err != nil {
		return
	}
	if _, err := mgr.CreateBackup(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}
