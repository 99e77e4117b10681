package main

import (
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/mattn/go-isatty"

	"github.com/julianstephens/streakly/internal/cli"
	"github.com/julianstephens/streakly/internal/cli/backups"
	"github.com/julianstephens/streakly/internal/cli/habits"
	"github.com/julianstephens/streakly/internal/cli/progress"
	"github.com/julianstephens/streakly/internal/cli/rewards"
	"github.com/julianstephens/streakly/internal/cli/settings"
	"github.com/julianstephens/streakly/internal/cli/system"
	"github.com/julianstephens/streakly/internal/config"
	"github.com/julianstephens/streakly/internal/constants"
	apperrors "github.com/julianstephens/streakly/internal/errors"
	"github.com/julianstephens/streakly/internal/logger"
)

var CLI struct {
	Version    kong.VersionFlag
	Config     string `help:"SQLite/JSON store path or PostgreSQL connection string (default ${default_config}). Connection strings must NOT embed a password; use STREAKLY_DB_CONNECTION, .pgpass or the OS keyring instead."`
	Debug      bool   `help:"Log debug output to stderr."`
	Timezone   string `help:"IANA timezone used for calendar days." placeholder:"Local"`
	ActiveRule string `help:"Rule for counting active habits (engaged or pending)."`

	Init     system.InitCmd       `cmd:"" help:"Initialize streakly storage."`
	Migrate  system.MigrateCmd    `cmd:"" help:"Run database migrations."`
	Doctor   system.DoctorCmd     `cmd:"" help:"Run health checks and diagnostics."`
	Tui      system.TuiCmd        `cmd:"" help:"Launch the interactive today board." default:"1"`
	Habit    habits.HabitCmd      `cmd:"" help:"Manage and complete habits."`
	Reward   rewards.RewardCmd    `cmd:"" help:"Manage and redeem rewards."`
	Stats    progress.StatsCmd    `cmd:"" help:"Show progress statistics."`
	Energy   progress.EnergyCmd   `cmd:"" help:"Show the energy balance."`
	Profile  settings.ProfileCmd  `cmd:"" help:"Show or update the user profile."`
	Settings settings.SettingsCmd `cmd:"" help:"Show or change notification settings."`
	Export   backups.ExportCmd    `cmd:"" help:"Export all data as JSON."`
	Backup   backups.BackupCmd    `cmd:"" help:"Manage store backups."`
	Reset    system.ResetCmd      `cmd:"" help:"Delete all habits, completions and rewards."`
	Keyring  system.KeyringCmd    `cmd:"" help:"Manage the PostgreSQL connection string in the OS keyring."`
	Remind   system.RemindCmd     `cmd:"" hidden:"" help:"Send due reminders (run from a scheduler)."`
}

// commands that must run before or without a readable store
var skipLoad = []string{"init", "keyring", "doctor"}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Habit tracker with streaks, energy and rewards"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":        "v0.1.0",
			"default_config": constants.DefaultConfigPath,
		},
	)

	cfg, err := config.Load(config.Flags{
		Config:     CLI.Config,
		Debug:      CLI.Debug,
		Timezone:   CLI.Timezone,
		ActiveRule: CLI.ActiveRule,
	})
	if err != nil {
		apperrors.Fatal(err)
	}

	if err := logger.Init(logger.Config{Debug: cfg.Debug, ConfigDir: cfg.Dir()}); err != nil {
		apperrors.Fatalf("failed to initialize logger: %v", err)
	}
	logger.Debug("Configuration resolved", "source", cfg.Source, "timezone", cfg.Timezone,
		"active_rule", cfg.ActiveRule.String())

	store := cli.OpenStore(cfg)
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warn("Failed to close store", "error", err)
		}
	}()

	if needsLoad(ctx.Command()) {
		if err := store.Load(); err != nil {
			store.Close()
			apperrors.Fatal(err)
		}
	}

	appCtx := cli.NewContext(store, cfg)
	appCtx.Interactive = isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())

	if err := ctx.Run(appCtx); err != nil {
		store.Close()
		apperrors.Fatal(err)
	}
}

func needsLoad(command string) bool {
	for _, name := range skipLoad {
		if command == name || strings.HasPrefix(command, name+" ") {
			return false
		}
	}
	return true
}
