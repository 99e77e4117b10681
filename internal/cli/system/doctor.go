package system

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/julianstephens/streakly/internal/cli"
	"github.com/julianstephens/streakly/internal/constants"
	"github.com/julianstephens/streakly/internal/keyring"
	"github.com/julianstephens/streakly/internal/notifier"
)

// errWarning marks a check result that does not fail the run
var errWarning = errors.New("warning")

type check struct {
	name      string
	needStore bool
	run       func(ctx *cli.Context) error
}

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	reachable := true
	if err := checkStoreReachable(ctx); err != nil {
		ctx.Printf("❌ Store reachable: FAIL\n   Error: %v\n", err)
		reachable = false
	} else {
		ctx.Printf("✓ Store reachable: OK (%s)\n", ctx.Config.Source)
	}

	checks := []check{
		{"Schema version", true, checkSchemaVersion},
		{"Documents readable", true, checkDocuments},
		{"Habit integrity", true, checkHabits},
		{"Energy ledger", true, checkLedger},
		{"Backups present", false, checkBackupsPresent},
		{"Clock/timezone", false, checkClockTimezone},
		{"Keyring", false, checkKeyring},
		{"Tray notifier", false, checkNotifier},
	}

	failed := !reachable
	for _, c := range checks {
		if c.needStore && !reachable {
			ctx.Printf("⊘ %s: SKIPPED (store not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case err == nil:
			ctx.Printf("✓ %s: OK\n", c.name)
		case errors.Is(err, errWarning):
			ctx.Printf("⚠ %s: WARNING\n   %v\n", c.name, strings.TrimSuffix(err.Error(), ": "+errWarning.Error()))
		default:
			ctx.Printf("❌ %s: FAIL\n   Error: %v\n", c.name, err)
			failed = true
		}
	}

	ctx.Println()
	if failed {
		ctx.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}
	ctx.Println("All diagnostics passed!")
	return nil
}

func warn(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), errWarning)
}

func checkStoreReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	_, err := ctx.Store.Keys()
	return err
}

func checkSchemaVersion(ctx *cli.Context) error {
	m, ok := ctx.Store.(migrator)
	if !ok {
		return nil
	}
	current, latest, err := m.SchemaVersion()
	if err != nil {
		return err
	}
	switch {
	case current > latest:
		return fmt.Errorf("schema version %d is newer than supported version %d", current, latest)
	case current < latest:
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d; run 'streakly migrate'", current, latest)
	}
	return nil
}

func checkDocuments(ctx *cli.Context) error {
	if _, err := ctx.Tracker.Documents().Load(); err != nil {
		return err
	}
	quarantined, err := ctx.Tracker.Documents().Quarantined()
	if err != nil {
		return err
	}
	if len(quarantined) > 0 {
		return warn("%d unreadable document(s) were set aside: %s", len(quarantined), strings.Join(quarantined, ", "))
	}
	return nil
}

func checkHabits(ctx *cli.Context) error {
	habits, err := ctx.Tracker.Habits()
	if err != nil {
		return err
	}
	seen := make(map[string]bool, len(habits))
	for _, h := range habits {
		if seen[h.ID] {
			return fmt.Errorf("duplicate habit id %s", h.ID)
		}
		seen[h.ID] = true
	}

	snap, err := ctx.Tracker.Export()
	if err != nil {
		return err
	}
	orphans := 0
	for _, ev := range snap.Completions {
		if !seen[ev.HabitID] {
			orphans++
		}
	}
	if orphans > 0 {
		return warn("%d completion(s) reference deleted habits", orphans)
	}
	return nil
}

func checkLedger(ctx *cli.Context) error {
	acct, err := ctx.Tracker.Account()
	if err != nil {
		return err
	}
	if acct.TotalEnergy != acct.TotalEnergyEarned-acct.TotalEnergySpent {
		return fmt.Errorf("balance %d does not equal earned %d minus spent %d", acct.TotalEnergy, acct.TotalEnergyEarned, acct.TotalEnergySpent)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	mgr, err := ctx.BackupManager()
	if err != nil {
		return nil
	}
	backups, err := mgr.ListBackups()
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		return warn("no backups found in %s; run 'streakly backup create'", mgr.GetBackupDir())
	}
	if age := time.Since(backups[0].Timestamp); age > 7*24*time.Hour {
		return warn("latest backup is %d days old", int(age.Hours()/24))
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	now := ctx.Tracker.Now()
	if now.Year() < 2020 {
		return fmt.Errorf("system clock looks wrong: %s", now.Format(time.RFC3339))
	}
	if ctx.Tracker.Location() == nil {
		return fmt.Errorf("no timezone configured")
	}
	return nil
}

func checkKeyring(ctx *cli.Context) error {
	if !keyring.IsAvailable() {
		if ctx.Config.Source == "keyring" {
			return fmt.Errorf("OS keyring is not available")
		}
		return warn("OS keyring is not available")
	}
	return nil
}

func checkNotifier(ctx *cli.Context) error {
	dir, err := notifier.GetTrayAppConfigDir()
	if err != nil {
		return warn("%v", err)
	}
	u, err := ctx.Tracker.User()
	if err != nil {
		return err
	}
	if !u.Settings.NotificationsEnabled {
		return nil
	}
	if _, err := os.Stat(filepath.Join(dir, constants.NotifierLockfileName)); err != nil {
		return warn("%s is not running; reminders will not be delivered", constants.TrayAppExecutable)
	}
	return nil
}
