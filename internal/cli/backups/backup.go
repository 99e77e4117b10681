package backups

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/streakly/internal/backup"
	"github.com/julianstephens/streakly/internal/cli"
	"github.com/julianstephens/streakly/internal/constants"
	"github.com/julianstephens/streakly/internal/logger"
)

type BackupCmd struct {
	Create  BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
	List    BackupListCmd    `cmd:"" help:"List available backups."`
	Restore BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
}

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *cli.Context) error {
	mgr, err := ctx.BackupManager()
	if err != nil {
		return err
	}
	backupPath, err := mgr.CreateBackup()
	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}
	ctx.Printf("✓ Backup created: %s\n", filepath.Base(backupPath))
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *cli.Context) error {
	mgr, err := ctx.BackupManager()
	if err != nil {
		return err
	}
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}

	if len(backups) == 0 {
		ctx.Println("No backups found.")
		ctx.Printf("Backups are stored in: %s\n", mgr.GetBackupDir())
		return nil
	}

	ctx.Printf("Available backups (%d total, keeping most recent %d):\n\n", len(backups), constants.MaxBackups)
	for _, b := range backups {
		ctx.Printf("  %s  %s  (%.1f KB)\n", b.Timestamp.Format("2006-01-02 15:04:05"), filepath.Base(b.Path), float64(b.Size)/1024.0)
	}
	ctx.Printf("\nBackup directory: %s\n", mgr.GetBackupDir())
	return nil
}

type BackupRestoreCmd struct {
	BackupFile string `arg:"" help:"Path or filename of the backup to restore."`
	Yes        bool   `short:"y" help:"Skip the confirmation prompt."`
}

// resolve finds the backup as given, relative to the working directory, or
// inside the backup directory.
func (c *BackupRestoreCmd) resolve(mgr *backup.Manager) (string, error) {
	if filepath.IsAbs(c.BackupFile) {
		if _, err := os.Stat(c.BackupFile); err != nil {
			return "", fmt.Errorf("backup file not found: %s", c.BackupFile)
		}
		return c.BackupFile, nil
	}
	if _, err := os.Stat(c.BackupFile); err == nil {
		return filepath.Abs(c.BackupFile)
	}
	candidate := filepath.Join(mgr.GetBackupDir(), c.BackupFile)
	if _, err := os.Stat(candidate); err == nil {
		return candidate, nil
	}
	return "", fmt.Errorf("backup file not found: tried current directory and %s", mgr.GetBackupDir())
}

func (c *BackupRestoreCmd) Run(ctx *cli.Context) error {
	mgr, err := ctx.BackupManager()
	if err != nil {
		return err
	}
	backupPath, err := c.resolve(mgr)
	if err != nil {
		return err
	}

	ctx.Println("⚠️  This will replace your current data with the backup.")
	ctx.Println("   Stop other streakly processes (including the TUI) first.")
	ctx.Printf("   Restore from: %s\n", backupPath)
	if !c.Yes {
		if err := ctx.Confirm("Restore this backup?"); err != nil {
			return err
		}
	}

	if err := ctx.Store.Close(); err != nil {
		logger.Warn("Failed to close store before restore", "error", err)
	}
	saved, err := mgr.RestoreBackup(backupPath)
	if err != nil {
		return fmt.Errorf("restore failed: %w", err)
	}
	if saved != "" {
		ctx.Printf("Previous data saved as %s\n", filepath.Base(saved))
	}
	ctx.Println("✓ Restored successfully.")
	return ctx.Store.Load()
}

type ExportCmd struct {
	Output string `short:"o" help:"Write the export here instead of the exports directory."`
	Stdout bool   `help:"Print the export instead of writing a file."`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	snap, err := ctx.Tracker.Export()
	if err != nil {
		return err
	}

	path := c.Output
	if c.Stdout {
		path = ""
	} else if path == "" {
		path = backup.ExportPath(ctx.Config.Dir(), snap)
	}

	if path == "" {
		return backup.EncodeExport(ctx.Out, snap)
	}
	if err := backup.WriteExport(path, snap); err != nil {
		return err
	}
	ctx.Printf("✓ Exported %d habits, %d completions and %d rewards to %s\n",
		len(snap.Habits), len(snap.Completions), len(snap.Rewards), path)
	return nil
}
