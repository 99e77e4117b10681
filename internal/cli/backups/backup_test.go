package backups

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/streakly/internal/cli"
	"github.com/julianstephens/streakly/internal/config"
	"github.com/julianstephens/streakly/internal/constants"
	"github.com/julianstephens/streakly/internal/models"
	"github.com/julianstephens/streakly/internal/storage/sqlite"
)

func setupTestDB(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store := sqlite.NewStore(dbPath)
	require.NoError(t, store.Init())
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	})

	ctx := cli.NewContext(store, config.Config{Path: dbPath, Source: "flag", Location: time.Local})
	out := &bytes.Buffer{}
	ctx.Out = out
	return ctx, out
}

func addHabit(t *testing.T, ctx *cli.Context, name string) models.Habit {
	t.Helper()
	h, err := ctx.Tracker.CreateHabit(models.HabitDefinition{
		Name: name, Icon: models.IconLeaf, Difficulty: models.DifficultyEasy,
		WeeklyDays: 7, DailyFrequency: 1, EnergyPerCompletion: 1,
	})
	require.NoError(t, err)
	return h
}

func TestBackupCreateAndList(t *testing.T) {
	ctx, out := setupTestDB(t)
	addHabit(t, ctx, "Stretch")

	require.NoError(t, (&BackupCreateCmd{}).Run(ctx))
	assert.Contains(t, out.String(), "Backup created: "+constants.BackupFilePrefix)

	out.Reset()
	require.NoError(t, (&BackupListCmd{}).Run(ctx))
	assert.Contains(t, out.String(), "Available backups (1 total")
}

func TestBackupListEmpty(t *testing.T) {
	ctx, out := setupTestDB(t)
	require.NoError(t, (&BackupListCmd{}).Run(ctx))
	assert.Contains(t, out.String(), "No backups found.")
}

func TestBackupRestore(t *testing.T) {
	ctx, _ := setupTestDB(t)
	addHabit(t, ctx, "Stretch")

	mgr, err := ctx.BackupManager()
	require.NoError(t, err)
	backupPath, err := mgr.CreateBackup()
	require.NoError(t, err)

	addHabit(t, ctx, "Run")
	list, err := ctx.Tracker.Habits()
	require.NoError(t, err)
	require.Len(t, list, 2)

	require.ErrorIs(t, (&BackupRestoreCmd{BackupFile: filepath.Base(backupPath)}).Run(ctx), cli.ErrNotConfirmed)

	require.NoError(t, (&BackupRestoreCmd{BackupFile: filepath.Base(backupPath), Yes: true}).Run(ctx))
	list, err = ctx.Tracker.Habits()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Stretch", list[0].Name)
}

func TestBackupRestoreMissingFile(t *testing.T) {
	ctx, _ := setupTestDB(t)
	err := (&BackupRestoreCmd{BackupFile: "nope.db", Yes: true}).Run(ctx)
	assert.ErrorContains(t, err, "backup file not found")
}

func TestBackupRequiresFileStore(t *testing.T) {
	ctx, _ := setupTestDB(t)
	ctx.Config.ConnString = "postgres://streakly@localhost/streakly"
	assert.ErrorIs(t, (&BackupCreateCmd{}).Run(ctx), cli.ErrNoFileStore)
}

func TestExportToFile(t *testing.T) {
	ctx, out := setupTestDB(t)
	addHabit(t, ctx, "Stretch")
	target := filepath.Join(t.TempDir(), "export.json")

	require.NoError(t, (&ExportCmd{Output: target}).Run(ctx))
	assert.Contains(t, out.String(), "Exported 1 habits")

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	var snap models.ExportSnapshot
	require.NoError(t, json.Unmarshal(data, &snap))
	require.Len(t, snap.Habits, 1)
	assert.Equal(t, "Stretch", snap.Habits[0].Name)
}

func TestExportDefaultLocation(t *testing.T) {
	ctx, out := setupTestDB(t)
	require.NoError(t, (&ExportCmd{}).Run(ctx))

	matches, err := filepath.Glob(filepath.Join(ctx.Config.Dir(), constants.ExportDirName, constants.ExportFilePrefix+"*"+constants.ExportFileSuffix))
	require.NoError(t, err)
	assert.Len(t, matches, 1)
	assert.Contains(t, out.String(), matches[0])
}

func TestExportStdout(t *testing.T) {
	ctx, out := setupTestDB(t)
	addHabit(t, ctx, "Stretch")

	require.NoError(t, (&ExportCmd{Stdout: true}).Run(ctx))
	var snap models.ExportSnapshot
	require.NoError(t, json.Unmarshal(out.Bytes(), &snap))
	assert.Len(t, snap.Habits, 1)
	assert.Equal(t, constants.DefaultUserID, snap.User.ID)
}
