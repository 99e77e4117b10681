package settings

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/streakly/internal/cli"
	"github.com/julianstephens/streakly/internal/config"
	"github.com/julianstephens/streakly/internal/constants"
	apperrors "github.com/julianstephens/streakly/internal/errors"
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

func boolPtr(b bool) *bool { return &b }

func TestSettingsCmd_List(t *testing.T) {
	ctx, out := setupTestDB(t)
	require.NoError(t, (&SettingsCmd{}).Run(ctx))
	assert.Contains(t, out.String(), "Current Settings:")
	assert.Contains(t, out.String(), constants.SettingWeeklyProgressReminders)
}

func TestSettingsCmd_Update(t *testing.T) {
	ctx, out := setupTestDB(t)

	u, err := ctx.Tracker.User()
	require.NoError(t, err)
	newValue := !u.Settings.SoundEnabled

	require.NoError(t, (&SettingsCmd{SoundEnabled: &newValue, CheckinRemindersOnly: boolPtr(true)}).Run(ctx))
	assert.Contains(t, out.String(), "Updated "+constants.SettingSoundEnabled)
	assert.NotContains(t, out.String(), "Current Settings:")

	u, err = ctx.Tracker.User()
	require.NoError(t, err)
	assert.Equal(t, newValue, u.Settings.SoundEnabled)
	assert.True(t, u.Settings.CheckinRemindersOnly)

	out.Reset()
	require.NoError(t, (&SettingsCmd{NotificationsEnabled: boolPtr(false), List: true}).Run(ctx))
	assert.Contains(t, out.String(), "Current Settings:")
}

func TestProfileCmd(t *testing.T) {
	ctx, out := setupTestDB(t)

	name := "Ada"
	email := "ada@example.com"
	require.NoError(t, (&ProfileCmd{Name: &name, Email: &email}).Run(ctx))
	assert.Contains(t, out.String(), "Ada")
	assert.Contains(t, out.String(), "ada@example.com")

	blank := "  "
	err := (&ProfileCmd{Name: &blank}).Run(ctx)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	u, err := ctx.Tracker.User()
	require.NoError(t, err)
	assert.Equal(t, "Ada", u.Name)
}
