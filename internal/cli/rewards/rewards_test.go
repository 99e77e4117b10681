package rewards

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/streakly/internal/cli"
	"github.com/julianstephens/streakly/internal/config"
	apperrors "github.com/julianstephens/streakly/internal/errors"
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

// earn completes a fresh habit worth energy points once.
func earn(t *testing.T, ctx *cli.Context, name string, energy int) {
	t.Helper()
	_, err := ctx.Tracker.CreateHabit(models.HabitDefinition{
		Name: name, Icon: models.IconTarget, Difficulty: models.DifficultyNormal,
		WeeklyDays: 7, DailyFrequency: 1, EnergyPerCompletion: energy,
	})
	require.NoError(t, err)
	_, err = ctx.Tracker.CompleteHabit(name)
	require.NoError(t, err)
}

func intPtr(v int) *int { return &v }

func TestRewardAddUsesTierPrice(t *testing.T) {
	ctx, out := setupTestDB(t)
	require.NoError(t, (&RewardAddCmd{Title: "Movie night", Category: "streak_7"}).Run(ctx))
	assert.Contains(t, out.String(), "Movie night (14 energy)")
}

func TestRewardAddCustomNeedsCost(t *testing.T) {
	ctx, _ := setupTestDB(t)
	err := (&RewardAddCmd{Title: "Snack", Category: "custom"}).Run(ctx)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	require.NoError(t, (&RewardAddCmd{Title: "Snack", Category: "custom", Cost: intPtr(3)}).Run(ctx))
	r, err := ctx.Tracker.Reward("Snack")
	require.NoError(t, err)
	assert.Equal(t, 3, r.EnergyCost)
}

func TestRewardAddRejectsUnknownCategory(t *testing.T) {
	ctx, _ := setupTestDB(t)
	err := (&RewardAddCmd{Title: "Snack", Category: "streak_100"}).Run(ctx)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestRewardRedeem(t *testing.T) {
	ctx, out := setupTestDB(t)
	require.NoError(t, (&RewardAddCmd{Title: "Coffee", Category: "custom", Cost: intPtr(3)}).Run(ctx))

	err := (&RewardRedeemCmd{Reward: "Coffee"}).Run(ctx)
	assert.ErrorIs(t, err, apperrors.ErrInsufficientEnergy)

	earn(t, ctx, "Walk", 3)
	earn(t, ctx, "Read", 2)

	out.Reset()
	require.NoError(t, (&RewardRedeemCmd{Reward: "Coffee"}).Run(ctx))
	assert.Contains(t, out.String(), "Energy balance: 2")

	err = (&RewardRedeemCmd{Reward: "Coffee"}).Run(ctx)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyRedeemed)

	acct, err := ctx.Tracker.Account()
	require.NoError(t, err)
	assert.Equal(t, 2, acct.TotalEnergy)
	assert.Equal(t, 5, acct.TotalEnergyEarned)
	assert.Equal(t, 3, acct.TotalEnergySpent)
}

func TestRewardListAffordable(t *testing.T) {
	ctx, out := setupTestDB(t)
	require.NoError(t, (&RewardAddCmd{Title: "Coffee", Category: "custom", Cost: intPtr(2)}).Run(ctx))
	require.NoError(t, (&RewardAddCmd{Title: "Trip", Category: "streak_60"}).Run(ctx))
	earn(t, ctx, "Walk", 2)

	out.Reset()
	require.NoError(t, (&RewardListCmd{Affordable: true}).Run(ctx))
	assert.Contains(t, out.String(), "Coffee")
	assert.NotContains(t, out.String(), "Trip")
}

func TestRewardEditKeepsCost(t *testing.T) {
	ctx, _ := setupTestDB(t)
	require.NoError(t, (&RewardAddCmd{Title: "Snack", Category: "custom", Cost: intPtr(5)}).Run(ctx))

	title := "Big snack"
	require.NoError(t, (&RewardEditCmd{Reward: "Snack", Title: &title}).Run(ctx))
	r, err := ctx.Tracker.Reward("Big snack")
	require.NoError(t, err)
	assert.Equal(t, 5, r.EnergyCost)

	tier := "streak_14"
	require.NoError(t, (&RewardEditCmd{Reward: r.ID, Category: &tier}).Run(ctx))
	r, err = ctx.Tracker.Reward(r.ID)
	require.NoError(t, err)
	assert.Equal(t, 28, r.EnergyCost)
}

func TestRewardDelete(t *testing.T) {
	ctx, _ := setupTestDB(t)
	require.NoError(t, (&RewardAddCmd{Title: "Snack", Category: "custom", Cost: intPtr(1)}).Run(ctx))
	require.NoError(t, (&RewardDeleteCmd{Reward: "Snack", Yes: true}).Run(ctx))

	_, err := ctx.Tracker.Reward("Snack")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestRewardTiers(t *testing.T) {
	ctx, out := setupTestDB(t)
	require.NoError(t, (&RewardTiersCmd{}).Run(ctx))
	for _, tier := range models.RewardTiers {
		assert.Contains(t, out.String(), string(tier.Category))
	}
	assert.Contains(t, out.String(), "custom")
}
