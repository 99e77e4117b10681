package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/streakly/internal/models"
	"github.com/julianstephens/streakly/internal/storage"
	"github.com/julianstephens/streakly/internal/tracker"
	"github.com/julianstephens/streakly/internal/tui/components/habitlist"
	"github.com/julianstephens/streakly/internal/tui/components/rewardlist"
)

func newTestModel(t *testing.T) (Model, *tracker.Tracker) {
	t.Helper()
	now := time.Date(2024, 6, 12, 9, 0, 0, 0, time.UTC)
	tr := tracker.New(storage.NewMemoryStore(),
		tracker.WithClock(func() time.Time { return now }),
		tracker.WithLocation(time.UTC))

	m := NewModel(tr)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return next.(Model), tr
}

// run executes cmd and feeds its message back into the model.
func run(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	require.NotNil(t, cmd)
	next, _ := m.Update(cmd())
	return next.(Model)
}

func TestRefreshLoadsHabitsAndBalance(t *testing.T) {
	m, tr := newTestModel(t)
	_, err := tr.CreateHabit(models.HabitDefinition{
		Name: "Read", Icon: models.IconBook, Difficulty: models.DifficultyNormal,
		WeeklyDays: 7, DailyFrequency: 1, EnergyPerCompletion: 2,
	})
	require.NoError(t, err)

	m = run(t, m, m.Init())

	assert.Equal(t, 1, m.habitList.Len())
	assert.Equal(t, 0, m.rewardList.Len())
	assert.Contains(t, m.View(), "Today")
}

func TestCompleteHabitUpdatesStatus(t *testing.T) {
	m, tr := newTestModel(t)
	h, err := tr.CreateHabit(models.HabitDefinition{
		Name: "Read", Icon: models.IconBook, Difficulty: models.DifficultyNormal,
		WeeklyDays: 7, DailyFrequency: 1, EnergyPerCompletion: 2,
	})
	require.NoError(t, err)
	m = run(t, m, m.Init())

	next, cmd := m.Update(habitlist.CompleteHabitMsg{ID: h.ID})
	m = run(t, next.(Model), cmd)
	assert.False(t, m.statusIsErr)
	assert.Contains(t, m.status, "+2⚡")

	acct, err := tr.Account()
	require.NoError(t, err)
	assert.Equal(t, 2, acct.TotalEnergy)

	next, cmd = m.Update(habitlist.CompleteHabitMsg{ID: h.ID})
	m = run(t, next.(Model), cmd)
	assert.False(t, m.statusIsErr)
	assert.Contains(t, m.status, "already done")
}

func TestRedeemWithoutEnergyShowsError(t *testing.T) {
	m, tr := newTestModel(t)
	r, err := tr.CreateReward(models.RewardDefinition{
		Title: "Movie", Category: models.CategoryStreak7,
	})
	require.NoError(t, err)
	m = run(t, m, m.Init())

	next, cmd := m.Update(rewardlist.RedeemRewardMsg{ID: r.ID})
	m = run(t, next.(Model), cmd)
	assert.True(t, m.statusIsErr)
	assert.Contains(t, m.status, "not enough energy")
}

func TestTabsCycle(t *testing.T) {
	m, _ := newTestModel(t)
	assert.Equal(t, StateHabits, m.state)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(Model)
	assert.Equal(t, StateRewards, m.state)

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(Model)
	assert.Equal(t, StateHabits, m.state)

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, StateRewards, next.(Model).state)
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(t)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.True(t, next.(Model).quitting)
	assert.Empty(t, next.(Model).View())
}
