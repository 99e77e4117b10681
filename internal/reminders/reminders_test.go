package reminders

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/streakly/internal/models"
	"github.com/julianstephens/streakly/internal/notifier"
)

type recorder struct {
	sent []notifier.WebhookPayload
	err  error
}

func (r *recorder) Notify(_ context.Context, p notifier.WebhookPayload) error {
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, p)
	return nil
}

var at0730 = time.Date(2024, 6, 12, 7, 30, 15, 0, time.UTC)

func habit(id string, freq, done int, notify bool, times ...string) models.Habit {
	last := at0730.Add(-time.Hour)
	h := models.Habit{
		ID:                   id,
		Name:                 id,
		DailyFrequency:       freq,
		CompletedToday:       done,
		Reminders:            times,
		NotificationsEnabled: notify,
	}
	if done > 0 {
		h.LastCompletedDate = &last
	}
	return h
}

func settings() models.UserSettings {
	return models.UserSettings{NotificationsEnabled: true, WeeklyProgressReminders: true}
}

func TestDue(t *testing.T) {
	hs := []models.Habit{
		habit("read", 1, 0, true, "07:30", "21:00"),
		habit("run", 1, 1, true, "07:30"),
		habit("floss", 1, 0, false, "07:30"),
		habit("water", 8, 2, true, "07:31"),
	}

	due := Due(hs, settings(), at0730)
	require.Len(t, due, 2)
	assert.Equal(t, "read", due[0].HabitID)
	assert.Equal(t, 1, due[0].Remaining)
	assert.Equal(t, "run", due[1].HabitID)
	assert.Zero(t, due[1].Remaining)

	s := settings()
	s.CheckinRemindersOnly = true
	due = Due(hs, s, at0730)
	require.Len(t, due, 1)
	assert.Equal(t, "read", due[0].HabitID)

	s.NotificationsEnabled = false
	assert.Empty(t, Due(hs, s, at0730))
}

func TestDueAfterRollover(t *testing.T) {
	h := habit("read", 1, 1, true, "07:30")
	nextDay := at0730.AddDate(0, 0, 1)

	s := settings()
	s.CheckinRemindersOnly = true
	due := Due([]models.Habit{h}, s, nextDay)
	require.Len(t, due, 1)
	assert.Equal(t, 1, due[0].Remaining)
}

func TestWeeklySummaryDue(t *testing.T) {
	sunday := time.Date(2024, 6, 16, 20, 0, 0, 0, time.UTC)
	assert.True(t, WeeklySummaryDue(settings(), sunday))
	assert.False(t, WeeklySummaryDue(settings(), sunday.Add(time.Minute)))
	assert.False(t, WeeklySummaryDue(settings(), sunday.AddDate(0, 0, 1)))

	s := settings()
	s.WeeklyProgressReminders = false
	assert.False(t, WeeklySummaryDue(s, sunday))
}

func TestDispatch(t *testing.T) {
	due := []Reminder{{HabitID: "a", HabitName: "Read", Remaining: 2}, {HabitID: "b", HabitName: "Run"}}

	rec := &recorder{}
	n, err := Dispatch(context.Background(), rec, due, true)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, "Time for Read (2 left today)", rec.sent[0].Text)
	assert.Equal(t, "Time for Run", rec.sent[1].Text)
	assert.True(t, rec.sent[0].Sound)

	failing := &recorder{err: notifier.ErrTrayNotRunning}
	n, err = Dispatch(context.Background(), failing, due, false)
	assert.Zero(t, n)
	assert.True(t, errors.Is(err, notifier.ErrTrayNotRunning))
}
