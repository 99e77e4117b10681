// Package reminders decides which habit reminders are due and hands them to a
// notification sender.
package reminders

import (
	"context"
	"fmt"
	"time"

	"github.com/julianstephens/streakly/internal/habits"
	"github.com/julianstephens/streakly/internal/logger"
	"github.com/julianstephens/streakly/internal/models"
	"github.com/julianstephens/streakly/internal/notifier"
	"github.com/julianstephens/streakly/internal/utils"
)

// Weekly summaries go out on Sunday at this time.
const (
	WeeklySummaryDay  = time.Sunday
	WeeklySummaryTime = "20:00"
)

// Reminder is one notification that is due.
type Reminder struct {
	HabitID   string
	HabitName string
	At        string // HH:MM
	Remaining int
}

// Sender delivers a notification.
type Sender interface {
	Notify(ctx context.Context, payload notifier.WebhookPayload) error
}

func minuteOf(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// Due lists the reminders whose HH:MM matches the minute of now. Nothing is
// due while notifications are disabled globally or for the habit. With
// CheckinRemindersOnly set, habits already done for today are skipped.
func Due(hs []models.Habit, settings models.UserSettings, now time.Time) []Reminder {
	if !settings.NotificationsEnabled {
		return nil
	}
	current := minuteOf(now)

	var due []Reminder
	for _, raw := range hs {
		if !raw.NotificationsEnabled {
			continue
		}
		h := habits.Normalize(raw, now)
		remaining := habits.Remaining(h, now)
		if settings.CheckinRemindersOnly && remaining == 0 {
			continue
		}
		for _, at := range h.Reminders {
			m, err := utils.ParseTimeToMinutes(at)
			if err != nil {
				logger.Warn("Skipping malformed reminder", "habit", h.ID, "time", at)
				continue
			}
			if m == current {
				due = append(due, Reminder{HabitID: h.ID, HabitName: h.Name, At: at, Remaining: remaining})
			}
		}
	}
	return due
}

// WeeklySummaryDue reports whether the weekly progress summary should go out
// in the minute of now.
func WeeklySummaryDue(settings models.UserSettings, now time.Time) bool {
	if !settings.NotificationsEnabled || !settings.WeeklyProgressReminders {
		return false
	}
	m, _ := utils.ParseTimeToMinutes(WeeklySummaryTime)
	return now.Weekday() == WeeklySummaryDay && minuteOf(now) == m
}

// Payload renders r as a notification.
func Payload(r Reminder, sound bool) notifier.WebhookPayload {
	text := fmt.Sprintf("Time for %s", r.HabitName)
	if r.Remaining > 0 {
		text = fmt.Sprintf("Time for %s (%d left today)", r.HabitName, r.Remaining)
	}
	return notifier.WebhookPayload{Title: "Habit reminder", Text: text, Sound: sound}
}

// WeeklyPayload renders the weekly summary notification.
func WeeklyPayload(s models.Stats, sound bool) notifier.WebhookPayload {
	return notifier.WebhookPayload{
		Title: "Weekly progress",
		Text: fmt.Sprintf("%d completions this week (%.0f%%), %d energy earned so far",
			s.WeeklyCompletions, s.WeeklyCompletionRate, s.TotalEnergyEarned),
		Sound: sound,
	}
}

// Dispatch sends every reminder and returns how many were delivered. Delivery
// stops at the first error.
func Dispatch(ctx context.Context, sender Sender, due []Reminder, sound bool) (int, error) {
	sent := 0
	for _, r := range due {
		if err := sender.Notify(ctx, Payload(r, sound)); err != nil {
			return sent, fmt.Errorf("reminder for %s: %w", r.HabitName, err)
		}
		logger.Debug("Reminder sent", "habit", r.HabitID, "at", r.At)
		sent++
	}
	return sent, nil
}
