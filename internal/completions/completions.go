// Package completions is the append-only record of habit completions.
package completions

import (
	"time"

	"github.com/julianstephens/streakly/internal/constants"
	"github.com/julianstephens/streakly/internal/models"
	"github.com/julianstephens/streakly/internal/utils"
)

// Log holds completion events in the order they were recorded.
type Log struct {
	events []models.CompletionEvent
}

// NewLog copies events into a new log.
func NewLog(events []models.CompletionEvent) *Log {
	return &Log{events: append([]models.CompletionEvent(nil), events...)}
}

// Append records one completion of habitID at the given instant.
func (l *Log) Append(habitID string, at time.Time, energy int) models.CompletionEvent {
	ev := models.CompletionEvent{
		HabitID:        habitID,
		Date:           at,
		CompletedCount: constants.CompletedCountPerEvent,
		EnergyEarned:   energy,
	}
	l.events = append(l.events, ev)
	return ev
}

// RemoveHabit drops every event of habitID and returns how many were removed.
func (l *Log) RemoveHabit(habitID string) int {
	kept := l.events[:0]
	removed := 0
	for _, ev := range l.events {
		if ev.HabitID == habitID {
			removed++
			continue
		}
		kept = append(kept, ev)
	}
	l.events = kept
	return removed
}

// Events returns a copy of every event.
func (l *Log) Events() []models.CompletionEvent {
	return append([]models.CompletionEvent(nil), l.events...)
}

// ForHabit returns the events of one habit.
func (l *Log) ForHabit(habitID string) []models.CompletionEvent {
	var out []models.CompletionEvent
	for _, ev := range l.events {
		if ev.HabitID == habitID {
			out = append(out, ev)
		}
	}
	return out
}

// OnDay returns the events whose date falls on the calendar day of day,
// observed in day's location.
func (l *Log) OnDay(day time.Time) []models.CompletionEvent {
	var out []models.CompletionEvent
	for _, ev := range l.events {
		if utils.IsSameDay(day, ev.Date) {
			out = append(out, ev)
		}
	}
	return out
}

// Len returns the number of events.
func (l *Log) Len() int {
	return len(l.events)
}
