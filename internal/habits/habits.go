// Package habits owns the habit set and the streak state machine.
package habits

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/julianstephens/streakly/internal/errors"
	"github.com/julianstephens/streakly/internal/models"
	"github.com/julianstephens/streakly/internal/utils"
	"github.com/julianstephens/streakly/internal/validation"
)

// Registry holds habits in creation order. Calendar days are taken from the
// location of the now argument passed to each method.
type Registry struct {
	habits []models.Habit
}

// NewRegistry copies habits into a new registry.
func NewRegistry(habits []models.Habit) *Registry {
	r := &Registry{habits: make([]models.Habit, 0, len(habits))}
	for _, h := range habits {
		r.habits = append(r.habits, h.Clone())
	}
	return r
}

// Normalize applies the daily rollover: completed_today only counts when the
// last completion falls on the calendar day of now.
func Normalize(h models.Habit, now time.Time) models.Habit {
	if h.LastCompletedDate == nil || !utils.IsSameDay(now, *h.LastCompletedDate) {
		h.CompletedToday = 0
	}
	return h
}

// IsCompletedToday reports whether h has reached its daily target.
func IsCompletedToday(h models.Habit, now time.Time) bool {
	return Normalize(h, now).CompletedToday >= h.DailyFrequency
}

// Remaining returns how many completions are still possible today.
func Remaining(h models.Habit, now time.Time) int {
	n := h.DailyFrequency - Normalize(h, now).CompletedToday
	if n < 0 {
		return 0
	}
	return n
}

// NormalizeReminders sorts and deduplicates reminder times.
func NormalizeReminders(reminders []string) []string {
	out := make([]string, 0, len(reminders))
	seen := make(map[string]bool, len(reminders))
	for _, r := range reminders {
		r = strings.TrimSpace(r)
		if seen[r] {
			continue
		}
		seen[r] = true
		out = append(out, r)
	}
	sort.Strings(out)
	return out
}

func prepare(def models.HabitDefinition) (models.HabitDefinition, error) {
	def.Name = strings.TrimSpace(def.Name)
	def.Reminders = NormalizeReminders(def.Reminders)
	if err := validation.Habit(def); err != nil {
		return def, err
	}
	return def, nil
}

// Create validates def and appends a new habit with zero progress.
func (r *Registry) Create(def models.HabitDefinition, now time.Time) (models.Habit, error) {
	def, err := prepare(def)
	if err != nil {
		return models.Habit{}, err
	}

	h := models.Habit{
		ID:        uuid.New().String(),
		CreatedAt: now,
	}
	applyDefinition(&h, def)
	r.habits = append(r.habits, h)
	return h.Clone(), nil
}

func applyDefinition(h *models.Habit, def models.HabitDefinition) {
	h.Name = def.Name
	h.Icon = def.Icon
	h.Difficulty = def.Difficulty
	h.WeeklyDays = def.WeeklyDays
	h.DailyFrequency = def.DailyFrequency
	h.EnergyPerCompletion = def.EnergyPerCompletion
	h.Reminders = def.Reminders
	h.NotificationsEnabled = def.NotificationsEnabled
}

func (r *Registry) index(id string) (int, error) {
	for i := range r.habits {
		if r.habits[i].ID == id {
			return i, nil
		}
	}
	return -1, apperrors.NotFound("habit", id)
}

// RecordCompletion counts one completion of the habit at now and advances its
// streak. It returns the updated habit and the energy the completion earned.
// The ledger and completion log are left to the caller.
func (r *Registry) RecordCompletion(id string, now time.Time) (models.Habit, int, error) {
	i, err := r.index(id)
	if err != nil {
		return models.Habit{}, 0, err
	}

	h := Normalize(r.habits[i], now)
	if h.CompletedToday >= h.DailyFrequency {
		return h.Clone(), 0, fmt.Errorf("%s (%d/%d): %w", h.Name, h.CompletedToday, h.DailyFrequency, apperrors.ErrAlreadyComplete)
	}

	h.CompletedToday++
	h.CurrentStreak = nextStreak(h, now)
	if h.CurrentStreak > h.LongestStreak {
		h.LongestStreak = h.CurrentStreak
	}
	at := now
	h.LastCompletedDate = &at

	r.habits[i] = h
	return h.Clone(), h.EnergyPerCompletion, nil
}

// nextStreak returns the streak after a completion at now.
func nextStreak(h models.Habit, now time.Time) int {
	if h.LastCompletedDate == nil {
		return h.CurrentStreak + 1
	}
	today := utils.Day(now)
	last := utils.DayIn(*h.LastCompletedDate, now.Location())
	switch {
	case last.Equal(utils.AddDays(today, -1)):
		return h.CurrentStreak + 1
	case last.Equal(today):
		return h.CurrentStreak
	default:
		// a gap of two or more days, or a clock that moved backwards
		return 1
	}
}

// Get returns the normalised habit with the given id.
func (r *Registry) Get(id string, now time.Time) (models.Habit, error) {
	i, err := r.index(id)
	if err != nil {
		return models.Habit{}, err
	}
	return Normalize(r.habits[i], now).Clone(), nil
}

// List returns every habit, normalised, in creation order.
func (r *Registry) List(now time.Time) []models.Habit {
	out := make([]models.Habit, 0, len(r.habits))
	for _, h := range r.habits {
		out = append(out, Normalize(h, now).Clone())
	}
	return out
}

// FindByName looks a habit up by display name, ignoring case.
func (r *Registry) FindByName(name string, now time.Time) (models.Habit, error) {
	for _, h := range r.habits {
		if utils.EqualNames(h.Name, name) {
			return Normalize(h, now).Clone(), nil
		}
	}
	return models.Habit{}, apperrors.NotFound("habit", name)
}

// Resolve finds a habit by id, falling back to a name lookup.
func (r *Registry) Resolve(ref string, now time.Time) (models.Habit, error) {
	if h, err := r.Get(ref, now); err == nil {
		return h, nil
	}
	return r.FindByName(ref, now)
}

// Update replaces the definition fields of a habit. Progress is kept; when the
// daily target is lowered, today's count is clamped to it.
func (r *Registry) Update(id string, def models.HabitDefinition, now time.Time) (models.Habit, error) {
	i, err := r.index(id)
	if err != nil {
		return models.Habit{}, err
	}
	def, err = prepare(def)
	if err != nil {
		return models.Habit{}, err
	}

	h := Normalize(r.habits[i], now)
	applyDefinition(&h, def)
	if h.CompletedToday > h.DailyFrequency {
		h.CompletedToday = h.DailyFrequency
	}
	r.habits[i] = h
	return h.Clone(), nil
}

// Remove deletes a habit. Completion events are removed by the caller.
func (r *Registry) Remove(id string) (models.Habit, error) {
	i, err := r.index(id)
	if err != nil {
		return models.Habit{}, err
	}
	removed := r.habits[i]
	r.habits = append(r.habits[:i], r.habits[i+1:]...)
	return removed, nil
}

// Len returns the number of habits.
func (r *Registry) Len() int {
	return len(r.habits)
}

// Habits returns a copy of the stored habits for persistence.
func (r *Registry) Habits() []models.Habit {
	out := make([]models.Habit, 0, len(r.habits))
	for _, h := range r.habits {
		out = append(out, h.Clone())
	}
	return out
}
