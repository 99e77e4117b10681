// Package stats derives summaries from habits, completions, rewards and the
// energy account. Nothing here is cached or stored.
package stats

import (
	"time"

	"github.com/julianstephens/streakly/internal/constants"
	"github.com/julianstephens/streakly/internal/habits"
	"github.com/julianstephens/streakly/internal/models"
	"github.com/julianstephens/streakly/internal/utils"
)

// ActiveRule selects how active habits are counted.
type ActiveRule int

const (
	// ActiveEngaged counts habits that are unfinished today, were completed
	// today, or carry a streak.
	ActiveEngaged ActiveRule = iota
	// ActivePending counts only habits that still have completions left today.
	ActivePending
)

func (r ActiveRule) String() string {
	switch r {
	case ActivePending:
		return "pending"
	default:
		return "engaged"
	}
}

// ParseActiveRule maps "engaged" and "pending" to a rule.
func ParseActiveRule(s string) (ActiveRule, bool) {
	switch s {
	case "engaged", "":
		return ActiveEngaged, true
	case "pending":
		return ActivePending, true
	}
	return ActiveEngaged, false
}

// Input is the state a summary is computed from.
type Input struct {
	Habits      []models.Habit
	Completions []models.CompletionEvent
	Account     models.EnergyAccount
	Rewards     []models.Reward
}

// Compute summarises in at now. Calendar days follow now's location.
// Completions whose habit is not in in.Habits are left out of every count.
func Compute(in Input, now time.Time, rule ActiveRule) models.Stats {
	events := knownEvents(in.Habits, in.Completions)
	s := models.Stats{
		TotalHabits:       len(in.Habits),
		TotalCompletions:  len(events),
		TotalEnergyEarned: in.Account.TotalEnergyEarned,
		GeneratedAt:       now,
		Habits:            make([]models.HabitProgress, 0, len(in.Habits)),
	}

	for _, raw := range in.Habits {
		h := habits.Normalize(raw, now)
		if isActive(h, now, rule) {
			s.ActiveHabits++
		}
		s.CurrentStreaks += h.CurrentStreak
		if h.LongestStreak > s.BestStreak {
			s.BestStreak = h.LongestStreak
		}
		s.Habits = append(s.Habits, progress(h))
	}

	for _, r := range in.Rewards {
		s.TotalRewardsRedeemed += r.TimesRedeemed
	}

	s.WeeklyProgress = Weekly(events, now)
	for _, d := range s.WeeklyProgress {
		s.WeeklyCompletions += d.Completions
	}
	if n := len(s.WeeklyProgress); n > 0 {
		s.TodayCompletions = s.WeeklyProgress[n-1].Completions
	}
	if s.ActiveHabits > 0 {
		s.WeeklyCompletionRate = float64(s.WeeklyCompletions) / float64(s.ActiveHabits*constants.WeeklyWindowDays) * 100
	}

	return s
}

func knownEvents(hs []models.Habit, events []models.CompletionEvent) []models.CompletionEvent {
	ids := make(map[string]struct{}, len(hs))
	for _, h := range hs {
		ids[h.ID] = struct{}{}
	}
	out := make([]models.CompletionEvent, 0, len(events))
	for _, ev := range events {
		if _, ok := ids[ev.HabitID]; ok {
			out = append(out, ev)
		}
	}
	return out
}

// isActive expects a normalised habit.
func isActive(h models.Habit, now time.Time, rule ActiveRule) bool {
	pending := h.CompletedToday < h.DailyFrequency
	if rule == ActivePending {
		return pending
	}
	completedToday := h.LastCompletedDate != nil && utils.IsSameDay(now, *h.LastCompletedDate)
	return pending || completedToday || h.CurrentStreak > 0
}

func progress(h models.Habit) models.HabitProgress {
	p := models.HabitProgress{
		HabitID:        h.ID,
		Name:           h.Name,
		Icon:           h.Icon,
		CompletedToday: h.CompletedToday,
		DailyFrequency: h.DailyFrequency,
		CurrentStreak:  h.CurrentStreak,
		LongestStreak:  h.LongestStreak,
	}
	if h.DailyFrequency > 0 {
		p.CompletionRate = float64(h.CompletedToday) / float64(h.DailyFrequency) * 100
	}
	return p
}

// Weekly buckets events into the seven calendar days ending on now's date,
// oldest first.
func Weekly(events []models.CompletionEvent, now time.Time) []models.DayProgress {
	today := utils.Day(now)
	first := utils.AddDays(today, -(constants.WeeklyWindowDays - 1))

	days := make([]models.DayProgress, constants.WeeklyWindowDays)
	index := make(map[string]int, constants.WeeklyWindowDays)
	for i := range days {
		d := utils.AddDays(first, i)
		key := utils.FormatDate(d)
		days[i] = models.DayProgress{Day: d.Format("Mon"), Date: key}
		index[key] = i
	}

	for _, ev := range events {
		key := utils.FormatDate(ev.Date.In(now.Location()))
		if i, ok := index[key]; ok {
			days[i].Completions++
			days[i].Energy += ev.EnergyEarned
		}
	}
	return days
}
