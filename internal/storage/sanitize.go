package storage

import (
	"github.com/google/uuid"

	"github.com/julianstephens/streakly/internal/constants"
	"github.com/julianstephens/streakly/internal/habits"
	"github.com/julianstephens/streakly/internal/ledger"
	"github.com/julianstephens/streakly/internal/logger"
	"github.com/julianstephens/streakly/internal/models"
	"github.com/julianstephens/streakly/internal/utils"
)

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// sanitize repairs values that hand edits or older versions may have left
// out of range. Every repair is logged.
func sanitize(state *State) {
	for i := range state.Habits {
		if fixHabit(&state.Habits[i]) {
			logger.Warn("Repaired habit on load", "id", state.Habits[i].ID, "name", state.Habits[i].Name)
		}
	}
	for i := range state.Completions {
		fixCompletion(&state.Completions[i])
	}
	for i := range state.Rewards {
		if fixReward(&state.Rewards[i]) {
			logger.Warn("Repaired reward on load", "id", state.Rewards[i].ID, "title", state.Rewards[i].Title)
		}
	}

	if state.User.ID == "" {
		state.User.ID = constants.DefaultUserID
	}
	if acct, changed := ledger.Reconcile(state.User.EnergyAccount); changed {
		logger.Warn("Energy account was inconsistent, recomputed balance",
			"earned", acct.TotalEnergyEarned, "spent", acct.TotalEnergySpent, "balance", acct.TotalEnergy)
		state.User.EnergyAccount = acct
	}
}

func fixHabit(h *models.Habit) bool {
	before := h.Clone()
	changed := false

	if h.ID == "" {
		h.ID = uuid.New().String()
		changed = true
	}
	if !h.Icon.Valid() {
		logger.Warn("Unknown habit icon, using default", "icon", h.Icon)
		h.Icon = models.IconTarget
	}
	if !h.Difficulty.Valid() {
		logger.Warn("Unknown habit difficulty, using default", "difficulty", h.Difficulty)
		h.Difficulty = models.DifficultyNormal
	}

	h.WeeklyDays = clamp(h.WeeklyDays, constants.MinWeeklyDays, constants.MaxWeeklyDays)
	h.DailyFrequency = clamp(h.DailyFrequency, constants.MinDailyFrequency, constants.MaxDailyFrequency)
	h.EnergyPerCompletion = clamp(h.EnergyPerCompletion, constants.MinEnergyPerCompletion, constants.MaxEnergyPerCompletion)
	h.CompletedToday = clamp(h.CompletedToday, 0, h.DailyFrequency)
	if h.CurrentStreak < 0 {
		h.CurrentStreak = 0
	}
	if h.LongestStreak < h.CurrentStreak {
		h.LongestStreak = h.CurrentStreak
	}

	reminders := make([]string, 0, len(h.Reminders))
	for _, r := range h.Reminders {
		if utils.ValidateTimeFormat(r) {
			reminders = append(reminders, r)
		}
	}
	h.Reminders = habits.NormalizeReminders(reminders)

	return changed || !sameHabit(before, *h)
}

func sameHabit(a, b models.Habit) bool {
	if a.Icon != b.Icon || a.Difficulty != b.Difficulty ||
		a.WeeklyDays != b.WeeklyDays || a.DailyFrequency != b.DailyFrequency ||
		a.EnergyPerCompletion != b.EnergyPerCompletion || a.CompletedToday != b.CompletedToday ||
		a.CurrentStreak != b.CurrentStreak || a.LongestStreak != b.LongestStreak ||
		len(a.Reminders) != len(b.Reminders) {
		return false
	}
	for i := range a.Reminders {
		if a.Reminders[i] != b.Reminders[i] {
			return false
		}
	}
	return true
}

func fixCompletion(ev *models.CompletionEvent) {
	ev.CompletedCount = constants.CompletedCountPerEvent
	if ev.EnergyEarned < 0 {
		ev.EnergyEarned = 0
	}
}

func fixReward(r *models.Reward) bool {
	before := *r

	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	if !r.Category.Valid() {
		logger.Warn("Unknown reward category, using custom", "category", r.Category)
		r.Category = models.CategoryCustom
	}
	if r.EnergyCost < 0 {
		r.EnergyCost = 0
	}
	if r.TimesRedeemed < 0 {
		r.TimesRedeemed = 0
	}
	if !r.IsRepeatable && r.TimesRedeemed > 1 {
		r.TimesRedeemed = 1
	}
	return before != *r
}
