package models

import "time"

// DayProgress summarises the completions of one calendar day
type DayProgress struct {
	Day         string `json:"day"`  // short weekday label, e.g. "Mon"
	Date        string `json:"date"` // YYYY-MM-DD
	Completions int    `json:"completions"`
	Energy      int    `json:"energy"`
}

// HabitProgress is the per-habit row of the stats page
type HabitProgress struct {
	HabitID        string  `json:"habit_id"`
	Name           string  `json:"name"`
	Icon           Icon    `json:"icon"`
	CompletedToday int     `json:"completed_today"`
	DailyFrequency int     `json:"daily_frequency"`
	CurrentStreak  int     `json:"current_streak"`
	LongestStreak  int     `json:"longest_streak"`
	CompletionRate float64 `json:"completion_rate"` // percent of today's target
}

// Stats is the derived summary over habits, completions, rewards and the energy account
type Stats struct {
	TotalHabits          int             `json:"total_habits"`
	ActiveHabits         int             `json:"active_habits"`
	TotalCompletions     int             `json:"total_completions"`
	CurrentStreaks       int             `json:"current_streaks"`
	TotalEnergyEarned    int             `json:"total_energy_earned"`
	TotalRewardsRedeemed int             `json:"total_rewards_redeemed"`
	WeeklyProgress       []DayProgress   `json:"weekly_progress"`
	BestStreak           int             `json:"best_streak"`
	TodayCompletions     int             `json:"today_completions"`
	WeeklyCompletions    int             `json:"weekly_completions"`
	WeeklyCompletionRate float64         `json:"weekly_completion_rate"`
	Habits               []HabitProgress `json:"habits"`
	GeneratedAt          time.Time       `json:"generated_at"`
}
