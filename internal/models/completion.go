package models

import "time"

// CompletionEvent records a single completion of a habit
type CompletionEvent struct {
	HabitID        string    `json:"habit_id"`
	Date           time.Time `json:"date"`
	CompletedCount int       `json:"completed_count"`
	EnergyEarned   int       `json:"energy_earned"` // snapshot of the habit's rate at completion time
}
