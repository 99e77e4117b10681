package models

import (
	"fmt"
	"time"
)

// Icon is the closed set of habit icon tags
type Icon string

const (
	IconBook     Icon = "book"
	IconDumbbell Icon = "dumbbell"
	IconApple    Icon = "apple"
	IconDroplets Icon = "droplets"
	IconMoon     Icon = "moon"
	IconHeart    Icon = "heart"
	IconBrain    Icon = "brain"
	IconTarget   Icon = "target"
	IconCoffee   Icon = "coffee"
	IconLeaf     Icon = "leaf"
)

// Icons lists every valid icon in display order.
var Icons = []Icon{
	IconBook, IconDumbbell, IconApple, IconDroplets, IconMoon,
	IconHeart, IconBrain, IconTarget, IconCoffee, IconLeaf,
}

func (i Icon) Valid() bool {
	for _, v := range Icons {
		if v == i {
			return true
		}
	}
	return false
}

// ParseIcon returns the icon for s or an error for unknown tags.
func ParseIcon(s string) (Icon, error) {
	i := Icon(s)
	if !i.Valid() {
		return "", fmt.Errorf("unknown icon %q", s)
	}
	return i, nil
}

// Difficulty is the self-assessed difficulty of a habit
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyNormal Difficulty = "normal"
	DifficultyHard   Difficulty = "hard"
)

var Difficulties = []Difficulty{DifficultyEasy, DifficultyNormal, DifficultyHard}

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return true
	}
	return false
}

// ParseDifficulty returns the difficulty for s or an error for unknown values.
func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(s)
	if !d.Valid() {
		return "", fmt.Errorf("unknown difficulty %q", s)
	}
	return d, nil
}

// Habit represents a recurring practice and its progress
type Habit struct {
	ID                   string     `json:"id"`
	Name                 string     `json:"name"`
	Icon                 Icon       `json:"icon"`
	Difficulty           Difficulty `json:"difficulty"`
	WeeklyDays           int        `json:"weekly_days"`
	DailyFrequency       int        `json:"daily_frequency"`
	EnergyPerCompletion  int        `json:"energy_per_completion"`
	Reminders            []string   `json:"reminders"`
	NotificationsEnabled bool       `json:"notifications_enabled"`
	CreatedAt            time.Time  `json:"created_at"`
	CurrentStreak        int        `json:"current_streak"`
	LongestStreak        int        `json:"longest_streak"`
	CompletedToday       int        `json:"completed_today"`
	LastCompletedDate    *time.Time `json:"last_completed_date"`
}

// HabitDefinition holds the user-editable fields of a habit
type HabitDefinition struct {
	Name                 string     `validate:"required,max=100"`
	Icon                 Icon       `validate:"icon"`
	Difficulty           Difficulty `validate:"difficulty"`
	WeeklyDays           int        `validate:"min=1,max=7"`
	DailyFrequency       int        `validate:"min=1,max=24"`
	EnergyPerCompletion  int        `validate:"min=1,max=3"`
	Reminders            []string   `validate:"dive,hhmm"`
	NotificationsEnabled bool
}

// Definition extracts the editable fields of h.
func (h Habit) Definition() HabitDefinition {
	return HabitDefinition{
		Name:                 h.Name,
		Icon:                 h.Icon,
		Difficulty:           h.Difficulty,
		WeeklyDays:           h.WeeklyDays,
		DailyFrequency:       h.DailyFrequency,
		EnergyPerCompletion:  h.EnergyPerCompletion,
		Reminders:            append([]string(nil), h.Reminders...),
		NotificationsEnabled: h.NotificationsEnabled,
	}
}

// Clone returns a deep copy of h.
func (h Habit) Clone() Habit {
	c := h
	c.Reminders = append([]string(nil), h.Reminders...)
	if h.LastCompletedDate != nil {
		t := *h.LastCompletedDate
		c.LastCompletedDate = &t
	}
	return c
}
