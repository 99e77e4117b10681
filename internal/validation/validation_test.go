package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/julianstephens/streakly/internal/errors"
	"github.com/julianstephens/streakly/internal/models"
)

func validHabit() models.HabitDefinition {
	return models.HabitDefinition{
		Name:                "Read",
		Icon:                models.IconBook,
		Difficulty:          models.DifficultyNormal,
		WeeklyDays:          7,
		DailyFrequency:      1,
		EnergyPerCompletion: 2,
		Reminders:           []string{"07:30", "21:00"},
	}
}

func TestHabit(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*models.HabitDefinition)
		wantField string
	}{
		{name: "valid", mutate: func(*models.HabitDefinition) {}},
		{name: "missing name", mutate: func(d *models.HabitDefinition) { d.Name = "" }, wantField: "name"},
		{name: "unknown icon", mutate: func(d *models.HabitDefinition) { d.Icon = "rocket" }, wantField: "icon"},
		{name: "unknown difficulty", mutate: func(d *models.HabitDefinition) { d.Difficulty = "extreme" }, wantField: "difficulty"},
		{name: "weekly days zero", mutate: func(d *models.HabitDefinition) { d.WeeklyDays = 0 }, wantField: "weekly_days"},
		{name: "weekly days eight", mutate: func(d *models.HabitDefinition) { d.WeeklyDays = 8 }, wantField: "weekly_days"},
		{name: "frequency above cap", mutate: func(d *models.HabitDefinition) { d.DailyFrequency = 25 }, wantField: "daily_frequency"},
		{name: "energy above cap", mutate: func(d *models.HabitDefinition) { d.EnergyPerCompletion = 4 }, wantField: "energy_per_completion"},
		{name: "bad reminder", mutate: func(d *models.HabitDefinition) { d.Reminders = []string{"07:30", "7pm"} }, wantField: "reminders"},
		{name: "no reminders", mutate: func(d *models.HabitDefinition) { d.Reminders = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def := validHabit()
			tt.mutate(&def)
			err := Habit(def)

			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))

			var verr *apperrors.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Contains(t, verr.Fields, tt.wantField)
		})
	}
}

func TestHabitMessages(t *testing.T) {
	def := validHabit()
	def.Name = ""
	def.DailyFrequency = 0

	err := Habit(def)
	require.Error(t, err)
	assert.Equal(t, "invalid input: daily_frequency must be between 1 and 24; name is required", err.Error())
}

func TestReward(t *testing.T) {
	cost := 10
	negative := -1

	tests := []struct {
		name    string
		def     models.RewardDefinition
		wantErr error
	}{
		{
			name: "valid custom",
			def:  models.RewardDefinition{Title: "Movie night", EnergyCost: &cost, Category: models.CategoryCustom},
		},
		{
			name: "tier without cost",
			def:  models.RewardDefinition{Title: "Spa day", Category: models.CategoryStreak30},
		},
		{
			name:    "blank title",
			def:     models.RewardDefinition{Title: "   ", EnergyCost: &cost, Category: models.CategoryCustom},
			wantErr: apperrors.ErrInvalidTitle,
		},
		{
			name:    "negative cost",
			def:     models.RewardDefinition{Title: "Snack", EnergyCost: &negative, Category: models.CategoryCustom},
			wantErr: apperrors.ErrInvalidInput,
		},
		{
			name:    "unknown category",
			def:     models.RewardDefinition{Title: "Snack", EnergyCost: &cost, Category: "streak_90"},
			wantErr: apperrors.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Reward(tt.def)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestBlankTitleIsInvalidInput(t *testing.T) {
	err := Reward(models.RewardDefinition{Category: models.CategoryCustom})
	assert.ErrorIs(t, err, apperrors.ErrInvalidTitle)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}
