// Package validation checks user-editable definitions before they reach the engine.
package validation

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/julianstephens/streakly/internal/errors"
	"github.com/julianstephens/streakly/internal/models"
	"github.com/julianstephens/streakly/internal/utils"
)

var (
	once     sync.Once
	validate *validator.Validate
)

// HHMMValidator accepts zero-padded 24h clock times (HH:MM).
var HHMMValidator = func(fl validator.FieldLevel) bool {
	return utils.ValidateTimeFormat(fl.Field().String())
}

// IconValidator accepts the closed set of habit icons.
var IconValidator = func(fl validator.FieldLevel) bool {
	return models.Icon(fl.Field().String()).Valid()
}

// DifficultyValidator accepts easy, normal and hard.
var DifficultyValidator = func(fl validator.FieldLevel) bool {
	return models.Difficulty(fl.Field().String()).Valid()
}

// CategoryValidator accepts the reward pricing tiers and custom.
var CategoryValidator = func(fl validator.FieldLevel) bool {
	return models.RewardCategory(fl.Field().String()).Valid()
}

// Validator returns the shared validator with the custom tags registered.
func Validator() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		_ = v.RegisterValidation("hhmm", HHMMValidator)
		_ = v.RegisterValidation("icon", IconValidator)
		_ = v.RegisterValidation("difficulty", DifficultyValidator)
		_ = v.RegisterValidation("category", CategoryValidator)
		validate = v
	})
	return validate
}

var fieldNames = map[string]string{
	"Name":                "name",
	"Icon":                "icon",
	"Difficulty":          "difficulty",
	"WeeklyDays":          "weekly_days",
	"DailyFrequency":      "daily_frequency",
	"EnergyPerCompletion": "energy_per_completion",
	"Reminders":           "reminders",
	"Title":               "title",
	"Description":         "description",
	"EnergyCost":          "energy_cost",
	"Category":            "category",
}

var customMessages = map[string]string{
	"HabitDefinition.Name.required":           "is required",
	"HabitDefinition.Name.max":                "must be at most 100 characters",
	"HabitDefinition.Icon.icon":               "must be one of book, dumbbell, apple, droplets, moon, heart, brain, target, coffee, leaf",
	"HabitDefinition.Difficulty.difficulty":   "must be one of easy, normal, hard",
	"HabitDefinition.WeeklyDays.min":          "must be between 1 and 7",
	"HabitDefinition.WeeklyDays.max":          "must be between 1 and 7",
	"HabitDefinition.DailyFrequency.min":      "must be between 1 and 24",
	"HabitDefinition.DailyFrequency.max":      "must be between 1 and 24",
	"HabitDefinition.EnergyPerCompletion.min": "must be between 1 and 3",
	"HabitDefinition.EnergyPerCompletion.max": "must be between 1 and 3",
	"HabitDefinition.Reminders.hhmm":          "must be times in HH:MM format",
	"RewardDefinition.Title.required":         "must not be empty",
	"RewardDefinition.Title.max":              "must be at most 100 characters",
	"RewardDefinition.Description.max":        "must be at most 500 characters",
	"RewardDefinition.EnergyCost.min":         "must not be negative",
	"RewardDefinition.Category.category":      "must be one of streak_7, streak_14, streak_30, streak_60, custom",
}

// Struct validates s and converts validator failures into a *errors.ValidationError.
func Struct(s interface{}) error {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperrors.InvalidInput("%v", err)
	}

	fields := make(map[string]string, len(verrs))
	for _, e := range verrs {
		name := stripIndex(e.StructField())
		if f, ok := fieldNames[name]; ok {
			name = f
		}
		if _, seen := fields[name]; seen {
			continue
		}

		msg := fmt.Sprintf("failed %q check", e.Tag())
		if m, ok := customMessages[messageKey(e)]; ok {
			msg = m
		}
		fields[name] = msg
	}
	return &apperrors.ValidationError{Fields: fields}
}

// messageKey builds "Struct.Field.tag" for the customMessages lookup.
func messageKey(e validator.FieldError) string {
	return stripIndex(e.StructNamespace()) + "." + e.Tag()
}

// stripIndex drops the slice index that dive errors append, e.g. "Reminders[2]".
func stripIndex(s string) string {
	if i := strings.IndexByte(s, '['); i >= 0 {
		return s[:i]
	}
	return s
}

// Habit validates a habit definition.
func Habit(def models.HabitDefinition) error {
	return Struct(def)
}

// Reward validates a reward definition. A blank title is reported as ErrInvalidTitle.
func Reward(def models.RewardDefinition) error {
	if strings.TrimSpace(def.Title) == "" {
		return apperrors.ErrInvalidTitle
	}
	return Struct(def)
}
