package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/streakly/internal/constants"
	"github.com/julianstephens/streakly/internal/models"
	"github.com/julianstephens/streakly/internal/utils"
)

// ErrNotConfirmed is returned when a destructive command is declined.
var ErrNotConfirmed = errors.New("aborted")

// Confirm asks a yes/no question. Without a terminal the answer is no and
// the caller is told to pass --yes.
func (c *Context) Confirm(title string) error {
	if !c.Interactive {
		return fmt.Errorf("%w: pass --yes to confirm", ErrNotConfirmed)
	}
	ok := false
	err := huh.NewConfirm().
		Title(title).
		Affirmative("Yes").
		Negative("No").
		Value(&ok).
		WithTheme(huh.ThemeDracula()).
		Run()
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotConfirmed
	}
	return nil
}

// habitForm holds the string form of a habit definition while editing
type habitForm struct {
	Name       string
	Icon       models.Icon
	Difficulty models.Difficulty
	WeeklyDays string
	Frequency  string
	Energy     string
	Reminders  string
	Notify     bool
}

func intRange(lo, hi int) func(string) error {
	return func(s string) error {
		i, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return fmt.Errorf("enter a number")
		}
		if i < lo || i > hi {
			return fmt.Errorf("must be between %d and %d", lo, hi)
		}
		return nil
	}
}

func validReminders(s string) error {
	for _, r := range splitList(s) {
		if !utils.ValidateTimeFormat(r) {
			return fmt.Errorf("%q is not HH:MM", r)
		}
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// HabitForm runs an interactive form seeded with def and returns the result.
func (c *Context) HabitForm(def models.HabitDefinition) (models.HabitDefinition, error) {
	if !c.Interactive {
		return def, errors.New("interactive mode needs a terminal")
	}

	fm := habitForm{
		Name:       def.Name,
		Icon:       def.Icon,
		Difficulty: def.Difficulty,
		WeeklyDays: strconv.Itoa(def.WeeklyDays),
		Frequency:  strconv.Itoa(def.DailyFrequency),
		Energy:     strconv.Itoa(def.EnergyPerCompletion),
		Reminders:  strings.Join(def.Reminders, ", "),
		Notify:     def.NotificationsEnabled,
	}

	icons := make([]huh.Option[models.Icon], 0, len(models.Icons))
	for _, i := range models.Icons {
		icons = append(icons, huh.NewOption(Glyph(i)+" "+string(i), i))
	}
	difficulties := make([]huh.Option[models.Difficulty], 0, len(models.Difficulties))
	for _, d := range models.Difficulties {
		difficulties = append(difficulties, huh.NewOption(utils.TitleCase(string(d)), d))
	}

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Habit Name").
				Value(&fm.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("habit name cannot be empty")
					}
					return nil
				}),
			huh.NewSelect[models.Icon]().Title("Icon").Options(icons...).Value(&fm.Icon),
			huh.NewSelect[models.Difficulty]().Title("Difficulty").Options(difficulties...).Value(&fm.Difficulty),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Days per week").
				Value(&fm.WeeklyDays).
				Validate(intRange(constants.MinWeeklyDays, constants.MaxWeeklyDays)),
			huh.NewInput().
				Title("Times per day").
				Value(&fm.Frequency).
				Validate(intRange(constants.MinDailyFrequency, constants.MaxDailyFrequency)),
			huh.NewInput().
				Title("Energy per completion").
				Value(&fm.Energy).
				Validate(intRange(constants.MinEnergyPerCompletion, constants.MaxEnergyPerCompletion)),
		),
		huh.NewGroup(
			huh.NewConfirm().Title("Notifications").Value(&fm.Notify),
			huh.NewInput().
				Title("Reminders").
				Description("Comma separated HH:MM times").
				Value(&fm.Reminders).
				Validate(validReminders),
		),
	).WithTheme(huh.ThemeDracula()).Run()
	if err != nil {
		return def, err
	}

	def.Name = fm.Name
	def.Icon = fm.Icon
	def.Difficulty = fm.Difficulty
	def.WeeklyDays, _ = strconv.Atoi(strings.TrimSpace(fm.WeeklyDays))
	def.DailyFrequency, _ = strconv.Atoi(strings.TrimSpace(fm.Frequency))
	def.EnergyPerCompletion, _ = strconv.Atoi(strings.TrimSpace(fm.Energy))
	def.Reminders = splitList(fm.Reminders)
	def.NotificationsEnabled = fm.Notify
	return def, nil
}
