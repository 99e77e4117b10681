package habits

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/streakly/internal/cli"
	"github.com/julianstephens/streakly/internal/constants"
	apperrors "github.com/julianstephens/streakly/internal/errors"
	"github.com/julianstephens/streakly/internal/models"
	"github.com/julianstephens/streakly/internal/utils"
)

type HabitCmd struct {
	Add    HabitAddCmd    `cmd:"" help:"Add a new habit."`
	List   HabitListCmd   `cmd:"" help:"List habits with today's progress."`
	Show   HabitShowCmd   `cmd:"" help:"Show a habit and its completion history."`
	Edit   HabitEditCmd   `cmd:"" help:"Edit a habit."`
	Done   HabitDoneCmd   `cmd:"" help:"Record one completion of a habit."`
	Delete HabitDeleteCmd `cmd:"" help:"Delete a habit and its completion history."`
}

type HabitAddCmd struct {
	Name        string   `arg:"" optional:"" help:"Habit name."`
	Icon        string   `help:"Icon: book, dumbbell, apple, droplets, moon, heart, brain, target, coffee, leaf." default:"target"`
	Difficulty  string   `help:"Difficulty: easy, normal or hard." default:"normal"`
	WeeklyDays  int      `help:"Days per week (1-7)." default:"7"`
	Frequency   int      `short:"f" help:"Completions per day (1-24)." default:"1"`
	Energy      int      `short:"e" help:"Energy per completion (1-3)." default:"2"`
	Remind      []string `help:"Reminder time in HH:MM; repeatable."`
	Notify      bool     `help:"Enable reminders for this habit."`
	Interactive bool     `short:"i" help:"Fill the habit in with a form."`
}

func (c *HabitAddCmd) definition() (models.HabitDefinition, error) {
	icon, err := models.ParseIcon(c.Icon)
	if err != nil {
		return models.HabitDefinition{}, apperrors.InvalidInput("%v", err)
	}
	difficulty, err := models.ParseDifficulty(c.Difficulty)
	if err != nil {
		return models.HabitDefinition{}, apperrors.InvalidInput("%v", err)
	}
	return models.HabitDefinition{
		Name:                 c.Name,
		Icon:                 icon,
		Difficulty:           difficulty,
		WeeklyDays:           c.WeeklyDays,
		DailyFrequency:       c.Frequency,
		EnergyPerCompletion:  c.Energy,
		Reminders:            c.Remind,
		NotificationsEnabled: c.Notify || len(c.Remind) > 0,
	}, nil
}

func (c *HabitAddCmd) Run(ctx *cli.Context) error {
	def, err := c.definition()
	if err != nil {
		return err
	}
	if c.Interactive {
		if def, err = ctx.HabitForm(def); err != nil {
			return err
		}
	}

	h, err := ctx.Tracker.CreateHabit(def)
	if err != nil {
		return err
	}
	ctx.Printf("Added habit: %s %s (%d×/day, +%d energy)\n", cli.Glyph(h.Icon), h.Name, h.DailyFrequency, h.EnergyPerCompletion)
	return nil
}

type HabitListCmd struct {
	Pending bool `help:"Only show habits with completions left today."`
}

func (c *HabitListCmd) Run(ctx *cli.Context) error {
	list, err := ctx.Tracker.Habits()
	if c.Pending {
		list, err = ctx.Tracker.Today()
	}
	if err != nil {
		return err
	}

	if len(list) == 0 {
		ctx.Println("No habits found.")
		return nil
	}
	now := ctx.Tracker.Now()
	for _, h := range list {
		ctx.Println(cli.HabitLine(h, now))
	}
	return nil
}

type HabitShowCmd struct {
	Habit string `arg:"" help:"Habit id or name."`
	Limit int    `help:"Number of recent completions to show." default:"10"`
}

func (c *HabitShowCmd) Run(ctx *cli.Context) error {
	h, events, err := ctx.Tracker.History(c.Habit)
	if err != nil {
		return err
	}

	reminders := "none"
	if len(h.Reminders) > 0 {
		reminders = strings.Join(h.Reminders, ", ")
	}
	ctx.Println(cli.TitleStyle.Render(fmt.Sprintf("%s %s", cli.Glyph(h.Icon), h.Name)))
	ctx.Printf("  ID:            %s\n", h.ID)
	ctx.Printf("  Difficulty:    %s\n", utils.TitleCase(string(h.Difficulty)))
	ctx.Printf("  Target:        %d×/day, %d days/week\n", h.DailyFrequency, h.WeeklyDays)
	ctx.Printf("  Today:         %d/%d\n", h.CompletedToday, h.DailyFrequency)
	ctx.Printf("  Streak:        %d (best %d)\n", h.CurrentStreak, h.LongestStreak)
	ctx.Printf("  Energy:        +%d per completion\n", h.EnergyPerCompletion)
	ctx.Printf("  Reminders:     %s (notifications %s)\n", reminders, onOff(h.NotificationsEnabled))
	ctx.Printf("  Created:       %s\n", h.CreatedAt.In(ctx.Tracker.Location()).Format(constants.DateFormat))

	if len(events) == 0 {
		ctx.Println("\nNo completions yet.")
		return nil
	}
	ctx.Printf("\nRecent completions (%d total):\n", len(events))
	start := 0
	if c.Limit > 0 && len(events) > c.Limit {
		start = len(events) - c.Limit
	}
	for i := len(events) - 1; i >= start; i-- {
		ev := events[i]
		ctx.Printf("  %s  +%d\n", ev.Date.In(ctx.Tracker.Location()).Format("2006-01-02 15:04"), ev.EnergyEarned)
	}
	return nil
}

type HabitEditCmd struct {
	Habit       string   `arg:"" help:"Habit id or name."`
	Name        *string  `help:"New name."`
	Icon        *string  `help:"New icon."`
	Difficulty  *string  `help:"New difficulty."`
	WeeklyDays  *int     `help:"Days per week (1-7)."`
	Frequency   *int     `short:"f" help:"Completions per day (1-24)."`
	Energy      *int     `short:"e" help:"Energy per completion (1-3)."`
	Remind      []string `help:"Replace reminder times (HH:MM); repeatable."`
	NoReminders bool     `help:"Remove every reminder time."`
	Notify      *bool    `help:"Enable or disable reminders for this habit."`
	Interactive bool     `short:"i" help:"Edit the habit with a form."`
}

func (c *HabitEditCmd) apply(def models.HabitDefinition) (models.HabitDefinition, error) {
	if c.Name != nil {
		def.Name = *c.Name
	}
	if c.Icon != nil {
		icon, err := models.ParseIcon(*c.Icon)
		if err != nil {
			return def, apperrors.InvalidInput("%v", err)
		}
		def.Icon = icon
	}
	if c.Difficulty != nil {
		d, err := models.ParseDifficulty(*c.Difficulty)
		if err != nil {
			return def, apperrors.InvalidInput("%v", err)
		}
		def.Difficulty = d
	}
	if c.WeeklyDays != nil {
		def.WeeklyDays = *c.WeeklyDays
	}
	if c.Frequency != nil {
		def.DailyFrequency = *c.Frequency
	}
	if c.Energy != nil {
		def.EnergyPerCompletion = *c.Energy
	}
	if c.NoReminders {
		def.Reminders = nil
	}
	if len(c.Remind) > 0 {
		def.Reminders = append([]string(nil), c.Remind...)
	}
	if c.Notify != nil {
		def.NotificationsEnabled = *c.Notify
	}
	return def, nil
}

func (c *HabitEditCmd) Run(ctx *cli.Context) error {
	current, err := ctx.Tracker.Habit(c.Habit)
	if err != nil {
		return err
	}
	def, err := c.apply(current.Definition())
	if err != nil {
		return err
	}
	if c.Interactive {
		if def, err = ctx.HabitForm(def); err != nil {
			return err
		}
	}

	h, err := ctx.Tracker.UpdateHabit(current.ID, def)
	if err != nil {
		return err
	}
	ctx.Printf("Updated habit: %s\n", h.Name)
	return nil
}

type HabitDoneCmd struct {
	Habit string `arg:"" help:"Habit id or name."`
}

func (c *HabitDoneCmd) Run(ctx *cli.Context) error {
	res, err := ctx.Tracker.CompleteHabit(c.Habit)
	if errors.Is(err, apperrors.ErrAlreadyComplete) {
		ctx.Println(cli.NoticeStyle.Render(fmt.Sprintf("%s is already done for today (%d/%d).",
			res.Habit.Name, res.Habit.CompletedToday, res.Habit.DailyFrequency)))
		return nil
	}
	if err != nil {
		return err
	}

	h := res.Habit
	ctx.Printf("%s %s %d/%d  %s  🔥%d\n", cli.Glyph(h.Icon), h.Name, h.CompletedToday, h.DailyFrequency,
		cli.EnergyStyle.Render(fmt.Sprintf("+%d⚡", res.Event.EnergyEarned)), h.CurrentStreak)
	ctx.Printf("Energy balance: %d\n", res.Balance)
	if h.CompletedToday == h.DailyFrequency {
		ctx.Println(cli.DoneStyle.Render("All done for today!"))
	}
	return nil
}

type HabitDeleteCmd struct {
	Habit string `arg:"" help:"Habit id or name."`
	Yes   bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *HabitDeleteCmd) Run(ctx *cli.Context) error {
	h, err := ctx.Tracker.Habit(c.Habit)
	if err != nil {
		return err
	}
	if !c.Yes {
		if err := ctx.Confirm(fmt.Sprintf("Delete %q and its completion history?", h.Name)); err != nil {
			return err
		}
	}

	removed, events, err := ctx.Tracker.DeleteHabit(h.ID)
	if err != nil {
		return err
	}
	ctx.Printf("Deleted habit %s (%d completions removed; earned energy is kept)\n", removed.Name, events)
	return nil
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
