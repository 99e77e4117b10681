package settings

import (
	"fmt"

	"github.com/julianstephens/streakly/internal/cli"
	"github.com/julianstephens/streakly/internal/constants"
	"github.com/julianstephens/streakly/internal/models"
)

type SettingsCmd struct {
	List                    bool  `help:"List settings after updating them."`
	SoundEnabled            *bool `help:"Play a sound with notifications."`
	NotificationsEnabled    *bool `help:"Allow reminder notifications."`
	CheckinRemindersOnly    *bool `help:"Only remind about habits not yet done today."`
	WeeklyProgressReminders *bool `help:"Send a weekly progress summary."`
}

func (c *SettingsCmd) updates() []struct {
	key   string
	value *bool
} {
	return []struct {
		key   string
		value *bool
	}{
		{constants.SettingSoundEnabled, c.SoundEnabled},
		{constants.SettingNotificationsEnabled, c.NotificationsEnabled},
		{constants.SettingCheckinRemindersOnly, c.CheckinRemindersOnly},
		{constants.SettingWeeklyProgressReminders, c.WeeklyProgressReminders},
	}
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	updated := false
	for _, u := range c.updates() {
		if u.value == nil {
			continue
		}
		if _, err := ctx.Tracker.SetSetting(u.key, *u.value); err != nil {
			return err
		}
		ctx.Printf("Updated %s to %v\n", u.key, *u.value)
		updated = true
	}
	if updated && !c.List {
		return nil
	}

	u, err := ctx.Tracker.User()
	if err != nil {
		return err
	}
	printSettings(ctx, u.Settings)
	return nil
}

func printSettings(ctx *cli.Context, s models.UserSettings) {
	ctx.Println("Current Settings:")
	ctx.Printf("  %-26s %v\n", constants.SettingSoundEnabled+":", s.SoundEnabled)
	ctx.Printf("  %-26s %v\n", constants.SettingNotificationsEnabled+":", s.NotificationsEnabled)
	ctx.Printf("  %-26s %v\n", constants.SettingCheckinRemindersOnly+":", s.CheckinRemindersOnly)
	ctx.Printf("  %-26s %v\n", constants.SettingWeeklyProgressReminders+":", s.WeeklyProgressReminders)
}

type ProfileCmd struct {
	Name  *string `help:"Display name."`
	Email *string `help:"Email address."`
}

func (c *ProfileCmd) Run(ctx *cli.Context) error {
	var (
		u   models.User
		err error
	)
	if c.Name != nil || c.Email != nil {
		u, err = ctx.Tracker.UpdateProfile(c.Name, c.Email)
	} else {
		u, err = ctx.Tracker.User()
	}
	if err != nil {
		return err
	}

	email := u.Email
	if email == "" {
		email = "(not set)"
	}
	ctx.Println(cli.TitleStyle.Render(u.Name))
	ctx.Printf("  Email:   %s\n", email)
	ctx.Printf("  Joined:  %s\n", u.JoinedAt.In(ctx.Tracker.Location()).Format(constants.DateFormat))
	ctx.Printf("  Energy:  %s\n", cli.EnergyStyle.Render(fmt.Sprintf("%d⚡", u.TotalEnergy)))
	return nil
}
